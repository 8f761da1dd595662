package bom

import (
	"context"
	"fmt"

	"github.com/Clawwo/IasProductama-sub000/internal/core/apperror"
	"github.com/Clawwo/IasProductama-sub000/pkg/logger"
)

// Service resolves bills of materials by product code or name.
type Service struct {
	repo Repository
}

// NewService creates a new BOM service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// FindByCodeOrName returns the BOM for a finished good. At least one of code
// and name is required. Exact matches return immediately; otherwise every
// header is scanned with the token matcher and the best unambiguous match
// wins. Fails with NotFound when neither step produces a header.
func (s *Service) FindByCodeOrName(ctx context.Context, code, name string) (*Header, error) {
	if code == "" && name == "" {
		return nil, apperror.NewValidation("code or name is required")
	}

	header, err := s.repo.FindExact(ctx, code, name)
	if err != nil {
		return nil, fmt.Errorf("find exact bom: %w", err)
	}
	if header != nil {
		return header, nil
	}

	tokens := queryTokens(code, name)
	if len(tokens) == 0 {
		return nil, apperror.NewNotFound("bom", code+name)
	}

	headers, err := s.repo.ListHeaders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bom headers: %w", err)
	}

	match := bestMatch(tokens, headers)
	if match == nil {
		return nil, apperror.NewNotFound("bom", code+name)
	}

	lines, err := s.repo.GetLines(ctx, match.ID)
	if err != nil {
		return nil, fmt.Errorf("get bom lines: %w", err)
	}
	match.Lines = lines

	logger.Debug(ctx, "bom resolved by fuzzy match",
		"query_code", code,
		"query_name", name,
		"product_name", match.ProductName)

	return match, nil
}
