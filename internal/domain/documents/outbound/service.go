package outbound

import (
	"context"
	"fmt"

	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/core/numerator"
	"github.com/Clawwo/IasProductama-sub000/internal/core/tx"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/audit"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/catalog"
	"github.com/Clawwo/IasProductama-sub000/pkg/logger"
)

// Service applies issuance transactions.
type Service struct {
	repo      Repository
	catalogs  *catalog.Resolver
	txManager tx.Manager
	auditor   audit.Recorder
}

// NewService creates an outbound service. auditor may be nil.
func NewService(repo Repository, catalogs *catalog.Resolver, txManager tx.Manager, auditor audit.Recorder) *Service {
	return &Service{
		repo:      repo,
		catalogs:  catalogs,
		txManager: txManager,
		auditor:   auditor,
	}
}

// Create applies an issuance: each line is resolved across the catalogs in
// precedence order and decremented against current stock. Checks run line by
// line in list order, so a later line sees the decrements of earlier ones —
// duplicate codes are deliberately not pre-aggregated. Any failing line rolls
// back the whole document, including decrements already applied.
func (s *Service) Create(ctx context.Context, doc *Outbound) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunSerializable(ctx, func(ctx context.Context) error {
		from, to := numerator.DayRange(doc.Date)
		count, err := s.repo.CountByDateRange(ctx, from, to)
		if err != nil {
			return fmt.Errorf("count same-day issuances: %w", err)
		}
		doc.Code = numerator.Format(CodePrefix, from, int(count)+1)

		for i := range doc.Lines {
			line := &doc.Lines[i]
			if err := s.catalogs.DecrementResolved(ctx, line.Code, line.Qty, line.Metadata()); err != nil {
				return err
			}
		}

		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	audit.Record(ctx, s.auditor, audit.EntityOutbound, doc.ID, audit.ActionCreate, doc.Lines)

	logger.Info(ctx, "outbound created",
		"id", doc.ID,
		"code", doc.Code,
		"orderer", doc.Orderer,
		"lines", len(doc.Lines))

	return nil
}

// GetByID retrieves an issuance with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Outbound, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines
	return doc, nil
}

// ListRecent returns the most recent issuances, newest first, capped at 100.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*Outbound, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.ListRecent(ctx, limit)
}
