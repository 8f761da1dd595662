package production

import (
	"context"
	"fmt"

	"github.com/Clawwo/IasProductama-sub000/internal/core/apperror"
	appctx "github.com/Clawwo/IasProductama-sub000/internal/core/context"
	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/core/numerator"
	"github.com/Clawwo/IasProductama-sub000/internal/core/tx"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/audit"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/catalog"
	"github.com/Clawwo/IasProductama-sub000/pkg/logger"
)

// Service applies manufacturing events.
type Service struct {
	repo      Repository
	catalogs  *catalog.Resolver
	txManager tx.Manager
	auditor   audit.Recorder
}

// NewService creates a production service. auditor may be nil.
func NewService(repo Repository, catalogs *catalog.Resolver, txManager tx.Manager, auditor audit.Recorder) *Service {
	return &Service{
		repo:      repo,
		catalogs:  catalogs,
		txManager: txManager,
		auditor:   auditor,
	}
}

// Create applies a manufacturing event in one atomic unit: all raw lines are
// consumed first, then all finished lines are produced, then the document and
// both line sets are persisted. A raw line whose hinted catalog does not
// contain the code falls back to the other catalog before failing; a failure
// at any raw line rolls back every decrement already applied.
func (s *Service) Create(ctx context.Context, doc *Production) error {
	doc.Normalize()
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if doc.CreatedByID == nil {
		if userID := appctx.GetUserID(ctx); userID != "" {
			doc.CreatedByID = &userID
		}
	}

	err := s.txManager.RunSerializable(ctx, func(ctx context.Context) error {
		from, to := numerator.DayRange(doc.Date)
		count, err := s.repo.CountByDateRange(ctx, from, to)
		if err != nil {
			return fmt.Errorf("count same-day runs: %w", err)
		}
		doc.Code = numerator.Format(CodePrefix, from, int(count)+1)

		for i := range doc.RawLines {
			if err := s.consume(ctx, &doc.RawLines[i]); err != nil {
				return err
			}
		}

		for i := range doc.FinishedLines {
			line := &doc.FinishedLines[i]
			if err := s.catalogs.Increment(ctx, catalog.KindItem, line.Code, line.Qty, line.Metadata()); err != nil {
				return fmt.Errorf("produce line %s: %w", line.Code, err)
			}
		}

		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.repo.SaveRawLines(ctx, doc.ID, doc.RawLines); err != nil {
			return fmt.Errorf("save raw lines: %w", err)
		}
		if err := s.repo.SaveFinishedLines(ctx, doc.ID, doc.FinishedLines); err != nil {
			return fmt.Errorf("save finished lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	audit.Record(ctx, s.auditor, audit.EntityProduction, doc.ID, audit.ActionCreate, map[string]any{
		"rawLines":      doc.RawLines,
		"finishedLines": doc.FinishedLines,
	})

	logger.Info(ctx, "production created",
		"id", doc.ID,
		"code", doc.Code,
		"raw_lines", len(doc.RawLines),
		"finished_lines", len(doc.FinishedLines))

	return nil
}

// consume decrements one raw line, falling back to the opposite catalog when
// the hinted catalog does not know the code. Insufficient stock in the hinted
// catalog is final; only an unknown code triggers the fallback.
func (s *Service) consume(ctx context.Context, line *RawLine) error {
	kind := catalog.KindFor(line.SourceType)

	err := s.catalogs.Decrement(ctx, kind, line.Code, line.Qty, line.Metadata())
	if err == nil {
		return nil
	}
	if !apperror.IsUnknownCode(err) {
		return err
	}

	return s.catalogs.Decrement(ctx, kind.Fallback(), line.Code, line.Qty, line.Metadata())
}

// GetByID retrieves a production run with both line sets.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Production, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	if doc.RawLines, err = s.repo.GetRawLines(ctx, docID); err != nil {
		return nil, fmt.Errorf("get raw lines: %w", err)
	}
	if doc.FinishedLines, err = s.repo.GetFinishedLines(ctx, docID); err != nil {
		return nil, fmt.Errorf("get finished lines: %w", err)
	}
	return doc, nil
}

// ListRecent returns the most recent runs, newest first, capped at 100.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*Production, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.ListRecent(ctx, limit)
}
