package inbound

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

// Service applies receipt transactions. Receipts never fail for stock
// reasons: every line is an upsert into its catalog.
type Service struct {
	repo      Repository
	catalogs  *catalog.Resolver
	txManager tx.Manager
	auditor   audit.Recorder
}

// NewService creates an inbound service. auditor may be nil.
func NewService(repo Repository, catalogs *catalog.Resolver, txManager tx.Manager, auditor audit.Recorder) *Service {
	return &Service{
		repo:      repo,
		catalogs:  catalogs,
		txManager: txManager,
		auditor:   auditor,
	}
}

// Create applies a receipt: assigns a day-scoped code, persists the document
// with its lines and increments every referenced catalog entry. Lines whose
// category carries the raw-material marker are received into Raw Materials,
// everything else into Finished Items.
func (s *Service) Create(ctx context.Context, doc *Inbound) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunSerializable(ctx, func(ctx context.Context) error {
		from, to := numerator.DayRange(doc.Date)
		count, err := s.repo.CountByDateRange(ctx, from, to)
		if err != nil {
			return fmt.Errorf("count same-day receipts: %w", err)
		}
		doc.Code = numerator.Format(CodePrefix, from, int(count)+1)

		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		for i := range doc.Lines {
			line := &doc.Lines[i]
			kind := catalog.HintKind(line.Code, line.Category)
			if err := s.catalogs.Increment(ctx, kind, line.Code, line.Qty, line.Metadata()); err != nil {
				return fmt.Errorf("receive line %s: %w", line.Code, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	audit.Record(ctx, s.auditor, audit.EntityInbound, doc.ID, audit.ActionCreate, doc.Lines)

	logger.Info(ctx, "inbound created",
		"id", doc.ID,
		"code", doc.Code,
		"vendor", doc.Vendor,
		"lines", len(doc.Lines))

	return nil
}

// GetByID retrieves a receipt with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Inbound, error) {
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

// ListRecent returns the most recent receipts, newest first, capped at 100.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*Inbound, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.ListRecent(ctx, limit)
}
