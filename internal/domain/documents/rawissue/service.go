package rawissue

import (
	"context"
	"fmt"
	"time"

	"github.com/Clawwo/IasProductama-sub000/internal/core/apperror"
	appctx "github.com/Clawwo/IasProductama-sub000/internal/core/context"
	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/core/numerator"
	"github.com/Clawwo/IasProductama-sub000/internal/core/tx"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/audit"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/catalog"
	"github.com/Clawwo/IasProductama-sub000/pkg/logger"
)

// Service issues raw materials to artisans and tracks their return.
type Service struct {
	repo      Repository
	catalogs  *catalog.Resolver
	txManager tx.Manager
	auditor   audit.Recorder
}

// NewService creates a raw-material issue service. auditor may be nil.
func NewService(repo Repository, catalogs *catalog.Resolver, txManager tx.Manager, auditor audit.Recorder) *Service {
	return &Service{
		repo:      repo,
		catalogs:  catalogs,
		txManager: txManager,
		auditor:   auditor,
	}
}

// Create issues materials to an artisan. Lines draw from the raw-material
// catalog only; there is no fallback to items here. Every line starts OUT.
func (s *Service) Create(ctx context.Context, doc *RawIssue) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}
	if userID := appctx.GetUserID(ctx); userID != "" {
		doc.CreatedByID = &userID
	}

	err := s.txManager.RunSerializable(ctx, func(ctx context.Context) error {
		from, to := numerator.DayRange(doc.Date)
		count, err := s.repo.CountByDateRange(ctx, from, to)
		if err != nil {
			return fmt.Errorf("count same-day issues: %w", err)
		}
		doc.Code = numerator.Format(CodePrefix, from, int(count)+1)

		for i := range doc.Lines {
			line := &doc.Lines[i]
			line.Status = StatusOut
			if err := s.catalogs.Decrement(ctx, catalog.KindRawMaterial, line.Code, line.Qty, line.Metadata()); err != nil {
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

	audit.Record(ctx, s.auditor, audit.EntityRawIssue, doc.ID, audit.ActionCreate, doc.Lines)

	logger.Info(ctx, "raw issue created",
		"id", doc.ID,
		"code", doc.Code,
		"artisan", doc.Artisan,
		"lines", len(doc.Lines))

	return nil
}

// ReceiveLine marks one issued line as returned. Receiving the last
// outstanding line closes the document.
func (s *Service) ReceiveLine(ctx context.Context, docID, lineID id.ID) error {
	var closed bool

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		line, err := s.repo.GetLine(ctx, docID, lineID)
		if err != nil {
			return err
		}
		if line == nil {
			return apperror.NewNotFound("raw issue line", lineID)
		}
		if line.Status == StatusReceived {
			return apperror.NewConflict("line already received").
				WithDetail("lineId", lineID.String())
		}

		now := time.Now().UTC()
		var receivedBy *string
		if userID := appctx.GetUserID(ctx); userID != "" {
			receivedBy = &userID
		}
		if err := s.repo.MarkLineReceived(ctx, lineID, now, receivedBy); err != nil {
			return fmt.Errorf("mark line received: %w", err)
		}

		outstanding, err := s.repo.CountOutstanding(ctx, docID)
		if err != nil {
			return fmt.Errorf("count outstanding lines: %w", err)
		}
		if outstanding == 0 {
			if err := s.repo.Close(ctx, docID, now); err != nil {
				return fmt.Errorf("close document: %w", err)
			}
			closed = true
		}
		return nil
	})
	if err != nil {
		return err
	}

	audit.Record(ctx, s.auditor, audit.EntityRawIssue, docID, audit.ActionReceive, map[string]any{
		"lineId": lineID,
		"closed": closed,
	})

	logger.Info(ctx, "raw issue line received",
		"id", docID,
		"lineId", lineID,
		"closed", closed)

	return nil
}

// GetByID retrieves a raw-material issue with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*RawIssue, error) {
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

// ListRecent returns the most recent issues, newest first, capped at 100.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*RawIssue, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.ListRecent(ctx, limit)
}
