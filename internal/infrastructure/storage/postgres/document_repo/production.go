package document_repo

import (
	"context"
	"fmt"

	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/production"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/storage/postgres"
)

const (
	productionsTable             = "productions"
	productionRawLinesTable      = "production_raw_lines"
	productionFinishedLinesTable = "production_finished_lines"
)

// ProductionRepo implements production.Repository.
type ProductionRepo struct {
	*BaseDocumentRepo[production.Production]
}

var _ production.Repository = (*ProductionRepo)(nil)

// NewProductionRepo creates a new production repository.
func NewProductionRepo(txManager *postgres.TxManager) *ProductionRepo {
	return &ProductionRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[production.Production](
			txManager, productionsTable, "production",
		),
	}
}

// SaveRawLines replaces the consumed raw-material lines.
func (r *ProductionRepo) SaveRawLines(ctx context.Context, docID id.ID, lines []production.RawLine) error {
	return replaceLines(ctx, r.querier(ctx), productionRawLinesTable, docID, lines)
}

// SaveFinishedLines replaces the produced finished-goods lines.
func (r *ProductionRepo) SaveFinishedLines(ctx context.Context, docID id.ID, lines []documents.Line) error {
	return replaceLines(ctx, r.querier(ctx), productionFinishedLinesTable, docID, lines)
}

// GetRawLines retrieves the consumed lines in line order.
func (r *ProductionRepo) GetRawLines(ctx context.Context, docID id.ID) ([]production.RawLine, error) {
	return selectLines[production.RawLine](ctx, r.querier(ctx), productionRawLinesTable, docID)
}

// GetFinishedLines retrieves the produced lines in line order.
func (r *ProductionRepo) GetFinishedLines(ctx context.Context, docID id.ID) ([]documents.Line, error) {
	return selectLines[documents.Line](ctx, r.querier(ctx), productionFinishedLinesTable, docID)
}

// ListRecent returns the most recent productions with both line sets,
// newest first.
func (r *ProductionRepo) ListRecent(ctx context.Context, limit int) ([]*production.Production, error) {
	docs, err := r.listRecentHeaders(ctx, limit)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		rawLines, err := r.GetRawLines(ctx, doc.ID)
		if err != nil {
			return nil, fmt.Errorf("raw lines for %s: %w", doc.Code, err)
		}
		finishedLines, err := r.GetFinishedLines(ctx, doc.ID)
		if err != nil {
			return nil, fmt.Errorf("finished lines for %s: %w", doc.Code, err)
		}
		doc.RawLines = rawLines
		doc.FinishedLines = finishedLines
	}
	return docs, nil
}
