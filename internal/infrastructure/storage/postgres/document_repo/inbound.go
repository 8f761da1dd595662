package document_repo

import (
	"context"
	"fmt"

	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/inbound"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/storage/postgres"
)

const (
	inboundsTable     = "inbounds"
	inboundLinesTable = "inbound_lines"
)

// InboundRepo implements inbound.Repository.
type InboundRepo struct {
	*BaseDocumentRepo[inbound.Inbound]
}

var _ inbound.Repository = (*InboundRepo)(nil)

// NewInboundRepo creates a new inbound repository.
func NewInboundRepo(txManager *postgres.TxManager) *InboundRepo {
	return &InboundRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[inbound.Inbound](
			txManager, inboundsTable, "inbound",
		),
	}
}

// SaveLines replaces the document's lines.
func (r *InboundRepo) SaveLines(ctx context.Context, docID id.ID, lines []documents.Line) error {
	return replaceLines(ctx, r.querier(ctx), inboundLinesTable, docID, lines)
}

// GetLines retrieves the document's lines in line order.
func (r *InboundRepo) GetLines(ctx context.Context, docID id.ID) ([]documents.Line, error) {
	return selectLines[documents.Line](ctx, r.querier(ctx), inboundLinesTable, docID)
}

// ListRecent returns the most recent receipts with lines, newest first.
func (r *InboundRepo) ListRecent(ctx context.Context, limit int) ([]*inbound.Inbound, error) {
	docs, err := r.listRecentHeaders(ctx, limit)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		lines, err := r.GetLines(ctx, doc.ID)
		if err != nil {
			return nil, fmt.Errorf("lines for %s: %w", doc.Code, err)
		}
		doc.Lines = lines
	}
	return docs, nil
}
