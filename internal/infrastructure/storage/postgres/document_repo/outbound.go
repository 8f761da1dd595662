package document_repo

import (
	"context"
	"fmt"

	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/outbound"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/storage/postgres"
)

const (
	outboundsTable     = "outbounds"
	outboundLinesTable = "outbound_lines"
)

// OutboundRepo implements outbound.Repository.
type OutboundRepo struct {
	*BaseDocumentRepo[outbound.Outbound]
}

var _ outbound.Repository = (*OutboundRepo)(nil)

// NewOutboundRepo creates a new outbound repository.
func NewOutboundRepo(txManager *postgres.TxManager) *OutboundRepo {
	return &OutboundRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[outbound.Outbound](
			txManager, outboundsTable, "outbound",
		),
	}
}

// SaveLines replaces the document's lines.
func (r *OutboundRepo) SaveLines(ctx context.Context, docID id.ID, lines []documents.Line) error {
	return replaceLines(ctx, r.querier(ctx), outboundLinesTable, docID, lines)
}

// GetLines retrieves the document's lines in line order.
func (r *OutboundRepo) GetLines(ctx context.Context, docID id.ID) ([]documents.Line, error) {
	return selectLines[documents.Line](ctx, r.querier(ctx), outboundLinesTable, docID)
}

// ListRecent returns the most recent issuances with lines, newest first.
func (r *OutboundRepo) ListRecent(ctx context.Context, limit int) ([]*outbound.Outbound, error) {
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
