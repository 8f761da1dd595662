package outbound

import (
	"context"
	"time"

	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents"
)

// Repository defines persistence for outbound documents.
type Repository interface {
	Create(ctx context.Context, doc *Outbound) error
	SaveLines(ctx context.Context, docID id.ID, lines []documents.Line) error
	GetByID(ctx context.Context, docID id.ID) (*Outbound, error)
	GetLines(ctx context.Context, docID id.ID) ([]documents.Line, error)

	// CountByDateRange counts documents whose date falls in [from, to).
	CountByDateRange(ctx context.Context, from, to time.Time) (int64, error)

	// ListRecent returns the most recent documents with lines, newest first.
	ListRecent(ctx context.Context, limit int) ([]*Outbound, error)
}
