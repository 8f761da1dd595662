package production

import (
	"context"
	"time"

	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents"
)

// Repository defines persistence for production documents.
type Repository interface {
	Create(ctx context.Context, doc *Production) error
	SaveRawLines(ctx context.Context, docID id.ID, lines []RawLine) error
	SaveFinishedLines(ctx context.Context, docID id.ID, lines []documents.Line) error
	GetByID(ctx context.Context, docID id.ID) (*Production, error)
	GetRawLines(ctx context.Context, docID id.ID) ([]RawLine, error)
	GetFinishedLines(ctx context.Context, docID id.ID) ([]documents.Line, error)

	// CountByDateRange counts documents whose date falls in [from, to).
	CountByDateRange(ctx context.Context, from, to time.Time) (int64, error)

	// ListRecent returns the most recent documents with both line sets,
	// newest first.
	ListRecent(ctx context.Context, limit int) ([]*Production, error)
}
