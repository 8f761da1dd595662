package inbound

import (
	"context"
	"time"

	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents"
)

// Repository defines persistence for inbound documents.
type Repository interface {
	// Create inserts the document header.
	Create(ctx context.Context, doc *Inbound) error

	// SaveLines inserts the document's lines.
	SaveLines(ctx context.Context, docID id.ID, lines []documents.Line) error

	// GetByID retrieves a document header without lines.
	GetByID(ctx context.Context, docID id.ID) (*Inbound, error)

	// GetLines retrieves the lines of a document.
	GetLines(ctx context.Context, docID id.ID) ([]documents.Line, error)

	// CountByDateRange counts documents whose date falls in [from, to).
	// Runs inside the caller's transaction; the transaction code sequence
	// is derived from this count.
	CountByDateRange(ctx context.Context, from, to time.Time) (int64, error)

	// ListRecent returns the most recent documents with lines, newest first.
	ListRecent(ctx context.Context, limit int) ([]*Inbound, error)
}
