package rawissue

import (
	"context"
	"time"

	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
)

// Repository persists raw-material issues and their tracked lines.
type Repository interface {
	Create(ctx context.Context, doc *RawIssue) error
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	GetByID(ctx context.Context, docID id.ID) (*RawIssue, error)
	GetByCode(ctx context.Context, code string) (*RawIssue, error)
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	GetLine(ctx context.Context, docID, lineID id.ID) (*Line, error)

	// MarkLineReceived flips a single line to RECEIVED.
	MarkLineReceived(ctx context.Context, lineID id.ID, receivedAt time.Time, receivedBy *string) error
	// CountOutstanding returns the number of lines still OUT.
	CountOutstanding(ctx context.Context, docID id.ID) (int64, error)
	// Close marks the document RECEIVED once nothing remains outstanding.
	Close(ctx context.Context, docID id.ID, receivedAt time.Time) error

	// CountByDateRange counts documents whose date falls in [from, to).
	CountByDateRange(ctx context.Context, from, to time.Time) (int64, error)
	// ListRecent returns the most recent documents with lines, newest first.
	ListRecent(ctx context.Context, limit int) ([]*RawIssue, error)
}
