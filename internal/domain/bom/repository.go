package bom

import (
	"context"

	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
)

// Repository defines read access to BOM headers and lines.
type Repository interface {
	// FindExact searches for a header whose product code equals code, or
	// whose product name case-insensitively equals code or name.
	// Returns the header with lines loaded, or (nil, nil) when absent.
	FindExact(ctx context.Context, code, name string) (*Header, error)

	// ListHeaders returns every header without lines, in stable scan order.
	ListHeaders(ctx context.Context) ([]*Header, error)

	// GetLines loads the lines of one header, ordered by component name.
	GetLines(ctx context.Context, headerID id.ID) ([]Line, error)
}
