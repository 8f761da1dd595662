package catalog

import (
	"context"
)

// Store is the persistence contract for one stock catalog.
// Implementations live in infrastructure/storage.
type Store interface {
	// Kind identifies which catalog this store backs.
	Kind() Kind

	// Get retrieves an entry by code. Returns (nil, nil) when absent.
	Get(ctx context.Context, code string) (*Entry, error)

	// GetForUpdate retrieves an entry with a row lock for stock control.
	// Returns (nil, nil) when absent.
	GetForUpdate(ctx context.Context, code string) (*Entry, error)

	// Create inserts a new entry.
	Create(ctx context.Context, entry *Entry) error

	// AddStock applies a signed stock delta and overwrites the supplied
	// metadata fields. The caller is responsible for the non-negative
	// stock check; implementations may additionally enforce it with a
	// storage-level constraint.
	AddStock(ctx context.Context, code string, delta int, meta Metadata) error

	// List returns all entries ordered by code.
	List(ctx context.Context) ([]*Entry, error)
}
