package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Clawwo/IasProductama-sub000/internal/domain/catalog"
)

// CatalogStore implements catalog.Store over a map keyed by code.
type CatalogStore struct {
	kind    catalog.Kind
	entries map[string]*catalog.Entry
}

var _ catalog.Store = (*CatalogStore)(nil)

// NewCatalogStore creates an empty in-memory catalog.
func NewCatalogStore(kind catalog.Kind) *CatalogStore {
	return &CatalogStore{
		kind:    kind,
		entries: make(map[string]*catalog.Entry),
	}
}

// Kind identifies which catalog this store backs.
func (s *CatalogStore) Kind() catalog.Kind {
	return s.kind
}

// Get retrieves an entry by code. Returns (nil, nil) when absent.
func (s *CatalogStore) Get(ctx context.Context, code string) (*catalog.Entry, error) {
	entry, ok := s.entries[code]
	if !ok {
		return nil, nil
	}
	clone := *entry
	return &clone, nil
}

// GetForUpdate behaves like Get; the transaction mutex already serializes
// writers.
func (s *CatalogStore) GetForUpdate(ctx context.Context, code string) (*catalog.Entry, error) {
	return s.Get(ctx, code)
}

// Create inserts a new entry.
func (s *CatalogStore) Create(ctx context.Context, entry *catalog.Entry) error {
	if _, exists := s.entries[entry.Code]; exists {
		return fmt.Errorf("duplicate code %q", entry.Code)
	}
	now := time.Now().UTC()
	clone := *entry
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now
	s.entries[entry.Code] = &clone
	return nil
}

// AddStock applies a signed stock delta and overwrites supplied metadata
// fields.
func (s *CatalogStore) AddStock(ctx context.Context, code string, delta int, meta catalog.Metadata) error {
	entry, ok := s.entries[code]
	if !ok {
		return fmt.Errorf("code %q not found", code)
	}
	entry.Stock += delta
	meta.Apply(entry)
	entry.UpdatedAt = time.Now().UTC()
	return nil
}

// List returns all entries ordered by code.
func (s *CatalogStore) List(ctx context.Context) ([]*catalog.Entry, error) {
	out := make([]*catalog.Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		clone := *entry
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// snapshot copies the full entry map.
func (s *CatalogStore) snapshot() any {
	state := make(map[string]*catalog.Entry, len(s.entries))
	for code, entry := range s.entries {
		clone := *entry
		state[code] = &clone
	}
	return state
}

// restore replaces the entry map with a snapshot.
func (s *CatalogStore) restore(state any) {
	s.entries = state.(map[string]*catalog.Entry)
}
