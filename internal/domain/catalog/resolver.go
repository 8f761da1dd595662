package catalog

import (
	"context"
	"fmt"

	"github.com/Clawwo/IasProductama-sub000/internal/core/apperror"
)

// Resolver answers which catalog owns a code and applies stock deltas with
// uniform semantics regardless of the owning catalog.
//
// Resolution precedence is fixed: Finished Items, then Raw Materials, then
// Catalog Products. A code should live in exactly one catalog; the precedence
// defines which one wins if data is dirty.
//
// All mutating methods expect to run inside a transaction managed by the
// caller; they take row locks but never commit.
type Resolver struct {
	stores []Store
	byKind map[Kind]Store
}

// NewResolver creates a resolver over the three catalog stores.
func NewResolver(items, rawMaterials, products Store) *Resolver {
	stores := []Store{items, rawMaterials, products}
	byKind := make(map[Kind]Store, len(stores))
	for _, s := range stores {
		byKind[s.Kind()] = s
	}
	return &Resolver{stores: stores, byKind: byKind}
}

// StoreFor returns the store backing the given catalog.
func (r *Resolver) StoreFor(kind Kind) Store {
	return r.byKind[kind]
}

// Resolve finds the catalog owning code, in precedence order.
// Returns (nil, nil, nil) when no catalog owns it.
func (r *Resolver) Resolve(ctx context.Context, code string) (Store, *Entry, error) {
	for _, s := range r.stores {
		entry, err := s.Get(ctx, code)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve %s in %s: %w", code, s.Kind(), err)
		}
		if entry != nil {
			return s, entry, nil
		}
	}
	return nil, nil, nil
}

// resolveForUpdate is Resolve with row locks, used by the decrement path.
func (r *Resolver) resolveForUpdate(ctx context.Context, code string) (Store, *Entry, error) {
	for _, s := range r.stores {
		entry, err := s.GetForUpdate(ctx, code)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve %s in %s: %w", code, s.Kind(), err)
		}
		if entry != nil {
			return s, entry, nil
		}
	}
	return nil, nil, nil
}

// Increment upserts qty into the given catalog: absent codes are created with
// stock = qty and the supplied metadata; present codes get qty added and any
// supplied metadata fields overwritten. Receipts always succeed.
func (r *Resolver) Increment(ctx context.Context, kind Kind, code string, qty int, meta Metadata) error {
	store := r.StoreFor(kind)

	entry, err := store.GetForUpdate(ctx, code)
	if err != nil {
		return fmt.Errorf("get %s for increment: %w", code, err)
	}

	if entry == nil {
		created := &Entry{Code: code, Stock: qty}
		meta.Apply(created)
		if err := store.Create(ctx, created); err != nil {
			return fmt.Errorf("create %s in %s: %w", code, kind, err)
		}
		return nil
	}

	if err := store.AddStock(ctx, code, qty, meta); err != nil {
		return fmt.Errorf("add stock to %s: %w", code, err)
	}
	return nil
}

// Decrement subtracts qty from code in the given catalog.
// Fails with UnknownCode when the catalog does not contain the code and
// InsufficientStock when the current stock is below qty. Metadata supplied
// on the line still overwrites the entry's descriptive fields.
func (r *Resolver) Decrement(ctx context.Context, kind Kind, code string, qty int, meta Metadata) error {
	store := r.StoreFor(kind)

	entry, err := store.GetForUpdate(ctx, code)
	if err != nil {
		return fmt.Errorf("get %s for decrement: %w", code, err)
	}
	if entry == nil {
		return apperror.NewUnknownCode(code)
	}
	return r.subtract(ctx, store, entry, qty, meta)
}

// DecrementResolved subtracts qty from whichever catalog owns code, searched
// in precedence order. Used by the outbound processor, which takes codes
// without a declared source catalog.
func (r *Resolver) DecrementResolved(ctx context.Context, code string, qty int, meta Metadata) error {
	store, entry, err := r.resolveForUpdate(ctx, code)
	if err != nil {
		return err
	}
	if entry == nil {
		return apperror.NewUnknownCode(code)
	}
	return r.subtract(ctx, store, entry, qty, meta)
}

func (r *Resolver) subtract(ctx context.Context, store Store, entry *Entry, qty int, meta Metadata) error {
	if entry.Stock < qty {
		return apperror.NewInsufficientStock(entry.Code, qty, entry.Stock)
	}
	if err := store.AddStock(ctx, entry.Code, -qty, meta); err != nil {
		return fmt.Errorf("subtract stock from %s: %w", entry.Code, err)
	}
	return nil
}
