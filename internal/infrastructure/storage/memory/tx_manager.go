// Package memory provides in-memory implementations of the storage
// contracts. They back the service tests and keep the same transactional
// semantics as the PostgreSQL layer: a failing transaction body leaves no
// trace in any participating store.
package memory

import (
	"context"
	"sync"

	"github.com/Clawwo/IasProductama-sub000/internal/core/tx"
)

// snapshotter is implemented by every memory store that participates in
// transactions.
type snapshotter interface {
	snapshot() any
	restore(state any)
}

// TxManager serializes transactions with a single mutex and rolls back by
// restoring store snapshots taken at transaction start.
type TxManager struct {
	mu     sync.Mutex
	stores []snapshotter
}

var _ tx.Manager = (*TxManager)(nil)

// NewTxManager creates a transaction manager with no participating stores.
func NewTxManager() *TxManager {
	return &TxManager{}
}

// Register adds a store to the transaction scope. Call during setup, before
// any transaction runs.
func (m *TxManager) Register(stores ...snapshotter) {
	m.stores = append(m.stores, stores...)
}

// RunInTransaction executes fn, restoring all registered stores on error.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	states := make([]any, len(m.stores))
	for i, s := range m.stores {
		states[i] = s.snapshot()
	}

	if err := fn(ctx); err != nil {
		for i, s := range m.stores {
			s.restore(states[i])
		}
		return err
	}
	return nil
}

// RunSerializable executes fn under the same mutex; the single lock already
// gives serializable behavior.
func (m *TxManager) RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.RunInTransaction(ctx, fn)
}
