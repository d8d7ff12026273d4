package memory

import (
	"context"

	"cipherstudio/internal/domain/repositories"
)

// TransactionManager implements repositories.TransactionManager for the
// in-memory store. Transactions are serialized; a failed transaction restores
// the snapshot taken when it began.
type TransactionManager struct {
	store *Store
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(store *Store) repositories.TransactionManager {
	return &TransactionManager{store: store}
}

// ExecTx executes fn and rolls the store back if it returns an error
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	tm.store.txMu.Lock()
	defer tm.store.txMu.Unlock()

	snapshot := tm.store.snapshot()
	if err := fn(ctx); err != nil {
		tm.store.restore(snapshot)
		return err
	}
	return nil
}
