package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager runs a unit of work atomically.
// Repositories pick the transaction up from the context passed to fn.
type TransactionManager interface {
	// ExecTx executes fn within a transaction, rolling back if it returns an error
	ExecTx(ctx context.Context, fn TxFn) error
}
