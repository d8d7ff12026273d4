package mongodb

import (
	"context"
	"fmt"

	"cipherstudio/internal/domain/repositories"

	"go.mongodb.org/mongo-driver/mongo"
)

// TransactionManager implements repositories.TransactionManager.
// Multi-document transactions need a replica set; when disabled, fn runs
// directly against the database without atomicity.
type TransactionManager struct {
	client  *mongo.Client
	enabled bool
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(client *mongo.Client, enabled bool) repositories.TransactionManager {
	return &TransactionManager{client: client, enabled: enabled}
}

// ExecTx executes fn inside a session transaction
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if !tm.enabled || mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	session, err := tm.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	// The session context carries the transaction into every repository call
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
