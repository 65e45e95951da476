package repositories

import (
	"context"
)

// TransactionManager runs units of work inside a single database transaction.
type TransactionManager interface {
	// RunInTransaction executes fn with a context carrying an open transaction.
	// Repositories called with that context join the transaction. The transaction
	// is committed when fn returns nil and rolled back otherwise.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
