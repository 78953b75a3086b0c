package repositories

import (
	"context"
)

// TransactionManager runs a unit of work against the store.
type TransactionManager interface {
	// RunInTx begins a database transaction, calls fn with a writer bound to
	// it, and commits when fn returns nil. Any error rolls the work back and
	// is returned unchanged.
	RunInTx(ctx context.Context, fn func(ctx context.Context, w LedgerWriter) error) error
}
