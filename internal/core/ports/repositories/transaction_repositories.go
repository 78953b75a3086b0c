package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/gl_posting_engine/internal/core/domain"
)

// TransactionReader defines read operations for journal headers and their entries
type TransactionReader interface {
	// FindTransactionBySource retrieves the transaction posted for a business event.
	// Returns apperrors.ErrNotFound when the event has not been posted.
	FindTransactionBySource(ctx context.Context, sourceModule, sourceTransactionID string) (*domain.Transaction, error)

	// FindTransactionByID retrieves a transaction header by its identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindEntriesByTransactionID retrieves all entries of one transaction.
	FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.Entry, error)
}

// TransactionStore is the read side of the ledger.
type TransactionStore interface {
	TransactionReader
}

// LedgerWriter is the write side of the ledger. It is only reachable inside a
// unit of work started by TransactionManager.RunInTx.
type LedgerWriter interface {
	// InsertTransaction persists a header. Returns apperrors.ErrDuplicateSourceEvent
	// when the (source module, source transaction id) pair is already taken.
	InsertTransaction(ctx context.Context, txn domain.Transaction) error

	// InsertEntries persists entries that already carry their transaction id.
	InsertEntries(ctx context.Context, entries []domain.Entry) error

	// ApplyBalanceDeltas increments account balances at the storage layer, in the given order.
	ApplyBalanceDeltas(ctx context.Context, deltas []domain.BalanceDelta, userID string, now time.Time) error

	// LockTransaction selects a header for update.
	LockTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// UpdateTransactionStatus changes the status of a header.
	UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, userID string, now time.Time) error
}
