package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/gl_posting_engine/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data
type AccountReader interface {
	// FindAccountByCode retrieves an account by its unique code.
	// Returns apperrors.ErrNotFound when no account carries the code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data
type AccountWriter interface {
	// InsertAccountIfAbsent persists account unless its code is already taken,
	// and returns the stored row in both cases. Concurrent callers racing on the
	// same code all observe the single winning row.
	InsertAccountIfAbsent(ctx context.Context, account domain.Account) (*domain.Account, error)

	// DeactivateAccount marks the account with the given code as inactive.
	DeactivateAccount(ctx context.Context, code string, userID string, now time.Time) error
}

// AccountStore combines all account-related repository interfaces
type AccountStore interface {
	AccountReader
	AccountWriter
}

// AccountCache is an optional read-through cache of accounts keyed by code.
// It holds identity and status only; returned accounts carry a zero balance.
type AccountCache interface {
	// GetAccount returns apperrors.ErrNotFound on a cache miss.
	GetAccount(ctx context.Context, code string) (*domain.Account, error)
	SetAccount(ctx context.Context, account domain.Account) error
	InvalidateAccounts(ctx context.Context, codes ...string) error
}
