package services

import (
	"context"

	"github.com/SscSPs/gl_posting_engine/internal/core/domain"
)

// AccountRegistrySvc maps stable account codes to live account records.
type AccountRegistrySvc interface {
	// GetOrCreateAccount returns the account with code, provisioning it with
	// name and accountType when absent. On a hit the stored name and type win.
	// The balance is not authoritative when served from the account cache.
	GetOrCreateAccount(ctx context.Context, code, name string, accountType domain.AccountType) (*domain.Account, error)

	// GetAccountByCode reads the store, so the balance is current. It returns
	// apperrors.ErrNotFound for unknown codes.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// DeactivateAccount prevents new postings to the account. History and balance are kept.
	DeactivateAccount(ctx context.Context, code, actor string) error
}

// JournalBuilderSvc turns one business event into a balanced posting request.
// It resolves accounts but persists nothing.
type JournalBuilderSvc interface {
	Build(ctx context.Context, ev domain.Event) (domain.PostingRequest, error)
}

// PostingEngineSvc is the only writer of transactions, entries and balances.
type PostingEngineSvc interface {
	// CreateAndPostTransaction validates, deduplicates and persists req. It returns
	// the id of the existing transaction when the source event was already posted.
	CreateAndPostTransaction(ctx context.Context, req domain.PostingRequest, autoPost bool) (string, error)

	// PostPendingTransaction moves a pending transaction to posted and applies its balances.
	PostPendingTransaction(ctx context.Context, transactionID, actor string) (string, error)
}

// ReversalEngineSvc posts compensating transactions.
type ReversalEngineSvc interface {
	// Reverse posts the reversal described by ev. An empty reason falls back to ev.ReversalReason().
	Reverse(ctx context.Context, ev domain.ReversalEvent, reason string) (string, error)

	// ReverseTransaction posts the swapped entries of a stored, posted transaction.
	ReverseTransaction(ctx context.Context, transactionID, reason, actor string) (string, error)
}
