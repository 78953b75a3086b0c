package services

import (
	"context"

	"github.com/SscSPs/gl_posting_engine/internal/core/domain"
	"github.com/SscSPs/gl_posting_engine/internal/dto"
)

// GLProducerSvc defines the operations business-event producers call.
// Each returns the GL transaction id, or "" with a nil error when a
// best-effort posting failed.
type GLProducerSvc interface {
	CreateAndPostTransaction(ctx context.Context, params dto.PostTransactionParams) (string, error)
	CreateCommissionGLEntries(ctx context.Context, params dto.CommissionParams) (string, error)
	CreateCommissionPaymentGLEntries(ctx context.Context, params dto.CommissionPaymentParams) (string, error)
	CreateCommissionReversalGLEntries(ctx context.Context, params dto.CommissionReversalParams) (string, error)
	CreatePaidCommissionReversalGLEntries(ctx context.Context, params dto.CommissionReversalParams) (string, error)
	CreateExpenseGLEntries(ctx context.Context, params dto.ExpenseParams) (string, error)
	CreateMoMoGLEntries(ctx context.Context, params dto.MoMoParams) (string, error)

	// PostEvent is the single dispatch point behind the typed producers.
	PostEvent(ctx context.Context, ev domain.Event, bestEffort bool) (string, error)
}

// GLLedgerSvc defines the read side and state transitions exposed to producers.
type GLLedgerSvc interface {
	// GetTransaction returns a header together with its entries.
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)
	PostPendingTransaction(ctx context.Context, transactionID, actor string) (string, error)
	ReverseTransaction(ctx context.Context, transactionID, reason, actor string) (string, error)
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, code, actor string) error
}

// GLSvcFacade combines all GL service interfaces
type GLSvcFacade interface {
	GLProducerSvc
	GLLedgerSvc
}
