package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/gl_posting_engine/internal/apperrors"
	"github.com/SscSPs/gl_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gl_posting_engine/internal/core/ports/services"
	"github.com/SscSPs/gl_posting_engine/internal/dto"
	"github.com/go-playground/validator/v10"
)

// glService implements the GLSvcFacade interface
type glService struct {
	BaseService
	registry        portssvc.AccountRegistrySvc
	builder         portssvc.JournalBuilderSvc
	engine          portssvc.PostingEngineSvc
	reversals       portssvc.ReversalEngineSvc
	transactionRepo portsrepo.TransactionReader
	validate        *validator.Validate

	bestEffortDefault bool
}

// GLServiceOption is a functional option for configuring the GL service
type GLServiceOption func(*glService)

// WithBestEffortDefault sets the failure policy used when params leave BestEffort unset.
func WithBestEffortDefault(bestEffort bool) GLServiceOption {
	return func(s *glService) {
		s.bestEffortDefault = bestEffort
	}
}

// NewGLService creates the producer-facing GL service
func NewGLService(
	registry portssvc.AccountRegistrySvc,
	builder portssvc.JournalBuilderSvc,
	engine portssvc.PostingEngineSvc,
	reversals portssvc.ReversalEngineSvc,
	transactionRepo portsrepo.TransactionReader,
	options ...GLServiceOption,
) portssvc.GLSvcFacade {
	s := &glService{
		BaseService:     newBaseService(),
		registry:        registry,
		builder:         builder,
		engine:          engine,
		reversals:       reversals,
		transactionRepo: transactionRepo,
		validate:        dto.NewValidator(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portssvc.GLSvcFacade = (*glService)(nil)

func (s *glService) CreateAndPostTransaction(ctx context.Context, params dto.PostTransactionParams) (string, error) {
	if err := s.validateParams(params); err != nil {
		return "", err
	}
	bestEffort := s.bestEffort(params.BestEffort)

	entries := make([]domain.Entry, len(params.Entries))
	for i, p := range params.Entries {
		acc, err := s.entryAccount(ctx, p)
		if err != nil {
			return s.applyPolicy(ctx, params.SourceModule, params.SourceTransactionID, "", err, bestEffort)
		}
		entries[i] = domain.Entry{
			AccountID:   acc.AccountID,
			AccountCode: acc.Code,
			Debit:       p.Debit,
			Credit:      p.Credit,
			Description: p.Description,
		}
	}

	autoPost := params.AutoPost == nil || *params.AutoPost
	req := domain.PostingRequest{
		Date:                  params.Date,
		SourceModule:          params.SourceModule,
		SourceTransactionID:   params.SourceTransactionID,
		SourceTransactionType: params.SourceTransactionType,
		Description:           params.Description,
		Entries:               entries,
		CreatedBy:             params.CreatedBy,
		BranchID:              params.BranchID,
		Metadata:              params.Metadata,
	}
	id, err := s.engine.CreateAndPostTransaction(ctx, req, autoPost)
	return s.applyPolicy(ctx, params.SourceModule, params.SourceTransactionID, id, err, bestEffort)
}

func (s *glService) CreateCommissionGLEntries(ctx context.Context, params dto.CommissionParams) (string, error) {
	if err := s.validateParams(params); err != nil {
		return "", err
	}
	return s.PostEvent(ctx, params.ToEvent(), s.bestEffort(params.BestEffort))
}

func (s *glService) CreateCommissionPaymentGLEntries(ctx context.Context, params dto.CommissionPaymentParams) (string, error) {
	if err := s.validateParams(params); err != nil {
		return "", err
	}
	return s.PostEvent(ctx, params.ToEvent(), s.bestEffort(params.BestEffort))
}

func (s *glService) CreateCommissionReversalGLEntries(ctx context.Context, params dto.CommissionReversalParams) (string, error) {
	if err := s.validateParams(params); err != nil {
		return "", err
	}
	return s.PostEvent(ctx, params.ToPendingEvent(), s.bestEffort(params.BestEffort))
}

func (s *glService) CreatePaidCommissionReversalGLEntries(ctx context.Context, params dto.CommissionReversalParams) (string, error) {
	if err := s.validateParams(params); err != nil {
		return "", err
	}
	return s.PostEvent(ctx, params.ToPaidEvent(), s.bestEffort(params.BestEffort))
}

func (s *glService) CreateExpenseGLEntries(ctx context.Context, params dto.ExpenseParams) (string, error) {
	if err := s.validateParams(params); err != nil {
		return "", err
	}
	return s.PostEvent(ctx, params.ToEvent(), s.bestEffort(params.BestEffort))
}

func (s *glService) CreateMoMoGLEntries(ctx context.Context, params dto.MoMoParams) (string, error) {
	if err := s.validateParams(params); err != nil {
		return "", err
	}
	return s.PostEvent(ctx, params.ToEvent(), s.bestEffort(params.BestEffort))
}

func (s *glService) PostEvent(ctx context.Context, ev domain.Event, bestEffort bool) (string, error) {
	if ev == nil {
		return "", fmt.Errorf("%w: event is required", apperrors.ErrValidation)
	}

	var (
		id  string
		err error
	)
	if rev, ok := ev.(domain.ReversalEvent); ok {
		id, err = s.reversals.Reverse(ctx, rev, rev.ReversalReason())
	} else {
		var req domain.PostingRequest
		req, err = s.builder.Build(ctx, ev)
		if err == nil {
			id, err = s.engine.CreateAndPostTransaction(ctx, req, true)
		}
	}
	return s.applyPolicy(ctx, ev.SourceModule(), ev.SourceTransactionID(), id, err, bestEffort)
}

func (s *glService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	entries, err := s.transactionRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	txn.Entries = entries
	return txn, nil
}

func (s *glService) PostPendingTransaction(ctx context.Context, transactionID, actor string) (string, error) {
	return s.engine.PostPendingTransaction(ctx, transactionID, actor)
}

func (s *glService) ReverseTransaction(ctx context.Context, transactionID, reason, actor string) (string, error) {
	return s.reversals.ReverseTransaction(ctx, transactionID, reason, actor)
}

func (s *glService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	return s.registry.GetAccountByCode(ctx, code)
}

func (s *glService) DeactivateAccount(ctx context.Context, code, actor string) error {
	return s.registry.DeactivateAccount(ctx, code, actor)
}

// entryAccount provisions the account when the caller supplied its defaults,
// and otherwise requires it to exist already.
func (s *glService) entryAccount(ctx context.Context, p dto.EntryParams) (*domain.Account, error) {
	var (
		acc *domain.Account
		err error
	)
	if p.AccountName != "" && p.AccountType != "" {
		acc, err = s.registry.GetOrCreateAccount(ctx, p.AccountCode, p.AccountName, p.AccountType)
	} else {
		acc, err = s.registry.GetAccountByCode(ctx, p.AccountCode)
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown account code %s", apperrors.ErrValidation, p.AccountCode)
		}
	}
	if err != nil {
		return nil, err
	}
	if !acc.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, acc.Code)
	}
	return acc, nil
}

// applyPolicy swallows err when bestEffort is set.
func (s *glService) applyPolicy(ctx context.Context, sourceModule, sourceID, id string, err error, bestEffort bool) (string, error) {
	if err == nil {
		return id, nil
	}
	if !bestEffort {
		return "", err
	}
	s.LogWarn(ctx, err, "GL posting failed, continuing (best effort)",
		slog.String("source_module", sourceModule),
		slog.String("source_transaction_id", sourceID))
	return "", nil
}

func (s *glService) bestEffort(flag *bool) bool {
	if flag == nil {
		return s.bestEffortDefault
	}
	return *flag
}

func (s *glService) validateParams(params any) error {
	if err := s.validate.Struct(params); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return nil
}
