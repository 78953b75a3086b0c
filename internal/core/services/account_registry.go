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
	"github.com/shopspring/decimal"
)

// accountRegistry implements the AccountRegistrySvc interface
type accountRegistry struct {
	BaseService
	accountRepo portsrepo.AccountStore
	cache       portsrepo.AccountCache
}

// RegistryOption is a functional option for configuring the account registry
type RegistryOption func(*accountRegistry)

// WithAccountCache puts a read-through cache in front of the account store.
func WithAccountCache(cache portsrepo.AccountCache) RegistryOption {
	return func(r *accountRegistry) {
		r.cache = cache
	}
}

// NewAccountRegistry creates a new account registry with the provided options
func NewAccountRegistry(repo portsrepo.AccountStore, options ...RegistryOption) portssvc.AccountRegistrySvc {
	r := &accountRegistry{
		BaseService: newBaseService(),
		accountRepo: repo,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

var _ portssvc.AccountRegistrySvc = (*accountRegistry)(nil)

func (r *accountRegistry) GetOrCreateAccount(ctx context.Context, code, name string, accountType domain.AccountType) (*domain.Account, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}

	if acc := r.fromCache(ctx, code); acc != nil {
		return acc, nil
	}

	acc, err := r.accountRepo.FindAccountByCode(ctx, code)
	if err == nil {
		r.toCache(ctx, *acc)
		return acc, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		r.LogError(ctx, err, "Failed to look up account", slog.String("code", code))
		return nil, &apperrors.AccountProvisioningError{Code: code, Err: err}
	}

	if !accountType.Valid() {
		return nil, &apperrors.AccountProvisioningError{
			Code: code,
			Err:  fmt.Errorf("%w: invalid account type '%s'", apperrors.ErrValidation, accountType),
		}
	}

	now := r.Now()
	candidate := domain.Account{
		AccountID:   r.NewID(),
		Code:        code,
		Name:        name,
		AccountType: accountType,
		Balance:     decimal.Zero,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "system",
			LastUpdatedAt: now,
			LastUpdatedBy: "system",
		},
	}

	acc, err = r.accountRepo.InsertAccountIfAbsent(ctx, candidate)
	if err != nil {
		r.LogError(ctx, err, "Failed to provision account", slog.String("code", code))
		return nil, &apperrors.AccountProvisioningError{Code: code, Err: err}
	}

	if acc.AccountID == candidate.AccountID {
		r.LogInfo(ctx, "Account provisioned",
			slog.String("code", code),
			slog.String("account_id", acc.AccountID),
			slog.String("account_type", string(accountType)))
	}
	r.toCache(ctx, *acc)
	return acc, nil
}

// GetAccountByCode always reads the store; the cache never serves balances.
func (r *accountRegistry) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	return r.accountRepo.FindAccountByCode(ctx, code)
}

func (r *accountRegistry) DeactivateAccount(ctx context.Context, code, actor string) error {
	if err := r.accountRepo.DeactivateAccount(ctx, code, actor, r.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			r.LogError(ctx, err, "Failed to deactivate account", slog.String("code", code))
		}
		return err
	}
	r.invalidate(ctx, code)
	r.LogInfo(ctx, "Account deactivated", slog.String("code", code), slog.String("actor", actor))
	return nil
}

// Cache failures never fail a lookup; the store stays authoritative.

func (r *accountRegistry) fromCache(ctx context.Context, code string) *domain.Account {
	if r.cache == nil {
		return nil
	}
	acc, err := r.cache.GetAccount(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			r.LogWarn(ctx, err, "Account cache read failed", slog.String("code", code))
		}
		return nil
	}
	return acc
}

func (r *accountRegistry) toCache(ctx context.Context, acc domain.Account) {
	if r.cache == nil {
		return
	}
	if err := r.cache.SetAccount(ctx, acc); err != nil {
		r.LogWarn(ctx, err, "Account cache write failed", slog.String("code", acc.Code))
	}
}

func (r *accountRegistry) invalidate(ctx context.Context, codes ...string) {
	if r.cache == nil || len(codes) == 0 {
		return
	}
	if err := r.cache.InvalidateAccounts(ctx, codes...); err != nil {
		r.LogWarn(ctx, err, "Account cache invalidation failed", slog.Any("codes", codes))
	}
}
