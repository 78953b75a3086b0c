package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/gl_posting_engine/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockAccountStore is a mock type for the AccountStore interface
type MockAccountStore struct {
	mock.Mock
}

func (m *MockAccountStore) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountStore) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountStore) InsertAccountIfAbsent(ctx context.Context, account domain.Account) (*domain.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountStore) DeactivateAccount(ctx context.Context, code string, userID string, now time.Time) error {
	args := m.Called(ctx, code, userID, now)
	return args.Error(0)
}

// MockAccountCache is a mock type for the AccountCache interface
type MockAccountCache struct {
	mock.Mock
}

func (m *MockAccountCache) GetAccount(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountCache) SetAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountCache) InvalidateAccounts(ctx context.Context, codes ...string) error {
	args := m.Called(ctx, codes)
	return args.Error(0)
}
