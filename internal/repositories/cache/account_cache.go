package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/gl_posting_engine/internal/apperrors"
	"github.com/SscSPs/gl_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_posting_engine/internal/core/ports/repositories"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
)

const keyPrefix = "gl:account:"

// RedisAccountCache caches account identity by code as JSON values with a
// TTL. Balances are never cached.
type RedisAccountCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisAccountCache returns a cache backed by client.
func NewRedisAccountCache(client *redis.Client, ttl time.Duration) *RedisAccountCache {
	return &RedisAccountCache{client: client, ttl: ttl}
}

var _ portsrepo.AccountCache = (*RedisAccountCache)(nil)

// cachedAccount is the cached form of an account, without its balance.
type cachedAccount struct {
	AccountID   string             `json:"accountID"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"accountType"`
	IsActive    bool               `json:"isActive"`
}

func accountKey(code string) string {
	return keyPrefix + code
}

func (c *RedisAccountCache) GetAccount(ctx context.Context, code string) (*domain.Account, error) {
	data, err := c.client.Get(ctx, accountKey(code)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read account %s from cache: %w", code, err)
	}

	var cached cachedAccount
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("failed to decode cached account %s: %w", code, err)
	}
	return &domain.Account{
		AccountID:   cached.AccountID,
		Code:        cached.Code,
		Name:        cached.Name,
		AccountType: cached.AccountType,
		Balance:     decimal.Zero,
		IsActive:    cached.IsActive,
	}, nil
}

func (c *RedisAccountCache) SetAccount(ctx context.Context, account domain.Account) error {
	data, err := json.Marshal(cachedAccount{
		AccountID:   account.AccountID,
		Code:        account.Code,
		Name:        account.Name,
		AccountType: account.AccountType,
		IsActive:    account.IsActive,
	})
	if err != nil {
		return fmt.Errorf("failed to encode account %s: %w", account.Code, err)
	}
	if err := c.client.Set(ctx, accountKey(account.Code), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache account %s: %w", account.Code, err)
	}
	return nil
}

func (c *RedisAccountCache) InvalidateAccounts(ctx context.Context, codes ...string) error {
	if len(codes) == 0 {
		return nil
	}
	keys := make([]string, len(codes))
	for i, code := range codes {
		keys[i] = accountKey(code)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached accounts %v: %w", codes, err)
	}
	return nil
}
