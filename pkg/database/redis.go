package database

import (
	"context"
	"log/slog"

	"github.com/go-redis/redis/v8"
)

// RedisOptions configures NewRedisClient.
type RedisOptions struct {
	Address  string
	Password string
	DB       int
}

// NewRedisClient connects to Redis. It returns nil when no address is
// configured or the server does not answer, and the caller runs without a
// cache.
func NewRedisClient(ctx context.Context, opts RedisOptions) *redis.Client {
	if opts.Address == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.WarnContext(ctx, "Redis connection failed, continuing without account cache",
			slog.String("address", opts.Address), slog.String("error", err.Error()))
		_ = rdb.Close()
		return nil
	}

	slog.InfoContext(ctx, "Redis connection established", slog.String("address", opts.Address))
	return rdb
}
