package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/scentlab/crm-backend/internal/infrastructure/config"
)

// Factory creates caches backed by Redis, falling back to in-memory
// implementations when Redis is unreachable.
type Factory struct {
	redisConfig config.RedisConfig
	logger      *zap.Logger
	client      *redis.Client
}

// NewFactory creates a cache factory
func NewFactory(cfg config.RedisConfig, logger *zap.Logger) *Factory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Factory{redisConfig: cfg, logger: logger}
}

// Connect dials Redis and keeps the client for subsequent cache creation.
// Returns an error when Redis is unreachable; callers may still use the
// in-memory creation paths.
func (f *Factory) Connect() error {
	client := redis.NewClient(&redis.Options{
		Addr:     f.redisConfig.Addr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	f.client = client
	return nil
}

// Client returns the shared Redis client, or nil when not connected
func (f *Factory) Client() *redis.Client {
	return f.client
}

// Close releases the Redis client if one was created
func (f *Factory) Close() error {
	if f.client == nil {
		return nil
	}
	return f.client.Close()
}

// PermissionCache returns a Redis-backed permission cache when connected,
// otherwise an in-memory one with a warning.
func (f *Factory) PermissionCache(ttl time.Duration) PermissionCache {
	if f.client != nil {
		return NewRedisPermissionCache(f.client,
			WithPermissionTTL(ttl),
			WithPermissionLogger(f.logger),
		)
	}
	f.logger.Warn("Redis unavailable, using in-memory permission cache. " +
		"Role edits on other instances will not be seen until the TTL lapses.")
	return NewInMemoryPermissionCache(ttl)
}

// TokenBlacklist returns a Redis-backed blacklist when connected,
// otherwise an in-memory one with a warning.
func (f *Factory) TokenBlacklist() TokenBlacklist {
	if f.client != nil {
		return NewRedisTokenBlacklist(f.client)
	}
	f.logger.Warn("Redis unavailable, using in-memory token blacklist. " +
		"Logout will not propagate across instances.")
	return NewInMemoryTokenBlacklist()
}
