package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultPermissionTTL = 5 * time.Minute

// PermissionCache caches the resolved permission key set per role.
// Roles change rarely and are read on every authenticated request,
// so a short TTL plus explicit invalidation on role edits is enough.
type PermissionCache interface {
	Get(ctx context.Context, roleID uuid.UUID) ([]string, bool, error)
	Set(ctx context.Context, roleID uuid.UUID, keys []string) error
	Invalidate(ctx context.Context, roleID uuid.UUID) error
}

// RedisPermissionCache implements PermissionCache on Redis
type RedisPermissionCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// RedisPermissionCacheOption configures the cache
type RedisPermissionCacheOption func(*RedisPermissionCache)

// WithPermissionTTL overrides the default cache TTL
func WithPermissionTTL(ttl time.Duration) RedisPermissionCacheOption {
	return func(c *RedisPermissionCache) {
		c.ttl = ttl
	}
}

// WithPermissionLogger sets the cache logger
func WithPermissionLogger(logger *zap.Logger) RedisPermissionCacheOption {
	return func(c *RedisPermissionCache) {
		c.logger = logger
	}
}

// NewRedisPermissionCache creates a permission cache on an existing Redis client.
// The caller retains ownership of the client.
func NewRedisPermissionCache(client *redis.Client, opts ...RedisPermissionCacheOption) *RedisPermissionCache {
	cache := &RedisPermissionCache{
		client: client,
		ttl:    defaultPermissionTTL,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

func permissionCacheKey(roleID uuid.UUID) string {
	return fmt.Sprintf("perm:role:%s", roleID.String())
}

// Get returns the cached permission keys for a role, if present
func (c *RedisPermissionCache) Get(ctx context.Context, roleID uuid.UUID) ([]string, bool, error) {
	data, err := c.client.Get(ctx, permissionCacheKey(roleID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read permission cache: %w", err)
	}

	var keys []string
	if err := json.Unmarshal(data, &keys); err != nil {
		// Corrupt entry; drop it and treat as a miss
		c.logger.Warn("dropping corrupt permission cache entry",
			zap.String("role_id", roleID.String()),
			zap.Error(err),
		)
		_ = c.client.Del(ctx, permissionCacheKey(roleID)).Err()
		return nil, false, nil
	}

	return keys, true, nil
}

// Set stores the permission keys for a role with the configured TTL
func (c *RedisPermissionCache) Set(ctx context.Context, roleID uuid.UUID, keys []string) error {
	data, err := json.Marshal(keys)
	if err != nil {
		return fmt.Errorf("failed to marshal permission keys: %w", err)
	}
	if err := c.client.Set(ctx, permissionCacheKey(roleID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write permission cache: %w", err)
	}
	return nil
}

// Invalidate removes the cached entry for a role
func (c *RedisPermissionCache) Invalidate(ctx context.Context, roleID uuid.UUID) error {
	if err := c.client.Del(ctx, permissionCacheKey(roleID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate permission cache: %w", err)
	}
	return nil
}

// InMemoryPermissionCache implements PermissionCache with a local map.
// Suitable for single-instance deployments and tests.
type InMemoryPermissionCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[uuid.UUID]inMemoryPermissionEntry
}

type inMemoryPermissionEntry struct {
	keys      []string
	expiresAt time.Time
}

// NewInMemoryPermissionCache creates an in-memory permission cache
func NewInMemoryPermissionCache(ttl time.Duration) *InMemoryPermissionCache {
	if ttl <= 0 {
		ttl = defaultPermissionTTL
	}
	return &InMemoryPermissionCache{
		ttl:     ttl,
		entries: make(map[uuid.UUID]inMemoryPermissionEntry),
	}
}

// Get returns the cached permission keys for a role, if present and fresh
func (c *InMemoryPermissionCache) Get(_ context.Context, roleID uuid.UUID) ([]string, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[roleID]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, roleID)
		c.mu.Unlock()
		return nil, false, nil
	}

	keys := make([]string, len(entry.keys))
	copy(keys, entry.keys)
	return keys, true, nil
}

// Set stores the permission keys for a role
func (c *InMemoryPermissionCache) Set(_ context.Context, roleID uuid.UUID, keys []string) error {
	stored := make([]string, len(keys))
	copy(stored, keys)

	c.mu.Lock()
	c.entries[roleID] = inMemoryPermissionEntry{
		keys:      stored,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
	return nil
}

// Invalidate removes the cached entry for a role
func (c *InMemoryPermissionCache) Invalidate(_ context.Context, roleID uuid.UUID) error {
	c.mu.Lock()
	delete(c.entries, roleID)
	c.mu.Unlock()
	return nil
}
