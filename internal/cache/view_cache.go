package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ViewCache holds precomputed read views (public menu, place stats).
// It is correctness-neutral: with a nil client, or when Redis errors,
// every read is a miss and every write is skipped. Callers never fail
// because of it.
type ViewCache struct {
	client *redis.Client
	logger *zap.Logger
}

func NewViewCache(client *redis.Client, logger *zap.Logger) *ViewCache {
	return &ViewCache{
		client: client,
		logger: logger,
	}
}

// GetJSON reports whether the key was present and, if so, unmarshals
// it into dest.
func (c *ViewCache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c.client == nil {
		return false
	}

	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		c.logger.Warn("cache entry corrupt, dropping", zap.String("key", key), zap.Error(err))
		c.Invalidate(ctx, key)
		return false
	}

	return true
}

func (c *ViewCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c.client == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate deletes the given keys. Deleting an absent key is a
// successful no-op.
func (c *ViewCache) Invalidate(ctx context.Context, keys ...string) {
	if c.client == nil || len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
