// Package cache provides a read-through Redis cache for snapshot-style
// responses (ranking charts, trending titles).
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tastehub/pkg/config"
	"tastehub/pkg/logger"
)

// Cache wraps a Redis client with JSON helpers. A nil *Cache is valid and
// behaves as a miss on every read, so callers never branch on enablement.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis per config. Returns nil (cache disabled) when the
// config disables caching.
func New(cfg config.RedisConfig) (*Cache, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Cache{client: client, ttl: cfg.TTL}, nil
}

// GetJSON reads a key and unmarshals it into dest. Returns false on a miss.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil {
		return false, nil
	}

	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON marshals value and stores it under key with the configured TTL.
// Write failures are logged, not propagated; the cache is best-effort.
func (c *Cache) SetJSON(ctx context.Context, key string, value any) {
	if c == nil {
		return
	}

	b, err := json.Marshal(value)
	if err != nil {
		logger.Warnf("cache encode %s: %v", key, err)
		return
	}

	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		logger.Warnf("cache set %s: %v", key, err)
	}
}

// Invalidate removes keys, typically after a snapshot replacement.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Warnf("cache invalidate: %v", err)
	}
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
