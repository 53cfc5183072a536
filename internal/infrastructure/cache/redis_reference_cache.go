package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisReferenceCache is a Redis-backed reference cache shared across
// portal instances.
type RedisReferenceCache struct {
	client     *redis.Client
	keyPrefix  string
	logger     *zap.Logger
	ownsClient bool
}

var _ ReferenceCache = (*RedisReferenceCache)(nil)

// RedisOption configures the Redis cache
type RedisOption func(*RedisReferenceCache)

// WithKeyPrefix sets the key namespace
func WithKeyPrefix(prefix string) RedisOption {
	return func(c *RedisReferenceCache) {
		if prefix != "" {
			c.keyPrefix = prefix
		}
	}
}

// WithRedisLogger sets the logger
func WithRedisLogger(logger *zap.Logger) RedisOption {
	return func(c *RedisReferenceCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewRedisReferenceCache creates a cache on an existing Redis client.
// The caller keeps ownership of the client.
func NewRedisReferenceCache(client *redis.Client, opts ...RedisOption) *RedisReferenceCache {
	c := &RedisReferenceCache{
		client:    client,
		keyPrefix: "reference:",
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewRedisReferenceCacheFromAddr dials Redis and owns the resulting client.
func NewRedisReferenceCacheFromAddr(addr, password string, db int, opts ...RedisOption) (*RedisReferenceCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	c := NewRedisReferenceCache(client, opts...)
	c.ownsClient = true
	return c, nil
}

func (c *RedisReferenceCache) cacheKey(key string) string {
	return c.keyPrefix + key
}

// Get returns the cached payload, or (nil, nil) on a miss
func (c *RedisReferenceCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.cacheKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return val, nil
}

// Set stores the payload for the key without expiration; entries live until
// they are invalidated.
func (c *RedisReferenceCache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.client.Set(ctx, c.cacheKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Invalidate drops one key
func (c *RedisReferenceCache) Invalidate(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.cacheKey(key)).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	c.logger.Debug("reference cache key invalidated", zap.String("key", key))
	return nil
}

// InvalidateAll drops every key under the prefix using SCAN to avoid
// blocking Redis on large keyspaces.
func (c *RedisReferenceCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= 100 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del batch: %w", err)
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("redis del batch: %w", err)
		}
	}
	c.logger.Debug("reference cache cleared")
	return nil
}

// Close releases the Redis client when this cache owns it
func (c *RedisReferenceCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}
