package cache

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// InMemoryReferenceCache is a process-local reference cache used when Redis
// is not configured, and as the default for tests.
type InMemoryReferenceCache struct {
	entries sync.Map // key -> []byte
	logger  *zap.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

var _ ReferenceCache = (*InMemoryReferenceCache)(nil)

// InMemoryOption configures the in-memory cache
type InMemoryOption func(*InMemoryReferenceCache)

// WithInMemoryLogger sets the logger
func WithInMemoryLogger(logger *zap.Logger) InMemoryOption {
	return func(c *InMemoryReferenceCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewInMemoryReferenceCache creates an in-memory reference cache
func NewInMemoryReferenceCache(opts ...InMemoryOption) *InMemoryReferenceCache {
	c := &InMemoryReferenceCache{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached payload, or (nil, nil) on a miss
func (c *InMemoryReferenceCache) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := c.entries.Load(key)
	if !ok {
		c.misses.Add(1)
		return nil, nil
	}
	c.hits.Add(1)
	return v.([]byte), nil
}

// Set stores the payload for the key
func (c *InMemoryReferenceCache) Set(_ context.Context, key string, value []byte) error {
	c.entries.Store(key, value)
	return nil
}

// Invalidate drops one key
func (c *InMemoryReferenceCache) Invalidate(_ context.Context, key string) error {
	c.entries.Delete(key)
	c.logger.Debug("reference cache key invalidated", zap.String("key", key))
	return nil
}

// InvalidateAll drops every key
func (c *InMemoryReferenceCache) InvalidateAll(_ context.Context) error {
	c.entries.Range(func(key, _ any) bool {
		c.entries.Delete(key)
		return true
	})
	c.logger.Debug("reference cache cleared")
	return nil
}

// Close is a no-op for the in-memory cache
func (c *InMemoryReferenceCache) Close() error {
	return nil
}

// Count returns the number of cached keys
func (c *InMemoryReferenceCache) Count() int {
	count := 0
	c.entries.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// Stats returns hit and miss counters
func (c *InMemoryReferenceCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
