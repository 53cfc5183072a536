package cache

import "context"

// ReferenceCache stores serialized lookup lists keyed by catalog key.
// Entries never expire on their own: the portal populates each key once per
// session and drops entries only on explicit invalidation.
type ReferenceCache interface {
	// Get returns the cached payload, or (nil, nil) on a miss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores the payload for the key.
	Set(ctx context.Context, key string, value []byte) error
	// Invalidate drops one key.
	Invalidate(ctx context.Context, key string) error
	// InvalidateAll drops every key.
	InvalidateAll(ctx context.Context) error
	// Close releases any resources held by the cache.
	Close() error
}
