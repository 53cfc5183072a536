package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryReferenceCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss returns nil without error", func(t *testing.T) {
		c := NewInMemoryReferenceCache()
		val, err := c.Get(ctx, "vehicles")
		require.NoError(t, err)
		assert.Nil(t, val)
	})

	t.Run("set then get", func(t *testing.T) {
		c := NewInMemoryReferenceCache()
		require.NoError(t, c.Set(ctx, "vehicles", []byte(`[{"id":1}]`)))

		val, err := c.Get(ctx, "vehicles")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[{"id":1}]`), val)
	})

	t.Run("invalidate drops a single key", func(t *testing.T) {
		c := NewInMemoryReferenceCache()
		require.NoError(t, c.Set(ctx, "vehicles", []byte(`[]`)))
		require.NoError(t, c.Set(ctx, "busLine", []byte(`[]`)))

		require.NoError(t, c.Invalidate(ctx, "vehicles"))

		val, err := c.Get(ctx, "vehicles")
		require.NoError(t, err)
		assert.Nil(t, val)

		val, err = c.Get(ctx, "busLine")
		require.NoError(t, err)
		assert.NotNil(t, val)
	})

	t.Run("invalidate all empties the cache", func(t *testing.T) {
		c := NewInMemoryReferenceCache()
		require.NoError(t, c.Set(ctx, "vehicles", []byte(`[]`)))
		require.NoError(t, c.Set(ctx, "busLine", []byte(`[]`)))
		assert.Equal(t, 2, c.Count())

		require.NoError(t, c.InvalidateAll(ctx))
		assert.Equal(t, 0, c.Count())
	})

	t.Run("tracks hits and misses", func(t *testing.T) {
		c := NewInMemoryReferenceCache()
		_, _ = c.Get(ctx, "vehicles")
		require.NoError(t, c.Set(ctx, "vehicles", []byte(`[]`)))
		_, _ = c.Get(ctx, "vehicles")
		_, _ = c.Get(ctx, "vehicles")

		hits, misses := c.Stats()
		assert.Equal(t, int64(2), hits)
		assert.Equal(t, int64(1), misses)
	})
}
