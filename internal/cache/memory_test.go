package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache() (*MemoryCache, *time.Time) {
	c := NewMemoryCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache()

	_, hit, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	value, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "v", value)

	// Overwrite.
	require.NoError(t, c.Set(ctx, "k", "v2", 0))
	value, _, _ = c.Get(ctx, "k")
	assert.Equal(t, "v2", value)
}

func TestMemoryCache_TTL(t *testing.T) {
	ctx := context.Background()
	c, now := newTestCache()

	require.NoError(t, c.Set(ctx, "k", "v", time.Second))

	value, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "v", value)

	// Just before expiry it is still a hit.
	*now = now.Add(999 * time.Millisecond)
	_, hit, _ = c.Get(ctx, "k")
	assert.True(t, hit)

	// At and after expiry it is a miss, without waiting for the sweep.
	*now = now.Add(time.Millisecond)
	_, hit, _ = c.Get(ctx, "k")
	assert.False(t, hit)

	has, err := c.Has(ctx, "k")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestMemoryCache_Delete(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache()

	require.NoError(t, c.Set(ctx, "k", "v", 0))

	removed, err := c.Delete(ctx, "k")
	require.NoError(t, err)
	assert.True(t, removed)

	_, hit, _ := c.Get(ctx, "k")
	assert.False(t, hit, "delete then get is always a miss")

	removed, err = c.Delete(ctx, "k")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestMemoryCache_Clear(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache()

	for _, key := range []string{"a", "b", "c"} {
		require.NoError(t, c.Set(ctx, key, "v", 0))
	}

	removed, err := c.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	has, _ := c.Has(ctx, "a")
	assert.False(t, has)
}

func TestMemoryCache_Sweep(t *testing.T) {
	ctx := context.Background()
	c, now := newTestCache()

	require.NoError(t, c.Set(ctx, "expiring", "v", time.Second))
	require.NoError(t, c.Set(ctx, "forever", "v", 0))

	removed, err := c.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)

	*now = now.Add(2 * time.Second)
	removed, err = c.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	has, _ := c.Has(ctx, "forever")
	assert.True(t, has)
}
