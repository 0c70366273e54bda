package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billyziiii/docker-fullstack/internal/repository/testutil"
)

func TestPostgresCache(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	c := NewPostgresCache(testDB.DB)
	ctx := context.Background()

	t.Run("set get delete", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "k", "v", 0))

		value, hit, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, hit)
		assert.Equal(t, "v", value)

		has, err := c.Has(ctx, "k")
		require.NoError(t, err)
		assert.True(t, has)

		removed, err := c.Delete(ctx, "k")
		require.NoError(t, err)
		assert.True(t, removed)

		_, hit, err = c.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("overwrite keeps a single row", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "dup", "first", 0))
		require.NoError(t, c.Set(ctx, "dup", "second", 0))

		value, hit, err := c.Get(ctx, "dup")
		require.NoError(t, err)
		assert.True(t, hit)
		assert.Equal(t, "second", value)
	})

	t.Run("expired entries are a miss and get swept", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "short", "v", 500*time.Millisecond))
		require.NoError(t, c.Set(ctx, "long", "v", time.Hour))

		time.Sleep(600 * time.Millisecond)

		_, hit, err := c.Get(ctx, "short")
		require.NoError(t, err)
		assert.False(t, hit, "expired entry must be filtered at read time")

		removed, err := c.Sweep(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), removed)

		_, hit, err = c.Get(ctx, "long")
		require.NoError(t, err)
		assert.True(t, hit)
	})

	t.Run("clear reports removals", func(t *testing.T) {
		_, err := c.Clear(ctx)
		require.NoError(t, err)

		require.NoError(t, c.Set(ctx, "a", "v", 0))
		require.NoError(t, c.Set(ctx, "b", "v", 0))

		removed, err := c.Clear(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), removed)
	})
}
