package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billyziiii/docker-fullstack/internal/cache"
	"github.com/billyziiii/docker-fullstack/internal/models"
)

// countingUserStore counts database reads so cache hits are observable.
type countingUserStore struct {
	fakeUserStore
	reads int
}

func (c *countingUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	c.reads++
	return c.fakeUserStore.GetByID(ctx, id)
}

func TestUserService_GetProfile(t *testing.T) {
	ctx := context.Background()

	newStore := func() *countingUserStore {
		return &countingUserStore{
			fakeUserStore: fakeUserStore{users: map[int64]*models.User{
				1: {
					ID:           1,
					Username:     "alice",
					PasswordHash: "secret-hash",
					Balance:      1000,
					CreatedAt:    time.Now(),
				},
			}},
		}
	}

	t.Run("miss populates the cache", func(t *testing.T) {
		store := newStore()
		memCache := cache.NewMemoryCache()
		svc := NewUserService(store, memCache)

		profile, err := svc.GetProfile(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "alice", profile.Username)
		assert.Equal(t, int64(1000), profile.Balance)
		assert.Equal(t, 1, store.reads)

		// Second read is served from the cache.
		_, err = svc.GetProfile(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, store.reads)
	})

	t.Run("cached payload never contains the password hash", func(t *testing.T) {
		store := newStore()
		memCache := cache.NewMemoryCache()
		svc := NewUserService(store, memCache)

		_, err := svc.GetProfile(ctx, 1)
		require.NoError(t, err)

		raw, hit, err := memCache.Get(ctx, cache.UserProfileKey(1))
		require.NoError(t, err)
		require.True(t, hit)
		assert.False(t, strings.Contains(raw, "secret-hash"))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
		assert.NotContains(t, decoded, "passwordHash")
	})

	t.Run("invalidation forces a fresh read", func(t *testing.T) {
		store := newStore()
		memCache := cache.NewMemoryCache()
		svc := NewUserService(store, memCache)

		_, err := svc.GetProfile(ctx, 1)
		require.NoError(t, err)

		store.users[1].Balance = 500
		svc.InvalidateProfile(ctx, 1)

		profile, err := svc.GetProfile(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(500), profile.Balance)
		assert.Equal(t, 2, store.reads)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := NewUserService(newStore(), cache.NewMemoryCache())

		_, err := svc.GetProfile(ctx, 99)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
