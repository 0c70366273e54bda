package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/billyziiii/docker-fullstack/internal/cache"
	"github.com/billyziiii/docker-fullstack/internal/models"
	"github.com/billyziiii/docker-fullstack/internal/repository"
)

// UserService serves profile reads through the cache. Cache failures are
// logged and fall back to the database; they never fail the request.
type UserService struct {
	users UserStore
	cache cache.Cache
	log   *logrus.Entry
}

func NewUserService(users UserStore, c cache.Cache) *UserService {
	return &UserService{
		users: users,
		cache: c,
		log:   logrus.WithField("component", "user_service"),
	}
}

// GetProfile returns the user's profile projection, consulting the cache
// first and populating it on a miss. Only the projection is cached, never
// the password hash.
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	key := cache.UserProfileKey(userID)

	if data, ok, err := s.cache.Get(ctx, key); err != nil {
		s.log.WithError(err).Warn("cache read failed, falling back to database")
	} else if ok {
		var profile models.UserProfile
		if err := json.Unmarshal([]byte(data), &profile); err == nil {
			return &profile, nil
		}
		// Unreadable entry: drop it and fall through to the database.
		s.cache.Delete(ctx, key)
	}

	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	profile := user.Profile()
	if data, err := json.Marshal(profile); err == nil {
		if err := s.cache.Set(ctx, key, string(data), cache.TTLUserProfile); err != nil {
			s.log.WithError(err).Warn("cache write failed")
		}
	}

	return profile, nil
}

// InvalidateProfile deletes the cached projection for userID. Called after
// every balance mutation so a stale balance is never served.
func (s *UserService) InvalidateProfile(ctx context.Context, userID int64) {
	if _, err := s.cache.Delete(ctx, cache.UserProfileKey(userID)); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("cache invalidation failed")
	}
}
