// Package cache provides a read-through cache with pluggable backends.
// Entries are opaque strings with an optional TTL. Expired entries are a
// miss on read; a periodic sweep reclaims the space but is not required
// for correctness.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is the capability contract shared by all backends. All operations
// are best effort from the caller's point of view: a failing cache must
// degrade to direct storage reads, never to stale data.
type Cache interface {
	// Set stores value under key. A ttl of zero or less means no expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Get returns the value and whether it was present and unexpired.
	Get(ctx context.Context, key string) (string, bool, error)
	// Delete removes key and reports whether an entry was removed.
	Delete(ctx context.Context, key string) (bool, error)
	// Has reports whether an unexpired entry exists for key.
	Has(ctx context.Context, key string) (bool, error)
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int64, error)
	// Sweep reaps expired entries. Backends that expire natively may no-op.
	Sweep(ctx context.Context) (int64, error)
	Close() error
}

// Key templates. Cached values are projections only; password-bearing rows
// are never cached.
const (
	KeyUserProfile = "user:%d:profile"

	TTLUserProfile = 5 * time.Minute
)

// UserProfileKey returns the cache key for a user's profile projection.
func UserProfileKey(userID int64) string {
	return fmt.Sprintf(KeyUserProfile, userID)
}
