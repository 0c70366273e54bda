package cache

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/billyziiii/docker-fullstack/internal/database"
)

// PostgresCache stores entries in the cache table, next to the rest of the
// application's data. Useful when no Redis instance is available. Expiry is
// enforced at read time; Sweep deletes expired rows in bulk.
type PostgresCache struct {
	db *database.DB
}

// NewPostgresCache creates a cache backed by the database's cache table.
func NewPostgresCache(db *database.DB) *PostgresCache {
	return &PostgresCache{db: db}
}

func (c *PostgresCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	var expiresAt *time.Time
	if ttl > 0 {
		t := time.Now().Add(ttl)
		expiresAt = &t
	}

	query := `
		INSERT INTO cache (key, value, expires_at, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at, updated_at = NOW()
	`
	_, err := c.db.Exec(ctx, query, key, value, expiresAt)
	return err
}

func (c *PostgresCache) Get(ctx context.Context, key string) (string, bool, error) {
	query := `
		SELECT value FROM cache
		WHERE key = $1 AND (expires_at IS NULL OR expires_at > NOW())
	`

	var value string
	err := c.db.QueryRow(ctx, query, key).Scan(&value)
	if err == pgx.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (c *PostgresCache) Delete(ctx context.Context, key string) (bool, error) {
	tag, err := c.db.Exec(ctx, `
		DELETE FROM cache
		WHERE key = $1 AND (expires_at IS NULL OR expires_at > NOW())
	`, key)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (c *PostgresCache) Has(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := c.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM cache
			WHERE key = $1 AND (expires_at IS NULL OR expires_at > NOW())
		)
	`, key).Scan(&exists)
	return exists, err
}

func (c *PostgresCache) Clear(ctx context.Context) (int64, error) {
	tag, err := c.db.Exec(ctx, `DELETE FROM cache`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (c *PostgresCache) Sweep(ctx context.Context) (int64, error) {
	tag, err := c.db.Exec(ctx, `DELETE FROM cache WHERE expires_at IS NOT NULL AND expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Close is a no-op; the underlying pool is owned by the caller.
func (c *PostgresCache) Close() error {
	return nil
}
