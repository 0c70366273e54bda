package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/billyziiii/docker-fullstack/internal/database"
	"github.com/billyziiii/docker-fullstack/internal/models"
)

// UserRepository persists users and applies wager settlements to balances.
type UserRepository struct {
	q Queryable
}

// NewUserRepository creates a new user repository backed by the pool.
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// NewUserRepositoryWithTx creates a user repository scoped to a transaction.
func NewUserRepositoryWithTx(tx Queryable) *UserRepository {
	return &UserRepository{q: tx}
}

// Create inserts a new user with the given starting balance. Returns
// ErrDuplicate when the username is already taken.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string, initialBalance int64) (*models.User, error) {
	query := `
		INSERT INTO users (username, password_hash, balance)
		VALUES ($1, $2, $3)
		RETURNING id, username, password_hash, balance, created_at
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, username, passwordHash, initialBalance).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Balance,
		&user.CreatedAt,
	)
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user %q: %w", username, err)
	}

	return &user, nil
}

// GetByID retrieves a user by identifier.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getBy(ctx, "id = $1", id)
}

// GetByUsername retrieves a user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getBy(ctx, "username = $1", username)
}

func (r *UserRepository) getBy(ctx context.Context, where string, arg any) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, balance, created_at
		FROM users
		WHERE ` + where

	var user models.User
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Balance,
		&user.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// ApplyWager settles a wager against the user's balance as a single
// conditional update. The balance check and the write happen in one
// statement so concurrent wagers can never overdraft the account.
func (r *UserRepository) ApplyWager(ctx context.Context, userID, bet, winAmount int64) (int64, error) {
	query := `
		UPDATE users
		SET balance = balance - $2 + $3
		WHERE id = $1 AND balance >= $2
		RETURNING balance
	`

	var newBalance int64
	err := r.q.QueryRow(ctx, query, userID, bet, winAmount).Scan(&newBalance)
	if err == pgx.ErrNoRows {
		// The condition failed: either the user does not exist or the
		// balance is short. Tell them apart for the caller.
		var exists bool
		if checkErr := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); checkErr != nil {
			return 0, fmt.Errorf("failed to check user %d: %w", userID, checkErr)
		}
		if !exists {
			return 0, ErrNotFound
		}
		return 0, ErrInsufficientFunds
	}
	if err != nil {
		return 0, fmt.Errorf("failed to apply wager for user %d: %w", userID, err)
	}

	return newBalance, nil
}
