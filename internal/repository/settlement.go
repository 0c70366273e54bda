package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/billyziiii/docker-fullstack/internal/database"
	"github.com/billyziiii/docker-fullstack/internal/models"
)

// WagerSettler applies a wager's balance delta and records its outcome in a
// single transaction, so a history row exists exactly when the balance
// moved.
type WagerSettler struct {
	db *database.DB
}

func NewWagerSettler(db *database.DB) *WagerSettler {
	return &WagerSettler{db: db}
}

// Settle runs the conditional balance update and the history append
// atomically. On ErrInsufficientFunds or ErrNotFound nothing is persisted.
// The outcome's ID and CreatedAt are populated on success.
func (s *WagerSettler) Settle(ctx context.Context, outcome *models.WagerOutcome) (int64, error) {
	var newBalance int64
	err := s.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		users := NewUserRepositoryWithTx(tx)
		balance, err := users.ApplyWager(ctx, outcome.UserID, outcome.BetAmount, outcome.WinAmount)
		if err != nil {
			return err
		}

		history := NewHistoryRepositoryWithTx(tx)
		if err := history.Record(ctx, outcome); err != nil {
			return err
		}

		newBalance = balance
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}
