package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/billyziiii/docker-fullstack/internal/database"
	"github.com/billyziiii/docker-fullstack/internal/models"
)

// HistoryRepository appends and lists immutable wager outcomes.
type HistoryRepository struct {
	q Queryable
}

// NewHistoryRepository creates a new history repository backed by the pool.
func NewHistoryRepository(db *database.DB) *HistoryRepository {
	return &HistoryRepository{q: db.Pool}
}

// NewHistoryRepositoryWithTx creates a history repository scoped to a transaction.
func NewHistoryRepositoryWithTx(tx Queryable) *HistoryRepository {
	return &HistoryRepository{q: tx}
}

// Record appends one wager outcome. The outcome's ID and CreatedAt are
// filled in from the inserted row.
func (r *HistoryRepository) Record(ctx context.Context, outcome *models.WagerOutcome) error {
	resultJSON, err := json.Marshal(outcome.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	query := `
		INSERT INTO game_history (user_id, game_type, bet_amount, win_amount, result)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err = r.q.QueryRow(ctx, query,
		outcome.UserID,
		outcome.GameType,
		outcome.BetAmount,
		outcome.WinAmount,
		resultJSON,
	).Scan(&outcome.ID, &outcome.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record outcome for user %d: %w", outcome.UserID, err)
	}

	return nil
}

// ListByUser returns the user's outcomes newest first, plus the total number
// of rows for the user. Limit and offset are assumed to be sane; clamping is
// the service layer's job.
func (r *HistoryRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*models.WagerOutcome, int64, error) {
	query := `
		SELECT id, user_id, game_type, bet_amount, win_amount, result, created_at
		FROM game_history
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list history for user %d: %w", userID, err)
	}
	defer rows.Close()

	outcomes := make([]*models.WagerOutcome, 0, limit)
	for rows.Next() {
		var outcome models.WagerOutcome
		var resultJSON []byte
		err := rows.Scan(
			&outcome.ID,
			&outcome.UserID,
			&outcome.GameType,
			&outcome.BetAmount,
			&outcome.WinAmount,
			&resultJSON,
			&outcome.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan outcome: %w", err)
		}
		if err := json.Unmarshal(resultJSON, &outcome.Result); err != nil {
			return nil, 0, fmt.Errorf("failed to unmarshal result: %w", err)
		}
		outcomes = append(outcomes, &outcome)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read history rows: %w", err)
	}

	var total int64
	err = r.q.QueryRow(ctx, `SELECT COUNT(*) FROM game_history WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count history for user %d: %w", userID, err)
	}

	return outcomes, total, nil
}
