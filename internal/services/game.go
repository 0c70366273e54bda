package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/billyziiii/docker-fullstack/internal/models"
	"github.com/billyziiii/docker-fullstack/internal/repository"
)

// History pagination policy: missing or nonsense values fall back to the
// defaults, oversized limits are clamped.
const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)

// Settler persists a wager outcome and its balance delta atomically.
type Settler interface {
	Settle(ctx context.Context, outcome *models.WagerOutcome) (int64, error)
}

// HistoryStore is the slice of the history repository the game service needs.
type HistoryStore interface {
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*models.WagerOutcome, int64, error)
}

// GameService runs slot rounds: draw, settle, record, invalidate, broadcast.
type GameService struct {
	engine      *SlotEngine
	settler     Settler
	history     HistoryStore
	userService *UserService
	broadcaster *Broadcaster
	log         *logrus.Entry
}

func NewGameService(engine *SlotEngine, settler Settler, history HistoryStore, userService *UserService, broadcaster *Broadcaster) *GameService {
	return &GameService{
		engine:      engine,
		settler:     settler,
		history:     history,
		userService: userService,
		broadcaster: broadcaster,
		log:         logrus.WithField("component", "game_service"),
	}
}

// PlaySlot settles one slot round for the user. The balance check, balance
// write and history append are one atomic operation; a losing conditional
// update means nothing was persisted.
func (s *GameService) PlaySlot(ctx context.Context, userID, bet int64) (*models.SlotSettlement, error) {
	spin, err := s.engine.Spin(bet)
	if err != nil {
		return nil, err
	}

	outcome := &models.WagerOutcome{
		UserID:    userID,
		GameType:  models.GameTypeSlot,
		BetAmount: bet,
		WinAmount: spin.WinAmount,
		Result:    spin.Symbols[:],
	}

	newBalance, err := s.settler.Settle(ctx, outcome)
	if errors.Is(err, repository.ErrInsufficientFunds) {
		return nil, ErrInsufficientBalance
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	s.userService.InvalidateProfile(ctx, userID)
	s.broadcaster.Publish(outcome)

	s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"bet":     bet,
		"win":     spin.WinAmount,
	}).Debug("slot round settled")

	return &models.SlotSettlement{
		Outcome:    outcome,
		Multiplier: spin.Multiplier,
		NewBalance: newBalance,
	}, nil
}

// History lists the user's settled rounds, newest first, with the total
// count for pagination.
func (s *GameService) History(ctx context.Context, userID int64, limit, offset int) ([]*models.WagerOutcome, int64, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.history.ListByUser(ctx, userID, limit, offset)
}
