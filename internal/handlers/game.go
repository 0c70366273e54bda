package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/billyziiii/docker-fullstack/internal/models"
	"github.com/billyziiii/docker-fullstack/internal/services"
)

type GameHandler struct {
	gameService *services.GameService
}

func NewGameHandler(gameService *services.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

func (h *GameHandler) PlaySlot(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req models.SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	settlement, err := h.gameService.PlaySlot(c.Request.Context(), userID, req.Bet)
	switch {
	case errors.Is(err, services.ErrInvalidBet):
		fail(c, http.StatusBadRequest, "Bet amount must be greater than 0")
		return
	case errors.Is(err, services.ErrInsufficientBalance):
		fail(c, http.StatusBadRequest, "Insufficient balance")
		return
	case errors.Is(err, services.ErrUserNotFound):
		fail(c, http.StatusNotFound, "User not found")
		return
	case err != nil:
		failInternal(c, err)
		return
	}

	outcome := settlement.Outcome
	isWin := outcome.WinAmount > 0
	message := "Better luck next time!"
	if isWin {
		message = "You win!"
	}

	ok(c, http.StatusOK, "", gin.H{
		"result":     outcome.Result,
		"bet":        outcome.BetAmount,
		"winAmount":  outcome.WinAmount,
		"multiplier": settlement.Multiplier,
		"newBalance": settlement.NewBalance,
		"isWin":      isWin,
		"message":    message,
	})
}

func (h *GameHandler) GetHistory(c *gin.Context) {
	userID := c.GetInt64("user_id")

	limit := atoiDefault(c.Query("limit"), services.DefaultHistoryLimit)
	offset := atoiDefault(c.Query("offset"), 0)

	history, total, err := h.gameService.History(c.Request.Context(), userID, limit, offset)
	if err != nil {
		failInternal(c, err)
		return
	}

	ok(c, http.StatusOK, "", gin.H{
		"history": history,
		"total":   total,
	})
}

// atoiDefault parses s, falling back to def when it is empty or not a
// number. Range clamping happens in the service.
func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
