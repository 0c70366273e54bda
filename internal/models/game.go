package models

import "time"

type GameType string

const (
	GameTypeSlot GameType = "slot"
)

// WagerOutcome is one settled game round. Rows are append-only and immutable;
// retrieval is always newest first.
type WagerOutcome struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	GameType  GameType  `json:"gameType"`
	BetAmount int64     `json:"betAmount"`
	WinAmount int64     `json:"winAmount"`
	Result    []string  `json:"result"`
	CreatedAt time.Time `json:"createdAt"`
}

// SpinResult is the outcome of a single slot draw before it is applied to a
// balance: the three drawn symbols and the payout they earn for a given bet.
type SpinResult struct {
	Symbols    [3]string
	Multiplier float64
	WinAmount  int64
}

// IsWin reports whether the spin paid anything at all. A payout below the
// bet still counts as a win.
func (r SpinResult) IsWin() bool {
	return r.WinAmount > 0
}

// SlotSettlement is what the game service returns to the handler after a
// wager has been settled and recorded.
type SlotSettlement struct {
	Outcome    *WagerOutcome
	Multiplier float64
	NewBalance int64
}
