package services

import (
	"math/rand"
	"sync"
	"time"

	"github.com/billyziiii/docker-fullstack/internal/models"
)

// Symbols is the slot alphabet, ordered lowest tier to highest.
var Symbols = []string{"🍎", "🍊", "🍋", "🍇", "🍓", "💎"}

// Multipliers are stored in tenths so payouts floor exactly: the win for a
// bet is bet*tenths/10 in integer arithmetic, truncating fractional coins
// toward zero.
const (
	pairMultiplierTenths = 5 // 0.5x for any pair, regardless of symbol
	reels                = 3
)

// tripleMultiplierTenths maps each symbol to its triple payout, strictly
// decreasing from the top tier down.
var tripleMultiplierTenths = map[string]int64{
	"💎": 100, // 10x
	"🍓": 80,  // 8x
	"🍇": 60,  // 6x
	"🍋": 40,  // 4x
	"🍊": 25,  // 2.5x
	"🍎": 15,  // 1.5x
}

// SlotEngine draws symbols and computes settlements. Safe for concurrent use.
type SlotEngine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSlotEngine creates an engine seeded from the current time.
func NewSlotEngine() *SlotEngine {
	return NewSlotEngineWithSeed(time.Now().UnixNano())
}

// NewSlotEngineWithSeed creates an engine with a fixed seed, for tests.
func NewSlotEngineWithSeed(seed int64) *SlotEngine {
	return &SlotEngine{rng: rand.New(rand.NewSource(seed))}
}

// Spin draws three symbols uniformly at random and settles the bet against
// the multiplier table. The only failure mode is a non-positive bet; the
// draw itself never fails.
func (e *SlotEngine) Spin(bet int64) (models.SpinResult, error) {
	if bet <= 0 {
		return models.SpinResult{}, ErrInvalidBet
	}

	var symbols [3]string
	e.mu.Lock()
	for i := 0; i < reels; i++ {
		symbols[i] = Symbols[e.rng.Intn(len(Symbols))]
	}
	e.mu.Unlock()

	tenths := multiplierTenths(symbols)

	return models.SpinResult{
		Symbols:    symbols,
		Multiplier: float64(tenths) / 10,
		WinAmount:  bet * tenths / 10,
	}, nil
}

// multiplierTenths classifies the draw: triple pays by symbol tier, any
// pair pays a flat rate, no match pays nothing.
func multiplierTenths(s [3]string) int64 {
	switch {
	case s[0] == s[1] && s[1] == s[2]:
		return tripleMultiplierTenths[s[0]]
	case s[0] == s[1] || s[1] == s[2] || s[0] == s[2]:
		return pairMultiplierTenths
	default:
		return 0
	}
}
