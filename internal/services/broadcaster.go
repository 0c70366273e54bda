package services

import (
	"sync"

	"github.com/billyziiii/docker-fullstack/internal/models"
)

// FeedEvent is one settled round as shown on the live feed. It carries the
// outcome only, never balance information.
type FeedEvent struct {
	Username  string   `json:"username,omitempty"`
	GameType  string   `json:"gameType"`
	Bet       int64    `json:"bet"`
	WinAmount int64    `json:"winAmount"`
	Result    []string `json:"result"`
	IsWin     bool     `json:"isWin"`
}

// Broadcaster fans settled wager outcomes out to live-feed subscribers.
// Slow subscribers are dropped rather than blocking settlement.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan FeedEvent]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan FeedEvent]struct{})}
}

// Subscribe returns a channel of feed events and a cancel function.
func (b *Broadcaster) Subscribe() (<-chan FeedEvent, func()) {
	ch := make(chan FeedEvent, 16)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	return ch, func() {
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
}

// Publish delivers an outcome to every subscriber without blocking.
func (b *Broadcaster) Publish(outcome *models.WagerOutcome) {
	event := FeedEvent{
		GameType:  string(outcome.GameType),
		Bet:       outcome.BetAmount,
		WinAmount: outcome.WinAmount,
		Result:    outcome.Result,
		IsWin:     outcome.WinAmount > 0,
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
