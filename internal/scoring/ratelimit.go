package scoring

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// CallBudget caps the number of external scorer calls per wall-clock
// window. The counter resets on a fixed interval regardless of request
// volume; it is not a per-caller token bucket.
type CallBudget struct {
	mu     sync.Mutex
	clock  clockwork.Clock
	max    int
	window time.Duration
	used   int
}

func NewCallBudget(max int, window time.Duration, clock clockwork.Clock) *CallBudget {
	return &CallBudget{
		clock:  clock,
		max:    max,
		window: window,
	}
}

// TryAcquire consumes one call from the budget. A budget with max <= 0
// never grants calls.
func (b *CallBudget) TryAcquire() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.max <= 0 || b.used >= b.max {
		return false
	}
	b.used++
	return true
}

// Reset zeroes the window counter.
func (b *CallBudget) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.used = 0
}

// Used reports the calls consumed in the current window.
func (b *CallBudget) Used() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.used
}

// Start launches the interval reset task. It runs until ctx is canceled.
func (b *CallBudget) Start(ctx context.Context) {
	go func() {
		ticker := b.clock.NewTicker(b.window)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				b.Reset()
				slog.Info("[CallBudget] External call window reset",
					slog.Duration("window", b.window),
					slog.Int("max_calls", b.max))
			}
		}
	}()
}
