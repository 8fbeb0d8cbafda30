package quiz

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultBudget is the time allowed for one attempt, in seconds
const DefaultBudget = 30 * 60

// Countdown counts whole seconds down to zero. It may be read while a
// timer goroutine ticks it.
type Countdown struct {
	mu        sync.Mutex
	remaining int
	expired   bool
}

// NewCountdown starts a countdown at budget seconds
func NewCountdown(budget int) *Countdown {
	return &Countdown{remaining: budget}
}

// Remaining is the number of seconds left
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Tick removes one second. expired is true on the tick that reaches zero and never again.
func (c *Countdown) Tick() (remaining int, expired bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.expired {
		return 0, false
	}
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining == 0 {
		c.expired = true
		return 0, true
	}
	return c.remaining, false
}

// Clock renders seconds as MM:SS
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// RunTimer ticks cd on every value from ticks until it expires or ctx is done.
// onTick sees every remaining value above zero, onExpire runs at most once.
func RunTimer(ctx context.Context, cd *Countdown, ticks <-chan time.Time, onTick func(remaining int), onExpire func()) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}
			remaining, expired := cd.Tick()
			if expired {
				onExpire()
				return
			}
			if onTick != nil {
				onTick(remaining)
			}
		}
	}
}

// StartTimer runs cd on a one second ticker in its own goroutine.
// The returned func stops it; calling it after expiry is harmless.
func StartTimer(cd *Countdown, onTick func(remaining int), onExpire func()) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	ticker := time.NewTicker(time.Second)
	go func() {
		defer ticker.Stop()
		RunTimer(ctx, cd, ticker.C, onTick, onExpire)
	}()
	return cancel
}
