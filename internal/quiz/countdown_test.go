package quiz

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountdownExpiresOnce(t *testing.T) {
	cd := NewCountdown(DefaultBudget)
	expiries := 0
	for i := 0; i < DefaultBudget+10; i++ {
		if _, expired := cd.Tick(); expired {
			expiries++
			assert.Equal(t, DefaultBudget-1, i, "expired on tick %d", i)
		}
	}
	assert.Equal(t, 1, expiries)
	assert.Equal(t, 0, cd.Remaining())
}

func TestCountdownTick(t *testing.T) {
	cd := NewCountdown(3)
	r, exp := cd.Tick()
	assert.Equal(t, 2, r)
	assert.False(t, exp)
	r, exp = cd.Tick()
	assert.Equal(t, 1, r)
	assert.False(t, exp)
	r, exp = cd.Tick()
	assert.Equal(t, 0, r)
	assert.True(t, exp)
}

func TestClock(t *testing.T) {
	tests := map[int]string{
		1800: "30:00",
		1799: "29:59",
		61:   "01:01",
		5:    "00:05",
		0:    "00:00",
		-3:   "00:00",
	}
	for in, want := range tests {
		assert.Equal(t, want, Clock(in), "Clock(%d)", in)
	}
}

func TestRunTimerFiresExpiryOnce(t *testing.T) {
	ticks := make(chan time.Time, 10)
	for i := 0; i < 10; i++ {
		ticks <- time.Now()
	}
	close(ticks)

	var seen []int
	expiries := 0
	RunTimer(context.Background(), NewCountdown(4), ticks,
		func(r int) { seen = append(seen, r) },
		func() { expiries++ },
	)

	assert.Equal(t, []int{3, 2, 1}, seen)
	assert.Equal(t, 1, expiries)
	assert.Len(t, ticks, 6, "timer must stop consuming after expiry")
}

func TestRunTimerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	expired := false
	RunTimer(ctx, NewCountdown(1), make(chan time.Time), nil, func() { expired = true })
	assert.False(t, expired)
}
