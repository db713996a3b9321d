// Package clock measures frame time with the high resolution timer.
package clock

import (
	"time"

	"github.com/loov/hrtime"
)

type Clock struct {
	now   func() time.Duration
	start time.Duration
	last  time.Duration
}

func New() *Clock {
	return newClock(hrtime.Now)
}

func newClock(now func() time.Duration) *Clock {
	start := now()
	return &Clock{now: now, start: start, last: start}
}

// Elapsed returns the seconds since the clock was created.
func (c *Clock) Elapsed() float32 {
	return float32((c.now() - c.start).Seconds())
}

// Tick returns the seconds since the previous Tick, or since creation for
// the first call. A non-positive interval is reported as the smallest
// positive float so consumers that divide by it stay finite.
func (c *Clock) Tick() float32 {
	now := c.now()
	delta := float32((now - c.last).Seconds())
	c.last = now

	if delta <= 0 {
		return minDelta
	}
	return delta
}

const minDelta = float32(1e-6)
