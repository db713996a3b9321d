package clock

import (
	"testing"
	"time"
)

type fakeTimer struct {
	current time.Duration
}

func (f *fakeTimer) now() time.Duration {
	return f.current
}

func TestElapsed(t *testing.T) {
	timer := &fakeTimer{current: 5 * time.Second}
	c := newClock(timer.now)

	if got := c.Elapsed(); got != 0 {
		t.Errorf("Elapsed() = %v, want 0", got)
	}

	timer.current += 1500 * time.Millisecond
	if got := c.Elapsed(); got != 1.5 {
		t.Errorf("Elapsed() = %v, want 1.5", got)
	}
}

func TestTick(t *testing.T) {
	timer := &fakeTimer{}
	c := newClock(timer.now)

	timer.current = 250 * time.Millisecond
	if got := c.Tick(); got != 0.25 {
		t.Errorf("first Tick() = %v, want 0.25", got)
	}

	timer.current = 500 * time.Millisecond
	if got := c.Tick(); got != 0.25 {
		t.Errorf("second Tick() = %v, want 0.25", got)
	}

	if got := c.Tick(); got != minDelta {
		t.Errorf("zero interval Tick() = %v, want %v", got, minDelta)
	}
}

func TestRealClockIsMonotonic(t *testing.T) {
	c := New()
	first := c.Elapsed()
	time.Sleep(time.Millisecond)
	second := c.Elapsed()

	if second <= first {
		t.Errorf("elapsed did not advance: %v then %v", first, second)
	}
}
