package tick

import "time"

// Clock supplies the monotonic source Dispatcher.Tick uses to compute dt
// each frame. Tests substitute FixedClock to get deterministic dt values
// instead of racing the wall clock.
type Clock interface {
	// Advance returns the elapsed time since the previous call (or since
	// construction, for the first call).
	Advance() time.Duration
}

// SystemClock measures real elapsed wall-clock time using time.Now, which
// carries a monotonic reading so Advance is immune to system clock jumps.
type SystemClock struct {
	last time.Time
}

// NewSystemClock returns a SystemClock anchored at the current time.
func NewSystemClock() *SystemClock {
	return &SystemClock{last: time.Now()}
}

// Advance implements Clock.
func (c *SystemClock) Advance() time.Duration {
	now := time.Now()
	dt := now.Sub(c.last)
	c.last = now
	return dt
}

// FixedClock reports a constant dt on every call, useful for deterministic
// tests and headless simulation steps.
type FixedClock struct {
	DT time.Duration
}

// Advance implements Clock.
func (c FixedClock) Advance() time.Duration { return c.DT }
