package core

import "time"

// Clock provides the current time. The engine loop measures tick
// intervals through it so tests can drive time by hand.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// NewClock creates a new RealClock.
func NewClock() *RealClock {
	return &RealClock{}
}

// Now returns the current time.
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// ManualClock is a Clock that only moves when told to.
type ManualClock struct {
	current time.Time
}

var _ Clock = (*ManualClock)(nil)

// NewManualClock creates a ManualClock set to t.
func NewManualClock(t time.Time) *ManualClock {
	return &ManualClock{current: t}
}

// Now returns the clock's current time.
func (c *ManualClock) Now() time.Time {
	return c.current
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
