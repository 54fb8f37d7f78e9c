package core

import "time"

// Frame delta bounds in seconds. A backgrounded terminal or a stalled SSH
// session must not produce one huge integration step.
const (
	MinDT = 0.008
	MaxDT = 0.05
)

// ClampDT bounds a raw frame delta to [MinDT, MaxDT].
func ClampDT(dt float64) float64 {
	return ClampF(dt, MinDT, MaxDT)
}

// Clock converts wall-clock frame callbacks into bounded delta times.
type Clock struct {
	prev    time.Time
	started bool
}

// Advance records a frame callback at now and returns the clamped delta since
// the previous callback. The first call returns MinDT.
func (c *Clock) Advance(now time.Time) float64 {
	if !c.started {
		c.prev = now
		c.started = true
		return MinDT
	}
	dt := now.Sub(c.prev).Seconds()
	c.prev = now
	return ClampDT(dt)
}

// Reset forgets the previous callback so the next Advance starts fresh.
func (c *Clock) Reset() {
	c.started = false
}
