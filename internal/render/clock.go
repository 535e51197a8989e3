package render

import "time"

// Clock measures time elapsed between ticks
type Clock struct {
	now  func() time.Time
	last time.Time
}

// NewClock creates a clock started at the current time
func NewClock() *Clock {
	return newClockWith(time.Now)
}

func newClockWith(now func() time.Time) *Clock {
	return &Clock{now: now, last: now()}
}

// Delta returns the time since the previous call (or since creation)
func (c *Clock) Delta() time.Duration {
	t := c.now()
	d := t.Sub(c.last)
	c.last = t
	if d < 0 {
		return 0
	}
	return d
}
