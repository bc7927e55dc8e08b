package overlay

import "time"

// fpsCounter counts frames per wall-clock second.
type fpsCounter struct {
	frames int
	since  time.Time
	value  int
}

// tick records a frame and reports whether a new value was published.
func (c *fpsCounter) tick(now time.Time) bool {
	if c.since.IsZero() {
		c.since = now
	}
	c.frames++
	if now.Sub(c.since) < time.Second {
		return false
	}
	c.value = c.frames
	c.frames = 0
	c.since = now
	return true
}
