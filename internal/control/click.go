package control

import (
	"time"

	"github.com/san-kum/ballsim/internal/physics"
)

// DefaultDoubleClickWindow is the longest gap between two presses on the
// same ball that still counts as a double click.
const DefaultDoubleClickWindow = 400 * time.Millisecond

// ClickTracker synthesizes double clicks from presses for hosts that only
// report button down events.
type ClickTracker struct {
	window time.Duration
	last   time.Time
	ball   *physics.Ball
}

func NewClickTracker(window time.Duration) *ClickTracker {
	if window <= 0 {
		window = DefaultDoubleClickWindow
	}
	return &ClickTracker{window: window}
}

// Press records a press on b at now and reports whether it completes a
// double click. A miss (nil ball) resets the tracker.
func (c *ClickTracker) Press(b *physics.Ball, now time.Time) bool {
	if b == nil {
		c.ball = nil
		return false
	}
	if c.ball == b && now.Sub(c.last) <= c.window {
		c.ball = nil
		return true
	}
	c.ball = b
	c.last = now
	return false
}
