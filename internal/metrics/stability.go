package metrics

import (
	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/sim"
)

// Containment is the fraction of frames in which every ball lay fully inside
// the surface.
type Containment struct {
	name       string
	violations int
	samples    int
}

func NewContainment() *Containment {
	return &Containment{name: "containment"}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(s sim.Snapshot, r physics.StepReport) {
	c.samples++
	for _, b := range s.Balls {
		if b.X < b.Radius || b.X > s.Surface.Width-b.Radius ||
			b.Y < b.Radius || b.Y > s.Surface.Height-b.Radius {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
