package metrics

import (
	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/sim"
)

// Collisions counts resolved ball pairs. A pair that stays overlapping is
// counted once per frame.
type Collisions struct {
	name  string
	count int
}

func NewCollisions() *Collisions {
	return &Collisions{name: "collisions"}
}

func (c *Collisions) Name() string { return c.name }

func (c *Collisions) Observe(s sim.Snapshot, r physics.StepReport) {
	c.count += len(r.Contacts)
}

func (c *Collisions) Value() float64 { return float64(c.count) }
func (c *Collisions) Reset()         { c.count = 0 }

// WallHits counts reflected axes; a corner hit counts twice.
type WallHits struct {
	name  string
	count int
}

func NewWallHits() *WallHits {
	return &WallHits{name: "wall_hits"}
}

func (w *WallHits) Name() string { return w.name }

func (w *WallHits) Observe(s sim.Snapshot, r physics.StepReport) {
	for _, b := range r.Bounces {
		if b.AxisX {
			w.count++
		}
		if b.AxisY {
			w.count++
		}
	}
}

func (w *WallHits) Value() float64 { return float64(w.count) }
func (w *WallHits) Reset()         { w.count = 0 }

type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(s sim.Snapshot, r physics.StepReport) {
	for _, b := range s.Balls {
		v := physics.NewVec2(b.VX, b.VY).Len()
		if v > m.max {
			m.max = v
		}
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }
func (m *MaxSpeed) Reset()         { m.max = 0 }

// Defaults returns a fresh set of the standard metrics.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewEnergy(),
		NewEnergyDrift(),
		NewCollisions(),
		NewWallHits(),
		NewMaxSpeed(),
		NewContainment(),
	}
}
