package physics

import (
	"fmt"
	"math"
	"sort"
)

const (
	// DefaultWallRestitution damps the reflected velocity component on a wall hit.
	DefaultWallRestitution = 0.3
	// DefaultImpulseScale scales the relative speed into a pairwise impulse.
	DefaultImpulseScale = 0.3
)

// Params holds the tunable constants of a physics step. Wall damping and
// pair impulse strength were one constant in the reference scene; they are
// kept apart here and default to the same value.
type Params struct {
	WallRestitution float64
	ImpulseScale    float64
}

func DefaultParams() Params {
	return Params{
		WallRestitution: DefaultWallRestitution,
		ImpulseScale:    DefaultImpulseScale,
	}
}

func (p *Params) GetParams() map[string]float64 {
	return map[string]float64{
		"wall_restitution": p.WallRestitution,
		"impulse_scale":    p.ImpulseScale,
	}
}

func (p *Params) SetParam(name string, value float64) error {
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s: %w", name, ErrParameterBounds)
	}
	switch name {
	case "wall_restitution":
		p.WallRestitution = value
	case "impulse_scale":
		p.ImpulseScale = value
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}

// ParamNames returns the tunable parameter names in stable order.
func (p *Params) ParamNames() []string {
	names := make([]string, 0, 2)
	for k := range p.GetParams() {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Bounce records a wall hit for one ball during a frame.
type Bounce struct {
	Ball  int
	AxisX bool
	AxisY bool
}

// Contact records one resolved overlapping pair. Impulse was subtracted from
// ball I and added to ball J.
type Contact struct {
	I, J    int
	Impulse Vec2
}

// StepReport lists what happened during one frame. Indices refer to the
// slice passed to Step.
type StepReport struct {
	Bounces  []Bounce
	Contacts []Contact
}

// Integrate advances the position by one unit-time Euler step.
func Integrate(b *Ball) {
	b.Position = b.Position.Add(b.Velocity)
}

// ResolveWalls reflects and clamps each axis independently. Both axes are
// tested against the already-integrated position, so a corner hit flips both
// components in the same frame.
func ResolveWalls(b *Ball, s Surface, restitution float64) (hitX, hitY bool) {
	r := b.Radius

	if b.Position.X-r < 0 || b.Position.X+r > s.Width {
		b.Velocity.X = -restitution * b.Velocity.X
		b.Position.X = clamp(b.Position.X, r, s.Width-r)
		hitX = true
	}
	if b.Position.Y-r < 0 || b.Position.Y+r > s.Height {
		b.Velocity.Y = -restitution * b.Velocity.Y
		b.Position.Y = clamp(b.Position.Y, r, s.Height-r)
		hitY = true
	}
	return hitX, hitY
}

// ResolveCollisions applies one impulse to every overlapping pair, visiting
// pairs once in index order i < j. Positions are left untouched.
func ResolveCollisions(balls []*Ball, scale float64) []Contact {
	var contacts []Contact
	for i := 0; i < len(balls); i++ {
		for j := i + 1; j < len(balls); j++ {
			if imp, ok := resolvePair(balls[i], balls[j], scale); ok {
				contacts = append(contacts, Contact{I: i, J: j, Impulse: imp})
			}
		}
	}
	return contacts
}

func resolvePair(a, b *Ball, scale float64) (Vec2, bool) {
	d := b.Position.Sub(a.Position)
	minDist := a.Radius + b.Radius
	if d.Len() >= minDist {
		return Vec2{}, false
	}

	// atan2(0, 0) is 0, so coincident centers push along +x.
	angle := d.Angle()
	relSpeed := b.Velocity.Sub(a.Velocity).Len()
	impulse := scale * relSpeed
	share := a.Radius / minDist

	imp := Vec2{
		X: impulse * math.Cos(angle) * share,
		Y: impulse * math.Sin(angle) * share,
	}

	a.Velocity = a.Velocity.Sub(imp)
	b.Velocity = b.Velocity.Add(imp)
	return imp, true
}

// Step runs one frame: integrate and wall-resolve every ball in order, then
// resolve pairwise contacts.
func Step(balls []*Ball, s Surface, p Params) StepReport {
	var report StepReport
	for i, b := range balls {
		Integrate(b)
		if hx, hy := ResolveWalls(b, s, p.WallRestitution); hx || hy {
			report.Bounces = append(report.Bounces, Bounce{Ball: i, AxisX: hx, AxisY: hy})
		}
	}
	report.Contacts = ResolveCollisions(balls, p.ImpulseScale)
	return report
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
