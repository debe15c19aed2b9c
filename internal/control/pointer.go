package control

import (
	"errors"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/ballsim/internal/physics"
)

// DefaultMaxSpeed caps the launch speed of a drag, in surface units per frame.
const DefaultMaxSpeed = 10.0

var (
	// ErrInvalidColor indicates a color that is not a #rrggbb hex string.
	ErrInvalidColor = errors.New("control: invalid color")

	// ErrNoRecolorTarget indicates a color confirmation with no open request.
	ErrNoRecolorTarget = errors.New("control: no recolor request open")
)

// BallSource exposes the ordered ball set.
type BallSource interface {
	Balls() []*physics.Ball
}

// Pointer is the interaction controller. While a ball is dragged the pointer
// owns its velocity between move events.
type Pointer struct {
	balls    BallSource
	maxSpeed float64

	active  *physics.Ball
	pressAt physics.Vec2

	recolor *physics.Ball
}

func NewPointer(balls BallSource, maxSpeed float64) *Pointer {
	return &Pointer{
		balls:    balls,
		maxSpeed: maxSpeed,
	}
}

// HitTest returns the first ball in list order whose disc contains (x, y).
func (p *Pointer) HitTest(x, y float64) *physics.Ball {
	pt := physics.NewVec2(x, y)
	for _, b := range p.balls.Balls() {
		if b.Contains(pt) {
			return b
		}
	}
	return nil
}

// Press starts a drag on the ball under (x, y). It reports whether a ball
// was hit.
func (p *Pointer) Press(x, y float64) bool {
	b := p.HitTest(x, y)
	if b == nil {
		return false
	}
	p.active = b
	p.pressAt = physics.NewVec2(x, y)
	return true
}

// Move assigns the drag velocity to the active ball. Each call replaces the
// previous velocity rather than adding to it.
func (p *Pointer) Move(x, y float64) bool {
	if p.active == nil {
		return false
	}
	d := physics.NewVec2(x, y).Sub(p.pressAt)
	speed := math.Min(d.Len(), p.maxSpeed)
	p.active.Velocity = physics.Polar(speed, d.Angle())
	return true
}

func (p *Pointer) Release() {
	p.active = nil
	p.pressAt = physics.Vec2{}
}

func (p *Pointer) Active() *physics.Ball { return p.active }

func (p *Pointer) Dragging() bool { return p.active != nil }

// PressPoint returns where the current drag started.
func (p *Pointer) PressPoint() (physics.Vec2, bool) {
	return p.pressAt, p.active != nil
}

func (p *Pointer) MaxSpeed() float64 { return p.maxSpeed }

// DoubleClick opens a recolor request for the ball under (x, y).
func (p *Pointer) DoubleClick(x, y float64) bool {
	b := p.HitTest(x, y)
	if b == nil {
		return false
	}
	p.recolor = b
	return true
}

func (p *Pointer) RecolorTarget() *physics.Ball { return p.recolor }

// ConfirmColor replaces the color of the targeted ball and closes the
// request. Nothing else on any ball changes.
func (p *Pointer) ConfirmColor(color string) error {
	if p.recolor == nil {
		return ErrNoRecolorTarget
	}
	hex, err := NormalizeColor(color)
	if err != nil {
		return err
	}
	p.recolor.Color = hex
	p.recolor = nil
	return nil
}

// DismissColor closes the request and leaves the ball unchanged.
func (p *Pointer) DismissColor() {
	p.recolor = nil
}

// NormalizeColor parses a hex color and returns it as lowercase #rrggbb.
func NormalizeColor(s string) (string, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return "", ErrInvalidColor
	}
	return c.Hex(), nil
}
