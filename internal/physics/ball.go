package physics

// Ball is a circular body. Identity is the pointer: two balls may share every
// field value at some instant and still be different balls.
type Ball struct {
	ID       int
	Position Vec2
	Velocity Vec2
	Radius   float64
	Color    string
}

func NewBall(id int, x, y, radius float64, color string) *Ball {
	return &Ball{
		ID:       id,
		Position: Vec2{X: x, Y: y},
		Radius:   radius,
		Color:    color,
	}
}

// Contains reports whether p lies inside or on the ball's edge.
func (b *Ball) Contains(p Vec2) bool {
	return b.Position.Dist(p) <= b.Radius
}

func (b *Ball) Speed() float64 {
	return b.Velocity.Len()
}

// KineticEnergy uses the squared radius as a stand-in for mass.
func (b *Ball) KineticEnergy() float64 {
	return 0.5 * b.Radius * b.Radius * b.Velocity.LenSquared()
}

// Surface is the bounded playing area [0, Width] x [0, Height].
type Surface struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

func (s Surface) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Inside reports whether the whole disc of b lies within the surface.
func (s Surface) Inside(b *Ball) bool {
	r := b.Radius
	return b.Position.X >= r && b.Position.X <= s.Width-r &&
		b.Position.Y >= r && b.Position.Y <= s.Height-r
}
