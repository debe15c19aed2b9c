package physics

import "errors"

var (
	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("physics: parameter out of valid bounds")

	// ErrInvalidRadius indicates a ball with a non-positive radius.
	ErrInvalidRadius = errors.New("physics: radius must be positive")

	// ErrOutOfBounds indicates a ball that does not fit inside the surface.
	ErrOutOfBounds = errors.New("physics: ball does not fit inside the surface")
)

// Validate checks the static invariants of a ball on a surface.
func Validate(b *Ball, s Surface) error {
	if !(b.Radius > 0) {
		return ErrInvalidRadius
	}
	if 2*b.Radius > s.Width || 2*b.Radius > s.Height {
		return ErrOutOfBounds
	}
	if !b.Position.IsValid() || !b.Velocity.IsValid() {
		return ErrParameterBounds
	}
	return nil
}
