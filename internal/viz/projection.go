package viz

import (
	"math"

	"github.com/san-kum/ballsim/internal/physics"
)

// Projection maps surface coordinates onto braille sub-pixels and terminal
// cells back onto the surface. One uniform scale keeps circles round, since a
// braille dot is roughly square.
type Projection struct {
	Scale     float64
	OriginCol int
	OriginRow int
}

// FitProjection picks the largest scale at which the surface fits in cols x
// rows cells whose top-left cell is (originCol, originRow).
func FitProjection(s physics.Surface, cols, rows, originCol, originRow int) Projection {
	p := Projection{OriginCol: originCol, OriginRow: originRow}
	if s.IsZero() || cols <= 0 || rows <= 0 {
		return p
	}
	p.Scale = math.Min(float64(cols*2)/s.Width, float64(rows*4)/s.Height)
	return p
}

func (p Projection) Valid() bool { return p.Scale > 0 }

// CanvasSize returns the cell dimensions needed to hold the surface.
func (p Projection) CanvasSize(s physics.Surface) (cols, rows int) {
	if !p.Valid() {
		return 0, 0
	}
	cols = int(math.Ceil(s.Width * p.Scale / 2))
	rows = int(math.Ceil(s.Height * p.Scale / 4))
	return cols, rows
}

// ToSub maps a surface point to sub-pixel coordinates.
func (p Projection) ToSub(x, y float64) (int, int) {
	return int(math.Floor(x * p.Scale)), int(math.Floor(y * p.Scale))
}

func (p Projection) Length(d float64) int {
	return int(math.Round(d * p.Scale))
}

// ToSurface maps a terminal cell to the surface point under its center.
func (p Projection) ToSurface(col, row int) (float64, float64) {
	if !p.Valid() {
		return -1, -1
	}
	subX := float64((col-p.OriginCol)*2) + 1
	subY := float64((row-p.OriginRow)*4) + 2
	return subX / p.Scale, subY / p.Scale
}
