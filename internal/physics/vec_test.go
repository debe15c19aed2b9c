package physics_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballsim/internal/physics"
)

var _ = Describe("Vec2", func() {
	It("computes length and angle", func() {
		v := physics.NewVec2(3, 4)
		Expect(v.Len()).To(Equal(5.0))
		Expect(v.LenSquared()).To(Equal(25.0))
		Expect(physics.Vec2{}.Angle()).To(Equal(0.0))
		Expect(physics.NewVec2(0, 1).Angle()).To(BeNumerically("~", math.Pi/2, 1e-12))
	})

	It("builds polar vectors", func() {
		v := physics.Polar(10, math.Pi)
		Expect(v.X).To(BeNumerically("~", -10, 1e-12))
		Expect(v.Y).To(BeNumerically("~", 0, 1e-12))
	})

	It("detects invalid components", func() {
		Expect(physics.NewVec2(math.NaN(), 0).IsValid()).To(BeFalse())
		Expect(physics.NewVec2(0, math.Inf(1)).IsValid()).To(BeFalse())
		Expect(physics.NewVec2(1, 2).IsValid()).To(BeTrue())
	})
})

var _ = Describe("Ball", func() {
	It("contains points on its edge", func() {
		b := physics.NewBall(0, 100, 100, 20, "#ff0000")
		Expect(b.Contains(physics.NewVec2(120, 100))).To(BeTrue())
		Expect(b.Contains(physics.NewVec2(120.01, 100))).To(BeFalse())
	})

	It("validates radius and fit", func() {
		s := physics.Surface{Width: 900, Height: 500}
		Expect(physics.Validate(physics.NewBall(0, 100, 100, 20, "#fff"), s)).To(Succeed())
		Expect(errors.Is(physics.Validate(physics.NewBall(0, 100, 100, 0, "#fff"), s), physics.ErrInvalidRadius)).To(BeTrue())
		Expect(errors.Is(physics.Validate(physics.NewBall(0, 100, 100, 300, "#fff"), s), physics.ErrOutOfBounds)).To(BeTrue())
	})
})

var _ = Describe("Params", func() {
	It("defaults both constants to the reference value", func() {
		p := physics.DefaultParams()
		Expect(p.WallRestitution).To(Equal(0.3))
		Expect(p.ImpulseScale).To(Equal(0.3))
	})

	It("tunes parameters by name", func() {
		p := physics.DefaultParams()
		Expect(p.SetParam("impulse_scale", 0.8)).To(Succeed())
		Expect(p.ImpulseScale).To(Equal(0.8))
		Expect(p.WallRestitution).To(Equal(0.3))
		Expect(p.ParamNames()).To(Equal([]string{"impulse_scale", "wall_restitution"}))
	})

	It("rejects unknown names and bad values", func() {
		p := physics.DefaultParams()
		Expect(p.SetParam("gravity", 1)).NotTo(Succeed())
		Expect(errors.Is(p.SetParam("wall_restitution", -1), physics.ErrParameterBounds)).To(BeTrue())
	})
})
