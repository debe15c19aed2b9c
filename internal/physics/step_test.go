package physics_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballsim/internal/physics"
)

var _ = Describe("Step", func() {
	var (
		surface physics.Surface
		params  physics.Params
	)

	BeforeEach(func() {
		surface = physics.Surface{Width: 900, Height: 500}
		params = physics.DefaultParams()
	})

	Describe("Integrate", func() {
		It("adds the velocity to the position once per frame", func() {
			b := physics.NewBall(0, 100, 100, 20, "#ff0000")
			b.Velocity = physics.NewVec2(3, -2)

			physics.Integrate(b)

			Expect(b.Position).To(Equal(physics.NewVec2(103, 98)))
			Expect(b.Velocity).To(Equal(physics.NewVec2(3, -2)))
		})
	})

	Describe("ResolveWalls", func() {
		It("flips and damps vx on the left wall and clamps x", func() {
			b := physics.NewBall(0, 19, 250, 20, "#ff0000")
			b.Velocity = physics.NewVec2(-5, 0)

			physics.Integrate(b)
			hitX, hitY := physics.ResolveWalls(b, surface, params.WallRestitution)

			Expect(hitX).To(BeTrue())
			Expect(hitY).To(BeFalse())
			Expect(b.Velocity.X).To(BeNumerically("~", 1.5, 1e-12))
			Expect(b.Position.X).To(Equal(20.0))
		})

		It("reflects both axes on a corner hit", func() {
			b := physics.NewBall(0, 885, 485, 20, "#ff0000")
			b.Velocity = physics.NewVec2(10, 10)

			physics.Integrate(b)
			hitX, hitY := physics.ResolveWalls(b, surface, params.WallRestitution)

			Expect(hitX).To(BeTrue())
			Expect(hitY).To(BeTrue())
			Expect(b.Velocity.X).To(BeNumerically("~", -3, 1e-12))
			Expect(b.Velocity.Y).To(BeNumerically("~", -3, 1e-12))
			Expect(b.Position).To(Equal(physics.NewVec2(880, 480)))
		})

		It("clamps regardless of overshoot magnitude", func() {
			b := physics.NewBall(0, 450, 250, 20, "#ff0000")
			b.Velocity = physics.NewVec2(5000, 0)

			physics.Integrate(b)
			physics.ResolveWalls(b, surface, params.WallRestitution)

			Expect(b.Position.X).To(Equal(880.0))
			Expect(b.Velocity.X).To(BeNumerically("~", -1500, 1e-9))
		})

		It("leaves a ball away from the walls alone", func() {
			b := physics.NewBall(0, 450, 250, 20, "#ff0000")
			b.Velocity = physics.NewVec2(4, 4)

			hitX, hitY := physics.ResolveWalls(b, surface, params.WallRestitution)

			Expect(hitX || hitY).To(BeFalse())
			Expect(b.Velocity).To(Equal(physics.NewVec2(4, 4)))
		})
	})

	Describe("ResolveCollisions", func() {
		It("applies equal and opposite impulses to an overlapping pair", func() {
			a := physics.NewBall(0, 100, 100, 20, "#ff0000")
			b := physics.NewBall(1, 130, 100, 20, "#00ff00")
			a.Velocity = physics.NewVec2(2, 0)
			b.Velocity = physics.NewVec2(-1, 0)
			va, vb := a.Velocity, b.Velocity

			contacts := physics.ResolveCollisions([]*physics.Ball{a, b}, params.ImpulseScale)

			Expect(contacts).To(HaveLen(1))
			imp := contacts[0].Impulse
			Expect(imp.X).To(BeNumerically("~", 0.45, 1e-12))
			Expect(imp.Y).To(BeNumerically("~", 0, 1e-12))

			dA := a.Velocity.Sub(va)
			dB := b.Velocity.Sub(vb)
			Expect(dA.X).To(BeNumerically("~", -dB.X, 1e-12))
			Expect(dA.Y).To(BeNumerically("~", -dB.Y, 1e-12))
		})

		It("weights the impulse by the first ball's share of the radii", func() {
			a := physics.NewBall(0, 100, 100, 30, "#ff0000")
			b := physics.NewBall(1, 100, 130, 10, "#00ff00")
			b.Velocity = physics.NewVec2(0, -4)

			contacts := physics.ResolveCollisions([]*physics.Ball{a, b}, 0.5)

			Expect(contacts).To(HaveLen(1))
			// impulse 0.5*4 = 2, angle pi/2, share 30/40
			Expect(contacts[0].Impulse.X).To(BeNumerically("~", 0, 1e-12))
			Expect(contacts[0].Impulse.Y).To(BeNumerically("~", 1.5, 1e-12))
			Expect(a.Velocity.Y).To(BeNumerically("~", -1.5, 1e-12))
			Expect(b.Velocity.Y).To(BeNumerically("~", -2.5, 1e-12))
		})

		It("ignores pairs that only touch", func() {
			a := physics.NewBall(0, 100, 100, 20, "#ff0000")
			b := physics.NewBall(1, 140, 100, 20, "#00ff00")
			b.Velocity = physics.NewVec2(-1, 0)

			Expect(physics.ResolveCollisions([]*physics.Ball{a, b}, params.ImpulseScale)).To(BeEmpty())
			Expect(a.Velocity.IsZero()).To(BeTrue())
		})

		It("handles coincident centers without producing NaN", func() {
			a := physics.NewBall(0, 200, 200, 20, "#ff0000")
			b := physics.NewBall(1, 200, 200, 20, "#00ff00")
			b.Velocity = physics.NewVec2(0, 3)

			contacts := physics.ResolveCollisions([]*physics.Ball{a, b}, params.ImpulseScale)

			Expect(contacts).To(HaveLen(1))
			Expect(a.Velocity.IsValid()).To(BeTrue())
			Expect(b.Velocity.IsValid()).To(BeTrue())
			Expect(a.Velocity.X).To(BeNumerically("~", -0.45, 1e-12))
			Expect(b.Velocity.X).To(BeNumerically("~", 0.45, 1e-12))
		})

		It("visits pairs once each in index order", func() {
			balls := []*physics.Ball{
				physics.NewBall(0, 100, 100, 20, "#ff0000"),
				physics.NewBall(1, 110, 100, 20, "#00ff00"),
				physics.NewBall(2, 120, 100, 20, "#0000ff"),
			}

			contacts := physics.ResolveCollisions(balls, params.ImpulseScale)

			Expect(contacts).To(HaveLen(3))
			Expect([2]int{contacts[0].I, contacts[0].J}).To(Equal([2]int{0, 1}))
			Expect([2]int{contacts[1].I, contacts[1].J}).To(Equal([2]int{0, 2}))
			Expect([2]int{contacts[2].I, contacts[2].J}).To(Equal([2]int{1, 2}))
		})
	})

	Describe("overlap across frames", func() {
		It("does not separate interpenetrating balls", func() {
			a := physics.NewBall(0, 300, 200, 20, "#ff0000")
			b := physics.NewBall(1, 310, 200, 20, "#00ff00")
			balls := []*physics.Ball{a, b}

			for i := 0; i < 5; i++ {
				report := physics.Step(balls, surface, params)
				Expect(report.Contacts).To(HaveLen(1))
			}
			Expect(a.Position).To(Equal(physics.NewVec2(300, 200)))
			Expect(b.Position).To(Equal(physics.NewVec2(310, 200)))
		})
	})

	Describe("reference scene", func() {
		It("stays stationary without input", func() {
			a := physics.NewBall(0, 100, 100, 20, "#ff0000")
			b := physics.NewBall(1, 500, 200, 20, "#00ff00")
			balls := []*physics.Ball{a, b}

			for i := 0; i < 1000; i++ {
				report := physics.Step(balls, surface, params)
				Expect(report.Bounces).To(BeEmpty())
				Expect(report.Contacts).To(BeEmpty())
			}

			Expect(a.Position).To(Equal(physics.NewVec2(100, 100)))
			Expect(b.Position).To(Equal(physics.NewVec2(500, 200)))
			Expect(a.Velocity.IsZero()).To(BeTrue())
			Expect(b.Velocity.IsZero()).To(BeTrue())
		})
	})

	Describe("containment", func() {
		It("keeps every ball inside the surface after every frame", func() {
			rng := rand.New(rand.NewSource(7))
			balls := make([]*physics.Ball, 12)
			for i := range balls {
				r := 5 + rng.Float64()*25
				b := physics.NewBall(i, r+rng.Float64()*(surface.Width-2*r), r+rng.Float64()*(surface.Height-2*r), r, "#ffffff")
				b.Velocity = physics.Polar(rng.Float64()*60, rng.Float64()*2*math.Pi)
				balls[i] = b
			}

			for frame := 0; frame < 2000; frame++ {
				physics.Step(balls, surface, params)
				for _, b := range balls {
					Expect(surface.Inside(b)).To(BeTrue(), "ball %d escaped at frame %d: %+v", b.ID, frame, b.Position)
				}
			}
		})
	})
})
