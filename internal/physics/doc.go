// Package physics implements the per-frame kinematics for circular bodies on
// a bounded 2D surface.
//
// A frame is one discrete advance with a unit time step:
//
//   - [Integrate]: explicit Euler, position += velocity
//   - [ResolveWalls]: per-axis reflection and clamping against the surface
//   - [ResolveCollisions]: single-pass pairwise impulse for overlapping balls
//
// [Step] runs all three in order over an ordered slice of balls.
//
// # Collision Model
//
// The pairwise resolver scales the impulse by the relative speed and the
// first ball's share of the combined radii. It does not separate overlapping
// balls, so a pair that stays interpenetrating is resolved again on every
// following frame:
//
//	params := physics.DefaultParams()
//	surface := physics.Surface{Width: 900, Height: 500}
//	report := physics.Step(balls, surface, params)
//	for _, c := range report.Contacts {
//	    fmt.Println(c.I, c.J, c.Impulse)
//	}
package physics
