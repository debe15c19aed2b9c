// Package viz renders the ball surface in the terminal and turns mouse and
// key events into pointer and simulation commands.
//
// The surface is drawn on a braille [Canvas] through a [Projection] that keeps
// circles round. Balls are drawn in list order, so later balls cover earlier
// ones where they overlap.
//
// # Controls
//
//	Drag         - launch a ball (velocity follows the drag, speed capped)
//	Double-click - open the color picker for a ball
//	Space        - pause/resume
//	.            - single step while paused
//	R            - reset the scene
//	Tab, Up/Down - select and tune a physics parameter
//	T            - cycle color themes
//	?            - help
//
// In the color picker, Left/Right pick a swatch, # starts hex entry, Enter
// confirms and Esc dismisses without changing the ball.
package viz
