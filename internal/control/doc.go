// Package control translates pointer input into changes on balls.
//
// A [Pointer] consumes surface-local pointer events:
//
//   - Press over a ball selects it as the drag target
//   - Move while dragging overwrites the target's velocity with the capped
//     press-to-pointer vector
//   - Release clears the target; the ball keeps its last velocity
//   - DoubleClick opens a recolor request, settled by ConfirmColor or
//     DismissColor
//
// # Usage
//
//	p := control.NewPointer(world, control.DefaultMaxSpeed)
//	p.Press(105, 98)
//	p.Move(140, 98) // velocity = (10, 0)
//	p.Release()
//
// Hit testing walks balls in list order and the first hit wins, so the ball
// drawn underneath is the one picked.
package control
