package controller

import "github.com/go-gl/mathgl/mgl32"

// Result captures what a single Advance did, for hosts that want to feed the
// physics body or camera without inspecting the whole state.
type Result struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3

	// SmoothedVelocity is the average of the tick's start and end velocity,
	// the value a host should hand to its rigid body for visually stable
	// interpolation.
	SmoothedVelocity mgl32.Vec3

	// Displacement is the movement actually performed this tick after
	// collision resolution.
	Displacement mgl32.Vec3

	Mode     MoveMode
	OnGround bool

	// Jumped is set on the tick a queued jump was consumed.
	Jumped bool
	// Landed is set on the tick an Air to Ground transition happened.
	Landed bool
	// StepSnapped is set when the step-down pass glued the entity to a
	// slightly lower surface instead of leaving it airborne for a tick.
	StepSnapped bool
}
