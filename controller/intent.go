package controller

import "github.com/go-gl/mathgl/mgl32"

// Intent is the normalized per-tick input snapshot supplied by the host's
// input adapter. It is read-only to the core.
//
// Pitch must be pre-clamped by the producer to (-pi/2, pi/2) exclusive; the
// core documents this precondition and does not re-validate it. MoveAxis
// components are expected in [-1, 1] with diagonal input pre-normalized by the
// caller.
type Intent struct {
	// Yaw and Pitch are the look angles in radians.
	Yaw   float32
	Pitch float32

	// MoveAxis is the desired movement on the horizontal plane: X strafes
	// right, Y moves forward.
	MoveAxis mgl32.Vec2

	// Held intents.
	Jump   bool
	Crouch bool
	Sprint bool

	// NoclipToggle is edge-triggered: true only on the tick the bind was
	// pressed.
	NoclipToggle bool
}
