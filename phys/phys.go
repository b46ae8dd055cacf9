// Package phys defines the narrow capability surface the movement core expects
// from a physics backend. The core never depends on a concrete engine; it asks
// for a downward shape cast, a slid displacement, and an overlap test, and
// reconciles the answers itself.
package phys

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrCollisionQueryFailed is wrapped by every error a backend returns. A failed
// query fails the whole tick for that entity; the caller must leave the entity
// state untouched rather than retry within the tick.
var ErrCollisionQueryFailed = errors.New("collision query failed")

// Shape is the player's collision volume, approximated as a vertical box with a
// feet origin: it spans Radius on either side of the origin on X and Z, and
// 2*HalfHeight upward from the origin on Y.
type Shape struct {
	Radius     float32
	HalfHeight float32
}

// Height returns the full height of the shape.
func (s Shape) Height() float32 {
	return s.HalfHeight * 2
}

// GroundHit describes the nearest surface found by a downward shape cast.
type GroundHit struct {
	// Normal is the unit surface normal at the contact point.
	Normal mgl32.Vec3
	// Distance is how far the shape travelled before contact, >= 0.
	Distance float32
	// Point is the contact point in world space.
	Point mgl32.Vec3
}

// Contact is a blocking surface reported by MoveAndSlide.
type Contact struct {
	Normal mgl32.Vec3
}

// MoveResult is the outcome of a slid displacement request.
type MoveResult struct {
	// Displacement is the movement actually performed, component-wise clipped
	// against obstacles.
	Displacement mgl32.Vec3
	// Contacts holds one entry per axis plane that blocked part of the
	// requested displacement.
	Contacts []Contact
	// Stepped reports that the horizontal displacement was preserved by
	// climbing a sub-step-height ledge.
	Stepped bool
}

// Backend is implemented once per physics engine. All calls are synchronous
// and must complete within the tick.
type Backend interface {
	// GroundQuery casts the shape downward from pos by at most maxDist and
	// reports the nearest surface, or ok=false when nothing is within reach.
	GroundQuery(pos mgl32.Vec3, shape Shape, maxDist float32) (hit GroundHit, ok bool, err error)

	// MoveAndSlide displaces the shape by disp, sliding along any obstacles,
	// and reports the achieved displacement plus the blocking contacts.
	MoveAndSlide(pos mgl32.Vec3, shape Shape, disp mgl32.Vec3) (MoveResult, error)

	// Overlaps reports whether the shape placed at pos intersects any solid.
	Overlaps(pos mgl32.Vec3, shape Shape) (bool, error)
}
