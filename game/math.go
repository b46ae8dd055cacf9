package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ClampFloat clamps the given value to the given range.
func ClampFloat(num, min, max float32) float32 {
	if num < min {
		return min
	}
	return math32.Min(num, max)
}

// Float32ApproxEq determines whether two floating point numbers are close enough
// to each other by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// Vec3HzDistSqr returns the squared horizontal distance in a vector.
func Vec3HzDistSqr(vec3 mgl32.Vec3) float32 {
	return vec3.X()*vec3.X() + vec3.Z()*vec3.Z()
}

// Vec3HzDist returns the horizontal distance in a vector.
func Vec3HzDist(vec3 mgl32.Vec3) float32 {
	return math32.Sqrt(Vec3HzDistSqr(vec3))
}

// DirectionVector returns a unit look vector from the given yaw and pitch, both
// in radians. Yaw rotates about the Y axis, pitch about the local X axis.
func DirectionVector(yaw, pitch float32) mgl32.Vec3 {
	m := math32.Cos(pitch)
	return mgl32.Vec3{
		-m * math32.Sin(yaw),
		-math32.Sin(pitch),
		-m * math32.Cos(yaw),
	}
}

// YawVectors returns the horizontal forward and right unit vectors for the
// given yaw in radians.
func YawVectors(yaw float32) (fwd, right mgl32.Vec3) {
	sin, cos := math32.Sin(yaw), math32.Cos(yaw)
	fwd = mgl32.Vec3{-sin, 0, -cos}
	right = mgl32.Vec3{cos, 0, -sin}
	return fwd, right
}

// AbsVec3 returns the given vector with all values switched to their absolute
// values.
func AbsVec3(vec mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{math32.Abs(vec.X()), math32.Abs(vec.Y()), math32.Abs(vec.Z())}
}

// ClipVelocity projects a velocity onto the plane described by the given unit
// normal, removing the component that points into the plane.
func ClipVelocity(vel, normal mgl32.Vec3) mgl32.Vec3 {
	backoff := vel.Dot(normal)
	if backoff >= 0 {
		return vel
	}
	return vel.Sub(normal.Mul(backoff))
}

// ProjectOnPlane slides a direction along the plane described by the given unit
// normal and re-normalizes it, returning false for degenerate results.
func ProjectOnPlane(dir, normal mgl32.Vec3) (mgl32.Vec3, bool) {
	projected := dir.Sub(normal.Mul(dir.Dot(normal)))
	if projected.LenSqr() < 1e-12 {
		return mgl32.Vec3{}, false
	}
	return projected.Normalize(), true
}
