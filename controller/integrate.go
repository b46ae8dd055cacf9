package controller

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/strafekit/strafekit/game"
)

// applyFriction bleeds horizontal speed. Below the stop-speed floor the drop is
// computed from the floor instead of the actual speed, so a slow walk stops in
// a bounded number of ticks rather than decaying asymptotically.
func applyFriction(vel mgl32.Vec3, lateralSpeed, friction, stopSpeed, dt float32) mgl32.Vec3 {
	control := math32.Max(lateralSpeed, stopSpeed)
	drop := control * friction * dt
	scale := math32.Max((lateralSpeed-drop)/lateralSpeed, 0)
	vel[0] *= scale
	vel[2] *= scale
	return vel
}

// accelerate adds speed along wishDir, discounting the applied acceleration so
// it never pushes the velocity's component along wishDir past wishSpeed. The
// perpendicular component is left alone, which is exactly what allows redirects
// to keep speed above the nominal cap.
func accelerate(vel mgl32.Vec3, wishDir mgl32.Vec3, wishSpeed, accel, dt float32) mgl32.Vec3 {
	addSpeed := wishSpeed - vel.Dot(wishDir)
	if addSpeed <= 0 {
		return vel
	}
	accelSpeed := math32.Min(accel*wishSpeed*dt, addSpeed)
	vel[0] += wishDir.X() * accelSpeed
	vel[2] += wishDir.Z() * accelSpeed
	return vel
}

// wishDirection derives the horizontal wish direction and raw wish speed from
// the intent. A zero move axis yields ok=false and acceleration is skipped
// entirely.
func (c Config) wishDirection(in Intent) (dir mgl32.Vec3, speed float32, ok bool) {
	fwd, right := game.YawVectors(in.Yaw)
	wish := fwd.Mul(in.MoveAxis.Y() * c.ForwardSpeed).Add(right.Mul(in.MoveAxis.X() * c.SideSpeed))
	speed = wish.Len()
	if speed <= 1e-6 {
		return mgl32.Vec3{}, 0, false
	}
	return wish.Mul(1 / speed), speed, true
}

// groundAccelerate runs the grounded integration: friction (from the second
// consecutive grounded tick), then accelerate toward the wish direction
// projected onto the ground plane, then an optional queued jump.
func (s *Simulator) groundAccelerate(st *State, in Intent, dt float32, res *Result) {
	vel := st.Vel
	lateralSpeed := game.Vec3HzDist(vel)

	if st.GroundTick >= 1 {
		if lateralSpeed > s.cfg.FrictionCutoff {
			vel = applyFriction(vel, lateralSpeed, s.cfg.Friction, s.cfg.StopSpeed, dt)
		} else {
			vel[0] = 0
			vel[2] = 0
		}
		vel[1] = 0
	}

	if wishDir, wishSpeed, ok := s.cfg.wishDirection(in); ok {
		if projected, pok := game.ProjectOnPlane(wishDir, st.GroundNormal); pok {
			wishDir = projected
		}
		maxSpeed := s.cfg.maxGroundSpeed(st.Mode == ModeCrouched, in.Sprint)
		wishSpeed = math32.Min(wishSpeed, maxSpeed)
		vel = accelerate(vel, wishDir, wishSpeed, s.cfg.Accel, dt)
	}

	if st.JumpQueued {
		vel[1] = s.cfg.JumpSpeed
		st.JumpQueued = false
		st.OnGround = false
		st.GroundTick = 0
		res.Jumped = true
		s.trace("jump consumed, vel.y=%v", vel[1])
	} else {
		st.GroundTick = saturatingInc(st.GroundTick)
	}

	st.SetVel(vel)
}

// airAccelerate runs the airborne integration: Quake air acceleration with the
// per-direction speed cap, gravity, and a hard ratio clamp on total horizontal
// speed.
func (s *Simulator) airAccelerate(st *State, in Intent, dt float32) {
	vel := st.Vel
	st.GroundTick = 0

	if wishDir, wishSpeed, ok := s.cfg.wishDirection(in); ok {
		wishSpeed = math32.Min(wishSpeed, s.cfg.AirSpeedCap)
		vel = accelerate(vel, wishDir, wishSpeed, s.cfg.AirAccel, dt)
	}

	vel[1] -= s.cfg.Gravity * dt

	airSpeed := game.Vec3HzDist(vel)
	if airSpeed > s.cfg.MaxAirSpeed {
		ratio := s.cfg.MaxAirSpeed / airSpeed
		vel[0] *= ratio
		vel[2] *= ratio
	}

	st.SetVel(vel)
}

// noclipVelocity derives velocity straight from the look-relative move
// direction, with a friction decay on zero input. Gravity and collision never
// apply in this mode.
func (s *Simulator) noclipVelocity(st *State, in Intent) {
	vel := st.Vel
	if in.MoveAxis == (mgl32.Vec2{}) {
		friction := game.ClampFloat(s.cfg.NoclipFriction, 0, 1)
		vel = vel.Mul(1 - friction)
		if vel.LenSqr() < 1e-6 {
			vel = mgl32.Vec3{}
		}
		st.SetVel(vel)
		return
	}

	look := game.DirectionVector(in.Yaw, in.Pitch)
	_, right := game.YawVectors(in.Yaw)
	dir := look.Mul(in.MoveAxis.Y()).Add(right.Mul(in.MoveAxis.X()))
	if dir.LenSqr() < 1e-12 {
		st.SetVel(mgl32.Vec3{})
		return
	}

	speed := s.cfg.NoclipSpeed
	if in.Sprint {
		speed = s.cfg.NoclipFastSpeed
	}
	st.SetVel(dir.Normalize().Mul(speed))
}

func saturatingInc(v uint8) uint8 {
	if v == ^uint8(0) {
		return v
	}
	return v + 1
}
