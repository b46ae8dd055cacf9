package controller

import "github.com/go-gl/mathgl/mgl32"

// applyIntent handles the edge-triggered intents before the tick's mode is
// classified: the jump key-down edge queues a jump, releasing the key clears
// an unconsumed queue, and the noclip toggle flips the bypass flag.
func applyIntent(st *State, in Intent) {
	if in.Jump && !st.PressingJump {
		st.JumpQueued = true
	} else if !in.Jump {
		st.JumpQueued = false
	}
	st.PressingJump = in.Jump

	if in.NoclipToggle {
		st.Noclip = !st.Noclip
		if st.Noclip {
			st.OnGround = false
			st.GroundTick = 0
		}
	}
}

// classifyGround runs the ground query and settles the tick's mode. Regaining
// a walkable surface from the air discards the downward velocity component
// (the landing reset), unless a queued jump is about to overwrite it anyway.
func (s *Simulator) classifyGround(st *State, in Intent, res *Result) error {
	if st.Noclip {
		st.Mode = ModeNoclip
		st.OnGround = false
		return nil
	}

	wasGround := st.OnGround

	hit, ok, err := s.backend.GroundQuery(st.Pos, st.Shape(s.cfg), s.cfg.SnapDistance)
	if err != nil {
		return queryFailed("ground query", err)
	}

	grounded := ok && s.cfg.Walkable(hit.Normal)
	st.OnGround = grounded
	if grounded {
		st.GroundNormal = hit.Normal
	} else {
		st.GroundNormal = mgl32.Vec3{0, 1, 0}
		st.GroundTick = 0
	}

	if grounded && !wasGround {
		res.Landed = true
		if st.Vel.Y() < 0 && !st.JumpQueued {
			vel := st.Vel
			vel[1] = 0
			st.SetVel(vel)
		}
		s.trace("landed on normal=%v", st.GroundNormal)
	}

	switch {
	case grounded && s.crouched(st, in):
		st.Mode = ModeCrouched
	case grounded:
		st.Mode = ModeGround
	default:
		st.Mode = ModeAir
	}
	return nil
}

// crouched reports whether the ground sub-mode is the crouch: either the key
// is held, or the collider is still mostly crouched (including the ledge case
// where standing up is blocked).
func (s *Simulator) crouched(st *State, in Intent) bool {
	return in.Crouch || st.CrouchBlend >= 0.5
}
