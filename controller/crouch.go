package controller

import (
	"github.com/strafekit/strafekit/assert"
	"github.com/strafekit/strafekit/game"
)

// updateCrouch advances the crouch blend toward the held direction. Standing
// up is gated on an overlap test at the full standing height: while anything
// solid is overhead the blend freezes, so the collider never partially pops
// through a ceiling.
//
// The blend is frozen entirely in noclip, where the overlap query has no
// meaning.
func (s *Simulator) updateCrouch(st *State, in Intent, dt float32) error {
	if st.Noclip {
		return nil
	}

	switch {
	case in.Crouch:
		st.CrouchBlend = game.ClampFloat(st.CrouchBlend+s.cfg.CrouchRate*dt, 0, 1)
	case st.CrouchBlend > 0:
		blocked, err := s.backend.Overlaps(st.Pos, st.standShape(s.cfg))
		if err != nil {
			return queryFailed("stand-up overlap", err)
		}
		if !blocked {
			st.CrouchBlend = game.ClampFloat(st.CrouchBlend-s.cfg.CrouchRate*dt, 0, 1)
		} else {
			s.trace("stand-up blocked overhead, blend held at %v", st.CrouchBlend)
		}
	}

	assert.IsTrue(st.CrouchBlend >= 0 && st.CrouchBlend <= 1, "crouch blend out of range: %v", st.CrouchBlend)
	return nil
}
