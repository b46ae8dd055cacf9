package controller

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/strafekit/strafekit/game"
)

// moveWithCollisions asks the backend to displace the collider by velocity*dt,
// sliding along obstacles. Walkable contacts are left for the next tick's
// ground query to classify; steeper-than-walkable contacts are treated as
// walls: the velocity is clipped against them and any remaining displacement
// is projected onto the contact plane and re-attempted once.
func (s *Simulator) moveWithCollisions(st *State, res *Result, dt float32) error {
	shape := st.Shape(s.cfg)
	disp := st.Vel.Mul(dt)

	mv, err := s.backend.MoveAndSlide(st.Pos, shape, disp)
	if err != nil {
		return queryFailed("move and slide", err)
	}

	achieved := mv.Displacement
	vel := st.Vel
	var steepNormal mgl32.Vec3
	steep := false
	for _, c := range mv.Contacts {
		if s.cfg.Walkable(c.Normal) {
			continue
		}
		vel = game.ClipVelocity(vel, c.Normal)
		steepNormal = c.Normal
		steep = true
	}

	if steep {
		remaining := disp.Sub(achieved)
		slid := game.ClipVelocity(remaining, steepNormal)
		if slid.LenSqr() > 1e-12 {
			retry, err := s.backend.MoveAndSlide(st.Pos.Add(achieved), shape, slid)
			if err != nil {
				return queryFailed("move and slide retry", err)
			}
			achieved = achieved.Add(retry.Displacement)
			for _, c := range retry.Contacts {
				if !s.cfg.Walkable(c.Normal) {
					vel = game.ClipVelocity(vel, c.Normal)
				}
			}
		}
	}

	newPos := st.Pos.Add(achieved)

	// Step-down snap: a grounded entity walking off a stair lip within the
	// snap distance is glued to the lower surface instead of going airborne
	// for a tick.
	if st.OnGround && !res.Jumped && vel.Y() <= 0 {
		hit, ok, err := s.backend.GroundQuery(newPos, shape, s.cfg.SnapDistance)
		if err != nil {
			return queryFailed("snap query", err)
		}
		if ok && s.cfg.Walkable(hit.Normal) && hit.Distance > 1e-5 {
			newPos[1] -= hit.Distance
			res.StepSnapped = true
			s.trace("step snap by %v", hit.Distance)
		}
	}

	st.SetPos(newPos)
	st.SetVel(vel)
	st.SetMov(achieved)
	res.Displacement = achieved
	return nil
}
