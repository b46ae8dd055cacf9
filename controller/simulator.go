// Package controller implements a Source-style first-person movement core as a
// per-tick state transition: friction and accelerate-to-cap on the ground,
// per-direction-capped air strafing, chained jumps, crouching with ledge
// protection, and a free-fly noclip mode. The core talks to its physics engine
// only through the phys capability interfaces.
package controller

import (
	"errors"
	"fmt"

	"github.com/strafekit/strafekit/phys"
)

// Simulator advances controller state, one entity per call. The zero value is
// not usable; construct with NewSimulator so the config is validated exactly
// once. A Simulator holds no per-entity data and may be shared across entities
// and goroutines as long as each entity's State has a single writer.
type Simulator struct {
	backend phys.Backend
	cfg     Config

	// Debugf receives internal trace logs for callers that need deep
	// diagnostics. Nil disables tracing.
	Debugf func(format string, args ...any)
}

func NewSimulator(backend phys.Backend, cfg Config) (*Simulator, error) {
	if backend == nil {
		return nil, errors.New("controller: nil physics backend")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("controller: %w", err)
	}
	return &Simulator{backend: backend, cfg: cfg}, nil
}

// Config returns the validated tuning record.
func (s *Simulator) Config() Config {
	return s.cfg
}

// Advance runs one simulation tick. The input state is taken by value and the
// successor state is returned; on error the input state is returned unchanged
// — the tick failed as a whole and nothing was partially applied. The only
// side effects are the synchronous calls into the physics backend.
func (s *Simulator) Advance(st State, in Intent, dt float32) (State, Result, error) {
	var res Result
	if dt <= 0 {
		res = s.snapshot(st)
		return st, res, nil
	}
	orig := st

	applyIntent(&st, in)

	if st.Noclip {
		s.noclipVelocity(&st, in)
		st.Mode = ModeNoclip
		st.SetPos(st.Pos.Add(st.Vel.Mul(dt)))
		st.SetMov(st.Pos.Sub(st.LastPos))
		res = s.snapshot(st)
		res.Displacement = st.Mov
		res.SmoothedVelocity = st.LastVel.Add(st.Vel).Mul(0.5)
		return st, res, nil
	}

	initVel := st.Vel
	if err := s.classifyGround(&st, in, &res); err != nil {
		return orig, Result{}, err
	}
	if err := s.updateCrouch(&st, in, dt); err != nil {
		return orig, Result{}, err
	}

	if st.OnGround {
		s.groundAccelerate(&st, in, dt, &res)
	} else {
		s.airAccelerate(&st, in, dt)
	}

	if err := s.moveWithCollisions(&st, &res, dt); err != nil {
		return orig, Result{}, err
	}

	res.Position = st.Pos
	res.Velocity = st.Vel
	res.SmoothedVelocity = initVel.Add(st.Vel).Mul(0.5)
	res.Mode = st.Mode
	res.OnGround = st.OnGround
	return st, res, nil
}

func (s *Simulator) snapshot(st State) Result {
	return Result{
		Position:         st.Pos,
		Velocity:         st.Vel,
		SmoothedVelocity: st.Vel,
		Mode:             st.Mode,
		OnGround:         st.OnGround,
	}
}

func (s *Simulator) trace(format string, args ...any) {
	if s.Debugf != nil {
		s.Debugf(format, args...)
	}
}

// queryFailed tags a backend failure so callers can match it with errors.Is
// against phys.ErrCollisionQueryFailed regardless of what the backend wrapped.
func queryFailed(op string, err error) error {
	if !errors.Is(err, phys.ErrCollisionQueryFailed) {
		err = fmt.Errorf("%w: %v", phys.ErrCollisionQueryFailed, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
