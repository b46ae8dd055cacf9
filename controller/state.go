package controller

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/strafekit/strafekit/phys"
)

// MoveMode classifies the controller for a tick and selects its acceleration
// model.
type MoveMode uint8

const (
	ModeGround MoveMode = iota
	ModeAir
	ModeCrouched
	ModeNoclip
)

func (m MoveMode) String() string {
	switch m {
	case ModeGround:
		return "ground"
	case ModeAir:
		return "air"
	case ModeCrouched:
		return "crouched"
	case ModeNoclip:
		return "noclip"
	}
	return "unknown"
}

// State is the mutable kinematic state of one player entity. It is owned by
// exactly one writer: the Simulator mutates a copy once per tick and returns
// it; no other code may write it. Sharing one State across goroutines without
// external synchronization is not permitted.
type State struct {
	Pos, LastPos mgl32.Vec3
	Vel, LastVel mgl32.Vec3
	Mov, LastMov mgl32.Vec3

	Mode     MoveMode
	OnGround bool

	// GroundNormal is only meaningful while OnGround is set.
	GroundNormal mgl32.Vec3

	// GroundTick counts consecutive grounded ticks, saturating. Friction only
	// applies from the second grounded tick, which is what lets a bunny-hop
	// carry its speed through the landing frame.
	GroundTick uint8

	// JumpQueued is set on the jump key-down edge and cleared either when a
	// grounded tick consumes it or when the key is released.
	JumpQueued   bool
	PressingJump bool

	// CrouchBlend is 0 fully standing, 1 fully crouched.
	CrouchBlend float32

	Noclip bool
}

// NewState returns the spawn state at the given feet position: standing, at
// rest, grounded pending the first ground query.
func NewState(pos mgl32.Vec3) State {
	return State{
		Pos:          pos,
		LastPos:      pos,
		Mode:         ModeGround,
		OnGround:     true,
		GroundNormal: mgl32.Vec3{0, 1, 0},
	}
}

func (s *State) SetPos(newPos mgl32.Vec3) {
	s.LastPos = s.Pos
	s.Pos = newPos
}

func (s *State) SetVel(newVel mgl32.Vec3) {
	s.LastVel = s.Vel
	s.Vel = newVel
}

func (s *State) SetMov(newMov mgl32.Vec3) {
	s.LastMov = s.Mov
	s.Mov = newMov
}

// Height returns the current collider height, blended between standing and
// crouched.
func (s State) Height(cfg Config) float32 {
	return cfg.StandHeight + (cfg.CrouchHeight-cfg.StandHeight)*s.CrouchBlend
}

// HalfHeight returns half the current collider height, for hosts that attach
// center-origin collision shapes.
func (s State) HalfHeight(cfg Config) float32 {
	return s.Height(cfg) * 0.5
}

// EyeOffset returns the camera height above the feet origin, blended between
// standing and crouched.
func (s State) EyeOffset(cfg Config) float32 {
	return cfg.EyeOffsetStand + (cfg.EyeOffsetCrouch-cfg.EyeOffsetStand)*s.CrouchBlend
}

// EyePosition returns the world-space camera anchor for the rendering adapter.
func (s State) EyePosition(cfg Config) mgl32.Vec3 {
	return s.Pos.Add(mgl32.Vec3{0, s.EyeOffset(cfg), 0})
}

// Shape returns the collision shape at the current crouch blend.
func (s State) Shape(cfg Config) phys.Shape {
	return phys.Shape{Radius: cfg.Radius, HalfHeight: s.HalfHeight(cfg)}
}

// standShape returns the collision shape at full standing height, used for the
// stand-up overlap gate.
func (s State) standShape(cfg Config) phys.Shape {
	return phys.Shape{Radius: cfg.Radius, HalfHeight: cfg.StandHeight * 0.5}
}
