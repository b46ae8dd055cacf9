package controller

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/strafekit/strafekit/game"
	"github.com/strafekit/strafekit/phys"
)

// mockBackend is a scriptable physics collaborator. The zero value reports
// flat ground directly underfoot and never blocks a move.
type mockBackend struct {
	noGround   bool
	groundHit  phys.GroundHit
	overlap    bool
	groundErr  error
	moveErr    error
	overlapErr error

	moveFn func(pos mgl32.Vec3, shape phys.Shape, disp mgl32.Vec3) (phys.MoveResult, error)
}

func (m *mockBackend) GroundQuery(pos mgl32.Vec3, shape phys.Shape, maxDist float32) (phys.GroundHit, bool, error) {
	if m.groundErr != nil {
		return phys.GroundHit{}, false, m.groundErr
	}
	if m.noGround {
		return phys.GroundHit{}, false, nil
	}
	hit := m.groundHit
	if hit.Normal == (mgl32.Vec3{}) {
		hit.Normal = mgl32.Vec3{0, 1, 0}
	}
	return hit, true, nil
}

func (m *mockBackend) MoveAndSlide(pos mgl32.Vec3, shape phys.Shape, disp mgl32.Vec3) (phys.MoveResult, error) {
	if m.moveErr != nil {
		return phys.MoveResult{}, m.moveErr
	}
	if m.moveFn != nil {
		return m.moveFn(pos, shape, disp)
	}
	return phys.MoveResult{Displacement: disp}, nil
}

func (m *mockBackend) Overlaps(pos mgl32.Vec3, shape phys.Shape) (bool, error) {
	if m.overlapErr != nil {
		return false, m.overlapErr
	}
	return m.overlap, nil
}

func newTestSim(t *testing.T, backend phys.Backend) *Simulator {
	t.Helper()
	sim, err := NewSimulator(backend, DefaultConfig())
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	return sim
}

const dt = float32(1.0 / 64.0)

func TestFrictionNeverIncreasesSpeed(t *testing.T) {
	sim := newTestSim(t, &mockBackend{})

	st := NewState(mgl32.Vec3{})
	st.Vel = mgl32.Vec3{5, 0, 0}

	lastSpeed := game.Vec3HzDist(st.Vel)
	for i := 0; i < 200; i++ {
		var err error
		st, _, err = sim.Advance(st, Intent{}, dt)
		if err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		speed := game.Vec3HzDist(st.Vel)
		if speed > lastSpeed+1e-5 {
			t.Fatalf("tick %d: friction increased speed %v -> %v", i, lastSpeed, speed)
		}
		lastSpeed = speed
	}
	if lastSpeed != 0 {
		t.Fatalf("expected speed to reach zero, got %v", lastSpeed)
	}
}

func TestAirStrafeGain(t *testing.T) {
	sim := newTestSim(t, &mockBackend{noGround: true})

	st := NewState(mgl32.Vec3{0, 10, 0})
	st.OnGround = false
	st.Mode = ModeAir
	st.Vel = mgl32.Vec3{0, 0, -5}

	theta := float32(1.4) // ~80 degrees, well inside the strafe envelope
	yaw := float32(0)
	speed := game.Vec3HzDist(st.Vel)

	for i := 0; i < 20; i++ {
		yaw += theta
		if i%2 == 1 {
			yaw -= 2 * theta
		}
		var err error
		st, _, err = sim.Advance(st, Intent{Yaw: yaw, MoveAxis: mgl32.Vec2{0, 1}}, dt)
		if err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		next := game.Vec3HzDist(st.Vel)
		if next < speed-1e-5 {
			t.Fatalf("tick %d: strafe lost speed %v -> %v", i, speed, next)
		}
		speed = next
	}
	if speed <= 5 {
		t.Fatalf("expected net strafe gain above 5, got %v", speed)
	}
	if speed > sim.Config().MaxAirSpeed+1e-4 {
		t.Fatalf("horizontal speed exceeded air clamp: %v", speed)
	}
}

func TestJumpDeterminism(t *testing.T) {
	for _, horizontal := range []mgl32.Vec3{{}, {7, 0, 0}, {3, 0, -4}} {
		sim := newTestSim(t, &mockBackend{})
		st := NewState(mgl32.Vec3{})
		st.Vel = horizontal

		st, res, err := sim.Advance(st, Intent{Jump: true}, dt)
		if err != nil {
			t.Fatal(err)
		}
		if !res.Jumped {
			t.Fatalf("jump not consumed for horizontal vel %v", horizontal)
		}
		if st.Vel.Y() != sim.Config().JumpSpeed {
			t.Fatalf("vel.y = %v, want exactly %v", st.Vel.Y(), sim.Config().JumpSpeed)
		}
		if st.OnGround {
			t.Fatal("grounded flag not cleared on jump tick")
		}
		if st.JumpQueued {
			t.Fatal("jump queue not cleared after consumption")
		}
	}
}

func TestJumpQueuedOncePerKeyDownEdge(t *testing.T) {
	sim := newTestSim(t, &mockBackend{noGround: true})
	st := NewState(mgl32.Vec3{0, 10, 0})
	st.OnGround = false

	// Key held across several airborne ticks: the queue must survive, but a
	// release without consumption clears it.
	var err error
	for i := 0; i < 3; i++ {
		st, _, err = sim.Advance(st, Intent{Jump: true}, dt)
		if err != nil {
			t.Fatal(err)
		}
		if !st.JumpQueued {
			t.Fatalf("tick %d: held jump lost its queue", i)
		}
	}
	st, _, err = sim.Advance(st, Intent{}, dt)
	if err != nil {
		t.Fatal(err)
	}
	if st.JumpQueued {
		t.Fatal("released jump left a stale queue")
	}
}

func TestLandingReset(t *testing.T) {
	sim := newTestSim(t, &mockBackend{})
	st := NewState(mgl32.Vec3{})
	st.OnGround = false
	st.Mode = ModeAir
	st.Vel = mgl32.Vec3{0, -50, 0}

	st, res, err := sim.Advance(st, Intent{}, dt)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Landed {
		t.Fatal("expected a landing")
	}
	if st.Vel.Y() != 0 {
		t.Fatalf("downward velocity not discarded on landing, vel.y=%v", st.Vel.Y())
	}
}

func TestLandingJumpSameTick(t *testing.T) {
	sim := newTestSim(t, &mockBackend{})
	st := NewState(mgl32.Vec3{})
	st.OnGround = false
	st.Mode = ModeAir
	st.Vel = mgl32.Vec3{4, -50, 0}

	st, res, err := sim.Advance(st, Intent{Jump: true}, dt)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Jumped {
		t.Fatal("queued jump not consumed on the landing tick")
	}
	if st.Vel.Y() != sim.Config().JumpSpeed {
		t.Fatalf("bunny hop launch speed = %v, want %v", st.Vel.Y(), sim.Config().JumpSpeed)
	}
	// The landing tick starts at GroundTick 0, so friction must not have
	// touched the carried horizontal speed.
	if st.Vel.X() != 4 {
		t.Fatalf("landing tick applied friction, vel.x=%v", st.Vel.X())
	}
}

func TestCrouchLedgeProtection(t *testing.T) {
	backend := &mockBackend{overlap: true}
	sim := newTestSim(t, backend)
	st := NewState(mgl32.Vec3{})
	st.CrouchBlend = 1

	st, _, err := sim.Advance(st, Intent{}, dt)
	if err != nil {
		t.Fatal(err)
	}
	if st.CrouchBlend != 1 {
		t.Fatalf("stand-up allowed under a ledge, blend=%v", st.CrouchBlend)
	}

	backend.overlap = false
	st, _, err = sim.Advance(st, Intent{}, dt)
	if err != nil {
		t.Fatal(err)
	}
	if st.CrouchBlend >= 1 {
		t.Fatalf("stand-up blocked with clear headroom, blend=%v", st.CrouchBlend)
	}
}

func TestNoclipBypassesGravityAndCollision(t *testing.T) {
	// Every backend call fails; noclip must never make one.
	failing := &mockBackend{
		groundErr:  errors.New("must not be called"),
		moveErr:    errors.New("must not be called"),
		overlapErr: errors.New("must not be called"),
	}
	sim := newTestSim(t, failing)

	st := NewState(mgl32.Vec3{1, 2, 3})
	st, _, err := sim.Advance(st, Intent{NoclipToggle: true, MoveAxis: mgl32.Vec2{0, 1}}, dt)
	if err != nil {
		t.Fatalf("noclip tick touched the backend: %v", err)
	}
	if st.Mode != ModeNoclip {
		t.Fatalf("mode = %v, want noclip", st.Mode)
	}

	wantVel := mgl32.Vec3{0, 0, -sim.Config().NoclipSpeed}
	if !st.Vel.ApproxEqual(wantVel) {
		t.Fatalf("noclip vel = %v, want %v", st.Vel, wantVel)
	}
	wantPos := mgl32.Vec3{1, 2, 3}.Add(st.Vel.Mul(dt))
	if st.Pos != wantPos {
		t.Fatalf("noclip pos = %v, want exactly %v", st.Pos, wantPos)
	}

	// Toggling again drops back out of noclip.
	st.Vel = mgl32.Vec3{}
	working := &mockBackend{}
	sim2 := newTestSim(t, working)
	st, _, err = sim2.Advance(st, Intent{NoclipToggle: true}, dt)
	if err != nil {
		t.Fatal(err)
	}
	if st.Mode == ModeNoclip {
		t.Fatal("noclip toggle did not exit noclip")
	}
}

func TestSlopeBoundaryInclusive(t *testing.T) {
	cfg := DefaultConfig()
	at := func(deg float32) mgl32.Vec3 {
		rad := deg * math32.Pi / 180
		return mgl32.Vec3{math32.Sin(rad), math32.Cos(rad), 0}
	}

	if !cfg.Walkable(at(cfg.MaxSlopeDeg)) {
		t.Fatal("normal at exactly the max slope must be walkable")
	}
	if cfg.Walkable(at(cfg.MaxSlopeDeg + 1)) {
		t.Fatal("normal past the max slope must not be walkable")
	}
	if !cfg.Walkable(mgl32.Vec3{0, 1, 0}) {
		t.Fatal("flat ground must be walkable")
	}
}

func TestSteepContactBecomesWall(t *testing.T) {
	// The backend blocks all horizontal movement with a vertical wall normal.
	backend := &mockBackend{
		moveFn: func(pos mgl32.Vec3, shape phys.Shape, disp mgl32.Vec3) (phys.MoveResult, error) {
			return phys.MoveResult{
				Displacement: mgl32.Vec3{0, disp.Y(), 0},
				Contacts:     []phys.Contact{{Normal: mgl32.Vec3{-1, 0, 0}}},
			}, nil
		},
	}
	sim := newTestSim(t, backend)

	st := NewState(mgl32.Vec3{})
	st.Vel = mgl32.Vec3{6, 0, 2}
	st, _, err := sim.Advance(st, Intent{}, dt)
	if err != nil {
		t.Fatal(err)
	}
	if st.Vel.X() != 0 {
		t.Fatalf("velocity into the wall not clipped, vel.x=%v", st.Vel.X())
	}
	if st.Vel.Z() == 0 {
		t.Fatal("velocity along the wall should survive the clip")
	}
}

func TestZeroDtIsNoOp(t *testing.T) {
	sim := newTestSim(t, &mockBackend{})
	st := NewState(mgl32.Vec3{4, 5, 6})
	st.Vel = mgl32.Vec3{1, 2, 3}
	st.CrouchBlend = 0.25

	next, _, err := sim.Advance(st, Intent{MoveAxis: mgl32.Vec2{1, 1}, Jump: true, Sprint: true}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if next != st {
		t.Fatalf("dt=0 mutated state:\n got %+v\nwant %+v", next, st)
	}
}

func TestQueryFailureLeavesStateUnchanged(t *testing.T) {
	cases := map[string]*mockBackend{
		"ground query": {groundErr: errors.New("body missing")},
		"move":         {moveErr: errors.New("shape rejected")},
	}
	for name, backend := range cases {
		sim := newTestSim(t, backend)
		st := NewState(mgl32.Vec3{1, 0, 1})
		st.Vel = mgl32.Vec3{2, 0, 0}

		next, _, err := sim.Advance(st, Intent{MoveAxis: mgl32.Vec2{0, 1}}, dt)
		if err == nil {
			t.Fatalf("%s: expected an error", name)
		}
		if !errors.Is(err, phys.ErrCollisionQueryFailed) {
			t.Fatalf("%s: error not tagged as collision query failure: %v", name, err)
		}
		if next != st {
			t.Fatalf("%s: failed tick partially mutated state", name)
		}
	}
}

func TestNewSimulatorValidation(t *testing.T) {
	if _, err := NewSimulator(nil, DefaultConfig()); err == nil {
		t.Fatal("nil backend accepted")
	}
	bad := DefaultConfig()
	bad.CrouchHeight = bad.StandHeight
	if _, err := NewSimulator(&mockBackend{}, bad); err == nil {
		t.Fatal("invalid config accepted")
	}
}
