// Headless demo: a small box arena, one player, a scripted run of walking,
// jumping, crouching under a ledge, and a noclip flight.
package main

import (
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"github.com/strafekit/strafekit/aabb"
	"github.com/strafekit/strafekit/controller"
	"github.com/strafekit/strafekit/host"
)

func main() {
	lg := logrus.New()
	lg.Formatter = &logrus.TextFormatter{ForceColors: true}
	lg.Level = logrus.DebugLevel

	cfg := controller.DefaultConfig()
	if len(os.Args) > 1 {
		var err error
		cfg, err = controller.LoadConfig(os.Args[1])
		if err != nil {
			lg.WithError(err).Fatal("load config")
		}
	}

	world := aabb.NewWorld(cfg.StepHeight)
	world.AddFloor(0, 64)
	// A stair and a low ledge to crouch under.
	world.AddBlock(mgl32.Vec3{6, 0, -2}, mgl32.Vec3{8, 0.4, 2})
	world.AddBlock(mgl32.Vec3{-8, 2, -2}, mgl32.Vec3{-4, 2.4, 2})

	sim, err := controller.NewSimulator(world, cfg)
	if err != nil {
		lg.WithError(err).Fatal("build simulator")
	}

	h, err := host.New(sim, lg, 64)
	if err != nil {
		lg.WithError(err).Fatal("build host")
	}
	if _, err := h.Spawn(1, mgl32.Vec3{0, 0, 0}); err != nil {
		lg.WithError(err).Fatal("spawn")
	}

	for tick := 0; tick < 640; tick++ {
		h.SetIntent(1, scriptedIntent(tick))
		h.Step()

		if tick%64 == 0 {
			e, _ := h.Entity(1)
			eye, _ := h.EyePosition(1)
			lg.WithFields(logrus.Fields{
				"tick":     tick,
				"pos":      e.State.Pos,
				"vel":      e.State.Vel,
				"mode":     e.State.Mode.String(),
				"eye":      eye,
				"checksum": h.Checksum(),
			}).Info("player state")
		}
	}
}

// scriptedIntent plays back a canned input sequence: sprint east, hop twice,
// crouch-walk west under the ledge, then toggle noclip and fly out.
func scriptedIntent(tick int) controller.Intent {
	in := controller.Intent{MoveAxis: mgl32.Vec2{0, 1}}
	switch {
	case tick < 128:
		in.Yaw = -1.5708
		in.Sprint = true
	case tick < 256:
		in.Yaw = -1.5708
		in.Jump = tick%32 < 16
	case tick < 448:
		in.Yaw = 1.5708
		in.Crouch = true
	default:
		in.Yaw = 1.5708
		in.Pitch = -0.4
		in.NoclipToggle = tick == 448
	}
	return in
}
