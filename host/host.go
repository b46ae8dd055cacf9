// Package host is the thin adapter between the movement core and a game loop:
// it owns the entity registry, runs the fixed-timestep tick, and exposes the
// camera attachment point. The core itself stays host-agnostic.
package host

import (
	"context"
	"fmt"
	"time"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"github.com/strafekit/strafekit/controller"
)

type EntityID uint64

// Entity pairs one player's controller state with the intent its input
// adapter wrote for the upcoming tick. Each entity has a single writer per
// tick: the host loop.
type Entity struct {
	ID     EntityID
	State  controller.State
	Intent controller.Intent
}

// Host drives one Simulator over a registry of independent entities at a
// fixed timestep. Entities tick in spawn order, deterministically.
type Host struct {
	sim *controller.Simulator
	log *logrus.Logger

	entities *orderedmap.OrderedMap[EntityID, *Entity]

	dt   float32
	tick uint64
}

// New builds a host ticking at the given rate in Hz.
func New(sim *controller.Simulator, log *logrus.Logger, tickRate float32) (*Host, error) {
	if sim == nil {
		return nil, fmt.Errorf("host: nil simulator")
	}
	if tickRate <= 0 {
		return nil, fmt.Errorf("host: tick rate must be > 0, got %v", tickRate)
	}
	if log == nil {
		log = logrus.New()
	}
	return &Host{
		sim:      sim,
		log:      log,
		entities: orderedmap.NewOrderedMap[EntityID, *Entity](),
		dt:       1 / tickRate,
	}, nil
}

// Dt returns the fixed timestep in seconds.
func (h *Host) Dt() float32 {
	return h.dt
}

// Tick returns the number of completed simulation ticks.
func (h *Host) Tick() uint64 {
	return h.tick
}

// Spawn registers a new entity at the given feet position.
func (h *Host) Spawn(id EntityID, pos mgl32.Vec3) (*Entity, error) {
	if _, ok := h.entities.Get(id); ok {
		return nil, fmt.Errorf("host: entity %d already spawned", id)
	}
	e := &Entity{ID: id, State: controller.NewState(pos)}
	h.entities.Set(id, e)
	h.log.WithFields(logrus.Fields{"entity": id, "pos": pos}).Debug("spawned entity")
	return e, nil
}

// Despawn removes an entity and its state.
func (h *Host) Despawn(id EntityID) {
	h.entities.Delete(id)
}

// Entity returns the live entity for id.
func (h *Host) Entity(id EntityID) (*Entity, bool) {
	return h.entities.Get(id)
}

// SetIntent stores the input adapter's snapshot for the next tick.
func (h *Host) SetIntent(id EntityID, in controller.Intent) bool {
	e, ok := h.entities.Get(id)
	if !ok {
		return false
	}
	e.Intent = in
	return true
}

// Step advances every entity by one fixed timestep, in spawn order. A failed
// collision query fails that entity's tick as a whole: its state is left
// unchanged and the failure is logged, never swallowed.
func (h *Host) Step() {
	for el := h.entities.Front(); el != nil; el = el.Next() {
		e := el.Value
		next, res, err := h.sim.Advance(e.State, e.Intent, h.dt)
		if err != nil {
			h.log.WithFields(logrus.Fields{
				"entity": e.ID,
				"tick":   h.tick,
			}).WithError(err).Error("movement tick failed, state unchanged")
			continue
		}
		e.State = next

		// One-shot edges are consumed by the tick; held keys persist until the
		// input adapter says otherwise.
		e.Intent.NoclipToggle = false

		if res.Jumped || res.Landed || res.StepSnapped {
			h.log.WithFields(logrus.Fields{
				"entity":  e.ID,
				"tick":    h.tick,
				"mode":    res.Mode.String(),
				"jumped":  res.Jumped,
				"landed":  res.Landed,
				"snapped": res.StepSnapped,
			}).Debug("movement event")
		}
	}
	h.tick++
}

// Run steps the loop at the fixed rate until the context is cancelled.
func (h *Host) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Duration(float64(h.dt) * float64(time.Second)))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			h.Step()
		}
	}
}

// EyePosition returns the camera anchor for the rendering attachment.
func (h *Host) EyePosition(id EntityID) (mgl32.Vec3, bool) {
	e, ok := h.entities.Get(id)
	if !ok {
		return mgl32.Vec3{}, false
	}
	return e.State.EyePosition(h.sim.Config()), true
}

// ColliderHalfHeight returns the entity's current blended collider half
// height, for hosts that resize a center-origin physics shape.
func (h *Host) ColliderHalfHeight(id EntityID) (float32, bool) {
	e, ok := h.entities.Get(id)
	if !ok {
		return 0, false
	}
	return e.State.HalfHeight(h.sim.Config()), true
}
