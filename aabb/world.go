// Package aabb is a phys.Backend over a static axis-aligned box world. It is
// the reference backend: flat-topped geometry only, so every ground normal is
// straight up, but stepping, sliding and overlap behave exactly like a block
// world.
package aabb

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// World is an immutable-after-setup set of solid boxes. Populate it before the
// tick loop starts; queries may then run concurrently.
type World struct {
	boxes []cube.BBox

	// stepHeight is the max ledge the backend climbs transparently during
	// MoveAndSlide.
	stepHeight float32
}

func NewWorld(stepHeight float32) *World {
	return &World{stepHeight: stepHeight}
}

// AddBox adds a solid box to the world.
func (w *World) AddBox(b cube.BBox) {
	w.boxes = append(w.boxes, b)
}

// AddFloor adds a large thin slab whose top surface sits at the given height.
func (w *World) AddFloor(y, halfExtent float32) {
	w.AddBox(cube.Box(-halfExtent, y-1, -halfExtent, halfExtent, y, halfExtent))
}

// AddBlock adds a unit-ish block between the given corners.
func (w *World) AddBlock(min, max mgl32.Vec3) {
	w.AddBox(cube.Box(min.X(), min.Y(), min.Z(), max.X(), max.Y(), max.Z()))
}

// appendNearby collects the solids intersecting the query box into dst.
func (w *World) appendNearby(dst []cube.BBox, query cube.BBox) []cube.BBox {
	for _, b := range w.boxes {
		if b.IntersectsWith(query) {
			dst = append(dst, b)
		}
	}
	return dst
}
