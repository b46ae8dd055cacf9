package aabb

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/strafekit/strafekit/game"
	"github.com/strafekit/strafekit/internal"
	"github.com/strafekit/strafekit/phys"
)

const collideEpsilon = 1e-5

// shapeBox returns the world-space collider box for a feet-origin shape,
// shrunk a hair on X/Z so resting flush against a wall does not count as
// an overlap.
func shapeBox(pos mgl32.Vec3, s phys.Shape) cube.BBox {
	return cube.Box(
		pos.X()-s.Radius, pos.Y(), pos.Z()-s.Radius,
		pos.X()+s.Radius, pos.Y()+s.Height(), pos.Z()+s.Radius,
	).GrowVec3(mgl32.Vec3{-1e-4, 0, -1e-4})
}

func validShape(s phys.Shape) error {
	if s.Radius <= 0 || s.HalfHeight <= 0 {
		return fmt.Errorf("%w: degenerate shape %+v", phys.ErrCollisionQueryFailed, s)
	}
	return nil
}

// GroundQuery casts the shape straight down by maxDist and reports the nearest
// surface. Box tops are flat, so the normal is always +Y.
func (w *World) GroundQuery(pos mgl32.Vec3, shape phys.Shape, maxDist float32) (phys.GroundHit, bool, error) {
	if err := validShape(shape); err != nil {
		return phys.GroundHit{}, false, err
	}
	if maxDist < 0 {
		return phys.GroundHit{}, false, fmt.Errorf("%w: negative cast distance %v", phys.ErrCollisionQueryFailed, maxDist)
	}

	bb := shapeBox(pos, shape)
	cast := mgl32.Vec3{0, -maxDist, 0}

	boxes := internal.GetBoxes()
	defer internal.PutBoxes(boxes)
	list := w.appendNearby(*boxes, bb.Extend(cast))
	*boxes = list

	moved := cast
	for i := len(list) - 1; i >= 0; i-- {
		moved = clipCollide(list[i], bb, moved, true)
	}
	if moved.Y() <= cast.Y()+collideEpsilon && maxDist > 0 {
		return phys.GroundHit{}, false, nil
	}
	if maxDist == 0 {
		return phys.GroundHit{}, false, nil
	}

	dist := -moved.Y()
	return phys.GroundHit{
		Normal:   mgl32.Vec3{0, 1, 0},
		Distance: dist,
		Point:    mgl32.Vec3{pos.X(), pos.Y() - dist, pos.Z()},
	}, true, nil
}

// MoveAndSlide displaces the shape axis by axis (Y, then X, then Z), clipping
// each axis against the nearby solids. A horizontal block is retried over a
// step of at most stepHeight; a successful step preserves the horizontal
// displacement and reports no wall contact for the resolved axes.
func (w *World) MoveAndSlide(pos mgl32.Vec3, shape phys.Shape, disp mgl32.Vec3) (phys.MoveResult, error) {
	if err := validShape(shape); err != nil {
		return phys.MoveResult{}, err
	}

	startBB := shapeBox(pos, shape)

	boxes := internal.GetBoxes()
	defer internal.PutBoxes(boxes)
	list := w.appendNearby(*boxes, startBB.Extend(disp).Grow(w.stepHeight))
	*boxes = list

	moved, _ := w.clipAxes(startBB, disp, list)
	result := phys.MoveResult{Displacement: moved}

	blockedX := math32.Abs(disp.X()-moved.X()) >= collideEpsilon
	blockedY := math32.Abs(disp.Y()-moved.Y()) >= collideEpsilon
	blockedZ := math32.Abs(disp.Z()-moved.Z()) >= collideEpsilon

	if (blockedX || blockedZ) && w.stepHeight > 0 && disp.Y() <= collideEpsilon && w.nearGround(startBB, list) {
		if stepVel, ok := w.tryStep(startBB, disp, list); ok && game.Vec3HzDistSqr(moved) < game.Vec3HzDistSqr(stepVel) {
			moved = stepVel
			result.Displacement = stepVel
			result.Stepped = true
			blockedX = math32.Abs(disp.X()-moved.X()) >= collideEpsilon
			blockedZ = math32.Abs(disp.Z()-moved.Z()) >= collideEpsilon
			blockedY = false
		}
	}

	if blockedX {
		result.Contacts = append(result.Contacts, phys.Contact{Normal: mgl32.Vec3{-sign(disp.X()), 0, 0}})
	}
	if blockedY {
		result.Contacts = append(result.Contacts, phys.Contact{Normal: mgl32.Vec3{0, -sign(disp.Y()), 0}})
	}
	if blockedZ {
		result.Contacts = append(result.Contacts, phys.Contact{Normal: mgl32.Vec3{0, 0, -sign(disp.Z())}})
	}
	return result, nil
}

// Overlaps reports whether the shape intersects any solid.
func (w *World) Overlaps(pos mgl32.Vec3, shape phys.Shape) (bool, error) {
	if err := validShape(shape); err != nil {
		return false, err
	}
	bb := shapeBox(pos, shape)
	for _, b := range w.boxes {
		if b.IntersectsWith(bb) {
			return true, nil
		}
	}
	return false, nil
}

// clipAxes performs the Y/X/Z swept pass and returns the combined clipped
// displacement and the final translated box.
func (w *World) clipAxes(bb cube.BBox, disp mgl32.Vec3, list []cube.BBox) (mgl32.Vec3, cube.BBox) {
	yVel := mgl32.Vec3{0, disp.Y(), 0}
	xVel := mgl32.Vec3{disp.X(), 0, 0}
	zVel := mgl32.Vec3{0, 0, disp.Z()}

	for i := len(list) - 1; i >= 0; i-- {
		yVel = clipCollide(list[i], bb, yVel, false)
	}
	bb = bb.Translate(yVel)

	for i := len(list) - 1; i >= 0; i-- {
		xVel = clipCollide(list[i], bb, xVel, false)
	}
	bb = bb.Translate(xVel)

	for i := len(list) - 1; i >= 0; i-- {
		zVel = clipCollide(list[i], bb, zVel, false)
	}
	bb = bb.Translate(zVel)

	return yVel.Add(xVel).Add(zVel), bb
}

// tryStep re-runs the horizontal move from a lifted position, then settles
// back down, mirroring the classic step resolution: up, across, and the
// inverse of the lift.
func (w *World) tryStep(startBB cube.BBox, disp mgl32.Vec3, list []cube.BBox) (mgl32.Vec3, bool) {
	stepY := mgl32.Vec3{0, w.stepHeight, 0}
	stepX := mgl32.Vec3{disp.X(), 0, 0}
	stepZ := mgl32.Vec3{0, 0, disp.Z()}

	bb := startBB
	for _, b := range list {
		stepY = clipCollide(b, bb, stepY, false)
	}
	bb = bb.Translate(stepY)

	for _, b := range list {
		stepX = clipCollide(b, bb, stepX, false)
	}
	bb = bb.Translate(stepX)

	for _, b := range list {
		stepZ = clipCollide(b, bb, stepZ, false)
	}
	bb = bb.Translate(stepZ)

	inverseY := stepY.Mul(-1)
	for _, b := range list {
		inverseY = clipCollide(b, bb, inverseY, false)
	}
	bb = bb.Translate(inverseY)
	stepY = stepY.Add(inverseY)

	for _, b := range w.boxes {
		if b.IntersectsWith(bb) {
			return mgl32.Vec3{}, false
		}
	}
	return stepY.Add(stepX).Add(stepZ), true
}

// nearGround reports whether the box is resting on (or a hair above) a solid,
// which gates the step pass to grounded movement.
func (w *World) nearGround(bb cube.BBox, list []cube.BBox) bool {
	probe := mgl32.Vec3{0, -0.05, 0}
	moved := probe
	for i := len(list) - 1; i >= 0; i-- {
		moved = clipCollide(list[i], bb, moved, true)
	}
	return moved.Y() > probe.Y()+collideEpsilon
}

func sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}
