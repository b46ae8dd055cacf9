package aabb

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

type clipResult struct {
	clipped      mgl32.Vec3
	depenetrated mgl32.Vec3
}

// clipCollide clips a moving bounding box's velocity against a stationary box.
// With oneWay set the result only ever shortens the velocity; otherwise an
// already-penetrating box pushes the mover out along its shallowest axis.
func clipCollide(stationary, moving cube.BBox, vel mgl32.Vec3, oneWay bool) mgl32.Vec3 {
	result := doClipCollide(stationary, moving, vel)
	if oneWay {
		return result.clipped
	}
	return result.depenetrated
}

func doClipCollide(stationary, moving cube.BBox, velocity mgl32.Vec3) (result clipResult) {
	result.clipped = velocity
	result.depenetrated = velocity

	if stationary.Min() == stationary.Max() {
		return
	}

	axisPenetrations := [3]float32{}
	axisPenetrationsSigned := [3]float32{}
	normalDirs := [3]float32{}
	separatingAxes, separatingAxis := 0, 0

	for i := 0; i < 3; i++ {
		minPenetration := moving.Max()[i] - stationary.Min()[i]
		maxPenetration := stationary.Max()[i] - moving.Min()[i]

		if math32.Abs(minPenetration) <= 1e-7 {
			minPenetration = 0
		}
		if math32.Abs(maxPenetration) <= 1e-7 {
			maxPenetration = 0
		}

		minPositive := math32.Max(0, minPenetration)
		maxPositive := math32.Max(0, maxPenetration)

		if minPositive == 0 {
			axisPenetrations[i] = 0
			axisPenetrationsSigned[i] = minPenetration
			normalDirs[i] = -1
			separatingAxes++
			separatingAxis = i
		} else if maxPositive == 0 {
			axisPenetrations[i] = 0
			axisPenetrationsSigned[i] = maxPenetration
			normalDirs[i] = 1
			separatingAxes++
			separatingAxis = i
		} else if minPositive < maxPositive {
			axisPenetrations[i] = minPositive
			axisPenetrationsSigned[i] = minPositive
			normalDirs[i] = -1
		} else {
			axisPenetrations[i] = maxPositive
			axisPenetrationsSigned[i] = maxPositive
			normalDirs[i] = 1
		}

		if separatingAxes > 1 {
			return
		}
	}

	// No separating axis means the boxes already overlap: push out along the
	// shallowest axis.
	if separatingAxes == 0 {
		bestAxis := 0
		for i := 1; i < 3; i++ {
			if axisPenetrations[i] < axisPenetrations[bestAxis] {
				bestAxis = i
			}
		}

		desired := axisPenetrations[bestAxis] * normalDirs[bestAxis]
		if desired > 0 {
			result.depenetrated[bestAxis] = math32.Max(desired, velocity[bestAxis])
		} else {
			result.depenetrated[bestAxis] = math32.Min(desired, velocity[bestAxis])
		}
		return
	}

	sweptPenetration := axisPenetrationsSigned[separatingAxis] - (normalDirs[separatingAxis] * velocity[separatingAxis])
	if sweptPenetration <= 0 {
		return
	}

	resolved := axisPenetrationsSigned[separatingAxis] * normalDirs[separatingAxis]
	result.clipped[separatingAxis] = resolved
	result.depenetrated[separatingAxis] = resolved
	return
}
