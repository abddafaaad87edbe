package tracker

import (
	ebimath "github.com/edwinsyarief/ebi-math"
	"github.com/edwinsyarief/tremor/utils"
	"github.com/go-gl/mathgl/mgl64"
)

type tracker = Tracker

// A few stateless built-in trackers.
var (
	// Always returns the current values.
	Frozen tracker = frozenTracker{}

	// Always returns the targets.
	Instant tracker = instantTracker{}

	// Exponential approach: lerp for positions and slerp for
	// rotations, with factor clamp(rate*dt, 0, 1). This is the
	// default engine tracker.
	Exponential tracker = exponentialTracker{}
)

// Below this distance positions snap to the target.
const stabilizationThreshold = 1e-9

type frozenTracker struct{}

func (frozenTracker) Position(current, target mgl64.Vec3, rate, dt float64) mgl64.Vec3 {
	return current
}

func (frozenTracker) Rotation(current, target mgl64.Quat, rate, dt float64) mgl64.Quat {
	return current
}

func (frozenTracker) Reset() {}

type instantTracker struct{}

func (instantTracker) Position(current, target mgl64.Vec3, rate, dt float64) mgl64.Vec3 {
	return target
}

func (instantTracker) Rotation(current, target mgl64.Quat, rate, dt float64) mgl64.Quat {
	return target
}

func (instantTracker) Reset() {}

type exponentialTracker struct{}

func (self exponentialTracker) Position(current, target mgl64.Vec3, rate, dt float64) mgl64.Vec3 {
	factor := utils.Clamp01(rate * dt)
	if factor == 0 {
		return current
	}
	if factor == 1 || stabilized(current, target) {
		return target
	}
	return LerpVec3(current, target, factor)
}

func (self exponentialTracker) Rotation(current, target mgl64.Quat, rate, dt float64) mgl64.Quat {
	factor := utils.Clamp01(rate * dt)
	if factor == 0 {
		return current
	}
	if factor == 1 {
		return target
	}
	return Slerp(current, target, factor)
}

func (exponentialTracker) Reset() {}

// --- helpers ---

// Linear interpolation between two vectors. The factor is not clamped.
func LerpVec3(from, to mgl64.Vec3, t float64) mgl64.Vec3 {
	return mgl64.Vec3{
		utils.Lerp(from[0], to[0], t),
		utils.Lerp(from[1], to[1], t),
		utils.Lerp(from[2], to[2], t),
	}
}

// Spherical interpolation that always takes the short arc. The
// result is normalized; degenerate inputs fall back to the target.
func Slerp(from, to mgl64.Quat, t float64) mgl64.Quat {
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	result := mgl64.QuatSlerp(from, to, t)
	length := result.Len()
	if !utils.IsFinite(length) || length == 0 {
		return to
	}
	return result.Normalize()
}

func stabilized(current, target mgl64.Vec3) bool {
	return ebimath.Abs(target[0]-current[0]) < stabilizationThreshold &&
		ebimath.Abs(target[1]-current[1]) < stabilizationThreshold &&
		ebimath.Abs(target[2]-current[2]) < stabilizationThreshold
}
