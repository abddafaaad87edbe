package tracker

import (
	"github.com/edwinsyarief/tremor/utils"
	"github.com/go-gl/mathgl/mgl64"
)

// Restore is the finite return-to-rest interpolation used once a
// run ends. Unlike the exponential trackers it reaches its target
// in a fixed time: offsets are eased with a smoothstep from their
// value at the start of the restore down to zero and identity.
//
// When Step() reports done, callers are expected to write the exact
// rest values themselves rather than trusting the last interpolated
// sample.
type Restore struct {
	fromOffset   mgl64.Vec3
	fromRotation mgl64.Quat
	duration     float64
	elapsed      float64
	running      bool
}

// Starts a restore from the given offsets. A non-positive duration
// completes on the first step.
func (self *Restore) Begin(fromOffset mgl64.Vec3, fromRotation mgl64.Quat, duration float64) {
	self.fromOffset = fromOffset
	self.fromRotation = fromRotation
	self.duration = duration
	self.elapsed = 0
	self.running = true
}

// Advances the restore by dt seconds and returns the interpolated
// offsets. Once done, the offsets are exactly zero and identity.
func (self *Restore) Step(dt float64) (offset mgl64.Vec3, rotation mgl64.Quat, done bool) {
	if !self.running {
		return mgl64.Vec3{}, mgl64.QuatIdent(), true
	}
	if dt > 0 {
		self.elapsed += dt
	}
	if self.duration <= 0 || self.elapsed >= self.duration {
		self.running = false
		return mgl64.Vec3{}, mgl64.QuatIdent(), true
	}

	t := utils.SmoothStep(self.elapsed / self.duration)
	offset = LerpVec3(self.fromOffset, mgl64.Vec3{}, t)
	rotation = Slerp(self.fromRotation, mgl64.QuatIdent(), t)
	return offset, rotation, false
}

// Returns whether a restore is in progress.
func (self *Restore) Running() bool {
	return self.running
}

// Returns the restore progress in [0, 1].
func (self *Restore) Progress() float64 {
	if self.duration <= 0 {
		if self.running {
			return 0
		}
		return 1
	}
	return utils.Clamp01(self.elapsed / self.duration)
}
