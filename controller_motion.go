package tremor

import (
	"github.com/edwinsyarief/tremor/shaker"
	"github.com/edwinsyarief/tremor/utils"
	"github.com/go-gl/mathgl/mgl64"
)

// Frame hook registered at arm time. Scheduled engines ignore it.
func (self *Engine) update(dt float64) {
	if !(dt > 0) || !utils.IsFinite(dt) {
		return
	}
	switch self.phase {
	case Active:
		self.updateActive(dt)
	case Restoring:
		self.updateRestoring(dt)
	}
}

func (self *Engine) updateActive(dt float64) {
	self.elapsed += dt
	if self.elapsed >= self.cfg.TotalDuration {
		self.elapsed = self.cfg.TotalDuration
		self.beginRestore()
		return
	}

	// envelope -> composer -> smoother -> audio
	t := self.elapsed
	self.intensity = self.envelope.Intensity(t)
	rawDisplacement := self.composer.Displacement(t, self.intensity)
	angleX, angleZ := self.composer.Rotation(t, self.intensity)
	if !finiteVec3(rawDisplacement) {
		rawDisplacement = mgl64.Vec3{}
	}
	if !utils.IsFinite(angleX) || !utils.IsFinite(angleZ) {
		angleX, angleZ = 0, 0
	}
	self.angleX, self.angleZ = angleX, angleZ
	rawRotation := shaker.RotationQuat(angleX, angleZ)

	smoother := self.getTracker()
	rate := self.cfg.SmoothingRate
	displacement := smoother.Position(self.displacement, rawDisplacement, rate, dt)
	rotation := smoother.Rotation(self.rotation, rawRotation, rate*self.cfg.RotationSmoothingFactor, dt)
	if finiteVec3(displacement) {
		self.displacement = displacement
	}
	if finiteQuat(rotation) {
		self.rotation = rotation
	}

	self.applyPose()
	self.audio.Update(self.intensity, dt)
}

func (self *Engine) updateRestoring(dt float64) {
	offset, rotation, done := self.restore.Step(dt)
	self.audio.UpdateFade(dt)
	if done {
		self.complete()
		return
	}
	self.displacement = offset
	self.rotation = rotation
	self.applyPose()
}

// Writes baseline plus the current offsets to the target.
func (self *Engine) applyPose() {
	pose := self.baseline
	pose.Position = self.baseline.Position.Add(self.displacement)
	pose.Orientation = self.baseline.Orientation.Mul(self.rotation)
	self.target.SetPose(pose)
}

// --- numeric guards ---

func finiteVec3(v mgl64.Vec3) bool {
	return utils.IsFinite(v[0]) && utils.IsFinite(v[1]) && utils.IsFinite(v[2])
}

func finiteQuat(q mgl64.Quat) bool {
	return utils.IsFinite(q.W) && finiteVec3(q.V)
}
