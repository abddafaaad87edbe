// This package composes the raw, unsmoothed earthquake signal:
// a 3D displacement and a two-axis tilt for any instant of a run.
//
// The displacement is the sum of three independent generators:
//   - Base: three decorrelated coherent noise channels, the slow
//     drift that carries most of the motion.
//   - Vibration: the same channel layout at a much higher frequency,
//     damped so it reads as texture rather than a second shake.
//   - Oscillation: a single sinusoid along a configurable axis that
//     gives the quake a dominant direction.
//
// Every term is scaled by the current intensity and weighted per
// axis (vertical vs horizontal).
//
// The tilt is computed from its own pair of noise channels. It shares
// the time input and the per-run offset with the displacement, but it
// never consumes displacement terms.
//
// All outputs are raw targets: smoothing is the job of the tracker
// package, and nothing here keeps state between calls.
package shaker

import (
	"math"

	"github.com/edwinsyarief/tremor/noise"
	"github.com/go-gl/mathgl/mgl64"
)

// Fixed signal constants.
const (
	// Domain offset separating vibration channels from base channels.
	VibrationDomainOffset = 500.0

	// Vibration amplitude relative to the base term.
	VibrationDamping = 0.4

	// Domain offset used by the two tilt channels.
	RotationDomainOffset = 100.0

	// Tilt channels run at this fraction of the base frequency.
	RotationFrequencyFactor = 0.3

	// Tilt amplitude, in degrees per unit of intensity*rotation.
	RotationAmplitude = 0.75
)

// Params holds the tunable part of the signal. Fractions are
// expected in [0, 1]; frequencies must be positive.
type Params struct {
	BaseFrequency    float64
	VerticalWeight   float64
	HorizontalWeight float64

	VibrationEnabled   bool
	VibrationFrequency float64
	VibrationIntensity float64

	OscillationEnabled   bool
	OscillationAxis      mgl64.Vec3 // normalized on use; zero disables the term
	OscillationFrequency float64
	OscillationIntensity float64

	RotationIntensity float64
}

// Composer samples the raw signal for a single run. Offset is the
// per-run phase offset folded into every time input, so two runs
// with different offsets never shake identically.
type Composer struct {
	Params Params
	Noise  noise.Field
	Offset float64

	axis      mgl64.Vec3
	axisValid bool
	axisSrc   mgl64.Vec3
}

// Creates a composer. The field must not be nil.
func New(params Params, field noise.Field, offset float64) *Composer {
	if field == nil {
		panic("shaker: nil noise field")
	}
	composer := &Composer{Params: params, Noise: field, Offset: offset}
	composer.refreshAxis()
	return composer
}

// Returns the summed raw displacement at the given elapsed time
// for the given intensity.
func (self *Composer) Displacement(t, intensity float64) mgl64.Vec3 {
	displacement := self.Base(t, intensity)
	if self.Params.VibrationEnabled {
		displacement = displacement.Add(self.Vibration(t, intensity))
	}
	if self.Params.OscillationEnabled {
		displacement = displacement.Add(self.Oscillation(t, intensity))
	}
	return displacement
}

// Returns the base noise drift term.
func (self *Composer) Base(t, intensity float64) mgl64.Vec3 {
	x := (t + self.Offset) * self.Params.BaseFrequency
	raw := self.channels(x, 0)
	return self.weight(raw).Mul(intensity)
}

// Returns the high frequency vibration term, regardless of whether
// vibration is enabled.
func (self *Composer) Vibration(t, intensity float64) mgl64.Vec3 {
	x := (t + self.Offset) * self.Params.VibrationFrequency
	raw := self.channels(x, VibrationDomainOffset)
	scale := intensity * self.Params.VibrationIntensity * VibrationDamping
	return self.weight(raw).Mul(scale)
}

// Returns the directional oscillation term, regardless of whether
// oscillation is enabled. A zero-length axis yields a zero vector.
func (self *Composer) Oscillation(t, intensity float64) mgl64.Vec3 {
	if self.axisSrc != self.Params.OscillationAxis {
		self.refreshAxis()
	}
	if !self.axisValid {
		return mgl64.Vec3{}
	}
	wave := math.Sin((t + self.Offset) * self.Params.OscillationFrequency * math.Pi)
	scale := wave * intensity * self.Params.OscillationIntensity
	return self.weight(self.axis.Mul(scale))
}

// Returns the raw tilt angles in degrees around the X (forward/back)
// and Z (left/right) axes.
func (self *Composer) Rotation(t, intensity float64) (angleX, angleZ float64) {
	x := (t + self.Offset) * self.Params.BaseFrequency * RotationFrequencyFactor
	scale := intensity * self.Params.RotationIntensity * RotationAmplitude
	angleX = noise.Signed(self.Noise, x, RotationDomainOffset) * scale
	angleZ = noise.Signed(self.Noise, RotationDomainOffset, x) * scale
	return angleX, angleZ
}

// Returns the quaternion for the given tilt angles (degrees). The Z
// tilt is applied first, then the X tilt; there is never any yaw.
func RotationQuat(angleX, angleZ float64) mgl64.Quat {
	qx := mgl64.QuatRotate(mgl64.DegToRad(angleX), mgl64.Vec3{1, 0, 0})
	qz := mgl64.QuatRotate(mgl64.DegToRad(angleZ), mgl64.Vec3{0, 0, 1})
	return qx.Mul(qz)
}

// --- internal ---

// Samples the three decorrelated channels at x. Each axis reads a
// different slice of the 2D field: (x, c), (c, x) and (x, x + c).
func (self *Composer) channels(x, domainOffset float64) mgl64.Vec3 {
	return mgl64.Vec3{
		noise.Signed(self.Noise, x, domainOffset),
		noise.Signed(self.Noise, domainOffset, x),
		noise.Signed(self.Noise, x, x+domainOffset),
	}
}

func (self *Composer) weight(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		v[0] * self.Params.HorizontalWeight,
		v[1] * self.Params.VerticalWeight,
		v[2] * self.Params.HorizontalWeight,
	}
}

func (self *Composer) refreshAxis() {
	self.axisSrc = self.Params.OscillationAxis
	length := self.axisSrc.Len()
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		self.axis, self.axisValid = mgl64.Vec3{}, false
		return
	}
	self.axis, self.axisValid = self.axisSrc.Mul(1/length), true
}
