package tremor

import (
	"github.com/edwinsyarief/tremor/envelope"
	"github.com/edwinsyarief/tremor/scene"
	"github.com/go-gl/mathgl/mgl64"
)

// All queries are pure reads and safe to call in any phase.

// Returns the current lifecycle phase.
func (self *Engine) Phase() Phase { return self.phase }

// Returns whether a run is in progress. Restoring doesn't count.
func (self *Engine) IsActive() bool { return self.phase == Active }

// Returns whether the engine is done for good.
func (self *Engine) IsCompleted() bool { return self.phase == Completed }

// Returns whether arming failed. Disabled engines never run.
func (self *Engine) Disabled() bool { return self.disabled }

// Returns the envelope intensity of the last tick, or zero outside
// [Active].
func (self *Engine) Intensity() float64 {
	if self.phase != Active {
		return 0
	}
	return self.intensity
}

// Returns the seconds elapsed since the run started, or zero outside
// [Active].
func (self *Engine) Elapsed() float64 {
	if self.phase != Active {
		return 0
	}
	return self.elapsed
}

// Returns the seconds left before the run starts restoring, or zero
// outside [Active].
func (self *Engine) Remaining() float64 {
	if self.phase != Active {
		return 0
	}
	return max(self.cfg.TotalDuration-self.elapsed, 0)
}

// Returns the current envelope stage. The boolean is false outside
// [Active].
func (self *Engine) Stage() (envelope.Stage, bool) {
	if self.phase != Active {
		return envelope.StageRise, false
	}
	return self.envelope.Stage(self.elapsed), true
}

// Returns the current audio gain. Zero until the run starts, and the
// configured minimum gain once the final fade is over.
func (self *Engine) Gain() float64 { return self.audio.gain }

// Returns the smoothed positional offset currently applied on top
// of the baseline position.
func (self *Engine) Displacement() mgl64.Vec3 { return self.displacement }

// Returns the smoothed rotational offset currently applied on top
// of the baseline orientation.
func (self *Engine) Rotation() mgl64.Quat { return self.rotation }

// Returns the raw tilt angles of the last active tick, in degrees.
func (self *Engine) RawAngles() (angleX, angleZ float64) {
	return self.angleX, self.angleZ
}

// Returns the pose captured on arm. Before arming this is [scene.Identity]().
func (self *Engine) Baseline() scene.Pose { return self.baseline }

// Returns the armed target, or nil.
func (self *Engine) Target() scene.Transform { return self.target }

// Returns the phase offset folded into every noise sample. Only
// meaningful once armed or after [Engine.SetPhaseOffset]().
func (self *Engine) PhaseOffset() float64 { return self.offset }
