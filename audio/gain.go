// Package audio maps the earthquake envelope to a playback gain and
// provides the sinks and sources hosts plug that gain into.
//
// The gain follows the same intensity value that drives the motion:
// the envelope is normalized between the initial and peak intensity,
// mapped onto [MinGain, MaxGain] and approached exponentially. When
// a run ends the gain fades linearly to silence on its own clock.
package audio

import "github.com/edwinsyarief/tremor/utils"

// Mapper converts intensities to gains.
type Mapper struct {
	MinGain float64
	MaxGain float64

	// Intensity range mapped onto [MinGain, MaxGain].
	Initial float64
	Peak    float64

	// Exponential approach rate, per second.
	Rate float64
}

// Returns the target gain for the given intensity. Intensities above
// the peak (peak jitter) saturate at MaxGain. An empty intensity
// range maps everything to MinGain.
func (self *Mapper) Target(intensity float64) float64 {
	if self.Peak == self.Initial {
		return self.MinGain
	}
	progress := utils.Clamp01(utils.InverseLerp(self.Initial, self.Peak, intensity))
	return utils.Lerp(self.MinGain, self.MaxGain, progress)
}

// Advances the current gain toward the target for the given intensity.
func (self *Mapper) Step(current, intensity, dt float64) float64 {
	if !(dt > 0) {
		return current
	}
	return utils.LerpClamped(current, self.Target(intensity), self.Rate*dt)
}

// Fade is a linear fade to silence over a fixed duration.
type Fade struct {
	from     float64
	duration float64
	elapsed  float64
	running  bool
}

// Starts a fade from the given gain.
func (self *Fade) Begin(from, duration float64) {
	self.from = from
	self.duration = duration
	self.elapsed = 0
	self.running = true
}

// Advances the fade. Once done, the returned gain is exactly zero.
func (self *Fade) Step(dt float64) (gain float64, done bool) {
	if !self.running {
		return 0, true
	}
	if dt > 0 {
		self.elapsed += dt
	}
	if self.duration <= 0 || self.elapsed >= self.duration {
		self.running = false
		return 0, true
	}
	return utils.Lerp(self.from, 0, self.elapsed/self.duration), false
}

// Returns whether the fade is in progress.
func (self *Fade) Running() bool {
	return self.running
}
