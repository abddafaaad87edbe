// This package defines the intensity envelope of an earthquake run
// and the easing curves that shape it.
//
// An active run is split in three analytic stages:
//   - Rise: eased interpolation from the initial to the peak intensity.
//   - Peak: the peak intensity with a bounded multiplicative jitter
//     taken from a coherent noise field, so the plateau never feels
//     static.
//   - Fall: the mirror of the rise, easing back to the initial
//     intensity.
//
// The fall stage has no explicit duration; it takes whatever is left
// of the total once rise and peak are accounted for.
package envelope

import (
	"github.com/edwinsyarief/tremor/noise"
	"github.com/edwinsyarief/tremor/utils"
)

// Stage identifies one of the three analytic segments of a run.
type Stage uint8

const (
	StageRise Stage = iota
	StagePeak
	StageFall
)

func (self Stage) String() string {
	switch self {
	case StageRise:
		return "rise"
	case StagePeak:
		return "peak"
	case StageFall:
		return "fall"
	default:
		return "unknown"
	}
}

// Envelope maps elapsed active time to intensity. The zero value
// is not usable; all durations and intensities must be set.
//
// Intensity is a pure function of time: the jitter is sampled from
// Noise at (t*JitterRate, Offset), so the same envelope always
// returns the same value for the same t.
type Envelope struct {
	Rise  float64 // seconds
	Peak  float64 // seconds
	Total float64 // seconds, rise + peak + fall

	Initial float64
	Max     float64

	JitterRate float64 // noise input frequency during the peak
	JitterBand float64 // fraction of Max, e.g. 0.12

	Curve  Curve       // nil means SmoothStep
	Noise  noise.Field // nil disables the peak jitter
	Offset float64     // per-run phase offset
}

// Returns the duration of the fall stage. Never negative.
func (self *Envelope) Fall() float64 {
	fall := self.Total - self.Rise - self.Peak
	if fall < 0 {
		return 0
	}
	return fall
}

// Returns the stage for the given elapsed active time.
func (self *Envelope) Stage(t float64) Stage {
	if t < self.Rise {
		return StageRise
	}
	if t < self.Rise+self.Peak {
		return StagePeak
	}
	return StageFall
}

// Returns the intensity at the given elapsed active time. Values
// of t outside [0, Total] are clamped to the nearest stage edge, and
// a run always starts at Initial, even without a rise.
func (self *Envelope) Intensity(t float64) float64 {
	if t <= 0 {
		return self.Initial
	}
	curve := self.Curve
	if curve == nil {
		curve = SmoothStep
	}

	switch self.Stage(t) {
	case StageRise:
		progress := utils.Clamp01(t / self.Rise) // Rise > 0 here
		return utils.Lerp(self.Initial, self.Max, curve.Rise(progress))
	case StagePeak:
		if self.Noise == nil {
			return self.Max
		}
		jitter := self.Noise.Sample(t*self.JitterRate, self.Offset) * self.JitterBand
		return self.Max * (1 + jitter)
	default:
		fall := self.Fall()
		progress := 1.0
		if fall > 0 {
			progress = utils.Clamp01((t - self.Rise - self.Peak) / fall)
		}
		return utils.Lerp(self.Max, self.Initial, curve.Fall(progress))
	}
}
