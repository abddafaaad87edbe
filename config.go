package tremor

import (
	"fmt"

	"github.com/edwinsyarief/tremor/envelope"
	"github.com/edwinsyarief/tremor/noise"
	"github.com/edwinsyarief/tremor/shaker"
	"github.com/edwinsyarief/tremor/tracker"
	"github.com/edwinsyarief/tremor/utils"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/multierr"
)

// Config describes a single earthquake run. All durations are in
// seconds and all frequencies in noise-domain units per second.
//
// A Config is copied into the engine on [New]() and never changes
// afterwards; to try new parameters, create a new engine.
type Config struct {
	StartupDelay  float64 `yaml:"startup_delay"`
	TotalDuration float64 `yaml:"total_duration"`
	RiseDuration  float64 `yaml:"rise_duration"`
	PeakDuration  float64 `yaml:"peak_duration"`

	InitialIntensity float64 `yaml:"initial_intensity"`
	PeakIntensity    float64 `yaml:"peak_intensity"`

	// Easing curve name for rise and fall, see [envelope.CurveByName]().
	Easing     string  `yaml:"easing"`
	JitterRate float64 `yaml:"jitter_rate"`
	JitterBand float64 `yaml:"jitter_band"`

	BaseFrequency     float64 `yaml:"base_frequency"`
	VerticalWeight    float64 `yaml:"vertical_weight"`
	HorizontalWeight  float64 `yaml:"horizontal_weight"`
	RotationIntensity float64 `yaml:"rotation_intensity"`

	Vibration   VibrationConfig   `yaml:"vibration"`
	Oscillation OscillationConfig `yaml:"oscillation"`

	// Motion smoother name, see [tracker.New]().
	Smoother                string  `yaml:"smoother"`
	SmoothingRate           float64 `yaml:"smoothing_rate"`
	RotationSmoothingFactor float64 `yaml:"rotation_smoothing_factor"`

	Audio AudioConfig `yaml:"audio"`

	RestoreDuration float64 `yaml:"restore_duration"`

	// Logical name of the transform to shake and the names tried
	// after it, see [Engine.ArmByName]().
	Target          string   `yaml:"target"`
	TargetFallbacks []string `yaml:"target_fallbacks"`

	// Seed for the noise field and the phase offset. Zero means
	// "draw a fresh one when arming".
	Seed int64 `yaml:"seed"`
}

type VibrationConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Frequency float64 `yaml:"frequency"`
	Intensity float64 `yaml:"intensity"`
}

type OscillationConfig struct {
	Enabled   bool       `yaml:"enabled"`
	Axis      mgl64.Vec3 `yaml:"axis,flow"`
	Frequency float64    `yaml:"frequency"`
	Intensity float64    `yaml:"intensity"`
}

type AudioConfig struct {
	MinGain      float64 `yaml:"min_gain"`
	MaxGain      float64 `yaml:"max_gain"`
	Rate         float64 `yaml:"rate"`
	FadeDuration float64 `yaml:"fade_duration"`
}

// Returns the default configuration: a 30 second run starting
// 10 seconds after arming, with a vertical-biased shake and a
// smoothstep envelope.
func DefaultConfig() Config {
	return Config{
		StartupDelay:  10,
		TotalDuration: 30,
		RiseDuration:  8,
		PeakDuration:  10,

		InitialIntensity: 0.002,
		PeakIntensity:    0.03,

		Easing:     envelope.NameSmoothStep,
		JitterRate: 0.2,
		JitterBand: 0.12,

		BaseFrequency:     1.5,
		VerticalWeight:    1.5,
		HorizontalWeight:  0.3,
		RotationIntensity: 0.2,

		Vibration: VibrationConfig{
			Enabled:   true,
			Frequency: 12,
			Intensity: 0.05,
		},
		Oscillation: OscillationConfig{
			Enabled:   true,
			Axis:      mgl64.Vec3{0.3, 1, 0.2},
			Frequency: 0.7,
			Intensity: 0.2,
		},

		Smoother:                tracker.NameExponential,
		SmoothingRate:           10,
		RotationSmoothingFactor: 0.7,

		Audio: AudioConfig{
			MinGain:      0.3,
			MaxGain:      0.8,
			Rate:         2,
			FadeDuration: 1.5,
		},

		RestoreDuration: 3,

		Target:          "Scenery",
		TargetFallbacks: []string{"House", "Building", "Environment", "World", "Map", "Scene"},
	}
}

// Returns the duration of the fall stage, which is whatever remains
// of the total after rise and peak.
func (self Config) FallDuration() float64 {
	return self.TotalDuration - self.RiseDuration - self.PeakDuration
}

// Returns the names tried by [Engine.ArmByName](), in order.
func (self Config) TargetNames() []string {
	names := make([]string, 0, 1+len(self.TargetFallbacks))
	names = append(names, self.Target)
	return append(names, self.TargetFallbacks...)
}

// Checks every constraint on the configuration and returns all
// violations combined, or nil. Each violation wraps [ErrInvalidConfig].
//
// A zero oscillation axis is accepted: the oscillation term is then
// silently zero. The rise must take some time, so every run starts
// at the initial intensity.
func (self Config) Validate() error {
	var err error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			err = multierr.Append(err, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	durations := []struct {
		name  string
		value float64
	}{
		{"startup_delay", self.StartupDelay},
		{"peak_duration", self.PeakDuration},
		{"restore_duration", self.RestoreDuration},
		{"audio.fade_duration", self.Audio.FadeDuration},
	}
	for _, d := range durations {
		check(utils.IsFinite(d.value) && d.value >= 0, "%s must be >= 0 (got %v)", d.name, d.value)
	}
	// the rumble must be silent by the time the target is back at rest
	check(self.Audio.FadeDuration <= self.RestoreDuration,
		"audio.fade_duration (%v) exceeds restore_duration (%v)", self.Audio.FadeDuration, self.RestoreDuration)
	check(utils.IsFinite(self.TotalDuration) && self.TotalDuration > 0, "total_duration must be > 0 (got %v)", self.TotalDuration)
	check(utils.IsFinite(self.RiseDuration) && self.RiseDuration > 0, "rise_duration must be > 0 (got %v)", self.RiseDuration)
	check(self.RiseDuration+self.PeakDuration <= self.TotalDuration,
		"rise_duration + peak_duration (%v) exceeds total_duration (%v)",
		self.RiseDuration+self.PeakDuration, self.TotalDuration)

	check(utils.IsFinite(self.InitialIntensity) && self.InitialIntensity >= 0, "initial_intensity must be >= 0 (got %v)", self.InitialIntensity)
	check(utils.IsFinite(self.PeakIntensity) && self.InitialIntensity < self.PeakIntensity,
		"initial_intensity (%v) must be below peak_intensity (%v)", self.InitialIntensity, self.PeakIntensity)

	if _, known := envelope.CurveByName(self.Easing); !known {
		check(false, "unknown easing %q", self.Easing)
	}
	if _, known := tracker.New(self.Smoother); !known {
		check(false, "unknown smoother %q", self.Smoother)
	}
	check(utils.IsFinite(self.JitterRate) && self.JitterRate > 0, "jitter_rate must be > 0 (got %v)", self.JitterRate)

	frequencies := []struct {
		name  string
		value float64
	}{
		{"base_frequency", self.BaseFrequency},
		{"vibration.frequency", self.Vibration.Frequency},
		{"oscillation.frequency", self.Oscillation.Frequency},
	}
	for _, f := range frequencies {
		check(utils.IsFinite(f.value) && f.value > 0, "%s must be > 0 (got %v)", f.name, f.value)
	}

	fractions := []struct {
		name  string
		value float64
	}{
		{"jitter_band", self.JitterBand},
		{"rotation_intensity", self.RotationIntensity},
		{"vibration.intensity", self.Vibration.Intensity},
		{"oscillation.intensity", self.Oscillation.Intensity},
		{"audio.min_gain", self.Audio.MinGain},
		{"audio.max_gain", self.Audio.MaxGain},
	}
	for _, f := range fractions {
		check(f.value >= 0 && f.value <= 1, "%s must be in [0, 1] (got %v)", f.name, f.value)
	}

	check(utils.IsFinite(self.VerticalWeight) && utils.IsFinite(self.HorizontalWeight),
		"axis weights must be finite (got %v, %v)", self.VerticalWeight, self.HorizontalWeight)
	check(utils.IsFinite(self.SmoothingRate) && self.SmoothingRate > 0, "smoothing_rate must be > 0 (got %v)", self.SmoothingRate)
	check(self.RotationSmoothingFactor > 0 && self.RotationSmoothingFactor <= 1,
		"rotation_smoothing_factor must be in (0, 1] (got %v)", self.RotationSmoothingFactor)
	check(utils.IsFinite(self.Audio.Rate) && self.Audio.Rate > 0, "audio.rate must be > 0 (got %v)", self.Audio.Rate)
	for i, component := range self.Oscillation.Axis {
		check(utils.IsFinite(component), "oscillation.axis[%d] must be finite (got %v)", i, component)
	}
	return err
}

// --- derived parts ---

func (self *Config) buildEnvelope(field noise.Field, offset float64) envelope.Envelope {
	curve, _ := envelope.CurveByName(self.Easing)
	return envelope.Envelope{
		Rise:       self.RiseDuration,
		Peak:       self.PeakDuration,
		Total:      self.TotalDuration,
		Initial:    self.InitialIntensity,
		Max:        self.PeakIntensity,
		JitterRate: self.JitterRate,
		JitterBand: self.JitterBand,
		Curve:      curve,
		Noise:      field,
		Offset:     offset,
	}
}

func (self *Config) buildShakerParams() shaker.Params {
	return shaker.Params{
		BaseFrequency:        self.BaseFrequency,
		VerticalWeight:       self.VerticalWeight,
		HorizontalWeight:     self.HorizontalWeight,
		VibrationEnabled:     self.Vibration.Enabled,
		VibrationFrequency:   self.Vibration.Frequency,
		VibrationIntensity:   self.Vibration.Intensity,
		OscillationEnabled:   self.Oscillation.Enabled,
		OscillationAxis:      self.Oscillation.Axis,
		OscillationFrequency: self.Oscillation.Frequency,
		OscillationIntensity: self.Oscillation.Intensity,
		RotationIntensity:    self.RotationIntensity,
	}
}
