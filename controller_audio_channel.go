package tremor

import "github.com/edwinsyarief/tremor/audio"

// audioChannel drives the rumble sink from the envelope. It mirrors
// the engine lifecycle: silent while scheduled, following the mapped
// gain while active and fading out on its own clock once the run ends.
type audioChannel struct {
	sink    audio.Sink
	mapper  audio.Mapper
	fade    audio.Fade
	fadeFor float64
	gain    float64
	fading  bool
	stopped bool
}

func (self *audioChannel) configure(cfg *Config, sink audio.Sink) {
	self.sink = sink
	self.mapper = audio.Mapper{
		MinGain: cfg.Audio.MinGain,
		MaxGain: cfg.Audio.MaxGain,
		Initial: cfg.InitialIntensity,
		Peak:    cfg.PeakIntensity,
		Rate:    cfg.Audio.Rate,
	}
	self.fadeFor = cfg.Audio.FadeDuration
}

// Silences the sink while the run is pending.
func (self *audioChannel) Arm() {
	self.gain = 0
	if self.sink != nil {
		self.sink.SetVolume(0)
	}
}

func (self *audioChannel) Start() {
	if self.sink != nil && !self.sink.IsPlaying() {
		self.sink.Play()
	}
}

func (self *audioChannel) Update(intensity, dt float64) {
	self.gain = self.mapper.Step(self.gain, intensity, dt)
	if self.sink != nil {
		self.sink.SetVolume(self.gain)
	}
}

func (self *audioChannel) BeginFade() {
	if self.fading || self.stopped {
		return
	}
	self.fading = true
	self.fade.Begin(self.gain, self.fadeFor)
}

// Advances the fade. Returns true once the sink has been stopped.
func (self *audioChannel) UpdateFade(dt float64) bool {
	if self.stopped {
		return true
	}
	if !self.fading {
		return false
	}
	gain, done := self.fade.Step(dt)
	self.gain = gain
	if self.sink != nil {
		self.sink.SetVolume(gain)
	}
	if done {
		self.Finish()
	}
	return done
}

// Stops playback and leaves the gain at its configured resting
// value, ready for the sink's next user.
func (self *audioChannel) Finish() {
	if self.stopped {
		return
	}
	self.stopped = true
	self.fading = false
	if self.sink != nil {
		if self.sink.IsPlaying() {
			self.sink.Pause()
		}
		self.sink.SetVolume(self.mapper.MinGain)
	}
	self.gain = self.mapper.MinGain
}

func (self *audioChannel) IsFading() bool { return self.fading }
