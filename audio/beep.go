package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// BeepSink adapts a beep source to the [Sink] interface. The sink is
// itself a [beep.Streamer]; hand it to speaker.Play() or a mixer.
//
// The engine mutates the sink from the update loop while the speaker
// pulls samples from its own goroutine, so every access goes through
// the sink's mutex. While paused the sink streams silence instead of
// draining the source.
type BeepSink struct {
	mu     sync.Mutex
	gain   *effects.Gain
	ctrl   *beep.Ctrl
	volume float64
}

// Creates a paused, silent sink for the given source.
func NewBeepSink(source beep.Streamer) *BeepSink {
	gain := &effects.Gain{Streamer: source, Gain: -1}
	return &BeepSink{
		gain: gain,
		ctrl: &beep.Ctrl{Streamer: gain, Paused: true},
	}
}

func (self *BeepSink) SetVolume(volume float64) {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.volume = volume
	self.gain.Gain = volume - 1 // effects.Gain scales by 1 + Gain
}

// Returns the last volume set.
func (self *BeepSink) Volume() float64 {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.volume
}

func (self *BeepSink) Play() {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.ctrl.Paused = false
}

func (self *BeepSink) Pause() {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.ctrl.Paused = true
}

func (self *BeepSink) IsPlaying() bool {
	self.mu.Lock()
	defer self.mu.Unlock()
	return !self.ctrl.Paused
}

// Implements [beep.Streamer].
func (self *BeepSink) Stream(samples [][2]float64) (n int, ok bool) {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.ctrl.Stream(samples)
}

// Implements [beep.Streamer].
func (self *BeepSink) Err() error {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.ctrl.Err()
}
