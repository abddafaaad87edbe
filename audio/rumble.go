package audio

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
)

// Sample rate used by hosts unless they pick their own.
const DefaultSampleRate = 44100

// Rumble is an endless low-frequency noise source: leaky integrated
// white noise (brown noise) slowly amplitude-modulated, which reads
// as a deep structural rumble at any playback gain.
//
// A Rumble can be consumed either as a [beep.Streamer] (Stream/Err)
// or as 16-bit little-endian stereo PCM through Read, the format
// ebiten audio players expect. Pick one; the two views share the
// same generator state and are not safe for concurrent use.
type Rumble struct {
	rng        *rand.Rand
	sampleRate float64
	level      float64
	position   int64
	pending    []byte
}

// Creates a rumble source at [DefaultSampleRate].
func NewRumble(seed uint64) *Rumble {
	return NewRumbleAt(seed, DefaultSampleRate)
}

// Creates a rumble source at the given sample rate.
func NewRumbleAt(seed uint64, sampleRate int) *Rumble {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Rumble{
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		sampleRate: float64(sampleRate),
	}
}

func (self *Rumble) next() float64 {
	const leak = 0.995
	white := self.rng.Float64()*2 - 1
	self.level = self.level*leak + white*0.05
	if self.level > 1 {
		self.level = 1
	} else if self.level < -1 {
		self.level = -1
	}

	// slow swell between 0.6 and 1.0 at ~0.4 Hz
	t := float64(self.position) / self.sampleRate
	swell := 0.8 + 0.2*math.Sin(2*math.Pi*0.4*t)
	self.position += 1
	return self.level * swell
}

// Implements [beep.Streamer]. Never runs out.
func (self *Rumble) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		value := self.next()
		samples[i][0] = value
		samples[i][1] = value
	}
	return len(samples), true
}

// Implements [beep.Streamer].
func (self *Rumble) Err() error { return nil }

// Implements [io.Reader] with 16-bit little-endian stereo frames.
// Never returns io.EOF.
func (self *Rumble) Read(buffer []byte) (int, error) {
	written := copy(buffer, self.pending)
	self.pending = self.pending[written:]

	var frame [4]byte
	for written < len(buffer) {
		value := int16(self.next() * math.MaxInt16)
		binary.LittleEndian.PutUint16(frame[0:2], uint16(value))
		binary.LittleEndian.PutUint16(frame[2:4], uint16(value))
		n := copy(buffer[written:], frame[:])
		written += n
		if n < len(frame) {
			self.pending = append(self.pending[:0], frame[n:]...)
		}
	}
	return written, nil
}
