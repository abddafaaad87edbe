// Package noise provides the coherent noise fields sampled by the
// envelope jitter and by every shaker channel.
//
// A [Field] returns smooth, continuous values in [0, 1] for any
// pair of real inputs. Consecutive samples at nearby coordinates
// vary gradually, which is what keeps the shake organic instead
// of jittery.
package noise

import "github.com/ojrac/opensimplex-go"

// The interface for 2D coherent noise sources with samples
// in the [0, 1] range.
type Field interface {
	Sample(x, y float64) float64
}

// Func adapts a plain function to the [Field] interface. Mostly
// useful in tests, where a closed-form field makes shaker outputs
// predictable.
type Func func(x, y float64) float64

func (self Func) Sample(x, y float64) float64 { return self(x, y) }

// Constant is a field that always returns the same value.
type Constant float64

func (self Constant) Sample(x, y float64) float64 { return float64(self) }

// Simplex is an OpenSimplex field normalized to [0, 1].
type Simplex struct {
	noise opensimplex.Noise
}

// Creates a simplex field for the given seed. Two fields created
// with the same seed produce identical samples.
func NewSimplex(seed int64) *Simplex {
	return &Simplex{noise: opensimplex.NewNormalized(seed)}
}

func (self *Simplex) Sample(x, y float64) float64 {
	value := self.noise.Eval2(x, y)
	// normalized output is documented as [0, 1], but guard the
	// float edges anyway
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

// Remaps a [0, 1] sample to [-1, 1].
func Signed(field Field, x, y float64) float64 {
	return field.Sample(x, y)*2 - 1
}
