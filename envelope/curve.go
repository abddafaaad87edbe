package envelope

import "github.com/edwinsyarief/tremor/utils"

// The interface for the easing curves applied to the rise and
// fall phases. Both methods receive a progress value in [0, 1]
// and must return 0 for 0 and 1 for 1.
type Curve interface {
	Rise(progress float64) float64
	Fall(progress float64) float64
}

// Names accepted by [CurveByName]().
const (
	NameSmoothStep = "smoothstep"
	NameQuadratic  = "quadratic"
)

// Built-in curves.
var (
	// Cubic smoothstep for both the rise and the fall. Zero slope
	// at every phase boundary. This is the default.
	SmoothStep Curve = smoothStepCurve{}

	// Quadratic ease-in for the rise and its mirrored ease-out for
	// the fall. Ramps feel more abrupt at the peak boundary.
	Quadratic Curve = quadraticCurve{}
)

// Returns the curve registered under the given name. The empty
// name resolves to [SmoothStep].
func CurveByName(name string) (Curve, bool) {
	switch name {
	case "", NameSmoothStep:
		return SmoothStep, true
	case NameQuadratic:
		return Quadratic, true
	default:
		return nil, false
	}
}

type smoothStepCurve struct{}

func (smoothStepCurve) Rise(p float64) float64 { return utils.SmoothStep(p) }
func (smoothStepCurve) Fall(p float64) float64 { return utils.SmoothStep(p) }
func (smoothStepCurve) String() string         { return NameSmoothStep }

type quadraticCurve struct{}

func (quadraticCurve) Rise(p float64) float64 {
	p = utils.Clamp01(p)
	return p * p
}

func (quadraticCurve) Fall(p float64) float64 {
	p = utils.Clamp01(p)
	return 1 - (1-p)*(1-p)
}

func (quadraticCurve) String() string { return NameQuadratic }
