// Scalar helpers shared by the tremor sub-packages.
//
// Everything here is pure and allocation free. Functions never
// return NaN for finite inputs, which is the property the rest
// of the engine relies on when guarding the output transform.
package utils

import "math"

// Returns a + (b - a)*t. The interpolation factor is not clamped,
// see [LerpClamped]() for the clamped variant.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Same as [Lerp](), but clamping t to [0, 1] first. This is the
// behavior expected by exponential smoothing, where rate*dt can
// exceed 1 on long frames.
func LerpClamped(a, b, t float64) float64 {
	return Lerp(a, b, Clamp01(t))
}

// Returns the position of value within [a, b] as a factor, or 0
// if the range is empty. The result is not clamped.
func InverseLerp(a, b, value float64) float64 {
	if b == a {
		return 0
	}
	return (value - a) / (b - a)
}

// Clamps the given value to [0, 1]. NaN is mapped to 0.
func Clamp01(value float64) float64 {
	if !(value > 0) { // also catches NaN
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

// Clamps the given value to [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Cubic smoothstep over t in [0, 1] (t is clamped). First derivative
// is zero at both ends.
func SmoothStep(t float64) float64 {
	t = Clamp01(t)
	return t * t * (3 - 2*t)
}

// Returns whether the value is neither NaN nor infinite.
func IsFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
