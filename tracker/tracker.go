// This package defines the [Tracker] interface used by the engine
// to smooth raw shake targets, and provides a few implementations.
//
// All provided implementations are tick-rate independent: they
// receive the real elapsed time of each tick, so the perceived
// motion stays the same at 30, 60 or 144 updates per second.
package tracker

import "github.com/go-gl/mathgl/mgl64"

// The interface for motion smoothers.
//
// Position() and Rotation() return the new smoothed value after
// advancing dt seconds toward the target at the given rate. Stateful
// trackers (e.g. springs) must forget any accumulated velocity on
// Reset(), which the engine calls whenever a run starts.
type Tracker interface {
	Position(current, target mgl64.Vec3, rate, dt float64) mgl64.Vec3
	Rotation(current, target mgl64.Quat, rate, dt float64) mgl64.Quat
	Reset()
}

// Names accepted by [New]().
const (
	NameExponential = "exponential"
	NameSpring      = "spring"
)

// Returns a fresh tracker for the given name. The empty name selects
// [Exponential]. Stateful trackers are never shared between calls.
func New(name string) (Tracker, bool) {
	switch name {
	case "", NameExponential:
		return Exponential, true
	case NameSpring:
		return &Spring{}, true
	default:
		return nil, false
	}
}
