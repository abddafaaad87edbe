package tracker

import (
	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl64"
)

// A critically damped spring tracker. Positions follow the target
// like a damped mass instead of an exponential approach, which keeps
// some momentum through direction changes of the raw signal. The
// rate passed to Position() is used as the spring's angular
// frequency.
//
// Rotations are not sprung; they use the same slerp as [Exponential].
//
// Springs keep per-axis velocity, so a Spring value must not be
// shared between engines.
type Spring struct {
	// Damping ratio. Zero means 1.0 (critical damping). Values
	// below 1 overshoot, values above 1 are sluggish.
	Damping float64

	velocity mgl64.Vec3
	spring   harmonica.Spring
	lastDt   float64
	lastRate float64
}

func (self *Spring) Position(current, target mgl64.Vec3, rate, dt float64) mgl64.Vec3 {
	if dt <= 0 || rate <= 0 {
		return current
	}
	if dt != self.lastDt || rate != self.lastRate {
		damping := self.Damping
		if damping <= 0 {
			damping = 1.0
		}
		self.spring = harmonica.NewSpring(dt, rate, damping)
		self.lastDt, self.lastRate = dt, rate
	}

	var next mgl64.Vec3
	for i := 0; i < 3; i++ {
		next[i], self.velocity[i] = self.spring.Update(current[i], self.velocity[i], target[i])
	}
	return next
}

func (self *Spring) Rotation(current, target mgl64.Quat, rate, dt float64) mgl64.Quat {
	return Exponential.Rotation(current, target, rate, dt)
}

func (self *Spring) Reset() {
	self.velocity = mgl64.Vec3{}
	self.lastDt, self.lastRate = 0, 0
}

// Returns the current per-axis velocity.
func (self *Spring) Velocity() mgl64.Vec3 {
	return self.velocity
}
