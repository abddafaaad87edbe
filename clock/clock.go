// Package clock defines the scheduling capability the shake engine
// needs from its host: one-shot callbacks after a delay and a hook
// invoked once per frame.
//
// Hosts with their own loop (ebiten's Update, a terminal ticker, a
// test) drive a [Manual] clock by calling [Manual.Advance] with the
// frame delta.
package clock

import "sort"

// Scheduler is the host capability used by the engine.
//
// Cancel functions are idempotent and may be called from inside the
// callbacks they cancel.
type Scheduler interface {
	ScheduleOnce(delay float64, fn func()) (cancel func())
	TickEachFrame(fn func(dt float64)) (cancel func())
}

type timer struct {
	id       uint64
	deadline float64
	fn       func()
}

type hook struct {
	id uint64
	fn func(dt float64)
}

// Manual is a single-threaded frame clock. Time only moves when
// Advance is called.
type Manual struct {
	now    float64
	nextID uint64
	timers []timer
	hooks  []hook
}

// Creates a manual clock at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Returns the accumulated time, in seconds.
func (self *Manual) Now() float64 { return self.now }

// Returns the number of pending one-shots and frame hooks.
func (self *Manual) Pending() (timers, hooks int) {
	return len(self.timers), len(self.hooks)
}

func (self *Manual) ScheduleOnce(delay float64, fn func()) func() {
	if fn == nil {
		panic("clock: ScheduleOnce with nil callback")
	}
	if !(delay > 0) {
		delay = 0
	}
	self.nextID += 1
	id := self.nextID
	self.timers = append(self.timers, timer{id: id, deadline: self.now + delay, fn: fn})
	return func() { self.removeTimer(id) }
}

func (self *Manual) TickEachFrame(fn func(dt float64)) func() {
	if fn == nil {
		panic("clock: TickEachFrame with nil callback")
	}
	self.nextID += 1
	id := self.nextID
	self.hooks = append(self.hooks, hook{id: id, fn: fn})
	return func() { self.removeHook(id) }
}

// Moves time forward by dt. Frame hooks registered before the call
// run first, then one-shots whose deadline has been reached fire in
// deadline order (registration order on ties). Work registered by a
// callback is first considered on the next Advance.
func (self *Manual) Advance(dt float64) {
	if !(dt >= 0) {
		dt = 0
	}
	self.now += dt

	hooks := append([]hook(nil), self.hooks...)
	for _, h := range hooks {
		if self.hasHook(h.id) {
			h.fn(dt)
		}
	}

	var due []timer
	for _, t := range self.timers {
		if t.deadline <= self.now {
			due = append(due, t)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].deadline < due[j].deadline
	})
	for _, t := range due {
		if self.removeTimer(t.id) {
			t.fn()
		}
	}
}

func (self *Manual) hasHook(id uint64) bool {
	for _, h := range self.hooks {
		if h.id == id {
			return true
		}
	}
	return false
}

func (self *Manual) removeHook(id uint64) {
	for i, h := range self.hooks {
		if h.id == id {
			self.hooks = append(self.hooks[:i], self.hooks[i+1:]...)
			return
		}
	}
}

func (self *Manual) removeTimer(id uint64) bool {
	for i, t := range self.timers {
		if t.id == id {
			self.timers = append(self.timers[:i], self.timers[i+1:]...)
			return true
		}
	}
	return false
}
