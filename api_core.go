// Package tremor is a procedural earthquake engine: it shakes a single
// target transform through a rise, a jittery peak and a fall, smooths
// the motion so noise samples never read as stutter, drives a rumble
// gain from the same envelope and finally eases everything back to
// the exact pose the target had before the quake.
//
// The engine is tick driven and owns no goroutines. Hosts provide a
// [clock.Scheduler] for the startup delay and the per-frame hook, and
// a [scene.Transform] to shake:
//
//	engine := tremor.New(tremor.DefaultConfig())
//	engine.SetLogger(logger)
//	engine.SetAudio(player)
//	clk := clock.NewManual()
//	if err := engine.Arm(clk, house); err != nil {
//		return err // logged once, engine disabled for good
//	}
//	// on every frame:
//	clk.Advance(dt)
package tremor

import (
	"github.com/edwinsyarief/tremor/audio"
	"github.com/edwinsyarief/tremor/clock"
	"github.com/edwinsyarief/tremor/noise"
	"github.com/edwinsyarief/tremor/scene"
	"github.com/edwinsyarief/tremor/tracker"
	"go.uber.org/zap"
)

// Creates an engine for the given configuration. The configuration
// is only validated on [Engine.Arm](), where failures are reported.
func New(cfg Config) *Engine {
	return newEngine(cfg)
}

// Returns a copy of the engine configuration.
func (self *Engine) Config() Config {
	cfg := self.cfg
	cfg.TargetFallbacks = append([]string(nil), self.cfg.TargetFallbacks...)
	return cfg
}

// --- setup ---

// Sets the logger for lifecycle and diagnostic messages. By default
// engines log nothing. Passing nil restores that default.
//
// Like every setter, must be called before arming. Will panic
// otherwise.
func (self *Engine) SetLogger(logger *zap.Logger) {
	self.setLogger(logger)
}

// Sets the sink that plays the rumble. The sink is silenced on arm,
// played when the run starts and paused after the final fade. Engines
// without a sink simply skip the audio.
func (self *Engine) SetAudio(sink audio.Sink) {
	self.setAudio(sink)
}

// Sets the tracker used to smooth raw shake targets. By default
// the tracker named by Config.Smoother is created on arm. Will panic
// on nil.
func (self *Engine) SetTracker(tracker tracker.Tracker) {
	self.setTracker(tracker)
}

// Sets the coherent noise field sampled by the envelope jitter and
// the composer. By default a [noise.Simplex] seeded with the run
// seed is created on arm.
func (self *Engine) SetNoise(field noise.Field) {
	self.setNoise(field)
}

// Fixes the phase offset instead of drawing a random one on arm.
// Mostly useful for tests and replays; two engines with the same
// field and offset shake identically.
func (self *Engine) SetPhaseOffset(offset float64) {
	self.setPhaseOffset(offset)
}

// --- lifecycle ---

// Arms the engine against the given target: validates the
// configuration, captures the target's baseline pose, draws the
// phase offset, silences the audio sink and schedules the run to
// start after the configured startup delay.
//
// Configuration errors ([ErrInvalidConfig], [ErrNoTarget]) are logged
// once and disable the engine permanently; the target is never
// touched. Arming twice returns [ErrAlreadyArmed]. Will panic if
// sched is nil.
func (self *Engine) Arm(sched clock.Scheduler, target scene.Transform) error {
	return self.arm(sched, target)
}

// Like [Engine.Arm](), but looks the target up through the resolver:
// first Config.Target, then each of Config.TargetFallbacks in order.
func (self *Engine) ArmByName(sched clock.Scheduler, resolver scene.Resolver) error {
	return self.armByName(sched, resolver)
}

// Starts the run right away instead of waiting for the startup
// delay. Called automatically by the scheduler when the delay ends.
//
// Start only succeeds once, from [Scheduled]. Other phases are left
// untouched, a single warning is logged and [ErrNotArmed] (idle or
// disabled engines) or [ErrAlreadyRan] is returned.
func (self *Engine) Start() error {
	return self.start()
}

// Advances the engine by dt seconds. This is the frame hook the
// engine registers on arm, so hosts driving a [clock.Scheduler] never
// need to call it. Only call it directly to drive an engine armed
// against a scheduler that doesn't tick frames.
//
// Non-positive and non-finite deltas are ignored.
func (self *Engine) Update(dt float64) {
	self.update(dt)
}

// Ends an active run early and starts restoring. Calling Stop in any
// other phase does nothing.
func (self *Engine) Stop() {
	self.stop()
}

// Releases the scheduler hooks, puts the target back at its baseline
// pose, stops the audio and leaves the engine [Completed]. Meant for
// hosts tearing down a scene mid-run.
func (self *Engine) Detach() {
	self.detach()
}
