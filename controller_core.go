package tremor

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/edwinsyarief/tremor/audio"
	"github.com/edwinsyarief/tremor/clock"
	"github.com/edwinsyarief/tremor/envelope"
	"github.com/edwinsyarief/tremor/noise"
	"github.com/edwinsyarief/tremor/scene"
	"github.com/edwinsyarief/tremor/shaker"
	"github.com/edwinsyarief/tremor/tracker"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// Upper bound (exclusive) of randomly drawn phase offsets.
const maxPhaseOffset = 1000

// Engine runs a single earthquake against one target transform.
//
// An engine is created with [New](), optionally customized with the
// setters, armed once with [Engine.Arm]() and then driven by the
// scheduler it was armed with. It runs at most once; after the run
// it stays [Completed] with the target exactly at its baseline pose.
//
// Engines are not safe for concurrent use. All calls, including the
// scheduler callbacks, must come from the same goroutine.
type Engine struct {
	cfg    Config
	logger *zap.Logger

	// collaborators
	tracker     tracker.Tracker
	field       noise.Field
	audio       audioChannel
	fixedOffset bool
	offset      float64

	// lifecycle
	phase       Phase
	armed       bool
	disabled    bool
	cancelStart func()
	cancelFrame func()
	target      scene.Transform
	baseline    scene.Pose
	seed        int64

	// run
	envelope     envelope.Envelope
	composer     *shaker.Composer
	elapsed      float64
	intensity    float64
	displacement mgl64.Vec3
	rotation     mgl64.Quat
	angleX       float64
	angleZ       float64
	restore      tracker.Restore
}

func newEngine(cfg Config) *Engine {
	engine := &Engine{
		cfg:      cfg,
		logger:   zap.NewNop(),
		rotation: mgl64.QuatIdent(),
		baseline: scene.Identity(),
	}
	engine.cfg.TargetFallbacks = append([]string(nil), cfg.TargetFallbacks...)
	return engine
}

func (self *Engine) mustBeUnarmed() {
	if self.armed || self.disabled {
		panic(panicArmedSetter)
	}
}

func (self *Engine) getTracker() tracker.Tracker {
	if self.tracker == nil {
		return defaultTracker
	}
	return self.tracker
}

// --- arming ---

func (self *Engine) arm(sched clock.Scheduler, target scene.Transform) error {
	if sched == nil {
		panic(panicNilScheduler)
	}
	if self.armed || self.disabled {
		return ErrAlreadyArmed
	}
	if err := self.cfg.Validate(); err != nil {
		return self.disable("invalid configuration", err)
	}
	if target == nil {
		return self.disable("no target to shake", ErrNoTarget)
	}

	self.target = target
	self.baseline = target.Pose()

	self.seed = self.cfg.Seed
	if self.seed == 0 {
		self.seed = time.Now().UnixNano()
	}
	if !self.fixedOffset {
		rng := rand.New(rand.NewPCG(uint64(self.seed), uint64(self.seed)>>1|1))
		self.offset = rng.Float64() * maxPhaseOffset
	}
	if self.field == nil {
		self.field = newDefaultNoise(self.seed)
	}
	if self.tracker == nil {
		self.tracker = newConfiguredTracker(&self.cfg)
	}
	self.envelope = self.cfg.buildEnvelope(self.field, self.offset)
	self.composer = shaker.New(self.cfg.buildShakerParams(), self.field, self.offset)
	self.audio.configure(&self.cfg, self.audio.sink)
	self.audio.Arm()

	self.armed = true
	self.phase = Scheduled
	self.cancelFrame = sched.TickEachFrame(self.update)
	self.cancelStart = sched.ScheduleOnce(self.cfg.StartupDelay, func() {
		self.cancelStart = nil
		_ = self.start()
	})

	self.logger.Info("earthquake armed",
		zap.String("target", target.Name()),
		zap.Float64("startup_delay", self.cfg.StartupDelay),
		zap.Float64("total_duration", self.cfg.TotalDuration),
		zap.Int64("seed", self.seed),
		zap.Float64("phase_offset", self.offset),
	)
	return nil
}

func (self *Engine) armByName(sched clock.Scheduler, resolver scene.Resolver) error {
	if sched == nil {
		panic(panicNilScheduler)
	}
	if self.armed || self.disabled {
		return ErrAlreadyArmed
	}
	names := self.cfg.TargetNames()
	target, found := scene.ResolveFirst(resolver, names...)
	if !found {
		return self.disable("no target to shake", fmt.Errorf("%w: tried %q", ErrNoTarget, names))
	}
	return self.arm(sched, target)
}

// Configuration errors are reported once and disable the engine for
// good. The target is never touched.
func (self *Engine) disable(reason string, err error) error {
	self.disabled = true
	self.logger.Error("earthquake disabled: "+reason, zap.Error(err))
	return err
}

// --- lifecycle transitions ---

func (self *Engine) start() error {
	switch self.phase {
	case Scheduled:
		// handled below
	case Idle:
		self.logger.Warn("earthquake start refused", zap.Stringer("phase", self.phase), zap.Bool("disabled", self.disabled))
		return ErrNotArmed
	default:
		self.logger.Warn("earthquake start refused", zap.Stringer("phase", self.phase))
		return ErrAlreadyRan
	}

	if self.cancelStart != nil {
		self.cancelStart()
		self.cancelStart = nil
	}
	self.phase = Active
	self.elapsed = 0
	self.intensity = self.cfg.InitialIntensity
	self.displacement = mgl64.Vec3{}
	self.rotation = mgl64.QuatIdent()
	self.getTracker().Reset()
	self.audio.Start()
	self.logger.Info("earthquake started", zap.String("target", self.target.Name()))
	return nil
}

func (self *Engine) stop() {
	if self.phase != Active {
		return
	}
	self.beginRestore()
}

func (self *Engine) beginRestore() {
	self.phase = Restoring
	self.restore.Begin(self.displacement, self.rotation, self.cfg.RestoreDuration)
	self.audio.BeginFade()
	self.logger.Info("earthquake restoring",
		zap.Float64("elapsed", self.elapsed),
		zap.Float64("restore_duration", self.cfg.RestoreDuration),
	)
}

// Forces the target back to its exact baseline and releases every
// scheduler hook. Safe to call more than once.
func (self *Engine) complete() {
	wasCompleted := self.phase == Completed
	self.releaseHooks()
	self.displacement = mgl64.Vec3{}
	self.rotation = mgl64.QuatIdent()
	self.angleX, self.angleZ = 0, 0
	self.intensity = 0
	if self.target != nil {
		self.target.SetPose(self.baseline)
	}
	if self.armed {
		self.audio.Finish()
	}
	self.phase = Completed
	if !wasCompleted {
		self.logger.Info("earthquake completed")
	}
}

func (self *Engine) detach() {
	if self.phase == Completed {
		return
	}
	if !self.armed {
		// nothing was touched, only make sure nothing ever runs
		self.phase = Completed
		return
	}
	self.complete()
}

func (self *Engine) releaseHooks() {
	if self.cancelStart != nil {
		self.cancelStart()
		self.cancelStart = nil
	}
	if self.cancelFrame != nil {
		self.cancelFrame()
		self.cancelFrame = nil
	}
}

// --- setters ---

func (self *Engine) setLogger(logger *zap.Logger) {
	self.mustBeUnarmed()
	if logger == nil {
		logger = zap.NewNop()
	}
	self.logger = logger
}

func (self *Engine) setAudio(sink audio.Sink) {
	self.mustBeUnarmed()
	self.audio.sink = sink
}

func (self *Engine) setTracker(tracker tracker.Tracker) {
	self.mustBeUnarmed()
	if tracker == nil {
		panic(panicNilTracker)
	}
	self.tracker = tracker
}

func (self *Engine) setNoise(field noise.Field) {
	self.mustBeUnarmed()
	self.field = field
}

func (self *Engine) setPhaseOffset(offset float64) {
	self.mustBeUnarmed()
	self.fixedOffset = true
	self.offset = offset
}
