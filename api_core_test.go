package tremor

import (
	"errors"
	"math"
	"testing"

	"github.com/edwinsyarief/tremor/audio"
	"github.com/edwinsyarief/tremor/clock"
	"github.com/edwinsyarief/tremor/envelope"
	"github.com/edwinsyarief/tremor/noise"
	"github.com/edwinsyarief/tremor/scene"
	"github.com/edwinsyarief/tremor/shaker"
	"github.com/edwinsyarief/tremor/tracker"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// Exactly representable, so elapsed times add up without drift.
const frame = 1.0 / 64.0

type harness struct {
	engine *Engine
	clock  *clock.Manual
	node   *scene.Node
	sink   *audio.Null
	logs   *observer.ObservedLogs
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	h := &harness{
		engine: New(cfg),
		clock:  clock.NewManual(),
		sink:   &audio.Null{},
		logs:   logs,
		node: scene.NewNode("House", scene.Pose{
			Position:    mgl64.Vec3{1, 2, 3},
			Orientation: mgl64.QuatRotate(0.3, mgl64.Vec3{0, 1, 0}),
		}),
	}
	h.engine.SetLogger(zap.New(core))
	h.engine.SetAudio(h.sink)
	h.engine.SetNoise(noise.NewSimplex(7))
	h.engine.SetPhaseOffset(42)
	return h
}

func (self *harness) advance(frames int) {
	for i := 0; i < frames; i++ {
		self.clock.Advance(frame)
	}
}

func (self *harness) count(level zapcore.Level) int {
	return self.logs.FilterLevelExact(level).Len()
}

// Short run: starts on the first frame, 2s active, 0.5s restore.
func shortConfig() Config {
	cfg := DefaultConfig()
	cfg.StartupDelay = 0
	cfg.TotalDuration = 2
	cfg.RiseDuration = 0.5
	cfg.PeakDuration = 0.5
	cfg.RestoreDuration = 0.5
	cfg.Audio.FadeDuration = 0.25
	return cfg
}

func TestEngineFullRun(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	baseline := h.node.Pose()
	if err := h.engine.Arm(h.clock, h.node); err != nil {
		t.Fatalf("arm: %v", err)
	}
	if h.engine.Phase() != Scheduled || h.sink.Volume != 0 || h.sink.Playing {
		t.Fatalf("after arm: phase %v, sink %+v", h.engine.Phase(), *h.sink)
	}

	// startup delay
	h.advance(639)
	if h.engine.Phase() != Scheduled {
		t.Fatalf("started early, at %v", h.clock.Now())
	}
	h.advance(1)
	if !h.engine.IsActive() || h.engine.Elapsed() != 0 || !h.sink.Playing || h.sink.Plays != 1 {
		t.Fatalf("expected a fresh active run, got phase %v elapsed %v sink %+v",
			h.engine.Phase(), h.engine.Elapsed(), *h.sink)
	}

	// mid peak, 11s into the run
	h.advance(704)
	if h.engine.Elapsed() != 11 {
		t.Fatalf("elapsed = %v, want 11", h.engine.Elapsed())
	}
	if stage, ok := h.engine.Stage(); !ok || stage != envelope.StagePeak {
		t.Fatalf("stage = %v (%v), want peak", stage, ok)
	}
	peak := h.engine.Config().PeakIntensity
	if intensity := h.engine.Intensity(); intensity < peak || intensity > peak*1.12 {
		t.Fatalf("peak intensity %v outside [%v, %v]", intensity, peak, peak*1.12)
	}
	if h.node.Pose().Position == baseline.Position {
		t.Fatalf("target did not move during the peak")
	}
	if h.sink.Volume <= 0.75 || h.sink.Volume > 0.8 {
		t.Fatalf("gain near the peak = %v", h.sink.Volume)
	}
	if remaining := h.engine.Remaining(); remaining != 19 {
		t.Fatalf("remaining = %v, want 19", remaining)
	}

	// end of the fall
	h.advance(1914 - 704)
	initial := h.engine.Config().InitialIntensity
	if intensity := h.engine.Intensity(); math.Abs(intensity-initial) > 1e-5 {
		t.Fatalf("intensity near the end = %v, want ~%v", intensity, initial)
	}

	// total duration reached
	h.advance(1920 - 1914)
	if h.engine.Phase() != Restoring {
		t.Fatalf("phase = %v, want Restoring", h.engine.Phase())
	}
	if h.engine.Intensity() != 0 || h.engine.Elapsed() != 0 || h.engine.Remaining() != 0 || h.engine.IsActive() {
		t.Fatalf("queries must read zero outside Active")
	}

	// restore takes exactly 3s
	h.advance(191)
	if h.engine.Phase() != Restoring {
		t.Fatalf("restore ended early")
	}
	if h.sink.Playing || h.sink.Pauses != 1 {
		t.Fatalf("audio fade should be over by now: %+v", *h.sink)
	}
	h.advance(1)
	if !h.engine.IsCompleted() {
		t.Fatalf("phase = %v, want Completed", h.engine.Phase())
	}
	if h.node.Pose() != baseline {
		t.Fatalf("pose %+v not restored exactly to %+v", h.node.Pose(), baseline)
	}
	if h.sink.Volume != h.engine.Config().Audio.MinGain || h.engine.Gain() != h.engine.Config().Audio.MinGain {
		t.Fatalf("gain not reset to the resting value: %v", h.sink.Volume)
	}
	if timers, hooks := h.clock.Pending(); timers != 0 || hooks != 0 {
		t.Fatalf("scheduler hooks left behind: %d timers, %d hooks", timers, hooks)
	}

	// dormant for good
	h.advance(100)
	if h.node.Pose() != baseline || !h.engine.IsCompleted() {
		t.Fatalf("completed engine kept working")
	}
	if h.count(zapcore.WarnLevel) != 0 || h.count(zapcore.ErrorLevel) != 0 {
		t.Fatalf("unexpected diagnostics: %v", h.logs.All())
	}
}

func TestEngineStartAfterCompletion(t *testing.T) {
	h := newHarness(t, shortConfig())
	if err := h.engine.Arm(h.clock, h.node); err != nil {
		t.Fatalf("arm: %v", err)
	}
	h.advance(1000)
	if !h.engine.IsCompleted() {
		t.Fatalf("run did not complete")
	}
	pose := h.node.Pose()

	err := h.engine.Start()
	if !errors.Is(err, ErrAlreadyRan) {
		t.Fatalf("Start() = %v, want ErrAlreadyRan", err)
	}
	if h.count(zapcore.WarnLevel) != 1 {
		t.Fatalf("expected exactly one warning, got %d", h.count(zapcore.WarnLevel))
	}
	if !h.engine.IsCompleted() || h.node.Pose() != pose || h.sink.Plays != 1 {
		t.Fatalf("refused start changed state")
	}
	if err := h.engine.Arm(h.clock, h.node); !errors.Is(err, ErrAlreadyArmed) {
		t.Fatalf("re-arm = %v, want ErrAlreadyArmed", err)
	}
}

func TestEngineStartWhileRestoring(t *testing.T) {
	h := newHarness(t, shortConfig())
	_ = h.engine.Arm(h.clock, h.node)
	h.advance(2)
	h.engine.Stop()
	if h.engine.Phase() != Restoring {
		t.Fatalf("Stop() from Active must restore, phase %v", h.engine.Phase())
	}
	if err := h.engine.Start(); !errors.Is(err, ErrAlreadyRan) {
		t.Fatalf("Start() = %v, want ErrAlreadyRan", err)
	}
	if h.engine.Phase() != Restoring || h.count(zapcore.WarnLevel) != 1 {
		t.Fatalf("refused start changed state or logged wrong")
	}
}

func TestEngineInvalidConfigDisables(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RiseDuration = 25 // rise + peak > total
	cfg.BaseFrequency = 0
	h := newHarness(t, cfg)
	pose := h.node.Pose()

	err := h.engine.Arm(h.clock, h.node)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Arm() = %v, want ErrInvalidConfig", err)
	}
	if !h.engine.Disabled() || h.engine.Phase() != Idle {
		t.Fatalf("engine should be disabled and idle")
	}
	if h.count(zapcore.ErrorLevel) != 1 {
		t.Fatalf("expected exactly one error diagnostic, got %d", h.count(zapcore.ErrorLevel))
	}
	if timers, hooks := h.clock.Pending(); timers != 0 || hooks != 0 {
		t.Fatalf("disabled engine registered hooks")
	}

	h.advance(2000)
	if h.node.Pose() != pose {
		t.Fatalf("disabled engine touched the target")
	}
	if err := h.engine.Arm(h.clock, h.node); !errors.Is(err, ErrAlreadyArmed) {
		t.Fatalf("disabled engine re-armed: %v", err)
	}
	if err := h.engine.Start(); !errors.Is(err, ErrNotArmed) {
		t.Fatalf("Start() on a disabled engine = %v", err)
	}
	if h.count(zapcore.ErrorLevel) != 1 {
		t.Fatalf("configuration error reported more than once")
	}
}

func TestEngineArmByName(t *testing.T) {
	world := scene.NewNode("World", scene.Identity())
	h := newHarness(t, shortConfig())
	if err := h.engine.ArmByName(h.clock, scene.NewRegistry(world)); err != nil {
		t.Fatalf("ArmByName: %v", err)
	}
	if h.engine.Target() != scene.Transform(world) {
		t.Fatalf("resolved %v, want the World fallback", h.engine.Target())
	}

	missing := newHarness(t, shortConfig())
	err := missing.engine.ArmByName(missing.clock, scene.NewRegistry())
	if !errors.Is(err, ErrNoTarget) || !missing.engine.Disabled() {
		t.Fatalf("ArmByName() = %v, disabled %v", err, missing.engine.Disabled())
	}
	if missing.count(zapcore.ErrorLevel) != 1 {
		t.Fatalf("expected one error diagnostic")
	}

	nilTarget := newHarness(t, shortConfig())
	if err := nilTarget.engine.Arm(nilTarget.clock, nil); !errors.Is(err, ErrNoTarget) {
		t.Fatalf("Arm(nil target) = %v", err)
	}
}

func TestEngineStopOnlyFromActive(t *testing.T) {
	cfg := shortConfig()
	cfg.StartupDelay = 1
	h := newHarness(t, cfg)

	h.engine.Stop() // idle
	_ = h.engine.Arm(h.clock, h.node)
	h.engine.Stop() // scheduled
	if h.engine.Phase() != Scheduled {
		t.Fatalf("Stop() changed a scheduled engine")
	}
	h.advance(64 + 8)
	if !h.engine.IsActive() {
		t.Fatalf("engine should be active")
	}
	h.engine.Stop()
	h.engine.Stop()
	if h.engine.Phase() != Restoring {
		t.Fatalf("phase = %v, want Restoring", h.engine.Phase())
	}
	h.advance(32)
	if !h.engine.IsCompleted() {
		t.Fatalf("restore of 0.5s should be over, phase %v", h.engine.Phase())
	}
	h.engine.Stop()
	if !h.engine.IsCompleted() {
		t.Fatalf("Stop() changed a completed engine")
	}
}

func TestEngineManualStartSkipsDelay(t *testing.T) {
	cfg := shortConfig()
	cfg.StartupDelay = 100
	h := newHarness(t, cfg)
	_ = h.engine.Arm(h.clock, h.node)
	if err := h.engine.Start(); err != nil {
		t.Fatalf("Start(): %v", err)
	}
	if timers, _ := h.clock.Pending(); timers != 0 {
		t.Fatalf("pending start timer not cancelled")
	}
	if err := h.engine.Start(); !errors.Is(err, ErrAlreadyRan) {
		t.Fatalf("second Start() = %v", err)
	}
}

func TestEngineDisplacementMatchesComposer(t *testing.T) {
	cfg := shortConfig()
	cfg.Vibration.Enabled = false
	cfg.Oscillation.Enabled = false
	field := noise.Func(func(x, y float64) float64 {
		return 0.5 + 0.4*math.Sin(1.7*x+0.9*y)
	})

	h := newHarness(t, cfg)
	h.engine.SetNoise(field)
	h.engine.SetTracker(tracker.Instant)
	baseline := h.node.Pose()
	_ = h.engine.Arm(h.clock, h.node)
	h.advance(1 + 20)

	elapsed := 20 * frame
	intensity := h.engine.Intensity()
	composer := shaker.New(cfg.buildShakerParams(), field, 42)
	want := composer.Base(elapsed, intensity)

	// base term by hand: channels (τf, 0), (0, τf), (τf, τf)
	tau := (elapsed + 42) * cfg.BaseFrequency
	byHand := mgl64.Vec3{
		(2*field(tau, 0) - 1) * cfg.HorizontalWeight * intensity,
		(2*field(0, tau) - 1) * cfg.VerticalWeight * intensity,
		(2*field(tau, tau) - 1) * cfg.HorizontalWeight * intensity,
	}
	got := h.engine.Displacement()
	if !got.ApproxEqualThreshold(want, 1e-12) || !got.ApproxEqualThreshold(byHand, 1e-12) {
		t.Fatalf("displacement %v, composer %v, by hand %v", got, want, byHand)
	}
	position := h.node.Pose().Position
	if !position.ApproxEqualThreshold(baseline.Position.Add(want), 1e-12) {
		t.Fatalf("target position %v, want %v", position, baseline.Position.Add(want))
	}
}

func TestEngineDetachMidRun(t *testing.T) {
	h := newHarness(t, shortConfig())
	baseline := h.node.Pose()
	_ = h.engine.Arm(h.clock, h.node)
	h.advance(40)
	if h.node.Pose() == baseline {
		t.Fatalf("target should be displaced mid-run")
	}
	h.engine.Detach()
	if !h.engine.IsCompleted() || h.node.Pose() != baseline || h.sink.Playing {
		t.Fatalf("detach must restore baseline and stop audio")
	}
	if timers, hooks := h.clock.Pending(); timers != 0 || hooks != 0 {
		t.Fatalf("detach left hooks behind")
	}
	h.engine.Detach()
}

func TestEngineIgnoresDegenerateDeltas(t *testing.T) {
	h := newHarness(t, shortConfig())
	_ = h.engine.Arm(h.clock, h.node)
	h.advance(5)
	before := h.engine.Snapshot()
	for _, dt := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		h.engine.Update(dt)
	}
	after := h.engine.Snapshot()
	if before.Elapsed != after.Elapsed || before.Current != after.Current {
		t.Fatalf("degenerate deltas changed the engine")
	}
}

func TestEngineSettersPanicAfterArm(t *testing.T) {
	h := newHarness(t, shortConfig())
	_ = h.engine.Arm(h.clock, h.node)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	h.engine.SetTracker(tracker.Exponential)
}

func TestEngineSnapshotLines(t *testing.T) {
	h := newHarness(t, shortConfig())
	_ = h.engine.Arm(h.clock, h.node)
	h.advance(10)
	snapshot := h.engine.Snapshot()
	if snapshot.Target != "House" || snapshot.Phase != Active || !snapshot.HasStage {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}
	if lines := snapshot.Lines(); len(lines) != 9 || lines[0] != "earthquake: Active / rise" {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestEngineSpringSmootherFromConfig(t *testing.T) {
	cfg := shortConfig()
	cfg.Smoother = tracker.NameSpring
	h := newHarness(t, cfg)
	baseline := h.node.Pose()
	if err := h.engine.Arm(h.clock, h.node); err != nil {
		t.Fatalf("arm: %v", err)
	}
	h.advance(60)
	if h.node.Pose() == baseline {
		t.Fatalf("spring smoother did not move the target")
	}
	h.advance(200)
	if !h.engine.IsCompleted() || h.node.Pose() != baseline {
		t.Fatalf("spring run did not restore exactly")
	}

	cfg.Smoother = "wobbly"
	bad := newHarness(t, cfg)
	if err := bad.engine.Arm(bad.clock, bad.node); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("unknown smoother accepted: %v", err)
	}
}
