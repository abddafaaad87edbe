package tremor

import (
	"fmt"

	"github.com/edwinsyarief/tremor/envelope"
	"github.com/edwinsyarief/tremor/scene"
	"github.com/go-gl/mathgl/mgl64"
)

// Snapshot is a copy of everything a debug overlay may want to show
// about an engine. See [Engine.Snapshot]().
type Snapshot struct {
	Phase     Phase
	Disabled  bool
	Target    string
	Baseline  scene.Pose
	Current   scene.Pose
	Intensity float64
	Stage     envelope.Stage
	HasStage  bool
	Elapsed   float64
	Remaining float64
	Gain      float64

	Displacement mgl64.Vec3
	Rotation     mgl64.Quat
	AngleX       float64 // degrees, raw
	AngleZ       float64 // degrees, raw
	PhaseOffset  float64
}

// Returns a snapshot of the engine state.
func (self *Engine) Snapshot() Snapshot {
	snapshot := Snapshot{
		Phase:        self.phase,
		Disabled:     self.disabled,
		Baseline:     self.baseline,
		Current:      self.baseline,
		Intensity:    self.Intensity(),
		Elapsed:      self.Elapsed(),
		Remaining:    self.Remaining(),
		Gain:         self.Gain(),
		Displacement: self.displacement,
		Rotation:     self.rotation,
		AngleX:       self.angleX,
		AngleZ:       self.angleZ,
		PhaseOffset:  self.offset,
	}
	snapshot.Stage, snapshot.HasStage = self.Stage()
	if self.target != nil {
		snapshot.Target = self.target.Name()
		snapshot.Current = self.target.Pose()
	}
	return snapshot
}

// Returns the snapshot as short text lines, one fact per line,
// ready for ebitenutil.DebugPrint or a terminal overlay.
func (self Snapshot) Lines() []string {
	target := self.Target
	if target == "" {
		target = "<none>"
	}
	phase := self.Phase.String()
	if self.Disabled {
		phase += " (disabled)"
	}
	if self.HasStage {
		phase += " / " + self.Stage.String()
	}

	base, current := self.Baseline.Position, self.Current.Position
	return []string{
		fmt.Sprintf("earthquake: %s", phase),
		fmt.Sprintf("target: %s", target),
		fmt.Sprintf("baseline: (%.3f, %.3f, %.3f)", base[0], base[1], base[2]),
		fmt.Sprintf("current: (%.3f, %.3f, %.3f)", current[0], current[1], current[2]),
		fmt.Sprintf("intensity: %.4f", self.Intensity),
		fmt.Sprintf("displacement: %.4f", self.Displacement.Len()),
		fmt.Sprintf("tilt: %.3f° / %.3f°", self.AngleX, self.AngleZ),
		fmt.Sprintf("time: %.1fs (%.1fs left)", self.Elapsed, self.Remaining),
		fmt.Sprintf("gain: %.2f", self.Gain),
	}
}
