package tremor

import "errors"

// --- errors ---

var (
	// Returned (wrapped) by [Config.Validate]() and [Engine.Arm]()
	// for out-of-range or inconsistent configuration values.
	ErrInvalidConfig = errors.New("invalid config")

	// Returned by [Engine.Arm]() and [Engine.ArmByName]() when there
	// is nothing to shake.
	ErrNoTarget = errors.New("target transform not found")

	// Returned by [Engine.Arm]() on engines that were armed before
	// or disabled.
	ErrAlreadyArmed = errors.New("engine already armed")

	// Returned by [Engine.Start]() once a run has finished or is
	// restoring. An engine runs at most once.
	ErrAlreadyRan = errors.New("engine already ran")

	// Returned by [Engine.Start]() on engines that were never armed.
	ErrNotArmed = errors.New("engine not armed")
)

// internal usage
const (
	panicNilScheduler = "tremor: nil clock.Scheduler"
	panicNilTracker   = "tremor: nil tracker.Tracker (use tracker.Exponential for the default)"
	panicArmedSetter  = "tremor: engine setters must be called before Arm()"
)
