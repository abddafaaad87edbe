package tremor

import (
	"github.com/edwinsyarief/tremor/noise"
	"github.com/edwinsyarief/tremor/tracker"
)

// Used when no tracker has been set and none could be built from
// the configuration.
var defaultTracker tracker.Tracker = tracker.Exponential

// Returns the tracker named by the configuration.
func newConfiguredTracker(cfg *Config) tracker.Tracker {
	smoother, found := tracker.New(cfg.Smoother)
	if !found {
		return defaultTracker
	}
	return smoother
}

// Used when no noise field has been set. Each armed engine gets its
// own field, seeded with the run seed.
func newDefaultNoise(seed int64) noise.Field {
	return noise.NewSimplex(seed)
}
