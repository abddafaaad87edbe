package tremor

// Phase is the lifecycle state of an [Engine].
//
// An engine moves strictly forward: Idle, Scheduled, Active,
// Restoring and finally Completed, which is terminal. Disabled
// engines stay Idle forever.
type Phase uint8

const (
	Idle Phase = iota
	Scheduled
	Active
	Restoring
	Completed
)

// Returns a string representation of the phase.
func (self Phase) String() string {
	switch self {
	case Idle:
		return "Idle"
	case Scheduled:
		return "Scheduled"
	case Active:
		return "Active"
	case Restoring:
		return "Restoring"
	case Completed:
		return "Completed"
	default:
		panic("invalid Phase")
	}
}
