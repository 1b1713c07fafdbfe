package pricex

// State is the lifecycle stage of an extraction controller.
type State int

// State constants.
const (
	StateIdle State = iota
	StateSubmitting
	StateInProgress
	StateCompleted
	StateFailed
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateInProgress:
		return "in progress"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// InFlight reports whether an extraction is running.
func (s State) InFlight() bool {
	return s == StateSubmitting || s == StateInProgress
}

// CanTransition reports whether moving from s to next is legal.
func (s State) CanTransition(next State) bool {
	switch next {
	case StateSubmitting:
		return !s.InFlight()
	case StateInProgress:
		return s == StateSubmitting
	case StateCompleted:
		return s == StateInProgress
	case StateFailed:
		return s.InFlight()
	case StateIdle:
		return !s.InFlight()
	default:
		return false
	}
}
