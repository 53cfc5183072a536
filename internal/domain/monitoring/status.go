package monitoring

// Status is the workflow stage of a monitoring record.
type Status int

const (
	StatusAwaitingMonitoring Status = 1
	StatusAwaitingInspector  Status = 2
	StatusCompleted          Status = 3
)

// NoOccurrenceCode marks records where monitoring found nothing to treat.
// Approving such a record skips the inspector stage entirely.
const NoOccurrenceCode = 28

// IsValid checks if the status is a known stage
func (s Status) IsValid() bool {
	return s >= StatusAwaitingMonitoring && s <= StatusCompleted
}

// CanTransitionTo checks if a transition to the target stage is allowed
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusAwaitingMonitoring:
		return target == StatusAwaitingInspector || target == StatusCompleted
	case StatusAwaitingInspector:
		return target == StatusCompleted || target == StatusAwaitingMonitoring
	default:
		return false
	}
}

// Previous returns the stage one step back, used by reprove.
func (s Status) Previous() Status {
	if s <= StatusAwaitingMonitoring {
		return StatusAwaitingMonitoring
	}
	return s - 1
}

// IsTerminal reports whether no further transitions are possible
func (s Status) IsTerminal() bool {
	return s == StatusCompleted
}

// String returns the stage label
func (s Status) String() string {
	switch s {
	case StatusAwaitingMonitoring:
		return "AWAITING_MONITORING"
	case StatusAwaitingInspector:
		return "AWAITING_INSPECTOR"
	case StatusCompleted:
		return "COMPLETED"
	default:
		return "UNKNOWN"
	}
}
