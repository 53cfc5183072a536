package maintenance

// Status is the workflow stage of a maintenance record.
type Status int

const (
	StatusAwaitingMaintenance Status = 1
	StatusApproved            Status = 4
)

// IsValid checks if the status is a known stage
func (s Status) IsValid() bool {
	switch s {
	case StatusAwaitingMaintenance, StatusApproved:
		return true
	}
	return false
}

// CanTransitionTo checks if a transition to the target stage is allowed
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusAwaitingMaintenance:
		return target == StatusApproved
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are possible
func (s Status) IsTerminal() bool {
	return s == StatusApproved
}

// String returns the stage label
func (s Status) String() string {
	switch s {
	case StatusAwaitingMaintenance:
		return "AWAITING_MAINTENANCE"
	case StatusApproved:
		return "APPROVED"
	default:
		return "UNKNOWN"
	}
}
