package sac

// Status is the workflow stage of a customer service ticket.
type Status int

const (
	StatusNew         Status = 1
	StatusInAttention Status = 2
	StatusResolved    Status = 3
)

// PriorityMedium is the default priority for new tickets.
const PriorityMedium = 3

// IsValid checks if the status is a known stage
func (s Status) IsValid() bool {
	return s >= StatusNew && s <= StatusResolved
}

// CanTransitionTo checks if a transition to the target stage is allowed
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusNew:
		return target == StatusInAttention
	case StatusInAttention:
		return target == StatusResolved
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are possible
func (s Status) IsTerminal() bool {
	return s == StatusResolved
}

// String returns the stage label
func (s Status) String() string {
	switch s {
	case StatusNew:
		return "NEW"
	case StatusInAttention:
		return "IN_ATTENTION"
	case StatusResolved:
		return "RESOLVED"
	default:
		return "UNKNOWN"
	}
}
