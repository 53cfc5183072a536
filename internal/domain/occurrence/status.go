package occurrence

// Status is the workflow stage of an occurrence report.
type Status int

const (
	StatusOpen   Status = 1
	StatusClosed Status = 2
)

// IsValid checks if the status is a known stage
func (s Status) IsValid() bool {
	return s == StatusOpen || s == StatusClosed
}

// CanTransitionTo checks if a transition to the target stage is allowed
func (s Status) CanTransitionTo(target Status) bool {
	return s == StatusOpen && target == StatusClosed
}

// IsTerminal reports whether no further transitions are possible
func (s Status) IsTerminal() bool {
	return s == StatusClosed
}

// String returns the stage label
func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "OPEN"
	case StatusClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// Type discriminates occurrence reports; each type selects its own ruleset.
type Type int

const (
	TypeDelay           Type = 1
	TypeCancellation    Type = 2
	TypeDeviation       Type = 3
	TypeFailure         Type = 4
	TypeNonOccurrence   Type = 5
	TypeDeviationByLine Type = 6
)

// IsValid checks if the type is known
func (t Type) IsValid() bool {
	return t >= TypeDelay && t <= TypeDeviationByLine
}

// String returns the type label
func (t Type) String() string {
	switch t {
	case TypeDelay:
		return "DELAY"
	case TypeCancellation:
		return "CANCELLATION"
	case TypeDeviation:
		return "DEVIATION"
	case TypeFailure:
		return "FAILURE"
	case TypeNonOccurrence:
		return "NON_OCCURRENCE"
	case TypeDeviationByLine:
		return "DEVIATION_BY_LINE"
	default:
		return "UNKNOWN"
	}
}
