package camerareview

// Status is the workflow stage of a camera review record.
type Status int

const (
	StatusAwaitingMonitoring   Status = 1
	StatusAwaitingCameraReview Status = 2
	StatusAwaitingCutVideo     Status = 3
	StatusFinished             Status = 4
)

// IsValid checks if the status is a known stage
func (s Status) IsValid() bool {
	return s >= StatusAwaitingMonitoring && s <= StatusFinished
}

// CanTransitionTo checks if a transition to the target stage is allowed
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusAwaitingMonitoring:
		return target == StatusAwaitingCameraReview
	case StatusAwaitingCameraReview:
		return target == StatusAwaitingCutVideo || target == StatusFinished ||
			target == StatusAwaitingMonitoring
	case StatusAwaitingCutVideo:
		return target == StatusFinished || target == StatusAwaitingCameraReview
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
	return s == StatusFinished
}

// String returns the stage label
func (s Status) String() string {
	switch s {
	case StatusAwaitingMonitoring:
		return "AWAITING_MONITORING"
	case StatusAwaitingCameraReview:
		return "AWAITING_CAMERA_REVIEW"
	case StatusAwaitingCutVideo:
		return "AWAITING_CUT_VIDEO"
	case StatusFinished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}
