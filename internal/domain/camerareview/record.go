package camerareview

import (
	"time"

	"github.com/transitops/backend/internal/domain/shared"
)

// Record is a camera footage review request. Whether the cut-video stage is
// entered depends on the occurrence catalog entry, carried here as
// RequiresCutVideo so the record stays self-contained after creation.
type Record struct {
	shared.BaseEntity
	Car              string
	BusLine          string
	OccurrenceCode   int
	RequiresCutVideo bool
	Comment          string
	DateOccurrence   time.Time
	DateCamera       time.Time
	DateReview       time.Time
	ReviewedBy       string
	ThereVideo       bool
	VideoPath        string
	RequestedBy      string
	Status           Status
}

// NewRecord creates a camera review record at the initial stage.
func NewRecord(car, busLine string, occurrenceCode int, requiresCutVideo bool, comment string, dateOccurrence, dateCamera time.Time, requestedBy string) (*Record, error) {
	r := &Record{
		BaseEntity:       shared.NewBaseEntity(),
		Car:              car,
		BusLine:          busLine,
		OccurrenceCode:   occurrenceCode,
		RequiresCutVideo: requiresCutVideo,
		Comment:          comment,
		DateOccurrence:   dateOccurrence,
		DateCamera:       dateCamera,
		RequestedBy:      requestedBy,
		Status:           StatusAwaitingMonitoring,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate runs the stage-independent ruleset, collecting every failure.
func (r *Record) Validate() error {
	var c shared.Collector
	c.RequireNotBlank(r.Car, "car")
	c.RequireNotBlank(r.BusLine, "line_bus")
	c.Require(r.OccurrenceCode > 0, "occurrence", "required", "occurrence is required")
	c.RequireMinLen(r.Comment, "comment", 10)
	c.Require(!r.DateOccurrence.IsZero(), "date_occurrence", "required", "date_occurrence is required")
	c.Require(!r.DateCamera.IsZero(), "date_camera", "required", "date_camera is required")
	if !r.DateOccurrence.IsZero() && !r.DateCamera.IsZero() {
		c.Require(!r.DateOccurrence.After(r.DateCamera), "date_occurrence", "interval",
			"date_occurrence must not be after date_camera")
	}
	c.RequireNotBlank(r.RequestedBy, "requested_by")
	return c.Err()
}

// validateReview covers the fields the review stage must fill before the
// record can leave it.
func (r *Record) validateReview() error {
	var c shared.Collector
	c.Require(!r.DateReview.IsZero(), "date_review", "required", "date_review is required")
	c.RequireNotBlank(r.ReviewedBy, "reviewed_by")
	if r.ThereVideo {
		c.RequireNotBlank(r.VideoPath, "video_path")
	}
	return c.Err()
}

// Approve advances the record one stage. Records whose occurrence does not
// call for a cut video skip straight from review to finished.
func (r *Record) Approve() error {
	switch r.Status {
	case StatusAwaitingMonitoring:
		if err := r.Validate(); err != nil {
			return err
		}
		r.Status = StatusAwaitingCameraReview
	case StatusAwaitingCameraReview:
		if err := r.validateReview(); err != nil {
			return err
		}
		if r.RequiresCutVideo {
			r.Status = StatusAwaitingCutVideo
		} else {
			r.Status = StatusFinished
		}
	case StatusAwaitingCutVideo:
		r.Status = StatusFinished
	default:
		return shared.NewDomainError("INVALID_TRANSITION",
			"Camera review cannot be approved from stage "+r.Status.String())
	}
	r.Touch()
	return nil
}

// Reprove sends the record exactly one stage back.
func (r *Record) Reprove() error {
	if r.Status != StatusAwaitingCameraReview && r.Status != StatusAwaitingCutVideo {
		return shared.NewDomainError("INVALID_TRANSITION",
			"Camera review cannot be reproved from stage "+r.Status.String())
	}
	r.Status = r.Status.Previous()
	r.Touch()
	return nil
}

// CanDelete allows removal only before the review stage is reached.
func (r *Record) CanDelete() bool {
	return r.Status < StatusAwaitingCameraReview
}

// CanModify allows edits until the record finishes.
func (r *Record) CanModify() bool {
	return r.Status != StatusFinished
}
