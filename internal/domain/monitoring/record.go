package monitoring

import (
	"time"

	"github.com/transitops/backend/internal/domain/shared"
)

// Record is a fleet monitoring occurrence moving from the monitoring team
// to the field inspector and on to completion.
type Record struct {
	shared.BaseEntity
	Car                   string
	BusLine               string
	OccurrenceType        int
	OccurrenceCode        int
	DateOccurrence        time.Time
	DateCheck             time.Time
	Comment               string
	Treatment             string
	DateInspector         time.Time
	InspectorRegistration string
	MonitorRegistration   string
	Status                Status
}

// NewRecord creates a monitoring record at the initial stage.
func NewRecord(car, busLine string, occurrenceType, occurrenceCode int, dateOccurrence, dateCheck time.Time, comment, monitorRegistration string) (*Record, error) {
	r := &Record{
		BaseEntity:          shared.NewBaseEntity(),
		Car:                 car,
		BusLine:             busLine,
		OccurrenceType:      occurrenceType,
		OccurrenceCode:      occurrenceCode,
		DateOccurrence:      dateOccurrence,
		DateCheck:           dateCheck,
		Comment:             comment,
		MonitorRegistration: monitorRegistration,
		Status:              StatusAwaitingMonitoring,
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
	c.Require(r.OccurrenceType > 0, "occurrence_type", "required", "occurrence_type is required")
	c.Require(r.OccurrenceCode > 0, "occurrence", "required", "occurrence is required")
	c.Require(!r.DateOccurrence.IsZero(), "date_occurrence", "required", "date_occurrence is required")
	c.Require(!r.DateCheck.IsZero(), "date_check", "required", "date_check is required")
	if !r.DateOccurrence.IsZero() && !r.DateCheck.IsZero() {
		c.Require(!r.DateOccurrence.After(r.DateCheck), "date_occurrence", "interval",
			"date_occurrence must not be after date_check")
	}
	c.RequireNotBlank(r.MonitorRegistration, "monitor_registration")
	return c.Err()
}

// validateInspection covers the fields the inspector stage must fill
// before the record can complete.
func (r *Record) validateInspection() error {
	var c shared.Collector
	c.RequireMinLen(r.Treatment, "treatment", 10)
	c.Require(!r.DateInspector.IsZero(), "date_inspector", "required", "date_inspector is required")
	c.RequireNotBlank(r.InspectorRegistration, "inspector_registration")
	return c.Err()
}

// Approve advances the record one stage. A no-occurrence record completes
// directly from the monitoring stage.
func (r *Record) Approve() error {
	switch r.Status {
	case StatusAwaitingMonitoring:
		if err := r.Validate(); err != nil {
			return err
		}
		if r.OccurrenceCode == NoOccurrenceCode {
			r.Status = StatusCompleted
		} else {
			r.Status = StatusAwaitingInspector
		}
	case StatusAwaitingInspector:
		if err := r.validateInspection(); err != nil {
			return err
		}
		r.Status = StatusCompleted
	default:
		return shared.NewDomainError("INVALID_TRANSITION",
			"Monitoring record cannot be approved from stage "+r.Status.String())
	}
	r.Touch()
	return nil
}

// Reprove sends the record exactly one stage back.
func (r *Record) Reprove() error {
	if r.Status != StatusAwaitingInspector {
		return shared.NewDomainError("INVALID_TRANSITION",
			"Monitoring record cannot be reproved from stage "+r.Status.String())
	}
	r.Status = r.Status.Previous()
	r.Touch()
	return nil
}

// CanDelete allows removal only at the initial stage.
func (r *Record) CanDelete() bool {
	return r.Status == StatusAwaitingMonitoring
}

// CanModify allows edits until the record completes.
func (r *Record) CanModify() bool {
	return r.Status != StatusCompleted
}
