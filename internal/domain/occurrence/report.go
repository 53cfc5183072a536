package occurrence

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/transitops/backend/internal/domain/identity"
	"github.com/transitops/backend/internal/domain/shared"
)

// Report is a registered occurrence (R.O.) raised by the GPS control room
// and, for vehicle failures, handed to maintenance for a response.
type Report struct {
	shared.BaseEntity
	ReportNumber       string
	Car                string
	BusLine            string
	DriverRegistration string
	Motive             int
	SectorAffected     int
	Type               Type
	OccurrenceCode     int
	Location           string
	Detail             string
	VehicleKilometer   decimal.Decimal
	DateOccurrence     time.Time
	Response           string
	AssigneeUsername   string
	PreviousAssignee   string

	// Per-type fields. Only the ones selected by Type are validated.
	DelayMinutes      int
	TripsCancelled    int
	DeviationRealized string
	SubstituteCar     string

	Status Status
}

// NewReportParams carries everything needed to open a report, including the
// per-type fields so the type's ruleset can run at construction.
type NewReportParams struct {
	ReportNumber       string
	Car                string
	BusLine            string
	DriverRegistration string
	Motive             int
	SectorAffected     int
	Type               Type
	OccurrenceCode     int
	Location           string
	Detail             string
	VehicleKilometer   decimal.Decimal
	DateOccurrence     time.Time
	DelayMinutes       int
	TripsCancelled     int
	DeviationRealized  string
	SubstituteCar      string
}

// NewReport creates an open report and runs the ruleset for its type.
func NewReport(p NewReportParams) (*Report, error) {
	r := &Report{
		BaseEntity:         shared.NewBaseEntity(),
		ReportNumber:       p.ReportNumber,
		Car:                p.Car,
		BusLine:            p.BusLine,
		DriverRegistration: p.DriverRegistration,
		Motive:             p.Motive,
		SectorAffected:     p.SectorAffected,
		Type:               p.Type,
		OccurrenceCode:     p.OccurrenceCode,
		Location:           p.Location,
		Detail:             p.Detail,
		VehicleKilometer:   p.VehicleKilometer,
		DateOccurrence:     p.DateOccurrence,
		DelayMinutes:       p.DelayMinutes,
		TripsCancelled:     p.TripsCancelled,
		DeviationRealized:  p.DeviationRealized,
		SubstituteCar:      p.SubstituteCar,
		Status:             StatusOpen,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Close moves the report to the closed stage.
func (r *Report) Close() error {
	if !r.Status.CanTransitionTo(StatusClosed) {
		return shared.NewDomainError("INVALID_TRANSITION",
			"Report cannot be closed from stage "+r.Status.String())
	}
	if err := r.Validate(); err != nil {
		return err
	}
	r.Status = StatusClosed
	r.Touch()
	return nil
}

// Assign hands the report to another user. A report being worked by
// maintenance must carry a response before it can move on.
func (r *Report) Assign(username string, actingDepartment int) error {
	if r.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_TRANSITION", "Closed reports cannot be reassigned")
	}
	if strings.TrimSpace(username) == "" {
		return shared.ValidationErrors{{
			Field: "username", Rule: "required", Message: "username is required",
		}}
	}
	if actingDepartment == identity.DepartmentMaintenance && strings.TrimSpace(r.Response) == "" {
		return shared.ValidationErrors{{
			Field: "occurrence_response", Rule: "required",
			Message: "occurrence_response is required before maintenance hands the report back",
		}}
	}
	r.PreviousAssignee = r.AssigneeUsername
	r.AssigneeUsername = username
	r.Touch()
	return nil
}

// ChangeType reclassifies a non-occurrence report. Reports of any other
// type keep their classification.
func (r *Report) ChangeType(newType Type, occurrenceCode int) error {
	if r.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_TRANSITION", "Closed reports cannot be reclassified")
	}
	if r.Type != TypeNonOccurrence {
		return shared.NewDomainError("INVALID_TRANSITION",
			"Only non-occurrence reports can be reclassified")
	}
	if !newType.IsValid() || newType == TypeNonOccurrence {
		return shared.ValidationErrors{{
			Field: "occurrence_type", Rule: "invalid", Message: "occurrence_type is invalid",
		}}
	}
	r.Type = newType
	r.OccurrenceCode = occurrenceCode
	r.Touch()
	return nil
}

// CanDelete allows removal only while the report is open.
func (r *Report) CanDelete() bool {
	return r.Status == StatusOpen
}
