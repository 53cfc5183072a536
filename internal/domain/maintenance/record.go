package maintenance

import (
	"time"

	"github.com/transitops/backend/internal/domain/shared"
)

// Record is a vehicle maintenance occurrence awaiting department approval.
type Record struct {
	shared.BaseEntity
	Car             string
	BusLine         string
	MaintenanceType int
	Detail          int
	Comments        string
	DateMaintenance time.Time
	ReportedBy      string
	Approver        string
	Status          Status
}

// NewRecord creates a maintenance record at the initial stage.
func NewRecord(car, busLine string, maintenanceType, detail int, comments string, dateMaintenance time.Time, reportedBy string) (*Record, error) {
	r := &Record{
		BaseEntity:      shared.NewBaseEntity(),
		Car:             car,
		BusLine:         busLine,
		MaintenanceType: maintenanceType,
		Detail:          detail,
		Comments:        comments,
		DateMaintenance: dateMaintenance,
		ReportedBy:      reportedBy,
		Status:          StatusAwaitingMaintenance,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate runs the full ruleset and reports every failing field.
func (r *Record) Validate() error {
	var c shared.Collector
	c.RequireNotBlank(r.Car, "car")
	c.RequireNotBlank(r.BusLine, "line_bus")
	c.Require(r.MaintenanceType > 0, "maintenance_type", "required", "maintenance_type is required")
	c.Require(r.Detail > 0, "detail", "required", "detail is required")
	c.RequireMinLen(r.Comments, "comments", 5)
	c.Require(!r.DateMaintenance.IsZero(), "date_maintenance", "required", "date_maintenance is required")
	c.RequireNotBlank(r.ReportedBy, "reported_by")
	return c.Err()
}

// Approve moves the record to the approved stage recording the approver.
func (r *Record) Approve(approverRegistration string) error {
	if !r.Status.CanTransitionTo(StatusApproved) {
		return shared.NewDomainError("INVALID_TRANSITION",
			"Maintenance record cannot be approved from stage "+r.Status.String())
	}
	r.Status = StatusApproved
	r.Approver = approverRegistration
	r.Touch()
	return nil
}

// CanDelete allows removal only while the record sits at the initial stage.
func (r *Record) CanDelete() bool {
	return r.Status == StatusAwaitingMaintenance
}

// CanModify blocks edits once the record is approved.
func (r *Record) CanModify() bool {
	return !r.Status.IsTerminal()
}
