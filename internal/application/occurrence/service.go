package occurrence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/transitops/backend/internal/domain/audit"
	"github.com/transitops/backend/internal/domain/identity"
	"github.com/transitops/backend/internal/domain/occurrence"
	"github.com/transitops/backend/internal/domain/shared"
)

const recordKind = "occurrence"

// Service orchestrates the occurrence report (R.O.) workflow. Reports are
// owned by the GPS control room; maintenance participates through assignment
// when a vehicle failure needs a shop response.
type Service struct {
	repo      occurrence.Repository
	auditRepo audit.Repository
	logger    *zap.Logger
}

// NewService creates an occurrence report service
func NewService(repo occurrence.Repository, auditRepo audit.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, auditRepo: auditRepo, logger: logger}
}

// CreateRequest carries the fields for a new report
type CreateRequest struct {
	ReportNumber       string          `json:"report_number"`
	Car                string          `json:"car"`
	BusLine            string          `json:"line_bus"`
	DriverRegistration string          `json:"driver_registration"`
	Motive             int             `json:"motive"`
	SectorAffected     int             `json:"sector_affected"`
	Type               int             `json:"occurrence_type"`
	OccurrenceCode     int             `json:"occurrence"`
	Location           string          `json:"location"`
	Detail             string          `json:"occurrence_detail"`
	VehicleKilometer   decimal.Decimal `json:"vehicle_kilometer"`
	DateOccurrence     time.Time       `json:"date_occurrence"`
	DelayMinutes       int             `json:"delay_minutes,omitempty"`
	TripsCancelled     int             `json:"trips_cancelled,omitempty"`
	DeviationRealized  string          `json:"deviation_realized,omitempty"`
	SubstituteCar      string          `json:"substitute_car,omitempty"`
}

// UpdateRequest carries editable fields plus the version the client loaded
type UpdateRequest struct {
	Car                string          `json:"car"`
	BusLine            string          `json:"line_bus"`
	DriverRegistration string          `json:"driver_registration"`
	Motive             int             `json:"motive"`
	SectorAffected     int             `json:"sector_affected"`
	OccurrenceCode     int             `json:"occurrence"`
	Location           string          `json:"location"`
	Detail             string          `json:"occurrence_detail"`
	VehicleKilometer   decimal.Decimal `json:"vehicle_kilometer"`
	DateOccurrence     time.Time       `json:"date_occurrence"`
	Response           string          `json:"occurrence_response"`
	DelayMinutes       int             `json:"delay_minutes,omitempty"`
	TripsCancelled     int             `json:"trips_cancelled,omitempty"`
	DeviationRealized  string          `json:"deviation_realized,omitempty"`
	SubstituteCar      string          `json:"substitute_car,omitempty"`
	Version            int             `json:"version"`
}

// AssignRequest hands a report to another user. ActingDepartment is the
// department the actor is working the report for.
type AssignRequest struct {
	Username         string `json:"username"`
	ActingDepartment int    `json:"acting_department"`
	Version          int    `json:"version"`
}

// ChangeTypeRequest reclassifies a non-occurrence report
type ChangeTypeRequest struct {
	Type           int `json:"occurrence_type"`
	OccurrenceCode int `json:"occurrence"`
	Version        int `json:"version"`
}

// Response is the API view of an occurrence report
type Response struct {
	ID                 uuid.UUID       `json:"id"`
	ReportNumber       string          `json:"report_number"`
	Car                string          `json:"car"`
	BusLine            string          `json:"line_bus"`
	DriverRegistration string          `json:"driver_registration"`
	Motive             int             `json:"motive"`
	SectorAffected     int             `json:"sector_affected"`
	Type               int             `json:"occurrence_type"`
	TypeLabel          string          `json:"occurrence_type_label"`
	OccurrenceCode     int             `json:"occurrence"`
	Location           string          `json:"location"`
	Detail             string          `json:"occurrence_detail"`
	VehicleKilometer   decimal.Decimal `json:"vehicle_kilometer"`
	DateOccurrence     time.Time       `json:"date_occurrence"`
	Response           string          `json:"occurrence_response,omitempty"`
	AssigneeUsername   string          `json:"username,omitempty"`
	PreviousAssignee   string          `json:"previous_username,omitempty"`
	DelayMinutes       int             `json:"delay_minutes,omitempty"`
	TripsCancelled     int             `json:"trips_cancelled,omitempty"`
	DeviationRealized  string          `json:"deviation_realized,omitempty"`
	SubstituteCar      string          `json:"substitute_car,omitempty"`
	Status             int             `json:"status"`
	StatusLabel        string          `json:"status_label"`
	Version            int             `json:"version"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ToResponse converts a domain report to the API view
func ToResponse(r *occurrence.Report) Response {
	return Response{
		ID:                 r.ID,
		ReportNumber:       r.ReportNumber,
		Car:                r.Car,
		BusLine:            r.BusLine,
		DriverRegistration: r.DriverRegistration,
		Motive:             r.Motive,
		SectorAffected:     r.SectorAffected,
		Type:               int(r.Type),
		TypeLabel:          r.Type.String(),
		OccurrenceCode:     r.OccurrenceCode,
		Location:           r.Location,
		Detail:             r.Detail,
		VehicleKilometer:   r.VehicleKilometer,
		DateOccurrence:     r.DateOccurrence,
		Response:           r.Response,
		AssigneeUsername:   r.AssigneeUsername,
		PreviousAssignee:   r.PreviousAssignee,
		DelayMinutes:       r.DelayMinutes,
		TripsCancelled:     r.TripsCancelled,
		DeviationRealized:  r.DeviationRealized,
		SubstituteCar:      r.SubstituteCar,
		Status:             int(r.Status),
		StatusLabel:        r.Status.String(),
		Version:            r.Version,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func (s *Service) gate(actor identity.Actor) error {
	if !actor.CanActOnDepartment(identity.DepartmentGPS) {
		return shared.NewDomainError("FORBIDDEN", "Actor does not belong to the GPS control room")
	}
	return nil
}

func (s *Service) gateElevated(actor identity.Actor) error {
	if err := s.gate(actor); err != nil {
		return err
	}
	if !actor.HasElevatedAccess(identity.DepartmentGPS) {
		return shared.NewDomainError("FORBIDDEN", "Operation requires elevated access in the GPS control room")
	}
	return nil
}

func (s *Service) appendAudit(ctx context.Context, action string, recordID uuid.UUID, actor identity.Actor) {
	entry := audit.NewEntry(action, recordKind, recordID, actor.ID, actor.Name)
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		s.logger.Warn("audit append failed",
			zap.String("action", action),
			zap.String("record_id", recordID.String()),
			zap.Error(err))
	}
}

// Create registers a new open report
func (s *Service) Create(ctx context.Context, actor identity.Actor, req CreateRequest) (*Response, error) {
	if err := s.gate(actor); err != nil {
		return nil, err
	}

	report, err := occurrence.NewReport(occurrence.NewReportParams{
		ReportNumber:       req.ReportNumber,
		Car:                req.Car,
		BusLine:            req.BusLine,
		DriverRegistration: req.DriverRegistration,
		Motive:             req.Motive,
		SectorAffected:     req.SectorAffected,
		Type:               occurrence.Type(req.Type),
		OccurrenceCode:     req.OccurrenceCode,
		Location:           req.Location,
		Detail:             req.Detail,
		VehicleKilometer:   req.VehicleKilometer,
		DateOccurrence:     req.DateOccurrence,
		DelayMinutes:       req.DelayMinutes,
		TripsCancelled:     req.TripsCancelled,
		DeviationRealized:  req.DeviationRealized,
		SubstituteCar:      req.SubstituteCar,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, report); err != nil {
		return nil, err
	}
	s.appendAudit(ctx, "create", report.ID, actor)

	resp := ToResponse(report)
	return &resp, nil
}

// GetByID retrieves a report
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Response, error) {
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToResponse(report)
	return &resp, nil
}

// List retrieves reports matching the filter
func (s *Service) List(ctx context.Context, filter shared.Filter) ([]Response, int64, error) {
	reports, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]Response, len(reports))
	for i := range reports {
		responses[i] = ToResponse(&reports[i])
	}
	return responses, total, nil
}

// Update edits an open report under its type's ruleset
func (s *Service) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateRequest) (*Response, error) {
	if err := s.gate(actor); err != nil {
		return nil, err
	}

	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := report.CheckVersion(req.Version); err != nil {
		return nil, err
	}
	if report.Status.IsTerminal() {
		return nil, shared.NewDomainError("INVALID_TRANSITION", "Closed reports cannot be edited")
	}

	report.Car = req.Car
	report.BusLine = req.BusLine
	report.DriverRegistration = req.DriverRegistration
	report.Motive = req.Motive
	report.SectorAffected = req.SectorAffected
	report.OccurrenceCode = req.OccurrenceCode
	report.Location = req.Location
	report.Detail = req.Detail
	report.VehicleKilometer = req.VehicleKilometer
	report.DateOccurrence = req.DateOccurrence
	report.Response = req.Response
	report.DelayMinutes = req.DelayMinutes
	report.TripsCancelled = req.TripsCancelled
	report.DeviationRealized = req.DeviationRealized
	report.SubstituteCar = req.SubstituteCar

	if err := report.Validate(); err != nil {
		return nil, err
	}
	report.Touch()

	if err := s.repo.Save(ctx, report); err != nil {
		return nil, err
	}
	s.appendAudit(ctx, "update", report.ID, actor)

	resp := ToResponse(report)
	return &resp, nil
}

// Close resolves a report. Requires elevated access in the GPS control room.
func (s *Service) Close(ctx context.Context, actor identity.Actor, id uuid.UUID, version int) (*Response, error) {
	if err := s.gateElevated(actor); err != nil {
		return nil, err
	}

	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := report.CheckVersion(version); err != nil {
		return nil, err
	}
	if err := report.Close(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, report); err != nil {
		return nil, err
	}
	s.appendAudit(ctx, "close", report.ID, actor)

	resp := ToResponse(report)
	return &resp, nil
}

// Assign hands a report to another user. Maintenance hands a failure report
// back only after recording its response; the actor must belong to the
// department it claims to act for.
func (s *Service) Assign(ctx context.Context, actor identity.Actor, id uuid.UUID, req AssignRequest) (*Response, error) {
	if !actor.CanActOnDepartment(req.ActingDepartment) {
		return nil, shared.NewDomainError("FORBIDDEN", "Actor does not belong to the acting department")
	}
	if req.ActingDepartment != identity.DepartmentGPS && req.ActingDepartment != identity.DepartmentMaintenance {
		return nil, shared.NewDomainError("FORBIDDEN", "Reports move only between the GPS control room and maintenance")
	}

	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := report.CheckVersion(req.Version); err != nil {
		return nil, err
	}
	if err := report.Assign(req.Username, req.ActingDepartment); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, report); err != nil {
		return nil, err
	}
	s.appendAudit(ctx, "assign", report.ID, actor)

	resp := ToResponse(report)
	return &resp, nil
}

// ChangeType reclassifies a non-occurrence report
func (s *Service) ChangeType(ctx context.Context, actor identity.Actor, id uuid.UUID, req ChangeTypeRequest) (*Response, error) {
	if err := s.gate(actor); err != nil {
		return nil, err
	}

	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := report.CheckVersion(req.Version); err != nil {
		return nil, err
	}
	if err := report.ChangeType(occurrence.Type(req.Type), req.OccurrenceCode); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, report); err != nil {
		return nil, err
	}
	s.appendAudit(ctx, "change_type", report.ID, actor)

	resp := ToResponse(report)
	return &resp, nil
}

// Delete removes an open report. Requires elevated access in the GPS control
// room; reports carry the driver's registration, not the creator's.
func (s *Service) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if err := s.gateElevated(actor); err != nil {
		return err
	}

	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !report.CanDelete() {
		return shared.NewDomainError("INVALID_TRANSITION", "Only open reports can be deleted")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.appendAudit(ctx, "delete", id, actor)
	return nil
}

// History returns the audit trail for a report
func (s *Service) History(ctx context.Context, id uuid.UUID) ([]audit.Entry, error) {
	return s.auditRepo.FindByRecord(ctx, recordKind, id)
}
