package monitoring

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/transitops/backend/internal/domain/audit"
	"github.com/transitops/backend/internal/domain/identity"
	"github.com/transitops/backend/internal/domain/monitoring"
	"github.com/transitops/backend/internal/domain/shared"
)

const recordKind = "monitoring"

// Service orchestrates the monitoring workflow.
type Service struct {
	repo      monitoring.Repository
	auditRepo audit.Repository
	logger    *zap.Logger
}

// NewService creates a monitoring service
func NewService(repo monitoring.Repository, auditRepo audit.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, auditRepo: auditRepo, logger: logger}
}

// CreateRequest carries the fields for a new monitoring record
type CreateRequest struct {
	Car            string    `json:"car"`
	BusLine        string    `json:"line_bus"`
	OccurrenceType int       `json:"occurrence_type"`
	OccurrenceCode int       `json:"occurrence"`
	DateOccurrence time.Time `json:"date_occurrence"`
	DateCheck      time.Time `json:"date_check"`
	Comment        string    `json:"comment"`
}

// UpdateRequest carries the editable fields of an existing record
type UpdateRequest struct {
	Car            string    `json:"car"`
	BusLine        string    `json:"line_bus"`
	OccurrenceType int       `json:"occurrence_type"`
	OccurrenceCode int       `json:"occurrence"`
	DateOccurrence time.Time `json:"date_occurrence"`
	DateCheck      time.Time `json:"date_check"`
	Comment        string    `json:"comment"`
	Version        int       `json:"version"`
}

// InspectionRequest carries the inspector stage fields
type InspectionRequest struct {
	Treatment             string    `json:"treatment"`
	DateInspector         time.Time `json:"date_inspector"`
	InspectorRegistration string    `json:"inspector_registration"`
	Version               int       `json:"version"`
}

// Response is the API view of a monitoring record
type Response struct {
	ID                    uuid.UUID `json:"id"`
	Car                   string    `json:"car"`
	BusLine               string    `json:"line_bus"`
	OccurrenceType        int       `json:"occurrence_type"`
	OccurrenceCode        int       `json:"occurrence"`
	DateOccurrence        time.Time `json:"date_occurrence"`
	DateCheck             time.Time `json:"date_check"`
	Comment               string    `json:"comment,omitempty"`
	Treatment             string    `json:"treatment,omitempty"`
	DateInspector         time.Time `json:"date_inspector,omitempty"`
	InspectorRegistration string    `json:"inspector_registration,omitempty"`
	MonitorRegistration   string    `json:"monitor_registration"`
	Status                int       `json:"status"`
	StatusLabel           string    `json:"status_label"`
	Version               int       `json:"version"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// ToResponse converts a domain record to the API view
func ToResponse(r *monitoring.Record) Response {
	return Response{
		ID:                    r.ID,
		Car:                   r.Car,
		BusLine:               r.BusLine,
		OccurrenceType:        r.OccurrenceType,
		OccurrenceCode:        r.OccurrenceCode,
		DateOccurrence:        r.DateOccurrence,
		DateCheck:             r.DateCheck,
		Comment:               r.Comment,
		Treatment:             r.Treatment,
		DateInspector:         r.DateInspector,
		InspectorRegistration: r.InspectorRegistration,
		MonitorRegistration:   r.MonitorRegistration,
		Status:                int(r.Status),
		StatusLabel:           r.Status.String(),
		Version:               r.Version,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}
}

func (s *Service) gate(actor identity.Actor) error {
	if !actor.CanActOnDepartment(identity.DepartmentMonitoring) {
		return shared.NewDomainError("FORBIDDEN", "Actor does not belong to the monitoring department")
	}
	return nil
}

func (s *Service) gateElevated(actor identity.Actor) error {
	if err := s.gate(actor); err != nil {
		return err
	}
	if !actor.HasElevatedAccess(identity.DepartmentMonitoring) {
		return shared.NewDomainError("FORBIDDEN", "Operation requires elevated access in the monitoring department")
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

// Create registers a new monitoring record
func (s *Service) Create(ctx context.Context, actor identity.Actor, req CreateRequest) (*Response, error) {
	if err := s.gate(actor); err != nil {
		return nil, err
	}

	record, err := monitoring.NewRecord(req.Car, req.BusLine, req.OccurrenceType, req.OccurrenceCode,
		req.DateOccurrence, req.DateCheck, req.Comment, actor.Registration)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	s.appendAudit(ctx, "create", record.ID, actor)

	resp := ToResponse(record)
	return &resp, nil
}

// GetByID retrieves a record
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Response, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToResponse(record)
	return &resp, nil
}

// List retrieves records matching the filter
func (s *Service) List(ctx context.Context, filter shared.Filter) ([]Response, int64, error) {
	records, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]Response, len(records))
	for i := range records {
		responses[i] = ToResponse(&records[i])
	}
	return responses, total, nil
}

// Update edits a record that has not yet completed
func (s *Service) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateRequest) (*Response, error) {
	if err := s.gate(actor); err != nil {
		return nil, err
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := record.CheckVersion(req.Version); err != nil {
		return nil, err
	}
	if !record.CanModify() {
		return nil, shared.NewDomainError("INVALID_TRANSITION", "Completed records cannot be edited")
	}

	record.Car = req.Car
	record.BusLine = req.BusLine
	record.OccurrenceType = req.OccurrenceType
	record.OccurrenceCode = req.OccurrenceCode
	record.DateOccurrence = req.DateOccurrence
	record.DateCheck = req.DateCheck
	record.Comment = req.Comment

	if err := record.Validate(); err != nil {
		return nil, err
	}
	record.Touch()

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	s.appendAudit(ctx, "update", record.ID, actor)

	resp := ToResponse(record)
	return &resp, nil
}

// RecordInspection fills the inspector stage fields without advancing
func (s *Service) RecordInspection(ctx context.Context, actor identity.Actor, id uuid.UUID, req InspectionRequest) (*Response, error) {
	if err := s.gate(actor); err != nil {
		return nil, err
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := record.CheckVersion(req.Version); err != nil {
		return nil, err
	}
	if record.Status != monitoring.StatusAwaitingInspector {
		return nil, shared.NewDomainError("INVALID_TRANSITION",
			"Inspection data can only be recorded at the inspector stage")
	}

	record.Treatment = req.Treatment
	record.DateInspector = req.DateInspector
	record.InspectorRegistration = req.InspectorRegistration
	record.Touch()

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	s.appendAudit(ctx, "inspection", record.ID, actor)

	resp := ToResponse(record)
	return &resp, nil
}

// Approve advances a record one stage. A no-occurrence record completes
// directly from the monitoring stage.
func (s *Service) Approve(ctx context.Context, actor identity.Actor, id uuid.UUID, version int) (*Response, error) {
	if err := s.gateElevated(actor); err != nil {
		return nil, err
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := record.CheckVersion(version); err != nil {
		return nil, err
	}
	if err := record.Approve(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	s.appendAudit(ctx, "approve", record.ID, actor)

	resp := ToResponse(record)
	return &resp, nil
}

// Reprove sends a record exactly one stage back
func (s *Service) Reprove(ctx context.Context, actor identity.Actor, id uuid.UUID, version int) (*Response, error) {
	if err := s.gateElevated(actor); err != nil {
		return nil, err
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := record.CheckVersion(version); err != nil {
		return nil, err
	}
	if err := record.Reprove(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	s.appendAudit(ctx, "reprove", record.ID, actor)

	resp := ToResponse(record)
	return &resp, nil
}

// Delete removes a record still at the initial stage. Requires elevated
// access in the monitoring department, or being the monitor that opened it.
func (s *Service) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if err := s.gate(actor); err != nil {
		return err
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.HasElevatedAccess(identity.DepartmentMonitoring) && record.MonitorRegistration != actor.Registration {
		return shared.NewDomainError("FORBIDDEN", "Deletion requires elevated access in the monitoring department")
	}
	if !record.CanDelete() {
		return shared.NewDomainError("INVALID_TRANSITION", "Only records awaiting monitoring can be deleted")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.appendAudit(ctx, "delete", id, actor)
	return nil
}

// History returns the audit trail for a record
func (s *Service) History(ctx context.Context, id uuid.UUID) ([]audit.Entry, error) {
	return s.auditRepo.FindByRecord(ctx, recordKind, id)
}
