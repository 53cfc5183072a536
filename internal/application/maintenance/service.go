package maintenance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/transitops/backend/internal/domain/audit"
	"github.com/transitops/backend/internal/domain/identity"
	"github.com/transitops/backend/internal/domain/maintenance"
	"github.com/transitops/backend/internal/domain/shared"
)

const recordKind = "maintenance"

// Service orchestrates the maintenance workflow: authorization gate first,
// then stale-edit check, then validation and transition, then persistence
// and the audit trail.
type Service struct {
	repo      maintenance.Repository
	auditRepo audit.Repository
	logger    *zap.Logger
}

// NewService creates a maintenance service
func NewService(repo maintenance.Repository, auditRepo audit.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, auditRepo: auditRepo, logger: logger}
}

// CreateRequest carries the fields for a new maintenance record
type CreateRequest struct {
	Car             string    `json:"car"`
	BusLine         string    `json:"line_bus"`
	MaintenanceType int       `json:"maintenance_type"`
	Detail          int       `json:"detail"`
	Comments        string    `json:"comments"`
	DateMaintenance time.Time `json:"date_maintenance"`
}

// UpdateRequest carries editable fields plus the version the client loaded
type UpdateRequest struct {
	Car             string    `json:"car"`
	BusLine         string    `json:"line_bus"`
	MaintenanceType int       `json:"maintenance_type"`
	Detail          int       `json:"detail"`
	Comments        string    `json:"comments"`
	DateMaintenance time.Time `json:"date_maintenance"`
	Version         int       `json:"version"`
}

// Response is the API view of a maintenance record
type Response struct {
	ID              uuid.UUID `json:"id"`
	Car             string    `json:"car"`
	BusLine         string    `json:"line_bus"`
	MaintenanceType int       `json:"maintenance_type"`
	Detail          int       `json:"detail"`
	Comments        string    `json:"comments"`
	DateMaintenance time.Time `json:"date_maintenance"`
	ReportedBy      string    `json:"reported_by"`
	Approver        string    `json:"approver,omitempty"`
	Status          int       `json:"status"`
	StatusLabel     string    `json:"status_label"`
	Version         int       `json:"version"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToResponse converts a domain record to the API view
func ToResponse(r *maintenance.Record) Response {
	return Response{
		ID:              r.ID,
		Car:             r.Car,
		BusLine:         r.BusLine,
		MaintenanceType: r.MaintenanceType,
		Detail:          r.Detail,
		Comments:        r.Comments,
		DateMaintenance: r.DateMaintenance,
		ReportedBy:      r.ReportedBy,
		Approver:        r.Approver,
		Status:          int(r.Status),
		StatusLabel:     r.Status.String(),
		Version:         r.Version,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func (s *Service) gate(actor identity.Actor) error {
	if !actor.CanActOnDepartment(identity.DepartmentMaintenance) {
		return shared.NewDomainError("FORBIDDEN", "Actor does not belong to the maintenance department")
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

// Create registers a new maintenance record
func (s *Service) Create(ctx context.Context, actor identity.Actor, req CreateRequest) (*Response, error) {
	if err := s.gate(actor); err != nil {
		return nil, err
	}

	record, err := maintenance.NewRecord(req.Car, req.BusLine, req.MaintenanceType, req.Detail,
		req.Comments, req.DateMaintenance, actor.Registration)
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

// Update edits an open record
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
		return nil, shared.NewDomainError("INVALID_TRANSITION", "Approved records cannot be edited")
	}

	record.Car = req.Car
	record.BusLine = req.BusLine
	record.MaintenanceType = req.MaintenanceType
	record.Detail = req.Detail
	record.Comments = req.Comments
	record.DateMaintenance = req.DateMaintenance

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

// Approve moves a record to the approved stage. Requires elevated access in
// the maintenance department and a fresh version.
func (s *Service) Approve(ctx context.Context, actor identity.Actor, id uuid.UUID, version int) (*Response, error) {
	if err := s.gate(actor); err != nil {
		return nil, err
	}
	if !actor.HasElevatedAccess(identity.DepartmentMaintenance) {
		return nil, shared.NewDomainError("FORBIDDEN", "Approval requires elevated access in the maintenance department")
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := record.CheckVersion(version); err != nil {
		return nil, err
	}
	if err := record.Approve(actor.Registration); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	s.appendAudit(ctx, "approve", record.ID, actor)

	resp := ToResponse(record)
	return &resp, nil
}

// Delete removes a record still at the initial stage. Requires elevated
// access in the maintenance department, or being the reporting user.
func (s *Service) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if err := s.gate(actor); err != nil {
		return err
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.HasElevatedAccess(identity.DepartmentMaintenance) && record.ReportedBy != actor.Registration {
		return shared.NewDomainError("FORBIDDEN", "Deletion requires elevated access in the maintenance department")
	}
	if !record.CanDelete() {
		return shared.NewDomainError("INVALID_TRANSITION", "Only records awaiting maintenance can be deleted")
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
