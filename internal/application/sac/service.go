package sac

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/transitops/backend/internal/domain/audit"
	"github.com/transitops/backend/internal/domain/identity"
	"github.com/transitops/backend/internal/domain/sac"
	"github.com/transitops/backend/internal/domain/shared"
)

const recordKind = "sac"

// Service orchestrates the customer service ticket workflow.
type Service struct {
	repo      sac.Repository
	auditRepo audit.Repository
	logger    *zap.Logger
}

// NewService creates a SAC service
func NewService(repo sac.Repository, auditRepo audit.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, auditRepo: auditRepo, logger: logger}
}

// CreateRequest carries the intake fields for a new ticket
type CreateRequest struct {
	Protocol       string `json:"protocol"`
	RequesterName  string `json:"name"`
	Phone          string `json:"phone"`
	RG             string `json:"rg"`
	Gender         int    `json:"sac_gender"`
	SourceChannel  int    `json:"sac_source_channel"`
	OccurrenceType int    `json:"sac_occurrence_type"`
	DepartmentID   int    `json:"sac_department"`
}

// UpdateRequest carries the attendance fields plus the version the client loaded
type UpdateRequest struct {
	RequesterName  string `json:"name"`
	Phone          string `json:"phone"`
	RG             string `json:"rg"`
	Gender         int    `json:"sac_gender"`
	SourceChannel  int    `json:"sac_source_channel"`
	OccurrenceType int    `json:"sac_occurrence_type"`
	Group          int    `json:"sac_group"`
	Priority       int    `json:"sac_priority"`
	Proceeding     string `json:"proceeding"`
	Car            string `json:"car"`
	BusLine        string `json:"line_bus"`
	DepartmentID   int    `json:"sac_department"`
	Version        int    `json:"version"`
}

// AssignRequest names the user who will work the ticket
type AssignRequest struct {
	AssigneeID   int    `json:"sac_user"`
	AssigneeName string `json:"sac_user_name"`
	Version      int    `json:"version"`
}

// TreatmentRequest carries one attendance note
type TreatmentRequest struct {
	Text    string `json:"text"`
	Version int    `json:"version"`
}

// TreatmentResponse is the API view of an attendance note
type TreatmentResponse struct {
	ID             uuid.UUID `json:"id"`
	DepartmentID   int       `json:"department_id"`
	DepartmentName string    `json:"department_name"`
	UserID         int       `json:"user_id"`
	UserName       string    `json:"user_name"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
}

// Response is the API view of a ticket
type Response struct {
	ID             uuid.UUID           `json:"id"`
	Protocol       string              `json:"protocol"`
	RequesterName  string              `json:"name"`
	Phone          string              `json:"phone"`
	RG             string              `json:"rg,omitempty"`
	Gender         int                 `json:"sac_gender"`
	SourceChannel  int                 `json:"sac_source_channel"`
	OccurrenceType int                 `json:"sac_occurrence_type"`
	Group          int                 `json:"sac_group,omitempty"`
	Priority       int                 `json:"sac_priority"`
	Proceeding     string              `json:"proceeding,omitempty"`
	Car            string              `json:"car,omitempty"`
	BusLine        string              `json:"line_bus,omitempty"`
	DepartmentID   int                 `json:"sac_department"`
	AssigneeID     int                 `json:"sac_user,omitempty"`
	AssigneeName   string              `json:"sac_user_name,omitempty"`
	Status         int                 `json:"status"`
	StatusLabel    string              `json:"status_label"`
	Treatments     []TreatmentResponse `json:"treatments"`
	Version        int                 `json:"version"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// ToResponse converts a domain ticket to the API view
func ToResponse(t *sac.Ticket) Response {
	treatments := make([]TreatmentResponse, len(t.Treatments))
	for i, tr := range t.Treatments {
		treatments[i] = TreatmentResponse{
			ID:             tr.ID,
			DepartmentID:   tr.DepartmentID,
			DepartmentName: tr.DepartmentName,
			UserID:         tr.UserID,
			UserName:       tr.UserName,
			Text:           tr.Text,
			CreatedAt:      tr.CreatedAt,
		}
	}
	return Response{
		ID:             t.ID,
		Protocol:       t.Protocol,
		RequesterName:  t.RequesterName,
		Phone:          t.Phone,
		RG:             t.RG,
		Gender:         t.Gender,
		SourceChannel:  t.SourceChannel,
		OccurrenceType: t.OccurrenceType,
		Group:          t.Group,
		Priority:       t.Priority,
		Proceeding:     t.Proceeding,
		Car:            t.Car,
		BusLine:        t.BusLine,
		DepartmentID:   t.DepartmentID,
		AssigneeID:     t.AssigneeID,
		AssigneeName:   t.AssigneeName,
		Status:         int(t.Status),
		StatusLabel:    t.Status.String(),
		Treatments:     treatments,
		Version:        t.Version,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func (s *Service) gate(actor identity.Actor) error {
	if !actor.CanActOnDepartment(identity.DepartmentCustomerService) {
		return shared.NewDomainError("FORBIDDEN", "Actor does not belong to the customer service department")
	}
	return nil
}

func (s *Service) gateElevated(actor identity.Actor) error {
	if err := s.gate(actor); err != nil {
		return err
	}
	if !actor.HasElevatedAccess(identity.DepartmentCustomerService) {
		return shared.NewDomainError("FORBIDDEN", "Operation requires elevated access in the customer service department")
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

// Create registers a new ticket at intake
func (s *Service) Create(ctx context.Context, actor identity.Actor, req CreateRequest) (*Response, error) {
	if err := s.gate(actor); err != nil {
		return nil, err
	}

	ticket, err := sac.NewTicket(req.Protocol, req.RequesterName, req.Phone, req.RG,
		req.Gender, req.SourceChannel, req.OccurrenceType, req.DepartmentID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, ticket); err != nil {
		return nil, err
	}
	s.appendAudit(ctx, "create", ticket.ID, actor)

	resp := ToResponse(ticket)
	return &resp, nil
}

// GetByID retrieves a ticket with its treatments
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Response, error) {
	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToResponse(ticket)
	return &resp, nil
}

// List retrieves tickets matching the filter
func (s *Service) List(ctx context.Context, filter shared.Filter) ([]Response, int64, error) {
	tickets, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]Response, len(tickets))
	for i := range tickets {
		responses[i] = ToResponse(&tickets[i])
	}
	return responses, total, nil
}

// Update edits a ticket under the attendance ruleset
func (s *Service) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateRequest) (*Response, error) {
	if err := s.gate(actor); err != nil {
		return nil, err
	}

	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ticket.CheckVersion(req.Version); err != nil {
		return nil, err
	}
	if ticket.Status == sac.StatusResolved {
		return nil, shared.NewDomainError("INVALID_TRANSITION", "Resolved tickets cannot be edited")
	}

	ticket.RequesterName = req.RequesterName
	ticket.Phone = req.Phone
	ticket.RG = req.RG
	ticket.Gender = req.Gender
	ticket.SourceChannel = req.SourceChannel
	ticket.OccurrenceType = req.OccurrenceType
	ticket.Group = req.Group
	ticket.Priority = req.Priority
	ticket.Proceeding = req.Proceeding
	ticket.Car = req.Car
	ticket.BusLine = req.BusLine
	ticket.DepartmentID = req.DepartmentID

	if err := ticket.ValidateUpdate(); err != nil {
		return nil, err
	}
	ticket.Touch()

	if err := s.repo.Save(ctx, ticket); err != nil {
		return nil, err
	}
	s.appendAudit(ctx, "update", ticket.ID, actor)

	resp := ToResponse(ticket)
	return &resp, nil
}

// Assign puts a ticket in attention under the chosen user. Requires elevated
// access in the customer service department.
func (s *Service) Assign(ctx context.Context, actor identity.Actor, id uuid.UUID, req AssignRequest) (*Response, error) {
	if err := s.gateElevated(actor); err != nil {
		return nil, err
	}

	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ticket.CheckVersion(req.Version); err != nil {
		return nil, err
	}
	if err := ticket.Assign(req.AssigneeID, req.AssigneeName); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, ticket); err != nil {
		return nil, err
	}
	s.appendAudit(ctx, "assign", ticket.ID, actor)

	resp := ToResponse(ticket)
	return &resp, nil
}

// AddTreatment appends an attendance note under the acting user
func (s *Service) AddTreatment(ctx context.Context, actor identity.Actor, id uuid.UUID, req TreatmentRequest) (*Response, error) {
	if err := s.gate(actor); err != nil {
		return nil, err
	}

	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ticket.CheckVersion(req.Version); err != nil {
		return nil, err
	}
	if ticket.Status != sac.StatusInAttention {
		return nil, shared.NewDomainError("INVALID_TRANSITION", "Treatments can only be added to a ticket in attention")
	}

	ticket.AddTreatment(identity.DepartmentCustomerService, "Customer Service", actor.ID, actor.Name, req.Text)

	if err := s.repo.Save(ctx, ticket); err != nil {
		return nil, err
	}
	s.appendAudit(ctx, "treatment", ticket.ID, actor)

	resp := ToResponse(ticket)
	return &resp, nil
}

// EndCall resolves a ticket. Only the assigned user can resolve, and every
// treatment must carry text.
func (s *Service) EndCall(ctx context.Context, actor identity.Actor, id uuid.UUID, version int) (*Response, error) {
	if err := s.gate(actor); err != nil {
		return nil, err
	}

	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ticket.CheckVersion(version); err != nil {
		return nil, err
	}
	if err := ticket.EndCall(actor.ID); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, ticket); err != nil {
		return nil, err
	}
	s.appendAudit(ctx, "end_call", ticket.ID, actor)

	resp := ToResponse(ticket)
	return &resp, nil
}

// Delete removes an untouched ticket. Requires elevated access in customer
// service; tickets carry no creator registration to match against.
func (s *Service) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if err := s.gateElevated(actor); err != nil {
		return err
	}

	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !ticket.CanDelete() {
		return shared.NewDomainError("INVALID_TRANSITION", "Only new tickets can be deleted")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.appendAudit(ctx, "delete", id, actor)
	return nil
}

// History returns the audit trail for a ticket
func (s *Service) History(ctx context.Context, id uuid.UUID) ([]audit.Entry, error) {
	return s.auditRepo.FindByRecord(ctx, recordKind, id)
}
