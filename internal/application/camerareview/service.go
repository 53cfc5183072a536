package camerareview

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/transitops/backend/internal/domain/audit"
	"github.com/transitops/backend/internal/domain/camerareview"
	"github.com/transitops/backend/internal/domain/identity"
	"github.com/transitops/backend/internal/domain/shared"
)

const recordKind = "camera_review"

// CatalogLookup resolves occurrence catalog attributes. The cut-video flag
// on the catalog entry decides whether the cut-video stage is entered.
type CatalogLookup interface {
	RequiresCutVideo(ctx context.Context, occurrenceCode int) (bool, error)
}

// Service orchestrates the camera review workflow.
type Service struct {
	repo      camerareview.Repository
	auditRepo audit.Repository
	catalog   CatalogLookup
	logger    *zap.Logger
}

// NewService creates a camera review service
func NewService(repo camerareview.Repository, auditRepo audit.Repository, catalog CatalogLookup, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, auditRepo: auditRepo, catalog: catalog, logger: logger}
}

// CreateRequest carries the fields for a new camera review record
type CreateRequest struct {
	Car            string    `json:"car"`
	BusLine        string    `json:"line_bus"`
	OccurrenceCode int       `json:"occurrence"`
	Comment        string    `json:"comment"`
	DateOccurrence time.Time `json:"date_occurrence"`
	DateCamera     time.Time `json:"date_camera"`
}

// UpdateRequest carries the editable fields of an existing record
type UpdateRequest struct {
	Car            string    `json:"car"`
	BusLine        string    `json:"line_bus"`
	OccurrenceCode int       `json:"occurrence"`
	Comment        string    `json:"comment"`
	DateOccurrence time.Time `json:"date_occurrence"`
	DateCamera     time.Time `json:"date_camera"`
	Version        int       `json:"version"`
}

// ReviewRequest carries the review stage fields
type ReviewRequest struct {
	DateReview time.Time `json:"date_review"`
	ReviewedBy string    `json:"reviewed_by"`
	ThereVideo bool      `json:"there_video"`
	VideoPath  string    `json:"video_path"`
	Version    int       `json:"version"`
}

// Response is the API view of a camera review record
type Response struct {
	ID               uuid.UUID `json:"id"`
	Car              string    `json:"car"`
	BusLine          string    `json:"line_bus"`
	OccurrenceCode   int       `json:"occurrence"`
	RequiresCutVideo bool      `json:"requires_cut_video"`
	Comment          string    `json:"comment"`
	DateOccurrence   time.Time `json:"date_occurrence"`
	DateCamera       time.Time `json:"date_camera"`
	DateReview       time.Time `json:"date_review,omitempty"`
	ReviewedBy       string    `json:"reviewed_by,omitempty"`
	ThereVideo       bool      `json:"there_video"`
	VideoPath        string    `json:"video_path,omitempty"`
	RequestedBy      string    `json:"requested_by"`
	Status           int       `json:"status"`
	StatusLabel      string    `json:"status_label"`
	Version          int       `json:"version"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ToResponse converts a domain record to the API view
func ToResponse(r *camerareview.Record) Response {
	return Response{
		ID:               r.ID,
		Car:              r.Car,
		BusLine:          r.BusLine,
		OccurrenceCode:   r.OccurrenceCode,
		RequiresCutVideo: r.RequiresCutVideo,
		Comment:          r.Comment,
		DateOccurrence:   r.DateOccurrence,
		DateCamera:       r.DateCamera,
		DateReview:       r.DateReview,
		ReviewedBy:       r.ReviewedBy,
		ThereVideo:       r.ThereVideo,
		VideoPath:        r.VideoPath,
		RequestedBy:      r.RequestedBy,
		Status:           int(r.Status),
		StatusLabel:      r.Status.String(),
		Version:          r.Version,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func (s *Service) gate(actor identity.Actor) error {
	if !actor.CanActOnDepartment(identity.DepartmentCameraReview) {
		return shared.NewDomainError("FORBIDDEN", "Actor does not belong to the camera review department")
	}
	return nil
}

func (s *Service) gateElevated(actor identity.Actor) error {
	if err := s.gate(actor); err != nil {
		return err
	}
	if !actor.HasElevatedAccess(identity.DepartmentCameraReview) {
		return shared.NewDomainError("FORBIDDEN", "Operation requires elevated access in the camera review department")
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

// Create registers a new camera review record, resolving the cut-video flag
// from the occurrence catalog.
func (s *Service) Create(ctx context.Context, actor identity.Actor, req CreateRequest) (*Response, error) {
	if err := s.gate(actor); err != nil {
		return nil, err
	}

	requiresCutVideo, err := s.catalog.RequiresCutVideo(ctx, req.OccurrenceCode)
	if err != nil {
		return nil, err
	}

	record, err := camerareview.NewRecord(req.Car, req.BusLine, req.OccurrenceCode, requiresCutVideo,
		req.Comment, req.DateOccurrence, req.DateCamera, actor.Registration)
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

// Update edits a record that has not yet finished. A changed occurrence code
// re-resolves the cut-video flag from the catalog.
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
		return nil, shared.NewDomainError("INVALID_TRANSITION", "Finished records cannot be edited")
	}

	if req.OccurrenceCode != record.OccurrenceCode {
		requiresCutVideo, err := s.catalog.RequiresCutVideo(ctx, req.OccurrenceCode)
		if err != nil {
			return nil, err
		}
		record.RequiresCutVideo = requiresCutVideo
	}
	record.Car = req.Car
	record.BusLine = req.BusLine
	record.OccurrenceCode = req.OccurrenceCode
	record.Comment = req.Comment
	record.DateOccurrence = req.DateOccurrence
	record.DateCamera = req.DateCamera

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

// RecordReview fills the review stage fields without advancing
func (s *Service) RecordReview(ctx context.Context, actor identity.Actor, id uuid.UUID, req ReviewRequest) (*Response, error) {
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
	if record.Status != camerareview.StatusAwaitingCameraReview {
		return nil, shared.NewDomainError("INVALID_TRANSITION",
			"Review data can only be recorded at the camera review stage")
	}

	record.DateReview = req.DateReview
	record.ReviewedBy = req.ReviewedBy
	record.ThereVideo = req.ThereVideo
	record.VideoPath = req.VideoPath
	record.Touch()

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	s.appendAudit(ctx, "review", record.ID, actor)

	resp := ToResponse(record)
	return &resp, nil
}

// Approve advances a record one stage
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

// Delete removes a record not yet reviewed. Requires elevated access in the
// camera review department, or being the requesting user.
func (s *Service) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if err := s.gate(actor); err != nil {
		return err
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.HasElevatedAccess(identity.DepartmentCameraReview) && record.RequestedBy != actor.Registration {
		return shared.NewDomainError("FORBIDDEN", "Deletion requires elevated access in the camera review department")
	}
	if !record.CanDelete() {
		return shared.NewDomainError("INVALID_TRANSITION", "Records past the monitoring stage cannot be deleted")
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
