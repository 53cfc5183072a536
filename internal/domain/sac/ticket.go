package sac

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/transitops/backend/internal/domain/shared"
)

// Treatment is one attendance note attached to a ticket.
type Treatment struct {
	ID             uuid.UUID
	TicketID       uuid.UUID
	DepartmentID   int
	DepartmentName string
	UserID         int
	UserName       string
	Text           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Ticket is a customer service (SAC) ticket moving from intake through
// attendance to resolution.
type Ticket struct {
	shared.BaseEntity
	Protocol       string
	RequesterName  string
	Phone          string
	RG             string
	Gender         int
	SourceChannel  int
	OccurrenceType int
	Group          int
	Priority       int
	Proceeding     string
	Car            string
	BusLine        string
	DepartmentID   int
	AssigneeID     int
	AssigneeName   string
	Status         Status
	Treatments     []Treatment
}

// digitsOnly strips everything but decimal digits.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NewTicket creates a ticket at intake. Requester name is stored uppercased
// and phone/RG keep digits only, matching how the portal records callers.
func NewTicket(protocol, requesterName, phone, rg string, gender, sourceChannel, occurrenceType, departmentID int) (*Ticket, error) {
	t := &Ticket{
		BaseEntity:     shared.NewBaseEntity(),
		Protocol:       protocol,
		RequesterName:  strings.ToUpper(strings.TrimSpace(requesterName)),
		Phone:          digitsOnly(phone),
		RG:             digitsOnly(rg),
		Gender:         gender,
		SourceChannel:  sourceChannel,
		OccurrenceType: occurrenceType,
		Priority:       PriorityMedium,
		DepartmentID:   departmentID,
		Status:         StatusNew,
	}
	if err := t.ValidateCreate(); err != nil {
		return nil, err
	}
	return t, nil
}

// ValidateCreate is the intake ruleset.
func (t *Ticket) ValidateCreate() error {
	var c shared.Collector
	t.validateCore(&c)
	return c.Err()
}

// ValidateUpdate is the stricter ruleset applied once a ticket is being
// worked: attendance fields become mandatory.
func (t *Ticket) ValidateUpdate() error {
	var c shared.Collector
	t.validateCore(&c)
	c.Require(t.Group > 0, "sac_group", "required", "sac_group is required")
	c.Require(t.Priority > 0, "sac_priority", "required", "sac_priority is required")
	c.RequireNotBlank(t.Proceeding, "proceeding")
	c.RequireNotBlank(t.Car, "car")
	c.RequireNotBlank(t.BusLine, "line_bus")
	return c.Err()
}

func (t *Ticket) validateCore(c *shared.Collector) {
	c.RequireNotBlank(t.Protocol, "protocol")
	c.RequireNotBlank(t.RequesterName, "name")
	c.RequireNotBlank(t.Phone, "phone")
	c.Require(t.Gender > 0, "sac_gender", "required", "sac_gender is required")
	c.Require(t.SourceChannel > 0, "sac_source_channel", "required", "sac_source_channel is required")
	c.Require(t.OccurrenceType > 0, "sac_occurrence_type", "required", "sac_occurrence_type is required")
	c.Require(t.DepartmentID > 0, "sac_department", "required", "sac_department is required")
}

// Assign puts the ticket in attention under the chosen user.
func (t *Ticket) Assign(assigneeID int, assigneeName string) error {
	if !t.Status.CanTransitionTo(StatusInAttention) {
		return shared.NewDomainError("INVALID_TRANSITION",
			"Ticket cannot be assigned from stage "+t.Status.String())
	}
	if assigneeID <= 0 {
		return shared.ValidationErrors{{
			Field: "sac_user", Rule: "required", Message: "sac_user is required",
		}}
	}
	t.AssigneeID = assigneeID
	t.AssigneeName = assigneeName
	t.Status = StatusInAttention
	t.Touch()
	return nil
}

// AddTreatment appends an attendance note stub for the acting user.
func (t *Ticket) AddTreatment(departmentID int, departmentName string, userID int, userName, text string) *Treatment {
	tr := Treatment{
		ID:             uuid.New(),
		TicketID:       t.ID,
		DepartmentID:   departmentID,
		DepartmentName: departmentName,
		UserID:         userID,
		UserName:       userName,
		Text:           text,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	t.Treatments = append(t.Treatments, tr)
	t.Touch()
	return &t.Treatments[len(t.Treatments)-1]
}

// EndCall resolves the ticket. The caller must be the assignee and every
// treatment must carry text.
func (t *Ticket) EndCall(actorID int) error {
	if t.Status == StatusResolved {
		return shared.NewDomainError("INVALID_TRANSITION", "Ticket is already resolved")
	}
	if !t.Status.CanTransitionTo(StatusResolved) {
		return shared.NewDomainError("INVALID_TRANSITION",
			"Ticket cannot be resolved from stage "+t.Status.String())
	}
	if t.AssigneeID != actorID {
		return shared.NewDomainError("FORBIDDEN", "Only the assigned user can end the call")
	}
	if len(t.Treatments) == 0 {
		return shared.ValidationErrors{{
			Field: "treatments", Rule: "required", Message: "at least one treatment is required",
		}}
	}
	for _, tr := range t.Treatments {
		if strings.TrimSpace(tr.Text) == "" {
			return shared.ValidationErrors{{
				Field: "treatments", Rule: "blank", Message: "treatments must not be blank",
			}}
		}
	}
	t.Status = StatusResolved
	t.Touch()
	return nil
}

// CanDelete allows removal only while the ticket is untouched.
func (t *Ticket) CanDelete() bool {
	return t.Status == StatusNew
}
