package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/transitops/backend/internal/domain/sac"
	"github.com/transitops/backend/internal/domain/shared"
)

// SacTicketModel is the persistence model for customer service tickets
type SacTicketModel struct {
	BaseModel
	Protocol       string `gorm:"size:30;not null;uniqueIndex"`
	RequesterName  string `gorm:"size:120;not null"`
	Phone          string `gorm:"size:20;not null"`
	RG             string `gorm:"size:20"`
	Gender         int    `gorm:"not null"`
	SourceChannel  int    `gorm:"not null"`
	OccurrenceType int    `gorm:"not null"`
	TicketGroup    int    `gorm:"column:ticket_group"`
	Priority       int    `gorm:"not null"`
	Proceeding     string `gorm:"type:text"`
	Car            string `gorm:"size:20"`
	BusLine        string `gorm:"size:20"`
	DepartmentID   int    `gorm:"not null;index"`
	AssigneeID     int    `gorm:"index"`
	AssigneeName   string `gorm:"size:120"`
	Status         int    `gorm:"not null;index"`

	Treatments []SacTreatmentModel `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name
func (SacTicketModel) TableName() string {
	return "sac_tickets"
}

// SacTreatmentModel is the persistence model for ticket treatments
type SacTreatmentModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	TicketID       uuid.UUID `gorm:"type:uuid;not null;index"`
	DepartmentID   int       `gorm:"not null"`
	DepartmentName string    `gorm:"size:120"`
	UserID         int       `gorm:"not null"`
	UserName       string    `gorm:"size:120"`
	Text           string    `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name
func (SacTreatmentModel) TableName() string {
	return "sac_treatments"
}

// ToDomain converts the model to a domain ticket
func (m *SacTicketModel) ToDomain() *sac.Ticket {
	treatments := make([]sac.Treatment, len(m.Treatments))
	for i, tm := range m.Treatments {
		treatments[i] = sac.Treatment{
			ID:             tm.ID,
			TicketID:       tm.TicketID,
			DepartmentID:   tm.DepartmentID,
			DepartmentName: tm.DepartmentName,
			UserID:         tm.UserID,
			UserName:       tm.UserName,
			Text:           tm.Text,
			CreatedAt:      tm.CreatedAt,
			UpdatedAt:      tm.UpdatedAt,
		}
	}
	return &sac.Ticket{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
			Version:   m.Version,
		},
		Protocol:       m.Protocol,
		RequesterName:  m.RequesterName,
		Phone:          m.Phone,
		RG:             m.RG,
		Gender:         m.Gender,
		SourceChannel:  m.SourceChannel,
		OccurrenceType: m.OccurrenceType,
		Group:          m.TicketGroup,
		Priority:       m.Priority,
		Proceeding:     m.Proceeding,
		Car:            m.Car,
		BusLine:        m.BusLine,
		DepartmentID:   m.DepartmentID,
		AssigneeID:     m.AssigneeID,
		AssigneeName:   m.AssigneeName,
		Status:         sac.Status(m.Status),
		Treatments:     treatments,
	}
}

// SacTicketModelFromDomain converts a domain ticket to the model
func SacTicketModelFromDomain(t *sac.Ticket) *SacTicketModel {
	treatments := make([]SacTreatmentModel, len(t.Treatments))
	for i, tr := range t.Treatments {
		treatments[i] = SacTreatmentModel{
			ID:             tr.ID,
			TicketID:       tr.TicketID,
			DepartmentID:   tr.DepartmentID,
			DepartmentName: tr.DepartmentName,
			UserID:         tr.UserID,
			UserName:       tr.UserName,
			Text:           tr.Text,
			CreatedAt:      tr.CreatedAt,
			UpdatedAt:      tr.UpdatedAt,
		}
	}
	return &SacTicketModel{
		BaseModel: BaseModel{
			ID:        t.ID,
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
			Version:   t.Version,
		},
		Protocol:       t.Protocol,
		RequesterName:  t.RequesterName,
		Phone:          t.Phone,
		RG:             t.RG,
		Gender:         t.Gender,
		SourceChannel:  t.SourceChannel,
		OccurrenceType: t.OccurrenceType,
		TicketGroup:    t.Group,
		Priority:       t.Priority,
		Proceeding:     t.Proceeding,
		Car:            t.Car,
		BusLine:        t.BusLine,
		DepartmentID:   t.DepartmentID,
		AssigneeID:     t.AssigneeID,
		AssigneeName:   t.AssigneeName,
		Status:         int(t.Status),
		Treatments:     treatments,
	}
}
