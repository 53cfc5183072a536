package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/transitops/backend/internal/domain/audit"
)

// AuditEntryModel is the persistence model for the workflow audit trail
type AuditEntryModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Action     string    `gorm:"size:60;not null"`
	RecordKind string    `gorm:"size:30;not null;index:idx_audit_record"`
	RecordID   uuid.UUID `gorm:"type:uuid;not null;index:idx_audit_record"`
	UserID     int       `gorm:"not null"`
	UserName   string    `gorm:"size:120"`
	CreatedAt  time.Time `gorm:"not null;index"`
}

// TableName returns the table name
func (AuditEntryModel) TableName() string {
	return "audit_entries"
}

// ToDomain converts the model to a domain entry
func (m *AuditEntryModel) ToDomain() audit.Entry {
	return audit.Entry{
		ID:         m.ID,
		Action:     m.Action,
		RecordKind: m.RecordKind,
		RecordID:   m.RecordID,
		UserID:     m.UserID,
		UserName:   m.UserName,
		CreatedAt:  m.CreatedAt,
	}
}

// AuditEntryModelFromDomain converts a domain entry to the model
func AuditEntryModelFromDomain(e audit.Entry) *AuditEntryModel {
	return &AuditEntryModel{
		ID:         e.ID,
		Action:     e.Action,
		RecordKind: e.RecordKind,
		RecordID:   e.RecordID,
		UserID:     e.UserID,
		UserName:   e.UserName,
		CreatedAt:  e.CreatedAt,
	}
}
