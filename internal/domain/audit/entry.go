package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Entry is one line in the workflow audit trail.
type Entry struct {
	ID         uuid.UUID
	Action     string
	RecordKind string
	RecordID   uuid.UUID
	UserID     int
	UserName   string
	CreatedAt  time.Time
}

// NewEntry creates an audit entry for an action performed on a record.
func NewEntry(action, recordKind string, recordID uuid.UUID, userID int, userName string) Entry {
	return Entry{
		ID:         uuid.New(),
		Action:     action,
		RecordKind: recordKind,
		RecordID:   recordID,
		UserID:     userID,
		UserName:   userName,
		CreatedAt:  time.Now(),
	}
}

// Repository persists the audit trail.
type Repository interface {
	Append(ctx context.Context, entry Entry) error
	FindByRecord(ctx context.Context, recordKind string, recordID uuid.UUID) ([]Entry, error)
}
