package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides common fields for all entities.
// Version increments on every mutation and backs stale-edit detection.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// GetVersion returns the current version
func (e *BaseEntity) GetVersion() int {
	return e.Version
}

// CheckVersion rejects edits made against a version that is no longer current.
func (e *BaseEntity) CheckVersion(expected int) error {
	if expected != e.Version {
		return NewDomainError("STALE_EDIT", "Record was modified since it was loaded")
	}
	return nil
}

// Touch bumps the update timestamp and version
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
	e.Version++
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
	}
}
