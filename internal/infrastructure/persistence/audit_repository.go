package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transitops/backend/internal/domain/audit"
	"github.com/transitops/backend/internal/infrastructure/persistence/models"
)

// GormAuditRepository implements audit.Repository using GORM
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append stores an audit entry
func (r *GormAuditRepository) Append(ctx context.Context, entry audit.Entry) error {
	model := models.AuditEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByRecord lists the trail for one record, newest first
func (r *GormAuditRepository) FindByRecord(ctx context.Context, recordKind string, recordID uuid.UUID) ([]audit.Entry, error) {
	var entryModels []models.AuditEntryModel
	if err := r.db.WithContext(ctx).
		Where("record_kind = ? AND record_id = ?", recordKind, recordID).
		Order("created_at DESC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]audit.Entry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToDomain()
	}
	return entries, nil
}

var _ audit.Repository = (*GormAuditRepository)(nil)
