package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transitops/backend/internal/domain/maintenance"
	"github.com/transitops/backend/internal/domain/shared"
	"github.com/transitops/backend/internal/infrastructure/persistence/models"
)

var maintenanceColumns = map[string]bool{
	"car":              true,
	"status":           true,
	"maintenance_type": true,
	"reported_by":      true,
	"created_at":       true,
	"date_maintenance": true,
}

// GormMaintenanceRepository implements maintenance.Repository using GORM
type GormMaintenanceRepository struct {
	db *gorm.DB
}

// NewGormMaintenanceRepository creates a new GormMaintenanceRepository
func NewGormMaintenanceRepository(db *gorm.DB) *GormMaintenanceRepository {
	return &GormMaintenanceRepository{db: db}
}

// FindByID finds a record by ID
func (r *GormMaintenanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*maintenance.Record, error) {
	var model models.MaintenanceRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists records matching the filter
func (r *GormMaintenanceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]maintenance.Record, error) {
	var recordModels []models.MaintenanceRecordModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.MaintenanceRecordModel{}), filter, maintenanceColumns)
	if err := query.Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]maintenance.Record, len(recordModels))
	for i := range recordModels {
		records[i] = *recordModels[i].ToDomain()
	}
	return records, nil
}

// Count counts records matching the filter
func (r *GormMaintenanceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyCountFilter(r.db.WithContext(ctx).Model(&models.MaintenanceRecordModel{}), filter, maintenanceColumns)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a record
func (r *GormMaintenanceRepository) Save(ctx context.Context, record *maintenance.Record) error {
	model := models.MaintenanceRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a record by ID
func (r *GormMaintenanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MaintenanceRecordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ maintenance.Repository = (*GormMaintenanceRepository)(nil)
