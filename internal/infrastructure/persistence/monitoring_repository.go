package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transitops/backend/internal/domain/monitoring"
	"github.com/transitops/backend/internal/domain/shared"
	"github.com/transitops/backend/internal/infrastructure/persistence/models"
)

var monitoringColumns = map[string]bool{
	"car":             true,
	"status":          true,
	"occurrence_type": true,
	"occurrence_code": true,
	"created_at":      true,
	"date_occurrence": true,
}

// GormMonitoringRepository implements monitoring.Repository using GORM
type GormMonitoringRepository struct {
	db *gorm.DB
}

// NewGormMonitoringRepository creates a new GormMonitoringRepository
func NewGormMonitoringRepository(db *gorm.DB) *GormMonitoringRepository {
	return &GormMonitoringRepository{db: db}
}

// FindByID finds a record by ID
func (r *GormMonitoringRepository) FindByID(ctx context.Context, id uuid.UUID) (*monitoring.Record, error) {
	var model models.MonitoringRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists records matching the filter
func (r *GormMonitoringRepository) FindAll(ctx context.Context, filter shared.Filter) ([]monitoring.Record, error) {
	var recordModels []models.MonitoringRecordModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.MonitoringRecordModel{}), filter, monitoringColumns)
	if err := query.Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]monitoring.Record, len(recordModels))
	for i := range recordModels {
		records[i] = *recordModels[i].ToDomain()
	}
	return records, nil
}

// Count counts records matching the filter
func (r *GormMonitoringRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyCountFilter(r.db.WithContext(ctx).Model(&models.MonitoringRecordModel{}), filter, monitoringColumns)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a record
func (r *GormMonitoringRepository) Save(ctx context.Context, record *monitoring.Record) error {
	model := models.MonitoringRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a record by ID
func (r *GormMonitoringRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MonitoringRecordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ monitoring.Repository = (*GormMonitoringRepository)(nil)
