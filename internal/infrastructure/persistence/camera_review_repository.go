package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transitops/backend/internal/domain/camerareview"
	"github.com/transitops/backend/internal/domain/shared"
	"github.com/transitops/backend/internal/infrastructure/persistence/models"
)

var cameraReviewColumns = map[string]bool{
	"car":             true,
	"status":          true,
	"occurrence_code": true,
	"created_at":      true,
	"date_occurrence": true,
	"date_camera":     true,
}

// GormCameraReviewRepository implements camerareview.Repository using GORM
type GormCameraReviewRepository struct {
	db *gorm.DB
}

// NewGormCameraReviewRepository creates a new GormCameraReviewRepository
func NewGormCameraReviewRepository(db *gorm.DB) *GormCameraReviewRepository {
	return &GormCameraReviewRepository{db: db}
}

// FindByID finds a record by ID
func (r *GormCameraReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*camerareview.Record, error) {
	var model models.CameraReviewModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists records matching the filter
func (r *GormCameraReviewRepository) FindAll(ctx context.Context, filter shared.Filter) ([]camerareview.Record, error) {
	var recordModels []models.CameraReviewModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.CameraReviewModel{}), filter, cameraReviewColumns)
	if err := query.Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]camerareview.Record, len(recordModels))
	for i := range recordModels {
		records[i] = *recordModels[i].ToDomain()
	}
	return records, nil
}

// Count counts records matching the filter
func (r *GormCameraReviewRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyCountFilter(r.db.WithContext(ctx).Model(&models.CameraReviewModel{}), filter, cameraReviewColumns)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a record
func (r *GormCameraReviewRepository) Save(ctx context.Context, record *camerareview.Record) error {
	model := models.CameraReviewModelFromDomain(record)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a record by ID
func (r *GormCameraReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CameraReviewModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ camerareview.Repository = (*GormCameraReviewRepository)(nil)
