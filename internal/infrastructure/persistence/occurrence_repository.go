package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transitops/backend/internal/domain/occurrence"
	"github.com/transitops/backend/internal/domain/shared"
	"github.com/transitops/backend/internal/infrastructure/persistence/models"
)

var occurrenceColumns = map[string]bool{
	"report_number":     true,
	"car":               true,
	"status":            true,
	"occurrence_type":   true,
	"sector_affected":   true,
	"assignee_username": true,
	"created_at":        true,
	"date_occurrence":   true,
}

// GormOccurrenceRepository implements occurrence.Repository using GORM
type GormOccurrenceRepository struct {
	db *gorm.DB
}

// NewGormOccurrenceRepository creates a new GormOccurrenceRepository
func NewGormOccurrenceRepository(db *gorm.DB) *GormOccurrenceRepository {
	return &GormOccurrenceRepository{db: db}
}

// FindByID finds a report by ID
func (r *GormOccurrenceRepository) FindByID(ctx context.Context, id uuid.UUID) (*occurrence.Report, error) {
	var model models.OccurrenceReportModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists reports matching the filter
func (r *GormOccurrenceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]occurrence.Report, error) {
	var reportModels []models.OccurrenceReportModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.OccurrenceReportModel{}), filter, occurrenceColumns)
	if err := query.Find(&reportModels).Error; err != nil {
		return nil, err
	}

	reports := make([]occurrence.Report, len(reportModels))
	for i := range reportModels {
		reports[i] = *reportModels[i].ToDomain()
	}
	return reports, nil
}

// Count counts reports matching the filter
func (r *GormOccurrenceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyCountFilter(r.db.WithContext(ctx).Model(&models.OccurrenceReportModel{}), filter, occurrenceColumns)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a report
func (r *GormOccurrenceRepository) Save(ctx context.Context, report *occurrence.Report) error {
	model := models.OccurrenceReportModelFromDomain(report)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a report by ID
func (r *GormOccurrenceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.OccurrenceReportModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ occurrence.Repository = (*GormOccurrenceRepository)(nil)
