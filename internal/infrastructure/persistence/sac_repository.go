package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transitops/backend/internal/domain/sac"
	"github.com/transitops/backend/internal/domain/shared"
	"github.com/transitops/backend/internal/infrastructure/persistence/models"
)

var sacColumns = map[string]bool{
	"protocol":      true,
	"status":        true,
	"department_id": true,
	"assignee_id":   true,
	"priority":      true,
	"created_at":    true,
}

// GormSacRepository implements sac.Repository using GORM
type GormSacRepository struct {
	db *gorm.DB
}

// NewGormSacRepository creates a new GormSacRepository
func NewGormSacRepository(db *gorm.DB) *GormSacRepository {
	return &GormSacRepository{db: db}
}

// FindByID finds a ticket with its treatments
func (r *GormSacRepository) FindByID(ctx context.Context, id uuid.UUID) (*sac.Ticket, error) {
	var model models.SacTicketModel
	if err := r.db.WithContext(ctx).Preload("Treatments").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists tickets matching the filter
func (r *GormSacRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sac.Ticket, error) {
	var ticketModels []models.SacTicketModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.SacTicketModel{}), filter, sacColumns)
	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, err
	}

	tickets := make([]sac.Ticket, len(ticketModels))
	for i := range ticketModels {
		tickets[i] = *ticketModels[i].ToDomain()
	}
	return tickets, nil
}

// Count counts tickets matching the filter
func (r *GormSacRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyCountFilter(r.db.WithContext(ctx).Model(&models.SacTicketModel{}), filter, sacColumns)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a ticket together with its treatments
func (r *GormSacRepository) Save(ctx context.Context, ticket *sac.Ticket) error {
	model := models.SacTicketModelFromDomain(ticket)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(model).Error; err != nil {
			return err
		}
		return nil
	})
}

// Delete removes a ticket and its treatments
func (r *GormSacRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.SacTreatmentModel{}, "ticket_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.SacTicketModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

var _ sac.Repository = (*GormSacRepository)(nil)
