package sac

import (
	"context"

	"github.com/google/uuid"

	"github.com/transitops/backend/internal/domain/shared"
)

// Repository persists tickets and their treatments.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Ticket, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Ticket, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, ticket *Ticket) error
	Delete(ctx context.Context, id uuid.UUID) error
}
