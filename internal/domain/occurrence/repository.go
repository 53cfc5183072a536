package occurrence

import (
	"context"

	"github.com/google/uuid"

	"github.com/transitops/backend/internal/domain/shared"
)

// Repository persists occurrence reports.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Report, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Report, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, report *Report) error
	Delete(ctx context.Context, id uuid.UUID) error
}
