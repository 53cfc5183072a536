package camerareview

import (
	"context"

	"github.com/google/uuid"

	"github.com/transitops/backend/internal/domain/shared"
)

// Repository persists camera review records.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Record, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Record, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, record *Record) error
	Delete(ctx context.Context, id uuid.UUID) error
}
