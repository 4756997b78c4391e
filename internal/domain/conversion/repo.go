package conversion

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, c *Conversion) error
	GetByID(ctx context.Context, id uuid.UUID) (*Conversion, error)
	List(ctx context.Context, limit, offset int) ([]*Conversion, int, error)
}
