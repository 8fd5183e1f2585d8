package catalog

import (
	"context"

	"github.com/fekuna/ecoscan/internal/model"
)

// Repository resolves scan codes to products. FindByCode returns nil, nil on a miss.
type Repository interface {
	FindByCode(ctx context.Context, code string) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
}
