package cart

import (
	"context"

	"github.com/fekuna/ecoscan/internal/model"
)

// Repository is the remote cart API. Every call is a single attempt.
type Repository interface {
	List(ctx context.Context, token string) ([]model.CartItem, error)
	Add(ctx context.Context, token, productID string, quantity int) error
	UpdateQuantity(ctx context.Context, token, cartItemID string, quantity int) error
	Delete(ctx context.Context, token, cartItemID string) error
}
