package cart

import (
	"context"

	"github.com/fekuna/ecoscan/internal/model"
)

// UseCase keeps a local projection of the remote cart. The projection is never
// edited in place: every successful mutation is followed by a full reload.
type UseCase interface {
	Load(ctx context.Context) error
	// Add reports whether the product reached the remote cart. Without a
	// session it redirects to login and returns false with no error.
	Add(ctx context.Context, product model.Product) (bool, error)
	UpdateQuantity(ctx context.Context, cartItemID string, quantity int) error
	Remove(ctx context.Context, productID string) error

	Items() []model.CartItem
	View() View
}
