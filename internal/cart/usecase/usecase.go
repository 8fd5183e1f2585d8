package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/fekuna/ecoscan/internal/auth"
	"github.com/fekuna/ecoscan/internal/cart"
	"github.com/fekuna/ecoscan/internal/logger"
	"github.com/fekuna/ecoscan/internal/model"
	"go.uber.org/zap"
)

const (
	noticeAddFailed    = "Unable to add item to cart"
	noticeUpdateFailed = "Unable to update quantity"
	noticeRemoveFailed = "Unable to remove item"
)

type cartUseCase struct {
	repo   cart.Repository
	tokens auth.TokenSource
	logger logger.ZapLogger

	// seq numbers loads; only the response of the latest one is applied.
	seq atomic.Uint64

	mu    sync.Mutex
	items []model.CartItem
	view  cart.View
}

func NewCartUseCase(repo cart.Repository, tokens auth.TokenSource, log logger.ZapLogger) cart.UseCase {
	return &cartUseCase{
		repo:   repo,
		tokens: tokens,
		logger: log,
		view:   cart.Render(nil),
	}
}

// Load replaces the projection with the server's cart. On failure the view
// shows the load error and the wrapped error is returned for logging only.
func (uc *cartUseCase) Load(ctx context.Context) error {
	token, ok := uc.tokens.RequireToken(ctx)
	if !ok {
		return nil
	}
	return uc.load(ctx, token)
}

func (uc *cartUseCase) load(ctx context.Context, token string) error {
	seq := uc.seq.Add(1)
	items, err := uc.repo.List(ctx, token)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if seq != uc.seq.Load() {
		uc.logger.Debug("dropping stale cart response", zap.Uint64("seq", seq))
		return nil
	}

	if err != nil {
		uc.logger.Error("Error loading cart", zap.Error(err))
		uc.items = nil
		uc.view = cart.RenderLoadFailure()
		return fmt.Errorf("load cart: %w", err)
	}

	for _, item := range items {
		uc.logger.Debug("cart item",
			zap.String("product", item.Product.Name),
			zap.String("status", item.Product.Status),
		)
	}
	uc.items = items
	uc.view = cart.Render(items)
	return nil
}

func (uc *cartUseCase) Add(ctx context.Context, product model.Product) (bool, error) {
	token, ok := uc.tokens.RequireToken(ctx)
	if !ok {
		return false, nil
	}

	if err := uc.repo.Add(ctx, token, product.ID, 1); err != nil {
		uc.logger.Error("Error adding to cart", zap.String("product_id", product.ID), zap.Error(err))
		uc.setNotice(noticeAddFailed)
		return false, fmt.Errorf("add to cart: %w", err)
	}
	// The add went through even if the reload fails.
	return true, uc.load(ctx, token)
}

// UpdateQuantity silently ignores quantities below 1.
func (uc *cartUseCase) UpdateQuantity(ctx context.Context, cartItemID string, quantity int) error {
	if quantity < 1 {
		return nil
	}
	token, ok := uc.tokens.RequireToken(ctx)
	if !ok {
		return nil
	}

	if err := uc.repo.UpdateQuantity(ctx, token, cartItemID, quantity); err != nil {
		uc.logger.Error("Error updating quantity", zap.String("cart_item_id", cartItemID), zap.Error(err))
		uc.setNotice(noticeUpdateFailed)
		return fmt.Errorf("update quantity: %w", err)
	}
	return uc.load(ctx, token)
}

// Remove deletes the cart line holding productID. The line is looked up in the
// local projection; an unknown product is a no-op.
func (uc *cartUseCase) Remove(ctx context.Context, productID string) error {
	token, ok := uc.tokens.RequireToken(ctx)
	if !ok {
		return nil
	}

	cartItemID, found := uc.cartItemFor(productID)
	if !found {
		return nil
	}

	if err := uc.repo.Delete(ctx, token, cartItemID); err != nil {
		uc.logger.Error("Error removing item", zap.String("cart_item_id", cartItemID), zap.Error(err))
		uc.setNotice(noticeRemoveFailed)
		return fmt.Errorf("remove from cart: %w", err)
	}
	return uc.load(ctx, token)
}

func (uc *cartUseCase) Items() []model.CartItem {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]model.CartItem, len(uc.items))
	copy(out, uc.items)
	return out
}

func (uc *cartUseCase) View() cart.View {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	v := uc.view
	v.Lines = append([]cart.Line(nil), uc.view.Lines...)
	return v
}

func (uc *cartUseCase) cartItemFor(productID string) (string, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for _, item := range uc.items {
		if item.Product.ID == productID {
			return item.CartItemID, true
		}
	}
	return "", false
}

func (uc *cartUseCase) setNotice(msg string) {
	uc.mu.Lock()
	uc.view.Notice = msg
	uc.mu.Unlock()
}
