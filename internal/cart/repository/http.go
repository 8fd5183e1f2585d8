package repository

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fekuna/ecoscan/internal/api"
	"github.com/fekuna/ecoscan/internal/model"
)

type cartRecord struct {
	ID       api.FlexID    `json:"id"`
	Quantity int           `json:"quantity"`
	Product  productRecord `json:"product"`
}

type productRecord struct {
	ID                  api.FlexID `json:"id"`
	Name                string     `json:"name"`
	Price               float64    `json:"price"`
	Status              string     `json:"status"`
	Description         string     `json:"description"`
	SustainabilityScore string     `json:"sustainabilityScore"`
}

type addRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type HTTPRepository struct {
	client *api.Client
}

func NewHTTPRepository(client *api.Client) *HTTPRepository {
	return &HTTPRepository{client: client}
}

func (r *HTTPRepository) List(ctx context.Context, token string) ([]model.CartItem, error) {
	var records []cartRecord
	if err := r.client.Do(ctx, http.MethodGet, "/api/cart", token, nil, &records); err != nil {
		return nil, err
	}

	items := make([]model.CartItem, 0, len(records))
	for _, rec := range records {
		p := model.Product{
			ID:                  rec.Product.ID.String(),
			Name:                rec.Product.Name,
			Price:               rec.Product.Price,
			Status:              rec.Product.Status,
			Description:         rec.Product.Description,
			SustainabilityScore: rec.Product.SustainabilityScore,
		}
		items = append(items, model.NewCartItem(rec.ID.String(), p, rec.Quantity))
	}
	return items, nil
}

func (r *HTTPRepository) Add(ctx context.Context, token, productID string, quantity int) error {
	return r.client.Do(ctx, http.MethodPost, "/api/cart", token, addRequest{ProductID: productID, Quantity: quantity}, nil)
}

func (r *HTTPRepository) UpdateQuantity(ctx context.Context, token, cartItemID string, quantity int) error {
	return r.client.Do(ctx, http.MethodPut, "/api/cart/"+url.PathEscape(cartItemID), token, quantityRequest{Quantity: quantity}, nil)
}

func (r *HTTPRepository) Delete(ctx context.Context, token, cartItemID string) error {
	return r.client.Do(ctx, http.MethodDelete, "/api/cart/"+url.PathEscape(cartItemID), token, nil, nil)
}
