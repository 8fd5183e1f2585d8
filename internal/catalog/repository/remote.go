package repository

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fekuna/ecoscan/internal/api"
	"github.com/fekuna/ecoscan/internal/apperror"
	"github.com/fekuna/ecoscan/internal/model"
)

// productRecord is the backend's product shape.
type productRecord struct {
	ID                  api.FlexID `json:"id"`
	Barcode             string     `json:"barcode"`
	Name                string     `json:"name"`
	Price               float64    `json:"price"`
	Description         string     `json:"description"`
	SustainabilityScore string     `json:"sustainabilityScore"`
	Status              string     `json:"status"`
}

func (r productRecord) toModel() model.Product {
	return model.Product{
		ID:                  r.ID.String(),
		Barcode:             r.Barcode,
		Name:                r.Name,
		Price:               r.Price,
		SustainabilityScore: r.SustainabilityScore,
		Description:         r.Description,
		Status:              r.Status,
	}
}

// RemoteRepository looks codes up on the backend's barcode endpoint.
type RemoteRepository struct {
	client *api.Client
}

func NewRemoteRepository(client *api.Client) *RemoteRepository {
	return &RemoteRepository{client: client}
}

func (r *RemoteRepository) FindByCode(ctx context.Context, code string) (*model.Product, error) {
	var rec productRecord
	err := r.client.Do(ctx, http.MethodGet, "/api/products/barcode/"+url.PathEscape(code), "", nil, &rec)
	if err != nil {
		if apperror.StatusCode(err) == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	p := rec.toModel()
	return &p, nil
}

func (r *RemoteRepository) List(ctx context.Context) ([]model.Product, error) {
	var recs []productRecord
	if err := r.client.Do(ctx, http.MethodGet, "/api/products", "", nil, &recs); err != nil {
		return nil, err
	}
	products := make([]model.Product, 0, len(recs))
	for _, rec := range recs {
		products = append(products, rec.toModel())
	}
	return products, nil
}
