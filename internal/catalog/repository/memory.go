package repository

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/fekuna/ecoscan/internal/model"
	"gopkg.in/yaml.v3"
)

// DefaultProducts is the built-in product table.
func DefaultProducts() []model.Product {
	return []model.Product{
		{
			ID:                  "123456789",
			Name:                "Eco-Friendly Shampoo",
			Price:               12.99,
			SustainabilityScore: "8/10",
			Description:         "Natural ingredients, plastic-free packaging",
		},
		{
			ID:                  "987654321",
			Name:                "Sustainable Toothbrush",
			Price:               3.99,
			SustainabilityScore: "9/10",
			Description:         "Bamboo handle, biodegradable bristles",
		},
		{
			ID:                  "456789123",
			Name:                "Organic Cotton T-shirt",
			Price:               24.99,
			SustainabilityScore: "7/10",
			Description:         "100% organic cotton, fair trade certified",
		},
	}
}

// MemoryRepository is a read-only table built once at startup.
type MemoryRepository struct {
	byCode map[string]model.Product
}

func NewMemoryRepository(products []model.Product) *MemoryRepository {
	byCode := make(map[string]model.Product, len(products))
	for _, p := range products {
		byCode[p.Code()] = p
	}
	return &MemoryRepository{byCode: byCode}
}

func (r *MemoryRepository) FindByCode(_ context.Context, code string) (*model.Product, error) {
	p, ok := r.byCode[code]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]model.Product, error) {
	products := make([]model.Product, 0, len(r.byCode))
	for _, p := range r.byCode {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

type seedFile struct {
	Products []model.Product `yaml:"products"`
}

// LoadYAML reads a catalog seed file of the form:
//
//	products:
//	  - id: "123456789"
//	    name: Eco-Friendly Shampoo
//	    price: 12.99
//	    sustainability_score: 8/10
func LoadYAML(path string) ([]model.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	for i, p := range seed.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog entry %d: missing id", i)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("catalog entry %s: negative price", p.ID)
		}
	}
	return seed.Products, nil
}
