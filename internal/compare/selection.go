package compare

import (
	"errors"

	"github.com/fekuna/ecoscan/internal/model"
)

const (
	MaxSelected          = 2
	MessageSelectionFull = "You can only compare two products at a time"
)

var ErrSelectionFull = errors.New("comparison selection is full")

// Selection holds up to two products in the order they were picked.
type Selection struct {
	products []model.Product
}

// Toggle deselects p when it is already selected (matched by ID) and selects
// it otherwise. A third product is rejected and the selection left as is.
func (s *Selection) Toggle(p model.Product) error {
	if i := s.index(p.ID); i >= 0 {
		s.products = append(s.products[:i], s.products[i+1:]...)
		return nil
	}
	if len(s.products) >= MaxSelected {
		return ErrSelectionFull
	}
	s.products = append(s.products, p)
	return nil
}

func (s *Selection) Contains(productID string) bool {
	return s.index(productID) >= 0
}

func (s *Selection) Len() int {
	return len(s.products)
}

func (s *Selection) Selected() []model.Product {
	return append([]model.Product(nil), s.products...)
}

// Retain drops selected products that keep reports false for.
func (s *Selection) Retain(keep func(model.Product) bool) {
	kept := s.products[:0]
	for _, p := range s.products {
		if keep(p) {
			kept = append(kept, p)
		}
	}
	s.products = kept
}

func (s *Selection) index(productID string) int {
	for i, p := range s.products {
		if p.ID == productID {
			return i
		}
	}
	return -1
}
