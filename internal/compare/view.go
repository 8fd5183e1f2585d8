package compare

import (
	"errors"
	"fmt"

	"github.com/fekuna/ecoscan/internal/model"
)

var ErrUnknownProduct = errors.New("product is not in the cart")

// CartSnapshot is the cart projection the comparison draws from.
type CartSnapshot interface {
	Items() []model.CartItem
}

// View lets the user pick two products out of the current cart.
type View struct {
	cart   CartSnapshot
	sel    Selection
	notice string
}

func NewView(cart CartSnapshot) *View {
	return &View{cart: cart}
}

// Candidates lists the products in the cart, one entry per product.
func (v *View) Candidates() []model.Product {
	items := v.cart.Items()
	seen := make(map[string]bool, len(items))
	products := make([]model.Product, 0, len(items))
	for _, item := range items {
		if seen[item.Product.ID] {
			continue
		}
		seen[item.Product.ID] = true
		products = append(products, item.Product)
	}
	return products
}

// Toggle flips the selection of the cart product with productID.
func (v *View) Toggle(productID string) error {
	v.notice = ""

	var product *model.Product
	for _, p := range v.Candidates() {
		if p.ID == productID {
			product = &p
			break
		}
	}
	if product == nil {
		return fmt.Errorf("toggle %q: %w", productID, ErrUnknownProduct)
	}

	if err := v.sel.Toggle(*product); err != nil {
		v.notice = MessageSelectionFull
		return err
	}
	return nil
}

// Sync drops selected products that have left the cart.
func (v *View) Sync() {
	inCart := make(map[string]bool)
	for _, p := range v.Candidates() {
		inCart[p.ID] = true
	}
	v.sel.Retain(func(p model.Product) bool { return inCart[p.ID] })
}

func (v *View) Selected() []model.Product {
	return v.sel.Selected()
}

func (v *View) IsSelected(productID string) bool {
	return v.sel.Contains(productID)
}

// Notice is the message left by the last rejected Toggle.
func (v *View) Notice() string {
	return v.notice
}

func (v *View) Render() Table {
	return Render(v.sel.Selected())
}
