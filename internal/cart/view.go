package cart

import (
	"github.com/fekuna/ecoscan/internal/model"
	"github.com/shopspring/decimal"
)

const (
	MessageEmpty      = "Your cart is empty"
	MessageLoadFailed = "Unable to load cart"
)

type Line struct {
	CartItemID  string
	ProductID   string
	Name        string
	Price       string
	Quantity    int
	Subtotal    string
	EcoFriendly bool
}

// View is what the cart page shows. Message replaces the line list when set;
// Notice reports a failed mutation without hiding the current lines.
type View struct {
	Lines   []Line
	Total   string
	Message string
	Notice  string
}

// FormatPrice renders an amount as $0.00.
func FormatPrice(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// ProductPrice renders a product's unit price the same way cart lines do.
func ProductPrice(p model.Product) string {
	return FormatPrice(decimal.NewFromFloat(p.Price))
}

// Render projects cart items into a view. It has no side effects.
func Render(items []model.CartItem) View {
	if len(items) == 0 {
		return View{Total: FormatPrice(decimal.Zero), Message: MessageEmpty}
	}

	total := decimal.Zero
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		price := decimal.NewFromFloat(item.Product.Price)
		subtotal := price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(subtotal)

		lines = append(lines, Line{
			CartItemID:  item.CartItemID,
			ProductID:   item.Product.ID,
			Name:        item.Product.Name,
			Price:       FormatPrice(price),
			Quantity:    item.Quantity,
			Subtotal:    FormatPrice(subtotal),
			EcoFriendly: item.IsEcoFriendly,
		})
	}

	return View{Lines: lines, Total: FormatPrice(total)}
}

// RenderLoadFailure is the empty-cart-with-error state.
func RenderLoadFailure() View {
	return View{Total: FormatPrice(decimal.Zero), Message: MessageLoadFailed}
}
