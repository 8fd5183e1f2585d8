package model

// EcoStatus is the exact product status that marks an item eco-friendly.
// The comparison is case-sensitive.
const EcoStatus = "ECO"

type CartItem struct {
	CartItemID    string  `json:"cartItemId"`
	Product       Product `json:"product"`
	Quantity      int     `json:"quantity"`
	IsEcoFriendly bool    `json:"isEcoFriendly"`
}

func NewCartItem(cartItemID string, p Product, quantity int) CartItem {
	return CartItem{
		CartItemID:    cartItemID,
		Product:       p,
		Quantity:      quantity,
		IsEcoFriendly: p.Status == EcoStatus,
	}
}
