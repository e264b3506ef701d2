package models

import "math"

// MaxLineQuantity caps the quantity of a single line item.
const MaxLineQuantity = 999

// CartLineItem is one product in the cart. ID is the product id.
type CartLineItem struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Image    string `json:"image"`
	Slug     string `json:"slug,omitempty"`
	Quantity int    `json:"quantity"`
}

// Subtotal is price times quantity, saturating at math.MaxInt64.
func (i CartLineItem) Subtotal() int64 {
	if i.Price <= 0 || i.Quantity <= 0 {
		return 0
	}
	if i.Price > math.MaxInt64/int64(i.Quantity) {
		return math.MaxInt64
	}
	return i.Price * int64(i.Quantity)
}

// ClampQuantity bounds a line item quantity to [1, MaxLineQuantity].
func ClampQuantity(n int) int {
	return min(max(n, 1), MaxLineQuantity)
}

// AddPrices sums non-negative amounts, saturating at math.MaxInt64.
func AddPrices(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

// CartSnapshot is an immutable view of a cart at one version.
type CartSnapshot struct {
	Items      []CartLineItem `json:"items"`
	TotalItems int            `json:"total_items"`
	TotalPrice int64          `json:"total_price"`
	Version    uint64         `json:"version"`
}

func (s CartSnapshot) IsEmpty() bool {
	return len(s.Items) == 0
}

// CartProduct is the subset of a product the cart keeps.
type CartProduct struct {
	ID    string
	Name  string
	Price int64
	Image string
	Slug  string
}

func NewCartProduct(p *Product) CartProduct {
	return CartProduct{
		ID:    p.ID.String(),
		Name:  p.Name,
		Price: p.Price,
		Image: p.MainImage(),
		Slug:  p.Slug,
	}
}
