package model

// CartItem is a single priced line in a cart summary.
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

// CartSummary is the wire-level view of a cart, recomputed on every request.
type CartSummary struct {
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"itemCount"`
}

// EmptyCartSummary returns a summary with a non-nil items slice so the JSON
// encoding is always an array, never null.
func EmptyCartSummary() CartSummary {
	return CartSummary{Items: []CartItem{}}
}
