package cart

import (
	"math"

	"sophia-orders/internal/menu"
	"sophia-orders/internal/model"
)

// Format computes the wire-level cart summary from the cart and catalog.
// Non-positive quantities and IDs no longer present in the catalog are
// skipped. Each line total is rounded independently, the lines are summed,
// and the sum is rounded again. Items appear in catalog declaration order.
func Format(c model.Cart, catalog *menu.Catalog) model.CartSummary {
	summary := model.EmptyCartSummary()

	for _, item := range catalog.Items() {
		quantity := c[item.ID]
		if quantity <= 0 {
			continue
		}
		lineTotal := Round2(item.Price * float64(quantity))
		summary.Items = append(summary.Items, model.CartItem{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: quantity,
			Total:    lineTotal,
		})
		summary.Total += lineTotal
		summary.ItemCount += quantity
	}

	summary.Total = Round2(summary.Total)
	return summary
}

// Round2 rounds to 2 decimal places, half away from zero. Applied only at
// line-total and grand-total computation, never mid-calculation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
