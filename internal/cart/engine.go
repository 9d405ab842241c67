// Package cart implements the session cart engine: pure functions that take a
// cart, validate the operation against the menu catalog, and return a new
// cart. Inputs are never mutated.
package cart

import (
	"sophia-orders/internal/menu"
	"sophia-orders/internal/model"
)

// QuantityAll is the sentinel quantity meaning "remove the entire entry".
const QuantityAll = -1

// AddResult describes a successful Add.
type AddResult struct {
	Item     string
	Quantity int
	NewTotal int
}

// RemoveResult describes a successful Remove.
type RemoveResult struct {
	Item string
}

// Add puts quantity units of itemID into the cart. The item must exist in the
// catalog. Negative and zero quantities are accepted as given, so a negative
// add behaves as a partial removal.
func Add(c model.Cart, catalog *menu.Catalog, itemID string, quantity int) (model.Cart, AddResult, error) {
	item, ok := catalog.Lookup(itemID)
	if !ok {
		return c, AddResult{}, model.ErrItemNotFound
	}

	out := clone(c)
	out[itemID] += quantity
	return out, AddResult{
		Item:     item.Name,
		Quantity: quantity,
		NewTotal: out[itemID],
	}, nil
}

// Remove takes quantity units of itemID out of the cart. QuantityAll (or any
// quantity at or above the current count) deletes the entry entirely; entries
// are never left at zero or below. Removing an item that is not in the cart
// fails with ErrItemNotInCart.
func Remove(c model.Cart, catalog *menu.Catalog, itemID string, quantity int) (model.Cart, RemoveResult, error) {
	item, ok := catalog.Lookup(itemID)
	if !ok || c[itemID] <= 0 {
		return c, RemoveResult{}, model.ErrItemNotInCart
	}

	out := clone(c)
	if quantity == QuantityAll || quantity >= out[itemID] {
		delete(out, itemID)
	} else {
		out[itemID] -= quantity
	}
	return out, RemoveResult{Item: item.Name}, nil
}

// Clear returns an empty cart. It always succeeds.
func Clear(model.Cart) model.Cart {
	return model.Cart{}
}

// SetRestrictions replaces (never merges) the session's allergy and dietary
// restriction sets.
func SetRestrictions(s model.Session, allergens, dietaryPrefs []string) model.Session {
	out := s.Clone()
	out.AllergyRestrictions = append([]string{}, allergens...)
	out.DietaryPreferences = append([]string{}, dietaryPrefs...)
	return out
}

func clone(c model.Cart) model.Cart {
	out := make(model.Cart, len(c))
	for id, qty := range c {
		out[id] = qty
	}
	return out
}
