package dispatch

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sophia-orders/internal/menu"
	"sophia-orders/internal/model"
)

func newTestDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	catalog, err := menu.New(&model.RestaurantConfig{
		RestaurantInfo: model.RestaurantInfo{Name: "Woody's"},
		Categories: []model.MenuCategory{
			{
				ID:   "sides",
				Name: "Sides",
				Items: []model.MenuItem{
					{ID: "fries", Name: "Fries", Price: 2.50, Tags: []string{"vegan"}},
					{ID: "wings", Name: "BBQ Wings", Price: 4.95, Allergens: []string{"mustard (bbq sauce)"}},
				},
			},
		},
	})
	require.NoError(t, err)
	return New(catalog, zerolog.Nop())
}

func args(t *testing.T, v map[string]interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestDispatcher_UnknownFunction(t *testing.T) {
	d := newTestDispatcher(t)
	sess := model.NewSession()
	sess.Cart["fries"] = 2

	result, updated := d.Execute("teleport_order", nil, sess)

	msg, failed := result.Err()
	assert.True(t, failed)
	assert.Equal(t, "Unknown function", msg)
	assert.Equal(t, sess, updated)
}

func TestDispatcher_AddToCart(t *testing.T) {
	d := newTestDispatcher(t)

	t.Run("Explicit quantity", func(t *testing.T) {
		result, updated := d.Execute(OpAddToCart, args(t, map[string]interface{}{
			"item_id": "fries", "quantity": 3,
		}), model.NewSession())

		assert.Equal(t, true, result["success"])
		assert.Equal(t, "Fries", result["item"])
		assert.Equal(t, 3, result["quantity"])
		assert.Equal(t, 3, result["new_total"])
		assert.Equal(t, 3, updated.Cart["fries"])
	})

	t.Run("Quantity defaults to one", func(t *testing.T) {
		result, updated := d.Execute(OpAddToCart, args(t, map[string]interface{}{
			"item_id": "fries",
		}), model.NewSession())

		assert.Equal(t, 1, result["quantity"])
		assert.Equal(t, 1, updated.Cart["fries"])
	})

	t.Run("Unknown item", func(t *testing.T) {
		sess := model.NewSession()
		result, updated := d.Execute(OpAddToCart, args(t, map[string]interface{}{
			"item_id": "milkshake",
		}), sess)

		msg, failed := result.Err()
		assert.True(t, failed)
		assert.Equal(t, "Item not found", msg)
		assert.Equal(t, sess, updated)
	})

	t.Run("Missing item_id", func(t *testing.T) {
		result, _ := d.Execute(OpAddToCart, args(t, map[string]interface{}{}), model.NewSession())

		_, failed := result.Err()
		assert.True(t, failed)
	})

	t.Run("Malformed arguments", func(t *testing.T) {
		sess := model.NewSession()
		result, updated := d.Execute(OpAddToCart, json.RawMessage(`{"item_id":`), sess)

		_, failed := result.Err()
		assert.True(t, failed)
		assert.Equal(t, sess, updated)
	})

	t.Run("Input session is not mutated", func(t *testing.T) {
		sess := model.NewSession()
		sess.Cart["fries"] = 1

		_, updated := d.Execute(OpAddToCart, args(t, map[string]interface{}{
			"item_id": "fries", "quantity": 2,
		}), sess)

		assert.Equal(t, 1, sess.Cart["fries"])
		assert.Equal(t, 3, updated.Cart["fries"])
	})
}

func TestDispatcher_RemoveFromCart(t *testing.T) {
	d := newTestDispatcher(t)

	t.Run("Quantity defaults to all", func(t *testing.T) {
		sess := model.NewSession()
		sess.Cart["fries"] = 5

		result, updated := d.Execute(OpRemoveFromCart, args(t, map[string]interface{}{
			"item_id": "fries",
		}), sess)

		assert.Equal(t, true, result["success"])
		assert.Equal(t, true, result["removed"])
		assert.NotContains(t, updated.Cart, "fries")
	})

	t.Run("Partial removal", func(t *testing.T) {
		sess := model.NewSession()
		sess.Cart["fries"] = 5

		_, updated := d.Execute(OpRemoveFromCart, args(t, map[string]interface{}{
			"item_id": "fries", "quantity": 2,
		}), sess)

		assert.Equal(t, 3, updated.Cart["fries"])
	})

	t.Run("Item not in cart", func(t *testing.T) {
		sess := model.NewSession()
		result, updated := d.Execute(OpRemoveFromCart, args(t, map[string]interface{}{
			"item_id": "fries",
		}), sess)

		msg, failed := result.Err()
		assert.True(t, failed)
		assert.Equal(t, "Item not in cart", msg)
		assert.Equal(t, sess, updated)
	})
}

func TestDispatcher_ClearCart(t *testing.T) {
	d := newTestDispatcher(t)
	sess := model.NewSession()
	sess.Cart["fries"] = 2
	sess.Cart["wings"] = 1

	result, updated := d.Execute(OpClearCart, nil, sess)

	assert.Equal(t, true, result["success"])
	assert.Equal(t, "Cart cleared", result["message"])
	assert.Empty(t, updated.Cart)
	assert.Equal(t, 2, sess.Cart["fries"])
}

func TestDispatcher_SearchMenu(t *testing.T) {
	d := newTestDispatcher(t)

	t.Run("No criteria returns everything", func(t *testing.T) {
		result, _ := d.Execute(OpSearchMenu, nil, model.NewSession())

		assert.Equal(t, 2, result["count"])
	})

	t.Run("Criteria filter", func(t *testing.T) {
		result, _ := d.Execute(OpSearchMenu, args(t, map[string]interface{}{
			"exclude_allergens": []string{"mustard"},
		}), model.NewSession())

		assert.Equal(t, 1, result["count"])
		items, ok := result["items"].([]map[string]interface{})
		require.True(t, ok)
		require.Len(t, items, 1)
		assert.Equal(t, "fries", items[0]["id"])
	})

	t.Run("Session passes through unchanged", func(t *testing.T) {
		sess := model.NewSession()
		sess.Cart["fries"] = 2

		_, updated := d.Execute(OpSearchMenu, nil, sess)

		assert.Equal(t, sess, updated)
	})
}

func TestDispatcher_SetDietaryRestrictions(t *testing.T) {
	d := newTestDispatcher(t)
	sess := model.NewSession()
	sess.AllergyRestrictions = []string{"nuts"}

	result, updated := d.Execute(OpSetDietaryRestriction, args(t, map[string]interface{}{
		"allergens":     []string{"gluten", "dairy"},
		"dietary_prefs": []string{"vegetarian"},
	}), sess)

	assert.Equal(t, true, result["success"])
	assert.Equal(t, []string{"gluten", "dairy"}, updated.AllergyRestrictions)
	assert.Equal(t, []string{"vegetarian"}, updated.DietaryPreferences)
	// Replaced, not merged.
	assert.NotContains(t, updated.AllergyRestrictions, "nuts")
	// Input untouched.
	assert.Equal(t, []string{"nuts"}, sess.AllergyRestrictions)
}
