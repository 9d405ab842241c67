package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sophia-orders/internal/menu"
	"sophia-orders/internal/model"
)

func newTestCatalog(t *testing.T) *menu.Catalog {
	t.Helper()
	catalog, err := menu.New(&model.RestaurantConfig{
		RestaurantInfo: model.RestaurantInfo{Name: "Woody's"},
		Categories: []model.MenuCategory{
			{
				ID:   "sides",
				Name: "Sides",
				Items: []model.MenuItem{
					{ID: "fries", Name: "Fries", Price: 2.50},
					{ID: "wings", Name: "BBQ Wings", Price: 4.95},
				},
			},
			{
				ID:   "burgers",
				Name: "Burgers",
				Items: []model.MenuItem{
					{ID: "hot-stuff", Name: "Hot Stuff", Price: 6.90},
				},
			},
		},
	})
	require.NoError(t, err)
	return catalog
}

func TestAdd(t *testing.T) {
	catalog := newTestCatalog(t)

	t.Run("New item", func(t *testing.T) {
		out, res, err := Add(model.Cart{}, catalog, "fries", 3)

		require.NoError(t, err)
		assert.Equal(t, model.Cart{"fries": 3}, out)
		assert.Equal(t, AddResult{Item: "Fries", Quantity: 3, NewTotal: 3}, res)
	})

	t.Run("Existing item accumulates", func(t *testing.T) {
		out, res, err := Add(model.Cart{"fries": 2}, catalog, "fries", 1)

		require.NoError(t, err)
		assert.Equal(t, 3, out["fries"])
		assert.Equal(t, 3, res.NewTotal)
	})

	t.Run("Unknown item", func(t *testing.T) {
		in := model.Cart{"fries": 1}
		out, _, err := Add(in, catalog, "milkshake", 1)

		assert.ErrorIs(t, err, model.ErrItemNotFound)
		assert.Equal(t, in, out)
	})

	t.Run("Negative quantity acts as partial removal", func(t *testing.T) {
		out, _, err := Add(model.Cart{"fries": 3}, catalog, "fries", -1)

		require.NoError(t, err)
		assert.Equal(t, 2, out["fries"])
	})

	t.Run("Input cart is not mutated", func(t *testing.T) {
		in := model.Cart{"fries": 1}
		_, _, err := Add(in, catalog, "fries", 5)

		require.NoError(t, err)
		assert.Equal(t, model.Cart{"fries": 1}, in)
	})
}

func TestRemove(t *testing.T) {
	catalog := newTestCatalog(t)

	t.Run("Partial removal keeps remainder", func(t *testing.T) {
		out, res, err := Remove(model.Cart{"fries": 3}, catalog, "fries", 1)

		require.NoError(t, err)
		assert.Equal(t, model.Cart{"fries": 2}, out)
		assert.Equal(t, "Fries", res.Item)
	})

	t.Run("Removing full quantity deletes the entry", func(t *testing.T) {
		out, _, err := Remove(model.Cart{"fries": 3}, catalog, "fries", 3)

		require.NoError(t, err)
		assert.NotContains(t, out, "fries")
	})

	t.Run("Removing more than present clamps and deletes", func(t *testing.T) {
		out, _, err := Remove(model.Cart{"fries": 3}, catalog, "fries", 5)

		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("QuantityAll always deletes", func(t *testing.T) {
		for _, qty := range []int{1, 3, 7} {
			out, _, err := Remove(model.Cart{"fries": qty}, catalog, "fries", QuantityAll)

			require.NoError(t, err)
			assert.NotContains(t, out, "fries")
		}
	})

	t.Run("Item not in cart", func(t *testing.T) {
		in := model.Cart{"wings": 1}
		out, _, err := Remove(in, catalog, "fries", 1)

		assert.ErrorIs(t, err, model.ErrItemNotInCart)
		assert.Equal(t, in, out)
	})

	t.Run("Unknown item", func(t *testing.T) {
		_, _, err := Remove(model.Cart{"fries": 1}, catalog, "milkshake", 1)

		assert.ErrorIs(t, err, model.ErrItemNotInCart)
	})

	t.Run("Input cart is not mutated", func(t *testing.T) {
		in := model.Cart{"fries": 3}
		_, _, err := Remove(in, catalog, "fries", 1)

		require.NoError(t, err)
		assert.Equal(t, model.Cart{"fries": 3}, in)
	})
}

func TestAddThenRemove_RoundTrip(t *testing.T) {
	catalog := newTestCatalog(t)
	start := model.Cart{"wings": 2}

	added, _, err := Add(start, catalog, "fries", 4)
	require.NoError(t, err)

	back, _, err := Remove(added, catalog, "fries", 4)
	require.NoError(t, err)

	assert.Equal(t, start, back)
}

func TestClear(t *testing.T) {
	out := Clear(model.Cart{"fries": 3, "wings": 1})

	assert.Empty(t, out)
	assert.NotNil(t, out)
}

func TestSetRestrictions(t *testing.T) {
	sess := model.NewSession()
	sess.AllergyRestrictions = []string{"gluten"}
	sess.DietaryPreferences = []string{"vegetarian"}

	updated := SetRestrictions(sess, []string{"dairy", "egg"}, nil)

	// Replaces, never merges.
	assert.Equal(t, []string{"dairy", "egg"}, updated.AllergyRestrictions)
	assert.Empty(t, updated.DietaryPreferences)
	assert.NotNil(t, updated.DietaryPreferences)

	// Input session untouched.
	assert.Equal(t, []string{"gluten"}, sess.AllergyRestrictions)
	assert.Equal(t, []string{"vegetarian"}, sess.DietaryPreferences)
}
