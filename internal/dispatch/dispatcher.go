// Package dispatch executes named function calls against the cart engine and
// menu catalog. Both the LLM path and the keyword-matching path funnel their
// cart operations through here so the bookkeeping is identical.
package dispatch

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"sophia-orders/internal/cart"
	"sophia-orders/internal/menu"
	"sophia-orders/internal/model"
)

// The closed set of operation names callable by the assistant.
const (
	OpAddToCart             = "add_to_cart"
	OpRemoveFromCart        = "remove_from_cart"
	OpClearCart             = "clear_cart"
	OpSearchMenu            = "search_menu"
	OpSetDietaryRestriction = "set_dietary_restrictions"
)

// Result is the structured outcome of a function call, serialized verbatim
// into the function-result message. Operation-level failures are carried in
// the "error" key, never as transport errors.
type Result map[string]interface{}

// Err returns the operation-level error message, if any.
func (r Result) Err() (string, bool) {
	msg, ok := r["error"].(string)
	return msg, ok
}

type addToCartArgs struct {
	ItemID   string   `json:"item_id"`
	Quantity *float64 `json:"quantity"`
}

type removeFromCartArgs struct {
	ItemID   string   `json:"item_id"`
	Quantity *float64 `json:"quantity"`
}

type searchMenuArgs struct {
	ExcludeAllergens []string `json:"exclude_allergens"`
	DietaryTags      []string `json:"dietary_tags"`
	MaxPrice         *float64 `json:"max_price"`
}

type setDietaryArgs struct {
	Allergens    []string `json:"allergens"`
	DietaryPrefs []string `json:"dietary_prefs"`
}

// Dispatcher validates and executes function calls. It reads the catalog but
// never writes it, and always returns a brand-new session value.
type Dispatcher struct {
	catalog *menu.Catalog
	logger  zerolog.Logger
}

// New creates a dispatcher bound to a catalog.
func New(catalog *menu.Catalog, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		catalog: catalog,
		logger:  logger.With().Str("component", "dispatcher").Logger(),
	}
}

// Execute runs the named operation with the given JSON arguments against the
// session. The input session is never mutated; the returned session carries
// the effect of the operation, or equals the input when the operation failed.
func (d *Dispatcher) Execute(name string, args json.RawMessage, session model.Session) (Result, model.Session) {
	switch name {
	case OpAddToCart:
		return d.addToCart(args, session)
	case OpRemoveFromCart:
		return d.removeFromCart(args, session)
	case OpClearCart:
		return d.clearCart(session)
	case OpSearchMenu:
		return d.searchMenu(args, session)
	case OpSetDietaryRestriction:
		return d.setDietaryRestrictions(args, session)
	default:
		d.logger.Warn().Str("function", name).Msg("unknown function call")
		return errorResult(model.ErrUnknownFunction), session
	}
}

func (d *Dispatcher) addToCart(raw json.RawMessage, session model.Session) (Result, model.Session) {
	var args addToCartArgs
	if err := decodeArgs(raw, &args); err != nil {
		d.logger.Warn().Err(err).Str("function", OpAddToCart).Msg("malformed arguments")
		return errorResult(model.ErrItemNotFound), session
	}
	if args.ItemID == "" {
		return errorResult(model.ErrItemNotFound), session
	}

	quantity := 1
	if args.Quantity != nil {
		quantity = int(*args.Quantity)
	}

	updated := session.Clone()
	newCart, res, err := cart.Add(updated.Cart, d.catalog, args.ItemID, quantity)
	if err != nil {
		return errorResult(err), session
	}
	updated.Cart = newCart

	d.logger.Debug().
		Str("item_id", args.ItemID).
		Int("quantity", quantity).
		Int("new_total", res.NewTotal).
		Msg("item added to cart")

	return Result{
		"success":   true,
		"item":      res.Item,
		"quantity":  res.Quantity,
		"new_total": res.NewTotal,
	}, updated
}

func (d *Dispatcher) removeFromCart(raw json.RawMessage, session model.Session) (Result, model.Session) {
	var args removeFromCartArgs
	if err := decodeArgs(raw, &args); err != nil {
		d.logger.Warn().Err(err).Str("function", OpRemoveFromCart).Msg("malformed arguments")
		return errorResult(model.ErrItemNotInCart), session
	}
	if args.ItemID == "" {
		return errorResult(model.ErrItemNotInCart), session
	}

	quantity := cart.QuantityAll
	if args.Quantity != nil {
		quantity = int(*args.Quantity)
	}

	updated := session.Clone()
	newCart, res, err := cart.Remove(updated.Cart, d.catalog, args.ItemID, quantity)
	if err != nil {
		return errorResult(err), session
	}
	updated.Cart = newCart

	d.logger.Debug().
		Str("item_id", args.ItemID).
		Int("quantity", quantity).
		Msg("item removed from cart")

	return Result{
		"success": true,
		"item":    res.Item,
		"removed": true,
	}, updated
}

func (d *Dispatcher) clearCart(session model.Session) (Result, model.Session) {
	updated := session.Clone()
	updated.Cart = cart.Clear(updated.Cart)

	d.logger.Debug().Msg("cart cleared")

	return Result{
		"success": true,
		"message": "Cart cleared",
	}, updated
}

func (d *Dispatcher) searchMenu(raw json.RawMessage, session model.Session) (Result, model.Session) {
	var args searchMenuArgs
	if err := decodeArgs(raw, &args); err != nil {
		d.logger.Warn().Err(err).Str("function", OpSearchMenu).Msg("malformed arguments")
		args = searchMenuArgs{}
	}

	matches := d.catalog.Search(menu.SearchCriteria{
		ExcludeAllergens: args.ExcludeAllergens,
		RequiredTags:     args.DietaryTags,
		MaxPrice:         args.MaxPrice,
	})

	items := make([]map[string]interface{}, 0, len(matches))
	for _, item := range matches {
		items = append(items, map[string]interface{}{
			"id":          item.ID,
			"name":        item.Name,
			"price":       item.Price,
			"description": item.Description,
		})
	}

	return Result{
		"items": items,
		"count": len(items),
	}, session.Clone()
}

func (d *Dispatcher) setDietaryRestrictions(raw json.RawMessage, session model.Session) (Result, model.Session) {
	var args setDietaryArgs
	if err := decodeArgs(raw, &args); err != nil {
		d.logger.Warn().Err(err).Str("function", OpSetDietaryRestriction).Msg("malformed arguments")
		args = setDietaryArgs{}
	}

	updated := cart.SetRestrictions(session, args.Allergens, args.DietaryPrefs)

	d.logger.Debug().
		Strs("allergens", updated.AllergyRestrictions).
		Strs("dietary_prefs", updated.DietaryPreferences).
		Msg("dietary restrictions updated")

	return Result{
		"success":       true,
		"allergens":     updated.AllergyRestrictions,
		"dietary_prefs": updated.DietaryPreferences,
	}, updated
}

// decodeArgs decodes a function-call argument payload. Empty payloads decode
// to the zero value; upstream models sometimes send no arguments at all.
func decodeArgs(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func errorResult(err error) Result {
	return Result{"error": err.Error()}
}
