// Package assistant contains the text-generation collaborators that turn a
// customer message into a reply and an updated session: an OpenAI
// function-calling responder and a deterministic keyword-matching fallback.
package assistant

import (
	"context"

	"sophia-orders/internal/model"
)

// ApologyReply is returned whenever the upstream model fails or produces
// unparseable output. The session is left untouched in that case.
const ApologyReply = "I apologize, I'm having trouble processing that right now. Could you try again?"

// Responder produces a reply to a customer message and the resulting session.
// Implementations must not mutate the input session and must degrade to a
// fixed apology (returning the session unchanged) rather than failing.
type Responder interface {
	Respond(ctx context.Context, session model.Session, userMessage string) (string, model.Session)
}

// functionDef describes one callable operation in the OpenAI function-calling
// wire format.
type functionDef struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// functionDefs lists the five operations the model may invoke. The schemas
// mirror the dispatcher's argument records.
var functionDefs = []functionDef{
	{
		Name:        "add_to_cart",
		Description: "Add an item to the customer's cart. Use this when the customer wants to order something.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"item_id": map[string]interface{}{
					"type":        "string",
					"description": "The ID of the menu item to add",
				},
				"quantity": map[string]interface{}{
					"type":        "number",
					"description": "The quantity to add (default 1)",
					"default":     1,
				},
			},
			"required": []string{"item_id"},
		},
	},
	{
		Name:        "remove_from_cart",
		Description: "Remove an item from the customer's cart or reduce its quantity.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"item_id": map[string]interface{}{
					"type":        "string",
					"description": "The ID of the menu item to remove",
				},
				"quantity": map[string]interface{}{
					"type":        "number",
					"description": "The quantity to remove (default: all)",
					"default":     -1,
				},
			},
			"required": []string{"item_id"},
		},
	},
	{
		Name:        "clear_cart",
		Description: "Clear the entire cart.",
		Parameters: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	},
	{
		Name:        "search_menu",
		Description: "Search the menu for items matching criteria like allergens, dietary preferences, or price range.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"exclude_allergens": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Allergens to exclude from results",
				},
				"dietary_tags": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Dietary tags to filter by (e.g., vegan, vegetarian, gluten-free)",
				},
				"max_price": map[string]interface{}{
					"type":        "number",
					"description": "Maximum price for items",
				},
			},
		},
	},
	{
		Name:        "set_dietary_restrictions",
		Description: "Record customer's allergy or dietary restrictions for the session.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"allergens": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "List of allergens to avoid",
				},
				"dietary_prefs": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Dietary preferences like vegan, vegetarian, etc.",
				},
			},
		},
	},
}
