package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"sophia-orders/internal/cart"
	"sophia-orders/internal/dispatch"
	"sophia-orders/internal/menu"
	"sophia-orders/internal/model"
)

var (
	removalIntent  = regexp.MustCompile(`remove|delete|without|minus|take off`)
	additionIntent = regexp.MustCompile(`add|order|want|get|have|take|need`)
	literalNumber  = regexp.MustCompile(`(\d+)`)
)

// numberWords is scanned in declaration order; the first word found in the
// message wins.
var numberWords = []struct {
	word  string
	value int
}{
	{"one", 1}, {"two", 2}, {"three", 3}, {"four", 4}, {"five", 5},
	{"six", 6}, {"seven", 7}, {"eight", 8}, {"nine", 9}, {"ten", 10},
}

// KeywordResponder is the zero-cost fallback when no LLM is configured. It
// matches menu keywords literally against the message and routes cart
// mutations through the dispatcher, so bookkeeping is identical to the LLM
// path.
type KeywordResponder struct {
	catalog    *menu.Catalog
	dispatcher *dispatch.Dispatcher
	logger     zerolog.Logger
}

// NewKeywordResponder creates the deterministic keyword-matching responder.
func NewKeywordResponder(catalog *menu.Catalog, dispatcher *dispatch.Dispatcher, logger zerolog.Logger) *KeywordResponder {
	return &KeywordResponder{
		catalog:    catalog,
		dispatcher: dispatcher,
		logger:     logger.With().Str("component", "keyword-responder").Logger(),
	}
}

// Respond checks the message against a fixed priority order: clear-cart
// phrases, menu keyword with removal then addition intent, recommendation
// requests, cart summary requests, thanks, greetings, then a generic help
// prompt. Never fails.
func (r *KeywordResponder) Respond(_ context.Context, session model.Session, userMessage string) (string, model.Session) {
	lower := strings.ToLower(userMessage)

	reply, updated := r.process(session, lower)

	updated.ConversationHistory = append(updated.ConversationHistory,
		model.Message{Role: model.RoleUser, Content: userMessage},
		model.Message{Role: model.RoleAssistant, Content: reply},
	)
	updated.TrimHistory()
	return reply, updated
}

func (r *KeywordResponder) process(session model.Session, lower string) (string, model.Session) {
	if strings.Contains(lower, "clear") && (strings.Contains(lower, "cart") || strings.Contains(lower, "order")) {
		_, updated := r.dispatcher.Execute(dispatch.OpClearCart, nil, session)
		return "No problem — I've cleared your cart. Fancy starting a fresh order?", updated
	}

	if itemID, ok := r.catalog.MatchKeyword(lower); ok {
		if removalIntent.MatchString(lower) {
			return r.handleRemoval(session, itemID, lower)
		}
		if additionIntent.MatchString(lower) {
			return r.handleAddition(session, itemID, lower)
		}
	}

	if strings.Contains(lower, "recommend") || strings.Contains(lower, "suggest") {
		return fmt.Sprintf("%s Would you like me to add one of those to your cart?",
			r.catalog.Config().Prompts.SuggestMessage), session.Clone()
	}

	if strings.Contains(lower, "cart") || strings.Contains(lower, "order") || strings.Contains(lower, "total") {
		return r.summarizeCart(session)
	}

	if strings.Contains(lower, "thanks") || strings.Contains(lower, "thank you") {
		return "You're very welcome! If you need anything else, just let me know.", session.Clone()
	}

	if strings.Contains(lower, "hi") || strings.Contains(lower, "hello") || strings.Contains(lower, "hey") {
		return fmt.Sprintf("%s Ask me to add any dish by name and I'll pop it in your cart.",
			r.catalog.Config().Prompts.WelcomeMessage), session.Clone()
	}

	return `I can help you build an order from our menu. Tap on an item or ask me to add a dish like "Add the Hot Stuff burger".`,
		session.Clone()
}

func (r *KeywordResponder) handleAddition(session model.Session, itemID, lower string) (string, model.Session) {
	quantity := detectQuantity(lower)
	result, updated := r.dispatcher.Execute(dispatch.OpAddToCart, mustArgs(map[string]interface{}{
		"item_id":  itemID,
		"quantity": quantity,
	}), session)

	if msg, failed := result.Err(); failed {
		// The item came from the keyword index, so this only fires if the
		// catalog and index disagree.
		r.logger.Error().Str("item_id", itemID).Str("error", msg).Msg("keyword addition failed")
		return ApologyReply, session
	}

	return fmt.Sprintf("Great choice! I've added %d x %s to your cart. Anything else to go with it?",
		quantity, result["item"]), updated
}

func (r *KeywordResponder) handleRemoval(session model.Session, itemID, lower string) (string, model.Session) {
	if session.Cart[itemID] <= 0 {
		item, _ := r.catalog.Lookup(itemID)
		return fmt.Sprintf("It looks like there aren't any %s in your cart yet. Want me to add one?", item.Name),
			session.Clone()
	}

	quantity := detectQuantity(lower)
	result, updated := r.dispatcher.Execute(dispatch.OpRemoveFromCart, mustArgs(map[string]interface{}{
		"item_id":  itemID,
		"quantity": quantity,
	}), session)

	if msg, failed := result.Err(); failed {
		r.logger.Error().Str("item_id", itemID).Str("error", msg).Msg("keyword removal failed")
		return ApologyReply, session
	}

	return fmt.Sprintf("All sorted — I've removed %d x %s. Anything else you'd like to adjust?",
		quantity, result["item"]), updated
}

func (r *KeywordResponder) summarizeCart(session model.Session) (string, model.Session) {
	summary := cart.Format(session.Cart, r.catalog)

	if len(summary.Items) == 0 {
		return "Your cart is empty right now. Add something tasty and I'll keep track for you!", session.Clone()
	}

	lines := make([]string, len(summary.Items))
	for i, item := range summary.Items {
		lines[i] = fmt.Sprintf("%d x %s", item.Quantity, item.Name)
	}

	return fmt.Sprintf("You currently have %s for a total of £%.2f. Ready to checkout or add more?",
		strings.Join(lines, ", "), summary.Total), session.Clone()
}

// detectQuantity extracts a quantity from the message: a literal number
// first, then the number words, then "couple" (2), defaulting to 1.
func detectQuantity(lower string) int {
	if match := literalNumber.FindString(lower); match != "" {
		if parsed, err := strconv.Atoi(match); err == nil && parsed > 0 {
			return parsed
		}
	}

	for _, nw := range numberWords {
		if strings.Contains(lower, nw.word) {
			return nw.value
		}
	}

	if strings.Contains(lower, "couple") {
		return 2
	}

	return 1
}

func mustArgs(args map[string]interface{}) json.RawMessage {
	raw, err := json.Marshal(args)
	if err != nil {
		panic(err)
	}
	return raw
}
