package model

// Message roles used in conversation history.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleFunction  = "function"
)

// MaxHistory is the number of conversation entries kept per session.
const MaxHistory = 20

// Cart maps a menu item ID to the desired quantity. Entries are always >= 1;
// the cart engine removes entries rather than storing zero or negative counts.
type Cart map[string]int

// Message is a single turn in the conversation history.
type Message struct {
	Role    string `json:"role"`
	Name    string `json:"name,omitempty"`
	Content string `json:"content"`
}

// Session is the per-conversation state bundle. Sessions are passed by value
// through the cart engine and dispatcher; only the session store holds the
// canonical copy.
type Session struct {
	Cart                Cart
	ConversationHistory []Message
	AllergyRestrictions []string
	DietaryPreferences  []string
}

// NewSession returns an empty session with an initialised cart.
func NewSession() Session {
	return Session{Cart: Cart{}}
}

// Clone returns a deep copy of the session so callers never alias shared state.
func (s Session) Clone() Session {
	out := Session{
		Cart:                make(Cart, len(s.Cart)),
		ConversationHistory: append([]Message(nil), s.ConversationHistory...),
		AllergyRestrictions: append([]string(nil), s.AllergyRestrictions...),
		DietaryPreferences:  append([]string(nil), s.DietaryPreferences...),
	}
	for id, qty := range s.Cart {
		out.Cart[id] = qty
	}
	return out
}

// TrimHistory drops the oldest entries so the history holds at most MaxHistory.
func (s *Session) TrimHistory() {
	if len(s.ConversationHistory) > MaxHistory {
		s.ConversationHistory = s.ConversationHistory[len(s.ConversationHistory)-MaxHistory:]
	}
}
