package model

// ChatRequest is the request payload for POST /api/chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

// ChatResponse is the response payload for POST /api/chat.
type ChatResponse struct {
	Reply     string      `json:"reply"`
	Cart      CartSummary `json:"cart"`
	SessionID string      `json:"sessionId"`
}

// HealthResponse is the response payload for GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	AIEnabled bool   `json:"ai_enabled"`
}

// ConfigResponse is the response payload for GET /api/config/{restaurantId}.
type ConfigResponse struct {
	RestaurantInfo RestaurantInfo   `json:"restaurantInfo"`
	Highlights     []string         `json:"highlights"`
	Categories     []ConfigCategory `json:"categories"`
	Prompts        ConfigPrompts    `json:"prompts"`
}

// ConfigCategory is a category summary exposed to the frontend.
type ConfigCategory struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Items       []ConfigItem `json:"items"`
}

// ConfigItem is an item summary exposed to the frontend.
type ConfigItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Allergens   []string `json:"allergens"`
	Tags        []string `json:"tags"`
}

// ConfigPrompts is the prompt copy exposed to the frontend. The LLM system
// prompt is deliberately omitted.
type ConfigPrompts struct {
	WelcomeMessage string `json:"welcomeMessage"`
	SuggestMessage string `json:"suggestMessage"`
}
