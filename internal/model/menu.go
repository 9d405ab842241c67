package model

// MenuItem represents a single dish on the restaurant menu.
type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords,omitempty"`
	Allergens   []string `json:"allergens,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// MenuCategory groups menu items under a named section of the menu.
type MenuCategory struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Items       []MenuItem `json:"items"`
}

// RestaurantInfo holds the restaurant's public details.
type RestaurantInfo struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
	Tagline  string `json:"tagline"`
	Hours    string `json:"hours"`
}

// Prompts holds the canned assistant copy and the LLM system prompt.
type Prompts struct {
	WelcomeMessage string `json:"welcomeMessage"`
	SuggestMessage string `json:"suggestMessage"`
	SystemPrompt   string `json:"systemPrompt,omitempty"`
}

// RestaurantConfig is the full restaurant definition loaded at startup.
type RestaurantConfig struct {
	RestaurantInfo RestaurantInfo `json:"restaurantInfo"`
	Highlights     []string       `json:"highlights"`
	Categories     []MenuCategory `json:"categories"`
	Prompts        Prompts        `json:"prompts"`
}
