package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"sophia-orders/internal/menu"
	"sophia-orders/internal/model"
)

// RestaurantID is the only restaurant this deployment serves.
const RestaurantID = "woodys"

// ConfigHandler handles GET /api/config/{restaurantId} requests.
type ConfigHandler struct {
	catalog *menu.Catalog
	logger  zerolog.Logger
}

// NewConfigHandler creates a new restaurant config handler.
func NewConfigHandler(catalog *menu.Catalog, logger zerolog.Logger) *ConfigHandler {
	return &ConfigHandler{
		catalog: catalog,
		logger:  logger.With().Str("handler", "config").Logger(),
	}
}

// Handle returns the frontend-facing restaurant config. Only the configured
// restaurant ID is recognised.
func (h *ConfigHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	// Extract restaurant ID from path
	// Expecting path: /api/config/{restaurantId}
	// Simple extraction without routing library
	path := r.URL.Path
	if len(path) <= len("/api/config/") {
		writeError(w, http.StatusNotFound, model.ErrRestaurantNotFound.Message, h.logger)
		return
	}
	restaurantID := path[len("/api/config/"):]

	if restaurantID != RestaurantID {
		writeError(w, http.StatusNotFound, model.ErrRestaurantNotFound.Message, h.logger)
		return
	}

	cfg := h.catalog.Config()

	categories := make([]model.ConfigCategory, 0, len(cfg.Categories))
	for _, cat := range cfg.Categories {
		items := make([]model.ConfigItem, 0, len(cat.Items))
		for _, item := range cat.Items {
			items = append(items, model.ConfigItem{
				ID:          item.ID,
				Name:        item.Name,
				Price:       item.Price,
				Description: item.Description,
				Allergens:   orEmpty(item.Allergens),
				Tags:        orEmpty(item.Tags),
			})
		}
		categories = append(categories, model.ConfigCategory{
			ID:          cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
			Items:       items,
		})
	}

	writeJSON(w, http.StatusOK, model.ConfigResponse{
		RestaurantInfo: cfg.RestaurantInfo,
		Highlights:     cfg.Highlights,
		Categories:     categories,
		Prompts: model.ConfigPrompts{
			WelcomeMessage: cfg.Prompts.WelcomeMessage,
			SuggestMessage: cfg.Prompts.SuggestMessage,
		},
	})
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
