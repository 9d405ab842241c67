package handler

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"sophia-orders/internal/model"
)

// HealthHandler handles GET /health requests.
type HealthHandler struct {
	aiEnabled bool
	logger    zerolog.Logger
}

// NewHealthHandler creates a new health handler. aiEnabled reports whether an
// LLM responder is configured, so operators can tell the two modes apart.
func NewHealthHandler(aiEnabled bool, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		aiEnabled: aiEnabled,
		logger:    logger.With().Str("handler", "health").Logger(),
	}
}

// Handle returns the service health status.
func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		AIEnabled: h.aiEnabled,
	})
}
