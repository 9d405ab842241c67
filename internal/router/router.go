package router

import (
	"net/http"

	"sophia-orders/internal/handler"
	"sophia-orders/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	chatHandler *handler.ChatHandler,
	configHandler *handler.ConfigHandler,
	healthHandler *handler.HealthHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", healthHandler.Handle)
	mux.HandleFunc("/api/chat", chatHandler.Handle)
	mux.HandleFunc("/api/config/", configHandler.Handle)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
