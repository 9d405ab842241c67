package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"sophia-orders/internal/assistant"
	"sophia-orders/internal/cart"
	"sophia-orders/internal/menu"
	"sophia-orders/internal/model"
	"sophia-orders/internal/session"
)

// ChatHandler handles POST /api/chat requests.
type ChatHandler struct {
	store     session.Store
	responder assistant.Responder
	catalog   *menu.Catalog
	logger    zerolog.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(store session.Store, responder assistant.Responder, catalog *menu.Catalog, logger zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		store:     store,
		responder: responder,
		catalog:   catalog,
		logger:    logger.With().Str("handler", "chat").Logger(),
	}
}

// Handle processes one customer message: retrieve-or-create the session, let
// the responder act on it, store the result, and return the reply with the
// freshly computed cart summary.
func (h *ChatHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", h.logger)
		return
	}

	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message must not be empty", h.logger)
		return
	}

	sess := h.store.Get(req.SessionID)
	reply, updated := h.responder.Respond(r.Context(), sess, req.Message)
	h.store.Put(req.SessionID, updated)

	h.logger.Debug().
		Str("session_id", req.SessionID).
		Int("cart_entries", len(updated.Cart)).
		Msg("chat message processed")

	writeJSON(w, http.StatusOK, model.ChatResponse{
		Reply:     reply,
		Cart:      cart.Format(updated.Cart, h.catalog),
		SessionID: req.SessionID,
	})
}
