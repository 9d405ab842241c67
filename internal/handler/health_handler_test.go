package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sophia-orders/internal/model"
)

func TestHealthHandler_Handle(t *testing.T) {
	tests := []struct {
		name      string
		aiEnabled bool
	}{
		{name: "AI enabled", aiEnabled: true},
		{name: "AI disabled", aiEnabled: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.aiEnabled, zerolog.Nop())

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()

			h.Handle(w, req)

			assert.Equal(t, http.StatusOK, w.Code)

			var resp model.HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "ok", resp.Status)
			assert.Equal(t, tt.aiEnabled, resp.AIEnabled)

			ts, err := time.Parse(time.RFC3339, resp.Timestamp)
			require.NoError(t, err)
			assert.WithinDuration(t, time.Now().UTC(), ts, time.Minute)
		})
	}
}

func TestHealthHandler_MethodNotAllowed(t *testing.T) {
	h := NewHealthHandler(true, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	w := httptest.NewRecorder()

	h.Handle(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
