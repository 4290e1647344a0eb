package handler

import (
	"net/http"

	"github.com/mcoot/zonehunt/internal/api/response"
	"github.com/mcoot/zonehunt/internal/engine"
	"github.com/mcoot/zonehunt/internal/services/session"
)

// HealthHandler reports liveness of the server and its engine
type HealthHandler struct {
	engine *engine.Engine
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(eng *engine.Engine) *HealthHandler {
	return &HealthHandler{engine: eng}
}

// Get handles GET /api/v1/health
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	health := response.Health{Status: "ok"}
	err := h.engine.Do(r.Context(), func(s *session.Session) error {
		health.Phase = s.Phase()
		health.Players = s.PlayerCount()
		return nil
	})
	if err != nil {
		response.JSON(w, http.StatusServiceUnavailable, response.Health{Status: "unavailable"})
		return
	}

	response.JSON(w, http.StatusOK, health)
}
