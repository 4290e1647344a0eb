package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/zonehunt/internal/api/request"
	"github.com/mcoot/zonehunt/internal/api/response"
	"github.com/mcoot/zonehunt/internal/engine"
	"github.com/mcoot/zonehunt/internal/model"
	"github.com/mcoot/zonehunt/internal/services/session"
)

// DirectorHandler exposes director commands over REST. Every command answers
// with the director view after it has been applied.
type DirectorHandler struct {
	engine *engine.Engine
}

// NewDirectorHandler creates a new director handler
func NewDirectorHandler(eng *engine.Engine) *DirectorHandler {
	return &DirectorHandler{engine: eng}
}

// State handles GET /api/v1/director/state
func (h *DirectorHandler) State(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(*session.Session) error { return nil })
}

// Start handles POST /api/v1/director/game/start
func (h *DirectorHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(s *session.Session) error {
		s.StartGame()
		return nil
	})
}

// Reset handles POST /api/v1/director/game/reset
func (h *DirectorHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(s *session.Session) error {
		s.ResetGame()
		return nil
	})
}

// SetZone handles PUT /api/v1/director/zone
func (h *DirectorHandler) SetZone(w http.ResponseWriter, r *http.Request) {
	var req request.ZoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid JSON body"))
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		WriteError(w, NewInvalidRequestError("latitude and longitude are required"))
		return
	}

	zone := model.Zone{Latitude: *req.Latitude, Longitude: *req.Longitude, Radius: req.Radius}
	h.run(w, r, func(s *session.Session) error {
		return s.UpdateZone(zone)
	})
}

// Message handles POST /api/v1/director/messages
func (h *DirectorHandler) Message(w http.ResponseWriter, r *http.Request) {
	var req request.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid JSON body"))
		return
	}

	h.run(w, r, func(s *session.Session) error {
		s.BroadcastMessage(req.Text)
		return nil
	})
}

// Kick handles DELETE /api/v1/director/players/{id}
func (h *DirectorHandler) Kick(w http.ResponseWriter, r *http.Request) {
	id := playerID(r)
	h.run(w, r, func(s *session.Session) error {
		if _, ok := s.Player(id); !ok {
			return model.ErrUnknownPlayer
		}
		s.Kick(id)
		return nil
	})
}

// Move handles PUT /api/v1/director/players/{id}/team
func (h *DirectorHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req request.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid JSON body"))
		return
	}

	id := playerID(r)
	h.run(w, r, func(s *session.Session) error {
		return s.MovePlayer(id, req.TeamID)
	})
}

// SetSeeker handles POST /api/v1/director/players/{id}/seeker
func (h *DirectorHandler) SetSeeker(w http.ResponseWriter, r *http.Request) {
	id := playerID(r)
	h.run(w, r, func(s *session.Session) error {
		return s.SetSeeker(id)
	})
}

// AutoPair handles POST /api/v1/director/teams/auto-pair
func (h *DirectorHandler) AutoPair(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(s *session.Session) error {
		s.AutoPair()
		return nil
	})
}

// Hint handles POST /api/v1/director/hints
func (h *DirectorHandler) Hint(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(s *session.Session) error {
		s.ForceHint()
		return nil
	})
}

// run applies fn on the engine and writes the resulting director view
func (h *DirectorHandler) run(w http.ResponseWriter, r *http.Request, fn func(*session.Session) error) {
	var view model.DirectorView
	err := h.engine.Do(r.Context(), func(s *session.Session) error {
		if err := fn(s); err != nil {
			return err
		}
		view = s.DirectorView()
		return nil
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, view)
}

func playerID(r *http.Request) model.PlayerID {
	return model.PlayerID(mux.Vars(r)["id"])
}
