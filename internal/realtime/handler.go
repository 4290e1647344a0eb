// Package realtime carries live connections: beacons and director consoles over
// websocket, and a read-only director event stream over SSE.
package realtime

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mcoot/zonehunt/internal/engine"
	"github.com/mcoot/zonehunt/internal/model"
	"github.com/mcoot/zonehunt/internal/services/session"
)

// Authorizer checks a join request's credentials before it reaches the session
type Authorizer interface {
	Authorize(ctx context.Context, username, password string) error
}

// Handler accepts connections and routes their inbound events into the engine
type Handler struct {
	hub         *Hub
	engine      *engine.Engine
	auth        Authorizer
	directorKey string
	logger      *slog.Logger
	upgrader    websocket.Upgrader
	newConnID   func() string
}

// NewHandler creates a connection handler. auth may be nil, in which case
// joins are never checked against stored credentials.
func NewHandler(hub *Hub, eng *engine.Engine, auth Authorizer, directorKey string, logger *slog.Logger) *Handler {
	return &Handler{
		hub:         hub,
		engine:      eng,
		auth:        auth,
		directorKey: directorKey,
		logger:      logger.With(slog.String("component", "realtime")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Beacons are native apps and consoles may be served from anywhere
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		newConnID: uuid.NewString,
	}
}

// ServeWS upgrades the request and serves one connection until it closes.
//
// Query parameters: playerId rebinds a returning player; director=1 with a
// matching key grants director capability.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	director := query.Get("director") == "1"
	if director && !h.CheckDirectorKey(query.Get("key")) {
		http.Error(w, "invalid director key", http.StatusUnauthorized)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	ctx := r.Context()
	client := NewClient(model.ConnID(h.newConnID()), director)
	h.hub.Register(client)
	go h.writePump(ws, client)

	h.greet(ctx, client, model.PlayerID(query.Get("playerId")))
	h.readPump(ctx, ws, client)

	h.hub.Unregister(client)
	h.engine.Post(func(s *session.Session) {
		s.Unbind(client.conn)
	})
}

// CheckDirectorKey reports whether key grants director capability.
// With no key configured every claim is honoured.
func (h *Handler) CheckDirectorKey(key string) bool {
	if h.directorKey == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(h.directorKey)) == 1
}

// greet binds a returning player and sends the new connection its first view
func (h *Handler) greet(ctx context.Context, client *Client, playerID model.PlayerID) {
	if client.director {
		h.sendDirectorView(ctx, client.conn)
	}
	if playerID == "" {
		return
	}

	err := h.engine.Do(ctx, func(s *session.Session) error {
		return s.BindConnection(playerID, client.conn)
	})
	if errors.Is(err, model.ErrUnknownPlayer) {
		h.logger.Info("unknown player on connect",
			slog.String("player_id", string(playerID)),
			slog.String("conn_id", string(client.conn)))
		h.hub.Send(client.conn, model.Event{
			Type:    model.EventGameReset,
			Payload: model.GameResetPayload{Reason: "unknown_player"},
		})
	} else if err != nil {
		h.logger.Warn("bind failed", slog.String("player_id", string(playerID)), slog.Any("error", err))
	}
}

func (h *Handler) sendDirectorView(ctx context.Context, conn model.ConnID) {
	err := h.engine.Do(ctx, func(s *session.Session) error {
		h.hub.Send(conn, model.Event{Type: model.EventStateUpdate, Payload: s.DirectorView()})
		return nil
	})
	if err != nil {
		h.logger.Warn("failed to send initial view", slog.String("conn_id", string(conn)), slog.Any("error", err))
	}
}
