package realtime

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mcoot/zonehunt/internal/model"
	"github.com/mcoot/zonehunt/internal/services/session"
)

// directorOnly lists inbound events that need director capability
var directorOnly = map[model.EventType]bool{
	model.EventStartGame:        true,
	model.EventResetGame:        true,
	model.EventUpdateZone:       true,
	model.EventBroadcastMessage: true,
	model.EventKickPlayer:       true,
	model.EventMovePlayer:       true,
	model.EventSetSeeker:        true,
	model.EventAutoPair:         true,
	model.EventForceHint:        true,
}

// rosterOnly lists inbound events a director connection may not send
var rosterOnly = map[model.EventType]bool{
	model.EventJoin:           true,
	model.EventUpdateLocation: true,
	model.EventLeave:          true,
}

// dispatch routes one inbound event. Invalid payloads and unauthorised
// director commands are ignored.
func (h *Handler) dispatch(ctx context.Context, client *Client, env Envelope) {
	logger := h.logger.With(
		slog.String("conn_id", string(client.conn)),
		slog.String("event", string(env.Event)))

	if directorOnly[env.Event] && !client.director {
		logger.Debug("ignoring command", slog.Any("error", model.ErrNotDirector))
		return
	}
	if rosterOnly[env.Event] && client.director {
		logger.Debug("ignoring roster event from director")
		return
	}

	var err error
	switch env.Event {
	case model.EventJoin:
		h.handleJoin(ctx, client, env)
		return

	case model.EventUpdateLocation:
		var req model.LocationRequest
		var loc model.Coordinates
		if err = DecodePayload(env, &req); err == nil {
			loc, err = req.Coordinates()
		}
		if err == nil {
			err = h.asPlayer(ctx, client, func(s *session.Session, id model.PlayerID) error {
				return s.UpdateLocation(id, loc)
			})
		}

	case model.EventLeave:
		err = h.asPlayer(ctx, client, func(s *session.Session, id model.PlayerID) error {
			return s.Leave(id)
		})

	case model.EventStartGame:
		err = h.do(ctx, func(s *session.Session) error {
			s.StartGame()
			return nil
		})

	case model.EventResetGame:
		err = h.do(ctx, func(s *session.Session) error {
			s.ResetGame()
			return nil
		})

	case model.EventUpdateZone:
		var req model.ZoneRequest
		var zone model.Zone
		if err = DecodePayload(env, &req); err == nil {
			zone, err = req.Zone()
		}
		if err == nil {
			err = h.do(ctx, func(s *session.Session) error {
				return s.UpdateZone(zone)
			})
		}

	case model.EventBroadcastMessage:
		var req model.MessageRequest
		if err = DecodePayload(env, &req); err == nil {
			err = h.do(ctx, func(s *session.Session) error {
				s.BroadcastMessage(req.Text)
				return nil
			})
		}

	case model.EventKickPlayer:
		var req model.PlayerRequest
		if err = DecodePayload(env, &req); err == nil {
			err = h.do(ctx, func(s *session.Session) error {
				s.Kick(req.PlayerID)
				return nil
			})
		}

	case model.EventMovePlayer:
		var req model.MovePlayerRequest
		if err = DecodePayload(env, &req); err == nil {
			err = h.do(ctx, func(s *session.Session) error {
				return s.MovePlayer(req.PlayerID, req.NewTeamID)
			})
		}

	case model.EventSetSeeker:
		var req model.PlayerRequest
		if err = DecodePayload(env, &req); err == nil {
			err = h.do(ctx, func(s *session.Session) error {
				return s.SetSeeker(req.PlayerID)
			})
		}

	case model.EventAutoPair:
		err = h.do(ctx, func(s *session.Session) error {
			s.AutoPair()
			return nil
		})

	case model.EventForceHint:
		err = h.do(ctx, func(s *session.Session) error {
			s.ForceHint()
			return nil
		})

	default:
		logger.Debug("ignoring unknown event")
		return
	}

	if err != nil {
		logger.Debug("inbound event rejected", slog.Any("error", err))
	}
}

// handleJoin checks credentials outside the engine, then registers the player
func (h *Handler) handleJoin(ctx context.Context, client *Client, env Envelope) {
	var req model.JoinRequest
	if err := DecodePayload(env, &req); err != nil {
		h.joinResult(client, model.JoinResultPayload{Success: false, Message: "malformed join request"})
		return
	}

	if h.auth != nil {
		if err := h.auth.Authorize(ctx, req.Name, req.Password); err != nil {
			h.joinResult(client, model.JoinResultPayload{Success: false, Message: err.Error()})
			return
		}
	}

	var id model.PlayerID
	err := h.engine.Do(ctx, func(s *session.Session) error {
		var err error
		id, err = s.Join(req.Name, client.conn)
		if err != nil {
			return err
		}
		// queued on the engine goroutine so it stays ordered with the join broadcast
		h.joinResult(client, model.JoinResultPayload{Success: true, PlayerID: id})
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrEngineStopped) || errors.Is(err, context.Canceled) {
			return
		}
		h.joinResult(client, model.JoinResultPayload{Success: false, Message: err.Error()})
	}
}

func (h *Handler) joinResult(client *Client, payload model.JoinResultPayload) {
	h.hub.Send(client.conn, model.Event{Type: model.EventJoinResult, Payload: payload})
}

// asPlayer runs fn for the player bound to client's connection
func (h *Handler) asPlayer(ctx context.Context, client *Client, fn func(*session.Session, model.PlayerID) error) error {
	return h.engine.Do(ctx, func(s *session.Session) error {
		id, ok := s.PlayerIDForConn(client.conn)
		if !ok {
			return model.ErrUnknownPlayer
		}
		return fn(s, id)
	})
}

func (h *Handler) do(ctx context.Context, fn func(*session.Session) error) error {
	return h.engine.Do(ctx, fn)
}
