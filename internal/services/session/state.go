package session

import (
	"log/slog"
	"strings"

	"github.com/mcoot/zonehunt/internal/geo"
	"github.com/mcoot/zonehunt/internal/model"
)

// StartGame moves LOBBY -> IN_PROGRESS. It is a no-op outside the lobby or with
// an empty roster, and reports whether the transition happened.
func (s *Session) StartGame() bool {
	if s.phase != model.PhaseLobby || len(s.order) == 0 {
		return false
	}

	s.phase = model.PhaseInProgress
	s.teamCount = s.countTeams()
	s.scheduleHint()

	s.logger.Info("game started",
		slog.Int("players", len(s.order)),
		slog.Int("teams", s.teamCount))

	s.publisher.SendAll(model.Event{Type: model.EventGameStarted, Payload: struct{}{}})
	s.Broadcast()
	return true
}

// ResetGame returns to the lobby from any phase. Per-round state is cleared for
// every player; under ResetClearRoster the roster itself is emptied and every
// bound player is told to discard its identity. Calling it twice is the same as
// calling it once.
func (s *Session) ResetGame() {
	s.cancelHint()
	s.phase = model.PhaseLobby
	s.teamCount = 0

	for _, p := range s.roster() {
		p.ClearRoundState()
	}

	if s.cfg.ResetPolicy == model.ResetClearRoster {
		for _, p := range s.roster() {
			s.send(p, model.EventGameReset, model.GameResetPayload{Reason: "reset"})
			s.remove(p)
		}
	}

	s.logger.Info("game reset",
		slog.String("policy", string(s.cfg.ResetPolicy)),
		slog.Int("players", len(s.order)))

	s.Broadcast()
}

// UpdateZone replaces the zone. Violation state is re-evaluated on the next tick.
func (s *Session) UpdateZone(zone model.Zone) error {
	if !geo.ValidZone(zone) {
		return model.ErrInvalidZone
	}
	s.zone = zone
	s.logger.Info("zone updated",
		slog.Float64("latitude", zone.Latitude),
		slog.Float64("longitude", zone.Longitude),
		slog.Float64("radius", zone.Radius))

	s.Broadcast()
	return nil
}

// BroadcastMessage sends an informational banner to every connection
func (s *Session) BroadcastMessage(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	s.publisher.SendAll(model.Event{
		Type:    model.EventGameEvent,
		Payload: model.GameEventPayload{Text: text},
	})
}
