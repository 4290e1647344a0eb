package session

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/mcoot/zonehunt/internal/geo"
	"github.com/mcoot/zonehunt/internal/model"
)

// Join adds a new player bound to conn and returns its durable identifier.
// A connection that is already bound gets its existing identifier back.
func (s *Session) Join(name string, conn model.ConnID) (model.PlayerID, error) {
	if id, ok := s.conns[conn]; ok {
		return id, nil
	}
	if s.phase != model.PhaseLobby {
		return "", model.ErrPhaseNotLobby
	}

	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > model.MaxDisplayNameLength {
		return "", model.ErrInvalidName
	}
	if s.nameTaken(name) {
		return "", fmt.Errorf("%w: %s", model.ErrNameTaken, name)
	}

	player := &model.Player{
		ID:          model.PlayerID(s.newID()),
		DisplayName: name,
		JoinedAt:    s.clock.Now(),
	}
	s.players[player.ID] = player
	s.order = append(s.order, player.ID)
	s.bind(player, conn)

	s.logger.Info("player joined",
		slog.String("player_id", string(player.ID)),
		slog.String("name", name),
		slog.String("conn_id", string(conn)))

	s.Broadcast()
	return player.ID, nil
}

// BindConnection rebinds a returning player to a new connection.
// An unknown identifier returns ErrUnknownPlayer; the caller should tell the
// connection to discard its stored identity.
func (s *Session) BindConnection(id model.PlayerID, conn model.ConnID) error {
	player, ok := s.players[id]
	if !ok {
		return model.ErrUnknownPlayer
	}

	s.bind(player, conn)
	s.logger.Info("player reconnected",
		slog.String("player_id", string(id)),
		slog.String("conn_id", string(conn)))

	s.Broadcast()
	return nil
}

// Unbind clears the connection handle of whichever player holds conn.
// The player stays in the roster and nothing is broadcast.
func (s *Session) Unbind(conn model.ConnID) {
	id, ok := s.conns[conn]
	if !ok {
		return
	}
	delete(s.conns, conn)

	player := s.players[id]
	player.Conn = nil
	if s.cfg.FreezeWhileDisconnected && player.Violation.Outside {
		now := s.clock.Now()
		player.Violation.DisconnectedAt = &now
	}

	s.logger.Info("player disconnected",
		slog.String("player_id", string(id)),
		slog.String("conn_id", string(conn)))
}

// Leave removes a player at their own request. Only allowed in the lobby.
func (s *Session) Leave(id model.PlayerID) error {
	player, ok := s.players[id]
	if !ok {
		return model.ErrUnknownPlayer
	}
	if s.phase != model.PhaseLobby {
		return model.ErrPhaseNotLobby
	}

	s.remove(player)
	s.logger.Info("player left", slog.String("player_id", string(id)))

	s.Broadcast()
	return nil
}

// Kick force-removes a player, notifying their connection first.
// Unknown identifiers are ignored.
func (s *Session) Kick(id model.PlayerID) {
	player, ok := s.players[id]
	if !ok {
		return
	}

	s.send(player, model.EventPlayerRemoved, model.PlayerRemovedPayload{Reason: model.RemovalKicked})
	s.remove(player)
	s.logger.Info("player kicked", slog.String("player_id", string(id)))

	s.Broadcast()
}

// UpdateLocation records a beacon position report
func (s *Session) UpdateLocation(id model.PlayerID, location model.Coordinates) error {
	player, ok := s.players[id]
	if !ok {
		return model.ErrUnknownPlayer
	}
	if !geo.Valid(location) {
		return model.ErrInvalidLocation
	}

	player.Location = &location
	s.Broadcast()
	return nil
}

// bind attaches conn to player, detaching it from any other player first
func (s *Session) bind(player *model.Player, conn model.ConnID) {
	if previous, ok := s.conns[conn]; ok && previous != player.ID {
		s.players[previous].Conn = nil
	}
	if player.Conn != nil {
		delete(s.conns, *player.Conn)
	}

	c := conn
	player.Conn = &c
	s.conns[conn] = player.ID

	v := &player.Violation
	if v.DisconnectedAt != nil {
		v.Frozen += s.clock.Now().Sub(*v.DisconnectedAt)
		v.DisconnectedAt = nil
	}
}

// remove deletes player from the roster and unlinks their partner
func (s *Session) remove(player *model.Player) {
	s.unlinkPartner(player)
	if player.Conn != nil {
		delete(s.conns, *player.Conn)
		player.Conn = nil
	}
	delete(s.players, player.ID)
	for i, id := range s.order {
		if id == player.ID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Session) nameTaken(name string) bool {
	for _, p := range s.players {
		if strings.EqualFold(p.DisplayName, name) {
			return true
		}
	}
	return false
}
