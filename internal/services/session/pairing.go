package session

import (
	"log/slog"

	"github.com/mcoot/zonehunt/internal/dependencies/random"
	"github.com/mcoot/zonehunt/internal/model"
)

// AutoPair shuffles the roster and splits it into consecutive pairs, numbering
// teams from 1. An odd player out gets a team of their own. Roles are cleared.
func (s *Session) AutoPair() {
	ids := make([]model.PlayerID, len(s.order))
	copy(ids, s.order)
	random.Shuffle(s.random, len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})

	for _, p := range s.players {
		p.TeamID = nil
		p.PartnerID = nil
		p.Role = model.RoleNone
	}

	for i := 0; i < len(ids); i += 2 {
		team := i/2 + 1
		first := s.players[ids[i]]
		first.TeamID = intPtr(team)
		if i+1 < len(ids) {
			second := s.players[ids[i+1]]
			second.TeamID = intPtr(team)
			s.link(first, second)
		}
	}
	s.teamCount = s.countTeams()

	s.logger.Info("players paired", slog.Int("teams", s.teamCount))
	s.Broadcast()
}

// MovePlayer reassigns a player to team newTeamID. The old partner is unlinked;
// if newTeamID holds a single player the two become partners. A team that
// already has two players is rejected.
func (s *Session) MovePlayer(id model.PlayerID, newTeamID int) error {
	player, ok := s.players[id]
	if !ok {
		return model.ErrUnknownPlayer
	}
	if newTeamID < 1 {
		return model.ErrInvalidTeam
	}
	if player.TeamID != nil && *player.TeamID == newTeamID {
		return nil
	}

	members := s.teamMembers(newTeamID)
	if len(members) >= 2 {
		return model.ErrTeamFull
	}

	s.unlinkPartner(player)
	player.TeamID = intPtr(newTeamID)
	if len(members) == 1 {
		mate := members[0]
		s.link(player, mate)
		if mate.Role != model.RoleNone {
			player.Role = mate.Role
		}
	}
	s.teamCount = s.countTeams()

	s.logger.Info("player moved",
		slog.String("player_id", string(id)),
		slog.Int("team", newTeamID))

	s.Broadcast()
	return nil
}

// SetSeeker makes the target's team the seekers and everyone else hiders.
// A player without a team seeks alone.
func (s *Session) SetSeeker(id model.PlayerID) error {
	target, ok := s.players[id]
	if !ok {
		return model.ErrUnknownPlayer
	}

	for _, p := range s.players {
		p.Role = model.RoleHider
		if p == target || (target.TeamID != nil && p.TeamID != nil && *p.TeamID == *target.TeamID) {
			p.Role = model.RoleSeeker
		}
	}

	s.logger.Info("seeker assigned", slog.String("player_id", string(id)))
	s.Broadcast()
	return nil
}

// link makes a and b partners of each other
func (s *Session) link(a, b *model.Player) {
	aID, bID := a.ID, b.ID
	a.PartnerID = &bID
	b.PartnerID = &aID
}

// unlinkPartner clears the partner link on both sides
func (s *Session) unlinkPartner(p *model.Player) {
	if p.PartnerID == nil {
		return
	}
	if partner, ok := s.players[*p.PartnerID]; ok {
		partner.PartnerID = nil
	}
	p.PartnerID = nil
}

func (s *Session) teamMembers(teamID int) []*model.Player {
	var members []*model.Player
	for _, p := range s.roster() {
		if p.TeamID != nil && *p.TeamID == teamID {
			members = append(members, p)
		}
	}
	return members
}

// countTeams returns the number of distinct team identifiers in the roster
func (s *Session) countTeams() int {
	teams := make(map[int]struct{})
	for _, p := range s.players {
		if p.TeamID != nil {
			teams[*p.TeamID] = struct{}{}
		}
	}
	return len(teams)
}

func intPtr(v int) *int {
	return &v
}
