package session

import (
	"math"
	"time"

	"github.com/mcoot/zonehunt/internal/geo"
	"github.com/mcoot/zonehunt/internal/model"
)

// Broadcast recomputes danger levels and sends every director the full view and
// every bound player their personal view. Unbound players receive nothing.
func (s *Session) Broadcast() {
	now := s.clock.Now()
	s.refreshDangerLevels()

	s.publisher.SendDirectors(model.Event{
		Type:    model.EventStateUpdate,
		Payload: s.directorView(now),
	})

	for _, p := range s.roster() {
		if p.Conn == nil {
			continue
		}
		view, _ := s.playerView(p.ID, now)
		s.publisher.Send(*p.Conn, model.Event{Type: model.EventStateUpdate, Payload: view})
	}
}

// DirectorView returns the unrestricted view of the session
func (s *Session) DirectorView() model.DirectorView {
	s.refreshDangerLevels()
	return s.directorView(s.clock.Now())
}

// PlayerView returns what the given player is allowed to see
func (s *Session) PlayerView(id model.PlayerID) (model.PlayerView, bool) {
	s.refreshDangerLevels()
	return s.playerView(id, s.clock.Now())
}

func (s *Session) directorView(now time.Time) model.DirectorView {
	players := make([]model.PlayerSummary, 0, len(s.order))
	for _, p := range s.roster() {
		players = append(players, s.summary(p, now))
	}
	return model.DirectorView{
		Phase:     s.phase,
		Zone:      s.zone,
		TeamCount: s.teamCount,
		Players:   players,
	}
}

func (s *Session) playerView(id model.PlayerID, now time.Time) (model.PlayerView, bool) {
	p, ok := s.players[id]
	if !ok {
		return model.PlayerView{}, false
	}

	me := s.summary(p, now)
	view := model.PlayerView{
		Phase:      s.phase,
		Zone:       s.zone,
		Me:         me,
		ZoneStatus: me.ZoneStatus,
	}

	if p.PartnerID != nil {
		if partner, ok := s.players[*p.PartnerID]; ok {
			summary := s.summary(partner, now)
			view.Partner = &summary
		}
	}

	switch p.Role {
	case model.RoleHider:
		level := p.DangerLevel
		view.DangerLevel = &level
	case model.RoleSeeker:
		level := s.proximityLevel(p)
		view.ProximityLevel = &level
	}

	return view, true
}

func (s *Session) summary(p *model.Player, now time.Time) model.PlayerSummary {
	summary := model.PlayerSummary{
		ID:        p.ID,
		Name:      p.DisplayName,
		Connected: p.IsConnected(),
		Location:  p.Location,
		TeamID:    p.TeamID,
		PartnerID: p.PartnerID,
		Role:      p.Role,
		ZoneStatus: model.ZoneStatus{
			IsOutside: p.Violation.Outside,
			TimeLeft:  s.timeLeft(p, now),
		},
	}
	if p.Role == model.RoleHider {
		level := p.DangerLevel
		summary.DangerLevel = &level
	}
	return summary
}

// refreshDangerLevels recomputes each hider's level from the nearest located seeker
func (s *Session) refreshDangerLevels() {
	for _, p := range s.players {
		p.DangerLevel = 0
		if p.Role != model.RoleHider {
			continue
		}
		if d, ok := s.nearest(p, model.RoleSeeker); ok {
			p.DangerLevel = geo.Level(d)
		}
	}
}

// proximityLevel is a seeker's level from the nearest located hider
func (s *Session) proximityLevel(p *model.Player) int {
	d, ok := s.nearest(p, model.RoleHider)
	if !ok {
		return geo.LevelNone
	}
	return geo.Level(d)
}

// nearest returns the distance from p to the closest located player with role
func (s *Session) nearest(p *model.Player, role model.Role) (float64, bool) {
	if p.Location == nil {
		return 0, false
	}
	best := math.Inf(1)
	for _, other := range s.players {
		if other == p || other.Role != role || other.Location == nil {
			continue
		}
		if d := geo.Distance(p.Location, other.Location); d < best {
			best = d
		}
	}
	return best, !math.IsInf(best, 1)
}
