package session

import (
	"log/slog"
	"time"

	"github.com/mcoot/zonehunt/internal/geo"
	"github.com/mcoot/zonehunt/internal/model"
)

// Tick runs one pass of the geofence monitor over every located player.
// A distance equal to the radius counts as inside.
//
// While IN_PROGRESS the tick always broadcasts, since proximity levels move
// with every position; in the lobby it broadcasts only when a violation
// started, ended, or removed someone.
func (s *Session) Tick() {
	now := s.clock.Now()
	center := s.zone.Center()
	changed := false

	for _, p := range s.roster() {
		if p.Location == nil {
			continue
		}
		if s.cfg.FreezeWhileDisconnected && !p.IsConnected() {
			continue
		}

		distance := geo.Distance(p.Location, &center)
		if distance > s.zone.Radius {
			if s.checkOutside(p, distance, now) {
				changed = true
			}
			continue
		}

		if p.Violation.Outside {
			p.Violation = model.Violation{}
			s.send(p, model.EventZoneSafe, struct{}{})
			s.logger.Info("player back inside zone", slog.String("player_id", string(p.ID)))
			changed = true
		}
	}

	if changed || s.phase == model.PhaseInProgress {
		s.Broadcast()
	}
}

// checkOutside advances the violation of a player found outside the zone and
// reports whether their visible state changed
func (s *Session) checkOutside(p *model.Player, distance float64, now time.Time) bool {
	v := &p.Violation
	if !v.Outside {
		*v = model.Violation{Outside: true, Since: now}
		s.warn(p, distance, now)
		s.logger.Info("player left zone",
			slog.String("player_id", string(p.ID)),
			slog.Float64("distance", distance))
		return true
	}

	if v.Elapsed(now) > s.cfg.KickTimeout {
		s.send(p, model.EventPlayerRemoved, model.PlayerRemovedPayload{Reason: model.RemovalZoneTimeout})
		s.remove(p)
		s.logger.Info("player eliminated for leaving zone",
			slog.String("player_id", string(p.ID)),
			slog.Duration("outside_for", v.Elapsed(now)))
		return true
	}

	if now.Sub(v.LastWarning) >= s.cfg.WarningInterval {
		s.warn(p, distance, now)
	}
	return false
}

func (s *Session) warn(p *model.Player, distance float64, now time.Time) {
	v := &p.Violation
	v.LastWarning = now
	v.Warnings++
	s.send(p, model.EventZoneWarning, model.ZoneWarningPayload{
		Distance: distance,
		Radius:   s.zone.Radius,
		TimeLeft: s.timeLeft(p, now),
		Warning:  v.Warnings,
	})
}

// timeLeft returns whole seconds until elimination, floored at zero
func (s *Session) timeLeft(p *model.Player, now time.Time) int {
	left := s.cfg.KickTimeout - p.Violation.Elapsed(now)
	if left < 0 {
		return 0
	}
	return int(left / time.Second)
}
