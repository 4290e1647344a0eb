package session

import (
	"log/slog"

	"github.com/mcoot/zonehunt/internal/dependencies/random"
	"github.com/mcoot/zonehunt/internal/model"
)

// ForceHint reveals a hider immediately and restarts the hint timer from now.
// No-op outside IN_PROGRESS.
func (s *Session) ForceHint() {
	if s.phase != model.PhaseInProgress {
		return
	}
	s.revealHint()
	s.scheduleHint()
}

// HintPending reports whether a hint timer is armed
func (s *Session) HintPending() bool {
	return s.hintTimer != nil
}

// scheduleHint arms a fresh hint timer, replacing any pending one
func (s *Session) scheduleHint() {
	s.cancelHint()
	if s.phase != model.PhaseInProgress {
		return
	}

	gen := s.hintGen
	delay := random.Duration(s.random, s.cfg.HintMinDelay, s.cfg.HintMaxDelay)
	s.hintTimer = s.clock.AfterFunc(delay, func() {
		s.dispatch(func() {
			s.onHintTimer(gen)
		})
	})
	s.logger.Debug("hint scheduled", slog.Duration("delay", delay))
}

// cancelHint stops the pending timer and invalidates any callback already in flight
func (s *Session) cancelHint() {
	if s.hintTimer != nil {
		s.hintTimer.Stop()
		s.hintTimer = nil
	}
	s.hintGen++
}

func (s *Session) onHintTimer(gen uint64) {
	if gen != s.hintGen || s.phase != model.PhaseInProgress {
		return
	}
	s.hintTimer = nil
	s.revealHint()
	s.scheduleHint()
}

// revealHint sends one random located hider's position to every seeker
func (s *Session) revealHint() bool {
	var seekers, hiders []*model.Player
	for _, p := range s.roster() {
		switch p.Role {
		case model.RoleSeeker:
			seekers = append(seekers, p)
		case model.RoleHider:
			if p.Location != nil {
				hiders = append(hiders, p)
			}
		}
	}
	if len(seekers) == 0 || len(hiders) == 0 {
		return false
	}

	hider := hiders[s.random.Intn(len(hiders))]
	payload := model.HintPayload{
		Latitude:  hider.Location.Latitude,
		Longitude: hider.Location.Longitude,
	}
	for _, seeker := range seekers {
		s.send(seeker, model.EventHint, payload)
	}

	s.logger.Info("hint revealed",
		slog.String("hider_id", string(hider.ID)),
		slog.Int("seekers", len(seekers)))
	return true
}
