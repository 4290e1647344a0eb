// Package session holds the single in-memory authority for a game: the roster,
// the zone, the phase, pairing, the geofence monitor, the hint timer and the
// per-connection views.
//
// A Session is not safe for concurrent use. Every method must be called from the
// one goroutine that owns it (see the engine package); timer callbacks re-enter
// through the dispatch function for the same reason.
package session

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/zonehunt/internal/dependencies/clock"
	"github.com/mcoot/zonehunt/internal/dependencies/random"
	"github.com/mcoot/zonehunt/internal/model"
)

// Publisher delivers outbound events. Delivery is fire-and-forget and must not block.
type Publisher interface {
	// Send delivers an event to a single connection
	Send(conn model.ConnID, event model.Event)
	// SendDirectors delivers an event to every director connection
	SendDirectors(event model.Event)
	// SendAll delivers an event to every open connection
	SendAll(event model.Event)
}

// Config holds the timing and policy knobs of a session
type Config struct {
	WarningInterval time.Duration
	KickTimeout     time.Duration
	HintMinDelay    time.Duration
	HintMaxDelay    time.Duration
	ResetPolicy     model.ResetPolicy
	// FreezeWhileDisconnected pauses violation timers for players without a connection
	FreezeWhileDisconnected bool
	InitialZone             model.Zone
}

// DefaultConfig returns the default session configuration
func DefaultConfig() Config {
	return Config{
		WarningInterval:         30 * time.Second,
		KickTimeout:             10 * time.Minute,
		HintMinDelay:            90 * time.Second,
		HintMaxDelay:            180 * time.Second,
		ResetPolicy:             model.ResetKeepRoster,
		FreezeWhileDisconnected: true,
		InitialZone:             model.DefaultZone(),
	}
}

// Option customises a Session at construction
type Option func(*Session)

// WithDispatch sets how timer callbacks are brought back onto the owning goroutine.
// The default runs them inline, which is only correct when the clock fires
// callbacks synchronously (as the mock clock does).
func WithDispatch(dispatch func(func())) Option {
	return func(s *Session) {
		s.dispatch = dispatch
	}
}

// WithIDGenerator overrides the player identifier generator
func WithIDGenerator(newID func() string) Option {
	return func(s *Session) {
		s.newID = newID
	}
}

// Session is the GameSession aggregate
type Session struct {
	cfg       Config
	clock     clock.Clock
	random    random.Random
	publisher Publisher
	logger    *slog.Logger
	dispatch  func(func())
	newID     func() string

	phase     model.Phase
	zone      model.Zone
	teamCount int

	players map[model.PlayerID]*model.Player
	order   []model.PlayerID // join order, used for stable views
	conns   map[model.ConnID]model.PlayerID

	hintTimer clock.Timer
	hintGen   uint64
}

// New creates a session in the LOBBY phase with an empty roster
func New(cfg Config, clk clock.Clock, rnd random.Random, publisher Publisher, logger *slog.Logger, opts ...Option) *Session {
	if cfg.ResetPolicy == "" {
		cfg.ResetPolicy = model.ResetKeepRoster
	}
	s := &Session{
		cfg:       cfg,
		clock:     clk,
		random:    rnd,
		publisher: publisher,
		logger:    logger.With(slog.String("component", "session")),
		dispatch:  func(f func()) { f() },
		newID:     uuid.NewString,
		phase:     model.PhaseLobby,
		zone:      cfg.InitialZone,
		players:   make(map[model.PlayerID]*model.Player),
		conns:     make(map[model.ConnID]model.PlayerID),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Phase returns the current phase
func (s *Session) Phase() model.Phase {
	return s.phase
}

// Zone returns the current zone
func (s *Session) Zone() model.Zone {
	return s.zone
}

// TeamCount returns the number of teams fixed at game start
func (s *Session) TeamCount() int {
	return s.teamCount
}

// PlayerCount returns the roster size
func (s *Session) PlayerCount() int {
	return len(s.order)
}

// Player returns the roster entry for id
func (s *Session) Player(id model.PlayerID) (*model.Player, bool) {
	p, ok := s.players[id]
	return p, ok
}

// PlayerIDForConn returns the player bound to conn
func (s *Session) PlayerIDForConn(conn model.ConnID) (model.PlayerID, bool) {
	id, ok := s.conns[conn]
	return id, ok
}

// Stop cancels any pending timers owned by the session
func (s *Session) Stop() {
	s.cancelHint()
}

// roster returns players in join order
func (s *Session) roster() []*model.Player {
	players := make([]*model.Player, 0, len(s.order))
	for _, id := range s.order {
		players = append(players, s.players[id])
	}
	return players
}

func (s *Session) send(p *model.Player, eventType model.EventType, payload any) {
	if p.Conn == nil {
		return
	}
	s.publisher.Send(*p.Conn, model.Event{Type: eventType, Payload: payload})
}
