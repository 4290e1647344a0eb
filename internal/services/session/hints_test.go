package session

import (
	"time"

	"github.com/mcoot/zonehunt/internal/model"
)

// setupHunt puts a seeker and two located hiders on separate teams
func (s *SessionSuite) setupHunt() (seeker, bob, carol model.PlayerID) {
	seeker = s.join("Alice")
	bob = s.join("Bob")
	carol = s.join("Carol")
	s.Require().NoError(s.session.MovePlayer(seeker, 1))
	s.Require().NoError(s.session.MovePlayer(bob, 2))
	s.Require().NoError(s.session.MovePlayer(carol, 3))
	s.Require().NoError(s.session.SetSeeker(seeker))
	s.moveTo(bob, 20)
	s.moveTo(carol, 40)
	return seeker, bob, carol
}

func (s *SessionSuite) hints() []model.Event {
	return s.publisher.eventsFor(connFor("Alice"), model.EventHint)
}

func (s *SessionSuite) TestHintFiresAtScheduledDelay() {
	_, bob, _ := s.setupHunt()
	s.Require().True(s.session.StartGame())
	s.True(s.session.HintPending())

	s.clock.Advance(90*time.Second - time.Millisecond)
	s.Empty(s.hints())

	s.clock.Advance(time.Millisecond)
	hints := s.hints()
	s.Require().Len(hints, 1)
	loc := s.player(bob).Location
	s.Equal(model.HintPayload{Latitude: loc.Latitude, Longitude: loc.Longitude}, hints[0].Payload)
	s.Empty(s.publisher.eventsFor(connFor("Bob"), model.EventHint), "hiders never receive hints")
	s.True(s.session.HintPending(), "next hint is scheduled after firing")
}

func (s *SessionSuite) TestHintDelayDrawnFromRange() {
	s.setupHunt()
	s.random.QueueIntn(90000)
	start := s.clock.Now()

	s.Require().True(s.session.StartGame())

	deadline, ok := s.clock.NextDeadline()
	s.Require().True(ok)
	s.Equal(180*time.Second, deadline.Sub(start))
}

func (s *SessionSuite) TestHintPicksRandomHider() {
	_, _, carol := s.setupHunt()
	s.random.QueueIntn(0, 1)
	s.Require().True(s.session.StartGame())

	s.clock.Advance(90 * time.Second)

	hints := s.hints()
	s.Require().Len(hints, 1)
	s.Equal(s.player(carol).Location.Latitude, hints[0].Payload.(model.HintPayload).Latitude)
}

func (s *SessionSuite) TestHintSkipsUnlocatedHiders() {
	s.join("Alice")
	s.join("Bob")
	s.Require().NoError(s.session.SetSeeker(s.session.order[0]))
	s.Require().True(s.session.StartGame())

	s.clock.Advance(90 * time.Second)

	s.Empty(s.hints())
	s.True(s.session.HintPending())
}

func (s *SessionSuite) TestHintWithoutSeekers() {
	alice := s.join("Alice")
	s.moveTo(alice, 10)
	s.Require().True(s.session.StartGame())

	s.clock.Advance(5 * time.Minute)

	for _, e := range s.publisher.sent {
		s.NotEqual(model.EventHint, e.event.Type)
	}
}

func (s *SessionSuite) TestForceHintRestartsTimer() {
	s.setupHunt()
	s.Require().True(s.session.StartGame())
	s.clock.Advance(60 * time.Second)

	s.session.ForceHint()
	s.Len(s.hints(), 1)
	s.Equal(1, s.clock.PendingTimers())

	// the original deadline at 90s must not fire
	s.clock.Advance(89 * time.Second)
	s.Len(s.hints(), 1)

	s.clock.Advance(time.Second)
	s.Len(s.hints(), 2)
}

func (s *SessionSuite) TestForceHintIgnoredInLobby() {
	s.setupHunt()

	s.session.ForceHint()

	s.Empty(s.hints())
	s.False(s.session.HintPending())
}

func (s *SessionSuite) TestStaleHintCallbackDropped() {
	var queued []func()
	s.newSession(WithDispatch(func(f func()) {
		queued = append(queued, f)
	}))
	s.setupHunt()
	s.Require().True(s.session.StartGame())

	// timer fires but its callback has not reached the session yet
	s.clock.Advance(90 * time.Second)
	s.Require().Len(queued, 1)
	s.Empty(s.hints())

	s.session.ForceHint()
	s.Require().Len(s.hints(), 1)

	for _, f := range queued {
		f()
	}
	s.Len(s.hints(), 1, "stale callback must not reveal a second hint")
}

func (s *SessionSuite) TestHintCallbackAfterResetDropped() {
	var queued []func()
	s.newSession(WithDispatch(func(f func()) {
		queued = append(queued, f)
	}))
	s.setupHunt()
	s.Require().True(s.session.StartGame())
	s.clock.Advance(90 * time.Second)
	s.Require().Len(queued, 1)

	s.session.ResetGame()
	queued[0]()

	s.Empty(s.hints())
	s.False(s.session.HintPending())
}

func (s *SessionSuite) TestStopCancelsHint() {
	s.setupHunt()
	s.Require().True(s.session.StartGame())

	s.session.Stop()

	s.Equal(0, s.clock.PendingTimers())
	s.clock.Advance(10 * time.Minute)
	s.Empty(s.hints())
}
