package session

import (
	"time"

	"github.com/mcoot/zonehunt/internal/geo"
	"github.com/mcoot/zonehunt/internal/model"
)

func (s *SessionSuite) TestTickIgnoresPlayersWithoutLocation() {
	s.join("Alice")
	s.publisher.reset()

	s.session.Tick()

	s.Empty(s.publisher.sent)
	s.Empty(s.publisher.directors)
}

func (s *SessionSuite) TestTickInsideZone() {
	alice := s.join("Alice")
	s.moveTo(alice, 50)

	s.session.Tick()

	s.False(s.player(alice).Violation.Outside)
	s.Empty(s.publisher.eventsFor(connFor("Alice"), model.EventZoneWarning))
}

func (s *SessionSuite) TestTickBoundaryCountsAsInside() {
	alice := s.join("Alice")
	s.moveTo(alice, 100)
	center := s.session.Zone().Center()
	exact := geo.Distance(s.player(alice).Location, &center)
	s.Require().NoError(s.session.UpdateZone(model.Zone{
		Latitude:  center.Latitude,
		Longitude: center.Longitude,
		Radius:    exact,
	}))

	s.session.Tick()

	s.False(s.player(alice).Violation.Outside)
}

func (s *SessionSuite) TestTickOutsideWarnsImmediately() {
	alice := s.join("Alice")
	s.moveTo(alice, 150)

	s.session.Tick()

	s.True(s.player(alice).Violation.Outside)
	warnings := s.publisher.eventsFor(connFor("Alice"), model.EventZoneWarning)
	s.Require().Len(warnings, 1)
	payload := warnings[0].Payload.(model.ZoneWarningPayload)
	s.InDelta(600, payload.TimeLeft, 1)
	s.InDelta(150, payload.Distance, 1)
	s.Equal(100.0, payload.Radius)
	s.Equal(1, payload.Warning)

	view, ok := s.session.PlayerView(alice)
	s.Require().True(ok)
	s.True(view.ZoneStatus.IsOutside)
	s.InDelta(600, view.ZoneStatus.TimeLeft, 1)
}

func (s *SessionSuite) TestTickRewarnsOnInterval() {
	alice := s.join("Alice")
	s.moveTo(alice, 150)
	s.session.Tick()

	s.tickFor(29 * time.Second)
	s.Len(s.publisher.eventsFor(connFor("Alice"), model.EventZoneWarning), 1)

	s.tickFor(time.Second)
	warnings := s.publisher.eventsFor(connFor("Alice"), model.EventZoneWarning)
	s.Require().Len(warnings, 2)
	payload := warnings[1].Payload.(model.ZoneWarningPayload)
	s.Equal(2, payload.Warning)
	s.InDelta(570, payload.TimeLeft, 1)
}

func (s *SessionSuite) TestTickRemovesAfterTimeout() {
	alice := s.join("Alice")
	bob := s.join("Bob")
	s.session.AutoPair()
	s.moveTo(alice, 150)
	s.session.Tick()

	s.tickFor(10 * time.Minute)
	_, ok := s.session.Player(alice)
	s.True(ok, "removal happens only once the timeout is exceeded")

	s.tickFor(5 * time.Second)

	_, ok = s.session.Player(alice)
	s.False(ok)
	removed := s.publisher.eventsFor(connFor("Alice"), model.EventPlayerRemoved)
	s.Require().Len(removed, 1)
	s.Equal(model.RemovalZoneTimeout, removed[0].Payload.(model.PlayerRemovedPayload).Reason)

	s.Nil(s.player(bob).PartnerID)
	view := s.publisher.lastDirectorView()
	s.Require().Len(view.Players, 1)
	s.Equal(bob, view.Players[0].ID)
}

func (s *SessionSuite) TestTickReturnInsideSendsSafe() {
	alice := s.join("Alice")
	s.moveTo(alice, 150)
	s.session.Tick()
	s.tickFor(45 * time.Second)

	s.moveTo(alice, 10)
	s.session.Tick()

	s.Equal(model.Violation{}, s.player(alice).Violation)
	s.Len(s.publisher.eventsFor(connFor("Alice"), model.EventZoneSafe), 1)

	// a fresh violation starts the full timer again
	s.moveTo(alice, 150)
	s.session.Tick()
	warnings := s.publisher.eventsFor(connFor("Alice"), model.EventZoneWarning)
	last := warnings[len(warnings)-1].Payload.(model.ZoneWarningPayload)
	s.Equal(1, last.Warning)
	s.InDelta(600, last.TimeLeft, 1)
}

func (s *SessionSuite) TestTickFreezesDisconnectedViolation() {
	alice := s.join("Alice")
	s.moveTo(alice, 150)
	s.session.Tick()
	s.tickFor(2 * time.Minute)
	before := s.player(alice).Violation.Elapsed(s.clock.Now())

	s.session.Unbind(connFor("Alice"))
	s.tickFor(20 * time.Minute)

	_, ok := s.session.Player(alice)
	s.Require().True(ok, "disconnected player must not be eliminated")

	s.Require().NoError(s.session.BindConnection(alice, "conn-Alice-2"))
	v := s.player(alice).Violation
	s.True(v.Outside)
	s.Equal(before, v.Elapsed(s.clock.Now()))
	s.Equal(20*time.Minute, v.Frozen)

	view, _ := s.session.PlayerView(alice)
	s.InDelta(480, view.ZoneStatus.TimeLeft, 1)
}

func (s *SessionSuite) TestTickWithoutFreezeRemovesDisconnected() {
	s.cfg.FreezeWhileDisconnected = false
	s.newSession()
	alice := s.join("Alice")
	s.moveTo(alice, 150)
	s.session.Tick()

	s.session.Unbind(connFor("Alice"))
	s.tickFor(11 * time.Minute)

	_, ok := s.session.Player(alice)
	s.False(ok)
}

func (s *SessionSuite) TestTickFollowsZoneChange() {
	alice := s.join("Alice")
	s.moveTo(alice, 150)
	s.session.Tick()
	s.Require().True(s.player(alice).Violation.Outside)

	zone := s.session.Zone()
	zone.Radius = 500
	s.Require().NoError(s.session.UpdateZone(zone))
	s.True(s.player(alice).Violation.Outside, "zone changes apply on the next tick")

	s.session.Tick()
	s.False(s.player(alice).Violation.Outside)
}

func (s *SessionSuite) TestQuietLobbyTickDoesNotBroadcast() {
	alice := s.join("Alice")
	s.moveTo(alice, 10)
	s.publisher.reset()

	s.session.Tick()

	s.Empty(s.publisher.directors)
}

func (s *SessionSuite) TestInProgressTickAlwaysBroadcasts() {
	alice := s.join("Alice")
	s.moveTo(alice, 10)
	s.Require().True(s.session.StartGame())
	s.publisher.reset()

	s.session.Tick()

	s.Len(s.publisher.directors, 1)
	s.Len(s.publisher.eventsFor(connFor("Alice"), model.EventStateUpdate), 1)
}
