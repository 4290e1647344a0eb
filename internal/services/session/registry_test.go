package session

import (
	"strings"
	"time"

	"github.com/mcoot/zonehunt/internal/model"
)

// Join tests

func (s *SessionSuite) TestJoinSucceeds() {
	id, err := s.session.Join("Alice", "conn-1")
	s.Require().NoError(err)

	p := s.player(id)
	s.Equal("Alice", p.DisplayName)
	s.Require().NotNil(p.Conn)
	s.Equal(model.ConnID("conn-1"), *p.Conn)
	s.Len(s.publisher.eventsFor("conn-1", model.EventStateUpdate), 1)
	s.Len(s.publisher.lastDirectorView().Players, 1)
}

func (s *SessionSuite) TestJoinTrimsName() {
	id := s.join("  Bob  ")
	s.Equal("Bob", s.player(id).DisplayName)
}

func (s *SessionSuite) TestJoinRejectsTakenNameCaseInsensitive() {
	s.join("Alice")

	_, err := s.session.Join("aLiCe", "conn-2")
	s.ErrorIs(err, model.ErrNameTaken)
	s.Equal(1, s.session.PlayerCount())
}

func (s *SessionSuite) TestJoinRejectsInvalidNames() {
	for _, name := range []string{"", "   ", strings.Repeat("x", model.MaxDisplayNameLength+1)} {
		_, err := s.session.Join(name, "conn-x")
		s.ErrorIs(err, model.ErrInvalidName, "name %q", name)
	}
	s.Zero(s.session.PlayerCount())
}

func (s *SessionSuite) TestJoinRejectedOutsideLobby() {
	s.join("Alice")
	s.Require().True(s.session.StartGame())

	_, err := s.session.Join("Bob", "conn-bob")
	s.ErrorIs(err, model.ErrPhaseNotLobby)
}

func (s *SessionSuite) TestJoinSameConnectionReturnsExistingID() {
	first, err := s.session.Join("Alice", "conn-1")
	s.Require().NoError(err)

	second, err := s.session.Join("Someone Else", "conn-1")
	s.Require().NoError(err)
	s.Equal(first, second)
	s.Equal(1, s.session.PlayerCount())
}

func (s *SessionSuite) TestJoinAssignsUniqueIDs() {
	a := s.join("Alice")
	b := s.join("Bob")
	s.NotEqual(a, b)
}

// BindConnection tests

func (s *SessionSuite) TestBindUnknownPlayerFails() {
	err := s.session.BindConnection("stale-id", "conn-1")
	s.ErrorIs(err, model.ErrUnknownPlayer)
}

func (s *SessionSuite) TestBindReplacesHandle() {
	id := s.join("Alice")
	s.session.Unbind(connFor("Alice"))

	s.Require().NoError(s.session.BindConnection(id, "conn-new"))

	p := s.player(id)
	s.Require().NotNil(p.Conn)
	s.Equal(model.ConnID("conn-new"), *p.Conn)
	got, ok := s.session.PlayerIDForConn("conn-new")
	s.True(ok)
	s.Equal(id, got)
	_, ok = s.session.PlayerIDForConn(connFor("Alice"))
	s.False(ok)
}

func (s *SessionSuite) TestBindKeepsConnectionUnique() {
	alice := s.join("Alice")
	bob := s.join("Bob")

	// Bob's connection is handed to Alice
	s.Require().NoError(s.session.BindConnection(alice, connFor("Bob")))

	s.Nil(s.player(bob).Conn)
	s.Require().NotNil(s.player(alice).Conn)
	s.Equal(connFor("Bob"), *s.player(alice).Conn)
}

func (s *SessionSuite) TestReconnectPreservesRoundState() {
	alice := s.join("Alice")
	bob := s.join("Bob")
	s.session.AutoPair()
	s.Require().NoError(s.session.SetSeeker(alice))
	s.Require().True(s.session.StartGame())

	s.moveTo(alice, 150)
	s.clock.Advance(time.Second)
	s.session.Tick()
	before := *s.player(alice)
	s.Require().True(before.Violation.Outside)

	s.session.Unbind(connFor("Alice"))
	s.clock.Advance(2 * time.Minute)
	s.Require().NoError(s.session.BindConnection(alice, "conn-alice-2"))

	after := s.player(alice)
	s.Equal(before.Violation.Since, after.Violation.Since)
	s.True(after.Violation.Outside)
	s.Equal(before.Role, after.Role)
	s.Equal(*before.TeamID, *after.TeamID)
	s.Require().NotNil(after.PartnerID)
	s.Equal(bob, *after.PartnerID)
}

// Unbind tests

func (s *SessionSuite) TestUnbindKeepsPlayerAndDoesNotBroadcast() {
	id := s.join("Alice")
	s.publisher.reset()

	s.session.Unbind(connFor("Alice"))

	s.Nil(s.player(id).Conn)
	s.Equal(1, s.session.PlayerCount())
	s.Empty(s.publisher.directors)
	s.Empty(s.publisher.sent)
}

func (s *SessionSuite) TestUnbindUnknownConnectionIsIgnored() {
	s.join("Alice")
	s.session.Unbind("nobody")
	s.Equal(1, s.session.PlayerCount())
}

// Leave tests

func (s *SessionSuite) TestLeaveRemovesPlayerAndUnlinksPartner() {
	alice := s.join("Alice")
	bob := s.join("Bob")
	s.session.AutoPair()

	s.Require().NoError(s.session.Leave(alice))

	_, ok := s.session.Player(alice)
	s.False(ok)
	s.Nil(s.player(bob).PartnerID)
	s.assertPartnersSymmetric()
}

func (s *SessionSuite) TestLeaveRejectedDuringGame() {
	alice := s.join("Alice")
	s.Require().True(s.session.StartGame())

	err := s.session.Leave(alice)
	s.ErrorIs(err, model.ErrPhaseNotLobby)
	s.Equal(1, s.session.PlayerCount())
}

func (s *SessionSuite) TestLeaveUnknownPlayer() {
	s.ErrorIs(s.session.Leave("nobody"), model.ErrUnknownPlayer)
}

// Kick tests

func (s *SessionSuite) TestKickNotifiesThenRemoves() {
	alice := s.join("Alice")
	bob := s.join("Bob")
	s.session.AutoPair()
	s.Require().True(s.session.StartGame())

	s.session.Kick(alice)

	removed := s.publisher.eventsFor(connFor("Alice"), model.EventPlayerRemoved)
	s.Require().Len(removed, 1)
	s.Equal(model.PlayerRemovedPayload{Reason: model.RemovalKicked}, removed[0].Payload)
	_, ok := s.session.Player(alice)
	s.False(ok)
	s.Nil(s.player(bob).PartnerID)
	s.Len(s.publisher.lastDirectorView().Players, 1)
}

func (s *SessionSuite) TestKickDisconnectedPlayerStillRemoves() {
	alice := s.join("Alice")
	s.session.Unbind(connFor("Alice"))

	s.session.Kick(alice)

	s.Zero(s.session.PlayerCount())
	s.Empty(s.publisher.eventsFor(connFor("Alice"), model.EventPlayerRemoved))
}

// UpdateLocation tests

func (s *SessionSuite) TestUpdateLocationStoresPosition() {
	id := s.join("Alice")
	loc := model.Coordinates{Latitude: 50.0001, Longitude: 25.0001}

	s.Require().NoError(s.session.UpdateLocation(id, loc))

	s.Require().NotNil(s.player(id).Location)
	s.Equal(loc, *s.player(id).Location)
}

func (s *SessionSuite) TestUpdateLocationIgnoresMalformedPayload() {
	id := s.join("Alice")
	s.moveTo(id, 10)
	before := *s.player(id).Location

	err := s.session.UpdateLocation(id, model.Coordinates{Latitude: 200, Longitude: 0})
	s.ErrorIs(err, model.ErrInvalidLocation)
	s.Equal(before, *s.player(id).Location)
}

func (s *SessionSuite) TestUpdateLocationUnknownPlayer() {
	err := s.session.UpdateLocation("nobody", model.Coordinates{})
	s.ErrorIs(err, model.ErrUnknownPlayer)
}
