package session

import (
	"github.com/mcoot/zonehunt/internal/geo"
	"github.com/mcoot/zonehunt/internal/model"
)

func (s *SessionSuite) TestPlayerViewShowsOnlySelfAndPartner() {
	alice := s.join("Alice")
	bob := s.join("Bob")
	s.join("Carol")
	s.Require().NoError(s.session.MovePlayer(alice, 1))
	s.Require().NoError(s.session.MovePlayer(bob, 1))
	s.moveTo(bob, 30)

	view, ok := s.session.PlayerView(alice)
	s.Require().True(ok)

	s.Equal(alice, view.Me.ID)
	s.Require().NotNil(view.Partner)
	s.Equal(bob, view.Partner.ID)
	s.Equal(s.player(bob).Location, view.Partner.Location)
	s.Equal(model.PhaseLobby, view.Phase)
	s.Equal(s.session.Zone(), view.Zone)
}

func (s *SessionSuite) TestPlayerViewWithoutPartner() {
	alice := s.join("Alice")
	s.join("Bob")

	view, ok := s.session.PlayerView(alice)
	s.Require().True(ok)
	s.Nil(view.Partner)
	s.Nil(view.DangerLevel)
	s.Nil(view.ProximityLevel)
}

func (s *SessionSuite) TestPlayerViewUnknownPlayer() {
	_, ok := s.session.PlayerView("nobody")
	s.False(ok)
}

func (s *SessionSuite) TestBroadcastSendsPersonalViews() {
	alice := s.join("Alice")
	bob := s.join("Bob")
	s.publisher.reset()

	s.session.Broadcast()

	for _, id := range []model.PlayerID{alice, bob} {
		name := s.player(id).DisplayName
		updates := s.publisher.eventsFor(connFor(name), model.EventStateUpdate)
		s.Require().Len(updates, 1)
		view := updates[0].Payload.(model.PlayerView)
		s.Equal(id, view.Me.ID)
	}
	s.Require().Len(s.publisher.directors, 1)
	s.Len(s.publisher.lastDirectorView().Players, 2)
}

func (s *SessionSuite) TestBroadcastSkipsUnboundPlayers() {
	s.join("Alice")
	s.session.Unbind(connFor("Alice"))
	s.publisher.reset()

	s.session.Broadcast()

	s.Empty(s.publisher.sent)
	view := s.publisher.lastDirectorView()
	s.Require().Len(view.Players, 1)
	s.False(view.Players[0].Connected)
}

func (s *SessionSuite) TestDirectorViewListsRosterInJoinOrder() {
	alice := s.join("Alice")
	bob := s.join("Bob")
	carol := s.join("Carol")

	view := s.session.DirectorView()

	s.Require().Len(view.Players, 3)
	s.Equal([]model.PlayerID{alice, bob, carol},
		[]model.PlayerID{view.Players[0].ID, view.Players[1].ID, view.Players[2].ID})
	s.Equal("Bob", view.Players[1].Name)
}

func (s *SessionSuite) TestDangerAndProximityLevels() {
	seeker := s.join("Alice")
	hider := s.join("Bob")
	s.Require().NoError(s.session.MovePlayer(seeker, 1))
	s.Require().NoError(s.session.MovePlayer(hider, 2))
	s.Require().NoError(s.session.SetSeeker(seeker))

	cases := []struct {
		name     string
		distance float64
		level    int
	}{
		{"close", 30, geo.LevelClose},
		{"near", 100, geo.LevelNear},
		{"far", 200, geo.LevelFar},
		{"out of range", 400, geo.LevelNone},
	}

	s.moveTo(seeker, 0)
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.moveTo(hider, tc.distance)

			hiderView, _ := s.session.PlayerView(hider)
			s.Require().NotNil(hiderView.DangerLevel)
			s.Equal(tc.level, *hiderView.DangerLevel)
			s.Nil(hiderView.ProximityLevel)

			seekerView, _ := s.session.PlayerView(seeker)
			s.Require().NotNil(seekerView.ProximityLevel)
			s.Equal(tc.level, *seekerView.ProximityLevel)
			s.Nil(seekerView.DangerLevel)
		})
	}
}

func (s *SessionSuite) TestDangerLevelUsesNearestSeeker() {
	a := s.join("A")
	b := s.join("B")
	hider := s.join("Hider")
	s.Require().NoError(s.session.MovePlayer(a, 1))
	s.Require().NoError(s.session.MovePlayer(b, 1))
	s.Require().NoError(s.session.MovePlayer(hider, 2))
	s.Require().NoError(s.session.SetSeeker(a))
	s.moveTo(a, 0)
	s.moveTo(b, 260)
	s.moveTo(hider, 280)

	view, _ := s.session.PlayerView(hider)
	s.Equal(geo.LevelClose, *view.DangerLevel)
}

func (s *SessionSuite) TestDangerLevelZeroWithoutLocatedSeeker() {
	seeker := s.join("Alice")
	hider := s.join("Bob")
	s.Require().NoError(s.session.SetSeeker(seeker))
	s.moveTo(hider, 10)

	view, _ := s.session.PlayerView(hider)
	s.Require().NotNil(view.DangerLevel)
	s.Equal(geo.LevelNone, *view.DangerLevel)
}
