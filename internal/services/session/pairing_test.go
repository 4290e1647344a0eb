package session

import (
	"fmt"

	"github.com/mcoot/zonehunt/internal/model"
)

// AutoPair tests

func (s *SessionSuite) TestAutoPairPartitionsRoster() {
	for n := 1; n <= 7; n++ {
		s.SetupTest()
		for i := 0; i < n; i++ {
			s.join(fmt.Sprintf("Player %d", i))
		}
		s.random.QueueIntn(3, 1, 4, 1, 5, 9, 2)

		s.session.AutoPair()

		teams := make(map[int][]*model.Player)
		for _, p := range s.session.roster() {
			s.Require().NotNil(p.TeamID, "n=%d: %s has no team", n, p.ID)
			teams[*p.TeamID] = append(teams[*p.TeamID], p)
		}
		s.Len(teams, (n+1)/2, "n=%d", n)
		s.Equal((n+1)/2, s.session.TeamCount())
		for team, members := range teams {
			s.True(len(members) == 1 || len(members) == 2, "n=%d team %d has %d members", n, team, len(members))
			if len(members) == 1 {
				s.Nil(members[0].PartnerID)
			}
		}
		s.assertPartnersSymmetric()
	}
}

func (s *SessionSuite) TestAutoPairClearsRoles() {
	alice := s.join("Alice")
	s.join("Bob")
	s.Require().NoError(s.session.SetSeeker(alice))

	s.session.AutoPair()

	for _, p := range s.session.roster() {
		s.Equal(model.RoleNone, p.Role)
	}
}

// SetSeeker tests

func (s *SessionSuite) TestSetSeekerMarksWholeTeam() {
	alice := s.join("Alice")
	bob := s.join("Bob")
	s.session.AutoPair()

	s.Require().NoError(s.session.SetSeeker(alice))

	s.Equal(model.RoleSeeker, s.player(alice).Role)
	s.Equal(model.RoleSeeker, s.player(bob).Role)
}

func (s *SessionSuite) TestSetSeekerMakesOthersHiders() {
	ids := []model.PlayerID{s.join("A"), s.join("B"), s.join("C"), s.join("D"), s.join("E")}
	s.session.AutoPair()
	target := s.player(ids[2])

	s.Require().NoError(s.session.SetSeeker(target.ID))

	for _, p := range s.session.roster() {
		if *p.TeamID == *target.TeamID {
			s.Equal(model.RoleSeeker, p.Role, "%s shares the seeker team", p.ID)
		} else {
			s.Equal(model.RoleHider, p.Role, "%s is on team %d", p.ID, *p.TeamID)
		}
	}
}

func (s *SessionSuite) TestSetSeekerReplacesPreviousSeekers() {
	alice := s.join("Alice")
	bob := s.join("Bob")
	s.Require().NoError(s.session.MovePlayer(alice, 1))
	s.Require().NoError(s.session.MovePlayer(bob, 2))

	s.Require().NoError(s.session.SetSeeker(alice))
	s.Require().NoError(s.session.SetSeeker(bob))

	s.Equal(model.RoleHider, s.player(alice).Role)
	s.Equal(model.RoleSeeker, s.player(bob).Role)
}

func (s *SessionSuite) TestSetSeekerWithoutTeam() {
	alice := s.join("Alice")
	bob := s.join("Bob")

	s.Require().NoError(s.session.SetSeeker(alice))

	s.Equal(model.RoleSeeker, s.player(alice).Role)
	s.Equal(model.RoleHider, s.player(bob).Role)
}

func (s *SessionSuite) TestSetSeekerUnknownPlayer() {
	s.ErrorIs(s.session.SetSeeker("nobody"), model.ErrUnknownPlayer)
}

// MovePlayer tests

func (s *SessionSuite) TestMovePlayerLinksWithUnpairedOccupant() {
	a := s.join("A")
	prev := s.join("Prev")
	b := s.join("B")
	s.Require().NoError(s.session.MovePlayer(a, 1))
	s.Require().NoError(s.session.MovePlayer(prev, 1))
	s.Require().NoError(s.session.MovePlayer(b, 2))
	s.Require().Equal(prev, *s.player(a).PartnerID)

	s.Require().NoError(s.session.MovePlayer(a, 2))

	s.Require().NotNil(s.player(a).PartnerID)
	s.Require().NotNil(s.player(b).PartnerID)
	s.Equal(b, *s.player(a).PartnerID)
	s.Equal(a, *s.player(b).PartnerID)
	s.Nil(s.player(prev).PartnerID)
	s.Equal(2, *s.player(a).TeamID)
	s.Equal(1, *s.player(prev).TeamID)
	s.assertPartnersSymmetric()
}

func (s *SessionSuite) TestMovePlayerToEmptyTeam() {
	a := s.join("A")
	b := s.join("B")
	s.session.AutoPair()

	s.Require().NoError(s.session.MovePlayer(a, 7))

	s.Equal(7, *s.player(a).TeamID)
	s.Nil(s.player(a).PartnerID)
	s.Nil(s.player(b).PartnerID)
	s.Equal(2, s.session.TeamCount())
	s.assertPartnersSymmetric()
}

func (s *SessionSuite) TestMovePlayerRejectsFullTeam() {
	a := s.join("A")
	b := s.join("B")
	c := s.join("C")
	s.Require().NoError(s.session.MovePlayer(a, 1))
	s.Require().NoError(s.session.MovePlayer(b, 1))
	s.Require().NoError(s.session.MovePlayer(c, 2))

	err := s.session.MovePlayer(c, 1)
	s.ErrorIs(err, model.ErrTeamFull)
	s.Equal(2, *s.player(c).TeamID)
	s.Equal(b, *s.player(a).PartnerID)
	s.assertPartnersSymmetric()
}

func (s *SessionSuite) TestMovePlayerSameTeamIsNoOp() {
	a := s.join("A")
	b := s.join("B")
	s.Require().NoError(s.session.MovePlayer(a, 1))
	s.Require().NoError(s.session.MovePlayer(b, 1))

	s.Require().NoError(s.session.MovePlayer(a, 1))
	s.Equal(b, *s.player(a).PartnerID)
}

func (s *SessionSuite) TestMovePlayerAdoptsTeamRole() {
	a := s.join("A")
	b := s.join("B")
	s.Require().NoError(s.session.MovePlayer(a, 1))
	s.Require().NoError(s.session.MovePlayer(b, 2))
	s.Require().NoError(s.session.SetSeeker(a))

	s.Require().NoError(s.session.MovePlayer(b, 1))
	s.Equal(model.RoleSeeker, s.player(b).Role)
}

func (s *SessionSuite) TestMovePlayerValidation() {
	a := s.join("A")
	s.ErrorIs(s.session.MovePlayer(a, 0), model.ErrInvalidTeam)
	s.ErrorIs(s.session.MovePlayer("nobody", 1), model.ErrUnknownPlayer)
}
