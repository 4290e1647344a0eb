package session

import (
	"time"

	"github.com/mcoot/zonehunt/internal/model"
)

// StartGame tests

func (s *SessionSuite) TestStartGameRequiresPlayers() {
	s.False(s.session.StartGame())
	s.Equal(model.PhaseLobby, s.session.Phase())
	s.False(s.session.HintPending())
}

func (s *SessionSuite) TestStartGameTransitions() {
	s.join("Alice")
	s.join("Bob")
	s.join("Carol")
	s.session.AutoPair()

	s.Require().True(s.session.StartGame())

	s.Equal(model.PhaseInProgress, s.session.Phase())
	s.Equal(2, s.session.TeamCount())
	s.True(s.session.HintPending())
	s.Require().NotEmpty(s.publisher.all)
	s.Equal(model.EventGameStarted, s.publisher.all[len(s.publisher.all)-1].Type)
	s.Equal(model.PhaseInProgress, s.publisher.lastDirectorView().Phase)
}

func (s *SessionSuite) TestStartGameWithoutPairingHasNoTeams() {
	s.join("Alice")
	s.Require().True(s.session.StartGame())
	s.Zero(s.session.TeamCount())
}

func (s *SessionSuite) TestStartGameIsNoOpWhenInProgress() {
	s.join("Alice")
	s.Require().True(s.session.StartGame())
	s.publisher.reset()

	s.False(s.session.StartGame())
	s.Empty(s.publisher.all)
}

// ResetGame tests

func (s *SessionSuite) TestResetGameClearsRoundState() {
	alice := s.join("Alice")
	s.join("Bob")
	s.session.AutoPair()
	s.Require().NoError(s.session.SetSeeker(alice))
	s.Require().True(s.session.StartGame())
	s.moveTo(alice, 150)
	s.clock.Advance(time.Second)
	s.session.Tick()

	s.session.ResetGame()

	s.Equal(model.PhaseLobby, s.session.Phase())
	s.Zero(s.session.TeamCount())
	s.False(s.session.HintPending())
	s.Equal(2, s.session.PlayerCount())
	for _, p := range s.session.roster() {
		s.Nil(p.TeamID)
		s.Nil(p.PartnerID)
		s.Equal(model.RoleNone, p.Role)
		s.False(p.Violation.Outside)
	}
}

func (s *SessionSuite) TestResetGameIsIdempotent() {
	alice := s.join("Alice")
	s.join("Bob")
	s.session.AutoPair()
	s.Require().NoError(s.session.SetSeeker(alice))
	s.Require().True(s.session.StartGame())

	s.session.ResetGame()
	once := s.session.DirectorView()
	s.session.ResetGame()
	twice := s.session.DirectorView()

	s.Equal(once, twice)
}

func (s *SessionSuite) TestResetGameCancelsHintTimer() {
	alice := s.join("Alice")
	bob := s.join("Bob")
	s.Require().NoError(s.session.MovePlayer(alice, 1))
	s.Require().NoError(s.session.MovePlayer(bob, 2))
	s.Require().NoError(s.session.SetSeeker(alice))
	s.moveTo(bob, 10)
	s.Require().True(s.session.StartGame())

	s.session.ResetGame()
	s.Zero(s.clock.PendingTimers())

	s.clock.Advance(10 * time.Minute)
	s.Empty(s.publisher.eventsFor(connFor("Alice"), model.EventHint))
}

func (s *SessionSuite) TestResetGameClearRosterPolicy() {
	s.cfg.ResetPolicy = model.ResetClearRoster
	s.newSession()
	s.join("Alice")
	bob := s.join("Bob")
	s.session.Unbind(connFor("Bob"))
	s.Require().True(s.session.StartGame())

	s.session.ResetGame()

	s.Zero(s.session.PlayerCount())
	s.Len(s.publisher.eventsFor(connFor("Alice"), model.EventGameReset), 1)
	_, ok := s.session.Player(bob)
	s.False(ok)
	s.Empty(s.publisher.lastDirectorView().Players)

	// a second reset changes nothing
	s.session.ResetGame()
	s.Zero(s.session.PlayerCount())
	s.Equal(model.PhaseLobby, s.session.Phase())
}

func (s *SessionSuite) TestResetGameReopensJoin() {
	s.join("Alice")
	s.Require().True(s.session.StartGame())
	s.session.ResetGame()

	_, err := s.session.Join("Bob", "conn-bob")
	s.NoError(err)
}

// UpdateZone tests

func (s *SessionSuite) TestUpdateZone() {
	zone := model.Zone{Latitude: 51, Longitude: 26, Radius: 250}
	s.Require().NoError(s.session.UpdateZone(zone))

	s.Equal(zone, s.session.Zone())
	s.Equal(zone, s.publisher.lastDirectorView().Zone)
}

func (s *SessionSuite) TestUpdateZoneRejectsInvalid() {
	before := s.session.Zone()
	err := s.session.UpdateZone(model.Zone{Latitude: 51, Longitude: 26, Radius: 0})
	s.ErrorIs(err, model.ErrInvalidZone)
	s.Equal(before, s.session.Zone())
}

// BroadcastMessage tests

func (s *SessionSuite) TestBroadcastMessage() {
	s.session.BroadcastMessage("  Ten minutes left  ")

	s.Require().Len(s.publisher.all, 1)
	s.Equal(model.EventGameEvent, s.publisher.all[0].Type)
	s.Equal(model.GameEventPayload{Text: "Ten minutes left"}, s.publisher.all[0].Payload)
}

func (s *SessionSuite) TestBroadcastMessageIgnoresBlank() {
	s.session.BroadcastMessage("   ")
	s.Empty(s.publisher.all)
}
