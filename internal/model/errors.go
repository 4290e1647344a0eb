package model

import "errors"

// Common errors used across the application
var (
	// Registry errors
	ErrNameTaken      = errors.New("name is already taken")
	ErrInvalidName    = errors.New("invalid display name")
	ErrPhaseNotLobby  = errors.New("game is not in the lobby phase")
	ErrUnknownPlayer  = errors.New("unknown player")
	ErrPlayerNotFound = errors.New("player not found")

	// Storage errors
	ErrAccountExists = errors.New("account already exists")

	// Command errors
	ErrNotDirector     = errors.New("connection is not a director")
	ErrInvalidLocation = errors.New("invalid location")
	ErrInvalidZone     = errors.New("invalid zone")
	ErrInvalidTeam     = errors.New("invalid team")
	ErrTeamFull        = errors.New("team already has two players")

	// Engine errors
	ErrEngineStopped = errors.New("engine is not running")
)
