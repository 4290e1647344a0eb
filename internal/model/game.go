package model

// Phase is the current stage of the session
type Phase string

const (
	PhaseLobby      Phase = "LOBBY"
	PhaseInProgress Phase = "IN_PROGRESS"
)

// ResetPolicy decides what reset_game does with the roster
type ResetPolicy string

const (
	ResetKeepRoster  ResetPolicy = "keep_roster"
	ResetClearRoster ResetPolicy = "clear_roster"
)

// MaxDisplayNameLength bounds display names in runes
const MaxDisplayNameLength = 32
