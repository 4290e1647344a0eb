package model

import "time"

// PlayerID durably identifies a player across reconnections
type PlayerID string

// ConnID identifies a single live connection
type ConnID string

// Role is the part a player plays during a round
type Role string

const (
	RoleNone   Role = ""
	RoleSeeker Role = "seeker"
	RoleHider  Role = "hider"
)

// Coordinates is a WGS84 latitude/longitude pair in degrees
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Violation tracks a player's time outside the zone
type Violation struct {
	Outside     bool
	Since       time.Time
	LastWarning time.Time
	Warnings    int

	// Frozen is time spent unbound while outside, excluded from Elapsed
	Frozen time.Duration
	// DisconnectedAt is set while the player is unbound and outside
	DisconnectedAt *time.Time
}

// Elapsed returns how long the player has counted as outside at now
func (v *Violation) Elapsed(now time.Time) time.Duration {
	if !v.Outside {
		return 0
	}
	end := now
	if v.DisconnectedAt != nil && v.DisconnectedAt.Before(now) {
		end = *v.DisconnectedAt
	}
	elapsed := end.Sub(v.Since) - v.Frozen
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Player is a roster entry owned by the session for its full lifetime
type Player struct {
	ID          PlayerID
	DisplayName string
	Conn        *ConnID      // nil while disconnected
	Location    *Coordinates // nil until the first valid report
	Violation   Violation
	TeamID      *int
	PartnerID   *PlayerID
	Role        Role
	JoinedAt    time.Time

	// DangerLevel is recomputed on every broadcast and never carried between ticks
	DangerLevel int
}

// IsConnected returns true if the player has a bound connection
func (p *Player) IsConnected() bool {
	return p.Conn != nil
}

// ClearRoundState drops per-round data: violation, pairing and role
func (p *Player) ClearRoundState() {
	p.Violation = Violation{}
	p.TeamID = nil
	p.PartnerID = nil
	p.Role = RoleNone
	p.DangerLevel = 0
}

// RegisteredPlayer is a stored credential for a display name
type RegisteredPlayer struct {
	Username     string // stored lower-cased
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
}
