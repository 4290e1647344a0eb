package model

// ZoneStatus is a player's violation summary
type ZoneStatus struct {
	IsOutside bool `json:"isOutside"`
	TimeLeft  int  `json:"timeLeft"` // seconds until elimination, floored at 0
}

// PlayerSummary is the wire form of a player
type PlayerSummary struct {
	ID          PlayerID     `json:"id"`
	Name        string       `json:"name"`
	Connected   bool         `json:"connected"`
	Location    *Coordinates `json:"location"`
	TeamID      *int         `json:"teamId"`
	PartnerID   *PlayerID    `json:"partnerId"`
	Role        Role         `json:"role,omitempty"`
	ZoneStatus  ZoneStatus   `json:"zoneStatus"`
	DangerLevel *int         `json:"dangerLevel,omitempty"`
}

// DirectorView is the full state sent to director connections
type DirectorView struct {
	Phase     Phase           `json:"phase"`
	Zone      Zone            `json:"zone"`
	TeamCount int             `json:"teamCount"`
	Players   []PlayerSummary `json:"players"`
}

// PlayerView is the personal state sent to a single player connection
type PlayerView struct {
	Phase          Phase          `json:"phase"`
	Zone           Zone           `json:"zone"`
	Me             PlayerSummary  `json:"me"`
	Partner        *PlayerSummary `json:"partner,omitempty"`
	ZoneStatus     ZoneStatus     `json:"zoneStatus"`
	DangerLevel    *int           `json:"dangerLevel,omitempty"`
	ProximityLevel *int           `json:"proximityLevel,omitempty"`
}
