package request

// AccountRequest is the request body for registering or verifying an account
type AccountRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ZoneRequest is the request body for replacing the zone
type ZoneRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Radius    float64  `json:"radius"`
}

// MessageRequest is the request body for a broadcast banner
type MessageRequest struct {
	Text string `json:"text"`
}

// MoveRequest is the request body for moving a player to a team
type MoveRequest struct {
	TeamID int `json:"team_id"`
}
