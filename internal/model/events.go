package model

// EventType identifies an event on the wire
type EventType string

// Inbound events sent by beacons and director consoles
const (
	EventJoin           EventType = "join"
	EventUpdateLocation EventType = "update_location"
	EventLeave          EventType = "leave"

	EventStartGame        EventType = "start_game"
	EventResetGame        EventType = "reset_game"
	EventUpdateZone       EventType = "update_zone"
	EventBroadcastMessage EventType = "broadcast_message"
	EventKickPlayer       EventType = "kick_player"
	EventMovePlayer       EventType = "move_player"
	EventSetSeeker        EventType = "set_seeker"
	EventAutoPair         EventType = "auto_pair"
	EventForceHint        EventType = "force_hint"
)

// Outbound events produced by the session
const (
	EventStateUpdate   EventType = "state_update"
	EventJoinResult    EventType = "join_result"
	EventGameStarted   EventType = "game_started"
	EventGameReset     EventType = "game_reset"
	EventZoneWarning   EventType = "zone_warning"
	EventZoneSafe      EventType = "zone_safe"
	EventGameEvent     EventType = "game_event"
	EventHint          EventType = "hint"
	EventPlayerRemoved EventType = "player_removed"
)

// Event is an outbound message with a type-specific payload
type Event struct {
	Type    EventType
	Payload any
}

// JoinRequest is the payload of a join event
type JoinRequest struct {
	Name     string `json:"name"`
	Password string `json:"password,omitempty"`
}

// JoinResultPayload answers a join request
type JoinResultPayload struct {
	Success  bool     `json:"success"`
	PlayerID PlayerID `json:"playerId,omitempty"`
	Message  string   `json:"message,omitempty"`
}

// LocationRequest is the payload of an update_location event
type LocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Coordinates fails with ErrInvalidLocation when either field is absent
func (r LocationRequest) Coordinates() (Coordinates, error) {
	if r.Latitude == nil || r.Longitude == nil {
		return Coordinates{}, ErrInvalidLocation
	}
	return Coordinates{Latitude: *r.Latitude, Longitude: *r.Longitude}, nil
}

// ZoneRequest is the payload of an update_zone event
type ZoneRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Radius    *float64 `json:"radius"`
}

// Zone fails with ErrInvalidZone when any field is absent
func (r ZoneRequest) Zone() (Zone, error) {
	if r.Latitude == nil || r.Longitude == nil || r.Radius == nil {
		return Zone{}, ErrInvalidZone
	}
	return Zone{Latitude: *r.Latitude, Longitude: *r.Longitude, Radius: *r.Radius}, nil
}

// MovePlayerRequest is the payload of a move_player event
type MovePlayerRequest struct {
	PlayerID  PlayerID `json:"playerId"`
	NewTeamID int      `json:"newTeamId"`
}

// PlayerRequest carries a single player id (kick_player, set_seeker)
type PlayerRequest struct {
	PlayerID PlayerID `json:"playerId"`
}

// MessageRequest is the payload of a broadcast_message event
type MessageRequest struct {
	Text string `json:"text"`
}

// ZoneWarningPayload is sent to a player outside the zone
type ZoneWarningPayload struct {
	Distance float64 `json:"distance"`
	Radius   float64 `json:"radius"`
	TimeLeft int     `json:"timeLeft"` // seconds
	Warning  int     `json:"warning"`  // 1-based count
}

// GameEventPayload is an informational banner
type GameEventPayload struct {
	Text string `json:"text"`
}

// HintPayload reveals a hider's position to seekers
type HintPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RemovalReason explains a player_removed event
type RemovalReason string

const (
	RemovalKicked      RemovalReason = "kicked"
	RemovalZoneTimeout RemovalReason = "zone_timeout"
)

// PlayerRemovedPayload is the terminal event sent to a removed player
type PlayerRemovedPayload struct {
	Reason RemovalReason `json:"reason"`
}

// GameResetPayload tells a connection to discard its stored identity
type GameResetPayload struct {
	Reason string `json:"reason,omitempty"`
}
