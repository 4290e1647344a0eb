package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case HealthResult:
		o.printHealthResult(v)
	case Account:
		o.printAccount(v)
	case VerifyResult:
		o.printVerifyResult(v)
	case GameState:
		o.printGameState(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type
type HealthResult struct {
	Status  string `json:"status"`
	Phase   string `json:"phase,omitempty"`
	Players int    `json:"players"`
}

// Account response type
type Account struct {
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

// VerifyResult response type
type VerifyResult struct {
	Valid bool `json:"valid"`
}

// Zone response type
type Zone struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius"`
}

// Location response type
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ZoneStatus response type
type ZoneStatus struct {
	IsOutside bool `json:"isOutside"`
	TimeLeft  int  `json:"timeLeft"`
}

// PlayerState is one roster entry of the director view
type PlayerState struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Connected  bool       `json:"connected"`
	Location   *Location  `json:"location"`
	TeamID     *int       `json:"teamId"`
	PartnerID  *string    `json:"partnerId"`
	Role       string     `json:"role,omitempty"`
	ZoneStatus ZoneStatus `json:"zoneStatus"`
}

// GameState is the director view returned by every director command
type GameState struct {
	Phase     string        `json:"phase"`
	Zone      Zone          `json:"zone"`
	TeamCount int           `json:"teamCount"`
	Players   []PlayerState `json:"players"`
}

func (o *Output) printHealthResult(h HealthResult) {
	_, _ = fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	if h.Phase != "" {
		_, _ = fmt.Fprintf(o.w, "Phase: %s\n", h.Phase)
		_, _ = fmt.Fprintf(o.w, "Players: %d\n", h.Players)
	}
}

func (o *Output) printAccount(a Account) {
	_, _ = fmt.Fprintf(o.w, "Account: %s\n", a.Username)
	_, _ = fmt.Fprintf(o.w, "Created: %s\n", a.CreatedAt)
}

func (o *Output) printVerifyResult(v VerifyResult) {
	if v.Valid {
		_, _ = fmt.Fprintln(o.w, "Credentials valid")
	} else {
		_, _ = fmt.Fprintln(o.w, "Credentials invalid")
	}
}

func (o *Output) printGameState(g GameState) {
	_, _ = fmt.Fprintf(o.w, "Phase: %s\n", g.Phase)
	_, _ = fmt.Fprintf(o.w, "Zone: %.5f, %.5f (radius %.0fm)\n", g.Zone.Latitude, g.Zone.Longitude, g.Zone.Radius)
	_, _ = fmt.Fprintf(o.w, "Teams: %d\n", g.TeamCount)
	_, _ = fmt.Fprintf(o.w, "Players (%d):\n", len(g.Players))
	for _, p := range g.Players {
		_, _ = fmt.Fprintf(o.w, "  - %s\n", formatPlayer(p))
	}
}

func formatPlayer(p PlayerState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)", p.Name, p.ID)
	if p.TeamID != nil {
		fmt.Fprintf(&b, " team %d", *p.TeamID)
	}
	if p.Role != "" {
		fmt.Fprintf(&b, " %s", p.Role)
	}
	if !p.Connected {
		b.WriteString(" [offline]")
	}
	if p.Location == nil {
		b.WriteString(" [no fix]")
	}
	if p.ZoneStatus.IsOutside {
		fmt.Fprintf(&b, " OUTSIDE %ds left", p.ZoneStatus.TimeLeft)
	}
	return b.String()
}
