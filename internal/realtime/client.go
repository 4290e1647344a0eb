package realtime

import (
	"time"

	"github.com/mcoot/zonehunt/internal/model"
)

// Buffer size for outgoing messages
const sendBufferSize = 256

// Client is one live connection registered with the hub
type Client struct {
	conn        model.ConnID
	director    bool
	send        chan model.Event
	connectedAt time.Time
}

// NewClient creates a client for a connection handle
func NewClient(conn model.ConnID, director bool) *Client {
	return &Client{
		conn:        conn,
		director:    director,
		send:        make(chan model.Event, sendBufferSize),
		connectedAt: time.Now(),
	}
}

// ConnID returns the connection handle
func (c *Client) ConnID() model.ConnID {
	return c.conn
}

// IsDirector reports whether the connection carries director capability
func (c *Client) IsDirector() bool {
	return c.director
}

// Events returns the client's outgoing queue. It is closed when the client is
// unregistered or the hub stops.
func (c *Client) Events() <-chan model.Event {
	return c.send
}
