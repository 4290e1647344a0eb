package realtime

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/zonehunt/internal/model"
)

const outboxSize = 1024

type audience int

const (
	audienceOne audience = iota
	audienceDirectors
	audienceAll
)

type delivery struct {
	audience audience
	conn     model.ConnID
	event    model.Event
}

// Hub tracks live connections and fans out session events to them.
// It implements session.Publisher; publishing never blocks the caller.
type Hub struct {
	clients map[model.ConnID]*Client
	mu      sync.RWMutex
	logger  *slog.Logger

	register   chan *Client
	unregister chan *Client
	outbox     chan delivery
	done       chan struct{}
	closeOnce  sync.Once
}

// NewHub creates a hub. Call Run to start delivering.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[model.ConnID]*Client),
		logger:     logger.With(slog.String("component", "hub")),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		outbox:     make(chan delivery, outboxSize),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	h.logger.Info("hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.conn] = client
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("client registered",
				slog.String("conn_id", string(client.conn)),
				slog.Bool("director", client.director),
				slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			if current, ok := h.clients[client.conn]; ok && current == client {
				delete(h.clients, client.conn)
				close(client.send)
				clientCount := len(h.clients)
				h.mu.Unlock()
				h.logger.Info("client unregistered",
					slog.String("conn_id", string(client.conn)),
					slog.Duration("connection_duration", time.Since(client.connectedAt)),
					slog.Int("total_clients", clientCount))
			} else {
				h.mu.Unlock()
			}

		case d := <-h.outbox:
			h.deliver(d)

		case <-h.done:
			h.mu.Lock()
			clientCount := len(h.clients)
			for conn, client := range h.clients {
				close(client.send)
				delete(h.clients, conn)
			}
			h.mu.Unlock()
			h.logger.Info("hub stopped", slog.Int("disconnected_clients", clientCount))
			return
		}
	}
}

func (h *Hub) deliver(d delivery) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	switch d.audience {
	case audienceOne:
		if client, ok := h.clients[d.conn]; ok {
			h.push(client, d.event)
		}
	case audienceDirectors:
		for _, client := range h.clients {
			if client.director {
				h.push(client, d.event)
			}
		}
	case audienceAll:
		for _, client := range h.clients {
			h.push(client, d.event)
		}
	}
}

// push hands an event to a client without blocking; a full buffer drops it
func (h *Hub) push(client *Client, event model.Event) {
	select {
	case client.send <- event:
	default:
		h.logger.Warn("message dropped - client buffer full",
			slog.String("conn_id", string(client.conn)),
			slog.String("event", string(event.Type)))
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

// Unregister removes a client from the hub and closes its send queue
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Send queues an event for one connection
func (h *Hub) Send(conn model.ConnID, event model.Event) {
	h.enqueue(delivery{audience: audienceOne, conn: conn, event: event})
}

// SendDirectors queues an event for every director connection
func (h *Hub) SendDirectors(event model.Event) {
	h.enqueue(delivery{audience: audienceDirectors, event: event})
}

// SendAll queues an event for every connection
func (h *Hub) SendAll(event model.Event) {
	h.enqueue(delivery{audience: audienceAll, event: event})
}

func (h *Hub) enqueue(d delivery) {
	select {
	case h.outbox <- d:
	default:
		h.logger.Warn("message dropped - hub buffer full", slog.String("event", string(d.event.Type)))
	}
}

// Close shuts down the hub
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
