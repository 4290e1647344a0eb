package realtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed between pongs before the connection is considered dead
	pongWait = 60 * time.Second

	// Ping cadence, must be shorter than pongWait
	pingPeriod = 25 * time.Second

	// Largest inbound frame accepted
	maxMessageSize = 64 * 1024
)

// writePump drains the client's send queue onto the socket. It owns all writes.
func (h *Handler) writePump(ws *websocket.Conn, client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = ws.Close()
	}()

	for {
		select {
		case event, ok := <-client.send:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			data, err := Encode(event)
			if err != nil {
				h.logger.Error("failed to encode event",
					slog.String("event", string(event.Type)),
					slog.Any("error", err))
				continue
			}
			if err := ws.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump decodes inbound frames and dispatches them until the socket closes
func (h *Handler) readPump(ctx context.Context, ws *websocket.Conn, client *Client) {
	ws.SetReadLimit(maxMessageSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read error",
					slog.String("conn_id", string(client.conn)),
					slog.Any("error", err))
			}
			return
		}

		env, err := Decode(message)
		if err != nil {
			h.logger.Debug("ignoring malformed frame",
				slog.String("conn_id", string(client.conn)),
				slog.Any("error", err))
			continue
		}
		h.dispatch(ctx, client, env)
	}
}
