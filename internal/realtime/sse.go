package realtime

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mcoot/zonehunt/internal/model"
)

// Time between SSE keepalive comments
const ssePingPeriod = 30 * time.Second

// ServeEvents streams director events over SSE. The stream is read-only; the
// caller is expected to have checked director credentials.
func (h *Handler) ServeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	// The stream outlives the server's write timeout
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	client := NewClient(model.ConnID(h.newConnID()), true)
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	_, _ = w.Write([]byte("event: connected\ndata: {\"status\":\"connected\"}\n\n"))
	flusher.Flush()
	h.sendDirectorView(r.Context(), client.conn)

	ticker := time.NewTicker(ssePingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-client.send:
			if !ok {
				return
			}
			data, err := Encode(event)
			if err != nil {
				h.logger.Error("failed to encode event", slog.String("event", string(event.Type)), slog.Any("error", err))
				continue
			}
			if _, err := w.Write(formatSSEMessage(string(event.Type), string(data))); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// formatSSEMessage formats an SSE message; every data line gets its own prefix
func formatSSEMessage(eventName, data string) []byte {
	var b strings.Builder
	b.WriteString("event: " + eventName + "\n")
	data = strings.ReplaceAll(data, "\r", "")
	for _, line := range strings.Split(data, "\n") {
		b.WriteString("data: " + line + "\n")
	}
	b.WriteString("\n")
	return []byte(b.String())
}
