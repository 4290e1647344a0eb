package realtime

import (
	"encoding/json"
	"fmt"

	"github.com/mcoot/zonehunt/internal/model"
)

// Envelope is the wire frame used in both directions
type Envelope struct {
	Event model.EventType `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Encode marshals an outbound event into an envelope
func Encode(event model.Event) ([]byte, error) {
	data, err := json.Marshal(event.Payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", event.Type, err)
	}
	return json.Marshal(Envelope{Event: event.Type, Data: data})
}

// Decode parses an inbound frame. The payload is left raw for the dispatcher.
func Decode(message []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(message, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Event == "" {
		return Envelope{}, fmt.Errorf("decode envelope: missing event")
	}
	return env, nil
}

// DecodePayload unmarshals an envelope's data into v
func DecodePayload(env Envelope, v any) error {
	if len(env.Data) == 0 {
		return fmt.Errorf("%s: missing data", env.Event)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("%s: %w", env.Event, err)
	}
	return nil
}
