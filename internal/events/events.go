package events

import "encoding/json"

// Pub/Sub channel constants
const (
	EventsChannel = "channel:events"
)

// Event types published on EventsChannel.
const (
	TypeGameFinished  = "game_finished"
	TypeSessionOpened = "session_opened"
	TypeSessionClosed = "session_closed"
)

// Event represents a global message published via Pub/Sub.
type Event struct {
	Type    string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// GameFinishedPayload is the payload for the "game_finished" event.
type GameFinishedPayload struct {
	SessionID string `json:"session_id"`
	Player    string `json:"player"`
	Winner    string `json:"winner"`
	Moves     int    `json:"moves"`
	Mode      string `json:"mode"`
}

// SessionOpenedPayload is the payload for the "session_opened" event.
type SessionOpenedPayload struct {
	SessionID string `json:"session_id"`
	Mode      string `json:"mode"`
	Resumed   bool   `json:"resumed"`
}

// SessionClosedPayload is the payload for the "session_closed" event.
type SessionClosedPayload struct {
	SessionID string `json:"session_id"`
}

// Marshal wraps a payload into a serialized Event envelope.
func Marshal(eventType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Type: eventType, Payload: raw})
}
