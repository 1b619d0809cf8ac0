package proto

import "tictactoe-replay/internal/game"

// Message types accepted from clients.
const (
	TypeMove    = "move"
	TypeJump    = "jump"
	TypeNewGame = "new_game"
)

// Message types pushed to clients.
const (
	TypeState    = "state"
	TypeAssigned = "session_assigned"
)

// ClientToServerMessage represents a message from the client to the server.
type ClientToServerMessage struct {
	Type string `json:"type" validate:"required,oneof=move jump new_game"`
	Cell *int   `json:"cell,omitempty" validate:"omitempty,min=0,max=8"`
	Step *int   `json:"step,omitempty" validate:"omitempty,min=0"`
}

// ServerToClientMessage carries the full derived view state. Clients render
// from it alone; they hold no game state of their own.
type ServerToClientMessage struct {
	Type   string           `json:"type" validate:"required"`
	Board  []game.Mark      `json:"board,omitempty"`
	Next   game.Mark        `json:"next,omitempty"`
	Winner game.Mark        `json:"winner,omitempty"`
	Status game.Status      `json:"status,omitempty"`
	Line   []int            `json:"line,omitempty"`
	Moves  []game.MoveLabel `json:"moves,omitempty"`
	Step   int              `json:"step"`
	Reason string           `json:"reason,omitempty"`
}

// SessionAssignedMessage informs a client of its session ID so it can
// reconnect to the same game later.
type SessionAssignedMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`
}
