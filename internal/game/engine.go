package game

import (
	"encoding/json"
	"fmt"
)

// Engine owns the move history of a single game: an append-then-branch list
// of board snapshots plus a pointer at the snapshot currently in play.
// All mutation goes through ApplyMove and JumpTo; everything handed out is
// a copy, so callers can never reach back into stored snapshots.
type Engine struct {
	history []Board
	step    int
}

// MoveLabel is one entry of the navigable move list shown to the user.
type MoveLabel struct {
	Step  int    `json:"step"`
	Label string `json:"label"`
}

// NewEngine returns an engine holding a single empty snapshot with the
// pointer on it. X moves first.
func NewEngine() *Engine {
	return &Engine{
		history: []Board{{}},
		step:    0,
	}
}

// ApplyMove places the active player's mark at index and reports whether the
// move was accepted. A move on an occupied cell, on a finished game, or with
// an index outside the board is rejected with no state change. Rejection is
// silent: stale clicks are simply ignored.
//
// Accepting a move while the pointer sits before the end of history discards
// everything past the pointer before appending (undo-then-branch).
func (e *Engine) ApplyMove(index int) bool {
	if index < 0 || index >= BoardSize {
		return false
	}

	current := e.history[e.step]
	if current[index] != None {
		return false
	}
	if Winner(current) != None || IsFull(current) {
		return false
	}

	next := current // array copy
	next[index] = e.ActivePlayer()

	e.history = append(e.history[:e.step+1], next)
	e.step++
	return true
}

// JumpTo moves the pointer to an earlier or later snapshot without touching
// history. Out-of-range steps are ignored.
func (e *Engine) JumpTo(step int) {
	if step < 0 || step >= len(e.history) {
		return
	}
	e.step = step
}

// Snapshot returns a copy of the board at the pointer.
func (e *Engine) Snapshot() Board {
	return e.history[e.step]
}

// ActivePlayer is derived from pointer parity: X moves on even steps.
func (e *Engine) ActivePlayer() Mark {
	if e.step%2 == 0 {
		return PlayerX
	}
	return PlayerO
}

// Winner returns the mark holding a completed line at the pointer, or None.
func (e *Engine) Winner() Mark {
	return Winner(e.history[e.step])
}

// Status classifies the snapshot at the pointer.
func (e *Engine) Status() Status {
	return StatusOf(e.history[e.step])
}

// Step returns the pointer position.
func (e *Engine) Step() int {
	return e.step
}

// Len returns the number of snapshots, including the initial empty board.
func (e *Engine) Len() int {
	return len(e.history)
}

// Moves returns the ordered move list for history navigation.
func (e *Engine) Moves() []MoveLabel {
	moves := make([]MoveLabel, len(e.history))
	for i := range e.history {
		label := "Go to game start"
		if i > 0 {
			label = fmt.Sprintf("Go to move #%d", i)
		}
		moves[i] = MoveLabel{Step: i, Label: label}
	}
	return moves
}

// MoveSequence returns the cell index placed at each step, in play order,
// recovered by diffing consecutive snapshots.
func (e *Engine) MoveSequence() []int {
	moves := make([]int, 0, len(e.history)-1)
	for i := 1; i < len(e.history); i++ {
		for cell := range e.history[i] {
			if e.history[i][cell] != e.history[i-1][cell] {
				moves = append(moves, cell)
				break
			}
		}
	}
	return moves
}

// engineState is the serialized form used for session persistence.
type engineState struct {
	History []Board `json:"history"`
	Step    int     `json:"step"`
}

// MarshalState serializes the full history and pointer.
func (e *Engine) MarshalState() ([]byte, error) {
	return json.Marshal(engineState{History: e.history, Step: e.step})
}

// RestoreState rebuilds an engine from a MarshalState payload.
func RestoreState(data []byte) (*Engine, error) {
	var state engineState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal engine state: %w", err)
	}
	if len(state.History) == 0 {
		return nil, fmt.Errorf("engine state has empty history")
	}
	if state.Step < 0 || state.Step >= len(state.History) {
		return nil, fmt.Errorf("engine state pointer %d out of range", state.Step)
	}
	return &Engine{history: state.History, step: state.Step}, nil
}
