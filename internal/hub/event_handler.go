package hub

import (
	"context"
	"encoding/json"
	"log/slog"

	"tictactoe-replay/internal/events"
	"tictactoe-replay/internal/game"
	"tictactoe-replay/internal/session"
)

// runEventSubscriber consumes the global events channel and keeps the
// leaderboard and per-player stats up to date.
func (h *Hub) runEventSubscriber(ctx context.Context) {
	sub := h.rdb.Subscribe(ctx, events.EventsChannel)
	defer func() { _ = sub.Close() }()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.handleEvent(ctx, []byte(msg.Payload))
		}
	}
}

func (h *Hub) handleEvent(ctx context.Context, raw []byte) {
	var event events.Event
	if err := json.Unmarshal(raw, &event); err != nil {
		slog.ErrorContext(ctx, "failed to decode event", "error", err)
		return
	}

	switch event.Type {
	case events.TypeGameFinished:
		var payload events.GameFinishedPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			slog.ErrorContext(ctx, "failed to decode game_finished payload", "error", err)
			return
		}
		h.handleGameFinished(ctx, &payload)

	case events.TypeSessionOpened, events.TypeSessionClosed:
		// Logged for operators; no state change.
		slog.DebugContext(ctx, "session lifecycle event", "event.type", event.Type)
	}
}

// handleGameFinished credits the leaderboard and player stats. In bot mode
// only a human (X) win counts as a win for the player; in hotseat games the
// session's player gets credit for either mark.
func (h *Hub) handleGameFinished(ctx context.Context, payload *events.GameFinishedPayload) {
	slog.InfoContext(ctx, "game finished",
		"session.id", payload.SessionID, "winner", payload.Winner, "mode", payload.Mode, "moves", payload.Moves)

	if payload.Player == "" {
		return
	}

	result := resultFor(payload)
	if result == "" {
		return
	}

	if result == "win" {
		if err := h.leaderboard.RecordWin(ctx, payload.Player); err != nil {
			slog.ErrorContext(ctx, "failed to record leaderboard win", "player", payload.Player, "error", err)
		}
	}

	if err := h.stats.RecordResult(ctx, payload.Player, result); err != nil {
		slog.ErrorContext(ctx, "failed to record player result", "player", payload.Player, "error", err)
	}
}

// resultFor maps a finished game onto the player's record.
func resultFor(payload *events.GameFinishedPayload) string {
	switch {
	case payload.Winner == "":
		return "draw"
	case payload.Mode != session.ModeBot:
		return "win"
	case payload.Winner == string(game.PlayerX):
		return "win"
	default:
		return "loss"
	}
}

// publishSessionClosed announces a session's end on the events channel.
func (h *Hub) publishSessionClosed(ctx context.Context, sessionID string) {
	payload, err := events.Marshal(events.TypeSessionClosed, events.SessionClosedPayload{
		SessionID: sessionID,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode session_closed event", "error", err)
		return
	}
	if err := h.rdb.Publish(ctx, events.EventsChannel, payload).Err(); err != nil {
		slog.WarnContext(ctx, "failed to publish session_closed event", "error", err)
	}
}

// publishSessionOpened announces a new or resumed session on the events
// channel.
func (h *Hub) publishSessionOpened(ctx context.Context, s *session.Session, resumed bool) {
	payload, err := events.Marshal(events.TypeSessionOpened, events.SessionOpenedPayload{
		SessionID: s.ID,
		Mode:      s.Mode(),
		Resumed:   resumed,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode session_opened event", "error", err)
		return
	}
	if err := h.rdb.Publish(ctx, events.EventsChannel, payload).Err(); err != nil {
		slog.WarnContext(ctx, "failed to publish session_opened event", "error", err)
	}
}
