package session

import (
	"context"
	"encoding/json"
	"log/slog"

	"tictactoe-replay/internal/bot"
	"tictactoe-replay/internal/game"
	"tictactoe-replay/internal/validator"
	"tictactoe-replay/pkg/proto"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// HandleMessage decodes, validates, and dispatches one client message.
func (s *Session) HandleMessage(ctx context.Context, rawMessage []byte) {
	ctx, span := tracer.Start(ctx, "session.HandleMessage", trace.WithAttributes(
		attribute.String("session.id", s.ID),
	))
	defer span.End()

	var message proto.ClientToServerMessage
	if err := json.Unmarshal(rawMessage, &message); err != nil {
		slog.ErrorContext(ctx, "error unmarshalling message", "session.id", s.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error unmarshalling message")
		return
	}

	if err := validator.GetValidator().Struct(message); err != nil {
		slog.WarnContext(ctx, "invalid message from client", "session.id", s.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid message format")
		return
	}

	span.SetAttributes(attribute.String("message.type", message.Type))

	switch message.Type {
	case proto.TypeMove:
		s.handleMove(ctx, &message)
	case proto.TypeJump:
		s.handleJump(ctx, &message)
	case proto.TypeNewGame:
		s.handleNewGame(ctx)
	}

	s.persist(ctx)
	s.pushState(ctx)
}

// handleMove feeds a cell click into the engine. Rejected moves change
// nothing; the state push that follows refreshes a possibly stale client.
func (s *Session) handleMove(ctx context.Context, message *proto.ClientToServerMessage) {
	if message.Cell == nil {
		slog.WarnContext(ctx, "move without cell", "session.id", s.ID)
		return
	}
	cell := *message.Cell

	ctx, span := tracer.Start(ctx, "session.handleMove", trace.WithAttributes(
		attribute.String("session.id", s.ID),
		attribute.Int("move.cell", cell),
	))
	defer span.End()

	// In bot mode the human holds X; a click while O is to move can only
	// come from a stale view and is ignored like any other invalid move.
	if s.mode == ModeBot && s.engine.ActivePlayer() != game.PlayerX {
		span.SetAttributes(attribute.Bool("move.accepted", false))
		return
	}

	accepted := s.engine.ApplyMove(cell)
	span.SetAttributes(attribute.Bool("move.accepted", accepted))
	if !accepted {
		slog.DebugContext(ctx, "move rejected", "session.id", s.ID, "move.cell", cell)
		return
	}

	// A fresh move obsoletes any earlier archive guard: the current branch
	// has not reached its terminal snapshot yet.
	s.archived = false

	if s.mode == ModeBot {
		s.playBotReply(ctx)
	}

	s.finishGame(ctx)
}

// playBotReply lets the bot answer while the game is open and it is O's turn.
func (s *Session) playBotReply(ctx context.Context) {
	if s.engine.Status() != game.StatusInProgress || s.engine.ActivePlayer() != game.PlayerO {
		return
	}

	cell := bot.CalculateMove(s.engine.Snapshot(), game.PlayerO, s.difficulty)
	if cell < 0 {
		return
	}
	if !s.engine.ApplyMove(cell) {
		slog.ErrorContext(ctx, "bot produced an invalid move", "session.id", s.ID, "move.cell", cell)
	}
}

// handleJump moves the history pointer. Jumping never mutates history, so
// there is nothing to archive and nothing to reject loudly.
func (s *Session) handleJump(ctx context.Context, message *proto.ClientToServerMessage) {
	if message.Step == nil {
		slog.WarnContext(ctx, "jump without step", "session.id", s.ID)
		return
	}

	_, span := tracer.Start(ctx, "session.handleJump", trace.WithAttributes(
		attribute.String("session.id", s.ID),
		attribute.Int("jump.step", *message.Step),
	))
	defer span.End()

	s.engine.JumpTo(*message.Step)
}

// handleNewGame replaces the engine with a fresh one.
func (s *Session) handleNewGame(ctx context.Context) {
	_, span := tracer.Start(ctx, "session.handleNewGame", trace.WithAttributes(
		attribute.String("session.id", s.ID),
	))
	defer span.End()

	s.engine = game.NewEngine()
	s.archived = false
}

// sendAssigned tells the client which session ID it holds so it can
// reconnect to the same game.
func (s *Session) sendAssigned(ctx context.Context) {
	data, err := json.Marshal(&proto.SessionAssignedMessage{
		Type:      proto.TypeAssigned,
		SessionID: s.ID,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal assigned message", "session.id", s.ID, "error", err)
		return
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.WarnContext(ctx, "failed to send assigned message", "session.id", s.ID, "error", err)
	}
}

// pushState sends the full derived view state to the client.
func (s *Session) pushState(ctx context.Context) {
	snapshot := s.engine.Snapshot()

	msg := &proto.ServerToClientMessage{
		Type:   proto.TypeState,
		Board:  snapshot[:],
		Next:   s.engine.ActivePlayer(),
		Winner: s.engine.Winner(),
		Status: s.engine.Status(),
		Moves:  s.engine.Moves(),
		Step:   s.engine.Step(),
	}
	if line, ok := game.WinningLine(snapshot); ok {
		msg.Line = line[:]
	}

	data, err := json.Marshal(msg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal state message", "session.id", s.ID, "error", err)
		return
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.WarnContext(ctx, "failed to push state to client", "session.id", s.ID, "error", err)
	}
}
