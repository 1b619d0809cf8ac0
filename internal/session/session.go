package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"tictactoe-replay/internal/events"
	"tictactoe-replay/internal/game"
	"tictactoe-replay/internal/repository"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const heartbeatInterval = 10 * time.Second

var tracer = otel.Tracer("session")

// Publisher is the slice of the Redis client the session needs for events.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Game modes.
const (
	ModeHotseat = "hotseat"
	ModeBot     = "bot"
)

// Session owns one client's game. The engine is the single writer of game
// state; the client holds nothing but the rendered view. All messages for a
// session pass through one goroutine, so every command is fully applied and
// re-broadcast before the next one is looked at.
type Session struct {
	ID         string
	PlayerName string

	conn       Conn
	engine     *game.Engine
	mode       string
	difficulty string

	pub      Publisher
	sessions repository.SessionRepository
	archive  repository.ArchiveRepository

	incoming chan []byte
	Done     chan struct{}

	// archived guards against storing the same finished game twice when the
	// client revisits a terminal snapshot.
	archived bool
}

// New creates a session around an engine. The engine may be freshly created
// or restored from the session repository on reconnect.
func New(id, playerName string, conn Conn, engine *game.Engine, mode, difficulty string,
	pub Publisher, sessions repository.SessionRepository, archive repository.ArchiveRepository,
) *Session {
	if mode != ModeBot {
		mode = ModeHotseat
	}
	return &Session{
		ID:         id,
		PlayerName: playerName,
		conn:       conn,
		engine:     engine,
		mode:       mode,
		difficulty: difficulty,
		pub:        pub,
		sessions:   sessions,
		archive:    archive,
		incoming:   make(chan []byte, 10),
		Done:       make(chan struct{}),
	}
}

// Mode returns the session's game mode.
func (s *Session) Mode() string {
	return s.mode
}

// Start launches the read pump and the command loop, then blocks until the
// session ends and reports itself on unregister.
func (s *Session) Start(unregister chan<- *Session) {
	go s.readPump()
	s.run()
	unregister <- s
}

// run is the single goroutine that owns the engine.
func (s *Session) run() {
	pingTicker := time.NewTicker(heartbeatInterval)
	defer pingTicker.Stop()

	s.sendAssigned(context.Background())
	s.pushState(context.Background())

	for {
		select {
		case <-s.Done:
			slog.Info("session loop stopping", "session.id", s.ID)
			return

		case raw, ok := <-s.incoming:
			if !ok {
				return
			}
			s.HandleMessage(context.Background(), raw)

		case <-pingTicker.C:
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				slog.Warn("failed to ping client, closing session", "session.id", s.ID, "error", err)
				s.Close()
				return
			}
		}
	}
}

// readPump moves raw client messages onto the session's command channel.
func (s *Session) readPump() {
	defer s.Close()
	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			slog.Info("client read ended", "session.id", s.ID, "error", err)
			return
		}
		select {
		case s.incoming <- raw:
		case <-s.Done:
			return
		}
	}
}

// Close shuts the session down. readPump and run both funnel through here,
// coordinated by Done.
func (s *Session) Close() {
	select {
	case <-s.Done:
	default:
		close(s.Done)
		_ = s.conn.Close()
	}
}

// persist writes the engine state through to Redis so the client can
// reconnect. A failed write is logged, not fatal: the in-memory engine
// stays authoritative for the live connection.
func (s *Session) persist(ctx context.Context) {
	if err := s.sessions.Save(ctx, s.ID, s.mode, s.difficulty, s.engine); err != nil {
		slog.ErrorContext(ctx, "failed to persist session state", "session.id", s.ID, "error", err)
	}
}

// finishGame archives a game that just reached a terminal snapshot and
// publishes a game_finished event for the stats pipeline.
func (s *Session) finishGame(ctx context.Context) {
	status := s.engine.Status()
	if status == game.StatusInProgress || s.archived {
		return
	}

	ctx, span := tracer.Start(ctx, "session.finishGame", trace.WithAttributes(
		attribute.String("session.id", s.ID),
		attribute.String("game.status", string(status)),
	))
	defer span.End()

	s.archived = true
	winner := s.engine.Winner()

	moves := s.engine.MoveSequence()
	movesJSON, err := json.Marshal(moves)
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode move sequence", "session.id", s.ID, "error", err)
		return
	}

	record := &repository.ArchivedGame{
		ID:         uuid.New().String(),
		Mode:       s.mode,
		Difficulty: s.difficulty,
		Winner:     string(winner),
		Status:     string(status),
		MovesJSON:  string(movesJSON),
	}
	if err := s.archive.Insert(ctx, record); err != nil {
		slog.ErrorContext(ctx, "failed to archive finished game", "session.id", s.ID, "error", err)
	}

	payload, err := events.Marshal(events.TypeGameFinished, events.GameFinishedPayload{
		SessionID: s.ID,
		Player:    s.PlayerName,
		Winner:    string(winner),
		Moves:     len(moves),
		Mode:      s.mode,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode game_finished event", "session.id", s.ID, "error", err)
		return
	}
	if err := s.pub.Publish(ctx, events.EventsChannel, payload).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to publish game_finished event", "session.id", s.ID, "error", err)
	}
}
