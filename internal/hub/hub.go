package hub

import (
	"context"
	"errors"
	"log/slog"

	"tictactoe-replay/internal/game"
	"tictactoe-replay/internal/repository"
	"tictactoe-replay/internal/session"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("hub")

// RegistrationRequest carries everything the hub needs to attach a client
// to a new or resumed session.
type RegistrationRequest struct {
	Conn       session.Conn
	SessionID  string
	PlayerName string
	Mode       string
	Difficulty string
	Ctx        context.Context
}

// StatsRecorder records a finished game against a registered player.
// Results for guests fall through without effect.
type StatsRecorder interface {
	RecordResult(ctx context.Context, username, result string) error
}

// Hub tracks live sessions and runs the stats pipeline fed by the global
// events channel.
type Hub struct {
	sessions map[string]*session.Session

	register   chan *RegistrationRequest
	unregister chan *session.Session

	rdb         *redis.Client
	sessionRepo repository.SessionRepository
	archiveRepo repository.ArchiveRepository
	leaderboard repository.LeaderboardRepository
	stats       StatsRecorder
}

// NewHub creates a hub wired to its storage backends.
func NewHub(rdb *redis.Client, sessionRepo repository.SessionRepository, archiveRepo repository.ArchiveRepository,
	leaderboard repository.LeaderboardRepository, stats StatsRecorder,
) *Hub {
	return &Hub{
		sessions:    make(map[string]*session.Session),
		register:    make(chan *RegistrationRequest),
		unregister:  make(chan *session.Session),
		rdb:         rdb,
		sessionRepo: sessionRepo,
		archiveRepo: archiveRepo,
		leaderboard: leaderboard,
		stats:       stats,
	}
}

// Run is the hub's main loop. It owns the sessions map.
func (h *Hub) Run(ctx context.Context) {
	go h.runEventSubscriber(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("hub stopping")
			for _, s := range h.sessions {
				s.Close()
			}
			return

		case req := <-h.register:
			h.handleRegistration(req)

		case s := <-h.unregister:
			if current, ok := h.sessions[s.ID]; ok && current == s {
				delete(h.sessions, s.ID)
			}
			// Redis state is left in place until its TTL so the client can
			// resume the game from another connection.
			slog.Info("session closed", "session.id", s.ID)
			h.publishSessionClosed(ctx, s.ID)
		}
	}
}

// handleRegistration resumes a stored session when one exists for the
// requested ID, otherwise it starts a fresh game.
func (h *Hub) handleRegistration(req *RegistrationRequest) {
	ctx, span := tracer.Start(req.Ctx, "hub.handleRegistration", trace.WithAttributes(
		attribute.String("session.id", req.SessionID),
		attribute.String("game.mode", req.Mode),
	))
	defer span.End()

	// A second connection for a live session bumps the old one.
	if old, ok := h.sessions[req.SessionID]; ok {
		slog.Info("replacing live connection for session", "session.id", req.SessionID)
		old.Close()
		delete(h.sessions, req.SessionID)
	}

	engine := game.NewEngine()
	mode, difficulty := req.Mode, req.Difficulty
	resumed := false

	stored, storedMode, storedDifficulty, err := h.sessionRepo.Find(ctx, req.SessionID)
	switch {
	case err == nil:
		engine, mode, difficulty = stored, storedMode, storedDifficulty
		resumed = true
		slog.InfoContext(ctx, "resuming stored session", "session.id", req.SessionID)
	case errors.Is(err, repository.ErrSessionNotFound):
		// Fresh game.
	default:
		slog.ErrorContext(ctx, "failed to look up stored session, starting fresh",
			"session.id", req.SessionID, "error", err)
	}
	span.SetAttributes(attribute.Bool("session.resumed", resumed))

	s := session.New(req.SessionID, req.PlayerName, req.Conn, engine, mode, difficulty,
		h.rdb, h.sessionRepo, h.archiveRepo)
	h.sessions[req.SessionID] = s
	go s.Start(h.unregister)

	h.publishSessionOpened(ctx, s, resumed)
}

// Register returns the channel the transport feeds new connections into.
func (h *Hub) Register() chan<- *RegistrationRequest {
	return h.register
}
