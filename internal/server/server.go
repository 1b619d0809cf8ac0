package server

import (
	"log/slog"
	"net/http"

	"tictactoe-replay/internal/api/controller"
	"tictactoe-replay/internal/api/service"
	"tictactoe-replay/internal/hub"
	"tictactoe-replay/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("server")

// Server exposes the websocket game endpoint and the REST API.
type Server struct {
	engine           *gin.Engine
	hub              *hub.Hub
	playerController *controller.PlayerController
	gameController   *controller.GameController
	playerService    service.PlayerService
	upgrader         websocket.Upgrader
}

func NewServer(h *hub.Hub, pc *controller.PlayerController, gc *controller.GameController, ps service.PlayerService) *Server {
	s := &Server{
		engine:           gin.Default(),
		hub:              h,
		playerController: pc,
		gameController:   gc,
		playerService:    ps,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	s.registerRoutes()
	return s
}

// Engine returns the underlying gin engine for http.Server wiring.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerRoutes() {
	s.engine.StaticFS("/app", http.Dir("./web"))
	s.engine.GET("/ws", s.handleWebSocket)

	api := s.engine.Group("/api")
	{
		api.POST("/register", s.playerController.Register)
		api.POST("/login", s.playerController.Login)
		api.POST("/guest", s.playerController.GuestLogin)
		api.GET("/games", s.gameController.List)
		api.GET("/games/:id", s.gameController.Replay)
		api.GET("/leaderboard", s.gameController.Leaderboard)

		me := api.Group("/me", s.authRequired())
		me.GET("/stats", s.playerController.Stats)
	}
}

// handleWebSocket upgrades the connection and hands a registration request
// to the hub. It does not distinguish between new and resuming sessions;
// the hub decides that from the session store.
func (s *Server) handleWebSocket(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", c.Request.URL.String()),
		attribute.String("http.method", c.Request.Method),
	))
	defer span.End()

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to upgrade connection")
		return
	}

	// Session ID from the URL resumes an existing game; otherwise a fresh
	// one is minted.
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	span.SetAttributes(attribute.String("session.id", sessionID))

	mode := c.Query("mode")
	if mode == "" {
		mode = session.ModeHotseat
	}
	difficulty := c.Query("difficulty")
	if mode == session.ModeBot && difficulty == "" {
		difficulty = "easy"
	}
	span.SetAttributes(attribute.String("game.mode", mode), attribute.String("game.difficulty", difficulty))

	s.hub.Register() <- &hub.RegistrationRequest{
		Conn:       conn,
		SessionID:  sessionID,
		PlayerName: c.Query("player"),
		Mode:       mode,
		Difficulty: difficulty,
		Ctx:        ctx,
	}
}
