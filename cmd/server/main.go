package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tictactoe-replay/internal/api/controller"
	apirepository "tictactoe-replay/internal/api/repository"
	"tictactoe-replay/internal/api/service"
	"tictactoe-replay/internal/config"
	"tictactoe-replay/internal/db"
	"tictactoe-replay/internal/hub"
	"tictactoe-replay/internal/logger"
	"tictactoe-replay/internal/repository"
	"tictactoe-replay/internal/server"
	"tictactoe-replay/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	shutdown, err := telemetry.InitOtel(ctx, cfg.CollectorAddr)
	if err != nil {
		slog.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Error("error shutting down telemetry", "error", err)
		}
	}()

	logger.Init(cfg.LogLevel)

	rdb, err := db.NewRedisClient(ctx, cfg.Redis.Addr())
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()

	database, err := db.Connect(cfg.SQLitePath)
	if err != nil {
		slog.Error("failed to open sqlite database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	sessionRepo := repository.NewSessionRepository(rdb, cfg.SessionTTL)
	archiveRepo := repository.NewArchiveRepository(database)
	leaderboard := repository.NewLeaderboardRepository(rdb)
	playerRepo := apirepository.NewPlayerRepository(database)

	playerService := service.NewPlayerService(playerRepo, cfg.JWTSecret)
	playerController := controller.NewPlayerController(playerService)
	gameController := controller.NewGameController(archiveRepo, leaderboard)

	h := hub.NewHub(rdb, sessionRepo, archiveRepo, leaderboard, playerRepo)
	go h.Run(ctx)

	srv := server.NewServer(h, playerController, gameController, playerService)

	httpServer := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: srv.Engine(),
	}

	go func() {
		slog.Info("http server started", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("server exiting")
}
