package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tictactoe-replay/internal/game"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("repository")

// ErrSessionNotFound is returned when no stored state exists for a session ID.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists engine state between connections so a client
// can pick up its game where it left off.
type SessionRepository interface {
	Save(ctx context.Context, id, mode, difficulty string, engine *game.Engine) error
	Find(ctx context.Context, id string) (engine *game.Engine, mode, difficulty string, err error)
	Delete(ctx context.Context, id string) error
}

type redisSessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSessionRepository creates a Redis-backed SessionRepository. Stored
// sessions expire after ttl so abandoned games do not pile up.
func NewSessionRepository(rdb *redis.Client, ttl time.Duration) SessionRepository {
	return &redisSessionRepository{rdb: rdb, ttl: ttl}
}

// Save writes the serialized engine plus session settings in one pipeline.
func (r *redisSessionRepository) Save(ctx context.Context, id, mode, difficulty string, engine *game.Engine) error {
	ctx, span := tracer.Start(ctx, "SessionRepository.Save")
	defer span.End()

	state, err := engine.MarshalState()
	if err != nil {
		return fmt.Errorf("failed to marshal engine state: %w", err)
	}

	sessionKey := fmt.Sprintf("session:%s", id)
	pipe := r.rdb.Pipeline()
	pipe.HSet(ctx, sessionKey, "state", state)
	pipe.HSet(ctx, sessionKey, "mode", mode)
	pipe.HSet(ctx, sessionKey, "difficulty", difficulty)
	pipe.Expire(ctx, sessionKey, r.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session in redis: %w", err)
	}
	return nil
}

// Find restores the engine and settings stored for id.
func (r *redisSessionRepository) Find(ctx context.Context, id string) (*game.Engine, string, string, error) {
	ctx, span := tracer.Start(ctx, "SessionRepository.Find")
	defer span.End()

	sessionKey := fmt.Sprintf("session:%s", id)
	data, err := r.rdb.HGetAll(ctx, sessionKey).Result()
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to get session from redis: %w", err)
	}
	if len(data) == 0 {
		return nil, "", "", ErrSessionNotFound
	}

	engine, err := game.RestoreState([]byte(data["state"]))
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to restore engine state: %w", err)
	}

	return engine, data["mode"], data["difficulty"], nil
}

// Delete removes the stored state for id.
func (r *redisSessionRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "SessionRepository.Delete")
	defer span.End()

	return r.rdb.Del(ctx, fmt.Sprintf("session:%s", id)).Err()
}
