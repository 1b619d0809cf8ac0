package repository

import (
	"context"
	"testing"
	"time"

	"tictactoe-replay/internal/game"

	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// newTestRedis spins up a throwaway Redis container. Integration tests are
// skipped in -short mode.
func newTestRedis(t *testing.T) *goredis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, testcontainers.TerminateContainer(container))
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	opts, err := goredis.ParseURL(uri)
	require.NoError(t, err)

	client := goredis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestSessionRepository_SaveAndFind(t *testing.T) {
	rdb := newTestRedis(t)
	repo := NewSessionRepository(rdb, time.Hour)
	ctx := context.Background()

	engine := game.NewEngine()
	require.True(t, engine.ApplyMove(0))
	require.True(t, engine.ApplyMove(4))

	require.NoError(t, repo.Save(ctx, "sess-1", "bot", "hard", engine))

	restored, mode, difficulty, err := repo.Find(ctx, "sess-1")
	require.NoError(t, err)

	assert.Equal(t, "bot", mode)
	assert.Equal(t, "hard", difficulty)
	assert.Equal(t, engine.Len(), restored.Len())
	assert.Equal(t, engine.Snapshot(), restored.Snapshot())
}

func TestSessionRepository_FindMissing(t *testing.T) {
	rdb := newTestRedis(t)
	repo := NewSessionRepository(rdb, time.Hour)

	_, _, _, err := repo.Find(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionRepository_Delete(t *testing.T) {
	rdb := newTestRedis(t)
	repo := NewSessionRepository(rdb, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "sess-2", "hotseat", "", game.NewEngine()))
	require.NoError(t, repo.Delete(ctx, "sess-2"))

	_, _, _, err := repo.Find(ctx, "sess-2")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestLeaderboardRepository(t *testing.T) {
	rdb := newTestRedis(t)
	repo := NewLeaderboardRepository(rdb)
	ctx := context.Background()

	require.NoError(t, repo.RecordWin(ctx, "alice"))
	require.NoError(t, repo.RecordWin(ctx, "alice"))
	require.NoError(t, repo.RecordWin(ctx, "bob"))

	top, err := repo.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)

	assert.Equal(t, LeaderboardEntry{Name: "alice", Wins: 2}, top[0])
	assert.Equal(t, LeaderboardEntry{Name: "bob", Wins: 1}, top[1])
}
