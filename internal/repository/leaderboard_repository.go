package repository

import (
	"context"

	"github.com/go-redis/redis/v8"
)

const leaderboardKey = "leaderboard:wins"

// LeaderboardEntry is one row of the win leaderboard.
type LeaderboardEntry struct {
	Name string `json:"name"`
	Wins int64  `json:"wins"`
}

// LeaderboardRepository tracks win counts per display name.
type LeaderboardRepository interface {
	RecordWin(ctx context.Context, name string) error
	Top(ctx context.Context, n int64) ([]LeaderboardEntry, error)
}

type redisLeaderboardRepository struct {
	rdb *redis.Client
}

// NewLeaderboardRepository creates a Redis-backed LeaderboardRepository.
func NewLeaderboardRepository(rdb *redis.Client) LeaderboardRepository {
	return &redisLeaderboardRepository{rdb: rdb}
}

// RecordWin increments the win count for name.
func (r *redisLeaderboardRepository) RecordWin(ctx context.Context, name string) error {
	ctx, span := tracer.Start(ctx, "LeaderboardRepository.RecordWin")
	defer span.End()

	return r.rdb.ZIncrBy(ctx, leaderboardKey, 1, name).Err()
}

// Top returns the n highest win counts in descending order.
func (r *redisLeaderboardRepository) Top(ctx context.Context, n int64) ([]LeaderboardEntry, error) {
	ctx, span := tracer.Start(ctx, "LeaderboardRepository.Top")
	defer span.End()

	results, err := r.rdb.ZRevRangeWithScores(ctx, leaderboardKey, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(results))
	for _, z := range results {
		name, _ := z.Member.(string)
		entries = append(entries, LeaderboardEntry{Name: name, Wins: int64(z.Score)})
	}
	return entries, nil
}
