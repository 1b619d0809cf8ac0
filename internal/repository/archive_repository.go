package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrGameNotFound is returned when no archived game exists for an ID.
var ErrGameNotFound = errors.New("archived game not found")

// ArchivedGame is a finished game as stored in SQLite. Moves holds the cell
// indices in play order; replaying them through the engine reconstructs
// every snapshot.
type ArchivedGame struct {
	ID         string        `db:"id" json:"id"`
	PlayerID   sql.NullInt64 `db:"player_id" json:"-"`
	Mode       string        `db:"mode" json:"mode"`
	Difficulty string        `db:"difficulty" json:"difficulty,omitempty"`
	Winner     string        `db:"winner" json:"winner"`
	Status     string        `db:"status" json:"status"`
	MovesJSON  string        `db:"moves" json:"-"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
}

// Moves decodes the stored move list.
func (g *ArchivedGame) Moves() ([]int, error) {
	var moves []int
	if err := json.Unmarshal([]byte(g.MovesJSON), &moves); err != nil {
		return nil, fmt.Errorf("failed to decode archived moves: %w", err)
	}
	return moves, nil
}

// ArchiveRepository stores finished games for later replay.
type ArchiveRepository interface {
	Insert(ctx context.Context, g *ArchivedGame) error
	ListRecent(ctx context.Context, limit int) ([]ArchivedGame, error)
	FindByID(ctx context.Context, id string) (*ArchivedGame, error)
}

type sqliteArchiveRepository struct {
	db *sqlx.DB
}

// NewArchiveRepository creates a SQLite-backed ArchiveRepository.
func NewArchiveRepository(db *sqlx.DB) ArchiveRepository {
	return &sqliteArchiveRepository{db: db}
}

// Insert stores one finished game.
func (r *sqliteArchiveRepository) Insert(ctx context.Context, g *ArchivedGame) error {
	ctx, span := tracer.Start(ctx, "ArchiveRepository.Insert")
	defer span.End()

	query := `INSERT INTO games (id, player_id, mode, difficulty, winner, status, moves)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, g.ID, g.PlayerID, g.Mode, g.Difficulty, g.Winner, g.Status, g.MovesJSON)
	if err != nil {
		return fmt.Errorf("failed to insert archived game: %w", err)
	}
	return nil
}

// ListRecent returns the most recently finished games, newest first.
func (r *sqliteArchiveRepository) ListRecent(ctx context.Context, limit int) ([]ArchivedGame, error) {
	ctx, span := tracer.Start(ctx, "ArchiveRepository.ListRecent")
	defer span.End()

	var games []ArchivedGame
	query := `SELECT id, player_id, mode, difficulty, winner, status, moves, created_at
		FROM games ORDER BY created_at DESC LIMIT ?`
	if err := r.db.SelectContext(ctx, &games, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list archived games: %w", err)
	}
	return games, nil
}

// FindByID fetches one archived game.
func (r *sqliteArchiveRepository) FindByID(ctx context.Context, id string) (*ArchivedGame, error) {
	ctx, span := tracer.Start(ctx, "ArchiveRepository.FindByID")
	defer span.End()

	var g ArchivedGame
	query := `SELECT id, player_id, mode, difficulty, winner, status, moves, created_at
		FROM games WHERE id = ?`
	if err := r.db.GetContext(ctx, &g, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get archived game: %w", err)
	}
	return &g, nil
}
