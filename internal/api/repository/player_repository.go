package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tictactoe-replay/internal/api/models"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// PlayerRepository defines the interface for player account operations.
type PlayerRepository interface {
	CreatePlayer(ctx context.Context, player *models.Player, password string) error
	GetPlayerByUsername(ctx context.Context, username string) (*models.Player, error)
	RecordResult(ctx context.Context, username, result string) error
}

type sqlitePlayerRepository struct {
	db *sqlx.DB
}

// NewPlayerRepository creates a new SQLite-based PlayerRepository.
func NewPlayerRepository(db *sqlx.DB) PlayerRepository {
	return &sqlitePlayerRepository{db: db}
}

// CreatePlayer hashes the password and inserts a new player.
func (r *sqlitePlayerRepository) CreatePlayer(ctx context.Context, player *models.Player, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	player.PasswordHash = string(hashedPassword)

	query := `INSERT INTO players (username, password_hash) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, query, player.Username, player.PasswordHash); err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

// GetPlayerByUsername retrieves a player by username. A missing player is
// reported as (nil, nil), not as an error.
func (r *sqlitePlayerRepository) GetPlayerByUsername(ctx context.Context, username string) (*models.Player, error) {
	var player models.Player
	query := `SELECT id, username, password_hash, wins, losses, draws FROM players WHERE username = ?`
	if err := r.db.GetContext(ctx, &player, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get player by username: %w", err)
	}
	return &player, nil
}

// RecordResult bumps the matching stat counter. Guests have no row, so the
// update silently affects nothing for them.
func (r *sqlitePlayerRepository) RecordResult(ctx context.Context, username, result string) error {
	var column string
	switch result {
	case "win":
		column = "wins"
	case "loss":
		column = "losses"
	case "draw":
		column = "draws"
	default:
		return fmt.Errorf("unknown game result %q", result)
	}

	query := fmt.Sprintf(`UPDATE players SET %s = %s + 1 WHERE username = ?`, column, column)
	if _, err := r.db.ExecContext(ctx, query, username); err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}
	return nil
}
