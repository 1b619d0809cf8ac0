package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tictactoe-replay/internal/api/models"
	"tictactoe-replay/internal/api/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Errors surfaced to the controller layer.
var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPlayerNotFound     = errors.New("player not found")
)

const tokenLifetime = 72 * time.Hour

// PlayerService defines the player account business logic.
type PlayerService interface {
	Register(ctx context.Context, req *models.RegisterRequest) error
	Login(ctx context.Context, req *models.LoginRequest) (string, error)
	GuestLogin(ctx context.Context) (string, error)
	Stats(ctx context.Context, username string) (*models.StatsResponse, error)
	VerifyToken(tokenString string) (username string, err error)
}

type playerService struct {
	playerRepo repository.PlayerRepository
	jwtSecret  []byte
}

// NewPlayerService creates a PlayerService signing tokens with jwtSecret.
func NewPlayerService(playerRepo repository.PlayerRepository, jwtSecret string) PlayerService {
	return &playerService{playerRepo: playerRepo, jwtSecret: []byte(jwtSecret)}
}

// Register handles player registration.
func (s *playerService) Register(ctx context.Context, req *models.RegisterRequest) error {
	existing, err := s.playerRepo.GetPlayerByUsername(ctx, req.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUsernameTaken
	}

	player := &models.Player{Username: req.Username}
	return s.playerRepo.CreatePlayer(ctx, player, req.Password)
}

// Login checks the credentials and returns a signed JWT on success.
func (s *playerService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	player, err := s.playerRepo.GetPlayerByUsername(ctx, req.Username)
	if err != nil {
		return "", err
	}
	if player == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": player.ID,
		"un":  player.Username,
		"exp": time.Now().Add(tokenLifetime).Unix(),
	})

	return token.SignedString(s.jwtSecret)
}

// GuestLogin generates a session-scoped identity for an anonymous player.
func (s *playerService) GuestLogin(ctx context.Context) (string, error) {
	return uuid.New().String(), nil
}

// Stats returns a player's lifetime record.
func (s *playerService) Stats(ctx context.Context, username string) (*models.StatsResponse, error) {
	player, err := s.playerRepo.GetPlayerByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, ErrPlayerNotFound
	}

	return &models.StatsResponse{
		Username: player.Username,
		Wins:     player.Wins,
		Losses:   player.Losses,
		Draws:    player.Draws,
	}, nil
}

// VerifyToken validates a JWT and extracts the username claim.
func (s *playerService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	username, ok := claims["un"].(string)
	if !ok || username == "" {
		return "", errors.New("token carries no username")
	}
	return username, nil
}
