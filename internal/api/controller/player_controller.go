package controller

import (
	"errors"
	"net/http"

	"tictactoe-replay/internal/api/models"
	"tictactoe-replay/internal/api/response"
	"tictactoe-replay/internal/api/service"

	"github.com/gin-gonic/gin"
)

// PlayerController handles player account HTTP requests.
type PlayerController struct {
	playerService service.PlayerService
}

// NewPlayerController creates a new PlayerController.
func NewPlayerController(playerService service.PlayerService) *PlayerController {
	return &PlayerController{
		playerService: playerService,
	}
}

// Register handles the player registration endpoint.
func (pc *PlayerController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := pc.playerService.Register(c.Request.Context(), &req); err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			response.ErrorResponse(c, http.StatusConflict, err.Error())
			return
		}
		response.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.SuccessResponse(c, gin.H{"message": "Player created successfully"})
}

// Login handles the player login endpoint.
func (pc *PlayerController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	token, err := pc.playerService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.ErrorResponse(c, http.StatusUnauthorized, err.Error())
			return
		}
		response.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.SuccessResponse(c, models.LoginResponse{Token: token})
}

// GuestLogin handles guest login, returning a generated player ID.
func (pc *PlayerController) GuestLogin(c *gin.Context) {
	playerID, err := pc.playerService.GuestLogin(c.Request.Context())
	if err != nil {
		response.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.SuccessResponse(c, gin.H{"player_id": playerID})
}

// Stats returns the authenticated player's lifetime record. The auth
// middleware stores the verified username on the context.
func (pc *PlayerController) Stats(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		response.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	stats, err := pc.playerService.Stats(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrPlayerNotFound) {
			response.ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		response.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.SuccessResponse(c, stats)
}
