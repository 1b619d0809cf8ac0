package controller

import (
	"errors"
	"net/http"
	"strconv"

	"tictactoe-replay/internal/api/response"
	"tictactoe-replay/internal/game"
	"tictactoe-replay/internal/repository"

	"github.com/gin-gonic/gin"
)

const defaultListLimit = 20

// GameController serves the finished-game archive and the leaderboard.
type GameController struct {
	archive     repository.ArchiveRepository
	leaderboard repository.LeaderboardRepository
}

// NewGameController creates a new GameController.
func NewGameController(archive repository.ArchiveRepository, leaderboard repository.LeaderboardRepository) *GameController {
	return &GameController{
		archive:     archive,
		leaderboard: leaderboard,
	}
}

// ReplayResponse is an archived game expanded into its full board history.
type ReplayResponse struct {
	Game      *repository.ArchivedGame `json:"game"`
	Snapshots []game.Board             `json:"snapshots"`
	Moves     []game.MoveLabel         `json:"moves"`
}

// List returns the most recently finished games.
func (gc *GameController) List(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultListLimit)))
	if err != nil || limit <= 0 {
		response.ErrorResponse(c, http.StatusBadRequest, "limit must be a positive integer")
		return
	}

	games, err := gc.archive.ListRecent(c.Request.Context(), limit)
	if err != nil {
		response.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.SuccessResponseList(c, games)
}

// Replay returns one archived game with every board snapshot rebuilt by
// running the stored move list back through the engine.
func (gc *GameController) Replay(c *gin.Context) {
	id := c.Param("id")

	archived, err := gc.archive.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			response.ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		response.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	moves, err := archived.Moves()
	if err != nil {
		response.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	engine := game.NewEngine()
	for _, cell := range moves {
		if !engine.ApplyMove(cell) {
			response.ErrorResponse(c, http.StatusInternalServerError, "archived move list is not replayable")
			return
		}
	}

	snapshots := make([]game.Board, engine.Len())
	for step := 0; step < engine.Len(); step++ {
		engine.JumpTo(step)
		snapshots[step] = engine.Snapshot()
	}

	response.SuccessResponse(c, ReplayResponse{
		Game:      archived,
		Snapshots: snapshots,
		Moves:     engine.Moves(),
	})
}

// Leaderboard returns the top win counts.
func (gc *GameController) Leaderboard(c *gin.Context) {
	n, err := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	if err != nil || n <= 0 {
		response.ErrorResponse(c, http.StatusBadRequest, "limit must be a positive integer")
		return
	}

	entries, err := gc.leaderboard.Top(c.Request.Context(), n)
	if err != nil {
		response.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.SuccessResponseList(c, entries)
}
