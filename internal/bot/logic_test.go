package bot

import (
	"testing"

	"tictactoe-replay/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMove_TakesWinningCell(t *testing.T) {
	// O can complete the middle column at cell 7.
	board := game.Board{
		game.PlayerX, game.PlayerO, game.PlayerX,
		game.None, game.PlayerO, game.PlayerX,
		game.None, game.None, game.None,
	}

	for _, difficulty := range []string{DifficultyMedium, DifficultyHard} {
		t.Run(difficulty, func(t *testing.T) {
			assert.Equal(t, 7, CalculateMove(board, game.PlayerO, difficulty))
		})
	}
}

func TestCalculateMove_BlocksOpponent(t *testing.T) {
	// X threatens the top row at cell 2; O must block.
	board := game.Board{
		game.PlayerX, game.PlayerX, game.None,
		game.None, game.PlayerO, game.None,
		game.None, game.None, game.None,
	}

	for _, difficulty := range []string{DifficultyMedium, DifficultyHard} {
		t.Run(difficulty, func(t *testing.T) {
			assert.Equal(t, 2, CalculateMove(board, game.PlayerO, difficulty))
		})
	}
}

func TestCalculateMove_WinBeatsBlock(t *testing.T) {
	// Both sides have a line one move away; the bot takes its own win.
	board := game.Board{
		game.PlayerX, game.PlayerX, game.None,
		game.PlayerO, game.PlayerO, game.None,
		game.None, game.None, game.None,
	}

	assert.Equal(t, 5, CalculateMove(board, game.PlayerO, DifficultyHard))
}

func TestCalculateMove_HardPrefersCenter(t *testing.T) {
	board := game.Board{game.PlayerX}

	assert.Equal(t, 4, CalculateMove(board, game.PlayerO, DifficultyHard))
}

func TestCalculateMove_HardPrefersCornerWhenCenterTaken(t *testing.T) {
	board := game.Board{game.None, game.None, game.None, game.None, game.PlayerX}

	assert.Equal(t, 0, CalculateMove(board, game.PlayerO, DifficultyHard))
}

func TestCalculateMove_EasyPicksEmptyCell(t *testing.T) {
	board := game.Board{
		game.PlayerX, game.PlayerO, game.PlayerX,
		game.PlayerO, game.PlayerX, game.PlayerO,
		game.None, game.None, game.None,
	}

	for i := 0; i < 20; i++ {
		cell := CalculateMove(board, game.PlayerO, DifficultyEasy)
		require.GreaterOrEqual(t, cell, 6)
		require.LessOrEqual(t, cell, 8)
	}
}

func TestCalculateMove_FullBoard(t *testing.T) {
	board := game.Board{
		game.PlayerX, game.PlayerO, game.PlayerX,
		game.PlayerX, game.PlayerO, game.PlayerO,
		game.PlayerO, game.PlayerX, game.PlayerX,
	}

	for _, difficulty := range []string{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		assert.Equal(t, -1, CalculateMove(board, game.PlayerO, difficulty))
	}
}
