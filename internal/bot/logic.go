package bot

import (
	"math/rand/v2"

	"tictactoe-replay/internal/game"
)

// Difficulty levels understood by CalculateMove.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// preferredCells orders the positional fallback for the hard bot: center
// first, then corners, then edges.
var preferredCells = [9]int{4, 0, 2, 6, 8, 1, 3, 5, 7}

// CalculateMove picks a cell for mark on the given board, or -1 when the
// board has no empty cell. The board is a snapshot; the caller applies the
// move through its own engine.
func CalculateMove(board game.Board, mark game.Mark, difficulty string) int {
	switch difficulty {
	case DifficultyEasy:
		return randomMove(board)
	case DifficultyMedium:
		return tacticalMove(board, mark, randomMove)
	default:
		return tacticalMove(board, mark, positionalMove)
	}
}

// randomMove picks any empty cell.
func randomMove(board game.Board) int {
	var available []int
	for i, cell := range board {
		if cell == game.None {
			available = append(available, i)
		}
	}
	if len(available) == 0 {
		return -1
	}
	return available[rand.IntN(len(available))]
}

// tacticalMove wins if it can, blocks if it must, and otherwise falls back.
func tacticalMove(board game.Board, mark game.Mark, fallback func(game.Board) int) int {
	if cell := completingCell(board, mark); cell != -1 {
		return cell
	}

	opponent := game.PlayerX
	if mark == game.PlayerX {
		opponent = game.PlayerO
	}
	if cell := completingCell(board, opponent); cell != -1 {
		return cell
	}

	return fallback(board)
}

// positionalMove prefers the center, then corners, then edges.
func positionalMove(board game.Board) int {
	for _, cell := range preferredCells {
		if board[cell] == game.None {
			return cell
		}
	}
	return -1
}

// completingCell returns the empty cell that would complete a line for
// mark, or -1 when no line is one move away.
func completingCell(board game.Board, mark game.Mark) int {
	for i, cell := range board {
		if cell != game.None {
			continue
		}
		candidate := board
		candidate[i] = mark
		if game.Winner(candidate) == mark {
			return i
		}
	}
	return -1
}
