package game

// Mark represents the mark of a player (X, O) or an empty cell.
type Mark string

// Status describes where a single game stands.
type Status string

const (
	// Player marks
	None    Mark = ""
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	// Game statuses
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusDrawn      Status = "drawn"

	// BoardSize is the number of cells on the board.
	BoardSize = 9
)

// Board is one immutable snapshot of the grid. Cells are addressed 0..8 in
// row-major order: 0-2 top row, 3-5 middle row, 6-8 bottom row.
type Board [BoardSize]Mark

// winLines are the eight winning triples. The order is fixed: three rows,
// three columns, two diagonals. Winner reports the first complete triple,
// so this order must not be reshuffled.
var winLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Winner returns the mark holding a completed line, or None. It never
// mutates the board and depends on nothing but its argument.
func Winner(board Board) Mark {
	for _, line := range winLines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != None && a == b && b == c {
			return a
		}
	}
	return None
}

// WinningLine returns the first completed triple and true, or false when no
// line is complete. Views use it to highlight the winning cells.
func WinningLine(board Board) ([3]int, bool) {
	for _, line := range winLines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != None && a == b && b == c {
			return line, true
		}
	}
	return [3]int{}, false
}

// IsFull reports whether every cell carries a mark.
func IsFull(board Board) bool {
	for _, cell := range board {
		if cell == None {
			return false
		}
	}
	return true
}

// StatusOf classifies a snapshot. A full board with a completed line counts
// as won, not drawn.
func StatusOf(board Board) Status {
	if Winner(board) != None {
		return StatusWon
	}
	if IsFull(board) {
		return StatusDrawn
	}
	return StatusInProgress
}
