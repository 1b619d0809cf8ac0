package tui

import (
	"testing"

	"tictactoe-replay/internal/game"
	"tictactoe-replay/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func pressEnter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func TestModel_CursorMovement(t *testing.T) {
	m := New(Options{})
	require.Equal(t, 4, m.cursor)

	m.Update(keyRunes("k"))
	assert.Equal(t, 1, m.cursor)
	m.Update(keyRunes("k"))
	assert.Equal(t, 1, m.cursor, "cursor stops at the top row")

	m.Update(keyRunes("h"))
	assert.Equal(t, 0, m.cursor)
	m.Update(keyRunes("h"))
	assert.Equal(t, 0, m.cursor, "cursor stops at the left column")

	m.Update(keyRunes("j"))
	m.Update(keyRunes("j"))
	assert.Equal(t, 6, m.cursor)
	m.Update(keyRunes("j"))
	assert.Equal(t, 6, m.cursor, "cursor stops at the bottom row")

	m.Update(keyRunes("l"))
	m.Update(keyRunes("l"))
	assert.Equal(t, 8, m.cursor)
	m.Update(keyRunes("l"))
	assert.Equal(t, 8, m.cursor, "cursor stops at the right column")
}

func TestModel_PlaceAndReject(t *testing.T) {
	m := New(Options{})

	m.Update(pressEnter())
	assert.Equal(t, game.PlayerX, m.Engine().Snapshot()[4])
	require.Equal(t, 2, m.Engine().Len())

	// Same cell again is silently ignored.
	m.Update(pressEnter())
	assert.Equal(t, 2, m.Engine().Len())
	assert.Equal(t, game.PlayerO, m.Engine().ActivePlayer())
}

func TestModel_HistoryNavigation(t *testing.T) {
	m := New(Options{})

	// X at 4, then O at 1.
	m.Update(pressEnter())
	m.Update(keyRunes("k"))
	m.Update(pressEnter())
	require.Equal(t, 3, m.Engine().Len())

	m.Update(keyRunes("["))
	assert.Equal(t, 1, m.Engine().Step())
	m.Update(keyRunes("["))
	assert.Equal(t, 0, m.Engine().Step())
	m.Update(keyRunes("["))
	assert.Equal(t, 0, m.Engine().Step(), "back past game start is ignored")

	m.Update(keyRunes("]"))
	assert.Equal(t, 1, m.Engine().Step())
}

func TestModel_NewGame(t *testing.T) {
	m := New(Options{})
	m.Update(pressEnter())
	require.Equal(t, 2, m.Engine().Len())

	m.Update(keyRunes("n"))
	assert.Equal(t, 1, m.Engine().Len())
	assert.Equal(t, 4, m.cursor)
}

func TestModel_BotReplies(t *testing.T) {
	m := New(Options{Mode: session.ModeBot, Difficulty: "hard"})

	m.Update(pressEnter()) // X takes the center
	board := m.Engine().Snapshot()
	assert.Equal(t, game.PlayerX, board[4])
	assert.Equal(t, game.PlayerO, board[0], "hard bot takes the first corner")
	assert.Equal(t, game.PlayerX, m.Engine().ActivePlayer())
}

func TestModel_QuitReturnsQuitCmd(t *testing.T) {
	m := New(Options{})
	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_ViewShowsStatusAndHistory(t *testing.T) {
	m := New(Options{})
	view := m.View()
	assert.Contains(t, view, "Next player: X")
	assert.Contains(t, view, "Go to game start")

	m.Update(pressEnter())
	view = m.View()
	assert.Contains(t, view, "Go to move #1")
}
