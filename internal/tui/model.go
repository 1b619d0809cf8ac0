package tui

import (
	"fmt"
	"strings"

	"tictactoe-replay/internal/bot"
	"tictactoe-replay/internal/game"
	"tictactoe-replay/internal/session"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	cellStyle = lipgloss.NewStyle().
			Width(5).Height(1).
			Align(lipgloss.Center).
			Border(lipgloss.NormalBorder())

	cursorCellStyle = cellStyle.
			BorderForeground(lipgloss.Color("205"))

	winningCellStyle = cellStyle.
				Foreground(lipgloss.Color("42")).
				Bold(true)

	xStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	oStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)

	statusStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)

	historyTitleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	historyItemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	historyCurStyle   = historyItemStyle.
				Foreground(lipgloss.Color("205")).
				Bold(true)

	paneGap = lipgloss.NewStyle().PaddingLeft(4)
)

// Options configures the local terminal client.
type Options struct {
	Mode       string
	Difficulty string
}

// Model is the Bubble Tea model for a local game. It drives the same engine
// the server sessions use, so move rejection, history branching and win
// detection behave identically on both surfaces.
type Model struct {
	engine     *game.Engine
	cursor     int
	mode       string
	difficulty string
	keys       keyMap
	help       help.Model
}

// New creates a local game model. An empty mode plays hotseat.
func New(opts Options) *Model {
	mode := opts.Mode
	if mode == "" {
		mode = session.ModeHotseat
	}
	difficulty := opts.Difficulty
	if mode == session.ModeBot && difficulty == "" {
		difficulty = bot.DifficultyEasy
	}

	return &Model{
		engine:     game.NewEngine(),
		cursor:     4,
		mode:       mode,
		difficulty: difficulty,
		keys:       defaultKeyMap(),
		help:       help.New(),
	}
}

// Engine exposes the underlying engine, mainly for tests.
func (m *Model) Engine() *game.Engine {
	return m.engine
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Up):
			if m.cursor >= 3 {
				m.cursor -= 3
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor <= 5 {
				m.cursor += 3
			}
		case key.Matches(msg, m.keys.Left):
			if m.cursor%3 > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Right):
			if m.cursor%3 < 2 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Place):
			m.place()
		case key.Matches(msg, m.keys.Back):
			m.engine.JumpTo(m.engine.Step() - 1)
		case key.Matches(msg, m.keys.Forward):
			m.engine.JumpTo(m.engine.Step() + 1)
		case key.Matches(msg, m.keys.New):
			m.engine = game.NewEngine()
			m.cursor = 4
		}
	}
	return m, nil
}

// place applies the human move under the cursor. In bot mode the human
// always plays X and the bot answers immediately.
func (m *Model) place() {
	if m.mode == session.ModeBot && m.engine.ActivePlayer() != game.PlayerX {
		return
	}
	if !m.engine.ApplyMove(m.cursor) {
		return
	}
	if m.mode != session.ModeBot || m.engine.Status() != game.StatusInProgress {
		return
	}
	if reply := bot.CalculateMove(m.engine.Snapshot(), game.PlayerO, m.difficulty); reply >= 0 {
		m.engine.ApplyMove(reply)
	}
}

func (m *Model) View() string {
	board := m.engine.Snapshot()
	line, hasLine := game.WinningLine(board)

	rows := make([]string, 0, 3)
	for r := 0; r < 3; r++ {
		cells := make([]string, 0, 3)
		for c := 0; c < 3; c++ {
			idx := r*3 + c
			cells = append(cells, m.renderCell(board, idx, line, hasLine))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	grid := lipgloss.JoinVertical(lipgloss.Left, rows...)

	left := lipgloss.JoinVertical(lipgloss.Left, grid, statusStyle.Render(m.statusLine()))
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, paneGap.Render(m.historyPane()))

	return body + "\n\n" + m.help.View(m.keys) + "\n"
}

func (m *Model) renderCell(board game.Board, idx int, line [3]int, hasLine bool) string {
	mark := string(board[idx])
	switch board[idx] {
	case game.PlayerX:
		mark = xStyle.Render("X")
	case game.PlayerO:
		mark = oStyle.Render("O")
	}

	style := cellStyle
	if hasLine && (idx == line[0] || idx == line[1] || idx == line[2]) {
		style = winningCellStyle
	}
	if idx == m.cursor {
		style = cursorCellStyle
	}
	return style.Render(mark)
}

func (m *Model) statusLine() string {
	switch m.engine.Status() {
	case game.StatusWon:
		return fmt.Sprintf("Winner: %s", m.engine.Winner())
	case game.StatusDrawn:
		return "Draw"
	default:
		return fmt.Sprintf("Next player: %s", m.engine.ActivePlayer())
	}
}

func (m *Model) historyPane() string {
	var b strings.Builder
	b.WriteString(historyTitleStyle.Render("History"))
	b.WriteString("\n")
	for _, mv := range m.engine.Moves() {
		style := historyItemStyle
		if mv.Step == m.engine.Step() {
			style = historyCurStyle
		}
		b.WriteString(style.Render(mv.Label))
		b.WriteString("\n")
	}
	return b.String()
}
