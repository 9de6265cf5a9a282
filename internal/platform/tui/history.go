package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pong/internal/storage"
)

// History layout constants
const (
	maxHistory     = 100 // Max matches to load
	minWidthForAll = 90  // Width needed for every column
)

// HistoryStore is the read side of the match store.
type HistoryStore interface {
	RecentMatches(limit int) ([]storage.MatchRecord, error)
	PlayerMatches(player string, limit int) ([]storage.MatchRecord, error)
}

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Filter key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Filter, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Filter, k.Quit}}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Filter: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "all/player"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the match history screen.
type HistoryModel struct {
	store    HistoryStore
	player   string // filter target; empty disables the filter
	filtered bool
	matches  []storage.MatchRecord
	loadErr  error
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	quitting bool
}

// NewHistoryModel creates a history model. When player is set, tab
// switches between all matches and that player's matches.
func NewHistoryModel(store HistoryStore, player string, width, height int) HistoryModel {
	m := HistoryModel{
		store:    store,
		player:   player,
		filtered: player != "",
		keys:     DefaultHistoryKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized for the current width.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "P1", Width: 12},
		{Title: "Score", Width: 7},
		{Title: "P2", Width: 12},
		{Title: "Winner", Width: 12},
	}
	if m.width >= minWidthForAll {
		columns = append(columns,
			table.Column{Title: "Mode", Width: 6},
			table.Column{Title: "End", Width: 11},
		)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches matches for the current filter.
func (m *HistoryModel) load() {
	m.matches, m.loadErr = nil, nil
	if m.store != nil {
		if m.filtered {
			m.matches, m.loadErr = m.store.PlayerMatches(m.player, maxHistory)
		} else {
			m.matches, m.loadErr = m.store.RecentMatches(maxHistory)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded matches.
func (m *HistoryModel) updateTableRows() {
	wide := m.width >= minWidthForAll
	rows := make([]table.Row, len(m.matches))
	for i, r := range m.matches {
		winner := r.Winner
		if winner == "" {
			winner = "-"
		}
		row := table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			r.Player1,
			fmt.Sprintf("%d-%d", r.Score1, r.Score2),
			r.Player2,
			winner,
		}
		if wide {
			row = append(row, r.Mode, r.EndReason)
		}
		rows[i] = row
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Filter):
			if m.player != "" {
				m.filtered = !m.filtered
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Title returns the heading for the current filter.
func (m HistoryModel) Title() string {
	if m.filtered {
		return fmt.Sprintf("MATCH HISTORY - %s", m.player)
	}
	return "MATCH HISTORY"
}

// Rows returns the table rows currently shown.
func (m HistoryModel) Rows() []table.Row {
	return m.table.Rows()
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText(m.Title(), m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render(fmt.Sprintf("Could not load history:\n%v", m.loadErr))
	case len(m.matches) == 0:
		return emptyStyle.Render("No matches recorded yet.\nPlay one with `pong play`!")
	default:
		return m.table.View()
	}
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	return strings.Repeat(" ", (width-textWidth)/2) + text
}

// RunHistory runs the history screen.
func RunHistory(store HistoryStore, player string, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, player, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
