package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/roadrush/internal/replay"
	"github.com/vovakirdan/roadrush/internal/storage"
)

// Replay browser layout constants
const (
	maxSessions = 200 // Max sessions to load
	idWidth     = 8   // Shown prefix of a session ID
)

// SessionStore is what the replay browser needs from the journal.
type SessionStore interface {
	replay.Reader
	Sessions(limit int) ([]storage.Session, error)
	DeleteSession(id string) error
}

// ReplayKeyMap defines the key bindings for the replay browser.
type ReplayKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Play   key.Binding
	Verify key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Play, k.Verify, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReplayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Play, k.Verify, k.Delete},
		{k.Quit},
	}
}

// DefaultReplayKeyMap returns default key bindings.
func DefaultReplayKeyMap() ReplayKeyMap {
	return ReplayKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Play: key.NewBinding(
			key.WithKeys("enter", "p"),
			key.WithHelp("enter", "watch"),
		),
		Verify: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "verify"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplayBrowserModel is the Bubble Tea model for the recorded session list.
type ReplayBrowserModel struct {
	store    SessionStore
	sessions []storage.Session
	table    table.Model
	help     help.Model
	keys     ReplayKeyMap
	status   string
	width    int
	height   int
	selected string // Session chosen for playback
	quitting bool
}

// NewReplayBrowserModel creates a new replay browser model.
func NewReplayBrowserModel(store SessionStore, width, height int) ReplayBrowserModel {
	h := help.New()
	h.ShowAll = false

	m := ReplayBrowserModel{
		store:  store,
		keys:   DefaultReplayKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadSessions()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ReplayBrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: idWidth},
		{Title: "Started", Width: 12},
		{Title: "Via", Width: 5},
		{Title: "Player", Width: 10},
		{Title: "Rounds", Width: 6},
		{Title: "Frames", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, status, help
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

// loadSessions reloads the session list from the store.
func (m *ReplayBrowserModel) loadSessions() {
	sessions, err := m.store.Sessions(maxSessions)
	if err != nil {
		m.sessions = nil
		m.status = fmt.Sprintf("cannot load sessions: %v", err)
	} else {
		m.sessions = sessions
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current sessions.
func (m *ReplayBrowserModel) updateTableRows() {
	rows := make([]table.Row, len(m.sessions))
	for i, s := range m.sessions {
		frames := fmt.Sprintf("%d", s.Frames)
		if !s.Finished() {
			frames = "open"
		}
		player := s.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			shortID(s.ID),
			s.StartedAt.Local().Format("Jan 02 15:04"),
			s.Frontend,
			player,
			fmt.Sprintf("%d", s.Rounds),
			frames,
		}
	}
	m.table.SetRows(rows)

	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

// current returns the session under the cursor.
func (m ReplayBrowserModel) current() (storage.Session, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.sessions) {
		return storage.Session{}, false
	}
	return m.sessions[c], true
}

// Init initializes the replay browser model.
func (m ReplayBrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the replay browser.
func (m ReplayBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Play):
			if s, ok := m.current(); ok {
				m.selected = s.ID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Verify):
			if s, ok := m.current(); ok {
				m.status = verifyStatus(m.store, s.ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if s, ok := m.current(); ok {
				if err := m.store.DeleteSession(s.ID); err != nil {
					m.status = fmt.Sprintf("delete failed: %v", err)
				} else {
					m.status = fmt.Sprintf("deleted %s", shortID(s.ID))
				}
				m.loadSessions()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// verifyStatus re-runs a session and summarizes the result.
func verifyStatus(r replay.Reader, id string) string {
	report, err := replay.Verify(r, id)
	switch {
	case report == nil:
		return fmt.Sprintf("%s: %v", shortID(id), err)
	case err != nil:
		return fmt.Sprintf("%s: DIVERGED (%v)", shortID(id), err)
	default:
		return fmt.Sprintf("%s: OK, %d rounds reproduced in %d frames", shortID(id), len(report.Replayed), report.Frames)
	}
}

// View renders the replay browser.
func (m ReplayBrowserModel) View() string {
	if m.quitting || m.selected != "" {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("RECORDED SESSIONS", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")

	if m.status != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ReplayBrowserModel) renderTableContent() string {
	if len(m.sessions) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No sessions recorded yet.\nPlay with --record to keep one.")
	}

	return m.table.View()
}

// Selected returns the session chosen for playback, or "".
func (m ReplayBrowserModel) Selected() string {
	return m.selected
}

// Status returns the last status message.
func (m ReplayBrowserModel) Status() string {
	return m.status
}

// RunReplayBrowser runs the replay browser.
// Returns the ID of the session to watch, or "" if the user quit.
func RunReplayBrowser(store SessionStore, width, height int) (string, error) {
	model := NewReplayBrowserModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(ReplayBrowserModel)
	if !ok {
		return "", nil
	}

	return m.Selected(), nil
}

// shortID trims a session ID for display.
func shortID(id string) string {
	if len(id) <= idWidth {
		return id
	}
	return id[:idWidth]
}
