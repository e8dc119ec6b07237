package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/roadrush/internal/core"
	"github.com/vovakirdan/roadrush/internal/game"
)

// helpHeight is the number of rows reserved below the playfield.
const helpHeight = 1

// Model is the Bubble Tea model running one game.
// Every tick runs exactly one controller frame.
type Model struct {
	ctrl     *game.Controller
	screen   *core.Screen
	queue    *KeyQueue // Nil during playback
	help     help.Model
	helpKeys help.KeyMap
	quitKeys key.Binding
	title    string
	delay    time.Duration
	quitting bool
}

// ModelOption configures a Model.
type ModelOption func(*modelOptions)

type modelOptions struct {
	source game.InputSource
	sink   game.EventSink
	title  string
}

// WithPlayback feeds the game from a recorded source instead of the keyboard.
func WithPlayback(src game.InputSource) ModelOption {
	return func(o *modelOptions) {
		o.source = src
	}
}

// WithEventSink sets where game events are reported.
func WithEventSink(s game.EventSink) ModelOption {
	return func(o *modelOptions) {
		o.sink = s
	}
}

// WithTitle shows a label in the help row.
func WithTitle(title string) ModelOption {
	return func(o *modelOptions) {
		o.title = title
	}
}

// NewModel creates a model for the given game sized for cfg's terminal.
func NewModel(g *game.Game, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	var o modelOptions
	for _, opt := range opts {
		opt(&o)
	}

	world := g.Config().World
	screen := core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpHeight, 1))
	canvas := core.NewCanvas(screen, world.Width, world.Height)

	m := Model{
		screen: screen,
		help:   help.New(),
		title:  o.title,
		delay:  g.Config().Timing.FrameDelay(),
	}
	m.help.Width = cfg.ScreenW

	input := o.source
	if input == nil {
		m.queue = &KeyQueue{}
		input = m.queue
		m.helpKeys = DefaultKeyMap()
		m.quitKeys = DefaultKeyMap().Quit
	} else {
		pk := defaultPlaybackKeyMap()
		m.helpKeys = pk
		m.quitKeys = pk.Quit
	}

	m.ctrl = game.NewController(g, input, canvas, game.WithEventSink(o.sink))
	return m
}

// Controller returns the frame controller driven by the model.
func (m Model) Controller() *game.Controller {
	return m.ctrl
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.delay)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(msg.Height-helpHeight, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if !m.ctrl.Frame() {
			m.quitting = true
			return m, tea.Quit
		}
		return m, tickCmd(m.delay)
	}

	return m, nil
}

// handleKey queues keys for the next frame. While playing back, the
// keyboard only stops the replay.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.queue == nil {
		if key.Matches(msg, m.quitKeys) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	// Quit goes through the game like any other key, so a recording sees it.
	if k, ok := KeyFromMsg(msg); ok {
		m.queue.Push(k)
	}
	return m, nil
}

// saveScreenshot writes the current frame as plain text.
func (m Model) saveScreenshot() {
	dir := filepath.Join(os.Getenv("HOME"), ".roadrush", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("road_%s.txt", time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	line := m.help.View(m.helpKeys)
	if m.title != "" {
		titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
		line = titleStyle.Render(m.title) + "  " + line
	}

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(line)
}

// Run starts a Bubble Tea program for the model and blocks until the game
// ends. The returned model holds the final controller state.
func Run(m Model, opts ...tea.ProgramOption) (Model, error) {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return m, err
	}
	if fm, ok := final.(Model); ok {
		return fm, nil
	}
	return m, nil
}
