package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/roadrush/internal/game"
)

// maxQueuedKeys bounds how many unread keys a KeyQueue holds.
const maxQueuedKeys = 32

// KeyFromMsg translates a Bubble Tea key message to the raw key code the
// game maps. Arrow keys alias the letter bindings. Keys with no code
// (function keys, modifiers) report false.
func KeyFromMsg(msg tea.KeyMsg) (game.Key, bool) {
	switch msg.String() {
	case "esc", "ctrl+c":
		return game.KeyEscape, true
	case "left":
		return 'a', true
	case "right":
		return 'd', true
	case "up":
		return 'w', true
	case "down":
		return 's', true
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && !msg.Alt {
		return game.Key(msg.Runes[0]), true
	}
	return 0, false
}

// KeyQueue buffers keys between ticks and serves them as a game.InputSource,
// one per frame. Bubble Tea delivers messages on one goroutine, so it needs
// no locking.
type KeyQueue struct {
	keys []game.Key
}

// Push appends a key. Keys beyond the buffer limit are dropped.
func (q *KeyQueue) Push(k game.Key) {
	if len(q.keys) >= maxQueuedKeys {
		return
	}
	q.keys = append(q.keys, k)
}

// HasPendingKey implements game.InputSource.
func (q *KeyQueue) HasPendingKey() bool {
	return len(q.keys) > 0
}

// ReadKey implements game.InputSource.
func (q *KeyQueue) ReadKey() game.Key {
	if len(q.keys) == 0 {
		return 0
	}
	k := q.keys[0]
	q.keys = q.keys[1:]
	return k
}

// Len returns the number of unread keys.
func (q *KeyQueue) Len() int {
	return len(q.keys)
}

// KeyMap describes the game controls for the help line.
type KeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Faster  key.Binding
	Slower  key.Binding
	Restart key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Faster, k.Slower, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right},
		{k.Faster, k.Slower},
		{k.Restart, k.Quit},
	}
}

// DefaultKeyMap returns the game controls.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("a", "A", "left"),
			key.WithHelp("a/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "D", "right"),
			key.WithHelp("d/→", "right"),
		),
		Faster: key.NewBinding(
			key.WithKeys("w", "W", "up"),
			key.WithHelp("w/↑", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("s", "S", "down"),
			key.WithHelp("s/↓", "slower"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r", "R"),
			key.WithHelp("r", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// playbackKeyMap describes the controls while watching a replay.
type playbackKeyMap struct {
	Quit key.Binding
}

func (k playbackKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

func (k playbackKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Quit}}
}

func defaultPlaybackKeyMap() playbackKeyMap {
	return playbackKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("esc", "q", "ctrl+c"),
			key.WithHelp("esc/q", "stop replay"),
		),
	}
}
