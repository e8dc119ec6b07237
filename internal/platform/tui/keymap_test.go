package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/roadrush/internal/game"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyFromMsg(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want game.Key
		ok   bool
	}{
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, game.KeyEscape, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, game.KeyEscape, true},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, 'a', true},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, 'd', true},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, 'w', true},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, 's', true},
		{"lower letter", runeKey('a'), 'a', true},
		{"upper letter", runeKey('R'), 'R', true},
		{"unmapped letter", runeKey('x'), 'x', true},
		{"alt letter", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}, Alt: true}, 0, false},
		{"function key", tea.KeyMsg{Type: tea.KeyF1}, 0, false},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := KeyFromMsg(tc.msg)
			if got != tc.want || ok != tc.ok {
				t.Errorf("KeyFromMsg(%q) = (%q, %v), expected (%q, %v)", tc.msg.String(), got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestKeyQueueOrder(t *testing.T) {
	var q KeyQueue
	if q.HasPendingKey() {
		t.Fatal("empty queue should have no pending key")
	}

	q.Push('a')
	q.Push('d')

	if !q.HasPendingKey() || q.ReadKey() != 'a' {
		t.Error("expected 'a' first")
	}
	if !q.HasPendingKey() || q.ReadKey() != 'd' {
		t.Error("expected 'd' second")
	}
	if q.HasPendingKey() {
		t.Error("queue should be drained")
	}
	if q.ReadKey() != 0 {
		t.Error("ReadKey() on an empty queue should return 0")
	}
}

func TestKeyQueueBounded(t *testing.T) {
	var q KeyQueue
	for i := 0; i < maxQueuedKeys+10; i++ {
		q.Push('w')
	}
	if q.Len() != maxQueuedKeys {
		t.Errorf("Len() = %d, expected %d", q.Len(), maxQueuedKeys)
	}
}
