package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDefaultKeyMapMatches(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"q quits", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, km.Quit},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit},
		{"space pauses", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, km.Pause},
		{"r reruns", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}, km.Restart},
		{"j scrolls", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, km.Down},
		{"pgup pages", tea.KeyMsg{Type: tea.KeyPgUp}, km.PageUp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if !key.Matches(tt.msg, tt.binding) {
				t.Errorf("%q does not match binding %v", tt.msg.String(), tt.binding.Keys())
			}
		})
	}
}

func TestShortHelpInFooter(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()
	if got := len(km.ShortHelp()); got != 5 {
		t.Fatalf("ShortHelp has %d bindings, want 5", got)
	}

	f := NewFooterModel()
	f.SetWidth(200)
	view := f.View()
	for _, b := range km.ShortHelp() {
		if !strings.Contains(view, b.Help().Desc) {
			t.Errorf("footer missing %q:\n%s", b.Help().Desc, view)
		}
	}
}
