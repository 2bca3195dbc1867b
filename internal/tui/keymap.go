package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bench dashboard key bindings.
type KeyMap struct {
	Quit     key.Binding
	Pause    key.Binding
	Restart  key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
		Pause:    key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause stats")),
		Restart:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rerun bench")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
	}
}

// ShortHelp returns the bindings listed in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Pause, k.Restart, k.Up, k.Down}
}
