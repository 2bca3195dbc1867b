package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the ANSI escape codes of one CLI color scheme.
type Theme struct {
	Name      string
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Reset     string
}

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",
		Secondary: "\033[38;5;245m",
		Success:   "\033[38;5;82m",
		Warning:   "\033[38;5;220m",
		Error:     "\033[38;5;196m",
		Info:      "\033[38;5;141m",
		Bold:      "\033[1m",
		Reset:     "\033[0m",
	}

	// LightTheme suits light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",
		Secondary: "\033[38;5;240m",
		Success:   "\033[38;5;28m",
		Warning:   "\033[38;5;130m",
		Error:     "\033[38;5;124m",
		Info:      "\033[38;5;54m",
		Bold:      "\033[1m",
		Reset:     "\033[0m",
	}

	// NoColorTheme disables color output.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// TUITheme is the lipgloss palette of the bench dashboard.
type TUITheme struct {
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
}

var (
	DarkTUITheme = TUITheme{
		Text:    lipgloss.Color("#E0E0E0"),
		Border:  lipgloss.Color("#3D7EFF"),
		Accent:  lipgloss.Color("#58A6FF"),
		Success: lipgloss.Color("#9ECE6A"),
		Warning: lipgloss.Color("#FFB347"),
		Error:   lipgloss.Color("#FF4444"),
		Dim:     lipgloss.Color("#666666"),
		Info:    lipgloss.Color("#BB9AF7"),
	}

	NoColorTUITheme = TUITheme{
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
	}
)

// GetCurrentTUITheme returns the TUI palette matching the active theme.
func GetCurrentTUITheme() TUITheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	if currentTheme.Name == NoColorTheme.Name {
		return NoColorTUITheme
	}
	return DarkTUITheme
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates a theme by name: dark, light or none. Unknown names
// select dark.
func SetTheme(name string) {
	switch name {
	case LightTheme.Name:
		SetCurrentTheme(LightTheme)
	case NoColorTheme.Name:
		SetCurrentTheme(NoColorTheme)
	default:
		SetCurrentTheme(DarkTheme)
	}
}

// InitTheme disables colors when noColor is set or NO_COLOR is present in
// the environment (https://no-color.org/), and selects the dark theme
// otherwise.
func InitTheme(noColor bool) {
	if _, exists := os.LookupEnv("NO_COLOR"); noColor || exists {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetCurrentTheme(DarkTheme)
}

func ColorPrimary() string   { return GetCurrentTheme().Primary }
func ColorSecondary() string { return GetCurrentTheme().Secondary }
func ColorSuccess() string   { return GetCurrentTheme().Success }
func ColorWarning() string   { return GetCurrentTheme().Warning }
func ColorError() string     { return GetCurrentTheme().Error }
func ColorInfo() string      { return GetCurrentTheme().Info }
func ColorBold() string      { return GetCurrentTheme().Bold }
func ColorReset() string     { return GetCurrentTheme().Reset }
