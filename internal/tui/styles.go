package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigntt/internal/ui"
)

// Style variables for the bench dashboard.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle         lipgloss.Style
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	versionStyle       lipgloss.Style
	elapsedStyle       lipgloss.Style
	tableHeaderStyle   lipgloss.Style
	sizeStyle          lipgloss.Style
	fastestStyle       lipgloss.Style
	slowerStyle        lipgloss.Style
	failedStyle        lipgloss.Style
	pendingStyle       lipgloss.Style
	metricLabelStyle   lipgloss.Style
	metricValueStyle   lipgloss.Style
	footerKeyStyle     lipgloss.Style
	footerDescStyle    lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusPausedStyle  lipgloss.Style
	statusDoneStyle    lipgloss.Style
	statusErrorStyle   lipgloss.Style
	cpuSparklineStyle  lipgloss.Style
	memSparklineStyle  lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	fg := func(c lipgloss.TerminalColor) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text)

	headerStyle = fg(t.Accent).Bold(true).Padding(0, 1)
	titleStyle = fg(t.Accent).Bold(true)
	versionStyle = fg(t.Dim)
	elapsedStyle = fg(t.Accent)

	tableHeaderStyle = fg(t.Text).Bold(true).Underline(true)
	sizeStyle = fg(t.Info)
	fastestStyle = fg(t.Success).Bold(true)
	slowerStyle = fg(t.Warning)
	failedStyle = fg(t.Error).Bold(true)
	pendingStyle = fg(t.Dim)

	metricLabelStyle = fg(t.Dim)
	metricValueStyle = fg(t.Accent).Bold(true)

	footerKeyStyle = fg(t.Accent).Bold(true)
	footerDescStyle = fg(t.Dim)

	statusRunningStyle = fg(t.Success).Bold(true)
	statusPausedStyle = fg(t.Warning).Bold(true)
	statusDoneStyle = fg(t.Accent).Bold(true)
	statusErrorStyle = fg(t.Error).Bold(true)

	cpuSparklineStyle = fg(t.Accent)
	memSparklineStyle = fg(t.Warning)
}
