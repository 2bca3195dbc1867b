package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigntt/internal/format"
)

// HeaderModel renders the top bar: title, version, progress, CPU features
// and elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	features  []string
	progress  string
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string, features []string) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		features:  features,
	}
}

// SetDone freezes the elapsed timer at the current time.
func (h *HeaderModel) SetDone() {
	h.endTime = time.Now()
}

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// SetProgress updates the done/total label.
func (h *HeaderModel) SetProgress(done, total int) {
	h.progress = progressLabel(done, total)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "bigntt bench"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := versionStyle.Render(" | ")

	duration := time.Since(h.startTime)
	if !h.endTime.IsZero() {
		duration = h.endTime.Sub(h.startTime)
	}
	leftPart := titleStyle.Render(titleText) + pipe +
		elapsedStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(duration)))
	if h.progress != "" {
		leftPart += pipe + elapsedStyle.Render(h.progress)
	}

	features := "none"
	if len(h.features) > 0 {
		features = strings.Join(h.features, " ")
	}
	rightPart := versionStyle.Render("cpu: " + features)

	gap := h.width - 2 - lipgloss.Width(leftPart) - lipgloss.Width(rightPart)
	row := leftPart
	if gap > 0 {
		row += spaces(gap) + rightPart
	}
	return headerStyle.Width(h.width).Render(row)
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
