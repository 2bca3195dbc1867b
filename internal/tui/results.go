package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigntt/internal/bench"
	"github.com/agbru/bigntt/internal/format"
)

// ResultsModel is the scrollable size × backend timing table.
type ResultsModel struct {
	backends []string
	sizes    []int
	results  []bench.Result
	cells    map[int]map[string]bench.Result
	offset   int
	width    int
	height   int
}

// NewResultsModel creates an empty table for the given columns and rows.
func NewResultsModel(backends []string, sizes []int) ResultsModel {
	return ResultsModel{
		backends: backends,
		sizes:    sizes,
		cells:    make(map[int]map[string]bench.Result),
	}
}

// Add records one result.
func (m *ResultsModel) Add(r bench.Result) {
	if m.cells[r.Bits] == nil {
		m.cells[r.Bits] = make(map[string]bench.Result)
	}
	m.cells[r.Bits][r.Backend] = r
	m.results = append(m.results, r)
}

// Reset drops every result.
func (m *ResultsModel) Reset() {
	m.results = nil
	m.cells = make(map[int]map[string]bench.Result)
	m.offset = 0
}

// Done returns the number of recorded results.
func (m ResultsModel) Done() int { return len(m.results) }

// Total returns the number of results a complete run produces.
func (m ResultsModel) Total() int { return len(m.sizes) * len(m.backends) }

// Failures returns the results that carry an error.
func (m ResultsModel) Failures() []bench.Result {
	var out []bench.Result
	for _, r := range m.results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// SetSize updates dimensions.
func (m *ResultsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.clampOffset()
}

// visibleRows is the number of table rows that fit in the panel.
func (m ResultsModel) visibleRows() int {
	// Borders, column header and one sparkline line per backend.
	return max(m.height-3-len(m.backends), 1)
}

// Scroll moves the first visible row by delta.
func (m *ResultsModel) Scroll(delta int) {
	m.offset += delta
	m.clampOffset()
}

func (m *ResultsModel) clampOffset() {
	m.offset = min(m.offset, len(m.sizes)-m.visibleRows())
	m.offset = max(m.offset, 0)
}

const (
	sizeColWidth = 8
	minColWidth  = 9
)

func (m ResultsModel) colWidth(backend string) int {
	return max(len(backend), minColWidth)
}

// View renders the table.
func (m ResultsModel) View() string {
	var b strings.Builder

	b.WriteString(tableHeaderStyle.Render(padTo("bits", sizeColWidth)))
	for _, name := range m.backends {
		b.WriteString("  " + tableHeaderStyle.Render(padTo(name, m.colWidth(name))))
	}

	end := min(m.offset+m.visibleRows(), len(m.sizes))
	for _, size := range m.sizes[m.offset:end] {
		b.WriteString("\n" + sizeStyle.Render(padTo(format.FormatBits(size), sizeColWidth)))
		fastest := bench.Fastest(m.results, size)
		for _, name := range m.backends {
			b.WriteString("  " + m.cell(size, name, fastest))
		}
	}

	for _, name := range m.backends {
		b.WriteString("\n" + metricLabelStyle.Render(padTo(name, sizeColWidth)) + "  " +
			cpuSparklineStyle.Render(DurationSparkline(m.durations(name))))
	}

	return panelStyle.Width(max(m.width-2, 0)).Render(b.String())
}

func (m ResultsModel) cell(size int, name, fastest string) string {
	w := m.colWidth(name)
	r, ok := m.cells[size][name]
	switch {
	case !ok:
		return pendingStyle.Render(padTo("·", w))
	case r.Err != nil:
		return failedStyle.Render(padTo("failed", w))
	case name == fastest:
		return fastestStyle.Render(padTo(format.FormatExecutionDuration(r.Duration), w))
	default:
		return slowerStyle.Render(padTo(format.FormatExecutionDuration(r.Duration), w))
	}
}

// durations returns the successful timings of backend in size order.
func (m ResultsModel) durations(backend string) []time.Duration {
	var out []time.Duration
	for _, size := range m.sizes {
		if r, ok := m.cells[size][backend]; ok && r.Err == nil {
			out = append(out, r.Duration)
		}
	}
	return out
}

// padTo pads s with spaces to w display columns.
func padTo(s string, w int) string {
	return s + spaces(w-lipgloss.Width(s))
}

// progressLabel formats done/total for the header.
func progressLabel(done, total int) string {
	if total == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d (%d%%)", done, total, done*100/total)
}
