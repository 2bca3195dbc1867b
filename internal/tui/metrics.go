package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/bigntt/internal/format"
)

// sparklineSamples is the default history length of the CPU and memory
// sparklines. It grows with the panel width.
const sparklineSamples = 30

// MetricsModel displays runtime memory statistics and system load.
type MetricsModel struct {
	alloc        uint64
	heapSys      uint64
	numGC        uint32
	pauseTotalNs uint64
	numGoroutine int
	cpu          *LoadHistory
	mem          *LoadHistory
	width        int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{
		cpu: NewLoadHistory(sparklineSamples),
		mem: NewLoadHistory(sparklineSamples),
	}
}

// SetSize updates the width and resizes the sparkline history to fit.
func (m *MetricsModel) SetSize(w int) {
	m.width = w
	n := max(w-16, sparklineSamples)
	m.cpu.SetLimit(n)
	m.mem.SetLimit(n)
}

// UpdateMemStats updates memory statistics.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.alloc = msg.Alloc
	m.heapSys = msg.HeapSys
	m.numGC = msg.NumGC
	m.pauseTotalNs = msg.PauseTotalNs
	m.numGoroutine = msg.NumGoroutine
}

// UpdateSysStats appends a system load sample.
func (m *MetricsModel) UpdateSysStats(msg SysStatsMsg) {
	m.cpu.Push(msg.CPUPercent)
	m.mem.Push(msg.MemPercent)
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var rows strings.Builder

	rows.WriteString(formatMetricCol("Heap", format.FormatBytes(m.alloc)+" / "+format.FormatBytes(m.heapSys), 28))
	rows.WriteString(formatMetricCol("GC", fmt.Sprintf("%d (%.1fms)", m.numGC, float64(m.pauseTotalNs)/1e6), 22))
	rows.WriteString(formatMetricCol("Goroutines", fmt.Sprint(m.numGoroutine), 16))

	rows.WriteString("\n" + metricLabelStyle.Render(fmt.Sprintf("CPU %5.1f%% ", m.cpu.Last())) +
		cpuSparklineStyle.Render(PercentSparkline(m.cpu.Values())))
	rows.WriteString("\n" + metricLabelStyle.Render(fmt.Sprintf("MEM %5.1f%% ", m.mem.Last())) +
		memSparklineStyle.Render(PercentSparkline(m.mem.Values())))

	return panelStyle.Width(max(m.width-2, 0)).Render(rows.String())
}

// formatMetricCol renders "label: value" padded to colWidth columns.
func formatMetricCol(label, value string, colWidth int) string {
	return padTo(metricLabelStyle.Render(label+": ")+metricValueStyle.Render(value), colWidth)
}
