// Package tui renders the bench command as an interactive bubbletea
// dashboard: a live size × backend timing table, memory statistics and
// system load sparklines.
package tui

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigntt/internal/bench"
	apperrors "github.com/agbru/bigntt/internal/errors"
	"github.com/agbru/bigntt/internal/sysmon"
)

// ExecutionState holds the run-related fields of a dashboard session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	runner     bench.Runner
	generation uint64
	done       bool
	err        error
}

// Model is the root bubbletea model for the bench dashboard.
type Model struct {
	header  HeaderModel
	results ResultsModel
	metrics MetricsModel
	footer  FooterModel

	keymap KeyMap

	ExecutionState

	width     int
	height    int
	parentCtx context.Context
	ref       *programRef
	paused    bool
}

// Layout constants for the dashboard.
const (
	headerHeight  = 1
	footerHeight  = 1
	metricsHeight = 5
	minBodyHeight = 4
	tickInterval  = 500 * time.Millisecond
)

// NewModel creates a dashboard for runner.
func NewModel(parentCtx context.Context, runner bench.Runner, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	return Model{
		header:  NewHeaderModel(version, sysmon.CPUFeatures()),
		results: NewResultsModel(runner.Backends, runner.Sizes),
		metrics: NewMetricsModel(),
		footer:  NewFooterModel(),
		keymap:  DefaultKeyMap(),
		ExecutionState: ExecutionState{
			ctx:    ctx,
			cancel: cancel,
			runner: runner,
		},
		parentCtx: parentCtx,
		ref:       &programRef{},
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), runBenchCmd(m.ref, m.ctx, m.runner, m.generation))
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case BenchResultMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a restarted run
		}
		m.results.Add(msg.Result)
		m.header.SetProgress(m.results.Done(), m.results.Total())
		if msg.Result.Err != nil {
			m.footer.SetError(true)
		}
		return m, nil

	case BenchDoneMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.err = msg.Err
		m.header.SetDone()
		m.footer.SetDone(true)
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.footer.SetError(true)
		}
		return m, nil

	case TickMsg:
		if m.paused || m.done {
			return m, tickCmd()
		}
		return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.metrics.UpdateSysStats(msg)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Restart):
		if m.cancel != nil {
			m.cancel()
		}
		m.generation++
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)

		m.header.Reset()
		m.header.SetProgress(0, m.results.Total())
		m.results.Reset()
		m.footer.SetDone(false)
		m.footer.SetError(false)
		m.footer.SetPaused(false)
		m.done = false
		m.err = nil
		m.paused = false

		return m, runBenchCmd(m.ref, m.ctx, m.runner, m.generation)

	case key.Matches(msg, m.keymap.Up):
		m.results.Scroll(-1)
	case key.Matches(msg, m.keymap.Down):
		m.results.Scroll(1)
	case key.Matches(msg, m.keymap.PageUp):
		m.results.Scroll(-m.results.visibleRows())
	case key.Matches(msg, m.keymap.PageDown):
		m.results.Scroll(m.results.visibleRows())
	}
	return m, nil
}

// ExitCode maps the outcome of the run to a process exit status.
func (m Model) ExitCode() int {
	if m.err != nil {
		return apperrors.ExitCode(m.err)
	}
	if failures := m.results.Failures(); len(failures) > 0 {
		return apperrors.ExitCode(failures[0].Err)
	}
	if !m.done {
		return apperrors.ExitErrorCanceled
	}
	return apperrors.ExitSuccess
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(), m.results.View(), m.metrics.View(), m.footer.View())
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.metrics.SetSize(m.width)
	body := max(m.height-headerHeight-footerHeight-metricsHeight, minBodyHeight)
	m.results.SetSize(m.width, body)
}

// Run shows the dashboard until the user quits and returns the exit code.
func Run(ctx context.Context, runner bench.Runner, version string) int {
	// Rebuild styles from the current ui theme (set by app.New via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, runner, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so the bench goroutine can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.ExitCode()
	}
	return apperrors.ExitSuccess
}

// tickCmd returns a command that sends a TickMsg after tickInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads runtime memory stats and returns a MemStatsMsg.
func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return MemStatsMsg{
			Alloc:        ms.Alloc,
			HeapSys:      ms.HeapSys,
			NumGC:        ms.NumGC,
			PauseTotalNs: ms.PauseTotalNs,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

// sampleSysStatsCmd reads system-wide CPU and memory stats and returns a SysStatsMsg.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}
