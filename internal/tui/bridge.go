package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/bigntt/internal/bench"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bench goroutine can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe). Messages
// are dropped while no program is attached.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// benchReporter forwards each bench result to the program, tagged with the
// run generation so that results of a cancelled run can be told apart.
func benchReporter(ref *programRef, gen uint64) func(bench.Result) {
	return func(r bench.Result) {
		ref.Send(BenchResultMsg{Result: r, Generation: gen})
	}
}

// runBenchCmd runs the benchmark in the background and reports completion.
func runBenchCmd(ref *programRef, ctx context.Context, runner bench.Runner, gen uint64) tea.Cmd {
	return func() tea.Msg {
		err := runner.Run(ctx, benchReporter(ref, gen))
		return BenchDoneMsg{Err: err, Generation: gen}
	}
}
