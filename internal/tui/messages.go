package tui

import (
	"time"

	"github.com/agbru/bigntt/internal/bench"
)

// TickMsg drives periodic sampling.
type TickMsg time.Time

// BenchResultMsg carries one timed (size, backend) pair.
type BenchResultMsg struct {
	Result     bench.Result
	Generation uint64
}

// BenchDoneMsg reports the end of a bench run.
type BenchDoneMsg struct {
	Err        error
	Generation uint64
}

// MemStatsMsg carries a runtime memory sample.
type MemStatsMsg struct {
	Alloc        uint64
	HeapSys      uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg carries a system-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}
