package metrics

import "runtime"

// MemorySnapshot is a reading of the Go runtime memory statistics. The
// heap fields are gauges; the others are cumulative counters, which
// Since turns into per-operation figures.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes of live heap objects
	HeapSys      uint64 // heap bytes obtained from the OS
	TotalAlloc   uint64 // cumulative bytes allocated
	Mallocs      uint64 // cumulative heap allocations
	NumGC        uint32
	PauseTotalNs uint64
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector returns a collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads the current statistics. It stops the world briefly, so
// callers take it around a multiplication rather than inside one.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		TotalAlloc:   m.TotalAlloc,
		Mallocs:      m.Mallocs,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// Since returns s with its cumulative counters expressed relative to
// before. Heap gauges are kept as read in s.
func (s MemorySnapshot) Since(before MemorySnapshot) MemorySnapshot {
	d := s
	d.TotalAlloc = sub(s.TotalAlloc, before.TotalAlloc)
	d.Mallocs = sub(s.Mallocs, before.Mallocs)
	d.PauseTotalNs = sub(s.PauseTotalNs, before.PauseTotalNs)
	if s.NumGC >= before.NumGC {
		d.NumGC = s.NumGC - before.NumGC
	} else {
		d.NumGC = 0
	}
	return d
}

func sub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}
