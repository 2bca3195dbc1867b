package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigntt/internal/bench"
	"github.com/agbru/bigntt/internal/metrics"
	"github.com/agbru/bigntt/internal/modular"
	"github.com/agbru/bigntt/internal/mul"
	"github.com/agbru/bigntt/internal/ntt"
	"github.com/agbru/bigntt/internal/sysmon"
)

func TestPresentBenchTable(t *testing.T) {
	t.Parallel()
	results := []bench.Result{
		{Bits: 1000, Backend: "ntt", Duration: 40 * time.Microsecond},
		{Bits: 1000, Backend: "big", Duration: 10 * time.Microsecond},
		{Bits: 2000, Backend: "ntt", Duration: 2 * time.Millisecond},
		{Bits: 2000, Backend: "big", Err: errors.New("boom")},
	}
	var buf bytes.Buffer
	PresentBenchTable(results, []string{"ntt", "big"}, &buf)
	output := buf.String()
	for _, want := range []string{"Benchmark Summary", "Bits", "ntt", "big", "1k", "2k", "40µs", "10µs", "2ms", "failed", "big at 2k: boom"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
	if lines := strings.Count(output, "\n"); lines != 6 {
		t.Errorf("got %d lines, want 6:\n%s", lines, output)
	}
}

func TestDisplayMemoryStats(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayMemoryStats(metrics.MemorySnapshot{HeapAlloc: 2048, Mallocs: 12, NumGC: 3, PauseTotalNs: 1_500_000}, &buf)
	for _, want := range []string{"Memory Stats", "in 12 objects", "GC cycles:       3", "1.50ms"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestDisplayParams(t *testing.T) {
	t.Parallel()
	p, err := mul.DefaultConfig().ChooseParams(1000, 1000)
	if err != nil {
		t.Fatalf("ChooseParams: %v", err)
	}
	var buf bytes.Buffer
	DisplayParams(p, &buf)
	for _, want := range []string{"native", "0x7ffffff900000001", "28 bits", "36 + 36", "128 (2^7)"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestDisplayPlan(t *testing.T) {
	t.Parallel()
	plan, err := ntt.NewPlan(16, modular.Solinas)
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	var buf bytes.Buffer
	DisplayPlan(plan, nil, &buf)
	for _, want := range []string{"NttPlan(size=16", "2^4", "0xffffffff00000001", "Round trip:      ", "ok"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}

	buf.Reset()
	DisplayPlan(plan, errors.New("mismatch at 3"), &buf)
	if !strings.Contains(buf.String(), "failed: mismatch at 3") {
		t.Errorf("failure not shown:\n%s", buf.String())
	}
}

func TestDisplayWords(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayWords([]uint64{1, 255}, false, &buf)
	DisplayWords([]uint64{1, 255}, true, &buf)
	DisplayWords(nil, true, &buf)
	if want := "[1, 255]\n[0x1, 0xff]\n[]\n"; buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestDisplayInfo(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayInfo(Info{
		Host:     sysmon.Host{CPUModel: "Test CPU", PhysicalCores: 4, TotalMemory: 8 << 30},
		Features: []string{"avx2"},
		Backends: []string{"big", "ntt"},
		Cache:    ntt.CacheStats{Entries: 2, Hits: 5, Misses: 2},
		Config:   mul.DefaultConfig(),
	}, &buf)
	for _, want := range []string{"CPU: Test CPU (4 physical cores)", "Memory: ", "CPU features: avx2", "native", "solinas", "0xffffffff00000001", "8..29 bits", "big, ntt", "2 plans, 5 hits, 2 misses"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}
}
