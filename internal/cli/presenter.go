package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/bigntt/internal/bench"
	"github.com/agbru/bigntt/internal/format"
	"github.com/agbru/bigntt/internal/metrics"
	"github.com/agbru/bigntt/internal/modular"
	"github.com/agbru/bigntt/internal/mul"
	"github.com/agbru/bigntt/internal/ntt"
	"github.com/agbru/bigntt/internal/sysmon"
	"github.com/agbru/bigntt/internal/ui"
)

// PresentBenchTable prints one row per operand size and one column per
// backend. The fastest successful backend of each row is highlighted.
// Manual padding keeps ANSI color codes out of the width computation.
func PresentBenchTable(results []bench.Result, backends []string, out io.Writer) {
	fmt.Fprintf(out, "\n--- Benchmark Summary ---\n")

	var sizes []int
	cells := make(map[int]map[string]bench.Result)
	for _, r := range results {
		if cells[r.Bits] == nil {
			cells[r.Bits] = make(map[string]bench.Result)
			sizes = append(sizes, r.Bits)
		}
		cells[r.Bits][r.Backend] = r
	}

	const sizeWidth = 10
	widths := make([]int, len(backends))
	for i, b := range backends {
		widths[i] = max(len(b), 8)
	}

	fmt.Fprintf(out, "%s%s%s%s", ui.ColorBold(), "Bits", ui.ColorReset(), padRight("", sizeWidth-4))
	for i, b := range backends {
		fmt.Fprintf(out, "   %s%s%s%s", ui.ColorBold(), b, ui.ColorReset(), padRight("", widths[i]-len(b)))
	}
	fmt.Fprintln(out)

	for _, size := range sizes {
		label := format.FormatBits(size)
		fmt.Fprintf(out, "%s%s%s%s", ui.ColorPrimary(), label, ui.ColorReset(), padRight("", sizeWidth-len(label)))
		fastest := bench.Fastest(results, size)
		for i, b := range backends {
			cell, color := "-", ui.ColorSecondary()
			if r, ok := cells[size][b]; ok {
				switch {
				case r.Err != nil:
					cell, color = "failed", ui.ColorError()
				case b == fastest:
					cell, color = benchDuration(r), ui.ColorSuccess()
				default:
					cell, color = benchDuration(r), ui.ColorWarning()
				}
			}
			fmt.Fprintf(out, "   %s%s%s%s", color, cell, ui.ColorReset(), padRight("", widths[i]-len([]rune(cell))))
		}
		fmt.Fprintln(out)
	}

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(out, "%s%s at %s: %v%s\n", ui.ColorError(), r.Backend, format.FormatBits(r.Bits), r.Err, ui.ColorReset())
		}
	}
}

func benchDuration(r bench.Result) string {
	if r.Duration == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(r.Duration)
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + strings.Repeat(" ", length)
}

// DisplayMemoryStats shows the memory used by one product. Counters in
// snap are expected to be relative to the start of the multiplication.
func DisplayMemoryStats(snap metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Allocated:       %s in %d objects\n", format.FormatBytes(snap.TotalAlloc), snap.Mallocs)
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(snap.HeapAlloc))
	fmt.Fprintf(out, "  Heap reserved:   %s\n", format.FormatBytes(snap.HeapSys))
	fmt.Fprintf(out, "  GC cycles:       %d\n", snap.NumGC)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(snap.PauseTotalNs)/1e6)
}

// DisplayParams prints the transform parameters chosen for a product.
func DisplayParams(p mul.Params, out io.Writer) {
	fmt.Fprintf(out, "\nTransform:\n")
	fmt.Fprintf(out, "  Modulus:         %s%s%s (%#x)\n", ui.ColorInfo(), p.Kind, ui.ColorReset(), modular.MustFor(p.Kind).Modulus())
	fmt.Fprintf(out, "  Chunk width:     %d bits\n", p.Width)
	fmt.Fprintf(out, "  Chunks:          %d + %d\n", p.TermsA, p.TermsB)
	fmt.Fprintf(out, "  Size:            %d (2^%d)\n", p.Size, p.LogSize())
}

// DisplayPlan prints the description of plan and the outcome of its
// round-trip self check.
func DisplayPlan(plan *ntt.Plan, roundTripErr error, out io.Writer) {
	fmt.Fprintf(out, "%s%s%s\n", ui.ColorPrimary(), plan, ui.ColorReset())
	f := plan.Field()
	fmt.Fprintf(out, "  Size:            %d (2^%d, max 2^%d)\n", plan.Size(), plan.LogSize(), f.MaxLogSize())
	fmt.Fprintf(out, "  Modulus:         %#x\n", f.Modulus())
	fmt.Fprintf(out, "  Generator:       %d\n", f.Generator())
	fmt.Fprintf(out, "  Root (order 2N): %#x\n", plan.Root())
	if roundTripErr != nil {
		fmt.Fprintf(out, "  Round trip:      %sfailed: %v%s\n", ui.ColorError(), roundTripErr, ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "  Round trip:      %sok%s\n", ui.ColorSuccess(), ui.ColorReset())
}

// DisplayWords prints a list of word or bit-group values.
func DisplayWords(vals []uint64, hex bool, out io.Writer) {
	parts := make([]string, len(vals))
	for i, v := range vals {
		if hex {
			parts[i] = fmt.Sprintf("%#x", v)
		} else {
			parts[i] = fmt.Sprint(v)
		}
	}
	fmt.Fprintf(out, "[%s]\n", strings.Join(parts, ", "))
}

// Info gathers what the info command reports.
type Info struct {
	Host     sysmon.Host
	Features []string
	Backends []string
	Cache    ntt.CacheStats
	Config   mul.Config
}

// DisplayInfo prints the runtime environment and multiplier settings.
func DisplayInfo(info Info, out io.Writer) {
	fmt.Fprintf(out, "--- Environment ---\n")
	fmt.Fprintf(out, "Go %s%s%s on %s/%s, %s%d%s logical processors.\n",
		ui.ColorInfo(), runtime.Version(), ui.ColorReset(), runtime.GOOS, runtime.GOARCH,
		ui.ColorInfo(), runtime.NumCPU(), ui.ColorReset())
	features := "none"
	if len(info.Features) > 0 {
		features = strings.Join(info.Features, " ")
	}
	if info.Host.CPUModel != "" {
		fmt.Fprintf(out, "CPU: %s (%d physical cores)\n", info.Host.CPUModel, info.Host.PhysicalCores)
	}
	if info.Host.TotalMemory > 0 {
		fmt.Fprintf(out, "Memory: %s\n", format.FormatBytes(info.Host.TotalMemory))
	}
	fmt.Fprintf(out, "CPU features: %s\n", features)

	fmt.Fprintf(out, "\n--- Moduli ---\n")
	for _, k := range modular.Kinds {
		f := modular.MustFor(k)
		fmt.Fprintf(out, "%s%-8s%s %#x  max transform 2^%d\n", ui.ColorPrimary(), k, ui.ColorReset(), f.Modulus(), f.MaxLogSize())
	}

	fmt.Fprintf(out, "\n--- Multiplier ---\n")
	fmt.Fprintf(out, "Chunk width:        %d..%d bits\n", info.Config.MinChunkWidth, info.Config.ChunkWidth)
	fmt.Fprintf(out, "Prime threshold:    %d bits\n", info.Config.PrimeThresholdBits)
	fmt.Fprintf(out, "Parallel threshold: %d\n", info.Config.ParallelThreshold)
	fmt.Fprintf(out, "Backends:           %s\n", strings.Join(info.Backends, ", "))
	fmt.Fprintf(out, "Plan cache:         %d plans, %d hits, %d misses\n", info.Cache.Entries, info.Cache.Hits, info.Cache.Misses)
}
