package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/bigntt/internal/config"
	"github.com/agbru/bigntt/internal/ui"
)

// PrintExecutionConfig displays the multiplier settings, the timeout and
// the runtime environment.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Running %s%s%s with a timeout of %s%s%s.\n",
		ui.ColorPrimary(), cfg.Command, ui.ColorReset(), ui.ColorWarning(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorInfo(), runtime.NumCPU(), ui.ColorReset(), ui.ColorInfo(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Chunk width: %s%d..%d%s bits, Solinas prime from %s%d%s bits, parallel transforms from size %s%d%s.\n",
		ui.ColorInfo(), cfg.MinChunkWidth, cfg.ChunkWidth, ui.ColorReset(),
		ui.ColorInfo(), cfg.PrimeThresholdBits, ui.ColorReset(),
		ui.ColorInfo(), cfg.ParallelThreshold, ui.ColorReset())
}

// PrintExecutionMode displays the backend in use and whether products are
// checked against math/big.
func PrintExecutionMode(cfg config.AppConfig, out io.Writer) {
	mode := fmt.Sprintf("Single %s with the %s%s%s backend", cfg.Command, ui.ColorSuccess(), cfg.Backend, ui.ColorReset())
	if cfg.Verify {
		mode += ", verified against math/big"
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", mode)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
