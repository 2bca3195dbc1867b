// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayProduct], [DisplayQuietResult], [DisplayPlan].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatValue], [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/bigntt/internal/format"
	"github.com/agbru/bigntt/internal/ubig"
	"github.com/agbru/bigntt/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet prints the bare value only.
	Quiet bool
	// Verbose prints the full value instead of a truncated one.
	Verbose bool
	// Hex prints values in base 16.
	Hex bool
}

// Product describes a finished multiplication or squaring.
type Product struct {
	Op       string
	Backend  string
	Operands []*ubig.UBig
	Result   *ubig.UBig
	Duration time.Duration
	// Verified is set when the result was checked against math/big.
	Verified bool
}

// FormatQuietResult returns the full value of x in the configured base.
func FormatQuietResult(x *ubig.UBig, hex bool) string {
	if hex {
		return "0x" + x.Text(16)
	}
	return x.String()
}

// FormatValue returns x for display, truncated unless cfg.Verbose is set.
// The boolean reports whether the value was shortened.
func FormatValue(x *ubig.UBig, cfg OutputConfig) (string, bool) {
	full := FormatQuietResult(x, cfg.Hex)
	if cfg.Verbose {
		return full, false
	}
	edges := DisplayEdges
	if cfg.Hex {
		edges = HexDisplayEdges
	}
	s := format.Truncate(full, TruncationLimit, edges)
	return s, s != full
}

// DisplayQuietResult writes the bare value of x followed by a newline.
func DisplayQuietResult(out io.Writer, x *ubig.UBig, hex bool) {
	fmt.Fprintln(out, FormatQuietResult(x, hex))
}

// DisplayProduct prints p and saves it when cfg.OutputFile is set.
func DisplayProduct(out io.Writer, p Product, cfg OutputConfig) error {
	if cfg.Quiet {
		DisplayQuietResult(out, p.Result, cfg.Hex)
	} else {
		status := ""
		if p.Verified {
			status = fmt.Sprintf(" %s(verified)%s", ui.ColorSuccess(), ui.ColorReset())
		}
		fmt.Fprintf(out, "\n--- Result ---\n")
		fmt.Fprintf(out, "Operation:  %s%s%s with %s%s%s%s\n",
			ui.ColorPrimary(), p.Op, ui.ColorReset(), ui.ColorInfo(), p.Backend, ui.ColorReset(), status)
		fmt.Fprintf(out, "Time:       %s%s%s\n", ui.ColorWarning(), format.FormatExecutionDuration(p.Duration), ui.ColorReset())
		fmt.Fprintf(out, "Bits:       %s%s%s\n", ui.ColorInfo(), format.FormatNumberString(fmt.Sprint(p.Result.BitLen())), ui.ColorReset())

		value, truncated := FormatValue(p.Result, cfg)
		fmt.Fprintf(out, "Value:      %s%s%s\n", ui.ColorSuccess(), value, ui.ColorReset())
		if truncated {
			fmt.Fprintf(out, "            (truncated) Tip: use -v to print the full value.\n")
		}
	}

	if cfg.OutputFile == "" {
		return nil
	}
	if err := WriteResultToFile(p, cfg); err != nil {
		return err
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n", ui.ColorSuccess(), ui.ColorInfo(), cfg.OutputFile, ui.ColorReset())
	}
	return nil
}

// WriteResultToFile writes p to cfg.OutputFile, creating parent
// directories as needed. It does nothing when no file is configured.
func WriteResultToFile(p Product, cfg OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(cfg.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# bigntt %s result\n", p.Op)
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Backend: %s\n", p.Backend)
	fmt.Fprintf(file, "# Duration: %s\n", p.Duration)
	for i, x := range p.Operands {
		fmt.Fprintf(file, "# Operand %d: %d bits\n", i+1, x.BitLen())
	}
	fmt.Fprintf(file, "# Bits: %d\n", p.Result.BitLen())
	fmt.Fprintf(file, "\n%s\n", FormatQuietResult(p.Result, cfg.Hex))

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
