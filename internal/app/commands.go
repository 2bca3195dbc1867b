package app

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"github.com/agbru/bigntt/internal/bench"
	"github.com/agbru/bigntt/internal/cli"
	apperrors "github.com/agbru/bigntt/internal/errors"
	"github.com/agbru/bigntt/internal/metrics"
	"github.com/agbru/bigntt/internal/modular"
	"github.com/agbru/bigntt/internal/ntt"
	"github.com/agbru/bigntt/internal/sysmon"
	"github.com/agbru/bigntt/internal/ubig"
)

// benchSeed makes bench operands reproducible across runs.
const benchSeed = 1

// runBits reads or deletes bits and words of an integer.
func (a *Application) runBits(out io.Writer) error {
	ops, err := parseOperands(a.Config.Args, 1, "bits [-slice S] [-words [-width W]] [-delete] <n>")
	if err != nil {
		return err
	}
	x := ops[0]

	var words *ubig.WordView
	if a.Config.Words {
		if words, err = x.WordsOf(a.Config.WordWidth); err != nil {
			return err
		}
	}

	sel := strings.TrimSpace(a.Config.Slice)
	if sel == "" {
		if a.Config.DeleteMode {
			return apperrors.NewConfigError("-delete needs -slice")
		}
		if words != nil {
			cli.DisplayWords(words.Values(), a.Config.Hex, out)
			return nil
		}
		if !a.Config.Quiet {
			fmt.Fprintf(out, "%d bits: ", x.BitLen())
		}
		fmt.Fprintf(out, "0b%s\n", x.Text(2))
		return nil
	}

	if strings.Contains(sel, ":") {
		s, err := ubig.ParseSlice(sel)
		if err != nil {
			return err
		}
		return a.bitsSlice(out, x, words, s)
	}
	i, err := strconv.Atoi(sel)
	if err != nil {
		return apperrors.NewValueError("invalid index %q", sel)
	}
	return a.bitsIndex(out, x, words, i)
}

func (a *Application) bitsIndex(out io.Writer, x *ubig.UBig, words *ubig.WordView, i int) error {
	switch {
	case a.Config.DeleteMode && words != nil:
		if err := words.DeleteAt(i); err != nil {
			return err
		}
	case a.Config.DeleteMode:
		if err := x.DeleteBitAt(i); err != nil {
			return err
		}
	case words != nil:
		w, err := words.At(i)
		if err != nil {
			return err
		}
		a.printLabelled(out, fmt.Sprintf("words[%d]", i), formatWord(w, a.Config.Hex))
		return nil
	default:
		b, err := x.BitAt(i)
		if err != nil {
			return err
		}
		bit := "0"
		if b {
			bit = "1"
		}
		a.printLabelled(out, fmt.Sprintf("n[%d]", i), bit)
		return nil
	}
	a.printLabelled(out, "n", cli.FormatQuietResult(x, a.Config.Hex))
	return nil
}

func (a *Application) bitsSlice(out io.Writer, x *ubig.UBig, words *ubig.WordView, s ubig.Slice) error {
	switch {
	case a.Config.DeleteMode && words != nil:
		words.DeleteSlice(s)
	case a.Config.DeleteMode:
		x.DeleteBitSlice(s)
	case words != nil:
		if !a.Config.Quiet {
			fmt.Fprintf(out, "words[%s] = ", s)
		}
		cli.DisplayWords(words.Slice(s), a.Config.Hex, out)
		return nil
	default:
		a.printLabelled(out, fmt.Sprintf("n[%s]", s), cli.FormatQuietResult(x.BitSlice(s), a.Config.Hex))
		return nil
	}
	a.printLabelled(out, "n", cli.FormatQuietResult(x, a.Config.Hex))
	return nil
}

func (a *Application) printLabelled(out io.Writer, label, value string) {
	if a.Config.Quiet {
		fmt.Fprintln(out, value)
		return
	}
	fmt.Fprintf(out, "%s = %s\n", label, value)
}

func formatWord(w uint64, hex bool) string {
	if hex {
		return fmt.Sprintf("%#x", w)
	}
	return strconv.FormatUint(w, 10)
}

// runPlan builds a transform plan and checks that a random sequence
// survives a forward and inverse transform.
func (a *Application) runPlan(out io.Writer) error {
	kind, err := modular.ParseKind(a.Config.Modulus)
	if err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	plan, err := ntt.NewPlan(a.Config.PlanSize, kind)
	if err != nil {
		return err
	}
	rtErr := roundTrip(plan, rand.New(rand.NewSource(benchSeed)))
	cli.DisplayPlan(plan, rtErr, out)
	return rtErr
}

// roundTrip checks Inverse(Forward(c)) == N·c on a random sequence.
func roundTrip(plan *ntt.Plan, rng *rand.Rand) error {
	f := plan.Field()
	seq := make([]uint64, plan.Size())
	for i := range seq {
		seq[i] = f.Reduce(rng.Uint64())
	}
	spectrum, err := plan.Forward(seq)
	if err != nil {
		return err
	}
	back, err := plan.Inverse(spectrum)
	if err != nil {
		return err
	}
	n := f.Reduce(uint64(plan.Size()))
	for i, c := range seq {
		if want := f.Mul(c, n); back[i] != want {
			return fmt.Errorf("coefficient %d: got %#x, want %#x", i, back[i], want)
		}
	}
	return nil
}

// benchRunner builds the runner shared by the text and dashboard modes.
func (a *Application) benchRunner() (bench.Runner, error) {
	sizes := bench.Sizes(a.Config.BenchMax)
	if len(sizes) == 0 {
		return bench.Runner{}, apperrors.NewConfigError("-max-bits must be at least %d", 200)
	}
	return bench.Runner{
		Registry:   a.Registry,
		Backends:   a.Config.BackendList(),
		Sizes:      sizes,
		Runs:       a.Config.BenchRuns,
		Seed:       benchSeed,
		ChunkWidth: a.Engine.Config().ChunkWidth,
	}, nil
}

// runBench times the selected backends and prints a comparison table.
func (a *Application) runBench(ctx context.Context, out io.Writer) error {
	runner, err := a.benchRunner()
	if err != nil {
		return err
	}
	var results []bench.Result
	err = cli.WithSpinner(out, "Benchmarking...", a.Config.Quiet, func() error {
		return runner.Run(ctx, func(r bench.Result) { results = append(results, r) })
	})
	if err != nil {
		return err
	}
	cli.PresentBenchTable(results, runner.Backends, out)
	for _, r := range results {
		if r.Err != nil {
			return apperrors.WrapError(r.Err, "%s at %d bits", r.Backend, r.Bits)
		}
	}
	return nil
}

// runInfo prints the environment and the multiplier settings.
func (a *Application) runInfo(out io.Writer) error {
	cli.DisplayInfo(cli.Info{
		Host:     sysmon.HostInfo(),
		Features: sysmon.CPUFeatures(),
		Backends: a.Registry.List(),
		Cache:    ntt.Cache().Stats(),
		Config:   a.Engine.Config(),
	}, out)
	return nil
}

// runMetrics multiplies the optional operands with the configured engine
// and dumps the collected metrics in the Prometheus text format.
func (a *Application) runMetrics(ctx context.Context, out io.Writer) error {
	if len(a.Config.Args) > 0 {
		ops, err := parseOperands(a.Config.Args, 2, "metrics [<a> <b>]")
		if err != nil {
			return err
		}
		if _, err := a.Engine.Multiply(ctx, ops[0], ops[1]); err != nil {
			return err
		}
	}
	return metrics.WriteText(out)
}
