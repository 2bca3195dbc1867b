package app

import (
	"context"
	"io"
	"time"

	"github.com/agbru/bigntt/internal/cli"
	apperrors "github.com/agbru/bigntt/internal/errors"
	"github.com/agbru/bigntt/internal/logging"
	"github.com/agbru/bigntt/internal/metrics"
	"github.com/agbru/bigntt/internal/mul"
	"github.com/agbru/bigntt/internal/ubig"
)

// parseOperands parses exactly n integer arguments. Literals accept the
// 0x, 0o and 0b prefixes.
func parseOperands(args []string, n int, usage string) ([]*ubig.UBig, error) {
	if len(args) != n {
		return nil, apperrors.NewConfigError("usage: bigntt %s", usage)
	}
	ops := make([]*ubig.UBig, n)
	for i, s := range args {
		x, err := ubig.Parse(s, 0)
		if err != nil {
			return nil, err
		}
		ops[i] = x
	}
	return ops, nil
}

// runMultiply executes the mul and square commands.
func (a *Application) runMultiply(ctx context.Context, out io.Writer) error {
	var ops []*ubig.UBig
	var err error
	if a.Config.Command == "square" {
		ops, err = parseOperands(a.Config.Args, 1, "square [flags] <a>")
	} else {
		ops, err = parseOperands(a.Config.Args, 2, "mul [flags] <a> <b>")
	}
	if err != nil {
		return err
	}

	m, err := a.Registry.Get(a.Config.Backend)
	if err != nil {
		return apperrors.NewConfigError("%v", err)
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(a.Config, out)
	}

	mc := metrics.NewMemoryCollector()
	before := mc.Snapshot()
	var result *ubig.UBig
	start := time.Now()
	err = cli.WithSpinner(out, "Multiplying...", a.Config.Quiet, func() error {
		var err error
		result, err = a.multiply(ctx, m, ops)
		return err
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	mem := mc.Snapshot().Since(before)

	a.Logger.Info("product computed",
		logging.String("backend", a.Config.Backend),
		logging.Int("bits", result.BitLen()),
		logging.String("duration", elapsed.String()))

	product := cli.Product{
		Op:       a.Config.Command,
		Backend:  a.Config.Backend,
		Operands: ops,
		Result:   result,
		Duration: elapsed,
		Verified: a.Config.Verify,
	}
	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Hex:        a.Config.Hex,
	}
	if err := cli.DisplayProduct(out, product, outputCfg); err != nil {
		return err
	}

	if a.Config.Details && !a.Config.Quiet {
		a.displayDetails(m, ops, mem, out)
	}
	return nil
}

func (a *Application) multiply(ctx context.Context, m mul.Multiplier, ops []*ubig.UBig) (*ubig.UBig, error) {
	x, y := ops[0], ops[len(ops)-1]
	switch {
	case a.Config.Verify:
		return mul.Verify(ctx, m, mul.Reference{}, x, y)
	case len(ops) == 1:
		return m.Square(ctx, x)
	default:
		return m.Multiply(ctx, x, y)
	}
}

// displayDetails prints the transform parameters, when m is an NTT
// engine, and the memory used by the product.
func (a *Application) displayDetails(m mul.Multiplier, ops []*ubig.UBig, mem metrics.MemorySnapshot, out io.Writer) {
	if e, ok := m.(*mul.Engine); ok {
		x, y := ops[0], ops[len(ops)-1]
		if p, err := e.Config().ChooseParams(x.BitLen(), y.BitLen()); err == nil {
			cli.DisplayParams(p, out)
		}
	}
	cli.DisplayMemoryStats(mem, out)
}
