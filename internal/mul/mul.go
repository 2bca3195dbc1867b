// Package mul multiplies arbitrary-precision integers with a negacyclic
// number-theoretic transform.
//
// Operands are split into w-bit chunks, zero-padded to a power-of-two
// length N at least the sum of the chunk counts, transformed, multiplied
// pointwise and transformed back. The coefficients are then recombined
// with carries. Parameters are chosen per call so that no coefficient can
// reach the modulus; see Config.ChooseParams.
package mul

//go:generate mockgen -source=mul.go -destination=mocks/mock_multiplier.go -package=mocks

import (
	"context"
	"math/big"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/bigntt/internal/chunk"
	"github.com/agbru/bigntt/internal/logging"
	"github.com/agbru/bigntt/internal/metrics"
	"github.com/agbru/bigntt/internal/nat"
	"github.com/agbru/bigntt/internal/ntt"
	"github.com/agbru/bigntt/internal/ubig"
)

// Multiplier computes products of unsigned integers.
type Multiplier interface {
	Multiply(ctx context.Context, a, b *ubig.UBig) (*ubig.UBig, error)
	Square(ctx context.Context, a *ubig.UBig) (*ubig.UBig, error)
}

// Engine is the NTT-based Multiplier. It is safe for concurrent use.
type Engine struct {
	cfg    Config
	logger logging.Logger
	tracer trace.Tracer
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for parameter choices.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine returns an Engine for the given configuration.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg, logger: logging.Nop(), tracer: otel.Tracer("bigntt/mul")}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Multiply returns a·b.
func (e *Engine) Multiply(ctx context.Context, a, b *ubig.UBig) (*ubig.UBig, error) {
	if a == b {
		return e.Square(ctx, a)
	}
	return e.run(ctx, "Multiply", a, b)
}

// Square returns a·a using a single forward transform.
func (e *Engine) Square(ctx context.Context, a *ubig.UBig) (*ubig.UBig, error) {
	return e.run(ctx, "Square", a, nil)
}

// run computes a·b, or a·a when b is nil.
func (e *Engine) run(ctx context.Context, op string, a, b *ubig.UBig) (res *ubig.UBig, err error) {
	ctx, span := e.tracer.Start(ctx, op)
	defer span.End()

	square := b == nil
	if square {
		b = a
	}
	if a.IsZero() || b.IsZero() {
		return new(ubig.UBig), nil
	}

	p, err := e.cfg.ChooseParams(a.BitLen(), b.BitLen())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "parameter selection failed")
		return nil, err
	}
	span.SetAttributes(
		attribute.String("modulus", p.Kind.String()),
		attribute.Int("chunk_width", int(p.Width)),
		attribute.Int("transform_size", p.Size),
	)
	e.logger.Debug("multiplication parameters",
		logging.String("op", op),
		logging.Int("bits_a", a.BitLen()),
		logging.Int("bits_b", b.BitLen()),
		logging.String("modulus", p.Kind.String()),
		logging.Uint("width", p.Width),
		logging.Int("size", p.Size),
	)

	start := time.Now()
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		metrics.MultiplicationsTotal.WithLabelValues(p.Kind.String(), status).Inc()
		metrics.MultiplicationDuration.WithLabelValues(p.Kind.String()).Observe(time.Since(start).Seconds())
	}()
	metrics.TransformSize.Observe(float64(p.LogSize()))

	plan, err := ntt.Get(p.Size, p.Kind)
	if err != nil {
		return nil, err
	}

	fa := nat.AcquireCoeffs(p.Size)
	defer nat.ReleaseCoeffs(fa)
	if err := chunk.DecomposePadded(fa, a.Nat(), p.Width); err != nil {
		return nil, err
	}

	if square {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		plan.SquareInPlace(fa)
	} else {
		fb := nat.AcquireCoeffs(p.Size)
		defer nat.ReleaseCoeffs(fb)
		if err := chunk.DecomposePadded(fb, b.Nat(), p.Width); err != nil {
			return nil, err
		}
		if err := e.forward(ctx, plan, fa, fb); err != nil {
			return nil, err
		}
		plan.MulScaledInPlace(fa, fb)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		plan.InverseInPlace(fa)
	}

	prod, err := chunk.Reassemble(fa[:p.TermsA+p.TermsB-1], p.Width)
	if err != nil {
		return nil, err
	}
	return ubig.FromNat(prod), nil
}

// MultiplySigned returns x·y. The magnitudes go through Multiply, or
// Square when x and y are the same value; the sign is the product of
// the operand signs.
func (e *Engine) MultiplySigned(ctx context.Context, x, y *ubig.IBig) (*ubig.IBig, error) {
	var (
		p   *ubig.UBig
		err error
	)
	if x == y {
		p, err = e.Square(ctx, x.Magnitude())
	} else {
		p, err = e.Multiply(ctx, x.Magnitude(), y.Magnitude())
	}
	if err != nil {
		return nil, err
	}
	return ubig.FromUBig(x.Sign()*y.Sign() < 0, p), nil
}

// forward transforms both operands, concurrently once the transform is
// large enough.
func (e *Engine) forward(ctx context.Context, plan *ntt.Plan, fa, fb []uint64) error {
	if e.cfg.ParallelThreshold <= 0 || plan.Size() < e.cfg.ParallelThreshold {
		if err := ctx.Err(); err != nil {
			return err
		}
		plan.ForwardInPlace(fa)
		plan.ForwardInPlace(fb)
		return ctx.Err()
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, seq := range [][]uint64{fa, fb} {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			plan.ForwardInPlace(seq)
			return nil
		})
	}
	return g.Wait()
}

var defaultEngine = func() *Engine {
	e, err := NewEngine(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return e
}()

// Default returns the Engine used by the package-level functions.
func Default() *Engine { return defaultEngine }

// Multiply returns a·b using the default engine.
func Multiply(a, b *ubig.UBig) (*ubig.UBig, error) {
	return defaultEngine.Multiply(context.Background(), a, b)
}

// Square returns a·a using the default engine.
func Square(a *ubig.UBig) (*ubig.UBig, error) {
	return defaultEngine.Square(context.Background(), a)
}

// MulBig returns x·y for signed big.Int operands using the default engine.
func MulBig(x, y *big.Int) (*big.Int, error) {
	a := ubig.IBigFromBig(x)
	b := a
	if x != y {
		b = ubig.IBigFromBig(y)
	}
	p, err := defaultEngine.MultiplySigned(context.Background(), a, b)
	if err != nil {
		return nil, err
	}
	return p.Int(), nil
}
