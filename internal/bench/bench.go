// Package bench times multiplication backends against each other over a
// ladder of operand sizes and checks every product against math/big.
package bench

import (
	"cmp"
	"context"
	"math/big"
	"math/rand"
	"slices"
	"time"

	apperrors "github.com/agbru/bigntt/internal/errors"
	"github.com/agbru/bigntt/internal/mul"
	"github.com/agbru/bigntt/internal/nat"
	"github.com/agbru/bigntt/internal/ubig"
)

// Result is the outcome of timing one backend at one operand size.
type Result struct {
	// Bits is the bit length of both operands.
	Bits int
	// Backend is the registry name of the multiplier.
	Backend string
	// Duration is the best time over all runs.
	Duration time.Duration
	// Err is set when the backend failed or disagreed with the reference.
	Err error
}

// Sizes returns the 2-5-10 ladder of operand sizes, starting at 200 bits
// and stopping at max.
func Sizes(max int) []int {
	var out []int
	for decade := 100; decade <= max; decade *= 10 {
		for _, m := range []int{2, 5, 10} {
			if s := m * decade; s <= max {
				out = append(out, s)
			}
		}
	}
	return out
}

// Runner benchmarks a set of registered backends.
type Runner struct {
	Registry *mul.Registry
	Backends []string
	Sizes    []int
	// Runs is the number of timed repetitions per size; the best one is kept.
	Runs int
	Seed int64
	// ChunkWidth sizes the pre-warmed transform buffers. Zero uses
	// mul.DefaultChunkWidth.
	ChunkWidth uint
	// Reference computes the expected products. A nil Reference uses math/big.
	Reference mul.Multiplier
}

// Run times every backend at every size and calls report once per
// (size, backend) pair, in order. Backend failures are reported through
// Result.Err; Run itself only fails on an unknown backend or when ctx is done.
func (r Runner) Run(ctx context.Context, report func(Result)) error {
	backends := make([]mul.Multiplier, len(r.Backends))
	for i, name := range r.Backends {
		m, err := r.Registry.Get(name)
		if err != nil {
			return err
		}
		backends[i] = m
	}
	ref := r.Reference
	if ref == nil {
		ref = mul.Reference{}
	}
	if len(r.Sizes) > 0 {
		nat.EnsurePoolsWarmed(uint64(slices.Max(r.Sizes)), cmp.Or(r.ChunkWidth, mul.DefaultChunkWidth))
	}
	runs := max(r.Runs, 1)
	rng := rand.New(rand.NewSource(r.Seed))

	for _, bits := range r.Sizes {
		if err := ctx.Err(); err != nil {
			return err
		}
		a, b := Operand(rng, bits), Operand(rng, bits)
		want, err := ref.Multiply(ctx, a, b)
		if err != nil {
			return apperrors.WrapError(err, "reference product at %d bits", bits)
		}
		for i, m := range backends {
			res := Result{Bits: bits, Backend: r.Backends[i]}
			res.Duration, res.Err = measure(ctx, m, a, b, want, runs)
			if err := ctx.Err(); err != nil {
				return err
			}
			report(res)
		}
	}
	return nil
}

func measure(ctx context.Context, m mul.Multiplier, a, b, want *ubig.UBig, runs int) (time.Duration, error) {
	var best time.Duration
	for i := 0; i < runs; i++ {
		start := time.Now()
		got, err := m.Multiply(ctx, a, b)
		elapsed := time.Since(start)
		if err != nil {
			return 0, err
		}
		if !got.Equal(want) {
			return 0, mul.MismatchError{Got: got, Want: want}
		}
		if i == 0 || elapsed < best {
			best = elapsed
		}
	}
	return best, nil
}

// Operand returns a random integer with exactly bits bits.
func Operand(rng *rand.Rand, bits int) *ubig.UBig {
	if bits <= 0 {
		return new(ubig.UBig)
	}
	v := new(big.Int).Rand(rng, new(big.Int).Lsh(big.NewInt(1), uint(bits)))
	v.SetBit(v, bits-1, 1)
	x, _ := ubig.FromBig(v)
	return x
}

// Fastest returns the backend with the lowest successful duration at the
// given size, or "" when none succeeded.
func Fastest(results []Result, bits int) string {
	name, best := "", time.Duration(0)
	for _, r := range results {
		if r.Bits != bits || r.Err != nil {
			continue
		}
		if name == "" || r.Duration < best {
			name, best = r.Backend, r.Duration
		}
	}
	return name
}
