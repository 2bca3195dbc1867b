package bench

import (
	"context"
	"errors"
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	apperrors "github.com/agbru/bigntt/internal/errors"
	"github.com/agbru/bigntt/internal/mul"
	"github.com/agbru/bigntt/internal/mul/mocks"
	"github.com/agbru/bigntt/internal/nat"
	"github.com/agbru/bigntt/internal/ubig"
)

func TestSizes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		max  int
		want []int
	}{
		{100, nil},
		{200, []int{200}},
		{25_000, []int{200, 500, 1000, 2000, 5000, 10_000, 20_000}},
		{1_000_000, []int{200, 500, 1000, 2000, 5000, 10_000, 20_000, 50_000, 100_000, 200_000, 500_000, 1_000_000}},
	}
	for _, tt := range tests {
		if got := Sizes(tt.max); !slices.Equal(got, tt.want) {
			t.Errorf("Sizes(%d) = %v, want %v", tt.max, got, tt.want)
		}
	}
}

func TestOperand(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(1))
	for _, bits := range []int{1, 63, 64, 65, 3000} {
		if got := Operand(rng, bits).BitLen(); got != bits {
			t.Errorf("Operand(%d).BitLen() = %d", bits, got)
		}
	}
	if !Operand(rng, 0).IsZero() {
		t.Error("Operand(0) should be zero")
	}
}

func TestRunBuiltins(t *testing.T) {
	t.Parallel()
	r := Runner{
		Registry: mul.NewRegistry(),
		Backends: []string{"ntt", "big"},
		Sizes:    []int{200, 5000},
		Runs:     2,
		Seed:     7,
	}
	var results []Result
	if err := r.Run(context.Background(), func(res Result) { results = append(results, res) }); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
	for i, res := range results {
		if res.Err != nil {
			t.Errorf("%s at %d bits: %v", res.Backend, res.Bits, res.Err)
		}
		if res.Bits != r.Sizes[i/2] || res.Backend != r.Backends[i%2] {
			t.Errorf("result %d is %s/%d, out of order", i, res.Backend, res.Bits)
		}
	}
	if f := Fastest(results, 5000); f != "ntt" && f != "big" {
		t.Errorf("Fastest = %q", f)
	}
	if !nat.PoolsWarmed() {
		t.Error("Run did not pre-warm the buffer pools")
	}
}

func TestRunReportsMismatch(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	broken := mocks.NewMockMultiplier(ctrl)
	broken.EXPECT().Multiply(gomock.Any(), gomock.Any(), gomock.Any()).Return(ubig.New(1), nil)

	reg := mul.NewRegistry()
	reg.Register("broken", broken)
	var got []Result
	r := Runner{Registry: reg, Backends: []string{"broken"}, Sizes: []int{300}, Runs: 3}
	if err := r.Run(context.Background(), func(res Result) { got = append(got, res) }); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(got) != 1 || !errors.Is(got[0].Err, apperrors.ErrMismatch) {
		t.Fatalf("results = %+v, want one mismatch", got)
	}
	if Fastest(got, 300) != "" {
		t.Error("a failed backend cannot be the fastest")
	}
}

func TestRunUnknownBackend(t *testing.T) {
	t.Parallel()
	r := Runner{Registry: mul.NewRegistry(), Backends: []string{"abacus"}, Sizes: []int{200}}
	if err := r.Run(context.Background(), func(Result) { t.Error("unexpected report") }); err == nil {
		t.Error("Run should fail on an unknown backend")
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := Runner{Registry: mul.NewRegistry(), Backends: []string{"big"}, Sizes: []int{200}}
	if err := r.Run(ctx, func(Result) {}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestFastest(t *testing.T) {
	t.Parallel()
	results := []Result{
		{Bits: 10, Backend: "a", Duration: 3 * time.Millisecond},
		{Bits: 10, Backend: "b", Duration: time.Millisecond},
		{Bits: 10, Backend: "c", Err: errors.New("boom")},
		{Bits: 20, Backend: "a", Duration: time.Microsecond},
	}
	if got := Fastest(results, 10); got != "b" {
		t.Errorf("Fastest(10) = %q, want b", got)
	}
	if got := Fastest(results, 30); got != "" {
		t.Errorf("Fastest(30) = %q, want empty", got)
	}
}
