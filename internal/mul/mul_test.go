package mul

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"
	"math/rand"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/rs/zerolog"

	"github.com/agbru/bigntt/internal/logging"
	"github.com/agbru/bigntt/internal/modular"
	"github.com/agbru/bigntt/internal/ubig"
)

// engines returns one engine per modulus preference.
func engines(t testing.TB) map[modular.Kind]*Engine {
	t.Helper()
	out := make(map[modular.Kind]*Engine)
	for kind, threshold := range map[modular.Kind]int{modular.Native: math.MaxInt, modular.Solinas: 0} {
		cfg := DefaultConfig()
		cfg.PrimeThresholdBits = threshold
		e, err := NewEngine(cfg)
		if err != nil {
			t.Fatalf("NewEngine: %v", err)
		}
		out[kind] = e
	}
	return out
}

func mustUBig(t testing.TB, v *big.Int) *ubig.UBig {
	t.Helper()
	u, err := ubig.FromBig(v)
	if err != nil {
		t.Fatalf("FromBig: %v", err)
	}
	return u
}

func TestPowersScenario(t *testing.T) {
	t.Parallel()
	av := new(big.Int).Exp(big.NewInt(3), big.NewInt(2000), nil)
	bv := new(big.Int).Exp(big.NewInt(7), big.NewInt(1100), nil)
	want := new(big.Int).Mul(av, bv)
	a, b := mustUBig(t, av), mustUBig(t, bv)

	for kind, e := range engines(t) {
		t.Run(kind.String(), func(t *testing.T) {
			t.Parallel()
			p, err := e.Config().ChooseParams(a.BitLen(), b.BitLen())
			if err != nil {
				t.Fatalf("ChooseParams: %v", err)
			}
			if p.Kind != kind || p.Size != 256 {
				t.Errorf("params = %s, want %s with size 256", p, kind)
			}
			got, err := e.Multiply(context.Background(), a, b)
			if err != nil {
				t.Fatalf("Multiply: %v", err)
			}
			if got.Int().Cmp(want) != 0 {
				t.Error("3^2000 * 7^1100 mismatch")
			}
		})
	}
}

func TestMultiplyEdgeCases(t *testing.T) {
	t.Parallel()
	maxWord := new(big.Int).SetUint64(math.MaxUint64)
	allOnes := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 4096), big.NewInt(1))
	tests := []struct {
		name string
		a, b *big.Int
	}{
		{"zero left", big.NewInt(0), big.NewInt(12345)},
		{"zero right", allOnes, big.NewInt(0)},
		{"one", big.NewInt(1), allOnes},
		{"small", big.NewInt(12), big.NewInt(13)},
		{"max word squared", maxWord, maxWord},
		{"all ones", allOnes, allOnes},
		{"unbalanced", allOnes, big.NewInt(3)},
		{"power of two", new(big.Int).Lsh(big.NewInt(1), 5000), new(big.Int).Lsh(big.NewInt(1), 77)},
	}
	for kind, e := range engines(t) {
		for _, tt := range tests {
			t.Run(kind.String()+"/"+tt.name, func(t *testing.T) {
				t.Parallel()
				got, err := e.Multiply(context.Background(), mustUBig(t, tt.a), mustUBig(t, tt.b))
				if err != nil {
					t.Fatalf("Multiply: %v", err)
				}
				if want := new(big.Int).Mul(tt.a, tt.b); got.Int().Cmp(want) != 0 {
					t.Errorf("product mismatch: got %d bits, want %d bits", got.BitLen(), want.BitLen())
				}
			})
		}
	}
}

func TestMultiply_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	genInt := gen.SliceOfN(24, gen.UInt64()).Map(func(ws []uint64) *big.Int {
		v := new(big.Int)
		for _, w := range ws {
			v.Lsh(v, 64).Or(v, new(big.Int).SetUint64(w))
		}
		return v
	})
	es := engines(t)

	for kind, e := range es {
		properties.Property("Multiply matches big.Int.Mul with "+kind.String(), prop.ForAll(
			func(x, y *big.Int, shift uint) bool {
				y = new(big.Int).Rsh(y, shift)
				a, _ := ubig.FromBig(x)
				b, _ := ubig.FromBig(y)
				got, err := e.Multiply(context.Background(), a, b)
				return err == nil && got.Int().Cmp(new(big.Int).Mul(x, y)) == 0
			},
			genInt, genInt, gen.UIntRange(0, 1500),
		))
	}

	properties.Property("Square matches x*x", prop.ForAll(
		func(x *big.Int) bool {
			a, _ := ubig.FromBig(x)
			got, err := Square(a)
			return err == nil && got.Int().Cmp(new(big.Int).Mul(x, x)) == 0
		},
		genInt,
	))

	properties.TestingRun(t)
}

func TestMultiplyLargeParallel(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large multiplication in short mode")
	}
	t.Parallel()
	cfg := DefaultConfig()
	cfg.ParallelThreshold = 64
	e, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	r := rand.New(rand.NewSource(7))
	for _, n := range []int{1000, 20_000, 100_000} {
		x := new(big.Int).Rand(r, new(big.Int).Lsh(big.NewInt(1), uint(n)))
		y := new(big.Int).Rand(r, new(big.Int).Lsh(big.NewInt(1), uint(n+321)))
		got, err := e.Multiply(context.Background(), mustUBig(t, x), mustUBig(t, y))
		if err != nil {
			t.Fatalf("Multiply(%d bits): %v", n, err)
		}
		if got.Int().Cmp(new(big.Int).Mul(x, y)) != 0 {
			t.Errorf("%d-bit product mismatch", n)
		}
	}
}

func TestMultiplyHonorsCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := ubig.New(1 << 40)
	for _, parallel := range []int{0, 1} {
		cfg := DefaultConfig()
		cfg.ParallelThreshold = parallel
		e, _ := NewEngine(cfg)
		if _, err := e.Multiply(ctx, a, ubig.New(3)); !errors.Is(err, context.Canceled) {
			t.Errorf("Multiply (parallel threshold %d) err = %v, want context.Canceled", parallel, err)
		}
		if _, err := e.Square(ctx, a); !errors.Is(err, context.Canceled) {
			t.Errorf("Square err = %v, want context.Canceled", err)
		}
	}
}

func TestMultiplyDoesNotModifyOperands(t *testing.T) {
	t.Parallel()
	a, b := ubig.New(0xdeadbeefcafe), ubig.New(0x123456789)
	ac, bc := a.Clone(), b.Clone()
	if _, err := Multiply(a, b); err != nil {
		t.Fatalf("Multiply: %v", err)
	}
	if !a.Equal(ac) || !b.Equal(bc) {
		t.Error("operands changed")
	}
}

func TestMultiplyLogsParameters(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	e, err := NewEngine(DefaultConfig(), WithLogger(logging.NewLogger(&buf, "mul", zerolog.DebugLevel)))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if _, err := e.Multiply(context.Background(), ubig.New(1<<62), ubig.New(3)); err != nil {
		t.Fatalf("Multiply: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"multiplication parameters", `"modulus":"native"`, `"width":29`} {
		if !strings.Contains(out, want) {
			t.Errorf("log should contain %q, got: %s", want, out)
		}
	}
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	t.Parallel()
	if _, err := NewEngine(Config{}); err == nil {
		t.Error("NewEngine(Config{}) should fail")
	}
}

func TestMulBig(t *testing.T) {
	t.Parallel()
	x := new(big.Int).Exp(big.NewInt(-3), big.NewInt(501), nil)
	y := new(big.Int).Exp(big.NewInt(11), big.NewInt(300), nil)
	tests := []struct{ a, b *big.Int }{{x, y}, {y, x}, {x, x}, {x, new(big.Int).Neg(y)}, {x, big.NewInt(0)}}
	for _, tt := range tests {
		got, err := MulBig(tt.a, tt.b)
		if err != nil {
			t.Fatalf("MulBig: %v", err)
		}
		if want := new(big.Int).Mul(tt.a, tt.b); got.Cmp(want) != 0 {
			t.Errorf("MulBig(%d bits, %d bits) sign or magnitude mismatch", tt.a.BitLen(), tt.b.BitLen())
		}
	}
}

func TestEngineMultiplySigned(t *testing.T) {
	t.Parallel()
	e := Default()
	tests := []struct {
		name string
		x, y *ubig.IBig
		want int64
	}{
		{"negative by positive", ubig.NewIBig(-12), ubig.NewIBig(7), -84},
		{"negative by negative", ubig.NewIBig(-12), ubig.NewIBig(-7), 84},
		{"zero keeps no sign", ubig.NewIBig(-12), ubig.NewIBig(0), 0},
		{"from magnitude", ubig.FromUBig(true, ubig.New(5)), ubig.NewIBig(3), -15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := e.MultiplySigned(context.Background(), tt.x, tt.y)
			if err != nil {
				t.Fatalf("MultiplySigned: %v", err)
			}
			if got.Cmp(ubig.NewIBig(tt.want)) != 0 {
				t.Errorf("got %s, want %d", got, tt.want)
			}
		})
	}

	x := ubig.NewIBig(-9)
	sq, err := e.MultiplySigned(context.Background(), x, x)
	if err != nil {
		t.Fatalf("MultiplySigned(x, x): %v", err)
	}
	if sq.Sign() != 1 || sq.String() != "81" {
		t.Errorf("square of -9 = %s", sq)
	}
}

func FuzzMultiply(f *testing.F) {
	f.Add([]byte{1}, []byte{1})
	f.Add([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, []byte{0xff, 0xff})
	f.Add(bytes.Repeat([]byte{0xab}, 300), bytes.Repeat([]byte{0x5c}, 200))

	f.Fuzz(func(t *testing.T, xb, yb []byte) {
		if len(xb) > 4096 || len(yb) > 4096 {
			return
		}
		x, y := new(big.Int).SetBytes(xb), new(big.Int).SetBytes(yb)
		got, err := Multiply(mustUBig(t, x), mustUBig(t, y))
		if err != nil {
			t.Fatalf("Multiply: %v", err)
		}
		if got.Int().Cmp(new(big.Int).Mul(x, y)) != 0 {
			t.Fatalf("product mismatch for %x * %x", xb, yb)
		}
	})
}

func BenchmarkMultiply(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	for _, bitsLen := range []int{10_000, 100_000, 1_000_000} {
		x := new(big.Int).Rand(r, new(big.Int).Lsh(big.NewInt(1), uint(bitsLen)))
		y := new(big.Int).Rand(r, new(big.Int).Lsh(big.NewInt(1), uint(bitsLen)))
		a, c := mustUBig(b, x), mustUBig(b, y)
		b.Run(fmt.Sprintf("%dbits", bitsLen), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := Multiply(a, c); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
