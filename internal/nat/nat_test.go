package nat

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// randNat returns a random magnitude of at most nbits bits.
func randNat(r *rand.Rand, nbits int) Nat {
	v := new(big.Int).Rand(r, new(big.Int).Lsh(big.NewInt(1), uint(nbits)))
	return FromBig(v)
}

// refBits returns bits [pos, pos+n) of v computed with math/big shifts.
func refBits(v *big.Int, pos, n int) uint64 {
	s := new(big.Int).Rsh(v, uint(pos))
	m := new(big.Int).Lsh(big.NewInt(1), uint(n))
	m.Sub(m, big.NewInt(1))
	return s.And(s, m).Uint64()
}

func TestBitLenAndTrailingZeros(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		x       Nat
		bitLen  int
		trailTZ int
	}{
		{"nil", nil, 0, 0},
		{"zero words", Nat{0, 0}, 0, 0},
		{"one", Nat{1}, 1, 0},
		{"twelve", Nat{12}, 4, 2},
		{"high word", Nat{0, 1}, W + 1, W},
		{"unnormalized", Nat{5, 0, 0}, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.x.BitLen(); got != tt.bitLen {
				t.Errorf("BitLen() = %d, want %d", got, tt.bitLen)
			}
			if got := tt.x.TrailingZeros(); got != tt.trailTZ {
				t.Errorf("TrailingZeros() = %d, want %d", got, tt.trailTZ)
			}
		})
	}
}

func TestNormDoesNotWrite(t *testing.T) {
	t.Parallel()
	x := Nat{7, 0, 0}
	n := x.Norm()
	if len(n) != 1 || len(x) != 3 {
		t.Fatalf("Norm() len = %d, storage len = %d", len(n), len(x))
	}
}

func TestExtractBitsMatchesShift(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		x := randNat(r, 400)
		v := x.Big()
		pos := r.Intn(450)
		n := r.Intn(65)
		if got, want := x.ExtractBits(pos, n), refBits(v, pos, n); got != want {
			t.Fatalf("ExtractBits(%d, %d) = %#x, want %#x", pos, n, got, want)
		}
	}
}

func TestDepositBits(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		x := randNat(r, 300)
		want := x.Big()
		pos := r.Intn(400)
		n := 1 + r.Intn(64)
		v := r.Uint64() & mask64(n)

		field := new(big.Int).Lsh(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(n)), big.NewInt(1)), uint(pos))
		want.AndNot(want, field)
		want.Or(want, new(big.Int).Lsh(new(big.Int).SetUint64(v), uint(pos)))

		got := x.DepositBits(pos, n, v).Big()
		if got.Cmp(want) != 0 {
			t.Fatalf("DepositBits(%d, %d, %#x) = %s, want %s", pos, n, v, got, want)
		}
	}
}

func TestSetBit(t *testing.T) {
	t.Parallel()
	x := Nat{12}
	x = x.SetBit(0, 1)
	if x.Big().Int64() != 0b1101 {
		t.Fatalf("SetBit(0, 1) = %b", x.Big())
	}
	x = x.SetBit(2*W+3, 1)
	if x.BitLen() != 2*W+4 {
		t.Fatalf("SetBit beyond storage: BitLen = %d", x.BitLen())
	}
	x = x.SetBit(2*W+3, 0)
	x = x.SetBit(10*W, 0)
	if x.Big().Int64() != 0b1101 {
		t.Fatalf("clearing bits = %b", x.Big())
	}
}

func TestDeleteBits(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		x      uint64
		pos, n int
		want   uint64
	}{
		{"lowest bit", 0b1101, 0, 1, 0b110},
		{"middle bit", 0b1101, 2, 1, 0b101},
		{"top bit", 0b1101, 3, 1, 0b101},
		{"low run", 0b1101, 0, 2, 0b11},
		{"beyond length", 0b1101, 9, 3, 0b1101},
		{"all", 0b1101, 0, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := FromUint64(tt.x).DeleteBits(tt.pos, tt.n)
			if g := got.Big().Uint64(); g != tt.want {
				t.Errorf("DeleteBits(%d, %d) = %#b, want %#b", tt.pos, tt.n, g, tt.want)
			}
		})
	}
}

func TestCompactMatchesReference(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(3))
	for _, width := range []int{1, 3, 7, 29, 64} {
		for i := 0; i < 20; i++ {
			x := randNat(r, 500)
			length := (x.BitLen() + width - 1) / width
			var drop []int
			var want []uint64
			for u := 0; u < length; u++ {
				if r.Intn(3) == 0 {
					drop = append(drop, u)
					continue
				}
				want = append(want, x.ExtractBits(u*width, width))
			}
			got := Compact(x.Clone(), width, length, drop)
			for j, w := range want {
				if g := got.ExtractBits(j*width, width); g != w {
					t.Fatalf("width %d: unit %d = %#x, want %#x", width, j, g, w)
				}
			}
			if got.BitLen() > len(want)*width {
				t.Fatalf("width %d: result has %d bits for %d units", width, got.BitLen(), len(want))
			}
		}
	}
}

func TestWriterRoundTrip_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("copying every bit reproduces the magnitude", prop.ForAll(
		func(words []uint64, split int) bool {
			x := make(Nat, 0, len(words))
			for _, w := range words {
				x = x.DepositBits(len(x)*W, W, w)
			}
			total := x.BitLen()
			if split > total {
				split = total
			}
			wr := NewWriter(total)
			wr.Copy(x, 0, split)
			wr.Copy(x, split, total)
			return wr.Len() == total && wr.Nat().Cmp(x) == 0
		},
		gen.SliceOf(gen.UInt64()),
		gen.IntRange(0, 2048),
	))

	properties.TestingRun(t)
}

func TestCmp(t *testing.T) {
	t.Parallel()
	if (Nat{1, 0}).Cmp(Nat{1}) != 0 {
		t.Error("trailing zero words must not affect Cmp")
	}
	if (Nat{0, 1}).Cmp(Nat{5}) != 1 {
		t.Error("longer magnitude must compare greater")
	}
	if (Nat{4}).Cmp(Nat{5}) != -1 {
		t.Error("4 < 5")
	}
}
