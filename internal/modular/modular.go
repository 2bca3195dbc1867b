// Package modular implements word-sized arithmetic modulo the two
// transform-friendly primes used by the NTT engine.
//
// The prime is a closed choice expressed by Kind. Each Kind maps to one
// Field value holding the modulus and its reduction constants; arithmetic
// methods switch on the kind so the hot loops never go through an
// interface.
package modular

import (
	"fmt"
	"math/bits"
	"strings"

	apperrors "github.com/agbru/bigntt/internal/errors"
)

// Kind selects the modulus of a Field.
type Kind uint8

const (
	// Native is the 63-bit prime 2147483641·2^32 + 1 with Montgomery
	// multiplication. Sums of two residues never overflow a word.
	Native Kind = iota
	// Solinas is the prime 2^64 - 2^32 + 1, reduced with the identities
	// 2^64 ≡ 2^32 - 1 and 2^96 ≡ -1.
	Solinas
)

// Kinds lists every supported modulus, smallest first.
var Kinds = []Kind{Native, Solinas}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Native:
		return "native"
	case Solinas:
		return "solinas"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind converts a case-insensitive kind name into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "native":
		return Native, nil
	case "solinas", "prime":
		return Solinas, nil
	default:
		return 0, apperrors.NewValueError("unknown modulus %q (expected native or solinas)", s)
	}
}

const (
	// NativeModulus is the prime behind Native.
	NativeModulus uint64 = 0x7ffffff900000001
	// SolinasModulus is the prime behind Solinas.
	SolinasModulus uint64 = 0xffffffff00000001

	nativeNegInv uint64 = 0x7ffffff8ffffffff // -p^-1 mod 2^64
	nativeR2     uint64 = 0x00000a7ffffffe7c // 2^128 mod p

	// solinasEps is 2^64 mod SolinasModulus.
	solinasEps uint64 = 0xffffffff
)

// Field is arithmetic modulo one prime. Operands of every method must be
// reduced (below Modulus) and results always are.
type Field struct {
	kind       Kind
	p          uint64
	generator  uint64
	twoAdicity uint
}

var fields = [...]Field{
	Native:  {kind: Native, p: NativeModulus, generator: 3, twoAdicity: 32},
	Solinas: {kind: Solinas, p: SolinasModulus, generator: 7, twoAdicity: 32},
}

// For returns the field of the given kind.
func For(k Kind) (*Field, error) {
	if int(k) >= len(fields) {
		return nil, apperrors.NewValueError("unknown modulus kind %d", uint8(k))
	}
	return &fields[k], nil
}

// MustFor is like For but panics on an unknown kind.
func MustFor(k Kind) *Field {
	f, err := For(k)
	if err != nil {
		panic(err)
	}
	return f
}

// Kind returns the modulus choice of f.
func (f *Field) Kind() Kind { return f.kind }

// Modulus returns the prime p.
func (f *Field) Modulus() uint64 { return f.p }

// Generator returns a generator of the multiplicative group.
func (f *Field) Generator() uint64 { return f.generator }

// TwoAdicity returns the largest k such that 2^k divides p-1.
func (f *Field) TwoAdicity() uint { return f.twoAdicity }

// MaxLogSize returns log2 of the largest negacyclic transform the field
// supports. Such a transform needs a root of unity of order 2N.
func (f *Field) MaxLogSize() uint { return f.twoAdicity - 1 }

func (f *Field) String() string {
	return fmt.Sprintf("%s(%#x)", f.kind, f.p)
}

// Reduce returns x mod p for any word x.
func (f *Field) Reduce(x uint64) uint64 {
	if x >= f.p {
		x -= f.p
		if x >= f.p {
			x %= f.p
		}
	}
	return x
}

// Add returns a + b mod p.
func (f *Field) Add(a, b uint64) uint64 {
	s, c := bits.Add64(a, b, 0)
	if c != 0 || s >= f.p {
		s -= f.p
	}
	return s
}

// Sub returns a - b mod p.
func (f *Field) Sub(a, b uint64) uint64 {
	d, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		d += f.p
	}
	return d
}

// Neg returns -a mod p.
func (f *Field) Neg(a uint64) uint64 {
	if a == 0 {
		return 0
	}
	return f.p - a
}

// Mul returns a·b mod p.
func (f *Field) Mul(a, b uint64) uint64 {
	if f.kind == Native {
		return montMul(montMul(a, b), nativeR2)
	}
	return solinasReduce(bits.Mul64(a, b))
}

// Prepare converts a constant multiplier into the form expected by
// MulPrepared: c·2^64 mod p for Native and c itself for Solinas.
func (f *Field) Prepare(c uint64) uint64 {
	if f.kind == Native {
		return montMul(c, nativeR2)
	}
	return c
}

// MulPrepared returns a·c mod p where cp = Prepare(c). It costs a single
// reduction, which is what transform butterflies use for twiddle factors.
func (f *Field) MulPrepared(a, cp uint64) uint64 {
	if f.kind == Native {
		return montMul(a, cp)
	}
	return solinasReduce(bits.Mul64(a, cp))
}

// Pow returns a^e mod p.
func (f *Field) Pow(a, e uint64) uint64 {
	r := uint64(1)
	for ; e > 0; e >>= 1 {
		if e&1 == 1 {
			r = f.Mul(r, a)
		}
		a = f.Mul(a, a)
	}
	return r
}

// Inv returns the multiplicative inverse of a. Zero has no inverse.
func (f *Field) Inv(a uint64) (uint64, error) {
	if a == 0 {
		return 0, apperrors.NewValueError("zero has no inverse modulo %#x", f.p)
	}
	return f.Pow(a, f.p-2), nil
}

// RootOfUnity returns a primitive root of unity of the given order, which
// must be a power of two no larger than 2^TwoAdicity.
func (f *Field) RootOfUnity(order uint64) (uint64, error) {
	if order == 0 || order&(order-1) != 0 || bits.TrailingZeros64(order) > int(f.twoAdicity) {
		return 0, apperrors.NewValueError("no root of unity of order %d modulo %#x", order, f.p)
	}
	return f.Pow(f.generator, (f.p-1)/order), nil
}

// montMul returns a·b·2^-64 mod NativeModulus for a, b < NativeModulus.
func montMul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	m := lo * nativeNegInv
	mhi, mlo := bits.Mul64(m, NativeModulus)
	_, carry := bits.Add64(lo, mlo, 0)
	t := hi + mhi + carry
	if t >= NativeModulus {
		t -= NativeModulus
	}
	return t
}

// solinasReduce returns (hi·2^64 + lo) mod SolinasModulus.
func solinasReduce(hi, lo uint64) uint64 {
	hh := hi >> 32
	hl := hi & 0xffffffff
	t0, borrow := bits.Sub64(lo, hh, 0)
	if borrow != 0 {
		t0 -= solinasEps
	}
	t1 := hl * solinasEps
	r, carry := bits.Add64(t0, t1, 0)
	if carry != 0 {
		r += solinasEps
	}
	if r >= SolinasModulus {
		r -= SolinasModulus
	}
	return r
}
