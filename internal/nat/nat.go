// Package nat provides the word-level storage primitives that back UBig:
// a little-endian []big.Word magnitude with bit-granular extraction,
// deposit and removal, plus size-classed scratch pools.
//
// A Nat carries no normalization invariant. Trailing zero words are only
// trimmed by Norm, which reslices and never writes.
package nat

import (
	"math/big"
	"math/bits"
)

// W is the width of a storage word in bits.
const W = bits.UintSize

// Nat is an unsigned magnitude stored as little-endian words.
type Nat []big.Word

// Norm returns x without its trailing zero words.
func (x Nat) Norm() Nat {
	i := len(x)
	for i > 0 && x[i-1] == 0 {
		i--
	}
	return x[:i]
}

// IsZero reports whether every word of x is zero.
func (x Nat) IsZero() bool {
	return len(x.Norm()) == 0
}

// BitLen returns the length of x in bits; the bit length of 0 is 0.
func (x Nat) BitLen() int {
	x = x.Norm()
	if len(x) == 0 {
		return 0
	}
	return (len(x)-1)*W + bits.Len(uint(x[len(x)-1]))
}

// TrailingZeros returns the number of trailing zero bits of x, or 0 when x is 0.
func (x Nat) TrailingZeros() int {
	for i, w := range x {
		if w != 0 {
			return i*W + bits.TrailingZeros(uint(w))
		}
	}
	return 0
}

// Bit returns bit i of x; bits beyond the storage read as 0.
func (x Nat) Bit(i int) uint {
	j := i / W
	if i < 0 || j >= len(x) {
		return 0
	}
	return uint(x[j]>>uint(i%W)) & 1
}

// SetBit sets bit i of x to b and returns the possibly reallocated storage.
// Clearing a bit beyond the storage is a no-op.
func (x Nat) SetBit(i int, b uint) Nat {
	j := i / W
	m := big.Word(1) << uint(i%W)
	if b == 0 {
		if j < len(x) {
			x[j] &^= m
		}
		return x
	}
	x = x.Grow(j + 1)
	x[j] |= m
	return x
}

// Grow extends x with zero words up to n words. It never shrinks x.
func (x Nat) Grow(n int) Nat {
	if n <= len(x) {
		return x
	}
	if n <= cap(x) {
		old := len(x)
		x = x[:n]
		clear(x[old:])
		return x
	}
	z := make(Nat, n, n+n/4)
	copy(z, x)
	return z
}

// Clone returns a copy of x that shares no storage with it.
func (x Nat) Clone() Nat {
	if x == nil {
		return nil
	}
	z := make(Nat, len(x))
	copy(z, x)
	return z
}

// Cmp compares the values of x and y and returns -1, 0 or +1.
func (x Nat) Cmp(y Nat) int {
	x, y = x.Norm(), y.Norm()
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// FromBig returns a copy of the magnitude of v.
func FromBig(v *big.Int) Nat {
	return Nat(v.Bits()).Clone().Norm()
}

// FromUint64 returns the magnitude of v.
func FromUint64(v uint64) Nat {
	if v == 0 {
		return nil
	}
	if W == 64 {
		return Nat{big.Word(v)}
	}
	return Nat{big.Word(v), big.Word(v >> 32)}.Norm()
}

// Big returns x as a new *big.Int.
func (x Nat) Big() *big.Int {
	return new(big.Int).SetBits(x.Norm().Clone())
}
