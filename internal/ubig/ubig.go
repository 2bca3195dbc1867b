// Package ubig provides UBig, an arbitrary-precision unsigned integer whose
// storage can be read, written and restructured bit by bit or word by word
// with Python-style indexing and slicing.
//
// Parsing, formatting and the elementary arithmetic not covered here are
// delegated to math/big; multiplication of large operands lives in
// package mul.
//
// A UBig is not safe for concurrent mutation.
package ubig

import (
	"math/big"

	"github.com/agbru/bigntt/internal/chunk"
	apperrors "github.com/agbru/bigntt/internal/errors"
	"github.com/agbru/bigntt/internal/nat"
)

// UBig is an unsigned integer of arbitrary size. The zero value is 0.
type UBig struct {
	words nat.Nat
}

// New returns a UBig holding v.
func New(v uint64) *UBig {
	return &UBig{words: nat.FromUint64(v)}
}

// FromBig returns a UBig holding v, which must not be negative.
func FromBig(v *big.Int) (*UBig, error) {
	if v.Sign() < 0 {
		return nil, apperrors.NewValueError("cannot convert negative integer %s to UBig", v)
	}
	return &UBig{words: nat.FromBig(v)}, nil
}

// FromNat returns a UBig that takes ownership of x.
func FromNat(x nat.Nat) *UBig {
	return &UBig{words: x}
}

// FromWords returns a UBig whose storage is a copy of words, trailing zero
// words included.
func FromWords(words []big.Word) *UBig {
	return &UBig{words: nat.Nat(words).Clone()}
}

// Parse converts s in the given base into a UBig. Base 0 accepts the 0b,
// 0o and 0x prefixes as well as underscores, like big.Int.SetString.
func Parse(s string, base int) (*UBig, error) {
	v, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, apperrors.NewValueError("invalid integer literal %q in base %d", s, base)
	}
	return FromBig(v)
}

// FromChunks reassembles little-endian width-bit chunks into a UBig.
// Chunks may exceed 2^width; the excess carries into higher chunks.
func FromChunks(chunks []uint64, width uint) (*UBig, error) {
	x, err := chunk.Reassemble(chunks, width)
	if err != nil {
		return nil, err
	}
	return &UBig{words: x}, nil
}

// ToChunks splits z into ceil(BitLen/width) little-endian chunks.
func (z *UBig) ToChunks(width uint) ([]uint64, error) {
	return chunk.Decompose(z.words, width)
}

// Nat returns the normalized magnitude of z. The result aliases z's storage.
func (z *UBig) Nat() nat.Nat { return z.words.Norm() }

// RawWords returns a copy of the storage words, trailing zero words included.
func (z *UBig) RawWords() []big.Word { return z.words.Clone() }

// Int returns z as a new *big.Int.
func (z *UBig) Int() *big.Int { return z.words.Big() }

// Uint64 returns z as a uint64 and reports whether it fits.
func (z *UBig) Uint64() (uint64, bool) {
	if z.BitLen() > 64 {
		return 0, false
	}
	return z.words.ExtractBits(0, 64), true
}

// String returns the decimal representation of z.
func (z *UBig) String() string { return z.Text(10) }

// Text returns the representation of z in the given base (2 to 62).
func (z *UBig) Text(base int) string { return z.Int().Text(base) }

// BitLen returns the number of significant bits of z.
func (z *UBig) BitLen() int { return z.words.BitLen() }

// IsZero reports whether z == 0.
func (z *UBig) IsZero() bool { return z.words.IsZero() }

// Cmp compares z and x and returns -1, 0 or +1.
func (z *UBig) Cmp(x *UBig) int { return z.words.Cmp(x.words) }

// Equal reports whether z and x hold the same value.
func (z *UBig) Equal(x *UBig) bool { return z.Cmp(x) == 0 }

// Clone returns a deep copy of z.
func (z *UBig) Clone() *UBig { return &UBig{words: z.words.Clone()} }

// TrailingZeros returns the number of trailing zero bits of z. It reports
// false for 0, which has no lowest set bit.
func (z *UBig) TrailingZeros() (int, bool) {
	if z.IsZero() {
		return 0, false
	}
	return z.words.TrailingZeros(), true
}

// IsPowerOfTwo reports whether z is a power of two.
func (z *UBig) IsPowerOfTwo() bool {
	tz, ok := z.TrailingZeros()
	return ok && tz == z.BitLen()-1
}

// SplitBits splits z at bit n into the low n bits and the remaining high
// bits, so that z == lo + hi<<n.
func (z *UBig) SplitBits(n int) (lo, hi *UBig) {
	if n <= 0 {
		return new(UBig), z.Clone()
	}
	total := z.BitLen()
	if n >= total {
		return z.Clone(), new(UBig)
	}
	wl := nat.NewWriter(n)
	wl.Copy(z.words, 0, n)
	wh := nat.NewWriter(total - n)
	wh.Copy(z.words, n, total)
	return &UBig{words: wl.Nat()}, &UBig{words: wh.Nat()}
}
