// Package chunk splits magnitudes into fixed-width little-endian chunks and
// reassembles chunk sequences, propagating carries, back into magnitudes.
//
// Chunks are the polynomial coefficients of transform-based
// multiplication. Reassemble accepts coefficients of any uint64 value,
// which is what a convolution produces before base-2^w normalization.
package chunk

import (
	"math/bits"

	apperrors "github.com/agbru/bigntt/internal/errors"
	"github.com/agbru/bigntt/internal/nat"
)

// MaxWidth is the widest supported chunk.
const MaxWidth = 64

// CheckWidth returns a value error unless 1 <= w <= MaxWidth.
func CheckWidth(w uint) error {
	if w == 0 || w > MaxWidth {
		return apperrors.NewValueError("chunk width %d out of range [1, %d]", w, MaxWidth)
	}
	return nil
}

// Count returns the number of w-bit chunks needed for a bitLen-bit value.
func Count(bitLen int, w uint) int {
	return (bitLen + int(w) - 1) / int(w)
}

// Decompose splits x into ceil(bitlen(x)/w) chunks of w bits, least
// significant first. A zero magnitude yields an empty sequence.
func Decompose(x nat.Nat, w uint) ([]uint64, error) {
	if err := CheckWidth(w); err != nil {
		return nil, err
	}
	n := Count(x.BitLen(), w)
	out := make([]uint64, n)
	fill(out, x, w)
	return out, nil
}

// DecomposePadded splits x like Decompose into dst and zero-fills the rest
// of dst. It fails when x needs more than len(dst) chunks.
func DecomposePadded(dst []uint64, x nat.Nat, w uint) error {
	if err := CheckWidth(w); err != nil {
		return err
	}
	n := Count(x.BitLen(), w)
	if n > len(dst) {
		return apperrors.NewValueError("%d chunks do not fit in a sequence of length %d", n, len(dst))
	}
	fill(dst[:n], x, w)
	clear(dst[n:])
	return nil
}

func fill(dst []uint64, x nat.Nat, w uint) {
	for i := range dst {
		dst[i] = x.ExtractBits(i*int(w), int(w))
	}
}

// Reassemble computes sum(chunks[i] << (i*w)) as a normalized magnitude.
// Chunk values may be 2^w or larger; the excess is carried into the next
// position with a 128-bit running sum.
func Reassemble(chunks []uint64, w uint) (nat.Nat, error) {
	if err := CheckWidth(w); err != nil {
		return nil, err
	}
	out := nat.NewWriter(len(chunks)*int(w) + 2*MaxWidth)
	var carryLo, carryHi uint64
	for _, c := range chunks {
		lo, cc := bits.Add64(carryLo, c, 0)
		hi := carryHi + cc
		out.Write(lo, int(w))
		carryLo, carryHi = shr128(lo, hi, w)
	}
	for carryLo != 0 || carryHi != 0 {
		out.Write(carryLo, int(w))
		carryLo, carryHi = shr128(carryLo, carryHi, w)
	}
	return out.Nat(), nil
}

// shr128 returns (hi:lo) >> s for 1 <= s <= 64.
func shr128(lo, hi uint64, s uint) (uint64, uint64) {
	if s == 64 {
		return hi, 0
	}
	return lo>>s | hi<<(64-s), hi >> s
}
