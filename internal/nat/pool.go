// This file provides memory pooling for transform buffers to reduce GC pressure.

package nat

import (
	"math/big"
	"math/bits"
	"sync"
)

// ─────────────────────────────────────────────────────────────────────────────
// Word Slice Pools
// ─────────────────────────────────────────────────────────────────────────────

// wordSlicePools pools []big.Word slices by size class.
// Size classes are powers of 4 from 64 to 16M words.
var wordSlicePools = [...]sync.Pool{
	{New: func() any { return make([]big.Word, 64) }},
	{New: func() any { return make([]big.Word, 256) }},
	{New: func() any { return make([]big.Word, 1024) }},
	{New: func() any { return make([]big.Word, 4096) }},
	{New: func() any { return make([]big.Word, 16384) }},
	{New: func() any { return make([]big.Word, 65536) }},
	{New: func() any { return make([]big.Word, 262144) }},
	{New: func() any { return make([]big.Word, 1048576) }},  // 1M words = 8MB on 64-bit
	{New: func() any { return make([]big.Word, 4194304) }},  // 4M words = 32MB on 64-bit
	{New: func() any { return make([]big.Word, 16777216) }}, // 16M words = 128MB on 64-bit
}

// wordSliceSizes defines the size classes for word slice pools.
var wordSliceSizes = [...]int{64, 256, 1024, 4096, 16384, 65536, 262144, 1048576, 4194304, 16777216}

// getWordSlicePoolIndex returns the pool index for a given size.
// Returns -1 if the size is too large for pooling.
//
// wordSliceSizes are powers of 4 starting from 4^3 = 64:
// index i corresponds to size 4^(i+3), so bits.Len(size-1) maps directly to the index.
func getWordSlicePoolIndex(size int) int {
	if size <= 0 {
		return 0
	}
	if size > wordSliceSizes[len(wordSliceSizes)-1] {
		return -1
	}
	idx := (bits.Len(uint(size-1)) - 5) / 2
	if idx < 0 {
		idx = 0
	}
	return idx
}

// AcquireWords gets a zeroed word slice of exactly the given length from the pool.
// If the size is too large for pooling, a new slice is allocated.
//
// The returned slice should be released using ReleaseWords, preferably with defer:
//
//	buf := AcquireWords(size)
//	defer ReleaseWords(buf)
func AcquireWords(size int) Nat {
	idx := getWordSlicePoolIndex(size)
	if idx < 0 {
		return make(Nat, size)
	}
	slice := wordSlicePools[idx].Get().([]big.Word)
	clear(slice)
	return slice[:size]
}

// ReleaseWords returns a word slice to the pool. Slices whose capacity is
// not a size class were allocated directly and are left to the GC.
// Safe to call with nil.
func ReleaseWords(slice Nat) {
	if slice == nil {
		return
	}
	c := cap(slice)
	idx := getWordSlicePoolIndex(c)
	if idx >= 0 && wordSliceSizes[idx] == c {
		wordSlicePools[idx].Put([]big.Word(slice[:c]))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Coefficient Pools
// ─────────────────────────────────────────────────────────────────────────────

// coeffPools pools []uint64 transform buffers. Transform sizes are powers of
// two, so every class is a power of two from 2^6 to 2^24 coefficients.
var coeffPools [coeffClasses]sync.Pool

const (
	coeffMinLog  = 6
	coeffMaxLog  = 24
	coeffClasses = coeffMaxLog - coeffMinLog + 1
)

// getCoeffPoolIndex returns the pool index for a given size, or -1 when
// the size exceeds the largest class.
func getCoeffPoolIndex(size int) int {
	if size <= 1<<coeffMinLog {
		return 0
	}
	if size > 1<<coeffMaxLog {
		return -1
	}
	return bits.Len(uint(size-1)) - coeffMinLog
}

// AcquireCoeffs returns a zeroed []uint64 of exactly the given length.
//
//	buf := AcquireCoeffs(n)
//	defer ReleaseCoeffs(buf)
func AcquireCoeffs(size int) []uint64 {
	idx := getCoeffPoolIndex(size)
	if idx < 0 {
		return make([]uint64, size)
	}
	if v := coeffPools[idx].Get(); v != nil {
		buf := *v.(*[]uint64)
		clear(buf)
		return buf[:size]
	}
	return make([]uint64, size, 1<<(idx+coeffMinLog))
}

// ReleaseCoeffs returns a coefficient buffer to its pool. Safe to call with nil.
func ReleaseCoeffs(buf []uint64) {
	if buf == nil {
		return
	}
	c := cap(buf)
	idx := getCoeffPoolIndex(c)
	if idx >= 0 && c == 1<<(idx+coeffMinLog) {
		buf = buf[:c]
		coeffPools[idx].Put(&buf)
	}
}
