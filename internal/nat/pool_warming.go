// Pool pre-warming for adaptive buffer pre-allocation based on operand size.

package nat

import (
	"math/big"
	"sync/atomic"
)

// PreWarmPools pre-allocates coefficient and word buffers for multiplying
// operands of up to maxBits bits each at the given chunk width. The number
// of buffers per class grows with the operand size:
//   - maxBits < 100,000: 2 buffers
//   - 100,000 ≤ maxBits < 1,000,000: 4 buffers
//   - maxBits ≥ 1,000,000: 6 buffers
func PreWarmPools(maxBits uint64, width uint) {
	if width == 0 {
		return
	}
	numBuffers := 2
	if maxBits >= 1_000_000 {
		numBuffers = 6
	} else if maxBits >= 100_000 {
		numBuffers = 4
	}

	chunks := int((maxBits + uint64(width) - 1) / uint64(width))
	size := 1
	for size < 2*chunks {
		size <<= 1
	}
	if idx := getCoeffPoolIndex(size); idx >= 0 {
		c := 1 << (idx + coeffMinLog)
		for i := 0; i < numBuffers; i++ {
			buf := make([]uint64, c)
			coeffPools[idx].Put(&buf)
		}
	}

	words := int(2 * maxBits / W)
	if idx := getWordSlicePoolIndex(words); idx >= 0 {
		for i := 0; i < numBuffers/2; i++ {
			wordSlicePools[idx].Put(make([]big.Word, wordSliceSizes[idx]))
		}
	}
}

// poolsWarmed tracks whether pools have been pre-warmed.
var poolsWarmed atomic.Bool

// EnsurePoolsWarmed pre-warms the pools exactly once per process.
// Safe to call concurrently; only the first call does any work.
func EnsurePoolsWarmed(maxBits uint64, width uint) {
	if poolsWarmed.CompareAndSwap(false, true) {
		PreWarmPools(maxBits, width)
	}
}

// PoolsWarmed reports whether EnsurePoolsWarmed has run.
func PoolsWarmed() bool { return poolsWarmed.Load() }
