package mul

import (
	"fmt"
	"math/bits"

	"github.com/agbru/bigntt/internal/chunk"
	apperrors "github.com/agbru/bigntt/internal/errors"
	"github.com/agbru/bigntt/internal/modular"
)

// Default tuning values.
const (
	DefaultChunkWidth         = 29
	DefaultMinChunkWidth      = 8
	DefaultPrimeThresholdBits = 10_000
	DefaultParallelThreshold  = 4096

	// MaxChunkWidth keeps (2^w-1)^2 below 2^62 so a single product always
	// fits under either modulus.
	MaxChunkWidth = 31
)

// Config holds the tuning parameters of the multiplier.
type Config struct {
	// ChunkWidth is the widest chunk tried, in bits.
	ChunkWidth uint
	// MinChunkWidth is the narrowest chunk tried before giving up on a
	// modulus.
	MinChunkWidth uint
	// PrimeThresholdBits is the operand size, in bits, from which the
	// Solinas modulus is preferred over the native one.
	PrimeThresholdBits int
	// ParallelThreshold is the transform size from which both forward
	// transforms run concurrently. Zero or negative disables it.
	ParallelThreshold int
}

// DefaultConfig returns the default tuning parameters.
func DefaultConfig() Config {
	return Config{
		ChunkWidth:         DefaultChunkWidth,
		MinChunkWidth:      DefaultMinChunkWidth,
		PrimeThresholdBits: DefaultPrimeThresholdBits,
		ParallelThreshold:  DefaultParallelThreshold,
	}
}

// Validate checks 1 <= MinChunkWidth <= ChunkWidth <= MaxChunkWidth and a
// non-negative prime threshold.
func (c Config) Validate() error {
	if c.MinChunkWidth < 1 || c.MinChunkWidth > c.ChunkWidth || c.ChunkWidth > MaxChunkWidth {
		return apperrors.NewConfigError("chunk widths must satisfy 1 <= min (%d) <= max (%d) <= %d",
			c.MinChunkWidth, c.ChunkWidth, MaxChunkWidth)
	}
	if c.PrimeThresholdBits < 0 {
		return apperrors.NewConfigError("prime threshold must be non-negative, got %d", c.PrimeThresholdBits)
	}
	return nil
}

// Params describes how one product is computed.
type Params struct {
	Kind   modular.Kind
	Width  uint
	Size   int
	TermsA int
	TermsB int
}

// LogSize returns log2 of the transform size.
func (p Params) LogSize() int { return bits.TrailingZeros(uint(p.Size)) }

func (p Params) String() string {
	return fmt.Sprintf("modulus=%s width=%d size=%d chunks=%d+%d", p.Kind, p.Width, p.Size, p.TermsA, p.TermsB)
}

// ChooseParams picks the modulus, chunk width and transform size for a
// product of operands of the given bit lengths.
//
// The preferred modulus is native below PrimeThresholdBits and Solinas
// above. For each modulus in turn the widest chunk w in
// [MinChunkWidth, ChunkWidth] is taken for which every convolution
// coefficient, a sum of at most min(na, nb) products of two w-bit chunks,
// stays below the modulus and the transform fits the field. When neither
// modulus admits a width the result is a RangeOverflowError.
func (c Config) ChooseParams(bitsA, bitsB int) (Params, error) {
	if err := c.Validate(); err != nil {
		return Params{}, err
	}
	if bitsA <= 0 || bitsB <= 0 {
		return Params{}, apperrors.NewValueError("operand bit lengths must be positive, got %d and %d", bitsA, bitsB)
	}

	order := [2]modular.Kind{modular.Native, modular.Solinas}
	if max(bitsA, bitsB) >= c.PrimeThresholdBits {
		order[0], order[1] = order[1], order[0]
	}

	var overflow apperrors.RangeOverflowError
	for _, kind := range order {
		f := modular.MustFor(kind)
		for w := c.ChunkWidth; w >= c.MinChunkWidth; w-- {
			na, nb := chunk.Count(bitsA, w), chunk.Count(bitsB, w)
			terms := min(na, nb)
			size := nextPowerOfTwo(na + nb)
			overflow = apperrors.RangeOverflowError{Width: w, Terms: terms, Modulus: f.Modulus()}
			if !coefficientsFit(terms, w, f.Modulus()) || bits.Len(uint(size))-1 > int(f.MaxLogSize()) {
				continue
			}
			return Params{Kind: kind, Width: w, Size: size, TermsA: na, TermsB: nb}, nil
		}
	}
	return Params{}, overflow
}

// coefficientsFit reports whether terms·(2^w-1)^2 < p.
func coefficientsFit(terms int, w uint, p uint64) bool {
	top := uint64(1)<<w - 1
	hi, lo := bits.Mul64(uint64(terms), top*top)
	return hi == 0 && lo < p
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
