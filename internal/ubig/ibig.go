package ubig

import (
	"math/big"

	"github.com/agbru/bigntt/internal/nat"
)

// IBig is a signed integer: a sign flag plus a UBig magnitude. Zero is
// always non-negative, whatever the flag says.
type IBig struct {
	neg bool
	mag UBig
}

// NewIBig returns an IBig holding v.
func NewIBig(v int64) *IBig {
	if v < 0 {
		return &IBig{neg: true, mag: UBig{words: nat.FromUint64(uint64(-(v + 1)) + 1)}}
	}
	return &IBig{mag: UBig{words: nat.FromUint64(uint64(v))}}
}

// IBigFromBig returns an IBig holding v.
func IBigFromBig(v *big.Int) *IBig {
	x := &IBig{neg: v.Sign() < 0}
	x.mag.words = nat.FromBig(v)
	return x
}

// FromUBig returns an IBig with the given sign and a copy of mag.
func FromUBig(neg bool, mag *UBig) *IBig {
	return &IBig{neg: neg, mag: UBig{words: mag.words.Clone()}}
}

// Sign returns -1, 0 or +1.
func (x *IBig) Sign() int {
	switch {
	case x.mag.IsZero():
		return 0
	case x.neg:
		return -1
	default:
		return 1
	}
}

// Magnitude returns the magnitude of x. Bit and word views obtained from
// it mutate x; the sign is kept unless the magnitude becomes zero.
func (x *IBig) Magnitude() *UBig { return &x.mag }

// Neg returns -x as a new IBig.
func (x *IBig) Neg() *IBig {
	return &IBig{neg: x.Sign() > 0, mag: UBig{words: x.mag.words.Clone()}}
}

// Int returns x as a new *big.Int.
func (x *IBig) Int() *big.Int {
	v := x.mag.Int()
	if x.Sign() < 0 {
		v.Neg(v)
	}
	return v
}

// String returns the decimal representation of x.
func (x *IBig) String() string { return x.Int().String() }

// Cmp compares x and y and returns -1, 0 or +1.
func (x *IBig) Cmp(y *IBig) int {
	sx, sy := x.Sign(), y.Sign()
	switch {
	case sx != sy:
		if sx < sy {
			return -1
		}
		return 1
	case sx < 0:
		return y.mag.Cmp(&x.mag)
	default:
		return x.mag.Cmp(&y.mag)
	}
}
