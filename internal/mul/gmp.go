//go:build gmp

// The GMP backend needs cgo and libgmp (libgmp-dev on Debian, gmp on
// Homebrew). Build with -tags=gmp to register it.

package mul

import (
	"context"
	"math/big"

	"github.com/ncw/gmp"

	"github.com/agbru/bigntt/internal/ubig"
)

func init() {
	RegisterBackend("gmp", GMP{})
}

// GMP multiplies with libgmp.
type GMP struct{}

func (GMP) Multiply(ctx context.Context, a, b *ubig.UBig) (*ubig.UBig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	x := new(gmp.Int).SetBytes(a.Int().Bytes())
	y := new(gmp.Int).SetBytes(b.Int().Bytes())
	x.Mul(x, y)
	return ubig.FromBig(new(big.Int).SetBytes(x.Bytes()))
}

func (g GMP) Square(ctx context.Context, a *ubig.UBig) (*ubig.UBig, error) {
	return g.Multiply(ctx, a, a)
}
