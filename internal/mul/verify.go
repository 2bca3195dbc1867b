package mul

import (
	"context"
	"fmt"

	apperrors "github.com/agbru/bigntt/internal/errors"
	"github.com/agbru/bigntt/internal/ubig"
)

// MismatchError reports two backends disagreeing on a product.
type MismatchError struct {
	Got, Want *ubig.UBig
}

func (e MismatchError) Error() string {
	return fmt.Sprintf("product mismatch: got %d bits, reference has %d bits", e.Got.BitLen(), e.Want.BitLen())
}

func (e MismatchError) Is(target error) bool { return target == apperrors.ErrMismatch }

// Verify computes a·b with m and with ref and returns m's product when
// both agree.
func Verify(ctx context.Context, m, ref Multiplier, a, b *ubig.UBig) (*ubig.UBig, error) {
	got, err := m.Multiply(ctx, a, b)
	if err != nil {
		return nil, err
	}
	want, err := ref.Multiply(ctx, a, b)
	if err != nil {
		return nil, fmt.Errorf("reference multiplication failed: %w", err)
	}
	if !got.Equal(want) {
		return nil, MismatchError{Got: got, Want: want}
	}
	return got, nil
}
