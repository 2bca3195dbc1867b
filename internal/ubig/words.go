package ubig

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/agbru/bigntt/internal/chunk"
	apperrors "github.com/agbru/bigntt/internal/errors"
	"github.com/agbru/bigntt/internal/nat"
)

const wordsView = "words"

// WordView addresses a UBig as a sequence of fixed-width units. At the
// native width the units are the storage words themselves, trailing zero
// words included, so the length is the storage word count. At any other
// width the length is ceil(BitLen/width).
//
// The view holds no data of its own: reads observe and writes modify the
// UBig it was obtained from.
type WordView struct {
	owner *UBig
	width uint
}

// Words returns the native-width word view of z.
func (z *UBig) Words() *WordView {
	return &WordView{owner: z, width: nat.W}
}

// WordsOf returns a view of z in units of width bits, 1 <= width <= 64.
func (z *UBig) WordsOf(width uint) (*WordView, error) {
	if err := chunk.CheckWidth(width); err != nil {
		return nil, err
	}
	return &WordView{owner: z, width: width}, nil
}

// Width returns the unit width in bits.
func (v *WordView) Width() uint { return v.width }

func (v *WordView) native() bool { return v.width == nat.W }

// Len returns the number of units.
func (v *WordView) Len() int {
	if v.native() {
		return len(v.owner.words)
	}
	return chunk.Count(v.owner.BitLen(), v.width)
}

func (v *WordView) String() string {
	return fmt.Sprintf("<Words with %d items>", v.Len())
}

func (v *WordView) get(i int) uint64 {
	if v.native() {
		return uint64(v.owner.words[i])
	}
	return v.owner.words.ExtractBits(i*int(v.width), int(v.width))
}

func (v *WordView) set(i int, val uint64) {
	if v.native() {
		v.owner.words[i] = big.Word(val)
		return
	}
	v.owner.words = v.owner.words.DepositBits(i*int(v.width), int(v.width), val)
}

func (v *WordView) checkValue(val uint64) error {
	if v.width < 64 && val>>v.width != 0 {
		return apperrors.NewValueError("value %#x does not fit in a %d-bit word", val, v.width)
	}
	return nil
}

// At returns unit i. Negative indices count from the end.
func (v *WordView) At(i int) (uint64, error) {
	j, err := normIndex(wordsView, i, v.Len())
	if err != nil {
		return 0, err
	}
	return v.get(j), nil
}

// SetAt replaces unit i with val.
func (v *WordView) SetAt(i int, val uint64) error {
	j, err := normIndex(wordsView, i, v.Len())
	if err != nil {
		return err
	}
	if err := v.checkValue(val); err != nil {
		return err
	}
	v.set(j, val)
	return nil
}

// DeleteAt removes unit i and shifts the higher units down.
func (v *WordView) DeleteAt(i int) error {
	n := v.Len()
	j, err := normIndex(wordsView, i, n)
	if err != nil {
		return err
	}
	v.remove(n, []int{j})
	return nil
}

// Slice returns the selected units in traversal order.
func (v *WordView) Slice(s Slice) []uint64 {
	start, _, step, count := s.Indices(v.Len())
	out := make([]uint64, count)
	for i, p := 0, start; i < count; i, p = i+1, p+step {
		out[i] = v.get(p)
	}
	return out
}

// Values returns every unit, least significant first.
func (v *WordView) Values() []uint64 {
	return v.Slice(All())
}

// SetSlice assigns vals element by element to the units s selects, in
// traversal order. The lengths must match; nothing is written otherwise.
func (v *WordView) SetSlice(s Slice, vals []uint64) error {
	start, _, step, count := s.Indices(v.Len())
	if count != len(vals) {
		return apperrors.NewValueError(
			"attempt to assign sequence of size %d to extended slice of size %d", len(vals), count)
	}
	for _, val := range vals {
		if err := v.checkValue(val); err != nil {
			return err
		}
	}
	for i, p := 0, start; i < count; i, p = i+1, p+step {
		v.set(p, vals[i])
	}
	return nil
}

// DeleteSlice removes every unit s selects and compacts the rest.
func (v *WordView) DeleteSlice(s Slice) {
	n := v.Len()
	if drop := s.ascending(n); len(drop) > 0 {
		v.remove(n, drop)
	}
}

// remove drops the units at the ascending positions in drop.
func (v *WordView) remove(n int, drop []int) {
	if !v.native() {
		v.owner.words = nat.Compact(v.owner.words, int(v.width), n, drop)
		return
	}
	words := v.owner.words
	out, next := 0, 0
	for i := range words {
		if next < len(drop) && drop[next] == i {
			next++
			continue
		}
		words[out] = words[i]
		out++
	}
	clear(words[out:])
	v.owner.words = words[:out]
}

// Append adds units above the current top unit. At widths other than the
// native one, zero units appended at the top do not change the value and
// therefore do not change Len.
func (v *WordView) Append(vals ...uint64) error {
	for _, val := range vals {
		if err := v.checkValue(val); err != nil {
			return err
		}
	}
	if v.native() {
		for _, val := range vals {
			v.owner.words = append(v.owner.words, big.Word(val))
		}
		return nil
	}
	pos := v.Len() * int(v.width)
	for _, val := range vals {
		v.owner.words = v.owner.words.DepositBits(pos, int(v.width), val)
		pos += int(v.width)
	}
	return nil
}

// Equal reports whether the view holds exactly the given units.
func (v *WordView) Equal(vals []uint64) bool {
	return slices.Equal(v.Values(), vals)
}
