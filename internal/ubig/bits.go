package ubig

import (
	"github.com/agbru/bigntt/internal/nat"
)

// The bit view addresses z as a sequence of BitLen() booleans, least
// significant first. Every mutation applies to z itself.

const bitsView = "bits"

// BitAt returns bit i of z. Negative indices count from the top bit.
func (z *UBig) BitAt(i int) (bool, error) {
	j, err := normIndex(bitsView, i, z.BitLen())
	if err != nil {
		return false, err
	}
	return z.words.Bit(j) == 1, nil
}

// SetBitAt sets bit i of z to v. Non-negative indices at or beyond
// BitLen() grow z; negative indices must address an existing bit.
func (z *UBig) SetBitAt(i int, v bool) error {
	if i < 0 {
		j, err := normIndex(bitsView, i, z.BitLen())
		if err != nil {
			return err
		}
		i = j
	}
	z.words = z.words.SetBit(i, b2u(v))
	return nil
}

// DeleteBitAt removes bit i and shifts every higher bit down by one.
// The cost is linear in BitLen().
func (z *UBig) DeleteBitAt(i int) error {
	j, err := normIndex(bitsView, i, z.BitLen())
	if err != nil {
		return err
	}
	z.words = z.words.DeleteBits(j, 1)
	return nil
}

// BitSlice returns the bits s selects, in traversal order, as a new
// integer whose least significant bit is the first selected bit.
func (z *UBig) BitSlice(s Slice) *UBig {
	start, _, step, count := s.Indices(z.BitLen())
	if count == 0 {
		return new(UBig)
	}
	w := nat.NewWriter(count)
	if step == 1 {
		w.Copy(z.words, start, start+count)
		return &UBig{words: w.Nat()}
	}
	for i, p := 0, start; i < count; i, p = i+1, p+step {
		w.Write(uint64(z.words.Bit(p)), 1)
	}
	return &UBig{words: w.Nat()}
}

// SetBitSlice sets every bit s selects to v.
func (z *UBig) SetBitSlice(s Slice, v bool) {
	start, _, step, count := s.Indices(z.BitLen())
	if count == 0 {
		return
	}
	if step == 1 || step == -1 {
		lo := start
		if step < 0 {
			lo = start - count + 1
		}
		fill := uint64(0)
		if v {
			fill = ^uint64(0)
		}
		for p := lo; p < lo+count; p += 64 {
			z.words = z.words.DepositBits(p, min(64, lo+count-p), fill)
		}
		return
	}
	b := b2u(v)
	for i, p := 0, start; i < count; i, p = i+1, p+step {
		z.words = z.words.SetBit(p, b)
	}
}

// DeleteBitSlice removes every bit s selects and closes the gaps, keeping
// the relative order of the remaining bits. The cost is linear in BitLen().
func (z *UBig) DeleteBitSlice(s Slice) {
	length := z.BitLen()
	start, _, step, count := s.Indices(length)
	switch {
	case count == 0:
		return
	case step == 1:
		z.words = z.words.DeleteBits(start, count)
	case step == -1:
		z.words = z.words.DeleteBits(start-count+1, count)
	default:
		z.words = nat.Compact(z.words, 1, length, s.ascending(length))
	}
}

func b2u(v bool) uint {
	if v {
		return 1
	}
	return 0
}
