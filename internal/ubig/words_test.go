package ubig

import (
	"errors"
	"math/big"
	"slices"
	"testing"

	apperrors "github.com/agbru/bigntt/internal/errors"
	"github.com/agbru/bigntt/internal/nat"
)

func powerOfThree(t *testing.T) *UBig {
	t.Helper()
	n, err := FromBig(new(big.Int).Exp(big.NewInt(3), big.NewInt(300), nil))
	if err != nil {
		t.Fatalf("FromBig: %v", err)
	}
	return n
}

func wordList(n *UBig) []uint64 {
	raw := n.RawWords()
	out := make([]uint64, len(raw))
	for i, w := range raw {
		out[i] = uint64(w)
	}
	return out
}

// pick returns the elements of ref at the given positions.
func pick(ref []uint64, pos []int) []uint64 {
	out := make([]uint64, len(pos))
	for i, p := range pos {
		out[i] = ref[p]
	}
	return out
}

func TestWordsGet(t *testing.T) {
	t.Parallel()
	n := powerOfThree(t)
	words := n.Words()
	ref := wordList(n)
	if words.Len() != len(ref) {
		t.Fatalf("Len() = %d, want %d", words.Len(), len(ref))
	}

	for _, i := range []int{0, 1, -1} {
		got, err := words.At(i)
		j := i
		if j < 0 {
			j += len(ref)
		}
		if err != nil || got != ref[j] {
			t.Errorf("words[%d] = %#x, %v; want %#x", i, got, err, ref[j])
		}
	}

	for _, s := range sliceForms {
		if got, want := words.Slice(s), pick(ref, s.Positions(len(ref))); !slices.Equal(got, want) {
			t.Errorf("words[%s] = %v, want %v", s, got, want)
		}
	}
}

func TestWordsSet(t *testing.T) {
	t.Parallel()
	n := powerOfThree(t)

	t.Run("single index", func(t *testing.T) {
		t.Parallel()
		m := n.Clone()
		words := m.Words()
		ref := wordList(m)
		for i, v := range map[int]uint64{0: 0, 1: 1, -1: 2} {
			if err := words.SetAt(i, v); err != nil {
				t.Fatalf("words[%d] = %d: %v", i, v, err)
			}
			if i < 0 {
				i += len(ref)
			}
			ref[i] = v
		}
		if !words.Equal(ref) {
			t.Errorf("words = %v, want %v", words.Values(), ref)
		}
		if !slices.Equal(wordList(m), ref) {
			t.Error("owner storage does not reflect the view")
		}
	})

	for _, s := range sliceForms {
		t.Run(s.String(), func(t *testing.T) {
			t.Parallel()
			m := n.Clone()
			words := m.Words()
			ref := wordList(m)
			values := make([]uint64, len(ref))
			for i := range values {
				values[i] = uint64(i)
			}
			pos := s.Positions(len(ref))
			assign := pick(values, pos)

			if err := words.SetSlice(s, assign); err != nil {
				t.Fatalf("SetSlice: %v", err)
			}
			for i, p := range pos {
				ref[p] = assign[i]
			}
			if !words.Equal(ref) {
				t.Errorf("words = %v, want %v", words.Values(), ref)
			}
		})
	}
}

func TestWordsSetLengthMismatch(t *testing.T) {
	t.Parallel()
	n := powerOfThree(t)
	before := wordList(n)
	err := n.Words().SetSlice(All().By(2), []uint64{1, 2})
	if !errors.Is(err, apperrors.ErrValue) {
		t.Fatalf("err = %v, want ErrValue", err)
	}
	if !slices.Equal(wordList(n), before) {
		t.Error("failed slice assignment mutated the integer")
	}
}

func TestWordsDelete(t *testing.T) {
	t.Parallel()
	n := powerOfThree(t)

	t.Run("single index", func(t *testing.T) {
		t.Parallel()
		m := n.Clone()
		words := m.Words()
		ref := wordList(m)
		for _, i := range []int{0, 1, -1} {
			if err := words.DeleteAt(i); err != nil {
				t.Fatalf("del words[%d]: %v", i, err)
			}
			if i < 0 {
				i += len(ref)
			}
			ref = slices.Delete(ref, i, i+1)
		}
		if !words.Equal(ref) {
			t.Errorf("words = %v, want %v", words.Values(), ref)
		}
	})

	for _, s := range sliceForms {
		t.Run(s.String(), func(t *testing.T) {
			t.Parallel()
			m := n.Clone()
			words := m.Words()
			ref := wordList(m)
			drop := make(map[int]bool)
			for _, p := range s.Positions(len(ref)) {
				drop[p] = true
			}
			var want []uint64
			for i, w := range ref {
				if !drop[i] {
					want = append(want, w)
				}
			}
			words.DeleteSlice(s)
			if !slices.Equal(words.Values(), want) {
				t.Errorf("words = %v, want %v", words.Values(), want)
			}
		})
	}
}

func TestWordsIndexErrors(t *testing.T) {
	t.Parallel()
	n := powerOfThree(t)
	words := n.Words()
	l := words.Len()
	if _, err := words.At(l); !errors.Is(err, apperrors.ErrIndex) {
		t.Errorf("words[len] err = %v, want ErrIndex", err)
	}
	if err := words.SetAt(-l-1, 1); !errors.Is(err, apperrors.ErrIndex) {
		t.Errorf("words[-len-1] = 1 err = %v, want ErrIndex", err)
	}
	if err := words.DeleteAt(l); !errors.Is(err, apperrors.ErrIndex) {
		t.Errorf("del words[len] err = %v, want ErrIndex", err)
	}
	if words.Len() != l {
		t.Error("failed edits changed the length")
	}
}

func TestWordsKeepTrailingZeros(t *testing.T) {
	t.Parallel()
	n := FromWords([]big.Word{5, 7})
	words := n.Words()
	if err := words.SetAt(-1, 0); err != nil {
		t.Fatalf("SetAt: %v", err)
	}
	if words.Len() != 2 || n.BitLen() != 3 {
		t.Errorf("Len() = %d, BitLen() = %d; want 2, 3", words.Len(), n.BitLen())
	}
	if err := words.Append(9, 0); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if !words.Equal([]uint64{5, 0, 9, 0}) {
		t.Errorf("words = %v", words.Values())
	}
	if words.String() != "<Words with 4 items>" {
		t.Errorf("String() = %q", words.String())
	}
}

func TestWordsOfCustomWidth(t *testing.T) {
	t.Parallel()
	n := New(0x123456789abcdef)
	view, err := n.WordsOf(10)
	if err != nil {
		t.Fatalf("WordsOf: %v", err)
	}
	want := []uint64{0x1ef, 0x2f3, 0x09a, 0x19e, 0x345, 0x048}
	if !view.Equal(want) {
		t.Fatalf("units = %#x, want %#x", view.Values(), want)
	}
	if got := view.Slice(All().By(-1)); !slices.Equal(got, []uint64{0x048, 0x345, 0x19e, 0x09a, 0x2f3, 0x1ef}) {
		t.Errorf("reversed units = %#x", got)
	}

	if err := view.SetAt(1, 0x3ff); err != nil {
		t.Fatalf("SetAt: %v", err)
	}
	if err := view.SetAt(0, 1<<10); !errors.Is(err, apperrors.ErrValue) {
		t.Errorf("oversized unit err = %v, want ErrValue", err)
	}
	if err := view.DeleteAt(0); err != nil {
		t.Fatalf("DeleteAt: %v", err)
	}
	if !view.Equal([]uint64{0x3ff, 0x09a, 0x19e, 0x345, 0x048}) {
		t.Errorf("after delete units = %#x", view.Values())
	}
	chunks, err := n.ToChunks(10)
	if err != nil || !slices.Equal(chunks, view.Values()) {
		t.Errorf("ToChunks(10) = %#x, %v; want the view units", chunks, err)
	}

	view.DeleteSlice(All().By(2))
	if !view.Equal([]uint64{0x09a, 0x345}) {
		t.Errorf("after slice delete units = %#x", view.Values())
	}

	if _, err := n.WordsOf(0); !errors.Is(err, apperrors.ErrValue) {
		t.Errorf("WordsOf(0) err = %v, want ErrValue", err)
	}
	if native, _ := n.WordsOf(nat.W); native.Len() != n.Words().Len() {
		t.Error("WordsOf(native width) differs from Words()")
	}
}
