package nat

import (
	"math/big"
)

// mask64 returns a mask of the n low bits, for 0 <= n <= 64.
func mask64(n int) uint64 {
	return uint64(1)<<uint(n) - 1
}

// ExtractBits returns the n bits of x starting at bit pos, 0 <= n <= 64.
// Bits beyond the storage read as 0.
func (x Nat) ExtractBits(pos, n int) uint64 {
	var r uint64
	for got := 0; got < n; {
		p := pos + got
		i := p / W
		if i >= len(x) {
			break
		}
		off := p % W
		take := min(W-off, n-got)
		v := uint64(x[i]>>uint(off)) & mask64(take)
		r |= v << uint(got)
		got += take
	}
	return r
}

// DepositBits overwrites the n bits of x starting at bit pos with the low n
// bits of v, growing x as needed, and returns the possibly reallocated storage.
func (x Nat) DepositBits(pos, n int, v uint64) Nat {
	if n == 0 {
		return x
	}
	x = x.Grow((pos + n + W - 1) / W)
	for done := 0; done < n; {
		p := pos + done
		i := p / W
		off := p % W
		take := min(W-off, n-done)
		m := big.Word(mask64(take)) << uint(off)
		x[i] = x[i]&^m | (big.Word(v>>uint(done))<<uint(off))&m
		done += take
	}
	return x
}

// Writer appends bit fields to a magnitude, least significant first.
// The zero value is an empty writer.
type Writer struct {
	buf Nat
	pos int
}

// NewWriter returns a writer whose storage is preallocated for nbits bits.
func NewWriter(nbits int) *Writer {
	return &Writer{buf: make(Nat, 0, (nbits+W-1)/W)}
}

// Write appends the low n bits of v, 0 <= n <= 64.
func (w *Writer) Write(v uint64, n int) {
	w.buf = w.buf.DepositBits(w.pos, n, v)
	w.pos += n
}

// Copy appends bits [from, to) of x.
func (w *Writer) Copy(x Nat, from, to int) {
	for p := from; p < to; p += 64 {
		n := min(64, to-p)
		w.Write(x.ExtractBits(p, n), n)
	}
}

// Len returns the number of bits written so far.
func (w *Writer) Len() int { return w.pos }

// Nat returns the written bits as a normalized magnitude.
func (w *Writer) Nat() Nat { return w.buf.Norm() }

// scratchWriter returns a writer backed by a pooled buffer.
func scratchWriter(nbits int) *Writer {
	return &Writer{buf: AcquireWords((nbits + W - 1) / W)[:0]}
}

// replace overwrites x with the bits gathered in w, releases the scratch
// buffer and returns the normalized result in x's storage.
func (x Nat) replace(w *Writer) Nat {
	res := w.Nat()
	n := copy(x, res)
	clear(x[n:])
	ReleaseWords(w.buf)
	return x[:n]
}

// Compact removes the width-bit units of x listed in drop and closes the
// gaps, reusing x's storage. drop must be sorted ascending without
// duplicates and every entry must be below length, the number of units
// considered; units at or beyond length are discarded. The cost is linear
// in length*width.
func Compact(x Nat, width, length int, drop []int) Nat {
	w := scratchWriter((length - len(drop)) * width)
	prev := 0
	for _, d := range drop {
		w.Copy(x, prev*width, d*width)
		prev = d + 1
	}
	w.Copy(x, prev*width, length*width)
	return x.replace(w)
}

// DeleteBits removes bits [pos, pos+n) of x and shifts the bits above down
// by n, reusing x's storage.
func (x Nat) DeleteBits(pos, n int) Nat {
	total := x.BitLen()
	if n <= 0 || pos >= total {
		return x.Norm()
	}
	w := scratchWriter(total - n)
	w.Copy(x, 0, pos)
	w.Copy(x, pos+n, total)
	return x.replace(w)
}
