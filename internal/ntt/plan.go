// Package ntt implements negacyclic number-theoretic transforms of
// power-of-two size over the primes of package modular.
//
// A Plan twists the input by powers of a primitive 2N-th root ψ, so the
// product computed by PolyMul is the convolution modulo X^N + 1. Callers
// that zero-pad both operands to N coefficients with N at least the sum of
// their lengths get the plain (acyclic) convolution.
//
// Forward uses Cooley-Tukey butterflies and leaves the spectrum in
// bit-reversed order; Inverse uses Gentleman-Sande butterflies and reads
// that order back, so no explicit permutation pass is needed.
package ntt

import (
	"fmt"
	"math/bits"

	apperrors "github.com/agbru/bigntt/internal/errors"
	"github.com/agbru/bigntt/internal/modular"
)

// Plan holds the precomputed root tables for one (size, modulus) pair.
// A Plan is immutable after construction and safe for concurrent use.
type Plan struct {
	size    int
	logSize uint
	field   *modular.Field
	root    uint64   // ψ, a primitive 2N-th root of unity
	fwd     []uint64 // fwd[k] = Prepare(ψ^brv(k))
	inv     []uint64 // inv[k] = Prepare(ψ^-brv(k))
	nInv    uint64   // Prepare(N^-1)
}

// NewPlan builds a plan for transforms of the given size over the given
// modulus. size must be a power of two no larger than 2^MaxLogSize of the
// field.
func NewPlan(size int, kind modular.Kind) (*Plan, error) {
	f, err := modular.For(kind)
	if err != nil {
		return nil, err
	}
	if size <= 0 || size&(size-1) != 0 {
		return nil, apperrors.NewValueError("transform size %d is not a power of two", size)
	}
	logSize := uint(bits.TrailingZeros(uint(size)))
	if logSize > f.MaxLogSize() {
		return nil, apperrors.NewValueError("transform size 2^%d exceeds the %s limit 2^%d", logSize, kind, f.MaxLogSize())
	}

	psi, err := f.RootOfUnity(2 * uint64(size))
	if err != nil {
		return nil, err
	}
	psiInv, err := f.Inv(psi)
	if err != nil {
		return nil, err
	}
	nInv, err := f.Inv(uint64(size))
	if err != nil {
		return nil, err
	}

	p := &Plan{
		size:    size,
		logSize: logSize,
		field:   f,
		root:    psi,
		fwd:     make([]uint64, size),
		inv:     make([]uint64, size),
		nInv:    f.Prepare(nInv),
	}
	// Powers in natural order, then scattered to bit-reversed slots.
	pw, pwInv := uint64(1), uint64(1)
	for i := 0; i < size; i++ {
		k := reverse(i, logSize)
		p.fwd[k] = f.Prepare(pw)
		p.inv[k] = f.Prepare(pwInv)
		pw = f.Mul(pw, psi)
		pwInv = f.Mul(pwInv, psiInv)
	}
	return p, nil
}

// reverse returns the logSize low bits of i in reverse order.
func reverse(i int, logSize uint) int {
	if logSize == 0 {
		return 0
	}
	return int(bits.Reverse64(uint64(i)) >> (64 - logSize))
}

// Size returns the transform length N.
func (p *Plan) Size() int { return p.size }

// LogSize returns log2(N).
func (p *Plan) LogSize() uint { return p.logSize }

// Kind returns the modulus choice of the plan.
func (p *Plan) Kind() modular.Kind { return p.field.Kind() }

// Modulus returns the prime the plan computes modulo.
func (p *Plan) Modulus() uint64 { return p.field.Modulus() }

// Field returns the arithmetic the plan uses.
func (p *Plan) Field() *modular.Field { return p.field }

// Root returns ψ, the primitive 2N-th root of unity of the plan.
func (p *Plan) Root() uint64 { return p.root }

func (p *Plan) String() string {
	return fmt.Sprintf("NttPlan(size=%d, modulus=%s, root=%#x)", p.size, p.field, p.root)
}

// check validates that seq has length N and holds reduced residues.
func (p *Plan) check(name string, seq []uint64) error {
	if len(seq) != p.size {
		return apperrors.NewValueError("%s: sequence length %d does not match transform size %d", name, len(seq), p.size)
	}
	m := p.field.Modulus()
	for i, v := range seq {
		if v >= m {
			return apperrors.NewValueError("%s: coefficient %d (%#x) is not below the modulus %#x", name, i, v, m)
		}
	}
	return nil
}

// Forward returns the transform of seq, in bit-reversed order. seq must
// have length N with every value below the modulus; it is not modified.
func (p *Plan) Forward(seq []uint64) ([]uint64, error) {
	if err := p.check("forward", seq); err != nil {
		return nil, err
	}
	out := append([]uint64(nil), seq...)
	p.ForwardInPlace(out)
	return out, nil
}

// Inverse returns the inverse transform of a bit-reversed spectrum without
// the 1/N normalization: Inverse(Forward(c))[i] == N·c[i] mod p.
func (p *Plan) Inverse(seq []uint64) ([]uint64, error) {
	if err := p.check("inverse", seq); err != nil {
		return nil, err
	}
	out := append([]uint64(nil), seq...)
	p.InverseInPlace(out)
	return out, nil
}

// PointwiseMul returns the element-wise product of two spectra, without
// any scaling.
func (p *Plan) PointwiseMul(a, b []uint64) ([]uint64, error) {
	if err := p.check("pointwise", a); err != nil {
		return nil, err
	}
	if err := p.check("pointwise", b); err != nil {
		return nil, err
	}
	out := make([]uint64, p.size)
	f := p.field
	for i := range out {
		out[i] = f.Mul(a[i], b[i])
	}
	return out, nil
}

// PolyMul returns the negacyclic convolution of a and b with coefficients
// in [0, p). The 1/N factor is folded into the pointwise products, so
// unlike Inverse the result needs no further scaling.
func (p *Plan) PolyMul(a, b []uint64) ([]uint64, error) {
	if err := p.check("polymul", a); err != nil {
		return nil, err
	}
	if err := p.check("polymul", b); err != nil {
		return nil, err
	}
	fa := append([]uint64(nil), a...)
	fb := append([]uint64(nil), b...)
	p.PolyMulInPlace(fa, fb)
	return fa, nil
}

// PolyMulInPlace is PolyMul without validation or allocation. On return a
// holds the product and b holds the spectrum of the original b.
func (p *Plan) PolyMulInPlace(a, b []uint64) {
	p.ForwardInPlace(a)
	p.ForwardInPlace(b)
	p.MulScaledInPlace(a, b)
	p.InverseInPlace(a)
}

// SquareInPlace replaces a with its negacyclic square using a single
// forward transform.
func (p *Plan) SquareInPlace(a []uint64) {
	p.ForwardInPlace(a)
	p.MulScaledInPlace(a, a)
	p.InverseInPlace(a)
}

// MulScaledInPlace sets a[i] = a[i]·b[i]/N for two spectra.
func (p *Plan) MulScaledInPlace(a, b []uint64) {
	f := p.field
	a, b = a[:p.size], b[:p.size]
	for i := range a {
		a[i] = f.MulPrepared(f.Mul(a[i], b[i]), p.nInv)
	}
}

// ForwardInPlace transforms a, which must have length N and reduced
// values, into its bit-reversed spectrum.
func (p *Plan) ForwardInPlace(a []uint64) {
	f := p.field
	n := p.size
	a = a[:n]
	k := 1
	for length := n / 2; length >= 1; length /= 2 {
		for start := 0; start < n; start += 2 * length {
			z := p.fwd[k]
			k++
			lo := a[start : start+length]
			hi := a[start+length : start+2*length]
			for j := range lo {
				t := f.MulPrepared(hi[j], z)
				hi[j] = f.Sub(lo[j], t)
				lo[j] = f.Add(lo[j], t)
			}
		}
	}
}

// InverseInPlace maps a bit-reversed spectrum back to N times the
// coefficients.
func (p *Plan) InverseInPlace(a []uint64) {
	f := p.field
	n := p.size
	a = a[:n]
	for length := 1; length < n; length *= 2 {
		k := n / (2 * length)
		for start := 0; start < n; start += 2 * length {
			z := p.inv[k]
			k++
			lo := a[start : start+length]
			hi := a[start+length : start+2*length]
			for j := range lo {
				t := lo[j]
				lo[j] = f.Add(t, hi[j])
				hi[j] = f.MulPrepared(f.Sub(t, hi[j]), z)
			}
		}
	}
}
