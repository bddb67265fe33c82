package vrf

import (
	"math/big"
)

// scalarField implements arithmetic modulo the group order n. Like field,
// every method writes its reduced result into r and returns it.
type scalarField struct {
	n *big.Int
}

func newScalarField(n *big.Int) *scalarField {
	return &scalarField{n: n}
}

// reduce sets r = a mod n. Negative inputs wrap around.
func (s *scalarField) reduce(r, a *big.Int) *big.Int {
	return r.Mod(a, s.n)
}

// isValid reports whether a is in [0, n)
func (s *scalarField) isValid(a *big.Int) bool {
	return a != nil && a.Sign() >= 0 && a.Cmp(s.n) < 0
}

// setB32 sets r from a big-endian byte string of up to 32 bytes and reports
// whether the value overflowed the group order. On overflow r is left
// unreduced so the caller can decide whether to reject it.
func (s *scalarField) setB32(r *big.Int, b []byte) (overflow bool) {
	r.SetBytes(b)
	return r.Cmp(s.n) >= 0
}

func (s *scalarField) add(r, a, b *big.Int) *big.Int {
	r.Add(a, b)
	return r.Mod(r, s.n)
}

func (s *scalarField) mul(r, a, b *big.Int) *big.Int {
	r.Mul(a, b)
	return r.Mod(r, s.n)
}

func (s *scalarField) negate(r, a *big.Int) *big.Int {
	r.Neg(a)
	return r.Mod(r, s.n)
}

func (s *scalarField) isZero(a *big.Int) bool {
	return a.Sign() == 0
}

// bitLen is the number of bits needed for any reduced scalar
func (s *scalarField) bitLen() int {
	return s.n.BitLen()
}

// getBits extracts count bits of a starting at bit offset (LSB = 0).
// count must be at most 32.
func (s *scalarField) getBits(a *big.Int, offset, count uint) uint32 {
	var v uint32
	for i := count; i > 0; i-- {
		v = v<<1 | uint32(a.Bit(int(offset+i-1)))
	}
	return v
}
