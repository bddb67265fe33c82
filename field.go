package vrf

import (
	"fmt"
	"math/big"
)

// field implements arithmetic modulo the curve prime p. Every method writes
// its result into r, reduces it into [0, p) and returns r, so calls can be
// chained the way the group formulas are written. r may alias any input.
type field struct {
	p *big.Int

	// sqrtExp is (p+1)/4, which yields a square root when p = 3 mod 4
	sqrtExp *big.Int
	// invExp is p-2, the inversion exponent from Fermat's little theorem
	invExp *big.Int
}

func newField(p *big.Int) *field {
	sqrtExp := new(big.Int).Add(p, big.NewInt(1))
	sqrtExp.Rsh(sqrtExp, 2)
	return &field{
		p:       p,
		sqrtExp: sqrtExp,
		invExp:  new(big.Int).Sub(p, big.NewInt(2)),
	}
}

// byteLen is the size of a serialized field element.
func (f *field) byteLen() int {
	return (f.p.BitLen() + 7) / 8
}

// normalize reduces a into [0, p)
func (f *field) normalize(r, a *big.Int) *big.Int {
	return r.Mod(a, f.p)
}

// isValid reports whether a is already a canonical field element
func (f *field) isValid(a *big.Int) bool {
	return a != nil && a.Sign() >= 0 && a.Cmp(f.p) < 0
}

func (f *field) add(r, a, b *big.Int) *big.Int {
	r.Add(a, b)
	return r.Mod(r, f.p)
}

func (f *field) sub(r, a, b *big.Int) *big.Int {
	r.Sub(a, b)
	return r.Mod(r, f.p)
}

func (f *field) mul(r, a, b *big.Int) *big.Int {
	r.Mul(a, b)
	return r.Mod(r, f.p)
}

func (f *field) sqr(r, a *big.Int) *big.Int {
	r.Mul(a, a)
	return r.Mod(r, f.p)
}

// mulInt multiplies a field element by a small integer
func (f *field) mulInt(r, a *big.Int, k int64) *big.Int {
	r.Mul(a, big.NewInt(k))
	return r.Mod(r, f.p)
}

// negate sets r = -a mod p
func (f *field) negate(r, a *big.Int) *big.Int {
	r.Neg(a)
	return r.Mod(r, f.p)
}

// half sets r = a/2 mod p. a must be normalized.
func (f *field) half(r, a *big.Int) *big.Int {
	if a.Bit(0) == 1 {
		r.Add(a, f.p)
	} else {
		r.Set(a)
	}
	return r.Rsh(r, 1)
}

// inv sets r = a^(p-2) = a^-1 mod p. The inverse of zero is zero.
func (f *field) inv(r, a *big.Int) *big.Int {
	return r.Exp(a, f.invExp, f.p)
}

// sqrt sets r = a^((p+1)/4) mod p and reports whether r is a square root
// of a. When a is not a quadratic residue r holds a root of -a instead.
func (f *field) sqrt(r, a *big.Int) bool {
	var check big.Int
	x := new(big.Int).Mod(a, f.p)
	r.Exp(x, f.sqrtExp, f.p)
	f.sqr(&check, r)
	return check.Cmp(x) == 0
}

func (f *field) isZero(a *big.Int) bool {
	return a.Sign() == 0
}

func (f *field) isOdd(a *big.Int) bool {
	return a.Bit(0) == 1
}

func (f *field) equal(a, b *big.Int) bool {
	return a.Cmp(b) == 0
}

// setB32 sets r from a big-endian byte string. Values >= p are rejected
// rather than reduced.
func (f *field) setB32(r *big.Int, b []byte) error {
	if len(b) != f.byteLen() {
		return fmt.Errorf("field element must be %d bytes, got %d", f.byteLen(), len(b))
	}
	r.SetBytes(b)
	if r.Cmp(f.p) >= 0 {
		return ErrInvalidFieldElement
	}
	return nil
}

// getB32 writes the normalized element into b as a fixed-width big-endian
// string
func (f *field) getB32(b []byte, a *big.Int) {
	if len(b) != f.byteLen() {
		panic("field element byte array has the wrong size")
	}
	var n big.Int
	f.normalize(&n, a)
	n.FillBytes(b)
}
