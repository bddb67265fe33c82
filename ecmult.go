package vrf

import (
	"math/big"
)

const (
	// Window size for the generator table (4 bits = 16 entries per window)
	ecmultGenWindowSize = 4
	ecmultGenTableSize  = 1 << ecmultGenWindowSize // 16
)

// genTable holds precomputed multiples of the generator:
// prec[i][j] = j * 2^(4*i) * G, with prec[i][0] the point at infinity.
type genTable struct {
	prec [][ecmultGenTableSize]JacobianPoint
}

// buildGenTable computes the generator table for the curve order's width
func (c *Curve) buildGenTable() *genTable {
	windows := (c.s.bitLen() + ecmultGenWindowSize - 1) / ecmultGenWindowSize
	t := &genTable{prec: make([][ecmultGenTableSize]JacobianPoint, windows)}

	var base JacobianPoint
	base.setGE(c.g)
	for i := 0; i < windows; i++ {
		t.prec[i][0].setInfinity()
		t.prec[i][1].set(&base)
		for j := 2; j < ecmultGenTableSize; j++ {
			c.addVar(&t.prec[i][j], &t.prec[i][j-1], &base)
		}
		// Move to next window: base = 2^ecmultGenWindowSize * base
		for k := 0; k < ecmultGenWindowSize; k++ {
			c.double(&base, &base)
		}
	}
	return t
}

func (c *Curve) genContext() *genTable {
	c.genOnce.Do(func() {
		c.gen = c.buildGenTable()
	})
	return c.gen
}

// ecmultGen sets r = k*G using the windowed generator table. Every window
// performs one table scan and one addition whatever the scalar's bits are.
func (c *Curve) ecmultGen(r *JacobianPoint, k *big.Int) {
	var kr big.Int
	c.s.reduce(&kr, k)

	t := c.genContext()
	var acc, entry JacobianPoint
	acc.setInfinity()
	for i := range t.prec {
		bits := c.s.getBits(&kr, uint(i*ecmultGenWindowSize), ecmultGenWindowSize)
		entry.setInfinity()
		for j := 0; j < ecmultGenTableSize; j++ {
			var flag uint
			if uint32(j) == bits {
				flag = 1
			}
			entry.cmov(&t.prec[i][j], flag)
		}
		c.addVar(&acc, &acc, &entry)
	}
	r.set(&acc)
}

// ecmult sets r = k*a by most-significant-bit-first double-and-add. Each
// bit costs one doubling and one addition; the sum is kept only when the
// bit is set, so the sequence of group operations does not depend on k.
func (c *Curve) ecmult(r, a *JacobianPoint, k *big.Int) {
	var kr big.Int
	c.s.reduce(&kr, k)

	var acc, sum, p JacobianPoint
	p.set(a)
	acc.setInfinity()
	for i := c.s.bitLen() - 1; i >= 0; i-- {
		c.double(&acc, &acc)
		c.addVar(&sum, &acc, &p)
		acc.cmov(&sum, kr.Bit(i))
	}
	r.set(&acc)
}

// ScalarMult returns k*p. k is reduced modulo the group order first.
func (c *Curve) ScalarMult(k *big.Int, p AffinePoint) AffinePoint {
	var a, r JacobianPoint
	a.setGE(p)
	c.ecmult(&r, &a, k)
	return c.ToAffine(&r)
}

// ScalarBaseMult returns k*G.
func (c *Curve) ScalarBaseMult(k *big.Int) AffinePoint {
	var r JacobianPoint
	c.ecmultGen(&r, k)
	return c.ToAffine(&r)
}

// MulSubMul returns k1*G - k2*p. Both products are accumulated in Jacobian
// coordinates and only the difference is converted to affine.
func (c *Curve) MulSubMul(k1, k2 *big.Int, p AffinePoint) AffinePoint {
	var g, a, b, r JacobianPoint
	c.ecmultGen(&g, k1)
	a.setGE(c.Negate(p))
	c.ecmult(&b, &a, k2)
	c.addVar(&r, &g, &b)
	return c.ToAffine(&r)
}
