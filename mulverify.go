package vrf

import (
	"math/big"
)

// MulVerifier checks claimed scalar multiplication results. FastVerify uses
// it instead of computing the products itself, so an implementation that
// can check a product more cheaply than computing it makes verification
// cheaper. Implementations must be safe for concurrent use.
type MulVerifier interface {
	// MulVerify reports whether q == k*p.
	MulVerify(k *big.Int, p, q AffinePoint) bool
	// MulSubMulVerify reports whether q == k1*G - k2*p.
	MulSubMulVerify(k1, k2 *big.Int, p, q AffinePoint) bool
}

// DirectMulVerifier checks products by computing them. It is always
// correct and never cheaper than the multiplication it checks.
type DirectMulVerifier struct {
	// Curve defaults to secp256k1 when nil
	Curve *Curve
}

func (d DirectMulVerifier) curve() *Curve {
	if d.Curve == nil {
		return S256()
	}
	return d.Curve
}

// MulVerify implements MulVerifier.
func (d DirectMulVerifier) MulVerify(k *big.Int, p, q AffinePoint) bool {
	c := d.curve()
	if k == nil || !c.isPointOrInfinity(p) || !c.isPointOrInfinity(q) {
		return false
	}
	var a, r, claimed JacobianPoint
	a.setGE(p)
	c.ecmult(&r, &a, k)
	claimed.setGE(q)
	return c.Equal(&r, &claimed)
}

// MulSubMulVerify implements MulVerifier.
func (d DirectMulVerifier) MulSubMulVerify(k1, k2 *big.Int, p, q AffinePoint) bool {
	c := d.curve()
	if k1 == nil || k2 == nil || !c.isPointOrInfinity(p) || !c.isPointOrInfinity(q) {
		return false
	}
	return c.MulSubMul(k1, k2, p).Equal(q)
}

// isPointOrInfinity accepts the identity and any point on the curve
func (c *Curve) isPointOrInfinity(p AffinePoint) bool {
	return p.IsInfinity() || c.IsOnCurve(p)
}
