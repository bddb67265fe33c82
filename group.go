package vrf

import (
	"fmt"
	"math/big"
)

// AffinePoint is a curve point in affine coordinates (x, y), or the point at
// infinity. Points are values: operations never modify their inputs and the
// coordinates must not be modified by callers.
type AffinePoint struct {
	X, Y     *big.Int
	infinity bool
}

// JacobianPoint is a curve point in Jacobian coordinates (x, y, z) where the
// affine coordinates are (x/z^2, y/z^3). Any point with z = 0, including the
// zero value, is the point at infinity.
type JacobianPoint struct {
	x, y, z  big.Int
	infinity bool
}

// NewAffinePoint returns the point with the given coordinates. The
// coordinates are copied; the result is not checked against the curve.
func NewAffinePoint(x, y *big.Int) AffinePoint {
	return AffinePoint{X: new(big.Int).Set(x), Y: new(big.Int).Set(y)}
}

// Infinity returns the point at infinity.
func Infinity() AffinePoint {
	return AffinePoint{infinity: true}
}

// IsInfinity returns true if the point is the point at infinity
func (p AffinePoint) IsInfinity() bool {
	return p.infinity || p.X == nil || p.Y == nil
}

// Equal reports whether p and q are the same point. Coordinates are
// compared as integers, so both points should be normalized.
func (p AffinePoint) Equal(q AffinePoint) bool {
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() && q.IsInfinity()
	}
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

func (p AffinePoint) String() string {
	if p.IsInfinity() {
		return "(infinity)"
	}
	return fmt.Sprintf("(%064x, %064x)", p.X, p.Y)
}

// setInfinity sets the Jacobian group element to the point at infinity
func (r *JacobianPoint) setInfinity() {
	r.x.SetInt64(0)
	r.y.SetInt64(1)
	r.z.SetInt64(0)
	r.infinity = true
}

// set copies a into r. Plain struct assignment would share the big.Int
// backing arrays.
func (r *JacobianPoint) set(a *JacobianPoint) {
	r.x.Set(&a.x)
	r.y.Set(&a.y)
	r.z.Set(&a.z)
	r.infinity = a.infinity
}

// cmov sets r = a when flag is 1 and leaves r unchanged when flag is 0
func (r *JacobianPoint) cmov(a *JacobianPoint, flag uint) {
	if flag&1 == 1 {
		r.set(a)
	}
}

// IsInfinity returns true if the Jacobian group element is the point at infinity
func (r *JacobianPoint) IsInfinity() bool {
	return r.infinity || r.z.Sign() == 0
}

// setGE sets a Jacobian element from an affine element
func (r *JacobianPoint) setGE(a AffinePoint) {
	if a.IsInfinity() {
		r.setInfinity()
		return
	}
	r.x.Set(a.X)
	r.y.Set(a.Y)
	r.z.SetInt64(1)
	r.infinity = false
}

// ToJacobian lifts an affine point to Jacobian coordinates with z = 1.
func (c *Curve) ToJacobian(p AffinePoint) *JacobianPoint {
	var r JacobianPoint
	r.setGE(p)
	return &r
}

// ToAffine converts a Jacobian point back to affine coordinates using a
// single field inversion of z.
func (c *Curve) ToAffine(a *JacobianPoint) AffinePoint {
	if a.IsInfinity() || c.f.isZero(new(big.Int).Mod(&a.z, c.f.p)) {
		return Infinity()
	}
	var zi, z2, z3 big.Int
	x, y := new(big.Int), new(big.Int)

	// zi = 1/z
	c.f.inv(&zi, &a.z)
	// z2 = zi^2, z3 = zi^3
	c.f.sqr(&z2, &zi)
	c.f.mul(&z3, &zi, &z2)
	// x = x*z^-2, y = y*z^-3
	c.f.mul(x, &a.x, &z2)
	c.f.mul(y, &a.y, &z3)
	return AffinePoint{X: x, Y: y}
}

// IsOnCurve reports whether p is a finite point with canonical coordinates
// satisfying y^2 = x^3 + b.
func (c *Curve) IsOnCurve(p AffinePoint) bool {
	if p.IsInfinity() {
		return false
	}
	if !c.f.isValid(p.X) || !c.f.isValid(p.Y) {
		return false
	}
	var lhs, rhs big.Int
	c.f.sqr(&lhs, p.Y)
	c.y2(&rhs, p.X)
	return c.f.equal(&lhs, &rhs)
}

// y2 sets r = x^3 + b
func (c *Curve) y2(r, x *big.Int) *big.Int {
	var x2 big.Int
	c.f.sqr(&x2, x)
	c.f.mul(r, &x2, x)
	return c.f.add(r, r, c.params.B)
}

// DeriveY computes the y coordinate for x whose parity matches sign: the
// even root when the low bit of sign is 0 (0x02) and the odd root when it
// is 1 (0x03).
func (c *Curve) DeriveY(sign byte, x *big.Int) (*big.Int, error) {
	if !c.f.isValid(x) {
		return nil, ErrInvalidFieldElement
	}
	var rhs big.Int
	c.y2(&rhs, x)

	y := new(big.Int)
	if !c.f.sqrt(y, &rhs) {
		return nil, ErrInvalidPoint
	}
	if c.f.isOdd(y) != (sign&1 == 1) {
		c.f.negate(y, y)
	}
	// A zero root has no odd counterpart
	if c.f.isOdd(y) != (sign&1 == 1) {
		return nil, ErrInvalidPoint
	}
	return y, nil
}

// Negate returns -p, the mirror of p around the x axis.
func (c *Curve) Negate(p AffinePoint) AffinePoint {
	if p.IsInfinity() {
		return Infinity()
	}
	y := new(big.Int)
	c.f.negate(y, p.Y)
	return AffinePoint{X: new(big.Int).Set(p.X), Y: y}
}

// double sets r = 2*a (point doubling in Jacobian coordinates). The formula
// is the one used for a = 0 curves by libsecp256k1, with z3 = y1*z1.
func (c *Curve) double(r, a *JacobianPoint) {
	if a.IsInfinity() || c.f.isZero(&a.y) {
		r.setInfinity()
		return
	}
	f := c.f
	var l, s, t, x3, y3, z3 big.Int

	// Z3 = Y1*Z1
	f.mul(&z3, &a.z, &a.y)
	// S = Y1^2
	f.sqr(&s, &a.y)
	// L = 3/2*X1^2
	f.sqr(&l, &a.x)
	f.mulInt(&l, &l, 3)
	f.half(&l, &l)
	// T = -X1*S
	f.negate(&t, &s)
	f.mul(&t, &t, &a.x)
	// X3 = L^2 + 2*T
	f.sqr(&x3, &l)
	f.add(&x3, &x3, &t)
	f.add(&x3, &x3, &t)
	// S = S^2 = Y1^4
	f.sqr(&s, &s)
	// T = X3 + T
	f.add(&t, &t, &x3)
	// Y3 = -(L*(X3 + T) + S^2)
	f.mul(&y3, &t, &l)
	f.add(&y3, &y3, &s)
	f.negate(&y3, &y3)

	r.x.Set(&x3)
	r.y.Set(&y3)
	r.z.Set(&z3)
	r.infinity = false
}

// addVar sets r = a + b (point addition in Jacobian coordinates). Equal
// inputs are dispatched to double, since the general formula degenerates
// to 0/0 there, and opposite inputs yield infinity.
func (c *Curve) addVar(r, a, b *JacobianPoint) {
	// Handle infinity cases
	if a.IsInfinity() {
		r.set(b)
		return
	}
	if b.IsInfinity() {
		r.set(a)
		return
	}
	f := c.f
	var z22, z12, u1, u2, s1, s2, h, i, h2, h3, t, x3, y3, z3 big.Int

	// z22 = b.z^2, z12 = a.z^2
	f.sqr(&z22, &b.z)
	f.sqr(&z12, &a.z)
	// u1 = a.x*z22, u2 = b.x*z12
	f.mul(&u1, &a.x, &z22)
	f.mul(&u2, &b.x, &z12)
	// s1 = a.y*z22*b.z, s2 = b.y*z12*a.z
	f.mul(&s1, &a.y, &z22)
	f.mul(&s1, &s1, &b.z)
	f.mul(&s2, &b.y, &z12)
	f.mul(&s2, &s2, &a.z)
	// h = u2 - u1, i = s2 - s1
	f.sub(&h, &u2, &u1)
	f.sub(&i, &s2, &s1)

	if f.isZero(&h) {
		if f.isZero(&i) {
			// Points are equal - double
			c.double(r, a)
			return
		}
		// Points are negatives - result is infinity
		r.setInfinity()
		return
	}

	// z3 = a.z*b.z*h
	f.mul(&z3, &a.z, &b.z)
	f.mul(&z3, &z3, &h)
	// h2 = h^2, h3 = h^3, t = u1*h^2
	f.sqr(&h2, &h)
	f.mul(&h3, &h2, &h)
	f.mul(&t, &u1, &h2)
	// x3 = i^2 - h3 - 2*t
	f.sqr(&x3, &i)
	f.sub(&x3, &x3, &h3)
	f.sub(&x3, &x3, &t)
	f.sub(&x3, &x3, &t)
	// y3 = i*(t - x3) - s1*h3
	f.sub(&y3, &t, &x3)
	f.mul(&y3, &y3, &i)
	f.mul(&h3, &h3, &s1)
	f.sub(&y3, &y3, &h3)

	r.x.Set(&x3)
	r.y.Set(&y3)
	r.z.Set(&z3)
	r.infinity = false
}

// Equal reports whether two Jacobian points represent the same affine point,
// by cross-multiplying with the other point's z instead of inverting.
func (c *Curve) Equal(a, b *JacobianPoint) bool {
	if a.IsInfinity() || b.IsInfinity() {
		return a.IsInfinity() && b.IsInfinity()
	}
	f := c.f
	var z12, z22, l, r big.Int

	f.sqr(&z12, &a.z)
	f.sqr(&z22, &b.z)
	// a.x*b.z^2 == b.x*a.z^2
	f.mul(&l, &a.x, &z22)
	f.mul(&r, &b.x, &z12)
	if !f.equal(&l, &r) {
		return false
	}
	// a.y*b.z^3 == b.y*a.z^3
	f.mul(&l, &a.y, &z22)
	f.mul(&l, &l, &b.z)
	f.mul(&r, &b.y, &z12)
	f.mul(&r, &r, &a.z)
	return f.equal(&l, &r)
}

// AddJacobian returns a + b without leaving Jacobian coordinates.
func (c *Curve) AddJacobian(a, b *JacobianPoint) *JacobianPoint {
	var r JacobianPoint
	c.addVar(&r, a, b)
	return &r
}

// DoubleJacobian returns 2*a without leaving Jacobian coordinates.
func (c *Curve) DoubleJacobian(a *JacobianPoint) *JacobianPoint {
	var r JacobianPoint
	c.double(&r, a)
	return &r
}

// Add returns p + q.
func (c *Curve) Add(p, q AffinePoint) AffinePoint {
	var a, b, r JacobianPoint
	a.setGE(p)
	b.setGE(q)
	c.addVar(&r, &a, &b)
	return c.ToAffine(&r)
}

// Sub returns p - q, computed as p + (-q).
func (c *Curve) Sub(p, q AffinePoint) AffinePoint {
	return c.Add(p, c.Negate(q))
}

// Double returns 2*p.
func (c *Curve) Double(p AffinePoint) AffinePoint {
	var a, r JacobianPoint
	a.setGE(p)
	c.double(&r, &a)
	return c.ToAffine(&r)
}
