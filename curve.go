// Package vrf verifies ECVRF proofs over the secp256k1 curve with SHA-256 and
// the try-and-increment hash-to-curve method (suite 0xFE).
//
// The package covers the verifier side only: field and group arithmetic in
// Jacobian coordinates, the compressed point and proof codecs, hash-to-curve,
// challenge hashing, and two verification entry points. Verify recomputes all
// scalar multiplications. FastVerify accepts the multiplication results from
// an untrusted helper and checks them through a MulVerifier.
package vrf

import (
	"errors"
	"math/big"
	"sync"
)

// CurveParams holds the domain parameters of a short Weierstrass curve
// y^2 = x^3 + b over GF(p). The values must not be modified once the
// params have been handed to NewCurve.
type CurveParams struct {
	Name    string
	P       *big.Int // field prime, p = 3 mod 4
	N       *big.Int // order of the base point
	B       *big.Int // constant b of the curve equation
	Gx, Gy  *big.Int // base point
	BitSize int      // size of the field in bits
}

// Curve binds CurveParams to the arithmetic routines. A Curve carries no
// mutable state and is safe for concurrent use.
type Curve struct {
	params *CurveParams
	f      *field
	s      *scalarField
	g      AffinePoint

	// gen is the precomputed generator table, built on first use
	gen     *genTable
	genOnce sync.Once
}

var (
	secp256k1Params     *CurveParams
	secp256k1Curve      *Curve
	secp256k1ParamsOnce sync.Once
)

func mustHex(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("vrf: invalid hex constant " + s)
	}
	return v
}

func initSecp256k1() {
	// SEC 2 section 2.4.1
	secp256k1Params = &CurveParams{
		Name:    "secp256k1",
		P:       mustHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F"),
		N:       mustHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141"),
		B:       big.NewInt(7),
		Gx:      mustHex("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798"),
		Gy:      mustHex("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8"),
		BitSize: 256,
	}
	c, err := NewCurve(secp256k1Params)
	if err != nil {
		panic("vrf: secp256k1 parameters rejected: " + err.Error())
	}
	secp256k1Curve = c
}

// Secp256k1 returns the secp256k1 domain parameters. The returned value is
// shared process-wide and must be treated as read-only.
func Secp256k1() *CurveParams {
	secp256k1ParamsOnce.Do(initSecp256k1)
	return secp256k1Params
}

// S256 returns the Curve for secp256k1.
func S256() *Curve {
	secp256k1ParamsOnce.Do(initSecp256k1)
	return secp256k1Curve
}

// NewCurve checks the parameters and returns a Curve using them. Only curves
// whose prime satisfies p = 3 mod 4 are accepted, since square roots are
// taken with a single exponentiation.
func NewCurve(params *CurveParams) (*Curve, error) {
	if params == nil || params.P == nil || params.N == nil || params.B == nil ||
		params.Gx == nil || params.Gy == nil {
		return nil, errors.New("curve parameters are incomplete")
	}
	if params.P.Sign() <= 0 || params.N.Sign() <= 0 {
		return nil, errors.New("curve modulus and order must be positive")
	}
	if new(big.Int).And(params.P, big.NewInt(3)).Int64() != 3 {
		return nil, errors.New("curve prime must be 3 mod 4")
	}
	if params.BitSize <= 0 || params.BitSize > 256 || params.P.BitLen() > params.BitSize {
		return nil, errors.New("curve bit size does not match the prime")
	}
	c := &Curve{
		params: params,
		f:      newField(params.P),
		s:      newScalarField(params.N),
	}
	c.g = NewAffinePoint(params.Gx, params.Gy)
	if !c.IsOnCurve(c.g) {
		return nil, errors.New("base point is not on the curve")
	}
	return c, nil
}

// Params returns the parameters the curve was built from.
func (c *Curve) Params() *CurveParams {
	return c.params
}

// Generator returns the base point G.
func (c *Curve) Generator() AffinePoint {
	return c.g
}
