// Package ecrecover checks secp256k1 scalar multiplications with ECDSA
// public key recovery.
//
// Recovering a key from a compact signature (r, s) over a message hash e
// computes Q = r^-1 * (s*R - e*G), where R is the point whose x coordinate
// is r. Choosing R = P, r = P.x, s = k*r and e = 0 makes the recovered key
// k*P; choosing s = -k2*r and e = -k1*r makes it k1*G - k2*P. A claimed
// product is accepted when it equals the recovered key.
package ecrecover

import (
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/golang/glog"

	"vrf.mleku.dev"
)

const (
	// compactSigMagicOffset is added to the recovery code in the first byte
	// of a compact signature
	compactSigMagicOffset = 27

	recoveryCodeOddBit      = 1 << 0
	recoveryCodeOverflowBit = 1 << 1

	compactSigSize = 65
)

// MulVerifier implements vrf.MulVerifier for secp256k1 using public key
// recovery. Inputs the recovery equation cannot express, such as the point
// at infinity or a zero product scalar, are checked by Fallback instead.
type MulVerifier struct {
	// Fallback defaults to vrf.DirectMulVerifier on secp256k1
	Fallback vrf.MulVerifier
}

// New returns a MulVerifier with the direct fallback.
func New() *MulVerifier {
	return &MulVerifier{Fallback: vrf.DirectMulVerifier{Curve: vrf.S256()}}
}

func (m *MulVerifier) fallback() vrf.MulVerifier {
	if m.Fallback == nil {
		return vrf.DirectMulVerifier{Curve: vrf.S256()}
	}
	return m.Fallback
}

// toScalar reduces k modulo the group order
func toScalar(k *big.Int) *secp256k1.ModNScalar {
	var s secp256k1.ModNScalar
	r := new(big.Int).Mod(k, vrf.S256().Params().N)
	s.SetByteSlice(r.Bytes())
	return &s
}

// signatureFor builds the compact signature whose R point is p, returning
// the signature and r as a scalar. ok is false when p cannot serve as R.
func signatureFor(p vrf.AffinePoint) (sig []byte, r *secp256k1.ModNScalar, ok bool) {
	// Recovery decompresses R from its x coordinate alone, so p must be
	// the curve point with that x
	if !vrf.S256().IsOnCurve(p) {
		return nil, nil, false
	}
	var code byte
	if p.Y.Bit(0) == 1 {
		code |= recoveryCodeOddBit
	}
	x := new(big.Int).Set(p.X)
	if n := vrf.S256().Params().N; x.Cmp(n) >= 0 {
		code |= recoveryCodeOverflowBit
		x.Sub(x, n)
	}
	r = new(secp256k1.ModNScalar)
	if r.SetByteSlice(x.Bytes()) || r.IsZero() {
		return nil, nil, false
	}
	sig = make([]byte, compactSigSize)
	sig[0] = compactSigMagicOffset + code
	rb := r.Bytes()
	copy(sig[1:33], rb[:])
	return sig, r, true
}

// recoverAndCompare runs key recovery for R = p with the given s and e and
// compares the result with q. handled is false when recovery could not be
// used and the caller must fall back.
func recoverAndCompare(p, q vrf.AffinePoint, s, e *secp256k1.ModNScalar, sig []byte) (match, handled bool) {
	if s.IsZero() || q.IsInfinity() {
		return false, false
	}
	sb := s.Bytes()
	copy(sig[33:], sb[:])
	eb := e.Bytes()
	pub, _, err := ecdsa.RecoverCompact(sig, eb[:])
	if err != nil {
		glog.V(3).Infof("ecrecover: recovery for %v failed: %v", p, err)
		return false, false
	}
	return pub.X().Cmp(q.X) == 0 && pub.Y().Cmp(q.Y) == 0, true
}

// MulVerify reports whether q == k*p.
func (m *MulVerifier) MulVerify(k *big.Int, p, q vrf.AffinePoint) bool {
	if k == nil {
		return false
	}
	if sig, r, ok := signatureFor(p); ok {
		// s = k*r, e = 0
		s := new(secp256k1.ModNScalar).Mul2(toScalar(k), r)
		var e secp256k1.ModNScalar
		if match, handled := recoverAndCompare(p, q, s, &e, sig); handled {
			return match
		}
	}
	return m.fallback().MulVerify(k, p, q)
}

// MulSubMulVerify reports whether q == k1*G - k2*p.
func (m *MulVerifier) MulSubMulVerify(k1, k2 *big.Int, p, q vrf.AffinePoint) bool {
	if k1 == nil || k2 == nil {
		return false
	}
	if sig, r, ok := signatureFor(p); ok {
		// s = -k2*r, e = -k1*r
		s := new(secp256k1.ModNScalar).Mul2(toScalar(k2), r).Negate()
		e := new(secp256k1.ModNScalar).Mul2(toScalar(k1), r).Negate()
		if match, handled := recoverAndCompare(p, q, s, e, sig); handled {
			return match
		}
	}
	return m.fallback().MulSubMulVerify(k1, k2, p, q)
}

var _ vrf.MulVerifier = (*MulVerifier)(nil)
