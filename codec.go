package vrf

import (
	"fmt"
	"math/big"
)

const (
	// PointLen is the size of a compressed point: sign byte and x
	PointLen = 33
	// ChallengeLen is the size of the challenge scalar c
	ChallengeLen = 16
	// ScalarLen is the size of the response scalar s
	ScalarLen = 32
	// ProofLen is the size of an encoded proof: gamma, c and s
	ProofLen = PointLen + ChallengeLen + ScalarLen

	signEven byte = 0x02
	signOdd  byte = 0x03
)

// Proof is a decoded VRF proof.
type Proof struct {
	Gamma AffinePoint
	C     *big.Int // challenge, 16 bytes on the wire
	S     *big.Int // response, 32 bytes on the wire
}

// fixedBytes writes the low n bytes of v big-endian into a new slice
func fixedBytes(v *big.Int, n int) []byte {
	if v.Sign() < 0 {
		panic("vrf: cannot serialize a negative integer")
	}
	b := v.Bytes()
	out := make([]byte, n)
	if len(b) > n {
		b = b[len(b)-n:]
	}
	copy(out[n-len(b):], b)
	return out
}

// Uint256ToBytes serializes v as a 32-byte big-endian string. Values wider
// than 256 bits are truncated to their low 32 bytes, shorter values are
// zero-padded on the left. v must not be negative.
func Uint256ToBytes(v *big.Int) []byte {
	return fixedBytes(v, 32)
}

// ConcatBytes returns the concatenation of parts in a freshly allocated
// slice.
func ConcatBytes(parts ...[]byte) []byte {
	var n int
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// EncodePoint returns the compressed encoding of p: 0x02 or 0x03 according
// to the parity of y, followed by x. The point at infinity encodes as 0x02
// followed by zeros.
func (c *Curve) EncodePoint(p AffinePoint) []byte {
	n := c.f.byteLen()
	out := make([]byte, 1+n)
	out[0] = signEven
	if p.IsInfinity() {
		return out
	}
	var y big.Int
	if c.f.isOdd(c.f.normalize(&y, p.Y)) {
		out[0] = signOdd
	}
	c.f.getB32(out[1:], p.X)
	return out
}

// DecodePoint parses a compressed point. Any failure is reported as
// ErrMalformedPoint wrapping the cause.
func (c *Curve) DecodePoint(b []byte) (AffinePoint, error) {
	n := c.f.byteLen()
	if len(b) != 1+n {
		return AffinePoint{}, fmt.Errorf("%w: length %d, want %d", ErrMalformedPoint, len(b), 1+n)
	}
	if b[0] != signEven && b[0] != signOdd {
		return AffinePoint{}, fmt.Errorf("%w: sign byte 0x%02x", ErrMalformedPoint, b[0])
	}
	x := new(big.Int)
	if err := c.f.setB32(x, b[1:]); err != nil {
		return AffinePoint{}, fmt.Errorf("%w: %w", ErrMalformedPoint, err)
	}
	y, err := c.DeriveY(b[0], x)
	if err != nil {
		return AffinePoint{}, fmt.Errorf("%w: %w", ErrMalformedPoint, err)
	}
	p := AffinePoint{X: x, Y: y}
	if !c.IsOnCurve(p) {
		return AffinePoint{}, fmt.Errorf("%w: %w", ErrMalformedPoint, ErrInvalidPoint)
	}
	return p, nil
}

// DecodeProof parses an 81-byte proof. The response s must be below the
// group order.
func (c *Curve) DecodeProof(b []byte) (*Proof, error) {
	if len(b) != ProofLen {
		return nil, fmt.Errorf("%w: length %d, want %d", ErrMalformedProof, len(b), ProofLen)
	}
	gamma, err := c.DecodePoint(b[:PointLen])
	if err != nil {
		return nil, fmt.Errorf("%w: gamma: %w", ErrMalformedProof, err)
	}
	pr := &Proof{Gamma: gamma, C: new(big.Int), S: new(big.Int)}
	pr.C.SetBytes(b[PointLen : PointLen+ChallengeLen])
	if c.s.setB32(pr.S, b[PointLen+ChallengeLen:]) {
		return nil, fmt.Errorf("%w: %w", ErrMalformedProof, ErrInvalidScalar)
	}
	return pr, nil
}

// EncodeProof serializes a proof as gamma, c and s.
func (c *Curve) EncodeProof(pr *Proof) []byte {
	return ConcatBytes(
		c.EncodePoint(pr.Gamma),
		fixedBytes(pr.C, ChallengeLen),
		fixedBytes(pr.S, ScalarLen),
	)
}

// Bytes returns the 81-byte wire form of a proof whose gamma is a
// secp256k1 point. Proofs on other curves are encoded with Curve.EncodeProof.
func (pr *Proof) Bytes() []byte {
	return S256().EncodeProof(pr)
}

// EncodePoint compresses a secp256k1 point.
func EncodePoint(p AffinePoint) []byte {
	return S256().EncodePoint(p)
}

// DecodePoint decompresses a secp256k1 point.
func DecodePoint(b []byte) (AffinePoint, error) {
	return S256().DecodePoint(b)
}

// DecodeProof parses a proof whose gamma is a secp256k1 point.
func DecodeProof(b []byte) (*Proof, error) {
	return S256().DecodeProof(b)
}

// EncodeProof serializes a proof whose gamma is a secp256k1 point.
func EncodeProof(pr *Proof) []byte {
	return S256().EncodeProof(pr)
}
