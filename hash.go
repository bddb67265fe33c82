package vrf

import (
	"errors"
	"fmt"
	"hash"
	"math/big"

	"github.com/golang/glog"
	sha256simd "github.com/minio/sha256-simd"
)

// Suite holds the protocol constants shared by prover and verifier. Changing
// any of them produces proofs that do not interoperate with other
// implementations of the same suite.
type Suite struct {
	// ID is the suite byte prefixed to every hash input
	ID byte
	// Domain separators for the three protocol hashes
	HashToCurveDomain byte
	ChallengeDomain   byte
	OutputDomain      byte
	// HashToCurveSign is the fixed sign byte used to lift a hash to a point
	HashToCurveSign byte
	// MaxTries bounds the hash-to-curve counter; at most 256 since the
	// counter is a single byte
	MaxTries int
	// ChallengeLen is the number of digest bytes kept for the challenge. It
	// must match the width of c in the proof encoding.
	ChallengeLen int
	// NewHash constructs the hash primitive
	NewHash func() hash.Hash
}

// DefaultSuite returns the secp256k1, SHA-256, try-and-increment suite 0xFE.
func DefaultSuite() Suite {
	return Suite{
		ID:                0xFE,
		HashToCurveDomain: 0x01,
		ChallengeDomain:   0x02,
		OutputDomain:      0x03,
		HashToCurveSign:   signEven,
		MaxTries:          256,
		ChallengeLen:      ChallengeLen,
		NewHash:           sha256simd.New,
	}
}

func (s Suite) validate() error {
	if s.MaxTries < 1 || s.MaxTries > 256 {
		return fmt.Errorf("hash-to-curve bound %d is outside [1, 256]", s.MaxTries)
	}
	if s.NewHash == nil {
		return errors.New("suite has no hash constructor")
	}
	if s.ChallengeLen != ChallengeLen {
		return fmt.Errorf("challenge length %d, proofs carry %d bytes", s.ChallengeLen, ChallengeLen)
	}
	if s.ChallengeLen > s.NewHash().Size() {
		return fmt.Errorf("challenge length %d does not fit the digest", s.ChallengeLen)
	}
	if s.HashToCurveSign != signEven && s.HashToCurveSign != signOdd {
		return fmt.Errorf("hash-to-curve sign byte 0x%02x is not 0x02 or 0x03", s.HashToCurveSign)
	}
	return nil
}

// digest hashes the suite byte, a domain separator and the parts
func (s Suite) digest(domain byte, parts ...[]byte) []byte {
	h := s.NewHash()
	h.Write([]byte{s.ID, domain})
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

// HashToTryAndIncrement maps a public key and message to a curve point.
// For counter = 0, 1, ... it hashes the suite prefix, the compressed public
// key, the message and the counter byte, and lifts the digest to the point
// with that x coordinate and the suite's fixed sign. Digests that are not a
// valid x coordinate are skipped. ErrHashToCurveExhausted is returned when
// every counter value up to MaxTries fails.
func (s Suite) HashToTryAndIncrement(c *Curve, pk AffinePoint, msg []byte) (AffinePoint, error) {
	pkBytes := c.EncodePoint(pk)
	ctr := []byte{0}
	x := new(big.Int)
	for i := 0; i < s.MaxTries; i++ {
		ctr[0] = byte(i)
		x.SetBytes(s.digest(s.HashToCurveDomain, pkBytes, msg, ctr))
		y, err := c.DeriveY(s.HashToCurveSign, x)
		if err != nil {
			continue
		}
		return AffinePoint{X: new(big.Int).Set(x), Y: y}, nil
	}
	glog.Errorf("vrf: hash to curve found no point in %d tries for key %x", s.MaxTries, pkBytes)
	return AffinePoint{}, ErrHashToCurveExhausted
}

// HashPoints hashes the compressed encodings of points, in order, under the
// challenge domain and returns the leading ChallengeLen bytes.
func (s Suite) HashPoints(c *Curve, points ...AffinePoint) []byte {
	enc := make([][]byte, len(points))
	for i, p := range points {
		enc[i] = c.EncodePoint(p)
	}
	return s.digest(s.ChallengeDomain, enc...)[:s.ChallengeLen]
}

// GammaToHash returns the VRF output for gamma: the hash of its compressed
// encoding under the output domain.
func (s Suite) GammaToHash(c *Curve, gamma AffinePoint) []byte {
	return s.digest(s.OutputDomain, c.EncodePoint(gamma))
}

// HashToTryAndIncrement maps a secp256k1 public key and message to a point
// with the default suite.
func HashToTryAndIncrement(pk AffinePoint, msg []byte) (AffinePoint, error) {
	return DefaultSuite().HashToTryAndIncrement(S256(), pk, msg)
}

// HashPoints computes the default suite challenge over secp256k1 points.
func HashPoints(points ...AffinePoint) []byte {
	return DefaultSuite().HashPoints(S256(), points...)
}

// GammaToHash computes the default suite VRF output for gamma.
func GammaToHash(gamma AffinePoint) []byte {
	return DefaultSuite().GammaToHash(S256(), gamma)
}
