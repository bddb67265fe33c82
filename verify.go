package vrf

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/golang/glog"
)

// Verifier checks VRF proofs for one curve and suite. It holds no mutable
// state; a single Verifier may be shared between goroutines.
type Verifier struct {
	curve *Curve
	suite Suite
	mul   MulVerifier
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithCurve selects the curve. The default is secp256k1.
func WithCurve(c *Curve) Option {
	return func(v *Verifier) { v.curve = c }
}

// WithSuite selects the protocol constants. The default is DefaultSuite().
func WithSuite(s Suite) Option {
	return func(v *Verifier) { v.suite = s }
}

// WithMulVerifier installs the primitive FastVerify uses to check the
// helper-supplied products. The default computes them directly.
func WithMulVerifier(m MulVerifier) Option {
	return func(v *Verifier) { v.mul = m }
}

// NewVerifier returns a Verifier for the given options.
func NewVerifier(opts ...Option) (*Verifier, error) {
	v := &Verifier{suite: DefaultSuite()}
	for _, opt := range opts {
		opt(v)
	}
	if v.curve == nil {
		v.curve = S256()
	}
	if v.mul == nil {
		v.mul = DirectMulVerifier{Curve: v.curve}
	}
	if err := v.suite.validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// FastVerifyParams are the products a helper supplies to FastVerify:
// U = s*G - c*Y, SH = s*H and CGamma = c*Gamma.
type FastVerifyParams struct {
	U      AffinePoint
	SH     AffinePoint
	CGamma AffinePoint
}

// Curve returns the curve the verifier works on.
func (v *Verifier) Curve() *Curve {
	return v.curve
}

// checkInputs rejects a public key or proof that a prover could not have
// produced: an off-curve or identity key, an off-curve gamma, or scalars out
// of range for their wire width.
func (v *Verifier) checkInputs(pk AffinePoint, pr *Proof) error {
	if !v.curve.IsOnCurve(pk) {
		return fmt.Errorf("public key: %w", ErrMalformedPoint)
	}
	if pr == nil || pr.C == nil || pr.S == nil {
		return fmt.Errorf("%w: incomplete proof", ErrMalformedProof)
	}
	if !v.curve.IsOnCurve(pr.Gamma) {
		return fmt.Errorf("%w: gamma: %w", ErrMalformedProof, ErrMalformedPoint)
	}
	if pr.C.Sign() < 0 || pr.C.BitLen() > 8*v.suite.ChallengeLen {
		return fmt.Errorf("%w: challenge does not fit %d bytes", ErrMalformedProof, v.suite.ChallengeLen)
	}
	if !v.curve.s.isValid(pr.S) {
		return fmt.Errorf("%w: %w", ErrMalformedProof, ErrInvalidScalar)
	}
	return nil
}

// challengeMatches recomputes c' = HashPoints(H, Gamma, U, V) and compares
// it with the proof's c byte for byte
func (v *Verifier) challengeMatches(h, u, vp AffinePoint, pr *Proof) bool {
	want := fixedBytes(pr.C, v.suite.ChallengeLen)
	got := v.suite.HashPoints(v.curve, h, pr.Gamma, u, vp)
	return bytes.Equal(got, want)
}

// VerifyWithHashPoint checks a decoded proof against an already derived
// hash point H. It performs all scalar multiplications itself.
func (v *Verifier) VerifyWithHashPoint(pk AffinePoint, pr *Proof, h AffinePoint) bool {
	if err := v.checkInputs(pk, pr); err != nil {
		glog.V(2).Infof("vrf: rejecting proof: %v", err)
		return false
	}
	if !v.curve.IsOnCurve(h) {
		glog.V(2).Infof("vrf: rejecting proof: hash point is not on the curve")
		return false
	}
	c := v.curve
	// U = s*G - c*Y
	u := c.MulSubMul(pr.S, pr.C, pk)
	// V = s*H - c*Gamma
	var hj, gj, sh, cg, vj JacobianPoint
	hj.setGE(h)
	gj.setGE(c.Negate(pr.Gamma))
	c.ecmult(&sh, &hj, pr.S)
	c.ecmult(&cg, &gj, pr.C)
	c.addVar(&vj, &sh, &cg)

	if !v.challengeMatches(h, u, c.ToAffine(&vj), pr) {
		glog.V(2).Infof("vrf: rejecting proof: challenge mismatch")
		return false
	}
	return true
}

// VerifyProof checks a decoded proof for msg under a decoded public key.
// Malformed keys or proofs yield (false, nil). An error is returned only
// when hash-to-curve fails, which means the suite is misconfigured.
func (v *Verifier) VerifyProof(pk AffinePoint, pr *Proof, msg []byte) (bool, error) {
	if err := v.checkInputs(pk, pr); err != nil {
		glog.V(2).Infof("vrf: rejecting proof: %v", err)
		return false, nil
	}
	h, err := v.suite.HashToTryAndIncrement(v.curve, pk, msg)
	if err != nil {
		return false, err
	}
	return v.VerifyWithHashPoint(pk, pr, h), nil
}

// Verify reports whether proof is a valid VRF proof for msg under pk. It
// never fails: malformed input of any shape is simply not verified.
func (v *Verifier) Verify(pk AffinePoint, proof, msg []byte) bool {
	pr, err := v.curve.DecodeProof(proof)
	if err != nil {
		glog.V(2).Infof("vrf: rejecting proof: %v", err)
		return false
	}
	ok, err := v.VerifyProof(pk, pr, msg)
	return err == nil && ok
}

// VerifyCompressed is Verify for a public key in compressed form.
func (v *Verifier) VerifyCompressed(pk, proof, msg []byte) bool {
	key, err := v.curve.DecodePoint(pk)
	if err != nil {
		glog.V(2).Infof("vrf: rejecting public key: %v", err)
		return false
	}
	return v.Verify(key, proof, msg)
}

// VerifyAndHash verifies the proof and, when it is valid, returns the VRF
// output derived from its gamma.
func (v *Verifier) VerifyAndHash(pk AffinePoint, proof, msg []byte) ([]byte, bool) {
	pr, err := v.curve.DecodeProof(proof)
	if err != nil {
		glog.V(2).Infof("vrf: rejecting proof: %v", err)
		return nil, false
	}
	ok, err := v.VerifyProof(pk, pr, msg)
	if err != nil || !ok {
		return nil, false
	}
	return v.suite.GammaToHash(v.curve, pr.Gamma), true
}

// ProofToHash returns the VRF output of a proof without verifying it.
// Callers must verify the proof before trusting the output.
func (v *Verifier) ProofToHash(proof []byte) ([]byte, error) {
	pr, err := v.curve.DecodeProof(proof)
	if err != nil {
		return nil, err
	}
	return v.suite.GammaToHash(v.curve, pr.Gamma), nil
}

// ComputeFastVerifyParams computes the products FastVerify expects from its
// helper. It runs the expensive part of Verify and is meant to be called by
// whoever submits the proof, not by the party that relies on the result.
func (v *Verifier) ComputeFastVerifyParams(pk AffinePoint, proof, msg []byte) (*FastVerifyParams, error) {
	pr, err := v.curve.DecodeProof(proof)
	if err != nil {
		return nil, err
	}
	if err := v.checkInputs(pk, pr); err != nil {
		return nil, err
	}
	h, err := v.suite.HashToTryAndIncrement(v.curve, pk, msg)
	if err != nil {
		return nil, err
	}
	c := v.curve
	return &FastVerifyParams{
		U:      c.MulSubMul(pr.S, pr.C, pk),
		SH:     c.ScalarMult(pr.S, h),
		CGamma: c.ScalarMult(pr.C, pr.Gamma),
	}, nil
}

// FastVerify is Verify with the scalar multiplications supplied by an
// untrusted helper. Each supplied product is confirmed with the verifier's
// MulVerifier; a forged product rejects the proof even when the challenge
// would still match.
func (v *Verifier) FastVerify(pk AffinePoint, proof, msg []byte, params *FastVerifyParams) bool {
	if params == nil {
		return false
	}
	pr, err := v.curve.DecodeProof(proof)
	if err != nil {
		glog.V(2).Infof("vrf: rejecting proof: %v", err)
		return false
	}
	if err := v.checkInputs(pk, pr); err != nil {
		glog.V(2).Infof("vrf: rejecting proof: %v", err)
		return false
	}
	c := v.curve
	for _, p := range []AffinePoint{params.U, params.SH, params.CGamma} {
		if !c.isPointOrInfinity(p) {
			glog.V(2).Infof("vrf: rejecting proof: helper point %v is not on the curve", p)
			return false
		}
	}
	h, err := v.suite.HashToTryAndIncrement(c, pk, msg)
	if err != nil {
		return false
	}
	if !v.mul.MulSubMulVerify(pr.S, pr.C, pk, params.U) {
		glog.V(2).Infof("vrf: rejecting proof: U is not s*G - c*Y")
		return false
	}
	if !v.mul.MulVerify(pr.S, h, params.SH) {
		glog.V(2).Infof("vrf: rejecting proof: sH is not s*H")
		return false
	}
	if !v.mul.MulVerify(pr.C, pr.Gamma, params.CGamma) {
		glog.V(2).Infof("vrf: rejecting proof: cGamma is not c*Gamma")
		return false
	}
	// V = sH - cGamma
	vp := c.Sub(params.SH, params.CGamma)
	if !v.challengeMatches(h, params.U, vp, pr) {
		glog.V(2).Infof("vrf: rejecting proof: challenge mismatch")
		return false
	}
	return true
}

var defaultVerifier = sync.OnceValue(func() *Verifier {
	v, err := NewVerifier()
	if err != nil {
		panic("vrf: default verifier: " + err.Error())
	}
	return v
})

// Verify checks a proof with the default secp256k1 verifier.
func Verify(pk AffinePoint, proof, msg []byte) bool {
	return defaultVerifier().Verify(pk, proof, msg)
}

// VerifyCompressed checks a proof for a compressed public key with the
// default verifier.
func VerifyCompressed(pk, proof, msg []byte) bool {
	return defaultVerifier().VerifyCompressed(pk, proof, msg)
}

// VerifyProof checks a decoded proof with the default verifier.
func VerifyProof(pk AffinePoint, pr *Proof, msg []byte) (bool, error) {
	return defaultVerifier().VerifyProof(pk, pr, msg)
}

// VerifyAndHash verifies a proof with the default verifier and returns its
// output.
func VerifyAndHash(pk AffinePoint, proof, msg []byte) ([]byte, bool) {
	return defaultVerifier().VerifyAndHash(pk, proof, msg)
}

// ComputeFastVerifyParams computes FastVerify helper products with the
// default verifier.
func ComputeFastVerifyParams(pk AffinePoint, proof, msg []byte) (*FastVerifyParams, error) {
	return defaultVerifier().ComputeFastVerifyParams(pk, proof, msg)
}

// FastVerify checks a proof and helper products with the given MulVerifier,
// or by direct multiplication when m is nil.
func FastVerify(pk AffinePoint, proof, msg []byte, params *FastVerifyParams, m MulVerifier) bool {
	v := defaultVerifier()
	if m != nil {
		v = &Verifier{curve: v.curve, suite: v.suite, mul: m}
	}
	return v.FastVerify(pk, proof, msg, params)
}

// ProofToHash returns the default suite output of a proof without verifying
// it.
func ProofToHash(proof []byte) ([]byte, error) {
	return defaultVerifier().ProofToHash(proof)
}
