package vrf

import "errors"

var (
	// ErrMalformedPoint is returned for a compressed point with the wrong
	// length, an unknown sign byte, or coordinates that are not on the curve.
	ErrMalformedPoint = errors.New("malformed curve point")
	// ErrMalformedProof is returned for a proof with the wrong length or an
	// embedded gamma that does not decode.
	ErrMalformedProof = errors.New("malformed VRF proof")
	// ErrInvalidFieldElement is returned when a coordinate is not below the
	// field modulus.
	ErrInvalidFieldElement = errors.New("coordinate is not a field element")
	// ErrInvalidPoint is returned when an x coordinate has no matching y on
	// the curve.
	ErrInvalidPoint = errors.New("x coordinate is not on the curve")
	// ErrInvalidScalar is returned for a proof scalar outside [0, n).
	ErrInvalidScalar = errors.New("scalar is not below the group order")
	// ErrHashToCurveExhausted is returned when no counter value up to the
	// suite bound produced a curve point. It indicates mismatched protocol
	// parameters rather than a bad proof.
	ErrHashToCurveExhausted = errors.New("hash to curve exhausted the counter range")
)
