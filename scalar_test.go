package vrf

import (
	"math/big"
	"testing"
)

func testScalars() *scalarField {
	return S256().s
}

func TestScalarSetB32(t *testing.T) {
	s := testScalars()

	testCases := []struct {
		name     string
		bytes    [32]byte
		overflow bool
	}{
		{
			name:     "zero",
			bytes:    [32]byte{},
			overflow: false,
		},
		{
			name:     "one",
			bytes:    [32]byte{31: 1},
			overflow: false,
		},
		{
			name: "group_order_minus_one",
			bytes: [32]byte{
				0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
				0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFE,
				0xBA, 0xAE, 0xDC, 0xE6, 0xAF, 0x48, 0xA0, 0x3B,
				0xBF, 0xD2, 0x5E, 0x8C, 0xD0, 0x36, 0x41, 0x40,
			},
			overflow: false,
		},
		{
			name: "group_order",
			bytes: [32]byte{
				0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
				0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFE,
				0xBA, 0xAE, 0xDC, 0xE6, 0xAF, 0x48, 0xA0, 0x3B,
				0xBF, 0xD2, 0x5E, 0x8C, 0xD0, 0x36, 0x41, 0x41,
			},
			overflow: true,
		},
		{
			name: "max_value",
			bytes: [32]byte{
				0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
				0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
				0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
				0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
			},
			overflow: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var r big.Int
			overflow := s.setB32(&r, tc.bytes[:])
			if overflow != tc.overflow {
				t.Errorf("setB32 overflow = %v, want %v", overflow, tc.overflow)
			}
			if s.isValid(&r) == tc.overflow {
				t.Errorf("isValid = %v for overflow = %v", s.isValid(&r), tc.overflow)
			}
		})
	}
}

func TestScalarArithmetic(t *testing.T) {
	s := testScalars()
	n := s.n

	// (n - 1) + 2 = 1
	var r big.Int
	s.add(&r, new(big.Int).Sub(n, big.NewInt(1)), big.NewInt(2))
	if r.Cmp(big.NewInt(1)) != 0 {
		t.Errorf("(n-1) + 2 = %x, want 1", &r)
	}

	// a + (-a) = 0
	a := mustHex("a65d34a6d90a8a2461e5db9205d4cf0bb4b2c31b5ef6997a585a9f1a72517b6f")
	var neg big.Int
	s.negate(&neg, a)
	s.add(&r, a, &neg)
	if !s.isZero(&r) {
		t.Error("a + (-a) should be zero")
	}

	// (n - 1)^2 = 1
	s.mul(&r, new(big.Int).Sub(n, big.NewInt(1)), new(big.Int).Sub(n, big.NewInt(1)))
	if r.Cmp(big.NewInt(1)) != 0 {
		t.Errorf("(n-1)^2 = %x, want 1", &r)
	}

	// Negative values wrap around
	s.reduce(&r, big.NewInt(-1))
	if r.Cmp(new(big.Int).Sub(n, big.NewInt(1))) != 0 {
		t.Error("-1 should reduce to n - 1")
	}
}

func TestScalarGetBits(t *testing.T) {
	s := testScalars()
	v := mustHex("F0E1D2C3B4A59687")

	testCases := []struct {
		offset, count uint
		want          uint32
	}{
		{0, 4, 0x7},
		{4, 4, 0x8},
		{0, 8, 0x87},
		{8, 8, 0x96},
		{60, 4, 0xF},
		{64, 4, 0x0},
		{0, 32, 0xB4A59687},
	}
	for _, tc := range testCases {
		if got := s.getBits(v, tc.offset, tc.count); got != tc.want {
			t.Errorf("getBits(%d, %d) = %x, want %x", tc.offset, tc.count, got, tc.want)
		}
	}
	if s.bitLen() != 256 {
		t.Errorf("bitLen = %d, want 256", s.bitLen())
	}
}
