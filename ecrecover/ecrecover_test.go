package ecrecover

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"vrf.mleku.dev"
)

func randomScalar(t testing.TB) *big.Int {
	t.Helper()
	k, err := rand.Int(rand.Reader, vrf.S256().Params().N)
	require.NoError(t, err)
	return k
}

func mustHex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// countingFallback records how often recovery could not be used
type countingFallback struct {
	calls int
	vrf.DirectMulVerifier
}

func (f *countingFallback) MulVerify(k *big.Int, p, q vrf.AffinePoint) bool {
	f.calls++
	return f.DirectMulVerifier.MulVerify(k, p, q)
}

func (f *countingFallback) MulSubMulVerify(k1, k2 *big.Int, p, q vrf.AffinePoint) bool {
	f.calls++
	return f.DirectMulVerifier.MulSubMulVerify(k1, k2, p, q)
}

func TestMulVerify(t *testing.T) {
	c := vrf.S256()
	fb := &countingFallback{}
	m := &MulVerifier{Fallback: fb}

	for i := 0; i < 16; i++ {
		k := randomScalar(t)
		p := c.ScalarBaseMult(randomScalar(t))
		q := c.ScalarMult(k, p)

		require.True(t, m.MulVerify(k, p, q))
		require.False(t, m.MulVerify(k, p, c.Add(q, c.Generator())))
		require.False(t, m.MulVerify(k, p, c.Negate(q)))
		require.False(t, m.MulVerify(new(big.Int).Add(k, big.NewInt(1)), p, q))
	}
	require.Zero(t, fb.calls, "recovery should handle ordinary inputs")
}

func TestMulSubMulVerify(t *testing.T) {
	c := vrf.S256()
	fb := &countingFallback{}
	m := &MulVerifier{Fallback: fb}

	for i := 0; i < 16; i++ {
		k1, k2 := randomScalar(t), randomScalar(t)
		p := c.ScalarBaseMult(randomScalar(t))
		q := c.MulSubMul(k1, k2, p)

		require.True(t, m.MulSubMulVerify(k1, k2, p, q))
		require.False(t, m.MulSubMulVerify(k1, k2, p, c.Add(q, c.Generator())))
		require.False(t, m.MulSubMulVerify(k2, k1, p, q))
	}
	require.Zero(t, fb.calls, "recovery should handle ordinary inputs")
}

func TestMulVerifyFallback(t *testing.T) {
	c := vrf.S256()
	fb := &countingFallback{}
	m := &MulVerifier{Fallback: fb}
	p := c.ScalarBaseMult(randomScalar(t))

	// A zero scalar has no signature form; the product is the identity
	require.True(t, m.MulVerify(big.NewInt(0), p, vrf.Infinity()))
	require.False(t, m.MulVerify(big.NewInt(0), p, p))
	require.Equal(t, 2, fb.calls)

	// k*G - k*G is the identity, which recovery cannot return
	k := randomScalar(t)
	g := c.Generator()
	require.True(t, m.MulSubMulVerify(k, k, g, vrf.Infinity()))
	require.Equal(t, 3, fb.calls)

	// Off-curve bases never reach recovery
	off := vrf.NewAffinePoint(big.NewInt(1), big.NewInt(1))
	require.False(t, m.MulVerify(k, off, p))
	require.Equal(t, 4, fb.calls)

	require.False(t, m.MulVerify(nil, p, p))
	require.False(t, m.MulSubMulVerify(nil, k, p, p))
}

func TestNewUsesDirectFallback(t *testing.T) {
	m := New()
	require.NotNil(t, m.Fallback)

	var zero MulVerifier
	require.True(t, zero.MulVerify(big.NewInt(0), vrf.S256().Generator(), vrf.Infinity()))
}

func TestFastVerifyWithRecovery(t *testing.T) {
	v, err := vrf.NewVerifier(vrf.WithMulVerifier(New()))
	require.NoError(t, err)

	pk, err := vrf.DecodePoint(mustHex(t, "032c8c31fc9f990c6b55e3865a184a4ce50e09481f2eaeb3e60ec1cea13a6ae645"))
	require.NoError(t, err)
	proof := mustHex(t, "031f4dbca087a1972d04a07a779b7df1caa99e0f5db2aa21f3aecc4f9e10e85d0814faa89697b482daa377fb6b4a8b0191a65d34a6d90a8a2461e5db9205d4cf0bb4b2c31b5ef6997a585a9f1a72517b6f")
	msg := []byte("sample")

	params, err := v.ComputeFastVerifyParams(pk, proof, msg)
	require.NoError(t, err)
	require.True(t, v.FastVerify(pk, proof, msg, params))
	require.Equal(t, v.Verify(pk, proof, msg), v.FastVerify(pk, proof, msg, params))

	forged := *params
	forged.SH = vrf.S256().Add(forged.SH, vrf.S256().Generator())
	forged.CGamma = vrf.S256().Add(forged.CGamma, vrf.S256().Generator())
	require.False(t, v.FastVerify(pk, proof, msg, &forged))

	require.False(t, v.FastVerify(pk, proof, []byte("other"), params))
}

func BenchmarkMulVerify(b *testing.B) {
	c := vrf.S256()
	m := New()
	k := randomScalar(b)
	p := c.ScalarBaseMult(randomScalar(b))
	q := c.ScalarMult(k, p)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.MulVerify(k, p, q)
	}
}
