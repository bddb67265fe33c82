package bench

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"vrf.mleku.dev"
	"vrf.mleku.dev/ecrecover"
)

// This file contains benchmarks comparing the scalar multiplication paths
// behind verification:
// 1. this module's Jacobian big.Int arithmetic
// 2. btcec (pure Go, used as the reference implementation in tests)
// 3. public key recovery through dcrd's secp256k1 (the ecrecover MulVerifier)

var (
	benchScalar   *big.Int
	benchPoint    vrf.AffinePoint
	benchProduct  vrf.AffinePoint
	benchPubKey   vrf.AffinePoint
	benchProof    []byte
	benchMessage  []byte
	benchParams   *vrf.FastVerifyParams
	benchDirect   *vrf.Verifier
	benchRecovery *vrf.Verifier
)

func initComparisonBenchData() {
	c := vrf.S256()
	k, err := rand.Int(rand.Reader, c.Params().N)
	if err != nil {
		panic(err)
	}
	benchScalar = k

	j, err := rand.Int(rand.Reader, c.Params().N)
	if err != nil {
		panic(err)
	}
	benchPoint = c.ScalarBaseMult(j)
	benchProduct = c.ScalarMult(benchScalar, benchPoint)

	pk, err := hex.DecodeString("032c8c31fc9f990c6b55e3865a184a4ce50e09481f2eaeb3e60ec1cea13a6ae645")
	if err != nil {
		panic(err)
	}
	if benchPubKey, err = vrf.DecodePoint(pk); err != nil {
		panic(err)
	}
	benchProof, err = hex.DecodeString("031f4dbca087a1972d04a07a779b7df1caa99e0f5db2aa21f3aecc4f9e10e85d0814faa89697b482daa377fb6b4a8b0191a65d34a6d90a8a2461e5db9205d4cf0bb4b2c31b5ef6997a585a9f1a72517b6f")
	if err != nil {
		panic(err)
	}
	benchMessage = []byte("sample")

	if benchDirect, err = vrf.NewVerifier(); err != nil {
		panic(err)
	}
	if benchRecovery, err = vrf.NewVerifier(vrf.WithMulVerifier(ecrecover.New())); err != nil {
		panic(err)
	}
	if benchParams, err = benchDirect.ComputeFastVerifyParams(benchPubKey, benchProof, benchMessage); err != nil {
		panic(err)
	}
}

func ensureBenchData(b *testing.B) {
	b.Helper()
	if benchScalar == nil {
		initComparisonBenchData()
	}
}

// BenchmarkScalarMult compares general point multiplication
func BenchmarkScalarMult_VRF(b *testing.B) {
	ensureBenchData(b)
	c := vrf.S256()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.ScalarMult(benchScalar, benchPoint)
	}
}

func BenchmarkScalarMult_Btcec(b *testing.B) {
	ensureBenchData(b)
	curve := btcec.S256()
	k := benchScalar.Bytes()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		curve.ScalarMult(benchPoint.X, benchPoint.Y, k)
	}
}

func BenchmarkScalarMult_Dcrd(b *testing.B) {
	ensureBenchData(b)
	var k secp256k1.ModNScalar
	k.SetByteSlice(benchScalar.Bytes())
	var x, y secp256k1.FieldVal
	x.SetByteSlice(benchPoint.X.Bytes())
	y.SetByteSlice(benchPoint.Y.Bytes())
	var p, r secp256k1.JacobianPoint
	p.X.Set(&x)
	p.Y.Set(&y)
	p.Z.SetInt(1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		secp256k1.ScalarMultNonConst(&k, &p, &r)
		r.ToAffine()
	}
}

// BenchmarkMulVerify compares checking a claimed product
func BenchmarkMulVerify_Direct(b *testing.B) {
	ensureBenchData(b)
	m := vrf.DirectMulVerifier{}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !m.MulVerify(benchScalar, benchPoint, benchProduct) {
			b.Fatal("product rejected")
		}
	}
}

func BenchmarkMulVerify_Recovery(b *testing.B) {
	ensureBenchData(b)
	m := ecrecover.New()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !m.MulVerify(benchScalar, benchPoint, benchProduct) {
			b.Fatal("product rejected")
		}
	}
}

// BenchmarkVerify compares full verification with the fast path
func BenchmarkVerify(b *testing.B) {
	ensureBenchData(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !benchDirect.Verify(benchPubKey, benchProof, benchMessage) {
			b.Fatal("proof rejected")
		}
	}
}

func BenchmarkFastVerify_Direct(b *testing.B) {
	ensureBenchData(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !benchDirect.FastVerify(benchPubKey, benchProof, benchMessage, benchParams) {
			b.Fatal("proof rejected")
		}
	}
}

func BenchmarkFastVerify_Recovery(b *testing.B) {
	ensureBenchData(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !benchRecovery.FastVerify(benchPubKey, benchProof, benchMessage, benchParams) {
			b.Fatal("proof rejected")
		}
	}
}
