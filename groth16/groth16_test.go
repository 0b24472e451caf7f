package groth16

import (
	"bytes"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/robin11110000/niet2code/circuit"
	"github.com/robin11110000/niet2code/csprng"
)

func testSetup(t *testing.T, seed byte) (*ProvingKey, *VerifyingKey, *csprng.UniformSampler) {
	t.Helper()
	rng := csprng.NewUniformSamplerWithSeed([]byte{seed})
	pk, vk, err := Setup(rng)
	require.NoError(t, err)
	return pk, vk, rng
}

func frUint(v uint64) fr.Element {
	var x fr.Element
	x.SetUint64(v)
	return x
}

func TestProveAndVerify(t *testing.T) {
	pk, vk, rng := testSetup(t, 42)

	proof, err := Prove(pk, circuit.NewWitness(7, 8, 56), rng)
	require.NoError(t, err)

	valid, err := Verify(vk, proof, frUint(56))
	require.NoError(t, err)
	require.True(t, valid)

	// the right proof against the wrong statement
	for _, wrong := range []uint64{55, 57, 0} {
		valid, err := Verify(vk, proof, frUint(wrong))
		require.NoError(t, err)
		require.False(t, valid, "proof accepted for product %d", wrong)
	}
}

func TestProveRejectsUnsatisfiedWitness(t *testing.T) {
	pk, _, rng := testSetup(t, 42)

	_, err := Prove(pk, circuit.NewWitness(7, 8, 57), rng)
	require.ErrorIs(t, err, ErrUnsatisfiedConstraint)
}

func TestProofRerandomization(t *testing.T) {
	pk, vk, rng := testSetup(t, 42)

	w := circuit.NewWitness(7, 8, 56)
	p1, err := Prove(pk, w, rng)
	require.NoError(t, err)
	p2, err := Prove(pk, w, rng)
	require.NoError(t, err)

	// fresh blinding: same witness, distinct proofs, both accepted
	require.False(t, bytes.Equal(p1.Bytes(), p2.Bytes()))
	for _, p := range []*Proof{p1, p2} {
		valid, err := Verify(vk, p, frUint(56))
		require.NoError(t, err)
		require.True(t, valid)
	}
}

func TestSetupDeterminism(t *testing.T) {
	pk1, vk1, _ := testSetup(t, 42)
	pk2, vk2, _ := testSetup(t, 42)

	require.Equal(t, pk1.Bytes(), pk2.Bytes())
	require.Equal(t, vk1.Bytes(), vk2.Bytes())

	_, vk3, _ := testSetup(t, 43)
	require.False(t, bytes.Equal(vk1.Bytes(), vk3.Bytes()))
}

func TestDistinctTrustRoots(t *testing.T) {
	pk1, _, rng := testSetup(t, 42)
	_, vk2, _ := testSetup(t, 43)

	proof, err := Prove(pk1, circuit.NewWitness(7, 8, 56), rng)
	require.NoError(t, err)

	// a proof is only meaningful under the verifying key of its own setup
	valid, err := Verify(vk2, proof, frUint(56))
	require.NoError(t, err)
	require.False(t, valid)
}

func TestProveVerifyModularProduct(t *testing.T) {
	pk, vk, rng := testSetup(t, 7)

	// the relation is multiplication in the scalar field, not over integers
	var w circuit.Witness
	w.A = rng.SampleFr()
	w.B = rng.SampleFr()
	w.Product.Mul(&w.A, &w.B)
	require.True(t, w.IsSatisfied())

	proof, err := Prove(pk, w, rng)
	require.NoError(t, err)

	valid, err := Verify(vk, proof, w.Product)
	require.NoError(t, err)
	require.True(t, valid)
}
