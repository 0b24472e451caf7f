package sandbox

import (
	"errors"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/robin11110000/niet2code/circuit"
	"github.com/robin11110000/niet2code/csprng"
	"github.com/robin11110000/niet2code/groth16"
)

func testArtifacts(t *testing.T) (vkBytes []byte, vk *groth16.VerifyingKey, calldata []byte) {
	t.Helper()
	rng := csprng.NewUniformSamplerWithSeed([]byte{42})
	pk, vk, err := groth16.Setup(rng)
	require.NoError(t, err)
	proof, err := groth16.Prove(pk, circuit.NewWitness(7, 8, 56), rng)
	require.NoError(t, err)

	return vk.Bytes(), vk, groth16.Calldata(proof, frUint(56))
}

func frUint(v uint64) fr.Element {
	var x fr.Element
	x.SetUint64(v)
	return x
}

func TestRunAcceptsValidProof(t *testing.T) {
	vkBytes, _, calldata := testArtifacts(t)
	v, err := NewVerifier(vkBytes, PrecompileHost{})
	require.NoError(t, err)

	require.Equal(t, ResultValid, v.Run(calldata))
}

func TestRunRejectsWrongInput(t *testing.T) {
	vkBytes, _, calldata := testArtifacts(t)
	v, err := NewVerifier(vkBytes, PrecompileHost{})
	require.NoError(t, err)

	wrong := make([]byte, len(calldata))
	copy(wrong, calldata)
	copy(wrong[groth16.SizeProof:], groth16.EncodePublicInput(frUint(55)))

	require.Equal(t, ResultInvalid, v.Run(wrong))
}

// A non-canonical input encoding (c + r) names the same residue as c, so
// the host's scalar reduction would accept it; the verifier must reject
// it exactly like the host-side decoder does.
func TestRunRejectsNonCanonicalInput(t *testing.T) {
	vkBytes, _, calldata := testArtifacts(t)
	v, err := NewVerifier(vkBytes, PrecompileHost{})
	require.NoError(t, err)

	bad := make([]byte, len(calldata))
	copy(bad, calldata)
	shifted := new(big.Int).Add(fr.Modulus(), big.NewInt(56))
	shifted.FillBytes(bad[groth16.SizeProof:])

	var derr *groth16.DecodeError
	_, _, err = groth16.DecodeCalldata(bad)
	require.ErrorAs(t, err, &derr)
	require.Equal(t, ResultInvalid, v.Run(bad))

	// all-ones input, above the base field as well
	for i := groth16.SizeProof; i < len(bad); i++ {
		bad[i] = 0xFF
	}
	require.Equal(t, ResultInvalid, v.Run(bad))
}

func TestRunRejectsMalformedCalldata(t *testing.T) {
	vkBytes, _, calldata := testArtifacts(t)
	v, err := NewVerifier(vkBytes, PrecompileHost{})
	require.NoError(t, err)

	require.Equal(t, ResultInvalid, v.Run(nil))
	require.Equal(t, ResultInvalid, v.Run(calldata[:len(calldata)-1]))
	require.Equal(t, ResultInvalid, v.Run(append(append([]byte{}, calldata...), 0)))
}

// The sandboxed verdict must agree with the host-side verifier on every
// mutation of the calldata: decode-time rejections on the host side are
// host faults or failed checks in the sandbox, never an acceptance.
func TestRunAgreesWithHostVerifier(t *testing.T) {
	vkBytes, vk, calldata := testArtifacts(t)
	v, err := NewVerifier(vkBytes, PrecompileHost{})
	require.NoError(t, err)

	for pos := 0; pos < len(calldata); pos += 17 {
		tampered := make([]byte, len(calldata))
		copy(tampered, calldata)
		tampered[pos] ^= 0x01

		hostAccepts := false
		if p, input, err := groth16.DecodeCalldata(tampered); err == nil {
			hostAccepts, err = groth16.Verify(vk, p, input)
			require.NoError(t, err)
		}

		require.False(t, hostAccepts, "host accepted tampered byte %d", pos)
		require.Equal(t, ResultInvalid, v.Run(tampered), "sandbox accepted tampered byte %d", pos)
	}

	// and on the untouched buffer both accept
	p, input, err := groth16.DecodeCalldata(calldata)
	require.NoError(t, err)
	valid, err := groth16.Verify(vk, p, input)
	require.NoError(t, err)
	require.True(t, valid)
	require.Equal(t, ResultValid, v.Run(calldata))
}

func TestNewVerifierRejectsBadLength(t *testing.T) {
	_, err := NewVerifier(make([]byte, groth16.SizeVerifyingKey-1), PrecompileHost{})
	require.Error(t, err)
}

// faultyHost fails every capability, as a crashed or hostile host would.
type faultyHost struct{}

func (faultyHost) G1Add(p, q []byte) ([]byte, error) {
	return nil, errors.New("host down")
}

func (faultyHost) G1ScalarMul(p, k []byte) ([]byte, error) {
	return nil, errors.New("host down")
}

func (faultyHost) PairingCheck(pairs []byte) (bool, error) {
	return false, errors.New("host down")
}

func TestRunSurvivesHostFault(t *testing.T) {
	vkBytes, _, calldata := testArtifacts(t)
	v, err := NewVerifier(vkBytes, faultyHost{})
	require.NoError(t, err)

	// a faulting host rejects; it never traps the verifier
	require.Equal(t, ResultInvalid, v.Run(calldata))
}

func TestPrecompileHostFaultsOnGarbage(t *testing.T) {
	host := PrecompileHost{}

	garbage := make([]byte, G1Len)
	for i := range garbage {
		garbage[i] = 0xAB
	}
	_, err := host.G1Add(garbage, garbage)
	require.ErrorIs(t, err, ErrHostFault)

	_, err = host.G1ScalarMul(garbage, make([]byte, ScalarLen))
	require.ErrorIs(t, err, ErrHostFault)

	_, err = host.PairingCheck(make([]byte, PairLen-1))
	require.ErrorIs(t, err, ErrHostFault)
}
