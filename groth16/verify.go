package groth16

import (
	"math/big"

	curve "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Verify checks the proof against the public input. The boolean result is
// the whole outcome: false means the pairing equation does not hold, which
// is the expected rejection path, not a fault. The error return only
// reports internal pairing failures and is nil for any proof decoded
// through this package.
//
// The check is e(−A,B)·e(α,β)·e(vk_x,γ)·e(C,δ) == 1 with
// vk_x = K[0] + publicInput·K[1].
func Verify(vk *VerifyingKey, proof *Proof, publicInput fr.Element) (bool, error) {
	var kSum, t curve.G1Jac
	kSum.FromAffine(&vk.G1.K[0])

	var bi big.Int
	publicInput.BigInt(&bi)
	t.FromAffine(&vk.G1.K[1])
	t.ScalarMultiplication(&t, &bi)
	kSum.AddAssign(&t)

	var kSumAff, negAr curve.G1Affine
	kSumAff.FromJacobian(&kSum)
	negAr.Neg(&proof.Ar)

	return curve.PairingCheck(
		[]curve.G1Affine{negAr, vk.G1.Alpha, kSumAff, proof.Krs},
		[]curve.G2Affine{proof.Bs, vk.G2.Beta, vk.G2.Gamma, vk.G2.Delta},
	)
}
