package groth16

import (
	"fmt"
	"math/big"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	curve "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
	"github.com/rs/zerolog/log"

	"github.com/robin11110000/niet2code/circuit"
	"github.com/robin11110000/niet2code/csprng"
)

// Prove produces a proof that the witness satisfies the multiplication
// circuit, without revealing the secret factors. The sampler supplies the
// per-proof blinding scalars r and s; it must be fresh randomness on every
// call, since reused blinding across proofs for different witnesses leaks
// information about them.
//
// An unsatisfied witness is rejected with ErrUnsatisfiedConstraint before
// any curve work is done.
func Prove(pk *ProvingKey, w circuit.Witness, rng *csprng.UniformSampler) (*Proof, error) {
	if !w.IsSatisfied() {
		return nil, ErrUnsatisfiedConstraint
	}
	start := time.Now()

	r := rng.SampleFr()
	s := rng.SampleFr()
	var rBig, sBig big.Int
	r.BigInt(&rBig)
	s.BigInt(&sBig)

	full := w.Full()
	wires := full[:]

	// Per-constraint evaluations of the three linear combinations, then
	// the H polynomial h = (a·b − c)/Z over the coset.
	domain := fft.NewDomain(uint64(circuit.NbConstraints))
	n := int(domain.Cardinality)
	a := make([]fr.Element, circuit.NbConstraints, n)
	b := make([]fr.Element, circuit.NbConstraints, n)
	c := make([]fr.Element, circuit.NbConstraints, n)
	for j, con := range circuit.System() {
		accumulateTerms(&a[j], con.L, full)
		accumulateTerms(&b[j], con.R, full)
		accumulateTerms(&c[j], con.O, full)
	}
	h := computeH(a, b, c, domain)

	cfg := ecc.MultiExpConfig{}

	var arJac, bs1Jac, t curve.G1Jac
	if _, err := arJac.MultiExp(pk.G1.A, wires, cfg); err != nil {
		return nil, fmt.Errorf("groth16: multiexp A: %w", err)
	}
	if _, err := bs1Jac.MultiExp(pk.G1.B, wires, cfg); err != nil {
		return nil, fmt.Errorf("groth16: multiexp B1: %w", err)
	}
	var bs2Jac curve.G2Jac
	if _, err := bs2Jac.MultiExp(pk.G2.B, wires, cfg); err != nil {
		return nil, fmt.Errorf("groth16: multiexp B2: %w", err)
	}

	proof := &Proof{}

	// A = α + Σ zᵢ·uᵢ(τ) + r·δ
	var deltaJac curve.G1Jac
	deltaJac.FromAffine(&pk.G1.Delta)
	t.ScalarMultiplication(&deltaJac, &rBig)
	arJac.AddAssign(&t)
	arJac.AddMixed(&pk.G1.Alpha)
	proof.Ar.FromJacobian(&arJac)

	// B = β + Σ zᵢ·vᵢ(τ) + s·δ, in both groups
	t.ScalarMultiplication(&deltaJac, &sBig)
	bs1Jac.AddAssign(&t)
	bs1Jac.AddMixed(&pk.G1.Beta)

	var t2, delta2Jac curve.G2Jac
	delta2Jac.FromAffine(&pk.G2.Delta)
	t2.ScalarMultiplication(&delta2Jac, &sBig)
	bs2Jac.AddAssign(&t2)
	bs2Jac.AddMixed(&pk.G2.Beta)
	proof.Bs.FromJacobian(&bs2Jac)

	// C = (Σ_priv zᵢ·kᵢ + Σ hⱼ·Zⱼ)/δ-encoded + s·A + r·B₁ − rs·δ
	var krs, hz curve.G1Jac
	if _, err := krs.MultiExp(pk.G1.K, wires[circuit.NbPublic:], cfg); err != nil {
		return nil, fmt.Errorf("groth16: multiexp K: %w", err)
	}
	if _, err := hz.MultiExp(pk.G1.Z, h[:len(pk.G1.Z)], cfg); err != nil {
		return nil, fmt.Errorf("groth16: multiexp Z: %w", err)
	}
	krs.AddAssign(&hz)

	t.ScalarMultiplication(&arJac, &sBig)
	krs.AddAssign(&t)
	t.ScalarMultiplication(&bs1Jac, &rBig)
	krs.AddAssign(&t)

	var rs fr.Element
	var rsBig big.Int
	rs.Mul(&r, &s).Neg(&rs)
	rs.BigInt(&rsBig)
	t.ScalarMultiplication(&deltaJac, &rsBig)
	krs.AddAssign(&t)
	proof.Krs.FromJacobian(&krs)

	log.Debug().Dur("took", time.Since(start)).Msg("groth16 prove done")
	return proof, nil
}

func accumulateTerms(acc *fr.Element, terms []circuit.Term, full [circuit.NbWires]fr.Element) {
	var t fr.Element
	for _, term := range terms {
		t.Mul(&term.Coeff, &full[term.Wire])
		acc.Add(acc, &t)
	}
}

// computeH evaluates h = (a·b − c)/Z in Lagrange coset basis and returns
// its coefficients: iFFT each vector, move to the coset, combine pointwise
// with the inverse of Z on the coset, then iFFT back off the coset.
func computeH(a, b, c []fr.Element, domain *fft.Domain) []fr.Element {
	n := int(domain.Cardinality)
	padding := make([]fr.Element, n-len(a))
	a = append(a, padding...)
	b = append(b, padding...)
	c = append(c, padding...)

	domain.FFTInverse(a, fft.DIF)
	domain.FFTInverse(b, fft.DIF)
	domain.FFTInverse(c, fft.DIF)

	domain.FFT(a, fft.DIT, fft.OnCoset())
	domain.FFT(b, fft.DIT, fft.OnCoset())
	domain.FFT(c, fft.DIT, fft.OnCoset())

	// Z is constant on the coset: g^n − 1.
	var den, one fr.Element
	one.SetOne()
	den.Exp(domain.FrMultiplicativeGen, big.NewInt(int64(n)))
	den.Sub(&den, &one).Inverse(&den)

	for i := 0; i < n; i++ {
		a[i].Mul(&a[i], &b[i]).
			Sub(&a[i], &c[i]).
			Mul(&a[i], &den)
	}

	domain.FFTInverse(a, fft.DIF, fft.OnCoset())
	fft.BitReverse(a)
	return a
}
