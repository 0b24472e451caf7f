package groth16

import (
	"math/big"
	"time"

	curve "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
	"github.com/rs/zerolog/log"

	"github.com/robin11110000/niet2code/circuit"
	"github.com/robin11110000/niet2code/csprng"
)

// Setup runs the one-time trusted setup for the multiplication circuit and
// returns a matched key pair. The sampler is the only source of randomness:
// a seeded sampler yields reproducible fixture keys, a crypto/rand-backed
// one production keys. Each invocation is an independent trust root; proofs
// made under one proving key never verify under another setup's verifying
// key.
func Setup(rng *csprng.UniformSampler) (*ProvingKey, *VerifyingKey, error) {
	start := time.Now()

	domain := fft.NewDomain(uint64(circuit.NbConstraints))
	n := int(domain.Cardinality)

	var one fr.Element
	one.SetOne()

	// Toxic waste. τ must avoid the evaluation domain so that the
	// Lagrange denominators below stay invertible.
	var tau, zt fr.Element
	for {
		tau = rng.SampleFrNonZero()
		zt.Exp(tau, big.NewInt(int64(n)))
		zt.Sub(&zt, &one)
		if !zt.IsZero() {
			break
		}
	}
	alpha := rng.SampleFrNonZero()
	beta := rng.SampleFrNonZero()
	gamma := rng.SampleFrNonZero()
	delta := rng.SampleFrNonZero()

	// Evaluate the QAP polynomials uᵢ, vᵢ, wᵢ at τ, walking the Lagrange
	// basis over the radix-2 domain with the recurrence
	// L₀ = (τⁿ−1)/(n(τ−1)), Lⱼ₊₁ = ω·Lⱼ·(τ−ωʲ)/(τ−ωʲ⁺¹).
	var u, v, w [circuit.NbWires]fr.Element
	var l, tmp, wi fr.Element
	l.Mul(&zt, &domain.CardinalityInv)
	tmp.Sub(&tau, &one)
	l.Div(&l, &tmp)
	wi.SetOne()

	for _, con := range circuit.System() {
		for _, t := range con.L {
			tmp.Mul(&l, &t.Coeff)
			u[t.Wire].Add(&u[t.Wire], &tmp)
		}
		for _, t := range con.R {
			tmp.Mul(&l, &t.Coeff)
			v[t.Wire].Add(&v[t.Wire], &tmp)
		}
		for _, t := range con.O {
			tmp.Mul(&l, &t.Coeff)
			w[t.Wire].Add(&w[t.Wire], &tmp)
		}

		l.Mul(&l, &domain.Generator)
		tmp.Sub(&tau, &wi)
		l.Mul(&l, &tmp)
		wi.Mul(&wi, &domain.Generator)
		tmp.Sub(&tau, &wi)
		l.Div(&l, &tmp)
	}

	pk := &ProvingKey{}
	vk := &VerifyingKey{}

	pk.G1.Alpha = g1Scalar(&alpha)
	pk.G1.Beta = g1Scalar(&beta)
	pk.G1.Delta = g1Scalar(&delta)
	pk.G2.Beta = g2Scalar(&beta)
	pk.G2.Delta = g2Scalar(&delta)

	vk.G1.Alpha = pk.G1.Alpha
	vk.G2.Beta = pk.G2.Beta
	vk.G2.Gamma = g2Scalar(&gamma)
	vk.G2.Delta = pk.G2.Delta

	// Per-wire key vectors. kᵢ = β·uᵢ(τ) + α·vᵢ(τ) + wᵢ(τ), divided by δ
	// for private wires (proving key) and by γ for public ones
	// (verifying key).
	pk.G1.A = make([]curve.G1Affine, circuit.NbWires)
	pk.G1.B = make([]curve.G1Affine, circuit.NbWires)
	pk.G2.B = make([]curve.G2Affine, circuit.NbWires)
	pk.G1.K = make([]curve.G1Affine, circuit.NbPrivate)
	vk.G1.K = make([]curve.G1Affine, circuit.NbPublic)

	var k fr.Element
	for i := 0; i < circuit.NbWires; i++ {
		pk.G1.A[i] = g1Scalar(&u[i])
		pk.G1.B[i] = g1Scalar(&v[i])
		pk.G2.B[i] = g2Scalar(&v[i])

		k.Mul(&u[i], &beta)
		tmp.Mul(&v[i], &alpha)
		k.Add(&k, &tmp).Add(&k, &w[i])
		if i < circuit.NbPublic {
			k.Div(&k, &gamma)
			vk.G1.K[i] = g1Scalar(&k)
		} else {
			k.Div(&k, &delta)
			pk.G1.K[i-circuit.NbPublic] = g1Scalar(&k)
		}
	}

	// H-polynomial basis [τʲ·Z(τ)/δ]₁, j < n-1.
	pk.G1.Z = make([]curve.G1Affine, n-1)
	var zdt fr.Element
	zdt.Div(&zt, &delta)
	for j := 0; j < n-1; j++ {
		pk.G1.Z[j] = g1Scalar(&zdt)
		zdt.Mul(&zdt, &tau)
	}

	log.Debug().Dur("took", time.Since(start)).Msg("groth16 setup done")
	return pk, vk, nil
}

var g1Gen, g2Gen = func() (curve.G1Affine, curve.G2Affine) {
	_, _, g1, g2 := curve.Generators()
	return g1, g2
}()

func g1Scalar(s *fr.Element) curve.G1Affine {
	var bi big.Int
	s.BigInt(&bi)
	var p curve.G1Affine
	p.ScalarMultiplication(&g1Gen, &bi)
	return p
}

func g2Scalar(s *fr.Element) curve.G2Affine {
	var bi big.Int
	s.BigInt(&bi)
	var p curve.G2Affine
	p.ScalarMultiplication(&g2Gen, &bi)
	return p
}
