// Package groth16 implements the Groth16 proving system over BN254,
// specialized to the fixed multiplication circuit. Key generation and
// proving take an explicit randomness sampler so that fixture keys and
// proofs are reproducible from a seed.
//
// The key and proof layouts follow the usual Groth16 shape: the proving
// key carries the encoded QAP evaluations per wire, the verifying key the
// public-wire combination points K and the four pairing operands.
package groth16

import (
	"errors"

	curve "github.com/consensys/gnark-crypto/ecc/bn254"
)

// ErrUnsatisfiedConstraint is returned by Prove when the witness does not
// satisfy the circuit. The prover fails fast rather than emitting a proof
// doomed to fail verification.
var ErrUnsatisfiedConstraint = errors.New("groth16: witness does not satisfy circuit")

// ProvingKey enables proof creation. Immutable once produced; safe for
// concurrent readers.
type ProvingKey struct {
	// [α]₁, [β]₁, [δ]₁ and the per-wire QAP evaluations
	// [uᵢ(τ)]₁, [vᵢ(τ)]₁, plus [(βuᵢ+αvᵢ+wᵢ)(τ)/δ]₁ for private wires
	// and the H-polynomial basis [τʲ·Z(τ)/δ]₁.
	G1 struct {
		Alpha, Beta, Delta curve.G1Affine
		A, B               []curve.G1Affine
		K                  []curve.G1Affine
		Z                  []curve.G1Affine
	}

	// [β]₂, [δ]₂, [vᵢ(τ)]₂
	G2 struct {
		Beta, Delta curve.G2Affine
		B           []curve.G2Affine
	}
}

// VerifyingKey enables proof checking and is safe to publish. Immutable
// once produced; safe for concurrent readers.
type VerifyingKey struct {
	// [α]₁ and [(βuᵢ+αvᵢ+wᵢ)(τ)/γ]₁ for public wires.
	G1 struct {
		Alpha curve.G1Affine
		K     []curve.G1Affine
	}

	// [β]₂, [γ]₂, [δ]₂
	G2 struct {
		Beta, Gamma, Delta curve.G2Affine
	}
}

// Proof is the three-element Groth16 proof. Immutable once produced.
type Proof struct {
	Ar, Krs curve.G1Affine
	Bs      curve.G2Affine
}
