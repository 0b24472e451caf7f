package groth16

import (
	"fmt"
	"math/big"

	curve "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/robin11110000/niet2code/circuit"
)

// Canonical byte widths. Field elements are 32-byte big-endian canonical
// representatives; G1 points serialize as X‖Y, G2 as X.A1‖X.A0‖Y.A1‖Y.A0
// (imaginary coordinate first, the alt_bn128 precompile convention). The
// all-zero encoding denotes the point at infinity. Changing any of this
// invalidates every previously serialized artifact.
const (
	SizeFr = fr.Bytes
	SizeG1 = 2 * fp.Bytes
	SizeG2 = 4 * fp.Bytes

	// Proof: A (G1) ‖ B (G2) ‖ C (G1).
	SizeProof = 2*SizeG1 + SizeG2

	SizePublicInput = SizeFr

	// Calldata: proof ‖ public input, no length prefix.
	SizeCalldata = SizeProof + SizePublicInput

	// VerifyingKey: α ‖ β ‖ γ ‖ δ ‖ K[0] ‖ K[1].
	SizeVerifyingKey = SizeG1 + 3*SizeG2 + circuit.NbPublic*SizeG1

	// ProvingKey: α ‖ β ‖ δ ‖ A ‖ B₁ ‖ K ‖ Z in G1, then β ‖ δ ‖ B₂ in G2.
	SizeProvingKey = (3+2*circuit.NbWires+circuit.NbPrivate+nbZPoints)*SizeG1 +
		(2+circuit.NbWires)*SizeG2

	// nbZPoints is the H-basis length: domain cardinality minus one,
	// with the domain the next power of two above the constraint count.
	nbZPoints = 3
)

// DecodeError reports malformed or out-of-range bytes at deserialization:
// wrong length, a coordinate at or above the field modulus, or a point
// failing the curve or subgroup checks. It is always surfaced to the
// caller; decoding never silently accepts such input.
type DecodeError struct {
	What   string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("groth16: decode %s: %s", e.What, e.Reason)
}

func appendFp(dst []byte, e *fp.Element) []byte {
	b := e.Bytes()
	return append(dst, b[:]...)
}

func appendG1(dst []byte, p *curve.G1Affine) []byte {
	dst = appendFp(dst, &p.X)
	return appendFp(dst, &p.Y)
}

func appendG2(dst []byte, p *curve.G2Affine) []byte {
	dst = appendFp(dst, &p.X.A1)
	dst = appendFp(dst, &p.X.A0)
	dst = appendFp(dst, &p.Y.A1)
	return appendFp(dst, &p.Y.A0)
}

func decodeFp(buf []byte, what string) (fp.Element, error) {
	var v big.Int
	v.SetBytes(buf)
	if v.Cmp(fp.Modulus()) >= 0 {
		return fp.Element{}, &DecodeError{what, "coordinate not in canonical range"}
	}
	var e fp.Element
	e.SetBigInt(&v)
	return e, nil
}

func decodeG1(buf []byte, what string) (curve.G1Affine, error) {
	var p curve.G1Affine
	var err error
	if p.X, err = decodeFp(buf[:fp.Bytes], what); err != nil {
		return p, err
	}
	if p.Y, err = decodeFp(buf[fp.Bytes:SizeG1], what); err != nil {
		return p, err
	}
	if p.X.IsZero() && p.Y.IsZero() {
		// point at infinity
		return curve.G1Affine{}, nil
	}
	if !p.IsOnCurve() {
		return p, &DecodeError{what, "point not on curve"}
	}
	if !p.IsInSubGroup() {
		return p, &DecodeError{what, "point not in subgroup"}
	}
	return p, nil
}

func decodeG2(buf []byte, what string) (curve.G2Affine, error) {
	var p curve.G2Affine
	var err error
	if p.X.A1, err = decodeFp(buf[0*fp.Bytes:1*fp.Bytes], what); err != nil {
		return p, err
	}
	if p.X.A0, err = decodeFp(buf[1*fp.Bytes:2*fp.Bytes], what); err != nil {
		return p, err
	}
	if p.Y.A1, err = decodeFp(buf[2*fp.Bytes:3*fp.Bytes], what); err != nil {
		return p, err
	}
	if p.Y.A0, err = decodeFp(buf[3*fp.Bytes:4*fp.Bytes], what); err != nil {
		return p, err
	}
	if p.X.IsZero() && p.Y.IsZero() {
		return curve.G2Affine{}, nil
	}
	if !p.IsOnCurve() {
		return p, &DecodeError{what, "point not on curve"}
	}
	if !p.IsInSubGroup() {
		return p, &DecodeError{what, "point not in subgroup"}
	}
	return p, nil
}

// Bytes encodes the proof into its fixed 256-byte layout.
func (p *Proof) Bytes() []byte {
	buf := make([]byte, 0, SizeProof)
	buf = appendG1(buf, &p.Ar)
	buf = appendG2(buf, &p.Bs)
	buf = appendG1(buf, &p.Krs)
	return buf
}

// SetBytes decodes a proof, rejecting any point that is out of range, off
// the curve or outside the prime-order subgroup.
func (p *Proof) SetBytes(buf []byte) error {
	if len(buf) != SizeProof {
		return &DecodeError{"proof", fmt.Sprintf("expected %d bytes, got %d", SizeProof, len(buf))}
	}
	var err error
	if p.Ar, err = decodeG1(buf[:SizeG1], "proof A"); err != nil {
		return err
	}
	if p.Bs, err = decodeG2(buf[SizeG1:SizeG1+SizeG2], "proof B"); err != nil {
		return err
	}
	if p.Krs, err = decodeG1(buf[SizeG1+SizeG2:], "proof C"); err != nil {
		return err
	}
	return nil
}

// Bytes encodes the verifying key into its fixed 576-byte layout.
func (vk *VerifyingKey) Bytes() []byte {
	buf := make([]byte, 0, SizeVerifyingKey)
	buf = appendG1(buf, &vk.G1.Alpha)
	buf = appendG2(buf, &vk.G2.Beta)
	buf = appendG2(buf, &vk.G2.Gamma)
	buf = appendG2(buf, &vk.G2.Delta)
	for i := range vk.G1.K {
		buf = appendG1(buf, &vk.G1.K[i])
	}
	return buf
}

// SetBytes decodes a verifying key with full point validation.
func (vk *VerifyingKey) SetBytes(buf []byte) error {
	if len(buf) != SizeVerifyingKey {
		return &DecodeError{"verifying key", fmt.Sprintf("expected %d bytes, got %d", SizeVerifyingKey, len(buf))}
	}
	var err error
	off := 0
	if vk.G1.Alpha, err = decodeG1(buf[off:off+SizeG1], "vk alpha"); err != nil {
		return err
	}
	off += SizeG1
	if vk.G2.Beta, err = decodeG2(buf[off:off+SizeG2], "vk beta"); err != nil {
		return err
	}
	off += SizeG2
	if vk.G2.Gamma, err = decodeG2(buf[off:off+SizeG2], "vk gamma"); err != nil {
		return err
	}
	off += SizeG2
	if vk.G2.Delta, err = decodeG2(buf[off:off+SizeG2], "vk delta"); err != nil {
		return err
	}
	off += SizeG2
	vk.G1.K = make([]curve.G1Affine, circuit.NbPublic)
	for i := range vk.G1.K {
		if vk.G1.K[i], err = decodeG1(buf[off:off+SizeG1], fmt.Sprintf("vk K[%d]", i)); err != nil {
			return err
		}
		off += SizeG1
	}
	return nil
}

// Bytes encodes the proving key into its fixed layout.
func (pk *ProvingKey) Bytes() []byte {
	buf := make([]byte, 0, SizeProvingKey)
	buf = appendG1(buf, &pk.G1.Alpha)
	buf = appendG1(buf, &pk.G1.Beta)
	buf = appendG1(buf, &pk.G1.Delta)
	for i := range pk.G1.A {
		buf = appendG1(buf, &pk.G1.A[i])
	}
	for i := range pk.G1.B {
		buf = appendG1(buf, &pk.G1.B[i])
	}
	for i := range pk.G1.K {
		buf = appendG1(buf, &pk.G1.K[i])
	}
	for i := range pk.G1.Z {
		buf = appendG1(buf, &pk.G1.Z[i])
	}
	buf = appendG2(buf, &pk.G2.Beta)
	buf = appendG2(buf, &pk.G2.Delta)
	for i := range pk.G2.B {
		buf = appendG2(buf, &pk.G2.B[i])
	}
	return buf
}

// SetBytes decodes a proving key with full point validation.
func (pk *ProvingKey) SetBytes(buf []byte) error {
	if len(buf) != SizeProvingKey {
		return &DecodeError{"proving key", fmt.Sprintf("expected %d bytes, got %d", SizeProvingKey, len(buf))}
	}
	var err error
	off := 0
	readG1 := func(what string) (curve.G1Affine, error) {
		p, err := decodeG1(buf[off:off+SizeG1], what)
		off += SizeG1
		return p, err
	}
	readG2 := func(what string) (curve.G2Affine, error) {
		p, err := decodeG2(buf[off:off+SizeG2], what)
		off += SizeG2
		return p, err
	}

	if pk.G1.Alpha, err = readG1("pk alpha"); err != nil {
		return err
	}
	if pk.G1.Beta, err = readG1("pk beta"); err != nil {
		return err
	}
	if pk.G1.Delta, err = readG1("pk delta"); err != nil {
		return err
	}
	pk.G1.A = make([]curve.G1Affine, circuit.NbWires)
	for i := range pk.G1.A {
		if pk.G1.A[i], err = readG1(fmt.Sprintf("pk A[%d]", i)); err != nil {
			return err
		}
	}
	pk.G1.B = make([]curve.G1Affine, circuit.NbWires)
	for i := range pk.G1.B {
		if pk.G1.B[i], err = readG1(fmt.Sprintf("pk B1[%d]", i)); err != nil {
			return err
		}
	}
	pk.G1.K = make([]curve.G1Affine, circuit.NbPrivate)
	for i := range pk.G1.K {
		if pk.G1.K[i], err = readG1(fmt.Sprintf("pk K[%d]", i)); err != nil {
			return err
		}
	}
	pk.G1.Z = make([]curve.G1Affine, nbZPoints)
	for i := range pk.G1.Z {
		if pk.G1.Z[i], err = readG1(fmt.Sprintf("pk Z[%d]", i)); err != nil {
			return err
		}
	}
	if pk.G2.Beta, err = readG2("pk beta2"); err != nil {
		return err
	}
	if pk.G2.Delta, err = readG2("pk delta2"); err != nil {
		return err
	}
	pk.G2.B = make([]curve.G2Affine, circuit.NbWires)
	for i := range pk.G2.B {
		if pk.G2.B[i], err = readG2(fmt.Sprintf("pk B2[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

// EncodePublicInput encodes the public input as its 32-byte canonical form.
func EncodePublicInput(x fr.Element) []byte {
	b := x.Bytes()
	return b[:]
}

// DecodePublicInput decodes a public input, rejecting non-canonical values.
func DecodePublicInput(buf []byte) (fr.Element, error) {
	var x fr.Element
	if len(buf) != SizePublicInput {
		return x, &DecodeError{"public input", fmt.Sprintf("expected %d bytes, got %d", SizePublicInput, len(buf))}
	}
	var v big.Int
	v.SetBytes(buf)
	if v.Cmp(fr.Modulus()) >= 0 {
		return x, &DecodeError{"public input", "value not in canonical range"}
	}
	x.SetBigInt(&v)
	return x, nil
}

// Calldata lays out proof ‖ public input for the sandboxed verifier entry
// point. There is no length prefix; the consumer knows the fixed sizes.
func Calldata(p *Proof, publicInput fr.Element) []byte {
	buf := make([]byte, 0, SizeCalldata)
	buf = append(buf, p.Bytes()...)
	return append(buf, EncodePublicInput(publicInput)...)
}

// DecodeCalldata splits and validates a calldata buffer.
func DecodeCalldata(buf []byte) (*Proof, fr.Element, error) {
	var x fr.Element
	if len(buf) != SizeCalldata {
		return nil, x, &DecodeError{"calldata", fmt.Sprintf("expected %d bytes, got %d", SizeCalldata, len(buf))}
	}
	var p Proof
	if err := p.SetBytes(buf[:SizeProof]); err != nil {
		return nil, x, err
	}
	x, err := DecodePublicInput(buf[SizeProof:])
	if err != nil {
		return nil, x, err
	}
	return &p, x, nil
}
