package sandbox

import (
	"fmt"
	"math/big"

	"github.com/robin11110000/niet2code/groth16"
)

// Entry-point result words. Anything that is not a proof passing the
// pairing check (malformed calldata, a host fault, a failed equation)
// maps to ResultInvalid: the sandbox has no recovery path, so rejection
// must never become a trap.
const (
	ResultInvalid uint32 = 0
	ResultValid   uint32 = 1
)

// Base field modulus of alt_bn128, used only to negate a G1 y-coordinate.
var basePrime, _ = new(big.Int).SetString("21888242871839275222246405745257275088696311157297823662689037894645226208583", 10)

// Scalar field order of alt_bn128. The host's scalar multiplication
// reduces mod this order, so a non-canonical input encoding (c + k·r)
// would verify as c; rejecting it up front keeps the statement encoding
// unique and the verdict aligned with the host-side decoder.
var scalarPrime, _ = new(big.Int).SetString("21888242871839275222246405745257275088548364400416034343698204186575808495617", 10)

// Verifier is the sandboxed pairing-equation checker. It holds the
// verifying key as raw host-ABI buffers, set once at construction and
// never mutated; all curve work goes through the Host.
type Verifier struct {
	host Host

	alpha []byte // G1
	beta  []byte // G2
	gamma []byte // G2
	delta []byte // G2
	ic    [2][]byte
}

// NewVerifier builds a verifier from the 576-byte verifying key encoding.
// Only the layout is checked here; point validity is enforced by the host
// on every use.
func NewVerifier(vkBytes []byte, host Host) (*Verifier, error) {
	if len(vkBytes) != groth16.SizeVerifyingKey {
		return nil, fmt.Errorf("sandbox: verifying key must be %d bytes, got %d",
			groth16.SizeVerifyingKey, len(vkBytes))
	}
	buf := make([]byte, groth16.SizeVerifyingKey)
	copy(buf, vkBytes)

	v := &Verifier{host: host}
	off := 0
	next := func(n int) []byte {
		s := buf[off : off+n]
		off += n
		return s
	}
	v.alpha = next(G1Len)
	v.beta = next(G2Len)
	v.gamma = next(G2Len)
	v.delta = next(G2Len)
	v.ic[0] = next(G1Len)
	v.ic[1] = next(G1Len)
	return v, nil
}

// Run is the sandbox entry point. Calldata is the fixed 288-byte
// proof ‖ public-input buffer; the result is a single word, 1 for a valid
// proof and 0 otherwise. No other state is read or written, and nothing
// is held across an error exit.
func (v *Verifier) Run(calldata []byte) uint32 {
	if len(calldata) != groth16.SizeCalldata {
		return ResultInvalid
	}
	proofA := calldata[0:G1Len]
	proofB := calldata[G1Len : G1Len+G2Len]
	proofC := calldata[G1Len+G2Len : groth16.SizeProof]
	input := calldata[groth16.SizeProof:]
	if new(big.Int).SetBytes(input).Cmp(scalarPrime) >= 0 {
		return ResultInvalid
	}

	// vk_x = IC[0] + input·IC[1]
	scaled, err := v.host.G1ScalarMul(v.ic[1], input)
	if err != nil {
		return ResultInvalid
	}
	vkx, err := v.host.G1Add(v.ic[0], scaled)
	if err != nil {
		return ResultInvalid
	}

	negA, ok := negateG1(proofA)
	if !ok {
		return ResultInvalid
	}

	// e(−A,B)·e(α,β)·e(vk_x,γ)·e(C,δ) == 1
	pairs := make([]byte, 0, 4*PairLen)
	pairs = append(pairs, negA...)
	pairs = append(pairs, proofB...)
	pairs = append(pairs, v.alpha...)
	pairs = append(pairs, v.beta...)
	pairs = append(pairs, vkx...)
	pairs = append(pairs, v.gamma...)
	pairs = append(pairs, proofC...)
	pairs = append(pairs, v.delta...)

	valid, err := v.host.PairingCheck(pairs)
	if err != nil || !valid {
		return ResultInvalid
	}
	return ResultValid
}

// negateG1 flips a G1 point's y-coordinate over the base field. This is
// byte-level modular arithmetic on one coordinate, not curve arithmetic;
// on-chain verifiers do the same locally before calling the pairing
// precompile.
func negateG1(p []byte) ([]byte, bool) {
	x := new(big.Int).SetBytes(p[:ScalarLen])
	y := new(big.Int).SetBytes(p[ScalarLen:G1Len])
	if x.Cmp(basePrime) >= 0 || y.Cmp(basePrime) >= 0 {
		return nil, false
	}
	if y.Sign() != 0 {
		y.Sub(basePrime, y)
	}
	out := make([]byte, G1Len)
	x.FillBytes(out[:ScalarLen])
	y.FillBytes(out[ScalarLen:])
	return out, true
}
