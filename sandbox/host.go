// Package sandbox contains the verifier variant meant to run inside a
// restricted, metered execution environment. It performs no elliptic-curve
// arithmetic of its own: point addition, scalar multiplication and the
// pairing check are delegated to a small fixed Host surface over
// fixed-width byte buffers, so any target chain's ABI can supply the
// implementation without touching the verifier logic.
package sandbox

import (
	"errors"
	"fmt"
)

// Buffer widths of the host ABI. These mirror the alt_bn128 precompile
// encodings: G1 as X‖Y, G2 as X.A1‖X.A0‖Y.A1‖Y.A0, scalars big-endian.
const (
	G1Len     = 64
	G2Len     = 128
	ScalarLen = 32

	// PairLen is one (G1, G2) slot of a pairing-check input.
	PairLen = G1Len + G2Len
)

// ErrHostFault marks an error reported by a host operation: malformed
// buffer, point off curve or outside the prime-order subgroup.
var ErrHostFault = errors.New("sandbox: host fault")

func hostFault(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrHostFault, fmt.Sprintf(format, args...))
}

// Host is the imported function surface the sandboxed verifier runs
// against. Every operation takes and returns fixed-width buffers; a
// returned error is a host-reported fault, which the verifier maps to a
// rejection rather than a trap.
type Host interface {
	// G1Add adds two 64-byte G1 points.
	G1Add(p, q []byte) ([]byte, error)

	// G1ScalarMul multiplies a 64-byte G1 point by a 32-byte scalar.
	G1ScalarMul(p, k []byte) ([]byte, error)

	// PairingCheck evaluates the product of pairings over k consecutive
	// 192-byte (G1, G2) slots and reports whether it equals one.
	PairingCheck(pairs []byte) (bool, error)
}
