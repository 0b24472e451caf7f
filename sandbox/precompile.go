package sandbox

import (
	"math/big"

	"github.com/ethereum/go-ethereum/crypto/bn256"
)

// PrecompileHost implements Host with the bn256 implementation backing the
// Ethereum ecAdd/ecMul/pairing precompiles. Its unmarshalling performs the
// on-curve and subgroup checks, so malformed operands surface as host
// faults exactly as they would on chain.
type PrecompileHost struct{}

var _ Host = PrecompileHost{}

func (PrecompileHost) G1Add(p, q []byte) ([]byte, error) {
	a, err := unmarshalG1(p)
	if err != nil {
		return nil, err
	}
	b, err := unmarshalG1(q)
	if err != nil {
		return nil, err
	}
	return new(bn256.G1).Add(a, b).Marshal(), nil
}

func (PrecompileHost) G1ScalarMul(p, k []byte) ([]byte, error) {
	if len(k) != ScalarLen {
		return nil, hostFault("scalar must be %d bytes, got %d", ScalarLen, len(k))
	}
	a, err := unmarshalG1(p)
	if err != nil {
		return nil, err
	}
	return new(bn256.G1).ScalarMult(a, new(big.Int).SetBytes(k)).Marshal(), nil
}

func (PrecompileHost) PairingCheck(pairs []byte) (bool, error) {
	if len(pairs) == 0 || len(pairs)%PairLen != 0 {
		return false, hostFault("pairing input must be a multiple of %d bytes, got %d", PairLen, len(pairs))
	}
	n := len(pairs) / PairLen
	g1s := make([]*bn256.G1, n)
	g2s := make([]*bn256.G2, n)
	for i := 0; i < n; i++ {
		slot := pairs[i*PairLen : (i+1)*PairLen]
		g1, err := unmarshalG1(slot[:G1Len])
		if err != nil {
			return false, err
		}
		g2 := new(bn256.G2)
		if _, err := g2.Unmarshal(slot[G1Len:]); err != nil {
			return false, hostFault("bad G2 point: %v", err)
		}
		g1s[i], g2s[i] = g1, g2
	}
	return bn256.PairingCheck(g1s, g2s), nil
}

func unmarshalG1(buf []byte) (*bn256.G1, error) {
	if len(buf) != G1Len {
		return nil, hostFault("G1 point must be %d bytes, got %d", G1Len, len(buf))
	}
	p := new(bn256.G1)
	if _, err := p.Unmarshal(buf); err != nil {
		return nil, hostFault("bad G1 point: %v", err)
	}
	return p, nil
}
