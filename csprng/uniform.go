// Package csprng provides the randomness sources consumed by key generation
// and proving. Samplers are injected explicitly so that test fixtures can be
// reproduced from a seed while production keys draw from crypto/rand.
package csprng

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/crypto/blake2b"
)

// bufSize is the internal read buffer size of UniformSampler.
const bufSize = 1024

// frByteLen is the number of XOF bytes reduced into one scalar. Using 16
// bytes beyond the field size keeps the modular-reduction bias negligible.
const frByteLen = fr.Bytes + 16

// ErrRandomness reports a failed or unavailable entropy source. It is a
// fatal configuration error: callers must not retry with the same source.
var ErrRandomness = fmt.Errorf("csprng: randomness source failure")

// UniformSampler samples uniform values using a blake2b XOF seeded either
// from crypto/rand or from a caller-supplied seed. A sampler is not safe
// for concurrent use; concurrent callers each supply their own.
type UniformSampler struct {
	prng blake2b.XOF

	buf [bufSize]byte
	ptr int
}

// NewUniformSampler creates a sampler seeded from crypto/rand.
func NewUniformSampler() (*UniformSampler, error) {
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomness, err)
	}
	return NewUniformSamplerWithSeed(seed), nil
}

// NewUniformSamplerWithSeed creates a sampler with a user-supplied seed.
// The byte stream, and hence every value sampled, is fully determined by
// the seed.
func NewUniformSamplerWithSeed(seed []byte) *UniformSampler {
	prng, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, nil)
	if err != nil {
		panic(err)
	}
	if _, err := prng.Write(seed); err != nil {
		panic(err)
	}

	return &UniformSampler{
		prng: prng,
		ptr:  bufSize,
	}
}

// Read implements the [io.Reader] interface over the sampler's stream.
// It consumes the same buffered stream as SampleFr, so interleaving the
// two stays deterministic for a given seed.
func (s *UniformSampler) Read(p []byte) (n int, err error) {
	for n < len(p) {
		chunk := len(p) - n
		if chunk > bufSize {
			chunk = bufSize
		}
		n += copy(p[n:], s.next(chunk))
	}
	return n, nil
}

func (s *UniformSampler) next(n int) []byte {
	if s.ptr+n > bufSize {
		if _, err := s.prng.Read(s.buf[:]); err != nil {
			panic(err)
		}
		s.ptr = 0
	}
	out := s.buf[s.ptr : s.ptr+n]
	s.ptr += n
	return out
}

// SampleFr samples a uniform scalar field element.
func (s *UniformSampler) SampleFr() fr.Element {
	var v big.Int
	v.SetBytes(s.next(frByteLen))
	v.Mod(&v, fr.Modulus())

	var e fr.Element
	e.SetBigInt(&v)
	return e
}

// SampleFrNonZero samples a uniform non-zero scalar field element.
func (s *UniformSampler) SampleFrNonZero() fr.Element {
	for {
		e := s.SampleFr()
		if !e.IsZero() {
			return e
		}
	}
}
