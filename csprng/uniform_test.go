package csprng

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func TestSeededDeterminism(t *testing.T) {
	a := NewUniformSamplerWithSeed([]byte{42})
	b := NewUniformSamplerWithSeed([]byte{42})

	for i := 0; i < 64; i++ {
		x, y := a.SampleFr(), b.SampleFr()
		require.True(t, x.Equal(&y), "draw %d diverged under the same seed", i)
	}
}

func TestSeedsDiverge(t *testing.T) {
	a := NewUniformSamplerWithSeed([]byte{42})
	b := NewUniformSamplerWithSeed([]byte{43})

	same := true
	for i := 0; i < 8; i++ {
		x, y := a.SampleFr(), b.SampleFr()
		if !x.Equal(&y) {
			same = false
		}
	}
	require.False(t, same)
}

func TestSampleFrCanonical(t *testing.T) {
	s := NewUniformSamplerWithSeed([]byte("canonical"))
	mod := fr.Modulus()
	for i := 0; i < 256; i++ {
		x := s.SampleFr()
		require.Negative(t, x.BigInt(new(big.Int)).Cmp(mod))
	}
}

// Read and SampleFr consume one shared stream: reading the raw bytes of a
// draw and reducing them by hand must give the value SampleFr returns.
func TestReadSharesSampleStream(t *testing.T) {
	a := NewUniformSamplerWithSeed([]byte{9})
	b := NewUniformSamplerWithSeed([]byte{9})

	buf := make([]byte, frByteLen)
	n, err := a.Read(buf)
	require.NoError(t, err)
	require.Equal(t, frByteLen, n)

	var v big.Int
	v.SetBytes(buf)
	v.Mod(&v, fr.Modulus())
	var want fr.Element
	want.SetBigInt(&v)

	got := b.SampleFr()
	require.True(t, got.Equal(&want))

	// the streams stay aligned after the interleaved read
	x, y := a.SampleFr(), b.SampleFr()
	require.True(t, x.Equal(&y))
}

func TestSampleFrNonZero(t *testing.T) {
	s := NewUniformSamplerWithSeed([]byte{0})
	for i := 0; i < 256; i++ {
		x := s.SampleFrNonZero()
		require.False(t, x.IsZero())
	}
}

func TestFreshSamplerUsable(t *testing.T) {
	s, err := NewUniformSampler()
	require.NoError(t, err)
	x, y := s.SampleFr(), s.SampleFr()
	require.False(t, x.Equal(&y), "consecutive draws collided")
}
