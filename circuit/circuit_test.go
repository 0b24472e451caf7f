package circuit

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"
)

func TestWitnessSatisfaction(t *testing.T) {
	require.True(t, NewWitness(7, 8, 56).IsSatisfied())
	require.True(t, NewWitness(0, 5, 0).IsSatisfied())
	require.True(t, NewWitness(1, 1, 1).IsSatisfied())

	require.False(t, NewWitness(7, 8, 57).IsSatisfied())
	require.False(t, NewWitness(7, 8, 55).IsSatisfied())
	require.False(t, NewWitness(0, 0, 1).IsSatisfied())
}

func TestSystemShape(t *testing.T) {
	sys := System()
	require.Len(t, sys, NbConstraints)

	// every wire of the witness is bound by some constraint
	bound := make(map[int]bool)
	for _, c := range sys {
		for _, term := range append(append(c.L, c.R...), c.O...) {
			bound[term.Wire] = true
		}
	}
	for i := 0; i < NbWires; i++ {
		require.True(t, bound[i], "wire %d unbound", i)
	}
}

// The hand-written rows must agree with the gnark frontend's view of the
// same relation on every assignment.
func TestMatchesFrontendCircuit(t *testing.T) {
	assert := test.NewAssert(t)

	cases := []struct {
		a, b, c uint64
		ok      bool
	}{
		{7, 8, 56, true},
		{3, 0, 0, true},
		{12, 12, 144, true},
		{7, 8, 57, false},
		{1, 2, 0, false},
	}

	for _, tc := range cases {
		assignment := &MulCircuit{A: tc.a, B: tc.b, Product: tc.c}
		err := test.IsSolved(&MulCircuit{}, assignment, ecc.BN254.ScalarField())
		if tc.ok {
			assert.NoError(err)
		} else {
			assert.Error(err)
		}
		assert.Equal(tc.ok, NewWitness(tc.a, tc.b, tc.c).IsSatisfied())
	}
}
