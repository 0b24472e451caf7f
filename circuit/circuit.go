// Package circuit defines the fixed multiplication relation a * b = c as a
// rank-1 constraint system over the BN254 scalar field. The system is a
// compile-time constant: three constraints over four wires, with c the only
// public input and a, b private.
package circuit

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/frontend"
)

// Wire indices. Wire 0 is the constant 1, public wires precede private ones.
const (
	WireOne = iota
	WireProduct
	WireA
	WireB

	NbWires = 4
)

const (
	// NbPublic counts the constant-one wire and the product.
	NbPublic  = 2
	NbPrivate = NbWires - NbPublic

	// NbConstraints is the multiplication constraint plus the two
	// exposure constraints binding a and b into the witness.
	NbConstraints = 3
)

// Term is one coefficient*wire product inside a linear combination.
type Term struct {
	Wire  int
	Coeff fr.Element
}

// Constraint is a single R1CS row: (Σ L) * (Σ R) = (Σ O).
type Constraint struct {
	L, R, O []Term
}

// System returns the constraint rows of the multiplication relation:
//
//	a * b = c
//	a * 1 = a
//	b * 1 = b
//
// Construction never fails; whether a given witness satisfies the rows is
// only decided at proving time.
func System() []Constraint {
	var one fr.Element
	one.SetOne()

	return []Constraint{
		{
			L: []Term{{WireA, one}},
			R: []Term{{WireB, one}},
			O: []Term{{WireProduct, one}},
		},
		{
			L: []Term{{WireA, one}},
			R: []Term{{WireOne, one}},
			O: []Term{{WireA, one}},
		},
		{
			L: []Term{{WireB, one}},
			R: []Term{{WireOne, one}},
			O: []Term{{WireB, one}},
		},
	}
}

// Witness holds the two secret factors and the public product. It exists
// only for the duration of a proving call.
type Witness struct {
	A, B fr.Element

	// Product is the public input c.
	Product fr.Element
}

// NewWitness builds a witness from uint64 inputs, reducing into the field.
func NewWitness(a, b, c uint64) Witness {
	var w Witness
	w.A.SetUint64(a)
	w.B.SetUint64(b)
	w.Product.SetUint64(c)
	return w
}

// Full returns the complete wire assignment in wire-index order.
func (w Witness) Full() [NbWires]fr.Element {
	var one fr.Element
	one.SetOne()
	return [NbWires]fr.Element{WireOne: one, WireProduct: w.Product, WireA: w.A, WireB: w.B}
}

// IsSatisfied reports whether the assignment satisfies every constraint row.
func (w Witness) IsSatisfied() bool {
	full := w.Full()
	for _, c := range System() {
		var l, r, o fr.Element
		accumulate(&l, c.L, full)
		accumulate(&r, c.R, full)
		accumulate(&o, c.O, full)
		l.Mul(&l, &r)
		if !l.Equal(&o) {
			return false
		}
	}
	return true
}

func accumulate(acc *fr.Element, terms []Term, full [NbWires]fr.Element) {
	var t fr.Element
	for _, term := range terms {
		t.Mul(&term.Coeff, &full[term.Wire])
		acc.Add(acc, &t)
	}
}

// MulCircuit is the same relation expressed for the gnark frontend. It is
// the reference shape the hand-written rows above are checked against.
type MulCircuit struct {
	Product frontend.Variable `gnark:",public"`
	A       frontend.Variable
	B       frontend.Variable
}

func (c *MulCircuit) Define(api frontend.API) error {
	api.AssertIsEqual(api.Mul(c.A, c.B), c.Product)
	return nil
}
