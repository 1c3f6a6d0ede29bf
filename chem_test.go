/*
 * chem_test.go, part of mdprep.
 *
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chem

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	_ Atomer = (*Topology)(nil)
	_ Masser = (*Topology)(nil)
	_ Error  = CError{}
)

func vecDelta(Te *testing.T, want, got r3.Vec, delta float64, msg ...any) {
	Te.Helper()
	assert.InDelta(Te, 0, r3.Norm(r3.Sub(want, got)), delta, msg...)
}

func TestDihedral(Te *testing.T) {
	a, b, c := r3.Vec{Y: 1}, r3.Vec{}, r3.Vec{X: 1}
	for _, t := range []float64{0, 1e-9, -1e-9, 0.3, 1.2, -2.5, math.Pi - 1e-7, -math.Pi + 1e-7, math.Pi} {
		s, co := math.Sincos(t)
		d := r3.Vec{X: 1, Y: co, Z: s}
		got := Dihedral(a, b, c, d)
		assert.InDelta(Te, 0, WrapAngle(got-t), 1e-9, "dihedral %v", t)
		//only directions matter
		got = BondDihedral(r3.Scale(3, r3.Sub(b, a)), r3.Scale(0.2, r3.Sub(c, b)), r3.Sub(d, c))
		assert.InDelta(Te, 0, WrapAngle(got-t), 1e-9, "scaled dihedral %v", t)
	}
	assert.InDelta(Te, math.Pi, WrapAngle(-math.Pi), 1e-12)
	assert.InDelta(Te, -math.Pi/2, WrapAngle(3*math.Pi/2), 1e-12)
}

func TestAngle(Te *testing.T) {
	tetra := math.Acos(-1.0 / 3.0)
	set := []r3.Vec{TetraA, TetraB, TetraC, TetraD}
	for i := range set {
		assert.InDelta(Te, 1, r3.Norm(set[i]), 1e-12)
		for j := i + 1; j < len(set); j++ {
			assert.InDelta(Te, tetra, Angle(set[i], set[j]), 1e-9)
		}
	}
	assert.InDelta(Te, 2*math.Pi/3, Angle(Planar3B, Planar3C), 1e-9)
	assert.InDelta(Te, 108*math.Pi/180, Angle(RingBondIn, Ring5BondOut), 1e-9)
	assert.Equal(Te, 0.0, Angle(r3.Vec{}, TetraA))
}

func TestOrientation(Te *testing.T) {
	z := r3.Vec{Z: 1}
	O := NewOrientation(math.Pi/2, r3.Scale(4, z))
	vecDelta(Te, r3.Vec{Y: 1}, O.Rotate(r3.Vec{X: 1}), 1e-12)
	vecDelta(Te, r3.Vec{X: -1}, O.Then(O).Rotate(r3.Vec{X: 1}), 1e-12)
	vecDelta(Te, r3.Vec{X: 1}, O.Then(O.Inverse()).Rotate(r3.Vec{X: 1}), 1e-12)
	//Then applies the receiver first
	P := NewOrientation(math.Pi/2, r3.Vec{X: 1})
	vecDelta(Te, P.Rotate(O.Rotate(r3.Vec{X: 1})), O.Then(P).Rotate(r3.Vec{X: 1}), 1e-12)
	vecDelta(Te, TetraB, Identity().Rotate(TetraB), 0)
	vecDelta(Te, TetraB, NewOrientation(1, r3.Vec{}).Rotate(TetraB), 0)

	for _, to := range []r3.Vec{TetraB, TetraD, r3.Unit(r3.Vec{X: 1, Y: 2, Z: -3}), r3.Scale(-1, TetraA)} {
		vecDelta(Te, to, OrientationBetween(TetraA, to).Rotate(TetraA), 1e-9, "to %v", to)
	}
}

func TestRotateAbout(Te *testing.T) {
	p := RotateAbout(r3.Vec{X: 1, Y: 1}, r3.Vec{Y: 1}, r3.Vec{Y: 1, Z: 1}, math.Pi)
	vecDelta(Te, r3.Vec{X: -1, Y: 1}, p, 1e-12)
	//points on the axis don't move
	p = RotateAbout(r3.Vec{Y: 1, Z: 5}, r3.Vec{Y: 1}, r3.Vec{Y: 1, Z: 1}, 0.7)
	vecDelta(Te, r3.Vec{Y: 1, Z: 5}, p, 1e-12)
}

func water(Te *testing.T) *Topology {
	ats := []*Atom{NewAtom("O", "O"), NewAtom("H1", "H"), NewAtom("H2", "H"), NewAtom("X", "Xx")}
	ats[3].Mass = 3
	bonds := []*Bond{{At1: 0, At2: 1, Order: Single}, {At1: 2, At2: 0, Order: Single}}
	T, err := NewTopology(ats, bonds, []*Residue{NewResidue("HOH", 1, []int{0, 1, 2})})
	require.NoError(Te, err)
	return T
}

func TestTopology(Te *testing.T) {
	T := water(Te)
	assert.Equal(Te, 4, T.Len())
	assert.Equal(Te, 0, T.Atom(2).Residue)
	assert.Equal(Te, -1, T.Atom(3).Residue)
	assert.Nil(Te, T.ResidueOf(3))
	R := T.ResidueOf(1)
	require.NotNil(Te, R)
	assert.Equal(Te, WaterResidue, R.Kind)
	assert.Equal(Te, 2, R.AtomIndex(T, "H2"))
	assert.Equal(Te, -1, R.AtomIndex(T, "X"))
	assert.Panics(Te, func() { T.Atom(4) })

	m, err := T.Masses()
	require.NoError(Te, err)
	assert.Equal(Te, []float64{16, 1, 1, 3}, m)
	T.Atoms[3].Mass = 0
	_, err = T.Masses()
	assert.Error(Te, err)
	em, ok := ElementMass("Se")
	assert.True(Te, ok)
	assert.Equal(Te, 78.96, em)

	S := T.Subset([]int{2, 0})
	require.Equal(Te, 2, S.Len())
	require.Len(Te, S.Bonds, 1)
	assert.Equal(Te, [2]int{0, 1}, S.Bonds[0].Key())
	assert.Equal(Te, "H2", S.Atoms[0].Name)
	S.Atoms[0].Name = "HW"
	assert.Equal(Te, "H2", T.Atoms[2].Name, "subsets copy the atoms")

	_, err = NewTopology(nil, nil, nil)
	assert.Error(Te, err)
	_, err = NewTopology(T.Atoms, []*Bond{{At1: 1, At2: 1}}, nil)
	assert.Error(Te, err)
	_, err = NewTopology(T.Atoms, []*Bond{{At1: 1, At2: 4}}, nil)
	assert.Error(Te, err)
	_, err = NewTopology(T.Atoms, nil, []*Residue{NewResidue("ALA", 1, []int{5})})
	assert.Error(Te, err)
}

func TestValence(Te *testing.T) {
	T := water(Te)
	assert.NoError(Te, T.CheckValence())
	T.Bonds = append(T.Bonds, &Bond{At1: 1, At2: 3, Order: Hydrogen})
	assert.NoError(Te, T.CheckValence(), "hydrogen bonds don't count")
	T.Bonds = append(T.Bonds, &Bond{At1: 1, At2: 2, Order: Single})
	assert.Error(Te, T.CheckValence())
}

func TestBonds(Te *testing.T) {
	for s, want := range map[string]BondOrder{"": Single, "1": Single, "Double": Double, " t ": Triple, "1.5": Aromatic, "ar": Aromatic, "hbond": Hydrogen} {
		o, err := ParseBondOrder(s)
		require.NoError(Te, err, s)
		assert.Equal(Te, want, o, s)
		back, err := ParseBondOrder(o.String())
		require.NoError(Te, err)
		assert.Equal(Te, o, back)
	}
	_, err := ParseBondOrder("4")
	assert.Error(Te, err)
	assert.Equal(Te, "unknown", BondOrder(0).String())

	bonds := []*Bond{{At1: 3, At2: 1}, {At1: 1, At2: 2}, {At1: 4, At2: 5}}
	assert.Equal(Te, []int{0, 1}, BondsOf(bonds, 1))
	assert.Equal(Te, 3, bonds[0].Cross(1))
	assert.Equal(Te, -1, bonds[0].Cross(2))
	assert.Equal(Te, [2]int{1, 3}, bonds[0].Key())
	assert.Equal(Te, Pair(7, 2), Pair(2, 7))
}

func TestAminoAcid(Te *testing.T) {
	aa, err := ParseAminoAcid(" hid")
	require.NoError(Te, err)
	assert.Equal(Te, Hid, aa)
	assert.Equal(Te, His, aa.Standard())
	assert.True(Te, aa.IsVariant())
	assert.False(Te, Trp.IsVariant())
	assert.Equal(Te, byte('H'), aa.OneLetter())
	assert.Equal(Te, "HID", aa.String())
	assert.Equal(Te, "UNK", NoAA.String())
	_, err = ParseAminoAcid("XYZ")
	assert.Error(Te, err)

	assert.Equal(Te, AminoAcidResidue, NewResidue("cyx", 1, nil).Kind)
	assert.Equal(Te, Cyx, NewResidue("cyx", 1, nil).AA)
	assert.Equal(Te, WaterResidue, NewResidue("WAT", 1, nil).Kind)
	assert.Equal(Te, OtherResidue, NewResidue("LIG", 1, nil).Kind)
}

func TestSymbolFromName(Te *testing.T) {
	for name, want := range map[string]string{"CA": "C", "HB2": "H", "SE": "Se", "CL": "Cl", "1HB": "H", "FE": "Fe", " N ": "N", "": ""} {
		assert.Equal(Te, want, SymbolFromName(name), name)
	}
}

func TestErrors(Te *testing.T) {
	err := NewError(ErrMissingChi, "sidechain.Place", "residue %d", 3)
	assert.True(Te, errors.Is(err, ErrMissingChi))
	assert.Contains(Te, err.Error(), "residue 3")
	dec := ErrDecorate(err, "prep.New")
	assert.True(Te, errors.Is(dec, ErrMissingChi))
	var ce CError
	require.True(Te, errors.As(dec, &ce))
	assert.Equal(Te, "sidechain.Place <- prep.New", ce.Stack())
	assert.Equal(Te, ce.Decorate(""), []string{"sidechain.Place", "prep.New"})

	plain := ErrDecorate(fmt.Errorf("disk full: %w", ErrMissingFFSet), "ff.ReadFile")
	assert.True(Te, errors.Is(plain, ErrMissingFFSet))
	assert.Contains(Te, plain.Error(), "ff.ReadFile")
	assert.Nil(Te, ErrDecorate(nil, "x"))
	assert.Equal(Te, "no kind", NewError(nil, "", "no kind").Error())

	assert.True(Te, IsInInt([]int{1, 2, 3}, 2))
	assert.False(Te, IsInInt(nil, 2))
}
