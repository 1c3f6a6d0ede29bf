/*
 * recipe.go, part of mdprep.
 *
 * Copyright 2025 Raul Mera A. (rmeraaatacademicosdotutadotcl)
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

package sidechain

import (
	"fmt"

	chem "github.com/rmera/mdprep"
	"gonum.org/v1/gonum/spatial/r3"
)

// Torsion is the dihedral angle used to place an atom. It is either
// one of the residue's chi angles or a fixed value.
type Torsion struct {
	Chi   int //1-based index into the residue's chi angles. 0 means Value is used.
	Value float64
}

func chi(n int) Torsion { return Torsion{Chi: n} }

func fixed(v float64) Torsion { return Torsion{Value: v} }

// Angle returns the torsion value for the chi angles given.
func (T Torsion) Angle(chis []float64) (float64, error) {
	if T.Chi == 0 {
		return T.Value, nil
	}
	if T.Chi > len(chis) {
		return 0, chem.NewError(chem.ErrMissingChi, "Torsion.Angle", "chi %d requested, %d given", T.Chi, len(chis))
	}
	return chis[T.Chi-1], nil
}

// Step is one application of PlaceAtom. Atoms are referred to by name.
// The backbone atoms "N" and "CA" are always available, and "CA" carries
// the backbone orientation.
type Step struct {
	Name       string //atom placed
	Orient     string //atom whose orientation is used. Usually the same as Prev.
	BondIn     r3.Vec
	BondOut    r3.Vec
	Torsion    Torsion
	Prev       string
	TwoBack    string
	BondToThis r3.Vec
	Length     float64
}

// st builds a step whose orientation comes from the previous atom.
func st(name string, in, out r3.Vec, t Torsion, prev, twoBack string, this r3.Vec, length float64) Step {
	return Step{Name: name, Orient: prev, BondIn: in, BondOut: out, Torsion: t, Prev: prev, TwoBack: twoBack, BondToThis: this, Length: length}
}

// Recipe is the ordered list of steps that places the side chain (and
// the remaining alpha hydrogen, for glycine) of a residue type.
type Recipe struct {
	AA    chem.AminoAcid
	Steps []Step
}

// NChi returns the number of chi angles the recipe needs.
func (R *Recipe) NChi() int {
	n := 0
	for _, s := range R.Steps {
		if s.Torsion.Chi > n {
			n = s.Torsion.Chi
		}
	}
	return n
}

// Names returns the names of the atoms placed by the recipe, in order.
func (R *Recipe) Names() []string {
	ret := make([]string, 0, len(R.Steps))
	for _, s := range R.Steps {
		ret = append(ret, s.Name)
	}
	return ret
}

// PlacedAtom is an atom position produced by a recipe, with the
// orientation the atom was given.
type PlacedAtom struct {
	Name        string
	Pos         r3.Vec
	Orientation chem.Orientation
}

// Placed is the output of a recipe: the placed atoms, in recipe order.
type Placed struct {
	AA    chem.AminoAcid
	Atoms []PlacedAtom
}

// Pos returns the position of the atom with the given name, and
// false if the atom was not placed.
func (P *Placed) Pos(name string) (r3.Vec, bool) {
	for _, v := range P.Atoms {
		if v.Name == name {
			return v.Pos, true
		}
	}
	return r3.Vec{}, false
}

// Run executes the recipe from the backbone frame, with the chi angles
// (radians) given. It fails with chem.ErrMissingChi if fewer chi angles than
// the recipe needs are given. Extra chi angles are ignored.
func (R *Recipe) Run(bb Backbone, chis []float64) (*Placed, error) {
	if n := R.NChi(); len(chis) < n {
		return nil, chem.NewError(chem.ErrMissingChi, "Recipe.Run", "%s needs %d chi angles, got %d", R.AA, n, len(chis))
	}
	pos := map[string]r3.Vec{"N": bb.N, "CA": bb.CA}
	or := map[string]chem.Orientation{"CA": bb.CAOrientation}
	ret := &Placed{AA: R.AA, Atoms: make([]PlacedAtom, 0, len(R.Steps))}
	for i, s := range R.Steps {
		o, ok1 := or[s.Orient]
		prev, ok2 := pos[s.Prev]
		twoBack, ok3 := pos[s.TwoBack]
		if !ok1 || !ok2 || !ok3 {
			//only a broken table can get here.
			panic(fmt.Sprintf("sidechain: %s step %d (%s) refers to an atom not yet placed", R.AA, i, s.Name))
		}
		angle, err := s.Torsion.Angle(chis)
		if err != nil {
			return nil, chem.ErrDecorate(err, "Recipe.Run")
		}
		p, no := PlaceAtom(o, s.BondIn, s.BondOut, angle, prev, twoBack, s.BondToThis, s.Length)
		pos[s.Name] = p
		or[s.Name] = no
		ret.Atoms = append(ret.Atoms, PlacedAtom{Name: s.Name, Pos: p, Orientation: no})
	}
	return ret, nil
}
