/*
 * place.go, part of mdprep.
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
	"math"

	chem "github.com/rmera/mdprep"
	v3 "github.com/rmera/mdprep/v3"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

// Backbone contains what the recipes need from the backbone: the positions of
// the alpha carbon and the amide nitrogen, and the orientation of the alpha carbon.
type Backbone struct {
	CA            r3.Vec
	N             r3.Vec
	CAOrientation chem.Orientation
}

// BackboneFrame builds the Backbone for a residue from the positions of its N, CA and
// C atoms. The alpha carbon orientation takes TetraA to the CA-N bond and puts TetraB
// in the N-CA-C plane, on the side of the C atom. With that, CAlphaRBond points where
// the beta carbon of an L amino acid goes, and TetraD to the alpha hydrogen.
func BackboneFrame(n, ca, c r3.Vec) Backbone {
	nb := r3.Unit(r3.Sub(n, ca))
	O := chem.OrientationBetween(chem.TetraA, nb)
	cp := perpendicular(r3.Sub(c, ca), nb)
	dp := perpendicular(O.Rotate(chem.TetraB), nb)
	if r3.Norm(cp) > 1e-9 && r3.Norm(dp) > 1e-9 {
		theta := math.Atan2(r3.Dot(nb, r3.Cross(dp, cp)), r3.Dot(dp, cp))
		O = O.Then(chem.NewOrientation(theta, nb))
	}
	return Backbone{CA: ca, N: n, CAOrientation: O}
}

// perpendicular returns the component of v perpendicular to the unit vector u.
func perpendicular(v, u r3.Vec) r3.Vec {
	return r3.Sub(v, r3.Scale(r3.Dot(v, u), u))
}

// Place runs the recipe for the amino acid aa from the backbone frame bb, with the
// given chi angles, in radians.
func Place(aa chem.AminoAcid, bb Backbone, chis []float64) (*Placed, error) {
	r, err := RecipeFor(aa)
	if err != nil {
		return nil, chem.ErrDecorate(err, "Place")
	}
	p, err := r.Run(bb, chis)
	if err != nil {
		return nil, chem.ErrDecorate(err, "Place")
	}
	return p, nil
}

// residueFrame gets the backbone frame of the residue with index resIdx in T from coords.
func residueFrame(T *chem.Topology, coords *v3.Matrix, resIdx int) (Backbone, error) {
	R := T.Residues[resIdx]
	idx := [3]int{R.AtomIndex(T, "N"), R.AtomIndex(T, "CA"), R.AtomIndex(T, "C")}
	for i, v := range idx {
		if v < 0 {
			return Backbone{}, chem.NewError(nil, "residueFrame", "residue %d (%s) lacks backbone atom %s", resIdx, R.Name, [3]string{"N", "CA", "C"}[i])
		}
	}
	return BackboneFrame(coords.Vec(idx[0]), coords.Vec(idx[1]), coords.Vec(idx[2])), nil
}

// placeResidue computes the side chain of the residue resIdx without writing it anywhere.
func placeResidue(T *chem.Topology, coords *v3.Matrix, resIdx int) (*Placed, error) {
	R := T.Residues[resIdx]
	if R.Kind != chem.AminoAcidResidue {
		return nil, chem.NewError(nil, "placeResidue", "residue %d (%s) is not an amino acid", resIdx, R.Name)
	}
	bb, err := residueFrame(T, coords, resIdx)
	if err != nil {
		return nil, err
	}
	p, err := Place(R.AA, bb, R.Chi)
	if err != nil {
		return nil, chem.ErrDecorate(err, "placeResidue")
	}
	return p, nil
}

// write puts the placed positions in the rows of coords that correspond to the atoms of
// residue resIdx with the same names. It returns how many atoms were written. Placed atoms
// with no counterpart in the residue are ignored.
func (P *Placed) write(T *chem.Topology, coords *v3.Matrix, resIdx int) int {
	R := T.Residues[resIdx]
	n := 0
	for _, a := range P.Atoms {
		if i := R.AtomIndex(T, a.Name); i >= 0 {
			coords.SetVec(i, a.Pos)
			n++
		}
	}
	return n
}

// PlaceResidue places the side chain of the amino-acid residue with index resIdx in T,
// using its chi angles and the backbone (N, CA, C) positions in coords, and writes the
// new positions to coords. It returns the number of atoms written.
func PlaceResidue(T *chem.Topology, coords *v3.Matrix, resIdx int) (int, error) {
	p, err := placeResidue(T, coords, resIdx)
	if err != nil {
		return 0, chem.ErrDecorate(err, "PlaceResidue")
	}
	return p.write(T, coords, resIdx), nil
}

// PlaceAll places the side chains of all the amino-acid residues in T, using up to
// workers goroutines, and writes the results to coords. Residues are independent, so
// they are computed concurrently and only written once all of them have been placed.
// On error nothing is written, and the first error encountered is returned.
func PlaceAll(T *chem.Topology, coords *v3.Matrix, workers int) (int, error) {
	if workers < 1 {
		workers = 1
	}
	todo := make([]int, 0, len(T.Residues))
	for i, r := range T.Residues {
		if r.Kind == chem.AminoAcidResidue {
			todo = append(todo, i)
		}
	}
	placed := make([]*Placed, len(todo))
	var g errgroup.Group
	g.SetLimit(workers)
	for j, r := range todo {
		j, r := j, r
		g.Go(func() error {
			p, err := placeResidue(T, coords, r)
			if err != nil {
				return err
			}
			placed[j] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, chem.ErrDecorate(err, "PlaceAll")
	}
	n := 0
	for j, p := range placed {
		n += p.write(T, coords, todo[j])
	}
	return n, nil
}
