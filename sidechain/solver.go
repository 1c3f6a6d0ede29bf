/*
 * solver.go, part of mdprep.
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
	"gonum.org/v1/gonum/spatial/r3"
)

//Tolerance for the re-measured dihedral after the first rotation attempt.
const dihedralTol = 1e-4

// PlaceAtom places an atom bonded to prev, given the orientation of prev (orPrev), the
// local directions of the new atom's bonds toward prev (bondToPrev) and toward its
// next atom (bondToNext), the dihedral angle (radians) that the new atom's next bond
// must form with the bond twoBack-prev, the positions of prev and twoBack, the local
// direction, in the prev frame, of the bond from prev to the new atom (bondToThis)
// and the bond length.
// It returns the position of the new atom and its orientation, which is used to
// place the atoms bonded to it. The function never fails; degenerate inputs give
// a well-defined, if meaningless, result.
func PlaceAtom(orPrev chem.Orientation, bondToPrev, bondToNext r3.Vec, dihedral float64, prev, twoBack, bondToThis r3.Vec, length float64) (r3.Vec, chem.Orientation) {
	world := orPrev.Rotate(bondToThis)
	pos := r3.Add(prev, r3.Scale(length, world))
	prevBond := r3.Sub(prev, twoBack)

	//the new atom's bond back to prev must point opposite to the bond
	//that reaches it.
	align := chem.OrientationBetween(r3.Scale(-1, bondToPrev), world)

	measure := func(o chem.Orientation) float64 {
		return chem.BondDihedral(prevBond, world, o.Rotate(bondToNext))
	}
	dif := dihedral - measure(align)
	final := align.Then(chem.NewOrientation(dif, world))
	if math.Abs(chem.WrapAngle(measure(final)-dihedral)) > dihedralTol {
		final = align.Then(chem.NewOrientation(-dif+2*math.Pi, world))
	}
	return pos, final
}
