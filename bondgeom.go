/*
 * bondgeom.go, part of mdprep.
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

package chem

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

//Unit bond directions in the local frame of an atom, one set per hybridization
//pattern. In every set, the "A" (or "in") vector points along +Y. These are
//never modified.

const (
	sqrt8o9 = 0.9428090415820634 // sqrt(8/9)
	sqrt2o3 = 0.8164965809277261 // sqrt(2/3)
	sin60   = 0.8660254037844386
)

// sp3: the four vertices of a regular tetrahedron, 109.47 degrees apart.
var (
	TetraA = r3.Vec{X: 0, Y: 1, Z: 0}
	TetraB = r3.Vec{X: sqrt2o3, Y: -1.0 / 3.0, Z: -sqrt8o9 / 2}
	TetraC = r3.Vec{X: -sqrt2o3, Y: -1.0 / 3.0, Z: -sqrt8o9 / 2}
	TetraD = r3.Vec{X: 0, Y: -1.0 / 3.0, Z: sqrt8o9}
)

// sp2: three coplanar directions, 120 degrees apart.
var (
	Planar3A = r3.Vec{X: 0, Y: 1, Z: 0}
	Planar3B = r3.Vec{X: sin60, Y: -0.5, Z: 0}
	Planar3C = r3.Vec{X: -sin60, Y: -0.5, Z: 0}
)

// Ring bonds. RingBondIn and Ring5BondOut form the 108 degree interior
// angle of a regular pentagon. Six-membered rings use the planar set.
var (
	RingBondIn   = r3.Vec{X: 0, Y: 1, Z: 0}
	Ring5BondOut = r3.Vec{X: math.Sin(108 * math.Pi / 180), Y: math.Cos(108 * math.Pi / 180), Z: 0}
)

// Bonds of terminal hydrogens and of oxygen/sulfur atoms. The "out" vectors
// are only used as torsion references for children, so they point to an sp3
// position.
var (
	HBondIn  = r3.Vec{X: 0, Y: 1, Z: 0}
	HBondOut = TetraB
	OBondIn  = r3.Vec{X: 0, Y: 1, Z: 0}
	OBondOut = TetraB
)

// CAlphaRBond is the bond from the alpha carbon to the side chain (the beta
// carbon, or the second alpha hydrogen in glycine), in the alpha carbon frame.
var CAlphaRBond = TetraC

// Bond lengths, in A
const (
	LenSC   = 1.53 //side-chain heavy atom bonds, taken as C(sp3)-C(sp3)
	LenCH   = 1.09
	LenNH   = 1.01
	LenOH   = 0.96
	TauDiv2 = math.Pi
)
