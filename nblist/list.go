/*
 * list.go, part of mdprep.
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

package nblist

import (
	"math"

	chem "github.com/rmera/mdprep"
	v3 "github.com/rmera/mdprep/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Default nonbonded cutoff and Verlet skin, in A.
const (
	DefaultCutoff = 10.0
	DefaultSkin   = 2.0
)

// List is a Verlet neighbor list. Two atoms are neighbors if their minimum-image
// distance is under cutoff+skin. The list is symmetric, and each atom's neighbors
// are in ascending order. The list also keeps track of how much the atoms have
// moved since it was built.
type List struct {
	Cutoff float64
	Skin   float64
	box    *Box
	neigh  [][]int
	ref    []r3.Vec //positions at the last build
	maxd2  float64  //largest squared displacement since the last build
}

// Build returns the neighbor list for the coordinates given, in the box B.
func Build(coords *v3.Matrix, B *Box, cutoff, skin float64) *List {
	L := &List{Cutoff: cutoff, Skin: skin, box: B}
	L.Rebuild(coords)
	return L
}

// Rebuild recomputes the neighbors from the coordinates given, and resets the
// displacement tracking. The number of atoms can change.
func (L *List) Rebuild(coords *v3.Matrix) {
	n := 0
	if coords != nil {
		n = coords.NVecs()
	}
	L.ref = make([]r3.Vec, n)
	for i := range L.ref {
		L.ref[i] = coords.Vec(i)
	}
	L.neigh = make([][]int, n)
	c2 := (L.Cutoff + L.Skin) * (L.Cutoff + L.Skin)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := r3.Sub(L.ref[j], L.ref[i])
			if L.box != nil {
				d = L.box.MinImage(d)
			}
			if r3.Norm2(d) < c2 {
				L.neigh[i] = append(L.neigh[i], j)
				L.neigh[j] = append(L.neigh[j], i)
			}
		}
	}
	L.maxd2 = 0
}

// Len returns the number of atoms in the list.
func (L *List) Len() int {
	return len(L.neigh)
}

// Of returns the neighbors of the ith atom. The slice shouldn't be modified.
func (L *List) Of(i int) []int {
	return L.neigh[i]
}

// Pairs returns the number of neighbor pairs in the list.
func (L *List) Pairs() int {
	n := 0
	for _, v := range L.neigh {
		n += len(v)
	}
	return n / 2
}

// Are returns true if i and j are neighbors.
func (L *List) Are(i, j int) bool {
	for _, v := range L.neigh[i] {
		if v == j {
			return true
		}
		if v > j {
			break
		}
	}
	return false
}

// Update registers new coordinates for the atoms, and returns the largest displacement
// of any atom since the list was built.
func (L *List) Update(coords *v3.Matrix) (float64, error) {
	if coords.NVecs() != len(L.ref) {
		return 0, chem.NewError(nil, "nblist.Update", "list built for %d atoms, got %d", len(L.ref), coords.NVecs())
	}
	for i, v := range L.ref {
		d2 := r3.Norm2(r3.Sub(coords.Vec(i), v))
		if d2 > L.maxd2 {
			L.maxd2 = d2
		}
	}
	return math.Sqrt(L.maxd2), nil
}

// MaxDisplacement returns the largest displacement registered by Update since the list
// was built.
func (L *List) MaxDisplacement() float64 {
	return math.Sqrt(L.maxd2)
}

// NeedsRebuild returns true if any atom has moved more than half the skin since the
// list was built, in which case some pair within the cutoff could be missing from
// the list.
func (L *List) NeedsRebuild() bool {
	h := L.Skin / 2
	return L.maxd2 > h*h
}

// Displacements returns the distance each atom in coords is from its position when
// the list was last built.
func (L *List) Displacements(coords *v3.Matrix) ([]float64, error) {
	if coords.NVecs() != len(L.ref) {
		return nil, chem.NewError(nil, "nblist.Displacements", "list built for %d atoms, got %d", len(L.ref), coords.NVecs())
	}
	ret := make([]float64, len(L.ref))
	for i, v := range L.ref {
		ret[i] = r3.Norm(r3.Sub(coords.Vec(i), v))
	}
	return ret, nil
}
