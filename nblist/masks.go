/*
 * masks.go, part of mdprep.
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
	"sort"

	chem "github.com/rmera/mdprep"
	"github.com/rmera/mdprep/ff"
)

// PairSet is a set of atom index pairs. Pairs are stored in (min,max) order,
// so the order in which the indexes are given doesn't matter.
type PairSet map[[2]int]struct{}

// Add adds the pair i,j to the set.
func (P PairSet) Add(i, j int) {
	P[chem.Pair(i, j)] = struct{}{}
}

// Has returns true if the pair i,j is in the set.
func (P PairSet) Has(i, j int) bool {
	_, ok := P[chem.Pair(i, j)]
	return ok
}

// Remove deletes the pair i,j from the set, if present.
func (P PairSet) Remove(i, j int) {
	delete(P, chem.Pair(i, j))
}

// Len returns the number of pairs in the set.
func (P PairSet) Len() int {
	return len(P)
}

// Sorted returns the pairs in the set, sorted by their first, then second, index.
func (P PairSet) Sorted() [][2]int {
	ret := make([][2]int, 0, len(P))
	for k := range P {
		ret = append(ret, k)
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i][0] != ret[j][0] {
			return ret[i][0] < ret[j][0]
		}
		return ret[i][1] < ret[j][1]
	})
	return ret
}

// BuildMasks returns the pairs of atoms whose nonbonded interactions are excluded,
// and those for which they are scaled, from the bonded terms in I. Bonded (1-2) atoms
// and the ends of angles (1-3) are excluded, the ends of dihedrals (1-4) are scaled.
// A pair that is both 1-4 and 1-2 or 1-3, as in small rings, is only in scaled14.
func BuildMasks(I *ff.Indexed) (excluded, scaled14 PairSet) {
	excluded = make(PairSet, len(I.Bonds)+len(I.Angles))
	scaled14 = make(PairSet, len(I.Dihedrals))
	for k := range I.Bonds {
		excluded.Add(k[0], k[1])
	}
	for k := range I.Angles {
		excluded.Add(k[0], k[2])
	}
	for k := range I.Dihedrals {
		scaled14.Add(k[0], k[3])
	}
	for k := range scaled14 {
		delete(excluded, k)
	}
	return excluded, scaled14
}
