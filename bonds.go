/*
 * bonds.go, part of mdprep.
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
	"fmt"
	"strings"
)

// BondOrder is the multiplicity (or type) of a bond.
type BondOrder int

const (
	Single BondOrder = iota + 1
	Double
	Triple
	Aromatic
	Hydrogen
)

func (B BondOrder) String() string {
	switch B {
	case Single:
		return "single"
	case Double:
		return "double"
	case Triple:
		return "triple"
	case Aromatic:
		return "aromatic"
	case Hydrogen:
		return "hydrogen"
	}
	return "unknown"
}

// ParseBondOrder reads a bond order from its name or its number.
func ParseBondOrder(s string) (BondOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "1", "s", "single":
		return Single, nil
	case "2", "d", "double":
		return Double, nil
	case "3", "t", "triple":
		return Triple, nil
	case "ar", "a", "aromatic", "1.5":
		return Aromatic, nil
	case "h", "hbond", "hydrogen":
		return Hydrogen, nil
	}
	return 0, fmt.Errorf("unknown bond order %q", s)
}

// Bond represents a chemical bond between the atoms with indexes At1 and At2
// in a Topology. Bonds are undirected for lookup purposes.
type Bond struct {
	At1, At2 int
	Order    BondOrder
}

// Cross returns the atom bonded to the index given through the receiver bond,
// or -1 if the index is not part of the bond.
func (B *Bond) Cross(i int) int {
	switch i {
	case B.At1:
		return B.At2
	case B.At2:
		return B.At1
	}
	return -1
}

// Key returns the canonical (min,max) pair for the bond.
func (B *Bond) Key() [2]int {
	return Pair(B.At1, B.At2)
}

// Pair returns the index pair i,j in canonical (min,max) order.
func Pair(i, j int) [2]int {
	if i < j {
		return [2]int{i, j}
	}
	return [2]int{j, i}
}

// BondsOf returns the indexes, in bonds, of all the bonds that
// include the atom with index i.
func BondsOf(bonds []*Bond, i int) []int {
	ret := make([]int, 0, 4)
	for j, b := range bonds {
		if b.At1 == i || b.At2 == i {
			ret = append(ret, j)
		}
	}
	return ret
}
