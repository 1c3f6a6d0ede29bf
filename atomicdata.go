/*
 * atomicdata.go, part of mdprep.
 *
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 *
 * goChem is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package chem

import (
	"fmt"
	"strings"
	"unicode"
)

//A map for assigning mass to elements.
//Note that just common "bio-elements" are present
var symbolMass = map[string]float64{
	"H":  1.0,
	"C":  12.01,
	"O":  16.00,
	"N":  14.01,
	"P":  30.97,
	"S":  32.06,
	"Se": 78.96,
	"K":  39.1,
	"Ca": 40.08,
	"Mg": 24.30,
	"Cl": 35.45,
	"Na": 22.99,
	"Cu": 63.55,
	"Zn": 65.38,
	"Co": 58.93,
	"Fe": 55.84,
	"Mn": 54.94,
	"Cr": 51.996,
	"Si": 28.08,
	"Be": 9.012,
	"F":  18.998,
	"Br": 79.904,
	"I":  126.90,
}

//A map for checking that atoms don't
//have too many bonds. A value of 0 means
//undefined, i.e. that this atom shouldn't
//be checked for max bonds. I decided not to define it
var symbolMaxBonds = map[string]int{
	"H":  1, //this is the only one truly important.
	"C":  4, //the sp3 radius
	"O":  2,
	"N":  0, //undefined
	"P":  0,
	"S":  0,
	"Se": 0,
	"Be": 0,
	"F":  1,
	"Br": 1,
	"I":  1,
}

// ElementMass returns the mass for the element with the given symbol,
// and false if the element is not in the table.
func ElementMass(symbol string) (float64, bool) {
	m, ok := symbolMass[symbol]
	return m, ok
}

// SymbolFromName guesses the element symbol from a PDB-style atom name,
// i.e. "CA" is a carbon, "HB2" a hydrogen, "SE" a selenium. Only the
// two-letter symbols present in the element tables are recognized, and only
// for names that are exactly that symbol.
func SymbolFromName(name string) string {
	name = strings.TrimLeftFunc(strings.TrimSpace(name), unicode.IsDigit)
	if name == "" {
		return ""
	}
	if len(name) == 2 {
		two := strings.ToUpper(name[:1]) + strings.ToLower(name[1:])
		if _, ok := symbolMass[two]; ok && two != "Ca" && two != "Co" && two != "Cr" && two != "Na" {
			return two
		}
	}
	return strings.ToUpper(name[:1])
}

// CheckValence returns an error if an atom in the topology has more bonds
// than allowed for its element.
func (T *Topology) CheckValence() error {
	count := make([]int, T.Len())
	for _, b := range T.Bonds {
		if b.Order == Hydrogen {
			continue
		}
		count[b.At1]++
		count[b.At2]++
	}
	for i, a := range T.Atoms {
		max := symbolMaxBonds[a.Symbol]
		if max > 0 && count[i] > max {
			return fmt.Errorf("atom %s has %d bonds, more than the %d allowed", a, count[i], max)
		}
	}
	return nil
}
