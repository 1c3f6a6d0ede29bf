/*
 * keyed.go, part of mdprep.
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

package ff

import (
	"maps"
)

// Wildcard is the type label that matches any atom type in dihedral and improper keys.
const Wildcard = "X"

// VdW contains the Lennard-Jones parameters for an atom type.
// Sigma is in A, Eps in kcal/mol.
type VdW struct {
	Sigma float64
	Eps   float64
}

// BondParam is a harmonic bond, V=K(r-R0)^2. K is in kcal/(mol A^2), R0 in A.
type BondParam struct {
	K  float64
	R0 float64
}

// AngleParam is a harmonic angle, V=K(theta-Theta0)^2. K is in kcal/(mol rad^2), Theta0 in radians.
type AngleParam struct {
	K      float64
	Theta0 float64
}

// DihedralParam is one Fourier term of a dihedral, V=(Barrier/Divider)(1+cos(Periodicity*phi - Phase)).
// Barrier is in kcal/mol and Phase in radians.
type DihedralParam struct {
	Barrier     float64
	Periodicity int
	Phase       float64
	Divider     int
}

// Keyed is a force-field parameter table, where parameters are accessed by atom type
// or tuples of atom types. Proper and improper dihedrals are kept apart. A dihedral
// key can have several Fourier terms.
type Keyed struct {
	Mass      map[string]float64
	VdW       map[string]VdW
	Bonds     map[[2]string]BondParam
	Angles    map[[3]string]AngleParam
	Dihedrals map[[4]string][]DihedralParam
	Impropers map[[4]string][]DihedralParam
}

// NewKeyed returns an empty, ready to use, parameter table.
func NewKeyed() *Keyed {
	return &Keyed{
		Mass:      make(map[string]float64),
		VdW:       make(map[string]VdW),
		Bonds:     make(map[[2]string]BondParam),
		Angles:    make(map[[3]string]AngleParam),
		Dihedrals: make(map[[4]string][]DihedralParam),
		Impropers: make(map[[4]string][]DihedralParam),
	}
}

// Copy returns a deep copy of the receiver.
func (K *Keyed) Copy() *Keyed {
	r := &Keyed{
		Mass:      maps.Clone(K.Mass),
		VdW:       maps.Clone(K.VdW),
		Bonds:     maps.Clone(K.Bonds),
		Angles:    maps.Clone(K.Angles),
		Dihedrals: make(map[[4]string][]DihedralParam, len(K.Dihedrals)),
		Impropers: make(map[[4]string][]DihedralParam, len(K.Impropers)),
	}
	//maps.Clone returns nil for nil maps
	if r.Mass == nil {
		r.Mass = make(map[string]float64)
	}
	if r.VdW == nil {
		r.VdW = make(map[string]VdW)
	}
	if r.Bonds == nil {
		r.Bonds = make(map[[2]string]BondParam)
	}
	if r.Angles == nil {
		r.Angles = make(map[[3]string]AngleParam)
	}
	for k, v := range K.Dihedrals {
		r.Dihedrals[k] = append([]DihedralParam(nil), v...)
	}
	for k, v := range K.Impropers {
		r.Impropers[k] = append([]DihedralParam(nil), v...)
	}
	return r
}

// Len returns the total number of entries in the table.
func (K *Keyed) Len() int {
	return len(K.Mass) + len(K.VdW) + len(K.Bonds) + len(K.Angles) + len(K.Dihedrals) + len(K.Impropers)
}

// Merge returns a new table with all the entries of generic, and the entries of specific
// added. Where both tables have an entry for a key, the one in specific is used.
// specific can be nil. Neither argument is modified.
func Merge(generic, specific *Keyed) *Keyed {
	m := generic.Copy()
	if specific == nil {
		return m
	}
	maps.Copy(m.Mass, specific.Mass)
	maps.Copy(m.VdW, specific.VdW)
	maps.Copy(m.Bonds, specific.Bonds)
	maps.Copy(m.Angles, specific.Angles)
	for k, v := range specific.Dihedrals {
		m.Dihedrals[k] = append([]DihedralParam(nil), v...)
	}
	for k, v := range specific.Impropers {
		m.Impropers[k] = append([]DihedralParam(nil), v...)
	}
	return m
}

// Bond returns the parameters for a bond between atoms of types a and b,
// in any order.
func (K *Keyed) Bond(a, b string) (BondParam, bool) {
	if p, ok := K.Bonds[[2]string{a, b}]; ok {
		return p, true
	}
	p, ok := K.Bonds[[2]string{b, a}]
	return p, ok
}

// Angle returns the parameters for the angle a-b-c, with b as the vertex,
// trying both orders.
func (K *Keyed) Angle(a, b, c string) (AngleParam, bool) {
	if p, ok := K.Angles[[3]string{a, b, c}]; ok {
		return p, true
	}
	p, ok := K.Angles[[3]string{c, b, a}]
	return p, ok
}

// Dihedral returns the terms for the proper dihedral a-b-c-d. The exact key is tried
// in both directions, then the keys with wildcards in the outer positions.
func (K *Keyed) Dihedral(a, b, c, d string) ([]DihedralParam, bool) {
	X := Wildcard
	for _, k := range [][4]string{{a, b, c, d}, {d, c, b, a}, {X, b, c, X}, {X, c, b, X}} {
		if p, ok := K.Dihedrals[k]; ok {
			return p, true
		}
	}
	return nil, false
}

// Improper returns the terms for the improper dihedral a-center-c-d. The key is not
// reordered. After the exact key, wildcards are tried in the first, then the last,
// then both outer positions.
func (K *Keyed) Improper(a, center, c, d string) ([]DihedralParam, bool) {
	X := Wildcard
	for _, k := range [][4]string{{a, center, c, d}, {X, center, c, d}, {a, center, c, X}, {X, center, c, X}} {
		if p, ok := K.Impropers[k]; ok {
			return p, true
		}
	}
	return nil, false
}
