/*
 * chem.go, part of mdprep.
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

/**Note: As in gochem, some fundamental methods panic instead of returning errors,
 * mostly when used on a nil object or with out-of-range indexes.**/

// Atom contains the information of an atom, except for its coordinates, which
// are kept in a separate v3.Matrix.
type Atom struct {
	Name    string //name within the residue, i.e. "CA", "HB2"
	ID      int    //serial number
	Symbol  string
	MolName string //residue name
	MolID   int
	Residue int    //index of the residue in the Topology, -1 if none.
	FFType  string //force-field atom type. Empty means unassigned.
	Charge  float64
	Charged bool //true if Charge has been assigned
	Mass    float64
	Het     bool // is hetatm in the pdb file?
}

// NewAtom returns an atom with the given name and symbol, not
// assigned to any residue.
func NewAtom(name, symbol string) *Atom {
	return &Atom{Name: name, Symbol: symbol, Residue: -1}
}

// Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	n := *A
	return &n
}

// String returns a short description of the atom, used in error messages
func (A *Atom) String() string {
	ff := A.FFType
	if ff == "" {
		ff = "untyped"
	}
	return fmt.Sprintf("%s %d (%s %s%d, %s)", A.Name, A.ID, A.Symbol, A.MolName, A.MolID, ff)
}

// SetFF assigns the force-field type and partial charge of the atom.
func (A *Atom) SetFF(fftype string, charge float64) {
	A.FFType = fftype
	A.Charge = charge
	A.Charged = true
}

// ResidueKind tells whether a residue is an amino acid or something else.
type ResidueKind int

const (
	OtherResidue ResidueKind = iota
	AminoAcidResidue
	WaterResidue
)

// Residue contains a residue type, the indexes of its atoms in the Topology
// and, optionally, its side-chain torsions (chi angles) in radians.
type Residue struct {
	Name  string
	Kind  ResidueKind
	AA    AminoAcid //only meaningful if Kind is AminoAcidResidue
	MolID int
	Atoms []int
	Chi   []float64
}

// NewResidue builds a residue from its 3-letter name. The kind
// is guessed from the name.
func NewResidue(name string, molid int, atoms []int) *Residue {
	r := &Residue{Name: name, MolID: molid, Atoms: atoms}
	name = strings.ToUpper(strings.TrimSpace(name))
	switch {
	case name == "HOH" || name == "WAT" || name == "SOL":
		r.Kind = WaterResidue
	default:
		if aa, err := ParseAminoAcid(name); err == nil {
			r.Kind = AminoAcidResidue
			r.AA = aa
		}
	}
	return r
}

// AtomIndex returns the topology index of the atom of the residue
// with the given name, or -1 if not found.
func (R *Residue) AtomIndex(T *Topology, name string) int {
	for _, v := range R.Atoms {
		if T.Atoms[v].Name == name {
			return v
		}
	}
	return -1
}

/*****Topology type***/

// Topology contains the atoms, bonds and residues of a molecular system, i.e. all the
// information which is not expected to change in time.
type Topology struct {
	Atoms    []*Atom
	Bonds    []*Bond
	Residues []*Residue
}

// NewTopology returns a topology with the given atoms, bonds and residues. It will
// fail if a bond refers to a non-existent atom, or to the same atom twice.
func NewTopology(ats []*Atom, bonds []*Bond, res []*Residue) (*Topology, error) {
	if ats == nil {
		return nil, fmt.Errorf("supplied a nil atom slice")
	}
	for i, b := range bonds {
		if b.At1 < 0 || b.At2 < 0 || b.At1 >= len(ats) || b.At2 >= len(ats) || b.At1 == b.At2 {
			return nil, fmt.Errorf("bond %d (%d-%d) refers to invalid atoms", i, b.At1, b.At2)
		}
	}
	for i, r := range res {
		for _, v := range r.Atoms {
			if v < 0 || v >= len(ats) {
				return nil, fmt.Errorf("residue %d (%s) refers to invalid atom %d", i, r.Name, v)
			}
			ats[v].Residue = i
		}
	}
	return &Topology{Atoms: ats, Bonds: bonds, Residues: res}, nil
}

// Atom returns the Atom corresponding to the index i
// of the Atom slice in the Topology. Panics if
// out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() {
		panic("Topology: Requested Atom out of bounds")
	}
	return T.Atoms[i]
}

// Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

// ResidueOf returns the residue the ith atom belongs to, or nil.
func (T *Topology) ResidueOf(i int) *Residue {
	r := T.Atoms[i].Residue
	if r < 0 || r >= len(T.Residues) {
		return nil
	}
	return T.Residues[r]
}

// Masses returns a slice with the masses of each atom in the topology.
// Atoms without mass get one from their element, if known.
func (T *Topology) Masses() ([]float64, error) {
	ret := make([]float64, T.Len())
	for i, a := range T.Atoms {
		if a.Mass > 0 {
			ret[i] = a.Mass
			continue
		}
		m, ok := symbolMass[a.Symbol]
		if !ok {
			return nil, fmt.Errorf("no mass for atom %s", a)
		}
		ret[i] = m
	}
	return ret, nil
}

// Subset returns a new topology containing copies of the atoms with the given indexes,
// and the bonds between them, renumbered. Residues are not copied.
func (T *Topology) Subset(indexes []int) *Topology {
	old2new := make(map[int]int, len(indexes))
	ats := make([]*Atom, 0, len(indexes))
	for i, v := range indexes {
		a := T.Atoms[v].Copy()
		a.Residue = -1
		ats = append(ats, a)
		old2new[v] = i
	}
	bonds := make([]*Bond, 0)
	for _, b := range T.Bonds {
		n1, ok1 := old2new[b.At1]
		n2, ok2 := old2new[b.At2]
		if ok1 && ok2 {
			bonds = append(bonds, &Bond{At1: n1, At2: n2, Order: b.Order})
		}
	}
	return &Topology{Atoms: ats, Bonds: bonds}
}
