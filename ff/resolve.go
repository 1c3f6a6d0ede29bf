/*
 * resolve.go, part of mdprep.
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
	"log"
	"sort"
	"strings"

	chem "github.com/rmera/mdprep"
)

// PlaceholderMass is used for atoms whose type, and the generic type for their element,
// are both absent from the table.
const PlaceholderMass = 12.001

// Generic keys used when an atom type is not in the table. The VdW key for carbon differs
// from the mass key.
var (
	massFallback = map[byte]string{'C': "C", 'N': "N", 'O': "O"}
	vdwFallback  = map[byte]string{'C': "C*", 'N': "N", 'O': "O"}
)

// Indexed contains the force-field parameters of a specific molecule, keyed by atom
// indexes. Mass and VdW have one element per atom. Bond keys are canonical (min,max)
// pairs, angle keys have the vertex in the middle.
type Indexed struct {
	Mass      []float64
	VdW       []VdW
	Bonds     map[[2]int]BondParam
	Angles    map[[3]int]AngleParam
	Dihedrals map[[4]int][]DihedralParam
	Impropers map[[4]int][]DihedralParam
}

func newIndexed(natoms int) *Indexed {
	return &Indexed{
		Mass:      make([]float64, natoms),
		VdW:       make([]VdW, natoms),
		Bonds:     make(map[[2]int]BondParam),
		Angles:    make(map[[3]int]AngleParam),
		Dihedrals: make(map[[4]int][]DihedralParam),
		Impropers: make(map[[4]int][]DihedralParam),
	}
}

// Len returns the number of atoms the receiver has parameters for.
func (I *Indexed) Len() int {
	return len(I.Mass)
}

// Resolve builds the index-keyed parameters for the given atoms from the overlay of
// specific (which can be nil) over generic. bonds and adj, the list of neighbors of each
// atom, must describe the same bond graph. Hydrogen bonds are not covalent and are
// ignored. Every atom needs a force-field type, and every bond and angle needs parameters,
// otherwise an error is returned and nothing else. Atoms with unknown types get generic
// masses and VdW parameters, and dihedrals with no parameters are left out. Both cases
// are logged.
func Resolve(generic, specific *Keyed, atoms []*chem.Atom, bonds []*chem.Bond, adj [][]int) (*Indexed, error) {
	if generic == nil {
		return nil, chem.NewError(chem.ErrMissingFFSet, "ff.Resolve", "nil generic parameter set")
	}
	if len(adj) != len(atoms) {
		return nil, chem.NewError(nil, "ff.Resolve", "adjacency for %d atoms, but %d atoms given", len(adj), len(atoms))
	}
	K := Merge(generic, specific)
	I := newIndexed(len(atoms))
	types := make([]string, len(atoms))
	for i, at := range atoms {
		if at.FFType == "" {
			return nil, chem.NewError(chem.ErrMissingType, "ff.Resolve", "atom %d: %s", i, at)
		}
		types[i] = at.FFType
		I.Mass[i] = K.massOf(at.FFType)
		I.VdW[i] = K.vdwOf(at.FFType)
	}
	if err := I.bonds(K, types, bonds); err != nil {
		return nil, err
	}
	if err := I.angles(K, types, adj); err != nil {
		return nil, err
	}
	seen := make(map[[4]int]bool)
	I.dihedrals(K, types, bonds, adj, seen)
	I.impropers(K, types, adj, seen)
	return I, nil
}

func fallbackKey(t string, keys map[byte]string) (string, bool) {
	if t == "" {
		return "", false
	}
	k, ok := keys[strings.ToUpper(t)[0]]
	return k, ok
}

func (K *Keyed) massOf(t string) float64 {
	if m, ok := K.Mass[t]; ok {
		return m
	}
	if k, ok := fallbackKey(t, massFallback); ok {
		if m, ok := K.Mass[k]; ok {
			log.Printf("ff: no mass for type %s, using the one for %s", t, k)
			return m
		}
	}
	log.Printf("ff: no mass for type %s, using %.3f", t, PlaceholderMass)
	return PlaceholderMass
}

func (K *Keyed) vdwOf(t string) VdW {
	if v, ok := K.VdW[t]; ok {
		return v
	}
	if k, ok := fallbackKey(t, vdwFallback); ok {
		if v, ok := K.VdW[k]; ok {
			log.Printf("ff: no VdW parameters for type %s, using the ones for %s", t, k)
			return v
		}
	}
	log.Printf("ff: no VdW parameters for type %s, it will not interact", t)
	return VdW{}
}

func (I *Indexed) bonds(K *Keyed, types []string, bonds []*chem.Bond) error {
	for _, b := range bonds {
		if b.Order == chem.Hydrogen {
			continue
		}
		if b.At1 < 0 || b.At2 < 0 || b.At1 >= len(types) || b.At2 >= len(types) {
			return chem.NewError(nil, "ff.Resolve", "bond %d-%d out of range", b.At1, b.At2)
		}
		p, ok := K.Bond(types[b.At1], types[b.At2])
		if !ok {
			return chem.NewError(chem.ErrMissingBondedParam, "ff.Resolve", "bond %d-%d (%s-%s)", b.At1, b.At2, types[b.At1], types[b.At2])
		}
		I.Bonds[b.Key()] = p
	}
	return nil
}

func (I *Indexed) angles(K *Keyed, types []string, adj [][]int) error {
	for c, neigh := range adj {
		for x := 0; x < len(neigh); x++ {
			for y := x + 1; y < len(neigh); y++ {
				i, k := neigh[x], neigh[y]
				p, ok := K.Angle(types[i], types[c], types[k])
				if !ok {
					return chem.NewError(chem.ErrMissingBondedParam, "ff.Resolve", "angle %d-%d-%d (%s-%s-%s)", i, c, k, types[i], types[c], types[k])
				}
				I.Angles[[3]int{i, c, k}] = p
			}
		}
	}
	return nil
}

// normalized returns copies of the terms, with the barrier divided by the
// divider, which is then set to 1.
func normalized(p []DihedralParam) []DihedralParam {
	ret := make([]DihedralParam, len(p))
	for i, v := range p {
		if v.Divider > 1 {
			v.Barrier /= float64(v.Divider)
		}
		v.Divider = 1
		ret[i] = v
	}
	return ret
}

func (I *Indexed) dihedrals(K *Keyed, types []string, bonds []*chem.Bond, adj [][]int, seen map[[4]int]bool) {
	for _, b := range bonds {
		if b.Order == chem.Hydrogen {
			continue
		}
		c := b.Key()
		j, k := c[0], c[1]
		for _, i := range adj[j] {
			if i == k {
				continue
			}
			for _, l := range adj[k] {
				if l == j || l == i {
					continue
				}
				key := [4]int{i, j, k, l}
				if i > l {
					key = [4]int{l, k, j, i}
				}
				if seen[key] {
					continue
				}
				seen[key] = true
				p, ok := K.Dihedral(types[key[0]], types[key[1]], types[key[2]], types[key[3]])
				if !ok {
					log.Printf("ff: no parameters for dihedral %v (%s-%s-%s-%s), skipped", key, types[key[0]], types[key[1]], types[key[2]], types[key[3]])
					continue
				}
				I.Dihedrals[key] = normalized(p)
			}
		}
	}
}

// Most centers with 3 or more neighbors have no improper term, so misses are only
// reported as a total. Impropers share the seen-set with the propers, so one with the
// same index key as a proper (which happens in 3-membered rings) is not added. Those are
// logged, and their keys returned.
func (I *Indexed) impropers(K *Keyed, types []string, adj [][]int, seen map[[4]int]bool) [][4]int {
	missing := 0
	var shadowed [][4]int
	for c, neigh := range adj {
		if len(neigh) < 3 {
			continue
		}
		n := append([]int(nil), neigh...)
		sort.Ints(n)
		for x := 0; x < len(n); x++ {
			for y := x + 1; y < len(n); y++ {
				for z := y + 1; z < len(n); z++ {
					key := [4]int{n[x], c, n[y], n[z]}
					if seen[key] {
						shadowed = append(shadowed, key)
						continue
					}
					seen[key] = true
					p, ok := K.Improper(types[key[0]], types[c], types[key[2]], types[key[3]])
					if !ok {
						missing++
						continue
					}
					I.Impropers[key] = normalized(p)
				}
			}
		}
	}
	if missing > 0 {
		log.Printf("ff: %d improper dihedrals without parameters, skipped", missing)
	}
	if len(shadowed) > 0 {
		log.Printf("ff: improper dihedrals %v have the same atoms as a proper dihedral, skipped", shadowed)
	}
	return shadowed
}
