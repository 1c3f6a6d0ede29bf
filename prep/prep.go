/*
 * prep.go, part of mdprep.
 *
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

// Package prep assembles everything a simulation needs from a typed structure:
// index-keyed parameters, nonbonded masks, the cell and the neighbor list.
package prep

import (
	"fmt"
	"log"
	"strings"

	chem "github.com/rmera/mdprep"
	"github.com/rmera/mdprep/chemgraph"
	"github.com/rmera/mdprep/clash"
	"github.com/rmera/mdprep/config"
	"github.com/rmera/mdprep/ff"
	"github.com/rmera/mdprep/nblist"
	"github.com/rmera/mdprep/nonbond"
	v3 "github.com/rmera/mdprep/v3"
)

// ParamSet holds the keyed parameter tables for a preparation: a generic table for
// the protein, a generic one for ligands, and ligand-specific ones by molecule name.
type ParamSet struct {
	ProtGeneric *ff.Keyed
	LigGeneric  *ff.Keyed
	LigSpecific map[string]*ff.Keyed
}

// LoadParams reads the parameter files given in C. Any file can be compressed
// with zstd.
func LoadParams(C *config.Cfg) (*ParamSet, error) {
	P := &ParamSet{LigSpecific: make(map[string]*ff.Keyed)}
	var err error
	if P.ProtGeneric, err = ff.ReadFile(C.ProtGeneric, C.Defines...); err != nil {
		return nil, chem.ErrDecorate(err, "prep.LoadParams")
	}
	if P.LigGeneric, err = ff.ReadFile(C.LigGeneric, C.Defines...); err != nil {
		return nil, chem.ErrDecorate(err, "prep.LoadParams")
	}
	for name, file := range C.LigSpecific {
		K, err := ff.ReadFile(file, C.Defines...)
		if err != nil {
			return nil, chem.ErrDecorate(err, "prep.LoadParams")
		}
		P.LigSpecific[name] = K
	}
	return P, nil
}

// Part is a subset of a structure, with its own topology and coordinates.
type Part struct {
	T      *chem.Topology
	Coords *v3.Matrix //nil if the part is empty
	Index  []int      //index of each atom in the original structure
}

// Len returns the number of atoms in the part.
func (P *Part) Len() int {
	if P == nil || P.T == nil {
		return 0
	}
	return P.T.Len()
}

func newPart(T *chem.Topology, coords *v3.Matrix, indexes []int) *Part {
	P := &Part{T: T.Subset(indexes), Index: indexes}
	if len(indexes) > 0 {
		P.Coords = coords.SomeVecs(indexes)
	}
	return P
}

// Split separates the atoms of T into the dynamic ones, those with molecule name
// ligand, and the static rest. If ligand is empty, the hetero atoms are taken as dynamic.
// Water is never dynamic.
func Split(T *chem.Topology, coords *v3.Matrix, ligand string) (dynamic, static *Part, err error) {
	if coords.NVecs() != T.Len() {
		return nil, nil, chem.NewError(nil, "prep.Split", "%d atoms but %d coordinates", T.Len(), coords.NVecs())
	}
	ligand = strings.ToUpper(strings.TrimSpace(ligand))
	var dyn, sta []int
	for i, a := range T.Atoms {
		water := false
		if r := T.ResidueOf(i); r != nil {
			water = r.Kind == chem.WaterResidue
		}
		isdyn := a.Het && !water
		if ligand != "" {
			isdyn = strings.ToUpper(a.MolName) == ligand
		}
		if isdyn {
			dyn = append(dyn, i)
		} else {
			sta = append(sta, i)
		}
	}
	if len(dyn) == 0 {
		return nil, nil, chem.NewError(nil, "prep.Split", "no dynamic atoms (ligand %q)", ligand)
	}
	return newPart(T, coords, dyn), newPart(T, coords, sta), nil
}

// Options are the numerical parameters of a preparation.
type Options struct {
	Ligand  string //molecule name used to pick the specific parameters
	Cutoff  float64
	Skin    float64
	Padding float64
}

// DefaultOptions returns the usual cutoff, skin and padding, and no ligand name.
func DefaultOptions() Options {
	return Options{Cutoff: nblist.DefaultCutoff, Skin: nblist.DefaultSkin, Padding: nblist.DefaultPadding}
}

// MdState is a system ready for simulation. The dynamic atoms interact among themselves
// through bonded terms and masked nonbonded ones, and with the static atoms only
// through nonbonded terms.
type MdState struct {
	Dynamic      *Part
	Static       *Part
	Adjacency    [][]int
	Params       *ff.Indexed //for the dynamic atoms
	StaticParams *ff.Indexed //nil if there are no static atoms
	Excluded     nblist.PairSet
	Scaled14     nblist.PairSet
	Box          *nblist.Box
	List         *nblist.List
}

// New prepares a system from its dynamic and static parts, whose atoms must have
// force-field types. Both generic parameter sets are required, even if the
// static part is empty. Nothing is returned on error.
func New(dynamic, static *Part, P *ParamSet, O Options) (*MdState, error) {
	const funcname = "prep.New"
	if P == nil || P.LigGeneric == nil {
		return nil, chem.NewError(chem.ErrMissingFFSet, funcname, "no generic ligand parameters")
	}
	if P.ProtGeneric == nil {
		return nil, chem.NewError(chem.ErrMissingFFSet, funcname, "no generic protein parameters")
	}
	if dynamic.Len() == 0 {
		return nil, chem.NewError(nil, funcname, "no dynamic atoms")
	}
	specific := P.LigSpecific[O.Ligand]
	if specific == nil && O.Ligand != "" {
		log.Printf("No specific parameters for %s, using the generic ones only", O.Ligand)
	}
	g, err := chemgraph.FromTopology(dynamic.T)
	if err != nil {
		return nil, chem.ErrDecorate(err, funcname)
	}
	M := &MdState{Dynamic: dynamic, Static: static, Adjacency: g.Adjacency()}
	M.Params, err = ff.Resolve(P.LigGeneric, specific, dynamic.T.Atoms, dynamic.T.Bonds, M.Adjacency)
	if err != nil {
		return nil, chem.ErrDecorate(err, funcname)
	}
	if n := static.Len(); n > 0 {
		//the static atoms are rigid, so they only get nonbonded parameters.
		M.StaticParams, err = ff.Resolve(P.ProtGeneric, nil, static.T.Atoms, nil, make([][]int, n))
		if err != nil {
			return nil, chem.ErrDecorate(err, funcname)
		}
	}
	if M.Box, err = nblist.NewBox(dynamic.Coords, O.Padding); err != nil {
		return nil, chem.ErrDecorate(err, funcname)
	}
	log.Printf("Initializing cell: %s", M.Box)
	M.Excluded, M.Scaled14 = nblist.BuildMasks(M.Params)
	M.List = nblist.Build(dynamic.Coords, M.Box, O.Cutoff, O.Skin)
	return M, nil
}

// Move sets new coordinates for the dynamic atoms and rebuilds the neighbor list if
// any atom moved more than half the skin since the last build. It returns true if
// the list was rebuilt.
func (M *MdState) Move(coords *v3.Matrix) (bool, error) {
	if _, err := M.List.Update(coords); err != nil {
		return false, chem.ErrDecorate(err, "prep.MdState.Move")
	}
	M.Dynamic.Coords = coords
	if !M.List.NeedsRebuild() {
		return false, nil
	}
	M.List.Rebuild(coords)
	return true, nil
}

// Charges returns the partial charges of the dynamic and the static atoms. Atoms
// without an assigned charge get 0.
func (M *MdState) Charges() (dynamic, static []float64) {
	q := func(P *Part) []float64 {
		ret := make([]float64, P.Len())
		for i := range ret {
			if a := P.T.Atoms[i]; a.Charged {
				ret[i] = a.Charge
			}
		}
		return ret
	}
	return q(M.Dynamic), q(M.Static)
}

// NonbondSets returns the dynamic atoms, as targets, and the static atoms, as sources,
// ready for a nonbond.Kernel. src is nil if there are no static atoms.
func (M *MdState) NonbondSets() (tgt, src *nonbond.Set, err error) {
	qd, qs := M.Charges()
	if tgt, err = nonbond.NewSet(M.Dynamic.Coords, qd, M.Params.VdW); err != nil {
		return nil, nil, err
	}
	if M.Static.Len() == 0 {
		return tgt, nil, nil
	}
	src, err = nonbond.NewSet(M.Static.Coords, qs, M.StaticParams.VdW)
	return tgt, src, err
}

// ExternalForces returns the nonbonded forces that the static atoms exert on each
// dynamic atom (3 values per atom), computed with K.
func (M *MdState) ExternalForces(K nonbond.Kernel) ([]float32, error) {
	tgt, src, err := M.NonbondSets()
	if err != nil {
		return nil, chem.ErrDecorate(err, "prep.MdState.ExternalForces")
	}
	if src == nil {
		return make([]float32, 3*tgt.Len()), nil
	}
	f, err := K.Forces(tgt, src)
	if err != nil {
		return nil, chem.ErrDecorate(err, "prep.MdState.ExternalForces")
	}
	return f, nil
}

// Clashes returns the pairs of non-bonded dynamic atoms in the neighbor list that
// overlap by more than tol A. Excluded and 1-4 pairs are not considered.
func (M *MdState) Clashes(tol float64) ([]clash.Overlap, error) {
	return clash.Overlaps(M.Dynamic.Coords, M.Params.VdW, M.List, tol, M.Excluded, M.Scaled14)
}

// WorstContact returns the largest overlap between a dynamic and a static atom, and
// their indexes in the respective parts. It returns an error if there are no static atoms.
func (M *MdState) WorstContact() (float64, [2]int, error) {
	if M.Static.Len() == 0 {
		return 0, [2]int{-1, -1}, fmt.Errorf("prep: no static atoms")
	}
	ov, idx := clash.HighestOverlap(M.Dynamic.Coords, M.Static.Coords, M.Params.VdW, M.StaticParams.VdW)
	return ov, idx, nil
}
