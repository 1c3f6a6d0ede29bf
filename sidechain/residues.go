/*
 * residues.go, part of mdprep.
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
	chem "github.com/rmera/mdprep"
)

//Recipes for each residue type. Atom names follow the PDB/Amber conventions.
//Ring geometries are approximations (regular pentagons and hexagons built
//bond by bond), and the placement of some hydrogens is not exact. See
//DESIGN.md for the known quirks, which are kept as they are.

var (
	tA, tB, tC, tD = chem.TetraA, chem.TetraB, chem.TetraC, chem.TetraD
	p3A, p3B, p3C  = chem.Planar3A, chem.Planar3B, chem.Planar3C
	rIn, r5Out     = chem.RingBondIn, chem.Ring5BondOut
	hIn, hOut      = chem.HBondIn, chem.HBondOut
	oIn, oOut      = chem.OBondIn, chem.OBondOut
)

const (
	lsc = chem.LenSC
	lch = chem.LenCH
	lnh = chem.LenNH
	loh = chem.LenOH
	pi  = chem.TauDiv2
)

// cb places the beta carbon from the backbone, with chi1 as torsion,
// unless another torsion is given.
func cb(t ...Torsion) Step {
	tor := chi(1)
	if len(t) > 0 {
		tor = t[0]
	}
	return st("CB", tA, tB, tor, "CA", "N", chem.CAlphaRBond, lsc)
}

var recipes = map[chem.AminoAcid]*Recipe{
	chem.Arg: {AA: chem.Arg, Steps: []Step{
		cb(),
		st("CG", tA, tB, chi(2), "CB", "CA", tB, lsc),
		st("CD", tA, tB, chi(3), "CG", "CB", tB, lsc),
		st("NE", p3A, p3B, chi(4), "CD", "CG", tB, lsc),
		st("CZ", p3A, p3B, chi(5), "NE", "CD", p3B, lsc),
		st("NH1", p3A, p3B, fixed(pi), "CZ", "NE", p3B, lsc),
		st("NH2", p3A, p3B, fixed(pi), "CZ", "NE", p3C, lsc),
		st("HE", hIn, hOut, fixed(pi), "NE", "CD", p3C, lnh),
		st("HH11", hIn, hOut, fixed(pi), "NH1", "CZ", p3B, lnh),
		st("HH12", hIn, hOut, fixed(pi), "NH1", "CZ", p3C, lnh),
		st("HH21", hIn, hOut, fixed(pi), "NH2", "CZ", p3B, lnh),
		st("HH22", hIn, hOut, fixed(pi), "NH2", "CZ", p3C, lnh),
		st("HB2", hIn, hOut, fixed(pi), "CB", "CA", tC, lch),
		st("HB3", hIn, hOut, fixed(pi), "CB", "CA", tD, lch),
		st("HG2", hIn, hOut, fixed(pi), "CG", "CB", tC, lch),
		st("HG3", hIn, hOut, fixed(pi), "CG", "CB", tD, lch),
		st("HD2", hIn, hOut, fixed(pi), "CD", "CG", tC, lch),
		st("HD3", hIn, hOut, fixed(pi), "CD", "CG", tD, lch),
	}},
	//Delta-protonated histidine. HIE and HIP are derived from it.
	//The +-108 degree torsions close the imidazole ring to about 0.1 A. Signs and the
	//CD2/ND1 names are swapped from the usual delta-protonated recipe, which leaves it open.
	chem.His: {AA: chem.His, Steps: []Step{
		cb(),
		st("CG", tA, tB, chi(2), "CB", "CA", tB, lsc),
		st("CD2", rIn, r5Out, fixed(-1.8849555), "CG", "CB", tB, lsc),
		st("ND1", rIn, r5Out, fixed(1.8849555), "CG", "CB", tC, lsc),
		st("NE2", rIn, r5Out, fixed(0), "CD2", "CG", r5Out, lsc),
		st("CE1", rIn, r5Out, fixed(0), "ND1", "CG", r5Out, lsc),
		st("HD1", hIn, hOut, fixed(pi), "ND1", "CG", p3C, lnh),
		st("HB2", hIn, hOut, fixed(pi), "CB", "CA", tC, lnh),
		st("HB3", hIn, hOut, fixed(pi), "CB", "CA", tD, lnh),
		st("HD2", hIn, hOut, fixed(pi), "CD2", "CG", p3C, lnh),
		st("HE1", hIn, hOut, fixed(pi), "CE1", "ND1", p3C, lnh),
	}},
	chem.Lys: {AA: chem.Lys, Steps: []Step{
		cb(),
		st("CG", tA, tB, chi(2), "CB", "CA", tB, lsc),
		st("CD", tA, tB, chi(3), "CG", "CB", tB, lsc),
		st("CE", tA, tB, chi(4), "CD", "CG", tB, lsc),
		st("NZ", p3A, p3B, fixed(pi), "CE", "CD", tB, lsc),
		st("HZ1", hIn, hOut, fixed(pi), "NZ", "CE", p3B, lnh),
		st("HZ2", hIn, hOut, fixed(pi), "NZ", "CE", p3C, lnh),
		st("HB2", hIn, hOut, fixed(pi), "CB", "CA", tC, lch),
		st("HB3", hIn, hOut, fixed(pi), "CB", "CA", tD, lch),
		st("HG2", hIn, hOut, fixed(pi), "CG", "CB", tC, lch),
		st("HG3", hIn, hOut, fixed(pi), "CG", "CB", tD, lch),
		st("HD2", hIn, hOut, fixed(pi), "CD", "CG", tC, lch),
		st("HD3", hIn, hOut, fixed(pi), "CD", "CG", tD, lch),
		st("HE2", hIn, hOut, fixed(pi), "CE", "CD", tC, lch),
		st("HE3", hIn, hOut, fixed(pi), "CE", "CD", tD, lch),
	}},
	chem.Asp: {AA: chem.Asp, Steps: []Step{
		cb(),
		st("CG", p3A, p3B, chi(2), "CB", "CA", tB, lsc),
		st("OD1", oIn, oOut, fixed(pi), "CG", "CB", p3B, lsc),
		st("OD2", oIn, oOut, fixed(pi), "CG", "CB", p3C, lsc),
		st("HB2", hIn, hOut, fixed(pi), "CB", "CA", tC, lch),
		st("HB3", hIn, hOut, fixed(pi), "CB", "CA", tD, lch),
	}},
	chem.Glu: {AA: chem.Glu, Steps: []Step{
		cb(),
		st("CG", tA, tB, chi(2), "CB", "CA", tB, lsc),
		st("CD", p3A, p3B, chi(3), "CG", "CB", tB, lsc),
		st("OE1", oIn, oOut, fixed(pi), "CD", "CG", p3B, lsc),
		st("OE2", oIn, oOut, fixed(pi), "CD", "CG", p3C, lsc),
		st("HB2", hIn, hOut, fixed(pi), "CB", "CA", tC, lch),
		st("HB3", hIn, hOut, fixed(pi), "CB", "CA", tD, lch),
		st("HG2", hIn, hOut, fixed(pi), "CG", "CB", tC, lch),
		st("HG3", hIn, hOut, fixed(pi), "CG", "CB", tD, lch),
	}},
	chem.Ser: {AA: chem.Ser, Steps: []Step{
		cb(),
		st("OG", oIn, oOut, fixed(pi), "CB", "CA", tB, lsc),
		st("HB2", hIn, hIn, fixed(pi), "CB", "CA", tC, lch),
		st("HB3", hIn, hIn, fixed(pi), "CB", "CA", tD, lch),
		st("HG", oIn, oIn, fixed(pi), "OG", "CB", tB, loh),
	}},
	chem.Thr: {AA: chem.Thr, Steps: []Step{
		cb(),
		st("CG2", tA, tB, fixed(pi), "CB", "CA", tB, lsc),
		st("OG1", oIn, oOut, fixed(pi), "CB", "CA", tC, lsc),
		st("HB", hIn, hOut, fixed(pi), "CB", "CA", tD, lch),
		st("HG1", hIn, hOut, fixed(pi), "OG1", "CB", oOut, loh),
		st("HG21", hIn, hOut, fixed(pi), "CG2", "CB", tB, lch),
		st("HG22", hIn, hOut, fixed(pi), "CG2", "CB", tC, lch),
		st("HG23", hIn, hOut, fixed(pi), "CG2", "CB", tD, lch),
	}},
	chem.Asn: {AA: chem.Asn, Steps: []Step{
		cb(),
		st("CG", p3A, p3B, chi(2), "CB", "CA", tB, lsc),
		st("OD1", oIn, oOut, fixed(pi), "CG", "CB", p3B, lsc),
		st("ND2", p3A, p3B, fixed(pi), "CG", "CB", p3C, lsc),
		st("HD21", hIn, hOut, fixed(pi), "ND2", "CG", p3B, lnh),
		st("HD22", hIn, hOut, fixed(pi), "ND2", "CG", p3C, lnh),
		st("HB2", hIn, hOut, fixed(pi), "CB", "CA", tC, lnh),
		st("HB3", hIn, hOut, fixed(pi), "CB", "CA", tD, lnh),
	}},
	chem.Gln: {AA: chem.Gln, Steps: []Step{
		cb(),
		st("CG", tA, tB, chi(2), "CB", "CA", tB, lsc),
		st("CD", p3A, p3B, chi(3), "CG", "CB", p3B, lsc),
		st("OE1", oIn, oOut, fixed(pi), "CD", "CG", p3C, lsc),
		st("NE2", p3A, p3B, fixed(pi), "CD", "CG", p3B, lsc),
		st("HE21", hIn, hOut, fixed(pi), "NE2", "CD", p3B, lnh),
		st("HE22", hIn, hOut, fixed(pi), "NE2", "CD", p3C, lnh),
		st("HB2", hIn, hOut, fixed(pi), "CB", "CA", tC, lnh),
		st("HB3", hIn, hOut, fixed(pi), "CB", "CA", tD, lnh),
		st("HG2", hIn, hOut, fixed(pi), "CG", "CB", tC, lnh),
		st("HG3", hIn, hOut, fixed(pi), "CG", "CB", tD, lnh),
	}},
	chem.Cys: {AA: chem.Cys, Steps: []Step{
		cb(),
		st("SG", oIn, oOut, fixed(pi), "CB", "CA", tB, lsc),
		st("HB2", hIn, hOut, fixed(pi), "CB", "CA", tC, lch),
		st("HB3", hIn, hOut, fixed(pi), "CB", "CA", tD, lch),
		st("HG", hIn, hOut, fixed(pi), "SG", "CB", oOut, lch),
	}},
	chem.Sec: {AA: chem.Sec, Steps: []Step{
		cb(),
		st("SE", oIn, oOut, fixed(pi), "CB", "CA", tB, lsc),
		st("HB2", hIn, hOut, fixed(pi), "CB", "CA", tC, lch),
		st("HB3", hIn, hOut, fixed(pi), "CB", "CA", tD, lch),
	}},
	chem.Gly: {AA: chem.Gly, Steps: []Step{
		st("HA3", hIn, hOut, fixed(pi), "CA", "N", chem.CAlphaRBond, lch),
	}},
	//The ring is closed by the backbone N, so the torsions are fixed.
	chem.Pro: {AA: chem.Pro, Steps: []Step{
		cb(fixed(0)),
		st("CG", tA, tB, fixed(0), "CB", "CA", tB, lsc),
		st("CD", tA, tB, fixed(0), "CG", "CB", tB, lsc),
		st("HB2", hIn, hOut, fixed(pi), "CB", "CA", tC, lch),
		st("HB3", hIn, hOut, fixed(pi), "CB", "CA", tD, lch),
		st("HG2", hIn, hOut, fixed(pi), "CG", "CB", tC, lch),
		st("HG3", hIn, hOut, fixed(pi), "CG", "CB", tD, lch),
		st("HD2", hIn, hOut, fixed(pi), "CD", "CG", tC, lch),
		st("HD3", hIn, hOut, fixed(pi), "CD", "CG", tD, lch),
	}},
	chem.Ala: {AA: chem.Ala, Steps: []Step{
		cb(fixed(pi)),
		st("HB1", hIn, hOut, fixed(pi), "CB", "CA", tB, lch),
		st("HB2", hIn, hOut, fixed(pi), "CB", "CA", tC, lch),
		st("HB3", hIn, hOut, fixed(pi), "CB", "CA", tD, lch),
	}},
	chem.Val: {AA: chem.Val, Steps: []Step{
		cb(),
		st("CG1", tA, tB, fixed(pi), "CB", "CA", tB, lsc),
		st("CG2", tA, tB, fixed(pi), "CB", "CA", tC, lsc),
		st("HB", hIn, hOut, fixed(pi), "CB", "CA", tD, lch),
		st("HG11", hIn, hOut, fixed(pi), "CG1", "CB", tB, lch),
		st("HG12", hIn, hOut, fixed(pi), "CG1", "CB", tC, lch),
		st("HG13", hIn, hOut, fixed(pi), "CG1", "CB", tD, lch),
		st("HG21", hIn, hOut, fixed(pi), "CG2", "CB", tB, lch),
		st("HG22", hIn, hOut, fixed(pi), "CG2", "CB", tC, lch),
		st("HG23", hIn, hOut, fixed(pi), "CG2", "CB", tD, lch),
	}},
	chem.Ile: {AA: chem.Ile, Steps: []Step{
		cb(),
		st("CG2", tA, tB, fixed(pi), "CB", "CA", tC, lsc),
		st("CG1", tA, tB, chi(2), "CB", "CA", tB, lsc),
		st("CD1", tA, tB, fixed(pi), "CG1", "CB", tB, lsc),
		st("HB", hIn, hOut, fixed(pi), "CB", "CA", tD, lch),
		st("HG21", hIn, hOut, fixed(pi), "CG2", "CB", tB, lch),
		st("HG22", hIn, hOut, fixed(pi), "CG2", "CB", tC, lch),
		st("HG23", hIn, hOut, fixed(pi), "CG2", "CB", tD, lch),
		st("HG12", hIn, hOut, fixed(pi), "CG1", "CB", tC, lch),
		st("HG13", hIn, hOut, fixed(pi), "CG1", "CB", tD, lch),
		st("HD11", hIn, hOut, fixed(pi), "CD1", "CG1", tB, lch),
		st("HD12", hIn, hOut, fixed(pi), "CD1", "CG1", tC, lch),
		st("HD13", hIn, hOut, fixed(pi), "CD1", "CG1", tD, lch),
	}},
	chem.Leu: {AA: chem.Leu, Steps: []Step{
		cb(),
		st("CG", tA, tB, chi(2), "CB", "CA", tB, lsc),
		st("CD1", tA, tB, fixed(pi), "CG", "CB", tB, lsc),
		st("CD2", tA, tB, fixed(pi), "CG", "CB", tC, lsc),
		st("HB2", hIn, hOut, fixed(pi), "CB", "CA", tC, lch),
		st("HB3", hIn, hOut, fixed(pi), "CB", "CA", tD, lch),
		st("HG", hIn, hOut, fixed(pi), "CG", "CB", tD, lch),
		st("HD11", hIn, hOut, fixed(pi), "CD1", "CG", tB, lch),
		st("HD12", hIn, hOut, fixed(pi), "CD1", "CG", tC, lch),
		st("HD13", hIn, hOut, fixed(pi), "CD1", "CG", tD, lch),
		{Name: "HD21", Orient: "CD1", BondIn: hIn, BondOut: hOut, Torsion: fixed(pi), Prev: "CD2", TwoBack: "CG", BondToThis: tB, Length: lch},
		st("HD22", hIn, hOut, fixed(pi), "CD2", "CG", tC, lch),
		st("HD23", hIn, hOut, fixed(pi), "CD2", "CG", tD, lch),
	}},
	chem.Met: {AA: chem.Met, Steps: []Step{
		cb(),
		st("CG", tA, tB, chi(2), "CB", "CA", tB, lsc),
		st("SD", p3A, p3B, chi(3), "CG", "CB", tB, lsc),
		st("CE", tA, tB, fixed(pi), "SD", "CG", p3B, lsc),
		st("HB2", hIn, hOut, fixed(pi), "CB", "CA", tC, lch),
		st("HB3", hIn, hOut, fixed(pi), "CB", "CA", tD, lch),
		st("HG2", hIn, hOut, fixed(pi), "CG", "CB", tC, lch),
		st("HG3", hIn, hOut, fixed(pi), "CG", "CB", tD, lch),
		st("HE1", hIn, hOut, fixed(pi), "CE", "SD", tB, lch),
		st("HE2", hIn, hOut, fixed(pi), "CE", "SD", tC, lch),
		st("HE3", hIn, hOut, fixed(pi), "CE", "SD", tD, lch),
	}},
	chem.Phe: {AA: chem.Phe, Steps: []Step{
		cb(),
		st("CG", p3A, p3B, chi(2), "CB", "CA", tC, lsc),
		st("CD1", p3A, p3B, fixed(pi), "CG", "CB", p3B, lsc),
		st("CD2", p3A, p3B, fixed(pi), "CG", "CB", p3C, lsc),
		st("CE1", p3A, p3B, fixed(0), "CD1", "CG", p3B, lsc),
		st("CE2", p3A, p3B, fixed(0), "CD2", "CG", p3B, lsc),
		st("CZ", p3A, p3B, fixed(pi), "CE1", "CD1", p3B, lsc),
		st("HB2", hIn, hOut, fixed(pi), "CB", "CA", tB, lch),
		st("HB3", hIn, hOut, fixed(pi), "CB", "CA", tD, lch),
		st("HD1", hIn, hOut, fixed(pi), "CD1", "CG", p3C, lch),
		st("HD2", hIn, hOut, fixed(pi), "CD2", "CG", p3C, lch),
		st("HE1", hIn, hOut, fixed(pi), "CE1", "CD1", p3C, lch),
		st("HE2", hIn, hOut, fixed(pi), "CE2", "CD2", p3C, lch),
		st("HZ", hIn, hOut, fixed(pi), "CZ", "CE2", p3B, lch),
	}},
	chem.Tyr: {AA: chem.Tyr, Steps: []Step{
		cb(),
		st("CG", tA, tB, chi(2), "CB", "CA", tB, lsc),
		st("CD1", p3A, p3B, fixed(pi), "CG", "CB", p3B, lsc),
		st("CD2", p3A, p3B, fixed(pi), "CG", "CB", p3C, lsc),
		st("CE1", p3A, p3B, fixed(0), "CD1", "CG", p3B, lsc),
		st("CE2", p3A, p3B, fixed(0), "CD2", "CG", p3B, lsc),
		st("CZ", p3A, p3B, fixed(pi), "CE1", "CD1", p3B, lsc),
		st("OH", oIn, oOut, fixed(pi), "CZ", "CE2", p3B, lsc),
		st("HB2", hOut, hIn, fixed(pi), "CB", "CA", tC, lch),
		st("HB3", hOut, hIn, fixed(pi), "CB", "CA", tD, lch),
		st("HD1", hOut, hIn, fixed(pi), "CD1", "CG", p3C, lch),
		st("HD2", hOut, hIn, fixed(pi), "CD2", "CG", p3C, lch),
		st("HE1", hOut, hIn, fixed(pi), "CE1", "CD1", p3C, lch),
		st("HE2", hOut, hIn, fixed(pi), "CE2", "CD2", p3C, lch),
		st("HH", oIn, oIn, fixed(pi), "OH", "CZ", p3C, loh),
	}},
	chem.Trp: {AA: chem.Trp, Steps: []Step{
		cb(),
		st("CG", tA, r5Out, chi(2), "CB", "CA", tB, lsc),
		st("CD1", rIn, r5Out, fixed(pi), "CG", "CB", r5Out, lsc),
		st("NE1", rIn, r5Out, fixed(0), "CD1", "CG", r5Out, lsc),
		st("CE2", rIn, r5Out, fixed(0), "NE1", "CD1", r5Out, lsc),
		st("CD2", rIn, p3B, fixed(pi), "CE2", "NE1", r5Out, lsc),
		st("CE3", p3A, p3B, fixed(0), "CD2", "CE2", p3B, lsc),
		st("CZ3", p3A, p3B, fixed(0), "CE3", "CD2", p3B, lsc),
		st("CH2", p3A, p3B, fixed(0), "CZ3", "CE3", p3B, lsc),
		st("CZ2", p3A, p3B, fixed(pi), "CH2", "CZ3", p3B, lsc),
		st("HB2", hOut, hIn, fixed(pi), "CB", "CA", tC, lch),
		st("HB3", hOut, hIn, fixed(pi), "CB", "CA", tD, lch),
		st("HD1", hOut, hIn, fixed(pi), "CD1", "CG", p3C, lch),
		st("HE1", hOut, hIn, fixed(pi), "NE1", "CD1", p3C, lch),
		st("HE3", hOut, hIn, fixed(pi), "CE3", "CD2", p3C, lch),
		st("HZ3", hOut, hIn, fixed(pi), "CZ3", "CE3", p3C, lch),
		st("HH2", hOut, hIn, fixed(pi), "CH2", "CZ3", p3C, lch),
		st("HZ2", hOut, hIn, fixed(pi), "CZ2", "CH2", p3B, lch),
	}},
}

func init() {
	his := recipes[chem.His]
	recipes[chem.Hid] = derive(chem.Hid, his, nil)
	he2 := st("HE2", hIn, hOut, fixed(pi), "NE2", "CD2", p3C, lnh)
	recipes[chem.Hie] = derive(chem.Hie, his, []string{"HD1"}, he2)
	recipes[chem.Hip] = derive(chem.Hip, his, nil, he2)
	recipes[chem.Cyx] = derive(chem.Cyx, recipes[chem.Cys], []string{"HG"})
	recipes[chem.Ash] = derive(chem.Ash, recipes[chem.Asp], nil)
	recipes[chem.Glh] = derive(chem.Glh, recipes[chem.Glu], nil)
	recipes[chem.Lyn] = derive(chem.Lyn, recipes[chem.Lys], nil)
}

// derive returns a copy of base for the variant aa, without the atoms in drop
// and with the extra steps appended.
func derive(aa chem.AminoAcid, base *Recipe, drop []string, extra ...Step) *Recipe {
	r := &Recipe{AA: aa, Steps: make([]Step, 0, len(base.Steps)+len(extra))}
	for _, s := range base.Steps {
		if !isIn(drop, s.Name) {
			r.Steps = append(r.Steps, s)
		}
	}
	r.Steps = append(r.Steps, extra...)
	return r
}

func isIn(container []string, s string) bool {
	for _, v := range container {
		if v == s {
			return true
		}
	}
	return false
}

// RecipeFor returns the placement recipe for the given amino acid, or an
// error if there is none.
func RecipeFor(aa chem.AminoAcid) (*Recipe, error) {
	r, ok := recipes[aa]
	if !ok {
		return nil, chem.NewError(nil, "RecipeFor", "no side-chain recipe for %s", aa)
	}
	return r, nil
}
