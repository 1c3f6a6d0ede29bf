/*
 * aminoacid.go, part of mdprep.
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

// AminoAcid identifies a standard amino acid or one of its
// protonation variants.
type AminoAcid int

const (
	NoAA AminoAcid = iota
	Ala
	Arg
	Asn
	Asp
	Cys
	Gln
	Glu
	Gly
	His
	Ile
	Leu
	Lys
	Met
	Phe
	Pro
	Ser
	Thr
	Trp
	Tyr
	Val
	Sec
	//protonation variants, Amber names.
	Hid
	Hie
	Hip
	Cyx
	Ash
	Glh
	Lyn
)

var aaNames = map[AminoAcid]string{
	Ala: "ALA", Arg: "ARG", Asn: "ASN", Asp: "ASP", Cys: "CYS", Gln: "GLN", Glu: "GLU",
	Gly: "GLY", His: "HIS", Ile: "ILE", Leu: "LEU", Lys: "LYS", Met: "MET", Phe: "PHE",
	Pro: "PRO", Ser: "SER", Thr: "THR", Trp: "TRP", Tyr: "TYR", Val: "VAL", Sec: "SEC",
	Hid: "HID", Hie: "HIE", Hip: "HIP", Cyx: "CYX", Ash: "ASH", Glh: "GLH", Lyn: "LYN",
}

var aaOneLetter = map[AminoAcid]byte{
	Ala: 'A', Arg: 'R', Asn: 'N', Asp: 'D', Cys: 'C', Gln: 'Q', Glu: 'E',
	Gly: 'G', His: 'H', Ile: 'I', Leu: 'L', Lys: 'K', Met: 'M', Phe: 'F',
	Pro: 'P', Ser: 'S', Thr: 'T', Trp: 'W', Tyr: 'Y', Val: 'V', Sec: 'U',
}

// String returns the 3-letter (Amber for variants) name of the amino acid.
func (A AminoAcid) String() string {
	if n, ok := aaNames[A]; ok {
		return n
	}
	return "UNK"
}

// OneLetter returns the one-letter code of the amino acid. Variants
// return the code of their standard form.
func (A AminoAcid) OneLetter() byte {
	return aaOneLetter[A.Standard()]
}

// Standard returns the standard amino acid for a protonation variant,
// or the receiver itself if it is not a variant.
func (A AminoAcid) Standard() AminoAcid {
	switch A {
	case Hid, Hie, Hip:
		return His
	case Cyx:
		return Cys
	case Ash:
		return Asp
	case Glh:
		return Glu
	case Lyn:
		return Lys
	}
	return A
}

// IsVariant returns true if the receiver is a protonation variant.
func (A AminoAcid) IsVariant() bool {
	return A != A.Standard()
}

// ParseAminoAcid returns the AminoAcid with the 3-letter name given.
// Amber protonation-variant names are accepted.
func ParseAminoAcid(name string) (AminoAcid, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for k, v := range aaNames {
		if v == name {
			return k, nil
		}
	}
	return NoAA, fmt.Errorf("unknown amino acid %q", name)
}
