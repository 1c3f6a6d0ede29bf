/*
 * json.go, part of mdprep.
 *
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package chemjson

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	chem "github.com/rmera/mdprep"
	v3 "github.com/rmera/mdprep/v3"
)

// Header is the first object in a structure stream.
type Header struct {
	Atoms    int
	Bonds    int
	Residues int
}

// Atom is a ready-to-serialize container for an atom and its coordinates.
type Atom struct {
	A      *chem.Atom
	Coords []float64
}

// Bond is a ready-to-serialize container for a bond. The order is given by name
// or number, and an empty order means single.
type Bond struct {
	At1, At2 int
	Order    string
}

// Residue is a ready-to-serialize container for a residue. The chi angles are
// in radians.
type Residue struct {
	Name  string
	MolID int
	Atoms []int
	Chi   []float64
}

// Coords is a ready-to-serialize container for coordinates
type Coords struct {
	Coords []float64
}

// Error is an easily JSON-serializable error type,
type Error struct {
	deco          []string
	IsError       bool //If this is false (no error) all the other fields will be at their zero-values.
	InInput       bool //was it while reading the input?
	InProcess     bool
	InPostProcess bool //was it in preparing the output?
	Line          int  //input line, if relevant
	Function      string
	Message       string
}

// Error implements the error interface
func (J *Error) Error() string {
	return J.Message
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (J *Error) Decorate(dec string) []string {
	if dec == "" {
		return J.deco
	}
	J.deco = append(J.deco, dec)
	return J.deco
}

// Marshal serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - "))
	}
	return ret
}

// NewError takes an error and some additional info to create a json-marshal-able error.
// where can be "input", "postprocess" or anything else, meaning process.
func NewError(where, function string, err error) *Error {
	jerr := new(Error)
	jerr.IsError = true
	switch where {
	case "input":
		jerr.InInput = true
	case "postprocess":
		jerr.InPostProcess = true
	default:
		jerr.InProcess = true
	}
	jerr.Function = function
	jerr.Message = err.Error()
	return jerr
}

// Info is a summary of a preparation, to be passed back to the calling program.
type Info struct {
	Atoms       int
	StaticAtoms int
	Bonds       int
	Angles      int
	Dihedrals   int
	Impropers   int
	Excluded    int
	Scaled14    int
	Pairs       int
	Placed      int
	Overlaps    int
	BoxLo       [3]float64
	BoxHi       [3]float64
}

// Send marshals the info and writes to out, returns an error or nil
func (J *Info) Send(out io.Writer) *Error {
	enc := json.NewEncoder(out)
	if err := enc.Encode(J); err != nil {
		return NewError("postprocess", "chemjson.Info.Send", err)
	}
	return nil
}

// reads the next line of the stream into v.
type lineReader struct {
	r    *bufio.Reader
	line int
}

func (L *lineReader) next(v any, funcname string) *Error {
	b, err := L.r.ReadBytes('\n')
	L.line++
	if err != nil && (err != io.EOF || len(b) == 0) {
		e := NewError("input", funcname, fmt.Errorf("line %d: %w", L.line, err))
		e.Line = L.line
		return e
	}
	if err := json.Unmarshal(b, v); err != nil {
		e := NewError("input", funcname, fmt.Errorf("line %d: %w", L.line, err))
		e.Line = L.line
		return e
	}
	return nil
}

// DecodeStructure decodes a JSON structure stream into a topology and its coordinates.
// Residues are typed from their names, and every atom must have 3 coordinates. Missing
// element symbols are guessed from the atom names.
func DecodeStructure(in io.Reader) (*chem.Topology, *v3.Matrix, *Error) {
	const funcname = "chemjson.DecodeStructure"
	L := &lineReader{r: bufio.NewReader(in)}
	h := new(Header)
	if err := L.next(h, funcname); err != nil {
		return nil, nil, err
	}
	if h.Atoms <= 0 || h.Bonds < 0 || h.Residues < 0 {
		return nil, nil, NewError("input", funcname, fmt.Errorf("bad header: %d atoms, %d bonds, %d residues", h.Atoms, h.Bonds, h.Residues))
	}
	atoms := make([]*chem.Atom, 0, h.Atoms)
	raw := make([]float64, 0, 3*h.Atoms)
	for i := 0; i < h.Atoms; i++ {
		at := &Atom{A: &chem.Atom{Residue: -1}}
		if err := L.next(at, funcname); err != nil {
			return nil, nil, err
		}
		if at.A == nil || len(at.Coords) != 3 {
			return nil, nil, NewError("input", funcname, fmt.Errorf("line %d: atom %d needs data and 3 coordinates", L.line, i))
		}
		if at.A.Symbol == "" {
			at.A.Symbol = chem.SymbolFromName(at.A.Name)
		}
		atoms = append(atoms, at.A)
		raw = append(raw, at.Coords...)
	}
	bonds := make([]*chem.Bond, 0, h.Bonds)
	for i := 0; i < h.Bonds; i++ {
		b := new(Bond)
		if err := L.next(b, funcname); err != nil {
			return nil, nil, err
		}
		o, err := chem.ParseBondOrder(b.Order)
		if err != nil {
			return nil, nil, NewError("input", funcname, fmt.Errorf("line %d: %w", L.line, err))
		}
		bonds = append(bonds, &chem.Bond{At1: b.At1, At2: b.At2, Order: o})
	}
	res := make([]*chem.Residue, 0, h.Residues)
	for i := 0; i < h.Residues; i++ {
		r := new(Residue)
		if err := L.next(r, funcname); err != nil {
			return nil, nil, err
		}
		R := chem.NewResidue(r.Name, r.MolID, r.Atoms)
		R.Chi = r.Chi
		res = append(res, R)
	}
	T, err := chem.NewTopology(atoms, bonds, res)
	if err != nil {
		return nil, nil, NewError("input", funcname, err)
	}
	coords, err := v3.NewMatrix(raw)
	if err != nil {
		return nil, nil, NewError("input", funcname, err)
	}
	return T, coords, nil
}

// EncodeStructure writes the topology and coordinates to out, in the format read by
// DecodeStructure.
func EncodeStructure(T *chem.Topology, coords *v3.Matrix, out io.Writer) *Error {
	const funcname = "chemjson.EncodeStructure"
	if coords.NVecs() != T.Len() {
		return NewError("postprocess", funcname, fmt.Errorf("%d atoms but %d coordinates", T.Len(), coords.NVecs()))
	}
	enc := json.NewEncoder(out)
	if err := enc.Encode(&Header{Atoms: T.Len(), Bonds: len(T.Bonds), Residues: len(T.Residues)}); err != nil {
		return NewError("postprocess", funcname, err)
	}
	for i, a := range T.Atoms {
		v := coords.Vec(i)
		if err := enc.Encode(&Atom{A: a, Coords: []float64{v.X, v.Y, v.Z}}); err != nil {
			return NewError("postprocess", funcname, err)
		}
	}
	for _, b := range T.Bonds {
		if err := enc.Encode(&Bond{At1: b.At1, At2: b.At2, Order: b.Order.String()}); err != nil {
			return NewError("postprocess", funcname, err)
		}
	}
	for _, r := range T.Residues {
		if err := enc.Encode(&Residue{Name: r.Name, MolID: r.MolID, Atoms: r.Atoms, Chi: r.Chi}); err != nil {
			return NewError("postprocess", funcname, err)
		}
	}
	return nil
}

// DecodeCoords decodes streams from a bufio.Reader containing atomnumber lines, each with
// the coordinates of an atom, into a v3.Matrix with atomnumber rows.
func DecodeCoords(stream *bufio.Reader, atomnumber int) (*v3.Matrix, *Error) {
	const funcname = "chemjson.DecodeCoords"
	L := &lineReader{r: stream}
	rawcoords := make([]float64, 0, 3*atomnumber)
	for i := 0; i < atomnumber; i++ {
		c := new(Coords)
		if err := L.next(c, funcname); err != nil {
			return nil, err
		}
		if len(c.Coords) != 3 {
			return nil, NewError("input", funcname, fmt.Errorf("line %d: %d coordinates", L.line, len(c.Coords)))
		}
		rawcoords = append(rawcoords, c.Coords...)
	}
	coords, err := v3.NewMatrix(rawcoords)
	if err != nil {
		return nil, NewError("input", funcname, err)
	}
	return coords, nil
}

// EncodeCoords encodes a set of coordinates into JSON, one line per atom.
func EncodeCoords(coords *v3.Matrix, out io.Writer) *Error {
	enc := json.NewEncoder(out)
	c := new(Coords)
	for i := 0; i < coords.NVecs(); i++ {
		v := coords.Vec(i)
		c.Coords = []float64{v.X, v.Y, v.Z}
		if err := enc.Encode(c); err != nil {
			return NewError("postprocess", "chemjson.EncodeCoords", err)
		}
	}
	return nil
}
