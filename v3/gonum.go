/*
 * gonum.go, part of mdprep.
 *
 * Copyright 2015 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

//gonum.go contains what is needed for handling the gonum/mat types and the
//spatial/r3 vectors used by the rest of the library.

package v3

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Matrix is a set of vectors in 3D space, one per row.
// Within the package it is understood that a "vector" is a row vector, i.e. the
// cartesian coordinates of a point in 3D space.
type Matrix struct {
	*mat.Dense
}

// Dense2Matrix wraps a Nx3 Dense. It panics if A doesn't have 3 columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	if _, c := A.Dims(); c != 3 {
		panic(not3xXMatrix)
	}
	return &Matrix{A}
}

// NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 || l == 0 {
		return nil, Error{fmt.Sprintf("Input slice lenght %d not divisible by %d, or zero", l, cols), []string{"NewMatrix"}, true}
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

// Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

// FromVecs returns a matrix with one row per vector given.
func FromVecs(vecs []r3.Vec) *Matrix {
	f := make([]float64, 0, 3*len(vecs))
	for _, v := range vecs {
		f = append(f, v.X, v.Y, v.Z)
	}
	return &Matrix{mat.NewDense(len(vecs), 3, f)}
}

// NVecs returns the number of vecs in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(not3xXMatrix)
	}
	return r
}

// Len returns the number of vecs in F. Synonym of NVecs.
func (F *Matrix) Len() int {
	return F.NVecs()
}

// Vec returns the ith vector of the matrix as an r3.Vec
func (F *Matrix) Vec(i int) r3.Vec {
	r := F.RawRowView(i)
	return r3.Vec{X: r[0], Y: r[1], Z: r[2]}
}

// SetVec sets the ith vector of the matrix to v.
func (F *Matrix) SetVec(i int, v r3.Vec) {
	r := F.RawRowView(i)
	r[0], r[1], r[2] = v.X, v.Y, v.Z
}

// Vecs returns all the vectors in the matrix, as r3.Vec.
func (F *Matrix) Vecs() []r3.Vec {
	ret := make([]r3.Vec, F.NVecs())
	for i := range ret {
		ret[i] = F.Vec(i)
	}
	return ret
}

// SomeVecs returns a new matrix with copies of the vectors of F with the given indexes.
func (F *Matrix) SomeVecs(indexes []int) *Matrix {
	ret := Zeros(len(indexes))
	for i, v := range indexes {
		ret.SetVec(i, F.Vec(v))
	}
	return ret
}

// SetVecs puts the vectors in A in the rows of F given by indexes.
func (F *Matrix) SetVecs(A *Matrix, indexes []int) {
	if A.NVecs() != len(indexes) {
		panic(ErrShape)
	}
	for i, v := range indexes {
		F.SetVec(v, A.Vec(i))
	}
}

// Clone returns a copy of F.
func (F *Matrix) Clone() *Matrix {
	return &Matrix{mat.DenseCopyOf(F.Dense)}
}

// Bounds returns the lowest and highest values, per axis, of the vectors in F.
func (F *Matrix) Bounds() (min, max r3.Vec) {
	inf := math.Inf(1)
	min = r3.Vec{X: inf, Y: inf, Z: inf}
	max = r3.Vec{X: -inf, Y: -inf, Z: -inf}
	for i := 0; i < F.NVecs(); i++ {
		v := F.Vec(i)
		min = r3.Vec{X: math.Min(min.X, v.X), Y: math.Min(min.Y, v.Y), Z: math.Min(min.Z, v.Z)}
		max = r3.Vec{X: math.Max(max.X, v.X), Y: math.Max(max.Y, v.Y), Z: math.Max(max.Z, v.Z)}
	}
	return min, max
}

// Float32s returns the coordinates in F as a flat, row-major, single-precision slice,
// which is what accelerated kernels take.
func (F *Matrix) Float32s() []float32 {
	r := F.NVecs()
	ret := make([]float32, 0, 3*r)
	for i := 0; i < r; i++ {
		for _, v := range F.RawRowView(i) {
			ret = append(ret, float32(v))
		}
	}
	return ret
}

// Distance returns the euclidean distance between the ith and jth vectors of F.
func (F *Matrix) Distance(i, j int) float64 {
	return r3.Norm(r3.Sub(F.Vec(i), F.Vec(j)))
}

//Errors

// Error is the error type for the v3 package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

// Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

// PanicMsg is the type of the messages v3 panics with.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrShape     = PanicMsg("goChem/v3: Dimension mismatch")
	not3xXMatrix = PanicMsg("goChem/v3: A VecMatrix should have 3 columns")
)
