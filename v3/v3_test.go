/*
 * v3_test.go
 *
 * Copyright 2013 Raul Mera <rmera@zinc>
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
 *
 */

package v3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewMatrix(Te *testing.T) {
	_, err := NewMatrix([]float64{1, 2, 3, 4})
	require.Error(Te, err)
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	require.NoError(Te, err)
	assert.Equal(Te, 3, A.NVecs())
	assert.Equal(Te, r3.Vec{X: 4, Y: 5, Z: 6}, A.Vec(1))
	assert.Panics(Te, func() { Dense2Matrix(mat.NewDense(2, 2, nil)) })
}

func TestVecs(Te *testing.T) {
	vecs := []r3.Vec{{X: 1, Y: -1, Z: 0}, {X: -2, Y: 5, Z: 3}, {X: 0.5, Y: 0, Z: -7}}
	A := FromVecs(vecs)
	assert.Equal(Te, vecs, A.Vecs())
	A.SetVec(0, r3.Vec{X: 9, Y: 9, Z: 9})
	assert.Equal(Te, 9.0, A.At(0, 1))
	min, max := A.Bounds()
	assert.Equal(Te, r3.Vec{X: -2, Y: 0, Z: -7}, min)
	assert.Equal(Te, r3.Vec{X: 9, Y: 9, Z: 9}, max)
	sub := A.SomeVecs([]int{2, 1})
	assert.Equal(Te, vecs[2], sub.Vec(0))
	B := A.Clone()
	B.SetVecs(sub, []int{0, 1})
	assert.Equal(Te, vecs[2], B.Vec(0))
	assert.Equal(Te, r3.Vec{X: 9, Y: 9, Z: 9}, A.Vec(0), "Clone must not share data")
	f := A.Float32s()
	require.Len(Te, f, 9)
	assert.Equal(Te, float32(-7), f[8])
	assert.InDelta(Te, 5.0, FromVecs([]r3.Vec{{}, {X: 3, Y: 4}}).Distance(0, 1), 1e-12)
}
