/*
 * geometric.go, part of mdprep.
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

package chem

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

const appzero float64 = 1e-12 //Everything equal or less than this is considered zero.

// Angle returns the angle (radians) between the vectors v1 and v2.
func Angle(v1, v2 r3.Vec) float64 {
	n := r3.Norm(v1) * r3.Norm(v2)
	if n <= appzero {
		return 0
	}
	c := r3.Dot(v1, v2) / n
	//floating point errors can take us slightly out of [-1,1]
	c = math.Max(-1, math.Min(1, c))
	return math.Acos(c)
}

// Dihedral calculate the dihedral between the points a, b, c, d, where the first plane
// is defined by abc and the second by bcd.
func Dihedral(a, b, c, d r3.Vec) float64 {
	return BondDihedral(r3.Sub(b, a), r3.Sub(c, b), r3.Sub(d, c))
}

// BondDihedral returns the signed dihedral angle (radians, in [-pi,pi]) defined
// by three consecutive bond vectors: b1 (a to b), b2 (b to c, the central bond) and
// b3 (c to d). Only the directions of the vectors matter.
func BondDihedral(b1, b2, b3 r3.Vec) float64 {
	b1scaled := r3.Scale(r3.Norm(b2), b1)
	n2 := r3.Cross(b2, b3)
	first := r3.Dot(b1scaled, n2)
	second := r3.Dot(r3.Cross(b1, b2), n2)
	return math.Atan2(first, second)
}

// Orientation is a unit quaternion that takes vectors in a local
// frame to the world frame.
type Orientation quat.Number

// Identity returns the orientation that leaves every vector unchanged.
func Identity() Orientation {
	return Orientation{Real: 1}
}

// NewOrientation returns the rotation of angle radians around the axis given.
// The axis does not need to be normalized, but it can't be zero.
func NewOrientation(angle float64, axis r3.Vec) Orientation {
	n := r3.Norm(axis)
	if n <= appzero || angle == 0 {
		return Identity()
	}
	sin, cos := math.Sincos(angle / 2)
	s := sin / n
	return Orientation{Real: cos, Imag: axis.X * s, Jmag: axis.Y * s, Kmag: axis.Z * s}
}

// OrientationBetween returns the minimal rotation that takes the unit vector from
// onto the unit vector to. Antiparallel vectors give a half turn around an arbitrary
// axis perpendicular to from.
func OrientationBetween(from, to r3.Vec) Orientation {
	d := r3.Dot(from, to)
	if d < -1+1e-9 {
		axis := r3.Cross(r3.Vec{X: 1}, from)
		if r3.Norm(axis) < 1e-6 {
			axis = r3.Cross(r3.Vec{Y: 1}, from)
		}
		return NewOrientation(math.Pi, axis)
	}
	c := r3.Cross(from, to)
	q := quat.Number{Real: 1 + d, Imag: c.X, Jmag: c.Y, Kmag: c.Z}
	return Orientation(quat.Scale(1/quat.Abs(q), q))
}

// Rotate returns the vector v rotated by the receiver.
func (O Orientation) Rotate(v r3.Vec) r3.Vec {
	q := quat.Number(O)
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return r3.Vec{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

// Then returns the orientation that applies the receiver first, and then O2.
func (O Orientation) Then(O2 Orientation) Orientation {
	q := quat.Mul(quat.Number(O2), quat.Number(O))
	return Orientation(quat.Scale(1/quat.Abs(q), q))
}

// Inverse returns the inverse rotation of the receiver.
func (O Orientation) Inverse() Orientation {
	return Orientation(quat.Conj(quat.Number(O)))
}

// RotateAbout rotates the point p by angle radians around the axis that
// passes through the points ax1 and ax2.
func RotateAbout(p, ax1, ax2 r3.Vec, angle float64) r3.Vec {
	o := NewOrientation(angle, r3.Sub(ax2, ax1))
	return r3.Add(ax1, o.Rotate(r3.Sub(p, ax1)))
}
