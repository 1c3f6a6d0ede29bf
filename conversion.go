/*
 * conversion.go, part of mdprep.
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

import "math"

//This provides useful conversion factors and other constants.
//Internally, lengths are in A, energies in kcal/mol and angles in radians.

//Conversions
const (
	Deg2Rad = math.Pi / 180
	Rad2Deg = 180 / math.Pi
	KJ2Kcal = 1 / 4.184
	Kcal2KJ = 4.184
	Nm2A    = 10.0 //Gromacs lengths are in nm
	A2Nm    = 0.1
)

//Others
const (
	//Coulomb constant in kcal*A/(mol*e^2). Multiplying q1*q2/r by this gives kcal/mol.
	CoulombK = 332.0636
)

// WrapAngle returns the angle a (radians) mapped to (-pi, pi].
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
