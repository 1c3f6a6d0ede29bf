/*
 * pair.go, part of mdprep.
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

package nonbond

import (
	"math"

	chem "github.com/rmera/mdprep"
	"github.com/rmera/mdprep/ff"
	"gonum.org/v1/gonum/spatial/r3"
)

// CoulombConst is 1/(4 pi eps0) in kcal A /(mol e^2).
const CoulombConst = chem.CoulombK

// Mix returns the Lennard-Jones parameters for a pair of atoms, using the Lorentz-Berthelot
// rules: the arithmetic mean of the sigmas and the geometric mean of the epsilons.
func Mix(a, b ff.VdW) ff.VdW {
	return ff.VdW{Sigma: (a.Sigma + b.Sigma) / 2, Eps: math.Sqrt(a.Eps * b.Eps)}
}

// LJ returns the Lennard-Jones energy, in kcal/mol, for two atoms at a distance r (A)
// with the given (mixed) parameters. It returns 0 for r=0.
func LJ(r float64, p ff.VdW) float64 {
	if r <= 0 {
		return 0
	}
	sr6 := math.Pow(p.Sigma/r, 6)
	return 4 * p.Eps * (sr6*sr6 - sr6)
}

// LJForce returns the Lennard-Jones force, in kcal/(mol A), on an atom at d from the
// other atom of the pair. A positive projection on d means repulsion.
func LJForce(d r3.Vec, p ff.VdW) r3.Vec {
	r2 := r3.Norm2(d)
	if r2 == 0 {
		return r3.Vec{}
	}
	return r3.Scale(ljScalar(r2, p.Sigma, p.Eps), d)
}

// the LJ force is this times the displacement.
func ljScalar(r2, sigma, eps float64) float64 {
	s2 := sigma * sigma / r2
	sr6 := s2 * s2 * s2
	return 24 * eps * (2*sr6*sr6 - sr6) / r2
}

// Coulomb returns the electrostatic energy, in kcal/mol, of two charges (in e) at a
// distance r. soft2 is the square of a softening length which avoids the singularity at r=0.
func Coulomb(r, q0, q1, soft2 float64) float64 {
	den := math.Sqrt(r*r + soft2)
	if den == 0 {
		return 0
	}
	return CoulombConst * q0 * q1 / den
}

// CoulombForce returns the electrostatic force on the charge q0 at d from q1, with the
// softened form k q0 q1/(r^2+soft2) along d.
func CoulombForce(d r3.Vec, q0, q1, soft2 float64) r3.Vec {
	r2 := r3.Norm2(d)
	if r2 == 0 {
		return r3.Vec{}
	}
	return r3.Scale(coulombScalar(r2, q0*q1, soft2), d)
}

func coulombScalar(r2, qq, soft2 float64) float64 {
	return CoulombConst * qq / ((r2 + soft2) * math.Sqrt(r2))
}
