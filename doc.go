/*
 * doc.go, part of mdprep.
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

/*
Package chem is the main package of mdprep. It provides the atom, bond, residue and topology
structures, element data, the error kinds used across the library, and the geometric
primitives (local bond directions, signed dihedrals and orientations) on which the
side-chain builder is based.

	**mdprep Capabilities**

	Builds side-chain coordinates, including hydrogens, from backbone atoms and chi angles
	(package sidechain).

	Reads Gromacs-style force-field parameter files, plain or zstd-compressed, merges
	generic and molecule-specific sets and resolves them against a molecule's bond graph
	(package ff).

	Builds 1-2/1-3 exclusions, 1-4 scaled pairs and Verlet neighbor lists (package nblist).

	Evaluates Lennard-Jones and Coulomb pair terms over lane-padded batches (package nonbond).

	Prepares the whole thing for a simulation (package prep), from a YAML configuration
	(package config) and a JSON structure (package chemjson), with some plots (chemplot).

Coordinates are kept apart from the topology, in v3.Matrix objects (one row per atom).
Lengths are in A, energies in kcal/mol and angles in radians.
*/
package chem
