/*
 * plot_test.go
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
 *
 */

package chemplot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	chem "github.com/rmera/mdprep"
	"github.com/rmera/mdprep/ff"
	"github.com/rmera/mdprep/histo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nonEmpty(Te *testing.T, name string) {
	st, err := os.Stat(name)
	require.NoError(Te, err)
	assert.Greater(Te, st.Size(), int64(0))
}

func TestNeighborHisto(Te *testing.T) {
	h := histo.NewData(histo.Uniform(0, 10, 5), []float64{1, 1, 3, 5, 5, 5, 9})
	name := filepath.Join(Te.TempDir(), "neigh.png")
	require.NoError(Te, NeighborHisto(h, "Neighbors", name))
	nonEmpty(Te, name)
	assert.Error(Te, NeighborHisto(nil, "x", name))
}

func TestLJProfile(Te *testing.T) {
	params := []ff.VdW{{Sigma: 3.4, Eps: 0.086}, {Sigma: 2.96, Eps: 0.21}}
	name := filepath.Join(Te.TempDir(), "lj.png")
	require.NoError(Te, LJProfile(params, []string{"CT", "O"}, 10, 200, "LJ", name))
	nonEmpty(Te, name)
	assert.Error(Te, LJProfile(params, []string{"CT"}, 10, 200, "LJ", name))
	assert.Error(Te, LJProfile(params, []string{"CT", "O"}, 10, 1, "LJ", name))
	assert.Error(Te, LJProfile(params, []string{"CT", "O"}, 1, 200, "LJ", name))
	assert.Error(Te, LJProfile([]ff.VdW{{}}, []string{"HO"}, 10, 200, "LJ", name))
}

func TestChiPlot(Te *testing.T) {
	res := []*chem.Residue{
		chem.NewResidue("PHE", 1, nil),
		chem.NewResidue("GLY", 2, nil),
		chem.NewResidue("TRP", 3, nil),
		chem.NewResidue("LIG", 4, nil),
		chem.NewResidue("SER", 5, nil),
	}
	res[0].Chi = []float64{-math.Pi / 3, math.Pi / 2}
	res[2].Chi = []float64{math.Pi, 3 * math.Pi / 2}
	res[3].Chi = []float64{1, 1}
	res[4].Chi = []float64{1}
	T, err := chem.NewTopology([]*chem.Atom{}, nil, res)
	require.NoError(Te, err)
	all := ChiList(T, nil, false)
	require.Len(Te, all, 2)
	assert.InDelta(Te, -60, all[0].Chi1, 1e-9)
	assert.Equal(Te, 2, all[1].Res)
	assert.Len(Te, ChiList(T, []string{"PHE"}, true), 1)
	assert.Len(Te, ChiList(T, []string{"PHE"}, false), 1)
	assert.InDelta(Te, -90, wrapDeg(all[1].Chi2), 1e-9)
	assert.InDelta(Te, -180, wrapDeg(all[1].Chi1), 1e-9)

	name := filepath.Join(Te.TempDir(), "chi.png")
	require.NoError(Te, ChiPlot(all, []int{2}, "Rotamers", name))
	nonEmpty(Te, name)
	assert.Error(Te, ChiPlot(nil, nil, "Rotamers", name))
	_, err = getShape(4)
	assert.Error(Te, err)
}
