package clash

import (
	"testing"

	chem "github.com/rmera/mdprep"
	"github.com/rmera/mdprep/ff"
	"github.com/rmera/mdprep/nblist"
	v3 "github.com/rmera/mdprep/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestOverlaps(Te *testing.T) {
	coords := v3.FromVecs([]r3.Vec{{}, {X: 1.5}, {X: 10}, {X: 10, Y: 2.5}})
	vdw := []ff.VdW{{Sigma: 3, Eps: 0.1}, {Sigma: 3, Eps: 0.1}, {Sigma: 3, Eps: 0.1}, {Sigma: 3, Eps: 0.1}}
	ov, err := Overlaps(coords, vdw, nil, 0)
	require.NoError(Te, err)
	require.Len(Te, ov, 2)
	assert.Equal(Te, [2]int{0, 1}, [2]int{ov[0].I, ov[0].J})
	assert.InDelta(Te, 1.5, ov[0].Overlap, 1e-12)
	assert.InDelta(Te, 0.5, ov[1].Overlap, 1e-12)

	skip := nblist.PairSet{}
	skip.Add(1, 0)
	ov, err = Overlaps(coords, vdw, nil, 0, skip)
	require.NoError(Te, err)
	require.Len(Te, ov, 1)
	assert.Equal(Te, 2, ov[0].I)

	L := nblist.Build(coords, nil, 2, 0)
	ov, err = Overlaps(coords, vdw, L, 0)
	require.NoError(Te, err)
	assert.Len(Te, ov, 1, "only pairs in the list are checked")

	ov, err = Overlaps(coords, vdw, nil, 1)
	require.NoError(Te, err)
	assert.Len(Te, ov, 1)
	_, err = Overlaps(coords, vdw[:2], nil, 0)
	var ce chem.CError
	require.ErrorAs(Te, err, &ce)
	assert.Equal(Te, "clash.Overlaps", ce.Stack())
}

func TestHighestOverlap(Te *testing.T) {
	test := v3.FromVecs([]r3.Vec{{}, {X: 1}})
	env := v3.FromVecs([]r3.Vec{{X: 5}, {X: 3}})
	vdw := []ff.VdW{{Sigma: 3}, {Sigma: 3}}
	o, idx := HighestOverlap(test, env, vdw, vdw)
	assert.InDelta(Te, 1.0, o, 1e-12)
	assert.Equal(Te, [2]int{1, 1}, idx)
	d, idx := LowestDist(test, env)
	assert.InDelta(Te, 2.0, d, 1e-12)
	assert.Equal(Te, [2]int{1, 1}, idx)
	f := GeometryOnlyHighestOverlap(vdw, vdw)
	assert.Equal(Te, o, f(test, env))
}

func TestDeClash(Te *testing.T) {
	test := v3.FromVecs([]r3.Vec{{}, {X: 1.5}, {X: 1.5, Y: 1.5}})
	env := v3.FromVecs([]r3.Vec{{X: 1.5, Y: 2.5, Z: 0.3}})
	tvdw := []ff.VdW{{}, {}, {Sigma: 3, Eps: 0.1}}
	evdw := []ff.VdW{{Sigma: 3, Eps: 0.1}}
	f := GeometryOnlyHighestOverlap(tvdw, evdw)
	initial := f(test, env)
	require.Greater(Te, initial, 1.0)
	tor := []Torsion{{At1: 0, At2: 1, Moving: []int{2}}}
	res, over, err := DeClash(test, env, tor, f, 0, 10*chem.Deg2Rad, 100)
	require.NoError(Te, err)
	assert.LessOrEqual(Te, over, 0.0)
	assert.InDelta(Te, over, f(res, env), 1e-12)
	//the moving atom stays on its circle, the test matrix is not modified
	assert.InDelta(Te, 1.5, res.Distance(1, 2), 1e-9)
	assert.Equal(Te, r3.Vec{X: 1.5, Y: 1.5}, test.Vec(2))
	assert.Equal(Te, test.Vec(0), res.Vec(0))

	_, _, err = DeClash(test, env, nil, f, 0, 0, 10)
	var ce chem.CError
	require.ErrorAs(Te, err, &ce)
	assert.Equal(Te, "clash.DeClash", ce.Stack())
}
