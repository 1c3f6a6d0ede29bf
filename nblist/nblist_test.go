package nblist

import (
	"math"
	"testing"

	chem "github.com/rmera/mdprep"
	"github.com/rmera/mdprep/chemgraph"
	"github.com/rmera/mdprep/ff"
	v3 "github.com/rmera/mdprep/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// cyclobutane-like ring, heavy atoms only.
func ring(Te *testing.T) *ff.Indexed {
	g := ff.NewKeyed()
	g.Bonds[[2]string{"CT", "CT"}] = ff.BondParam{K: 310, R0: 1.55}
	g.Angles[[3]string{"CT", "CT", "CT"}] = ff.AngleParam{K: 40, Theta0: math.Pi / 2}
	g.Dihedrals[[4]string{"X", "CT", "CT", "X"}] = []ff.DihedralParam{{Barrier: 1.4, Periodicity: 3, Divider: 9}}
	atoms := make([]*chem.Atom, 4)
	for i := range atoms {
		atoms[i] = chem.NewAtom("C", "C")
		atoms[i].FFType = "CT"
	}
	bonds := []*chem.Bond{{At1: 0, At2: 1}, {At1: 1, At2: 2}, {At1: 2, At2: 3}, {At1: 3, At2: 0}}
	G, err := chemgraph.New(4, bonds)
	require.NoError(Te, err)
	I, err := ff.Resolve(g, nil, atoms, bonds, G.Adjacency())
	require.NoError(Te, err)
	return I
}

func TestMasksRing(Te *testing.T) {
	I := ring(Te)
	ex, s14 := BuildMasks(I)
	//in a 4-ring, the 1-4 pairs are also bonded
	assert.Equal(Te, 4, s14.Len())
	assert.True(Te, s14.Has(0, 1))
	assert.True(Te, s14.Has(3, 0))
	for k := range ex {
		assert.False(Te, s14.Has(k[0], k[1]), "pair %v in both sets", k)
	}
	assert.Equal(Te, [][2]int{{0, 2}, {1, 3}}, ex.Sorted())
}

func TestMasksChain(Te *testing.T) {
	I := &ff.Indexed{
		Bonds:     map[[2]int]ff.BondParam{{0, 1}: {}, {1, 2}: {}, {2, 3}: {}, {3, 4}: {}},
		Angles:    map[[3]int]ff.AngleParam{{0, 1, 2}: {}, {3, 2, 1}: {}, {2, 3, 4}: {}},
		Dihedrals: map[[4]int][]ff.DihedralParam{{0, 1, 2, 3}: nil, {1, 2, 3, 4}: nil},
	}
	ex, s14 := BuildMasks(I)
	assert.Equal(Te, [][2]int{{0, 1}, {0, 2}, {1, 2}, {1, 3}, {2, 3}, {2, 4}, {3, 4}}, ex.Sorted())
	assert.Equal(Te, [][2]int{{0, 3}, {1, 4}}, s14.Sorted())
	assert.False(Te, ex.Has(0, 4))
	ex.Remove(1, 0)
	assert.False(Te, ex.Has(0, 1))
}

func TestBox(Te *testing.T) {
	coords := v3.FromVecs([]r3.Vec{{X: 0, Y: 0, Z: 0}, {X: 10, Y: 2, Z: -4}})
	B, err := NewBox(coords, DefaultPadding)
	require.NoError(Te, err)
	assert.Equal(Te, r3.Vec{X: -15, Y: -15, Z: -19}, B.Lo)
	assert.Equal(Te, r3.Vec{X: 25, Y: 17, Z: 15}, B.Hi)
	assert.Equal(Te, r3.Vec{X: 40, Y: 32, Z: 34}, B.Extent())
	assert.True(Te, B.Contains(r3.Vec{X: 24, Y: 0, Z: 0}))
	assert.False(Te, B.Contains(r3.Vec{X: 26, Y: 0, Z: 0}))
	d := B.MinImage(r3.Vec{X: 30, Y: -20, Z: 5})
	assert.InDelta(Te, -10, d.X, 1e-12)
	assert.InDelta(Te, 12, d.Y, 1e-12)
	assert.InDelta(Te, 5, d.Z, 1e-12)
	_, err = NewBox(nil, 1)
	assert.Error(Te, err)
	_, err = NewBox(coords, -1)
	var ce chem.CError
	require.ErrorAs(Te, err, &ce)
	assert.Equal(Te, "nblist.NewBox", ce.Stack())
}

// a 3x3x3 grid with spacing 3 A, and one far atom.
func grid() *v3.Matrix {
	vecs := make([]r3.Vec, 0, 28)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				vecs = append(vecs, r3.Vec{X: 3 * float64(i), Y: 3 * float64(j), Z: 3 * float64(k)})
			}
		}
	}
	return v3.FromVecs(append(vecs, r3.Vec{X: 100, Y: 100, Z: 100}))
}

func TestBuild(Te *testing.T) {
	coords := grid()
	B, err := NewBox(coords, DefaultPadding)
	require.NoError(Te, err)
	L := Build(coords, B, 3, 0.5)
	require.Equal(Te, coords.NVecs(), L.Len())
	c2 := 3.5 * 3.5
	for i := 0; i < L.Len(); i++ {
		for j := 0; j < L.Len(); j++ {
			if i == j {
				assert.False(Te, L.Are(i, i))
				continue
			}
			assert.Equal(Te, L.Are(i, j), L.Are(j, i), "list must be symmetric")
			d := B.MinImage(r3.Sub(coords.Vec(i), coords.Vec(j)))
			assert.Equal(Te, r3.Norm2(d) < c2, L.Are(i, j), "pair %d %d", i, j)
		}
	}
	//the corner has 3 neighbors, the center 6, the far atom none.
	assert.Len(Te, L.Of(0), 3)
	assert.Len(Te, L.Of(13), 6)
	assert.Empty(Te, L.Of(27))
	assert.Equal(Te, 54, L.Pairs())

	S := L.Stats(1)
	assert.Equal(Te, 0, S.Min)
	assert.Equal(Te, 6, S.Max)
	assert.InDelta(Te, 108.0/28, S.Mean, 1e-12)
	assert.Equal(Te, 1.0, S.Counts.View()[0])
	assert.Equal(Te, 8.0, S.Counts.View()[3])
	assert.Equal(Te, 1.0, S.Counts.View()[6])

	empty := Build(nil, nil, 3, 1)
	assert.Equal(Te, 0, empty.Len())
}

func TestRebuildTrigger(Te *testing.T) {
	coords := grid()
	B, err := NewBox(coords, DefaultPadding)
	require.NoError(Te, err)
	L := Build(coords, B, DefaultCutoff, DefaultSkin)
	assert.False(Te, L.NeedsRebuild())

	moved := coords.Clone()
	moved.SetVec(5, r3.Add(coords.Vec(5), r3.Vec{X: 0.9}))
	d, err := L.Update(moved)
	require.NoError(Te, err)
	assert.InDelta(Te, 0.9, d, 1e-12)
	assert.False(Te, L.NeedsRebuild())

	moved.SetVec(5, r3.Add(coords.Vec(5), r3.Vec{X: 1.1}))
	_, err = L.Update(moved)
	require.NoError(Te, err)
	assert.True(Te, L.NeedsRebuild())
	//going back doesn't undo the trigger
	_, err = L.Update(coords)
	require.NoError(Te, err)
	assert.True(Te, L.NeedsRebuild())
	assert.InDelta(Te, 1.1, L.MaxDisplacement(), 1e-12)

	h, err := L.DisplacementHisto(moved, 4)
	require.NoError(Te, err)
	assert.Equal(Te, float64(coords.NVecs()-1), h.View()[0])
	assert.Equal(Te, 1.0, h.View()[2])
	_, err = L.DisplacementHisto(moved, 0)
	assert.Error(Te, err)
	_, err = L.DisplacementHisto(v3.Zeros(3), 4)
	var ce chem.CError
	require.ErrorAs(Te, err, &ce)
	assert.Equal(Te, "nblist.Displacements <- nblist.DisplacementHisto", ce.Stack())

	L.Rebuild(moved)
	assert.False(Te, L.NeedsRebuild())
	assert.Equal(Te, 0.0, L.MaxDisplacement())

	_, err = L.Update(v3.Zeros(3))
	assert.Error(Te, err)
}
