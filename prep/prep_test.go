package prep

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	chem "github.com/rmera/mdprep"
	"github.com/rmera/mdprep/config"
	"github.com/rmera/mdprep/ff"
	"github.com/rmera/mdprep/nblist"
	"github.com/rmera/mdprep/nonbond"
	v3 "github.com/rmera/mdprep/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const ligFF = `[ atomtypes ]
CT  6  12.01  0.0  A  3.39967e-01  4.57730e-01
OH  8  16.00  0.0  A  3.06647e-01  8.80314e-01
HO  1   1.008 0.0  A  0.0          0.0
HC  1   1.008 0.0  A  2.64953e-01  6.56888e-02

[ bondtypes ]
CT OH 1 0.14100 267776.0
OH HO 1 0.09600 462750.4
CT HC 1 0.10900 284512.0

[ angletypes ]
CT OH HO 1 108.500 460.240
HC CT OH 1 109.500 418.400
HC CT HC 1 109.500 292.880

[ dihedraltypes ]
X  CT OH X 9 0.0 0.6276 3 3
`

const protFF = `[ atomtypes ]
N   7  14.01  0.0  A  3.25000e-01  7.11280e-01
C*  6  12.01  0.0  A  3.39967e-01  3.59824e-01
C   6  12.01  0.0  A  3.39967e-01  3.59824e-01
`

// a more polar hydroxyl for methanol
const mohFF = `[ atomtypes ]
HO  1   1.008 0.0  A  0.1  0.2
`

func keyed(Te *testing.T, s string) *ff.Keyed {
	K, err := ff.Read(bufio.NewReader(strings.NewReader(s)))
	require.NoError(Te, err)
	return K
}

func params(Te *testing.T) *ParamSet {
	return &ParamSet{
		ProtGeneric: keyed(Te, protFF),
		LigGeneric:  keyed(Te, ligFF),
		LigSpecific: map[string]*ff.Keyed{"MOH": keyed(Te, mohFF)},
	}
}

type tat struct {
	name, sym, ff, mol string
	q                  float64
	het                bool
	pos                r3.Vec
}

// methanol, next to a bit of protein and a water oxygen.
func system(Te *testing.T) (*chem.Topology, *v3.Matrix) {
	ats := []tat{
		{"C1", "C", "CT", "MOH", 0.12, true, r3.Vec{}},
		{"O1", "O", "OH", "MOH", -0.6, true, r3.Vec{X: 1.43}},
		{"HO", "H", "HO", "MOH", 0.4, true, r3.Vec{X: 1.75, Y: 0.9}},
		{"H1", "H", "HC", "MOH", 0.03, true, r3.Vec{X: -0.36, Y: 1.03}},
		{"H2", "H", "HC", "MOH", 0.03, true, r3.Vec{X: -0.36, Y: -0.51, Z: 0.89}},
		{"H3", "H", "HC", "MOH", 0.02, true, r3.Vec{X: -0.36, Y: -0.51, Z: -0.89}},
		{"N", "N", "N", "ALA", -0.4, false, r3.Vec{X: 8}},
		{"CA", "C", "CX", "ALA", 0.03, false, r3.Vec{X: 9.46}},
		{"O", "O", "OW", "HOH", -0.83, true, r3.Vec{X: 30}},
	}
	atoms := make([]*chem.Atom, len(ats))
	pos := make([]r3.Vec, len(ats))
	for i, v := range ats {
		atoms[i] = chem.NewAtom(v.name, v.sym)
		atoms[i].MolName = v.mol
		atoms[i].Het = v.het
		atoms[i].SetFF(v.ff, v.q)
		pos[i] = v.pos
	}
	bonds := []*chem.Bond{
		{At1: 0, At2: 1, Order: chem.Single},
		{At1: 1, At2: 2, Order: chem.Single},
		{At1: 0, At2: 3, Order: chem.Single},
		{At1: 0, At2: 4, Order: chem.Single},
		{At1: 0, At2: 5, Order: chem.Single},
		{At1: 6, At2: 7, Order: chem.Single},
	}
	res := []*chem.Residue{
		chem.NewResidue("MOH", 1, []int{0, 1, 2, 3, 4, 5}),
		chem.NewResidue("ALA", 2, []int{6, 7}),
		chem.NewResidue("HOH", 3, []int{8}),
	}
	T, err := chem.NewTopology(atoms, bonds, res)
	require.NoError(Te, err)
	return T, v3.FromVecs(pos)
}

func TestSplit(Te *testing.T) {
	T, coords := system(Te)
	for _, lig := range []string{"", "moh"} {
		dyn, sta, err := Split(T, coords, lig)
		require.NoError(Te, err)
		assert.Equal(Te, 6, dyn.Len())
		assert.Equal(Te, 3, sta.Len())
		assert.Equal(Te, []int{6, 7, 8}, sta.Index)
		assert.Len(Te, dyn.T.Bonds, 5)
		assert.Len(Te, sta.T.Bonds, 1)
		assert.Equal(Te, 1.43, dyn.Coords.Vec(1).X)
		assert.Equal(Te, 30.0, sta.Coords.Vec(2).X)
	}
	_, _, err := Split(T, coords, "LIG")
	assert.Error(Te, err)
	_, _, err = Split(T, coords.SomeVecs([]int{0, 1}), "MOH")
	assert.Error(Te, err)
}

func TestNew(Te *testing.T) {
	T, coords := system(Te)
	dyn, sta, err := Split(T, coords, "MOH")
	require.NoError(Te, err)
	O := DefaultOptions()
	O.Ligand = "MOH"
	M, err := New(dyn, sta, params(Te), O)
	require.NoError(Te, err)

	assert.Len(Te, M.Params.Bonds, 5)
	assert.Len(Te, M.Params.Angles, 7)
	assert.Len(Te, M.Params.Dihedrals, 3)
	assert.Empty(Te, M.Params.Impropers)
	assert.InDelta(Te, 1.0, M.Params.VdW[2].Sigma, 1e-9, "specific parameters win")
	assert.InDelta(Te, 0.2*chem.KJ2Kcal, M.Params.VdW[2].Eps, 1e-9)

	//static atoms only have nonbonded parameters
	require.NotNil(Te, M.StaticParams)
	assert.Empty(Te, M.StaticParams.Bonds)
	assert.InDelta(Te, 12.01, M.StaticParams.Mass[1], 1e-9)
	assert.InDelta(Te, 3.39967, M.StaticParams.VdW[1].Sigma, 1e-9)
	assert.Equal(Te, ff.PlaceholderMass, M.StaticParams.Mass[2])
	assert.Equal(Te, ff.VdW{}, M.StaticParams.VdW[2])

	assert.Equal(Te, 12, M.Excluded.Len())
	assert.Equal(Te, 3, M.Scaled14.Len())
	for p := range M.Scaled14 {
		assert.False(Te, M.Excluded.Has(p[0], p[1]))
	}
	assert.Equal(Te, 15, M.List.Pairs())
	assert.InDelta(Te, -0.36-nblist.DefaultPadding, M.Box.Lo.X, 1e-9)
	assert.InDelta(Te, 0.89+nblist.DefaultPadding, M.Box.Hi.Z, 1e-9)

	over, err := M.Clashes(0)
	require.NoError(Te, err)
	assert.Empty(Te, over)
	ov, idx, err := M.WorstContact()
	require.NoError(Te, err)
	assert.Less(Te, ov, 0.0)
	assert.Equal(Te, 1, idx[0], "the hydroxyl O is the closest to the protein N")
	assert.Equal(Te, 0, idx[1])
}

func TestNewErrors(Te *testing.T) {
	T, coords := system(Te)
	dyn, sta, err := Split(T, coords, "MOH")
	require.NoError(Te, err)
	P := params(Te)
	_, err = New(dyn, sta, &ParamSet{LigGeneric: P.LigGeneric}, DefaultOptions())
	assert.True(Te, errors.Is(err, chem.ErrMissingFFSet))
	_, err = New(dyn, sta, &ParamSet{ProtGeneric: P.ProtGeneric}, DefaultOptions())
	assert.True(Te, errors.Is(err, chem.ErrMissingFFSet))
	_, err = New(dyn, sta, nil, DefaultOptions())
	assert.True(Te, errors.Is(err, chem.ErrMissingFFSet))

	dyn.T.Atoms[3].FFType = ""
	M, err := New(dyn, sta, P, DefaultOptions())
	assert.Nil(Te, M)
	assert.True(Te, errors.Is(err, chem.ErrMissingType))
	dyn.T.Atoms[3].FFType = "HC"

	dyn.T.Atoms[2].FFType = "HX"
	_, err = New(dyn, sta, P, DefaultOptions())
	assert.True(Te, errors.Is(err, chem.ErrMissingBondedParam))
}

func TestMove(Te *testing.T) {
	T, coords := system(Te)
	dyn, sta, err := Split(T, coords, "MOH")
	require.NoError(Te, err)
	M, err := New(dyn, sta, params(Te), DefaultOptions())
	require.NoError(Te, err)
	shift := func(d float64) *v3.Matrix {
		c := dyn.Coords.Clone()
		for i := 0; i < c.NVecs(); i++ {
			c.SetVec(i, r3.Add(c.Vec(i), r3.Vec{Y: d}))
		}
		return c
	}
	orig := dyn.Coords.Clone()
	rebuilt, err := M.Move(shift(0.5))
	require.NoError(Te, err)
	assert.False(Te, rebuilt)
	M.Dynamic.Coords = orig
	rebuilt, err = M.Move(shift(1.5))
	require.NoError(Te, err)
	assert.True(Te, rebuilt)
	assert.Equal(Te, 0.0, M.List.MaxDisplacement())
	_, err = M.Move(coords)
	assert.Error(Te, err)
}

func TestExternalForces(Te *testing.T) {
	T, coords := system(Te)
	dyn, sta, err := Split(T, coords, "MOH")
	require.NoError(Te, err)
	M, err := New(dyn, sta, params(Te), DefaultOptions())
	require.NoError(Te, err)
	qd, qs := M.Charges()
	assert.Equal(Te, -0.6, qd[1])
	assert.Equal(Te, -0.83, qs[2])

	ref, err := M.ExternalForces(nonbond.Direct{Softening: 0.5})
	require.NoError(Te, err)
	require.Len(Te, ref, 18)
	K, err := nonbond.NewCPUKernel(4, 2, 0.5)
	require.NoError(Te, err)
	got, err := M.ExternalForces(K)
	require.NoError(Te, err)
	nonzero := false
	for i := range ref {
		assert.InDelta(Te, ref[i], got[i], 1e-4)
		nonzero = nonzero || ref[i] != 0
	}
	assert.True(Te, nonzero)

	alone, _, err := Split(T, coords, "MOH")
	require.NoError(Te, err)
	M2, err := New(alone, &Part{}, params(Te), DefaultOptions())
	require.NoError(Te, err)
	assert.Nil(Te, M2.StaticParams)
	f, err := M2.ExternalForces(K)
	require.NoError(Te, err)
	assert.Equal(Te, make([]float32, 18), f)
	_, _, err = M2.WorstContact()
	assert.Error(Te, err)
}

func TestLoadParams(Te *testing.T) {
	dir := Te.TempDir()
	write := func(name, content string) string {
		n := filepath.Join(dir, name)
		require.NoError(Te, os.WriteFile(n, []byte(content), 0o644))
		return n
	}
	C := config.Default()
	C.ProtGeneric = write("prot.ff", protFF)
	C.LigGeneric = write("lig.ff", ligFF)
	moh := filepath.Join(dir, "moh.ff.zst")
	require.NoError(Te, keyed(Te, mohFF).WriteFile(moh))
	C.LigSpecific = map[string]string{"MOH": moh}
	P, err := LoadParams(C)
	require.NoError(Te, err)
	assert.Contains(Te, P.LigSpecific, "MOH")
	assert.InDelta(Te, 14.01, P.ProtGeneric.Mass["N"], 1e-9)
	_, ok := P.LigGeneric.Bond("HC", "CT")
	assert.True(Te, ok)

	C.LigGeneric = filepath.Join(dir, "nope.ff")
	_, err = LoadParams(C)
	assert.Error(Te, err)
}
