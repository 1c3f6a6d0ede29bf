package nonbond

import (
	"math"
	"math/rand"
	"testing"

	chem "github.com/rmera/mdprep"
	"github.com/rmera/mdprep/ff"
	v3 "github.com/rmera/mdprep/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestPair(Te *testing.T) {
	p := Mix(ff.VdW{Sigma: 3, Eps: 0.1}, ff.VdW{Sigma: 4, Eps: 0.4})
	assert.InDelta(Te, 3.5, p.Sigma, 1e-12)
	assert.InDelta(Te, 0.2, p.Eps, 1e-12)

	rmin := math.Pow(2, 1.0/6) * p.Sigma
	assert.InDelta(Te, -p.Eps, LJ(rmin, p), 1e-12)
	assert.InDelta(Te, 0.0, LJ(p.Sigma, p), 1e-12)
	assert.Equal(Te, 0.0, LJ(0, p))
	assert.InDelta(Te, 0.0, r3.Norm(LJForce(r3.Vec{X: rmin}, p)), 1e-12)
	assert.Equal(Te, r3.Vec{}, LJForce(r3.Vec{}, p))

	//forces are minus the derivative of the energy
	h := 1e-6
	for _, r := range []float64{3.2, 3.9, 5, 8} {
		num := -(LJ(r+h, p) - LJ(r-h, p)) / (2 * h)
		d := r3.Scale(r/math.Sqrt(3), r3.Vec{X: 1, Y: 1, Z: 1})
		f := LJForce(d, p)
		assert.InDelta(Te, num, r3.Dot(f, r3.Unit(d)), 1e-6, "r=%g", r)
		num = -(Coulomb(r+h, 0.5, -0.3, 0) - Coulomb(r-h, 0.5, -0.3, 0)) / (2 * h)
		f = CoulombForce(d, 0.5, -0.3, 0)
		assert.InDelta(Te, num, r3.Dot(f, r3.Unit(d)), 1e-6, "r=%g", r)
		assert.Less(Te, r3.Dot(f, d), 0.0, "opposite charges attract")
	}
	assert.InDelta(Te, CoulombConst, Coulomb(0, 1, 1, 1), 1e-9)
	assert.Equal(Te, 0.0, Coulomb(0, 1, 1, 0))
}

func randomSet(Te *testing.T, rnd *rand.Rand, n int) *Set {
	vecs := make([]r3.Vec, n)
	q := make([]float64, n)
	vdw := make([]ff.VdW, n)
	for i := range vecs {
		vecs[i] = r3.Vec{X: 20 * rnd.Float64(), Y: 20 * rnd.Float64(), Z: 20 * rnd.Float64()}
		q[i] = rnd.Float64() - 0.5
		vdw[i] = ff.VdW{Sigma: 2.5 + rnd.Float64(), Eps: 0.05 + 0.1*rnd.Float64()}
	}
	S, err := NewSet(v3.FromVecs(vecs), q, vdw)
	require.NoError(Te, err)
	return S
}

func near(Te *testing.T, ref, got []float32) {
	require.Equal(Te, len(ref), len(got))
	for i := range ref {
		tol := 1e-4 * (1 + math.Abs(float64(ref[i])))
		assert.InDelta(Te, ref[i], got[i], tol, "element %d", i)
	}
}

func TestKernels(Te *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	tgt := randomSet(Te, rnd, 9)
	//not a multiple of either lane width
	src := randomSet(Te, rnd, 13)
	ref := Direct{Softening: 0.5}
	rf, err := ref.Forces(tgt, src)
	require.NoError(Te, err)
	rp, err := ref.Potential(tgt, src)
	require.NoError(Te, err)
	for _, lanes := range []int{4, 8} {
		for _, workers := range []int{1, 3, 16} {
			K, err := NewCPUKernel(lanes, workers, 0.5)
			require.NoError(Te, err)
			f, err := K.Forces(tgt, src)
			require.NoError(Te, err)
			near(Te, rf, f)
			p, err := K.Potential(tgt, src)
			require.NoError(Te, err)
			near(Te, rp, p)
		}
	}
	var _ Kernel = &CPUKernel{}
	var _ Kernel = Direct{}
}

func TestLanePadding(Te *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	src := randomSet(Te, rnd, 5)
	bs := batches(src, 8)
	require.Len(Te, bs, 1)
	for l := 5; l < 8; l++ {
		assert.Equal(Te, 0.0, bs[0].q[l])
		assert.Equal(Te, 0.0, bs[0].eps[l])
		assert.Equal(Te, 0.0, bs[0].sigma[l])
	}
	assert.Len(Te, batches(src, 4), 2)

	//the same sources, explicitly padded with inert atoms, give the same result.
	padded := &Set{
		Pos:   append(append([]float32(nil), src.Pos...), 1, 2, 3, 4, 5, 6, 7, 8, 9),
		Q:     append(append([]float32(nil), src.Q...), 0, 0, 0),
		Sigma: append(append([]float32(nil), src.Sigma...), 0, 0, 0),
		Eps:   append(append([]float32(nil), src.Eps...), 0, 0, 0),
	}
	tgt := randomSet(Te, rnd, 4)
	K, err := NewCPUKernel(8, 2, 0)
	require.NoError(Te, err)
	f1, err := K.Forces(tgt, src)
	require.NoError(Te, err)
	f2, err := K.Forces(tgt, padded)
	require.NoError(Te, err)
	assert.Equal(Te, f1, f2)
}

func TestKernelErrors(Te *testing.T) {
	_, err := NewCPUKernel(6, 1, 0)
	assert.Error(Te, err)
	K, err := NewCPUKernel(4, 0, 0)
	require.NoError(Te, err)
	assert.GreaterOrEqual(Te, K.Workers, 1)
	bad := &Set{Pos: []float32{1, 2}, Q: []float32{1}, Sigma: []float32{1}, Eps: []float32{1}}
	ok := &Set{Pos: []float32{1, 2, 3}, Q: []float32{1}, Sigma: []float32{1}, Eps: []float32{1}}
	_, err = K.Forces(ok, bad)
	assert.Error(Te, err)
	_, err = K.Potential(bad, ok)
	var ce chem.CError
	require.ErrorAs(Te, err, &ce)
	assert.Equal(Te, "nonbond.Set <- nonbond.CPUKernel.Potential", ce.Stack())
	_, err = NewSet(v3.Zeros(2), []float64{1}, nil)
	assert.Error(Te, err)
	S, err := NewSet(v3.Zeros(2), nil, nil)
	require.NoError(Te, err)
	assert.Equal(Te, 2, S.Len())
}
