package nonbond

import (
	"math"
	"runtime"

	chem "github.com/rmera/mdprep"
	"github.com/rmera/mdprep/ff"
	v3 "github.com/rmera/mdprep/v3"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

// Set is a group of atoms in the flat, single-precision, layout that kernels take.
// Pos has the x, y and z coordinates of each atom, one after the other. The other
// slices have one element per atom. Charges are in e, Sigma in A and Eps in kcal/mol.
type Set struct {
	Pos   []float32
	Q     []float32
	Sigma []float32
	Eps   []float32
}

// NewSet builds a Set from coordinates, charges and Lennard-Jones parameters.
// charges or vdw can be nil, in which case they are taken as zero.
func NewSet(coords *v3.Matrix, charges []float64, vdw []ff.VdW) (*Set, error) {
	n := coords.NVecs()
	if (charges != nil && len(charges) != n) || (vdw != nil && len(vdw) != n) {
		return nil, chem.NewError(nil, "nonbond.NewSet", "%d atoms but %d charges and %d VdW parameters", n, len(charges), len(vdw))
	}
	S := &Set{Pos: coords.Float32s(), Q: make([]float32, n), Sigma: make([]float32, n), Eps: make([]float32, n)}
	for i := 0; i < n; i++ {
		if charges != nil {
			S.Q[i] = float32(charges[i])
		}
		if vdw != nil {
			S.Sigma[i] = float32(vdw[i].Sigma)
			S.Eps[i] = float32(vdw[i].Eps)
		}
	}
	return S, nil
}

// Len returns the number of atoms in the set.
func (S *Set) Len() int {
	return len(S.Q)
}

func (S *Set) check() error {
	n := len(S.Q)
	if len(S.Pos) != 3*n || len(S.Sigma) != n || len(S.Eps) != n {
		return chem.NewError(nil, "nonbond.Set", "ill-formed set: %d coordinates, %d charges, %d sigmas, %d epsilons", len(S.Pos), n, len(S.Sigma), len(S.Eps))
	}
	return nil
}

func (S *Set) vec(i int) r3.Vec {
	return r3.Vec{X: float64(S.Pos[3*i]), Y: float64(S.Pos[3*i+1]), Z: float64(S.Pos[3*i+2])}
}

// Kernel evaluates nonbonded interactions between a set of target atoms and a set of
// source atoms. Calls are synchronous, and the results have one entry (Potential) or
// 3 entries (Forces) per target, in the order of the targets.
type Kernel interface {
	// Potential returns the electrostatic potential, in kcal/(mol e), created by
	// the sources at each target position.
	Potential(tgt, src *Set) ([]float32, error)
	// Forces returns the Lennard-Jones plus electrostatic force, in kcal/(mol A),
	// exerted by the sources on each target.
	Forces(tgt, src *Set) ([]float32, error)
}

// MaxLanes is the widest batch supported.
const MaxLanes = 8

// batch holds up to MaxLanes source atoms. Unused lanes have zero charge and
// Lennard-Jones parameters, so they add nothing.
type batch struct {
	x, y, z, q, sigma, eps [MaxLanes]float64
}

func batches(src *Set, lanes int) []batch {
	n := src.Len()
	ret := make([]batch, (n+lanes-1)/lanes)
	for i := 0; i < n; i++ {
		b := &ret[i/lanes]
		l := i % lanes
		b.x[l] = float64(src.Pos[3*i])
		b.y[l] = float64(src.Pos[3*i+1])
		b.z[l] = float64(src.Pos[3*i+2])
		b.q[l] = float64(src.Q[i])
		b.sigma[l] = float64(src.Sigma[i])
		b.eps[l] = float64(src.Eps[i])
	}
	return ret
}

// CPUKernel is a Kernel that splits the targets among goroutines, and processes the
// sources in batches of Lanes atoms.
type CPUKernel struct {
	Lanes     int
	Workers   int
	Softening float64 //softening length, in A, for the electrostatics
}

// NewCPUKernel returns a kernel with the given batch width, which must be 4 or 8, and
// number of goroutines. If workers is less than 1, the number of CPUs is used.
func NewCPUKernel(lanes, workers int, softening float64) (*CPUKernel, error) {
	if lanes != 4 && lanes != 8 {
		return nil, chem.NewError(nil, "nonbond.NewCPUKernel", "lanes must be 4 or 8, got %d", lanes)
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &CPUKernel{Lanes: lanes, Workers: workers, Softening: softening}, nil
}

// parallel calls f on contiguous ranges of [0,n), each in its own goroutine.
func (K *CPUKernel) parallel(n int, f func(lo, hi int)) {
	workers := K.Workers
	if workers < 1 {
		workers = 1
	}
	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	for lo := 0; lo < n; lo += chunk {
		lo := lo
		hi := min(lo+chunk, n)
		g.Go(func() error {
			f(lo, hi)
			return nil
		})
	}
	g.Wait()
}

func (K *CPUKernel) prepare(tgt, src *Set) ([]batch, error) {
	if K.Lanes < 1 || K.Lanes > MaxLanes {
		return nil, chem.NewError(nil, "nonbond.CPUKernel", "invalid lane width %d", K.Lanes)
	}
	if err := tgt.check(); err != nil {
		return nil, err
	}
	if err := src.check(); err != nil {
		return nil, err
	}
	return batches(src, K.Lanes), nil
}

// Potential implements Kernel.
func (K *CPUKernel) Potential(tgt, src *Set) ([]float32, error) {
	bs, err := K.prepare(tgt, src)
	if err != nil {
		return nil, chem.ErrDecorate(err, "nonbond.CPUKernel.Potential")
	}
	soft2 := K.Softening * K.Softening
	ret := make([]float32, tgt.Len())
	K.parallel(tgt.Len(), func(lo, hi int) {
		for t := lo; t < hi; t++ {
			p := tgt.vec(t)
			var v float64
			for b := range bs {
				B := &bs[b]
				for l := 0; l < K.Lanes; l++ {
					dx, dy, dz := p.X-B.x[l], p.Y-B.y[l], p.Z-B.z[l]
					den := math.Sqrt(dx*dx + dy*dy + dz*dz + soft2)
					if den == 0 {
						continue
					}
					v += B.q[l] / den
				}
			}
			ret[t] = float32(CoulombConst * v)
		}
	})
	return ret, nil
}

// Forces implements Kernel.
func (K *CPUKernel) Forces(tgt, src *Set) ([]float32, error) {
	bs, err := K.prepare(tgt, src)
	if err != nil {
		return nil, chem.ErrDecorate(err, "nonbond.CPUKernel.Forces")
	}
	soft2 := K.Softening * K.Softening
	ret := make([]float32, 3*tgt.Len())
	K.parallel(tgt.Len(), func(lo, hi int) {
		for t := lo; t < hi; t++ {
			p := tgt.vec(t)
			qt, st, et := float64(tgt.Q[t]), float64(tgt.Sigma[t]), float64(tgt.Eps[t])
			var fx, fy, fz float64
			for b := range bs {
				B := &bs[b]
				for l := 0; l < K.Lanes; l++ {
					dx, dy, dz := p.X-B.x[l], p.Y-B.y[l], p.Z-B.z[l]
					r2 := dx*dx + dy*dy + dz*dz
					if r2 == 0 {
						continue
					}
					s := (st + B.sigma[l]) / 2
					e := math.Sqrt(et * B.eps[l])
					f := ljScalar(r2, s, e) + coulombScalar(r2, qt*B.q[l], soft2)
					fx += f * dx
					fy += f * dy
					fz += f * dz
				}
			}
			ret[3*t], ret[3*t+1], ret[3*t+2] = float32(fx), float32(fy), float32(fz)
		}
	})
	return ret, nil
}

// Direct is a single-goroutine Kernel that evaluates each pair with the scalar
// functions of this package. It is meant as a reference.
type Direct struct {
	Softening float64
}

// Potential implements Kernel.
func (D Direct) Potential(tgt, src *Set) ([]float32, error) {
	if err := tgt.check(); err != nil {
		return nil, chem.ErrDecorate(err, "nonbond.Direct.Potential")
	}
	if err := src.check(); err != nil {
		return nil, chem.ErrDecorate(err, "nonbond.Direct.Potential")
	}
	ret := make([]float32, tgt.Len())
	soft2 := D.Softening * D.Softening
	for t := range ret {
		var v float64
		for s := 0; s < src.Len(); s++ {
			r := r3.Norm(r3.Sub(tgt.vec(t), src.vec(s)))
			v += Coulomb(r, 1, float64(src.Q[s]), soft2)
		}
		ret[t] = float32(v)
	}
	return ret, nil
}

// Forces implements Kernel.
func (D Direct) Forces(tgt, src *Set) ([]float32, error) {
	if err := tgt.check(); err != nil {
		return nil, chem.ErrDecorate(err, "nonbond.Direct.Forces")
	}
	if err := src.check(); err != nil {
		return nil, chem.ErrDecorate(err, "nonbond.Direct.Forces")
	}
	ret := make([]float32, 3*tgt.Len())
	soft2 := D.Softening * D.Softening
	for t := 0; t < tgt.Len(); t++ {
		var f r3.Vec
		pt := ff.VdW{Sigma: float64(tgt.Sigma[t]), Eps: float64(tgt.Eps[t])}
		for s := 0; s < src.Len(); s++ {
			d := r3.Sub(tgt.vec(t), src.vec(s))
			ps := ff.VdW{Sigma: float64(src.Sigma[s]), Eps: float64(src.Eps[s])}
			f = r3.Add(f, LJForce(d, Mix(pt, ps)))
			f = r3.Add(f, CoulombForce(d, float64(tgt.Q[t]), float64(src.Q[s]), soft2))
		}
		ret[3*t], ret[3*t+1], ret[3*t+2] = float32(f.X), float32(f.Y), float32(f.Z)
	}
	return ret, nil
}
