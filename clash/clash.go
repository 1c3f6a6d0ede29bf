package clash

import (
	"fmt"
	"math"
	"sort"

	chem "github.com/rmera/mdprep"
	"github.com/rmera/mdprep/ff"
	"github.com/rmera/mdprep/nblist"
	"github.com/rmera/mdprep/nonbond"
	v3 "github.com/rmera/mdprep/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// Overlap is a pair of atoms closer than the Lennard-Jones sigma for the pair.
type Overlap struct {
	I, J    int
	Dist    float64
	Overlap float64 //sigma minus the distance
}

func (O Overlap) String() string {
	return fmt.Sprintf("%d-%d: %.2f A apart, overlap %.2f A", O.I, O.J, O.Dist, O.Overlap)
}

// Overlaps returns the pairs of atoms in coords that overlap by more than tol A, the
// largest overlaps first. Pairs in any of the skip sets, normally the masks for bonded
// atoms, are not checked. If L is not nil, only the pairs in L are checked.
func Overlaps(coords *v3.Matrix, vdw []ff.VdW, L *nblist.List, tol float64, skip ...nblist.PairSet) ([]Overlap, error) {
	n := coords.NVecs()
	if len(vdw) != n {
		return nil, chem.NewError(nil, "clash.Overlaps", "%d atoms, but %d VdW parameters", n, len(vdw))
	}
	if L != nil && L.Len() != n {
		return nil, chem.NewError(nil, "clash.Overlaps", "%d atoms, but neighbor list for %d", n, L.Len())
	}
	ret := make([]Overlap, 0)
	check := func(i, j int) {
		for _, s := range skip {
			if s.Has(i, j) {
				return
			}
		}
		d := coords.Distance(i, j)
		ov := nonbond.Mix(vdw[i], vdw[j]).Sigma - d
		if ov > tol {
			ret = append(ret, Overlap{I: i, J: j, Dist: d, Overlap: ov})
		}
	}
	for i := 0; i < n; i++ {
		if L == nil {
			for j := i + 1; j < n; j++ {
				check(i, j)
			}
			continue
		}
		for _, j := range L.Of(i) {
			if j > i {
				check(i, j)
			}
		}
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Overlap > ret[j].Overlap })
	return ret, nil
}

// HighestOverlap returns the largest overlap between an atom in test and one in env,
// with the indexes of both atoms. tvdw and evdw are the Lennard-Jones parameters for the
// atoms in test and env. The overlap is negative if no atoms overlap.
func HighestOverlap(test, env *v3.Matrix, tvdw, evdw []ff.VdW) (over float64, indexes [2]int) {
	over = math.Inf(-1)
	for i := 0; i < test.NVecs(); i++ {
		a := test.Vec(i)
		for j := 0; j < env.NVecs(); j++ {
			d := r3.Norm(r3.Sub(a, env.Vec(j)))
			ov := nonbond.Mix(tvdw[i], evdw[j]).Sigma - d
			if ov > over {
				over = ov
				indexes = [2]int{i, j}
			}
		}
	}
	return over, indexes
}

// GeometryOnlyHighestOverlap returns a function that, given only the geometries, returns
// the largest overlap between them, given that their atoms have the Lennard-Jones
// parameters tvdw and evdw.
func GeometryOnlyHighestOverlap(tvdw, evdw []ff.VdW) func(test, env *v3.Matrix) float64 {
	return func(test, env *v3.Matrix) float64 {
		o, _ := HighestOverlap(test, env, tvdw, evdw)
		return o
	}
}

// LowestDist returns the shortest distance between an atom in test and one in env, and
// the indexes of both atoms.
func LowestDist(test, env *v3.Matrix) (dist float64, indexes [2]int) {
	dist = math.Inf(1)
	for i := 0; i < test.NVecs(); i++ {
		a := test.Vec(i)
		for j := 0; j < env.NVecs(); j++ {
			if d := r3.Norm(r3.Sub(a, env.Vec(j))); d < dist {
				dist = d
				indexes = [2]int{i, j}
			}
		}
	}
	return dist, indexes
}

// Torsion is a rotatable bond, At1-At2, and the atoms that move when rotating around it.
type Torsion struct {
	At1, At2 int
	Moving   []int
}

// Rotate rotates the moving atoms of t in coords by angle radians around the t bond.
func Rotate(coords *v3.Matrix, t Torsion, angle float64) {
	a1 := coords.Vec(t.At1)
	a2 := coords.Vec(t.At2)
	for _, v := range t.Moving {
		coords.SetVec(v, chem.RotateAbout(coords.Vec(v), a1, a2, angle))
	}
}

// a q&d brute-force central-difference of f with respect to each torsion. The
// gradient is normalized.
func angleGrad(test, env *v3.Matrix, torsions []Torsion, f func(*v3.Matrix, *v3.Matrix) float64, e float64) []float64 {
	grad := make([]float64, len(torsions))
	for i, t := range torsions {
		c := test.Clone()
		Rotate(c, t, e)
		pos := f(c, env)
		c = test.Clone()
		Rotate(c, t, -e)
		neg := f(c, env)
		grad[i] = (pos - neg) / (2 * e)
	}
	if n := floats.Norm(grad, 2); n > 0 {
		floats.Scale(1/n, grad)
	}
	return grad
}

// DeClash rotates the torsions of test, in the direction that reduces the overlap with env
// given by f, until the overlap is not larger than target, it stops decreasing, or
// maxiter steps are done. step is the largest rotation per step, in radians. It returns
// the best geometry found, a new matrix, and its overlap. test is not modified.
func DeClash(test, env *v3.Matrix, torsions []Torsion, f func(*v3.Matrix, *v3.Matrix) float64, target, step float64, maxiter int) (*v3.Matrix, float64, error) {
	if len(torsions) == 0 {
		return nil, 0, chem.NewError(nil, "clash.DeClash", "no torsions to rotate")
	}
	if step <= 0 {
		step = 10 * chem.Deg2Rad
	}
	best := test.Clone()
	over := f(best, env)
	for it := 0; it < maxiter && over > target; it++ {
		grad := angleGrad(best, env, torsions, f, 2*chem.Deg2Rad)
		if floats.Norm(grad, 2) == 0 {
			break
		}
		c := best.Clone()
		for i, t := range torsions {
			Rotate(c, t, -step*grad[i])
		}
		o := f(c, env)
		if o >= over {
			//try a shorter step before giving up
			step /= 2
			if step < 0.1*chem.Deg2Rad {
				break
			}
			continue
		}
		best, over = c, o
	}
	return best, over, nil
}
