package nblist

import (
	"fmt"
	"math"

	chem "github.com/rmera/mdprep"
	v3 "github.com/rmera/mdprep/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultPadding is the margin, in A, added on each side of the atoms' bounding box
// to build the simulation cell.
const DefaultPadding = 15.0

// Box is an axis-aligned simulation cell. It is only used for minimum-image
// displacements.
type Box struct {
	Lo, Hi r3.Vec
}

// NewBox returns the bounding box of the coordinates, expanded by pad in every direction.
func NewBox(coords *v3.Matrix, pad float64) (*Box, error) {
	if coords == nil || coords.NVecs() == 0 {
		return nil, chem.NewError(nil, "nblist.NewBox", "can't build a box for zero atoms")
	}
	if pad < 0 {
		return nil, chem.NewError(nil, "nblist.NewBox", "negative box padding %g", pad)
	}
	lo, hi := coords.Bounds()
	p := r3.Vec{X: pad, Y: pad, Z: pad}
	return &Box{Lo: r3.Sub(lo, p), Hi: r3.Add(hi, p)}, nil
}

// Extent returns the lengths of the sides of the box.
func (B *Box) Extent() r3.Vec {
	return r3.Sub(B.Hi, B.Lo)
}

// Contains returns true if p is inside the box.
func (B *Box) Contains(p r3.Vec) bool {
	return p.X >= B.Lo.X && p.X <= B.Hi.X && p.Y >= B.Lo.Y && p.Y <= B.Hi.Y && p.Z >= B.Lo.Z && p.Z <= B.Hi.Z
}

// MinImage returns the displacement d with each component wrapped into
// [-L/2, L/2], where L is the side of the box along that axis.
func (B *Box) MinImage(d r3.Vec) r3.Vec {
	e := B.Extent()
	return r3.Vec{X: wrap(d.X, e.X), Y: wrap(d.Y, e.Y), Z: wrap(d.Z, e.Z)}
}

func wrap(d, l float64) float64 {
	if l <= 0 {
		return d
	}
	return d - l*math.Round(d/l)
}

func (B *Box) String() string {
	return fmt.Sprintf("Lo: %.3f %.3f %.3f Hi: %.3f %.3f %.3f", B.Lo.X, B.Lo.Y, B.Lo.Z, B.Hi.X, B.Hi.Y, B.Hi.Z)
}
