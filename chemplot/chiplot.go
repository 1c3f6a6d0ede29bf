package chemplot

import (
	"fmt"
	"image/color"
	"math"

	chem "github.com/rmera/mdprep"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
)

// ChiSet holds the first two side-chain torsions of a residue, in degrees.
type ChiSet struct {
	Res  int //index in the topology
	Name string
	Chi1 float64
	Chi2 float64
}

// ChiList collects the chi1/chi2 pairs of the amino acid residues in T that have at least
// 2 chi angles. Residues named in filter are excluded if exclude is true, and
// they are the only ones included otherwise. A nil filter includes everything.
func ChiList(T *chem.Topology, filter []string, exclude bool) []ChiSet {
	ret := make([]ChiSet, 0, len(T.Residues))
	for i, r := range T.Residues {
		if r.Kind != chem.AminoAcidResidue || len(r.Chi) < 2 {
			continue
		}
		if filter != nil && isInString(filter, r.Name) == exclude {
			continue
		}
		ret = append(ret, ChiSet{Res: i, Name: r.Name, Chi1: r.Chi[0] * chem.Rad2Deg, Chi2: r.Chi[1] * chem.Rad2Deg})
	}
	return ret
}

// ChiPlot produces a chi1/chi2 scatter plot for the data. The residues with topology indexes
// in tag (maximum 4) are highlighted with a different glyph each.
func ChiPlot(data []ChiSet, tag []int, title, filename string) error {
	if len(data) == 0 {
		return fmt.Errorf("ChiPlot: no data")
	}
	p := basicPlot(title, "Chi1", "Chi2")
	p.X.Min = -180
	p.X.Max = 180
	p.Y.Min = -180
	p.Y.Max = 180
	temp := make(plotter.XYs, 1)
	var tagged int
	for key, val := range data {
		temp[0].X = wrapDeg(val.Chi1)
		temp[0].Y = wrapDeg(val.Chi2)
		s, err := plotter.NewScatter(temp)
		if err != nil {
			return err
		}
		if chem.IsInInt(tag, val.Res) {
			s.GlyphStyle.Shape, err = getShape(tagged)
			if err != nil {
				return err
			}
			s.GlyphStyle.Radius = 4
			tagged++
		}
		r, g, b := colors(key, len(data))
		s.GlyphStyle.Color = color.RGBA{R: r, B: b, G: g, A: 255}
		p.Add(s)
	}
	return p.Save(Size, Size, filename)
}

// wrapDeg brings an angle in degrees to [-180,180).
func wrapDeg(a float64) float64 {
	return a - 360*math.Floor((a+180)/360)
}

func getShape(tagged int) (draw.GlyphDrawer, error) {
	switch tagged {
	case 0:
		return draw.PyramidGlyph{}, nil
	case 1:
		return draw.CircleGlyph{}, nil
	case 2:
		return draw.SquareGlyph{}, nil
	case 3:
		return draw.CrossGlyph{}, nil
	default:
		return draw.RingGlyph{}, fmt.Errorf("maximum number of taggable residues is 4")
	}
}

// isInString returns true if test is in container, false otherwise.
func isInString(container []string, test string) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}
