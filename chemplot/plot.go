/*
 * plot.go, part of mdprep
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

package chemplot

import (
	"fmt"
	"image/color"
	"math"

	"github.com/rmera/mdprep/ff"
	"github.com/rmera/mdprep/histo"
	"github.com/rmera/mdprep/nonbond"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Size is the side of the (square) plots produced by this package.
var Size = 4 * vg.Inch

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

// NeighborHisto plots the histogram h (normally, the number of neighbors per atom
// in a Verlet list) as a bar chart. The format is taken from the extension
// of filename.
func NeighborHisto(h *histo.Data, title, filename string) error {
	if h == nil {
		return fmt.Errorf("NeighborHisto: nil histogram")
	}
	p := basicPlot(title, "Neighbors", "Atoms")
	centers := h.Centers()
	vals := plotter.Values(h.Copy())
	bars, err := plotter.NewBarChart(vals, vg.Points(8))
	if err != nil {
		return err
	}
	r, g, b := colors(0, 1)
	bars.Color = color.RGBA{R: r, G: g, B: b, A: 255}
	p.Add(bars)
	names := make([]string, len(centers))
	for i, v := range centers {
		names[i] = fmt.Sprintf("%.0f", v)
	}
	p.NominalX(names...)
	return p.Save(Size, Size, filename)
}

// LJProfile plots the Lennard-Jones potential for each of the given parameter sets,
// between 0.8 sigma of the smallest set and rmax, using n points per curve.
// The energy axis is clipped at 2 eps of the deepest well, so the minima are visible.
func LJProfile(params []ff.VdW, names []string, rmax float64, n int, title, filename string) error {
	if len(params) == 0 || len(names) != len(params) {
		return fmt.Errorf("LJProfile: need one name per parameter set, got %d names and %d sets", len(names), len(params))
	}
	if n < 2 {
		return fmt.Errorf("LJProfile: need at least 2 points, got %d", n)
	}
	smin := math.Inf(1)
	emax := 0.0
	for _, v := range params {
		if v.Sigma <= 0 {
			return fmt.Errorf("LJProfile: non-positive sigma %g", v.Sigma)
		}
		smin = math.Min(smin, v.Sigma)
		emax = math.Max(emax, v.Eps)
	}
	rmin := 0.8 * smin
	if rmax <= rmin {
		return fmt.Errorf("LJProfile: rmax %g must be larger than %g", rmax, rmin)
	}
	p := basicPlot(title, "r (A)", "E (kcal/mol)")
	p.X.Min = rmin
	p.X.Max = rmax
	p.Y.Min = -1.2 * emax
	p.Y.Max = 2 * emax
	step := (rmax - rmin) / float64(n-1)
	for key, v := range params {
		pts := make(plotter.XYs, n)
		for i := range pts {
			pts[i].X = rmin + float64(i)*step
			pts[i].Y = math.Min(nonbond.LJ(pts[i].X, v), p.Y.Max)
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		r, g, b := colors(key, len(params))
		l.LineStyle.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		l.LineStyle.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add(names[key], l)
	}
	return p.Save(Size, Size, filename)
}

// takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var i, f, p, q, t float64
	var r, g, b float64
	maxcolor := 255.0
	conversion := maxcolor * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i = math.Floor(h)
	f = h - i
	p = v * (1 - s)
	q = v * (1 - s*f)
	t = v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default: //case 5
		r, g, b = v, p, q
	}
	return uint8(r * conversion), uint8(g * conversion), uint8(b * conversion)
}

// colors spreads steps hues over the wheel, skipping the yellows,
// which are hard to see on white.
func colors(key, steps int) (r, g, b uint8) {
	norm := 260.0 / float64(steps)
	hp := (float64(key) * norm) + 20.0
	var h float64
	if hp < 55 {
		h = hp - 20.0
	} else {
		h = hp + 20.0
	}
	return iHVS2RGB(h, 1.0, 1.0)
}
