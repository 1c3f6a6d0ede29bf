package nblist

import (
	"fmt"

	chem "github.com/rmera/mdprep"
	"github.com/rmera/mdprep/histo"
	v3 "github.com/rmera/mdprep/v3"
)

// Stats summarizes a neighbor list.
type Stats struct {
	Atoms  int
	Pairs  int
	Mean   float64 //neighbors per atom
	StdDev float64
	Min    int
	Max    int
	Counts *histo.Data //histogram of neighbors per atom
}

func (S *Stats) String() string {
	return fmt.Sprintf("%d atoms, %d pairs, neighbors per atom: %.1f+-%.1f (%d-%d)", S.Atoms, S.Pairs, S.Mean, S.StdDev, S.Min, S.Max)
}

// Stats returns statistics on the number of neighbors per atom. The histogram uses
// bins of the given width, in neighbors, from 0 to past the largest count.
func (L *List) Stats(binWidth int) *Stats {
	if binWidth < 1 {
		binWidth = 1
	}
	S := &Stats{Atoms: L.Len(), Pairs: L.Pairs()}
	counts := make([]float64, L.Len())
	for i, v := range L.neigh {
		n := len(v)
		counts[i] = float64(n)
		if i == 0 || n < S.Min {
			S.Min = n
		}
		if n > S.Max {
			S.Max = n
		}
	}
	S.Mean, S.StdDev = histo.MeanStdDev(counts)
	bins := S.Max/binWidth + 1
	S.Counts = histo.NewData(histo.Uniform(0, float64(bins*binWidth), bins), counts)
	return S
}

// DisplacementHisto returns a histogram of the displacements of the atoms in coords
// since the list was built, with the given number of bins between 0 and the skin.
// Atoms that have moved more than the skin are counted only in the total.
func (L *List) DisplacementHisto(coords *v3.Matrix, bins int) (*histo.Data, error) {
	if bins < 1 {
		return nil, chem.NewError(nil, "nblist.DisplacementHisto", "need at least one bin, got %d", bins)
	}
	if L.Skin <= 0 {
		return nil, chem.NewError(nil, "nblist.DisplacementHisto", "displacement histogram needs a positive skin")
	}
	d, err := L.Displacements(coords)
	if err != nil {
		return nil, chem.ErrDecorate(err, "nblist.DisplacementHisto")
	}
	return histo.NewData(histo.Uniform(0, L.Skin, bins), d), nil
}
