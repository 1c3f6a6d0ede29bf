// Command mdprep prepares a structure for simulation. It reads a YAML configuration
// file, and the structure (JSON) and parameter files it names, assigns force-field types
// and charges to the protein, optionally builds the side chains, resolves the parameters
// of the ligand, builds the nonbonded masks and the neighbor list, and reports on the
// result.
//
// Usage:
//
//	mdprep [-info] config.yaml
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"runtime"
	"sort"

	chem "github.com/rmera/mdprep"
	"github.com/rmera/mdprep/chemjson"
	"github.com/rmera/mdprep/chemplot"
	"github.com/rmera/mdprep/config"
	"github.com/rmera/mdprep/ff"
	"github.com/rmera/mdprep/histo"
	"github.com/rmera/mdprep/nonbond"
	"github.com/rmera/mdprep/prep"
	"github.com/rmera/mdprep/sidechain"
	v3 "github.com/rmera/mdprep/v3"
)

// maximum number of clashes printed
const maxReported = 10

func main() {
	info := flag.Bool("info", false, "Write a JSON summary of the preparation to the standard output")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-info] config.yaml\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		log.Fatal("The path of the configuration file must be specified in the arguments")
	}

	log.Printf("Reading configuration file `%s`\n", flag.Arg(0))
	c, err := config.New(flag.Arg(0))
	if err != nil {
		log.Fatal(fmt.Errorf("config.New: %w", err))
	}

	T, coords := readStructure(c.Structure)
	log.Printf("Read %d atoms, %d bonds and %d residues", T.Len(), len(T.Bonds), len(T.Residues))
	if err := T.CheckValence(); err != nil {
		log.Printf("Warning: %v", err)
	}
	I := &chemjson.Info{}

	if len(c.Charges) > 0 {
		n, err := populate(T, c.Charges)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("Assigned types and charges to %d protein atoms", n)
	}

	if c.Place {
		log.Println("Building side chains")
		I.Placed, err = sidechain.PlaceAll(T, coords, workers(c))
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("Placed %d side-chain atoms", I.Placed)
	}

	log.Println("Reading force-field parameters")
	P, err := prep.LoadParams(c)
	if err != nil {
		log.Fatal(err)
	}
	dyn, sta, err := prep.Split(T, coords, c.Ligand)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("%d dynamic and %d static atoms", dyn.Len(), sta.Len())
	M, err := prep.New(dyn, sta, P, prep.Options{Ligand: c.Ligand, Cutoff: c.Cutoff, Skin: c.Skin, Padding: c.Padding})
	if err != nil {
		log.Fatal(err)
	}
	fill(I, M)

	clashes, err := M.Clashes(c.ClashTol)
	if err != nil {
		log.Fatal(err)
	}
	I.Overlaps = len(clashes)
	for i, v := range clashes {
		if i == maxReported {
			log.Printf("... and %d more", len(clashes)-maxReported)
			break
		}
		log.Printf("Clash %s and %s: %s", dyn.T.Atoms[v.I], dyn.T.Atoms[v.J], v)
	}
	if sta.Len() > 0 {
		ov, idx, err := M.WorstContact()
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("Worst contact with the static atoms: %s and %s, overlap %.2f A", dyn.T.Atoms[idx[0]], sta.T.Atoms[idx[1]], ov)
	}

	K, err := nonbond.NewCPUKernel(c.Lanes, c.Workers, c.Softening)
	if err != nil {
		log.Fatal(err)
	}
	f, err := M.ExternalForces(K)
	if err != nil {
		log.Fatal(err)
	}
	fmax, at := maxForce(f)
	log.Printf("Largest force from the static atoms: %.3f kcal/(mol A) on %s", fmax, dyn.T.Atoms[at])

	S := M.List.Stats(1)
	log.Printf("Neighbor list: %s", S)
	plots(c, M, S.Counts, T)

	if c.Output != "" {
		log.Printf("Writing `%s`", c.Output)
		out, err := os.Create(c.Output)
		if err != nil {
			log.Fatal(err)
		}
		if jerr := chemjson.EncodeStructure(T, coords, out); jerr != nil {
			out.Close()
			log.Fatal(jerr)
		}
		if err := out.Close(); err != nil {
			log.Fatal(err)
		}
	}
	if *info {
		if jerr := I.Send(os.Stdout); jerr != nil {
			log.Fatal(jerr)
		}
	}
	log.Println("Done")
}

func workers(c *config.Cfg) int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

func readStructure(name string) (*chem.Topology, *v3.Matrix) {
	f, err := os.Open(name)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	T, coords, jerr := chemjson.DecodeStructure(f)
	if jerr != nil {
		log.Fatal(fmt.Errorf("%s, line %d: %w", name, jerr.Line, jerr))
	}
	return T, coords
}

// populate reads the residue charge libraries, later ones taking precedence, and
// types the protein atoms in T.
func populate(T *chem.Topology, files []string) (int, error) {
	all := make(ff.ResidueCharges)
	for _, v := range files {
		C, err := ff.ReadChargesFile(v)
		if err != nil {
			return 0, err
		}
		for res, ats := range C {
			all[res] = ats
		}
	}
	return ff.Populate(T, all)
}

func fill(I *chemjson.Info, M *prep.MdState) {
	I.Atoms = M.Dynamic.Len()
	I.StaticAtoms = M.Static.Len()
	I.Bonds = len(M.Params.Bonds)
	I.Angles = len(M.Params.Angles)
	I.Dihedrals = len(M.Params.Dihedrals)
	I.Impropers = len(M.Params.Impropers)
	I.Excluded = M.Excluded.Len()
	I.Scaled14 = M.Scaled14.Len()
	I.Pairs = M.List.Pairs()
	I.BoxLo = [3]float64{M.Box.Lo.X, M.Box.Lo.Y, M.Box.Lo.Z}
	I.BoxHi = [3]float64{M.Box.Hi.X, M.Box.Hi.Y, M.Box.Hi.Z}
}

func maxForce(f []float32) (float64, int) {
	var best float64
	at := 0
	for i := 0; i < len(f)/3; i++ {
		n := math.Sqrt(float64(f[3*i]*f[3*i] + f[3*i+1]*f[3*i+1] + f[3*i+2]*f[3*i+2]))
		if n > best {
			best, at = n, i
		}
	}
	return best, at
}

// plots produces the diagnostic plots requested in c. Failures are only logged.
func plots(c *config.Cfg, M *prep.MdState, neigh *histo.Data, T *chem.Topology) {
	if c.NeighborPlot != "" {
		if err := chemplot.NeighborHisto(neigh, "Neighbors per atom", c.NeighborPlot); err != nil {
			log.Printf("Neighbor plot: %v", err)
		}
	}
	if c.LJPlot != "" {
		vdw := make(map[string]ff.VdW)
		for i, a := range M.Dynamic.T.Atoms {
			if v := M.Params.VdW[i]; v.Sigma > 0 {
				vdw[a.FFType] = v
			}
		}
		names := make([]string, 0, len(vdw))
		for k := range vdw {
			names = append(names, k)
		}
		sort.Strings(names)
		params := make([]ff.VdW, len(names))
		for i, v := range names {
			params[i] = vdw[v]
		}
		if err := chemplot.LJProfile(params, names, c.Cutoff, 200, "Lennard-Jones", c.LJPlot); err != nil {
			log.Printf("LJ plot: %v", err)
		}
	}
	if c.ChiPlot != "" {
		if chis := chemplot.ChiList(T, nil, false); len(chis) > 0 {
			if err := chemplot.ChiPlot(chis, nil, "Side-chain rotamers", c.ChiPlot); err != nil {
				log.Printf("Chi plot: %v", err)
			}
		}
	}
}
