// Package config reads the YAML configuration for a preparation run.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rmera/mdprep/nblist"
	"gopkg.in/yaml.v3"
)

// Cfg is a structure containing the parameters specified in the configuration
// file. It can be instanced through the New function or by "hand". If it is
// instanced by hand, start from Default and use the Check method to check if
// the Cfg meets the requirements.
type Cfg struct {
	// Structure is the JSON file with the atoms, bonds, residues and coordinates
	Structure string `yaml:"structure"`

	// Output is the JSON file where the prepared coordinates are written. Empty means
	// no output.
	Output string `yaml:"output"`

	// ProtGeneric is the parameter file for the protein (static) atoms
	ProtGeneric string `yaml:"protGeneric"`

	// LigGeneric is the generic parameter file for the ligand (dynamic) atoms
	LigGeneric string `yaml:"ligGeneric"`

	// LigSpecific maps ligand molecule names to their specific parameter files
	LigSpecific map[string]string `yaml:"ligSpecific"`

	// Charges are the residue libraries (Gromacs rtp) used to assign protein types
	// and charges
	Charges []string `yaml:"charges"`

	// Defines are the flags for the conditional sections of the parameter files
	Defines []string `yaml:"defines"`

	// Ligand is the molecule (residue) name of the dynamic atoms
	Ligand string `yaml:"ligand"`

	// Place requests building the side chains of amino-acid residues with chi angles
	Place bool `yaml:"place"`

	// Cutoff is the nonbonded cutoff, in A
	Cutoff float64 `yaml:"cutoff"`

	// Skin is the Verlet list buffer, in A
	Skin float64 `yaml:"skin"`

	// Padding is the margin added around the dynamic atoms to build the cell, in A
	Padding float64 `yaml:"padding"`

	// Lanes is the batch width of the nonbonded kernel, 4 or 8
	Lanes int `yaml:"lanes"`

	// Workers is the number of goroutines. 0 means one per CPU
	Workers int `yaml:"workers"`

	// Softening is the softening length for the electrostatics, in A
	Softening float64 `yaml:"softening"`

	// ClashTol is the overlap, in A, above which a pair of atoms is reported
	ClashTol float64 `yaml:"clashTol"`

	// NeighborPlot, LJPlot and ChiPlot are image files for the diagnostic plots.
	// Empty means no plot.
	NeighborPlot string `yaml:"neighborPlot"`
	LJPlot       string `yaml:"ljPlot"`
	ChiPlot      string `yaml:"chiPlot"`
}

// Default returns a Cfg with the default values for the numerical parameters.
func Default() *Cfg {
	return &Cfg{
		Cutoff:    nblist.DefaultCutoff,
		Skin:      nblist.DefaultSkin,
		Padding:   nblist.DefaultPadding,
		Lanes:     8,
		Softening: 0.5,
		ClashTol:  0.5,
	}
}

// New opens and decodes the specified configuration file. The file must be
// a YAML file. Values absent from the file keep their defaults. This function
// automatically calls the Check method to check the integrity of Cfg.
func New(path string) (*Cfg, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(bufio.NewReader(f))
}

// Decode reads a configuration from r, and checks it. Unknown keys are an error.
func Decode(r io.Reader) (*Cfg, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := c.Check(); err != nil {
		return nil, fmt.Errorf("Check: %w", err)
	}
	return c, nil
}

// Check checks if Cfg is correct. It returns an error if a field doesn't meet
// the requirements.
func (c *Cfg) Check() error {
	if c.Structure == "" {
		return fmt.Errorf("a structure file is required")
	}
	if c.ProtGeneric == "" || c.LigGeneric == "" {
		return fmt.Errorf("both the protein and the ligand generic parameter files are required")
	}
	if c.Cutoff <= 0 {
		return fmt.Errorf("Cutoff must be greater than 0")
	}
	if c.Skin < 0 {
		return fmt.Errorf("Skin cannot be lower than 0")
	}
	if c.Padding < 0 {
		return fmt.Errorf("Padding cannot be lower than 0")
	}
	if c.Lanes != 4 && c.Lanes != 8 {
		return fmt.Errorf("Lanes must be 4 or 8")
	}
	if c.Workers < 0 {
		return fmt.Errorf("Workers cannot be lower than 0")
	}
	if c.Softening < 0 {
		return fmt.Errorf("Softening cannot be lower than 0")
	}
	for k, v := range c.LigSpecific {
		if v == "" {
			return fmt.Errorf("empty parameter file for ligand %s", k)
		}
	}
	return nil
}
