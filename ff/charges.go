package ff

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	chem "github.com/rmera/mdprep"
)

// AtomCharge is the force-field type and partial charge of an atom, identified
// by its name within a residue.
type AtomCharge struct {
	Name   string
	FFType string
	Charge float64
}

// ResidueCharges maps residue names (i.e. "ALA", "HID") to the force-field types and
// charges of their atoms.
type ResidueCharges map[string][]AtomCharge

// Find returns the data for the atom called name in the residue res.
func (C ResidueCharges) Find(res, name string) (AtomCharge, bool) {
	for _, v := range C[res] {
		if v.Name == name {
			return v, true
		}
	}
	return AtomCharge{}, false
}

// ReadCharges reads a residue library in the Gromacs rtp format. Each residue starts
// with a "[ RES ]" line, and its "[ atoms ]" subsection has lines with the atom
// name, the atom type and the charge. Other subsections are ignored.
func ReadCharges(r StringReader) (ResidueCharges, error) {
	ret := make(ResidueCharges)
	h := newTopHeader()
	residue := ""
	section := ""
	var err error
	var s string
	for s, err = r.ReadString('\n'); err == nil || (errors.Is(err, io.EOF) && s != ""); s, err = r.ReadString('\n') {
		s = cleanString(s)
		if s != "" {
			if perr := chargeLine(s, h, ret, &residue, &section); perr != nil {
				return nil, perr
			}
		}
		if err != nil {
			break
		}
	}
	if errors.Is(err, io.EOF) {
		err = nil
	}
	return ret, err
}

// ReadChargesFile reads the residue library in the file name, which can be
// zstd-compressed (".zst").
func ReadChargesFile(name string) (ResidueCharges, error) {
	r, closer, err := openMaybeZst(name)
	if err != nil {
		return nil, fmt.Errorf("ff: can't open %s: %w", name, err)
	}
	defer closer()
	ret, err := ReadCharges(r)
	if err != nil {
		return nil, fmt.Errorf("ff: reading %s: %w", name, err)
	}
	return ret, nil
}

var rtpSubsections = []string{"atoms", "bonds", "impropers", "dihedrals", "angles", "exclusions", "cmap", "bondedtypes"}

func chargeLine(s string, h *topHeader, ret ResidueCharges, residue, section *string) (err error) {
	if h.Is(s) {
		name := h.Name(s)
		for _, v := range rtpSubsections {
			if name == v {
				*section = v
				return nil
			}
		}
		*residue = strings.ToUpper(name)
		*section = ""
		ret[*residue] = nil
		return nil
	}
	if *section != "atoms" || *residue == "" || strings.HasPrefix(s, "#") {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("couldn't read atom for residue %s from %q: %v", *residue, s, r)
		}
	}()
	f := fi(s)
	ret[*residue] = append(ret[*residue], AtomCharge{Name: f[0], FFType: f[1], Charge: parsefloat(f[2])})
	return nil
}

// Populate assigns force-field types and partial charges to the atoms in T that belong
// to amino-acid residues, from the charges library. Hetero atoms and atoms of other
// residues are skipped. Atoms must have a residue and a name. Residues are looked up by
// their amino-acid name, so protonation variants get their own data, and HIS, if absent
// from the library, uses the data for HID. Atoms with no match in their residue are
// logged and left untouched. It returns the number of atoms assigned.
func Populate(T *chem.Topology, charges ResidueCharges) (int, error) {
	n := 0
	for i, at := range T.Atoms {
		if at.Het {
			continue
		}
		R := T.ResidueOf(i)
		if R == nil {
			return n, chem.NewError(chem.ErrMissingResidue, "ff.Populate", "atom %d: %s", i, at)
		}
		if at.Name == "" {
			return n, chem.NewError(nil, "ff.Populate", "atom %d (serial %d) has no name within its residue", i, at.ID)
		}
		if R.Kind != chem.AminoAcidResidue {
			continue
		}
		name := R.AA.String()
		lib, ok := charges[name]
		if !ok && R.AA == chem.His {
			lib, ok = charges[chem.Hid.String()]
		}
		if !ok {
			return n, chem.NewError(nil, "ff.Populate", "no charge data for residue %s", name)
		}
		found := false
		for _, c := range lib {
			if c.Name == at.Name {
				at.SetFF(c.FFType, c.Charge)
				found = true
				n++
				break
			}
		}
		if !found {
			log.Printf("ff.Populate: can't find charge for protein atom %s", at)
		}
	}
	return n, nil
}
