package ff

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	chem "github.com/rmera/mdprep"
)

//Parameter files use the Gromacs format and units (nm, kJ/mol, degrees).
//Tables are kept in A, kcal/mol and radians.

type cond struct {
	reading bool
}

func newCond() *cond {
	c := new(cond)
	c.reading = true
	return c
}

// a function to read conditional parts of gromacs topologies
// depending on the defined flags that should be in 'defines'
func (c *cond) read(line string, defines []string) bool {
	if strings.HasPrefix(line, "#ifdef") {
		c.reading = slices.Contains(defines, flag(line))
		return false
	}
	if strings.HasPrefix(line, "#ifndef") {
		c.reading = !slices.Contains(defines, flag(line))
		return false
	}
	if strings.HasPrefix(line, "#else") {
		c.reading = !c.reading
		return false
	}
	if strings.HasPrefix(line, "#endif") {
		c.reading = true
		return false
	}
	return c.reading
}

// flag returns the second word in line, or an empty string.
func flag(line string) string {
	f := fi(line)
	if len(f) < 2 {
		return ""
	}
	return f[1]
}

// reader fills a Keyed table from one or more files.
type reader struct {
	K       *Keyed
	defines []string
	dir     string //includes are looked for here. Empty means includes are not followed.
	header  string
	comb    int             //Gromacs combination rule. 1 means C6/C12 in atomtypes.
	open    map[string]bool //absolute paths of the files being read, to catch include cycles.
}

// Read returns a parameter table with the data from the Gromacs-formatted r. The
// atomtypes, bondtypes, angletypes, dihedraltypes and impropertypes sections are read,
// other sections are ignored. Conditional sections are read according to the
// defines given. #include directives are not followed (see ReadFile).
func Read(r StringReader, defines ...string) (*Keyed, error) {
	R := &reader{K: NewKeyed(), defines: slices.Clone(defines), comb: 2}
	if err := R.fill(r); err != nil {
		return nil, err
	}
	return R.K, nil
}

// ReadFile reads the parameter file name, following #include directives relative
// to its directory. Files with names ending in ".zst" are zstd-compressed.
func ReadFile(name string, defines ...string) (*Keyed, error) {
	R := &reader{K: NewKeyed(), defines: slices.Clone(defines), dir: filepath.Dir(name), comb: 2, open: make(map[string]bool)}
	if err := R.fillFile(name); err != nil {
		return nil, err
	}
	return R.K, nil
}

// openMaybeZst opens the file name for reading, decompressing it if its name
// ends in .zst. The returned function closes everything.
func openMaybeZst(name string) (*bufio.Reader, func(), error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	if !strings.HasSuffix(strings.ToLower(name), ".zst") {
		return bufio.NewReader(f), func() { f.Close() }, nil
	}
	z, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return bufio.NewReader(z), func() { z.Close(); f.Close() }, nil
}

func (R *reader) fillFile(name string) error {
	abs, err := filepath.Abs(name)
	if err != nil {
		return fmt.Errorf("ff: can't open %s: %w", name, err)
	}
	if R.open[abs] {
		return chem.NewError(nil, "ff.ReadFile", "include cycle: %s is already being read", abs)
	}
	R.open[abs] = true
	defer delete(R.open, abs)
	r, closer, err := openMaybeZst(name)
	if err != nil {
		return fmt.Errorf("ff: can't open %s: %w", name, err)
	}
	defer closer()
	if err := R.fill(r); err != nil {
		return fmt.Errorf("ff: reading %s: %w", name, err)
	}
	return nil
}

func (R *reader) fill(r StringReader) error {
	var err error
	var s string
	read := newCond()
	h := newTopHeader()
	for s, err = r.ReadString('\n'); err == nil || (errors.Is(err, io.EOF) && s != ""); s, err = r.ReadString('\n') {
		s = cleanString(s)
		if s != "" && read.read(s, R.defines) {
			if perr := R.line(s, h); perr != nil {
				return perr
			}
		}
		if err != nil {
			break
		}
	}
	if errors.Is(err, io.EOF) {
		err = nil
	}
	return err
}

// line processes one non-empty, uncommented line.
func (R *reader) line(s string, h *topHeader) (err error) {
	switch {
	case strings.HasPrefix(s, "#define"):
		if f := fi(s); len(f) == 2 {
			R.defines = append(R.defines, f[1])
		}
		return nil
	case strings.HasPrefix(s, "#include"):
		f := fi(s)
		fname := strings.Trim(f[len(f)-1], "\"'<>")
		if R.dir == "" {
			log.Printf("ff: not following include of %s", fname)
			return nil
		}
		if !filepath.IsAbs(fname) {
			fname = filepath.Join(R.dir, fname)
		}
		//the header is reset for the included file and restored afterwards.
		prev := R.header
		R.header = ""
		if err := R.fillFile(fname); err != nil {
			return fmt.Errorf("failed to include file %s: %w", fname, err)
		}
		R.header = prev
		return nil
	case strings.HasPrefix(s, "#"):
		return nil
	}
	if h.Is(s) {
		R.header = h.Which(s)
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("couldn't read [ %s ] line %q: %v", R.header, s, r)
		}
	}()
	f := fi(s)
	switch R.header {
	case "defaults":
		R.comb, err = strconv.Atoi(f[1])
		qerr(err)
	case "atomtypes":
		R.atomType(f)
	case "bondtypes":
		k, p := bondFromGro(f)
		R.K.Bonds[k] = p
	case "angletypes":
		k, p := angleFromGro(f)
		R.K.Angles[k] = p
	case "dihedraltypes", "impropertypes":
		R.dihedral(f, R.header == "impropertypes")
	}
	return nil
}

// atomtypes lines have optional leading columns, so they are read from the end:
// ... mass charge ptype sigma epsilon (or c6 c12)
func (R *reader) atomType(f []string) {
	n := len(f)
	if n < 6 {
		panic(fmt.Sprintf("expected at least 6 fields, got %d", n))
	}
	mass := parsefloat(f[n-5])
	a := parsefloat(f[n-2])
	b := parsefloat(f[n-1])
	if R.comb == 1 {
		a, b = c6c12ToSigmaEpsilon(a, b)
	}
	R.K.Mass[f[0]] = mass
	R.K.VdW[f[0]] = VdW{Sigma: a * chem.Nm2A, Eps: b * chem.KJ2Kcal}
}

// i j func b0 kb
func bondFromGro(f []string) ([2]string, BondParam) {
	b0 := parsefloat(f[3])
	kb := parsefloat(f[4])
	return [2]string{f[0], f[1]}, BondParam{R0: b0 * chem.Nm2A, K: kb * chem.KJ2Kcal * chem.A2Nm * chem.A2Nm / 2}
}

// i j k func th0 cth (other columns, as in Urey-Bradley terms, are ignored)
func angleFromGro(f []string) ([3]string, AngleParam) {
	th0 := parsefloat(f[4])
	cth := parsefloat(f[5])
	return [3]string{f[0], f[1], f[2]}, AngleParam{Theta0: th0 * chem.Deg2Rad, K: cth * chem.KJ2Kcal / 2}
}

// Either i j k l func phase kd pn [divider] or, in the short form, two types, which are
// the central atoms (the outer ones for impropers) with wildcards in the other positions.
func (R *reader) dihedral(f []string, improper bool) {
	var key [4]string
	var rest []string
	if len(f) >= 8 {
		key = [4]string{f[0], f[1], f[2], f[3]}
		rest = f[4:]
	} else {
		rest = f[2:]
	}
	ft, err := strconv.Atoi(rest[0])
	qerr(err)
	improper = improper || ft == 4
	if len(f) < 8 {
		X := Wildcard
		if improper {
			key = [4]string{f[0], X, X, f[1]}
		} else {
			key = [4]string{X, f[0], f[1], X}
		}
	}
	if ft != 1 && ft != 4 && ft != 9 {
		log.Printf("ff: dihedral type %s-%s-%s-%s has unsupported function %d, ignored", key[0], key[1], key[2], key[3], ft)
		return
	}
	p := DihedralParam{Phase: parsefloat(rest[1]) * chem.Deg2Rad, Barrier: parsefloat(rest[2]) * chem.KJ2Kcal, Divider: 1}
	p.Periodicity, err = strconv.Atoi(rest[3])
	qerr(err)
	if len(rest) > 4 {
		p.Divider, err = strconv.Atoi(rest[4])
		qerr(err)
	}
	target := R.K.Dihedrals
	if improper {
		target = R.K.Impropers
	}
	//only function 9 allows several terms per key.
	if ft == 9 {
		target[key] = append(target[key], p)
	} else {
		target[key] = []DihedralParam{p}
	}
}

func c6c12ToSigmaEpsilon(c6, c12 float64) (sigma, epsilon float64) {
	if c6 == 0 || c12 == 0 {
		return 0, 0
	}
	return math.Pow(c12/c6, 1.0/6.0), c6 * c6 / (4 * c12)
}

//Writing

type groer interface {
	ToGro() (string, error)
}

func printGro[G ~[]E, E groer](r io.StringWriter, g G) error {
	for _, v := range g {
		m, e := v.ToGro()
		if e != nil {
			return e
		}
		_, e = r.WriteString(m)
		if e != nil {
			return e
		}
	}
	return nil
}

type atomTypeRow struct {
	name string
	mass float64
	vdw  VdW
}

func (a atomTypeRow) ToGro() (string, error) {
	return sf("%-6s %10.4f %8.4f A %14.6e %14.6e\n", a.name, a.mass, 0.0, a.vdw.Sigma*chem.A2Nm, a.vdw.Eps*chem.Kcal2KJ), nil
}

type bondRow struct {
	key [2]string
	p   BondParam
}

func (b bondRow) ToGro() (string, error) {
	return sf("%-4s %-4s 1 %12.6f %14.4f\n", b.key[0], b.key[1], b.p.R0*chem.A2Nm, b.p.K*2*chem.Kcal2KJ*chem.Nm2A*chem.Nm2A), nil
}

type angleRow struct {
	key [3]string
	p   AngleParam
}

func (a angleRow) ToGro() (string, error) {
	return sf("%-4s %-4s %-4s 1 %12.6f %12.6f\n", a.key[0], a.key[1], a.key[2], a.p.Theta0*chem.Rad2Deg, a.p.K*2*chem.Kcal2KJ), nil
}

type dihedralRow struct {
	key [4]string
	ft  int
	p   DihedralParam
}

func (d dihedralRow) ToGro() (string, error) {
	if d.p.Divider < 1 {
		return "", fmt.Errorf("dihedral %v has divider %d", d.key, d.p.Divider)
	}
	return sf("%-4s %-4s %-4s %-4s %d %10.4f %12.6f %d %d\n", d.key[0], d.key[1], d.key[2], d.key[3], d.ft, d.p.Phase*chem.Rad2Deg, d.p.Barrier*chem.Kcal2KJ, d.p.Periodicity, d.p.Divider), nil
}

func sortedKeys[K comparable, V any](m map[K]V, str func(K) string) []K {
	ret := make([]K, 0, len(m))
	for k := range m {
		ret = append(ret, k)
	}
	sort.Slice(ret, func(i, j int) bool { return str(ret[i]) < str(ret[j]) })
	return ret
}

func dihedralRows(m map[[4]string][]DihedralParam, ft int) []dihedralRow {
	ret := make([]dihedralRow, 0, len(m))
	for _, k := range sortedKeys(m, func(k [4]string) string { return strings.Join(k[:], " ") }) {
		for _, p := range m[k] {
			ret = append(ret, dihedralRow{key: k, ft: ft, p: p})
		}
	}
	return ret
}

// WriteGro writes the table to w in the format read by Read. Atom types that lack
// either mass or Lennard-Jones parameters are written with zeros for the missing data.
func (K *Keyed) WriteGro(w io.StringWriter) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s", r)
		}
	}()
	names := make(map[string]bool, len(K.Mass))
	for k := range K.Mass {
		names[k] = true
	}
	for k := range K.VdW {
		names[k] = true
	}
	ats := make([]atomTypeRow, 0, len(names))
	for _, k := range sortedKeys(names, func(k string) string { return k }) {
		ats = append(ats, atomTypeRow{name: k, mass: K.Mass[k], vdw: K.VdW[k]})
	}
	_, err = w.WriteString("[ atomtypes ]\n")
	qerr(err)
	qerr(printGro(w, ats))

	bonds := make([]bondRow, 0, len(K.Bonds))
	for _, k := range sortedKeys(K.Bonds, func(k [2]string) string { return strings.Join(k[:], " ") }) {
		bonds = append(bonds, bondRow{key: k, p: K.Bonds[k]})
	}
	_, err = w.WriteString("\n[ bondtypes ]\n")
	qerr(err)
	qerr(printGro(w, bonds))

	angles := make([]angleRow, 0, len(K.Angles))
	for _, k := range sortedKeys(K.Angles, func(k [3]string) string { return strings.Join(k[:], " ") }) {
		angles = append(angles, angleRow{key: k, p: K.Angles[k]})
	}
	_, err = w.WriteString("\n[ angletypes ]\n")
	qerr(err)
	qerr(printGro(w, angles))

	_, err = w.WriteString("\n[ dihedraltypes ]\n")
	qerr(err)
	qerr(printGro(w, dihedralRows(K.Dihedrals, 9)))
	_, err = w.WriteString("\n[ impropertypes ]\n")
	qerr(err)
	qerr(printGro(w, dihedralRows(K.Impropers, 4)))
	return nil
}

// WriteFile writes the table to the file name, zstd-compressed if the name ends in ".zst".
func (K *Keyed) WriteFile(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	var out io.Writer = f
	var z *zstd.Encoder
	if strings.HasSuffix(strings.ToLower(name), ".zst") {
		z, err = zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return err
		}
		out = z
	}
	b := bufio.NewWriter(out)
	if err = K.WriteGro(b); err != nil {
		return fmt.Errorf("ff: writing %s: %w", name, err)
	}
	if err = b.Flush(); err != nil {
		return err
	}
	if z != nil {
		if err = z.Close(); err != nil {
			return err
		}
	}
	return f.Sync()
}
