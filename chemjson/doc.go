// Package chemjson implements serialization and unserialization of
// mdprep data types. It's planned use is the communication of mdprep
// with the programs that read structure files (PDB, mmCIF, mol2) and those that
// consume the prepared systems, which can be written in languages other than Go.
// Data is sent as a stream of JSON objects, one per line: a header with the number
// of atoms, bonds and residues, then each atom with its coordinates, each bond and
// each residue.
package chemjson
