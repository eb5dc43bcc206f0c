/*
structure.go, part of betafab



LICENSE

Copyright (c) 2024 Raul Mera <rmeraa{at}academicosDOTutaDOTcl>


This program, including its documentation,
is free software; you can redistribute it and/or modify
it under the terms of the GNU General Public License version 2.0 as
published by the Free Software Foundation.

This program and its documentation is distributed in the hope that
it will be useful, but WITHOUT ANY WARRANTY; without even the
implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR
PURPOSE.  See the GNU General Public License for more details.

You should have received a copy of the GNU General
Public License along with this program.  If not, see
<http://www.gnu.org/licenses/>.

*/

// Package molmodel is the molecular modelling layer the peptide builder works
// on. A Structure is a set of gochem atoms with one set of coordinates and an
// explicit bond list. A Session keeps named structures and implements the
// Host operations (superposition, fusion, torsion changes, inversions).
package molmodel

import (
	"fmt"
	"sort"

	chem "github.com/rmera/gochem"
	v3 "github.com/rmera/gochem/v3"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/rmera/betafab/geom"
)

// Structure is a molecule with a single conformation. Atom indexes
// (chem.Atom.Index()) always match the position in Atoms, and each
// atom's Bonds field mirrors the structure's bond list.
type Structure struct {
	Name   string
	Atoms  []*chem.Atom
	Coords *v3.Matrix
	bonds  []*chem.Bond
}

// New returns a structure with the given atoms and coordinates. Bonds already
// present in the atoms are kept, as long as both ends belong to the structure.
func New(name string, atoms []*chem.Atom, coords *v3.Matrix) (*Structure, error) {
	if coords == nil && len(atoms) != 0 {
		return nil, fmt.Errorf("molmodel/New: nil coordinates for %d atoms", len(atoms))
	}
	if coords != nil && coords.NVecs() != len(atoms) {
		return nil, fmt.Errorf("molmodel/New: %d atoms but %d coordinates", len(atoms), coords.NVecs())
	}
	s := &Structure{Name: name, Atoms: atoms, Coords: coords}
	in := make(map[*chem.Atom]bool, len(atoms))
	for _, at := range atoms {
		in[at] = true
	}
	seen := make(map[*chem.Bond]bool)
	for _, at := range atoms {
		for _, b := range at.Bonds {
			if seen[b] || !in[b.At1] || !in[b.At2] {
				continue
			}
			seen[b] = true
			s.bonds = append(s.bonds, b)
		}
	}
	s.reindex()
	return s, nil
}

// zeros returns a coordinate matrix for n atoms, or nil if n is 0, since
// gonum matrices can't have zero rows.
func zeros(n int) *v3.Matrix {
	if n == 0 {
		return nil
	}
	return v3.Zeros(n)
}

// FromMolecule copies the atoms and the first frame of mol into a new structure.
func FromMolecule(name string, mol *chem.Molecule) (*Structure, error) {
	if mol == nil || len(mol.Coords) == 0 {
		return nil, fmt.Errorf("molmodel/FromMolecule: no coordinates for %s", name)
	}
	atoms := make([]*chem.Atom, mol.Len())
	for i := range atoms {
		at := new(chem.Atom)
		at.Copy(mol.Atom(i))
		at.Bonds = nil
		atoms[i] = at
	}
	coords := zeros(len(atoms))
	for i := range atoms {
		geom.SetVec(coords, i, geom.Vec(mol.Coords[0], i))
	}
	return New(name, atoms, coords)
}

// Len returns the number of atoms. Together with Atom it makes a
// Structure a chem.Atomer.
func (s *Structure) Len() int { return len(s.Atoms) }

// Atom returns the i-th atom.
func (s *Structure) Atom(i int) *chem.Atom { return s.Atoms[i] }

// Pos returns the position of the i-th atom.
func (s *Structure) Pos(i int) r3.Vec { return geom.Vec(s.Coords, i) }

// SetPos moves the i-th atom to p.
func (s *Structure) SetPos(i int, p r3.Vec) { geom.SetVec(s.Coords, i, p) }

// Bonds returns the bond list. It must not be modified.
func (s *Structure) Bonds() []*chem.Bond { return s.bonds }

// reindex sets atom indexes and IDs from their position, and rebuilds the
// per-atom bond lists and bond indexes from s.bonds.
func (s *Structure) reindex() {
	for i, at := range s.Atoms {
		at.SetIndex(i)
		at.ID = i + 1
		at.Bonds = nil
	}
	for i, b := range s.bonds {
		b.Index = i
		b.At1.Bonds = append(b.At1.Bonds, b)
		b.At2.Bonds = append(b.At2.Bonds, b)
	}
}

// Bonded reports whether atoms i and j share a bond.
func (s *Structure) Bonded(i, j int) bool {
	for _, b := range s.Atoms[i].Bonds {
		if b.Cross(s.Atoms[i]) == s.Atoms[j] {
			return true
		}
	}
	return false
}

// AddBond bonds atoms i and j. Bonding an already bonded pair does nothing.
func (s *Structure) AddBond(i, j int) error {
	if i < 0 || j < 0 || i >= s.Len() || j >= s.Len() || i == j {
		return fmt.Errorf("molmodel/AddBond: invalid atom pair %d-%d in %s (%d atoms)", i, j, s.Name, s.Len())
	}
	if s.Bonded(i, j) {
		return nil
	}
	a1, a2 := s.Atoms[i], s.Atoms[j]
	b := &chem.Bond{Index: len(s.bonds), At1: a1, At2: a2, Dist: geom.Distance(s.Pos(i), s.Pos(j))}
	s.bonds = append(s.bonds, b)
	a1.Bonds = append(a1.Bonds, b)
	a2.Bonds = append(a2.Bonds, b)
	return nil
}

// Neighbors returns the indexes of the atoms bonded to i, in increasing order.
func (s *Structure) Neighbors(i int) []int {
	at := s.Atoms[i]
	ret := make([]int, 0, len(at.Bonds))
	for _, b := range at.Bonds {
		ret = append(ret, b.Cross(at).Index())
	}
	sort.Ints(ret)
	return ret
}

// Remove deletes the given atoms and every bond they take part in.
// Indexes of the remaining atoms are shifted accordingly.
func (s *Structure) Remove(idx ...int) {
	if len(idx) == 0 {
		return
	}
	gone := make(map[*chem.Atom]bool, len(idx))
	for _, i := range idx {
		gone[s.Atoms[i]] = true
	}
	atoms := make([]*chem.Atom, 0, s.Len()-len(gone))
	keep := make([]int, 0, s.Len()-len(gone))
	for i, at := range s.Atoms {
		if !gone[at] {
			atoms = append(atoms, at)
			keep = append(keep, i)
		}
	}
	coords := zeros(len(atoms))
	for j, i := range keep {
		geom.SetVec(coords, j, s.Pos(i))
	}
	bonds := make([]*chem.Bond, 0, len(s.bonds))
	for _, b := range s.bonds {
		if !gone[b.At1] && !gone[b.At2] {
			bonds = append(bonds, b)
		}
	}
	s.Atoms = atoms
	s.Coords = coords
	s.bonds = bonds
	s.reindex()
}

// Copy returns a deep copy of the structure with the given name.
func (s *Structure) Copy(name string) *Structure {
	atoms := make([]*chem.Atom, s.Len())
	for i, v := range s.Atoms {
		at := new(chem.Atom)
		at.Copy(v)
		at.Bonds = nil
		atoms[i] = at
	}
	coords := zeros(s.Len())
	for i := range atoms {
		geom.SetVec(coords, i, s.Pos(i))
	}
	r := &Structure{Name: name, Atoms: atoms, Coords: coords}
	for _, b := range s.bonds {
		nb := &chem.Bond{At1: atoms[b.At1.Index()], At2: atoms[b.At2.Index()], Dist: b.Dist, Energy: b.Energy, Order: b.Order}
		r.bonds = append(r.bonds, nb)
	}
	r.reindex()
	return r
}

// Append moves the atoms and bonds of o to the end of s, without changing
// their coordinates, and returns the index of the first appended atom.
// o must not be used afterwards.
func (s *Structure) Append(o *Structure) int {
	offset := s.Len()
	coords := zeros(s.Len() + o.Len())
	for i := 0; i < s.Len(); i++ {
		geom.SetVec(coords, i, s.Pos(i))
	}
	for i := 0; i < o.Len(); i++ {
		geom.SetVec(coords, offset+i, o.Pos(i))
	}
	s.Atoms = append(s.Atoms, o.Atoms...)
	s.bonds = append(s.bonds, o.bonds...)
	s.Coords = coords
	s.reindex()
	o.Atoms = nil
	o.bonds = nil
	o.Coords = nil
	return offset
}

// Select returns the indexes of the atoms in residue resid whose name is
// one of names, in structure order.
func (s *Structure) Select(resid int, names ...string) []int {
	var ret []int
	for i, at := range s.Atoms {
		if at.MolID != resid {
			continue
		}
		for _, n := range names {
			if at.Name == n {
				ret = append(ret, i)
				break
			}
		}
	}
	return ret
}

// Residues returns the sorted residue numbers present in the structure.
func (s *Structure) Residues() []int {
	seen := make(map[int]bool)
	var ret []int
	for _, at := range s.Atoms {
		if !seen[at.MolID] {
			seen[at.MolID] = true
			ret = append(ret, at.MolID)
		}
	}
	sort.Ints(ret)
	return ret
}

// ResidueName returns the name of residue resid, or "" if there is no such residue.
func (s *Structure) ResidueName(resid int) string {
	for _, at := range s.Atoms {
		if at.MolID == resid {
			return at.MolName
		}
	}
	return ""
}

// ResidueAtoms returns the indexes of the atoms of residue resid.
func (s *Structure) ResidueAtoms(resid int) []int {
	var ret []int
	for i, at := range s.Atoms {
		if at.MolID == resid {
			ret = append(ret, i)
		}
	}
	return ret
}

// Molecule builds a gochem molecule sharing the atoms of s, with a copy of
// its coordinates.
func (s *Structure) Molecule() (*chem.Molecule, error) {
	top := chem.NewTopology(0, 1, s.Atoms)
	coords := zeros(s.Len())
	for i := 0; i < s.Len(); i++ {
		geom.SetVec(coords, i, s.Pos(i))
	}
	return chem.NewMolecule([]*v3.Matrix{coords}, top, nil)
}

// WritePDB writes the structure to a PDB file.
func (s *Structure) WritePDB(fname string) error {
	if err := chem.PDBFileWrite(fname, s.Coords, s, nil); err != nil {
		return fmt.Errorf("molmodel/WritePDB: %s: %w", fname, err)
	}
	return nil
}

// ReadPDB reads the first model in a PDB file and perceives its bonds.
func ReadPDB(fname string) (*Structure, error) {
	mol, err := chem.PDBFileRead(fname)
	if err != nil {
		return nil, fmt.Errorf("molmodel/ReadPDB: %s: %w", fname, err)
	}
	s, err := FromMolecule(fname, mol)
	if err != nil {
		return nil, err
	}
	s.PerceiveBonds(DefaultBondTolerance)
	return s, nil
}
