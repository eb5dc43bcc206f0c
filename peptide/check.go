/*
check.go, part of betafab



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

package peptide

import (
	"github.com/rmera/betafab/molmodel"
)

// MaxResidue is the highest residue number in s, 0 if s is empty.
func MaxResidue(s *molmodel.Structure) int {
	res := s.Residues()
	if len(res) == 0 {
		return 0
	}
	return res[len(res)-1]
}

func isProline(resname string) bool {
	return resname == "PRO" || resname == "DPRO"
}

func nameIn(name string, names ...string) bool {
	for _, n := range names {
		if name == n {
			return true
		}
	}
	return false
}

// hasNeighborNamed reports whether atom i is bonded to an atom called name.
func hasNeighborNamed(s *molmodel.Structure, i int, name string) bool {
	for _, n := range s.Neighbors(i) {
		if s.Atom(n).Name == name {
			return true
		}
	}
	return false
}

// countNamed counts the atoms in residue resid called one of names for
// which ok returns true.
func countNamed(s *molmodel.Structure, resid int, names []string, ok func(i int) bool) int {
	n := 0
	for _, i := range s.Select(resid, names...) {
		if ok(i) {
			n++
		}
	}
	return n
}

// linked counts the atoms called from in residue ra bonded to an atom
// called to in residue rb.
func linked(s *molmodel.Structure, ra int, from string, rb int, to string) int {
	return countNamed(s, ra, []string{from}, func(i int) bool {
		for _, n := range s.Neighbors(i) {
			at := s.Atom(n)
			if at.MolID == rb && at.Name == to {
				return true
			}
		}
		return false
	})
}

// CheckPeptide verifies that s is a single peptide chain with residues
// numbered from 1 without gaps, where each residue has its backbone atoms
// and is joined to its neighbours through exactly one peptide bond.
func CheckPeptide(s *molmodel.Structure) error {
	const dec = "CheckPeptide"
	res := s.Residues()
	if len(res) == 0 {
		return errorf(Consistency, dec, "%s is empty", s.Name)
	}
	if res[0] != 1 {
		return errorf(Consistency, dec, "the first residue of %s is %d, not 1", s.Name, res[0])
	}
	max := res[len(res)-1]
	if len(res) != max {
		return errorf(Consistency, dec, "residue numbers in %s are not consecutive", s.Name)
	}
	for i := 1; i <= max; i++ {
		resname := s.ResidueName(i)
		if i > 1 && !isProline(resname) {
			if n := countNamed(s, i, []string{"H", "HN"}, func(a int) bool { return hasNeighborNamed(s, a, "N") }); n != 1 {
				return errorf(Consistency, dec, "residue %d (%s) has %d amide hydrogens", i, resname, n)
			}
		}
		if i > 1 {
			if n := linked(s, i-1, "C", i, "N"); n != 1 {
				return errorf(Consistency, dec, "%d peptide bonds between residues %d and %d", n, i-1, i)
			}
		}
		if i < max {
			if n := countNamed(s, i, []string{"O"}, func(a int) bool { return hasNeighborNamed(s, a, "C") }); n != 1 {
				return errorf(Consistency, dec, "residue %d (%s) has %d carbonyl oxygens", i, resname, n)
			}
			if n := linked(s, i+1, "N", i, "C"); n != 1 {
				return errorf(Consistency, dec, "%d peptide bonds between residues %d and %d", n, i, i+1)
			}
		}
		if !nameIn(resname, "NME", "ACE", "BUT") {
			if n := countNamed(s, i, []string{"CB", "CB1", "CA"}, func(a int) bool { return hasNeighborNamed(s, a, "N") }); n != 1 {
				return errorf(Consistency, dec, "residue %d (%s) has %d carbons bonded to its N", i, resname, n)
			}
		}
		if !nameIn(resname, "NME", "ACE") {
			if n := countNamed(s, i, []string{"CA"}, func(a int) bool { return hasNeighborNamed(s, a, "C") }); n != 1 {
				return errorf(Consistency, dec, "residue %d (%s) has %d CA bonded to its C", i, resname, n)
			}
		}
	}
	return nil
}

// IsNCapped reports whether the N terminus of s is blocked: the N of the
// first residue is bonded to something other than its backbone carbon and
// amide hydrogen, or there is no such N at all.
func IsNCapped(s *molmodel.Structure) bool {
	res := s.Residues()
	if len(res) == 0 {
		return false
	}
	ns := s.Select(res[0], "N")
	if len(ns) == 0 {
		return true
	}
	for _, n := range ns {
		for _, nb := range s.Neighbors(n) {
			if !nameIn(s.Atom(nb).Name, "CB", "CB1", "CA", "H", "HN", "CH3") {
				return true
			}
		}
	}
	return false
}

// IsCCapped reports whether the C terminus of s is blocked: the C of the
// last residue is bonded to something other than its O and CA, or there is
// no such C at all.
func IsCCapped(s *molmodel.Structure) bool {
	max := MaxResidue(s)
	if max == 0 && len(s.Residues()) == 0 {
		return false
	}
	cs := s.Select(max, "C")
	if len(cs) == 0 {
		return true
	}
	for _, c := range cs {
		for _, nb := range s.Neighbors(c) {
			if !nameIn(s.Atom(nb).Name, "O", "CA", "CH3") {
				return true
			}
		}
	}
	return false
}

// StartsWithProline reports whether the first residue of s is a proline.
func StartsWithProline(s *molmodel.Structure) bool {
	res := s.Residues()
	return len(res) > 0 && isProline(s.ResidueName(res[0]))
}
