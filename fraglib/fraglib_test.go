/*
fraglib_test.go, part of betafab



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

package fraglib

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/rmera/betafab/molmodel"
)

func errql(t *testing.T, err error) {
	if err != nil {
		t.Error(err)
	}
}

var fragments = []struct {
	key     string
	resname string
	atoms   int
	bonds   int
}{
	{"ACHC_2R3R", "ACH", 20, 20},
	{"ACHC_2R3S", "ACH", 20, 20},
	{"ACHC_2S3R", "ACH", 20, 20},
	{"ACHC_2S3S", "ACH", 20, 20},
	{"ACPC_2R3R", "ACP", 17, 17},
	{"ACPC_2R3S", "ACP", 17, 17},
	{"ACPC_2S3R", "ACP", 17, 17},
	{"ACPC_2S3S", "ACP", 17, 17},
	{"betabackbone", "BAL", 10, 9},
	{"butyrate", "BUT", 12, 11},
	{"orn", "ORN", 18, 17},
	{"orp", "ORP", 19, 18},
	{"peptidebond", "PEP", 6, 5},
	{"ace", "ACE", 6, 5},
	{"ala", "ALA", 10, 9},
	{"arg", "ARG", 24, 23},
	{"asn", "ASN", 14, 13},
	{"asp", "ASP", 12, 11},
	{"asph", "ASH", 13, 12},
	{"cys", "CYS", 11, 10},
	{"gln", "GLN", 17, 16},
	{"glu", "GLU", 15, 14},
	{"gluh", "GLH", 16, 15},
	{"gly", "GLY", 7, 6},
	{"hid", "HID", 17, 17},
	{"hie", "HIE", 17, 17},
	{"hip", "HIP", 18, 18},
	{"his", "HIS", 17, 17},
	{"ile", "ILE", 19, 18},
	{"leu", "LEU", 19, 18},
	{"lys", "LYS", 22, 21},
	{"lysn", "LYN", 21, 20},
	{"met", "MET", 17, 16},
	{"nme", "NME", 6, 5},
	{"phe", "PHE", 20, 20},
	{"pro", "PRO", 14, 14},
	{"ser", "SER", 11, 10},
	{"thr", "THR", 14, 13},
	{"trp", "TRP", 24, 25},
	{"tyr", "TYR", 21, 21},
	{"val", "VAL", 16, 15},
}

func TestAllFragments(Te *testing.T) {
	lib := Default("")
	for _, f := range fragments {
		s, err := lib.Fragment(f.key)
		if err != nil {
			Te.Errorf("%s: %v", f.key, err)
			continue
		}
		if s.Len() != f.atoms {
			Te.Errorf("%s: %d atoms, want %d", f.key, s.Len(), f.atoms)
		}
		if n := len(s.Bonds()); n != f.bonds {
			Te.Errorf("%s: %d bonds, want %d", f.key, n, f.bonds)
		}
		if rn := s.ResidueName(1); rn != f.resname {
			Te.Errorf("%s: residue name %q, want %q", f.key, rn, f.resname)
		}
		for i, at := range s.Atoms {
			if len(at.Bonds) == 0 {
				Te.Errorf("%s: atom %d (%s) has no bonds", f.key, i, at.Name)
			}
			if at.Symbol == "H" && len(at.Bonds) != 1 {
				Te.Errorf("%s: hydrogen %s has %d bonds", f.key, at.Name, len(at.Bonds))
			}
		}
	}
	if n := len(Standard().Keys()) + len(Special().Keys()); n != len(fragments) {
		Te.Errorf("the stores hold %d fragments, %d expected", n, len(fragments))
	}
}

func TestFragmentsAreCopies(Te *testing.T) {
	lib := Standard()
	a, err := lib.Fragment("ala")
	errql(Te, err)
	a.Atoms[0].Name = "XX"
	a.Remove(1)
	b, err := lib.Fragment("ala")
	errql(Te, err)
	if b.Atoms[0].Name != "N" || b.Len() != 10 {
		Te.Error("changes to a fragment reached the library")
	}
}

func TestNotFound(Te *testing.T) {
	if _, err := Standard().Fragment("betabackbone"); !errors.Is(err, ErrNotFound) {
		Te.Errorf("expected ErrNotFound from the standard store, got %v", err)
	}
	if _, err := Default("").Fragment("unobtainium"); !errors.Is(err, ErrNotFound) {
		Te.Errorf("expected ErrNotFound from the chain, got %v", err)
	}
	if _, err := (Dir{Path: Te.TempDir()}).Fragment("ala"); !errors.Is(err, ErrNotFound) {
		Te.Errorf("expected ErrNotFound from an empty directory, got %v", err)
	}
}

func TestDirOverride(Te *testing.T) {
	dir := Te.TempDir()
	gly, err := Standard().Fragment("gly")
	errql(Te, err)
	errql(Te, gly.WritePDB(filepath.Join(dir, "ala.pdb")))
	var lib molmodel.Library = Default(dir)
	s, err := lib.Fragment("ala")
	errql(Te, err)
	if s.ResidueName(1) != "GLY" || s.Len() != 7 {
		Te.Errorf("the directory did not take precedence: %s with %d atoms", s.ResidueName(1), s.Len())
	}
	s, err = lib.Fragment("peptidebond")
	errql(Te, err)
	if s.Len() != 6 {
		Te.Errorf("fallback to the special store failed: %d atoms", s.Len())
	}
}
