/*
rename.go, part of betafab



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
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/rmera/betafab/molmodel"
)

// Provenance tags, stored in chem.Atom.Tag while a residue is assembled.
const (
	untagged = iota
	siteBackbone
	siteAlpha // position 2
	siteBeta  // position 3
)

// Heavy atoms in the same Greek-letter group are numbered backbone first,
// then the position 3 side chain, then the position 2 one.
var sitePriority = map[int]int{siteBackbone: 0, siteBeta: 1, siteAlpha: 2}

const greekLetters = "ABGDEZHTIKLMNP"

var heavyNameRE = regexp.MustCompile(`^([BCNOFPS])([ABGDEZHTIKLMNP])([1-9])?$`)

type atomLabel struct {
	atom    int
	element byte
	greek   byte
	index   int
	site    int
}

func isHydrogen(s *molmodel.Structure, i int) bool {
	return strings.EqualFold(s.Atom(i).Symbol, "H")
}

// bareBackbone reports whether atom i is the N, C or O of the backbone,
// which keep their names.
func bareBackbone(s *molmodel.Structure, i int) bool {
	at := s.Atom(i)
	if at.Tag != siteBackbone {
		return false
	}
	return at.Name == "N" || at.Name == "C" || at.Name == "O"
}

// renameResidue gives IUPAC-style names to the atoms of residue resid,
// built from parts with known provenance tags. Heavy atoms of the position
// 3 side chain move one Greek letter outwards, groups with more than one
// atom get numbered, and hydrogens take the name of the atom they are
// bonded to. Tags are cleared afterwards.
func renameResidue(s *molmodel.Structure, resid int) error {
	const dec = "renameResidue"
	atoms := s.ResidueAtoms(resid)
	var labels []atomLabel
	for _, i := range atoms {
		at := s.Atom(i)
		if at.Tag == untagged {
			return errorf(Consistency, dec, "atom %s of residue %d has no provenance", at.Name, resid)
		}
		if isHydrogen(s, i) || bareBackbone(s, i) {
			continue
		}
		m := heavyNameRE.FindStringSubmatch(at.Name)
		if m == nil {
			return errorf(Consistency, dec, "can't parse atom name %q in residue %d", at.Name, resid)
		}
		l := atomLabel{atom: i, element: m[1][0], greek: m[2][0], site: at.Tag}
		if m[3] != "" {
			l.index = int(m[3][0] - '0')
		}
		if at.Tag == siteBeta {
			k := strings.IndexByte(greekLetters, l.greek)
			if k+1 >= len(greekLetters) {
				return errorf(Consistency, dec, "side chain too long to rename atom %q", at.Name)
			}
			l.greek = greekLetters[k+1]
		}
		labels = append(labels, l)
	}
	for _, g := range []byte(greekLetters) {
		var group []atomLabel
		for _, l := range labels {
			if l.greek == g {
				group = append(group, l)
			}
		}
		if len(group) == 1 {
			s.Atom(group[0].atom).Name = string([]byte{group[0].element, g})
			continue
		}
		sort.SliceStable(group, func(i, j int) bool {
			pi, pj := sitePriority[group[i].site], sitePriority[group[j].site]
			if pi != pj {
				return pi < pj
			}
			return group[i].index < group[j].index
		})
		for k, l := range group {
			s.Atom(l.atom).Name = fmt.Sprintf("%c%c%d", l.element, g, k+1)
		}
	}
	for _, i := range atoms {
		if isHydrogen(s, i) || bareBackbone(s, i) {
			continue
		}
		var hs []int
		for _, n := range s.Neighbors(i) {
			if isHydrogen(s, n) && s.Atom(n).MolID == resid {
				hs = append(hs, n)
			}
		}
		heavy := s.Atom(i).Name
		if len(hs) == 1 {
			s.Atom(hs[0]).Name = "H" + heavy[1:]
			continue
		}
		sort.SliceStable(hs, func(a, b int) bool { return s.Atom(hs[a]).Name < s.Atom(hs[b]).Name })
		for k, h := range hs {
			s.Atom(h).Name = fmt.Sprintf("H%s%d", heavy[1:], k+1)
		}
	}
	seen := make(map[string]bool, len(atoms))
	for _, i := range atoms {
		at := s.Atom(i)
		at.Tag = untagged
		if seen[at.Name] {
			return errorf(Consistency, dec, "duplicate atom name %s in residue %d", at.Name, resid)
		}
		seen[at.Name] = true
	}
	return nil
}
