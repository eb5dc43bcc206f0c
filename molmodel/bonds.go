/*
bonds.go, part of betafab



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

package molmodel

import (
	"strings"
)

// DefaultBondTolerance is added to the sum of covalent radii when perceiving bonds.
const DefaultBondTolerance = 0.3

// Covalent radii, in A, from Cordero et al., 2008 (DOI:10.1039/B801115J).
// H is lengthened to 0.4, as gochem does.
var covalentRadii = map[string]float64{
	"H":  0.4,
	"C":  0.76,
	"N":  0.71,
	"O":  0.66,
	"S":  1.05,
	"P":  1.07,
	"F":  0.57,
	"Cl": 1.02,
	"Br": 1.2,
	"Se": 1.2,
}

// CovalentRadius returns the covalent radius of the element, and false if unknown.
func CovalentRadius(symbol string) (float64, bool) {
	r, ok := covalentRadii[normSymbol(symbol)]
	return r, ok
}

// BondLength returns the sum of covalent radii of the two elements. Unknown
// elements count as carbon.
func BondLength(sym1, sym2 string) float64 {
	r1, ok := CovalentRadius(sym1)
	if !ok {
		r1 = covalentRadii["C"]
	}
	r2, ok := CovalentRadius(sym2)
	if !ok {
		r2 = covalentRadii["C"]
	}
	return r1 + r2
}

func normSymbol(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return strings.ToUpper(s)
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// PerceiveBonds adds a bond between every pair of atoms closer than the sum
// of their covalent radii plus tol. H-H pairs are never bonded.
func (s *Structure) PerceiveBonds(tol float64) {
	for i := 0; i < s.Len(); i++ {
		si := normSymbol(s.Atoms[i].Symbol)
		ri, ok := covalentRadii[si]
		if !ok {
			continue
		}
		pi := s.Pos(i)
		for j := i + 1; j < s.Len(); j++ {
			sj := normSymbol(s.Atoms[j].Symbol)
			rj, ok := covalentRadii[sj]
			if !ok || (si == "H" && sj == "H") {
				continue
			}
			pj := s.Pos(j)
			dx, dy, dz := pi.X-pj.X, pi.Y-pj.Y, pi.Z-pj.Z
			cut := ri + rj + tol
			if dx*dx+dy*dy+dz*dz <= cut*cut {
				s.AddBond(i, j)
			}
		}
	}
}
