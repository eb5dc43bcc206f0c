/*
build.go, part of betafab



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

	"github.com/rmera/betafab/sequence"
)

// Build assembles the residues, in order, into a peptide stored as target,
// replacing whatever was there. Residues are numbered from 1. Once the
// chain is complete, residues that carry dihedrals are folded, and the
// resulting torsions are returned. On a folding error the built peptide
// is still returned.
func (b *Builder) Build(target string, residues []sequence.Residue) (*Peptide, []Torsion, error) {
	const dec = "Builder.Build"
	if len(residues) == 0 {
		return nil, nil, errorf(Config, dec, "no residues to build")
	}
	chain, doneC := b.h.Scratch()
	defer doneC()
	var pep *Peptide
	for k, r := range residues {
		where := fmt.Sprintf("%s: residue %d %s", dec, k+1, r)
		next, done := b.h.Scratch()
		res, err := b.Residue(next, r)
		if err == nil {
			if pep == nil {
				err = b.h.Copy(next, chain)
				pep = &Peptide{h: b.h, name: chain}
			} else {
				err = b.Append(pep, res)
			}
		}
		done()
		if err != nil {
			return nil, nil, decorate(err, Consistency, where)
		}
	}
	b.h.Delete(target)
	if err := b.h.Copy(chain, target); err != nil {
		return nil, nil, decorate(err, Consistency, dec)
	}
	out := &Peptide{h: b.h, name: target}
	var tors []Torsion
	for k, r := range residues {
		if r.Dihedrals == nil {
			continue
		}
		t, err := b.Fold(out, k+1, r.Dihedrals)
		tors = append(tors, t...)
		if err != nil {
			return out, tors, decorate(err, Geometry, dec)
		}
	}
	return out, tors, nil
}
