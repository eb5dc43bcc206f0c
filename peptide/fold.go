/*
fold.go, part of betafab



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
	"errors"
	"fmt"
	"math"

	"github.com/rmera/betafab/geom"
	"github.com/rmera/betafab/molmodel"
	"github.com/rmera/betafab/sequence"
)

// Class is the backbone type of a residue.
type Class int

const (
	Other Class = iota
	AlphaResidue
	BetaResidue
)

func (c Class) String() string {
	switch c {
	case AlphaResidue:
		return "alpha"
	case BetaResidue:
		return "beta"
	}
	return "other"
}

// commonNeighbors counts the atoms of residue resid called one of names
// that are bonded to both i and j.
func commonNeighbors(s *molmodel.Structure, resid, i, j int, names ...string) int {
	return countNamed(s, resid, names, func(a int) bool {
		return s.Bonded(a, i) && s.Bonded(a, j)
	})
}

// Classify tells whether residue resid of s has an alpha or a beta amino
// acid backbone. Both need a single N, C, CA, O and amide H (CD for
// proline), with N-H and C-CA bonds. Alpha residues have CA bonded to N
// and C, beta residues have a CB (or CB1) between N and CA.
func Classify(s *molmodel.Structure, resid int) Class {
	hname := "H"
	if isProline(s.ResidueName(resid)) {
		hname = "CD"
	}
	idx := make(map[string]int, 5)
	for _, n := range []string{"N", "C", hname, "CA", "O"} {
		i, ok := selectOne(s, resid, n)
		if !ok {
			return Other
		}
		idx[n] = i
	}
	if !s.Bonded(idx["N"], idx[hname]) || !s.Bonded(idx["C"], idx["CA"]) {
		return Other
	}
	if commonNeighbors(s, resid, idx["N"], idx["C"], "CA") == 1 {
		return AlphaResidue
	}
	if commonNeighbors(s, resid, idx["N"], idx["CA"], "CB", "CB1") == 1 {
		return BetaResidue
	}
	return Other
}

// IsAlpha reports whether residue resid of s is an alpha amino acid.
func IsAlpha(s *molmodel.Structure, resid int) bool { return Classify(s, resid) == AlphaResidue }

// IsBeta reports whether residue resid of s is a beta amino acid.
func IsBeta(s *molmodel.Structure, resid int) bool { return Classify(s, resid) == BetaResidue }

// atomRef names an atom by alternative names and its residue.
type atomRef struct {
	names []string
	resid int
}

func ref(resid int, names ...string) atomRef { return atomRef{names: names, resid: resid} }

type torsionDef struct {
	name  string
	atoms [4]atomRef
}

func backboneTorsions(c Class, r int) []torsionDef {
	if c == AlphaResidue {
		return []torsionDef{
			{"phi", [4]atomRef{ref(r-1, "C"), ref(r, "N"), ref(r, "CA"), ref(r, "C")}},
			{"psi", [4]atomRef{ref(r, "N"), ref(r, "CA"), ref(r, "C"), ref(r+1, "N")}},
		}
	}
	return []torsionDef{
		{"phi", [4]atomRef{ref(r-1, "C"), ref(r, "N"), ref(r, "CB", "CB1"), ref(r, "CA")}},
		{"theta", [4]atomRef{ref(r, "N"), ref(r, "CB", "CB1"), ref(r, "CA"), ref(r, "C")}},
		{"psi", [4]atomRef{ref(r, "CB", "CB1"), ref(r, "CA"), ref(r, "C"), ref(r+1, "N")}},
	}
}

func (t torsionDef) resolve(s *molmodel.Structure) ([4]int, error) {
	var ret [4]int
	for k, a := range t.atoms {
		i, ok := selectOne(s, a.resid, a.names...)
		if !ok {
			return ret, fmt.Errorf("no single atom %v in residue %d", a.names, a.resid)
		}
		ret[k] = i
	}
	return ret, nil
}

// Torsion reports one backbone torsion of a residue.
type Torsion struct {
	Resid    int
	Name     string
	Target   float64
	Achieved float64
	// Skipped torsions were not set, for the reason given.
	Skipped bool
	Reason  string
}

func (t Torsion) String() string {
	if t.Skipped {
		return fmt.Sprintf("%d %s skipped: %s", t.Resid, t.Name, t.Reason)
	}
	return fmt.Sprintf("%d %s %.2f", t.Resid, t.Name, t.Achieved)
}

// strictTolerance is how far, in degrees, a torsion may end from its
// target before a warning, or an error in strict mode.
const strictTolerance = 1e-3

// Fold sets the backbone torsions of residue resid of p. Alpha residues
// take phi and psi. Given three angles, the middle one is ignored. Beta
// residues take phi, theta and psi. Torsions that can't be set (a missing
// neighbour residue, a bond in a ring) are skipped with a warning, or make
// Fold fail in strict mode.
func (b *Builder) Fold(p *Peptide, resid int, angles []float64) ([]Torsion, error) {
	const dec = "Builder.Fold"
	s, err := p.Model()
	if err != nil {
		return nil, decorate(err, Consistency, dec)
	}
	class := Classify(s, resid)
	switch {
	case class == Other:
		return nil, errorf(Config, dec, "residue %d (%s) is neither an alpha nor a beta amino acid", resid, s.ResidueName(resid))
	case class == AlphaResidue && len(angles) == 3:
		angles = []float64{angles[0], angles[2]}
	case class == AlphaResidue && len(angles) != 2:
		return nil, errorf(Config, dec, "alpha residue %d needs 2 torsions, got %d", resid, len(angles))
	case class == BetaResidue && len(angles) != 3:
		return nil, errorf(Config, dec, "beta residue %d needs 3 torsions, got %d", resid, len(angles))
	}
	defs := backboneTorsions(class, resid)
	ret := make([]Torsion, 0, len(defs))
	for k, d := range defs {
		t := Torsion{Resid: resid, Name: d.name, Target: angles[k]}
		idx, err := d.resolve(s)
		if err == nil {
			err = b.h.SetDihedral(p.name, idx[0], idx[1], idx[2], idx[3], angles[k])
			if err != nil && !errors.Is(err, molmodel.ErrRing) {
				return ret, decorate(err, Geometry, dec)
			}
		}
		if err != nil {
			t.Skipped, t.Reason = true, err.Error()
			ret = append(ret, t)
			if b.o.Strict {
				return ret, errorf(Geometry, dec, "can't set %s of residue %d: %v", d.name, resid, err)
			}
			b.warnf("%s of residue %d not set: %v", d.name, resid, err)
			continue
		}
		t.Achieved, err = b.h.Dihedral(p.name, idx[0], idx[1], idx[2], idx[3])
		if err != nil {
			return ret, decorate(err, Geometry, dec)
		}
		ret = append(ret, t)
		if math.Abs(geom.AngleDiff(t.Achieved, t.Target)) > strictTolerance {
			if b.o.Strict {
				return ret, errorf(Geometry, dec, "%s of residue %d is %.4f, not %.4f", d.name, resid, t.Achieved, t.Target)
			}
			b.warnf("%s of residue %d is %.4f, not %.4f", d.name, resid, t.Achieved, t.Target)
		}
	}
	return ret, nil
}

// FoldAll applies spec to the residues of p in order. Residues that are
// neither alpha nor beta amino acids, such as caps, are left alone but
// still take their place in a per-residue spec.
func (b *Builder) FoldAll(p *Peptide, spec sequence.FoldSpec) ([]Torsion, error) {
	const dec = "Builder.FoldAll"
	s, err := p.Model()
	if err != nil {
		return nil, decorate(err, Consistency, dec)
	}
	var ret []Torsion
	for k, r := range s.Residues() {
		angles, ok := spec.For(k)
		if !ok {
			b.warnf("no torsions given for residue %d and the following", r)
			break
		}
		if Classify(s, r) == Other {
			continue
		}
		t, err := b.Fold(p, r, angles)
		ret = append(ret, t...)
		if err != nil {
			return ret, decorate(err, Geometry, dec)
		}
	}
	return ret, nil
}

// Torsions measures the backbone torsions of residue resid of s. Torsions
// whose atoms are missing come back as skipped.
func Torsions(s *molmodel.Structure, resid int) []Torsion {
	class := Classify(s, resid)
	if class == Other {
		return nil
	}
	var ret []Torsion
	for _, d := range backboneTorsions(class, resid) {
		t := Torsion{Resid: resid, Name: d.name, Target: math.NaN()}
		idx, err := d.resolve(s)
		if err != nil {
			t.Skipped, t.Reason = true, err.Error()
		} else {
			t.Achieved = GetDihedral(s, idx[0], idx[1], idx[2], idx[3])
		}
		ret = append(ret, t)
	}
	return ret
}

// GetDihedral returns the a-b-c-d dihedral of s in degrees.
func GetDihedral(s *molmodel.Structure, a, b, c, d int) float64 {
	return geom.Dihedral(s.Pos(a), s.Pos(b), s.Pos(c), s.Pos(d))
}
