/*
builder.go, part of betafab



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

// Package peptide builds alpha/beta-peptides from library fragments. Beta
// amino acids are assembled from a beta-alanine backbone and the side
// chains of the alpha amino acids, residues are joined through a peptide
// bond mould, and backbone torsions are set to give a secondary structure.
package peptide

import (
	"errors"
	"fmt"
	"log"
	"regexp"

	"github.com/rmera/betafab/molmodel"
	"github.com/rmera/betafab/sequence"
)

// Options tune the builder.
type Options struct {
	// FitTries is the number of superpositions attempted, with a random
	// rotation between them, before a fusion is given up.
	FitTries int
	// FitTolerance is the RMSD below which a fit onto the mould is accepted.
	FitTolerance float64
	// ProlineFitTolerance replaces FitTolerance for the fit of an
	// N-terminal proline, whose CD is not where an amide H would be.
	ProlineFitTolerance float64
	// Strict makes torsions that can't be set an error instead of a warning,
	// and checks that the set torsions were achieved.
	Strict bool
	// Log gets the warnings. If nil, they go to the standard logger.
	Log *log.Logger
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() *Options {
	return &Options{FitTries: 10, FitTolerance: 0.1, ProlineFitTolerance: 0.3}
}

// Builder creates peptides as named structures of a molmodel.Host.
type Builder struct {
	h molmodel.Host
	o *Options
}

// NewBuilder returns a builder working on h. A nil o means DefaultOptions.
func NewBuilder(h molmodel.Host, o *Options) *Builder {
	if o == nil {
		o = DefaultOptions()
	}
	return &Builder{h: h, o: o}
}

// Host returns the host the builder works on.
func (b *Builder) Host() molmodel.Host { return b.h }

func (b *Builder) warnf(format string, v ...any) {
	if b.o.Log != nil {
		b.o.Log.Printf(format, v...)
		return
	}
	log.Printf(format, v...)
}

// Peptide is a handle to a peptide stored in a Host.
type Peptide struct {
	h    molmodel.Host
	name string
}

// Open returns a handle to the structure already stored as name.
func Open(h molmodel.Host, name string) (*Peptide, error) {
	if _, err := h.Model(name); err != nil {
		return nil, decorate(err, Consistency, "Open")
	}
	return &Peptide{h: h, name: name}, nil
}

// Name is the name of the structure in the host.
func (p *Peptide) Name() string { return p.name }

// Model returns the live structure of the peptide.
func (p *Peptide) Model() (*molmodel.Structure, error) {
	return p.h.Model(p.name)
}

// Copy stores a copy of the peptide under name and returns it.
func (p *Peptide) Copy(name string) (*Peptide, error) {
	if err := p.h.Copy(p.name, name); err != nil {
		return nil, decorate(err, Consistency, "Peptide.Copy")
	}
	return &Peptide{h: p.h, name: name}, nil
}

// MaxResidue is the highest residue number in the peptide.
func (p *Peptide) MaxResidue() (int, error) {
	s, err := p.Model()
	if err != nil {
		return 0, decorate(err, Consistency, "Peptide.MaxResidue")
	}
	return MaxResidue(s), nil
}

// Check runs CheckPeptide on the peptide.
func (p *Peptide) Check() error {
	s, err := p.Model()
	if err != nil {
		return decorate(err, Consistency, "Peptide.Check")
	}
	return CheckPeptide(s)
}

// setResidue gives every atom of s the residue number, name and chain.
func setResidue(s *molmodel.Structure, resid int, resname, chain string) {
	for _, at := range s.Atoms {
		at.MolID = resid
		if resname != "" {
			at.MolName = resname
		}
		at.Chain = chain
	}
}

func validStereo(st string, allowed ...string) bool {
	for _, a := range allowed {
		if st == a {
			return true
		}
	}
	return false
}

// Alpha builds the alpha amino acid with side chain sc and stereo
// R, S, L or D (ignored for glycine) as a single residue stored under name.
func (b *Builder) Alpha(name, sc, stereo string) (*Peptide, error) {
	const dec = "Builder.Alpha"
	key, ok := sideChains[sc]
	if !ok {
		return nil, errorf(Lookup, dec, "unknown side chain %q", sc)
	}
	if sc != "G" && !validStereo(stereo, "R", "S", "L", "D") {
		return nil, errorf(Config, dec, "invalid stereo %q for an alpha amino acid", stereo)
	}
	b.h.Delete(name)
	if err := b.h.Fragment(key, name); err != nil {
		return nil, decorate(err, Lookup, dec)
	}
	s, err := b.h.Model(name)
	if err != nil {
		return nil, decorate(err, Consistency, dec)
	}
	resname := ""
	if sc == "CM" {
		resname = "CYM"
		s.Remove(s.Select(s.Atom(0).MolID, "HG")...)
		for _, at := range s.Atoms {
			if at.Name == "SG" {
				at.Charge = -1
			}
		}
	}
	setResidue(s, 1, resname, "A")
	if alphaInverts(sc, stereo) {
		ca, ok1 := selectOne(s, 1, "CA")
		ha, ok2 := selectOne(s, 1, "HA")
		c, ok3 := selectOne(s, 1, "C")
		if !ok1 || !ok2 || !ok3 {
			return nil, errorf(Consistency, dec, "fragment %s lacks CA, HA or C", key)
		}
		err := b.h.Invert(name, ca, ha, c)
		if errors.Is(err, molmodel.ErrRing) {
			// CA is the only stereocenter of a ring residue such as
			// proline, so its mirror image is the other enantiomer.
			err = b.h.Mirror(name)
		}
		if err != nil {
			return nil, decorate(err, Geometry, dec)
		}
		if s.ResidueName(1) == "PRO" {
			setResidue(s, 1, "DPRO", "A")
		}
	}
	for _, at := range s.Atoms {
		switch at.Name {
		case "N", "H", "C", "O":
			at.Tag = siteBackbone
		default:
			at.Tag = siteAlpha
		}
	}
	if err := renameResidue(s, 1); err != nil {
		return nil, decorate(err, Consistency, dec)
	}
	return &Peptide{h: b.h, name: name}, nil
}

// Beta builds the beta amino acid with side chains sc2 and sc3 on
// positions 2 and 3 ("G" or "" for none), with the given stereo letters
// (R or S, only needed for positions that carry a side chain).
func (b *Builder) Beta(name, sc2, stereo2, sc3, stereo3 string) (*Peptide, error) {
	const dec = "Builder.Beta"
	if sc2 == "" {
		sc2 = "G"
	}
	if sc3 == "" {
		sc3 = "G"
	}
	if sc2 == "P" || sc3 == "P" {
		return nil, errorf(Unsupported, dec, "beta-prolines can't be built")
	}
	for _, sc := range []string{sc2, sc3} {
		if _, ok := sideChains[sc]; !ok {
			return nil, errorf(Lookup, dec, "unknown side chain %q", sc)
		}
	}
	if sc2 != "G" && !validStereo(stereo2, "R", "S") {
		return nil, errorf(Config, dec, "invalid stereo %q for position 2", stereo2)
	}
	if sc3 != "G" && !validStereo(stereo3, "R", "S") {
		return nil, errorf(Config, dec, "invalid stereo %q for position 3", stereo3)
	}
	b.h.Delete(name)
	if err := b.h.Fragment(betaBackboneKey, name); err != nil {
		return nil, decorate(err, Lookup, dec)
	}
	s, err := b.h.Model(name)
	if err != nil {
		return nil, decorate(err, Consistency, dec)
	}
	setResidue(s, 1, BetaResidueName(sc2, sc3), "A")
	for _, at := range s.Atoms {
		at.Tag = siteBackbone
	}
	if sc2 != "G" {
		if err := b.attach(name, 1, siteAlpha, sc2, stereo2); err != nil {
			b.h.Delete(name)
			return nil, decorate(err, Consistency, dec)
		}
	}
	if sc3 != "G" {
		if err := b.attach(name, 1, siteBeta, sc3, stereo3); err != nil {
			b.h.Delete(name)
			return nil, decorate(err, Consistency, dec)
		}
	}
	if err := renameResidue(s, 1); err != nil {
		return nil, decorate(err, Consistency, dec)
	}
	for _, inv := range betaInversions {
		if !inv.applies(sc2, sc3) {
			continue
		}
		center, ok1 := selectOne(s, 1, inv.center...)
		f1, ok2 := selectOne(s, 1, inv.fixed1...)
		f2, ok3 := selectOne(s, 1, inv.fixed2...)
		if !ok1 || !ok2 || !ok3 {
			return nil, errorf(Consistency, dec, "can't find the atoms to correct the chirality of position %d", inv.site)
		}
		if err := b.h.Invert(name, center, f1, f2); err != nil {
			return nil, decorate(err, Geometry, dec)
		}
	}
	return &Peptide{h: b.h, name: name}, nil
}

var capHydrogenRE = regexp.MustCompile(`^([1-9])(H[A-Z0-9]*)$`)

// Cap builds a capping group: ACE and BUT for the N terminus, NME for the C terminus.
func (b *Builder) Cap(name string, kind sequence.Kind) (*Peptide, error) {
	const dec = "Builder.Cap"
	var key string
	switch kind {
	case sequence.Ace:
		key = aceKey
	case sequence.Nme:
		key = nmeKey
	case sequence.But:
		key = butyrylKey
	default:
		return nil, errorf(Config, dec, "%s is not a capping group", kind)
	}
	b.h.Delete(name)
	if err := b.h.Fragment(key, name); err != nil {
		return nil, decorate(err, Lookup, dec)
	}
	s, err := b.h.Model(name)
	if err != nil {
		return nil, decorate(err, Consistency, dec)
	}
	setResidue(s, 1, string(kind), "A")
	for _, at := range s.Atoms {
		at.Name = capHydrogenRE.ReplaceAllString(at.Name, "$2$1")
	}
	return &Peptide{h: b.h, name: name}, nil
}

// Cyclic builds one of the cyclic beta amino acids (ACHC or ACPC) with
// the given stereo at positions 2 and 3.
func (b *Builder) Cyclic(name string, kind sequence.Kind, stereo2, stereo3 string) (*Peptide, error) {
	const dec = "Builder.Cyclic"
	if kind != sequence.ACHC && kind != sequence.ACPC {
		return nil, errorf(Config, dec, "%s is not a cyclic amino acid", kind)
	}
	if !validStereo(stereo2, "R", "S") || !validStereo(stereo3, "R", "S") {
		return nil, errorf(Config, dec, "invalid stereo (2%s3%s) for %s", stereo2, stereo3, kind)
	}
	key := fmt.Sprintf("%s_2%s3%s", kind, stereo2, stereo3)
	b.h.Delete(name)
	if err := b.h.Fragment(key, name); err != nil {
		return nil, decorate(err, Lookup, dec)
	}
	s, err := b.h.Model(name)
	if err != nil {
		return nil, decorate(err, Consistency, dec)
	}
	setResidue(s, 1, string(kind), "A")
	return &Peptide{h: b.h, name: name}, nil
}

// Residue builds the single residue described by r under name. Its
// dihedrals are not applied.
func (b *Builder) Residue(name string, r sequence.Residue) (*Peptide, error) {
	switch {
	case r.Kind == sequence.Alpha:
		return b.Alpha(name, r.SideChain2, r.Stereo2)
	case r.Kind.IsCap():
		return b.Cap(name, r.Kind)
	case r.Kind == sequence.ACHC || r.Kind == sequence.ACPC:
		return b.Cyclic(name, r.Kind, r.Stereo2, r.Stereo3)
	case r.Kind.IsBeta():
		return b.Beta(name, r.SideChain2, r.Stereo2, r.SideChain3, r.Stereo3)
	}
	return nil, errorf(Config, "Builder.Residue", "unknown residue kind %q", r.Kind)
}
