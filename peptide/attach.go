/*
attach.go, part of betafab



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

// donorStrip are the atoms of an alpha amino acid fragment that are not
// part of its side chain, except CA, which marks the attachment point.
var donorStrip = []string{"N", "C", "O", "H", "HA"}

// selectOne returns the only atom of residue resid named one of names,
// and false if there is none or more than one.
func selectOne(s *molmodel.Structure, resid int, names ...string) (int, bool) {
	sel := s.Select(resid, names...)
	if len(sel) != 1 {
		return -1, false
	}
	return sel[0], true
}

// selectTagged is like selectOne but only considers atoms with the given tag.
func selectTagged(s *molmodel.Structure, resid, tag int, name string) (int, bool) {
	ret := -1
	for _, i := range s.Select(resid, name) {
		if s.Atom(i).Tag != tag {
			continue
		}
		if ret >= 0 {
			return -1, false
		}
		ret = i
	}
	return ret, ret >= 0
}

// attach grafts the side chain sc onto the beta backbone residue resid of
// the structure name, at position site (2 or 3), with the given stereo.
// The side chain is taken from the alpha amino acid fragment for sc: its
// CA is superposed on the backbone carbon and the hydrogen to replace, and
// then both of them are dropped.
func (b *Builder) attach(name string, resid, site int, sc, stereo string) error {
	const dec = "attach"
	key, ok := sideChains[sc]
	if !ok {
		return errorf(Lookup, dec, "unknown side chain %q", sc)
	}
	acc, err := b.h.Model(name)
	if err != nil {
		return decorate(err, Consistency, dec)
	}
	table := attachSites
	if _, b1 := selectOne(acc, resid, "CB1"); b1 && site == 3 {
		table = attachSitesB1
	}
	pair, ok := table[attachKey{site, stereo}]
	if !ok {
		return errorf(Config, dec, "can't attach at position %d with stereo %q", site, stereo)
	}
	for _, i := range acc.ResidueAtoms(resid) {
		if acc.Atom(i).Tag == untagged {
			acc.Atom(i).Tag = siteBackbone
		}
	}
	ci, ok1 := selectTagged(acc, resid, siteBackbone, pair[0])
	hi, ok2 := selectTagged(acc, resid, siteBackbone, pair[1])
	if !ok1 || !ok2 {
		return errorf(Consistency, dec, "atoms %s and %s not found in residue %d of %s", pair[0], pair[1], resid, name)
	}
	resname := acc.ResidueName(resid)

	frag, done := b.h.Scratch()
	defer done()
	if err := b.h.Fragment(key, frag); err != nil {
		return decorate(err, Lookup, dec)
	}
	don, err := b.h.Model(frag)
	if err != nil {
		return decorate(err, Consistency, dec)
	}
	strip := donorStrip
	if sc == "CM" {
		strip = append(append([]string(nil), donorStrip...), "HG")
	}
	var gone []int
	for i, at := range don.Atoms {
		for _, n := range strip {
			if at.Name == n {
				gone = append(gone, i)
				break
			}
		}
	}
	don.Remove(gone...)
	for _, at := range don.Atoms {
		at.Tag = site
		at.MolID = resid
		at.MolName = resname
		at.Chain = acc.Atom(ci).Chain
		if sc == "CM" && at.Name == "SG" {
			at.Charge = -1
		}
	}
	ca := -1
	for i, at := range don.Atoms {
		if at.Name == "CA" {
			ca = i
			break
		}
	}
	if ca < 0 {
		return errorf(Consistency, dec, "side chain fragment %s has no CA", key)
	}
	partner := -1
	for _, n := range don.Neighbors(ca) {
		if !isHydrogen(don, n) {
			partner = n
			break
		}
	}
	if partner < 0 {
		return errorf(Consistency, dec, "side chain %s has no heavy atom bonded to CA", sc)
	}
	if _, err := b.h.Superpose(frag, []int{ca, partner}, name, []int{ci, hi}); err != nil {
		return decorate(err, Geometry, dec)
	}
	// Indexes shift on removal, pointers don't.
	pat, cat := don.Atom(partner), acc.Atom(ci)
	don.Remove(ca)
	acc.Remove(hi)
	if err := b.h.Fuse(frag, pat.Index(), name, cat.Index()); err != nil {
		return decorate(err, Geometry, dec)
	}
	return nil
}
