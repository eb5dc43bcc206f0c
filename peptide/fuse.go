/*
fuse.go, part of betafab



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

// fit superposes the movIdx atoms of moving onto the refIdx atoms of ref,
// retrying after a random rotation of moving while the RMSD is not below tol.
func (b *Builder) fit(moving string, movIdx []int, ref string, refIdx []int, tol float64) (float64, error) {
	const dec = "fit"
	tries := b.o.FitTries
	if tries < 1 {
		tries = 1
	}
	var rms float64
	for i := 0; i < tries; i++ {
		var err error
		rms, err = b.h.Superpose(moving, movIdx, ref, refIdx)
		if err != nil {
			return rms, decorate(err, Geometry, dec)
		}
		if rms < tol {
			return rms, nil
		}
		if err := b.h.Perturb(moving); err != nil {
			return rms, decorate(err, Geometry, dec)
		}
	}
	return rms, errorf(Geometry, dec, "could not fit with RMS less than %g, RMS is %g", tol, rms)
}

// pick returns, for each group of alternative names, the only atom of
// residue resid called one of them.
func pick(s *molmodel.Structure, resid int, groups ...[]string) ([]int, error) {
	ret := make([]int, 0, len(groups))
	for _, g := range groups {
		i, ok := selectOne(s, resid, g...)
		if !ok {
			return nil, errorf(Consistency, "pick", "no single atom %v in residue %d of %s", g, resid, s.Name)
		}
		ret = append(ret, i)
	}
	return ret, nil
}

// Append joins right to the C terminus of left through a peptide bond.
// The result replaces left, whose atoms keep their coordinates. Residues
// of right are renumbered to follow those of left. right is not changed.
func (b *Builder) Append(left, right *Peptide) error {
	const dec = "Builder.Append"
	h := b.h
	lm, err := h.Model(left.name)
	if err != nil {
		return decorate(err, Consistency, dec)
	}
	rm, err := h.Model(right.name)
	if err != nil {
		return decorate(err, Consistency, dec)
	}
	if IsCCapped(lm) {
		return errorf(Config, dec, "the C terminus of %s is capped", left.name)
	}
	proline := StartsWithProline(rm)
	if IsNCapped(rm) && !proline {
		return errorf(Config, dec, "the N terminus of %s is capped", right.name)
	}
	if err := CheckPeptide(lm); err != nil {
		return decorate(err, Consistency, dec)
	}
	if err := CheckPeptide(rm); err != nil {
		return decorate(err, Consistency, dec)
	}

	mould, doneM := h.Scratch()
	defer doneM()
	lt, doneL := h.Scratch()
	defer doneL()
	rt, doneR := h.Scratch()
	defer doneR()
	if err := h.Fragment(mouldKey, mould); err != nil {
		return decorate(err, Lookup, dec)
	}
	if err := h.Copy(left.name, lt); err != nil {
		return decorate(err, Consistency, dec)
	}
	if err := h.Copy(right.name, rt); err != nil {
		return decorate(err, Consistency, dec)
	}
	mm, _ := h.Model(mould)
	ltm, _ := h.Model(lt)
	rtm, _ := h.Model(rt)
	maxleft := MaxResidue(ltm)
	for _, at := range rtm.Atoms {
		at.MolID += maxleft
	}
	first := maxleft + 1

	// The mould goes onto the left part, so that one stays in place.
	lidx, err := pick(ltm, maxleft, []string{"CA", "CH3"}, []string{"C"}, []string{"O"})
	if err != nil {
		return decorate(err, Consistency, dec)
	}
	midx, err := pick(mm, mm.Atom(0).MolID, []string{mouldCprev}, []string{mouldC}, []string{mouldO})
	if err != nil {
		return decorate(err, Consistency, dec)
	}
	if _, err := b.fit(mould, midx, lt, lidx, b.o.FitTolerance); err != nil {
		return decorate(err, Geometry, dec)
	}

	second, tol := "H", b.o.FitTolerance
	if proline {
		second, tol = "CD", b.o.ProlineFitTolerance
	}
	ridx, err := pick(rtm, first, []string{"N"}, []string{second})
	if err != nil {
		return decorate(err, Consistency, dec)
	}
	cb := -1
	for _, n := range rtm.Neighbors(ridx[0]) {
		at := rtm.Atom(n)
		if at.MolID == first && at.Symbol == "C" && at.Name != "C" && n != ridx[1] {
			cb = n
			break
		}
	}
	if cb < 0 {
		return errorf(Consistency, dec, "the N of residue %d has no carbon neighbour", first)
	}
	ridx = append(ridx, cb)
	midx, err = pick(mm, mm.Atom(0).MolID, []string{mouldN}, []string{mouldH}, []string{mouldCnext})
	if err != nil {
		return decorate(err, Consistency, dec)
	}
	if _, err := b.fit(rt, ridx, mould, midx, tol); err != nil {
		return decorate(err, Geometry, dec)
	}

	c, _ := selectOne(ltm, maxleft, "C")
	off, err := h.Merge(rt, lt)
	if err != nil {
		return decorate(err, Consistency, dec)
	}
	if err := h.Bond(lt, c, off+ridx[0]); err != nil {
		return decorate(err, Consistency, dec)
	}
	if err := CheckPeptide(ltm); err != nil {
		return decorate(err, Consistency, dec)
	}
	if err := h.Copy(lt, left.name); err != nil {
		return decorate(err, Consistency, dec)
	}
	return nil
}
