/*
session.go, part of betafab



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
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/rmera/betafab/geom"
)

// Library gives access to template fragments by key. Implementations
// must return a fresh copy on each call.
type Library interface {
	Fragment(key string) (*Structure, error)
}

// Host is the set of modelling operations the peptide builder needs.
// Structures are referred to by name. Atom arguments are indexes in the
// named structure.
type Host interface {
	// Fragment loads the library fragment key under name, replacing
	// anything previously stored with that name.
	Fragment(key, name string) error
	// Model returns the live structure stored under name. Changes to it
	// are seen by the host.
	Model(name string) (*Structure, error)
	// SetModel stores s under s.Name.
	SetModel(s *Structure)
	Copy(src, dst string) error
	Delete(name string)
	Names() *Names
	// Scratch returns an unused name and a function that deletes
	// whatever was stored under it and releases the name.
	Scratch() (string, func())
	// Superpose moves the whole moving structure to fit the movIdx atoms
	// onto the refIdx atoms of ref, and returns the RMSD of the fit.
	Superpose(moving string, movIdx []int, ref string, refIdx []int) (float64, error)
	// Perturb applies a random rotation about the centroid of the structure.
	Perturb(name string) error
	// Fuse translates src so srcAtom lies at bonding distance from dstAtom,
	// along their current direction, merges src into dst and bonds both atoms.
	Fuse(src string, srcAtom int, dst string, dstAtom int) error
	// Merge appends src to dst without moving it, deletes src, and returns
	// the index that the first src atom has in dst.
	Merge(src, dst string) (int, error)
	Bond(name string, i, j int) error
	// Invert swaps the two substituents of center that are not fixed1 or fixed2.
	Invert(name string, center, fixed1, fixed2 int) error
	// Mirror reflects the whole structure through the plane z=0.
	Mirror(name string) error
	// SetDihedral rotates the c side of the b-c bond so the a-b-c-d dihedral is deg.
	SetDihedral(name string, a, b, c, d int, deg float64) error
	Dihedral(name string, a, b, c, d int) (float64, error)
}

// ErrNoModel is returned when a named structure does not exist.
var ErrNoModel = errors.New("molmodel: no such structure")

// Session is the in-memory Host implementation.
type Session struct {
	lib    Library
	models map[string]*Structure
	names  *Names
	rng    *rand.Rand
	// Log, if not nil, receives a trace of the operations.
	Log *log.Logger
}

// NewSession returns an empty session that loads fragments from lib and
// takes random rotations from rng. A nil rng is seeded with 1.
func NewSession(lib Library, rng *rand.Rand) *Session {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	s := &Session{lib: lib, models: make(map[string]*Structure), rng: rng}
	s.names = NewNames("tmp_", func(n string) bool { _, ok := s.models[n]; return ok })
	return s
}

func (s *Session) logf(format string, v ...any) {
	if s.Log != nil {
		s.Log.Printf(format, v...)
	}
}

// List returns the names of the stored structures, sorted.
func (s *Session) List() []string {
	ret := make([]string, 0, len(s.models))
	for k := range s.models {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

func (s *Session) Fragment(key, name string) error {
	if s.lib == nil {
		return fmt.Errorf("molmodel/Fragment: no fragment library")
	}
	f, err := s.lib.Fragment(key)
	if err != nil {
		return fmt.Errorf("molmodel/Fragment: %w", err)
	}
	f.Name = name
	s.models[name] = f
	s.logf("loaded fragment %s as %s (%d atoms)", key, name, f.Len())
	return nil
}

func (s *Session) Model(name string) (*Structure, error) {
	m, ok := s.models[name]
	if !ok {
		return nil, fmt.Errorf("molmodel: %q: %w", name, ErrNoModel)
	}
	return m, nil
}

func (s *Session) SetModel(st *Structure) {
	s.models[st.Name] = st
}

func (s *Session) Copy(src, dst string) error {
	m, err := s.Model(src)
	if err != nil {
		return err
	}
	s.models[dst] = m.Copy(dst)
	return nil
}

// Delete removes the named structure. Deleting a missing name does nothing.
func (s *Session) Delete(name string) {
	delete(s.models, name)
}

func (s *Session) Names() *Names { return s.names }

func (s *Session) Scratch() (string, func()) {
	n := s.names.Generate()
	return n, func() {
		s.Delete(n)
		s.names.Release(n)
	}
}

func (s *Session) Superpose(moving string, movIdx []int, ref string, refIdx []int) (float64, error) {
	mm, err := s.Model(moving)
	if err != nil {
		return 0, err
	}
	rm, err := s.Model(ref)
	if err != nil {
		return 0, err
	}
	if len(movIdx) != len(refIdx) {
		return 0, fmt.Errorf("molmodel/Superpose: %d moving and %d reference atoms: %w", len(movIdx), len(refIdx), geom.ErrFewPoints)
	}
	mp := make([]r3.Vec, len(movIdx))
	rp := make([]r3.Vec, len(refIdx))
	for i := range movIdx {
		if movIdx[i] < 0 || movIdx[i] >= mm.Len() || refIdx[i] < 0 || refIdx[i] >= rm.Len() {
			return 0, fmt.Errorf("molmodel/Superpose: atom pair %d-%d out of range", movIdx[i], refIdx[i])
		}
		mp[i] = mm.Pos(movIdx[i])
		rp[i] = rm.Pos(refIdx[i])
	}
	t, err := geom.Superpose(mp, rp)
	if err != nil {
		return 0, fmt.Errorf("molmodel/Superpose: %w", err)
	}
	for i := 0; i < mm.Len(); i++ {
		mm.SetPos(i, t.Apply(mm.Pos(i)))
	}
	t.ApplyAll(mp)
	rms := geom.RMSD(mp, rp)
	s.logf("superposed %s onto %s, RMSD %.4f", moving, ref, rms)
	return rms, nil
}

func (s *Session) Perturb(name string) error {
	m, err := s.Model(name)
	if err != nil {
		return err
	}
	axis, ang := geom.RandomAxisAngle(s.rng)
	p := make([]r3.Vec, m.Len())
	for i := range p {
		p[i] = m.Pos(i)
	}
	c := geom.Centroid(p)
	for i, v := range p {
		m.SetPos(i, geom.RotateAbout(v, c, axis, ang))
	}
	return nil
}

func (s *Session) Fuse(src string, srcAtom int, dst string, dstAtom int) error {
	sm, err := s.Model(src)
	if err != nil {
		return err
	}
	dm, err := s.Model(dst)
	if err != nil {
		return err
	}
	if srcAtom < 0 || srcAtom >= sm.Len() || dstAtom < 0 || dstAtom >= dm.Len() {
		return fmt.Errorf("molmodel/Fuse: atoms %d (%s) and %d (%s) out of range", srcAtom, src, dstAtom, dst)
	}
	d := dm.Pos(dstAtom)
	p := sm.Pos(srcAtom)
	dir := r3.Sub(p, d)
	if r3.Norm(dir) < 1e-6 {
		return fmt.Errorf("molmodel/Fuse: atoms to fuse overlap")
	}
	target := r3.Add(d, r3.Scale(BondLength(sm.Atom(srcAtom).Symbol, dm.Atom(dstAtom).Symbol), r3.Unit(dir)))
	shift := r3.Sub(target, p)
	for i := 0; i < sm.Len(); i++ {
		sm.SetPos(i, r3.Add(sm.Pos(i), shift))
	}
	off, err := s.Merge(src, dst)
	if err != nil {
		return err
	}
	return dm.AddBond(dstAtom, off+srcAtom)
}

func (s *Session) Merge(src, dst string) (int, error) {
	if src == dst {
		return 0, fmt.Errorf("molmodel/Merge: can't merge %s into itself", src)
	}
	sm, err := s.Model(src)
	if err != nil {
		return 0, err
	}
	dm, err := s.Model(dst)
	if err != nil {
		return 0, err
	}
	off := dm.Append(sm)
	s.Delete(src)
	return off, nil
}

func (s *Session) Bond(name string, i, j int) error {
	m, err := s.Model(name)
	if err != nil {
		return err
	}
	return m.AddBond(i, j)
}

func (s *Session) Invert(name string, center, fixed1, fixed2 int) error {
	m, err := s.Model(name)
	if err != nil {
		return err
	}
	var mov []int
	for _, n := range m.Neighbors(center) {
		if n != fixed1 && n != fixed2 {
			mov = append(mov, n)
		}
	}
	if len(mov) != 2 || !m.Bonded(center, fixed1) || !m.Bonded(center, fixed2) {
		at := m.Atom(center)
		return fmt.Errorf("molmodel/Invert: %s%d is not a tetrahedral center with the given fixed substituents", at.Name, at.MolID)
	}
	branch, err := m.branches(center, fixed1, fixed2, mov[0], mov[1])
	if err != nil {
		return err
	}
	c := m.Pos(center)
	u1 := r3.Unit(r3.Sub(m.Pos(mov[0]), c))
	u2 := r3.Unit(r3.Sub(m.Pos(mov[1]), c))
	axis := r3.Add(u1, u2)
	if r3.Norm(axis) < 1e-6 {
		return fmt.Errorf("molmodel/Invert: substituents of atom %d are collinear", center)
	}
	for _, i := range branch {
		m.SetPos(i, geom.RotateAbout(m.Pos(i), c, axis, math.Pi))
	}
	return nil
}

func (s *Session) Mirror(name string) error {
	m, err := s.Model(name)
	if err != nil {
		return err
	}
	for i := 0; i < m.Len(); i++ {
		p := m.Pos(i)
		p.Z = -p.Z
		m.SetPos(i, p)
	}
	s.logf("mirrored %s", name)
	return nil
}

func (s *Session) SetDihedral(name string, a, b, c, d int, deg float64) error {
	m, err := s.Model(name)
	if err != nil {
		return err
	}
	if err := checkRange(m, a, b, c, d); err != nil {
		return err
	}
	side, err := m.dihedralSide(b, c)
	if err != nil {
		return err
	}
	cur := geom.Dihedral(m.Pos(a), m.Pos(b), m.Pos(c), m.Pos(d))
	delta := geom.AngleDiff(deg, cur) * geom.Deg2Rad
	pb, pc := m.Pos(b), m.Pos(c)
	axis := r3.Sub(pc, pb)
	for _, i := range side {
		m.SetPos(i, geom.RotateAbout(m.Pos(i), pb, axis, delta))
	}
	return nil
}

func (s *Session) Dihedral(name string, a, b, c, d int) (float64, error) {
	m, err := s.Model(name)
	if err != nil {
		return 0, err
	}
	if err := checkRange(m, a, b, c, d); err != nil {
		return 0, err
	}
	return geom.Dihedral(m.Pos(a), m.Pos(b), m.Pos(c), m.Pos(d)), nil
}

func checkRange(m *Structure, idx ...int) error {
	for _, i := range idx {
		if i < 0 || i >= m.Len() {
			return fmt.Errorf("molmodel: atom %d out of range in %s (%d atoms)", i, m.Name, m.Len())
		}
	}
	return nil
}
