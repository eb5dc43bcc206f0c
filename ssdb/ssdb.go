/*
ssdb.go, part of betafab



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

// Package ssdb is the secondary-structure database: named backbone
// torsion sets (phi, psi for alpha residues; phi, theta, psi for beta
// residues) used to fold peptides.
package ssdb

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Entry is a named set of backbone torsions, in degrees. Beta is false
// for alpha-type entries, which have no theta.
type Entry struct {
	Name  string
	Phi   float64
	Theta float64
	Psi   float64
	Beta  bool
}

// Angles returns (phi, psi) for alpha entries and (phi, theta, psi) for beta entries.
func (e Entry) Angles() []float64 {
	if e.Beta {
		return []float64{e.Phi, e.Theta, e.Psi}
	}
	return []float64{e.Phi, e.Psi}
}

func (e Entry) String() string {
	if e.Beta {
		return fmt.Sprintf("%s (%g %g %g)", e.Name, e.Phi, e.Theta, e.Psi)
	}
	return fmt.Sprintf("%s (%g None %g)", e.Name, e.Phi, e.Psi)
}

// FromAngles builds an entry from 2 (alpha) or 3 (beta) angles.
func FromAngles(name string, angles []float64) (Entry, error) {
	switch len(angles) {
	case 2:
		return Entry{Name: name, Phi: angles[0], Psi: angles[1]}, nil
	case 3:
		return Entry{Name: name, Phi: angles[0], Theta: angles[1], Psi: angles[2], Beta: true}, nil
	}
	return Entry{}, fmt.Errorf("ssdb: %s: %d angles given, 2 or 3 needed", name, len(angles))
}

var defaults = []Entry{
	{Name: "Z6M", Phi: 126.7, Theta: 62.6, Psi: 152.7, Beta: true},
	{Name: "Z6P", Phi: -126.7, Theta: -62.6, Psi: -152.7, Beta: true},
	{Name: "Z8M", Phi: 47.5, Theta: 53.5, Psi: -104.3, Beta: true},
	{Name: "Z8P", Phi: -47.5, Theta: -53.5, Psi: 104.3, Beta: true},
	{Name: "H8M", Phi: 76.8, Theta: -120.6, Psi: 52.7, Beta: true},
	{Name: "H8P", Phi: -76.8, Theta: 120.6, Psi: -52.7, Beta: true},
	{Name: "H10M", Phi: -77.5, Theta: -51.8, Psi: -75.1, Beta: true},
	{Name: "H10P", Phi: 77.5, Theta: 51.8, Psi: 75.1, Beta: true},
	{Name: "H12M", Phi: 92.3, Theta: -90.0, Psi: 104.6, Beta: true},
	{Name: "H12P", Phi: -92.3, Theta: 90.0, Psi: -104.6, Beta: true},
	{Name: "H14M", Phi: -140.3, Theta: 66.5, Psi: -136.8, Beta: true},
	{Name: "H14P", Phi: 140.3, Theta: -66.5, Psi: 136.8, Beta: true},
	{Name: "SM", Phi: 70.5, Theta: 176.2, Psi: 168.9, Beta: true},
	{Name: "SP", Phi: -70.5, Theta: -176.2, Psi: -168.9, Beta: true},
	{Name: "Straight", Phi: 180, Theta: 180, Psi: 180, Beta: true},
	{Name: "Straight alpha", Phi: 180, Psi: 180},
	{Name: "Alpha-helix", Phi: -57, Psi: -47},
	{Name: "3_10-helix", Phi: -49, Psi: -26},
	{Name: "P-beta-sheet", Phi: -119, Psi: 113},
	{Name: "AP-beta-sheet", Phi: -139, Psi: 135},
}

// Defaults returns a copy of the built-in entries.
func Defaults() []Entry {
	ret := make([]Entry, len(defaults))
	copy(ret, defaults)
	return ret
}

// ErrUnknown is returned when a secondary structure name is not in the database.
var ErrUnknown = errors.New("ssdb: unknown secondary structure")

// DefaultTolerance is the per-angle tolerance used by Find, in degrees.
const DefaultTolerance = 0.5

// DB is a secondary-structure database. If it has a Store, every change
// is saved to it.
type DB struct {
	entries map[string]Entry
	store   Store
}

// New returns a database with the default entries and no store.
func New() *DB {
	d := &DB{entries: make(map[string]Entry)}
	d.merge(defaults)
	return d
}

// Open returns a database with the entries saved in the store. If the
// store has never been written (Load returns a nil slice), the defaults
// are used.
func Open(s Store) (*DB, error) {
	d := New()
	d.store = s
	if s == nil {
		return d, nil
	}
	saved, err := s.Load()
	if err != nil {
		return nil, fmt.Errorf("ssdb/Open: %w", err)
	}
	if saved != nil {
		d.entries = make(map[string]Entry, len(saved))
		d.merge(saved)
	}
	return d, nil
}

func (d *DB) merge(e []Entry) {
	for _, v := range e {
		d.entries[v.Name] = v
	}
}

func (d *DB) save() error {
	if d.store == nil {
		return nil
	}
	return d.store.Save(d.All(true, true))
}

func validName(name string) bool {
	return strings.TrimSpace(name) != "" && !strings.ContainsAny(name, "\t\n{}[]()")
}

// Add inserts or replaces an entry.
func (d *DB) Add(e Entry) error {
	if !validName(e.Name) {
		return fmt.Errorf("ssdb/Add: invalid name %q", e.Name)
	}
	d.entries[e.Name] = e
	return d.save()
}

// Remove deletes an entry. Removing a missing entry is not an error.
func (d *DB) Remove(name string) error {
	if _, ok := d.entries[name]; !ok {
		return nil
	}
	delete(d.entries, name)
	return d.save()
}

// Get returns the named entry.
func (d *DB) Get(name string) (Entry, error) {
	e, ok := d.entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("%q: %w", name, ErrUnknown)
	}
	return e, nil
}

// Angles returns the torsions of the named entry, 2 for alpha-type entries
// and 3 for beta-type ones.
func (d *DB) Angles(name string) ([]float64, error) {
	e, err := d.Get(name)
	if err != nil {
		return nil, err
	}
	return e.Angles(), nil
}

// Find returns the name of the entry whose torsions are all within tol of
// angles (2 angles look for alpha entries, 3 for beta ones). When several
// match, the one with the smallest summed absolute difference wins, and
// ties go to the alphabetically first name.
func (d *DB) Find(angles []float64, tol float64) (string, bool) {
	beta := len(angles) == 3
	if !beta && len(angles) != 2 {
		return "", false
	}
	best := ""
	bestsum := math.Inf(1)
	for _, e := range d.All(!beta, beta) {
		ea := e.Angles()
		sum := 0.0
		ok := true
		for i, v := range ea {
			diff := math.Abs(v - angles[i])
			if diff > tol {
				ok = false
				break
			}
			sum += diff
		}
		if ok && sum < bestsum {
			best, bestsum = e.Name, sum
		}
	}
	return best, best != ""
}

// All returns the alpha and/or beta entries, sorted by name.
func (d *DB) All(alpha, beta bool) []Entry {
	ret := make([]Entry, 0, len(d.entries))
	for _, e := range d.entries {
		if (e.Beta && beta) || (!e.Beta && alpha) {
			ret = append(ret, e)
		}
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Name < ret[j].Name })
	return ret
}

// Reset merges the defaults back in. Defaults that were removed or
// redefined are restored; entries added by the user are kept.
func (d *DB) Reset() error {
	d.merge(defaults)
	return d.save()
}
