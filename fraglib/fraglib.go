/*
fraglib.go, part of betafab



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

// Package fraglib provides the template fragments residues are built from.
// Two stores are embedded in the binary: the standard store (alpha amino
// acids and the ACE/NME caps) and the special store (beta backbone, the
// peptide-bond mould, butyryl, ornithine and the cyclic beta residues).
// Fragments are PDB files read with gochem; bonds are perceived from
// covalent radii.
package fraglib

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	chem "github.com/rmera/gochem"

	"github.com/rmera/betafab/molmodel"
)

//go:embed data/std/*.pdb data/special/*.pdb
var data embed.FS

// ErrNotFound is returned when a library has no fragment with the requested key.
var ErrNotFound = errors.New("fraglib: fragment not found")

// Embedded is one of the stores compiled into the binary.
type Embedded struct {
	dir   string
	cache map[string]*molmodel.Structure
}

// Standard returns the standard store.
func Standard() *Embedded {
	return &Embedded{dir: "data/std", cache: make(map[string]*molmodel.Structure)}
}

// Special returns the special store.
func Special() *Embedded {
	return &Embedded{dir: "data/special", cache: make(map[string]*molmodel.Structure)}
}

// Fragment returns a copy of the fragment stored under key.
func (e *Embedded) Fragment(key string) (*molmodel.Structure, error) {
	if s, ok := e.cache[key]; ok {
		return s.Copy(key), nil
	}
	raw, err := data.ReadFile(e.dir + "/" + key + ".pdb")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s in %s: %w", key, e.dir, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fraglib: reading %s: %w", key, err)
	}
	s, err := parse(key, raw)
	if err != nil {
		//the embedded data should never be corrupted.
		panic(err.Error())
	}
	e.cache[key] = s
	return s.Copy(key), nil
}

// Keys returns the sorted keys of the fragments in the store.
func (e *Embedded) Keys() []string {
	entries, err := data.ReadDir(e.dir)
	if err != nil {
		panic(err.Error())
	}
	ret := make([]string, 0, len(entries))
	for _, v := range entries {
		ret = append(ret, strings.TrimSuffix(v.Name(), ".pdb"))
	}
	sort.Strings(ret)
	return ret
}

func parse(key string, raw []byte) (*molmodel.Structure, error) {
	mol, err := chem.PDBRead(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("fraglib: parsing %s: %w", key, err)
	}
	s, err := molmodel.FromMolecule(key, mol)
	if err != nil {
		return nil, err
	}
	s.PerceiveBonds(molmodel.DefaultBondTolerance)
	return s, nil
}

// Dir is a library of PDB files named <key>.pdb in a directory.
// It lets users override or extend the embedded stores.
type Dir struct {
	Path string
}

// Fragment reads the fragment key from the directory.
func (d Dir) Fragment(key string) (*molmodel.Structure, error) {
	fname := filepath.Join(d.Path, key+".pdb")
	if _, err := os.Stat(fname); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s in %s: %w", key, d.Path, ErrNotFound)
	}
	mol, err := chem.PDBFileRead(fname)
	if err != nil {
		return nil, fmt.Errorf("fraglib: reading %s: %w", fname, err)
	}
	s, err := molmodel.FromMolecule(key, mol)
	if err != nil {
		return nil, err
	}
	s.PerceiveBonds(molmodel.DefaultBondTolerance)
	return s, nil
}

// Chain tries each library in order, moving to the next one only when a
// fragment is not found.
type Chain []molmodel.Library

// Fragment returns the fragment from the first library that has it.
func (c Chain) Fragment(key string) (*molmodel.Structure, error) {
	for _, l := range c {
		s, err := l.Fragment(key)
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
}

// Default returns the standard store followed by the special store. If
// override is not empty, fragments in that directory take precedence.
func Default(override string) Chain {
	c := Chain{Standard(), Special()}
	if override != "" {
		c = append(Chain{Dir{Path: override}}, c...)
	}
	return c
}
