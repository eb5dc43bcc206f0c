/*
store.go, part of betafab



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

package ssdb

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rmera/scu"
)

// Store persists the database.
type Store interface {
	// Load returns the saved entries, or a nil slice if nothing was ever saved.
	Load() ([]Entry, error)
	Save([]Entry) error
}

// FileStore keeps the entries in a text file, one per line:
// name, phi, theta (or None) and psi, separated by tabs.
// Empty lines and lines starting with # are ignored.
type FileStore struct {
	Path string
}

func (f FileStore) Load() ([]Entry, error) {
	if _, err := os.Stat(f.Path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	inp, err := scu.NewMustReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("ssdb: opening %s: %w", f.Path, err)
	}
	defer inp.Close()
	ret := make([]Entry, 0, len(defaults))
	lineno := 0
	for i := inp.Next(); i != "EOF"; i = inp.Next() {
		lineno++
		line := strings.TrimRight(i, "\r\n")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		e, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("ssdb: %s:%d: %w", f.Path, lineno, err)
		}
		ret = append(ret, e)
	}
	return ret, nil
}

func parseLine(line string) (Entry, error) {
	f := strings.Split(line, "\t")
	if len(f) != 4 {
		return Entry{}, fmt.Errorf("expected 4 tab-separated fields, got %d", len(f))
	}
	var e Entry
	var err error
	e.Name = f[0]
	if e.Phi, err = strconv.ParseFloat(strings.TrimSpace(f[1]), 64); err != nil {
		return e, err
	}
	if th := strings.TrimSpace(f[2]); th != "None" {
		if e.Theta, err = strconv.ParseFloat(th, 64); err != nil {
			return e, err
		}
		e.Beta = true
	}
	if e.Psi, err = strconv.ParseFloat(strings.TrimSpace(f[3]), 64); err != nil {
		return e, err
	}
	return e, nil
}

func (f FileStore) Save(entries []Entry) error {
	out, err := os.Create(f.Path)
	if err != nil {
		return fmt.Errorf("ssdb: %w", err)
	}
	w := bufio.NewWriter(out)
	for _, e := range entries {
		th := "None"
		if e.Beta {
			th = strconv.FormatFloat(e.Theta, 'g', -1, 64)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, strconv.FormatFloat(e.Phi, 'g', -1, 64), th, strconv.FormatFloat(e.Psi, 'g', -1, 64))
	}
	if err := w.Flush(); err != nil {
		out.Close()
		return fmt.Errorf("ssdb: writing %s: %w", f.Path, err)
	}
	return out.Close()
}

// WriteTable prints the alpha and/or beta entries as an aligned table.
func (d *DB) WriteTable(out io.Writer, alpha, beta bool) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Name\tphi\ttheta\tpsi\t")
	for _, e := range d.All(alpha, beta) {
		th := "-"
		if e.Beta {
			th = fmt.Sprintf("%.1f", e.Theta)
		}
		fmt.Fprintf(w, "%s\t%.1f\t%s\t%.1f\t\n", e.Name, e.Phi, th, e.Psi)
	}
	return w.Flush()
}
