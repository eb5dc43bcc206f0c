/*
ssdb_test.go, part of betafab



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
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func errql(t *testing.T, err error) {
	if err != nil {
		t.Error(err)
	}
}

func TestDefaults(Te *testing.T) {
	d := New()
	if n := len(d.All(true, true)); n != 20 {
		Te.Errorf("expected 20 default entries, got %d", n)
	}
	if n := len(d.All(true, false)); n != 5 {
		Te.Errorf("expected 5 alpha entries, got %d", n)
	}
	e, err := d.Get("H14M")
	errql(Te, err)
	want := Entry{Name: "H14M", Phi: -140.3, Theta: 66.5, Psi: -136.8, Beta: true}
	if diff := cmp.Diff(want, e); diff != "" {
		Te.Errorf("H14M mismatch (-want +got):\n%s", diff)
	}
	a, err := d.Angles("Alpha-helix")
	errql(Te, err)
	if diff := cmp.Diff([]float64{-57, -47}, a); diff != "" {
		Te.Errorf("Alpha-helix mismatch (-want +got):\n%s", diff)
	}
	if _, err := d.Get("nope"); !errors.Is(err, ErrUnknown) {
		Te.Errorf("expected ErrUnknown, got %v", err)
	}
}

func TestFind(Te *testing.T) {
	d := New()
	cases := []struct {
		angles []float64
		tol    float64
		want   string
		found  bool
	}{
		{[]float64{-140.3, 66.5, -136.8}, DefaultTolerance, "H14M", true},
		{[]float64{-140.0, 66.2, -137.0}, DefaultTolerance, "H14M", true},
		{[]float64{0, 0, 0}, DefaultTolerance, "", false},
		{[]float64{-57, -47}, DefaultTolerance, "Alpha-helix", true},
		{[]float64{180, 180}, DefaultTolerance, "Straight alpha", true},
		{[]float64{180, 180, 180}, DefaultTolerance, "Straight", true},
		{[]float64{-57}, DefaultTolerance, "", false},
	}
	for _, c := range cases {
		got, ok := d.Find(c.angles, c.tol)
		if got != c.want || ok != c.found {
			Te.Errorf("Find(%v): got %q %v, want %q %v", c.angles, got, ok, c.want, c.found)
		}
	}
}

func TestFindNearest(Te *testing.T) {
	d := New()
	errql(Te, d.Add(Entry{Name: "close", Phi: -57.3, Psi: -47}))
	errql(Te, d.Add(Entry{Name: "closer", Phi: -57.1, Psi: -47}))
	got, _ := d.Find([]float64{-57.2, -47}, 0.5)
	if got != "close" && got != "closer" {
		Te.Errorf("unexpected match %q", got)
	}
	got, _ = d.Find([]float64{-57.09, -47}, 0.5)
	if got != "closer" {
		Te.Errorf("expected the nearest entry, got %q", got)
	}
}

func TestAddRemoveReset(Te *testing.T) {
	d := New()
	errql(Te, d.Add(Entry{Name: "mine", Phi: 1, Theta: 2, Psi: 3, Beta: true}))
	if _, err := d.Get("mine"); err != nil {
		Te.Error(err)
	}
	errql(Te, d.Remove("mine"))
	errql(Te, d.Remove("mine"))
	errql(Te, d.Remove("H14M"))
	if _, err := d.Get("H14M"); err == nil {
		Te.Error("H14M was not removed")
	}
	if err := d.Add(Entry{Name: "bad{name}"}); err == nil {
		Te.Error("expected an error for a name with braces")
	}
	errql(Te, d.Reset())
	if n := len(d.All(true, true)); n != 20 {
		Te.Errorf("expected 20 entries after reset, got %d", n)
	}
}

func TestResetKeepsUserEntries(Te *testing.T) {
	d := New()
	errql(Te, d.Add(Entry{Name: "Mine", Phi: -100, Psi: 120}))
	errql(Te, d.Add(Entry{Name: "H14M", Phi: 1, Theta: 2, Psi: 3, Beta: true}))
	errql(Te, d.Remove("Z6M"))
	errql(Te, d.Reset())
	if _, err := d.Get("Mine"); err != nil {
		Te.Errorf("user entry lost on reset: %v", err)
	}
	if _, err := d.Get("Z6M"); err != nil {
		Te.Errorf("removed default not restored: %v", err)
	}
	a, err := d.Angles("H14M")
	errql(Te, err)
	if diff := cmp.Diff([]float64{-140.3, 66.5, -136.8}, a); diff != "" {
		Te.Errorf("redefined default not restored (-want +got):\n%s", diff)
	}
	if n := len(d.All(true, true)); n != 21 {
		Te.Errorf("expected 21 entries after reset, got %d", n)
	}
}

func TestFromAngles(Te *testing.T) {
	e, err := FromAngles("x", []float64{1, 2})
	errql(Te, err)
	if e.Beta || e.Psi != 2 {
		Te.Errorf("bad alpha entry %v", e)
	}
	e, err = FromAngles("y", []float64{1, 2, 3})
	errql(Te, err)
	if !e.Beta || e.Theta != 2 {
		Te.Errorf("bad beta entry %v", e)
	}
	if _, err := FromAngles("z", []float64{1}); err == nil {
		Te.Error("expected an error for one angle")
	}
}

func TestFileStore(Te *testing.T) {
	fs := FileStore{Path: filepath.Join(Te.TempDir(), "ssdb")}
	saved, err := fs.Load()
	errql(Te, err)
	if saved != nil {
		Te.Fatalf("a missing file should load as nil, got %v", saved)
	}
	d, err := Open(fs)
	errql(Te, err)
	errql(Te, d.Add(Entry{Name: "My helix", Phi: -60.25, Psi: -45}))
	errql(Te, d.Remove("Z6M"))
	d2, err := Open(fs)
	errql(Te, err)
	if diff := cmp.Diff(d.All(true, true), d2.All(true, true)); diff != "" {
		Te.Errorf("reloaded database differs (-saved +loaded):\n%s", diff)
	}
	if _, err := d2.Get("Z6M"); err == nil {
		Te.Error("a removed default came back after reloading")
	}
}

func TestWriteTable(Te *testing.T) {
	var b bytes.Buffer
	errql(Te, New().WriteTable(&b, true, false))
	out := b.String()
	if !strings.Contains(out, "Alpha-helix") || strings.Contains(out, "H14M") {
		Te.Errorf("unexpected alpha table:\n%s", out)
	}
	if lines := strings.Count(out, "\n"); lines != 6 {
		Te.Errorf("expected 6 lines, got %d:\n%s", lines, out)
	}
}
