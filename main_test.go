/*
main_test.go, part of betafab



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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(Te *testing.T, args ...string) (string, error) {
	Te.Helper()
	var out, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSSDBCommands(Te *testing.T) {
	db := filepath.Join(Te.TempDir(), "ssdb")
	out, err := run(Te, "--ssdb", db, "ssdb", "list", "--alpha")
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(out, "Alpha-helix") || strings.Contains(out, "H14M") {
		Te.Errorf("unexpected alpha listing:\n%s", out)
	}
	if _, err := run(Te, "--ssdb", db, "ssdb", "add", "--", "Mine", "-100", "None", "120"); err != nil {
		Te.Fatal(err)
	}
	out, err = run(Te, "--ssdb", db, "ssdb", "find", "--", "-100.2", "120.1")
	if err != nil {
		Te.Fatal(err)
	}
	if strings.TrimSpace(out) != "Mine" {
		Te.Errorf("expected Mine, got %q", out)
	}
	if _, err := run(Te, "--ssdb", db, "ssdb", "del", "Mine"); err != nil {
		Te.Fatal(err)
	}
	if _, err := run(Te, "--ssdb", db, "ssdb", "show", "Mine"); err == nil {
		Te.Error("the entry survived its removal")
	}
	if _, err := run(Te, "--ssdb", db, "ssdb", "add", "Bad", "1", "x"); err == nil {
		Te.Error("expected an error for a non-numeric torsion")
	}
}

func TestBuildAndInspect(Te *testing.T) {
	dir := Te.TempDir()
	pdb := filepath.Join(dir, "pep.pdb")
	_, err := run(Te, "--ssdb", "", "build", "-o", pdb, "ACE, (S)AA{Alpha-helix}, (S)B3hV{H14M}", "NME")
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := os.Stat(pdb); err != nil {
		Te.Fatal(err)
	}
	out, err := run(Te, "--ssdb", "", "check", pdb)
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(out, "N-capped: true, C-capped: true") {
		Te.Errorf("unexpected check output:\n%s", out)
	}
	png := filepath.Join(dir, "rama.png")
	out, err = run(Te, "--ssdb", "", "torsions", "--plot", png, pdb)
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(out, "Alpha-helix") || !strings.Contains(out, "H14M") {
		Te.Errorf("folded residues were not recognized:\n%s", out)
	}
	if _, err := os.Stat(png); err != nil {
		Te.Error(err)
	}
	if _, err := run(Te, "--ssdb", "", "build", "-o", pdb, "(S)AA, (S)AX"); err == nil {
		Te.Error("expected an error for an unknown side chain")
	}
}
