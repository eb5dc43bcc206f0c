/*
sequence_test.go, part of betafab



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

package sequence

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rmera/betafab/ssdb"
)

func errql(t *testing.T, err error) {
	if err != nil {
		t.Error(err)
	}
}

func TestParseExamples(Te *testing.T) {
	db := ssdb.New()
	cases := []struct {
		tok  string
		want Residue
	}{
		{"(S)B3hV[-140.3 66.5 -136.8]", Residue{Kind: Beta3, Stereo3: "S", SideChain2: "G", SideChain3: "V", Dihedrals: []float64{-140.3, 66.5, -136.8}}},
		{"ACE", Residue{Kind: Ace}},
		{" NME ", Residue{Kind: Nme}},
		{"(2S3R)B23h(2A3L){H14M}", Residue{Kind: Beta23, Stereo2: "S", Stereo3: "R", SideChain2: "A", SideChain3: "L", Dihedrals: []float64{-140.3, 66.5, -136.8}, SSName: "H14M"}},
		{"(R)B2hKN", Residue{Kind: Beta2, Stereo2: "R", SideChain2: "KN", SideChain3: "G"}},
		{"BA", Residue{Kind: BareBeta, SideChain2: "G", SideChain3: "G"}},
		{"(2S3S)ACHC", Residue{Kind: ACHC, Stereo2: "S", Stereo3: "S"}},
		{"(2R3S)ACPC [1 2 3]", Residue{Kind: ACPC, Stereo2: "R", Stereo3: "S", Dihedrals: []float64{1, 2, 3}}},
		{"(L)AK{Alpha-helix}", Residue{Kind: Alpha, Stereo2: "L", SideChain2: "K", Dihedrals: []float64{-57, -47}, SSName: "Alpha-helix"}},
		{"(D)AW[.5 -1e2]", Residue{Kind: Alpha, Stereo2: "D", SideChain2: "W", Dihedrals: []float64{0.5, -100}}},
		{"(S)AA{Straight alpha}", Residue{Kind: Alpha, Stereo2: "S", SideChain2: "A", Dihedrals: []float64{180, 180}, SSName: "Straight alpha"}},
		{"(S)B3hV { H14M }", Residue{Kind: Beta3, Stereo3: "S", SideChain2: "G", SideChain3: "V", Dihedrals: []float64{-140.3, 66.5, -136.8}, SSName: "H14M"}},
	}
	for _, c := range cases {
		got, err := ParseResidue(c.tok, db)
		if err != nil {
			Te.Errorf("%s: %v", c.tok, err)
			continue
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			Te.Errorf("%s (-want +got):\n%s", c.tok, diff)
		}
	}
}

func TestParseErrors(Te *testing.T) {
	db := ssdb.New()
	bad := []string{
		"ACE[10 20]",
		"NME{H14M}",
		"(S)B3hV[1 2]",
		"(S)AA[1 2 3]",
		"(S)AA{H14M}",
		"(S)B3hV{Alpha-helix}",
		"(Q)AA",
		"(D)B3hA",
		"(S)A",
		"(S)AA[1 x]",
		"(S)AA[]",
		"(2S3X)ACHC",
		"(S)AA{ }",
		"XYZ",
		"",
	}
	for _, b := range bad {
		_, err := ParseResidue(b, db)
		var pe *ParseError
		if !errors.As(err, &pe) {
			Te.Errorf("%q: expected a ParseError, got %v", b, err)
		}
	}
	_, err := ParseResidue("(S)AA{nope}", db)
	if !errors.Is(err, ssdb.ErrUnknown) {
		Te.Errorf("expected an unknown secondary structure error, got %v", err)
	}
	_, err = ParseResidue("(S)AA{Alpha-helix}", nil)
	if !errors.Is(err, ErrNoResolver) {
		Te.Errorf("expected ErrNoResolver, got %v", err)
	}
}

func TestRoundTrip(Te *testing.T) {
	db := ssdb.New()
	seq := "BUT, (S)B3hL, (2S3S)B23h(2A3A), (S)AK, (2S3S)ACHC, (R)AP, NME, (R)B2hCM[1.25 -3 1e-3], " +
		"(2R3R)ACPC{H12P}, BA, (S)B3hG, (D)AHE{3_10-helix}, ACE"
	res, err := Parse(seq, db)
	errql(Te, err)
	if len(res) != 13 {
		Te.Fatalf("expected 13 residues, got %d", len(res))
	}
	for _, r := range res {
		back, err := ParseResidue(r.String(), db)
		if err != nil {
			Te.Errorf("%s: %v", r, err)
			continue
		}
		if diff := cmp.Diff(r, back); diff != "" {
			Te.Errorf("%s does not round-trip (-orig +parsed):\n%s", r, diff)
		}
	}
}

func TestParseStopsAtFirstError(Te *testing.T) {
	_, err := Parse("ACE, (S)AA, (S)AZZZ, NME", nil)
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Token != " (S)AZZZ" {
		Te.Errorf("expected a ParseError naming the bad token, got %v", err)
	}
}

func TestKinds(Te *testing.T) {
	if !Ace.IsCap() || Alpha.IsCap() || !ACHC.IsBeta() || Alpha.IsBeta() {
		Te.Error("bad kind classification")
	}
	if Alpha.NDihedrals() != 2 || BareBeta.NDihedrals() != 3 || Nme.NDihedrals() != 0 {
		Te.Error("bad dihedral counts")
	}
}

func TestFoldSpec(Te *testing.T) {
	db := ssdb.New()
	f, err := ParseFoldSpec("H14M", db)
	errql(Te, err)
	a, ok := f.For(7)
	if !ok || f.Len() != -1 {
		Te.Fatal("a single entry must apply to every residue")
	}
	if diff := cmp.Diff([]float64{-140.3, 66.5, -136.8}, a); diff != "" {
		Te.Errorf("(-want +got):\n%s", diff)
	}
	f, err = ParseFoldSpec("(-57 None -47)", db)
	errql(Te, err)
	if diff := cmp.Diff([]float64{-57, -47}, f.All); diff != "" {
		Te.Errorf("(-want +got):\n%s", diff)
	}
	f, err = ParseFoldSpec("[ (-140.3 66.5 -136.8) H14M {Straight alpha} (1 2)]", db)
	errql(Te, err)
	want := [][]float64{{-140.3, 66.5, -136.8}, {-140.3, 66.5, -136.8}, {180, 180}, {1, 2}}
	if diff := cmp.Diff(want, f.PerResidue); diff != "" {
		Te.Errorf("(-want +got):\n%s", diff)
	}
	if _, ok := f.For(4); ok {
		Te.Error("expected no torsions past the end of the list")
	}
	for _, bad := range []string{"", "[ H14M", "[ (1 2 ]", "(1)", "(1 2 3 4)", "(a b c)", "nope"} {
		if _, err := ParseFoldSpec(bad, db); err == nil {
			Te.Errorf("%q: expected an error", bad)
		}
	}
}
