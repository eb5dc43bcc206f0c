/*
foldspec.go, part of betafab



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
	"fmt"
	"strconv"
	"strings"
)

// FoldSpec tells which torsions to give each residue of an existing chain.
// Either one set of torsions applies to every residue, or there is one set
// per residue, in chain order.
type FoldSpec struct {
	All        []float64
	PerResidue [][]float64
}

// For returns the torsions for the i-th residue (0-based) of the chain,
// and false if the spec has none for it.
func (f FoldSpec) For(i int) ([]float64, bool) {
	if f.All != nil {
		return f.All, true
	}
	if i < 0 || i >= len(f.PerResidue) {
		return nil, false
	}
	return f.PerResidue[i], true
}

// Len is the number of residues the spec covers, or -1 if it covers all.
func (f FoldSpec) Len() int {
	if f.All != nil {
		return -1
	}
	return len(f.PerResidue)
}

// ParseFoldSpec parses either a single entry, applied to every residue, or
// a bracketed, whitespace-separated list of entries. An entry is a
// secondary-structure name (in braces if it contains spaces), or
// a parenthesized tuple (phi psi), (phi None psi) or (phi theta psi).
//
//	H14M
//	(-57 None -47)
//	[ (-140.3 66.5 -136.8) H14M {Straight alpha} ]
func ParseFoldSpec(spec string, db Resolver) (FoldSpec, error) {
	s := strings.TrimSpace(spec)
	if s == "" {
		return FoldSpec{}, &ParseError{Token: spec, Msg: "empty fold specification"}
	}
	if !strings.HasPrefix(s, "[") {
		a, err := foldEntry(s, db)
		if err != nil {
			return FoldSpec{}, err
		}
		return FoldSpec{All: a}, nil
	}
	if !strings.HasSuffix(s, "]") {
		return FoldSpec{}, &ParseError{Token: spec, Msg: "unterminated list"}
	}
	toks, err := splitEntries(s[1 : len(s)-1])
	if err != nil {
		return FoldSpec{}, &ParseError{Token: spec, Msg: err.Error()}
	}
	ret := FoldSpec{PerResidue: make([][]float64, 0, len(toks))}
	for _, t := range toks {
		a, err := foldEntry(t, db)
		if err != nil {
			return FoldSpec{}, err
		}
		ret.PerResidue = append(ret.PerResidue, a)
	}
	return ret, nil
}

// splitEntries splits on whitespace, keeping (...) and {...} groups whole.
func splitEntries(s string) ([]string, error) {
	var ret []string
	var cur strings.Builder
	var closing rune
	flush := func() {
		if cur.Len() > 0 {
			ret = append(ret, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case closing != 0:
			cur.WriteRune(r)
			if r == closing {
				closing = 0
				flush()
			}
		case r == '(' || r == '{':
			flush()
			closing = ')'
			if r == '{' {
				closing = '}'
			}
			cur.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	if closing != 0 {
		return nil, fmt.Errorf("missing %q", closing)
	}
	flush()
	return ret, nil
}

func foldEntry(e string, db Resolver) ([]float64, error) {
	e = strings.TrimSpace(e)
	if strings.HasPrefix(e, "(") {
		if !strings.HasSuffix(e, ")") {
			return nil, &ParseError{Token: e, Msg: "unterminated tuple"}
		}
		f := strings.Fields(e[1 : len(e)-1])
		if len(f) != 2 && len(f) != 3 {
			return nil, &ParseError{Token: e, Msg: fmt.Sprintf("%d values in tuple, 2 or 3 needed", len(f))}
		}
		ret := make([]float64, 0, 3)
		for i, v := range f {
			if i == 1 && len(f) == 3 && v == "None" {
				continue
			}
			if !floatRE.MatchString(v) {
				return nil, &ParseError{Token: e, Msg: fmt.Sprintf("%q is not a number", v)}
			}
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, &ParseError{Token: e, Msg: "bad angle", Err: err}
			}
			ret = append(ret, x)
		}
		return ret, nil
	}
	name := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(e, "{"), "}"))
	if db == nil {
		return nil, &ParseError{Token: e, Msg: "can't resolve " + name, Err: ErrNoResolver}
	}
	a, err := db.Angles(name)
	if err != nil {
		return nil, &ParseError{Token: e, Msg: "secondary structure lookup", Err: err}
	}
	return a, nil
}
