/*
sequence.go, part of betafab



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

// Package sequence parses the textual description of an alpha/beta-peptide,
// a comma-separated list of residue tokens such as
//
//	ACE, (S)B3hV{H14M}, (2S3R)B23h(2A3L)[-140.3 66.5 -136.8], (S)AK, NME
//
// into residue descriptors, and renders descriptors back into tokens.
package sequence

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind is the residue class of a descriptor.
type Kind string

const (
	Alpha    Kind = "A"
	Beta2    Kind = "B2"
	Beta3    Kind = "B3"
	Beta23   Kind = "B23"
	BareBeta Kind = "BA"
	Ace      Kind = "ACE"
	But      Kind = "BUT"
	Nme      Kind = "NME"
	ACHC     Kind = "ACHC"
	ACPC     Kind = "ACPC"
)

// IsCap reports whether k is a capping group.
func (k Kind) IsCap() bool {
	return k == Ace || k == But || k == Nme
}

// IsBeta reports whether k is a beta residue, cyclic ones included.
func (k Kind) IsBeta() bool {
	switch k {
	case Beta2, Beta3, Beta23, BareBeta, ACHC, ACPC:
		return true
	}
	return false
}

// NDihedrals returns the number of backbone torsions residues of kind k
// take, 0 for caps.
func (k Kind) NDihedrals() int {
	switch {
	case k == Alpha:
		return 2
	case k.IsBeta():
		return 3
	}
	return 0
}

// Residue describes one residue of the chain. Alpha residues use Stereo2
// and SideChain2. Beta residues without a substituent at a position have
// the glycine code "G" there, and no stereo letter. Cyclic residues only
// use Stereo2 and Stereo3.
type Residue struct {
	Kind       Kind
	Stereo2    string
	Stereo3    string
	SideChain2 string
	SideChain3 string
	// Dihedrals is nil, or holds phi, psi (alpha) or phi, theta, psi (beta), in degrees.
	Dihedrals []float64
	// SSName is the secondary-structure entry the dihedrals were taken from, if any.
	SSName string
}

// String renders the residue as a token that Parse turns back into r.
func (r Residue) String() string {
	var s string
	switch r.Kind {
	case Alpha:
		s = fmt.Sprintf("(%s)A%s", r.Stereo2, r.SideChain2)
	case Beta2:
		s = fmt.Sprintf("(%s)B2h%s", r.Stereo2, r.SideChain2)
	case Beta3:
		s = fmt.Sprintf("(%s)B3h%s", r.Stereo3, r.SideChain3)
	case Beta23:
		s = fmt.Sprintf("(2%s3%s)B23h(2%s3%s)", r.Stereo2, r.Stereo3, r.SideChain2, r.SideChain3)
	case ACHC, ACPC:
		s = fmt.Sprintf("(2%s3%s)%s", r.Stereo2, r.Stereo3, r.Kind)
	default:
		s = string(r.Kind)
	}
	switch {
	case r.SSName != "":
		s += "{" + r.SSName + "}"
	case r.Dihedrals != nil:
		a := make([]string, len(r.Dihedrals))
		for i, v := range r.Dihedrals {
			a[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		s += "[" + strings.Join(a, " ") + "]"
	}
	return s
}

// Resolver gives the torsions of a named secondary structure: 2 angles
// for alpha-type structures, 3 for beta-type ones.
type Resolver interface {
	Angles(name string) ([]float64, error)
}

// ParseError is returned for a token that can't be turned into a residue.
type ParseError struct {
	Token string
	Msg   string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sequence: token %q: %s: %v", e.Token, e.Msg, e.Err)
	}
	return fmt.Sprintf("sequence: token %q: %s", e.Token, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ErrNoResolver is wrapped by the ParseError returned when a token names a
// secondary structure but no Resolver was given.
var ErrNoResolver = errors.New("no secondary structure database")

var tokenRE = regexp.MustCompile(`^(?:` +
	`(?P<cap>ACE|BUT|NME)` +
	`|\(2(?P<cs2>[RS])3(?P<cs3>[RS])\)(?P<cyc>ACHC|ACPC)` +
	`|\(2(?P<s2>[RS])3(?P<s3>[RS])\)B23h\(2(?P<sc2>[A-Z]{1,2})3(?P<sc3>[A-Z]{1,2})\)` +
	`|\((?P<ms>[RS])\)B(?P<mpos>[23])h(?P<msc>[A-Z]{1,2})` +
	`|(?P<ba>BA)` +
	`|\((?P<as>[RSLD])\)A(?P<asc>[A-Z]{1,2})` +
	`)\s*(?:\[(?P<angles>[^\]]*)\]|\{(?P<ss>[-a-zA-Z0-9_+ ]+)\})?$`)

var floatRE = regexp.MustCompile(`^[-+]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][-+]?\d+)?$`)

func groups(m []string) map[string]string {
	ret := make(map[string]string)
	for i, name := range tokenRE.SubexpNames() {
		if name != "" && m[i] != "" {
			ret[name] = m[i]
		}
	}
	return ret
}

// ParseResidue parses a single token. db is only needed if the token
// names a secondary structure.
func ParseResidue(token string, db Resolver) (Residue, error) {
	tok := strings.TrimSpace(token)
	m := tokenRE.FindStringSubmatch(tok)
	if m == nil {
		return Residue{}, &ParseError{Token: token, Msg: "not a valid residue"}
	}
	g := groups(m)
	var r Residue
	switch {
	case g["cap"] != "":
		r.Kind = Kind(g["cap"])
	case g["cyc"] != "":
		r.Kind = Kind(g["cyc"])
		r.Stereo2, r.Stereo3 = g["cs2"], g["cs3"]
	case g["sc2"] != "":
		r.Kind = Beta23
		r.Stereo2, r.Stereo3 = g["s2"], g["s3"]
		r.SideChain2, r.SideChain3 = g["sc2"], g["sc3"]
	case g["mpos"] == "2":
		r.Kind = Beta2
		r.Stereo2, r.SideChain2, r.SideChain3 = g["ms"], g["msc"], "G"
	case g["mpos"] == "3":
		r.Kind = Beta3
		r.Stereo3, r.SideChain3, r.SideChain2 = g["ms"], g["msc"], "G"
	case g["ba"] != "":
		r.Kind = BareBeta
		r.SideChain2, r.SideChain3 = "G", "G"
	default:
		r.Kind = Alpha
		r.Stereo2, r.SideChain2 = g["as"], g["asc"]
	}
	hasAngles := strings.Contains(tok, "[")
	ss := strings.TrimSpace(g["ss"])
	if g["ss"] != "" && ss == "" {
		return Residue{}, &ParseError{Token: token, Msg: "empty secondary structure name"}
	}
	if (hasAngles || ss != "") && r.Kind.IsCap() {
		return Residue{}, &ParseError{Token: token, Msg: fmt.Sprintf("%s takes no dihedrals", r.Kind)}
	}
	switch {
	case hasAngles:
		fields := strings.Fields(g["angles"])
		angles := make([]float64, 0, len(fields))
		for _, f := range fields {
			if !floatRE.MatchString(f) {
				return Residue{}, &ParseError{Token: token, Msg: fmt.Sprintf("%q is not a number", f)}
			}
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return Residue{}, &ParseError{Token: token, Msg: "bad angle", Err: err}
			}
			angles = append(angles, v)
		}
		r.Dihedrals = angles
	case ss != "":
		if db == nil {
			return Residue{}, &ParseError{Token: token, Msg: "can't resolve {" + ss + "}", Err: ErrNoResolver}
		}
		angles, err := db.Angles(ss)
		if err != nil {
			return Residue{}, &ParseError{Token: token, Msg: "secondary structure lookup", Err: err}
		}
		r.Dihedrals = angles
		r.SSName = ss
	}
	if r.Dihedrals != nil && len(r.Dihedrals) != r.Kind.NDihedrals() {
		return Residue{}, &ParseError{Token: token, Msg: fmt.Sprintf("%s residues take %d dihedrals, %d given", r.Kind, r.Kind.NDihedrals(), len(r.Dihedrals))}
	}
	return r, nil
}

// Parse parses a comma-separated sequence of residue tokens.
func Parse(seq string, db Resolver) ([]Residue, error) {
	if strings.TrimSpace(seq) == "" {
		return nil, &ParseError{Token: seq, Msg: "empty sequence"}
	}
	toks := strings.Split(seq, ",")
	ret := make([]Residue, 0, len(toks))
	for _, t := range toks {
		r, err := ParseResidue(t, db)
		if err != nil {
			return nil, err
		}
		ret = append(ret, r)
	}
	return ret, nil
}
