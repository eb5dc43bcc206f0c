/*
errors.go, part of betafab



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
	"errors"
	"fmt"
	"strings"
)

// ErrKind classifies the errors returned by this package.
type ErrKind int

const (
	// Config errors come from invalid requests: bad stereo letters,
	// fusing capped termini, torsion lists of the wrong length.
	Config ErrKind = iota + 1
	// Lookup errors come from unknown side-chain codes.
	Lookup
	// Unsupported errors are requests for residues that can't be built.
	Unsupported
	// Consistency errors are failed structural checks.
	Consistency
	// Geometry errors are failed fits and torsions that could not be set.
	Geometry
)

func (k ErrKind) String() string {
	switch k {
	case Config:
		return "configuration"
	case Lookup:
		return "lookup"
	case Unsupported:
		return "unsupported"
	case Consistency:
		return "consistency"
	case Geometry:
		return "geometry"
	}
	return "unknown"
}

// Error is the error type of the package. Deco holds, innermost first,
// the functions the error went through. Err, if not nil, is the
// underlying error.
type Error struct {
	Kind ErrKind
	Msg  string
	Deco []string
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "peptide: %s error", e.Kind)
	if e.Msg != "" {
		b.WriteString(": " + e.Msg)
	}
	if len(e.Deco) > 0 {
		b.WriteString(" (in " + strings.Join(e.Deco, " < ") + ")")
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Decorate adds dec to the trail of functions the error went through, and
// returns the trail.
func (e *Error) Decorate(dec string) []string {
	if dec != "" {
		e.Deco = append(e.Deco, dec)
	}
	return e.Deco
}

// Is makes errors.Is(err, ErrGeometry) and the like work. Only sentinels
// (errors with no message) match every error of their kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Msg == "" && t.Kind == e.Kind
}

var (
	ErrConfig      = &Error{Kind: Config}
	ErrLookup      = &Error{Kind: Lookup}
	ErrUnsupported = &Error{Kind: Unsupported}
	ErrConsistency = &Error{Kind: Consistency}
	ErrGeometry    = &Error{Kind: Geometry}
)

func errorf(k ErrKind, dec string, format string, v ...any) *Error {
	e := &Error{Kind: k, Msg: fmt.Sprintf(format, v...)}
	e.Decorate(dec)
	return e
}

// decorate adds dec to err if it is an *Error. Other errors are wrapped
// in an *Error of kind k.
func decorate(err error, k ErrKind, dec string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		e.Decorate(dec)
		return err
	}
	return &Error{Kind: k, Msg: err.Error(), Deco: []string{dec}, Err: err}
}
