/*
graph.go, part of betafab



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
	"math"

	chem "github.com/rmera/gochem"
	path "gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// ErrRing is returned when a torsion or an inversion would require
// breaking a ring.
var ErrRing = errors.New("molmodel: the bond is part of a ring")

// graph returns the bond graph of s, with one node per atom (node ID equal
// to the atom index) and one edge per bond for which cut returns false.
func (s *Structure) graph(cut func(b *chem.Bond) bool) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := range s.Atoms {
		g.AddNode(simple.Node(i))
	}
	for _, b := range s.bonds {
		if cut(b) {
			continue
		}
		g.SetEdge(simple.Edge{F: simple.Node(b.At1.Index()), T: simple.Node(b.At2.Index())})
	}
	return g
}

// reachable returns, for each atom of s, whether it can be reached from
// atom start through the bond graph, ignoring the bonds for which cut
// returns true.
func (s *Structure) reachable(start int, cut func(b *chem.Bond) bool) []bool {
	g := s.graph(cut)
	paths := path.DijkstraFrom(g.Node(int64(start)), g)
	ret := make([]bool, s.Len())
	for i := range ret {
		ret[i] = !math.IsInf(paths.WeightTo(int64(i)), 1)
	}
	return ret
}

// dihedralSide returns the atoms that move when the b-c bond is rotated
// keeping the b side fixed. c itself is included.
func (s *Structure) dihedralSide(b, c int) ([]int, error) {
	ab, ac := s.Atoms[b], s.Atoms[c]
	reach := s.reachable(c, func(bo *chem.Bond) bool {
		return (bo.At1 == ab && bo.At2 == ac) || (bo.At1 == ac && bo.At2 == ab)
	})
	if reach[b] {
		return nil, fmt.Errorf("molmodel: %s%d-%s%d: %w", ab.Name, ab.MolID, ac.Name, ac.MolID, ErrRing)
	}
	return trueIndexes(reach), nil
}

// branches returns the atoms bonded to center through m1 and m2 (excluding center).
// It fails with ErrRing if any two of the four substituents are connected
// other than through center.
func (s *Structure) branches(center, fixed1, fixed2, m1, m2 int) ([]int, error) {
	ac := s.Atoms[center]
	cut := func(bo *chem.Bond) bool { return bo.At1 == ac || bo.At2 == ac }
	moving := make(map[int]bool)
	for _, m := range [][2]int{{m1, m2}, {m2, m1}} {
		reach := s.reachable(m[0], cut)
		if reach[fixed1] || reach[fixed2] || reach[m[1]] {
			return nil, fmt.Errorf("molmodel: substituents of %s%d are connected: %w", ac.Name, ac.MolID, ErrRing)
		}
		for _, i := range trueIndexes(reach) {
			moving[i] = true
		}
	}
	ret := make([]int, 0, len(moving))
	for i := 0; i < s.Len(); i++ {
		if moving[i] {
			ret = append(ret, i)
		}
	}
	return ret, nil
}

func trueIndexes(b []bool) []int {
	var ret []int
	for i, v := range b {
		if v {
			ret = append(ret, i)
		}
	}
	return ret
}
