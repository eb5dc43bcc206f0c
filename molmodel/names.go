/*
names.go, part of betafab



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
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Names hands out unique names for scratch structures. A name is never
// repeated while it is active, and never clashes with a name for which
// taken returns true.
type Names struct {
	prefix string
	active map[string]bool
	taken  func(string) bool
}

// NewNames returns a registry whose names start with prefix. taken may be nil.
func NewNames(prefix string, taken func(string) bool) *Names {
	if taken == nil {
		taken = func(string) bool { return false }
	}
	return &Names{prefix: prefix, active: make(map[string]bool), taken: taken}
}

// Generate returns a fresh name and marks it active.
func (n *Names) Generate() string {
	for {
		name := n.prefix + strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
		if n.active[name] || n.taken(name) {
			continue
		}
		n.active[name] = true
		return name
	}
}

// Release marks name as free. Releasing an unknown name does nothing.
func (n *Names) Release(name string) {
	delete(n.active, name)
}

// Active returns the names currently in use, sorted.
func (n *Names) Active() []string {
	ret := make([]string, 0, len(n.active))
	for k := range n.active {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}
