/*
tables.go, part of betafab



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

// sideChains maps side-chain codes to fragment keys in the library.
var sideChains = map[string]string{
	"A":  "ala",
	"C":  "cys",
	"CM": "cys", // thiolate: HG removed, SG charged
	"D":  "asp",
	"DH": "asph",
	"E":  "glu",
	"EH": "gluh",
	"F":  "phe",
	"G":  "gly",
	"HD": "hid",
	"HE": "hie",
	"HH": "hip",
	"H":  "his",
	"I":  "ile",
	"K":  "lys",
	"O":  "orp",
	"KN": "lysn",
	"ON": "orn",
	"L":  "leu",
	"M":  "met",
	"N":  "asn",
	"P":  "pro",
	"Q":  "gln",
	"R":  "arg",
	"S":  "ser",
	"T":  "thr",
	"V":  "val",
	"W":  "trp",
	"Y":  "tyr",
}

// SideChainKey returns the fragment key for a side-chain code.
func SideChainKey(code string) (string, bool) {
	k, ok := sideChains[code]
	return k, ok
}

// Fragment keys of the special residues.
const (
	betaBackboneKey = "betabackbone"
	mouldKey        = "peptidebond"
	butyrylKey      = "butyrate"
	aceKey          = "ace"
	nmeKey          = "nme"
)

// Atom names in the peptide-bond mould.
const (
	mouldCprev = "CPRV"
	mouldC     = "C"
	mouldO     = "O"
	mouldN     = "N"
	mouldH     = "H"
	mouldCnext = "CNXT"
)

// The library fragments are L amino acids. For all of them but cysteine
// (whose SG outranks the backbone carbon) L is S.
var alphaNaturalR = map[string]bool{"C": true, "CM": true}

// alphaInverts reports whether an alpha residue built from the library
// fragment must have its CA inverted to get the requested stereo.
func alphaInverts(sc, stereo string) bool {
	if sc == "G" {
		return false
	}
	switch stereo {
	case "D":
		return true
	case "R":
		return !alphaNaturalR[sc]
	case "S":
		return alphaNaturalR[sc]
	}
	return false
}

// betaInversion is a correction applied after a beta residue is assembled,
// where attaching the side chain at the S position does not give S.
type betaInversion struct {
	site   int
	codes  map[string]bool
	sc2Gly bool // only applies if there is no side chain on position 2
	center []string
	fixed1 []string
	fixed2 []string
}

var betaInversions = []betaInversion{
	{site: 2, codes: set("C", "CM", "S", "T"), center: []string{"CA"}, fixed1: []string{"CB", "CB1"}, fixed2: []string{"C"}},
	{site: 3, codes: set("C", "CM", "S", "T"), center: []string{"CB", "CB1"}, fixed1: []string{"CA"}, fixed2: []string{"N"}},
	{site: 3, codes: set("M", "D", "DH"), sc2Gly: true, center: []string{"CB", "CB1"}, fixed1: []string{"CA"}, fixed2: []string{"N"}},
}

func set(s ...string) map[string]bool {
	ret := make(map[string]bool, len(s))
	for _, v := range s {
		ret[v] = true
	}
	return ret
}

func (b betaInversion) applies(sc2, sc3 string) bool {
	sc := sc2
	if b.site == 3 {
		sc = sc3
	}
	return b.codes[sc] && (!b.sc2Gly || sc2 == "G")
}

type attachKey struct {
	site   int
	stereo string
}

// attachSites gives the backbone carbon and the hydrogen it loses when a
// side chain is attached at the given site with the given stereo.
var attachSites = map[attachKey][2]string{
	{2, "S"}: {"CA", "HA1"},
	{2, "R"}: {"CA", "HA2"},
	{3, "S"}: {"CB", "HB1"},
	{3, "R"}: {"CB", "HB2"},
}

// attachSitesB1 replaces attachSites for position 3 when the backbone
// beta carbon is already called CB1.
var attachSitesB1 = map[attachKey][2]string{
	{3, "S"}: {"CB1", "HB11"},
	{3, "R"}: {"CB1", "HB12"},
}

// BetaResidueName returns the residue name used for a beta amino acid
// with side chains sc2 and sc3 ("G" or "" for none).
func BetaResidueName(sc2, sc3 string) string {
	g2 := sc2 == "" || sc2 == "G"
	g3 := sc3 == "" || sc3 == "G"
	switch {
	case g2 && g3:
		return "BALA"
	case g2:
		return "B3" + sc3
	case g3:
		return "B2" + sc2
	}
	return "B0" + sc2 + sc3
}
