/*
geom_test.go, part of betafab



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

package geom

import (
	"math"
	"math/rand"
	"testing"

	v3 "github.com/rmera/gochem/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

func errql(t *testing.T, err error) {
	if err != nil {
		t.Error(err)
	}
}

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestDihedralPlace(Te *testing.T) {
	a := r3.Vec{Y: 1}
	b := r3.Vec{}
	c := r3.Vec{X: 1.5}
	for _, tor := range []float64{-179, -120, -60, -0.5, 0, 30, 90, 150, 180} {
		d := Place(a, b, c, 1.5, 110, tor)
		got := Dihedral(a, b, c, d)
		if !near(AngleDiff(got, tor), 0, 1e-9) {
			Te.Errorf("torsion %.2f: got %.6f", tor, got)
		}
		if !near(Angle(b, c, d), 110, 1e-9) {
			Te.Errorf("angle: got %.6f", Angle(b, c, d))
		}
		if !near(Distance(c, d), 1.5, 1e-9) {
			Te.Errorf("bond: got %.6f", Distance(c, d))
		}
	}
}

func TestRotateAboutIncreasesDihedral(Te *testing.T) {
	a := r3.Vec{Y: 1}
	b := r3.Vec{}
	c := r3.Vec{X: 1.5}
	d := Place(a, b, c, 1.5, 110, 30)
	d2 := RotateAbout(d, c, r3.Sub(c, b), 20*Deg2Rad)
	if got := Dihedral(a, b, c, d2); !near(got, 50, 1e-9) {
		Te.Errorf("expected 50, got %f", got)
	}
}

func TestConversionFactors(Te *testing.T) {
	if 180*Deg2Rad != math.Pi {
		Te.Errorf("180 degrees is %.17g rad", 180*Deg2Rad)
	}
	if !near(math.Pi*Rad2Deg, 180, 1e-12) {
		Te.Errorf("pi rad is %.17g degrees", math.Pi*Rad2Deg)
	}
}

func TestAngleDiff(Te *testing.T) {
	cases := []struct{ a, b, want float64 }{
		{179, -179, -2},
		{-179, 179, 2},
		{10, 370, 0},
		{-57, -57, 0},
	}
	for _, c := range cases {
		if got := AngleDiff(c.a, c.b); !near(got, c.want, 1e-9) {
			Te.Errorf("AngleDiff(%f,%f)=%f, want %f", c.a, c.b, got, c.want)
		}
	}
}

func testPoints() []r3.Vec {
	return []r3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1.5, Y: 0, Z: 0},
		{X: 2.0, Y: 1.4, Z: 0},
		{X: 3.1, Y: 1.7, Z: 1.1},
		{X: -0.4, Y: -0.9, Z: 1.2},
	}
}

func TestKabschRecoversMotion(Te *testing.T) {
	ref := testPoints()
	rng := rand.New(rand.NewSource(7))
	axis, ang := RandomAxisAngle(rng)
	move := Transform{R: RotationMatrix(axis, ang), From: r3.Vec{}, To: r3.Vec{X: 3, Y: -2, Z: 5}}
	mov := make([]r3.Vec, len(ref))
	copy(mov, ref)
	move.ApplyAll(mov)
	if RMSD(mov, ref) < 1 {
		Te.Fatal("test setup: points did not move")
	}
	t, err := Kabsch(mov, ref)
	errql(Te, err)
	t.ApplyAll(mov)
	if r := RMSD(mov, ref); r > 1e-9 {
		Te.Errorf("RMSD after fit: %g", r)
	}
}

func TestKabschNoReflection(Te *testing.T) {
	ref := testPoints()
	mirror := make([]r3.Vec, len(ref))
	for i, v := range ref {
		mirror[i] = r3.Vec{X: v.X, Y: v.Y, Z: -v.Z}
	}
	t, err := Kabsch(mirror, ref)
	errql(Te, err)
	t.ApplyAll(mirror)
	if r := RMSD(mirror, ref); r < 0.1 {
		Te.Errorf("a mirror image was superposed with RMSD %g, a reflection was used", r)
	}
}

func TestKabschTooFew(Te *testing.T) {
	p := testPoints()
	if _, err := Kabsch(p[:2], p[:2]); err == nil {
		Te.Error("expected an error with 2 points")
	}
	if _, err := Superpose(p[:3], p[:2]); err == nil {
		Te.Error("expected an error with mismatched lists")
	}
}

func TestAlignPair(Te *testing.T) {
	cases := [][4]r3.Vec{
		{{}, {X: 1}, {X: 2, Y: 2}, {X: 2, Y: 2, Z: 3}},
		{{}, {X: 1}, {X: 5}, {X: 7}},
		{{}, {X: 1}, {X: 5}, {X: 3}},
	}
	for i, c := range cases {
		t := AlignPair(c[0], c[1], c[2], c[3])
		p0, p1 := t.Apply(c[0]), t.Apply(c[1])
		got := r3.Unit(r3.Sub(p1, p0))
		want := r3.Unit(r3.Sub(c[3], c[2]))
		if r3.Norm(r3.Sub(got, want)) > 1e-9 {
			Te.Errorf("case %d: direction %v, want %v", i, got, want)
		}
		mid := r3.Scale(0.5, r3.Add(p0, p1))
		wmid := r3.Scale(0.5, r3.Add(c[2], c[3]))
		if r3.Norm(r3.Sub(mid, wmid)) > 1e-9 {
			Te.Errorf("case %d: midpoint %v, want %v", i, mid, wmid)
		}
		if !near(Distance(p0, p1), Distance(c[0], c[1]), 1e-9) {
			Te.Errorf("case %d: the motion is not rigid", i)
		}
	}
}

func TestSignedVolume(Te *testing.T) {
	o := r3.Vec{}
	a := r3.Vec{X: 1}
	b := r3.Vec{Y: 1}
	c := r3.Vec{Z: 1}
	if SignedVolume(o, a, b, c) <= 0 {
		Te.Error("expected a positive volume")
	}
	if SignedVolume(o, a, c, b) >= 0 {
		Te.Error("expected a negative volume")
	}
}

func TestVecRoundTrip(Te *testing.T) {
	m := v3.Zeros(2)
	p := r3.Vec{X: 1, Y: -2, Z: 3.5}
	SetVec(m, 1, p)
	if Vec(m, 1) != p {
		Te.Errorf("got %v, want %v", Vec(m, 1), p)
	}
	if Vec(m, 0) != (r3.Vec{}) {
		Te.Errorf("row 0 changed: %v", Vec(m, 0))
	}
}
