/*
geom.go, part of betafab



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

// Package geom contains the small amount of 3D geometry needed to assemble
// and fold peptides: internal coordinates, rigid rotations and least-squares
// superposition. Points are gonum r3 vectors; coordinates stored in gochem
// matrices are moved in and out with Vec and SetVec.
package geom

import (
	"math"
	"math/rand"

	v3 "github.com/rmera/gochem/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Angle conversion factors, at full float64 precision.
const (
	Deg2Rad = math.Pi / 180
	Rad2Deg = 180 / math.Pi
)

// Vec returns the i-th row of m.
func Vec(m *v3.Matrix, i int) r3.Vec {
	return r3.Vec{X: m.At(i, 0), Y: m.At(i, 1), Z: m.At(i, 2)}
}

// SetVec puts p in the i-th row of m.
func SetVec(m *v3.Matrix, i int, p r3.Vec) {
	m.Set(i, 0, p.X)
	m.Set(i, 1, p.Y)
	m.Set(i, 2, p.Z)
}

// Distance between a and b.
func Distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// Angle returns the a-b-c angle, in degrees.
func Angle(a, b, c r3.Vec) float64 {
	cos := r3.Cos(r3.Sub(a, b), r3.Sub(c, b))
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * Rad2Deg
}

// Dihedral returns the a-b-c-d torsion in degrees, in (-180, 180], with the
// usual IUPAC sign (clockwise, looking from b to c, is positive).
func Dihedral(a, b, c, d r3.Vec) float64 {
	b0 := r3.Sub(a, b)
	b1 := r3.Unit(r3.Sub(c, b))
	b2 := r3.Sub(d, c)
	v := r3.Sub(b0, r3.Scale(r3.Dot(b0, b1), b1))
	w := r3.Sub(b2, r3.Scale(r3.Dot(b2, b1), b1))
	x := r3.Dot(v, w)
	y := r3.Dot(r3.Cross(b1, v), w)
	return math.Atan2(y, x) * Rad2Deg
}

// AngleDiff returns a-b wrapped to [-180, 180).
func AngleDiff(a, b float64) float64 {
	d := math.Mod(a-b+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}

// RotateAbout rotates p by rad radians around the axis that goes through
// origin with direction axis. Rotations are right-handed.
func RotateAbout(p, origin, axis r3.Vec, rad float64) r3.Vec {
	return r3.Add(origin, r3.Rotate(r3.Sub(p, origin), rad, axis))
}

// Place returns the position of a point d such that |cd| = bond,
// the b-c-d angle is angle and the a-b-c-d dihedral is torsion (both in degrees).
func Place(a, b, c r3.Vec, bond, angle, torsion float64) r3.Vec {
	bc := r3.Unit(r3.Sub(c, b))
	n := r3.Unit(r3.Cross(r3.Sub(b, a), bc))
	m := r3.Cross(n, bc)
	ang := angle * Deg2Rad
	tor := torsion * Deg2Rad
	d2 := r3.Vec{
		X: -bond * math.Cos(ang),
		Y: bond * math.Sin(ang) * math.Cos(tor),
		Z: bond * math.Sin(ang) * math.Sin(tor),
	}
	d := r3.Add(r3.Scale(d2.X, bc), r3.Add(r3.Scale(d2.Y, m), r3.Scale(d2.Z, n)))
	return r3.Add(c, d)
}

// SignedVolume is (a-o)·((b-o)×(c-o)). For a stereocenter o with substituents
// a, b, c listed by decreasing priority, a positive volume means S.
func SignedVolume(o, a, b, c r3.Vec) float64 {
	return r3.Dot(r3.Sub(a, o), r3.Cross(r3.Sub(b, o), r3.Sub(c, o)))
}

// Centroid of the points.
func Centroid(p []r3.Vec) r3.Vec {
	var c r3.Vec
	if len(p) == 0 {
		return c
	}
	for _, v := range p {
		c = r3.Add(c, v)
	}
	return r3.Scale(1/float64(len(p)), c)
}

// RMSD between two equally long point lists. It returns +Inf if the lengths differ.
func RMSD(a, b []r3.Vec) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.Inf(1)
	}
	var sum float64
	for i := range a {
		sum += r3.Norm2(r3.Sub(a[i], b[i]))
	}
	return math.Sqrt(sum / float64(len(a)))
}

// RandomAxisAngle returns a uniformly distributed unit axis and an angle in [0, 2pi).
func RandomAxisAngle(rng *rand.Rand) (r3.Vec, float64) {
	for {
		v := r3.Vec{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()}
		if n := r3.Norm(v); n > 1e-6 {
			return r3.Scale(1/n, v), rng.Float64() * 2 * math.Pi
		}
	}
}
