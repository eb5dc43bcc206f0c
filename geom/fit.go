/*
fit.go, part of betafab



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
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is a rigid-body motion x' = R(x-From) + To.
type Transform struct {
	R    *mat.Dense
	From r3.Vec
	To   r3.Vec
}

// Identity returns the transform that leaves every point where it is.
func Identity() Transform {
	return Transform{R: eye()}
}

// Apply returns the transformed point.
func (t Transform) Apply(p r3.Vec) r3.Vec {
	x := r3.Sub(p, t.From)
	r := t.R
	rot := r3.Vec{
		X: r.At(0, 0)*x.X + r.At(0, 1)*x.Y + r.At(0, 2)*x.Z,
		Y: r.At(1, 0)*x.X + r.At(1, 1)*x.Y + r.At(1, 2)*x.Z,
		Z: r.At(2, 0)*x.X + r.At(2, 1)*x.Y + r.At(2, 2)*x.Z,
	}
	return r3.Add(rot, t.To)
}

// ApplyAll transforms every point in place.
func (t Transform) ApplyAll(p []r3.Vec) {
	for i, v := range p {
		p[i] = t.Apply(v)
	}
}

func eye() *mat.Dense {
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
}

// RotationMatrix returns the right-handed rotation of rad radians around axis.
func RotationMatrix(axis r3.Vec, rad float64) *mat.Dense {
	k := r3.Unit(axis)
	c, s := math.Cos(rad), math.Sin(rad)
	t := 1 - c
	return mat.NewDense(3, 3, []float64{
		t*k.X*k.X + c, t*k.X*k.Y - s*k.Z, t*k.X*k.Z + s*k.Y,
		t*k.X*k.Y + s*k.Z, t*k.Y*k.Y + c, t*k.Y*k.Z - s*k.X,
		t*k.X*k.Z - s*k.Y, t*k.Y*k.Z + s*k.X, t*k.Z*k.Z + c,
	})
}

// ErrFewPoints is returned when a superposition is requested with fewer
// than 2 point pairs, or with lists of different length.
var ErrFewPoints = errors.New("geom: not enough matching points to superpose")

// Kabsch returns the proper rotation (no reflection) and translation that
// minimizes the RMSD between the transformed mov and ref.
func Kabsch(mov, ref []r3.Vec) (Transform, error) {
	if len(mov) != len(ref) || len(mov) < 3 {
		return Transform{}, fmt.Errorf("geom/Kabsch: %d and %d points: %w", len(mov), len(ref), ErrFewPoints)
	}
	cm := Centroid(mov)
	cr := Centroid(ref)
	h := mat.NewDense(3, 3, nil)
	for i := range mov {
		m := r3.Sub(mov[i], cm)
		r := r3.Sub(ref[i], cr)
		mv := [3]float64{m.X, m.Y, m.Z}
		rv := [3]float64{r.X, r.Y, r.Z}
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				h.Set(j, k, h.At(j, k)+mv[j]*rv[k])
			}
		}
	}
	var svd mat.SVD
	if !svd.Factorize(h, mat.SVDFull) {
		return Transform{}, errors.New("geom/Kabsch: SVD factorization failed")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	var vut mat.Dense
	vut.Mul(&v, u.T())
	d := 1.0
	if mat.Det(&vut) < 0 {
		d = -1
	}
	var vd, rot mat.Dense
	vd.Mul(&v, mat.NewDiagDense(3, []float64{1, 1, d}))
	rot.Mul(&vd, u.T())
	return Transform{R: &rot, From: cm, To: cr}, nil
}

// AlignPair returns the rigid motion that makes the m0->m1 direction point
// along r0->r1 and puts the midpoint of m0, m1 on the midpoint of r0, r1.
// Rotation about the common axis is left undetermined.
func AlignPair(m0, m1, r0, r1 r3.Vec) Transform {
	from := r3.Scale(0.5, r3.Add(m0, m1))
	to := r3.Scale(0.5, r3.Add(r0, r1))
	u := r3.Unit(r3.Sub(m1, m0))
	w := r3.Unit(r3.Sub(r1, r0))
	axis := r3.Cross(u, w)
	cos := math.Max(-1, math.Min(1, r3.Dot(u, w)))
	switch {
	case r3.Norm(axis) > 1e-9:
		return Transform{R: RotationMatrix(axis, math.Acos(cos)), From: from, To: to}
	case cos > 0:
		return Transform{R: eye(), From: from, To: to}
	}
	// antiparallel: half turn about any axis perpendicular to u.
	perp := r3.Cross(u, r3.Vec{X: 1})
	if r3.Norm(perp) < 1e-6 {
		perp = r3.Cross(u, r3.Vec{Y: 1})
	}
	return Transform{R: RotationMatrix(perp, math.Pi), From: from, To: to}
}

// Superpose returns the motion of mov onto ref: AlignPair for 2 points,
// Kabsch for 3 or more.
func Superpose(mov, ref []r3.Vec) (Transform, error) {
	if len(mov) != len(ref) || len(mov) < 2 {
		return Transform{}, fmt.Errorf("geom/Superpose: %d and %d points: %w", len(mov), len(ref), ErrFewPoints)
	}
	if len(mov) == 2 {
		return AlignPair(mov[0], mov[1], ref[0], ref[1]), nil
	}
	return Kabsch(mov, ref)
}
