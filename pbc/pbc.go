/*
 * pbc.go, part of gocell.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

//Package pbc provides distances, angles and coordinate wrapping for points
//in an orthorhombic cell with periodic boundary conditions.
package pbc

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

//appzero is used to correct floating point errors.
const appzero float64 = 1e-10

//Box holds the three orthogonal lengths of a periodic cell.
//A length that is zero or negative means that axis is not periodic.
type Box [3]float64

//Volume returns the product of the three box lengths.
func (B Box) Volume() float64 {
	return B[0] * B[1] * B[2]
}

//Min returns the smallest box length.
func (B Box) Min() float64 {
	return math.Min(B[0], math.Min(B[1], B[2]))
}

//Center returns the point at the middle of the box.
func (B Box) Center() r3.Vec {
	return r3.Vec{X: B[0] / 2, Y: B[1] / 2, Z: B[2] / 2}
}

//image reduces x into (-d/2, d/2].
func image(x, d float64) float64 {
	if d <= 0 {
		return x
	}
	r := x - d*math.Round(x/d)
	if r <= -d/2 {
		r += d
	} else if r > d/2 {
		r -= d
	}
	return r
}

//Vector returns the minimum-image vector going from p to q.
func Vector(p, q r3.Vec, box Box) r3.Vec {
	return r3.Vec{
		X: image(q.X-p.X, box[0]),
		Y: image(q.Y-p.Y, box[1]),
		Z: image(q.Z-p.Z, box[2]),
	}
}

//Distance returns the minimum-image distance between p and q.
func Distance(p, q r3.Vec, box Box) float64 {
	return r3.Norm(Vector(p, q, box))
}

//Distances returns the minimum-image distances between ps[i] and qs[i]
//for all i. If dest has enough capacity, it is used to store the results.
//It panics if ps and qs differ in length.
func Distances(ps, qs []r3.Vec, box Box, dest []float64) []float64 {
	if len(ps) != len(qs) {
		panic("gocell/pbc: Distances needs the same number of points on each side")
	}
	if cap(dest) < len(ps) {
		dest = make([]float64, len(ps))
	}
	dest = dest[:len(ps)]
	for i := range ps {
		dest[i] = Distance(ps[i], qs[i], box)
	}
	return dest
}

//Angle returns the angle a-b-c, in radians, with b as the vertex.
//The result is in [0, π]. Points are taken with the minimum-image
//convention, relative to b.
func Angle(a, b, c r3.Vec, box Box) float64 {
	v1 := Vector(b, a, box)
	v2 := Vector(b, c, box)
	r1 := r3.Norm(v1)
	r2 := r3.Norm(v2)
	if r1 < appzero || r2 < appzero {
		return 0
	}
	r3n := r3.Norm(r3.Sub(v2, v1))
	//Round-off close to 180 degrees.
	if r1+r2-r3n < appzero {
		return math.Pi
	}
	cos := r3.Dot(v1, v2) / (r1 * r2)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

//Dihedral returns the signed dihedral angle a-b-c-d in radians, in (-π, π].
//Points are taken with the minimum-image convention along the chain.
func Dihedral(a, b, c, d r3.Vec, box Box) float64 {
	b1 := Vector(a, b, box)
	b2 := Vector(b, c, box)
	b3 := Vector(c, d, box)
	n1 := r3.Cross(b1, b2)
	n2 := r3.Cross(b2, b3)
	if r3.Norm(n1) < appzero || r3.Norm(n2) < appzero {
		return 0
	}
	//positive for a right-handed rotation of d around the b->c axis.
	x := r3.Dot(n1, n2)
	y := r3.Dot(r3.Unit(b2), r3.Cross(n1, n2))
	return math.Atan2(y, x)
}

//Wrap maps x into [0,d), or into [-d/2,d/2) if centered is true.
//It returns the wrapped coordinate and the number of box lengths
//that were removed, so that Unwrap(w, img, d) == x.
func Wrap(x, d float64, centered bool) (float64, int) {
	if d <= 0 {
		return x, 0
	}
	shift := 0.0
	if centered {
		shift = d / 2
	}
	img := math.Floor((x + shift) / d)
	w := x - img*d
	//x slightly below a multiple of d can land on the upper edge.
	if w+shift >= d {
		w -= d
		img++
	}
	if w+shift < 0 {
		w += d
		img--
	}
	return w, int(img)
}

//Unwrap is the inverse of Wrap.
func Unwrap(w float64, img int, d float64) float64 {
	if d <= 0 {
		return w
	}
	return w + float64(img)*d
}

//WrapVec applies Wrap on each axis of p.
func WrapVec(p r3.Vec, box Box, centered bool) (r3.Vec, [3]int) {
	var imgs [3]int
	var w r3.Vec
	w.X, imgs[0] = Wrap(p.X, box[0], centered)
	w.Y, imgs[1] = Wrap(p.Y, box[1], centered)
	w.Z, imgs[2] = Wrap(p.Z, box[2], centered)
	return w, imgs
}

//UnwrapVec applies Unwrap on each axis of w.
func UnwrapVec(w r3.Vec, imgs [3]int, box Box) r3.Vec {
	return r3.Vec{
		X: Unwrap(w.X, imgs[0], box[0]),
		Y: Unwrap(w.Y, imgs[1], box[1]),
		Z: Unwrap(w.Z, imgs[2], box[2]),
	}
}
