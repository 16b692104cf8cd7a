/*
 * gocoords.go, part of gocell.
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

package v3

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

//METHODS

//Vec returns the ith vector of F as an r3.Vec.
func (F *Matrix) Vec(i int) r3.Vec {
	if i < 0 || i >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	return r3.Vec{X: F.At(i, 0), Y: F.At(i, 1), Z: F.At(i, 2)}
}

//SetVec puts v in the ith vector of F.
func (F *Matrix) SetVec(i int, v r3.Vec) {
	if i < 0 || i >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	F.Set(i, 0, v.X)
	F.Set(i, 1, v.Y)
	F.Set(i, 2, v.Z)
}

//AddVec adds vec to every vector of F, in place.
func (F *Matrix) AddVec(vec r3.Vec) {
	for i := 0; i < F.NVecs(); i++ {
		F.SetVec(i, r3.Add(F.Vec(i), vec))
	}
}

//SubVec subtracts vec from every vector of F, in place.
func (F *Matrix) SubVec(vec r3.Vec) {
	F.AddVec(r3.Scale(-1, vec))
}

//Centroid returns the geometric center of the vectors of F.
//It panics on an empty matrix.
func (F *Matrix) Centroid() r3.Vec {
	n := F.NVecs()
	if n == 0 {
		panic(ErrShape)
	}
	var c r3.Vec
	for i := 0; i < n; i++ {
		c = r3.Add(c, F.Vec(i))
	}
	return r3.Scale(1/float64(n), c)
}

//Rotate rotates every vector of F by angle (radians) around the axis going through
//origin along dir.
func (F *Matrix) Rotate(origin, dir r3.Vec, angle float64) {
	if F.NVecs() == 0 || angle == 0 {
		return
	}
	R := RotationMatrix(dir, angle)
	F.SubVec(origin)
	F.Transform(R)
	F.AddVec(origin)
}

//RotationMatrix returns the 3x3 matrix for a counterclockwise rotation
//of angle radians around axis. The axis needs not to be normalized.
func RotationMatrix(axis r3.Vec, angle float64) *mat.Dense {
	ret := mat.NewDense(3, 3, nil)
	basis := [3]r3.Vec{{X: 1}, {Y: 1}, {Z: 1}}
	//the rotated basis vectors are the columns.
	for j, e := range basis {
		c := r3.Rotate(e, angle, axis)
		ret.Set(0, j, c.X)
		ret.Set(1, j, c.Y)
		ret.Set(2, j, c.Z)
	}
	return ret
}

//String returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r := F.NVecs()
	v := make([]string, r)
	for i := 0; i < r; i++ {
		v[i] = fmt.Sprintf("[%6.4f %6.4f %6.4f]", F.At(i, 0), F.At(i, 1), F.At(i, 2))
	}
	return "[" + strings.Join(v, "\n ") + "]"
}
