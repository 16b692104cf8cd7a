/*
 * v3_test.go, part of gocell.
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
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func vecClose(a, b r3.Vec, tol float64) bool {
	return r3.Norm(r3.Sub(a, b)) < tol
}

func TestNewMatrix(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 3 {
		Te.Errorf("Expected 3 vectors, got %d", A.NVecs())
	}
	if !vecClose(A.Vec(1), r3.Vec{X: 4, Y: 5, Z: 6}, 1e-12) {
		Te.Errorf("Wrong vector %v", A.Vec(1))
	}
	if _, err := NewMatrix([]float64{1, 2}); err == nil {
		Te.Error("A slice with 2 elements should not give a Matrix")
	}
	if Zeros(0).NVecs() != 0 {
		Te.Error("Empty matrix should have no vectors")
	}
}

func TestStackCopy(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 1, 1})
	B, _ := NewMatrix([]float64{2, 2, 2, 3, 3, 3})
	C := Stack(A, B)
	if C.NVecs() != 3 {
		Te.Fatalf("Expected 3 vectors, got %d", C.NVecs())
	}
	if C.At(2, 1) != 3 {
		Te.Errorf("Stack misplaced the vectors:\n%s", C)
	}
	D := C.Copy()
	D.Set(0, 0, 100)
	if C.At(0, 0) == 100 {
		Te.Error("Copy shares data with the original")
	}
}

func TestRotate(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 0, 0, 0, 1, 0})
	A.Rotate(r3.Vec{}, r3.Vec{Z: 1}, math.Pi/2)
	fmt.Println(A)
	if !vecClose(A.Vec(0), r3.Vec{Y: 1}, 1e-9) {
		Te.Errorf("x should go to y, got %v", A.Vec(0))
	}
	if !vecClose(A.Vec(1), r3.Vec{X: -1}, 1e-9) {
		Te.Errorf("y should go to -x, got %v", A.Vec(1))
	}
	//Rotation around an axis not going through the origin.
	B, _ := NewMatrix([]float64{2, 1, 0})
	B.Rotate(r3.Vec{X: 1, Y: 1}, r3.Vec{Z: 1}, math.Pi)
	if !vecClose(B.Vec(0), r3.Vec{X: 0, Y: 1}, 1e-9) {
		Te.Errorf("Wrong rotation around shifted axis: %v", B.Vec(0))
	}
}

func TestCentroidTranslate(Te *testing.T) {
	A, _ := NewMatrix([]float64{0, 0, 0, 2, 0, 0, 0, 2, 0, 0, 0, 2})
	c := A.Centroid()
	if !vecClose(c, r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, 1e-12) {
		Te.Errorf("Wrong centroid %v", c)
	}
	A.SubVec(c)
	if !vecClose(A.Centroid(), r3.Vec{}, 1e-12) {
		Te.Errorf("Centroid should be at the origin, got %v", A.Centroid())
	}
	if !vecClose(A.Vec(3), r3.Vec{X: -0.5, Y: -0.5, Z: 1.5}, 1e-12) {
		Te.Errorf("Wrong translated vector %v", A.Vec(3))
	}
}
