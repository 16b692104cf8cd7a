/*
 * gonum.go, part of gocell.
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

//gonum.go contains what is needed for handling the gonum/mat types.
//All the *Vec functions operate on row vectors, i.e. on the cartesian
//coordinates of one point.

package v3

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors in 3D space.
//Within the package it is understood that a "vector" is a row vector, i.e. the
//cartesian coordinates of a point in 3D space.
type Matrix struct {
	*mat.Dense
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
//The data is not copied.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d: %d", l, cols, l%cols), []string{"NewMatrix"}, true}
	}
	if rows == 0 {
		return &Matrix{new(mat.Dense)}, nil
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

//Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	if vecs == 0 {
		return &Matrix{new(mat.Dense)}
	}
	return &Matrix{mat.NewDense(vecs, 3, nil)}
}

//NVecs returns the number of vectors (rows) in the matrix.
//An empty matrix has 0 vectors.
func (F *Matrix) NVecs() int {
	if F == nil || F.Dense == nil || F.Dense.IsEmpty() {
		return 0
	}
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//Copy returns a deep copy of F.
func (F *Matrix) Copy() *Matrix {
	if F.NVecs() == 0 {
		return Zeros(0)
	}
	return &Matrix{mat.DenseCopyOf(F.Dense)}
}

//Stack returns a new matrix with the vectors of A followed by those of B.
func Stack(A, B *Matrix) *Matrix {
	ar, br := A.NVecs(), B.NVecs()
	ret := Zeros(ar + br)
	if ar+br == 0 {
		return ret
	}
	raw := ret.RawMatrix().Data
	for i := 0; i < ar; i++ {
		mat.Row(raw[i*3:i*3+3], i, A.Dense)
	}
	for i := 0; i < br; i++ {
		mat.Row(raw[(ar+i)*3:(ar+i)*3+3], i, B.Dense)
	}
	return ret
}

//Transform replaces every vector v of F by R·v. R must be 3x3.
func (F *Matrix) Transform(R mat.Matrix) {
	r, c := R.Dims()
	if r != 3 || c != 3 {
		panic(ErrShape)
	}
	if F.NVecs() == 0 {
		return
	}
	//Row vectors, so we multiply by the transpose on the right.
	tmp := mat.NewDense(F.NVecs(), 3, nil)
	tmp.Mul(F.Dense, R.T())
	F.Dense.Copy(tmp)
}

//Errors

//Error is the error type for the v3 package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix    = PanicMsg("gocell/v3: A Matrix should have 3 columns")
	ErrShape           = PanicMsg("gocell/v3: Dimension mismatch")
	ErrIndexOutOfRange = PanicMsg("gocell/v3: index out of range")
)
