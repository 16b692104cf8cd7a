/*
 * pbc_test.go, part of gocell.
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

package pbc

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestWrapRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	dims := []float64{1, 10, 30, 17.3}
	for _, d := range dims {
		xs := []float64{0, d, -d, 2 * d, -7 * d, d / 2, -d / 2, 1000.5 * d, -1e-17, d - 1e-15}
		for i := 0; i < 200; i++ {
			xs = append(xs, (rng.Float64()-0.5)*200*d)
		}
		for _, centered := range []bool{false, true} {
			for _, x := range xs {
				w, img := Wrap(x, d, centered)
				if centered {
					assert.True(t, w >= -d/2 && w < d/2, "centered %v out of range for d=%v x=%v", w, d, x)
				} else {
					assert.True(t, w >= 0 && w < d, "%v out of range for d=%v x=%v", w, d, x)
				}
				assert.InDelta(t, x, Unwrap(w, img, d), 1e-9*math.Max(1, math.Abs(x)))
			}
		}
	}
}

func TestWrapVec(t *testing.T) {
	box := Box{10, 20, 30}
	p := r3.Vec{X: -1, Y: 45, Z: 30}
	w, img := WrapVec(p, box, false)
	assert.Equal(t, [3]int{-1, 2, 1}, img)
	assert.InDelta(t, 9, w.X, 1e-12)
	assert.InDelta(t, 5, w.Y, 1e-12)
	assert.InDelta(t, 0, w.Z, 1e-12)
	back := UnwrapVec(w, img, box)
	assert.InDelta(t, 0, r3.Norm(r3.Sub(p, back)), 1e-12)
}

func TestDistanceProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	box := Box{12, 15, 9}
	rv := func() r3.Vec {
		return r3.Vec{X: (rng.Float64() - 0.5) * 50, Y: (rng.Float64() - 0.5) * 50, Z: (rng.Float64() - 0.5) * 50}
	}
	for i := 0; i < 500; i++ {
		p, q := rv(), rv()
		d := Distance(p, q, box)
		require.GreaterOrEqual(t, d, 0.0)
		assert.InDelta(t, d, Distance(q, p, box), 1e-9)
		shift := r3.Vec{
			X: float64(rng.Intn(9)-4) * box[0],
			Y: float64(rng.Intn(9)-4) * box[1],
			Z: float64(rng.Intn(9)-4) * box[2],
		}
		assert.InDelta(t, d, Distance(r3.Add(p, shift), q, box), 1e-9)
		assert.InDelta(t, d, Distance(p, r3.Add(q, shift), box), 1e-9)
		//the minimum image can never be longer than half the box diagonal.
		assert.LessOrEqual(t, d, math.Sqrt(box[0]*box[0]+box[1]*box[1]+box[2]*box[2])/2+1e-9)
	}
}

func TestDistanceAcrossBoundary(t *testing.T) {
	box := Box{10, 10, 10}
	d := Distance(r3.Vec{X: 0.5}, r3.Vec{X: 9.5}, box)
	assert.InDelta(t, 1.0, d, 1e-12)
	v := Vector(r3.Vec{X: 0.5}, r3.Vec{X: 9.5}, box)
	assert.InDelta(t, -1.0, v.X, 1e-12)
	//exactly half a box is mapped to +d/2
	v = Vector(r3.Vec{}, r3.Vec{X: 5}, box)
	assert.InDelta(t, 5.0, v.X, 1e-12)
	v = Vector(r3.Vec{}, r3.Vec{X: -5}, box)
	assert.InDelta(t, 5.0, v.X, 1e-12)
}

func TestDistances(t *testing.T) {
	box := Box{10, 10, 10}
	ps := []r3.Vec{{}, {X: 1}, {X: 9}}
	qs := []r3.Vec{{X: 3}, {X: 1, Y: 2}, {X: 1}}
	ds := Distances(ps, qs, box, nil)
	require.Len(t, ds, 3)
	assert.InDeltaSlice(t, []float64{3, 2, 2}, ds, 1e-12)
	assert.Panics(t, func() { Distances(ps, qs[:1], box, nil) })
}

func TestAngle(t *testing.T) {
	box := Box{20, 20, 20}
	o := r3.Vec{X: 10, Y: 10, Z: 10}
	assert.InDelta(t, math.Pi/2, Angle(r3.Vec{X: 11, Y: 10, Z: 10}, o, r3.Vec{X: 10, Y: 11, Z: 10}, box), 1e-12)
	//straight line, round-off must not produce NaN
	a := Angle(r3.Vec{X: 9.1, Y: 10, Z: 10}, o, r3.Vec{X: 10.7, Y: 10, Z: 10}, box)
	assert.InDelta(t, math.Pi, a, 1e-6)
	assert.False(t, math.IsNaN(a))
	assert.InDelta(t, 0, Angle(r3.Vec{X: 11, Y: 10, Z: 10}, o, r3.Vec{X: 12, Y: 10, Z: 10}, box), 1e-6)
	//across the boundary
	b := r3.Vec{X: 0.2}
	assert.InDelta(t, math.Pi, Angle(r3.Vec{X: 19.2}, b, r3.Vec{X: 1.2}, box), 1e-6)
}

func TestDihedral(t *testing.T) {
	box := Box{}
	a := r3.Vec{X: 1, Y: 0, Z: 0}
	b := r3.Vec{}
	c := r3.Vec{Z: 1}
	d := r3.Vec{X: 0, Y: 1, Z: 1}
	//d is x rotated by +90 degrees around z.
	assert.InDelta(t, math.Pi/2, Dihedral(a, b, c, d, box), 1e-9)
	d = r3.Vec{X: 0, Y: -1, Z: 1}
	assert.InDelta(t, -math.Pi/2, Dihedral(a, b, c, d, box), 1e-9)
	d = r3.Vec{X: 1, Z: 1}
	assert.InDelta(t, 0, Dihedral(a, b, c, d, box), 1e-9)
	d = r3.Vec{X: -1, Z: 1}
	assert.InDelta(t, math.Pi, math.Abs(Dihedral(a, b, c, d, box)), 1e-9)
}
