/*
 * transform.go, part of gocell.
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

package frag

import (
	"math"
	"math/rand"

	"github.com/rmera/gocell/pbc"
	"gonum.org/v1/gonum/spatial/r3"
)

const appzero = 1e-8

//Translate moves every atom of the block by v.
func (B *Block) Translate(v r3.Vec) {
	B.Coords.AddVec(v)
}

//TranslateCentroidTo moves the block so its centroid is at p.
func (B *Block) TranslateCentroidTo(p r3.Vec) {
	B.Translate(r3.Sub(p, B.Centroid()))
}

//Rotate rotates the block by angle radians around the axis going through
//origin along dir.
func (B *Block) Rotate(origin, dir r3.Vec, angle float64) {
	if r3.Norm(dir) < appzero {
		return
	}
	B.Coords.Rotate(origin, dir, angle)
}

//RandomRotate rotates the block around its centroid by random angles
//around the x, y and z axes, in that order.
func (B *Block) RandomRotate(rng *rand.Rand) {
	c := B.Centroid()
	for _, axis := range []r3.Vec{{X: 1}, {Y: 1}, {Z: 1}} {
		B.Coords.Rotate(c, axis, rng.Float64()*2*math.Pi)
	}
}

//BondVector returns the unit vector along which a partner would bond to e:
//from the end atom to the cap, or from the angle atom to the end atom if
//there is no cap. Both atoms are in the same fragment, so no periodic
//image is needed.
func (B *Block) BondVector(e *EndGroup) r3.Vec {
	end := B.Position(e.End())
	if e.HasCap() {
		return r3.Unit(r3.Sub(B.Position(e.Cap()), end))
	}
	return r3.Unit(r3.Sub(end, B.Position(e.AngleAtom())))
}

//CapPosition returns the position of the cap of e. For EndGroups without a cap it
//returns a virtual cap, one Angstrom from the end atom along the bond vector, so that a
//partner in bonding position is always seen at an angle near 0 from the cap.
func (B *Block) CapPosition(e *EndGroup) r3.Vec {
	if e.HasCap() {
		return B.Position(e.Cap())
	}
	return r3.Add(B.Position(e.End()), B.BondVector(e))
}

//BondPosition returns the point at length from the end atom of e, along its bond vector.
func (B *Block) BondPosition(e *EndGroup, length float64) r3.Vec {
	return r3.Add(B.Position(e.End()), r3.Scale(length, B.BondVector(e)))
}

//AlignBond rotates the block around the end atom of e, so that the bond vector
//of e points along target.
func (B *Block) AlignBond(e *EndGroup, target r3.Vec) {
	v := B.BondVector(e)
	t := r3.Unit(target)
	origin := B.Position(e.End())
	axis := r3.Cross(v, t)
	cos := math.Max(-1, math.Min(1, r3.Dot(v, t)))
	if r3.Norm(axis) < appzero {
		if cos > 0 {
			return
		}
		//antiparallel: any axis perpendicular to v will do.
		axis = r3.Cross(v, r3.Vec{X: 1})
		if r3.Norm(axis) < appzero {
			axis = r3.Cross(v, r3.Vec{Y: 1})
		}
		B.Rotate(origin, axis, math.Pi)
		return
	}
	B.Rotate(origin, axis, math.Acos(cos))
}

//PositionGrow moves grow so that its EndGroup ge can bond to the EndGroup se of static.
//The end atom of ge ends at length from the end atom of se, along the bond vector of se,
//and the bond vector of ge points back to se.
func PositionGrow(static *Block, se *EndGroup, grow *Block, ge *EndGroup, length float64) {
	sv := static.BondVector(se)
	pos := static.BondPosition(se, length)
	grow.AlignBond(ge, r3.Scale(-1, sv))
	grow.Translate(r3.Sub(pos, grow.Position(ge.End())))
}

//SetDihedral rotates grow around the bond axis between se and ge, so that the dihedral
//angle-atom(se), end(se), end(ge), angle-atom(ge) equals dihedral (radians).
//grow must have been placed with PositionGrow.
func SetDihedral(static *Block, se *EndGroup, grow *Block, ge *EndGroup, dihedral float64) {
	a := static.Position(se.AngleAtom())
	b := static.Position(se.End())
	c := grow.Position(ge.End())
	d := grow.Position(ge.AngleAtom())
	current := pbc.Dihedral(a, b, c, d, pbc.Box{})
	grow.Rotate(c, r3.Sub(c, b), dihedral-current)
}

//RotateAboutBond rotates grow by angle around the bond axis of se, going through the end
//atom of ge.
func RotateAboutBond(static *Block, se *EndGroup, grow *Block, ge *EndGroup, angle float64) {
	grow.Rotate(grow.Position(ge.End()), static.BondVector(se), angle)
}
