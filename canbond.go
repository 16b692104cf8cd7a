/*
 * canbond.go, part of gocell.
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

package gocell

import (
	"math"

	"github.com/rmera/gocell/frag"
	"github.com/rmera/gocell/logging"
	"github.com/rmera/gocell/pbc"
)

//canBond tests whether atom sa of static and atom oa of other, at distance d, can form a bond
//with the given margins. On success the bond, with the EndGroup of static first, is added to
//the candidates. The first acceptable pair of EndGroups is used.
func (C *Cell) canBond(static *frag.Block, sa int, other *frag.Block, oa int, d, bondMargin, angleMargin float64) bool {
	l, _ := frag.BondLength(static.Atoms[sa].Symbol, other.Atoms[oa].Symbol)
	if l <= 0 {
		return false
	}
	if d < math.Max(0.1, l-bondMargin) || d > l+bondMargin {
		return false
	}
	sp := static.Position(sa)
	op := other.Position(oa)
	for _, se := range static.EndGroupsAt(sa) {
		for _, oe := range other.EndGroupsAt(oa) {
			if se.Frag == oe.Frag {
				continue
			}
			if C.claimed(se) || C.claimed(oe) {
				continue
			}
			//the types don't depend on the pair, so one refusal is enough.
			if !C.bonds.Allowed(se.Type(), oe.Type()) {
				C.log.Debug("bond disallowed", logging.String("type1", se.Type()), logging.String("type2", oe.Type()))
				return false
			}
			a1 := pbc.Angle(static.CapPosition(se), sp, op, C.box)
			a2 := pbc.Angle(other.CapPosition(oe), op, sp, C.box)
			if !alignedAngles(a1, a2, angleMargin) {
				continue
			}
			C.candidates = append(C.candidates, &frag.Bond{EndGroup1: se, EndGroup2: oe})
			return true
		}
	}
	return false
}

//alignedAngles returns true if both angles are within margin of 0, or both within margin of Pi.
func alignedAngles(a1, a2, margin float64) bool {
	if a1 <= margin && a2 <= margin {
		return true
	}
	return a1 >= math.Pi-margin && a2 >= math.Pi-margin
}

//claimed returns true if e is already part of a candidate bond.
func (C *Cell) claimed(e *frag.EndGroup) bool {
	for _, b := range C.candidates {
		if b.Has(e) {
			return true
		}
	}
	return false
}
