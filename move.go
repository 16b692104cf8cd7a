/*
 * move.go, part of gocell.
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
	"github.com/rmera/gocell/frag"
	"github.com/rmera/gocell/logging"
)

//atomRef identifies an atom in the cell.
type atomRef struct {
	block int
	atom  int
}

type clash struct {
	p, q atomRef
}

//checkMove tests the block id, which must be registered, against its surroundings.
//It returns the number of clashes left after discarding those explained by the
//candidate bonds found. Zero means the move is valid, and the candidates are kept
//for processBonds. Otherwise the candidates are cleared.
func (C *Cell) checkMove(id int) int {
	C.candidates = C.candidates[:0]
	contacts := C.grid.Close(id)
	if len(contacts) == 0 {
		C.obs.MoveChecked(true, 0)
		return 0
	}
	add := C.block(id)
	var clashes []clash
	for _, c := range contacts {
		static := C.block(c.Block)
		if add.IsEndGroup(c.Atom) && static.IsEndGroup(c.Other) &&
			C.canBond(static, c.Other, add, c.Atom, c.Dist, C.params.BondMargin, C.params.BondAngleMargin) {
			continue
		}
		if c.Dist <= add.Atoms[c.Atom].Radius+static.Atoms[c.Other].Radius+C.params.AtomMargin {
			clashes = append(clashes, clash{atomRef{c.Block, c.Other}, atomRef{id, c.Atom}})
		}
	}
	if len(clashes) > 0 && len(C.candidates) > 0 {
		clashes = C.pruneClashes(clashes)
	}
	n := len(clashes)
	if n > 0 {
		C.log.Debug("move rejected", logging.Int("block", id), logging.Int("clashes", n), logging.Int("bonds", len(C.candidates)))
		C.candidates = C.candidates[:0]
	}
	C.obs.MoveChecked(n == 0, n)
	return n
}

//pruneClashes drops the clashes that a candidate bond explains: those involving a cap of
//either EndGroup, and those between an end atom and an atom directly bonded to the other end atom.
func (C *Cell) pruneClashes(clashes []clash) []clash {
	for _, b := range C.candidates {
		e1, e2 := b.EndGroup1, b.EndGroup2
		caps := make(map[atomRef]bool, 2)
		for _, e := range []*frag.EndGroup{e1, e2} {
			if e.HasCap() {
				caps[atomRef{e.Block(), e.Cap()}] = true
			}
		}
		end1 := atomRef{e1.Block(), e1.End()}
		end2 := atomRef{e2.Block(), e2.End()}
		nb1 := C.bondedTo(end1)
		nb2 := C.bondedTo(end2)
		explained := func(x, y atomRef) bool {
			return (x == end1 && nb2[y]) || (x == end2 && nb1[y])
		}
		kept := clashes[:0]
		for _, c := range clashes {
			if caps[c.p] || caps[c.q] || explained(c.p, c.q) || explained(c.q, c.p) {
				continue
			}
			kept = append(kept, c)
		}
		clashes = kept
	}
	return clashes
}

func (C *Cell) bondedTo(a atomRef) map[atomRef]bool {
	b := C.block(a.block)
	nb := b.Bonded(a.atom)
	ret := make(map[atomRef]bool, len(nb))
	for _, j := range nb {
		ret[atomRef{a.block, j}] = true
	}
	return ret
}

//CheckMove tests a block that is already in the cell, for instance after moving it
//with RemoveBlock/AddBlock, and commits the bonds found if there are no clashes.
//It returns the number of clashes and the number of bonds made.
func (C *Cell) CheckMove(id int) (clashes, bonds int) {
	if clashes = C.checkMove(id); clashes > 0 {
		return clashes, 0
	}
	return 0, C.processBonds()
}
