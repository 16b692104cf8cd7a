/*
 * commit.go, part of gocell.
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

//processBonds commits the candidate bonds whose EndGroups are still free, and
//returns how many were made. The candidates are always cleared.
func (C *Cell) processBonds() int {
	made := 0
	for _, b := range C.candidates {
		//an earlier bond may have used the capacity of a fragment.
		if !b.EndGroup1.Free() || !b.EndGroup2.Free() {
			continue
		}
		C.bondBlock(b)
		made++
	}
	C.candidates = C.candidates[:0]
	if made > 0 {
		C.log.Debug("bonds committed", logging.Int("bonds", made))
	}
	C.obs.BondsCommitted(made)
	return made
}

//bondBlock merges the block of the second EndGroup of b into the block of the first,
//and updates the grid.
func (C *Cell) bondBlock(b *frag.Bond) {
	static := C.block(b.EndGroup1.Block())
	other := C.block(b.EndGroup2.Block())
	C.grid.Remove(static.ID)
	if other != static {
		C.grid.Remove(other.ID)
	}
	oid := other.ID
	static.Bond(b, other)
	if other != static {
		delete(C.blocks, oid)
	}
	//merged blocks can be larger than half the box.
	C.grid.Reinsert(static.ID, static)
}
