/*
 * join.go, part of gocell.
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
	"time"

	"github.com/rmera/gocell/frag"
	"github.com/rmera/gocell/logging"
)

//JoinOptions are the options for Cell.Join.
type JoinOptions struct {
	//MaxTries is the number of consecutive failed joins after which Join gives up. Default 100.
	MaxTries int
	//CellEndGroups restricts the EndGroups that can be used, by full type.
	CellEndGroups []string
	//Dihedral, in radians, fixes the dihedral angle about the new bond.
	Dihedral *float64
}

//Join bonds pairs of blocks already in the cell, moving one of them next to the other,
//until n joins were made, a single block is left, or MaxTries consecutive joins failed.
//It returns the number of joins made.
func (C *Cell) Join(n int, o JoinOptions) (int, error) {
	start := time.Now()
	if err := C.checkTypes(o.CellEndGroups); err != nil {
		return 0, errDecorate(err, "Join")
	}
	if o.MaxTries <= 0 {
		o.MaxTries = 100
	}
	added, tries, total := 0, 0, 0
	for added < n {
		if len(C.blocks) < 2 {
			C.log.Info("join has no more blocks to join", logging.Int("added", added))
			break
		}
		if tries >= o.MaxTries {
			C.log.Info("join exceeded the maximum number of tries", logging.Int("added", added), logging.Int("max_tries", o.MaxTries))
			break
		}
		me, se, ok := C.cellEndGroupPair(o.CellEndGroups)
		if !ok {
			C.log.Info("join found no EndGroups that can bond", logging.Int("added", added))
			break
		}
		total++
		move := C.block(me.Block())
		backup := move.Copy()
		C.evict(move.ID)
		if C.attachBlock(se, move, me, o.Dihedral) {
			added++
			tries = 0
			continue
		}
		C.register(backup, false)
		tries++
	}
	C.record("join", added, total, start)
	return added, nil
}

//cellEndGroupPair picks two free EndGroups that can bond, in different blocks of the cell.
//The first one is in the block that will be moved. It returns false if there is no such pair.
func (C *Cell) cellEndGroupPair(types []string) (*frag.EndGroup, *frag.EndGroup, bool) {
	byType, present := C.freeByType(stringSet(types))
	//for each type, the blocks that have a partner in some other block.
	type option struct {
		block    int
		partners []string
	}
	options := make(map[string][]option)
	var usable []string
	for _, t1 := range present {
		for _, b1 := range byType[t1] {
			var ps []string
			for _, t2 := range C.bonds.Partners(t1) {
				for _, b2 := range byType[t2] {
					if b2 != b1 {
						ps = append(ps, t2)
						break
					}
				}
			}
			if len(ps) > 0 {
				options[t1] = append(options[t1], option{b1, ps})
			}
		}
		if len(options[t1]) > 0 {
			usable = append(usable, t1)
		}
	}
	if len(usable) == 0 {
		return nil, nil, false
	}
	t1 := usable[C.rng.Intn(len(usable))]
	op := options[t1][C.rng.Intn(len(options[t1]))]
	t2 := op.partners[C.rng.Intn(len(op.partners))]
	var others []int
	for _, b := range byType[t2] {
		if b != op.block {
			others = append(others, b)
		}
	}
	b2 := others[C.rng.Intn(len(others))]
	return C.randomEndGroup(C.blocks[op.block], t1), C.randomEndGroup(C.blocks[b2], t2), true
}
