/*
 * zip.go, part of gocell.
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
	"github.com/rmera/gocell/grid"
	"github.com/rmera/gocell/logging"
)

//zipExclusion is the number of bonds within which two end atoms of the same block are
//never zipped.
const zipExclusion = 3

//ZipOptions are the options for Cell.Zip. Nil margins take the values in Params.
//A zero margin is kept, and asks for exact bond lengths or angles.
type ZipOptions struct {
	BondMargin  *float64
	AngleMargin *float64 //radians
	//EndGroupTypes restricts the EndGroups that can be zipped, by full type.
	EndGroupTypes []string
}

//zipBody shows a block to the grid with only some of its atoms visible.
type zipBody struct {
	*frag.Block
	ends map[int]bool
}

func (z zipBody) Visible(i int) bool { return z.ends[i] }

//Zip bonds pairs of free EndGroups that are already in a position to bond, without
//moving any block. Pairs within the same block are considered, if the end atoms
//are more than 3 bonds apart. It returns the number of bonds made.
func (C *Cell) Zip(o ZipOptions) (int, error) {
	start := time.Now()
	if err := C.checkTypes(o.EndGroupTypes); err != nil {
		return 0, errDecorate(err, "Zip")
	}
	bondMargin, angleMargin := C.params.ZipBondMargin, C.params.ZipAngleMargin
	if o.BondMargin != nil {
		bondMargin = *o.BondMargin
	}
	if o.AngleMargin != nil {
		angleMargin = *o.AngleMargin
	}
	if bondMargin < 0 || angleMargin < 0 {
		return 0, configError("negative zip margin", "Zip")
	}
	filter := stringSet(o.EndGroupTypes)
	bodies := make(map[int]grid.Body)
	size := frag.MaxBondLength(C.symbols()) + bondMargin + 0.01
	zg, err := grid.New(C.box, size, func(id int) grid.Body { return bodies[id] })
	if err != nil {
		return 0, wrap(err, ErrConfig, "Zip")
	}
	ids := C.ids()
	ends := make(map[int][]int)
	for _, id := range ids {
		b := C.blocks[id]
		z := zipBody{Block: b, ends: make(map[int]bool)}
		for _, e := range b.FreeEndGroups() {
			if filter == nil || filter[e.Type()] {
				if !z.ends[e.End()] {
					ends[id] = append(ends[id], e.End())
				}
				z.ends[e.End()] = true
			}
		}
		if len(z.ends) == 0 {
			continue
		}
		bodies[id] = z
		zg.Reinsert(id, z)
	}
	C.candidates = C.candidates[:0]
	pairs := 0
	for _, id := range ids {
		if _, ok := bodies[id]; !ok {
			continue
		}
		b1 := C.blocks[id]
		var nb *frag.Neighborhood
		for _, a1 := range ends[id] {
			for _, c := range zg.Near(id, a1, true) {
				//each pair is seen from both sides.
				if c.Block < id || (c.Block == id && c.Other <= a1) {
					continue
				}
				if c.Block == id {
					if nb == nil {
						nb = b1.NewNeighborhood(zipExclusion)
					}
					if nb.Close(a1, c.Other) {
						continue
					}
				}
				pairs++
				C.canBond(b1, a1, C.blocks[c.Block], c.Other, c.Dist, bondMargin, angleMargin)
			}
		}
	}
	if pairs == 0 {
		C.log.Info("zip found no EndGroups close enough to bond", logging.Int("blocks", len(ids)))
	}
	made := C.processBonds()
	C.record("zip", made, pairs, start)
	return made, nil
}
