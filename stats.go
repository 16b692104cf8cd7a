/*
 * stats.go, part of gocell.
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
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Step summarizes the cell after one driver call.
type Step struct {
	Number        int            `json:"number"`
	Kind          string         `json:"kind"` //seed, grow, join, zip or cap
	Added         int            `json:"added"`
	Tries         int            `json:"tries"`
	Elapsed       time.Duration  `json:"elapsed"`
	Blocks        int            `json:"blocks"`
	Fragments     int            `json:"fragments"`
	Atoms         int            `json:"atoms"`
	Density       float64        `json:"density"`
	FreeEndGroups int            `json:"free_endgroups"`
	FragmentTypes map[string]int `json:"fragment_types"`
	BlockMean     float64        `json:"block_mean"` //mean number of fragments per block
	BlockStd      float64        `json:"block_std"`
}

//record appends a Step to the history and logs it.
func (C *Cell) record(kind string, added, tries int, start time.Time) {
	s := Step{
		Number:        len(C.steps),
		Kind:          kind,
		Added:         added,
		Tries:         tries,
		Elapsed:       time.Since(start),
		Blocks:        len(C.blocks),
		Fragments:     C.NumFragments(),
		Atoms:         C.NumAtoms(),
		Density:       C.Density(),
		FreeEndGroups: len(C.FreeEndGroups()),
		FragmentTypes: C.FragmentTypeCounts(),
	}
	s.BlockMean, s.BlockStd = C.BlockSizes()
	C.steps = append(C.steps, s)
	C.obs.DriverFinished(kind, added, tries)
	C.log.Info(kind+" finished", logging.Int("added", added), logging.Int("tries", tries),
		logging.Int("blocks", s.Blocks), logging.Int("fragments", s.Fragments), logging.Float64("density", s.Density),
		logging.Duration("elapsed", s.Elapsed))
}

//Steps returns the history of driver calls.
func (C *Cell) Steps() []Step {
	return append([]Step(nil), C.steps...)
}

//NumFragments returns the number of fragments in the cell.
func (C *Cell) NumFragments() int {
	n := 0
	for _, b := range C.blocks {
		n += len(b.Fragments)
	}
	return n
}

//NumAtoms returns the number of visible atoms in the cell.
func (C *Cell) NumAtoms() int {
	n := 0
	for _, b := range C.blocks {
		for i := 0; i < b.NumAtoms(); i++ {
			if b.Visible(i) {
				n++
			}
		}
	}
	return n
}

//Density returns the density of the cell in g/cm^3, counting only visible atoms.
func (C *Cell) Density() float64 {
	masses := make([]float64, 0, len(C.blocks))
	for _, b := range C.blocks {
		masses = append(masses, b.Mass())
	}
	//amu/A^3 to g/cm^3
	return floats.Sum(masses) / C.box.Volume() * (10 / 6.022)
}

//FreeEndGroups returns the free EndGroups in the cell, in block order. If types
//are given, only EndGroups with those full types are returned.
func (C *Cell) FreeEndGroups(types ...string) []*frag.EndGroup {
	var filter map[string]bool
	if len(types) > 0 {
		filter = make(map[string]bool, len(types))
		for _, t := range types {
			filter[t] = true
		}
	}
	var ret []*frag.EndGroup
	for _, b := range C.Blocks() {
		for _, e := range b.FreeEndGroups() {
			if filter == nil || filter[e.Type()] {
				ret = append(ret, e)
			}
		}
	}
	return ret
}

//FragmentTypeCounts returns how many fragments of each type are in the cell.
func (C *Cell) FragmentTypeCounts() map[string]int {
	ret := make(map[string]int)
	for _, b := range C.blocks {
		for _, f := range b.Fragments {
			ret[f.Type()]++
		}
	}
	return ret
}

//BlockSizes returns the mean and the standard deviation of the number of fragments per block.
//The deviation is 0 with fewer than 2 blocks.
func (C *Cell) BlockSizes() (mean, std float64) {
	if len(C.blocks) == 0 {
		return 0, 0
	}
	sizes := make([]float64, 0, len(C.blocks))
	for _, b := range C.blocks {
		sizes = append(sizes, float64(len(b.Fragments)))
	}
	if len(sizes) == 1 {
		return sizes[0], 0
	}
	return stat.MeanStdDev(sizes, nil)
}
