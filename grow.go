/*
 * grow.go, part of gocell.
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
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rmera/gocell/frag"
	"github.com/rmera/gocell/logging"
)

//rotationStep is the angle by which attachBlock rotates a block about the new bond
//when the first placement fails.
const rotationStep = math.Pi / 9

//GrowOptions are the options for Cell.Grow.
type GrowOptions struct {
	//MaxTries is the number of consecutive failed attachments after which Grow gives up. Default 50.
	MaxTries int
	//CellEndGroups restricts the free EndGroups of the cell that can be used, by full type.
	CellEndGroups []string
	//LibraryEndGroups restricts the EndGroups of the library that can be used, by full type.
	LibraryEndGroups []string
	//Dihedral, in radians, fixes the dihedral angle about the new bond. If nil, the
	//new block is rotated about the bond until it fits.
	Dihedral *float64
}

//Grow attaches n new blocks from the library to free EndGroups in the cell.
//It returns the number of blocks added. Running out of tries, or of bondable
//EndGroups, is not an error.
func (C *Cell) Grow(n int, o GrowOptions) (int, error) {
	start := time.Now()
	if len(C.blocks) == 0 {
		return 0, configError("the cell must be seeded before growing", "Grow")
	}
	if err := C.checkTypes(o.CellEndGroups); err != nil {
		return 0, errDecorate(err, "Grow")
	}
	if err := C.checkTypes(o.LibraryEndGroups); err != nil {
		return 0, errDecorate(err, "Grow")
	}
	if o.MaxTries <= 0 {
		o.MaxTries = 50
	}
	added, tries, total := 0, 0, 0
	for added < n {
		if tries >= o.MaxTries {
			C.log.Info("grow exceeded the maximum number of tries", logging.Int("added", added), logging.Int("max_tries", o.MaxTries))
			break
		}
		se, g, ge, ok := C.libraryPair(o.CellEndGroups, o.LibraryEndGroups)
		if !ok {
			C.log.Info("grow found no EndGroups that can bond", logging.Int("added", added))
			break
		}
		g.RandomRotate(C.rng)
		total++
		if C.attachBlock(se, g, ge, o.Dihedral) {
			added++
			tries = 0
			continue
		}
		tries++
	}
	C.record("grow", added, total, start)
	return added, nil
}

//checkTypes returns an error if any of the full EndGroup types is not in the library.
func (C *Cell) checkTypes(types []string) error {
	for _, t := range types {
		f := strings.SplitN(t, ":", 2)
		if len(f) != 2 || C.library[f[0]] == nil || !C.library[f[0]].HasEndGroupType(f[1]) {
			return configError(fmt.Sprintf("unknown EndGroup type %q", t), "checkTypes")
		}
	}
	return nil
}

func stringSet(s []string) map[string]bool {
	if len(s) == 0 {
		return nil
	}
	ret := make(map[string]bool, len(s))
	for _, v := range s {
		ret[v] = true
	}
	return ret
}

//freeByType maps the full types of the free EndGroups in the cell to the handles of the
//blocks that have them, sorted. If filter is not nil, only the types in it are included.
func (C *Cell) freeByType(filter map[string]bool) (map[string][]int, []string) {
	byType := make(map[string][]int)
	for _, id := range C.ids() {
		seen := make(map[string]bool)
		for _, e := range C.blocks[id].FreeEndGroups() {
			t := e.Type()
			if seen[t] || (filter != nil && !filter[t]) {
				continue
			}
			seen[t] = true
			byType[t] = append(byType[t], id)
		}
	}
	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)
	return byType, types
}

//randomEndGroup returns a random free EndGroup of the full type t from b, or nil.
func (C *Cell) randomEndGroup(b *frag.Block, t string) *frag.EndGroup {
	var egs []*frag.EndGroup
	for _, e := range b.FreeEndGroups() {
		if e.Type() == t {
			egs = append(egs, e)
		}
	}
	if len(egs) == 0 {
		return nil
	}
	return egs[C.rng.Intn(len(egs))]
}

//libraryTypes returns the full EndGroup types of the library, by type.
func (C *Cell) libraryTypes() map[string]*frag.Template {
	ret := make(map[string]*frag.Template)
	for _, t := range C.library {
		for _, et := range t.EndGroupTypes() {
			ret[et] = t
		}
	}
	return ret
}

//libraryPair picks a free EndGroup in the cell and a new block from the library with an
//EndGroup that can bond to it. It returns false if no such pair exists.
func (C *Cell) libraryPair(cellTypes, libTypes []string) (*frag.EndGroup, *frag.Block, *frag.EndGroup, bool) {
	byType, types := C.freeByType(stringSet(cellTypes))
	lib := C.libraryTypes()
	libFilter := stringSet(libTypes)
	partners := make(map[string][]string)
	var usable []string
	for _, t := range types {
		var ps []string
		for _, p := range C.bonds.Partners(t) {
			if lib[p] != nil && (libFilter == nil || libFilter[p]) {
				ps = append(ps, p)
			}
		}
		if len(ps) > 0 {
			partners[t] = ps
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return nil, nil, nil, false
	}
	ct := usable[C.rng.Intn(len(usable))]
	ids := byType[ct]
	static := C.blocks[ids[C.rng.Intn(len(ids))]]
	se := C.randomEndGroup(static, ct)
	lt := C.selector.Select(partners[ct], C.FragmentTypeCounts(), C.rng)
	g, err := frag.NewBlock(lib[lt])
	if err != nil {
		//library templates are validated when added.
		panic(err)
	}
	ge := C.randomEndGroup(g, lt)
	return se, g, ge, true
}

//attachBlock places grow so that ge bonds to se, which must be in the cell, and checks the move.
//Without a dihedral, the block is rotated about the bond in steps of rotationStep until it fits.
//On success the bond is committed. On failure grow is not in the cell.
func (C *Cell) attachBlock(se *frag.EndGroup, grow *frag.Block, ge *frag.EndGroup, dihedral *float64) bool {
	static := C.block(se.Block())
	l, _ := frag.BondLength(static.Atoms[se.End()].Symbol, grow.Atoms[ge.End()].Symbol)
	frag.PositionGrow(static, se, grow, ge, l)
	if dihedral != nil {
		frag.SetDihedral(static, se, grow, ge, *dihedral)
	}
	//templates were checked against the box when added, and merged blocks were accepted before.
	C.register(grow, false)
	if C.checkMove(grow.ID) == 0 && C.processBonds() > 0 {
		return true
	}
	if dihedral == nil {
		for k := 1; float64(k)*rotationStep < 2*math.Pi-1e-6; k++ {
			C.grid.Remove(grow.ID)
			frag.RotateAboutBond(static, se, grow, ge, rotationStep)
			C.grid.Reinsert(grow.ID, grow)
			if C.checkMove(grow.ID) == 0 && C.processBonds() > 0 {
				C.log.Debug("attached after rotation", logging.Float64("angle", float64(k)*rotationStep))
				return true
			}
		}
	}
	C.evict(grow.ID)
	return false
}
