/*
 * cap.go, part of gocell.
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
	"time"

	"github.com/rmera/gocell/frag"
	"github.com/rmera/gocell/logging"
)

//Cap bonds a new block of the cap template capType to every free EndGroup in the cell
//that the bond table allows to bond with the first EndGroup of the cap. If endGroupTypes
//are given, only free EndGroups of those full types are capped. Each cap is placed and
//checked like a grown block. It returns the number of caps added. EndGroups that can't
//be capped are left free.
func (C *Cell) Cap(capType string, endGroupTypes ...string) (int, error) {
	start := time.Now()
	T := C.library[capType]
	if T == nil {
		return 0, configError(fmt.Sprintf("unknown cap fragment %q", capType), "Cap")
	}
	if len(T.EndGroups) == 0 {
		return 0, configError(fmt.Sprintf("cap fragment %q has no EndGroups", capType), "Cap")
	}
	if err := C.checkTypes(endGroupTypes); err != nil {
		return 0, errDecorate(err, "Cap")
	}
	capEG := frag.FullType(capType, T.EndGroups[0].Type)
	filter := stringSet(endGroupTypes)
	var targets []*frag.EndGroup
	for _, id := range C.ids() {
		for _, e := range C.blocks[id].FreeEndGroups() {
			if e.Frag.Type() == capType || (filter != nil && !filter[e.Type()]) {
				continue
			}
			if C.bonds.Allowed(e.Type(), capEG) {
				targets = append(targets, e)
			}
		}
	}
	capped, failed := 0, 0
	for _, se := range targets {
		//earlier caps may have used, or blocked, this EndGroup.
		if !se.Free() {
			continue
		}
		g, err := frag.NewBlock(T)
		if err != nil {
			//library templates are validated when added.
			panic(err)
		}
		ge := g.Fragments[0].EndGroups[0]
		if C.attachBlock(se, g, ge, nil) {
			capped++
			continue
		}
		failed++
		C.log.Debug("failed to cap EndGroup", logging.String("type", se.Type()), logging.Int("block", se.Block()))
	}
	if failed > 0 {
		C.log.Info("some EndGroups could not be capped", logging.Int("failed", failed), logging.String("cap", capType))
	}
	C.record("cap", capped, capped+failed, start)
	return capped, nil
}
