/*
 * assign.go, part of gocell.
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
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

//constants from DOI:10.1186/1758-2946-3-33
const (
	tooclose = 0.63
	bondtol  = 0.45
)

//AssignBonds guesses the connectivity of a set of template atoms from their
//covalent radii. Two atoms are bonded if their distance is larger than
//tooclose and smaller than the sum of their radii plus bondtol. Atoms with
//more bonds than allowed for their element lose their longest bonds.
func AssignBonds(atoms []TemplateAtom) ([][2]int, error) {
	type cand struct {
		i, j int
		d    float64
	}
	tot := len(atoms)
	covs := make([]float64, tot)
	for i, at := range atoms {
		cov, ok := CovalentRadius(at.Symbol)
		if !ok {
			return nil, newError(fmt.Sprintf("Couldn't find the covalent radius for %s %d", at.Symbol, i), "AssignBonds")
		}
		covs[i] = cov
	}
	bonds := make([]cand, 0, tot)
	for i := 0; i < tot; i++ {
		for j := i + 1; j < tot; j++ {
			d := r3.Norm(r3.Sub(atoms[i].Pos, atoms[j].Pos))
			if d < covs[i]+covs[j]+bondtol && d > tooclose {
				bonds = append(bonds, cand{i, j, d})
			}
		}
	}
	//Now we check that no atom has too many bonds, removing the longest ones first.
	sort.SliceStable(bonds, func(a, b int) bool { return bonds[a].d < bonds[b].d })
	count := make([]int, tot)
	ret := make([][2]int, 0, len(bonds))
	for _, b := range bonds {
		mi := symbolMaxBonds[atoms[b.i].Symbol]
		mj := symbolMaxBonds[atoms[b.j].Symbol]
		if (mi > 0 && count[b.i] >= mi) || (mj > 0 && count[b.j] >= mj) {
			continue
		}
		count[b.i]++
		count[b.j]++
		ret = append(ret, [2]int{b.i, b.j})
	}
	sort.Slice(ret, func(a, b int) bool {
		if ret[a][0] != ret[b][0] {
			return ret[a][0] < ret[b][0]
		}
		return ret[a][1] < ret[b][1]
	})
	return ret, nil
}
