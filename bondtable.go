/*
 * bondtable.go, part of gocell.
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
	"sort"
	"strings"

	"github.com/rmera/gocell/frag"
)

//BondTable holds which pairs of full EndGroup types ("fragment:endgroup") can bond.
//The relation is symmetric.
type BondTable struct {
	allowed map[string]map[string]bool
	pairs   [][2]string
}

//NewBondTable returns an empty table.
func NewBondTable() *BondTable {
	return &BondTable{allowed: make(map[string]map[string]bool)}
}

//Add parses a bond type given as "fragA:egA-fragB:egB" and adds it. Both types
//must exist in library.
func (T *BondTable) Add(spec string, library map[string]*frag.Template) error {
	parts := strings.Split(strings.TrimSpace(spec), "-")
	if len(parts) != 2 {
		return configError(fmt.Sprintf("malformed bond type %q, expected fragA:egA-fragB:egB", spec), "Add")
	}
	return T.AddPair(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), library)
}

//AddPair allows bonds between the full EndGroup types a and b. Both must exist in library.
func (T *BondTable) AddPair(a, b string, library map[string]*frag.Template) error {
	for _, t := range []string{a, b} {
		f := strings.Split(t, ":")
		if len(f) != 2 || f[0] == "" || f[1] == "" {
			return configError(fmt.Sprintf("malformed EndGroup type %q, expected fragment:endgroup", t), "AddPair")
		}
		tmpl, ok := library[f[0]]
		if !ok {
			return configError(fmt.Sprintf("bond type %s-%s: no fragment %s in the library", a, b, f[0]), "AddPair")
		}
		if !tmpl.HasEndGroupType(f[1]) {
			return configError(fmt.Sprintf("bond type %s-%s: fragment %s has no EndGroup of type %s", a, b, f[0], f[1]), "AddPair")
		}
	}
	if T.Allowed(a, b) {
		return nil
	}
	T.set(a, b)
	T.set(b, a)
	T.pairs = append(T.pairs, [2]string{a, b})
	return nil
}

func (T *BondTable) set(a, b string) {
	m, ok := T.allowed[a]
	if !ok {
		m = make(map[string]bool)
		T.allowed[a] = m
	}
	m[b] = true
}

//Allowed returns true if EndGroups of the full types a and b can bond.
func (T *BondTable) Allowed(a, b string) bool {
	return T.allowed[a][b]
}

//Partners returns the types that can bond to a, sorted.
func (T *BondTable) Partners(a string) []string {
	ret := make([]string, 0, len(T.allowed[a]))
	for k := range T.allowed[a] {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

//Pairs returns the bond types in the order they were added.
func (T *BondTable) Pairs() [][2]string {
	return append([][2]string(nil), T.pairs...)
}

//Len returns the number of bond types.
func (T *BondTable) Len() int { return len(T.pairs) }
