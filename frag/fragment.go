/*
 * fragment.go, part of gocell.
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

//Fragment is an instance of a Template inside a Block. Its atoms occupy
//the positions [Start, Start+Len()) of the Block atom array.
type Fragment struct {
	Template  *Template
	Start     int
	Block     int //handle of the Block that owns the fragment
	EndGroups []*EndGroup
	bonded    map[string]int
}

func newFragment(t *Template, start int) *Fragment {
	F := &Fragment{Template: t, Start: start, Block: -1, bonded: make(map[string]int)}
	F.EndGroups = make([]*EndGroup, len(t.EndGroups))
	for i, d := range t.EndGroups {
		F.EndGroups[i] = &EndGroup{Frag: F, def: d, index: i}
	}
	return F
}

//Type returns the name of the fragment template.
func (F *Fragment) Type() string { return F.Template.Name }

//Len returns the number of atoms in the fragment.
func (F *Fragment) Len() int { return len(F.Template.Atoms) }

//BondCount returns how many EndGroups of the given local type are bonded.
func (F *Fragment) BondCount(localType string) int { return F.bonded[localType] }

//bind marks e as bonded and blocks the free siblings of the same type
//if the fragment reached its bond limit for that type.
func (F *Fragment) bind(e *EndGroup) {
	if !e.Free() {
		panic(ErrNotFree)
	}
	e.bonded = true
	t := e.def.Type
	F.bonded[t]++
	if max := F.Template.MaxBonds[t]; max > 0 && F.bonded[t] >= max {
		for _, s := range F.EndGroups {
			if s != e && s.def.Type == t && !s.bonded {
				s.blocked = true
			}
		}
	}
}

//Unbond is the inverse of the bonding of e. It frees e, and unblocks
//its siblings if the fragment falls under its bond limit again.
//It does not touch the atoms or the connectivity of the Block, see Block.Unbond.
func (F *Fragment) Unbond(e *EndGroup) {
	if !e.bonded || e.Frag != F {
		panic(ErrNotBonded)
	}
	e.bonded = false
	t := e.def.Type
	F.bonded[t]--
	if max := F.Template.MaxBonds[t]; max == 0 || F.bonded[t] < max {
		for _, s := range F.EndGroups {
			if s.def.Type == t {
				s.blocked = false
			}
		}
	}
}

func (F *Fragment) copy() *Fragment {
	c := &Fragment{Template: F.Template, Start: F.Start, Block: F.Block, bonded: make(map[string]int, len(F.bonded))}
	for k, v := range F.bonded {
		c.bonded[k] = v
	}
	c.EndGroups = make([]*EndGroup, len(F.EndGroups))
	for i, e := range F.EndGroups {
		ce := *e
		ce.Frag = c
		c.EndGroups[i] = &ce
	}
	return c
}

//EndGroup is a reactive site of a fragment.
type EndGroup struct {
	Frag    *Fragment
	def     EndGroupDef
	index   int
	bonded  bool
	blocked bool
}

//Type returns the full type of the EndGroup, "fragment:endgroup".
func (E *EndGroup) Type() string { return FullType(E.Frag.Type(), E.def.Type) }

//LocalType returns the type of the EndGroup within its template.
func (E *EndGroup) LocalType() string { return E.def.Type }

//Index returns the position of the EndGroup in its fragment.
func (E *EndGroup) Index() int { return E.index }

//End returns the Block index of the end atom.
func (E *EndGroup) End() int { return E.Frag.Start + E.def.End }

//AngleAtom returns the Block index of the angle atom.
func (E *EndGroup) AngleAtom() int { return E.Frag.Start + E.def.Angle }

//Cap returns the Block index of the capping atom, or -1 if there is none.
func (E *EndGroup) Cap() int {
	if E.def.Cap < 0 {
		return -1
	}
	return E.Frag.Start + E.def.Cap
}

//HasCap returns true if the EndGroup has a capping atom.
func (E *EndGroup) HasCap() bool { return E.def.Cap >= 0 }

//Block returns the handle of the Block the EndGroup belongs to.
func (E *EndGroup) Block() int { return E.Frag.Block }

//Free returns true if the EndGroup can form a bond.
func (E *EndGroup) Free() bool { return !E.bonded && !E.blocked }

//Bonded returns true if the EndGroup is one side of a committed bond.
func (E *EndGroup) Bonded() bool { return E.bonded }

//Blocked returns true if the EndGroup can't bond because its fragment reached
//the bond limit for its type.
func (E *EndGroup) Blocked() bool { return E.blocked }

//Bond is a pair of EndGroups. EndGroup1 belongs to the Block that stays,
//EndGroup2 to the one that is absorbed on commit.
type Bond struct {
	EndGroup1 *EndGroup
	EndGroup2 *EndGroup
}

//Has returns true if e is one side of the bond.
func (B *Bond) Has(e *EndGroup) bool {
	return B.EndGroup1 == e || B.EndGroup2 == e
}
