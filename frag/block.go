/*
 * block.go, part of gocell.
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
	"sort"

	v3 "github.com/rmera/gocell/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

//Atom holds the per-atom data of a Block. Positions are kept in Block.Coords.
type Atom struct {
	Symbol  string
	Label   string
	Radius  float64
	Mass    float64
	Charge  float64
	Body    int //rigid body index within the fragment
	Frag    int //index of the fragment in Block.Fragments
	Visible bool
}

//Block is a connected set of bonded fragments, and the unit of
//registration in the grid.
type Block struct {
	ID        int
	Coords    *v3.Matrix
	Atoms     []*Atom
	Fragments []*Fragment
	Bonds     []*Bond
	adj       [][]int
}

//NewBlock instantiates a template. The template is validated if needed.
//The returned Block has ID -1 until it is registered.
func NewBlock(t *Template) (*Block, error) {
	if err := t.Validate(); err != nil {
		return nil, errDecorate(err, "NewBlock")
	}
	B := &Block{ID: -1}
	n := len(t.Atoms)
	B.Coords = t.coords()
	B.Atoms = make([]*Atom, n)
	for i, a := range t.Atoms {
		B.Atoms[i] = &Atom{Symbol: a.Symbol, Label: a.Label, Radius: a.Radius, Mass: a.Mass, Charge: a.Charge, Body: a.Body, Visible: true}
	}
	B.adj = make([][]int, n)
	for _, b := range t.Bonds {
		B.link(b[0], b[1])
	}
	f := newFragment(t, 0)
	B.Fragments = []*Fragment{f}
	return B, nil
}

//SetID sets the handle of the block and of all its fragments.
func (B *Block) SetID(id int) {
	B.ID = id
	for _, f := range B.Fragments {
		f.Block = id
	}
}

//NumAtoms returns the number of atoms, visible or not.
func (B *Block) NumAtoms() int { return len(B.Atoms) }

//Position returns the coordinates of the ith atom.
func (B *Block) Position(i int) r3.Vec { return B.Coords.Vec(i) }

//Visible returns whether the ith atom takes part in clash checks.
func (B *Block) Visible(i int) bool { return B.Atoms[i].Visible }

//Radius returns the bounding radius of the block around its centroid.
func (B *Block) Radius() float64 {
	return boundingRadius(B.Coords, func(i int) float64 { return B.Atoms[i].Radius })
}

//Centroid returns the geometric center of the block.
func (B *Block) Centroid() r3.Vec { return B.Coords.Centroid() }

//Mass returns the total mass of the visible atoms of the block.
func (B *Block) Mass() float64 {
	var m float64
	for _, a := range B.Atoms {
		if a.Visible {
			m += a.Mass
		}
	}
	return m
}

//Fragment returns the fragment that the ith atom belongs to.
func (B *Block) Fragment(i int) *Fragment { return B.Fragments[B.Atoms[i].Frag] }

//Bonded returns the indexes of the atoms bonded to the ith atom. The slice must not be modified.
func (B *Block) Bonded(i int) []int { return B.adj[i] }

//IsBonded returns true if atoms i and j are directly bonded.
func (B *Block) IsBonded(i, j int) bool {
	for _, k := range B.adj[i] {
		if k == j {
			return true
		}
	}
	return false
}

//EndGroupsAt returns the free EndGroups whose end atom is the ith atom.
func (B *Block) EndGroupsAt(i int) []*EndGroup {
	var ret []*EndGroup
	for _, e := range B.Fragment(i).EndGroups {
		if e.End() == i && e.Free() {
			ret = append(ret, e)
		}
	}
	return ret
}

//IsEndGroup returns true if the ith atom is the end atom of a free EndGroup.
func (B *Block) IsEndGroup(i int) bool {
	for _, e := range B.Fragment(i).EndGroups {
		if e.End() == i && e.Free() {
			return true
		}
	}
	return false
}

//FreeEndGroups returns the free EndGroups of the block.
func (B *Block) FreeEndGroups() []*EndGroup {
	var ret []*EndGroup
	for _, f := range B.Fragments {
		for _, e := range f.EndGroups {
			if e.Free() {
				ret = append(ret, e)
			}
		}
	}
	return ret
}

func (B *Block) link(i, j int) {
	if i == j || B.IsBonded(i, j) {
		return
	}
	B.adj[i] = append(B.adj[i], j)
	B.adj[j] = append(B.adj[j], i)
}

func (B *Block) unlink(i, j int) {
	rm := func(s []int, v int) []int {
		for k, x := range s {
			if x == v {
				return append(s[:k], s[k+1:]...)
			}
		}
		return s
	}
	B.adj[i] = rm(B.adj[i], j)
	B.adj[j] = rm(B.adj[j], i)
}

//Edges returns every bond between atoms of the block as index pairs with
//the lower index first, sorted.
func (B *Block) Edges() [][2]int {
	var ret [][2]int
	for i, nb := range B.adj {
		for _, j := range nb {
			if i < j {
				ret = append(ret, [2]int{i, j})
			}
		}
	}
	sort.Slice(ret, func(a, b int) bool {
		if ret[a][0] != ret[b][0] {
			return ret[a][0] < ret[b][0]
		}
		return ret[a][1] < ret[b][1]
	})
	return ret
}

//Bond commits b. If the EndGroups are in different blocks, other is absorbed
//into B, and should be discarded by the caller afterwards. other can be B
//itself. Both EndGroups are marked bonded, their caps hidden and their end atoms
//linked. It panics if an EndGroup is not free, or does not belong to the
//expected block.
func (B *Block) Bond(b *Bond, other *Block) {
	e1, e2 := b.EndGroup1, b.EndGroup2
	if !e1.Free() || !e2.Free() {
		panic(ErrNotFree)
	}
	if e1.Block() != B.ID || e2.Block() != other.ID {
		panic(ErrWrongBlock)
	}
	if other != B {
		B.absorb(other)
	}
	e1.Frag.bind(e1)
	e2.Frag.bind(e2)
	for _, e := range []*EndGroup{e1, e2} {
		if c := e.Cap(); c >= 0 {
			B.Atoms[c].Visible = false
		}
	}
	B.link(e1.End(), e2.End())
	B.Bonds = append(B.Bonds, b)
}

//Unbond reverts a committed bond of the block: the EndGroups become free, the caps
//visible, and the end atoms are unlinked. The block is not split, even if it becomes
//disconnected.
func (B *Block) Unbond(b *Bond) {
	idx := -1
	for i, c := range B.Bonds {
		if c == b {
			idx = i
			break
		}
	}
	if idx < 0 {
		panic(ErrNotBonded)
	}
	e1, e2 := b.EndGroup1, b.EndGroup2
	e1.Frag.Unbond(e1)
	e2.Frag.Unbond(e2)
	for _, e := range []*EndGroup{e1, e2} {
		if c := e.Cap(); c >= 0 {
			B.Atoms[c].Visible = true
		}
	}
	B.unlink(e1.End(), e2.End())
	B.Bonds = append(B.Bonds[:idx], B.Bonds[idx+1:]...)
}

//absorb appends the atoms, connectivity, fragments and bonds of other to B.
//other is left empty.
func (B *Block) absorb(other *Block) {
	offset := len(B.Atoms)
	foffset := len(B.Fragments)
	for _, a := range other.Atoms {
		a.Frag += foffset
		B.Atoms = append(B.Atoms, a)
	}
	B.Coords = v3.Stack(B.Coords, other.Coords)
	for _, nb := range other.adj {
		rebased := make([]int, len(nb))
		for k, j := range nb {
			rebased[k] = j + offset
		}
		B.adj = append(B.adj, rebased)
	}
	for _, f := range other.Fragments {
		f.Start += offset
		f.Block = B.ID
		B.Fragments = append(B.Fragments, f)
	}
	B.Bonds = append(B.Bonds, other.Bonds...)
	other.Atoms = nil
	other.Fragments = nil
	other.Bonds = nil
	other.adj = nil
	other.Coords = v3.Zeros(0)
}

//Copy returns a deep copy of the block, with the same ID.
func (B *Block) Copy() *Block {
	C := &Block{ID: B.ID, Coords: B.Coords.Copy()}
	C.Atoms = make([]*Atom, len(B.Atoms))
	for i, a := range B.Atoms {
		ca := *a
		C.Atoms[i] = &ca
	}
	C.adj = make([][]int, len(B.adj))
	for i, nb := range B.adj {
		C.adj[i] = append([]int(nil), nb...)
	}
	egs := make(map[*EndGroup]*EndGroup)
	C.Fragments = make([]*Fragment, len(B.Fragments))
	for i, f := range B.Fragments {
		cf := f.copy()
		for k, e := range f.EndGroups {
			egs[e] = cf.EndGroups[k]
		}
		C.Fragments[i] = cf
	}
	C.Bonds = make([]*Bond, len(B.Bonds))
	for i, b := range B.Bonds {
		C.Bonds[i] = &Bond{EndGroup1: egs[b.EndGroup1], EndGroup2: egs[b.EndGroup2]}
	}
	return C
}
