/*
 * grid.go, part of gocell.
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

//Package grid implements a uniform cubic-cell index over the atoms of a
//periodic cell. Each registered body is known only by an integer handle,
//and its atoms are looked up through a function supplied at creation.
package grid

import (
	"fmt"
	"math"
	"sort"

	"github.com/rmera/gocell/pbc"
	"gonum.org/v1/gonum/spatial/r3"
)

//Body is what the grid needs to know about a block of atoms.
type Body interface {
	NumAtoms() int
	Position(i int) r3.Vec
	Visible(i int) bool
	Radius() float64
}

//Lookup returns the body registered under id, or nil if none.
type Lookup func(id int) Body

//Key identifies a cubic region of the cell.
type Key [3]int

//Entry is one atom registered in a grid cell.
type Entry struct {
	Block int
	Atom  int
}

//Contact is a pair of atoms from different blocks closer than the grid size.
type Contact struct {
	Atom  int //index of the atom in the queried block
	Block int //handle of the other block
	Other int //index of the atom in the other block
	Dist  float64
}

//noKey marks atoms that are not registered (invisible).
var noKey = Key{-1, -1, -1}

//Grid is the spatial index. It is not safe for concurrent use.
type Grid struct {
	box       pbc.Box
	size      float64
	n         [3]int
	width     [3]float64
	atoms     map[Key][]Entry
	neighbors map[Key][]Key
	members   map[int][]Key
	lookup    Lookup
}

//New returns an empty grid over box, with cells at least size wide.
func New(box pbc.Box, size float64, lookup Lookup) (*Grid, error) {
	G := &Grid{lookup: lookup}
	if err := G.setGeometry(box, size); err != nil {
		return nil, errDecorate(err, "New")
	}
	G.atoms = make(map[Key][]Entry)
	G.neighbors = make(map[Key][]Key)
	G.members = make(map[int][]Key)
	return G, nil
}

func (G *Grid) setGeometry(box pbc.Box, size float64) error {
	if size <= 0 {
		return Error{fmt.Sprintf("grid size must be positive, got %v", size), []string{"setGeometry"}}
	}
	for i, d := range box {
		if d <= 0 {
			return Error{fmt.Sprintf("box length %d must be positive, got %v", i, d), []string{"setGeometry"}}
		}
		//every cell must be at least size wide, or the 27-cell ring
		//could miss pairs.
		n := int(math.Floor(d / size))
		if n < 1 {
			n = 1
		}
		G.n[i] = n
		G.width[i] = d / float64(n)
	}
	G.box = box
	G.size = size
	return nil
}

//Size returns the grid spacing used for close-contact queries.
func (G *Grid) Size() float64 { return G.size }

//Box returns the periodic box of the grid.
func (G *Grid) Box() pbc.Box { return G.box }

//Dims returns the number of cells along each axis.
func (G *Grid) Dims() [3]int { return G.n }

//Key returns the cell key for a point, which needs not be wrapped.
func (G *Grid) Key(p r3.Vec) Key {
	w, _ := pbc.WrapVec(p, G.box, false)
	c := [3]float64{w.X, w.Y, w.Z}
	var k Key
	for i := range c {
		k[i] = int(math.Floor(c[i] / G.width[i]))
		if k[i] >= G.n[i] {
			k[i] = G.n[i] - 1
		}
		if k[i] < 0 {
			k[i] = 0
		}
	}
	return k
}

//Neighbors returns the keys of k and of its 26 neighbours, wrapped around the box.
//Duplicates, which appear with fewer than 3 cells on an axis, are removed.
func (G *Grid) Neighbors(k Key) []Key {
	if nb, ok := G.neighbors[k]; ok {
		return nb
	}
	return G.ring(k)
}

func (G *Grid) ring(k Key) []Key {
	ret := make([]Key, 0, 27)
	seen := make(map[Key]bool, 27)
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			for l := -1; l <= 1; l++ {
				nk := Key{wrapIndex(k[0]+i, G.n[0]), wrapIndex(k[1]+j, G.n[1]), wrapIndex(k[2]+l, G.n[2])}
				if seen[nk] {
					continue
				}
				seen[nk] = true
				ret = append(ret, nk)
			}
		}
	}
	return ret
}

func wrapIndex(a, n int) int {
	if a < 0 {
		return n - 1
	}
	if a > n-1 {
		return 0
	}
	return a
}

//Contains returns true if a body is registered under id.
func (G *Grid) Contains(id int) bool {
	_, ok := G.members[id]
	return ok
}

//Entries returns the atoms registered in the cell k. The slice must not be modified.
func (G *Grid) Entries(k Key) []Entry {
	return G.atoms[k]
}

//Occupied returns the number of non-empty cells.
func (G *Grid) Occupied() int {
	return len(G.atoms)
}

//Insert registers every visible atom of b under the handle id.
//It returns an error if b is too large for the box. Registering an
//id twice is a programming error and causes a panic.
func (G *Grid) Insert(id int, b Body) error {
	if r := b.Radius(); r > G.box.Min()/2 {
		return Error{fmt.Sprintf("block radius %.3f does not fit in a box with smallest side %.3f", r, G.box.Min()), []string{"Insert"}}
	}
	G.Reinsert(id, b)
	return nil
}

//Reinsert registers every visible atom of b under the handle id, without
//the size check of Insert. It is meant for bodies that were already accepted
//once, such as merged blocks.
func (G *Grid) Reinsert(id int, b Body) {
	if G.Contains(id) {
		panic(ErrRegistered)
	}
	n := b.NumAtoms()
	keys := make([]Key, n)
	for i := 0; i < n; i++ {
		if !b.Visible(i) {
			keys[i] = noKey
			continue
		}
		k := G.Key(b.Position(i))
		keys[i] = k
		if _, ok := G.neighbors[k]; !ok {
			G.neighbors[k] = G.ring(k)
		}
		G.atoms[k] = append(G.atoms[k], Entry{Block: id, Atom: i})
	}
	G.members[id] = keys
}

//Remove drops every atom registered under id. Removing an unknown id does nothing.
func (G *Grid) Remove(id int) {
	keys, ok := G.members[id]
	if !ok {
		return
	}
	for i, k := range keys {
		if k == noKey {
			continue
		}
		entries := G.atoms[k]
		for j, e := range entries {
			if e.Block == id && e.Atom == i {
				entries = append(entries[:j], entries[j+1:]...)
				break
			}
		}
		if len(entries) == 0 {
			delete(G.atoms, k)
			delete(G.neighbors, k)
			continue
		}
		G.atoms[k] = entries
	}
	delete(G.members, id)
}

//Clear empties the grid.
func (G *Grid) Clear() {
	G.atoms = make(map[Key][]Entry)
	G.neighbors = make(map[Key][]Key)
	G.members = make(map[int][]Key)
}

//Resize changes the box or the grid size, and re-derives every
//cell by re-registering all the bodies. On error the grid is left as it was.
func (G *Grid) Resize(box pbc.Box, size float64) error {
	old := *G
	if err := G.setGeometry(box, size); err != nil {
		*G = old
		return errDecorate(err, "Resize")
	}
	ids := G.IDs()
	G.Clear()
	for _, id := range ids {
		b := G.body(id)
		G.Reinsert(id, b)
	}
	return nil
}

//IDs returns the registered handles, in increasing order.
func (G *Grid) IDs() []int {
	ids := make([]int, 0, len(G.members))
	for id := range G.members {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (G *Grid) body(id int) Body {
	b := G.lookup(id)
	if b == nil {
		panic(ErrDangling)
	}
	return b
}

//Close returns every pair formed by a visible atom of the body id and an atom
//of another body that is strictly closer than the grid size.
func (G *Grid) Close(id int) []Contact {
	keys, ok := G.members[id]
	if !ok {
		return nil
	}
	b := G.body(id)
	var cand []Contact
	var ps, qs []r3.Vec
	for i, k := range keys {
		if k == noKey {
			continue
		}
		p := b.Position(i)
		for _, nk := range G.neighbors[k] {
			for _, e := range G.atoms[nk] {
				if e.Block == id {
					continue
				}
				cand = append(cand, Contact{Atom: i, Block: e.Block, Other: e.Atom})
				ps = append(ps, p)
				qs = append(qs, G.body(e.Block).Position(e.Atom))
			}
		}
	}
	return G.filter(cand, ps, qs)
}

//Near returns the atoms closer than the grid size to the atom atom of body id.
//If sameBlock is true, other atoms of the same body are included. The atom itself never is.
func (G *Grid) Near(id, atom int, sameBlock bool) []Contact {
	keys, ok := G.members[id]
	if !ok || keys[atom] == noKey {
		return nil
	}
	p := G.body(id).Position(atom)
	var cand []Contact
	var ps, qs []r3.Vec
	for _, nk := range G.neighbors[keys[atom]] {
		for _, e := range G.atoms[nk] {
			if e.Block == id && (!sameBlock || e.Atom == atom) {
				continue
			}
			cand = append(cand, Contact{Atom: atom, Block: e.Block, Other: e.Atom})
			ps = append(ps, p)
			qs = append(qs, G.body(e.Block).Position(e.Atom))
		}
	}
	return G.filter(cand, ps, qs)
}

func (G *Grid) filter(cand []Contact, ps, qs []r3.Vec) []Contact {
	if len(cand) == 0 {
		return nil
	}
	ds := pbc.Distances(ps, qs, G.box, nil)
	ret := cand[:0]
	for i, c := range cand {
		if ds[i] < G.size {
			c.Dist = ds[i]
			ret = append(ret, c)
		}
	}
	if len(ret) == 0 {
		return nil
	}
	return ret
}
