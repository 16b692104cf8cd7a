/*
 * grid_test.go, part of gocell.
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

package grid

import (
	"math/rand"
	"testing"

	"github.com/rmera/gocell/pbc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

type points struct {
	pos    []r3.Vec
	hidden map[int]bool
	radius float64
}

func (p *points) NumAtoms() int         { return len(p.pos) }
func (p *points) Position(i int) r3.Vec { return p.pos[i] }
func (p *points) Visible(i int) bool    { return !p.hidden[i] }
func (p *points) Radius() float64       { return p.radius }

func (p *points) shift(v r3.Vec) *points {
	for i := range p.pos {
		p.pos[i] = r3.Add(p.pos[i], v)
	}
	return p
}

type store map[int]*points

func (s store) lookup(id int) Body {
	b, ok := s[id]
	if !ok {
		return nil
	}
	return b
}

type pair struct{ b1, a1, b2, a2 int }

func bruteForce(s store, id int, box pbc.Box, size float64) map[pair]float64 {
	ret := make(map[pair]float64)
	me := s[id]
	for i, p := range me.pos {
		if me.hidden[i] {
			continue
		}
		for oid, o := range s {
			if oid == id {
				continue
			}
			for j, q := range o.pos {
				if o.hidden[j] {
					continue
				}
				if d := pbc.Distance(p, q, box); d < size {
					ret[pair{id, i, oid, j}] = d
				}
			}
		}
	}
	return ret
}

func contactsToMap(t *testing.T, id int, cs []Contact) map[pair]float64 {
	ret := make(map[pair]float64)
	for _, c := range cs {
		k := pair{id, c.Atom, c.Block, c.Other}
		_, dup := ret[k]
		require.False(t, dup, "pair %v reported twice", k)
		ret[k] = c.Dist
	}
	return ret
}

func TestCloseMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	boxes := []pbc.Box{{30, 30, 30}, {10, 13, 7.5}, {5, 5, 5}}
	for _, box := range boxes {
		size := 2.1
		s := make(store)
		G, err := New(box, size, s.lookup)
		require.NoError(t, err)
		for id := 0; id < 25; id++ {
			p := &points{hidden: map[int]bool{}, radius: 1}
			for i := 0; i < 5; i++ {
				//unwrapped coordinates, some far outside the box
				p.pos = append(p.pos, r3.Vec{
					X: (rng.Float64()*3 - 1) * box[0],
					Y: (rng.Float64()*3 - 1) * box[1],
					Z: (rng.Float64()*3 - 1) * box[2],
				})
			}
			if id%4 == 0 {
				p.hidden[0] = true
			}
			s[id] = p
			require.NoError(t, G.Insert(id, p))
		}
		for id := range s {
			got := contactsToMap(t, id, G.Close(id))
			want := bruteForce(s, id, box, size)
			require.Equal(t, len(want), len(got), "box %v block %d", box, id)
			for k, d := range want {
				gd, ok := got[k]
				require.True(t, ok, "missing pair %v", k)
				assert.InDelta(t, d, gd, 1e-9)
			}
		}
	}
}

func TestCloseAcrossBoundary(t *testing.T) {
	box := pbc.Box{30, 30, 30}
	s := make(store)
	G, err := New(box, 2.0, s.lookup)
	require.NoError(t, err)
	s[0] = &points{pos: []r3.Vec{{X: 0.3, Y: 15, Z: 15}}, radius: 0.5}
	s[1] = &points{pos: []r3.Vec{{X: 29.5, Y: 15, Z: 15}}, radius: 0.5}
	require.NoError(t, G.Insert(0, s[0]))
	require.NoError(t, G.Insert(1, s[1]))
	cs := G.Close(0)
	require.Len(t, cs, 1)
	assert.Equal(t, 1, cs[0].Block)
	assert.InDelta(t, 0.8, cs[0].Dist, 1e-9)
}

func TestCloseShiftedByBox(t *testing.T) {
	//Two methane-like clusters, the second also tried shifted by two box lengths.
	box := pbc.Box{30, 30, 30}
	tetra := func(c r3.Vec) *points {
		p := &points{radius: 1.2}
		p.pos = []r3.Vec{c,
			r3.Add(c, r3.Vec{X: 0.63, Y: 0.63, Z: 0.63}),
			r3.Add(c, r3.Vec{X: -0.63, Y: -0.63, Z: 0.63}),
			r3.Add(c, r3.Vec{X: -0.63, Y: 0.63, Z: -0.63}),
			r3.Add(c, r3.Vec{X: 0.63, Y: -0.63, Z: -0.63}),
		}
		return p
	}
	for _, shift := range []r3.Vec{{}, {X: 60, Y: -60, Z: 30}} {
		s := make(store)
		G, err := New(box, 1.61, s.lookup)
		require.NoError(t, err)
		s[0] = tetra(r3.Vec{X: 1, Y: 1, Z: 1})
		s[1] = tetra(r3.Vec{X: 2.2, Y: 2.2, Z: 2.2}).shift(shift)
		require.NoError(t, G.Insert(0, s[0]))
		require.NoError(t, G.Insert(1, s[1]))
		got := contactsToMap(t, 0, G.Close(0))
		assert.Equal(t, bruteForce(s, 0, box, 1.61), got)
		assert.NotEmpty(t, got)
	}
}

func TestRemoveAndEmptyCells(t *testing.T) {
	box := pbc.Box{20, 20, 20}
	s := make(store)
	G, err := New(box, 2.5, s.lookup)
	require.NoError(t, err)
	s[3] = &points{pos: []r3.Vec{{X: 1}, {X: 1.5}, {X: 10, Y: 10, Z: 10}}, radius: 1}
	require.NoError(t, G.Insert(3, s[3]))
	assert.True(t, G.Contains(3))
	assert.Equal(t, 2, G.Occupied())
	assert.Panics(t, func() { G.Reinsert(3, s[3]) })
	G.Remove(3)
	assert.False(t, G.Contains(3))
	assert.Equal(t, 0, G.Occupied())
	assert.Empty(t, G.neighbors)
	G.Remove(3) //no-op
}

func TestInsertTooLarge(t *testing.T) {
	s := make(store)
	G, err := New(pbc.Box{10, 10, 10}, 2, s.lookup)
	require.NoError(t, err)
	s[0] = &points{pos: []r3.Vec{{}}, radius: 6}
	err = G.Insert(0, s[0])
	require.Error(t, err)
	assert.False(t, G.Contains(0))
}

func TestNeighborsSmallGrid(t *testing.T) {
	s := make(store)
	G, err := New(pbc.Box{4, 10, 10}, 2.5, s.lookup)
	require.NoError(t, err)
	assert.Equal(t, [3]int{1, 4, 4}, G.Dims())
	nb := G.Neighbors(Key{0, 0, 0})
	assert.Len(t, nb, 9)
	seen := map[Key]bool{}
	for _, k := range nb {
		assert.False(t, seen[k])
		seen[k] = true
	}
	assert.True(t, seen[Key{0, 3, 3}])
}

func TestResizeKeepsContacts(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	box := pbc.Box{15, 15, 15}
	s := make(store)
	G, err := New(box, 1.5, s.lookup)
	require.NoError(t, err)
	for id := 0; id < 30; id++ {
		s[id] = &points{pos: []r3.Vec{{X: rng.Float64() * 15, Y: rng.Float64() * 15, Z: rng.Float64() * 15}}, radius: 0.5}
		require.NoError(t, G.Insert(id, s[id]))
	}
	require.NoError(t, G.Resize(box, 3))
	assert.Equal(t, 3.0, G.Size())
	for id := range s {
		assert.Equal(t, bruteForce(s, id, box, 3), contactsToMap(t, id, G.Close(id)))
	}
	require.Error(t, G.Resize(box, -1))
	assert.Equal(t, 3.0, G.Size())
}

func TestNearSameBlock(t *testing.T) {
	s := make(store)
	G, err := New(pbc.Box{20, 20, 20}, 2, s.lookup)
	require.NoError(t, err)
	s[0] = &points{pos: []r3.Vec{{X: 5, Y: 5, Z: 5}, {X: 6, Y: 5, Z: 5}, {X: 12, Y: 5, Z: 5}}, radius: 1}
	s[1] = &points{pos: []r3.Vec{{X: 5, Y: 6.5, Z: 5}}, radius: 1}
	require.NoError(t, G.Insert(0, s[0]))
	require.NoError(t, G.Insert(1, s[1]))
	assert.Len(t, G.Near(0, 0, false), 1)
	assert.Len(t, G.Near(0, 0, true), 2)
	assert.Empty(t, G.Near(0, 2, true))
}
