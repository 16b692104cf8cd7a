/*
 * graph.go, part of gocell.
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

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

//Graph returns the connectivity of the block as a gonum undirected graph.
//Node IDs are atom indexes.
func (B *Block) Graph() *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := range B.adj {
		g.AddNode(simple.Node(i))
	}
	for i, nb := range B.adj {
		for _, j := range nb {
			if i < j {
				g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)})
			}
		}
	}
	return g
}

//Within returns the atoms that are at most n bonds away from atom i,
//not including i itself, sorted.
func (B *Block) Within(i, n int) []int {
	return within(B.Graph(), i, n)
}

func within(g graph.Undirected, i, n int) []int {
	var ret []int
	bf := traverse.BreadthFirst{}
	bf.Walk(g, simple.Node(i), func(node graph.Node, depth int) bool {
		if depth > n {
			return true
		}
		if id := int(node.ID()); id != i {
			ret = append(ret, id)
		}
		return false
	})
	sort.Ints(ret)
	return ret
}

//Neighborhood answers repeated Within queries on the same block
//without rebuilding the graph each time.
type Neighborhood struct {
	g     *simple.UndirectedGraph
	depth int
	cache map[int]map[int]bool
}

//NewNeighborhood prepares Within queries of the given depth on B.
//The block must not change while the Neighborhood is in use.
func (B *Block) NewNeighborhood(depth int) *Neighborhood {
	return &Neighborhood{g: B.Graph(), depth: depth, cache: make(map[int]map[int]bool)}
}

//Close returns true if atoms i and j are at most depth bonds apart.
func (N *Neighborhood) Close(i, j int) bool {
	set, ok := N.cache[i]
	if !ok {
		set = make(map[int]bool)
		for _, k := range within(N.g, i, N.depth) {
			set[k] = true
		}
		N.cache[i] = set
	}
	return set[j]
}
