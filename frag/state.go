/*
 * state.go, part of gocell.
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

	v3 "github.com/rmera/gocell/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

//AtomState is the serializable form of an Atom and its position.
type AtomState struct {
	Symbol  string  `json:"symbol"`
	Label   string  `json:"label"`
	Radius  float64 `json:"radius"`
	Mass    float64 `json:"mass"`
	Charge  float64 `json:"charge"`
	Body    int     `json:"body"`
	Frag    int     `json:"frag"`
	Visible bool    `json:"visible"`
	Pos     r3.Vec  `json:"pos"`
}

//FragmentState is the serializable form of a Fragment.
type FragmentState struct {
	Template string `json:"template"`
	Start    int    `json:"start"`
	Bonded   []bool `json:"bonded"`
	Blocked  []bool `json:"blocked"`
}

//BondState refers to the two EndGroups of a bond as fragment and EndGroup indexes.
type BondState struct {
	Frag1     int `json:"frag1"`
	EndGroup1 int `json:"endgroup1"`
	Frag2     int `json:"frag2"`
	EndGroup2 int `json:"endgroup2"`
}

//BlockState is the serializable form of a Block.
type BlockState struct {
	ID        int             `json:"id"`
	Atoms     []AtomState     `json:"atoms"`
	Fragments []FragmentState `json:"fragments"`
	Edges     [][2]int        `json:"edges"`
	Bonds     []BondState     `json:"bonds"`
}

//State returns the serializable form of the block.
func (B *Block) State() *BlockState {
	S := &BlockState{ID: B.ID, Edges: B.Edges()}
	S.Atoms = make([]AtomState, len(B.Atoms))
	for i, a := range B.Atoms {
		S.Atoms[i] = AtomState{a.Symbol, a.Label, a.Radius, a.Mass, a.Charge, a.Body, a.Frag, a.Visible, B.Position(i)}
	}
	fidx := make(map[*Fragment]int, len(B.Fragments))
	S.Fragments = make([]FragmentState, len(B.Fragments))
	for i, f := range B.Fragments {
		fidx[f] = i
		fs := FragmentState{Template: f.Type(), Start: f.Start}
		for _, e := range f.EndGroups {
			fs.Bonded = append(fs.Bonded, e.bonded)
			fs.Blocked = append(fs.Blocked, e.blocked)
		}
		S.Fragments[i] = fs
	}
	S.Bonds = make([]BondState, len(B.Bonds))
	for i, b := range B.Bonds {
		S.Bonds[i] = BondState{fidx[b.EndGroup1.Frag], b.EndGroup1.index, fidx[b.EndGroup2.Frag], b.EndGroup2.index}
	}
	return S
}

//FromState rebuilds a block. library must return the template with the given name, or nil.
func FromState(S *BlockState, library func(string) *Template) (*Block, error) {
	n := len(S.Atoms)
	B := &Block{ID: S.ID, Coords: v3.Zeros(n), Atoms: make([]*Atom, n), adj: make([][]int, n)}
	for i, a := range S.Atoms {
		if a.Frag < 0 || a.Frag >= len(S.Fragments) {
			return nil, newError(fmt.Sprintf("block %d: atom %d refers to fragment %d", S.ID, i, a.Frag), "FromState")
		}
		B.Atoms[i] = &Atom{a.Symbol, a.Label, a.Radius, a.Mass, a.Charge, a.Body, a.Frag, a.Visible}
		B.Coords.SetVec(i, a.Pos)
	}
	for _, e := range S.Edges {
		if e[0] < 0 || e[0] >= n || e[1] < 0 || e[1] >= n {
			return nil, newError(fmt.Sprintf("block %d: edge %v out of range", S.ID, e), "FromState")
		}
		B.link(e[0], e[1])
	}
	for i, fs := range S.Fragments {
		t := library(fs.Template)
		if t == nil {
			return nil, newError(fmt.Sprintf("block %d: unknown template %s", S.ID, fs.Template), "FromState")
		}
		if err := t.Validate(); err != nil {
			return nil, errDecorate(err, "FromState")
		}
		if fs.Start < 0 || fs.Start+t.Len() > n || len(fs.Bonded) != len(t.EndGroups) || len(fs.Blocked) != len(t.EndGroups) {
			return nil, newError(fmt.Sprintf("block %d: fragment %d does not match template %s", S.ID, i, t.Name), "FromState")
		}
		f := newFragment(t, fs.Start)
		f.Block = S.ID
		for k, e := range f.EndGroups {
			e.bonded = fs.Bonded[k]
			e.blocked = fs.Blocked[k]
			if e.bonded {
				f.bonded[e.def.Type]++
			}
		}
		B.Fragments = append(B.Fragments, f)
	}
	for _, bs := range S.Bonds {
		eg := func(fi, ei int) (*EndGroup, error) {
			if fi < 0 || fi >= len(B.Fragments) || ei < 0 || ei >= len(B.Fragments[fi].EndGroups) {
				return nil, newError(fmt.Sprintf("block %d: bond refers to a missing EndGroup", S.ID), "FromState")
			}
			return B.Fragments[fi].EndGroups[ei], nil
		}
		e1, err := eg(bs.Frag1, bs.EndGroup1)
		if err != nil {
			return nil, err
		}
		e2, err := eg(bs.Frag2, bs.EndGroup2)
		if err != nil {
			return nil, err
		}
		if !e1.bonded || !e2.bonded {
			return nil, newError(fmt.Sprintf("block %d: bond between EndGroups not marked as bonded", S.ID), "FromState")
		}
		B.Bonds = append(B.Bonds, &Bond{EndGroup1: e1, EndGroup2: e2})
	}
	return B, nil
}
