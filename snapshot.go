/*
 * snapshot.go, part of gocell.
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
	"github.com/rmera/gocell/pbc"
	"gonum.org/v1/gonum/spatial/r3"
)

//Snapshot holds the atoms of the cell in the form an MD engine needs them. Only visible
//atoms are included, block by block, in the order of the block handles.
type Snapshot struct {
	Box      pbc.Box  `json:"box"`
	Wrapped  bool     `json:"wrapped"`
	Centered bool     `json:"centered"`
	Pos      []r3.Vec `json:"pos"`
	//Images are the periodic images of wrapped positions, all zero for unwrapped ones.
	Images  [][3]int  `json:"images"`
	Symbols []string  `json:"symbols"`
	Labels  []string  `json:"labels"`
	Masses  []float64 `json:"masses"`
	Charges []float64 `json:"charges"`
	//Bodies holds the rigid body index of each atom, unique in the whole cell.
	Bodies        []int      `json:"bodies"`
	Bonds         [][2]int   `json:"bonds"`
	BondTypes     []string   `json:"bond_types"`
	Angles        [][3]int   `json:"angles"`
	AngleTypes    []string   `json:"angle_types"`
	Dihedrals     [][4]int   `json:"dihedrals"`
	DihedralTypes []string   `json:"dihedral_types"`
}

//Len returns the number of atoms in the snapshot.
func (S *Snapshot) Len() int { return len(S.Pos) }

//ExportOptions are the options for Cell.Export.
type ExportOptions struct {
	//Wrapped puts the positions inside the box, and reports the images.
	Wrapped bool
	//Centered uses the [-L/2, L/2) convention for wrapped positions, instead of [0, L).
	Centered bool
	//Rigid only includes the bonds, angles and dihedrals that involve a bond between
	//two fragments, as the fragments are treated as rigid bodies.
	Rigid bool
}

//Export returns a snapshot of the cell.
func (C *Cell) Export(o ExportOptions) *Snapshot {
	S := &Snapshot{Box: C.box, Wrapped: o.Wrapped, Centered: o.Centered}
	bodies := 0
	for _, b := range C.Blocks() {
		offset := S.Len()
		global := make(map[int]int, b.NumAtoms())
		bodyIdx := make(map[[2]int]int)
		for i, a := range b.Atoms {
			if !a.Visible {
				continue
			}
			global[i] = offset + len(global)
			p := b.Position(i)
			var img [3]int
			if o.Wrapped {
				p, img = pbc.WrapVec(p, C.box, o.Centered)
			}
			key := [2]int{a.Frag, a.Body}
			bi, ok := bodyIdx[key]
			if !ok {
				bi = bodies
				bodyIdx[key] = bi
				bodies++
			}
			S.Pos = append(S.Pos, p)
			S.Images = append(S.Images, img)
			S.Symbols = append(S.Symbols, a.Symbol)
			S.Labels = append(S.Labels, a.Label)
			S.Masses = append(S.Masses, a.Mass)
			S.Charges = append(S.Charges, a.Charge)
			S.Bodies = append(S.Bodies, bi)
		}
		exportTerms(S, b, global, o.Rigid)
	}
	return S
}

//exportTerms adds the bonds, angles and dihedrals of b to S. global maps the visible
//atoms of b to their index in S.
func exportTerms(S *Snapshot, b *frag.Block, global map[int]int, rigid bool) {
	visible := func(i int) bool { _, ok := global[i]; return ok }
	inter := func(i, j int) bool { return b.Atoms[i].Frag != b.Atoms[j].Frag }
	label := func(i int) string { return b.Atoms[i].Label }
	neighbors := func(i int) []int {
		var ret []int
		for _, j := range b.Bonded(i) {
			if visible(j) {
				ret = append(ret, j)
			}
		}
		sort.Ints(ret)
		return ret
	}
	for _, e := range b.Edges() {
		i, j := e[0], e[1]
		if !visible(i) || !visible(j) || (rigid && !inter(i, j)) {
			continue
		}
		S.Bonds = append(S.Bonds, [2]int{global[i], global[j]})
		S.BondTypes = append(S.BondTypes, termType(label(i), label(j)))
	}
	for j := range b.Atoms {
		if !visible(j) {
			continue
		}
		nb := neighbors(j)
		for x := 0; x < len(nb); x++ {
			for y := x + 1; y < len(nb); y++ {
				i, k := nb[x], nb[y]
				if rigid && !inter(i, j) && !inter(j, k) {
					continue
				}
				S.Angles = append(S.Angles, [3]int{global[i], global[j], global[k]})
				S.AngleTypes = append(S.AngleTypes, termType(label(i), label(j), label(k)))
			}
		}
	}
	for _, e := range b.Edges() {
		j, k := e[0], e[1]
		if !visible(j) || !visible(k) {
			continue
		}
		for _, i := range neighbors(j) {
			if i == k {
				continue
			}
			for _, l := range neighbors(k) {
				if l == j || l == i {
					continue
				}
				if rigid && !inter(i, j) && !inter(j, k) && !inter(k, l) {
					continue
				}
				S.Dihedrals = append(S.Dihedrals, [4]int{global[i], global[j], global[k], global[l]})
				S.DihedralTypes = append(S.DihedralTypes, termType(label(i), label(j), label(k), label(l)))
			}
		}
	}
}

//termType joins labels with "-", in the direction that sorts first, so that
//a term and its reverse have the same type.
func termType(labels ...string) string {
	fw := strings.Join(labels, "-")
	rev := make([]string, len(labels))
	for i, l := range labels {
		rev[len(labels)-1-i] = l
	}
	bw := strings.Join(rev, "-")
	if bw < fw {
		return bw
	}
	return fw
}

//Import sets the positions of the visible atoms of the cell from S, which must have
//the atoms in the order given by Export, for instance after an external MD run. Wrapped
//positions are unwrapped with their images. The grid is rebuilt.
func (C *Cell) Import(S *Snapshot) error {
	if S == nil {
		return snapshotError("nil snapshot", "Import")
	}
	if n := C.NumAtoms(); n != len(S.Pos) {
		return snapshotError(fmt.Sprintf("the snapshot has %d atoms, the cell has %d visible atoms", len(S.Pos), n), "Import")
	}
	if S.Wrapped && len(S.Images) != len(S.Pos) {
		return snapshotError(fmt.Sprintf("%d images given for %d atoms", len(S.Images), len(S.Pos)), "Import")
	}
	k := 0
	for _, b := range C.Blocks() {
		for i := 0; i < b.NumAtoms(); i++ {
			if !b.Visible(i) {
				continue
			}
			p := S.Pos[k]
			if S.Wrapped {
				p = pbc.UnwrapVec(p, S.Images[k], C.box)
			}
			b.Coords.SetVec(i, p)
			k++
		}
	}
	C.repopulate()
	return nil
}
