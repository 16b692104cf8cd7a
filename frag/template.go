/*
 * template.go, part of gocell.
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
	"math"
	"sort"

	v3 "github.com/rmera/gocell/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

//TemplateAtom is one atom of a fragment template.
//A zero Mass or Radius is filled from the element tables by Validate.
type TemplateAtom struct {
	Symbol string  `json:"symbol"`
	Label  string  `json:"label,omitempty"`
	Pos    r3.Vec  `json:"pos"`
	Mass   float64 `json:"mass,omitempty"`
	Radius float64 `json:"radius,omitempty"`
	Charge float64 `json:"charge,omitempty"`
	Body   int     `json:"body,omitempty"` //rigid body index within the fragment
}

//EndGroupDef defines a reactive site of a template. Indices refer to the
//template atoms. Cap is -1 if the site has no capping atom.
type EndGroupDef struct {
	Type  string `json:"type"`
	End   int    `json:"end"`
	Angle int    `json:"angle"`
	Cap   int    `json:"cap"`
}

//Template is an immutable fragment shape, from which Blocks are instantiated.
type Template struct {
	Name      string         `json:"name"`
	Atoms     []TemplateAtom `json:"atoms"`
	Bonds     [][2]int       `json:"bonds,omitempty"`
	EndGroups []EndGroupDef  `json:"endgroups"`
	//MaxBonds limits how many EndGroups of a given type can be bonded
	//in one fragment. Zero or missing means no limit.
	MaxBonds map[string]int `json:"maxbonds,omitempty"`

	radius    float64
	validated bool
}

//Validate checks the template, fills missing masses and radii from the
//element tables, and guesses the internal bonds if none were given.
//It must be called before the template is used. It is safe to call it more than once.
func (T *Template) Validate() error {
	if T.validated {
		return nil
	}
	if T.Name == "" {
		return newError("template without a name", "Validate")
	}
	if len(T.Atoms) == 0 {
		return newError(fmt.Sprintf("template %s has no atoms", T.Name), "Validate")
	}
	for i := range T.Atoms {
		at := &T.Atoms[i]
		at.Symbol = NormalizeSymbol(at.Symbol)
		if at.Label == "" {
			at.Label = at.Symbol
		}
		if at.Mass == 0 {
			m, ok := Mass(at.Symbol)
			if !ok {
				return newError(fmt.Sprintf("template %s: no mass for element %q (atom %d)", T.Name, at.Symbol, i), "Validate")
			}
			at.Mass = m
		}
		if at.Radius == 0 {
			r, ok := CovalentRadius(at.Symbol)
			if !ok {
				return newError(fmt.Sprintf("template %s: no covalent radius for element %q (atom %d)", T.Name, at.Symbol, i), "Validate")
			}
			at.Radius = r
		}
	}
	n := len(T.Atoms)
	in := func(i int) bool { return i >= 0 && i < n }
	type site struct {
		typ      string
		end, cap int
	}
	seen := make(map[site]bool)
	for k, e := range T.EndGroups {
		if e.Type == "" {
			return newError(fmt.Sprintf("template %s: EndGroup %d has no type", T.Name, k), "Validate")
		}
		if !in(e.End) || !in(e.Angle) || (e.Cap != -1 && !in(e.Cap)) {
			return newError(fmt.Sprintf("template %s: EndGroup %d has atom indexes out of range", T.Name, k), "Validate")
		}
		if e.Angle == e.End || e.Cap == e.End {
			return newError(fmt.Sprintf("template %s: EndGroup %d uses its end atom as angle or cap atom", T.Name, k), "Validate")
		}
		key := site{e.Type, e.End, e.Cap}
		if seen[key] {
			return newError(fmt.Sprintf("template %s: duplicated EndGroup %s on atom %d", T.Name, e.Type, e.End), "Validate")
		}
		seen[key] = true
	}
	for t, m := range T.MaxBonds {
		if m < 0 {
			return newError(fmt.Sprintf("template %s: negative bond limit for %s", T.Name, t), "Validate")
		}
		if !T.hasLocalType(t) {
			return newError(fmt.Sprintf("template %s: bond limit for unknown EndGroup type %s", T.Name, t), "Validate")
		}
	}
	if T.Bonds == nil {
		bonds, err := AssignBonds(T.Atoms)
		if err != nil {
			return errDecorate(err, "Validate")
		}
		T.Bonds = bonds
	}
	for _, b := range T.Bonds {
		if !in(b[0]) || !in(b[1]) || b[0] == b[1] {
			return newError(fmt.Sprintf("template %s: invalid bond %v", T.Name, b), "Validate")
		}
	}
	T.radius = boundingRadius(T.coords(), func(i int) float64 { return T.Atoms[i].Radius })
	T.validated = true
	return nil
}

func (T *Template) hasLocalType(t string) bool {
	for _, e := range T.EndGroups {
		if e.Type == t {
			return true
		}
	}
	return false
}

//HasEndGroupType returns true if the template has an EndGroup of the given
//type, which is the local type, not prefixed with the template name.
func (T *Template) HasEndGroupType(t string) bool {
	return T.hasLocalType(t)
}

//EndGroupTypes returns the full types ("template:endgroup") of the template's
//EndGroups, sorted and without repetitions.
func (T *Template) EndGroupTypes() []string {
	set := make(map[string]bool)
	for _, e := range T.EndGroups {
		set[FullType(T.Name, e.Type)] = true
	}
	ret := make([]string, 0, len(set))
	for k := range set {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

//Symbols returns the element symbols present in the template, without repetitions.
func (T *Template) Symbols() []string {
	set := make(map[string]bool)
	ret := make([]string, 0, 4)
	for _, a := range T.Atoms {
		if !set[a.Symbol] {
			set[a.Symbol] = true
			ret = append(ret, a.Symbol)
		}
	}
	return ret
}

//MaxAtomRadius returns the largest atom radius in the template.
func (T *Template) MaxAtomRadius() float64 {
	var m float64
	for _, a := range T.Atoms {
		m = math.Max(m, a.Radius)
	}
	return m
}

//Radius returns the bounding radius of the template, i.e. the largest
//distance from the centroid to an atom, plus the radius of that atom.
//It is only meaningful after Validate.
func (T *Template) Radius() float64 { return T.radius }

//Len returns the number of atoms in the template.
func (T *Template) Len() int { return len(T.Atoms) }

func (T *Template) coords() *v3.Matrix {
	data := make([]float64, 0, 3*len(T.Atoms))
	for _, a := range T.Atoms {
		data = append(data, a.Pos.X, a.Pos.Y, a.Pos.Z)
	}
	c, err := v3.NewMatrix(data)
	if err != nil {
		//3 values per atom, always.
		panic(err)
	}
	return c
}

//boundingRadius returns the largest distance from the centroid of c to
//one of its points, plus the radius of that point.
func boundingRadius(c *v3.Matrix, radius func(int) float64) float64 {
	if c.NVecs() == 0 {
		return 0
	}
	cen := c.Centroid()
	var r float64
	for i := 0; i < c.NVecs(); i++ {
		r = math.Max(r, r3.Norm(r3.Sub(c.Vec(i), cen))+radius(i))
	}
	return r
}

//FullType joins a template name and a local EndGroup type.
func FullType(fragment, endGroup string) string {
	return fragment + ":" + endGroup
}

func errDecorate(err error, caller string) error {
	if e, ok := err.(*Error); ok {
		e.Decorate(caller)
	}
	return err
}
