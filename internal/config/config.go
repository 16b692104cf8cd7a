/*
 * config.go, part of gocell.
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

//Package config reads the description of a cell build: the box, the tolerances,
//the fragment templates, the allowed bond types and the sequence of drivers to run.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/rmera/gocell"
	"github.com/rmera/gocell/frag"
	"github.com/rmera/gocell/logging"
	"gonum.org/v1/gonum/spatial/r3"
)

//Config is the root of a build description.
type Config struct {
	Box       [3]float64       `mapstructure:"box"`
	Params    ParamsConfig     `mapstructure:"params"`
	Templates []TemplateConfig `mapstructure:"templates"`
	BondTypes []string         `mapstructure:"bond_types"`

	//Ratios are the target fractions of each fragment type for Grow. Empty means
	//library EndGroups are chosen uniformly.
	Ratios map[string]float64 `mapstructure:"ratios"`
	Steps  []StepConfig       `mapstructure:"steps"`
	Output OutputConfig       `mapstructure:"output"`
	Log    logging.Config     `mapstructure:"log"`
}

//ParamsConfig are the cell tolerances. Angles are in degrees here.
type ParamsConfig struct {
	AtomMargin      float64 `mapstructure:"atom_margin"`
	BondMargin      float64 `mapstructure:"bond_margin"`
	BondAngleMargin float64 `mapstructure:"bond_angle_margin"`
	ZipBondMargin   float64 `mapstructure:"zip_bond_margin"`
	ZipAngleMargin  float64 `mapstructure:"zip_angle_margin"`
	Seed            int64   `mapstructure:"seed"`
}

//TemplateConfig describes a fragment template, either inline or in a JSON file
//with the format written by gocell.
type TemplateConfig struct {
	Name      string           `mapstructure:"name"`
	File      string           `mapstructure:"file"`
	Atoms     []AtomConfig     `mapstructure:"atoms"`
	Bonds     [][2]int         `mapstructure:"bonds"`
	EndGroups []EndGroupConfig `mapstructure:"endgroups"`
	MaxBonds  map[string]int   `mapstructure:"max_bonds"`
}

type AtomConfig struct {
	Symbol string    `mapstructure:"symbol"`
	Label  string    `mapstructure:"label"`
	Pos    []float64 `mapstructure:"pos"`
	Mass   float64   `mapstructure:"mass"`
	Radius float64   `mapstructure:"radius"`
	Charge float64   `mapstructure:"charge"`
	Body   int       `mapstructure:"body"`
}

//EndGroupConfig defines an EndGroup. A missing cap means the EndGroup has none.
type EndGroupConfig struct {
	Type  string `mapstructure:"type"`
	End   int    `mapstructure:"end"`
	Angle int    `mapstructure:"angle"`
	Cap   *int   `mapstructure:"cap"`
}

//StepConfig is one driver call. Kind is seed, grow, join, zip or cap. Not every field
//applies to every kind.
type StepConfig struct {
	Kind     string `mapstructure:"kind"`
	N        int    `mapstructure:"n"`
	Fragment string `mapstructure:"fragment"`
	MaxTries int    `mapstructure:"max_tries"`
	Center   bool   `mapstructure:"center"`

	//Zone is xmin, ymin, zmin, xmax, ymax, zmax.
	Zone             []float64 `mapstructure:"zone"`
	CellEndGroups    []string  `mapstructure:"cell_endgroups"`
	LibraryEndGroups []string  `mapstructure:"library_endgroups"`
	Dihedral         *float64  `mapstructure:"dihedral"` //degrees
	BondMargin       *float64  `mapstructure:"bond_margin"`
	AngleMargin      *float64  `mapstructure:"angle_margin"` //degrees
	EndGroupTypes    []string  `mapstructure:"endgroup_types"`
}

//OutputConfig names the files written after a build. Empty names are skipped.
type OutputConfig struct {
	State      string `mapstructure:"state"`      //the cell, compressed if it ends in .zst
	Snapshot   string `mapstructure:"snapshot"`   //JSON snapshot for MD
	Trajectory string `mapstructure:"trajectory"` //a frame with the wrapped positions after each step
	Wrapped    bool   `mapstructure:"wrapped"`
	Rigid      bool   `mapstructure:"rigid"`
	Steps      string `mapstructure:"steps"`   //CSV with one row per step
	Plot       string `mapstructure:"plot"`    //growth plot, format from the extension
	Metrics    string `mapstructure:"metrics"` //Prometheus text file
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }

//CellParams converts the tolerances to the gocell form.
func (c *Config) CellParams() gocell.Params {
	p := c.Params
	return gocell.Params{
		AtomMargin:      p.AtomMargin,
		BondMargin:      p.BondMargin,
		BondAngleMargin: deg2rad(p.BondAngleMargin),
		ZipBondMargin:   p.ZipBondMargin,
		ZipAngleMargin:  deg2rad(p.ZipAngleMargin),
		Seed:            p.Seed,
	}
}

//Template builds the fragment template. Templates read from a file take the name
//given in the configuration, if any.
func (t *TemplateConfig) Template() (*frag.Template, error) {
	if t.File != "" {
		data, err := os.ReadFile(t.File)
		if err != nil {
			return nil, fmt.Errorf("config: reading template file: %w", err)
		}
		T := new(frag.Template)
		if err := json.Unmarshal(data, T); err != nil {
			return nil, fmt.Errorf("config: decoding template file %q: %w", t.File, err)
		}
		if t.Name != "" {
			T.Name = t.Name
		}
		return T, nil
	}
	T := &frag.Template{Name: t.Name, Bonds: t.Bonds, MaxBonds: t.MaxBonds}
	for i, a := range t.Atoms {
		if len(a.Pos) != 3 {
			return nil, fmt.Errorf("config: atom %d of template %s needs 3 coordinates, got %d", i, t.Name, len(a.Pos))
		}
		T.Atoms = append(T.Atoms, frag.TemplateAtom{
			Symbol: a.Symbol,
			Label:  a.Label,
			Pos:    r3.Vec{X: a.Pos[0], Y: a.Pos[1], Z: a.Pos[2]},
			Mass:   a.Mass,
			Radius: a.Radius,
			Charge: a.Charge,
			Body:   a.Body,
		})
	}
	for _, e := range t.EndGroups {
		cp := -1
		if e.Cap != nil {
			cp = *e.Cap
		}
		T.EndGroups = append(T.EndGroups, frag.EndGroupDef{Type: e.Type, End: e.End, Angle: e.Angle, Cap: cp})
	}
	return T, nil
}

//Build returns a cell with the box, tolerances, library and bond types of the configuration.
func (c *Config) Build(opts ...gocell.Option) (*gocell.Cell, error) {
	if len(c.Ratios) > 0 {
		opts = append(opts, gocell.WithSelector(gocell.RatioSelector{Targets: c.Ratios}))
	}
	C, err := gocell.New(c.Box, c.CellParams(), opts...)
	if err != nil {
		return nil, err
	}
	for i := range c.Templates {
		T, err := c.Templates[i].Template()
		if err != nil {
			return nil, err
		}
		if err := C.AddTemplate(T); err != nil {
			return nil, err
		}
	}
	for _, b := range c.BondTypes {
		if err := C.AddBondType(b); err != nil {
			return nil, err
		}
	}
	return C, nil
}

//Run applies the step to C, and returns the number of blocks, joins or bonds added.
func (s *StepConfig) Run(C *gocell.Cell) (int, error) {
	var dihedral *float64
	if s.Dihedral != nil {
		d := deg2rad(*s.Dihedral)
		dihedral = &d
	}
	switch s.Kind {
	case "seed":
		o := gocell.SeedOptions{MaxTries: s.MaxTries, Center: s.Center}
		if len(s.Zone) == 6 {
			z := s.Zone
			o.Zone = &gocell.Zone{Min: r3.Vec{X: z[0], Y: z[1], Z: z[2]}, Max: r3.Vec{X: z[3], Y: z[4], Z: z[5]}}
		}
		return C.Seed(s.N, s.Fragment, o)
	case "grow":
		return C.Grow(s.N, gocell.GrowOptions{MaxTries: s.MaxTries, CellEndGroups: s.CellEndGroups, LibraryEndGroups: s.LibraryEndGroups, Dihedral: dihedral})
	case "join":
		return C.Join(s.N, gocell.JoinOptions{MaxTries: s.MaxTries, CellEndGroups: s.CellEndGroups, Dihedral: dihedral})
	case "zip":
		o := gocell.ZipOptions{BondMargin: s.BondMargin, EndGroupTypes: s.EndGroupTypes}
		if s.AngleMargin != nil {
			a := deg2rad(*s.AngleMargin)
			o.AngleMargin = &a
		}
		return C.Zip(o)
	case "cap":
		return C.Cap(s.Fragment, s.EndGroupTypes...)
	}
	return 0, fmt.Errorf("config: unknown step kind %q", s.Kind)
}

//Validate checks the configuration. Templates and bond types are checked when the cell is built.
func (c *Config) Validate() error {
	for i, d := range c.Box {
		if !(d > 0) {
			return fmt.Errorf("config: box[%d] must be positive, got %v", i, d)
		}
	}
	if len(c.Templates) == 0 {
		return fmt.Errorf("config: at least one template is required")
	}
	for i, t := range c.Templates {
		if t.Name == "" && t.File == "" {
			return fmt.Errorf("config: template %d needs a name or a file", i)
		}
	}
	for i, s := range c.Steps {
		switch s.Kind {
		case "seed", "grow", "join":
			if s.N < 1 {
				return fmt.Errorf("config: step %d (%s) needs n >= 1, got %d", i, s.Kind, s.N)
			}
		case "zip":
		case "cap":
			if s.Fragment == "" {
				return fmt.Errorf("config: step %d (cap) needs the cap fragment", i)
			}
		default:
			return fmt.Errorf("config: step %d has unknown kind %q; expected seed|grow|join|zip|cap", i, s.Kind)
		}
		if len(s.Zone) != 0 && len(s.Zone) != 6 {
			return fmt.Errorf("config: step %d zone needs 6 values, got %d", i, len(s.Zone))
		}
	}
	for k, v := range c.Ratios {
		if v < 0 {
			return fmt.Errorf("config: ratio for %s can't be negative", k)
		}
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}
	return nil
}
