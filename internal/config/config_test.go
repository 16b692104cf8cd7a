/*
 * config_test.go, part of gocell.
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

package config

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/gocell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tetraYAML = `
box: [20, 20, 20]
params:
  atom_margin: 0
  seed: 3
templates:
  - name: tet
    atoms:
      - {symbol: C, pos: [0, 0, 0], radius: 0.77}
      - {symbol: C, pos: [0.8833, 0.8833, 0.8833], radius: 0.77}
      - {symbol: C, pos: [0.8833, -0.8833, -0.8833], radius: 0.77}
      - {symbol: C, pos: [-0.8833, 0.8833, -0.8833], radius: 0.77}
      - {symbol: C, pos: [-0.8833, -0.8833, 0.8833], radius: 0.77}
    endgroups:
      - {type: a, end: 1, angle: 0}
      - {type: a, end: 2, angle: 0}
      - {type: a, end: 3, angle: 0}
      - {type: a, end: 4, angle: 0}
bond_types:
  - tet:a-tet:a
steps:
  - {kind: seed, n: 4, fragment: tet, center: true}
  - {kind: grow, n: 2}
  - {kind: join, n: 1}
  - {kind: zip, bond_margin: 0}
output:
  state: cell.json.zst
log:
  level: debug
`

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "gocell.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, tetraYAML))
	require.NoError(t, err)
	assert.Equal(t, [3]float64{20, 20, 20}, cfg.Box)
	assert.Equal(t, 0.0, cfg.Params.AtomMargin, "an explicit zero is kept")
	assert.Equal(t, DefaultBondMargin, cfg.Params.BondMargin)
	assert.Equal(t, DefaultBondAngleMargin, cfg.Params.BondAngleMargin)
	assert.Equal(t, int64(3), cfg.Params.Seed)
	require.Len(t, cfg.Templates, 1)
	assert.Len(t, cfg.Templates[0].Atoms, 5)
	assert.Nil(t, cfg.Templates[0].EndGroups[0].Cap)
	require.Len(t, cfg.Steps, 4)
	assert.Equal(t, "zip", cfg.Steps[3].Kind)
	require.NotNil(t, cfg.Steps[3].BondMargin, "an explicit zero margin is kept")
	assert.Equal(t, 0.0, *cfg.Steps[3].BondMargin)
	assert.Nil(t, cfg.Steps[3].AngleMargin)
	assert.True(t, cfg.Steps[0].Center)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Log.Format)
	assert.InDelta(t, 15*math.Pi/180, cfg.CellParams().BondAngleMargin, 1e-12)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("GOCELL_PARAMS_SEED", "42")
	t.Setenv("GOCELL_LOG_LEVEL", "warn")
	cfg, err := Load(writeConfig(t, tetraYAML))
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Params.Seed)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	_, err = Load(writeConfig(t, "box: [10, 10]\ntemplates: [{name: x}]\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{Box: [3]float64{10, 10, 10}, Templates: []TemplateConfig{{Name: "x"}}}
		ApplyDefaults(c)
		return c
	}
	require.NoError(t, valid().Validate())
	cases := map[string]func(*Config){
		"box":          func(c *Config) { c.Box[1] = 0 },
		"no templates": func(c *Config) { c.Templates = nil },
		"nameless":     func(c *Config) { c.Templates[0].Name = "" },
		"kind":         func(c *Config) { c.Steps = []StepConfig{{Kind: "shake", N: 1}} },
		"n":            func(c *Config) { c.Steps = []StepConfig{{Kind: "grow"}} },
		"zone":         func(c *Config) { c.Steps = []StepConfig{{Kind: "seed", N: 1, Zone: []float64{1, 2}}} },
		"cap":          func(c *Config) { c.Steps = []StepConfig{{Kind: "cap"}} },
		"ratio":        func(c *Config) { c.Ratios = map[string]float64{"x": -1} },
		"log level":    func(c *Config) { c.Log.Level = "loud" },
		"log format":   func(c *Config) { c.Log.Format = "xml" },
	}
	for name, mutate := range cases {
		c := valid()
		mutate(c)
		assert.Error(t, c.Validate(), name)
	}
}

func TestApplyDefaults(t *testing.T) {
	c := &Config{}
	ApplyDefaults(c)
	assert.Equal(t, DefaultAtomMargin, c.Params.AtomMargin)
	assert.Equal(t, DefaultZipAngleMargin, c.Params.ZipAngleMargin)
	assert.Equal(t, int64(DefaultSeed), c.Params.Seed)
	assert.Equal(t, DefaultLogLevel, c.Log.Level)
	ApplyDefaults(nil)
}

func TestBuildAndRun(t *testing.T) {
	cfg, err := Load(writeConfig(t, tetraYAML))
	require.NoError(t, err)
	cfg.Params.AtomMargin = DefaultAtomMargin
	C, err := cfg.Build()
	require.NoError(t, err)
	assert.True(t, C.BondTable().Allowed("tet:a", "tet:a"))
	n, err := cfg.Steps[0].Run(C)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	for _, s := range cfg.Steps[1:] {
		_, err := s.Run(C)
		require.NoError(t, err)
	}
	assert.Len(t, C.Steps(), 4)
	assert.Equal(t, 6, C.NumFragments())
	_, err = (&StepConfig{Kind: "shake"}).Run(C)
	assert.Error(t, err)
}

const methylYAML = `
  - name: ch4
    atoms:
      - {symbol: C, pos: [0, 0, 0]}
      - {symbol: H, pos: [0.6293, 0.6293, 0.6293]}
      - {symbol: H, pos: [0.6293, -0.6293, -0.6293]}
      - {symbol: H, pos: [-0.6293, 0.6293, -0.6293]}
      - {symbol: H, pos: [-0.6293, -0.6293, 0.6293]}
    endgroups:
      - {type: c, end: 0, angle: 2, cap: 1}
      - {type: c, end: 0, angle: 3, cap: 2}
      - {type: c, end: 0, angle: 4, cap: 3}
      - {type: c, end: 0, angle: 1, cap: 4}
    max_bonds: {c: 1}
`

func TestCapStep(t *testing.T) {
	y := strings.Replace(tetraYAML, "bond_types:\n", methylYAML+"bond_types:\n  - tet:a-ch4:c\n", 1)
	cfg, err := Load(writeConfig(t, y))
	require.NoError(t, err)
	require.Len(t, cfg.Templates, 2)
	cfg.Params.AtomMargin = DefaultAtomMargin
	C, err := cfg.Build()
	require.NoError(t, err)
	n, err := (&StepConfig{Kind: "seed", N: 1, Fragment: "tet", Center: true}).Run(C)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	n, err = (&StepConfig{Kind: "cap", Fragment: "ch4", EndGroupTypes: []string{"tet:a"}}).Run(C)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, map[string]int{"tet": 1, "ch4": 4}, C.FragmentTypeCounts())
	_, err = (&StepConfig{Kind: "cap", Fragment: "nope"}).Run(C)
	assert.ErrorIs(t, err, gocell.ErrConfig)
}

func TestBuildErrors(t *testing.T) {
	cfg, err := Load(writeConfig(t, tetraYAML))
	require.NoError(t, err)
	cfg.BondTypes = append(cfg.BondTypes, "tet:a-tet:q")
	_, err = cfg.Build()
	assert.ErrorIs(t, err, gocell.ErrConfig)

	cfg.BondTypes = nil
	cfg.Templates[0].Atoms[1].Pos = []float64{1, 2}
	_, err = cfg.Build()
	assert.Error(t, err)
}

func TestTemplateFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, tetraYAML))
	require.NoError(t, err)
	T, err := cfg.Templates[0].Template()
	require.NoError(t, err)
	data, err := json.Marshal(T)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "tet.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	tc := TemplateConfig{Name: "tet2", File: path}
	F, err := tc.Template()
	require.NoError(t, err)
	assert.Equal(t, "tet2", F.Name)
	assert.Len(t, F.Atoms, 5)
	assert.Equal(t, -1, F.EndGroups[0].Cap)
	require.NoError(t, F.Validate())
}
