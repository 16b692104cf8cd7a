/*
 * cli_test.go, part of gocell.
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

package cli

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/gocell"
	"github.com/rmera/gocell/traj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const buildYAML = `
box: [20, 20, 20]
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
bond_types: [tet:a-tet:a]
steps:
  - {kind: seed, n: 3, fragment: tet, center: true}
  - {kind: grow, n: 3}
  - {kind: zip}
log:
  level: error
`

func run(t *testing.T, args ...string) string {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute(), out.String())
	return out.String()
}

func TestBuildAndInspect(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "gocell.yaml")
	require.NoError(t, os.WriteFile(conf, []byte(buildYAML), 0o644))
	state := filepath.Join(dir, "cell.json.zst")
	out := run(t, "build", "--config", conf, "--state", state, "--seed", "5")
	assert.Contains(t, out, "fragments 6")

	snap := filepath.Join(dir, "snap.json")
	plot := filepath.Join(dir, "growth.png")
	out = run(t, "inspect", state, "--steps", "--snapshot", snap, "--wrapped", "--plot", plot)
	assert.Contains(t, out, "fragments 6")
	assert.Contains(t, out, "grow")
	data, err := os.ReadFile(snap)
	require.NoError(t, err)
	var S gocell.Snapshot
	require.NoError(t, json.Unmarshal(data, &S))
	assert.Equal(t, 30, S.Len())
	assert.True(t, S.Wrapped)
	_, err = os.Stat(plot)
	assert.NoError(t, err)
}

func TestBuildOutputs(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "gocell.yaml")
	y := buildYAML + "output:\n" +
		"  snapshot: " + filepath.Join(dir, "s.json") + "\n" +
		"  rigid: true\n" +
		"  steps: " + filepath.Join(dir, "steps.csv") + "\n" +
		"  metrics: " + filepath.Join(dir, "gocell.prom") + "\n" +
		"  trajectory: " + filepath.Join(dir, "build.traj.zst") + "\n"
	require.NoError(t, os.WriteFile(conf, []byte(y), 0o644))
	run(t, "build", "-c", conf, "--log-format", "json")

	f, err := os.Open(filepath.Join(dir, "steps.csv"))
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, stepsHeader, records[0])
	assert.Equal(t, "seed", records[1][1])
	assert.Equal(t, "tet=3", records[1][12])
	prom, err := os.ReadFile(filepath.Join(dir, "gocell.prom"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(prom), "gocell_cell_fragments 6"))

	R, h, err := traj.NewReader(filepath.Join(dir, "build.traj.zst"))
	require.NoError(t, err)
	assert.NotEmpty(t, h["cell"])
	frames, err := R.ReadAll()
	require.NoError(t, err)
	require.Len(t, frames, 3)
	assert.Equal(t, "seed", frames[0].Kind)
	assert.Equal(t, 15, frames[0].Len())
	assert.Equal(t, 30, frames[2].Len())
}

func TestBuildErrors(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"build", "--config", filepath.Join(t.TempDir(), "none.yaml")})
	cmd.SetOut(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())

	cmd = NewRootCommand()
	cmd.SetArgs([]string{"inspect"})
	cmd.SetOut(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}

func TestFragmentTypes(t *testing.T) {
	assert.Equal(t, "a=1;b=2", fragmentTypes(map[string]int{"b": 2, "a": 1}))
	assert.Equal(t, "", fragmentTypes(nil))
}
