/*
 * metrics_test.go, part of gocell.
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

package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/gocell"
	"github.com/rmera/gocell/frag"
	"github.com/rmera/gocell/pbc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func scrape(t *testing.T, m *Metrics) string {
	path := filepath.Join(t.TempDir(), "gocell.prom")
	require.NoError(t, m.WriteToTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestObserverEvents(t *testing.T) {
	m := New()
	m.MoveChecked(true, 0)
	m.MoveChecked(false, 3)
	m.BondsCommitted(2)
	m.DriverFinished("seed", 5, 7)
	out := scrape(t, m)
	assert.Contains(t, out, `gocell_moves_checked_total{accepted="true"} 1`)
	assert.Contains(t, out, `gocell_moves_checked_total{accepted="false"} 1`)
	assert.Contains(t, out, "gocell_move_clashes_count 1")
	assert.Contains(t, out, "gocell_bonds_committed_total 2")
	assert.Contains(t, out, `gocell_driver_added_total{kind="seed"} 5`)
	assert.Contains(t, out, `gocell_driver_tries_total{kind="seed"} 7`)
}

func TestCellMetrics(t *testing.T) {
	m := New()
	C, err := gocell.New(pbc.Box{20, 20, 20}, gocell.DefaultParams(), gocell.WithObserver(m))
	require.NoError(t, err)
	tm := &frag.Template{Name: "ch4"}
	tm.Atoms = append(tm.Atoms, frag.TemplateAtom{Symbol: "C"})
	for i, d := range []r3.Vec{{X: 1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: -1, Z: 1}} {
		tm.Atoms = append(tm.Atoms, frag.TemplateAtom{Symbol: "H", Pos: r3.Scale(1.09, r3.Unit(d))})
		tm.EndGroups = append(tm.EndGroups, frag.EndGroupDef{Type: "c", End: 0, Angle: (i+1)%4 + 1, Cap: i + 1})
	}
	require.NoError(t, C.AddTemplate(tm))
	added, err := C.Seed(3, "ch4", gocell.SeedOptions{})
	require.NoError(t, err)
	require.Equal(t, 3, added)
	m.Update(C)
	out := scrape(t, m)
	assert.Contains(t, out, `gocell_driver_runs_total{kind="seed"} 1`)
	assert.Contains(t, out, "gocell_cell_fragments 3")
	assert.Contains(t, out, "gocell_cell_atoms 15")
	assert.Contains(t, out, "gocell_cell_free_endgroups 12")
	assert.Contains(t, out, `gocell_cell_fragment_types{type="ch4"} 3`)
	assert.True(t, strings.Contains(out, `gocell_moves_checked_total{accepted="true"}`))
}
