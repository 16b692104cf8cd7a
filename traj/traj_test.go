/*
 * traj_test.go, part of gocell.
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

package traj

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/gocell"
	"github.com/rmera/gocell/pbc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func frames() []*Frame {
	return []*Frame{
		{Step: 0, Kind: "seed", Symbols: []string{"C", "H"}, Pos: []r3.Vec{{X: 1.234, Y: -5.5, Z: 0}, {X: 19.999, Y: 0.001, Z: 3}}, Box: pbc.Box{20, 20, 20}},
		{Step: 1, Kind: "grow", Symbols: []string{"C", "H", "O"}, Pos: []r3.Vec{{X: 1.234, Y: -5.5}, {X: 19.999, Y: 0.001, Z: 3}, {X: -0.25, Y: 7, Z: 11.5}}, Box: pbc.Box{20, 20, 20}},
		{Step: 2, Symbols: nil, Pos: nil, Box: pbc.Box{20, 20, 20}},
	}
}

func roundTrip(t *testing.T, name string, header map[string]string, tol float64) {
	W, err := NewWriter(name, header)
	require.NoError(t, err)
	for _, F := range frames() {
		require.NoError(t, W.WNext(F))
	}
	assert.Equal(t, 3, W.Len())
	require.NoError(t, W.Close())
	assert.Error(t, W.WNext(frames()[0]), "writing to a closed trajectory")

	R, h, err := NewReader(name)
	require.NoError(t, err)
	for k, v := range header {
		assert.Equal(t, v, h[k])
	}
	got, err := R.ReadAll()
	require.NoError(t, err)
	want := frames()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Step, got[i].Step)
		assert.Equal(t, want[i].Kind, got[i].Kind)
		assert.Equal(t, want[i].Box, got[i].Box)
		require.Equal(t, want[i].Len(), got[i].Len())
		for j := range want[i].Pos {
			assert.Equal(t, want[i].Symbols[j], got[i].Symbols[j])
			assert.InDelta(t, 0, r3.Norm(r3.Sub(want[i].Pos[j], got[i].Pos[j])), tol)
		}
	}
	_, err = R.Next()
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	roundTrip(t, filepath.Join(dir, "build.traj"), map[string]string{"cell": "test"}, 0.01)
	roundTrip(t, filepath.Join(dir, "build.traj.zst"), map[string]string{"prec": "3"}, 0.001)
}

func TestBadFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := NewWriter(filepath.Join(dir, "x.traj"), map[string]string{"prec": "zero"})
	assert.Error(t, err)
	_, _, err = NewReader(filepath.Join(dir, "missing.traj"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.traj")
	require.NoError(t, os.WriteFile(bad, []byte("prec=2\n**\n> 2 0 seed\nC 1 2 3\n* 10 10 10\n"), 0o644))
	R, _, err := NewReader(bad)
	require.NoError(t, err)
	_, err = R.Next()
	assert.Error(t, err)
	assert.False(t, IsLastFrame(err))

	W, err := NewWriter(filepath.Join(dir, "y.traj"), nil)
	require.NoError(t, err)
	defer W.Close()
	err = W.WNext(&Frame{Symbols: []string{"C"}})
	assert.Error(t, err)
}

func TestFromSnapshot(t *testing.T) {
	S := &gocell.Snapshot{Box: pbc.Box{5, 6, 7}, Symbols: []string{"N"}, Pos: []r3.Vec{{X: 1}}}
	F := FromSnapshot(4, "zip", S)
	assert.Equal(t, 4, F.Step)
	assert.Equal(t, "zip", F.Kind)
	assert.Equal(t, 1, F.Len())
	assert.Equal(t, S.Box, F.Box)
}
