/*
 * persist.go, part of gocell.
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
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/rmera/gocell/frag"
	"github.com/rmera/gocell/pbc"
)

//persistVersion is the version of the saved cell document.
const persistVersion = 1

//document is the JSON form of a Cell. The grid is not stored, it is rebuilt on load.
type document struct {
	Version   int                `json:"version"`
	ID        string             `json:"id"`
	Box       pbc.Box            `json:"box"`
	Params    Params             `json:"params"`
	Library   []*frag.Template   `json:"library"`
	BondTypes [][2]string        `json:"bond_types"`
	Blocks    []*frag.BlockState `json:"blocks"`
	NextID    int                `json:"next_id"`
	Steps     []Step             `json:"steps,omitempty"`
}

//Save writes the cell as a JSON document to w. The state of the random number generator
//is not saved: a loaded cell restarts the sequence from Params.Seed.
func (C *Cell) Save(w io.Writer) error {
	d := document{
		Version:   persistVersion,
		ID:        C.ID.String(),
		Box:       C.box,
		Params:    C.params,
		BondTypes: C.bonds.Pairs(),
		NextID:    C.nextID,
		Steps:     C.steps,
	}
	for _, name := range C.TemplateNames() {
		d.Library = append(d.Library, C.library[name])
	}
	for _, b := range C.Blocks() {
		d.Blocks = append(d.Blocks, b.State())
	}
	enc := json.NewEncoder(w)
	if err := enc.Encode(d); err != nil {
		return snapshotError("encoding the cell: "+err.Error(), "Save")
	}
	return nil
}

//Load reads a cell written by Save.
func Load(r io.Reader, opts ...Option) (*Cell, error) {
	var d document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, snapshotError("decoding the cell: "+err.Error(), "Load")
	}
	if d.Version != persistVersion {
		return nil, snapshotError(fmt.Sprintf("unsupported document version %d", d.Version), "Load")
	}
	C, err := New(d.Box, d.Params, opts...)
	if err != nil {
		return nil, wrap(err, ErrSnapshot, "Load")
	}
	if d.ID != "" {
		id, err := uuid.Parse(d.ID)
		if err != nil {
			return nil, snapshotError("invalid cell id: "+err.Error(), "Load")
		}
		C.ID = id
	}
	for _, t := range d.Library {
		if err := C.AddTemplate(t); err != nil {
			return nil, wrap(err, ErrSnapshot, "Load")
		}
	}
	for _, p := range d.BondTypes {
		if err := C.bonds.AddPair(p[0], p[1], C.library); err != nil {
			return nil, wrap(err, ErrSnapshot, "Load")
		}
	}
	for _, s := range d.Blocks {
		b, err := frag.FromState(s, C.Template)
		if err != nil {
			return nil, wrap(err, ErrSnapshot, "Load")
		}
		if b.ID < 0 || C.blocks[b.ID] != nil {
			return nil, snapshotError(fmt.Sprintf("invalid or repeated block handle %d", b.ID), "Load")
		}
		C.blocks[b.ID] = b
		if b.ID >= C.nextID {
			C.nextID = b.ID + 1
		}
	}
	if d.NextID > C.nextID {
		C.nextID = d.NextID
	}
	C.steps = d.Steps
	C.repopulate()
	return C, nil
}

func compressed(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".zst")
}

//SaveFile writes the cell to the file name. If the name ends in ".zst", the
//document is compressed with zstd.
func (C *Cell) SaveFile(name string) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return snapshotError(err.Error(), "SaveFile")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = snapshotError(cerr.Error(), "SaveFile")
		}
	}()
	bw := bufio.NewWriter(f)
	var w io.Writer = bw
	var zw *zstd.Encoder
	if compressed(name) {
		zw, err = zstd.NewWriter(bw, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return snapshotError(err.Error(), "SaveFile")
		}
		w = zw
	}
	if err = C.Save(w); err != nil {
		return errDecorate(err, "SaveFile")
	}
	if zw != nil {
		if err = zw.Close(); err != nil {
			return snapshotError(err.Error(), "SaveFile")
		}
	}
	if err = bw.Flush(); err != nil {
		return snapshotError(err.Error(), "SaveFile")
	}
	return nil
}

//LoadFile reads a cell written by SaveFile.
func LoadFile(name string, opts ...Option) (*Cell, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, snapshotError(err.Error(), "LoadFile")
	}
	defer f.Close()
	var r io.Reader = bufio.NewReader(f)
	if compressed(name) {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, snapshotError(err.Error(), "LoadFile")
		}
		defer zr.Close()
		r = zr
	}
	C, err := Load(r, opts...)
	if err != nil {
		return nil, errDecorate(err, "LoadFile")
	}
	return C, nil
}
