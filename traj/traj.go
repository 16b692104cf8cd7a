/*
 * traj.go, part of gocell.
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
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/rmera/gocell"
	"github.com/rmera/gocell/pbc"
	"gonum.org/v1/gonum/spatial/r3"
)

//defaultPrec is the number of decimals kept for the coordinates if none is given.
const defaultPrec = 2

//Frame is the state of the cell after one step of a build.
type Frame struct {
	Step    int
	Kind    string
	Symbols []string
	Pos     []r3.Vec
	Box     pbc.Box
}

//Len returns the number of atoms in the frame.
func (F *Frame) Len() int { return len(F.Pos) }

//FromSnapshot returns a frame with the positions and symbols of S.
func FromSnapshot(step int, kind string, S *gocell.Snapshot) *Frame {
	return &Frame{Step: step, Kind: kind, Symbols: S.Symbols, Pos: S.Pos, Box: S.Box}
}

func compressed(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".zst")
}

func scale(prec int) float64 {
	if prec == defaultPrec {
		return 100.0
	}
	return math.Pow(10.0, float64(prec))
}

func coordsEncode(sym string, v r3.Vec, p float64) string {
	return fmt.Sprintf("%s %d %d %d\n", sym, int(math.RoundToEven(v.X*p)), int(math.RoundToEven(v.Y*p)), int(math.RoundToEven(v.Z*p)))
}

func coordsDecode(str string, p float64) (string, r3.Vec, error) {
	s := strings.Fields(str)
	if len(s) != 4 {
		return "", r3.Vec{}, fmt.Errorf("ill formated atom line: %d fields in %q", len(s), str)
	}
	var temp [3]float64
	for i, v := range s[1:] {
		f, err := strconv.Atoi(v)
		if err != nil {
			return "", r3.Vec{}, fmt.Errorf("can't parse coordinate %d (%s): %w", i, v, err)
		}
		temp[i] = float64(f) / p
	}
	return s[0], r3.Vec{X: temp[0], Y: temp[1], Z: temp[2]}, nil
}

//Writer writes a build trajectory.
type Writer struct {
	f         *os.File
	z         *zstd.Encoder
	h         *bufio.Writer
	filename  string
	writeable bool
	prec      int
	frames    int
}

//NewWriter creates the trajectory file name and writes the header. The key "prec" in
//header sets the precision of the coordinates.
func NewWriter(name string, header map[string]string) (*Writer, error) {
	W := &Writer{filename: name, prec: defaultPrec}
	if p, ok := header["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err != nil || prec < 1 {
			return nil, newError("invalid precision "+p, name, "NewWriter")
		}
		W.prec = prec
	}
	var err error
	W.f, err = os.Create(name)
	if err != nil {
		return nil, newError(err.Error(), name, "NewWriter")
	}
	var out io.Writer = W.f
	if compressed(name) {
		W.z, err = zstd.NewWriter(W.f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			W.f.Close()
			return nil, newError(err.Error(), name, "NewWriter")
		}
		out = W.z
	}
	W.h = bufio.NewWriter(out)
	keys := make([]string, 0, len(header)+1)
	for k := range header {
		keys = append(keys, k)
	}
	if _, ok := header["prec"]; !ok {
		keys = append(keys, "prec")
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := header[k]
		if k == "prec" {
			v = strconv.Itoa(W.prec)
		}
		fmt.Fprintf(W.h, "%s=%s\n", k, v)
	}
	W.h.WriteString("**\n")
	W.writeable = true
	return W, nil
}

//WNext writes a frame.
func (W *Writer) WNext(F *Frame) error {
	if W == nil || !W.writeable {
		return newError(TrajUnIniWrite, "", "WNext")
	}
	if len(F.Symbols) != len(F.Pos) {
		return newError(fmt.Sprintf("%d symbols given for %d atoms", len(F.Symbols), len(F.Pos)), W.filename, "WNext")
	}
	kind := F.Kind
	if kind == "" {
		kind = "-"
	}
	fmt.Fprintf(W.h, "> %d %d %s\n", len(F.Pos), F.Step, kind)
	p := scale(W.prec)
	for i, v := range F.Pos {
		W.h.WriteString(coordsEncode(F.Symbols[i], v, p))
	}
	_, err := fmt.Fprintf(W.h, "* %.4f %.4f %.4f\n", F.Box[0], F.Box[1], F.Box[2])
	if err != nil {
		return newError(err.Error(), W.filename, "WNext")
	}
	W.frames++
	return nil
}

//Len returns the number of frames written.
func (W *Writer) Len() int { return W.frames }

//Close flushes and closes the trajectory. It can't be used after this call.
func (W *Writer) Close() error {
	if W == nil || !W.writeable {
		return nil
	}
	W.writeable = false
	err := W.h.Flush()
	if W.z != nil {
		if zerr := W.z.Close(); err == nil {
			err = zerr
		}
	}
	if ferr := W.f.Close(); err == nil {
		err = ferr
	}
	if err != nil {
		return newError(err.Error(), W.filename, "Close")
	}
	return nil
}

//Reader reads a build trajectory.
type Reader struct {
	f        *os.File
	z        *zstd.Decoder
	h        *bufio.Reader
	filename string
	prec     int
	readable bool
}

//NewReader opens a trajectory for reading, and returns the reader and the header.
func NewReader(name string) (*Reader, map[string]string, error) {
	R := &Reader{filename: name, prec: defaultPrec}
	var err error
	R.f, err = os.Open(name)
	if err != nil {
		return nil, nil, newError(err.Error(), name, "NewReader")
	}
	var in io.Reader = bufio.NewReader(R.f)
	if compressed(name) {
		R.z, err = zstd.NewReader(in)
		if err != nil {
			R.f.Close()
			return nil, nil, newError("can't read header "+err.Error(), name, "NewReader")
		}
		in = R.z
	}
	R.h = bufio.NewReader(in)
	m := make(map[string]string)
	for {
		str, err := R.h.ReadString('\n')
		if err != nil {
			R.close()
			return nil, nil, newError("can't read header: "+err.Error(), name, "NewReader")
		}
		str = strings.TrimSuffix(str, "\n")
		if str == "**" {
			break
		}
		kv := strings.SplitN(str, "=", 2)
		if len(kv) != 2 {
			R.close()
			return nil, nil, newError(WrongFormat+": "+str, name, "NewReader")
		}
		m[kv[0]] = kv[1]
	}
	if p, ok := m["prec"]; ok {
		R.prec, err = strconv.Atoi(p)
		if err != nil || R.prec < 1 {
			R.close()
			return nil, nil, newError("invalid precision "+p, name, "NewReader")
		}
	}
	R.readable = true
	return R, m, nil
}

//Next returns the next frame of the trajectory. At the end of the trajectory, it returns
//an error for which IsLastFrame is true, and closes the reader.
func (R *Reader) Next() (*Frame, error) {
	if R == nil || !R.readable {
		return nil, newError(TrajUnIniRead, "", "Next")
	}
	head, err := R.h.ReadString('\n')
	if err == io.EOF && head == "" {
		//nothing bad happened here, the trajectory just ended.
		R.Close()
		return nil, newLastFrameError(R.filename, "Next")
	}
	if err != nil {
		return nil, newError(err.Error(), R.filename, "Next")
	}
	fields := strings.Fields(head)
	if len(fields) != 4 || fields[0] != ">" {
		return nil, newError(WrongFormat+": "+head, R.filename, "Next")
	}
	n, err1 := strconv.Atoi(fields[1])
	step, err2 := strconv.Atoi(fields[2])
	if err1 != nil || err2 != nil || n < 0 {
		return nil, newError(WrongFormat+": "+head, R.filename, "Next")
	}
	F := &Frame{Step: step, Kind: fields[3], Symbols: make([]string, n), Pos: make([]r3.Vec, n)}
	if F.Kind == "-" {
		F.Kind = ""
	}
	p := scale(R.prec)
	for i := 0; i < n; i++ {
		str, err := R.h.ReadString('\n')
		if err != nil {
			return nil, newError(fmt.Sprintf("frame of step %d ends after %d atoms: %s", step, i, err), R.filename, "Next")
		}
		F.Symbols[i], F.Pos[i], err = coordsDecode(str, p)
		if err != nil {
			return nil, newError(err.Error(), R.filename, "Next")
		}
	}
	s, err := R.h.ReadString('\n')
	if err != nil || len(s) == 0 || s[0] != '*' {
		return nil, newError("can't read the frame termination mark, wrong number of atoms in frame?", R.filename, "Next")
	}
	fields = strings.Fields(s)
	if len(fields) != 4 {
		return nil, newError(WrongFormat+": "+s, R.filename, "Next")
	}
	for j, v := range fields[1:] {
		F.Box[j], err = strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, newError("can't read box: "+err.Error(), R.filename, "Next")
		}
	}
	return F, nil
}

//ReadAll reads all the remaining frames.
func (R *Reader) ReadAll() ([]*Frame, error) {
	var ret []*Frame
	for {
		F, err := R.Next()
		if IsLastFrame(err) {
			return ret, nil
		}
		if err != nil {
			return ret, err
		}
		ret = append(ret, F)
	}
}

func (R *Reader) close() {
	if R.z != nil {
		R.z.Close()
	}
	R.f.Close()
}

//Close closes the reader, and marks it as unreadable.
func (R *Reader) Close() {
	if !R.readable {
		return
	}
	R.close()
	R.readable = false
}
