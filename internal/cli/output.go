/*
 * output.go, part of gocell.
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
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rmera/gocell"
	"github.com/rmera/gocell/chemplot"
)

func writeSnapshot(C *gocell.Cell, path string, o gocell.ExportOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cli: %w", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", " ")
	if err := enc.Encode(C.Export(o)); err != nil {
		return fmt.Errorf("cli: writing snapshot %s: %w", path, err)
	}
	return f.Close()
}

var stepsHeader = []string{"step", "kind", "added", "tries", "elapsed_s", "blocks", "fragments", "atoms",
	"density", "free_endgroups", "block_mean", "block_std", "fragment_types"}

//fragmentTypes formats counts as "a=3;b=4", sorted by type.
func fragmentTypes(counts map[string]int) string {
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)
	for i, t := range types {
		types[i] = t + "=" + strconv.Itoa(counts[t])
	}
	return strings.Join(types, ";")
}

func writeStepsCSV(steps []gocell.Step, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cli: %w", err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	ff := func(x float64) string { return strconv.FormatFloat(x, 'f', 4, 64) }
	records := [][]string{stepsHeader}
	for _, s := range steps {
		records = append(records, []string{
			strconv.Itoa(s.Number), s.Kind, strconv.Itoa(s.Added), strconv.Itoa(s.Tries),
			ff(s.Elapsed.Seconds()), strconv.Itoa(s.Blocks), strconv.Itoa(s.Fragments), strconv.Itoa(s.Atoms),
			ff(s.Density), strconv.Itoa(s.FreeEndGroups), ff(s.BlockMean), ff(s.BlockStd), fragmentTypes(s.FragmentTypes),
		})
	}
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("cli: writing steps %s: %w", path, err)
	}
	return f.Close()
}

func printSummary(w io.Writer, C *gocell.Cell) {
	b := C.Box()
	fmt.Fprintf(w, "cell %s\n", C.ID)
	fmt.Fprintf(w, "box %.3f %.3f %.3f\n", b[0], b[1], b[2])
	fmt.Fprintf(w, "blocks %d fragments %d atoms %d\n", C.NumBlocks(), C.NumFragments(), C.NumAtoms())
	mean, std := C.BlockSizes()
	fmt.Fprintf(w, "fragments per block %.2f +/- %.2f\n", mean, std)
	fmt.Fprintf(w, "density %.4f g/cm3\n", C.Density())
	fmt.Fprintf(w, "free endgroups %d\n", len(C.FreeEndGroups()))
	fmt.Fprintf(w, "fragment types %s\n", fragmentTypes(C.FragmentTypeCounts()))
}

func printSteps(w io.Writer, steps []gocell.Step) {
	fmt.Fprintf(w, "%5s %-5s %7s %7s %7s %9s %9s\n", "step", "kind", "added", "tries", "blocks", "fragments", "density")
	for _, s := range steps {
		fmt.Fprintf(w, "%5d %-5s %7d %7d %7d %9d %9.4f\n", s.Number, s.Kind, s.Added, s.Tries, s.Blocks, s.Fragments, s.Density)
	}
}

func writePlot(C *gocell.Cell, path string) error {
	return chemplot.Growth(C.Steps(), "Cell growth", path)
}
