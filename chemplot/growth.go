/*
 * growth.go, part of gocell.
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

package chemplot

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/rmera/gocell"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func basicGrowthPlot(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Step"
	p.Y.Label.Text = ylabel
	p.Y.Min = 0
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	p.Legend.Left = true
	return p
}

//series returns the points (step number, f(step)).
func series(steps []gocell.Step, f func(gocell.Step) float64) plotter.XYs {
	pts := make(plotter.XYs, len(steps))
	for i, s := range steps {
		pts[i].X = float64(s.Number)
		pts[i].Y = f(s)
	}
	return pts
}

//GrowthPlot returns a plot of the number of fragments of each type, and of the free
//EndGroups, after each step.
func GrowthPlot(steps []gocell.Step, title string) (*plot.Plot, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("chemplot: no steps to plot")
	}
	p := basicGrowthPlot(title, "Count")
	typeset := make(map[string]bool)
	for _, s := range steps {
		for t := range s.FragmentTypes {
			typeset[t] = true
		}
	}
	types := make([]string, 0, len(typeset))
	for t := range typeset {
		types = append(types, t)
	}
	sort.Strings(types)
	type curve struct {
		name string
		pts  plotter.XYs
	}
	curves := []curve{
		{"fragments", series(steps, func(s gocell.Step) float64 { return float64(s.Fragments) })},
		{"free EndGroups", series(steps, func(s gocell.Step) float64 { return float64(s.FreeEndGroups) })},
	}
	if len(types) > 1 {
		for _, t := range types {
			t := t
			curves = append(curves, curve{t, series(steps, func(s gocell.Step) float64 { return float64(s.FragmentTypes[t]) })})
		}
	}
	for key, c := range curves {
		l, pts, err := plotter.NewLinePoints(c.pts)
		if err != nil {
			return nil, err
		}
		r, g, b := colors(key, len(curves))
		l.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		pts.Color = l.Color
		p.Add(l, pts)
		p.Legend.Add(c.name, l, pts)
	}
	return p, nil
}

//DensityPlot returns a plot of the density of the cell after each step.
func DensityPlot(steps []gocell.Step, title string) (*plot.Plot, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("chemplot: no steps to plot")
	}
	p := basicGrowthPlot(title, "Density (g/cm^3)")
	l, pts, err := plotter.NewLinePoints(series(steps, func(s gocell.Step) float64 { return s.Density }))
	if err != nil {
		return nil, err
	}
	p.Add(l, pts)
	return p, nil
}

//Growth saves a growth plot of steps to filename. The format is taken from
//the extension of filename (png, svg, pdf, eps...).
func Growth(steps []gocell.Step, title, filename string) error {
	p, err := GrowthPlot(steps, title)
	if err != nil {
		return err
	}
	//here I  intentionally shadow err.
	if err := p.Save(5*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("chemplot: saving %s: %w", filename, err)
	}
	return nil
}

//hsv2rgb takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func hsv2rgb(h, v, s float64) (uint8, uint8, uint8) {
	top := 255 * v
	if s == 0.0 {
		return uint8(top), uint8(top), uint8(top)
	}
	h = h / 60
	i := math.Floor(h)
	f := h - i
	p := 1 - s
	q := 1 - s*f
	t := 1 - s*(1-f)
	var r, g, b float64
	switch int(i) {
	case 0:
		r, g, b = 1, t, p
	case 1:
		r, g, b = q, 1, p
	case 2:
		r, g, b = p, 1, t
	case 3:
		r, g, b = p, q, 1
	case 4:
		r, g, b = t, p, 1
	default: //case 5
		r, g, b = 1, p, q
	}
	return uint8(r * top), uint8(g * top), uint8(b * top)
}

//colors returns the key-th of n colors spread over the hue circle, skipping the yellows,
//which are hard to see on white.
func colors(key, n int) (r, g, b uint8) {
	norm := 260.0 / float64(n)
	hp := float64(key)*norm + 20.0
	h := hp + 20.0
	if hp < 55 {
		h = hp - 20.0
	}
	return hsv2rgb(h, 1, 1)
}
