/*
 * metrics.go, part of gocell.
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

//Package metrics collects Prometheus metrics of a cell build. A Metrics value is a
//gocell.Observer, and keeps its own registry so that builds don't share counters.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rmera/gocell"
)

const namespace = "gocell"

//ClashBuckets are the buckets for the number of clashes of a rejected move.
var ClashBuckets = []float64{1, 2, 4, 8, 16, 32, 64}

//Metrics holds the collectors for one cell.
type Metrics struct {
	registry *prometheus.Registry

	MovesChecked *prometheus.CounterVec
	Clashes      prometheus.Histogram
	Bonds        prometheus.Counter
	DriverRuns   *prometheus.CounterVec
	DriverAdded  *prometheus.CounterVec
	DriverTries  *prometheus.CounterVec

	Blocks        prometheus.Gauge
	Fragments     prometheus.Gauge
	Atoms         prometheus.Gauge
	Density       prometheus.Gauge
	FreeEndGroups prometheus.Gauge
	FragmentTypes *prometheus.GaugeVec
}

//New registers all the collectors in a new registry.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}
	m.MovesChecked = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "moves_checked_total", Help: "Moves checked against the cell, by result.",
	}, []string{"accepted"})
	m.Clashes = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Name: "move_clashes", Help: "Clashes found in rejected moves.", Buckets: ClashBuckets,
	})
	m.Bonds = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "bonds_committed_total", Help: "Bonds committed.",
	})
	m.DriverRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "driver_runs_total", Help: "Driver calls, by kind.",
	}, []string{"kind"})
	m.DriverAdded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "driver_added_total", Help: "Blocks, joins or bonds added by the drivers, by kind.",
	}, []string{"kind"})
	m.DriverTries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "driver_tries_total", Help: "Attempts made by the drivers, by kind.",
	}, []string{"kind"})
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Subsystem: "cell", Name: name, Help: help})
	}
	m.Blocks = gauge("blocks", "Blocks in the cell.")
	m.Fragments = gauge("fragments", "Fragments in the cell.")
	m.Atoms = gauge("atoms", "Visible atoms in the cell.")
	m.Density = gauge("density_g_cm3", "Density of the cell.")
	m.FreeEndGroups = gauge("free_endgroups", "Free EndGroups in the cell.")
	m.FragmentTypes = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "cell", Name: "fragment_types", Help: "Fragments in the cell, by type.",
	}, []string{"type"})
	m.registry.MustRegister(m.MovesChecked, m.Clashes, m.Bonds, m.DriverRuns, m.DriverAdded, m.DriverTries,
		m.Blocks, m.Fragments, m.Atoms, m.Density, m.FreeEndGroups, m.FragmentTypes)
	return m
}

//Registry returns the registry with all the collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

//MoveChecked implements gocell.Observer.
func (m *Metrics) MoveChecked(accepted bool, clashes int) {
	m.MovesChecked.WithLabelValues(strconv.FormatBool(accepted)).Inc()
	if clashes > 0 {
		m.Clashes.Observe(float64(clashes))
	}
}

//BondsCommitted implements gocell.Observer.
func (m *Metrics) BondsCommitted(n int) {
	m.Bonds.Add(float64(n))
}

//DriverFinished implements gocell.Observer.
func (m *Metrics) DriverFinished(kind string, added, tries int) {
	m.DriverRuns.WithLabelValues(kind).Inc()
	m.DriverAdded.WithLabelValues(kind).Add(float64(added))
	m.DriverTries.WithLabelValues(kind).Add(float64(tries))
}

//Update sets the gauges from the current state of C.
func (m *Metrics) Update(C *gocell.Cell) {
	m.Blocks.Set(float64(C.NumBlocks()))
	m.Fragments.Set(float64(C.NumFragments()))
	m.Atoms.Set(float64(C.NumAtoms()))
	m.Density.Set(C.Density())
	m.FreeEndGroups.Set(float64(len(C.FreeEndGroups())))
	m.FragmentTypes.Reset()
	for t, n := range C.FragmentTypeCounts() {
		m.FragmentTypes.WithLabelValues(t).Set(float64(n))
	}
}

//WriteToTextfile writes all the metrics to filename in the Prometheus text format,
//for the node exporter textfile collector.
func (m *Metrics) WriteToTextfile(filename string) error {
	return prometheus.WriteToTextfile(filename, m.registry)
}

var _ gocell.Observer = (*Metrics)(nil)
