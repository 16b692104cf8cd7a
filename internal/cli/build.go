/*
 * build.go, part of gocell.
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
	"fmt"
	"time"

	"github.com/rmera/gocell"
	"github.com/rmera/gocell/internal/config"
	"github.com/rmera/gocell/internal/metrics"
	"github.com/rmera/gocell/logging"
	"github.com/rmera/gocell/traj"
	"github.com/spf13/cobra"
)

type buildOptions struct {
	Seed  int64
	State string
}

func newBuildCommand(root *rootOptions) *cobra.Command {
	opts := &buildOptions{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a cell from the description file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Params.Seed = opts.Seed
			}
			if opts.State != "" {
				cfg.Output.State = opts.State
			}
			log, err := root.logger(cfg.Log)
			if err != nil {
				return err
			}
			m := metrics.New()
			C, err := cfg.Build(gocell.WithLogger(log), gocell.WithObserver(m))
			if err != nil {
				return err
			}
			var tw *traj.Writer
			if cfg.Output.Trajectory != "" {
				tw, err = traj.NewWriter(cfg.Output.Trajectory, map[string]string{"cell": C.ID.String()})
				if err != nil {
					return err
				}
				defer tw.Close()
			}
			start := time.Now()
			for i := range cfg.Steps {
				s := &cfg.Steps[i]
				n, err := s.Run(C)
				if err != nil {
					return fmt.Errorf("cli: step %d (%s): %w", i, s.Kind, err)
				}
				log.Debug("step done", logging.Int("step", i), logging.String("kind", s.Kind), logging.Int("added", n))
				if tw != nil {
					if err := tw.WNext(traj.FromSnapshot(i, s.Kind, C.Export(gocell.ExportOptions{Wrapped: true}))); err != nil {
						return err
					}
				}
			}
			if tw != nil {
				if err := tw.Close(); err != nil {
					return err
				}
			}
			m.Update(C)
			log.Info("build finished", logging.Int("blocks", C.NumBlocks()), logging.Int("fragments", C.NumFragments()),
				logging.Float64("density", C.Density()), logging.Duration("elapsed", time.Since(start)))
			if err := writeOutputs(C, cfg.Output, m, log); err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), C)
			return nil
		},
	}
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed, overrides the file")
	cmd.Flags().StringVarP(&opts.State, "state", "s", "", "file to save the cell to, overrides the file")
	return cmd
}

func writeOutputs(C *gocell.Cell, o config.OutputConfig, m *metrics.Metrics, log logging.Logger) error {
	if o.State != "" {
		if err := C.SaveFile(o.State); err != nil {
			return err
		}
		log.Info("cell saved", logging.String("file", o.State))
	}
	if o.Snapshot != "" {
		if err := writeSnapshot(C, o.Snapshot, gocell.ExportOptions{Wrapped: o.Wrapped, Rigid: o.Rigid}); err != nil {
			return err
		}
		log.Info("snapshot written", logging.String("file", o.Snapshot))
	}
	if o.Steps != "" {
		if err := writeStepsCSV(C.Steps(), o.Steps); err != nil {
			return err
		}
	}
	if o.Plot != "" {
		if err := writePlot(C, o.Plot); err != nil {
			return err
		}
	}
	if o.Metrics != "" {
		if err := m.WriteToTextfile(o.Metrics); err != nil {
			return fmt.Errorf("cli: writing metrics: %w", err)
		}
	}
	return nil
}
