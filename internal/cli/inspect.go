/*
 * inspect.go, part of gocell.
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
	"github.com/rmera/gocell"
	"github.com/spf13/cobra"
)

type inspectOptions struct {
	Steps    bool
	Snapshot string
	Wrapped  bool
	Rigid    bool
	Plot     string
}

func newInspectCommand(root *rootOptions) *cobra.Command {
	opts := &inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect STATE",
		Short: "Summarize a saved cell, and optionally export it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			C, err := gocell.LoadFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSummary(out, C)
			if opts.Steps {
				printSteps(out, C.Steps())
			}
			if opts.Snapshot != "" {
				if err := writeSnapshot(C, opts.Snapshot, gocell.ExportOptions{Wrapped: opts.Wrapped, Rigid: opts.Rigid}); err != nil {
					return err
				}
			}
			if opts.Plot != "" {
				return writePlot(C, opts.Plot)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.BoolVar(&opts.Steps, "steps", false, "print the step history")
	f.StringVar(&opts.Snapshot, "snapshot", "", "write a JSON snapshot to this file")
	f.BoolVar(&opts.Wrapped, "wrapped", false, "wrap the snapshot positions into the box")
	f.BoolVar(&opts.Rigid, "rigid", false, "only export the terms between fragments")
	f.StringVar(&opts.Plot, "plot", "", "write a growth plot to this file")
	return cmd
}
