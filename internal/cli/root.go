/*
 * root.go, part of gocell.
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

//Package cli holds the gocell command line interface.
package cli

import (
	"fmt"

	"github.com/rmera/gocell/internal/config"
	"github.com/rmera/gocell/logging"
	"github.com/spf13/cobra"
)

//Version is set at build time with -ldflags.
var Version = "dev"

//rootOptions are the global flags.
type rootOptions struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
}

//NewRootCommand returns the gocell command with all its subcommands.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "gocell",
		Short: "gocell builds periodic cells of bonded molecular fragments",
		Long: "gocell places rigid molecular fragments in a periodic box, and bonds them\n" +
			"by seeding, growing, joining and zipping, as described in a YAML file.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "gocell.yaml", "build description file")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error), overrides the file")
	pf.StringVar(&opts.LogFormat, "log-format", "", "log format (console, json), overrides the file")
	cmd.AddCommand(newBuildCommand(opts), newInspectCommand(opts))
	return cmd
}

//logger builds the logger from the configuration, with the flag overrides.
func (o *rootOptions) logger(cfg logging.Config) (logging.Logger, error) {
	if o.LogLevel != "" {
		cfg.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		cfg.Format = o.LogFormat
	}
	l, err := logging.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("cli: %w", err)
	}
	return l, nil
}

//loadConfig reads the build description.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	return config.Load(o.ConfigPath)
}

//Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
