/*
 * defaults.go, part of gocell.
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

package config

import "github.com/spf13/viper"

const (
	DefaultAtomMargin      = 0.5
	DefaultBondMargin      = 0.5
	DefaultBondAngleMargin = 15.0 //degrees
	DefaultZipBondMargin   = 0.5
	DefaultZipAngleMargin  = 30.0 //degrees
	DefaultSeed            = 1

	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

//setDefaults registers the defaults of the tolerances in v, so an explicit zero
//in the file or the environment is kept.
func setDefaults(v *viper.Viper) {
	v.SetDefault("params.atom_margin", DefaultAtomMargin)
	v.SetDefault("params.bond_margin", DefaultBondMargin)
	v.SetDefault("params.bond_angle_margin", DefaultBondAngleMargin)
	v.SetDefault("params.zip_bond_margin", DefaultZipBondMargin)
	v.SetDefault("params.zip_angle_margin", DefaultZipAngleMargin)
	v.SetDefault("params.seed", DefaultSeed)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
}

//ApplyDefaults fills the zero-valued fields of cfg that have a default. It is meant for
//configurations built in code, where a zero tolerance can't be told from a missing one.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	p := &cfg.Params
	if p.AtomMargin == 0 {
		p.AtomMargin = DefaultAtomMargin
	}
	if p.BondMargin == 0 {
		p.BondMargin = DefaultBondMargin
	}
	if p.BondAngleMargin == 0 {
		p.BondAngleMargin = DefaultBondAngleMargin
	}
	if p.ZipBondMargin == 0 {
		p.ZipBondMargin = DefaultZipBondMargin
	}
	if p.ZipAngleMargin == 0 {
		p.ZipAngleMargin = DefaultZipAngleMargin
	}
	if p.Seed == 0 {
		p.Seed = DefaultSeed
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}
