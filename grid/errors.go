/*
 * errors.go, part of gocell.
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

package grid

import "strings"

//Error is the error type for the grid package. It is always critical:
//grid errors come from configuration, never from geometry.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string {
	return "grid: " + err.message + decoString(err.deco)
}

//Decorate adds new information to the error
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns true, grid errors can't be ignored.
func (err Error) Critical() bool { return true }

func decoString(deco []string) string {
	if len(deco) == 0 {
		return ""
	}
	return " (" + strings.Join(deco, " <- ") + ")"
}

//errDecorate adds the caller to a grid Error and returns it.
func errDecorate(err error, caller string) error {
	if e, ok := err.(Error); ok {
		e.deco = append(e.deco, caller)
		return e
	}
	return err
}

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrRegistered = PanicMsg("gocell/grid: block registered twice")
	ErrDangling   = PanicMsg("gocell/grid: grid entry refers to a block that no longer exists")
)
