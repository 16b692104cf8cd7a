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

package frag

import (
	"errors"
	"strings"
)

//ErrConfig is the kind of the errors caused by malformed templates.
//Use errors.Is to check for it.
var ErrConfig = errors.New("configuration error")

//Error is the error type for the frag package.
type Error struct {
	message string
	deco    []string
}

func (err *Error) Error() string {
	if len(err.deco) == 0 {
		return err.message
	}
	return err.message + " (" + strings.Join(err.deco, " <- ") + ")"
}

//Decorate adds new information to the error, and returns the
//decoration slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns true. Errors in templates can't be ignored.
func (err *Error) Critical() bool { return true }

//Is makes every frag error match ErrConfig.
func (err *Error) Is(target error) bool { return target == ErrConfig }

func newError(message, caller string) *Error {
	return &Error{message: message, deco: []string{caller}}
}

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotFree    = PanicMsg("gocell/frag: trying to bond an EndGroup that is not free")
	ErrWrongBlock = PanicMsg("gocell/frag: EndGroup does not belong to the given block")
	ErrNotBonded  = PanicMsg("gocell/frag: trying to unbond a bond that is not committed")
)
