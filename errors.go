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

package gocell

import (
	"errors"
	"strings"
)

//Kinds of errors returned by gocell. Use errors.Is to check for them.
var (
	//ErrConfig is returned for problems in the templates, bond types, box or driver options.
	ErrConfig = errors.New("configuration error")
	//ErrSnapshot is returned when a snapshot or a persisted cell doesn't match the cell.
	ErrSnapshot = errors.New("snapshot error")
)

//Error is the error type for gocell. All gocell errors are critical, as geometric
//failures are not reported as errors.
type Error struct {
	message string
	deco    []string
	kind    error
	cause   error
}

func (err *Error) Error() string {
	msg := err.message
	if len(err.deco) > 0 {
		msg += " (" + strings.Join(err.deco, " <- ") + ")"
	}
	return "gocell: " + msg
}

//Decorate adds new information to the error, and returns the decoration slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns true.
func (err *Error) Critical() bool { return true }

//Is matches the kind of the error.
func (err *Error) Is(target error) bool { return target == err.kind }

//Unwrap returns the error from a subpackage that caused this one, if any.
func (err *Error) Unwrap() error { return err.cause }

func configError(message, caller string) *Error {
	return &Error{message: message, deco: []string{caller}, kind: ErrConfig}
}

func snapshotError(message, caller string) *Error {
	return &Error{message: message, deco: []string{caller}, kind: ErrSnapshot}
}

//wrap turns err into a gocell Error of the given kind, which keeps err as its cause.
//gocell Errors that already have that kind are only decorated.
func wrap(err error, kind error, caller string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) && e.kind == kind {
		e.Decorate(caller)
		return e
	}
	return &Error{message: err.Error(), deco: []string{caller}, kind: kind, cause: err}
}

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrUnknownBlock = PanicMsg("gocell: reference to a block that is not in the cell")
	ErrRegistered   = PanicMsg("gocell: block added to the cell twice")
)
