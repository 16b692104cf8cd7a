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

package traj

import (
	"errors"
	"fmt"
	"strings"
)

//Error is the general structure for trajectory errors.
type Error struct {
	message  string
	filename string //the file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	msg := fmt.Sprintf("trajectory %s: %s", err.filename, err.message)
	if len(err.deco) > 0 {
		msg += " (" + strings.Join(err.deco, " <- ") + ")"
	}
	return msg
}

//Decorate adds new information to the error
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file to which the failing trajectory was associated
func (err *Error) FileName() string { return err.filename }

//Critical returns true if the error is critical, false otherwise
func (err *Error) Critical() bool { return err.critical }

func newError(message, filename, caller string) *Error {
	return &Error{message: message, filename: filename, deco: []string{caller}, critical: true}
}

const (
	TrajUnIniRead  = "trajectory not open for reading"
	TrajUnIniWrite = "trajectory not open for writing"
	WrongFormat    = "wrong format in trajectory header or frame"
)

//lastFrameError signals the normal end of a trajectory.
type lastFrameError struct {
	deco     []string
	fileName string
}

//NormalLastFrameTermination does nothing, it marks the type.
func (E *lastFrameError) NormalLastFrameTermination() {}

func (E *lastFrameError) FileName() string { return E.fileName }

func (E *lastFrameError) Error() string { return "EOF" }

func (E *lastFrameError) Critical() bool { return false }

func (E *lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newLastFrameError(filename string, caller string) *lastFrameError {
	return &lastFrameError{fileName: filename, deco: []string{caller}}
}

//IsLastFrame returns true if err marks the normal end of a trajectory.
func IsLastFrame(err error) bool {
	var l interface{ NormalLastFrameTermination() }
	return errors.As(err, &l)
}
