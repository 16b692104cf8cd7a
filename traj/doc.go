/*
 * doc.go, part of gocell.
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

/******************** Format Specification   ***************************************************

A build trajectory holds one frame per step of a cell build. Unlike most MD trajectories, the
number of atoms changes from frame to frame, as blocks are added.

If the file name ends in ".zst", the file is compressed with z-standard (zstd). Otherwise it is
plain ASCII text.

The file starts with a "header", where each line is a pair key=value, sorted by key. The header
ends with a line containing only the characters "**". The precision (an integer greater than 0,
see below) is given in the header with the key "prec". If it is missing, a precision of 2 is assumed.

Each frame starts with a line:

> natoms step kind

where natoms is the number of atoms in the frame, step the number of the step that produced it,
and kind the kind of step (seed, grow, join, zip or cap). Then there is one line per atom, with the
element symbol and the x y and z cartesian coordinates. Each coordinate is in Angstrom,
multiplied by 10 to the power of the precision, and rounded to an integer.

Each frame ends with a line starting with the character "*", followed by one or more
whitespace and the 3 lengths of the orthorhombic box, in Angstrom.

***************************************************************************************************/

//Package traj writes and reads build trajectories: the wrapped positions of the
//visible atoms of a cell after each step of a build.
package traj
