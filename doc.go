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

/*Package gocell builds large molecular structures inside a periodic, orthorhombic
simulation cell.

Small rigid fragments, instantiated from templates, are positioned next to the existing
structure and bonded through their reactive sites (EndGroups). Every placement is checked
for atomic overlap, bond length and bond angle, using a uniform spatial grid that is aware
of the periodic boundary conditions.

	**gocell Capabilities**

    Seeds fragments at random positions and orientations, optionally restricted to a zone.

    Grows the structure by attaching fragments from a template library to free EndGroups,
	with an optional dihedral constraint, and a rotation sweep about the new bond otherwise.

    Joins blocks already in the cell.

    Zips pairs of free EndGroups that are already in a bonding position, including
	pairs within the same block (ring closure).

    Exports snapshots (bonds, angles, dihedrals and rigid bodies) for external MD engines, and
	imports the positions back.

    Saves and loads the whole cell as JSON, optionally compressed with zstd.

The geometry lives in the pbc package, the grid in the grid package and the fragment/block
graph in the frag package.

*/
package gocell
