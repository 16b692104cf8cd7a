/*
 * observer.go, part of gocell.
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

//Observer receives the events of a Cell, to collect metrics.
//The methods are called synchronously from the Cell operations.
type Observer interface {
	//MoveChecked is called after every clash check of a moved block.
	MoveChecked(accepted bool, clashes int)
	//BondsCommitted is called after every commit of candidate bonds, with the number of bonds made.
	BondsCommitted(n int)
	//DriverFinished is called at the end of Seed, Grow, Join and Zip.
	DriverFinished(kind string, added, tries int)
}

type nopObserver struct{}

func (nopObserver) MoveChecked(bool, int)           {}
func (nopObserver) BondsCommitted(int)              {}
func (nopObserver) DriverFinished(string, int, int) {}
