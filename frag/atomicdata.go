/*
 * atomicdata.go, part of gocell.
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

import "strings"

//A map for assigning mass to elements.
//Note that just common elements are present
var symbolMass = map[string]float64{
	"H":  1.008,
	"He": 4.0026,
	"B":  10.81,
	"C":  12.011,
	"N":  14.007,
	"O":  15.999,
	"F":  18.998,
	"Na": 22.99,
	"Mg": 24.305,
	"Al": 26.982,
	"Si": 28.086,
	"P":  30.974,
	"S":  32.06,
	"Cl": 35.45,
	"K":  39.098,
	"Ca": 40.078,
	"Cr": 51.996,
	"Mn": 54.938,
	"Fe": 55.845,
	"Co": 58.933,
	"Cu": 63.546,
	"Zn": 65.38,
	"Ge": 72.63,
	"As": 74.922,
	"Se": 78.971,
	"Br": 79.904,
	"Sn": 118.71,
	"Sb": 121.76,
	"Te": 127.6,
	"I":  126.9,
}

//A map for assigning covalent radii to elements
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J)
var symbolCovrad = map[string]float64{
	"H":  0.31,
	"He": 0.28,
	"B":  0.84,
	"C":  0.76, //the sp3 radius
	"N":  0.71,
	"O":  0.66,
	"F":  0.57,
	"Na": 1.66,
	"Mg": 1.41,
	"Al": 1.21,
	"Si": 1.11,
	"P":  1.07,
	"S":  1.05,
	"Cl": 1.02,
	"K":  2.03,
	"Ca": 1.76,
	"Cr": 1.39,
	"Mn": 1.61, //hs
	"Fe": 1.52, //hs
	"Co": 1.5,  // hs
	"Cu": 1.32,
	"Zn": 1.22,
	"Ge": 1.2,
	"As": 1.19,
	"Se": 1.2,
	"Br": 1.2,
	"Sn": 1.39,
	"Sb": 1.39,
	"Te": 1.38,
	"I":  1.39,
}

//A map for checking that atoms don't
//have too many bonds when connectivity is guessed.
//A missing element means it is not checked.
var symbolMaxBonds = map[string]int{
	"H":  1, //this is the only one truly important.
	"C":  4,
	"O":  2,
	"F":  1,
	"Cl": 1,
	"Br": 1,
	"I":  1,
}

//Characteristic lengths of single bonds, in A.
//CRC Handbook of Chemistry and Physics, 87th edition, (2006), Sec. 9 p. 46
//Keys are in upper case, and each pair is stored only once.
var bondLengths = map[string]map[string]float64{
	"AS": {"AS": 2.10, "BR": 2.32, "C": 1.96, "CL": 2.17, "F": 1.71, "H": 1.51},
	"BR": {"BR": 2.28, "C": 1.94, "CL": 2.14, "F": 1.76, "GE": 2.30, "H": 1.41, "I": 2.47, "P": 2.22, "S": 2.24, "SI": 2.21},
	"C": {"C": 1.53, "CL": 1.79, "F": 1.39, "GE": 1.95, "H": 1.09, "I": 2.13, "N": 1.46, "O": 1.42,
		"P": 1.85, "S": 1.82, "SE": 1.95, "SI": 1.87, "SN": 2.14},
	"CL": {"CL": 1.99, "F": 1.63, "GE": 2.15, "H": 1.28, "I": 2.32, "N": 1.90, "O": 1.70, "P": 2.04,
		"S": 2.05, "SB": 2.33, "SI": 2.05, "SN": 2.28},
	"F": {"F": 1.41, "GE": 1.73, "H": 0.92, "I": 1.91, "N": 1.37, "O": 1.42, "P": 1.57, "S": 1.56,
		"SE": 1.71, "SI": 1.58, "TE": 1.82},
	"GE": {"GE": 2.40, "H": 1.53, "I": 2.51},
	"H": {"H": 0.74, "I": 1.61, "N": 1.02, "O": 0.96, "P": 1.42, "S": 1.34, "SB": 1.70, "SE": 1.47,
		"SI": 1.48, "SN": 1.71, "TE": 1.66},
	"I":  {"I": 2.67, "SI": 2.44, "SN": 2.67},
	"N":  {"N": 1.45, "O": 1.43, "P": 1.65},
	"O":  {"O": 1.48, "SI": 1.63},
	"P":  {"P": 2.25},
	"S":  {"S": 2.00},
	"SE": {"SE": 2.33},
	"SI": {"SI": 2.33},
}

//NormalizeSymbol returns an element symbol with the first letter in
//upper case and the rest in lower case, as in "Cl".
func NormalizeSymbol(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

//Mass returns the mass of an element, and false if the element is unknown.
func Mass(symbol string) (float64, bool) {
	m, ok := symbolMass[NormalizeSymbol(symbol)]
	return m, ok
}

//CovalentRadius returns the covalent radius of an element, and false if the element is unknown.
func CovalentRadius(symbol string) (float64, bool) {
	r, ok := symbolCovrad[NormalizeSymbol(symbol)]
	return r, ok
}

//BondLength returns the characteristic single-bond length between two elements.
//Pairs not in the table get the sum of the covalent radii, and false
//as second return value. If an element is unknown, the length is 0.
func BondLength(symbol1, symbol2 string) (float64, bool) {
	s1 := strings.ToUpper(strings.TrimSpace(symbol1))
	s2 := strings.ToUpper(strings.TrimSpace(symbol2))
	if l, ok := bondLengths[s1][s2]; ok {
		return l, true
	}
	if l, ok := bondLengths[s2][s1]; ok {
		return l, true
	}
	r1, ok1 := CovalentRadius(symbol1)
	r2, ok2 := CovalentRadius(symbol2)
	if !ok1 || !ok2 {
		return 0, false
	}
	return r1 + r2, false
}

//MaxBondLength returns the longest bond length between any two of the given elements.
func MaxBondLength(symbols []string) float64 {
	var max float64
	for i, a := range symbols {
		for _, b := range symbols[i:] {
			if l, _ := BondLength(a, b); l > max {
				max = l
			}
		}
	}
	return max
}
