/*
 * selector.go, part of gocell.
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
	"math/rand"
	"strings"
)

//Selector chooses one of several full EndGroup types ("fragment:endgroup") from the
//library, to be attached to the cell. counts holds the number of fragments of each type
//already in the cell. candidates is never empty.
type Selector interface {
	Select(candidates []string, counts map[string]int, rng *rand.Rand) string
}

//UniformSelector chooses any of the candidates with the same probability.
type UniformSelector struct{}

//Select returns a random candidate.
func (UniformSelector) Select(candidates []string, _ map[string]int, rng *rand.Rand) string {
	return candidates[rng.Intn(len(candidates))]
}

//ratioEpsilon keeps the weight of absent fragment types finite.
const ratioEpsilon = 1e-3

//RatioSelector steers the composition of the cell towards the given ratios of fragment
//types. Each candidate is weighted by target/(fraction+epsilon), where fraction is the current
//share of its fragment type in the cell, so under-represented types are preferred.
//Fragment types without a target are never chosen, unless no candidate has one.
type RatioSelector struct {
	Targets map[string]float64
}

//Select returns a candidate chosen with the weights described for RatioSelector.
func (S RatioSelector) Select(candidates []string, counts map[string]int, rng *rand.Rand) string {
	var total int
	for _, n := range counts {
		total += n
	}
	weights := make([]float64, len(candidates))
	var sum float64
	for i, c := range candidates {
		ftype := c
		if k := strings.Index(c, ":"); k >= 0 {
			ftype = c[:k]
		}
		target := S.Targets[ftype]
		if target <= 0 {
			continue
		}
		var fraction float64
		if total > 0 {
			fraction = float64(counts[ftype]) / float64(total)
		}
		weights[i] = target / (fraction + ratioEpsilon)
		sum += weights[i]
	}
	if sum == 0 {
		return UniformSelector{}.Select(candidates, counts, rng)
	}
	r := rng.Float64() * sum
	last := 0
	for i, w := range weights {
		if w == 0 {
			continue
		}
		if r < w {
			return candidates[i]
		}
		r -= w
		last = i
	}
	return candidates[last]
}
