/*
 * seed.go, part of gocell.
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
	"fmt"
	"time"

	"github.com/rmera/gocell/frag"
	"github.com/rmera/gocell/logging"
	"gonum.org/v1/gonum/spatial/r3"
)

//Zone is a rectangular region of the box, given by its lowest and highest corners.
type Zone struct {
	Min r3.Vec `json:"min" mapstructure:"min"`
	Max r3.Vec `json:"max" mapstructure:"max"`
}

func (Z *Zone) validate(C *Cell) error {
	lo := [3]float64{Z.Min.X, Z.Min.Y, Z.Min.Z}
	hi := [3]float64{Z.Max.X, Z.Max.Y, Z.Max.Z}
	for i := range lo {
		if lo[i] < 0 || hi[i] > C.box[i] || lo[i] >= hi[i] {
			return configError(fmt.Sprintf("zone %v-%v is empty or not inside the box %v", Z.Min, Z.Max, C.box), "validate")
		}
	}
	return nil
}

//SeedOptions are the options for Cell.Seed.
type SeedOptions struct {
	//MaxTries is the number of placements tried for each block. Default 500.
	MaxTries int
	//Center puts the first block at the center of the box, on the first try.
	Center bool
	//Zone restricts the positions of the blocks. nil means the whole box.
	Zone *Zone
}

//Seed adds n blocks of the given fragment type at random positions and orientations.
//If fragmentType is empty, a random template from the library is used for each block.
//Blocks that touch others in a bonding position are bonded to them.
//It returns the number of blocks added, which is less than n if a block couldn't be
//placed in MaxTries tries. Errors are only returned for configuration problems.
func (C *Cell) Seed(n int, fragmentType string, o SeedOptions) (int, error) {
	start := time.Now()
	if len(C.library) == 0 {
		return 0, configError("no templates in the library", "Seed")
	}
	if fragmentType != "" && C.library[fragmentType] == nil {
		return 0, configError(fmt.Sprintf("no template %s in the library", fragmentType), "Seed")
	}
	if o.Zone != nil {
		if err := o.Zone.validate(C); err != nil {
			return 0, errDecorate(err, "Seed")
		}
	}
	if o.MaxTries <= 0 {
		o.MaxTries = 500
	}
	names := C.TemplateNames()
	added, total := 0, 0
	for k := 0; k < n; k++ {
		name := fragmentType
		if name == "" {
			name = names[C.rng.Intn(len(names))]
		}
		b, err := frag.NewBlock(C.library[name])
		if err != nil {
			return added, wrap(err, ErrConfig, "Seed")
		}
		ok := false
		for tries := 0; tries < o.MaxTries; tries++ {
			total++
			if o.Center && k == 0 && tries == 0 {
				b.TranslateCentroidTo(C.box.Center())
			} else {
				C.randomMove(b, o.Zone)
			}
			if err := C.register(b, true); err != nil {
				return added, errDecorate(err, "Seed")
			}
			if C.checkMove(b.ID) == 0 {
				if made := C.processBonds(); made > 0 {
					C.log.Debug("seed made bonds", logging.Int("bonds", made))
				}
				ok = true
				break
			}
			C.evict(b.ID)
			if o.Center && k == 0 && tries == 0 {
				C.log.Warn("couldn't place the first seed at the center of the box")
			}
		}
		if !ok {
			C.log.Info("seed exceeded the maximum number of tries", logging.Int("added", added), logging.Int("max_tries", o.MaxTries))
			break
		}
		added++
	}
	C.record("seed", added, total, start)
	return added, nil
}
