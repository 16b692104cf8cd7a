/*
 * cell.go, part of gocell.
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
	"math"
	"math/rand"
	"sort"

	"github.com/google/uuid"
	"github.com/rmera/gocell/frag"
	"github.com/rmera/gocell/grid"
	"github.com/rmera/gocell/logging"
	"github.com/rmera/gocell/pbc"
	"gonum.org/v1/gonum/spatial/r3"
)

//Params holds the tolerances of a Cell. Angles are in radians, lengths in A.
type Params struct {
	//AtomMargin is added to the sum of the radii of two atoms before they are considered to clash.
	AtomMargin float64 `json:"atom_margin" mapstructure:"atom_margin"`
	//BondMargin is the tolerance on the bond length when bonding.
	BondMargin float64 `json:"bond_margin" mapstructure:"bond_margin"`
	//BondAngleMargin is the tolerance on the bond angles when bonding.
	BondAngleMargin float64 `json:"bond_angle_margin" mapstructure:"bond_angle_margin"`
	//The tolerances used by Zip when not given.
	ZipBondMargin  float64 `json:"zip_bond_margin" mapstructure:"zip_bond_margin"`
	ZipAngleMargin float64 `json:"zip_angle_margin" mapstructure:"zip_angle_margin"`
	Seed           int64   `json:"seed" mapstructure:"seed"`
}

//DefaultParams returns the default tolerances.
func DefaultParams() Params {
	return Params{
		AtomMargin:      0.5,
		BondMargin:      0.5,
		BondAngleMargin: 15 * math.Pi / 180,
		ZipBondMargin:   0.5,
		ZipAngleMargin:  30 * math.Pi / 180,
		Seed:            1,
	}
}

func (p Params) validate() error {
	if p.AtomMargin < 0 || p.BondMargin < 0 || p.BondAngleMargin < 0 || p.ZipBondMargin < 0 || p.ZipAngleMargin < 0 {
		return configError(fmt.Sprintf("margins can't be negative: %+v", p), "validate")
	}
	if p.BondAngleMargin > math.Pi || p.ZipAngleMargin > math.Pi {
		return configError("angle margins must be given in radians, and be at most Pi", "validate")
	}
	return nil
}

//Cell is a periodic simulation cell where blocks are seeded, grown, joined and zipped.
//A Cell is not safe for concurrent use.
type Cell struct {
	ID         uuid.UUID
	box        pbc.Box
	params     Params
	grid       *grid.Grid
	blocks     map[int]*frag.Block
	library    map[string]*frag.Template
	bonds      *BondTable
	rng        *rand.Rand
	candidates []*frag.Bond
	log        logging.Logger
	obs        Observer
	selector   Selector
	steps      []Step
	nextID     int
}

//Option configures a Cell.
type Option func(*Cell)

//WithLogger sets the logger of the Cell. The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(C *Cell) {
		if l != nil {
			C.log = l
		}
	}
}

//WithObserver sets the Observer that receives the events of the Cell.
func WithObserver(o Observer) Option {
	return func(C *Cell) {
		if o != nil {
			C.obs = o
		}
	}
}

//WithSelector sets the Selector used by Grow to choose library EndGroup types.
//The default is a UniformSelector.
func WithSelector(s Selector) Option {
	return func(C *Cell) {
		if s != nil {
			C.selector = s
		}
	}
}

//New returns an empty cell with the given box. Every box length must be positive.
func New(box pbc.Box, p Params, opts ...Option) (*Cell, error) {
	for i, d := range box {
		if !(d > 0) {
			return nil, configError(fmt.Sprintf("box length %d must be positive, got %v", i, d), "New")
		}
	}
	if err := p.validate(); err != nil {
		return nil, wrap(err, ErrConfig, "New")
	}
	C := &Cell{
		ID:       uuid.New(),
		box:      box,
		params:   p,
		blocks:   make(map[int]*frag.Block),
		library:  make(map[string]*frag.Template),
		bonds:    NewBondTable(),
		rng:      rand.New(rand.NewSource(p.Seed)),
		log:      logging.NewNop(),
		obs:      nopObserver{},
		selector: UniformSelector{},
	}
	for _, o := range opts {
		o(C)
	}
	var err error
	//the real size is set when templates are added.
	C.grid, err = grid.New(box, box.Min(), C.lookup)
	if err != nil {
		return nil, wrap(err, ErrConfig, "New")
	}
	C.log = C.log.With(logging.String("cell", C.ID.String()))
	return C, nil
}

//Box returns the box of the cell.
func (C *Cell) Box() pbc.Box { return C.box }

//Params returns the tolerances of the cell.
func (C *Cell) Params() Params { return C.params }

//GridSize returns the size of the cells of the spatial grid.
func (C *Cell) GridSize() float64 { return C.grid.Size() }

//BondTable returns the bond types allowed in the cell.
func (C *Cell) BondTable() *BondTable { return C.bonds }

//lookup must return a nil interface, not a nil *frag.Block, for missing blocks.
func (C *Cell) lookup(id int) grid.Body {
	b, ok := C.blocks[id]
	if !ok {
		return nil
	}
	return b
}

//AddTemplate adds a fragment template to the library, and resizes the grid
//if needed. The template is validated, and it must fit in the box.
func (C *Cell) AddTemplate(t *frag.Template) error {
	if err := t.Validate(); err != nil {
		return wrap(err, ErrConfig, "AddTemplate")
	}
	if _, ok := C.library[t.Name]; ok {
		return configError(fmt.Sprintf("template %s already in the library", t.Name), "AddTemplate")
	}
	if r := t.Radius(); r > C.box.Min()/2 {
		return configError(fmt.Sprintf("template %s has radius %.3f, larger than half the smallest box length", t.Name, r), "AddTemplate")
	}
	C.library[t.Name] = t
	if err := C.updateGridSize(); err != nil {
		delete(C.library, t.Name)
		return wrap(err, ErrConfig, "AddTemplate")
	}
	return nil
}

//Template returns the library template with the given name, or nil.
func (C *Cell) Template(name string) *frag.Template {
	return C.library[name]
}

//TemplateNames returns the names of the library templates, sorted.
func (C *Cell) TemplateNames() []string {
	ret := make([]string, 0, len(C.library))
	for k := range C.library {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

//AddBondType allows bonds between two EndGroup types, given as "fragA:egA-fragB:egB".
func (C *Cell) AddBondType(spec string) error {
	return wrap(C.bonds.Add(spec, C.library), ErrConfig, "AddBondType")
}

func (C *Cell) symbols() []string {
	set := make(map[string]bool)
	var ret []string
	for _, name := range C.TemplateNames() {
		for _, s := range C.library[name].Symbols() {
			if !set[s] {
				set[s] = true
				ret = append(ret, s)
			}
		}
	}
	return ret
}

//boxSize is the largest distance at which two atoms can clash or bond.
func (C *Cell) boxSize() float64 {
	var maxr float64
	for _, t := range C.library {
		maxr = math.Max(maxr, t.MaxAtomRadius())
	}
	clash := 2*maxr + C.params.AtomMargin
	bond := frag.MaxBondLength(C.symbols()) + C.params.BondMargin
	return math.Max(clash, bond) + 0.01
}

func (C *Cell) updateGridSize() error {
	size := C.boxSize()
	if size == C.grid.Size() {
		return nil
	}
	C.log.Debug("resizing grid", logging.Float64("size", size))
	return C.grid.Resize(C.box, size)
}

//register adds b to the arena and the grid. Blocks with a negative ID get a new
//handle. If check is true, the block must fit in the box.
func (C *Cell) register(b *frag.Block, check bool) error {
	if b.ID < 0 {
		b.SetID(C.nextID)
		C.nextID++
	}
	if _, ok := C.blocks[b.ID]; ok {
		panic(ErrRegistered)
	}
	C.blocks[b.ID] = b
	if !check {
		C.grid.Reinsert(b.ID, b)
		return nil
	}
	if err := C.grid.Insert(b.ID, b); err != nil {
		delete(C.blocks, b.ID)
		return wrap(err, ErrConfig, "register")
	}
	return nil
}

//evict removes a block from the arena and the grid. The block keeps its ID.
func (C *Cell) evict(id int) {
	C.grid.Remove(id)
	delete(C.blocks, id)
}

//block returns the live block with the handle id, and panics if there is none.
func (C *Cell) block(id int) *frag.Block {
	b, ok := C.blocks[id]
	if !ok {
		panic(ErrUnknownBlock)
	}
	return b
}

//AddBlock adds a block, for instance one built with frag.NewBlock and placed by
//the caller, to the cell without any clash check, and returns its handle.
func (C *Cell) AddBlock(b *frag.Block) (int, error) {
	b.SetID(-1)
	if err := C.register(b, true); err != nil {
		return -1, errDecorate(err, "AddBlock")
	}
	return b.ID, nil
}

//RemoveBlock removes a block from the cell. It does nothing if there is no such block.
func (C *Cell) RemoveBlock(id int) {
	C.evict(id)
}

//Block returns the block with the given handle, or nil.
func (C *Cell) Block(id int) *frag.Block {
	return C.blocks[id]
}

//Blocks returns the live blocks, sorted by handle.
func (C *Cell) Blocks() []*frag.Block {
	ids := C.ids()
	ret := make([]*frag.Block, len(ids))
	for i, id := range ids {
		ret[i] = C.blocks[id]
	}
	return ret
}

//NumBlocks returns the number of live blocks.
func (C *Cell) NumBlocks() int { return len(C.blocks) }

func (C *Cell) ids() []int {
	ids := make([]int, 0, len(C.blocks))
	for id := range C.blocks {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

//repopulate rebuilds the grid from the blocks in the arena.
func (C *Cell) repopulate() {
	C.grid.Clear()
	for _, id := range C.ids() {
		C.grid.Reinsert(id, C.blocks[id])
	}
}

//randomPosition returns a random point in the box, or in zone if not nil.
func (C *Cell) randomPosition(zone *Zone) r3.Vec {
	lo, hi := r3.Vec{}, r3.Vec{X: C.box[0], Y: C.box[1], Z: C.box[2]}
	if zone != nil {
		lo, hi = zone.Min, zone.Max
	}
	return r3.Vec{
		X: lo.X + C.rng.Float64()*(hi.X-lo.X),
		Y: lo.Y + C.rng.Float64()*(hi.Y-lo.Y),
		Z: lo.Z + C.rng.Float64()*(hi.Z-lo.Z),
	}
}

//randomMove rotates b randomly and moves its centroid to a random point.
func (C *Cell) randomMove(b *frag.Block, zone *Zone) {
	b.RandomRotate(C.rng)
	b.TranslateCentroidTo(C.randomPosition(zone))
}

func errDecorate(err error, caller string) error {
	if e, ok := err.(*Error); ok {
		e.Decorate(caller)
	}
	return err
}
