package rotor

import (
	"log/slog"

	"github.com/dm-vev/turbine/server/block/cube"
	"github.com/dm-vev/turbine/server/world"
	"github.com/google/uuid"
)

// DefaultMaxBladeChain is the default maximum number of blades walked when
// looking for the shaft a blade is attached to. It matches the largest span
// of a turbine.
const DefaultMaxBladeChain = 32

// AssemblyStatus reports the status of the turbine that owns rotor
// components.
type AssemblyStatus interface {
	// AssembledAndActive reports if the turbine with the ID passed is both
	// assembled and active. uuid.Nil is never active.
	AssembledAndActive(owner uuid.UUID) bool
}

// Cell is a rotor component placed in the grid.
type Cell struct {
	// Pos is the position of the component.
	Pos cube.Pos
	// Variant is the variant of the component. It selects the shaft and
	// blade identities the neighbours of the cell are compared against.
	Variant Variant
	// Owner is the ID of the turbine controller the component belongs to,
	// or uuid.Nil if it is not part of a turbine.
	Owner uuid.UUID
}

// Config holds the collaborators of a Resolver. Only Source is required.
type Config struct {
	// Log is the Logger used to report rotor blades whose chain exceeds
	// MaxBladeChain. If nil, Log is set to slog.Default().
	Log *slog.Logger
	// Source is the grid the neighbours of a cell are read from.
	Source world.BlockSource
	// Variants maps every Variant to its block identities. If left as the
	// zero value, DefaultVariantTable is used.
	Variants VariantTable
	// Assembly reports if the owner of a cell is assembled and active. If
	// nil, no owner is ever considered active.
	Assembly AssemblyStatus
	// MaxBladeChain is the maximum number of blades walked past when a blade
	// is connected to its shaft through other blades. If 0 or lower,
	// DefaultMaxBladeChain is used.
	MaxBladeChain int
}

// New creates a Resolver using the fields of conf.
func (conf Config) New() *Resolver {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Source == nil {
		conf.Source = emptySource{}
	}
	if conf.Variants == (VariantTable{}) {
		conf.Variants = DefaultVariantTable()
	}
	if conf.Assembly == nil {
		conf.Assembly = inactive{}
	}
	if conf.MaxBladeChain <= 0 {
		conf.MaxBladeChain = DefaultMaxBladeChain
	}
	return &Resolver{conf: conf}
}

// Resolver computes the adjacency states of rotor shafts and blades from a
// read-only BlockSource. States are never cached: every call reads the
// current neighbours of the cell. A Resolver never modifies its source.
type Resolver struct {
	conf Config
}

// Variants returns the VariantTable the Resolver matches identities with.
func (r *Resolver) Variants() VariantTable {
	return r.conf.Variants
}

// ShaftState computes the state of the shaft in cell c. If
// ignoreAssemblyStatus is false and the owner of c is assembled and active,
// ShaftHidden is returned without reading the grid.
func (r *Resolver) ShaftState(c Cell, ignoreAssemblyStatus bool) ShaftState {
	if !ignoreAssemblyStatus && r.conf.Assembly.AssembledAndActive(c.Owner) {
		return ShaftHidden
	}
	return r.shaftState(c)
}

// BladeState computes the state of the blade in cell c. If
// ignoreAssemblyStatus is false and the owner of c is assembled and active,
// BladeHidden is returned without reading the grid.
func (r *Resolver) BladeState(c Cell, ignoreAssemblyStatus bool) BladeState {
	if !ignoreAssemblyStatus && r.conf.Assembly.AssembledAndActive(c.Owner) {
		return BladeHidden
	}
	return r.bladeState(c)
}

// shaftState orients the shaft along the axis of its first neighbouring
// shaft, or vertically if it has none, and collects the perpendicular axes
// holding blades.
func (r *Resolver) shaftState(c Cell) ShaftState {
	ids := r.conf.Variants.Lookup(c.Variant)
	neighbours := r.neighbours(c.Pos)

	axis := cube.Y
	for _, f := range cube.Faces() {
		if matches(neighbours[f], ids.Shaft) {
			axis = f.Axis()
			break
		}
	}

	var blades [2]bool
	perpendicular := axis.Perpendicular()
	for _, f := range axis.PerpendicularFaces() {
		if !matches(neighbours[f], ids.Blade) {
			continue
		}
		if f.Axis() == perpendicular[0] {
			blades[0] = true
		} else {
			blades[1] = true
		}
	}
	return ShaftStateOf(axis, blades)
}

// bladeState derives the state of a blade from the first directly adjacent
// shaft or, failing that, from the first straight chain of blades that ends
// in a shaft.
func (r *Resolver) bladeState(c Cell) BladeState {
	ids := r.conf.Variants.Lookup(c.Variant)
	neighbours := r.neighbours(c.Pos)

	for _, f := range cube.Faces() {
		if matches(neighbours[f], ids.Shaft) {
			return DeriveBladeState(r.shaftState(Cell{Pos: c.Pos.Side(f), Variant: c.Variant, Owner: c.Owner}), f)
		}
	}
	for _, f := range cube.Faces() {
		if !matches(neighbours[f], ids.Blade) {
			continue
		}
		if state, ok := r.bladeChain(c, f, ids); ok {
			return state
		}
	}
	return DefaultBladeState
}

// bladeChain walks from the blade next to c on face f further along f, past
// consecutive blades, until it finds a shaft. False is returned if the chain
// ends in any other block or is longer than the configured maximum.
func (r *Resolver) bladeChain(c Cell, f cube.Face, ids Identities) (BladeState, bool) {
	pos := c.Pos.Side(f)
	for i := 0; i < r.conf.MaxBladeChain; i++ {
		pos = pos.Side(f)
		id := r.conf.Source.Identity(pos)
		if matches(id, ids.Shaft) {
			return DeriveBladeState(r.shaftState(Cell{Pos: pos, Variant: c.Variant, Owner: c.Owner}), f), true
		}
		if !matches(id, ids.Blade) {
			return 0, false
		}
	}
	r.conf.Log.Debug("rotor: blade chain exceeds maximum length", "pos", c.Pos, "face", f, "max", r.conf.MaxBladeChain)
	return 0, false
}

// neighbours reads the identities of the six neighbours of pos, indexed by
// cube.Face.
func (r *Resolver) neighbours(pos cube.Pos) [6]world.Identity {
	var identities [6]world.Identity
	for i, n := range pos.Neighbours() {
		identities[i] = r.conf.Source.Identity(n)
	}
	return identities
}

// matches reports if id is the block identity want. An empty want matches
// nothing.
func matches(id, want world.Identity) bool {
	return want != "" && id == want
}

type emptySource struct{}

func (emptySource) Identity(cube.Pos) world.Identity { return world.Air }

type inactive struct{}

func (inactive) AssembledAndActive(uuid.UUID) bool { return false }
