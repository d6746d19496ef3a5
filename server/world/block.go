package world

import (
	"github.com/dm-vev/turbine/server/block/cube"
)

// Identity is the namespaced name of a block type, such as
// "extremereactors:basic_turbinerotorshaft". Two cells hold the same kind of
// block if and only if their identities are equal.
type Identity string

// Air is the identity of an empty cell.
const Air Identity = "minecraft:air"

// BlockSource represents a source for obtaining the identity of the block
// at a position. Implementations must not be mutated while a caller reads
// from them.
type BlockSource interface {
	// Identity returns the identity of the block at the position passed.
	// Positions that hold no block return Air.
	Identity(pos cube.Pos) Identity
}

// NeighbourHandler is notified when the block next to a position changes.
type NeighbourHandler interface {
	// NeighbourChanged is called for pos when the block at changedNeighbour,
	// which is directly adjacent to pos, was replaced.
	NeighbourChanged(pos, changedNeighbour cube.Pos)
}

// NopHandler implements NeighbourHandler and does nothing.
type NopHandler struct{}

// NeighbourChanged ...
func (NopHandler) NeighbourChanged(cube.Pos, cube.Pos) {}
