package world

import (
	"slices"

	"github.com/brentp/intintmap"
	"github.com/dm-vev/turbine/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/segmentio/fasthash/fnv1a"
)

// posBits is the number of bits used for each coordinate of a packed
// position. Coordinates outside [-2^20, 2^20) cannot be stored: reads
// return Air and writes are ignored.
const posBits = 21

const (
	posMask = 1<<posBits - 1
	posMin  = -(1 << (posBits - 1))
	posMax  = 1<<(posBits-1) - 1
)

// Grid is a sparse, in-memory block grid. It implements BlockSource and
// notifies NeighbourHandlers when a block changes. A Grid is not safe for
// concurrent use: the host serialises all reads and writes on its
// simulation goroutine.
type Grid struct {
	reg      *Registry
	blocks   *intintmap.Map
	handlers []NeighbourHandler
}

// NewGrid creates an empty Grid. If reg is nil, a new Registry is created.
func NewGrid(reg *Registry) *Grid {
	if reg == nil {
		reg = NewRegistry()
	}
	return &Grid{reg: reg, blocks: intintmap.New(256, 0.6)}
}

// Registry returns the Registry used to assign runtime IDs to the blocks of
// the Grid.
func (g *Grid) Registry() *Registry {
	return g.reg
}

// Handle adds a NeighbourHandler that is notified of block changes.
func (g *Grid) Handle(h NeighbourHandler) {
	if h == nil {
		h = NopHandler{}
	}
	g.handlers = append(g.handlers, h)
}

// Identity returns the identity of the block at pos, or Air if no block was
// set there.
func (g *Grid) Identity(pos cube.Pos) Identity {
	key, ok := packPos(pos)
	if !ok {
		return Air
	}
	rid, ok := g.blocks.Get(key)
	if !ok {
		return Air
	}
	id, _ := g.reg.Identity(uint32(rid))
	return id
}

// SetBlock sets the block at pos to id. Setting Air removes the block. If
// the block changed, every handler is notified for each of the six
// neighbours of pos, in the order of cube.Faces.
func (g *Grid) SetBlock(pos cube.Pos, id Identity) {
	if id == "" {
		id = Air
	}
	key, ok := packPos(pos)
	if !ok || g.Identity(pos) == id {
		return
	}
	if id == Air {
		g.blocks.Del(key)
	} else {
		g.blocks.Put(key, int64(g.reg.Register(id)))
	}
	for _, n := range pos.Neighbours() {
		for _, h := range g.handlers {
			h.NeighbourChanged(n, pos)
		}
	}
}

// Len returns the number of non-air blocks in the Grid.
func (g *Grid) Len() int {
	return g.blocks.Size()
}

// Positions returns the positions of all non-air blocks, sorted by x, then
// y, then z.
func (g *Grid) Positions() []cube.Pos {
	positions := make([]cube.Pos, 0, g.blocks.Size())
	for key := range g.blocks.Keys() {
		positions = append(positions, unpackPos(key))
	}
	slices.SortFunc(positions, comparePos)
	return positions
}

// Bounds returns the minimum and maximum corners of the box enclosing all
// non-air blocks. Both are zero if the Grid is empty.
func (g *Grid) Bounds() (lo, hi mgl64.Vec3) {
	positions := g.Positions()
	if len(positions) == 0 {
		return
	}
	a, b := positions[0], positions[0]
	for _, p := range positions[1:] {
		for i := 0; i < 3; i++ {
			a[i] = min(a[i], p[i])
			b[i] = max(b[i], p[i])
		}
	}
	return a.Vec3(), b.Add(cube.Pos{1, 1, 1}).Vec3()
}

// Checksum returns a hash of the contents of the Grid that does not depend
// on the order in which blocks were set.
func (g *Grid) Checksum() uint64 {
	var sum uint64
	for item := range g.blocks.Items() {
		id, _ := g.reg.Identity(uint32(item[1]))
		h := fnv1a.AddUint64(fnv1a.Init64, uint64(item[0]))
		sum += fnv1a.AddString64(h, string(id))
	}
	return sum
}

// InRange reports if a Grid can store a block at pos.
func InRange(pos cube.Pos) bool {
	for _, v := range pos {
		if v < posMin || v > posMax {
			return false
		}
	}
	return true
}

func packPos(pos cube.Pos) (int64, bool) {
	if !InRange(pos) {
		return 0, false
	}
	return int64(pos[0]&posMask)<<(2*posBits) | int64(pos[1]&posMask)<<posBits | int64(pos[2]&posMask), true
}

func unpackPos(key int64) cube.Pos {
	return cube.Pos{
		signExtend(key >> (2 * posBits)),
		signExtend(key >> posBits),
		signExtend(key),
	}
}

func signExtend(v int64) int {
	v &= posMask
	if v > posMax {
		v -= 1 << posBits
	}
	return int(v)
}

func comparePos(a, b cube.Pos) int {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
