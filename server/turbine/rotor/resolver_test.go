package rotor

import (
	"testing"

	"github.com/dm-vev/turbine/server/block/cube"
	"github.com/dm-vev/turbine/server/world"
	"github.com/google/uuid"
)

var (
	basic      = DefaultVariantTable().Lookup(VariantBasic)
	reinforced = DefaultVariantTable().Lookup(VariantReinforced)
)

type assembly map[uuid.UUID]bool

func (a assembly) AssembledAndActive(owner uuid.UUID) bool {
	return a[owner]
}

// failingSource fails the test if the grid is read.
type failingSource struct {
	t *testing.T
}

func (s failingSource) Identity(pos cube.Pos) world.Identity {
	s.t.Fatalf("unexpected grid read at %v", pos)
	return world.Air
}

func newGrid(blocks map[cube.Pos]world.Identity) *world.Grid {
	g := world.NewGrid(nil)
	for pos, id := range blocks {
		g.SetBlock(pos, id)
	}
	return g
}

func TestShaftState(t *testing.T) {
	origin := cube.Pos{0, 64, 0}
	tests := []struct {
		name   string
		blocks map[cube.Pos]world.Identity
		want   ShaftState
	}{
		{"isolated", nil, ShaftYNoBlades},
		{"vertical", map[cube.Pos]world.Identity{origin.Side(cube.FaceUp): basic.Shaft}, ShaftYNoBlades},
		{"vertical blade x", map[cube.Pos]world.Identity{
			origin.Side(cube.FaceUp):   basic.Shaft,
			origin.Side(cube.FaceEast): basic.Blade,
		}, ShaftYX},
		{"vertical blades on both x sides", map[cube.Pos]world.Identity{
			origin.Side(cube.FaceEast): basic.Blade,
			origin.Side(cube.FaceWest): basic.Blade,
		}, ShaftYX},
		{"vertical blade z", map[cube.Pos]world.Identity{origin.Side(cube.FaceNorth): basic.Blade}, ShaftYZ},
		{"vertical blades xz", map[cube.Pos]world.Identity{
			origin.Side(cube.FaceSouth): basic.Blade,
			origin.Side(cube.FaceWest):  basic.Blade,
		}, ShaftYXZ},
		{"horizontal x", map[cube.Pos]world.Identity{origin.Side(cube.FaceEast): basic.Shaft}, ShaftXNoBlades},
		{"horizontal x blade y", map[cube.Pos]world.Identity{
			origin.Side(cube.FaceWest): basic.Shaft,
			origin.Side(cube.FaceDown): basic.Blade,
		}, ShaftXY},
		{"horizontal x blade z", map[cube.Pos]world.Identity{
			origin.Side(cube.FaceWest):  basic.Shaft,
			origin.Side(cube.FaceNorth): basic.Blade,
		}, ShaftXZ},
		{"horizontal x blades yz", map[cube.Pos]world.Identity{
			origin.Side(cube.FaceEast):  basic.Shaft,
			origin.Side(cube.FaceUp):    basic.Blade,
			origin.Side(cube.FaceSouth): basic.Blade,
		}, ShaftXYZ},
		{"horizontal z blade x", map[cube.Pos]world.Identity{
			origin.Side(cube.FaceSouth): basic.Shaft,
			origin.Side(cube.FaceEast):  basic.Blade,
		}, ShaftZX},
		{"horizontal z blade y", map[cube.Pos]world.Identity{
			origin.Side(cube.FaceNorth): basic.Shaft,
			origin.Side(cube.FaceUp):    basic.Blade,
		}, ShaftZY},
		{"horizontal z blades xy", map[cube.Pos]world.Identity{
			origin.Side(cube.FaceNorth): basic.Shaft,
			origin.Side(cube.FaceDown):  basic.Blade,
			origin.Side(cube.FaceWest):  basic.Blade,
		}, ShaftZXY},
		{"first shaft neighbour wins", map[cube.Pos]world.Identity{
			origin.Side(cube.FaceDown): basic.Shaft,
			origin.Side(cube.FaceEast): basic.Shaft,
			origin.Side(cube.FaceWest): basic.Blade,
		}, ShaftYX},
		{"blade along shaft axis ignored", map[cube.Pos]world.Identity{
			origin.Side(cube.FaceEast): basic.Shaft,
			origin.Side(cube.FaceWest): basic.Blade,
		}, ShaftXNoBlades},
		{"other variant ignored", map[cube.Pos]world.Identity{
			origin.Side(cube.FaceUp):    reinforced.Shaft,
			origin.Side(cube.FaceEast):  reinforced.Shaft,
			origin.Side(cube.FaceNorth): reinforced.Blade,
		}, ShaftYNoBlades},
		{"unrelated blocks ignored", map[cube.Pos]world.Identity{
			origin.Side(cube.FaceUp):   "minecraft:stone",
			origin.Side(cube.FaceEast): "minecraft:iron_block",
		}, ShaftYNoBlades},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Config{Source: newGrid(tt.blocks)}.New()
			if got := r.ShaftState(Cell{Pos: origin}, false); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestShaftStateReinforced(t *testing.T) {
	origin := cube.Pos{}
	g := newGrid(map[cube.Pos]world.Identity{
		origin.Side(cube.FaceEast):  reinforced.Shaft,
		origin.Side(cube.FaceNorth): reinforced.Blade,
		origin.Side(cube.FaceUp):    basic.Blade,
	})
	r := Config{Source: g}.New()
	if got := r.ShaftState(Cell{Pos: origin, Variant: VariantReinforced}, true); got != ShaftXZ {
		t.Fatalf("expected %v, got %v", ShaftXZ, got)
	}
}

func TestHiddenWhenAssemblyActive(t *testing.T) {
	owner := uuid.New()
	r := Config{Source: failingSource{t: t}, Assembly: assembly{owner: true}}.New()
	c := Cell{Pos: cube.Pos{1, 2, 3}, Owner: owner}
	if got := r.ShaftState(c, false); got != ShaftHidden {
		t.Fatalf("expected hidden shaft, got %v", got)
	}
	if got := r.BladeState(c, false); got != BladeHidden {
		t.Fatalf("expected hidden blade, got %v", got)
	}
}

func TestAssemblyStatusIgnored(t *testing.T) {
	owner := uuid.New()
	origin := cube.Pos{}
	g := newGrid(map[cube.Pos]world.Identity{origin.Side(cube.FaceEast): basic.Blade})
	r := Config{Source: g, Assembly: assembly{owner: true}}.New()
	c := Cell{Pos: origin, Owner: owner}
	if got := r.ShaftState(c, true); got != ShaftYX {
		t.Fatalf("expected %v, got %v", ShaftYX, got)
	}

	inactiveOwner := Cell{Pos: origin, Owner: uuid.New()}
	if got := r.ShaftState(inactiveOwner, false); got != ShaftYX {
		t.Fatalf("expected %v for an inactive owner, got %v", ShaftYX, got)
	}
}

func TestBladeStateAdjacentShaft(t *testing.T) {
	shaft := cube.Pos{0, 64, 0}
	blade := shaft.Side(cube.FaceWest)
	blocks := map[cube.Pos]world.Identity{
		shaft:                     basic.Shaft,
		shaft.Side(cube.FaceUp):   basic.Shaft,
		shaft.Side(cube.FaceDown): basic.Shaft,
		blade:                     basic.Blade,
	}
	g := newGrid(blocks)
	r := Config{Source: g}.New()

	want := DeriveBladeState(r.ShaftState(Cell{Pos: shaft}, true), cube.FaceEast)
	if want != BladeYXNeg {
		t.Fatalf("expected derived state %v, got %v", BladeYXNeg, want)
	}
	if got := r.BladeState(Cell{Pos: blade}, false); got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}

	// Neighbours of the blade other than the shaft do not affect the result.
	for _, f := range []cube.Face{cube.FaceDown, cube.FaceUp, cube.FaceNorth, cube.FaceSouth, cube.FaceWest} {
		for _, id := range []world.Identity{basic.Blade, "minecraft:stone", reinforced.Shaft} {
			g.SetBlock(blade.Side(f), id)
			if got := r.BladeState(Cell{Pos: blade}, false); got != want {
				t.Fatalf("neighbour %v set to %v: expected %v, got %v", f, id, want, got)
			}
			g.SetBlock(blade.Side(f), world.Air)
		}
	}
}

func TestBladeStateFirstShaftWins(t *testing.T) {
	blade := cube.Pos{}
	g := newGrid(map[cube.Pos]world.Identity{
		blade.Side(cube.FaceNorth): basic.Shaft,
		blade.Side(cube.FaceEast):  basic.Shaft,
	})
	r := Config{Source: g}.New()
	// The shaft to the north has no shaft neighbours and is vertical; the
	// blade sits on its south side.
	if got := r.BladeState(Cell{Pos: blade}, true); got != BladeYZPos {
		t.Fatalf("expected %v, got %v", BladeYZPos, got)
	}
}

func TestBladeStateParallelToShaft(t *testing.T) {
	blade := cube.Pos{}
	g := newGrid(map[cube.Pos]world.Identity{
		blade.Side(cube.FaceDown): basic.Shaft,
	})
	r := Config{Source: g}.New()
	if got := r.BladeState(Cell{Pos: blade}, true); got != DefaultBladeState {
		t.Fatalf("expected %v, got %v", DefaultBladeState, got)
	}
}

func TestBladeStateChain(t *testing.T) {
	shaft := cube.Pos{0, 64, 0}
	blocks := map[cube.Pos]world.Identity{
		shaft:                   basic.Shaft,
		shaft.Side(cube.FaceUp): basic.Shaft,
	}
	for x := 1; x <= 4; x++ {
		blocks[cube.Pos{x, 64, 0}] = basic.Blade
	}
	g := newGrid(blocks)
	r := Config{Source: g}.New()

	origin := cube.Pos{4, 64, 0}
	want := DeriveBladeState(r.ShaftState(Cell{Pos: shaft}, true), cube.FaceWest)
	if want != BladeYXPos {
		t.Fatalf("expected derived state %v, got %v", BladeYXPos, want)
	}
	if got := r.BladeState(Cell{Pos: origin}, false); got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for x := 1; x <= 3; x++ {
		if got := r.BladeState(Cell{Pos: cube.Pos{x, 64, 0}}, false); got != want {
			t.Fatalf("blade at x=%d: expected %v, got %v", x, want, got)
		}
	}
}

func TestBladeStateChainUsesSearchDirection(t *testing.T) {
	// A horizontal shaft along Z with a blade column on top of it. The blade
	// at the top reaches the shaft walking down.
	shaft := cube.Pos{0, 0, 0}
	blocks := map[cube.Pos]world.Identity{
		shaft:                      basic.Shaft,
		shaft.Side(cube.FaceSouth): basic.Shaft,
	}
	for y := 1; y <= 4; y++ {
		blocks[cube.Pos{0, y, 0}] = basic.Blade
	}
	r := Config{Source: newGrid(blocks)}.New()
	if got := r.BladeState(Cell{Pos: cube.Pos{0, 4, 0}}, true); got != BladeZYPos {
		t.Fatalf("expected %v, got %v", BladeZYPos, got)
	}
}

func TestBladeStateChainBroken(t *testing.T) {
	shaft := cube.Pos{0, 0, 0}
	blocks := map[cube.Pos]world.Identity{
		shaft:             basic.Shaft,
		cube.Pos{1, 0, 0}: "minecraft:stone",
		cube.Pos{2, 0, 0}: basic.Blade,
		cube.Pos{3, 0, 0}: basic.Blade,
		cube.Pos{3, 0, 1}: reinforced.Blade,
		cube.Pos{3, 0, 2}: reinforced.Shaft,
	}
	r := Config{Source: newGrid(blocks)}.New()
	if got := r.BladeState(Cell{Pos: cube.Pos{3, 0, 0}}, true); got != DefaultBladeState {
		t.Fatalf("expected %v, got %v", DefaultBladeState, got)
	}
}

func TestBladeStateChainLimit(t *testing.T) {
	shaft := cube.Pos{0, 0, 0}
	blocks := map[cube.Pos]world.Identity{shaft: basic.Shaft}
	for z := 1; z <= 4; z++ {
		blocks[cube.Pos{0, 0, z}] = basic.Blade
	}
	g := newGrid(blocks)
	origin := Cell{Pos: cube.Pos{0, 0, 4}}

	if got := (Config{Source: g, MaxBladeChain: 2}).New().BladeState(origin, true); got != DefaultBladeState {
		t.Fatalf("expected chain longer than the limit to fail, got %v", got)
	}
	if got := (Config{Source: g, MaxBladeChain: 3}).New().BladeState(origin, true); got != BladeYZPos {
		t.Fatalf("expected %v, got %v", BladeYZPos, got)
	}
}

func TestBladeStateIsolated(t *testing.T) {
	origin := cube.Pos{5, 5, 5}
	blocks := map[cube.Pos]world.Identity{}
	for i, f := range cube.Faces() {
		if i%2 == 0 {
			blocks[origin.Side(f)] = "minecraft:stone"
		}
	}
	r := Config{Source: newGrid(blocks)}.New()
	got := r.BladeState(Cell{Pos: origin}, false)
	if got != DefaultBladeState || got == BladeHidden {
		t.Fatalf("expected %v, got %v", DefaultBladeState, got)
	}
}

func TestResolveIsIdempotentAndPure(t *testing.T) {
	shaft := cube.Pos{}
	blocks := map[cube.Pos]world.Identity{
		shaft:                      basic.Shaft,
		shaft.Side(cube.FaceEast):  basic.Shaft,
		shaft.Side(cube.FaceUp):    basic.Blade,
		cube.Pos{0, 2, 0}:          basic.Blade,
		shaft.Side(cube.FaceNorth): basic.Blade,
	}
	g := newGrid(blocks)
	before := g.Checksum()
	r := Config{Source: g}.New()

	for pos := range blocks {
		c := Cell{Pos: pos}
		s1, s2 := r.ShaftState(c, true), r.ShaftState(c, true)
		b1, b2 := r.BladeState(c, true), r.BladeState(c, true)
		if s1 != s2 || b1 != b2 {
			t.Fatalf("expected identical results at %v: %v/%v %v/%v", pos, s1, s2, b1, b2)
		}
	}
	if g.Checksum() != before || g.Len() != len(blocks) {
		t.Fatalf("expected grid to be left untouched")
	}
}

func TestUnknownVariantMatchesNothing(t *testing.T) {
	origin := cube.Pos{}
	g := newGrid(map[cube.Pos]world.Identity{
		origin.Side(cube.FaceEast):  basic.Shaft,
		origin.Side(cube.FaceNorth): basic.Blade,
	})
	r := Config{Source: g}.New()
	c := Cell{Pos: origin, Variant: Variant(9)}
	if got := r.ShaftState(c, true); got != ShaftYNoBlades {
		t.Fatalf("expected %v, got %v", ShaftYNoBlades, got)
	}
	if got := r.BladeState(c, true); got != DefaultBladeState {
		t.Fatalf("expected %v, got %v", DefaultBladeState, got)
	}
}
