package turbine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dm-vev/turbine/server/block/cube"
	"github.com/dm-vev/turbine/server/turbine/rotor"
	"github.com/google/uuid"
)

const controllerID = "6f1c2a64-5d0e-4b8a-9a57-3e2f1b0c9d41"

const tomlLayout = `[[controller]]
id = "` + controllerID + `"
min = [-2, 62, -2]
max = [2, 66, 2]
active = true

[[block]]
pos = [0, 63, 0]
kind = "shaft"
owner = "` + controllerID + `"

[[block]]
pos = [0, 64, 0]
kind = "shaft"
variant = "reinforced"
owner = "` + controllerID + `"

[[block]]
pos = [1, 64, 0]
kind = "blade"
variant = "reinforced"
owner = "` + controllerID + `"

[[block]]
pos = [5, 64, 0]
identity = "minecraft:stone"
`

const yamlLayout = `block:
  - pos: [0, 64, 0]
    kind: shaft
  - pos: [0, 64, 1]
    kind: blade
  - pos: [0, 64, 2]
    kind: blade
  - pos: [3, 3, 3]
    identity: minecraft:stone
`

func writeLayout(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write layout: %v", err)
	}
	return path
}

func TestLoadLayoutTOML(t *testing.T) {
	l, err := LoadLayout(writeLayout(t, "layout.toml", tomlLayout))
	if err != nil {
		t.Fatalf("load layout: %v", err)
	}
	if len(l.Controllers) != 1 || len(l.Blocks) != 4 {
		t.Fatalf("unexpected layout %+v", l)
	}
	h := newTestHost()
	if err := l.Apply(h); err != nil {
		t.Fatalf("apply: %v", err)
	}

	id := uuid.MustParse(controllerID)
	if !h.AssembledAndActive(id) {
		t.Fatalf("expected active turbine")
	}
	c, ok := h.Component(cube.Pos{0, 64, 0})
	if !ok || c.Variant != rotor.VariantReinforced || c.Owner != id {
		t.Fatalf("unexpected component %+v", c)
	}
	if s, _ := h.State(cube.Pos{1, 64, 0}); s != "hidden" {
		t.Fatalf("expected hidden blade, got %q", s)
	}
	if s, _ := h.BladeState(cube.Pos{1, 64, 0}, true); s != rotor.BladeYXPos {
		t.Fatalf("expected %v, got %v", rotor.BladeYXPos, s)
	}
	if got := h.Grid().Identity(cube.Pos{5, 64, 0}); got != stone {
		t.Fatalf("expected stone, got %v", got)
	}
}

func TestLoadLayoutYAML(t *testing.T) {
	l, err := LoadLayout(writeLayout(t, "layout.yaml", yamlLayout))
	if err != nil {
		t.Fatalf("load layout: %v", err)
	}
	h := newTestHost()
	if err := l.Apply(h); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if s, _ := h.State(cube.Pos{0, 64, 2}); s != "y_z_pos" {
		t.Fatalf("expected chained blade y_z_pos, got %q", s)
	}
	if len(h.Components()) != 3 || h.Grid().Len() != 4 {
		t.Fatalf("expected 3 components in 4 blocks, got %d in %d", len(h.Components()), h.Grid().Len())
	}
}

func TestApplyInvalidLayout(t *testing.T) {
	tests := map[string]Layout{
		"short position":   {Blocks: []LayoutBlock{{Pos: []int{0, 1}, Kind: "shaft"}}},
		"unknown kind":     {Blocks: []LayoutBlock{{Pos: []int{0, 0, 0}, Kind: "rotor"}}},
		"unknown variant":  {Blocks: []LayoutBlock{{Pos: []int{0, 0, 0}, Kind: "blade", Variant: "gold"}}},
		"empty block":      {Blocks: []LayoutBlock{{Pos: []int{0, 0, 0}}}},
		"bad owner":        {Blocks: []LayoutBlock{{Pos: []int{0, 0, 0}, Kind: "shaft", Owner: "nope"}}},
		"bad controller":   {Controllers: []LayoutController{{ID: "nope", Min: []int{0, 0, 0}, Max: []int{4, 4, 4}}}},
		"short controller": {Controllers: []LayoutController{{Min: []int{0, 0}, Max: []int{4, 4, 4}}}},
	}
	for name, l := range tests {
		if err := l.Apply(newTestHost()); !errors.Is(err, ErrInvalidLayout) {
			t.Fatalf("%v: expected ErrInvalidLayout, got %v", name, err)
		}
	}
}
