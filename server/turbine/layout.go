package turbine

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dm-vev/turbine/server/block/cube"
	"github.com/dm-vev/turbine/server/turbine/rotor"
	"github.com/dm-vev/turbine/server/world"
	"github.com/google/uuid"
)

// ErrInvalidLayout is returned when a Layout cannot be applied to a Host.
var ErrInvalidLayout = errors.New("turbine: invalid layout")

// Layout describes turbine controllers and the blocks of a grid. Layouts are
// stored as TOML or YAML files.
type Layout struct {
	Controllers []LayoutController `toml:"controller" yaml:"controller"`
	Blocks      []LayoutBlock      `toml:"block" yaml:"block"`
}

// LayoutController describes a turbine controller.
type LayoutController struct {
	// ID is the UUID of the controller. Blocks refer to it as their owner.
	ID string `toml:"id" yaml:"id"`
	// Min and Max are the inclusive corners of the turbine.
	Min []int `toml:"min" yaml:"min"`
	Max []int `toml:"max" yaml:"max"`
	// Assembled and Active set the status of the turbine once all blocks
	// are placed.
	Assembled bool `toml:"assembled" yaml:"assembled"`
	Active    bool `toml:"active" yaml:"active"`
}

// LayoutBlock describes a single block. Rotor components set Kind and
// Variant; all other blocks set Identity.
type LayoutBlock struct {
	Pos      []int  `toml:"pos" yaml:"pos"`
	Kind     string `toml:"kind" yaml:"kind"`
	Variant  string `toml:"variant" yaml:"variant"`
	Identity string `toml:"identity" yaml:"identity"`
	Owner    string `toml:"owner" yaml:"owner"`
}

// LoadLayout reads the Layout stored at path. Files ending in .yaml or .yml
// are decoded as YAML, all others as TOML.
func LoadLayout(path string) (Layout, error) {
	var l Layout
	data, err := os.ReadFile(path)
	if err != nil {
		return l, fmt.Errorf("read layout: %w", err)
	}
	if err := decodeFile(path, data, &l); err != nil {
		return l, fmt.Errorf("decode layout: %w", err)
	}
	return l, nil
}

// Apply adds the controllers of the layout to the Host, places its blocks and
// finally assembles and activates the controllers that ask for it.
func (l Layout) Apply(h *Host) error {
	ids := make([]uuid.UUID, len(l.Controllers))
	for i, lc := range l.Controllers {
		id, err := parseOwner(lc.ID)
		if err != nil {
			return fmt.Errorf("%w: controller %d: %w", ErrInvalidLayout, i, err)
		}
		lo, err := parsePos(lc.Min)
		if err != nil {
			return fmt.Errorf("%w: controller %d min: %w", ErrInvalidLayout, i, err)
		}
		hi, err := parsePos(lc.Max)
		if err != nil {
			return fmt.Errorf("%w: controller %d max: %w", ErrInvalidLayout, i, err)
		}
		c, err := h.AddController(id, lo, hi)
		if err != nil {
			return err
		}
		ids[i] = c.ID()
	}
	for i, lb := range l.Blocks {
		if err := lb.apply(h); err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
	}
	for i, lc := range l.Controllers {
		if lc.Assembled || lc.Active {
			if err := h.Assemble(ids[i]); err != nil {
				return err
			}
		}
		if lc.Active {
			if err := h.Activate(ids[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (lb LayoutBlock) apply(h *Host) error {
	pos, err := parsePos(lb.Pos)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}
	if strings.TrimSpace(lb.Kind) == "" {
		if strings.TrimSpace(lb.Identity) == "" {
			return fmt.Errorf("%w: block at %v needs a kind or an identity", ErrInvalidLayout, pos)
		}
		return h.SetBlock(pos, world.Identity(strings.TrimSpace(lb.Identity)))
	}
	kind, ok := rotor.KindByName(lb.Kind)
	if !ok {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidLayout, lb.Kind)
	}
	variant := rotor.VariantBasic
	if strings.TrimSpace(lb.Variant) != "" {
		if variant, ok = rotor.VariantByName(lb.Variant); !ok {
			return fmt.Errorf("%w: unknown variant %q", ErrInvalidLayout, lb.Variant)
		}
	}
	owner, err := parseOwner(lb.Owner)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}
	return h.Place(Component{Pos: pos, Kind: kind, Variant: variant, Owner: owner})
}

func parsePos(v []int) (cube.Pos, error) {
	if len(v) != 3 {
		return cube.Pos{}, fmt.Errorf("position must have 3 coordinates, got %d", len(v))
	}
	return cube.Pos{v[0], v[1], v[2]}, nil
}

func parseOwner(s string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse id %q: %w", s, err)
	}
	return id, nil
}
