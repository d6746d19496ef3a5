package turbine

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/dm-vev/turbine/server/block/cube"
	"github.com/dm-vev/turbine/server/turbine/rotor"
	"github.com/dm-vev/turbine/server/world"
	"github.com/google/uuid"
)

var (
	// ErrUnknownController is returned when an operation refers to a
	// controller that was never added to the Host.
	ErrUnknownController = errors.New("turbine: unknown controller")
	// ErrControllerExists is returned when adding a controller with an ID
	// that is already in use.
	ErrControllerExists = errors.New("turbine: controller already exists")
	// ErrNotAssembled is returned when activating a turbine that is not
	// assembled.
	ErrNotAssembled = errors.New("turbine: not assembled")
	// ErrOccupied is returned when placing a rotor component where another
	// one already is.
	ErrOccupied = errors.New("turbine: position already holds a rotor component")
	// ErrNoComponent is returned when no rotor component exists at a
	// position.
	ErrNoComponent = errors.New("turbine: no rotor component at position")
	// ErrRotorIdentity is returned when setting a rotor identity through
	// SetBlock instead of Place.
	ErrRotorIdentity = errors.New("turbine: rotor components must be placed with Place")
	// ErrOutOfRange is returned when placing a block at a position the grid
	// cannot store.
	ErrOutOfRange = errors.New("turbine: position out of grid range")
)

// Component is a rotor shaft or blade placed in the grid. Kind and Variant
// never change after the component is placed.
type Component struct {
	Pos     cube.Pos
	Kind    rotor.Kind
	Variant rotor.Variant
	// Owner is the ID of the controller of the turbine the component belongs
	// to, or uuid.Nil if it is not part of a turbine.
	Owner uuid.UUID
}

func (c Component) cell() rotor.Cell {
	return rotor.Cell{Pos: c.Pos, Variant: c.Variant, Owner: c.Owner}
}

// Host keeps track of the rotor components and turbine controllers of a
// block grid. It recomputes the state of rotor components on request and
// queues render updates when neighbouring components change. A Host is not
// safe for concurrent use.
type Host struct {
	conf     Config
	log      *slog.Logger
	grid     *world.Grid
	resolver *rotor.Resolver

	controllers map[uuid.UUID]*Controller
	parts       map[cube.Pos]Component

	render  *RenderQueue
	metrics *Metrics
}

func newHost(conf Config) *Host {
	return &Host{
		conf:        conf,
		log:         conf.Log,
		grid:        conf.Grid,
		controllers: make(map[uuid.UUID]*Controller),
		parts:       make(map[cube.Pos]Component),
		render:      newRenderQueue(conf.Metrics),
		metrics:     conf.Metrics,
	}
}

// Grid returns the grid the Host places components in.
func (h *Host) Grid() *world.Grid {
	return h.grid
}

// Render returns the queue of positions awaiting a render update.
func (h *Host) Render() *RenderQueue {
	return h.render
}

// Metrics returns the counters of the Host.
func (h *Host) Metrics() *Metrics {
	return h.metrics
}

// Variants returns the identities rotor components are placed with.
func (h *Host) Variants() rotor.VariantTable {
	return h.conf.Variants
}

// Place puts a rotor component into the grid. The component's owner must be
// uuid.Nil or a controller added to the Host.
func (h *Host) Place(c Component) error {
	if !world.InRange(c.Pos) {
		return fmt.Errorf("%w: %v", ErrOutOfRange, c.Pos)
	}
	if _, ok := h.parts[c.Pos]; ok {
		return fmt.Errorf("%w: %v", ErrOccupied, c.Pos)
	}
	if c.Owner != uuid.Nil {
		if _, ok := h.controllers[c.Owner]; !ok {
			return fmt.Errorf("%w: %v", ErrUnknownController, c.Owner)
		}
	}
	id := h.conf.Variants.Lookup(c.Variant).Of(c.Kind)
	if id == "" {
		return fmt.Errorf("turbine: no identity for %v %v", c.Variant, c.Kind)
	}
	h.parts[c.Pos] = c
	h.grid.SetBlock(c.Pos, id)
	h.log.Debug("rotor component placed", "pos", c.Pos, "kind", c.Kind, "variant", c.Variant)
	return nil
}

// Remove removes the rotor component at pos from the grid and requests a
// render update of every rotor component next to it.
func (h *Host) Remove(pos cube.Pos) error {
	c, ok := h.parts[pos]
	if !ok {
		return fmt.Errorf("%w: %v", ErrNoComponent, pos)
	}
	h.updateNeighbours(pos)
	delete(h.parts, pos)
	h.grid.SetBlock(pos, world.Air)
	h.log.Debug("rotor component removed", "pos", pos, "kind", c.Kind, "variant", c.Variant)
	return nil
}

// SetBlock sets a block that is not a rotor component, such as a casing or
// coil block, at pos. A rotor component at pos is removed first.
func (h *Host) SetBlock(pos cube.Pos, id world.Identity) error {
	if _, _, ok := h.conf.Variants.Component(id); ok {
		return fmt.Errorf("%w: %v", ErrRotorIdentity, id)
	}
	if !world.InRange(pos) {
		return fmt.Errorf("%w: %v", ErrOutOfRange, pos)
	}
	if _, ok := h.parts[pos]; ok {
		if err := h.Remove(pos); err != nil {
			return err
		}
	}
	h.grid.SetBlock(pos, id)
	return nil
}

// Component returns the rotor component at pos.
func (h *Host) Component(pos cube.Pos) (Component, bool) {
	c, ok := h.parts[pos]
	return c, ok
}

// Components returns all rotor components, sorted by position.
func (h *Host) Components() []Component {
	components := make([]Component, 0, len(h.parts))
	for _, c := range h.parts {
		components = append(components, c)
	}
	slices.SortFunc(components, func(a, b Component) int {
		return comparePos(a.Pos, b.Pos)
	})
	return components
}

// NeighbourChanged requests a render update of the rotor component at pos if
// the block at changed, next to it, is now a rotor component of any variant.
func (h *Host) NeighbourChanged(pos, changed cube.Pos) {
	if _, ok := h.parts[pos]; !ok {
		return
	}
	if _, _, ok := h.conf.Variants.Component(h.grid.Identity(changed)); ok {
		h.render.Request(pos, h.parts[pos].Owner)
	}
}

// ShaftState computes the state of the shaft at pos. If
// ignoreAssemblyStatus is false, rotor.ShaftHidden is returned while the
// shaft's turbine is assembled and active.
func (h *Host) ShaftState(pos cube.Pos, ignoreAssemblyStatus bool) (rotor.ShaftState, error) {
	c, ok := h.parts[pos]
	if !ok || c.Kind != rotor.KindShaft {
		return rotor.ShaftHidden, fmt.Errorf("%w: no shaft at %v", ErrNoComponent, pos)
	}
	h.metrics.IncResolves(rotor.KindShaft)
	return h.resolver.ShaftState(c.cell(), ignoreAssemblyStatus), nil
}

// BladeState computes the state of the blade at pos. If
// ignoreAssemblyStatus is false, rotor.BladeHidden is returned while the
// blade's turbine is assembled and active.
func (h *Host) BladeState(pos cube.Pos, ignoreAssemblyStatus bool) (rotor.BladeState, error) {
	c, ok := h.parts[pos]
	if !ok || c.Kind != rotor.KindBlade {
		return rotor.BladeHidden, fmt.Errorf("%w: no blade at %v", ErrNoComponent, pos)
	}
	h.metrics.IncResolves(rotor.KindBlade)
	return h.resolver.BladeState(c.cell(), ignoreAssemblyStatus), nil
}

// State returns the name of the current state of the rotor component at
// pos, taking the status of its turbine into account.
func (h *Host) State(pos cube.Pos) (string, error) {
	c, ok := h.parts[pos]
	if !ok {
		return "", fmt.Errorf("%w: %v", ErrNoComponent, pos)
	}
	if c.Kind == rotor.KindBlade {
		s, err := h.BladeState(pos, false)
		return s.String(), err
	}
	s, err := h.ShaftState(pos, false)
	return s.String(), err
}

// ModelVariant returns the index of the model variant the rotor component at
// pos is rendered with: 0 while its turbine is assembled, the numeric value
// of its shaft or blade state otherwise.
func (h *Host) ModelVariant(pos cube.Pos) (int, error) {
	c, ok := h.parts[pos]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrNoComponent, pos)
	}
	if ctrl, ok := h.controllers[c.Owner]; ok && ctrl.Assembled() {
		return 0, nil
	}
	if c.Kind == rotor.KindBlade {
		s, err := h.BladeState(pos, false)
		return int(s), err
	}
	s, err := h.ShaftState(pos, false)
	return int(s), err
}

// EncodeBlock returns the identity of the rotor component at pos along with
// its block state properties.
func (h *Host) EncodeBlock(pos cube.Pos) (string, map[string]any, error) {
	c, ok := h.parts[pos]
	if !ok {
		return "", nil, fmt.Errorf("%w: %v", ErrNoComponent, pos)
	}
	state, err := h.State(pos)
	if err != nil {
		return "", nil, err
	}
	id := h.conf.Variants.Lookup(c.Variant).Of(c.Kind)
	return string(id), map[string]any{"rotor_state": state, "variant": c.Variant.String()}, nil
}

// updateNeighbours requests a render update of every rotor component next to
// pos.
func (h *Host) updateNeighbours(pos cube.Pos) {
	for _, n := range pos.Neighbours() {
		if c, ok := h.parts[n]; ok {
			h.render.Request(n, c.Owner)
		}
	}
}

// updateOwned requests a render update of every rotor component owned by
// the controller with the ID passed.
func (h *Host) updateOwned(id uuid.UUID) {
	for _, c := range h.Components() {
		if c.Owner == id {
			h.render.Request(c.Pos, id)
		}
	}
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
