package turbine

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dm-vev/turbine/server/block/cube"
	"github.com/dm-vev/turbine/server/turbine/rotor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// ErrInvalidBounds is returned when a controller is added with bounds that
// leave no interior.
var ErrInvalidBounds = errors.New("turbine: bounds must enclose an interior")

// Controller is the controller of a turbine multiblock. It owns the rotor
// components placed with its ID and tracks whether the turbine is assembled
// and active.
type Controller struct {
	id        uuid.UUID
	min, max  cube.Pos
	assembled bool
	active    bool
}

// ID returns the ID rotor components refer to the controller with.
func (c *Controller) ID() uuid.UUID {
	return c.id
}

// Bounds returns the inclusive minimum and maximum corners of the turbine.
func (c *Controller) Bounds() (lo, hi cube.Pos) {
	return c.min, c.max
}

// Assembled reports if the turbine is assembled.
func (c *Controller) Assembled() bool {
	return c.assembled
}

// Active reports if the turbine is active.
func (c *Controller) Active() bool {
	return c.active
}

// AddController adds the controller of a turbine spanning the box between
// the inclusive corners a and b. If id is uuid.Nil, a random ID is
// generated.
func (h *Host) AddController(id uuid.UUID, a, b cube.Pos) (*Controller, error) {
	if id == uuid.Nil {
		id = uuid.New()
	}
	if _, ok := h.controllers[id]; ok {
		return nil, fmt.Errorf("%w: %v", ErrControllerExists, id)
	}
	var lo, hi cube.Pos
	for i := 0; i < 3; i++ {
		lo[i], hi[i] = min(a[i], b[i]), max(a[i], b[i])
		if hi[i]-lo[i] < 2 {
			return nil, fmt.Errorf("%w: %v to %v", ErrInvalidBounds, a, b)
		}
	}
	c := &Controller{id: id, min: lo, max: hi}
	h.controllers[id] = c
	h.log.Debug("turbine controller added", "id", id, "min", lo, "max", hi)
	return c, nil
}

// Controller returns the controller with the ID passed.
func (h *Host) Controller(id uuid.UUID) (*Controller, bool) {
	c, ok := h.controllers[id]
	return c, ok
}

// Controllers returns all controllers, sorted by ID.
func (h *Host) Controllers() []*Controller {
	controllers := make([]*Controller, 0, len(h.controllers))
	for _, c := range h.controllers {
		controllers = append(controllers, c)
	}
	slices.SortFunc(controllers, func(a, b *Controller) int {
		return slices.Compare(a.id[:], b.id[:])
	})
	return controllers
}

// AssembledAndActive reports if the turbine with the ID passed is assembled
// and active. Unknown IDs, including uuid.Nil, are never active.
func (h *Host) AssembledAndActive(id uuid.UUID) bool {
	c, ok := h.controllers[id]
	return ok && c.assembled && c.active
}

// Assemble validates the rotor components owned by the controller and marks
// the turbine assembled. The errors of all misplaced components are
// returned joined together if validation fails.
func (h *Host) Assemble(id uuid.UUID) error {
	c, ok := h.controllers[id]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownController, id)
	}
	if err := h.Validate(id); err != nil {
		h.log.Info("turbine assembly failed", "id", id, "err", err)
		return err
	}
	if !c.assembled {
		c.assembled = true
		h.updateOwned(id)
		h.log.Info("turbine assembled", "id", id)
	}
	return nil
}

// Disassemble marks the turbine disassembled and inactive.
func (h *Host) Disassemble(id uuid.UUID) error {
	c, ok := h.controllers[id]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownController, id)
	}
	if c.assembled {
		c.assembled, c.active = false, false
		h.updateOwned(id)
		h.log.Info("turbine disassembled", "id", id)
	}
	return nil
}

// Activate activates an assembled turbine and requests a render update of
// all its rotor components.
func (h *Host) Activate(id uuid.UUID) error {
	return h.setActive(id, true)
}

// Deactivate deactivates a turbine and requests a render update of all its
// rotor components.
func (h *Host) Deactivate(id uuid.UUID) error {
	return h.setActive(id, false)
}

func (h *Host) setActive(id uuid.UUID, active bool) error {
	c, ok := h.controllers[id]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownController, id)
	}
	if active && !c.assembled {
		return fmt.Errorf("%w: %v", ErrNotAssembled, id)
	}
	if c.active == active {
		return nil
	}
	c.active = active
	h.updateOwned(id)
	h.log.Info("turbine activity changed", "id", id, "active", active)
	return nil
}

// RotorCentre returns the centre of the shafts owned by the controller with
// the ID passed. False is returned if the turbine has no shafts.
func (h *Host) RotorCentre(id uuid.UUID) (mgl64.Vec3, bool) {
	var (
		sum mgl64.Vec3
		n   int
	)
	for _, c := range h.parts {
		if c.Owner == id && c.Kind == rotor.KindShaft {
			sum = sum.Add(c.Pos.Vec3Centre())
			n++
		}
	}
	if n == 0 {
		return mgl64.Vec3{}, false
	}
	return sum.Mul(1 / float64(n)), true
}
