package turbine

import (
	"errors"
	"fmt"

	"github.com/dm-vev/turbine/server/block/cube"
	"github.com/google/uuid"
)

// PartPosition is the position of a multiblock part relative to the box of
// its multiblock.
type PartPosition uint8

const (
	// PartPositionUnknown is a position outside the box.
	PartPositionUnknown PartPosition = iota
	// PartPositionInterior is a position inside the box, not on any face.
	PartPositionInterior
	// PartPositionFrameCorner is one of the eight corners of the box.
	PartPositionFrameCorner
	// PartPositionFrame is an edge of the box, excluding its corners.
	PartPositionFrame
	// PartPositionBottomFace is the inside of the bottom face.
	PartPositionBottomFace
	// PartPositionTopFace is the inside of the top face.
	PartPositionTopFace
	// PartPositionNorthFace is the inside of the north face.
	PartPositionNorthFace
	// PartPositionSouthFace is the inside of the south face.
	PartPositionSouthFace
	// PartPositionWestFace is the inside of the west face.
	PartPositionWestFace
	// PartPositionEastFace is the inside of the east face.
	PartPositionEastFace
)

// String ...
func (p PartPosition) String() string {
	switch p {
	case PartPositionInterior:
		return "interior"
	case PartPositionFrameCorner:
		return "frame_corner"
	case PartPositionFrame:
		return "frame"
	case PartPositionBottomFace:
		return "bottom_face"
	case PartPositionTopFace:
		return "top_face"
	case PartPositionNorthFace:
		return "north_face"
	case PartPositionSouthFace:
		return "south_face"
	case PartPositionWestFace:
		return "west_face"
	case PartPositionEastFace:
		return "east_face"
	}
	return "unknown"
}

// PartPositionOf returns the position of pos within the box between the
// inclusive corners lo and hi.
func PartPositionOf(pos, lo, hi cube.Pos) PartPosition {
	var (
		extremes int
		face     cube.Face
	)
	for i := 0; i < 3; i++ {
		switch pos[i] {
		case lo[i]:
			extremes++
			face = minFace(i)
		case hi[i]:
			extremes++
			face = minFace(i).Opposite()
		default:
			if pos[i] < lo[i] || pos[i] > hi[i] {
				return PartPositionUnknown
			}
		}
	}
	switch extremes {
	case 0:
		return PartPositionInterior
	case 2:
		return PartPositionFrame
	case 3:
		return PartPositionFrameCorner
	}
	switch face {
	case cube.FaceDown:
		return PartPositionBottomFace
	case cube.FaceUp:
		return PartPositionTopFace
	case cube.FaceNorth:
		return PartPositionNorthFace
	case cube.FaceSouth:
		return PartPositionSouthFace
	case cube.FaceWest:
		return PartPositionWestFace
	default:
		return PartPositionEastFace
	}
}

// minFace returns the face pointing towards the negative end of coordinate
// i of a cube.Pos.
func minFace(i int) cube.Face {
	switch i {
	case 0:
		return cube.FaceWest
	case 1:
		return cube.FaceDown
	default:
		return cube.FaceNorth
	}
}

// ValidationKeyInvalidRotorPosition is the translation key reported for
// rotor components outside the interior of their turbine.
const ValidationKeyInvalidRotorPosition = "multiblock.validation.turbine.invalid_rotor_position"

// ValidationError is returned when a multiblock part is not allowed at its
// position. Key is the translation key of the message shown to players.
type ValidationError struct {
	Key      string
	Pos      cube.Pos
	Position PartPosition
}

// Error ...
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v at %v (%v)", e.Key, e.Pos, e.Position)
}

// ValidatePosition checks if the rotor component at pos may occupy a part
// position. Rotor components are only valid in the interior of a turbine.
func (h *Host) ValidatePosition(pos cube.Pos, position PartPosition) error {
	if _, ok := h.parts[pos]; !ok {
		return fmt.Errorf("%w: %v", ErrNoComponent, pos)
	}
	if position != PartPositionInterior {
		return &ValidationError{Key: ValidationKeyInvalidRotorPosition, Pos: pos, Position: position}
	}
	return nil
}

// Validate checks the position of every rotor component owned by the
// controller with the ID passed against the controller's bounds.
func (h *Host) Validate(id uuid.UUID) error {
	c, ok := h.controllers[id]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownController, id)
	}
	var errs []error
	for _, part := range h.Components() {
		if part.Owner != id {
			continue
		}
		if err := h.ValidatePosition(part.Pos, PartPositionOf(part.Pos, c.min, c.max)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
