package rotor

import (
	"fmt"

	"github.com/dm-vev/turbine/server/block/cube"
)

// BladeState is the adjacency state of a rotor blade: the axis of the shaft
// it is attached to, the axis the blade extends along and the side of the
// shaft it extends to. The numeric value of a BladeState is its model
// variant index.
type BladeState uint8

const (
	// BladeHidden is used while the owning turbine is assembled and active.
	BladeHidden BladeState = iota

	// BladeYXPos is a blade on the positive x side of a vertical shaft.
	BladeYXPos
	// BladeYXNeg is a blade on the negative x side of a vertical shaft.
	BladeYXNeg
	// BladeYZPos is a blade on the positive z side of a vertical shaft.
	BladeYZPos
	// BladeYZNeg is a blade on the negative z side of a vertical shaft.
	BladeYZNeg

	// BladeXYPos is a blade on the positive y side of a shaft along the x axis.
	BladeXYPos
	// BladeXYNeg is a blade on the negative y side of a shaft along the x axis.
	BladeXYNeg
	// BladeXZPos is a blade on the positive z side of a shaft along the x axis.
	BladeXZPos
	// BladeXZNeg is a blade on the negative z side of a shaft along the x axis.
	BladeXZNeg

	// BladeZXPos is a blade on the positive x side of a shaft along the z axis.
	BladeZXPos
	// BladeZXNeg is a blade on the negative x side of a shaft along the z axis.
	BladeZXNeg
	// BladeZYPos is a blade on the positive y side of a shaft along the z axis.
	BladeZYPos
	// BladeZYNeg is a blade on the negative y side of a shaft along the z axis.
	BladeZYNeg

	bladeStateCount
)

// DefaultBladeState is returned for blades that are not connected to any
// shaft.
const DefaultBladeState = BladeYXPos

var bladeStateNames = [bladeStateCount]string{
	"hidden",
	"y_x_pos", "y_x_neg", "y_z_pos", "y_z_neg",
	"x_y_pos", "x_y_neg", "x_z_pos", "x_z_neg",
	"z_x_pos", "z_x_neg", "z_y_pos", "z_y_neg",
}

// DeriveBladeState returns the state of a blade connected to a shaft in the
// state passed, where toShaft is the direction in which the shaft was found
// from the blade. The blade lies on the toShaft.Opposite() side of the
// shaft. DefaultBladeState is returned for a hidden shaft and for a toShaft
// parallel to the shaft's axis.
func DeriveBladeState(shaft ShaftState, toShaft cube.Face) BladeState {
	axis, ok := shaft.Axis()
	if !ok || toShaft.Axis() == axis {
		return DefaultBladeState
	}
	side := toShaft.Opposite()
	state := bladeBase(axis)
	if side.Axis() == axis.Perpendicular()[1] {
		state += 2
	}
	if !side.Positive() {
		state++
	}
	return state
}

func bladeBase(axis cube.Axis) BladeState {
	switch axis {
	case cube.X:
		return BladeXYPos
	case cube.Z:
		return BladeZXPos
	default:
		return BladeYXPos
	}
}

// ShaftAxis returns the axis of the shaft the blade is attached to. False is
// returned for BladeHidden.
func (s BladeState) ShaftAxis() (cube.Axis, bool) {
	switch {
	case s >= BladeYXPos && s <= BladeYZNeg:
		return cube.Y, true
	case s >= BladeXYPos && s <= BladeXZNeg:
		return cube.X, true
	case s >= BladeZXPos && s <= BladeZYNeg:
		return cube.Z, true
	}
	return cube.Y, false
}

// Side returns the side of the shaft the blade extends to. False is
// returned for BladeHidden.
func (s BladeState) Side() (cube.Face, bool) {
	axis, ok := s.ShaftAxis()
	if !ok {
		return cube.FaceUp, false
	}
	offset := s - bladeBase(axis)
	faces := axis.Perpendicular()[offset/2].Faces()
	if offset%2 == 0 {
		return faces[1], true
	}
	return faces[0], true
}

// Hidden reports if the state is BladeHidden.
func (s BladeState) Hidden() bool {
	return s == BladeHidden
}

// String returns the lower-case name of the state, such as "y_x_pos".
func (s BladeState) String() string {
	if s >= bladeStateCount {
		return fmt.Sprintf("BladeState(%d)", uint8(s))
	}
	return bladeStateNames[s]
}

// BladeStates returns all blade states, starting with BladeHidden.
func BladeStates() []BladeState {
	states := make([]BladeState, 0, bladeStateCount)
	for s := BladeState(0); s < bladeStateCount; s++ {
		states = append(states, s)
	}
	return states
}
