package rotor

import (
	"fmt"

	"github.com/dm-vev/turbine/server/block/cube"
)

// ShaftState is the adjacency state of a rotor shaft: the axis the shaft is
// oriented along and the perpendicular axes on which blades are attached to
// it. The numeric value of a ShaftState is its model variant index.
type ShaftState uint8

const (
	// ShaftHidden is used while the owning turbine is assembled and active.
	ShaftHidden ShaftState = iota

	// ShaftYNoBlades is a vertical shaft without blades.
	ShaftYNoBlades
	// ShaftYX is a vertical shaft with blades along the x axis.
	ShaftYX
	// ShaftYZ is a vertical shaft with blades along the z axis.
	ShaftYZ
	// ShaftYXZ is a vertical shaft with blades along both the x and z axis.
	ShaftYXZ

	// ShaftXNoBlades is a shaft along the x axis without blades.
	ShaftXNoBlades
	// ShaftXY is a shaft along the x axis with blades along the y axis.
	ShaftXY
	// ShaftXZ is a shaft along the x axis with blades along the z axis.
	ShaftXZ
	// ShaftXYZ is a shaft along the x axis with blades along both the y and z
	// axis.
	ShaftXYZ

	// ShaftZNoBlades is a shaft along the z axis without blades.
	ShaftZNoBlades
	// ShaftZX is a shaft along the z axis with blades along the x axis.
	ShaftZX
	// ShaftZY is a shaft along the z axis with blades along the y axis.
	ShaftZY
	// ShaftZXY is a shaft along the z axis with blades along both the x and y
	// axis.
	ShaftZXY

	shaftStateCount
)

// shaftStates returns, for a shaft axis, the no-blades state, the
// single-blade axis states in the order of cube.Axis.Perpendicular, and the
// both-axes state.
func shaftStates(axis cube.Axis) [4]ShaftState {
	switch axis {
	case cube.X:
		return [4]ShaftState{ShaftXNoBlades, ShaftXY, ShaftXZ, ShaftXYZ}
	case cube.Z:
		return [4]ShaftState{ShaftZNoBlades, ShaftZX, ShaftZY, ShaftZXY}
	default:
		return [4]ShaftState{ShaftYNoBlades, ShaftYX, ShaftYZ, ShaftYXZ}
	}
}

var shaftStateNames = [shaftStateCount]string{
	"hidden",
	"y_noblades", "y_x", "y_z", "y_xz",
	"x_noblades", "x_y", "x_z", "x_yz",
	"z_noblades", "z_x", "z_y", "z_xy",
}

// ShaftStateOf returns the ShaftState of a shaft oriented along axis with
// blades attached on the perpendicular axes for which bladeAxes is true.
// bladeAxes is indexed in the order of axis.Perpendicular. When blades are
// found on a single axis, the first perpendicular axis takes precedence.
func ShaftStateOf(axis cube.Axis, bladeAxes [2]bool) ShaftState {
	states := shaftStates(axis)
	switch {
	case bladeAxes[0] && bladeAxes[1]:
		return states[3]
	case bladeAxes[0]:
		return states[1]
	case bladeAxes[1]:
		return states[2]
	default:
		return states[0]
	}
}

// Axis returns the axis the shaft is oriented along. False is returned for
// ShaftHidden.
func (s ShaftState) Axis() (cube.Axis, bool) {
	switch {
	case s >= ShaftYNoBlades && s <= ShaftYXZ:
		return cube.Y, true
	case s >= ShaftXNoBlades && s <= ShaftXYZ:
		return cube.X, true
	case s >= ShaftZNoBlades && s <= ShaftZXY:
		return cube.Z, true
	}
	return cube.Y, false
}

// BladeAxes returns the perpendicular axes on which blades are attached,
// ordered as the axes returned by cube.Axis.Perpendicular.
func (s ShaftState) BladeAxes() []cube.Axis {
	axis, ok := s.Axis()
	if !ok {
		return nil
	}
	perpendicular, states := axis.Perpendicular(), shaftStates(axis)
	switch s {
	case states[1]:
		return []cube.Axis{perpendicular[0]}
	case states[2]:
		return []cube.Axis{perpendicular[1]}
	case states[3]:
		return perpendicular[:]
	}
	return nil
}

// Hidden reports if the state is ShaftHidden.
func (s ShaftState) Hidden() bool {
	return s == ShaftHidden
}

// String returns the lower-case name of the state, such as "y_xz".
func (s ShaftState) String() string {
	if s >= shaftStateCount {
		return fmt.Sprintf("ShaftState(%d)", uint8(s))
	}
	return shaftStateNames[s]
}

// ShaftStates returns all shaft states, starting with ShaftHidden.
func ShaftStates() []ShaftState {
	states := make([]ShaftState, 0, shaftStateCount)
	for s := ShaftState(0); s < shaftStateCount; s++ {
		states = append(states, s)
	}
	return states
}
