package cube

const (
	// FaceDown represents the bottom face of a block.
	FaceDown Face = iota
	// FaceUp represents the top face of a block.
	FaceUp
	// FaceNorth represents the north face of a block.
	FaceNorth
	// FaceSouth represents the south face of a block.
	FaceSouth
	// FaceWest represents the west face of the block.
	FaceWest
	// FaceEast represents the east face of the block.
	FaceEast
)

// Face represents the face of a block. The six faces double as the unit
// directions of the grid: down/up along Y, north/south along Z and
// west/east along X.
type Face int

// Opposite returns the opposite face. FaceDown will return FaceUp, FaceNorth
// will return FaceSouth and FaceWest will return FaceEast, and vice versa.
func (f Face) Opposite() Face {
	switch f {
	default:
		return FaceUp
	case FaceUp:
		return FaceDown
	case FaceNorth:
		return FaceSouth
	case FaceSouth:
		return FaceNorth
	case FaceWest:
		return FaceEast
	case FaceEast:
		return FaceWest
	}
}

// Axis returns the axis the face is facing. FaceEast and west correspond to
// the x-axis, north and south to the z axis and up and down to the y-axis.
func (f Face) Axis() Axis {
	switch f {
	default:
		return Y
	case FaceEast, FaceWest:
		return X
	case FaceNorth, FaceSouth:
		return Z
	}
}

// Positive reports if the face points towards the positive end of its axis.
func (f Face) Positive() bool {
	return f == FaceUp || f == FaceSouth || f == FaceEast
}

// String returns the Face as a string.
func (f Face) String() string {
	switch f {
	case FaceUp:
		return "up"
	case FaceDown:
		return "down"
	case FaceNorth:
		return "north"
	case FaceSouth:
		return "south"
	case FaceWest:
		return "west"
	case FaceEast:
		return "east"
	}
	panic("invalid face")
}

// Faces returns a list of all faces, starting with down, then up, then north
// to south and west to east. Every neighbour scan in the module iterates in
// this order.
func Faces() []Face {
	return faces[:]
}

var faces = [...]Face{FaceDown, FaceUp, FaceNorth, FaceSouth, FaceWest, FaceEast}
