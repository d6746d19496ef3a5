package cube

// Axis represents the axis that a block, such as a rotor shaft, may be
// directed along.
type Axis int

const (
	// Y represents the vertical Y axis.
	Y Axis = iota
	// Z represents the horizontal Z axis.
	Z
	// X represents the horizontal X axis.
	X
)

// String converts an Axis into either x, y or z, depending on which axis it
// is.
func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	}
	panic("invalid axis")
}

// Faces returns the two faces that lie along the axis, negative face first.
func (a Axis) Faces() [2]Face {
	switch a {
	case X:
		return [2]Face{FaceWest, FaceEast}
	case Z:
		return [2]Face{FaceNorth, FaceSouth}
	default:
		return [2]Face{FaceDown, FaceUp}
	}
}

// Perpendicular returns the two axes perpendicular to the axis, ordered X,
// Y, Z.
func (a Axis) Perpendicular() [2]Axis {
	switch a {
	case X:
		return [2]Axis{Y, Z}
	case Z:
		return [2]Axis{X, Y}
	default:
		return [2]Axis{X, Z}
	}
}

// PerpendicularFaces returns the four faces perpendicular to the axis, in
// the order of Faces.
func (a Axis) PerpendicularFaces() [4]Face {
	var (
		faces [4]Face
		i     int
	)
	for _, f := range Faces() {
		if f.Axis() != a {
			faces[i] = f
			i++
		}
	}
	return faces
}

// Axes returns all three axes.
func Axes() []Axis {
	return []Axis{X, Y, Z}
}
