package camera

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gamepad/common"
)

// DefaultFov is the field of view, in degrees, assigned to every pose the transform produces.
const DefaultFov = 55.0

// Position is a camera location in a projected coordinate system.
type Position struct {
	X, Y, Z float64

	// SpatialReference identifies the coordinate system of X, Y and Z.
	SpatialReference common.SpatialReference
}

// Pose is the full description of a virtual camera: where it is, which way it faces and how wide it sees.
// Pose is a value type. It is replaced wholesale each frame and never modified in place.
type Pose struct {
	// Heading is the compass direction in degrees, clockwise from north. It is not wrapped.
	Heading float64

	// Tilt is the angle in degrees from looking straight down (0) towards the horizon (90).
	Tilt float64

	// Position is the camera location.
	Position Position

	// Fov is the field of view in degrees.
	Fov float64
}

func (p Pose) String() string {
	return fmt.Sprintf("heading=%.3f tilt=%.3f pos=(%.3f, %.3f, %.3f %s) fov=%.1f",
		p.Heading, p.Tilt, p.Position.X, p.Position.Y, p.Position.Z, p.Position.SpatialReference, p.Fov)
}
