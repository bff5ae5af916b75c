package poisson

import (
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/chazu/pointarray/pkg/pointset"
)

// Shape masks the sampling area.
type Shape int

const (
	Box      Shape = iota // no mask
	Cylinder              // elliptic mask on X/Y, Z unconstrained
	Sphere                // ellipsoid mask
	Hull                  // points on the ellipsoid surface
)

func (s Shape) String() string {
	switch s {
	case Box:
		return "box"
	case Cylinder:
		return "cylinder"
	case Sphere:
		return "sphere"
	case Hull:
		return "hull"
	default:
		return "unknown"
	}
}

// ParseShape converts a shape name to a Shape.
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(name) {
	case "box":
		return Box, nil
	case "cylinder":
		return Cylinder, nil
	case "sphere":
		return Sphere, nil
	case "hull":
		return Hull, nil
	}
	return 0, errors.New("unknown shape").
		WithType(pointset.ErrTypeInvalidConfiguration).
		WithTag("shape", name)
}

// Align controls how discs sit relative to the area boundary.
type Align int

const (
	// Center keeps centres inside the area; radii may cross the boundary.
	Center Align = iota
	// Radius shrinks the area by each candidate's radius so the whole disc
	// fits, unless the radius exceeds the extent.
	Radius
)

func (a Align) String() string {
	switch a {
	case Center:
		return "center"
	case Radius:
		return "radius"
	default:
		return "unknown"
	}
}

// ParseAlign converts an alignment name to an Align.
func ParseAlign(name string) (Align, error) {
	switch strings.ToLower(name) {
	case "center", "centre":
		return Center, nil
	case "radius":
		return Radius, nil
	}
	return 0, errors.New("unknown alignment").
		WithType(pointset.ErrTypeInvalidConfiguration).
		WithTag("align", name)
}
