// Package pointset defines the point model shared by every generator and
// the emission stage that assigns per-point attributes once a generator
// has produced raw positions.
package pointset

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// FieldKind tells which payload a volume-field sample carried.
type FieldKind int

const (
	FieldNone   FieldKind = iota // not imported from a field
	FieldScalar                  // one float per sample
	FieldVector                  // three floats per sample
)

func (k FieldKind) String() string {
	switch k {
	case FieldNone:
		return "none"
	case FieldScalar:
		return "scalar"
	case FieldVector:
		return "vector"
	default:
		return "unknown"
	}
}

// FieldSample is the decoded value a volume-field point was created from.
// For vector samples Scalar holds the vector length.
type FieldSample struct {
	Kind   FieldKind `json:"kind"`
	Scalar float64   `json:"scalar"`
	Vector v3.Vec    `json:"vector"`
}

// Point is a single generated element.
type Point struct {
	Position v3.Vec  `json:"position"`
	Scale    float64 `json:"scale"`    // radius for poisson-disc points
	Factor   float64 `json:"factor"`   // normalized rank in [0,1]
	Rotation v3.Vec  `json:"rotation"` // Euler XYZ, radians

	// Oriented marks a rotation derived from data; the emission stage
	// leaves it alone.
	Oriented bool `json:"oriented,omitempty"`

	HasIndex bool   `json:"has_index,omitempty"`
	Index    [3]int `json:"index"` // lattice indices (x, y, z)

	HasRelative bool    `json:"has_relative,omitempty"`
	Relative    v3.Vec  `json:"relative"` // position scaled by the inverse half-extent
	Distance    float64 `json:"distance"` // length of Relative

	Field FieldSample `json:"field"`
}

// Edge connects two points by index.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Set is an ordered, fully materialized point collection.
type Set struct {
	Points []Point `json:"points"`
	Edges  []Edge  `json:"edges,omitempty"`
}

// Len returns the number of points.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Points)
}

// Positions returns the point positions in order.
func (s *Set) Positions() []v3.Vec {
	out := make([]v3.Vec, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Position
	}
	return out
}

// Bounds returns the axis-aligned box enclosing every position. An empty
// set has a zero box.
func (s *Set) Bounds() sdf.Box3 {
	if s.Len() == 0 {
		return sdf.Box3{}
	}
	lo, hi := s.Points[0].Position, s.Points[0].Position
	for _, p := range s.Points[1:] {
		lo = v3.Vec{X: min(lo.X, p.Position.X), Y: min(lo.Y, p.Position.Y), Z: min(lo.Z, p.Position.Z)}
		hi = v3.Vec{X: max(hi.X, p.Position.X), Y: max(hi.Y, p.Position.Y), Z: max(hi.Z, p.Position.Z)}
	}
	return sdf.Box3{Min: lo, Max: hi}
}
