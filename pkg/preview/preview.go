// Package preview turns a point set into a triangle mesh by placing a
// marker solid at every point and tessellating the union with sdfx
// marching cubes. Hosts without their own instancing can draw the result
// directly.
package preview

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/chazu/pointarray/pkg/geom"
	"github.com/chazu/pointarray/pkg/pointset"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// DefaultCells is the marching cubes resolution along the longest axis.
const DefaultCells = 64

// Marker is the solid drawn at each point.
type Marker int

const (
	Sphere Marker = iota // radius = point scale
	Cube                 // half edge = point scale, turned by the point rotation
)

func (m Marker) String() string {
	switch m {
	case Sphere:
		return "sphere"
	case Cube:
		return "cube"
	default:
		return "unknown"
	}
}

// ParseMarker parses "sphere" or "cube".
func ParseMarker(s string) (Marker, error) {
	switch s {
	case "sphere", "":
		return Sphere, nil
	case "cube":
		return Cube, nil
	}
	return 0, errors.New("unknown preview marker").
		WithType(pointset.ErrTypeInvalidConfiguration).
		WithTag("marker", s)
}

// Options control tessellation.
type Options struct {
	Marker Marker
	Cells  int // zero means DefaultCells
}

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	Name     string    `json:"name"`
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Solid builds the union of one marker per point.
func Solid(s *pointset.Set, marker Marker) (sdf.SDF3, error) {
	if s.Len() == 0 {
		return nil, errors.New("nothing to preview").
			WithType(pointset.ErrTypeDataError)
	}

	solids := make([]sdf.SDF3, 0, s.Len())
	for i, p := range s.Points {
		m, err := markerSolid(marker, p.Scale)
		if err != nil {
			return nil, errors.New("building marker failed").
				WithTag("point", i).
				WithTag("scale", p.Scale).
				Wrap(err)
		}
		// Rotate first, then move into place.
		t := sdf.Translate3d(p.Position).Mul(geom.Rotation(p.Rotation))
		solids = append(solids, sdf.Transform3D(m, t))
	}
	if len(solids) == 1 {
		return solids[0], nil
	}
	return sdf.Union3D(solids...), nil
}

func markerSolid(marker Marker, scale float64) (sdf.SDF3, error) {
	switch marker {
	case Sphere:
		return sdf.Sphere3D(scale)
	case Cube:
		return sdf.Box3D(v3.Vec{X: 2 * scale, Y: 2 * scale, Z: 2 * scale}, 0)
	}
	return nil, errors.New("unknown preview marker").
		WithType(pointset.ErrTypeInvalidConfiguration).
		WithTag("marker", int(marker))
}

// Tessellate converts s to a triangle mesh using marching cubes.
func Tessellate(s *pointset.Set, opts Options) (*Mesh, error) {
	solid, err := Solid(s, opts.Marker)
	if err != nil {
		return nil, err
	}
	cells := opts.Cells
	if cells <= 0 {
		cells = DefaultCells
	}

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(solid, renderer)

	numVerts := len(triangles) * 3
	mesh := &Mesh{
		Vertices: make([]float32, 0, numVerts*3),
		Normals:  make([]float32, 0, numVerts*3),
		Indices:  make([]uint32, 0, numVerts),
	}
	for i, tri := range triangles {
		n := tri.Normal()
		for j := 0; j < 3; j++ {
			v := tri[j]
			mesh.Vertices = append(mesh.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
			mesh.Normals = append(mesh.Normals, float32(n.X), float32(n.Y), float32(n.Z))
			mesh.Indices = append(mesh.Indices, uint32(i*3+j))
		}
	}
	return mesh, nil
}
