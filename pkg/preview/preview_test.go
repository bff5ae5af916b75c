package preview

import (
	"math"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/chazu/pointarray/pkg/pointset"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

func twoPoints() *pointset.Set {
	return &pointset.Set{Points: []pointset.Point{
		{Position: v3.Vec{X: -2}, Scale: 0.5},
		{Position: v3.Vec{X: 2}, Scale: 1, Rotation: v3.Vec{Z: math.Pi / 4}},
	}}
}

func TestSolidBounds(t *testing.T) {
	s, err := Solid(twoPoints(), Sphere)
	if err != nil {
		t.Fatalf("Solid failed: %v", err)
	}
	bb := s.BoundingBox()
	if bb.Min.X > -2.5+1e-6 || bb.Max.X < 3-1e-6 {
		t.Errorf("bounding box %v does not enclose both markers", bb)
	}
	if d := s.Evaluate(v3.Vec{X: 2}); d >= 0 {
		t.Errorf("marker centre should be inside, distance %g", d)
	}
	if d := s.Evaluate(v3.Vec{}); d <= 0 {
		t.Errorf("gap between markers should be outside, distance %g", d)
	}
}

func TestTessellateSphere(t *testing.T) {
	set := &pointset.Set{Points: []pointset.Point{{Scale: 1}}}
	mesh, err := Tessellate(set, Options{Marker: Sphere, Cells: 24})
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != mesh.TriangleCount()*3 {
		t.Fatalf("indices length %d != triangles*3 %d", len(mesh.Indices), mesh.TriangleCount()*3)
	}
	for i := 0; i < mesh.VertexCount(); i++ {
		v := mesh.Vertices[i*3 : i*3+3]
		r := math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2]))
		if r > 1.2 {
			t.Fatalf("vertex %d at radius %g, outside the marker", i, r)
		}
	}
}

func TestTessellateCubes(t *testing.T) {
	mesh, err := Tessellate(twoPoints(), Options{Marker: Cube, Cells: 32})
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if mesh.TriangleCount() == 0 {
		t.Fatal("expected triangles")
	}
}

func TestEmptySet(t *testing.T) {
	_, err := Tessellate(&pointset.Set{}, Options{})
	if !errors.IsType(err, pointset.ErrTypeDataError) {
		t.Fatalf("expected data error, got %v", err)
	}
}

func TestParseMarker(t *testing.T) {
	for s, want := range map[string]Marker{"": Sphere, "sphere": Sphere, "cube": Cube} {
		got, err := ParseMarker(s)
		if err != nil || got != want {
			t.Errorf("ParseMarker(%q) = %v, %v", s, got, err)
		}
		if s != "" && got.String() != s {
			t.Errorf("String() = %q, want %q", got.String(), s)
		}
	}
	if _, err := ParseMarker("cone"); !errors.IsType(err, pointset.ErrTypeInvalidConfiguration) {
		t.Errorf("expected invalid configuration, got %v", err)
	}
}

func TestMeshCounts(t *testing.T) {
	m := &Mesh{Vertices: []float32{0, 0, 0, 1, 0, 0, 1, 1, 0}, Indices: []uint32{0, 1, 2}}
	if m.VertexCount() != 3 || m.TriangleCount() != 1 || m.IsEmpty() {
		t.Errorf("counts = %d/%d empty=%v", m.VertexCount(), m.TriangleCount(), m.IsEmpty())
	}
}
