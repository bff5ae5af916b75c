package pointset

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

func TestBuffersVertexCount(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		want     int
	}{
		{"empty", nil, 0},
		{"one vertex", []float32{1, 2, 3}, 1},
		{"four vertices", []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Buffers{Vertices: tt.vertices}
			if got := b.VertexCount(); got != tt.want {
				t.Errorf("VertexCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBuffersEdgeCount(t *testing.T) {
	tests := []struct {
		name  string
		edges []uint32
		want  int
	}{
		{"empty", nil, 0},
		{"one edge", []uint32{0, 1}, 1},
		{"three edges", []uint32{0, 1, 1, 2, 2, 3}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Buffers{Edges: tt.edges}
			if got := b.EdgeCount(); got != tt.want {
				t.Errorf("EdgeCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBuffersIsEmpty(t *testing.T) {
	t.Run("empty buffers", func(t *testing.T) {
		b := &Buffers{}
		if !b.IsEmpty() {
			t.Error("IsEmpty() = false for empty buffers, want true")
		}
	})
	t.Run("non-empty buffers", func(t *testing.T) {
		b := &Buffers{Vertices: []float32{1, 2, 3}}
		if b.IsEmpty() {
			t.Error("IsEmpty() = true for non-empty buffers, want false")
		}
	})
}

func TestSetBuffers(t *testing.T) {
	s := &Set{
		Points: []Point{
			{Position: v3.Vec{X: 1, Y: 2, Z: 3}, Scale: 0.5, Factor: 0, Rotation: v3.Vec{X: 0.1}},
			{Position: v3.Vec{X: 4, Y: 5, Z: 6}, Scale: 0.25, Factor: 1},
		},
		Edges: []Edge{{From: 0, To: 1}},
	}
	b := s.Buffers()
	if b.VertexCount() != 2 {
		t.Fatalf("VertexCount() = %d, want 2", b.VertexCount())
	}
	if b.EdgeCount() != 1 {
		t.Fatalf("EdgeCount() = %d, want 1", b.EdgeCount())
	}
	if len(b.Vertices) != len(b.Rotations) {
		t.Fatalf("vertices length %d != rotations length %d", len(b.Vertices), len(b.Rotations))
	}
	if b.Vertices[3] != 4 || b.Scales[1] != 0.25 || b.Factors[1] != 1 {
		t.Errorf("unexpected buffer contents: %+v", b)
	}
	if b.Rotations[0] != float32(0.1) {
		t.Errorf("Rotations[0] = %v, want 0.1", b.Rotations[0])
	}
}

func TestEmptySetBuffers(t *testing.T) {
	b := (&Set{}).Buffers()
	if !b.IsEmpty() {
		t.Error("expected empty buffers for empty set")
	}
	if b.Edges != nil {
		t.Errorf("expected nil edges, got %v", b.Edges)
	}
}
