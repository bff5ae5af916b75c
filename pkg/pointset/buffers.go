package pointset

// Buffers is a flat, host-friendly copy of a Set. All arrays are flat:
// vertices and rotations have 3 floats per point, edges have 2 indices
// per edge.
type Buffers struct {
	Vertices  []float32 `json:"vertices"`  // [x0,y0,z0, x1,y1,z1, ...]
	Scales    []float32 `json:"scales"`    // one per point
	Factors   []float32 `json:"factors"`   // one per point
	Rotations []float32 `json:"rotations"` // [rx0,ry0,rz0, ...]
	Edges     []uint32  `json:"edges"`     // [from0,to0, from1,to1, ...]
}

// VertexCount returns the number of points.
func (b *Buffers) VertexCount() int {
	return len(b.Vertices) / 3
}

// EdgeCount returns the number of edges.
func (b *Buffers) EdgeCount() int {
	return len(b.Edges) / 2
}

// IsEmpty returns true if the buffers hold no points.
func (b *Buffers) IsEmpty() bool {
	return len(b.Vertices) == 0
}

// Buffers flattens the set for hand-off to a host.
func (s *Set) Buffers() *Buffers {
	n := s.Len()
	b := &Buffers{
		Vertices:  make([]float32, 0, n*3),
		Scales:    make([]float32, 0, n),
		Factors:   make([]float32, 0, n),
		Rotations: make([]float32, 0, n*3),
	}
	if n == 0 {
		return b
	}
	for _, p := range s.Points {
		b.Vertices = append(b.Vertices, float32(p.Position.X), float32(p.Position.Y), float32(p.Position.Z))
		b.Scales = append(b.Scales, float32(p.Scale))
		b.Factors = append(b.Factors, float32(p.Factor))
		b.Rotations = append(b.Rotations, float32(p.Rotation.X), float32(p.Rotation.Y), float32(p.Rotation.Z))
	}
	if len(s.Edges) > 0 {
		b.Edges = make([]uint32, 0, len(s.Edges)*2)
		for _, e := range s.Edges {
			b.Edges = append(b.Edges, uint32(e.From), uint32(e.To))
		}
	}
	return b
}
