package pointset

import (
	"math/rand"

	"github.com/chazu/pointarray/pkg/geom"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Factor returns the normalized rank of index i among n points: 0 for the
// first, 1 for the last, 0 when n <= 1.
func Factor(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// Emit finishes raw generator output into a Set. Points keep a positive
// Scale they already carry and draw one from opts.Scale otherwise.
// Oriented points keep their rotation; the rest get a zero or random one.
// The raw slice is taken over by the returned Set.
func Emit(raw []Point, opts Options, rng *rand.Rand) *Set {
	n := len(raw)
	for i := range raw {
		p := &raw[i]
		p.Factor = Factor(i, n)
		if p.Scale <= 0 {
			p.Scale = opts.Scale.Draw(rng)
		}
		if p.Oriented {
			continue
		}
		if opts.RandomRotation {
			p.Rotation = geom.RandomEuler(rng)
		} else {
			p.Rotation = v3.Vec{}
		}
	}

	s := &Set{Points: raw}
	if opts.Polyline {
		s.Edges = Polyline(n)
	}
	return s
}

// Polyline returns the sequential edges 0-1, 1-2, ... for n points.
func Polyline(n int) []Edge {
	if n < 2 {
		return nil
	}
	edges := make([]Edge, 0, n-1)
	for i := 0; i+1 < n; i++ {
		edges = append(edges, Edge{From: i, To: i + 1})
	}
	return edges
}
