package geom

import (
	"math"
	"math/rand"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func TestNormalize(t *testing.T) {
	n, ok := Normalize(v3.Vec{X: 3, Y: 0, Z: 4})
	require.True(t, ok)
	assert.InDelta(t, 0.6, n.X, tol)
	assert.InDelta(t, 0.8, n.Z, tol)
	assert.InDelta(t, 1.0, Length(n), tol)

	_, ok = Normalize(v3.Vec{})
	assert.False(t, ok)
}

func TestReciprocals(t *testing.T) {
	r := Reciprocals(v3.Vec{X: 2, Y: 0, Z: -4})
	assert.Equal(t, 0.5, r.X)
	assert.Equal(t, 0.0, r.Y)
	assert.Equal(t, -0.25, r.Z)
}

func TestFloor(t *testing.T) {
	f := Floor(v3.Vec{X: -1, Y: 0, Z: 2}, Epsilon)
	assert.Equal(t, Epsilon, f.X)
	assert.Equal(t, Epsilon, f.Y)
	assert.Equal(t, 2.0, f.Z)
}

func TestUniformBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		u := Uniform(rng, -2, 3)
		require.GreaterOrEqual(t, u, -2.0)
		require.LessOrEqual(t, u, 3.0)
	}
	assert.Equal(t, 0.25, Uniform(rng, 0.25, 0.25))
}

func TestRandomEulerRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		e := RandomEuler(rng)
		for _, c := range []float64{e.X, e.Y, e.Z} {
			require.GreaterOrEqual(t, c, -math.Pi)
			require.LessOrEqual(t, c, math.Pi)
		}
	}
}

func TestEulerFromDirection(t *testing.T) {
	tests := []struct {
		name string
		dir  v3.Vec
	}{
		{"up", v3.Vec{Z: 1}},
		{"down", v3.Vec{Z: -1}},
		{"x", v3.Vec{X: 1}},
		{"negative x", v3.Vec{X: -2}},
		{"y", v3.Vec{Y: 5}},
		{"oblique", v3.Vec{X: 1, Y: 2, Z: 3}},
		{"oblique below", v3.Vec{X: -0.3, Y: 0.7, Z: -0.2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := EulerFromDirection(tt.dir)
			want, ok := Normalize(tt.dir)
			require.True(t, ok)

			got := Rotation(e).MulPosition(Up).Sub(Rotation(e).MulPosition(v3.Vec{}))
			assert.InDelta(t, want.X, got.X, 1e-6)
			assert.InDelta(t, want.Y, got.Y, 1e-6)
			assert.InDelta(t, want.Z, got.Z, 1e-6)
		})
	}
}

func TestEulerFromZeroDirection(t *testing.T) {
	assert.Equal(t, v3.Vec{}, EulerFromDirection(v3.Vec{}))
}
