package pointset

import (
	"math"
	"math/rand"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactor(t *testing.T) {
	assert.Equal(t, 0.0, Factor(0, 1))
	assert.Equal(t, 0.0, Factor(0, 0))
	assert.Equal(t, 0.0, Factor(0, 3))
	assert.Equal(t, 0.5, Factor(1, 3))
	assert.Equal(t, 1.0, Factor(2, 3))
}

func rawPoints(n int) []Point {
	out := make([]Point, n)
	for i := range out {
		out[i].Position = v3.Vec{X: float64(i)}
	}
	return out
}

func TestEmitFactorsSpanUnitInterval(t *testing.T) {
	s := Emit(rawPoints(5), DefaultOptions(), rand.New(rand.NewSource(1)))
	require.Equal(t, 5, s.Len())
	assert.Equal(t, 0.0, s.Points[0].Factor)
	assert.Equal(t, 1.0, s.Points[4].Factor)
	for i := 1; i < s.Len(); i++ {
		assert.GreaterOrEqual(t, s.Points[i].Factor, s.Points[i-1].Factor)
	}
}

func TestEmitSinglePoint(t *testing.T) {
	s := Emit(rawPoints(1), DefaultOptions(), rand.New(rand.NewSource(1)))
	require.Equal(t, 1, s.Len())
	assert.Equal(t, 0.0, s.Points[0].Factor)
	assert.Empty(t, s.Edges)
}

func TestEmitFixedScaleNoRotation(t *testing.T) {
	opts := Options{Scale: Fixed(0.3)}
	s := Emit(rawPoints(3), opts, rand.New(rand.NewSource(1)))
	for _, p := range s.Points {
		assert.Equal(t, 0.3, p.Scale)
		assert.Equal(t, v3.Vec{}, p.Rotation)
	}
}

func TestEmitRandomScaleAndRotation(t *testing.T) {
	opts := Options{Scale: Between(0.1, 0.2), RandomRotation: true}
	s := Emit(rawPoints(50), opts, rand.New(rand.NewSource(3)))
	rotated := 0
	for _, p := range s.Points {
		assert.GreaterOrEqual(t, p.Scale, 0.1)
		assert.LessOrEqual(t, p.Scale, 0.2)
		assert.LessOrEqual(t, math.Abs(p.Rotation.X), math.Pi)
		if p.Rotation != (v3.Vec{}) {
			rotated++
		}
	}
	assert.Equal(t, 50, rotated)
}

func TestEmitKeepsIntrinsicScaleAndOrientation(t *testing.T) {
	raw := rawPoints(2)
	raw[0].Scale = 0.05
	raw[1].Oriented = true
	raw[1].Rotation = v3.Vec{Y: 1}

	s := Emit(raw, Options{Scale: Fixed(9), RandomRotation: true}, rand.New(rand.NewSource(1)))
	assert.Equal(t, 0.05, s.Points[0].Scale)
	assert.Equal(t, 9.0, s.Points[1].Scale)
	assert.Equal(t, v3.Vec{Y: 1}, s.Points[1].Rotation)
}

func TestEmitPolyline(t *testing.T) {
	s := Emit(rawPoints(4), Options{Scale: Fixed(1), Polyline: true}, rand.New(rand.NewSource(1)))
	assert.Equal(t, []Edge{{0, 1}, {1, 2}, {2, 3}}, s.Edges)
	assert.Nil(t, Polyline(1))
}

func TestRangeValidate(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		ok   bool
	}{
		{"fixed", Fixed(1), true},
		{"random", Between(0.1, 0.5), true},
		{"fixed zero", Fixed(0), false},
		{"random negative min", Between(-1, 1), false},
		{"random inverted", Between(2, 1), false},
		{"fixed ignores min", Range{Min: -5, Max: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate("scale")
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsType(err, ErrTypeInvalidConfiguration))
		})
	}
}

func TestSetBounds(t *testing.T) {
	s := &Set{Points: []Point{
		{Position: v3.Vec{X: -1, Y: 2, Z: 0}},
		{Position: v3.Vec{X: 3, Y: -2, Z: 5}},
	}}
	bb := s.Bounds()
	assert.Equal(t, v3.Vec{X: -1, Y: -2, Z: 0}, bb.Min)
	assert.Equal(t, v3.Vec{X: 3, Y: 2, Z: 5}, bb.Max)
	assert.Equal(t, v3.Vec{}, (&Set{}).Bounds().Min)
}
