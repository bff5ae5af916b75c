package pointset

import (
	"math/rand"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/chazu/pointarray/pkg/geom"
)

// Range is a scale or radius setting. With Random unset every draw
// returns Max.
type Range struct {
	Random bool    `json:"random"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Fixed returns a non-random range that always yields v.
func Fixed(v float64) Range {
	return Range{Min: v, Max: v}
}

// Between returns a random range over [lo, hi].
func Between(lo, hi float64) Range {
	return Range{Random: true, Min: lo, Max: hi}
}

// Bounds returns the effective [lo, hi] interval.
func (r Range) Bounds() (lo, hi float64) {
	if !r.Random {
		return r.Max, r.Max
	}
	return r.Min, r.Max
}

// Draw returns the next value of the range.
func (r Range) Draw(rng *rand.Rand) float64 {
	lo, hi := r.Bounds()
	return geom.Uniform(rng, lo, hi)
}

// Validate checks that the range only yields positive values.
func (r Range) Validate(name string) error {
	lo, hi := r.Bounds()
	if lo <= 0 || hi <= 0 {
		return errors.New("range must be positive").
			WithType(ErrTypeInvalidConfiguration).
			WithTag("setting", name).
			WithTag("min", lo).
			WithTag("max", hi)
	}
	if lo > hi {
		return errors.New("range minimum exceeds maximum").
			WithType(ErrTypeInvalidConfiguration).
			WithTag("setting", name).
			WithTag("min", lo).
			WithTag("max", hi)
	}
	return nil
}

// Options are the attribute settings shared by all generators.
type Options struct {
	Scale          Range `json:"scale"`
	RandomRotation bool  `json:"random_rotation"`
	Polyline       bool  `json:"polyline"`
}

// DefaultOptions returns unit scale, no rotation and no edges.
func DefaultOptions() Options {
	return Options{Scale: Fixed(1)}
}
