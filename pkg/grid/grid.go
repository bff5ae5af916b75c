// Package grid generates a rectilinear lattice of points.
package grid

import (
	"math/rand"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/chazu/pointarray/pkg/geom"
	"github.com/chazu/pointarray/pkg/pointset"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Config describes a lattice. Count holds the number of points along X, Y
// and Z.
type Config struct {
	Count   [3]int           `json:"count"`
	Spacing float64          `json:"spacing"`
	Ground  bool             `json:"ground"` // lowest layer sits at z = 0
	Options pointset.Options `json:"options"`
}

// Result is the generated lattice and the exact counts used.
type Result struct {
	Set    *pointset.Set
	Counts [3]int
}

// Validate checks counts and spacing.
func (c Config) Validate() error {
	for axis, n := range c.Count {
		if n < 1 {
			return errors.New("grid count must be at least 1").
				WithType(pointset.ErrTypeInvalidConfiguration).
				WithTag("axis", axisName(axis)).
				WithTag("count", n)
		}
	}
	if c.Spacing <= 0 {
		return errors.New("grid spacing must be positive").
			WithType(pointset.ErrTypeInvalidConfiguration).
			WithTag("spacing", c.Spacing)
	}
	return c.Options.Scale.Validate("scale")
}

// Len returns the number of points the lattice will hold.
func (c Config) Len() int {
	return c.Count[0] * c.Count[1] * c.Count[2]
}

// Generate lays out the lattice. Points are emitted with Y outermost, then
// Z, then X innermost; volume files rely on this order.
func Generate(cfg Config, rng *rand.Rand) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	nx, ny, nz := cfg.Count[0], cfg.Count[1], cfg.Count[2]
	half := v3.Vec{
		X: float64(nx-1) * cfg.Spacing * 0.5,
		Y: float64(ny-1) * cfg.Spacing * 0.5,
		Z: float64(nz-1) * cfg.Spacing * 0.5,
	}
	rel := geom.Reciprocals(half)

	raw := make([]pointset.Point, 0, cfg.Len())
	for y := 0; y < ny; y++ {
		for z := 0; z < nz; z++ {
			for x := 0; x < nx; x++ {
				centered := v3.Vec{
					X: float64(x)*cfg.Spacing - half.X,
					Y: float64(y)*cfg.Spacing - half.Y,
					Z: float64(z)*cfg.Spacing - half.Z,
				}
				pos := centered
				if cfg.Ground {
					pos.Z = float64(z) * cfg.Spacing
				}
				relative := centered.Mul(rel)
				raw = append(raw, pointset.Point{
					Position:    pos,
					HasIndex:    true,
					Index:       [3]int{x, y, z},
					HasRelative: true,
					Relative:    relative,
					Distance:    relative.Length(),
				})
			}
		}
	}

	return &Result{
		Set:    pointset.Emit(raw, cfg.Options, rng),
		Counts: cfg.Count,
	}, nil
}

func axisName(axis int) string {
	return [...]string{"x", "y", "z"}[axis]
}
