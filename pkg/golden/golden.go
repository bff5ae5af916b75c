// Package golden generates a flat Fermat (Vogel) spiral.
package golden

import (
	"math"
	"math/rand"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/chazu/pointarray/pkg/pointset"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Angle is the golden angle in radians, written out rather than derived
// from π(3 - √5).
const Angle = 2.39996322972865332

// fillRadius is sin(60°), the radius factor of the gap-filling point.
var fillRadius = math.Sin(math.Pi / 3)

// Config describes a spiral.
type Config struct {
	Count   int              `json:"count"`
	Spacing float64          `json:"spacing"`
	Fill    bool             `json:"fill"` // add a point in the gap at the centre
	Options pointset.Options `json:"options"`
}

// Validate checks count and spacing.
func (c Config) Validate() error {
	if c.Count < 1 {
		return errors.New("golden count must be at least 1").
			WithType(pointset.ErrTypeInvalidConfiguration).
			WithTag("count", c.Count)
	}
	if c.Spacing <= 0 {
		return errors.New("golden spacing must be positive").
			WithType(pointset.ErrTypeInvalidConfiguration).
			WithTag("spacing", c.Spacing)
	}
	return c.Options.Scale.Validate("scale")
}

// Polar returns the position of spiral step i (1-based).
func Polar(i int, spacing float64) v3.Vec {
	r := spacing * math.Sqrt(float64(i))
	theta := float64(i) * Angle
	return v3.Vec{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

// Generate lays out the spiral in the XY plane. With Fill the first point
// sits at spacing*sin(60°) on +X and the spiral takes one step fewer.
func Generate(cfg Config, rng *rand.Rand) (*pointset.Set, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	raw := make([]pointset.Point, 0, cfg.Count)
	steps := cfg.Count
	if cfg.Fill {
		raw = append(raw, pointset.Point{Position: v3.Vec{X: cfg.Spacing * fillRadius}})
		steps--
	}
	for i := 1; i <= steps; i++ {
		raw = append(raw, pointset.Point{Position: Polar(i, cfg.Spacing)})
	}

	return pointset.Emit(raw, cfg.Options, rng), nil
}
