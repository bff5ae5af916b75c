package volume

import (
	"math/rand"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/chazu/pointarray/pkg/geom"
	"github.com/chazu/pointarray/pkg/pointset"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Config places a field. Exactly one of Path or Field must be set.
// Samples sit 2*Scale apart.
type Config struct {
	Path    string           `json:"path,omitempty"`
	Field   *Field           `json:"-"`
	Scale   float64          `json:"scale"`
	Center  bool             `json:"center"`
	Options pointset.Options `json:"options"`
}

// Validate checks the source and the lattice scale.
func (c Config) Validate() error {
	if (c.Path == "") == (c.Field == nil) {
		return errors.New("exactly one of path or field is required").
			WithType(pointset.ErrTypeInvalidConfiguration)
	}
	if c.Scale <= 0 {
		return errors.New("field scale must be positive").
			WithType(pointset.ErrTypeInvalidConfiguration).
			WithTag("scale", c.Scale)
	}
	return c.Options.Scale.Validate("scale")
}

// Import reads the configured field and lays it out as points.
func Import(cfg Config, rng *rand.Rand) (*pointset.Set, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	f := cfg.Field
	if f == nil {
		var err error
		if f, err = ReadFile(cfg.Path); err != nil {
			return nil, err
		}
	} else if err := f.check(); err != nil {
		return nil, err
	}
	return Points(f, cfg, rng), nil
}

// Points lays f out on a lattice. File dimensions map to host axes as
// d0 -> Y, d1 -> Z, d2 -> X, so points come out in grid order: Y
// outermost, then Z, then X. Vector components are permuted the same way.
// Vector samples are oriented along their direction and ignore the random
// rotation option.
func Points(f *Field, cfg Config, rng *rand.Rand) *pointset.Set {
	spacing := 2 * cfg.Scale
	var offset v3.Vec
	if cfg.Center {
		offset = v3.Vec{
			X: float64(f.Dims[2]-1) * spacing * 0.5,
			Y: float64(f.Dims[0]-1) * spacing * 0.5,
			Z: float64(f.Dims[1]-1) * spacing * 0.5,
		}
	}

	raw := make([]pointset.Point, 0, f.Len())
	i := 0
	for a := 0; a < f.Dims[0]; a++ {
		for b := 0; b < f.Dims[1]; b++ {
			for c := 0; c < f.Dims[2]; c++ {
				p := pointset.Point{
					Position: v3.Vec{
						X: float64(c) * spacing,
						Y: float64(a) * spacing,
						Z: float64(b) * spacing,
					}.Sub(offset),
					HasIndex: true,
					Index:    [3]int{c, a, b},
				}
				if f.Kind == pointset.FieldScalar {
					p.Field = pointset.FieldSample{Kind: pointset.FieldScalar, Scalar: f.Scalars[i]}
				} else {
					v := hostVector(f.Vectors[i])
					p.Field = pointset.FieldSample{Kind: pointset.FieldVector, Scalar: v.Length(), Vector: v}
					p.Rotation = geom.EulerFromDirection(v)
					p.Oriented = true
				}
				raw = append(raw, p)
				i++
			}
		}
	}
	return pointset.Emit(raw, cfg.Options, rng)
}

// hostVector moves file components (c0, c1, c2) onto host axes (Y, Z, X).
func hostVector(v v3.Vec) v3.Vec {
	return v3.Vec{X: v.Z, Y: v.X, Z: v.Y}
}
