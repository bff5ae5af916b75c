// Package generate dispatches a generator request to the matching
// generator and wraps its output with placement and run information.
package generate

import (
	"math/rand"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/chazu/pointarray/pkg/golden"
	"github.com/chazu/pointarray/pkg/grid"
	"github.com/chazu/pointarray/pkg/pointset"
	"github.com/chazu/pointarray/pkg/poisson"
	"github.com/chazu/pointarray/pkg/tabular"
	"github.com/chazu/pointarray/pkg/volume"
	"github.com/google/uuid"
)

// Result is a generated point set ready for placement.
type Result struct {
	RunID  string         `json:"run_id"`
	Kind   string         `json:"kind"`
	Set    *pointset.Set  `json:"set"`
	Counts *[3]int        `json:"counts,omitempty"` // grid only
	Stats  *poisson.Stats `json:"stats,omitempty"`  // poisson only
	Target Target         `json:"target"`
}

// Option customizes a Generate call.
type Option func(*options)

type options struct {
	rng *rand.Rand
}

// WithRand sets the random source. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("generate: WithRand(nil)")
	}
	return func(o *options) {
		o.rng = r
	}
}

// WithSeed seeds a new random source so runs are reproducible.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewSource(seed))
	}
}

// Generate validates the target, runs the generator for cfg and returns
// its output. Without WithSeed or WithRand the source is seeded from the
// clock. Nothing is returned alongside an error.
func Generate(cfg Config, opts ...Option) (*Result, error) {
	if cfg == nil {
		return nil, errors.New("config is nil").
			WithType(pointset.ErrTypeInvalidConfiguration)
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	res := &Result{
		RunID:  uuid.NewString(),
		Kind:   cfg.Kind().String(),
		Target: cfg.Placement(),
	}
	if err := res.Target.Validate(); err != nil {
		return nil, err
	}

	logs.WithTag("run_id", res.RunID).
		WithTag("kind", res.Kind).
		WithTag("target", res.Target.Name).
		Debug("generating points")

	var err error
	switch c := cfg.(type) {
	case GridConfig:
		var r *grid.Result
		if r, err = grid.Generate(c.Grid, o.rng); err == nil {
			res.Set = r.Set
			res.Counts = &r.Counts
		}
	case GoldenConfig:
		res.Set, err = golden.Generate(c.Golden, o.rng)
	case PoissonConfig:
		var r *poisson.Result
		if r, err = poisson.Generate(c.Poisson, o.rng); err == nil {
			res.Set = r.Set
			res.Stats = &r.Stats
		}
	case TabularConfig:
		res.Set, err = tabular.Import(c.Tabular, o.rng)
	case VolumeConfig:
		res.Set, err = volume.Import(c.Volume, o.rng)
	default:
		err = errors.New("unsupported config").
			WithType(pointset.ErrTypeInvalidConfiguration).
			WithTag("kind", res.Kind)
	}
	if err != nil {
		return nil, err
	}

	entry := logs.WithTag("run_id", res.RunID).
		WithTag("kind", res.Kind).
		WithTag("points", res.Set.Len()).
		WithTag("edges", len(res.Set.Edges))
	if res.Stats != nil {
		entry = entry.
			WithTag("max_failures", res.Stats.MaxFailures).
			WithTag("attempts", res.Stats.Attempts).
			WithTag("elapsed", res.Stats.Elapsed)
	}
	entry.Info("points generated")
	return res, nil
}
