// Package poisson packs non-overlapping discs into a masked volume by
// bounded rejection sampling.
//
// Every candidate is tested against all accepted points. Generation stops
// when the target count is reached, after FailureLimit consecutive
// rejections, or after AttemptLimit candidates, whichever comes first;
// reaching the target is not guaranteed.
package poisson

import (
	"math"
	"math/rand"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/chazu/pointarray/pkg/geom"
	"github.com/chazu/pointarray/pkg/pointset"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Config describes a packing.
type Config struct {
	Extent     v3.Vec         `json:"extent"` // full size of the area
	Shape      Shape          `json:"shape"`
	Align      Align          `json:"align"`
	Truncation float64        `json:"truncation"` // hull only; 0 keeps the whole surface
	Radius     pointset.Range `json:"radius"`

	Target       int `json:"target"`
	FailureLimit int `json:"failure_limit"`
	AttemptLimit int `json:"attempt_limit"`

	RandomRotation bool `json:"random_rotation"`
	Polyline       bool `json:"polyline"`
}

// DefaultConfig mirrors the defaults of the original tool panel.
func DefaultConfig() Config {
	return Config{
		Extent:       v3.Vec{X: 2, Y: 2, Z: 2},
		Shape:        Box,
		Align:        Center,
		Radius:       pointset.Between(0.1, 0.4),
		Target:       100,
		FailureLimit: 1000,
		AttemptLimit: 10000,
	}
}

// Stats reports how a run went. It is informational only.
type Stats struct {
	Elements    int           `json:"elements"`
	MaxFailures int           `json:"max_failures"` // longest run of consecutive rejections
	Attempts    int           `json:"attempts"`
	Elapsed     time.Duration `json:"elapsed"`
}

// Result is the packed set and its run statistics.
type Result struct {
	Set   *pointset.Set
	Stats Stats
}

// Validate checks extents, limits and the radius range.
func (c Config) Validate() error {
	for _, v := range []float64{c.Extent.X, c.Extent.Y, c.Extent.Z} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("extent must be finite and non-negative").
				WithType(pointset.ErrTypeInvalidConfiguration).
				WithTag("extent", c.Extent)
		}
	}
	if c.Shape < Box || c.Shape > Hull {
		return errors.New("invalid shape").
			WithType(pointset.ErrTypeInvalidConfiguration).
			WithTag("shape", int(c.Shape))
	}
	if c.Align < Center || c.Align > Radius {
		return errors.New("invalid alignment").
			WithType(pointset.ErrTypeInvalidConfiguration).
			WithTag("align", int(c.Align))
	}
	if c.Truncation < 0 || c.Truncation > 1 {
		return errors.New("truncation must be within [0, 1]").
			WithType(pointset.ErrTypeInvalidConfiguration).
			WithTag("truncation", c.Truncation)
	}
	limits := []struct {
		name  string
		value int
	}{
		{"target", c.Target},
		{"failure_limit", c.FailureLimit},
		{"attempt_limit", c.AttemptLimit},
	}
	for _, l := range limits {
		if l.value < 1 {
			return errors.New("limit must be at least 1").
				WithType(pointset.ErrTypeInvalidConfiguration).
				WithTag("limit", l.name).
				WithTag("value", l.value)
		}
	}
	return c.Radius.Validate("radius")
}

// sampler draws candidates for one run.
type sampler struct {
	cfg  Config
	rng  *rand.Rand
	half v3.Vec // unshrunk half-extents
	trim float64
}

// candidate draws a position for a disc of radius r. It returns false when
// the draw is rejected by the shape mask.
func (s *sampler) candidate(r float64) (v3.Vec, bool) {
	if s.cfg.Shape == Hull {
		return s.hullCandidate()
	}

	usable := s.half
	if s.cfg.Align == Radius {
		usable = geom.Floor(s.half.Sub(v3.Vec{X: r, Y: r, Z: r}), geom.Epsilon)
	}
	pos := v3.Vec{
		X: geom.Uniform(s.rng, -usable.X, usable.X),
		Y: geom.Uniform(s.rng, -usable.Y, usable.Y),
		Z: geom.Uniform(s.rng, -usable.Z, usable.Z),
	}

	n := pos.Mul(geom.Reciprocals(usable))
	switch s.cfg.Shape {
	case Sphere:
		if n.Length() >= 1 {
			return pos, false
		}
	case Cylinder:
		if math.Hypot(n.X, n.Y) >= 1 {
			return pos, false
		}
	}
	return pos, true
}

// hullCandidate normalizes a cube sample with Z limited to [trim, 1] and
// stretches it onto the ellipsoid. This is not uniform over the surface.
func (s *sampler) hullCandidate() (v3.Vec, bool) {
	raw := v3.Vec{
		X: geom.Uniform(s.rng, -1, 1),
		Y: geom.Uniform(s.rng, -1, 1),
		Z: geom.Uniform(s.rng, s.trim, 1),
	}
	if raw.Z < s.trim {
		return raw, false
	}
	dir, ok := geom.Normalize(raw)
	if !ok {
		return raw, false
	}
	return dir.Mul(s.half), true
}

// overlaps reports whether a disc at pos with radius r intersects any
// accepted disc.
func overlaps(points []pointset.Point, pos v3.Vec, r float64) bool {
	for _, q := range points {
		if geom.Distance(pos, q.Position) < r+q.Scale {
			return true
		}
	}
	return false
}

// Generate packs discs according to cfg.
func Generate(cfg Config, rng *rand.Rand) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	s := &sampler{
		cfg:  cfg,
		rng:  rng,
		half: cfg.Extent.MulScalar(0.5),
		trim: 2*cfg.Truncation - 1,
	}
	lo, hi := cfg.Radius.Bounds()

	var (
		points      []pointset.Point
		failures    int
		attempts    int
		maxFailures int
	)
	for len(points) < cfg.Target && failures < cfg.FailureLimit && attempts < cfg.AttemptLimit {
		attempts++
		failures++

		r := geom.Uniform(rng, lo, hi)
		pos, ok := s.candidate(r)
		if !ok || overlaps(points, pos, r) {
			continue
		}

		points = append(points, pointset.Point{Position: pos, Scale: r})
		maxFailures = max(maxFailures, failures)
		failures = 0
	}
	// The loop may have stopped on the failure limit.
	maxFailures = max(maxFailures, failures)

	inv := geom.Reciprocals(s.half)
	for i := range points {
		rel := points[i].Position.Mul(inv)
		points[i].HasRelative = true
		points[i].Relative = rel
		points[i].Distance = rel.Length()
	}

	set := pointset.Emit(points, pointset.Options{
		Scale:          pointset.Fixed(hi),
		RandomRotation: cfg.RandomRotation,
		Polyline:       cfg.Polyline,
	}, rng)

	stats := Stats{
		Elements:    set.Len(),
		MaxFailures: maxFailures,
		Attempts:    attempts,
		Elapsed:     time.Since(start),
	}
	instrumentRun(cfg.Shape, stats)

	return &Result{Set: set, Stats: stats}, nil
}
