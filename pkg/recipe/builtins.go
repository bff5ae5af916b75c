package recipe

import (
	"fmt"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/chazu/pointarray/pkg/generate"
	"github.com/chazu/pointarray/pkg/golden"
	"github.com/chazu/pointarray/pkg/grid"
	"github.com/chazu/pointarray/pkg/pointset"
	"github.com/chazu/pointarray/pkg/poisson"
	"github.com/chazu/pointarray/pkg/tabular"
	"github.com/chazu/pointarray/pkg/volume"
	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"
)

type zygoFunc = func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error)

// registerBuiltins installs the recipe builtins. Generator builtins
// append to r.Configs in call order.
//
// Source must go through preprocessSource first so that :keyword tokens
// are recognizable.
func registerBuiltins(env *zygo.Zlisp, r *Recipe) error {
	builtins := []struct {
		name string
		fn   zygoFunc
	}{
		{"vec3", vec3Builtin},
		{"between", betweenBuiltin},
		{"seed", seedBuiltin(r)},
		{"grid", request(r, "grid", gridRequest)},
		{"golden", request(r, "golden", goldenRequest)},
		{"poisson", request(r, "poisson", poissonRequest)},
		{"table", request(r, "table", tableRequest)},
		{"volume", request(r, "volume", volumeRequest)},
	}
	for _, b := range builtins {
		if err := addBuiltin(env, b.name, b.fn); err != nil {
			return err
		}
	}
	return nil
}

// addBuiltin registers fn under name. zygomys resolves its reserved words
// before user functions, so a builtin with such a name would never run.
func addBuiltin(env *zygo.Zlisp, name string, fn zygoFunc) error {
	for _, w := range zygo.ReservedWords {
		if w == name {
			return errors.New("builtin name is reserved by zygomys").
				WithType(pointset.ErrTypeInvalidConfiguration).
				WithTag("name", name)
		}
	}
	env.AddFunction(name, fn)
	return nil
}

// (vec3 1 2 3)
func vec3Builtin(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 3 {
		return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
	}
	var c [3]float64
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: %s: %w", [...]string{"x", "y", "z"}[i], err)
		}
		c[i] = f
	}
	return &sexpVec3{vec: v3.Vec{X: c[0], Y: c[1], Z: c[2]}}, nil
}

// (between 0.1 0.4) draws uniformly from the interval. zygomys reserves
// range for loops.
func betweenBuiltin(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 2 {
		return zygo.SexpNull, fmt.Errorf("between requires exactly 2 arguments, got %d", len(args))
	}
	lo, err := toFloat64(args[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("between: min: %w", err)
	}
	hi, err := toFloat64(args[1])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("between: max: %w", err)
	}
	return &sexpRange{r: pointset.Between(lo, hi)}, nil
}

// (seed 42)
func seedBuiltin(r *Recipe) zygoFunc {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("seed requires exactly 1 argument, got %d", len(args))
		}
		n, err := toInt(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("seed: %w", err)
		}
		s := int64(n)
		r.Seed = &s
		return zygo.SexpNull, nil
	}
}

// request wraps a generator builtin: it parses keyword arguments, builds
// the config, rejects unknown keywords and queues the result.
func request(r *Recipe, kind string, build func(pa *kwArgs, target generate.Target) (generate.Config, error)) zygoFunc {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) > 0 {
			return zygo.SexpNull, fmt.Errorf("%s: unexpected positional argument %s", kind, pa.positional[0].SexpString(nil))
		}
		target, err := readTarget(pa, kind)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", kind, err)
		}
		cfg, err := build(pa, target)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", kind, err)
		}
		if kw, ok := pa.unknown(); ok {
			return zygo.SexpNull, fmt.Errorf("%s: unknown keyword :%s", kind, kw)
		}
		r.Configs = append(r.Configs, cfg)
		return &sexpRequest{kind: kind, index: len(r.Configs) - 1}, nil
	}
}

// readTarget reads :name "obj" (create or replace by name) or
// :selected "obj" (replace the selected object). The name defaults to
// the builtin name. The two keywords are exclusive.
func readTarget(pa *kwArgs, kind string) (generate.Target, error) {
	t := generate.Target{Mode: generate.CreateByName, Name: kind}
	_, hasName := pa.kw["name"]
	_, hasSelected := pa.kw["selected"]
	if hasName && hasSelected {
		return t, errors.New("name and selected are exclusive").
			WithType(pointset.ErrTypeInvalidConfiguration)
	}
	if v, ok := pa.get("name"); ok {
		s, err := toString(v)
		if err != nil {
			return t, fmt.Errorf("name: %w", err)
		}
		t.Name = s
	}
	if v, ok := pa.get("selected"); ok {
		s, err := toString(v)
		if err != nil {
			return t, fmt.Errorf("selected: %w", err)
		}
		t = generate.Target{Mode: generate.ReplaceSelected, Name: s}
	}
	return t, nil
}

// readOptions reads :scale, :rotate and :polyline.
func readOptions(pa *kwArgs) (pointset.Options, error) {
	opts := pointset.DefaultOptions()
	if v, ok := pa.get("scale"); ok {
		sr, err := toRange(v)
		if err != nil {
			return opts, fmt.Errorf("scale: %w", err)
		}
		opts.Scale = sr
	}
	if err := readBool(pa, "rotate", &opts.RandomRotation); err != nil {
		return opts, err
	}
	if err := readBool(pa, "polyline", &opts.Polyline); err != nil {
		return opts, err
	}
	return opts, nil
}

func readBool(pa *kwArgs, key string, dst *bool) error {
	v, ok := pa.get(key)
	if !ok {
		return nil
	}
	b, err := toBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}

func readFloat(pa *kwArgs, key string, dst *float64) error {
	v, ok := pa.get(key)
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = f
	return nil
}

func readInt(pa *kwArgs, key string, dst *int) error {
	v, ok := pa.get(key)
	if !ok {
		return nil
	}
	n, err := toInt(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func readString(pa *kwArgs, key string, dst *string) error {
	v, ok := pa.get(key)
	if !ok {
		return nil
	}
	s, err := toString(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = s
	return nil
}

// (grid :count (vec3 4 4 2) :spacing 0.5 :ground true)
func gridRequest(pa *kwArgs, target generate.Target) (generate.Config, error) {
	cfg := grid.Config{Count: [3]int{1, 1, 1}, Spacing: 1}
	if v, ok := pa.get("count"); ok {
		c, err := toCount(v)
		if err != nil {
			return nil, fmt.Errorf("count: %w", err)
		}
		cfg.Count = c
	}
	if err := readFloat(pa, "spacing", &cfg.Spacing); err != nil {
		return nil, err
	}
	if err := readBool(pa, "ground", &cfg.Ground); err != nil {
		return nil, err
	}
	opts, err := readOptions(pa)
	if err != nil {
		return nil, err
	}
	cfg.Options = opts
	return generate.GridConfig{Grid: cfg, Target: target}, nil
}

// (golden :count 200 :spacing 0.1 :fill true)
func goldenRequest(pa *kwArgs, target generate.Target) (generate.Config, error) {
	cfg := golden.Config{Count: 1, Spacing: 1}
	if err := readInt(pa, "count", &cfg.Count); err != nil {
		return nil, err
	}
	if err := readFloat(pa, "spacing", &cfg.Spacing); err != nil {
		return nil, err
	}
	if err := readBool(pa, "fill", &cfg.Fill); err != nil {
		return nil, err
	}
	opts, err := readOptions(pa)
	if err != nil {
		return nil, err
	}
	cfg.Options = opts
	return generate.GoldenConfig{Golden: cfg, Target: target}, nil
}

// (poisson :extent (vec3 4 4 1) :shape :cylinder :align :radius :radius (between 0.1 0.3))
func poissonRequest(pa *kwArgs, target generate.Target) (generate.Config, error) {
	cfg := poisson.DefaultConfig()
	if v, ok := pa.get("extent"); ok {
		e, err := toVec3(v)
		if err != nil {
			return nil, fmt.Errorf("extent: %w", err)
		}
		cfg.Extent = e
	}
	if v, ok := pa.get("shape"); ok {
		s, err := toKeywordString(v)
		if err != nil {
			return nil, fmt.Errorf("shape: %w", err)
		}
		if cfg.Shape, err = poisson.ParseShape(s); err != nil {
			return nil, err
		}
	}
	if v, ok := pa.get("align"); ok {
		s, err := toKeywordString(v)
		if err != nil {
			return nil, fmt.Errorf("align: %w", err)
		}
		if cfg.Align, err = poisson.ParseAlign(s); err != nil {
			return nil, err
		}
	}
	if v, ok := pa.get("radius"); ok {
		rr, err := toRange(v)
		if err != nil {
			return nil, fmt.Errorf("radius: %w", err)
		}
		cfg.Radius = rr
	}
	if err := readFloat(pa, "truncation", &cfg.Truncation); err != nil {
		return nil, err
	}
	if err := readInt(pa, "target", &cfg.Target); err != nil {
		return nil, err
	}
	if err := readInt(pa, "failures", &cfg.FailureLimit); err != nil {
		return nil, err
	}
	if err := readInt(pa, "attempts", &cfg.AttemptLimit); err != nil {
		return nil, err
	}
	if err := readBool(pa, "rotate", &cfg.RandomRotation); err != nil {
		return nil, err
	}
	if err := readBool(pa, "polyline", &cfg.Polyline); err != nil {
		return nil, err
	}
	return generate.PoissonConfig{Poisson: cfg, Target: target}, nil
}

// (table :path "points.csv" :skip-header true) or (table :text "1,2,3\n4,5,6")
func tableRequest(pa *kwArgs, target generate.Target) (generate.Config, error) {
	var cfg tabular.Config
	if err := readString(pa, "text", &cfg.Text); err != nil {
		return nil, err
	}
	if err := readString(pa, "path", &cfg.Path); err != nil {
		return nil, err
	}
	if err := readBool(pa, "skip-header", &cfg.SkipHeader); err != nil {
		return nil, err
	}
	opts, err := readOptions(pa)
	if err != nil {
		return nil, err
	}
	cfg.Options = opts
	return generate.TabularConfig{Tabular: cfg, Target: target}, nil
}

// (volume :path "wind.vf" :spacing 1 :center true)
func volumeRequest(pa *kwArgs, target generate.Target) (generate.Config, error) {
	cfg := volume.Config{Scale: 1}
	if err := readString(pa, "path", &cfg.Path); err != nil {
		return nil, err
	}
	spacing := 2 * cfg.Scale
	if err := readFloat(pa, "spacing", &spacing); err != nil {
		return nil, err
	}
	cfg.Scale = spacing / 2
	if err := readBool(pa, "center", &cfg.Center); err != nil {
		return nil, err
	}
	opts, err := readOptions(pa)
	if err != nil {
		return nil, err
	}
	cfg.Options = opts
	return generate.VolumeConfig{Volume: cfg, Target: target}, nil
}
