package recipe

import (
	"fmt"
	"math"
	"strings"

	"github.com/chazu/pointarray/pkg/pointset"
	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"
)

// sexpVec3 carries a vector between builtins.
type sexpVec3 struct {
	vec v3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpRange carries a scale or radius range.
type sexpRange struct {
	r pointset.Range
}

func (r *sexpRange) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(between %g %g)", r.r.Min, r.r.Max)
}
func (r *sexpRange) Type() *zygo.RegisteredType { return nil }

// sexpRequest is what a generator builtin returns: a handle to the
// request it queued.
type sexpRequest struct {
	kind  string
	index int
}

func (q *sexpRequest) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s #%d)", q.kind, q.index)
}
func (q *sexpRequest) Type() *zygo.RegisteredType { return nil }

// isKW reports whether s is a preprocessed keyword and returns its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs is an argument list split into keyword and positional values.
// order holds keyword names as they appeared in the call.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	order      []string
	positional []zygo.Sexp
	used       map[string]bool
}

// parseArgs separates keyword pairs from positional arguments. A keyword
// with no value reads as true.
func parseArgs(args []zygo.Sexp) *kwArgs {
	pa := &kwArgs{kw: make(map[string]zygo.Sexp), used: make(map[string]bool)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			pa.positional = append(pa.positional, args[i])
			continue
		}
		if _, seen := pa.kw[name]; !seen {
			pa.order = append(pa.order, name)
		}
		if i+1 < len(args) {
			if _, next := isKW(args[i+1]); !next || keywordValued[name] {
				pa.kw[name] = args[i+1]
				i++
				continue
			}
		}
		pa.kw[name] = &zygo.SexpBool{Val: true}
	}
	return pa
}

// keywordValued lists keywords whose value is itself a keyword, such as
// :shape :sphere.
var keywordValued = map[string]bool{
	"shape": true,
	"align": true,
}

func (pa *kwArgs) get(name string) (zygo.Sexp, bool) {
	v, ok := pa.kw[name]
	if ok {
		pa.used[name] = true
	}
	return v, ok
}

// unknown returns the first keyword, in call order, that no getter
// asked for.
func (pa *kwArgs) unknown() (string, bool) {
	for _, name := range pa.order {
		if !pa.used[name] {
			return name, true
		}
	}
	return "", false
}

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts a whole number. Floats are accepted when integral.
func toInt(s zygo.Sexp) (int, error) {
	f, err := toFloat64(s)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("expected whole number, got %g", f)
	}
	return int(f), nil
}

func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected true or false, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString accepts :name or "name".
func toKeywordString(s zygo.Sexp) (string, error) {
	str, err := toString(s)
	if err != nil {
		return "", fmt.Errorf("expected keyword or string: %w", err)
	}
	return strings.TrimPrefix(str, kwPrefix), nil
}

func toVec3(s zygo.Sexp) (v3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return v3.Vec{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toRange accepts (between lo hi) or a single number for a fixed value.
func toRange(s zygo.Sexp) (pointset.Range, error) {
	if r, ok := s.(*sexpRange); ok {
		return r.r, nil
	}
	f, err := toFloat64(s)
	if err != nil {
		return pointset.Range{}, fmt.Errorf("expected range or number: %w", err)
	}
	return pointset.Fixed(f), nil
}

// toCount accepts a vec3 of whole numbers or one number for all axes.
func toCount(s zygo.Sexp) ([3]int, error) {
	if v, ok := s.(*sexpVec3); ok {
		var out [3]int
		for i, f := range []float64{v.vec.X, v.vec.Y, v.vec.Z} {
			if f != math.Trunc(f) {
				return out, fmt.Errorf("expected whole numbers, got %g", f)
			}
			out[i] = int(f)
		}
		return out, nil
	}
	n, err := toInt(s)
	if err != nil {
		return [3]int{}, err
	}
	return [3]int{n, n, n}, nil
}
