package generate

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/chazu/pointarray/pkg/pointset"
)

// Mode tells the host how to materialize a result.
type Mode int

const (
	// CreateByName creates the named object, replacing one that already
	// has that name.
	CreateByName Mode = iota
	// ReplaceSelected swaps the points of the host's current selection.
	ReplaceSelected
)

func (m Mode) String() string {
	switch m {
	case CreateByName:
		return "create"
	case ReplaceSelected:
		return "replace"
	default:
		return "unknown"
	}
}

// ParseMode parses "create" or "replace".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "create", "":
		return CreateByName, nil
	case "replace", "replace-selected":
		return ReplaceSelected, nil
	}
	return 0, errors.New("unknown target mode").
		WithType(pointset.ErrTypeInvalidConfiguration).
		WithTag("mode", s)
}

// Target is where the host should put the points. For ReplaceSelected,
// Name is the selected object; an empty name means nothing is selected.
type Target struct {
	Mode Mode   `json:"mode"`
	Name string `json:"name"`
}

// Validate checks that the target names an object.
func (t Target) Validate() error {
	switch t.Mode {
	case CreateByName:
		if t.Name == "" {
			return errors.New("target name is required").
				WithType(pointset.ErrTypeInvalidConfiguration)
		}
	case ReplaceSelected:
		if t.Name == "" {
			return errors.New("no object selected").
				WithType(pointset.ErrTypeNoSelection)
		}
	default:
		return errors.New("unknown target mode").
			WithType(pointset.ErrTypeInvalidConfiguration).
			WithTag("mode", int(t.Mode))
	}
	return nil
}

// Sink is the host collaborator that materializes results.
type Sink interface {
	// Create stores r under name, replacing any existing object.
	Create(name string, r *Result) error

	// Replace swaps the points of the existing object name. It fails with
	// a NoSelection error when no such object exists.
	Replace(name string, r *Result) error
}

// Place hands r to s according to its target.
func Place(s Sink, r *Result) error {
	if err := r.Target.Validate(); err != nil {
		return err
	}
	if r.Target.Mode == ReplaceSelected {
		return s.Replace(r.Target.Name, r)
	}
	return s.Create(r.Target.Name, r)
}
