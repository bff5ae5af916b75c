package main

import (
	"context"
	"io"
	"os"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/chazu/pointarray/pkg/generate"
	"github.com/chazu/pointarray/pkg/pointset"
	"github.com/chazu/pointarray/pkg/poisson"
	"github.com/chazu/pointarray/pkg/preview"
	"github.com/chazu/pointarray/pkg/recipe"
	"github.com/segmentio/encoding/json"
)

// colorPalette assigns distinct display colors to objects.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App evaluates recipes and materializes their results into a Document.
type App struct {
	engine  *recipe.Engine
	opts    []generate.Option
	preview *preview.Options
}

// Object is one named point set in the output document.
type Object struct {
	Name    string            `json:"name"`
	Kind    string            `json:"kind"`
	RunID   string            `json:"run_id"`
	Color   string            `json:"color"`
	Points  []pointset.Point  `json:"points"`
	Edges   []pointset.Edge   `json:"edges,omitempty"`
	Buffers *pointset.Buffers `json:"buffers"`
	Counts  *[3]int           `json:"counts,omitempty"`
	Stats   *poisson.Stats    `json:"stats,omitempty"`
	Preview *preview.Mesh     `json:"preview,omitempty"`
}

// ErrorData is a JSON-serializable recipe or generation error.
type ErrorData struct {
	Line    int    `json:"line,omitempty"`
	Request int    `json:"request,omitempty"` // 1-based generator request
	Type    string `json:"type,omitempty"`
	Message string `json:"message"`
}

// Document is the CLI output. It is also the generate.Sink results are
// placed into, so replace targets can refer to objects created earlier in
// the same recipe.
type Document struct {
	Objects []Object    `json:"objects"`
	Errors  []ErrorData `json:"errors"`
}

func (d *Document) find(name string) int {
	for i, o := range d.Objects {
		if o.Name == name {
			return i
		}
	}
	return -1
}

// Create stores r under name, replacing an object of the same name.
func (d *Document) Create(name string, r *generate.Result) error {
	o := newObject(name, r)
	if i := d.find(name); i >= 0 {
		o.Color = d.Objects[i].Color
		d.Objects[i] = o
		return nil
	}
	o.Color = colorPalette[len(d.Objects)%len(colorPalette)]
	d.Objects = append(d.Objects, o)
	return nil
}

// Replace swaps the points of an existing object.
func (d *Document) Replace(name string, r *generate.Result) error {
	i := d.find(name)
	if i < 0 {
		return errors.New("selected object not found").
			WithType(pointset.ErrTypeNoSelection).
			WithTag("name", name)
	}
	o := newObject(name, r)
	o.Color = d.Objects[i].Color
	d.Objects[i] = o
	return nil
}

func newObject(name string, r *generate.Result) Object {
	return Object{
		Name:    name,
		Kind:    r.Kind,
		RunID:   r.RunID,
		Points:  r.Set.Points,
		Edges:   r.Set.Edges,
		Buffers: r.Set.Buffers(),
		Counts:  r.Counts,
		Stats:   r.Stats,
	}
}

// NewApp creates an App. A nil previewOpts skips mesh previews.
func NewApp(engine *recipe.Engine, previewOpts *preview.Options, opts ...generate.Option) *App {
	return &App{
		engine:  engine,
		opts:    opts,
		preview: previewOpts,
	}
}

// Run evaluates source and runs every generator request it makes. A
// failing request is reported in Errors and the rest still run.
func (a *App) Run(ctx context.Context, source string) *Document {
	doc := &Document{
		Objects: []Object{},
		Errors:  []ErrorData{},
	}

	r, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		logs.Warn(errors.New("recipe evaluation failed").Wrap(err))
		doc.Errors = append(doc.Errors, ErrorData{Message: err.Error()})
		return doc
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			doc.Errors = append(doc.Errors, ErrorData{Line: e.Line, Message: e.Message})
		}
		return doc
	}

	opts := append(r.Options(), a.opts...)
	for i, cfg := range r.Configs {
		if err := ctx.Err(); err != nil {
			doc.Errors = append(doc.Errors, ErrorData{Request: i + 1, Message: err.Error()})
			return doc
		}
		if err := a.runOne(doc, cfg, opts); err != nil {
			logs.WithTag("request", i+1).
				WithTag("kind", cfg.Kind().String()).
				Warn(err)
			doc.Errors = append(doc.Errors, ErrorData{
				Request: i + 1,
				Type:    errors.Type(err),
				Message: err.Error(),
			})
		}
	}
	return doc
}

// runOne generates cfg and places it in doc. The preview is built before
// placement so a failed request leaves doc untouched.
func (a *App) runOne(doc *Document, cfg generate.Config, opts []generate.Option) error {
	res, err := generate.Generate(cfg, opts...)
	if err != nil {
		return err
	}

	var mesh *preview.Mesh
	if a.preview != nil {
		if mesh, err = preview.Tessellate(res.Set, *a.preview); err != nil {
			return errors.New("preview failed").Wrap(err)
		}
		mesh.Name = res.Target.Name
	}

	if err := generate.Place(doc, res); err != nil {
		return err
	}
	doc.Objects[doc.find(res.Target.Name)].Preview = mesh
	return nil
}

// createFile opens the output file. Tests swap it to observe write and
// close failures.
var createFile = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// writeDocument encodes doc as JSON to path, or to stdout when path is
// "-" or empty.
func writeDocument(path string, doc *Document, indent bool) error {
	var (
		b   []byte
		err error
	)
	if indent {
		b, err = json.MarshalIndent(doc, "", "  ")
	} else {
		b, err = json.Marshal(doc)
	}
	if err != nil {
		return errors.New("encoding output failed").Wrap(err)
	}

	if path != "" && path != "-" {
		f, err := createFile(path)
		if err != nil {
			return errors.New("creating output file failed").
				WithTag("path", path).
				Wrap(err)
		}
		if _, err := f.Write(append(b, '\n')); err != nil {
			f.Close()
			return errors.New("writing output failed").
				WithTag("path", path).
				Wrap(err)
		}
		if err := f.Close(); err != nil {
			return errors.New("closing output file failed").
				WithTag("path", path).
				Wrap(err)
		}
		return nil
	}
	if _, err := os.Stdout.Write(append(b, '\n')); err != nil {
		return errors.New("writing output failed").Wrap(err)
	}
	return nil
}
