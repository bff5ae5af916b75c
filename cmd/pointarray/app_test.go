package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/chazu/pointarray/pkg/generate"
	"github.com/chazu/pointarray/pkg/pointset"
	"github.com/chazu/pointarray/pkg/preview"
	"github.com/chazu/pointarray/pkg/recipe"
	"github.com/chazu/pointarray/pkg/volume"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(previewOpts *preview.Options) *App {
	return NewApp(recipe.NewEngine(), previewOpts, generate.WithSeed(1))
}

func TestRunCreatesObjects(t *testing.T) {
	doc := newTestApp(nil).Run(context.Background(), `
(grid :count (vec3 2 2 2) :name "lattice")
(golden :count 5 :polyline true)
`)
	require.Empty(t, doc.Errors)
	require.Len(t, doc.Objects, 2)

	lattice := doc.Objects[0]
	assert.Equal(t, "lattice", lattice.Name)
	assert.Equal(t, "grid", lattice.Kind)
	assert.Equal(t, &[3]int{2, 2, 2}, lattice.Counts)
	assert.Equal(t, 8, lattice.Buffers.VertexCount())
	assert.Equal(t, colorPalette[0], lattice.Color)

	spiral := doc.Objects[1]
	assert.Equal(t, "golden", spiral.Name)
	assert.Len(t, spiral.Edges, 4)
	assert.Equal(t, 4, spiral.Buffers.EdgeCount())
	assert.Equal(t, colorPalette[1], spiral.Color)
	assert.Nil(t, spiral.Preview)
}

func TestRunReplaceSelected(t *testing.T) {
	doc := newTestApp(nil).Run(context.Background(), `
(golden :count 3 :name "spiral")
(golden :count 9 :selected "spiral")
(golden :count 2 :selected "missing")
(golden :count 2 :selected "")
`)
	require.Len(t, doc.Objects, 1)
	assert.Len(t, doc.Objects[0].Points, 9)
	assert.Equal(t, colorPalette[0], doc.Objects[0].Color)

	require.Len(t, doc.Errors, 2)
	for i, e := range doc.Errors {
		assert.Equal(t, i+3, e.Request)
		assert.Equal(t, pointset.ErrTypeNoSelection, e.Type)
	}
}

func TestRunCreateReplacesByName(t *testing.T) {
	doc := newTestApp(nil).Run(context.Background(), `
(golden :count 3 :name "a")
(grid :count 2 :name "b")
(golden :count 4 :name "a")
`)
	require.Empty(t, doc.Errors)
	require.Len(t, doc.Objects, 2)
	assert.Len(t, doc.Objects[0].Points, 4)
	assert.Equal(t, colorPalette[0], doc.Objects[0].Color)
}

func TestRunReportsGenerationErrors(t *testing.T) {
	dir := t.TempDir()
	field, err := volume.NewScalar([3]int{2, 1, 1}, []float64{0.25, 0.75})
	require.NoError(t, err)
	path := filepath.Join(dir, "density.vf")
	require.NoError(t, volume.WriteFile(path, field))

	doc := newTestApp(nil).Run(context.Background(),
		`(table :text "x,y")`+"\n"+
			`(volume :path "`+filepath.ToSlash(path)+`" :spacing 1)`+"\n"+
			`(grid :count 0)`)

	require.Len(t, doc.Objects, 1)
	assert.Equal(t, "volume", doc.Objects[0].Name)
	assert.Equal(t, "volume", doc.Objects[0].Kind)
	assert.Equal(t, 0.75, doc.Objects[0].Points[1].Field.Scalar)

	require.Len(t, doc.Errors, 2)
	assert.Equal(t, ErrorData{Request: 1, Type: pointset.ErrTypeDataError, Message: doc.Errors[0].Message}, doc.Errors[0])
	assert.Equal(t, 3, doc.Errors[1].Request)
	assert.Equal(t, pointset.ErrTypeInvalidConfiguration, doc.Errors[1].Type)
}

func TestRunEvalErrors(t *testing.T) {
	doc := newTestApp(nil).Run(context.Background(), "(grid :count")
	assert.Empty(t, doc.Objects)
	require.NotEmpty(t, doc.Errors)
	assert.NotEmpty(t, doc.Errors[0].Message)
}

func TestRunStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc := newTestApp(nil).Run(ctx, `(golden :count 3)`)
	assert.Empty(t, doc.Objects)
	require.Len(t, doc.Errors, 1)
	assert.Equal(t, 1, doc.Errors[0].Request)
}

func TestRunWithPreview(t *testing.T) {
	doc := newTestApp(&preview.Options{Marker: preview.Sphere, Cells: 16}).
		Run(context.Background(), `(golden :count 2 :spacing 2 :scale 0.5 :name "dots")`)
	require.Empty(t, doc.Errors)
	require.Len(t, doc.Objects, 1)
	require.NotNil(t, doc.Objects[0].Preview)
	assert.Equal(t, "dots", doc.Objects[0].Preview.Name)
	assert.False(t, doc.Objects[0].Preview.IsEmpty())
}

func TestRunPreviewFailureLeavesDocumentUntouched(t *testing.T) {
	doc := newTestApp(&preview.Options{Marker: preview.Marker(9)}).
		Run(context.Background(), `(golden :count 2 :name "dots")`)
	assert.Empty(t, doc.Objects)
	require.Len(t, doc.Errors, 1)
	assert.Equal(t, 1, doc.Errors[0].Request)
	assert.Equal(t, pointset.ErrTypeInvalidConfiguration, doc.Errors[0].Type)
}

type failingFile struct {
	writeErr error
	closeErr error
}

func (f *failingFile) Write(b []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return len(b), nil
}

func (f *failingFile) Close() error { return f.closeErr }

func TestWriteDocumentReportsFileErrors(t *testing.T) {
	tests := []struct {
		name string
		file *failingFile
		want string
	}{
		{"write", &failingFile{writeErr: os.ErrClosed}, "writing output failed"},
		{"close", &failingFile{closeErr: os.ErrClosed}, "closing output file failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := createFile
			t.Cleanup(func() { createFile = orig })
			createFile = func(string) (io.WriteCloser, error) { return tt.file, nil }

			err := writeDocument("out.json", &Document{}, false)
			require.Error(t, err)
			assert.Equal(t, tt.want, errors.Message(err))
			assert.True(t, errors.Is(err, os.ErrClosed))
		})
	}
}

func TestWriteDocument(t *testing.T) {
	doc := newTestApp(nil).Run(context.Background(), `(golden :count 3)`)
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, writeDocument(path, doc, true))

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var got struct {
		Objects []struct {
			Name    string `json:"name"`
			Buffers struct {
				Vertices []float32 `json:"vertices"`
			} `json:"buffers"`
		} `json:"objects"`
	}
	require.NoError(t, json.Unmarshal(b, &got))
	require.Len(t, got.Objects, 1)
	assert.Equal(t, "golden", got.Objects[0].Name)
	assert.Len(t, got.Objects[0].Buffers.Vertices, 9)
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	recipePath := filepath.Join(dir, "scatter.pa")
	require.NoError(t, os.WriteFile(recipePath, []byte(`
(seed 3)
(poisson :extent (vec3 2 2 0) :shape :cylinder :radius 0.1 :target 20)
`), 0o644))

	conf := config{
		Recipe:      recipePath,
		Output:      filepath.Join(dir, "out.json"),
		MetricsFile: filepath.Join(dir, "metrics.prom"),
		Timeout:     time.Second,
	}
	require.NoError(t, run(context.Background(), conf))

	metrics, err := os.ReadFile(conf.MetricsFile)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(metrics), `pointarray_poisson_runs{shape="cylinder"}`))

	_, err = os.Stat(conf.Output)
	require.NoError(t, err)
}

func TestRunCommandErrors(t *testing.T) {
	err := run(context.Background(), config{Timeout: time.Second})
	assert.True(t, errors.IsType(err, pointset.ErrTypeInvalidConfiguration))

	err = run(context.Background(), config{Recipe: "recipe.pa"})
	assert.True(t, errors.IsType(err, pointset.ErrTypeInvalidConfiguration))

	dir := t.TempDir()
	recipePath := filepath.Join(dir, "bad.pa")
	require.NoError(t, os.WriteFile(recipePath, []byte(`(grid :count 0)`), 0o644))
	err = run(context.Background(), config{
		Recipe:  recipePath,
		Output:  filepath.Join(dir, "out.json"),
		Timeout: time.Second,
	})
	assert.Error(t, err)

	err = run(context.Background(), config{
		Recipe:  recipePath,
		Preview: "cone",
		Timeout: time.Second,
	})
	assert.True(t, errors.IsType(err, pointset.ErrTypeInvalidConfiguration))
}
