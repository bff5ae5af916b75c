package main

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"strings"
	"syscall"
	"time"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/chazu/pointarray/pkg/generate"
	"github.com/chazu/pointarray/pkg/pointset"
	"github.com/chazu/pointarray/pkg/preview"
	"github.com/chazu/pointarray/pkg/recipe"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/encoding/json"
)

// The pointarray version number. Set at build.
var version = "v0.1.0"

// Keeps the config field names intact under obfuscating builds so the cli
// package still derives readable options.
var _ = reflect.TypeOf(config{})

type config struct {
	Recipe       string        `cli:""        env:"POINTARRAY_RECIPE"        help:"Recipe file to evaluate."`
	Output       string        `cli:""        env:"POINTARRAY_OUTPUT"        help:"Output file for the JSON document, - for stdout."`
	Seed         int           `cli:""        env:"POINTARRAY_SEED"          help:"Random seed; 0 uses the recipe seed or the clock."`
	Preview      string        `cli:""        env:"POINTARRAY_PREVIEW"       help:"Add a preview mesh per object (sphere|cube)."`
	PreviewCells int           `cli:",hidden" env:"POINTARRAY_PREVIEW_CELLS" help:"Marching cubes resolution of preview meshes."`
	MetricsFile  string        `cli:""        env:"POINTARRAY_METRICS_FILE"  help:"Write generator metrics to this file in the Prometheus text format."`
	Timeout      time.Duration `cli:",hidden" env:"POINTARRAY_TIMEOUT"       help:"Recipe evaluation timeout."`
	LogLevel     string        `cli:""        env:"POINTARRAY_LOG_LEVEL"     help:"Log level (debug|info|warning|error)."`
	LogIndent    bool          `cli:""        env:"POINTARRAY_LOG_INDENT"    help:"Indent logs and output."`
	Version      bool          `cli:""        env:"-"                        help:"Show version."`
	Help         bool          `cli:""        env:"-"                        help:"Show help."`
}

func main() {
	conf := config{
		Output:       "-",
		PreviewCells: preview.DefaultCells,
		Timeout:      recipe.EvalTimeout,
		LogLevel:     logs.InfoLevel.String(),
	}

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Generates point arrays from a recipe.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	errors.Encoder = json.Marshal

	if err := run(ctx, conf); err != nil {
		logs.Fatal(err)
	}
}

func validateConfig(conf config) error {
	if conf.Recipe == "" {
		return errors.New("a recipe file is required").
			WithType(pointset.ErrTypeInvalidConfiguration)
	}
	if conf.Timeout <= 0 {
		return errors.New("timeout must be positive").
			WithType(pointset.ErrTypeInvalidConfiguration).
			WithTag("timeout", conf.Timeout)
	}
	return nil
}

func run(ctx context.Context, conf config) error {
	if err := validateConfig(conf); err != nil {
		return err
	}

	source, err := os.ReadFile(conf.Recipe)
	if err != nil {
		return errors.New("reading recipe failed").
			WithTag("path", conf.Recipe).
			Wrap(err)
	}

	var previewOpts *preview.Options
	if conf.Preview != "" {
		marker, err := preview.ParseMarker(strings.ToLower(conf.Preview))
		if err != nil {
			return err
		}
		previewOpts = &preview.Options{Marker: marker, Cells: conf.PreviewCells}
	}

	var opts []generate.Option
	if conf.Seed != 0 {
		opts = append(opts, generate.WithSeed(int64(conf.Seed)))
	}

	engine := recipe.NewEngine()
	engine.Timeout = conf.Timeout

	logs.WithTag("version", version).
		WithTag("recipe", conf.Recipe).
		WithTag("output", conf.Output).
		Debug("running recipe")

	doc := NewApp(engine, previewOpts, opts...).Run(ctx, string(source))
	if err := writeDocument(conf.Output, doc, conf.LogIndent); err != nil {
		return err
	}

	if conf.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(conf.MetricsFile, prometheus.DefaultGatherer); err != nil {
			return errors.New("writing metrics failed").
				WithTag("path", conf.MetricsFile).
				Wrap(err)
		}
	}

	if len(doc.Errors) > 0 {
		return errors.New("recipe finished with errors").
			WithTag("errors", len(doc.Errors)).
			WithTag("objects", len(doc.Objects))
	}
	logs.WithTag("objects", len(doc.Objects)).Info("recipe done")
	return nil
}
