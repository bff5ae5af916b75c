// Package tabular imports points from comma-delimited numeric text.
//
// Cleansing is permissive: quotes, header rows and stray characters are
// stripped, and rows that still do not parse as finite numbers are
// dropped. Only the first three columns are used, as X, Y and Z.
package tabular

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/chazu/pointarray/pkg/pointset"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"gonum.org/v1/gonum/mat"
)

const (
	// MinRows is the smallest table that can be imported.
	MinRows = 2
	// MaxColumns is the number of columns read per row.
	MaxColumns = 3
)

// Extensions lists the file suffixes ReadFile accepts.
var Extensions = []string{".csv", ".txt"}

// Config selects one source and the attribute options. Exactly one of
// Text, Path or Table must be set.
type Config struct {
	Text       string           `json:"text,omitempty"`
	Path       string           `json:"path,omitempty"`
	Table      mat.Matrix       `json:"-"`
	SkipHeader bool             `json:"skip_header"`
	Options    pointset.Options `json:"options"`
}

// Validate checks that exactly one source is given and the scale range is
// usable.
func (c Config) Validate() error {
	sources := 0
	if c.Text != "" {
		sources++
	}
	if c.Path != "" {
		sources++
	}
	if c.Table != nil {
		sources++
	}
	if sources != 1 {
		return errors.New("exactly one of text, path or table is required").
			WithType(pointset.ErrTypeInvalidConfiguration).
			WithTag("sources", sources)
	}
	if c.Path != "" && !hasExtension(c.Path) {
		return errors.New("unsupported table file extension").
			WithType(pointset.ErrTypeInvalidConfiguration).
			WithTag("path", c.Path)
	}
	return c.Options.Scale.Validate("scale")
}

// Import reads the configured source and emits one point per usable row.
func Import(cfg Config, rng *rand.Rand) (*pointset.Set, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		table *mat.Dense
		err   error
	)
	switch {
	case cfg.Path != "":
		table, err = ReadFile(cfg.Path, cfg.SkipHeader)
	case cfg.Text != "":
		table, err = Parse(cfg.Text, cfg.SkipHeader)
	default:
		table, err = FromMatrix(cfg.Table)
	}
	if err != nil {
		return nil, err
	}
	return Points(table, cfg.Options, rng), nil
}

// ReadFile loads and parses a table file in one read.
func ReadFile(path string, skipHeader bool) (*mat.Dense, error) {
	if !hasExtension(path) {
		return nil, errors.New("unsupported table file extension").
			WithType(pointset.ErrTypeInvalidConfiguration).
			WithTag("path", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("reading table file failed").
			WithType(pointset.ErrTypeDataError).
			WithTag("path", path).
			Wrap(err)
	}
	return Parse(string(b), skipHeader)
}

// Parse cleanses delimited text into a table of at most MaxColumns
// columns.
func Parse(text string, skipHeader bool) (*mat.Dense, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(stripQuotes(line))
		if line != "" {
			lines = append(lines, line)
		}
	}
	if skipHeader && len(lines) > 0 {
		lines = lines[1:]
	}

	var rows [][]string
	width := 0
	for _, line := range lines {
		if containsLetter(line) {
			continue
		}
		fields := strings.Split(line, ",")
		for i := range fields {
			fields[i] = cleanNumber(fields[i])
		}
		rows = append(rows, fields)
		width = max(width, len(fields))
	}

	cols := nonEmptyColumns(rows, width)
	if len(cols) > MaxColumns {
		cols = cols[:MaxColumns]
	}

	var data []float64
	n := 0
	for _, fields := range rows {
		values, ok := parseRow(fields, cols)
		if !ok {
			continue
		}
		data = append(data, values...)
		n++
	}
	if err := checkShape(n, len(cols)); err != nil {
		return nil, err
	}
	return mat.NewDense(n, len(cols), data), nil
}

// FromMatrix copies a pre-parsed table, keeping at most MaxColumns columns
// and dropping rows that hold NaN or Inf.
func FromMatrix(m mat.Matrix) (*mat.Dense, error) {
	if m == nil {
		return nil, errors.New("table is nil").
			WithType(pointset.ErrTypeDataError)
	}
	r, c := m.Dims()
	c = min(c, MaxColumns)

	var data []float64
	n := 0
	for i := 0; i < r; i++ {
		row := make([]float64, c)
		ok := true
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				ok = false
				break
			}
			row[j] = v
		}
		if ok {
			data = append(data, row...)
			n++
		}
	}
	if err := checkShape(n, c); err != nil {
		return nil, err
	}
	return mat.NewDense(n, c, data), nil
}

// Points emits one point per table row. Missing Y or Z columns read as 0.
func Points(table mat.Matrix, opts pointset.Options, rng *rand.Rand) *pointset.Set {
	r, c := table.Dims()
	at := func(i, j int) float64 {
		if j >= c {
			return 0
		}
		return table.At(i, j)
	}

	raw := make([]pointset.Point, r)
	for i := range raw {
		raw[i].Position = v3.Vec{X: at(i, 0), Y: at(i, 1), Z: at(i, 2)}
	}
	return pointset.Emit(raw, opts, rng)
}

func checkShape(rows, cols int) error {
	if rows < MinRows || cols < 1 {
		return errors.New("not enough numeric data").
			WithType(pointset.ErrTypeDataError).
			WithTag("rows", rows).
			WithTag("columns", cols)
	}
	return nil
}

// parseRow reads the given columns of a row. Columns past the end of a
// short row read as 0; empty or unparsable fields reject the row.
func parseRow(fields []string, cols []int) ([]float64, bool) {
	values := make([]float64, len(cols))
	for k, col := range cols {
		if col >= len(fields) {
			continue
		}
		if fields[col] == "" {
			return nil, false
		}
		v, err := strconv.ParseFloat(fields[col], 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
		values[k] = v
	}
	return values, true
}

// nonEmptyColumns returns the indices of columns holding a value in at
// least one row.
func nonEmptyColumns(rows [][]string, width int) []int {
	var cols []int
	for j := 0; j < width; j++ {
		for _, fields := range rows {
			if j < len(fields) && fields[j] != "" {
				cols = append(cols, j)
				break
			}
		}
	}
	return cols
}

// cleanNumber keeps only digits, '.' and '-'.
func cleanNumber(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
}

func stripQuotes(s string) string {
	return strings.NewReplacer(`"`, "", `'`, "").Replace(s)
}

func containsLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

func hasExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
