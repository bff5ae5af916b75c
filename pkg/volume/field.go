// Package volume reads and writes .vf volume-field containers and lays
// their samples out as points.
//
// A container starts with a four byte tag, "VF_F" for scalar payloads and
// any other "VF_" tag (conventionally "VF_V") for vector payloads,
// followed by three little-endian uint16 dimensions and the records. The
// first dimension varies slowest.
package volume

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/chazu/pointarray/pkg/pointset"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Extension is the file suffix ReadFile requires.
const Extension = ".vf"

const (
	magicPrefix = "VF_"
	scalarTag   = 'F'
	vectorTag   = 'V'
	headerSize  = 4 + 3*2
)

// Field is a decoded lattice. Scalars or Vectors holds Dims[0]*Dims[1]*Dims[2]
// samples in file order, depending on Kind.
type Field struct {
	Kind    pointset.FieldKind
	Dims    [3]int
	Scalars []float64
	Vectors []v3.Vec
}

type header struct {
	Magic [4]byte
	Dims  [3]uint16
}

// NewScalar builds a scalar field, checking that values fill dims.
func NewScalar(dims [3]int, values []float64) (*Field, error) {
	f := &Field{Kind: pointset.FieldScalar, Dims: dims, Scalars: values}
	if err := f.check(); err != nil {
		return nil, err
	}
	return f, nil
}

// NewVector builds a vector field, checking that values fill dims.
func NewVector(dims [3]int, values []v3.Vec) (*Field, error) {
	f := &Field{Kind: pointset.FieldVector, Dims: dims, Vectors: values}
	if err := f.check(); err != nil {
		return nil, err
	}
	return f, nil
}

// Len returns the number of samples.
func (f *Field) Len() int {
	return f.Dims[0] * f.Dims[1] * f.Dims[2]
}

func (f *Field) check() error {
	for axis, n := range f.Dims {
		if n < 1 || n > math.MaxUint16 {
			return errors.New("field dimension out of range").
				WithType(pointset.ErrTypeDataError).
				WithTag("axis", axis).
				WithTag("size", n)
		}
	}
	got := len(f.Scalars)
	if f.Kind == pointset.FieldVector {
		got = len(f.Vectors)
	}
	if got != f.Len() {
		return errors.New("field sample count does not match dimensions").
			WithType(pointset.ErrTypeDataError).
			WithTag("dims", f.Dims).
			WithTag("samples", got)
	}
	return nil
}

// ReadFile loads a .vf file in one read and decodes it.
func ReadFile(path string) (*Field, error) {
	if !strings.EqualFold(filepath.Ext(path), Extension) {
		return nil, errors.New("not a volume field file").
			WithType(pointset.ErrTypeFormatError).
			WithTag("path", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("reading volume field failed").
			WithType(pointset.ErrTypeDataError).
			WithTag("path", path).
			Wrap(err)
	}
	return Decode(b)
}

// Decode parses a container. Bytes past the last record are ignored.
func Decode(b []byte) (*Field, error) {
	if len(b) < headerSize {
		return nil, errors.New("volume field header truncated").
			WithType(pointset.ErrTypeFormatError).
			WithTag("size", len(b))
	}

	r := bytes.NewReader(b)
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, errors.New("reading volume field header failed").
			WithType(pointset.ErrTypeFormatError).
			Wrap(err)
	}
	if string(h.Magic[:3]) != magicPrefix {
		return nil, errors.New("bad volume field magic").
			WithType(pointset.ErrTypeFormatError).
			WithTag("magic", string(h.Magic[:]))
	}

	f := &Field{
		Kind: pointset.FieldVector,
		Dims: [3]int{int(h.Dims[0]), int(h.Dims[1]), int(h.Dims[2])},
	}
	if h.Magic[3] == scalarTag {
		f.Kind = pointset.FieldScalar
	}

	n := f.Len()
	if n == 0 {
		return nil, errors.New("volume field is empty").
			WithType(pointset.ErrTypeDataError).
			WithTag("dims", f.Dims)
	}
	width := 1
	if f.Kind == pointset.FieldVector {
		width = 3
	}
	if r.Len() < n*width*4 {
		return nil, errors.New("volume field payload truncated").
			WithType(pointset.ErrTypeDataError).
			WithTag("dims", f.Dims).
			WithTag("want", n*width*4).
			WithTag("got", r.Len())
	}

	records := make([]float32, n*width)
	if err := binary.Read(r, binary.LittleEndian, records); err != nil {
		return nil, errors.New("reading volume field payload failed").
			WithType(pointset.ErrTypeDataError).
			Wrap(err)
	}

	if f.Kind == pointset.FieldScalar {
		f.Scalars = make([]float64, n)
		for i, v := range records {
			f.Scalars[i] = float64(v)
		}
		return f, nil
	}
	f.Vectors = make([]v3.Vec, n)
	for i := range f.Vectors {
		rec := records[i*3 : i*3+3]
		f.Vectors[i] = v3.Vec{X: float64(rec[0]), Y: float64(rec[1]), Z: float64(rec[2])}
	}
	return f, nil
}

// Encode writes f as a container.
func Encode(w io.Writer, f *Field) error {
	if err := f.check(); err != nil {
		return err
	}

	h := header{
		Magic: [4]byte{'V', 'F', '_', vectorTag},
		Dims:  [3]uint16{uint16(f.Dims[0]), uint16(f.Dims[1]), uint16(f.Dims[2])},
	}
	var records []float32
	if f.Kind == pointset.FieldScalar {
		h.Magic[3] = scalarTag
		records = make([]float32, 0, len(f.Scalars))
		for _, v := range f.Scalars {
			records = append(records, float32(v))
		}
	} else {
		records = make([]float32, 0, 3*len(f.Vectors))
		for _, v := range f.Vectors {
			records = append(records, float32(v.X), float32(v.Y), float32(v.Z))
		}
	}

	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return errors.New("writing volume field header failed").Wrap(err)
	}
	if err := binary.Write(w, binary.LittleEndian, records); err != nil {
		return errors.New("writing volume field payload failed").Wrap(err)
	}
	return nil
}

// WriteFile encodes f to path.
func WriteFile(path string, f *Field) error {
	var buf bytes.Buffer
	if err := Encode(&buf, f); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.New("writing volume field file failed").
			WithTag("path", path).
			Wrap(err)
	}
	return nil
}
