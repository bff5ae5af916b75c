package generate

import (
	"github.com/chazu/pointarray/pkg/golden"
	"github.com/chazu/pointarray/pkg/grid"
	"github.com/chazu/pointarray/pkg/poisson"
	"github.com/chazu/pointarray/pkg/tabular"
	"github.com/chazu/pointarray/pkg/volume"
)

// Kind identifies a generator.
type Kind int

const (
	KindGrid Kind = iota
	KindGolden
	KindPoisson
	KindTabular
	KindVolume
)

func (k Kind) String() string {
	switch k {
	case KindGrid:
		return "grid"
	case KindGolden:
		return "golden"
	case KindPoisson:
		return "poisson"
	case KindTabular:
		return "tabular"
	case KindVolume:
		return "volume"
	default:
		return "unknown"
	}
}

// Config is one generator request. The variants below are the only
// implementations.
type Config interface {
	Kind() Kind
	Placement() Target
	config() // marker method restricting implementations to this package
}

// GridConfig requests a lattice.
type GridConfig struct {
	Grid   grid.Config `json:"grid"`
	Target Target      `json:"target"`
}

func (GridConfig) Kind() Kind          { return KindGrid }
func (c GridConfig) Placement() Target { return c.Target }
func (GridConfig) config()             {}

// GoldenConfig requests a golden-angle spiral.
type GoldenConfig struct {
	Golden golden.Config `json:"golden"`
	Target Target        `json:"target"`
}

func (GoldenConfig) Kind() Kind          { return KindGolden }
func (c GoldenConfig) Placement() Target { return c.Target }
func (GoldenConfig) config()             {}

// PoissonConfig requests a poisson-disc packing.
type PoissonConfig struct {
	Poisson poisson.Config `json:"poisson"`
	Target  Target         `json:"target"`
}

func (PoissonConfig) Kind() Kind          { return KindPoisson }
func (c PoissonConfig) Placement() Target { return c.Target }
func (PoissonConfig) config()             {}

// TabularConfig requests a tabular import.
type TabularConfig struct {
	Tabular tabular.Config `json:"tabular"`
	Target  Target         `json:"target"`
}

func (TabularConfig) Kind() Kind          { return KindTabular }
func (c TabularConfig) Placement() Target { return c.Target }
func (TabularConfig) config()             {}

// VolumeConfig requests a volume-field import.
type VolumeConfig struct {
	Volume volume.Config `json:"volume"`
	Target Target        `json:"target"`
}

func (VolumeConfig) Kind() Kind          { return KindVolume }
func (c VolumeConfig) Placement() Target { return c.Target }
func (VolumeConfig) config()             {}
