package scene

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ironsheep/water-tools-mcp/internal/raster"
)

// Reflectance ranges for the two surface classes. Water is dark across all
// three bands, especially NIR and SWIR, which is what the normalized
// difference indices exploit.
var (
	landGreen  = [2]float64{0.1, 0.3}
	landNIR    = [2]float64{0.4, 0.6}
	landSWIR   = [2]float64{0.3, 0.5}
	waterGreen = [2]float64{0.05, 0.15}
	waterNIR   = [2]float64{0.01, 0.05}
	waterSWIR  = [2]float64{0.01, 0.03}
)

// Config describes a synthetic lake scene.
type Config struct {
	// Width and Height are the scene dimensions in pixels.
	Width  int
	Height int

	// LakeCenterRow and LakeCenterCol place the lake. Zero or negative
	// values mean the image center.
	LakeCenterRow int
	LakeCenterCol int

	// LakeRadius is the lake radius in pixels.
	LakeRadius int

	// NoiseSigma is the standard deviation of the additive gaussian
	// noise; 0 means the default of 0.02.
	NoiseSigma float64

	// Seed initializes the random source. 0 draws a time-based seed.
	Seed uint64
}

// Bands holds the three reflectance bands of a scene plus its metadata.
type Bands struct {
	Green raster.Band `json:"-"`
	NIR   raster.Band `json:"-"`
	SWIR  raster.Band `json:"-"`

	Width         int  `json:"width"`
	Height        int  `json:"height"`
	LakeCenterRow int  `json:"lake_center_row"`
	LakeCenterCol int  `json:"lake_center_col"`
	LakeRadius    int  `json:"lake_radius"`
	Synthetic     bool `json:"synthetic"`
}

// Synthetic generates a lake scene: a circular water body on a land
// background, with gaussian noise added to every band and values clipped to
// [0, 1]. Dimensions and radius must be positive or the call fails with
// raster.ErrInvalidParameter.
func Synthetic(cfg Config) (*Bands, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: scene dimensions must be positive, got %dx%d",
			raster.ErrInvalidParameter, cfg.Width, cfg.Height)
	}
	if cfg.LakeRadius <= 0 {
		return nil, fmt.Errorf("%w: lake radius must be positive, got %d",
			raster.ErrInvalidParameter, cfg.LakeRadius)
	}

	centerRow, centerCol := cfg.LakeCenterRow, cfg.LakeCenterCol
	if centerRow <= 0 {
		centerRow = cfg.Height / 2
	}
	if centerCol <= 0 {
		centerCol = cfg.Width / 2
	}
	sigma := cfg.NoiseSigma
	if sigma == 0 {
		sigma = 0.02
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	src := rand.NewSource(seed)

	gen := bandGenerator{
		noise:     distuv.Normal{Mu: 0, Sigma: sigma, Src: src},
		centerRow: centerRow,
		centerCol: centerCol,
		radius:    float64(cfg.LakeRadius),
		rows:      cfg.Height,
		cols:      cfg.Width,
		src:       src,
	}

	return &Bands{
		Green:         gen.band(landGreen, waterGreen),
		NIR:           gen.band(landNIR, waterNIR),
		SWIR:          gen.band(landSWIR, waterSWIR),
		Width:         cfg.Width,
		Height:        cfg.Height,
		LakeCenterRow: centerRow,
		LakeCenterCol: centerCol,
		LakeRadius:    cfg.LakeRadius,
		Synthetic:     true,
	}, nil
}

type bandGenerator struct {
	noise                distuv.Normal
	centerRow, centerCol int
	radius               float64
	rows, cols           int
	src                  rand.Source
}

// band fills a grid with uniform draws from the land range, overwrites the
// lake disk with draws from the water range, then adds noise and clips.
func (g *bandGenerator) band(land, water [2]float64) raster.Band {
	landDist := distuv.Uniform{Min: land[0], Max: land[1], Src: g.src}
	waterDist := distuv.Uniform{Min: water[0], Max: water[1], Src: g.src}

	b := make(raster.Band, g.rows)
	for r := 0; r < g.rows; r++ {
		b[r] = make([]float64, g.cols)
		for c := 0; c < g.cols; c++ {
			dr := float64(r - g.centerRow)
			dc := float64(c - g.centerCol)
			v := landDist.Rand()
			if math.Sqrt(dr*dr+dc*dc) <= g.radius {
				v = waterDist.Rand()
			}
			v += g.noise.Rand()
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			b[r][c] = v
		}
	}
	return b
}
