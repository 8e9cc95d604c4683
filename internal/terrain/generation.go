// Continent generation. Two modes: the classic per-cell Bernoulli water
// draw, and a simplex-noise elevation map that produces connected seas.
package terrain

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds continent generation parameters.
type GenConfig struct {
	Rows, Cols int
	Mode       string  // "bernoulli" or "simplex"
	WaterProb  float64 // bernoulli: interior water probability
	SeaLevel   float64 // simplex: elevation below this is water
	Scale      float64 // simplex: noise feature size in cells
	GrowthRate int
	MaxDensity int
	Seed       int64
}

// Generate creates a grid with a water border, interior water per the chosen
// mode, and uniformly random initial vegetation on every ground cell.
// Occupancy layers start at zero.
func Generate(cfg GenConfig, rng *rand.Rand) *Grid {
	g := &Grid{
		Rows:       cfg.Rows,
		Cols:       cfg.Cols,
		vegetation: make([][]int, cfg.Rows),
		groundSet:  make(map[Cell]struct{}),
		growthRate: cfg.GrowthRate,
		maxDensity: cfg.MaxDensity,
	}
	for l := range g.counts {
		g.counts[l] = make([][]int, cfg.Rows)
	}
	for i := 0; i < cfg.Rows; i++ {
		g.vegetation[i] = make([]int, cfg.Cols)
		for l := range g.counts {
			g.counts[l][i] = make([]int, cfg.Cols)
		}
	}

	isWater := waterFunc(cfg, rng)
	for i := 0; i < cfg.Rows; i++ {
		for j := 0; j < cfg.Cols; j++ {
			border := i == 0 || i == cfg.Rows-1 || j == 0 || j == cfg.Cols-1
			if border || isWater(i, j) {
				g.vegetation[i][j] = Water
				continue
			}
			c := Cell{Row: i, Col: j}
			g.vegetation[i][j] = rng.Intn(cfg.MaxDensity + 1)
			g.ground = append(g.ground, c)
			g.groundSet[c] = struct{}{}
		}
	}
	return g
}

// waterFunc returns the interior water predicate for the configured mode.
func waterFunc(cfg GenConfig, rng *rand.Rand) func(i, j int) bool {
	if cfg.Mode == "simplex" {
		noise := opensimplex.NewNormalized(cfg.Seed)
		scale := cfg.Scale
		if scale <= 0 {
			scale = 8
		}
		return func(i, j int) bool {
			elev := noise.Eval2(float64(i)/scale, float64(j)/scale)
			return elev < cfg.SeaLevel
		}
	}
	return func(i, j int) bool {
		return rng.Float64() <= cfg.WaterProb
	}
}
