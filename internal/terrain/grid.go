// Package terrain provides the three-layer world grid: Vegetob density,
// Erbast occupancy and Carviz occupancy per cell.
package terrain

import "fmt"

// Water is the vegetation-layer sentinel for a water cell.
const Water = -100

// Cell is a grid coordinate (row, column).
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Layer selects one of the occupancy count layers.
type Layer int

const (
	LayerErbast Layer = iota
	LayerCarviz
)

// Grid holds the fixed continent layout plus the three mutable layers.
// The set of ground cells never changes after generation; the full border
// is always water.
type Grid struct {
	Rows, Cols int

	vegetation [][]int
	counts     [2][][]int

	ground    []Cell
	groundSet map[Cell]struct{}

	growthRate int
	maxDensity int
}

// Snapshot is a deep copy of the three grid layers.
type Snapshot struct {
	Rows       int     `json:"rows"`
	Cols       int     `json:"cols"`
	Vegetation [][]int `json:"vegetation"`
	Erbast     [][]int `json:"erbast"`
	Carviz     [][]int `json:"carviz"`
}

// IsWater reports whether the cell is water. Out-of-bounds cells count as
// water so callers never index past the border.
func (g *Grid) IsWater(c Cell) bool {
	if c.Row < 0 || c.Row >= g.Rows || c.Col < 0 || c.Col >= g.Cols {
		return true
	}
	return g.vegetation[c.Row][c.Col] == Water
}

// IsGround reports whether the cell carries vegetation.
func (g *Grid) IsGround(c Cell) bool {
	_, ok := g.groundSet[c]
	return ok
}

// Vegetation returns the cell's Vegetob density, or the Water sentinel.
func (g *Grid) Vegetation(c Cell) int {
	if c.Row < 0 || c.Row >= g.Rows || c.Col < 0 || c.Col >= g.Cols {
		return Water
	}
	return g.vegetation[c.Row][c.Col]
}

// SetVegetation overwrites a ground cell's density, clamped to
// [0, MaxDensity]. Water cells are immutable. Used for scenario setup and
// interventions; the daily cycle only mutates density through Grow and
// Consume.
func (g *Grid) SetVegetation(c Cell, v int) {
	if !g.IsGround(c) {
		return
	}
	if v < 0 {
		v = 0
	} else if v > g.maxDensity {
		v = g.maxDensity
	}
	g.vegetation[c.Row][c.Col] = v
}

// MaxDensity returns the vegetation ceiling per cell.
func (g *Grid) MaxDensity() int {
	return g.maxDensity
}

// GroundCells returns the fixed set of ground cells in row-major order.
// The returned slice must not be mutated.
func (g *Grid) GroundCells() []Cell {
	return g.ground
}

// Grow increases every ground cell's vegetation by the growth rate,
// capped at the density ceiling.
func (g *Grid) Grow() {
	for _, c := range g.ground {
		v := g.vegetation[c.Row][c.Col] + g.growthRate
		if v > g.maxDensity {
			v = g.maxDensity
		}
		g.vegetation[c.Row][c.Col] = v
	}
}

// Consume removes up to amount vegetation from a ground cell, never going
// below zero, and returns the amount actually consumed. Water cells yield
// nothing.
func (g *Grid) Consume(c Cell, amount int) int {
	if !g.IsGround(c) || amount <= 0 {
		return 0
	}
	v := g.vegetation[c.Row][c.Col]
	if amount > v {
		amount = v
	}
	g.vegetation[c.Row][c.Col] = v - amount
	return amount
}

// Neighbors returns the ground cells within Chebyshev distance radius of c,
// excluding c itself and all water. Order is row-major, so ranking ties
// resolve deterministically.
func (g *Grid) Neighbors(c Cell, radius int) []Cell {
	var out []Cell
	for i := c.Row - radius; i <= c.Row+radius; i++ {
		for j := c.Col - radius; j <= c.Col+radius; j++ {
			n := Cell{Row: i, Col: j}
			if n == c {
				continue
			}
			if g.IsGround(n) {
				out = append(out, n)
			}
		}
	}
	return out
}

// Count returns the occupancy count of the given layer at c.
func (g *Grid) Count(l Layer, c Cell) int {
	if c.Row < 0 || c.Row >= g.Rows || c.Col < 0 || c.Col >= g.Cols {
		return 0
	}
	return g.counts[l][c.Row][c.Col]
}

// AddCount adjusts the occupancy count of the given layer at c by delta.
func (g *Grid) AddCount(l Layer, c Cell, delta int) {
	g.counts[l][c.Row][c.Col] += delta
}

// SetCount sets the occupancy count of the given layer at c.
func (g *Grid) SetCount(l Layer, c Cell, v int) {
	g.counts[l][c.Row][c.Col] = v
}

// ResetCounts zeroes an entire occupancy layer. Used when recounting from
// the surviving group populations at the end of a day.
func (g *Grid) ResetCounts(l Layer) {
	for i := range g.counts[l] {
		for j := range g.counts[l][i] {
			g.counts[l][i][j] = 0
		}
	}
}

// TotalCount sums an occupancy layer over the whole grid.
func (g *Grid) TotalCount(l Layer) int {
	total := 0
	for _, row := range g.counts[l] {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// Snapshot returns a deep copy of all three layers.
func (g *Grid) Snapshot() Snapshot {
	return Snapshot{
		Rows:       g.Rows,
		Cols:       g.Cols,
		Vegetation: copyLayer(g.vegetation),
		Erbast:     copyLayer(g.counts[LayerErbast]),
		Carviz:     copyLayer(g.counts[LayerCarviz]),
	}
}

func copyLayer(src [][]int) [][]int {
	out := make([][]int, len(src))
	for i, row := range src {
		out[i] = make([]int, len(row))
		copy(out[i], row)
	}
	return out
}

func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d, ground=%d)", g.Rows, g.Cols, len(g.ground))
}
