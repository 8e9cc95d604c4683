package engine

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/talgya/planisuss/internal/config"
	"github.com/talgya/planisuss/internal/species"
	"github.com/talgya/planisuss/internal/telemetry"
	"github.com/talgya/planisuss/internal/terrain"
)

// vegetobHistogramBins is the bin count of the daily density histogram.
const vegetobHistogramBins = 30

// maxEvents bounds the in-memory event buffer.
const maxEvents = 1000

// Event is a notable occurrence in the world.
type Event struct {
	Day         int    `json:"day"`
	Category    string `json:"category"` // "fight", "hunt", "overwhelm"
	Description string `json:"description"`
}

// World holds the complete simulation state: the grid, the active herds
// and prides keyed by cell, and the day counter. Between days each cell
// hosts at most one herd and one pride; only during the movement phase
// may a cell transiently hold several same-species groups.
type World struct {
	Grid   *terrain.Grid
	Herds  map[terrain.Cell]*Group
	Prides map[terrain.Cell]*Group
	Day    int
	Events []Event

	// Transient multi-group state between the movement and unify phases.
	pendingHerds  map[terrain.Cell][]*Group
	pendingPrides map[terrain.Cell][]*Group

	params species.Table
	series *telemetry.Series
	rng    *rand.Rand
}

// New generates the continent, seeds the founding herds and prides on
// distinct ground cells, and returns the world at day 1.
func New(cfg *config.Config, seed int64) *World {
	rng := rand.New(rand.NewSource(seed))

	grid := terrain.Generate(terrain.GenConfig{
		Rows:       cfg.World.Rows,
		Cols:       cfg.World.Cols,
		Mode:       cfg.World.Generator,
		WaterProb:  cfg.World.WaterProb,
		SeaLevel:   cfg.World.SeaLevel,
		Scale:      cfg.World.SimplexScale,
		GrowthRate: cfg.Vegetob.GrowthRate,
		MaxDensity: cfg.Vegetob.MaxDensity,
		Seed:       seed,
	}, rng)

	w := &World{
		Grid:   grid,
		Herds:  make(map[terrain.Cell]*Group),
		Prides: make(map[terrain.Cell]*Group),
		Day:    1,
		params: species.NewTable(paramsFrom(cfg.Erbast), paramsFrom(cfg.Carviz)),
		series: &telemetry.Series{},
		rng:    rng,
	}

	w.seedGroups(species.Erbast, cfg.Seeding.HerdsMin, cfg.Seeding.HerdsMax,
		cfg.Seeding.ErbastMin, cfg.Seeding.ErbastMax, w.Herds)
	w.seedGroups(species.Carviz, cfg.Seeding.PridesMin, cfg.Seeding.PridesMax,
		cfg.Seeding.CarvizMin, cfg.Seeding.CarvizMax, w.Prides)
	return w
}

func paramsFrom(c config.SpeciesConfig) species.Params {
	return species.Params{
		MaxEnergy:     c.MaxEnergy,
		MaxLifetime:   c.MaxLifetime,
		MinLifetime:   c.MinLifetime,
		AgingCost:     c.AgingCost,
		MaxGroup:      c.MaxGroup,
		Neighborhood:  c.Neighborhood,
		MinMovement:   c.MinMovement,
		MaxMovement:   c.MaxMovement,
		HungerDivisor: c.HungerDivisor,
		EatBonus:      c.EatBonus,
		FightBonus:    c.FightBonus,
		JoinThreshold: c.JoinThreshold,
	}
}

// seedGroups places a uniform random number of founding groups, each on
// its own ground cell. A small continent caps the group count at the
// number of available cells.
func (w *World) seedGroups(sp species.Species, groupsLo, groupsHi, animalsLo, animalsHi int, into map[terrain.Cell]*Group) {
	ground := w.Grid.GroundCells()
	n := groupsLo + w.rng.Intn(groupsHi-groupsLo+1)
	if n > len(ground) {
		n = len(ground)
	}

	p := w.params.For(sp)
	perm := w.rng.Perm(len(ground))
	for i := 0; i < n; i++ {
		cell := ground[perm[i]]
		g := newSeedGroup(sp, p, animalsLo, animalsHi, w.rng)
		g.UpdateStats()
		into[cell] = g
		w.Grid.AddCount(sp.Layer(), cell, g.Len())
	}
}

// AdvanceDay runs the nine daily phases in their fixed order and returns
// the aggregates of the completed day.
func (w *World) AdvanceDay() telemetry.DayStats {
	w.Grid.Grow()
	w.overwhelm()
	w.movement()
	w.unify()
	w.grazing()
	w.hunting()
	w.spawning()
	w.cleanup()
	stats := w.collectStats()
	w.series.Append(stats)
	w.Day++
	return stats
}

// overwhelm terminates every group whose cell is surrounded by eight
// ground neighbors at maximum vegetation density. Any adjacent water cell
// keeps the neighbor sum short of the threshold, so coastal groups are
// never overwhelmed.
func (w *World) overwhelm() {
	full := 8 * w.Grid.MaxDensity()
	for _, m := range []map[terrain.Cell]*Group{w.Herds, w.Prides} {
		for _, cell := range sortedCells(m) {
			sum := 0
			for _, n := range w.Grid.Neighbors(cell, 1) {
				sum += w.Grid.Vegetation(n)
			}
			if sum != full {
				continue
			}
			g := m[cell]
			w.Grid.SetCount(g.Species.Layer(), cell, 0)
			delete(m, cell)
			w.recordEvent("overwhelm", fmt.Sprintf(
				"%s of %d %s overwhelmed by vegetob at %s",
				g.Species.GroupName(), g.Len(), g.Species, cell))
		}
	}
}

// movement lets every group decide to relocate, leaving the transient
// possibly-multi-group-per-cell state for unify. All decisions use the
// grid as observed at the start of the phase; only agent energies change.
func (w *World) movement() {
	w.pendingHerds = make(map[terrain.Cell][]*Group)
	for _, cell := range sortedCells(w.Herds) {
		for _, pl := range w.planMovement(w.Herds[cell], cell, w.params.For(species.Erbast)) {
			w.pendingHerds[pl.cell] = append(w.pendingHerds[pl.cell], pl.group)
		}
	}
	w.pendingPrides = make(map[terrain.Cell][]*Group)
	for _, cell := range sortedCells(w.Prides) {
		for _, pl := range w.planMovement(w.Prides[cell], cell, w.params.For(species.Carviz)) {
			w.pendingPrides[pl.cell] = append(w.pendingPrides[pl.cell], pl.group)
		}
	}
}

// unify collapses each cell back to at most one herd and one pride, then
// recounts grid occupancy from the surviving populations.
func (w *World) unify() {
	w.Herds = make(map[terrain.Cell]*Group, len(w.pendingHerds))
	for _, cell := range sortedCells(w.pendingHerds) {
		w.Herds[cell] = unifyHerds(w.pendingHerds[cell], w.params.For(species.Erbast))
	}
	w.pendingHerds = nil

	w.Prides = make(map[terrain.Cell]*Group, len(w.pendingPrides))
	for _, cell := range sortedCells(w.pendingPrides) {
		w.Prides[cell] = w.resolvePrides(w.pendingPrides[cell], cell, w.params.For(species.Carviz))
	}
	w.pendingPrides = nil

	w.recountOccupancy()
}

func (w *World) grazing() {
	p := w.params.For(species.Erbast)
	for _, cell := range sortedCells(w.Herds) {
		w.graze(w.Herds[cell], cell, p)
	}
}

func (w *World) hunting() {
	p := w.params.For(species.Carviz)
	for _, cell := range sortedCells(w.Prides) {
		w.hunt(w.Prides[cell], cell, w.Herds[cell], p)
	}
}

func (w *World) spawning() {
	for _, cell := range sortedCells(w.Herds) {
		w.Herds[cell].Spawn(w.Grid, cell, w.params.For(species.Erbast), w.rng)
	}
	for _, cell := range sortedCells(w.Prides) {
		w.Prides[cell].Spawn(w.Grid, cell, w.params.For(species.Carviz), w.rng)
	}
}

// cleanup drops every group whose population reached zero today.
func (w *World) cleanup() {
	for _, m := range []map[terrain.Cell]*Group{w.Herds, w.Prides} {
		for cell, g := range m {
			if g.Len() == 0 {
				delete(m, cell)
			}
		}
	}
}

// recountOccupancy rebuilds both occupancy layers from the resident
// group populations.
func (w *World) recountOccupancy() {
	w.Grid.ResetCounts(terrain.LayerErbast)
	for cell, g := range w.Herds {
		w.Grid.SetCount(terrain.LayerErbast, cell, g.Len())
	}
	w.Grid.ResetCounts(terrain.LayerCarviz)
	for cell, g := range w.Prides {
		w.Grid.SetCount(terrain.LayerCarviz, cell, g.Len())
	}
}

// collectStats refreshes every group's cached aggregates, recounts the
// occupancy layers, and assembles the world-level aggregates for the day
// just completed.
func (w *World) collectStats() telemetry.DayStats {
	for _, g := range w.Herds {
		g.UpdateStats()
	}
	for _, g := range w.Prides {
		g.UpdateStats()
	}
	w.recountOccupancy()

	stats := telemetry.DayStats{Day: w.Day}
	stats.ErbastPopulation, stats.ErbastEnergy,
		stats.ErbastMeanLifetime, stats.ErbastMeanAge, stats.ErbastMeanAttitude = speciesAggregates(w.Herds)
	stats.CarvizPopulation, stats.CarvizEnergy,
		stats.CarvizMeanLifetime, stats.CarvizMeanAge, stats.CarvizMeanAttitude = speciesAggregates(w.Prides)

	ground := w.Grid.GroundCells()
	densities := make([]int, len(ground))
	xs := make([]float64, len(ground))
	for i, c := range ground {
		densities[i] = w.Grid.Vegetation(c)
		xs[i] = float64(densities[i])
	}
	stats.VegetobMean = telemetry.Mean(xs)
	stats.VegetobHistogram = telemetry.VegetobHistogram(densities, vegetobHistogramBins, w.Grid.MaxDensity())
	return stats
}

func speciesAggregates(groups map[terrain.Cell]*Group) (pop, energy int, meanLifetime, meanAge, meanAttitude float64) {
	var lifetime, age int
	var attitude float64
	for _, g := range groups {
		pop += g.Len()
		energy += g.TotalEnergy
		lifetime += g.TotalLifetime
		age += g.TotalAge
		attitude += g.TotalAttitude
	}
	if pop == 0 {
		return 0, 0, 0, 0, 0
	}
	n := float64(pop)
	return pop, energy, float64(lifetime) / n, float64(age) / n, attitude / n
}

// SnapshotGrid returns a deep copy of the three grid layers.
func (w *World) SnapshotGrid() terrain.Snapshot {
	return w.Grid.Snapshot()
}

// Series returns the recorded day-by-day aggregates in order.
func (w *World) Series() []telemetry.DayStats {
	return w.series.All()
}

// Latest returns the most recently completed day's aggregates.
func (w *World) Latest() (telemetry.DayStats, bool) {
	return w.series.Latest()
}

// GroupDetail summarizes one resident group for cell inspection.
type GroupDetail struct {
	Population   int     `json:"population"`
	TotalEnergy  int     `json:"total_energy"`
	MeanLifetime float64 `json:"mean_lifetime"`
	MeanAge      float64 `json:"mean_age"`
	MeanAttitude float64 `json:"mean_attitude"`
}

// CellDetail describes one cell: its vegetation (or the water sentinel)
// and the resident herd and pride, if any.
type CellDetail struct {
	Cell       terrain.Cell `json:"cell"`
	Water      bool         `json:"water"`
	Vegetation int          `json:"vegetation"`
	Herd       *GroupDetail `json:"herd,omitempty"`
	Pride      *GroupDetail `json:"pride,omitempty"`
}

// CellDetail inspects a single cell. Water cells report no vegetation and
// no residents rather than failing.
func (w *World) CellDetail(c terrain.Cell) CellDetail {
	d := CellDetail{Cell: c, Vegetation: w.Grid.Vegetation(c)}
	if w.Grid.IsWater(c) {
		d.Water = true
		return d
	}
	d.Herd = groupDetail(w.Herds[c])
	d.Pride = groupDetail(w.Prides[c])
	return d
}

func groupDetail(g *Group) *GroupDetail {
	if g == nil || g.Len() == 0 {
		return nil
	}
	n := float64(g.Len())
	return &GroupDetail{
		Population:   g.Len(),
		TotalEnergy:  g.TotalEnergy,
		MeanLifetime: float64(g.TotalLifetime) / n,
		MeanAge:      float64(g.TotalAge) / n,
		MeanAttitude: g.TotalAttitude / n,
	}
}

func (w *World) recordEvent(category, description string) {
	w.Events = append(w.Events, Event{Day: w.Day, Category: category, Description: description})
	if len(w.Events) > maxEvents {
		w.Events = w.Events[len(w.Events)-maxEvents:]
	}
}

// sortedCells returns the map's keys in row-major order so phase
// iteration, and with it PRNG consumption, is deterministic for a seed.
func sortedCells[V any](m map[terrain.Cell]V) []terrain.Cell {
	cells := make([]terrain.Cell, 0, len(m))
	for c := range m {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
	return cells
}
