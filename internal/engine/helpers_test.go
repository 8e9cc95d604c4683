package engine

import (
	"math/rand"

	"github.com/talgya/planisuss/internal/species"
	"github.com/talgya/planisuss/internal/telemetry"
	"github.com/talgya/planisuss/internal/terrain"
)

// testErbastParams mirrors the default herbivore constants.
func testErbastParams() species.Params {
	return species.Params{
		MaxEnergy:     100,
		MaxLifetime:   1000,
		MinLifetime:   10,
		AgingCost:     1,
		MaxGroup:      300,
		Neighborhood:  1,
		MinMovement:   3,
		MaxMovement:   300,
		HungerDivisor: 1.1,
	}
}

// testCarvizParams mirrors the default carnivore constants.
func testCarvizParams() species.Params {
	return species.Params{
		MaxEnergy:     100,
		MaxLifetime:   1000,
		MinLifetime:   10,
		AgingCost:     1,
		MaxGroup:      100,
		Neighborhood:  1,
		MinMovement:   3,
		MaxMovement:   300,
		HungerDivisor: 1.03,
		EatBonus:      0.05,
		FightBonus:    0.1,
		JoinThreshold: 0.9,
	}
}

// newTestWorld builds an empty all-ground world (water border only) with
// a seeded PRNG and no groups.
func newTestWorld(seed int64, rows, cols int) *World {
	rng := rand.New(rand.NewSource(seed))
	grid := terrain.Generate(terrain.GenConfig{
		Rows:       rows,
		Cols:       cols,
		Mode:       "bernoulli",
		WaterProb:  -1, // no interior water
		GrowthRate: 1,
		MaxDensity: 100,
		Seed:       seed,
	}, rng)
	return &World{
		Grid:   grid,
		Herds:  make(map[terrain.Cell]*Group),
		Prides: make(map[terrain.Cell]*Group),
		Day:    1,
		params: species.NewTable(testErbastParams(), testCarvizParams()),
		series: &telemetry.Series{},
		rng:    rng,
	}
}

// setAllVegetation overwrites every ground cell's density.
func setAllVegetation(g *terrain.Grid, v int) {
	for _, c := range g.GroundCells() {
		g.SetVegetation(c, v)
	}
}

// uniformAgents creates n agents sharing the given stats.
func uniformAgents(n, energy, lifetime int, attitude float64) []*species.Agent {
	out := make([]*species.Agent, n)
	for i := range out {
		out[i] = species.New(energy, lifetime, attitude)
	}
	return out
}

// agentsWithEnergies creates one agent per energy value, all with the
// given lifetime and attitude.
func agentsWithEnergies(energies []int, lifetime int, attitude float64) []*species.Agent {
	out := make([]*species.Agent, len(energies))
	for i, e := range energies {
		out[i] = species.New(e, lifetime, attitude)
	}
	return out
}

// placeGroup registers a group of the given members at a cell and keeps
// the occupancy layer consistent.
func (w *World) placeGroup(sp species.Species, cell terrain.Cell, members []*species.Agent) *Group {
	g := NewGroup(sp)
	g.Members = members
	g.UpdateStats()
	if sp == species.Erbast {
		w.Herds[cell] = g
	} else {
		w.Prides[cell] = g
	}
	w.Grid.SetCount(sp.Layer(), cell, g.Len())
	return g
}
