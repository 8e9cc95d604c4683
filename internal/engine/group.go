// Package engine implements the Planisuss simulation: herds and prides
// living on the terrain grid, advanced one day at a time through a fixed
// phase sequence.
package engine

import (
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/talgya/planisuss/internal/species"
	"github.com/talgya/planisuss/internal/terrain"
)

// Group is a herd (Erbast) or pride (Carviz): all animals of one species
// in one cell. A group owns its members exclusively; splits and merges
// move agents between groups.
type Group struct {
	ID      uuid.UUID
	Species species.Species
	Members []*species.Agent

	// Aggregate statistics, recomputed once per day by UpdateStats.
	TotalEnergy   int
	TotalLifetime int
	TotalAge      int
	TotalAttitude float64
}

// NewGroup creates an empty group of the given species.
func NewGroup(sp species.Species) *Group {
	return &Group{ID: uuid.New(), Species: sp}
}

// newSeedGroup creates a founding group with a uniformly random population
// size in [lo, hi] and random member stats.
func newSeedGroup(sp species.Species, p species.Params, lo, hi int, rng *rand.Rand) *Group {
	g := NewGroup(sp)
	n := lo + rng.Intn(hi-lo+1)
	for i := 0; i < n; i++ {
		g.Members = append(g.Members, species.NewRandom(p, rng))
	}
	return g
}

// Len returns the population size.
func (g *Group) Len() int {
	return len(g.Members)
}

// UpdateStats recomputes the cached aggregate sums from the population.
func (g *Group) UpdateStats() {
	g.TotalEnergy = 0
	g.TotalLifetime = 0
	g.TotalAge = 0
	g.TotalAttitude = 0
	for _, a := range g.Members {
		g.TotalEnergy += a.Energy
		g.TotalLifetime += a.Lifetime
		g.TotalAge += a.Age
		g.TotalAttitude += a.SocialAttitude
	}
}

// MeanAttitude returns the mean social attitude, or 0 for an empty group.
// UpdateStats must have run since the population last changed.
func (g *Group) MeanAttitude() float64 {
	if len(g.Members) == 0 {
		return 0
	}
	return g.TotalAttitude / float64(len(g.Members))
}

// truncate keeps the max strongest members by energy, discarding the rest.
func (g *Group) truncate(max int) {
	if len(g.Members) <= max {
		return
	}
	sort.SliceStable(g.Members, func(i, j int) bool {
		return g.Members[i].Energy > g.Members[j].Energy
	})
	g.Members = g.Members[:max]
}

// mergeGroups pools the populations of all given groups into a single new
// group, truncating weakest-first if the pool exceeds max.
func mergeGroups(sp species.Species, groups []*Group, max int) *Group {
	merged := NewGroup(sp)
	for _, g := range groups {
		merged.Members = append(merged.Members, g.Members...)
		g.Members = nil
	}
	merged.truncate(max)
	return merged
}

// Spawn runs one day of aging, death and reproduction over the group and
// keeps the grid occupancy layer in step. Each member ages one day; every
// 10th day of age costs AgingCost energy. Members out of energy or with a
// lifetime under the species minimum are terminated. A member reaching its
// lifetime is replaced by two offspring; the weaker offspring is only
// admitted while the cell occupancy is below the group cap.
// Returns the number of terminations and offspring admitted.
func (g *Group) Spawn(grid *terrain.Grid, cell terrain.Cell, p species.Params, rng *rand.Rand) (deaths, births int) {
	layer := g.Species.Layer()
	next := make([]*species.Agent, 0, len(g.Members))
	for _, a := range g.Members {
		a.Age++
		if a.Age%10 == 0 {
			a.Energy -= p.AgingCost
		}
		switch {
		case a.Energy <= 0 || a.Lifetime < p.MinLifetime:
			grid.AddCount(layer, cell, -1)
			deaths++
		case a.Age == a.Lifetime:
			first, second := species.Reproduce(a, p, rng)
			next = append(next, first)
			births++
			if grid.Count(layer, cell) < p.MaxGroup {
				next = append(next, second)
				grid.AddCount(layer, cell, 1)
				births++
			}
		default:
			next = append(next, a)
		}
	}
	g.Members = next
	return deaths, births
}
