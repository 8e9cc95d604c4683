package engine

import (
	"math"
	"testing"

	"github.com/talgya/planisuss/internal/species"
	"github.com/talgya/planisuss/internal/terrain"
)

func TestSpawnAgesAndCharges(t *testing.T) {
	w := newTestWorld(1, 6, 6)
	p := testErbastParams()
	cell := terrain.Cell{Row: 2, Col: 2}

	members := uniformAgents(2, 50, 500, 0.5)
	members[0].Age = 4
	members[1].Age = 9
	g := w.placeGroup(species.Erbast, cell, members)

	deaths, births := g.Spawn(w.Grid, cell, p, w.rng)
	if deaths != 0 || births != 0 {
		t.Fatalf("deaths, births = %d, %d, want 0, 0", deaths, births)
	}
	if members[0].Age != 5 || members[0].Energy != 50 {
		t.Errorf("off-decade member: age %d energy %d, want 5 and 50", members[0].Age, members[0].Energy)
	}
	if members[1].Age != 10 || members[1].Energy != 50-p.AgingCost {
		t.Errorf("decade member: age %d energy %d, want 10 and %d", members[1].Age, members[1].Energy, 50-p.AgingCost)
	}
}

func TestSpawnTerminations(t *testing.T) {
	w := newTestWorld(1, 6, 6)
	p := testErbastParams()
	cell := terrain.Cell{Row: 2, Col: 2}

	exhausted := species.New(0, 500, 0.5)
	shortLived := species.New(50, p.MinLifetime-1, 0.5)
	healthy := species.New(50, 500, 0.5)
	g := w.placeGroup(species.Erbast, cell,
		[]*species.Agent{exhausted, shortLived, healthy})

	deaths, births := g.Spawn(w.Grid, cell, p, w.rng)
	if deaths != 2 || births != 0 {
		t.Fatalf("deaths, births = %d, %d, want 2, 0", deaths, births)
	}
	if g.Len() != 1 || g.Members[0] != healthy {
		t.Fatalf("survivors = %d, want just the healthy member", g.Len())
	}
	if got := w.Grid.Count(terrain.LayerErbast, cell); got != 1 {
		t.Errorf("occupancy = %d, want 1 after two terminations", got)
	}
}

func TestSpawnReproduction(t *testing.T) {
	w := newTestWorld(5, 6, 6)
	p := testErbastParams()
	cell := terrain.Cell{Row: 2, Col: 2}

	parent := species.New(60, 99, 0.5)
	parent.Age = 98 // reaches its lifetime this day
	g := w.placeGroup(species.Erbast, cell, []*species.Agent{parent})

	deaths, births := g.Spawn(w.Grid, cell, p, w.rng)
	if deaths != 0 || births != 2 {
		t.Fatalf("deaths, births = %d, %d, want 0, 2", deaths, births)
	}
	if g.Len() != 2 {
		t.Fatalf("population = %d, want 2 offspring", g.Len())
	}
	if got := g.Members[0].Energy + g.Members[1].Energy; got != 60 {
		t.Errorf("offspring energy sum = %d, want the parent's 60", got)
	}
	for _, a := range g.Members {
		if a.Age != 0 {
			t.Errorf("offspring age = %d, want 0", a.Age)
		}
	}
	if got := w.Grid.Count(terrain.LayerErbast, cell); got != 2 {
		t.Errorf("occupancy = %d, want 2", got)
	}
}

func TestSpawnCapBlocksSecondOffspring(t *testing.T) {
	w := newTestWorld(5, 6, 6)
	p := testErbastParams()
	p.MaxGroup = 1
	cell := terrain.Cell{Row: 2, Col: 2}

	parent := species.New(60, 99, 0.5)
	parent.Age = 98
	g := w.placeGroup(species.Erbast, cell, []*species.Agent{parent})

	deaths, births := g.Spawn(w.Grid, cell, p, w.rng)
	if deaths != 0 || births != 1 {
		t.Fatalf("deaths, births = %d, %d, want 0, 1", deaths, births)
	}
	if g.Len() != 1 {
		t.Fatalf("population = %d, want only the stronger offspring", g.Len())
	}
	if got := w.Grid.Count(terrain.LayerErbast, cell); got != 1 {
		t.Errorf("occupancy = %d, want unchanged 1", got)
	}
}

func TestTruncateKeepsStrongest(t *testing.T) {
	g := NewGroup(species.Erbast)
	g.Members = agentsWithEnergies([]int{10, 50, 30, 70, 20}, 500, 0.5)
	g.truncate(3)

	if g.Len() != 3 {
		t.Fatalf("population = %d, want 3", g.Len())
	}
	for _, a := range g.Members {
		if a.Energy < 30 {
			t.Errorf("weak member (energy %d) survived truncation", a.Energy)
		}
	}
}

func TestUpdateStatsAndMeanAttitude(t *testing.T) {
	g := NewGroup(species.Carviz)
	g.Members = []*species.Agent{
		species.New(10, 100, 0.2),
		species.New(30, 200, 0.6),
	}
	g.Members[0].Age = 5
	g.Members[1].Age = 15
	g.UpdateStats()

	if g.TotalEnergy != 40 || g.TotalLifetime != 300 || g.TotalAge != 20 {
		t.Errorf("totals = %d/%d/%d, want 40/300/20",
			g.TotalEnergy, g.TotalLifetime, g.TotalAge)
	}
	if math.Abs(g.MeanAttitude()-0.4) > 1e-12 {
		t.Errorf("mean attitude = %v, want 0.4", g.MeanAttitude())
	}

	empty := NewGroup(species.Carviz)
	empty.UpdateStats()
	if empty.MeanAttitude() != 0 {
		t.Errorf("empty group mean attitude = %v, want 0", empty.MeanAttitude())
	}
}
