package engine

import (
	"testing"

	"github.com/talgya/planisuss/internal/config"
	"github.com/talgya/planisuss/internal/species"
	"github.com/talgya/planisuss/internal/terrain"
)

func defaultConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("loading default config: %v", err)
	}
	return cfg
}

func TestNewWorldSeeding(t *testing.T) {
	cfg := defaultConfig(t)
	w := New(cfg, 42)

	if w.Day != 1 {
		t.Errorf("day = %d, want 1", w.Day)
	}
	if n := len(w.Herds); n < cfg.Seeding.HerdsMin || n > cfg.Seeding.HerdsMax {
		t.Errorf("herds = %d, want in [%d, %d]", n, cfg.Seeding.HerdsMin, cfg.Seeding.HerdsMax)
	}
	if n := len(w.Prides); n < cfg.Seeding.PridesMin || n > cfg.Seeding.PridesMax {
		t.Errorf("prides = %d, want in [%d, %d]", n, cfg.Seeding.PridesMin, cfg.Seeding.PridesMax)
	}
	for cell, g := range w.Herds {
		if w.Grid.IsWater(cell) {
			t.Errorf("herd seeded on water at %s", cell)
		}
		if n := g.Len(); n < cfg.Seeding.ErbastMin || n > cfg.Seeding.ErbastMax {
			t.Errorf("herd at %s has %d members, want in [%d, %d]",
				cell, n, cfg.Seeding.ErbastMin, cfg.Seeding.ErbastMax)
		}
		if got := w.Grid.Count(terrain.LayerErbast, cell); got != g.Len() {
			t.Errorf("occupancy %d at %s, want %d", got, cell, g.Len())
		}
	}
	for cell, g := range w.Prides {
		if w.Grid.IsWater(cell) {
			t.Errorf("pride seeded on water at %s", cell)
		}
		if got := w.Grid.Count(terrain.LayerCarviz, cell); got != g.Len() {
			t.Errorf("occupancy %d at %s, want %d", got, cell, g.Len())
		}
	}
}

func TestSameSeedSameWorld(t *testing.T) {
	cfg := defaultConfig(t)
	a := New(cfg, 7)
	b := New(cfg, 7)

	for i := 0; i < 5; i++ {
		sa := a.AdvanceDay()
		sb := b.AdvanceDay()
		if sa.ErbastPopulation != sb.ErbastPopulation ||
			sa.CarvizPopulation != sb.CarvizPopulation ||
			sa.VegetobMean != sb.VegetobMean {
			t.Fatalf("day %d diverged: %+v vs %+v", i+1, sa, sb)
		}
	}
}

func TestAdvanceDayInvariants(t *testing.T) {
	cfg := defaultConfig(t)
	w := New(cfg, 99)

	for day := 1; day <= 30; day++ {
		if w.Day != day {
			t.Fatalf("day counter = %d, want %d", w.Day, day)
		}
		stats := w.AdvanceDay()
		if stats.Day != day {
			t.Fatalf("stats recorded for day %d, want %d", stats.Day, day)
		}

		checkPopulations(t, w, cfg)

		latest, ok := w.Latest()
		if !ok || latest.Day != day {
			t.Fatalf("latest series entry %+v, want day %d", latest, day)
		}
		if len(w.Series()) != day {
			t.Fatalf("series length = %d, want %d", len(w.Series()), day)
		}
	}
}

func checkPopulations(t *testing.T, w *World, cfg *config.Config) {
	t.Helper()
	check := func(m map[terrain.Cell]*Group, sc config.SpeciesConfig, layer terrain.Layer) {
		total := 0
		for cell, g := range m {
			if g.Len() == 0 {
				t.Errorf("empty group survived cleanup at %s", cell)
			}
			if w.Grid.IsWater(cell) {
				t.Errorf("group on water at %s", cell)
			}
			if got := w.Grid.Count(layer, cell); got != g.Len() {
				t.Errorf("occupancy %d at %s, want %d", got, cell, g.Len())
			}
			total += g.Len()
			for _, a := range g.Members {
				if a.Energy < 0 || a.Energy > sc.MaxEnergy {
					t.Errorf("energy %d outside [0, %d]", a.Energy, sc.MaxEnergy)
				}
				if a.Lifetime < 1 || a.Lifetime > sc.MaxLifetime {
					t.Errorf("lifetime %d outside [1, %d]", a.Lifetime, sc.MaxLifetime)
				}
				if a.SocialAttitude < 0 || a.SocialAttitude > 1 {
					t.Errorf("attitude %v outside [0, 1]", a.SocialAttitude)
				}
			}
		}
		if got := w.Grid.TotalCount(layer); got != total {
			t.Errorf("layer total %d, want population %d", got, total)
		}
	}
	check(w.Herds, cfg.Erbast, terrain.LayerErbast)
	check(w.Prides, cfg.Carviz, terrain.LayerCarviz)
}

func TestVegetationStaysInRange(t *testing.T) {
	cfg := defaultConfig(t)
	w := New(cfg, 3)
	for day := 0; day < 20; day++ {
		w.AdvanceDay()
	}
	for _, c := range w.Grid.GroundCells() {
		if v := w.Grid.Vegetation(c); v < 0 || v > cfg.Vegetob.MaxDensity {
			t.Errorf("vegetation %d at %s outside [0, %d]", v, c, cfg.Vegetob.MaxDensity)
		}
	}
}

func TestOverwhelmTerminatesSurroundedGroups(t *testing.T) {
	w := newTestWorld(1, 6, 6)
	inner := terrain.Cell{Row: 2, Col: 2}
	coastal := terrain.Cell{Row: 1, Col: 1} // touches border water
	setAllVegetation(w.Grid, w.Grid.MaxDensity())

	w.placeGroup(species.Erbast, inner, uniformAgents(4, 50, 500, 0.5))
	w.placeGroup(species.Carviz, coastal, uniformAgents(3, 50, 500, 0.5))

	w.overwhelm()

	if _, ok := w.Herds[inner]; ok {
		t.Error("fully surrounded herd survived")
	}
	if got := w.Grid.Count(terrain.LayerErbast, inner); got != 0 {
		t.Errorf("occupancy = %d after overwhelm, want 0", got)
	}
	if _, ok := w.Prides[coastal]; !ok {
		t.Error("coastal pride was overwhelmed; water neighbors must protect it")
	}
	if len(w.Events) != 1 || w.Events[0].Category != "overwhelm" {
		t.Fatalf("events = %+v, want one overwhelm", w.Events)
	}
}

func TestOverwhelmNeedsEveryNeighborFull(t *testing.T) {
	w := newTestWorld(1, 6, 6)
	inner := terrain.Cell{Row: 2, Col: 2}
	setAllVegetation(w.Grid, w.Grid.MaxDensity())
	w.Grid.SetVegetation(terrain.Cell{Row: 2, Col: 3}, w.Grid.MaxDensity()-1)

	w.placeGroup(species.Erbast, inner, uniformAgents(4, 50, 500, 0.5))
	w.overwhelm()

	if _, ok := w.Herds[inner]; !ok {
		t.Error("herd terminated although one neighbor was below maximum density")
	}
}

func TestCleanupDropsEmptyGroups(t *testing.T) {
	w := newTestWorld(1, 6, 6)
	cell := terrain.Cell{Row: 2, Col: 2}
	g := w.placeGroup(species.Erbast, cell, nil)
	g.Members = nil

	w.cleanup()
	if _, ok := w.Herds[cell]; ok {
		t.Error("empty herd survived cleanup")
	}
}

func TestCellDetail(t *testing.T) {
	w := newTestWorld(1, 6, 6)
	cell := terrain.Cell{Row: 2, Col: 2}
	w.Grid.SetVegetation(cell, 42)
	g := w.placeGroup(species.Erbast, cell, uniformAgents(3, 50, 500, 0.5))
	g.UpdateStats()

	d := w.CellDetail(cell)
	if d.Water || d.Vegetation != 42 {
		t.Errorf("detail = %+v, want ground with vegetation 42", d)
	}
	if d.Herd == nil || d.Herd.Population != 3 || d.Herd.TotalEnergy != 150 {
		t.Errorf("herd detail = %+v, want population 3, energy 150", d.Herd)
	}
	if d.Pride != nil {
		t.Errorf("pride detail = %+v, want nil", d.Pride)
	}

	water := w.CellDetail(terrain.Cell{Row: 0, Col: 0})
	if !water.Water || water.Vegetation != terrain.Water {
		t.Errorf("water detail = %+v, want sentinel vegetation", water)
	}
	if water.Herd != nil || water.Pride != nil {
		t.Error("water cell reports residents")
	}

	empty := w.CellDetail(terrain.Cell{Row: 3, Col: 3})
	if empty.Herd != nil || empty.Pride != nil {
		t.Error("unoccupied ground cell reports residents")
	}
}

func TestRecordEventTrims(t *testing.T) {
	w := newTestWorld(1, 6, 6)
	for i := 0; i < maxEvents+50; i++ {
		w.recordEvent("hunt", "x")
	}
	if len(w.Events) != maxEvents {
		t.Errorf("event buffer = %d, want trimmed to %d", len(w.Events), maxEvents)
	}
}
