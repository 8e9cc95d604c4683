package engine

import (
	"fmt"
	"sort"

	"github.com/talgya/planisuss/internal/species"
	"github.com/talgya/planisuss/internal/terrain"
)

// graze feeds the herd's non-movers from the cell's vegetation. One unit
// of density feeds one animal one energy. When the cell cannot feed every
// non-mover, the hungriest eat first and everyone left out pays the
// hunger penalty on its social attitude.
func (w *World) graze(g *Group, cell terrain.Cell, p species.Params) {
	var static []*species.Agent
	for _, a := range g.Members {
		if !a.Moved {
			static = append(static, a)
		}
	}
	if len(static) == 0 {
		return
	}

	fed := w.Grid.Consume(cell, len(static))
	if fed == len(static) {
		for _, a := range static {
			a.GainEnergy(1, p.MaxEnergy)
		}
		return
	}

	sort.SliceStable(static, func(i, j int) bool {
		return static[i].Energy < static[j].Energy
	})
	for i, a := range static {
		if i < fed {
			a.GainEnergy(1, p.MaxEnergy)
		} else {
			a.SocialAttitude /= p.HungerDivisor
		}
	}
}

// hunt has the pride take down the strongest erbast of the herd sharing
// its cell, if any. The prey's energy is the prize: it is floor-divided
// across the pride, with the remainder going one point each to the
// weakest carviz, and every recipient's social attitude rises by the
// hunting bonus. Without prey, every carviz pays the hunger penalty.
func (w *World) hunt(g *Group, cell terrain.Cell, prey *Group, p species.Params) {
	if prey == nil || prey.Len() == 0 {
		for _, a := range g.Members {
			a.SocialAttitude /= p.HungerDivisor
		}
		return
	}

	// Take the strongest erbast; first-listed wins energy ties.
	strongest := 0
	for i, a := range prey.Members {
		if a.Energy > prey.Members[strongest].Energy {
			strongest = i
		}
	}
	prize := prey.Members[strongest].Energy
	prey.Members = append(prey.Members[:strongest], prey.Members[strongest+1:]...)
	w.Grid.AddCount(terrain.LayerErbast, cell, -1)

	sort.SliceStable(g.Members, func(i, j int) bool {
		return g.Members[i].Energy < g.Members[j].Energy
	})
	share := prize / len(g.Members)
	spare := prize % len(g.Members)
	for i, a := range g.Members {
		gain := share
		if i < spare {
			gain++
		}
		a.GainEnergy(gain, p.MaxEnergy)
		a.SocialAttitude += p.EatBonus
		a.ClampAttitude()
	}

	w.recordEvent("hunt", fmt.Sprintf(
		"pride of %d hunted an erbast (energy %d) at %s", g.Len(), prize, cell))
}
