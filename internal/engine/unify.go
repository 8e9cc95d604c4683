package engine

import (
	"fmt"
	"sort"

	"github.com/talgya/planisuss/internal/species"
	"github.com/talgya/planisuss/internal/terrain"
)

// unifyHerds pools every herd that ended movement in the same cell into
// one. Herds never fight; an oversized pool loses its weakest members to
// overpopulation.
func unifyHerds(groups []*Group, p species.Params) *Group {
	if len(groups) == 1 {
		groups[0].truncate(p.MaxGroup)
		return groups[0]
	}
	return mergeGroups(species.Erbast, groups, p.MaxGroup)
}

// resolvePrides reduces all prides in a cell to one, pairwise from the two
// smallest. A pair joins when their mean social attitudes sum above the
// join threshold and the combined population stays under the cap;
// otherwise they fight to the last blood. Each fighter draws uniformly in
// [0, its total energy]; the higher draw wins, ties favoring the smaller
// pride. The losing pride is wiped out and every winner's social attitude
// rises by the fight bonus.
func (w *World) resolvePrides(groups []*Group, cell terrain.Cell, p species.Params) *Group {
	for len(groups) > 1 {
		sort.SliceStable(groups, func(i, j int) bool {
			return groups[i].Len() < groups[j].Len()
		})
		p1, p2 := groups[0], groups[1]
		p1.UpdateStats()
		p2.UpdateStats()

		var survivor *Group
		if p1.MeanAttitude()+p2.MeanAttitude() > p.JoinThreshold &&
			p1.Len()+p2.Len() < p.MaxGroup {
			survivor = mergeGroups(species.Carviz, []*Group{p1, p2}, p.MaxGroup)
		} else {
			v1 := w.rng.Intn(p1.TotalEnergy + 1)
			v2 := w.rng.Intn(p2.TotalEnergy + 1)
			loser := p2
			survivor = p1
			if v1 < v2 {
				survivor, loser = p2, p1
			}
			for _, a := range survivor.Members {
				a.SocialAttitude += p.FightBonus
				a.ClampAttitude()
			}
			w.recordEvent("fight", fmt.Sprintf(
				"pride fight at %s: %d carviz wiped out, %d survive",
				cell, loser.Len(), survivor.Len()))
			loser.Members = nil
		}
		groups = append([]*Group{survivor}, groups[2:]...)
	}
	groups[0].truncate(p.MaxGroup)
	return groups[0]
}
