package engine

import (
	"sort"

	"github.com/talgya/planisuss/internal/species"
	"github.com/talgya/planisuss/internal/terrain"
)

// placement binds a group to the cell it occupies after movement.
type placement struct {
	group *Group
	cell  terrain.Cell
}

// planMovement evaluates one group's relocation for the day and returns
// the resulting placements: the stayers at the original cell and, when
// anyone leaves, the movers as a new group at the target cell. Empty
// partitions are dropped. Movers pay one energy and carry Moved for the
// rest of the day.
func (w *World) planMovement(g *Group, cell terrain.Cell, p species.Params) []placement {
	neighbors := w.Grid.Neighbors(cell, p.Neighborhood)
	if len(neighbors) == 0 {
		// Isolated cell: nowhere to go.
		for _, a := range g.Members {
			a.Moved = false
		}
		return []placement{{group: g, cell: cell}}
	}

	var target terrain.Cell
	var groupMoves bool
	if g.Species == species.Erbast {
		// Herds chase vegetation.
		sort.SliceStable(neighbors, func(i, j int) bool {
			return w.Grid.Vegetation(neighbors[i]) > w.Grid.Vegetation(neighbors[j])
		})
		target = neighbors[0]
		here := w.Grid.Vegetation(cell)
		groupMoves = here < g.Len() && here < w.Grid.Vegetation(target)
	} else {
		// Prides chase prey. A prey-less best neighbor carries no signal,
		// so the target falls back to a uniformly random neighbor.
		sort.SliceStable(neighbors, func(i, j int) bool {
			return w.Grid.Count(terrain.LayerErbast, neighbors[i]) > w.Grid.Count(terrain.LayerErbast, neighbors[j])
		})
		target = neighbors[0]
		if w.Grid.Count(terrain.LayerErbast, target) == 0 {
			target = neighbors[w.rng.Intn(len(neighbors))]
		}
		groupMoves = w.Grid.Count(terrain.LayerErbast, cell) == 0
	}

	movers, stayers := partition(g.Members, groupMoves, p)
	for _, a := range movers {
		a.Moved = true
		a.Energy--
	}
	for _, a := range stayers {
		a.Moved = false
	}

	g.Members = stayers
	out := make([]placement, 0, 2)
	if len(stayers) > 0 {
		out = append(out, placement{group: g, cell: cell})
	}
	if len(movers) > 0 {
		moved := NewGroup(g.Species)
		moved.Members = movers
		out = append(out, placement{group: moved, cell: target})
	}
	return out
}

// partition splits the population into movers and stayers given the
// group-level decision. Each animal diverges on its own energy weighted by
// social attitude: it follows a moving group only when strong and social
// enough, and bolts from a staying group only when its energy-to-attitude
// ratio is high. A zero attitude makes that ratio +Inf, which reads as
// maximal restlessness.
func partition(members []*species.Agent, groupMoves bool, p species.Params) (movers, stayers []*species.Agent) {
	for _, a := range members {
		var moves bool
		if groupMoves {
			moves = a.Energy > 1 && float64(a.Energy)*a.SocialAttitude >= p.MinMovement
		} else {
			moves = a.Energy > 1 && float64(a.Energy)/a.SocialAttitude > p.MaxMovement
		}
		if moves {
			movers = append(movers, a)
		} else {
			stayers = append(stayers, a)
		}
	}
	return movers, stayers
}
