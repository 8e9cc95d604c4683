// Package species provides the animal data model shared by Erbast and
// Carviz, with per-species behavior selected through a constant table
// rather than subtyping.
package species

import (
	"github.com/talgya/planisuss/internal/terrain"
)

// Species tags an animal or group as herbivore or carnivore.
type Species uint8

const (
	Erbast Species = iota // herbivore, groups into herds
	Carviz                // carnivore, groups into prides
)

func (s Species) String() string {
	switch s {
	case Erbast:
		return "erbast"
	case Carviz:
		return "carviz"
	}
	return "unknown"
}

// GroupName returns the social group noun for the species.
func (s Species) GroupName() string {
	if s == Carviz {
		return "pride"
	}
	return "herd"
}

// Layer returns the grid occupancy layer the species is counted on.
func (s Species) Layer() terrain.Layer {
	if s == Carviz {
		return terrain.LayerCarviz
	}
	return terrain.LayerErbast
}

// Params is the per-species constant set driving lifecycle, movement and
// feeding. FightBonus and JoinThreshold are meaningful for Carviz only.
type Params struct {
	MaxEnergy   int
	MaxLifetime int
	MinLifetime int // lifetime below this terminates the animal
	AgingCost   int // energy lost every 10th day of age

	MaxGroup     int
	Neighborhood int // movement search radius

	// An animal follows a moving group when energy*attitude >= MinMovement,
	// and bolts from a staying group when energy/attitude > MaxMovement.
	MinMovement float64
	MaxMovement float64

	HungerDivisor float64 // divides attitude when there is nothing to eat
	EatBonus      float64 // added to attitude after a successful hunt
	FightBonus    float64 // added to the winning pride's attitudes
	JoinThreshold float64 // two prides join when their mean attitudes sum above this
}

// Table maps a Species tag to its constant set.
type Table [2]Params

// NewTable builds a lookup table from the two species parameter sets.
func NewTable(erbast, carviz Params) Table {
	var t Table
	t[Erbast] = erbast
	t[Carviz] = carviz
	return t
}

// For returns the constants for the given species.
func (t Table) For(s Species) Params {
	return t[s]
}
