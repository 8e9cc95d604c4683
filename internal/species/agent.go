package species

import "math/rand"

// Agent is a single Erbast or Carviz. Agents are owned by exactly one
// group at a time; groups move them between populations, never copy them.
type Agent struct {
	Energy         int     // [0, Params.MaxEnergy]; 0 is death
	Lifetime       int     // fixed at birth, [1, Params.MaxLifetime]
	Age            int     // days since birth; reaching Lifetime triggers reproduction
	SocialAttitude float64 // [0, 1]
	Moved          bool    // true if the animal relocated today
}

// New creates an agent at age 0 with its attitude clamped to [0, 1].
func New(energy, lifetime int, attitude float64) *Agent {
	a := &Agent{Energy: energy, Lifetime: lifetime, SocialAttitude: attitude}
	a.ClampAttitude()
	return a
}

// NewRandom creates a founding agent with uniform random stats:
// energy in [0, MaxEnergy], lifetime in [1, MaxLifetime], attitude in [0, 1).
func NewRandom(p Params, rng *rand.Rand) *Agent {
	return &Agent{
		Energy:         rng.Intn(p.MaxEnergy + 1),
		Lifetime:       1 + rng.Intn(p.MaxLifetime),
		SocialAttitude: rng.Float64(),
	}
}

// ClampAttitude forces SocialAttitude back into [0, 1].
func (a *Agent) ClampAttitude() {
	if a.SocialAttitude < 0 {
		a.SocialAttitude = 0
	} else if a.SocialAttitude > 1 {
		a.SocialAttitude = 1
	}
}

// GainEnergy adds e to the agent's energy, capped at the species maximum.
func (a *Agent) GainEnergy(e, maxEnergy int) {
	a.Energy += e
	if a.Energy > maxEnergy {
		a.Energy = maxEnergy
	}
}

// Reproduce splits a parent into two offspring at age 0. The split
// conserves energy exactly (e1+e2 == parent energy) and averages to the
// parent on lifetime and attitude (sums are twice the parent's value).
// Draw bounds are clamped before drawing so no result needs correction:
// lifetimes stay within [1, MaxLifetime] and attitudes within [0, 1].
// The first returned offspring always has energy >= the second's.
func Reproduce(parent *Agent, p Params, rng *rand.Rand) (first, second *Agent) {
	hi := parent.Energy - 1
	if hi < 1 {
		hi = 1
	}
	e1 := 1 + rng.Intn(hi) // uniform in [1, hi]
	e2 := parent.Energy - e1

	// Both lifetime bounds are clamped so that l1 and the derived
	// l2 = 2*Lifetime - l1 land in [1, MaxLifetime].
	lhi := 2*parent.Lifetime - 1
	if lhi > p.MaxLifetime {
		lhi = p.MaxLifetime
	}
	llo := 2*parent.Lifetime - p.MaxLifetime
	if llo < 1 {
		llo = 1
	}
	l1 := llo + rng.Intn(lhi-llo+1)
	l2 := 2*parent.Lifetime - l1

	alo := 2*parent.SocialAttitude - 1
	if alo < 0 {
		alo = 0
	}
	ahi := 2 * parent.SocialAttitude
	if ahi > 1 {
		ahi = 1
	}
	a1 := alo + rng.Float64()*(ahi-alo)
	a2 := 2*parent.SocialAttitude - a1

	first = New(e1, l1, a1)
	second = New(e2, l2, a2)
	if second.Energy > first.Energy {
		first, second = second, first
	}
	return first, second
}
