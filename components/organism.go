package components

import "errors"

// ErrNotEligible is returned by Reproduce when intake is below the reproduction threshold.
var ErrNotEligible = errors.New("intake below reproduction threshold")

// Organism bundles identity and the per-generation feeding state.
type Organism struct {
	ID     uint32
	Kind   Kind
	Intake int // consumed this generation, reset on move and on reproduction
	Hunger int // consecutive generations below the starvation threshold
}

// Traits are the per-species thresholds shared by every organism of a kind.
type Traits struct {
	Diet                  Diet
	MaxOffspring          int
	StarvationThreshold   int
	ReproductionThreshold int
	HungerTolerance       int
}

// Consume adds amount to the intake. Negative amounts are ignored.
func (o *Organism) Consume(amount int) {
	if amount > 0 {
		o.Intake += amount
	}
}

// Fed reports whether intake meets the starvation threshold.
func (o *Organism) Fed(t Traits) bool {
	return o.Intake >= t.StarvationThreshold
}

// CanReproduce reports whether intake meets the reproduction threshold.
func (o *Organism) CanReproduce(t Traits) bool {
	return o.Intake >= t.ReproductionThreshold
}

// Reproduce returns an offspring copy of o with zero intake and hunger, and
// resets the parent's intake. The caller assigns the child ID and position.
func (o *Organism) Reproduce(t Traits) (Organism, error) {
	if !o.CanReproduce(t) {
		return Organism{}, ErrNotEligible
	}
	child := *o
	child.ID = 0
	child.Intake = 0
	child.Hunger = 0
	o.Intake = 0
	return child, nil
}
