package systems

import "github.com/pthm-cable/warren/components"

// OffspringCount draws a uniform litter size in {0, ..., MaxOffspring}.
func OffspringCount(t components.Traits, rng RNG) int {
	if t.MaxOffspring <= 0 {
		return 0
	}
	return rng.Intn(t.MaxOffspring + 1)
}

// Breed decides one parent's litter for the reproduce phase. An eligible
// parent draws a litter size; if it is non-zero the parent reproduces once,
// paying the intake reset a single time, and the returned template is
// copied n times by the caller. Ineligible parents draw nothing.
func Breed(parent *components.Organism, t components.Traits, rng RNG) (template components.Organism, n int) {
	if !parent.CanReproduce(t) {
		return components.Organism{}, 0
	}
	n = OffspringCount(t, rng)
	if n == 0 {
		return components.Organism{}, 0
	}
	child, err := parent.Reproduce(t)
	if err != nil {
		return components.Organism{}, 0
	}
	return child, n
}
