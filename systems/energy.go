package systems

import "github.com/pthm-cable/warren/components"

// Survive reports whether an organism lives through the survive phase.
// Killed organisms always die. A fed organism survives and its hunger
// resets. An unfed one survives only while its hunger count is below the
// species' tolerance, and its hunger grows by one.
func Survive(org *components.Organism, t components.Traits, killed bool) bool {
	if killed {
		return false
	}
	if org.Fed(t) {
		org.Hunger = 0
		return true
	}
	if org.Hunger < t.HungerTolerance {
		org.Hunger++
		return true
	}
	return false
}
