package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/components"
)

// SharingRule decides how an available amount is split among co-located consumers.
type SharingRule uint8

const (
	// SharingExclusive gives the whole amount to one contender.
	SharingExclusive SharingRule = iota
	// SharingMultiplicative gives every contender the whole amount.
	SharingMultiplicative
)

// String returns the rule name.
func (r SharingRule) String() string {
	if r == SharingMultiplicative {
		return "multiplicative"
	}
	return "exclusive"
}

// SharingRules maps each resource kind to its sharing rule.
// Adding a diet means adding an entry here and a source in availableAt.
var SharingRules = map[components.Diet]SharingRule{
	components.DietGrass: SharingExclusive,
	components.DietPrey:  SharingMultiplicative,
}

// dietOrder fixes the order diets are resolved within a cell.
var dietOrder = []components.Diet{components.DietGrass, components.DietPrey}

// Share returns the amount each of n contenders receives.
func (r SharingRule) Share(amount, n int, tb TieBreaker) []int {
	shares := make([]int, n)
	if amount <= 0 || n == 0 {
		return shares
	}
	switch r {
	case SharingMultiplicative:
		for i := range shares {
			shares[i] = amount
		}
	default:
		shares[tb.Pick(n)] = amount
	}
	return shares
}

// TieBreaker picks the winner among n exclusive contenders, in [0, n).
type TieBreaker interface {
	Pick(n int) int
}

// FirstContender always picks the contender earliest in population order.
type FirstContender struct{}

// Pick implements TieBreaker.
func (FirstContender) Pick(int) int { return 0 }

// RandomContender picks uniformly at random.
type RandomContender struct {
	RNG RNG
}

// Pick implements TieBreaker.
func (r RandomContender) Pick(n int) int { return r.RNG.Intn(n) }

// NewTieBreaker returns the tie breaker for a config name ("first" or "random").
func NewTieBreaker(name string, rng RNG) TieBreaker {
	if name == "first" {
		return FirstContender{}
	}
	return RandomContender{RNG: rng}
}

// GrassView is the read-only part of the resource layer the resolver needs.
type GrassView interface {
	At(x, y int) int
}

// Occupant is one agent's entry in the eat-phase snapshot.
type Occupant struct {
	Entity ecs.Entity
	Pos    components.Position
	Kind   components.Kind
	Diet   components.Diet
}

// FeedingResult is what the eat phase decided. Slices are indexed like the
// occupant snapshot passed to Resolve.
type FeedingResult struct {
	Intake     []int                 // amount consumed per occupant
	Killed     []bool                // prey eaten by predators
	Grazed     []components.Position // grass cells to zero
	GrassEaten int
	Kills      int
}

// Resolve runs occupancy resolution for one eat phase. It groups the snapshot
// by coordinate and applies each diet's sharing rule against the state at the
// start of the phase: grass amounts from the view and prey counts from the
// snapshot. Resolve mutates nothing; the caller applies the result.
func Resolve(occupants []Occupant, grass GrassView, tb TieBreaker) FeedingResult {
	res := FeedingResult{
		Intake: make([]int, len(occupants)),
		Killed: make([]bool, len(occupants)),
	}

	// Group by coordinate, keeping first-seen order so tie-breaks and RNG
	// draws do not depend on map iteration.
	cells := make(map[components.Position][]int, len(occupants))
	var order []components.Position
	for i, o := range occupants {
		if _, ok := cells[o.Pos]; !ok {
			order = append(order, o.Pos)
		}
		cells[o.Pos] = append(cells[o.Pos], i)
	}

	for _, pos := range order {
		members := cells[pos]

		var prey []int
		for _, i := range members {
			if occupants[i].Kind == components.KindPrey {
				prey = append(prey, i)
			}
		}

		for _, diet := range dietOrder {
			var contenders []int
			for _, i := range members {
				if occupants[i].Diet == diet {
					contenders = append(contenders, i)
				}
			}
			if len(contenders) == 0 {
				continue
			}

			amount := availableAt(diet, pos, grass, len(prey))
			shares := SharingRules[diet].Share(amount, len(contenders), tb)

			consumed := false
			for j, i := range contenders {
				if shares[j] > 0 {
					res.Intake[i] += shares[j]
					consumed = true
				}
			}
			if !consumed {
				continue
			}

			switch diet {
			case components.DietGrass:
				res.Grazed = append(res.Grazed, pos)
				res.GrassEaten += amount
			case components.DietPrey:
				for _, i := range prey {
					res.Killed[i] = true
				}
				res.Kills += len(prey)
			}
		}
	}

	return res
}

// availableAt returns how much of a resource kind a cell offers at phase start.
func availableAt(diet components.Diet, pos components.Position, grass GrassView, preyCount int) int {
	switch diet {
	case components.DietGrass:
		return grass.At(pos.X, pos.Y)
	case components.DietPrey:
		return preyCount
	default:
		return 0
	}
}
