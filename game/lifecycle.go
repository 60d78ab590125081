package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/telemetry"
)

// spawnInitialPopulation places each species' initial count at uniformly random cells.
func (g *Game) spawnInitialPopulation() {
	size := g.grass.Size
	for _, sp := range g.cfg.Species {
		kind, _ := components.ParseKind(sp.Kind)
		for i := 0; i < sp.Initial; i++ {
			x := g.rng.Intn(size)
			y := g.rng.Intn(size)
			g.spawnAgent(components.Position{X: x, Y: y}, components.Organism{Kind: kind}, 0)
		}
	}
}

// Spawn adds one agent of a configured kind at (x, y), wrapped onto the grid,
// and returns its ID. It returns 0 if the kind is not configured.
func (g *Game) Spawn(kind components.Kind, x, y int) uint32 {
	if !g.Configured(kind) {
		return 0
	}
	pos := components.Position{
		X: components.Wrap(x, g.grass.Size),
		Y: components.Wrap(y, g.grass.Size),
	}
	return g.spawnAgent(pos, components.Organism{Kind: kind}, 0)
}

// spawnAgent creates the entity, assigns an ID and registers lifetime stats.
func (g *Game) spawnAgent(pos components.Position, org components.Organism, parentID uint32) uint32 {
	org.ID = g.nextID
	g.nextID++

	g.agentMapper.NewEntity(&pos, &org)
	g.counts[org.Kind]++
	g.lifetimeTracker.Register(org.ID, org.Kind, g.generation, parentID)

	return org.ID
}

// death is an agent collected for removal after a query.
type death struct {
	entity ecs.Entity
	id     uint32
	kind   components.Kind
	cause  telemetry.DeathCause
}

// removeDead removes collected entities. The world cannot be modified while a
// query is open, so callers collect first.
func (g *Game) removeDead(dead []death) {
	for _, d := range dead {
		lifespan := int32(0)
		if stats := g.lifetimeTracker.Remove(d.id); stats != nil {
			lifespan = g.generation - stats.BirthGen
		}
		g.collector.RecordDeath(d.kind, d.cause, lifespan)

		g.world.RemoveEntity(d.entity)
		g.counts[d.kind]--
	}
}

// birth is a litter collected during the reproduce phase.
type birth struct {
	pos      components.Position
	template components.Organism
	n        int
	parentID uint32
}

// spawnBirths appends offspring after every parent has been processed.
// Spawning of a kind stops once population.max_per_species is reached.
func (g *Game) spawnBirths(births []birth) {
	for _, b := range births {
		kind := b.template.Kind
		born := 0
		for i := 0; i < b.n; i++ {
			if g.maxPerSpecies > 0 && g.counts[kind] >= g.maxPerSpecies {
				break
			}
			g.spawnAgent(b.pos, b.template, b.parentID)
			born++
		}
		if born > 0 {
			g.collector.RecordBirths(kind, born)
			g.lifetimeTracker.RecordChildren(b.parentID, born)
		}
	}
}
