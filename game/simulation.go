package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/systems"
	"github.com/pthm-cable/warren/telemetry"
)

// Step advances the simulation by one generation. Each phase runs over the
// whole population before the next one starts.
func (g *Game) Step() {
	g.perfCollector.StartGeneration(g.Total())
	g.generation++

	g.perfCollector.StartPhase(systems.PhaseMove)
	g.movePhase()

	g.perfCollector.StartPhase(systems.PhaseEat)
	killed := g.eatPhase()

	g.perfCollector.StartPhase(systems.PhaseSurvive)
	g.survivePhase(killed)

	g.perfCollector.StartPhase(systems.PhaseReproduce)
	g.reproducePhase()

	g.perfCollector.StartPhase(systems.PhaseRegrow)
	g.collector.RecordRegrowth(g.grass.Regrow(g.grassRate, g.rng))

	g.perfCollector.StartPhase(systems.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndGeneration()
}

// Advance runs up to n generations, checking stop before each one. after,
// if set, runs once per generation. Returns the number of generations run.
func (g *Game) Advance(n int, stop func(*Game) bool, after func(*Game)) int {
	for i := 0; i < n; i++ {
		if stop != nil && stop(g) {
			return i
		}
		g.Step()
		if after != nil {
			after(g)
		}
	}
	return n
}

// movePhase moves every agent one random step and clears its intake.
func (g *Game) movePhase() {
	size := g.grass.Size
	query := g.agentFilter.Query()
	for query.Next() {
		pos, org := query.Get()
		systems.Move(pos, org, size, g.rng)
	}
}

// eatPhase snapshots the occupancy, resolves it and applies the result.
// It returns the set of agents eaten by predators.
func (g *Game) eatPhase() map[ecs.Entity]bool {
	var occupants []systems.Occupant
	query := g.agentFilter.Query()
	for query.Next() {
		pos, org := query.Get()
		occupants = append(occupants, systems.Occupant{
			Entity: query.Entity(),
			Pos:    *pos,
			Kind:   org.Kind,
			Diet:   g.traits[org.Kind].Diet,
		})
	}

	res := systems.Resolve(occupants, g.grass, g.tieBreaker)

	for _, pos := range res.Grazed {
		g.grass.Graze(pos.X, pos.Y)
	}
	g.collector.RecordGrazing(res.GrassEaten)

	var killed map[ecs.Entity]bool
	for i, o := range occupants {
		if res.Intake[i] > 0 {
			org := g.orgMap.Get(o.Entity)
			org.Consume(res.Intake[i])
			g.lifetimeTracker.RecordIntake(org.ID, res.Intake[i])
		}
		if res.Killed[i] {
			if killed == nil {
				killed = make(map[ecs.Entity]bool, res.Kills)
			}
			killed[o.Entity] = true
		}
	}
	return killed
}

// survivePhase removes agents that were eaten or starved.
func (g *Game) survivePhase(killed map[ecs.Entity]bool) {
	var dead []death
	query := g.agentFilter.Query()
	for query.Next() {
		_, org := query.Get()
		entity := query.Entity()
		eaten := killed[entity]
		if systems.Survive(org, g.traits[org.Kind], eaten) {
			continue
		}
		cause := telemetry.CauseStarvation
		if eaten {
			cause = telemetry.CausePredation
		}
		dead = append(dead, death{entity: entity, id: org.ID, kind: org.Kind, cause: cause})
	}
	g.removeDead(dead)
}

// reproducePhase draws litters for every survivor. Offspring are spawned after
// all parents are processed, so they neither reproduce nor get eaten this
// generation.
func (g *Game) reproducePhase() {
	var births []birth
	query := g.agentFilter.Query()
	for query.Next() {
		pos, org := query.Get()
		template, n := systems.Breed(org, g.traits[org.Kind], g.rng)
		if n == 0 {
			continue
		}
		births = append(births, birth{pos: *pos, template: template, n: n, parentID: org.ID})
	}
	g.spawnBirths(births)
}
