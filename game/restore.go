package game

import (
	"fmt"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/telemetry"
)

// Restore builds a game from a snapshot, continuing from its generation.
// The snapshot must pass Validate and the config must describe the same grid size.
func Restore(cfg *config.Config, opts Options, snap *telemetry.Snapshot) (*Game, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	if snap.GridSize != cfg.Grid.Size {
		return nil, fmt.Errorf("snapshot grid size %d does not match config %d", snap.GridSize, cfg.Grid.Size)
	}

	restoreCfg := cfg.Clone()
	for i := range restoreCfg.Species {
		restoreCfg.Species[i].Initial = 0
	}
	g, err := New(restoreCfg, opts)
	if err != nil {
		return nil, err
	}

	copy(g.grass.Res, snap.Resources)
	g.generation = snap.Generation

	for _, a := range snap.Agents {
		if !g.Configured(a.Kind) {
			g.Close()
			return nil, fmt.Errorf("snapshot agent %d has unconfigured kind %s", a.ID, a.Kind)
		}
		pos := components.Position{X: a.X, Y: a.Y}
		org := components.Organism{ID: a.ID, Kind: a.Kind, Intake: a.Intake, Hunger: a.Hunger}
		g.agentMapper.NewEntity(&pos, &org)
		g.counts[a.Kind]++
		if ls := a.Lifetime.FromJSON(a.Kind); ls != nil {
			g.lifetimeTracker.Register(a.ID, a.Kind, ls.BirthGen, ls.ParentID)
			restored := g.lifetimeTracker.Get(a.ID)
			*restored = *ls
		} else {
			g.lifetimeTracker.Register(a.ID, a.Kind, snap.Generation, 0)
		}
		g.nextID = max(g.nextID, a.ID+1)
	}

	return g, nil
}
