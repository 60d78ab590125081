package telemetry

import (
	"testing"

	"github.com/pthm-cable/warren/components"
)

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(5)

	c.RecordBirths(components.KindPrey, 3)
	c.RecordBirths(components.KindPredator, 1)
	c.RecordDeath(components.KindPrey, CausePredation, 4)
	c.RecordDeath(components.KindPrey, CauseStarvation, 2)
	c.RecordDeath(components.KindPredator, CauseStarvation, 10)
	c.RecordGrazing(6)
	c.RecordRegrowth(2)

	if c.ShouldFlush(4) {
		t.Error("window of 5 should not flush at generation 4")
	}
	if !c.ShouldFlush(5) {
		t.Error("window of 5 should flush at generation 5")
	}

	stats := c.Flush(5, Sample{
		PreyCount:  7,
		PredCount:  2,
		PredIntake: []float64{0, 2},
		PredHunger: []float64{1, 3},
		GrassCover: 0.5,
	})

	if stats.WindowStartGen != 0 || stats.WindowEndGen != 5 {
		t.Errorf("window = [%d,%d], want [0,5]", stats.WindowStartGen, stats.WindowEndGen)
	}
	if stats.PreyBirths != 3 || stats.PredBirths != 1 {
		t.Errorf("births = %d/%d, want 3/1", stats.PreyBirths, stats.PredBirths)
	}
	if stats.PreyEaten != 1 || stats.PreyStarved != 1 || stats.PredStarved != 1 {
		t.Errorf("deaths eaten=%d preyStarved=%d predStarved=%d, want 1/1/1",
			stats.PreyEaten, stats.PreyStarved, stats.PredStarved)
	}
	if stats.PreyLifespanMean != 3 || stats.PredLifespanMean != 10 {
		t.Errorf("lifespans = %v/%v, want 3/10", stats.PreyLifespanMean, stats.PredLifespanMean)
	}
	if stats.GrassEaten != 6 || stats.GrassRegrown != 2 {
		t.Errorf("grass eaten/regrown = %d/%d, want 6/2", stats.GrassEaten, stats.GrassRegrown)
	}
	if stats.PredIntakeMean != 1 || stats.PredHungerMean != 2 {
		t.Errorf("pred intake/hunger mean = %v/%v, want 1/2", stats.PredIntakeMean, stats.PredHungerMean)
	}

	// Counters reset for the next window
	next := c.Flush(10, Sample{})
	if next.WindowStartGen != 5 {
		t.Errorf("next window start = %d, want 5", next.WindowStartGen)
	}
	if next.PreyBirths != 0 || next.PreyEaten != 0 || next.GrassEaten != 0 || next.PreyLifespanMean != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}

func TestLifetimeTracker(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Register(1, components.KindPredator, 3, 0)
	lt.Register(2, components.KindPrey, 3, 0)

	lt.RecordIntake(1, 2)
	lt.RecordIntake(2, 1)
	lt.RecordIntake(99, 5) // unknown IDs are ignored
	lt.RecordChildren(1, 4)

	fox := lt.Get(1)
	if fox.TotalIntake != 2 || fox.Kills != 2 || fox.Children != 4 {
		t.Errorf("predator stats = %+v", fox)
	}
	if rabbit := lt.Get(2); rabbit.Kills != 0 || rabbit.TotalIntake != 1 {
		t.Errorf("prey stats = %+v", rabbit)
	}

	if removed := lt.Remove(1); removed == nil || removed.BirthGen != 3 {
		t.Errorf("Remove returned %+v", removed)
	}
	if lt.Count() != 1 {
		t.Errorf("Count = %d, want 1", lt.Count())
	}
}
