package game

import (
	"log/slog"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.generation) {
		return
	}

	stats := g.collector.Flush(g.generation, g.sample())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndGen); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	bookmarks := g.bookmarkDetector.Check(stats)
	if err := g.outputManager.WriteBookmarks(bookmarks); err != nil {
		slog.Error("failed to write bookmark", "error", err)
	}
	for i := range bookmarks {
		if g.logStats {
			bookmarks[i].LogBookmark()
		}
		if g.snapshotDir != "" {
			g.saveSnapshot(&bookmarks[i])
		}
	}
}

// sample measures the population at the end of a generation.
func (g *Game) sample() telemetry.Sample {
	s := telemetry.Sample{
		PreyCount:  g.counts[components.KindPrey],
		PredCount:  g.counts[components.KindPredator],
		GrassCover: g.grass.Cover(),
	}

	query := g.agentFilter.Query()
	for query.Next() {
		_, org := query.Get()
		switch org.Kind {
		case components.KindPrey:
			s.PreyIntake = append(s.PreyIntake, float64(org.Intake))
		case components.KindPredator:
			s.PredIntake = append(s.PredIntake, float64(org.Intake))
			s.PredHunger = append(s.PredHunger, float64(org.Hunger))
		}
	}
	return s
}

// saveSnapshot creates and saves a snapshot to disk.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	path, err := telemetry.SaveSnapshot(g.Snapshot(bookmark), g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}

	slog.Info("snapshot saved", "path", path, "generation", g.generation)
}

// Snapshot captures the grid and every agent. bookmark may be nil.
func (g *Game) Snapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	snapshot := &telemetry.Snapshot{
		Version:    telemetry.SnapshotVersion,
		RNGSeed:    g.rngSeed,
		GridSize:   g.grass.Size,
		Generation: g.generation,
		Resources:  append([]int(nil), g.grass.Res...),
		Bookmark:   bookmark,
	}

	query := g.agentFilter.Query()
	for query.Next() {
		pos, org := query.Get()
		snapshot.Agents = append(snapshot.Agents, telemetry.AgentState{
			ID:       org.ID,
			Kind:     org.Kind,
			X:        pos.X,
			Y:        pos.Y,
			Intake:   org.Intake,
			Hunger:   org.Hunger,
			Lifetime: g.lifetimeTracker.Get(org.ID).ToJSON(),
		})
	}

	return snapshot
}
