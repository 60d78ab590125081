package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/warren/config"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkPreyCrash        BookmarkType = "prey_crash"
	BookmarkPredatorRecovery BookmarkType = "predator_recovery"
	BookmarkPreyExtinct      BookmarkType = "prey_extinct"
	BookmarkPredatorExtinct  BookmarkType = "predator_extinct"
	BookmarkStableEcosystem  BookmarkType = "stable_ecosystem"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Generation  int32        `csv:"generation" json:"generation"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"generation", b.Generation,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	cfg config.BookmarksConfig

	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	recentPredMin      int  // minimum predator count in recent history
	recentPreyPeak     int  // peak prey count in recent history
	stableWindowsCount int  // consecutive windows with stable populations
	seenPrey, seenPred bool // species was ever present, so extinction can fire
	preyGone, predGone bool // extinction already reported
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int, cfg config.BookmarksConfig) *BookmarkDetector {
	minHistory := max(5, cfg.StableEcosystem.StableWindows)
	if historySize < minHistory {
		historySize = minHistory
	}
	return &BookmarkDetector{
		cfg:         cfg,
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	bookmarks = append(bookmarks, bd.checkExtinction(stats)...)

	if bd.historyFull || bd.historyIdx > 0 {
		if b := bd.checkPredatorRecovery(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkPreyCrash(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkStableEcosystem(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)

	// Track predator minimum and prey peak
	if stats.PredCount > 0 && (stats.PredCount < bd.recentPredMin || bd.recentPredMin == 0) {
		bd.recentPredMin = stats.PredCount
	}
	if stats.PreyCount > bd.recentPreyPeak {
		bd.recentPreyPeak = stats.PreyCount
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns up to n most recent windows, oldest first.
func (bd *BookmarkDetector) recent(n int) []WindowStats {
	count := bd.historyIdx
	if bd.historyFull {
		count = bd.historySize
	}
	if n > count {
		n = count
	}
	out := make([]WindowStats, 0, n)
	for i := n; i > 0; i-- {
		idx := (bd.historyIdx - i + bd.historySize) % bd.historySize
		out = append(out, bd.history[idx])
	}
	return out
}

func (bd *BookmarkDetector) checkExtinction(stats WindowStats) []Bookmark {
	var out []Bookmark

	if stats.PreyCount > 0 {
		bd.seenPrey = true
	} else if bd.seenPrey && !bd.preyGone {
		bd.preyGone = true
		out = append(out, Bookmark{
			Type:        BookmarkPreyExtinct,
			Generation:  stats.WindowEndGen,
			Description: "Prey population reached zero",
		})
	}

	if stats.PredCount > 0 {
		bd.seenPred = true
	} else if bd.seenPred && !bd.predGone {
		bd.predGone = true
		out = append(out, Bookmark{
			Type:        BookmarkPredatorExtinct,
			Generation:  stats.WindowEndGen,
			Description: "Predator population reached zero",
		})
	}

	return out
}

func (bd *BookmarkDetector) checkPredatorRecovery(stats WindowStats) *Bookmark {
	c := bd.cfg.PredatorRecovery
	if bd.recentPredMin == 0 || bd.recentPredMin > c.MinPopulation {
		return nil
	}

	threshold := bd.recentPredMin * c.RecoveryMultiplier
	if stats.PredCount >= threshold && stats.PredCount >= c.MinFinal {
		// Reset the minimum after triggering
		oldMin := bd.recentPredMin
		bd.recentPredMin = stats.PredCount

		return &Bookmark{
			Type:        BookmarkPredatorRecovery,
			Generation:  stats.WindowEndGen,
			Description: fmt.Sprintf("Predator population recovered from %d to %d", oldMin, stats.PredCount),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkPreyCrash(stats WindowStats) *Bookmark {
	c := bd.cfg.PreyCrash
	if bd.recentPreyPeak == 0 {
		return nil
	}

	dropPercent := 1.0 - float64(stats.PreyCount)/float64(bd.recentPreyPeak)
	if dropPercent > c.DropPercent && stats.PreyCount < bd.recentPreyPeak-c.MinDrop {
		// Reset peak after crash
		oldPeak := bd.recentPreyPeak
		bd.recentPreyPeak = stats.PreyCount

		return &Bookmark{
			Type:        BookmarkPreyCrash,
			Generation:  stats.WindowEndGen,
			Description: fmt.Sprintf("Prey crashed %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.PreyCount),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkStableEcosystem(stats WindowStats) *Bookmark {
	c := bd.cfg.StableEcosystem

	// Need both populations present
	if stats.PreyCount < c.MinPrey || stats.PredCount < c.MinPred {
		bd.stableWindowsCount = 0
		return nil
	}

	window := append(bd.recent(3), stats)
	if len(window) < 4 {
		return nil
	}

	prey := make([]float64, len(window))
	pred := make([]float64, len(window))
	for i, h := range window {
		prey[i] = float64(h.PreyCount)
		pred[i] = float64(h.PredCount)
	}

	if CoefficientOfVariation(prey) < c.CVThreshold && CoefficientOfVariation(pred) < c.CVThreshold {
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	if bd.stableWindowsCount == c.StableWindows { // trigger exactly once per stable run
		return &Bookmark{
			Type:        BookmarkStableEcosystem,
			Generation:  stats.WindowEndGen,
			Description: fmt.Sprintf("Stable ecosystem with %d prey, %d predators over %d windows", stats.PreyCount, stats.PredCount, c.StableWindows),
		}
	}

	return nil
}
