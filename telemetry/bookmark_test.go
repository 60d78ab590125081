package telemetry

import (
	"testing"

	"github.com/pthm-cable/warren/config"
)

func init() {
	config.MustInit("")
}

func countType(bookmarks []Bookmark, typ BookmarkType) int {
	n := 0
	for _, bm := range bookmarks {
		if bm.Type == typ {
			n++
		}
	}
	return n
}

func TestBookmarkDetector_PreyCrash(t *testing.T) {
	bd := NewBookmarkDetector(10, config.Cfg().Bookmarks)

	bd.Check(WindowStats{WindowEndGen: 10, PreyCount: 100})
	bookmarks := bd.Check(WindowStats{WindowEndGen: 20, PreyCount: 50})

	if countType(bookmarks, BookmarkPreyCrash) != 1 {
		t.Errorf("expected prey_crash bookmark, got %+v", bookmarks)
	}

	// Small dips below the minimum absolute drop are ignored
	bd = NewBookmarkDetector(10, config.Cfg().Bookmarks)
	bd.Check(WindowStats{WindowEndGen: 10, PreyCount: 20})
	bookmarks = bd.Check(WindowStats{WindowEndGen: 20, PreyCount: 12})
	if countType(bookmarks, BookmarkPreyCrash) != 0 {
		t.Errorf("drop of 8 should not count as a crash, got %+v", bookmarks)
	}
}

func TestBookmarkDetector_PredatorRecovery(t *testing.T) {
	bd := NewBookmarkDetector(10, config.Cfg().Bookmarks)

	bd.Check(WindowStats{WindowEndGen: 10, PreyCount: 50, PredCount: 2})
	if got := bd.Check(WindowStats{WindowEndGen: 20, PreyCount: 50, PredCount: 5}); countType(got, BookmarkPredatorRecovery) != 0 {
		t.Errorf("5 predators is below 3x the minimum, got %+v", got)
	}
	got := bd.Check(WindowStats{WindowEndGen: 30, PreyCount: 50, PredCount: 6})
	if countType(got, BookmarkPredatorRecovery) != 1 {
		t.Errorf("expected predator_recovery bookmark, got %+v", got)
	}
}

func TestBookmarkDetector_StableEcosystem(t *testing.T) {
	bd := NewBookmarkDetector(10, config.Cfg().Bookmarks)

	total := 0
	for i := 1; i <= 12; i++ {
		bookmarks := bd.Check(WindowStats{
			WindowEndGen: int32(i * 10),
			PreyCount:    100 + i%2,
			PredCount:    10,
		})
		total += countType(bookmarks, BookmarkStableEcosystem)
	}

	if total != 1 {
		t.Errorf("stable_ecosystem fired %d times, want exactly once", total)
	}
}

func TestBookmarkDetector_Extinction(t *testing.T) {
	bd := NewBookmarkDetector(10, config.Cfg().Bookmarks)

	// A species that was never present does not go extinct
	if got := bd.Check(WindowStats{WindowEndGen: 10, PreyCount: 30}); countType(got, BookmarkPredatorExtinct) != 0 {
		t.Errorf("unexpected predator_extinct: %+v", got)
	}

	got := bd.Check(WindowStats{WindowEndGen: 20, PreyCount: 0})
	if countType(got, BookmarkPreyExtinct) != 1 {
		t.Errorf("expected prey_extinct, got %+v", got)
	}
	if got[0].Generation != 20 {
		t.Errorf("generation = %d, want 20", got[0].Generation)
	}

	got = bd.Check(WindowStats{WindowEndGen: 30, PreyCount: 0})
	if countType(got, BookmarkPreyExtinct) != 0 {
		t.Errorf("prey_extinct should fire once, got %+v", got)
	}
}
