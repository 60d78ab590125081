package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/warren/config"
)

// Files written into a run directory.
const (
	TelemetryFile = "telemetry.csv"
	PerfFile      = "perf.csv"
	BookmarkFile  = "bookmarks.csv"
	ConfigFile    = "config.yaml"
)

// csvLog is an append-only CSV file whose header goes out with the first rows.
type csvLog struct {
	name   string
	f      *os.File
	header bool
}

func openLog(dir, name string) (*csvLog, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvLog{name: name, f: f}, nil
}

// appendRows marshals rows with gocsv, with the header only on the first call.
func appendRows[T any](l *csvLog, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	var err error
	if l.header {
		err = gocsv.MarshalWithoutHeaders(rows, l.f)
	} else {
		err = gocsv.Marshal(rows, l.f)
		l.header = err == nil
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", l.name, err)
	}
	return nil
}

// OutputManager writes a run directory: config.yaml plus telemetry, perf and
// bookmark CSVs. A nil *OutputManager is valid and discards everything.
type OutputManager struct {
	dir       string
	telemetry *csvLog
	perf      *csvLog
	bookmarks *csvLog
}

// NewOutputManager creates dir and the CSV files in it.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for _, slot := range []struct {
		log  **csvLog
		name string
	}{
		{&om.telemetry, TelemetryFile},
		{&om.perf, PerfFile},
		{&om.bookmarks, BookmarkFile},
	} {
		l, err := openLog(dir, slot.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*slot.log = l
	}
	return om, nil
}

// WriteConfig saves the effective configuration next to the logs.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, ConfigFile))
}

// WriteTelemetry appends one stats window.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return appendRows(om.telemetry, []WindowStats{stats})
}

// WritePerf appends the timing summary for the window ending at generation.
func (om *OutputManager) WritePerf(stats PerfStats, generation int32) error {
	if om == nil {
		return nil
	}
	return appendRows(om.perf, []PerfRow{stats.Row(generation)})
}

// WriteBookmarks appends every bookmark from one detection pass.
func (om *OutputManager) WriteBookmarks(bs []Bookmark) error {
	if om == nil {
		return nil
	}
	return appendRows(om.bookmarks, bs)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var errs []error
	for _, l := range []*csvLog{om.telemetry, om.perf, om.bookmarks} {
		if l != nil {
			errs = append(errs, l.f.Close())
		}
	}
	return errors.Join(errs...)
}
