package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/warren/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	// Every method is a no-op on nil
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteBookmarks([]Bookmark{{Type: BookmarkPreyCrash}}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := om.WriteConfig(config.Cfg()); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	for gen := int32(10); gen <= 30; gen += 10 {
		if err := om.WriteTelemetry(WindowStats{WindowEndGen: gen, PreyCount: 5}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WritePerf(PerfStats{AvgGen: 250 * time.Microsecond}, 30); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteBookmarks([]Bookmark{
		{Type: BookmarkPreyCrash, Generation: 20, Description: "crash"},
		{Type: BookmarkPreyExtinct, Generation: 30, Description: "gone"},
	}); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, TelemetryFile))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("telemetry.csv has %d lines, want header + 3 rows:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "generation,prey,pred") {
		t.Errorf("header = %q", lines[0])
	}
	if strings.Contains(lines[2], "generation") {
		t.Error("header repeated on later writes")
	}

	data, err = os.ReadFile(filepath.Join(dir, BookmarkFile))
	if err != nil {
		t.Fatal(err)
	}
	if n := len(strings.Split(strings.TrimSpace(string(data)), "\n")); n != 3 {
		t.Errorf("bookmarks.csv has %d lines, want 3", n)
	}

	data, err = os.ReadFile(filepath.Join(dir, PerfFile))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "generation,avg_gen_us") || !strings.Contains(string(data), "\n30,250,") {
		t.Errorf("perf.csv = %q", data)
	}

	if _, err := os.Stat(filepath.Join(dir, ConfigFile)); err != nil {
		t.Errorf("config.yaml missing: %v", err)
	}
}
