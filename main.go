package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/game"
	"github.com/pthm-cable/warren/stream"
	"github.com/pthm-cable/warren/telemetry"
	"github.com/pthm-cable/warren/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxGens := flag.Int("max-gens", 0, "Stop after N generations (0 = unlimited)")
	serve := flag.String("serve", "", "Address for the websocket stream, e.g. :8080 (empty = stream.addr from config)")
	stopOnExtinction := flag.Bool("stop-on-extinction", false, "Stop when any species dies out")
	restorePath := flag.String("restore", "", "Resume from a snapshot JSON file (grid size must match the config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	g, err := newGame(cfg, *restorePath, game.Options{
		Seed:        *seed,
		LogStats:    *logStats,
		SnapshotDir: *snapshotDir,
		OutputDir:   *outputDir,
	})
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := g.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	addr := cfg.Stream.Addr
	if *serve != "" {
		addr = *serve
	}
	publish := func(*game.Game) {}
	if addr != "" {
		hub, shutdown := startStream(addr, g.Size())
		defer shutdown()
		publish = func(g *game.Game) {
			if int(g.Generation())%cfg.Stream.Every != 0 {
				return
			}
			if err := hub.Publish(ctx, stream.NewFrame(g)); err != nil {
				slog.Error("failed to publish frame", "error", err)
			}
		}
	}

	// stopReason names the condition that ends the run, or "" to keep going.
	stopReason := func(g *game.Game) string {
		switch {
		case *maxGens > 0 && int(g.Generation()) >= *maxGens:
			return "max generations reached"
		case *stopOnExtinction && (g.Extinct(components.KindPrey) || g.Extinct(components.KindPredator)):
			return "species extinct"
		case ctx.Err() != nil:
			return "interrupted"
		}
		return ""
	}
	done := func() bool {
		reason := stopReason(g)
		if reason == "" {
			return false
		}
		slog.Info(reason,
			"generation", g.Generation(),
			"prey", g.Count(components.KindPrey),
			"predators", g.Count(components.KindPredator),
		)
		return true
	}

	if *headless {
		slog.Info("starting headless simulation",
			"seed", g.Seed(),
			"grid", g.Size(),
			"max_gens", *maxGens,
		)
		for !done() {
			g.Step()
			publish(g)
		}
		return
	}

	// Graphical mode
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), ui.Title(g.Generation(), g.Count(components.KindPrey), g.Count(components.KindPredator)))
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	v := ui.NewViewer(g, int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Derived.CellPixels)
	defer v.Unload()
	v.OnStep = publish
	v.Stop = func(g *game.Game) bool { return stopReason(g) != "" }

	for !rl.WindowShouldClose() && !done() {
		v.Update()
		v.Draw()
	}
}

// newGame starts a fresh game, or resumes the snapshot at restorePath when
// set. A zero seed means the snapshot's seed on restore and a time-based one
// otherwise.
func newGame(cfg *config.Config, restorePath string, opts game.Options) (*game.Game, error) {
	if restorePath == "" {
		if opts.Seed == 0 {
			opts.Seed = time.Now().UnixNano()
		}
		return game.New(cfg, opts)
	}

	snap, err := telemetry.LoadSnapshot(restorePath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", restorePath, err)
	}
	if opts.Seed == 0 {
		opts.Seed = snap.RNGSeed
	}
	g, err := game.Restore(cfg, opts, snap)
	if err != nil {
		return nil, fmt.Errorf("restoring %s: %w", restorePath, err)
	}
	slog.Info("restored snapshot",
		"path", restorePath,
		"generation", snap.Generation,
		"agents", len(snap.Agents),
	)
	return g, nil
}

// startStream serves the websocket hub at /ws and returns a shutdown function.
func startStream(addr string, size int) (*stream.Hub, func()) {
	hub := stream.NewHub(size)
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		slog.Info("streaming frames", "addr", addr, "path", "/ws")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("stream server failed", "error", err)
		}
	}()

	return hub, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		hub.Close()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("stream server shutdown", "error", err)
		}
	}
}
