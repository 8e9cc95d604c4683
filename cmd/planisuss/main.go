// Command planisuss runs the Planisuss ecosystem simulation: Vegetob,
// Erbast and Carviz on a water-bounded continent, one day at a time.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/planisuss/internal/api"
	"github.com/talgya/planisuss/internal/config"
	"github.com/talgya/planisuss/internal/engine"
	"github.com/talgya/planisuss/internal/persistence"
	"github.com/talgya/planisuss/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	days := flag.Int("days", 0, "Stop after this many days (0 = run until interrupted)")
	seed := flag.Int64("seed", 42, "World generation and simulation seed")
	dbPath := flag.String("db", "data/planisuss.db", "SQLite run database (empty = no recording)")
	csvPath := flag.String("csv", "", "Write the day series to this CSV file on exit")
	port := flag.Int("port", 8080, "HTTP API port (0 = no API)")
	interval := flag.Duration("interval", 0, "Wall-clock pacing per day (0 = flat out)")
	logEvery := flag.Int("log-every", 10, "Log world aggregates every N days")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("Planisuss — predator, prey and vegetation")

	// ── Configuration ─────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}

	// ── Database ──────────────────────────────────────────────────────
	var db *persistence.DB
	if *dbPath != "" {
		os.MkdirAll("data", 0755)
		db, err = persistence.Open(*dbPath)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		db.SaveMeta("seed", strconv.FormatInt(*seed, 10))
		db.SaveMeta("started_at", time.Now().UTC().Format(time.RFC3339))
		slog.Info("database opened", "path", *dbPath)
	}

	// ── World ─────────────────────────────────────────────────────────
	slog.Info("generating continent...",
		"rows", cfg.World.Rows, "cols", cfg.World.Cols,
		"generator", cfg.World.Generator, "seed", *seed)
	world := engine.New(cfg, *seed)

	ground := len(world.Grid.GroundCells())
	erbast := 0
	for _, g := range world.Herds {
		erbast += g.Len()
	}
	carviz := 0
	for _, g := range world.Prides {
		carviz += g.Len()
	}
	slog.Info("world ready",
		"ground_cells", ground,
		"herds", len(world.Herds),
		"prides", len(world.Prides),
		"erbast", erbast,
		"carviz", carviz,
	)

	// ── Runner ────────────────────────────────────────────────────────
	runner := engine.NewRunner(world)
	runner.Interval = *interval

	runner.OnDay = func(stats telemetry.DayStats) {
		if db != nil {
			var todays []engine.Event
			for _, e := range runner.RecentEvents(0) {
				if e.Day == stats.Day {
					todays = append(todays, e)
				}
			}
			if err := db.RecordDay(stats, todays); err != nil {
				slog.Error("recording day failed", "day", stats.Day, "error", err)
			}
		}

		if *logEvery > 0 && stats.Day%*logEvery == 0 {
			slog.Info("day complete",
				"day", stats.Day,
				"erbast", humanize.Comma(int64(stats.ErbastPopulation)),
				"carviz", humanize.Comma(int64(stats.CarvizPopulation)),
				"vegetob_mean", fmt.Sprintf("%.1f", stats.VegetobMean),
			)
		}

		extinct := stats.ErbastPopulation == 0 && stats.CarvizPopulation == 0
		if extinct {
			slog.Info("both species extinct", "day", stats.Day)
		}
		if extinct || (*days > 0 && stats.Day >= *days) {
			runner.Stop()
		}
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	if *port > 0 {
		adminKey := os.Getenv("PLANISUSS_ADMIN_KEY")
		if adminKey == "" {
			slog.Warn("PLANISUSS_ADMIN_KEY not set — admin POST endpoints will be disabled")
		}
		apiServer := &api.Server{
			Runner:   runner,
			Port:     *port,
			AdminKey: adminKey,
		}
		apiServer.Start()
		fmt.Printf("API: http://localhost:%d/api/v1/status\n", *port)
	}

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		runner.Stop()
	}()

	fmt.Printf("\nPlanisuss is alive: %s erbast and %s carviz on %s ground cells.\n",
		humanize.Comma(int64(erbast)), humanize.Comma(int64(carviz)), humanize.Comma(int64(ground)))
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	runner.Run()

	// ── Shutdown ──────────────────────────────────────────────────────
	if *csvPath != "" {
		if err := telemetry.ExportCSV(*csvPath, runner.Series()); err != nil {
			slog.Error("CSV export failed", "path", *csvPath, "error", err)
		} else {
			slog.Info("day series exported", "path", *csvPath, "days", len(runner.Series()))
		}
	}
	if db != nil {
		db.SaveMeta("last_day", strconv.Itoa(runner.Day()-1))
	}

	fmt.Println("Simulation stopped.")
}
