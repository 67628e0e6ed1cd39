// Command simserver loads the content tables and plays a batch of
// seeded demo matches, optionally persisting the results.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kjard-games/snow-sub006/internal/config"
	"github.com/kjard-games/snow-sub006/internal/data"
	"github.com/kjard-games/snow-sub006/internal/model"
	"github.com/kjard-games/snow-sub006/internal/sim"
	"github.com/kjard-games/snow-sub006/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (defaults apply when empty)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("simserver failed", "err", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}
	setupLogger(cfg.Log)

	if err := data.Load(); err != nil {
		return fmt.Errorf("loading content: %w", err)
	}
	if cfg.Sim.BalanceOverlay != "" {
		if err := data.ApplyOverlay(cfg.Sim.BalanceOverlay); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("starting batch",
		"matches", cfg.Sim.Matches,
		"seed", cfg.Sim.Seed,
		"tick_ms", cfg.Sim.TickMs)

	results, err := sim.RunBatch(ctx, sim.BatchSpec{
		BaseSeed: cfg.Sim.Seed,
		Matches:  cfg.Sim.Matches,
		TickMs:   cfg.Sim.TickMs,
		MaxTicks: cfg.Sim.MaxTicks,
		Workers:  cfg.Sim.Workers,
		Setup:    demoTeams,
	})
	if err != nil {
		return fmt.Errorf("running batch: %w", err)
	}

	if cfg.Telemetry.DSN != "" {
		store, err := telemetry.Open(ctx, cfg.Telemetry.DSN)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.SaveBatch(ctx, results); err != nil {
			return err
		}
	}

	for _, r := range results {
		slog.Info("result", "seed", r.Seed, "winner", r.Winner, "ticks", r.Ticks, "digest", r.Digest[:16])
	}
	return nil
}

// demoTeams sets up a 2v2 scrimmage used for balance batches.
func demoTeams(m *sim.Match) error {
	type member struct {
		name    string
		team    model.Team
		school  model.School
		loadout []int32
		at      model.Location
	}
	roster := []member{
		{"Juniper", model.TeamAurora, model.SchoolVanguard, []int32{1, 2, 5, 6}, model.Location{X: -100, Y: 0}},
		{"Bram", model.TeamAurora, model.SchoolChorus, []int32{4, 3, 8}, model.Location{X: -100, Y: 60}},
		{"Sable", model.TeamBoreal, model.SchoolPeddler, []int32{1, 9, 10, 7}, model.Location{X: 100, Y: 0}},
		{"Orin", model.TeamBoreal, model.SchoolWildcard, []int32{2, 3, 4}, model.Location{X: 100, Y: 60}},
	}
	for _, mem := range roster {
		if _, err := m.AddCharacter(mem.name, mem.team, mem.school, 100, 50, 30, 20, 15, mem.loadout, mem.at); err != nil {
			return err
		}
	}

	// Scripted opening: both front-liners advance and trade.
	m.QueueMove(1, model.Location{X: -20, Y: 0})
	m.QueueMove(3, model.Location{X: 20, Y: 0})
	m.QueueCast(2, 0, 1)
	m.QueueCast(4, 0, 1)
	return nil
}

func setupLogger(cfg config.Log) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
