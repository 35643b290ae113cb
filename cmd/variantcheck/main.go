// Command variantcheck sweeps a grid of chassis commands through every
// registered kinematics variant and reports where each disagrees with the
// canonical solver.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/pthm-cable/swerve/config"
	"github.com/pthm-cable/swerve/harness"
	"github.com/pthm-cable/swerve/kinematics"
	"github.com/pthm-cable/swerve/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	steps := flag.Int("steps", 0, "Samples per axis (0 = use config)")
	workers := flag.Int("workers", -1, "Concurrent variants (-1 = use config, 0 = GOMAXPROCS)")
	outputDir := flag.String("output", "", "Output directory for CSV results (empty = config output.dir)")
	keepSolves := flag.Bool("solves", false, "Also write every variant solve to solves.csv")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(*configPath, *steps, *workers, *outputDir, *keepSolves); err != nil {
		slog.Error("variant check failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, steps, workers int, outputDir string, keepSolves bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	grid := harness.Grid{Min: cfg.Harness.Min, Max: cfg.Harness.Max, Steps: cfg.Harness.Steps}
	if steps > 0 {
		grid.Steps = steps
	}
	opts := harness.Options{
		ToleranceDeg: cfg.Harness.ToleranceDeg,
		Workers:      cfg.Harness.Workers,
		KeepSolves:   keepSolves,
	}
	if workers >= 0 {
		opts.Workers = workers
	}
	if outputDir == "" {
		outputDir = cfg.Output.Dir
	}

	canonical, err := cfg.Solver()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("starting variant check",
		"trackwidth", cfg.Derived.Geometry.Trackwidth,
		"wheelbase", cfg.Derived.Geometry.Wheelbase,
		"convention", cfg.Derived.Convention.String(),
		"steps", grid.Steps,
		"samples", grid.Steps*grid.Steps*grid.Steps,
		"tolerance_deg", opts.ToleranceDeg,
	)

	start := time.Now()
	reports, err := harness.Run(ctx, canonical, cfg.Variants(), cfg.Derived.Geometry, grid, opts)
	if err != nil {
		return err
	}

	om, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return err
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		return err
	}

	disagreeing := 0
	for _, rep := range reports {
		for _, m := range kinematics.Modules {
			d := rep.Divergence[m]
			if !d.Agrees() {
				slog.Warn("module diverges", "divergence", d)
			}
		}
		if !rep.Agrees() {
			disagreeing++
		}
		if err := om.WriteDivergence(rep.Divergence[:]); err != nil {
			return err
		}
		if err := om.WriteSolves(rep.Solves); err != nil {
			return err
		}
	}

	slog.Info("variant check complete",
		"variants", len(reports),
		"disagreeing", disagreeing,
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
		"output", om.Dir(),
	)
	return om.Close()
}
