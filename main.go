package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pthm-cable/swerve/config"
	"github.com/pthm-cable/swerve/kinematics"
	"github.com/pthm-cable/swerve/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	vectorX := flag.Float64("x", 0, "Robot-frame X translation command")
	vectorY := flag.Float64("y", 0, "Robot-frame Y translation command")
	omega := flag.Float64("omega", 0, "Rotation rate command")
	variantName := flag.String("variant", "", "Solve with a registered variant instead of the configured solver")
	normalize := flag.Bool("normalize", false, "Wrap angles into (-180, 180] before printing")
	outputDir := flag.String("output-dir", "", "Directory for solves.csv and config snapshot (empty = config output.dir)")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	name := "configured"
	solver, err := cfg.Solver()
	if *variantName != "" {
		var v kinematics.Variant
		v, err = kinematics.LookupVariant(*variantName)
		if err == nil {
			solver, err = v.Solver(cfg.Derived.Geometry)
		}
		name = *variantName
	}
	if err != nil {
		slog.Error("failed to build solver", "variant", name, "error", err)
		os.Exit(1)
	}

	req := kinematics.TranslationRequest{VectorX: *vectorX, VectorY: *vectorY, Omega: *omega}
	if cfg.Input.Clamp {
		req = req.Clamped()
	}

	angles := solver.SolveRequest(req)
	if *normalize {
		angles = angles.Normalized()
	}

	geom := solver.Geometry()
	terms := solver.Terms(req.VectorX, req.VectorY, req.Omega)
	slog.Info("solved",
		"solver", name,
		"vector_x", req.VectorX,
		"vector_y", req.VectorY,
		"omega", req.Omega,
		"trackwidth", geom.Trackwidth,
		"wheelbase", geom.Wheelbase,
		"convention", solver.Convention().String(),
		"terms", terms,
	)

	writeTable(os.Stdout, solver.Assignment(), angles)

	dir := *outputDir
	if dir == "" {
		dir = cfg.Output.Dir
	}
	om, err := telemetry.NewOutputManager(dir)
	if err != nil {
		slog.Error("failed to create output", "dir", dir, "error", err)
		os.Exit(1)
	}
	defer om.Close()

	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}
	if err := om.WriteSolves([]telemetry.SolveRecord{telemetry.NewSolveRecord(name, req, angles)}); err != nil {
		slog.Error("failed to write solve", "error", err)
	}
	if om != nil {
		slog.Info("output written", "dir", om.Dir())
	}
}

// tableOrder matches the calculator's LF, RF, RR, LR listing.
var tableOrder = []kinematics.ModuleID{
	kinematics.LeftFront, kinematics.RightFront, kinematics.RightRear, kinematics.LeftRear,
}

// writeTable prints one line per module: the atan2 term pair, the angle in
// radians and degrees, and the unit heading vector (cos, sin).
func writeTable(w io.Writer, table kinematics.Assignment, angles kinematics.ModuleAngles) {
	deg := angles.Degrees()
	headings := angles.Headings()
	for _, m := range tableOrder {
		h := headings[m]
		fmt.Fprintf(w, "%-11s %s  %s  %8.4f rad | %9.3f°  heading (%+.3f, %+.3f)\n",
			m.String()+":", m.Short(), table[m], angles[m], deg[m], h.X, h.Y)
	}
}
