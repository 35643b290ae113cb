// Package harness sweeps a grid of chassis commands through every
// registered kinematics variant and measures how far each one drifts from
// the canonical solver.
package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/swerve/kinematics"
	"github.com/pthm-cable/swerve/telemetry"
)

// ErrInvalidGrid is returned for a grid with no samples or an inverted range.
var ErrInvalidGrid = errors.New("harness: invalid grid")

// Grid samples every axis (vx, vy, omega) at Steps evenly spaced points in
// [Min, Max].
type Grid struct {
	Min, Max float64
	Steps    int
}

// Validate checks the grid produces at least one sample.
func (g Grid) Validate() error {
	if g.Steps < 1 {
		return fmt.Errorf("%w: steps %d", ErrInvalidGrid, g.Steps)
	}
	if g.Min > g.Max {
		return fmt.Errorf("%w: min %v > max %v", ErrInvalidGrid, g.Min, g.Max)
	}
	return nil
}

// axis returns the sample points along one axis.
func (g Grid) axis() []float64 {
	if g.Steps == 1 {
		return []float64{(g.Min + g.Max) / 2}
	}
	pts := make([]float64, g.Steps)
	step := (g.Max - g.Min) / float64(g.Steps-1)
	for i := range pts {
		pts[i] = g.Min + float64(i)*step
	}
	pts[len(pts)-1] = g.Max
	return pts
}

// Samples returns the cartesian product of the axis points, Steps³ requests.
func (g Grid) Samples() []kinematics.TranslationRequest {
	pts := g.axis()
	out := make([]kinematics.TranslationRequest, 0, len(pts)*len(pts)*len(pts))
	for _, vx := range pts {
		for _, vy := range pts {
			for _, omega := range pts {
				out = append(out, kinematics.TranslationRequest{VectorX: vx, VectorY: vy, Omega: omega})
			}
		}
	}
	return out
}

// Options tunes a harness run.
type Options struct {
	ToleranceDeg float64
	Workers      int // 0 = GOMAXPROCS
	// KeepSolves retains every variant solve in the report.
	KeepSolves bool
}

// Report is the outcome for one variant.
type Report struct {
	Variant    string
	Divergence [kinematics.NumModules]telemetry.Divergence
	Solves     []telemetry.SolveRecord
}

// Agrees reports whether every module stayed within tolerance.
func (r Report) Agrees() bool {
	for _, d := range r.Divergence {
		if !d.Agrees() {
			return false
		}
	}
	return true
}

// Mismatches is the total mismatch count across modules.
func (r Report) Mismatches() int {
	n := 0
	for _, d := range r.Divergence {
		n += d.Mismatches
	}
	return n
}

// Run compares every variant with canonical over the grid. Variants are
// evaluated concurrently; reports come back in the order of variants.
func Run(ctx context.Context, canonical *kinematics.Solver, variants []kinematics.Variant, geom kinematics.Geometry, grid Grid, opts Options) ([]Report, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	samples := grid.Samples()
	want := make([]kinematics.ModuleAngles, len(samples))
	for i, r := range samples {
		want[i] = canonical.SolveRequest(r)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	reports := make([]Report, len(variants))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, v := range variants {
		i, v := i, v
		g.Go(func() error {
			s, err := v.Solver(geom)
			if err != nil {
				return err
			}
			rep, err := compare(ctx, v.Name, s, samples, want, opts)
			if err != nil {
				return err
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, rep := range reports {
		slog.Info("variant compared",
			"variant", rep.Variant,
			"samples", len(samples),
			"mismatches", rep.Mismatches(),
			"agrees", rep.Agrees(),
		)
	}
	return reports, nil
}

// checkEvery is how many samples compare evaluates between context checks.
const checkEvery = 1024

func compare(ctx context.Context, name string, s *kinematics.Solver, samples []kinematics.TranslationRequest, want []kinematics.ModuleAngles, opts Options) (Report, error) {
	rep := Report{Variant: name}
	var errs [kinematics.NumModules][]float64
	for m := range errs {
		errs[m] = make([]float64, len(samples))
	}
	if opts.KeepSolves {
		rep.Solves = make([]telemetry.SolveRecord, 0, len(samples))
	}

	for i, r := range samples {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Report{}, err
			}
		}
		got := s.SolveRequest(r)
		for _, m := range kinematics.Modules {
			errs[m][i] = telemetry.AngularError(got[m], want[i][m])
		}
		if opts.KeepSolves {
			rep.Solves = append(rep.Solves, telemetry.NewSolveRecord(name, r, got))
		}
	}

	for _, m := range kinematics.Modules {
		rep.Divergence[m] = telemetry.ComputeDivergence(name, m, errs[m], opts.ToleranceDeg)
	}
	return rep, nil
}
