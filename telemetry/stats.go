// Package telemetry computes variant divergence statistics and writes
// solve and harness results to CSV.
package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/swerve/kinematics"
)

// Divergence summarizes the angular error of one variant's module against
// the canonical solver over a sweep.
type Divergence struct {
	Variant    string  `csv:"variant"`
	Module     string  `csv:"module"`
	Samples    int     `csv:"samples"`
	Mismatches int     `csv:"mismatches"`
	MeanDeg    float64 `csv:"mean_deg"`
	P50Deg     float64 `csv:"p50_deg"`
	P90Deg     float64 `csv:"p90_deg"`
	MaxDeg     float64 `csv:"max_deg"`
}

// AngularError returns the absolute difference between two angles in
// degrees, measured the short way around the circle, in [0, 180].
func AngularError(got, want float64) float64 {
	return math.Abs(kinematics.Normalize(got-want)) * 180 / math.Pi
}

// ComputeDivergence summarizes errorsDeg. Errors strictly above toleranceDeg
// count as mismatches. An empty slice yields a zero summary.
func ComputeDivergence(variant string, module kinematics.ModuleID, errorsDeg []float64, toleranceDeg float64) Divergence {
	d := Divergence{
		Variant: variant,
		Module:  module.String(),
		Samples: len(errorsDeg),
	}
	if len(errorsDeg) == 0 {
		return d
	}

	sorted := make([]float64, len(errorsDeg))
	copy(sorted, errorsDeg)
	sort.Float64s(sorted)

	for _, e := range sorted {
		if e > toleranceDeg {
			d.Mismatches++
		}
	}
	d.MeanDeg = stat.Mean(sorted, nil)
	d.P50Deg = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	d.P90Deg = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	d.MaxDeg = floats.Max(sorted)
	return d
}

// Agrees reports whether no sample exceeded the tolerance.
func (d Divergence) Agrees() bool { return d.Mismatches == 0 }

// LogValue implements slog.LogValuer for structured logging.
func (d Divergence) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("variant", d.Variant),
		slog.String("module", d.Module),
		slog.Int("samples", d.Samples),
		slog.Int("mismatches", d.Mismatches),
		slog.Float64("mean_deg", d.MeanDeg),
		slog.Float64("p50_deg", d.P50Deg),
		slog.Float64("p90_deg", d.P90Deg),
		slog.Float64("max_deg", d.MaxDeg),
	)
}

// SolveRecord is one solve written to solves.csv.
type SolveRecord struct {
	Variant string  `csv:"variant"`
	VectorX float64 `csv:"vector_x"`
	VectorY float64 `csv:"vector_y"`
	Omega   float64 `csv:"omega"`

	LeftFrontRad  float64 `csv:"left_front_rad"`
	RightFrontRad float64 `csv:"right_front_rad"`
	LeftRearRad   float64 `csv:"left_rear_rad"`
	RightRearRad  float64 `csv:"right_rear_rad"`

	LeftFrontDeg  float64 `csv:"left_front_deg"`
	RightFrontDeg float64 `csv:"right_front_deg"`
	LeftRearDeg   float64 `csv:"left_rear_deg"`
	RightRearDeg  float64 `csv:"right_rear_deg"`
}

// NewSolveRecord flattens a request and its module angles into a CSV row.
func NewSolveRecord(variant string, r kinematics.TranslationRequest, a kinematics.ModuleAngles) SolveRecord {
	deg := a.Degrees()
	return SolveRecord{
		Variant: variant,
		VectorX: r.VectorX,
		VectorY: r.VectorY,
		Omega:   r.Omega,

		LeftFrontRad:  a[kinematics.LeftFront],
		RightFrontRad: a[kinematics.RightFront],
		LeftRearRad:   a[kinematics.LeftRear],
		RightRearRad:  a[kinematics.RightRear],

		LeftFrontDeg:  deg[kinematics.LeftFront],
		RightFrontDeg: deg[kinematics.RightFront],
		LeftRearDeg:   deg[kinematics.LeftRear],
		RightRearDeg:  deg[kinematics.RightRear],
	}
}
