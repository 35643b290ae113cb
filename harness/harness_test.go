package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/swerve/kinematics"
)

func TestGridSamples(t *testing.T) {
	g := Grid{Min: -1, Max: 1, Steps: 3}
	require.NoError(t, g.Validate())

	samples := g.Samples()
	require.Len(t, samples, 27)
	assert.Equal(t, kinematics.TranslationRequest{VectorX: -1, VectorY: -1, Omega: -1}, samples[0])
	assert.Equal(t, kinematics.TranslationRequest{VectorX: 0, VectorY: 0, Omega: 0}, samples[13])
	assert.Equal(t, kinematics.TranslationRequest{VectorX: 1, VectorY: 1, Omega: 1}, samples[26])

	single := Grid{Min: -1, Max: 1, Steps: 1}.Samples()
	require.Len(t, single, 1)
	assert.Equal(t, kinematics.TranslationRequest{}, single[0])
}

func TestGridValidate(t *testing.T) {
	assert.ErrorIs(t, Grid{Min: 0, Max: 1, Steps: 0}.Validate(), ErrInvalidGrid)
	assert.ErrorIs(t, Grid{Min: 2, Max: 1, Steps: 3}.Validate(), ErrInvalidGrid)
}

func runAll(t *testing.T, geom kinematics.Geometry, opts Options) map[string]Report {
	t.Helper()
	canonical, err := kinematics.NewSolver(geom)
	require.NoError(t, err)
	reports, err := Run(context.Background(), canonical, kinematics.Variants(), geom,
		Grid{Min: -1, Max: 1, Steps: 5}, opts)
	require.NoError(t, err)
	require.Len(t, reports, len(kinematics.Variants()))

	out := make(map[string]Report, len(reports))
	for _, r := range reports {
		out[r.Variant] = r
	}
	return out
}

func TestRunSquareChassis(t *testing.T) {
	reports := runAll(t, kinematics.DefaultGeometry, Options{ToleranceDeg: 1e-6, Workers: 2})

	assert.True(t, reports["canonical"].Agrees())
	assert.True(t, reports["fixed-square"].Agrees())
	assert.True(t, reports["swapped-axes"].Agrees())
	assert.False(t, reports["mirrored-labels"].Agrees())

	for _, d := range reports["canonical"].Divergence {
		assert.Equal(t, 125, d.Samples)
		assert.Zero(t, d.MaxDeg)
	}
}

func TestRunNonSquareChassis(t *testing.T) {
	geom := kinematics.Geometry{Trackwidth: 24, Wheelbase: 10}
	reports := runAll(t, geom, Options{ToleranceDeg: 1e-6, KeepSolves: true})

	assert.True(t, reports["canonical"].Agrees())
	assert.False(t, reports["fixed-square"].Agrees())
	assert.False(t, reports["swapped-axes"].Agrees())
	assert.False(t, reports["mirrored-labels"].Agrees())
	assert.Len(t, reports["swapped-axes"].Solves, 125)
	assert.Positive(t, reports["swapped-axes"].Mismatches())
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, kinematics.Default(), kinematics.Variants(), kinematics.DefaultGeometry,
		Grid{Min: -1, Max: 1, Steps: 3}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunInvalidVariant(t *testing.T) {
	bad := kinematics.Variant{Name: "broken", Assignment: kinematics.Assignment{}}
	_, err := Run(context.Background(), kinematics.Default(), []kinematics.Variant{bad},
		kinematics.DefaultGeometry, Grid{Min: -1, Max: 1, Steps: 2}, Options{})
	assert.ErrorIs(t, err, kinematics.ErrInconsistentAssignment)
}
