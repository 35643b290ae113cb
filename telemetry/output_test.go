package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/swerve/config"
	"github.com/pthm-cable/swerve/kinematics"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	require.NoError(t, err)
	assert.Nil(t, om)

	// All methods are no-ops on nil.
	assert.NoError(t, om.WriteSolves([]SolveRecord{{}}))
	assert.NoError(t, om.WriteDivergence([]Divergence{{}}))
	assert.NoError(t, om.WriteConfig(nil))
	assert.Equal(t, "", om.Dir())
	assert.NoError(t, om.Close())
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	om, err := NewOutputManager(dir)
	require.NoError(t, err)

	req := kinematics.TranslationRequest{VectorX: 0.5, Omega: -0.25}
	rec := NewSolveRecord("canonical", req, kinematics.Default().SolveRequest(req))
	require.NoError(t, om.WriteSolves([]SolveRecord{rec}))
	require.NoError(t, om.WriteSolves([]SolveRecord{rec, rec}))

	div := ComputeDivergence("fixed-square", kinematics.LeftFront, []float64{0, 0}, 0.001)
	require.NoError(t, om.WriteDivergence([]Divergence{div}))

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.NoError(t, om.WriteConfig(cfg))
	require.NoError(t, om.Close())
	require.NoError(t, om.Close())

	data, err := os.ReadFile(filepath.Join(dir, "solves.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "variant,vector_x,vector_y,omega"))
	assert.Equal(t, 1, strings.Count(string(data), "left_front_rad"))

	data, err = os.ReadFile(filepath.Join(dir, "divergence.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "fixed-square,leftFront,2,0")

	_, err = os.Stat(filepath.Join(dir, "config.yaml"))
	assert.NoError(t, err)
}
