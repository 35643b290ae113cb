package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/swerve/config"
)

// OutputManager handles CSV output of solves and harness results.
// A nil *OutputManager discards everything.
type OutputManager struct {
	dir            string
	solvesFile     *os.File
	divergenceFile *os.File

	// Track if headers have been written
	solvesHeaderWritten     bool
	divergenceHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "solves.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating solves.csv: %w", err)
	}
	om.solvesFile = f

	f, err = os.Create(filepath.Join(dir, "divergence.csv"))
	if err != nil {
		om.solvesFile.Close()
		return nil, fmt.Errorf("creating divergence.csv: %w", err)
	}
	om.divergenceFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteSolves appends solve records to solves.csv.
func (om *OutputManager) WriteSolves(records []SolveRecord) error {
	if om == nil || len(records) == 0 {
		return nil
	}
	if !om.solvesHeaderWritten {
		if err := gocsv.Marshal(records, om.solvesFile); err != nil {
			return fmt.Errorf("writing solves: %w", err)
		}
		om.solvesHeaderWritten = true
		return nil
	}
	// Subsequent writes skip headers
	if err := gocsv.MarshalWithoutHeaders(records, om.solvesFile); err != nil {
		return fmt.Errorf("writing solves: %w", err)
	}
	return nil
}

// WriteDivergence appends divergence summaries to divergence.csv.
func (om *OutputManager) WriteDivergence(records []Divergence) error {
	if om == nil || len(records) == 0 {
		return nil
	}
	if !om.divergenceHeaderWritten {
		if err := gocsv.Marshal(records, om.divergenceFile); err != nil {
			return fmt.Errorf("writing divergence: %w", err)
		}
		om.divergenceHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.divergenceFile); err != nil {
		return fmt.Errorf("writing divergence: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files. Calling Close again is a no-op.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []**os.File{&om.solvesFile, &om.divergenceFile} {
		if *f == nil {
			continue
		}
		if err := (*f).Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		*f = nil
	}
	return firstErr
}
