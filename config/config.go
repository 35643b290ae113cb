// Package config provides configuration loading and access for the solver
// and its command line tools.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/swerve/kinematics"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is returned when a loaded configuration cannot be used.
var ErrInvalid = errors.New("config: invalid")

// Config holds all configuration parameters.
type Config struct {
	Geometry   GeometryConfig   `yaml:"geometry"`
	Kinematics KinematicsConfig `yaml:"kinematics"`
	Input      InputConfig      `yaml:"input"`
	Harness    HarnessConfig    `yaml:"harness"`
	Output     OutputConfig     `yaml:"output"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// GeometryConfig holds chassis dimensions.
type GeometryConfig struct {
	Trackwidth float64 `yaml:"trackwidth"`
	Wheelbase  float64 `yaml:"wheelbase"`
}

// KinematicsConfig selects the term convention and the term-to-module table.
type KinematicsConfig struct {
	AxisConvention string                    `yaml:"axis_convention"`
	Assignment     map[string]TermPairConfig `yaml:"assignment"` // module (snake_case) -> pair
}

// TermPairConfig names the atan2 arguments for one module.
type TermPairConfig struct {
	Longitudinal string `yaml:"longitudinal"`
	Lateral      string `yaml:"lateral"`
}

// InputConfig holds caller-side input policy.
type InputConfig struct {
	Clamp bool `yaml:"clamp"`
}

// HarnessConfig holds the variant validation sweep parameters.
type HarnessConfig struct {
	Min          float64  `yaml:"min"`
	Max          float64  `yaml:"max"`
	Steps        int      `yaml:"steps"`         // samples per axis
	ToleranceDeg float64  `yaml:"tolerance_deg"` // angular error counted as a mismatch
	Workers      int      `yaml:"workers"`       // 0 = GOMAXPROCS
	Variants     []string `yaml:"variants"`      // empty = all
}

// OutputConfig holds output settings.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// DerivedConfig holds values computed from the loaded configuration.
type DerivedConfig struct {
	Geometry   kinematics.Geometry
	Assignment kinematics.Assignment
	Convention kinematics.AxisConvention
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
		// An assignment table in the file replaces the default table whole.
		var override struct {
			Kinematics struct {
				Assignment map[string]TermPairConfig `yaml:"assignment"`
			} `yaml:"kinematics"`
		}
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
		if override.Kinematics.Assignment != nil {
			cfg.Kinematics.Assignment = override.Kinematics.Assignment
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived resolves the geometry, assignment table and convention,
// rejecting anything the solver would refuse.
func (c *Config) computeDerived() error {
	geom := kinematics.Geometry{
		Trackwidth: c.Geometry.Trackwidth,
		Wheelbase:  c.Geometry.Wheelbase,
	}
	if err := geom.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	conv, err := kinematics.ParseAxisConvention(c.Kinematics.AxisConvention)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	var table kinematics.Assignment
	var set [kinematics.NumModules]bool
	for name, pc := range c.Kinematics.Assignment {
		m, err := kinematics.ParseModuleID(name)
		if err != nil {
			return fmt.Errorf("%w: assignment: %w", ErrInvalid, err)
		}
		lon, err := kinematics.ParseTerm(pc.Longitudinal)
		if err != nil {
			return fmt.Errorf("%w: assignment %s: %w", ErrInvalid, name, err)
		}
		lat, err := kinematics.ParseTerm(pc.Lateral)
		if err != nil {
			return fmt.Errorf("%w: assignment %s: %w", ErrInvalid, name, err)
		}
		if set[m] {
			return fmt.Errorf("%w: assignment names module %s twice", ErrInvalid, m)
		}
		table[m] = kinematics.TermPair{Longitudinal: lon, Lateral: lat}
		set[m] = true
	}
	for _, m := range kinematics.Modules {
		if !set[m] {
			return fmt.Errorf("%w: assignment missing module %s", ErrInvalid, m)
		}
	}
	if err := table.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if c.Harness.Steps < 1 {
		return fmt.Errorf("%w: harness.steps must be >= 1, got %d", ErrInvalid, c.Harness.Steps)
	}
	if c.Harness.Min > c.Harness.Max {
		return fmt.Errorf("%w: harness.min %v > harness.max %v", ErrInvalid, c.Harness.Min, c.Harness.Max)
	}
	for _, name := range c.Harness.Variants {
		if _, err := kinematics.LookupVariant(name); err != nil {
			return fmt.Errorf("%w: harness.variants: %w", ErrInvalid, err)
		}
	}

	c.Derived = DerivedConfig{
		Geometry:   geom,
		Assignment: table,
		Convention: conv,
	}
	return nil
}

// Solver builds the solver described by the configuration.
func (c *Config) Solver() (*kinematics.Solver, error) {
	return kinematics.NewSolver(c.Derived.Geometry,
		kinematics.WithAssignment(c.Derived.Assignment),
		kinematics.WithAxisConvention(c.Derived.Convention),
	)
}

// Variants returns the variants selected for the harness.
func (c *Config) Variants() []kinematics.Variant {
	if len(c.Harness.Variants) == 0 {
		return kinematics.Variants()
	}
	out := make([]kinematics.Variant, 0, len(c.Harness.Variants))
	for _, name := range c.Harness.Variants {
		v, _ := kinematics.LookupVariant(name) // checked in computeDerived
		out = append(out, v)
	}
	return out
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
