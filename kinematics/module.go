// Package kinematics computes inverse swerve-drive kinematics: the steering
// angle of each of four independently steered wheel modules for a commanded
// chassis translation and rotation rate.
package kinematics

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// ModuleID identifies one of the four wheel modules on the chassis.
type ModuleID uint8

const (
	LeftFront ModuleID = iota
	RightFront
	LeftRear
	RightRear

	// NumModules is the number of wheel modules on a swerve chassis.
	NumModules = 4
)

// Modules lists every module identifier in declaration order.
var Modules = [NumModules]ModuleID{LeftFront, RightFront, LeftRear, RightRear}

var moduleNames = [NumModules]string{
	LeftFront:  "leftFront",
	RightFront: "rightFront",
	LeftRear:   "leftRear",
	RightRear:  "rightRear",
}

// String returns the module identifier, e.g. "leftFront".
func (m ModuleID) String() string {
	if int(m) < NumModules {
		return moduleNames[m]
	}
	return fmt.Sprintf("ModuleID(%d)", uint8(m))
}

// Short returns the two letter label used in compact output (LF, RF, LR, RR).
func (m ModuleID) Short() string {
	switch m {
	case LeftFront:
		return "LF"
	case RightFront:
		return "RF"
	case LeftRear:
		return "LR"
	case RightRear:
		return "RR"
	}
	return "??"
}

// ParseModuleID accepts the camelCase identifier ("leftFront") or the
// snake_case config spelling ("left_front").
func ParseModuleID(s string) (ModuleID, error) {
	norm := strings.ToLower(strings.ReplaceAll(s, "_", ""))
	for _, m := range Modules {
		if strings.ToLower(moduleNames[m]) == norm {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownModule, s)
}

// ModuleAngles holds one steering angle in radians per module, indexed by
// ModuleID. Every module always has exactly one entry.
type ModuleAngles [NumModules]float64

// Get returns the angle of module m.
func (a ModuleAngles) Get(m ModuleID) float64 { return a[m] }

// Map returns the angles keyed by module identifier.
func (a ModuleAngles) Map() map[string]float64 {
	out := make(map[string]float64, NumModules)
	for _, m := range Modules {
		out[m.String()] = a[m]
	}
	return out
}

// Degrees returns the angles converted to degrees.
func (a ModuleAngles) Degrees() ModuleAngles {
	var out ModuleAngles
	for i, v := range a {
		out[i] = v * radToDeg
	}
	return out
}

// Normalized returns the angles wrapped into (-π, π].
func (a ModuleAngles) Normalized() ModuleAngles {
	var out ModuleAngles
	for i, v := range a {
		out[i] = Normalize(v)
	}
	return out
}

// Headings returns the unit direction vector (cos, sin) of every module.
func (a ModuleAngles) Headings() [NumModules]r2.Vec {
	var out [NumModules]r2.Vec
	for i, v := range a {
		out[i] = r2.Vec{X: math.Cos(v), Y: math.Sin(v)}
	}
	return out
}
