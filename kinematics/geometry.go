package kinematics

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidGeometry        = errors.New("kinematics: invalid geometry")
	ErrInconsistentAssignment = errors.New("kinematics: inconsistent term assignment")
	ErrUnknownModule          = errors.New("kinematics: unknown module")
	ErrUnknownTerm            = errors.New("kinematics: unknown term")
	ErrUnknownVariant         = errors.New("kinematics: unknown variant")
	ErrUnknownConvention      = errors.New("kinematics: unknown axis convention")
)

// Geometry describes the chassis footprint in an arbitrary length unit.
type Geometry struct {
	Trackwidth float64 // left-right distance between module centers
	Wheelbase  float64 // front-back distance between module centers
}

// DefaultGeometry is the 8 x 8 inch square chassis.
var DefaultGeometry = Geometry{Trackwidth: 8, Wheelbase: 8}

// Diagonal returns the chassis diagonal, hypot(Trackwidth, Wheelbase).
func (g Geometry) Diagonal() float64 {
	return math.Hypot(g.Trackwidth, g.Wheelbase)
}

// Validate checks both dimensions are finite and positive.
func (g Geometry) Validate() error {
	if !(g.Trackwidth > 0) || math.IsInf(g.Trackwidth, 0) {
		return fmt.Errorf("%w: trackwidth %v", ErrInvalidGeometry, g.Trackwidth)
	}
	if !(g.Wheelbase > 0) || math.IsInf(g.Wheelbase, 0) {
		return fmt.Errorf("%w: wheelbase %v", ErrInvalidGeometry, g.Wheelbase)
	}
	return nil
}

// AxisConvention selects which chassis dimension scales the rotational
// contribution to the X terms (A, B).
type AxisConvention uint8

const (
	// TrackwidthOnX feeds Trackwidth into A/B and Wheelbase into C/D.
	TrackwidthOnX AxisConvention = iota
	// WheelbaseOnX feeds Wheelbase into A/B and Trackwidth into C/D.
	WheelbaseOnX
)

func (c AxisConvention) String() string {
	switch c {
	case TrackwidthOnX:
		return "trackwidth_on_x"
	case WheelbaseOnX:
		return "wheelbase_on_x"
	}
	return fmt.Sprintf("AxisConvention(%d)", uint8(c))
}

// ParseAxisConvention parses the String form. An empty string is TrackwidthOnX.
func ParseAxisConvention(s string) (AxisConvention, error) {
	switch s {
	case "", "trackwidth_on_x":
		return TrackwidthOnX, nil
	case "wheelbase_on_x":
		return WheelbaseOnX, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownConvention, s)
}

// TranslationRequest is a chassis motion command: robot-frame translation
// plus rotation rate, conventionally each in [-1, 1].
type TranslationRequest struct {
	VectorX float64 `csv:"vector_x" yaml:"vector_x"`
	VectorY float64 `csv:"vector_y" yaml:"vector_y"`
	Omega   float64 `csv:"omega" yaml:"omega"`
}

// Clamped returns a copy with every component clamped to [-1, 1].
// The solver itself never clamps.
func (r TranslationRequest) Clamped() TranslationRequest {
	return TranslationRequest{
		VectorX: clamp(r.VectorX, -1, 1),
		VectorY: clamp(r.VectorY, -1, 1),
		Omega:   clamp(r.Omega, -1, 1),
	}
}

// Clamp x between a and b, assume a <= b
func clamp(x, a, b float64) float64 {
	return math.Min(b, math.Max(x, a))
}
