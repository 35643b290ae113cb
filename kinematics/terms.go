package kinematics

import (
	"fmt"
	"strings"
)

// Term names one of the four intermediate velocity terms.
//
//	A = vx - ω·kx    B = vx + ω·kx
//	C = vy - ω·ky    D = vy + ω·ky
//
// where kx and ky are the rotational scale factors chosen by the
// AxisConvention.
type Term uint8

const (
	TermA Term = iota
	TermB
	TermC
	TermD
)

// Axis is the velocity axis a term belongs to.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

// Axis reports AxisX for A and B, AxisY for C and D.
func (t Term) Axis() Axis {
	if t == TermA || t == TermB {
		return AxisX
	}
	return AxisY
}

// Leading reports whether the term adds the rotational contribution (B, D).
func (t Term) Leading() bool { return t == TermB || t == TermD }

func (t Term) String() string {
	switch t {
	case TermA:
		return "A"
	case TermB:
		return "B"
	case TermC:
		return "C"
	case TermD:
		return "D"
	}
	return fmt.Sprintf("Term(%d)", uint8(t))
}

// ParseTerm parses a single letter term name, case-insensitive.
func ParseTerm(s string) (Term, error) {
	switch strings.ToUpper(s) {
	case "A":
		return TermA, nil
	case "B":
		return TermB, nil
	case "C":
		return TermC, nil
	case "D":
		return TermD, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTerm, s)
}

// Terms holds the computed values of A, B, C and D.
type Terms [4]float64

// TermPair is the atan2 argument pair for one module:
// angle = atan2(Longitudinal, Lateral).
type TermPair struct {
	Longitudinal Term
	Lateral      Term
}

func (p TermPair) String() string {
	return "atan2(" + p.Longitudinal.String() + ", " + p.Lateral.String() + ")"
}

// Assignment maps every module to the term pair that produces its angle.
type Assignment [NumModules]TermPair

// CanonicalAssignment is the reference table:
//
//	leftFront  = atan2(B, C)
//	rightFront = atan2(B, D)
//	rightRear  = atan2(A, D)
//	leftRear   = atan2(A, C)
var CanonicalAssignment = Assignment{
	LeftFront:  {Longitudinal: TermB, Lateral: TermC},
	RightFront: {Longitudinal: TermB, Lateral: TermD},
	RightRear:  {Longitudinal: TermA, Lateral: TermD},
	LeftRear:   {Longitudinal: TermA, Lateral: TermC},
}

// Validate checks the table is geometrically self-consistent: each pair
// takes an X term then a Y term, and the four pairs use every (X, Y)
// combination exactly once.
func (a Assignment) Validate() error {
	var seen [2][2]ModuleID
	var used [2][2]bool
	for _, m := range Modules {
		p := a[m]
		if p.Longitudinal > TermD || p.Lateral > TermD {
			return fmt.Errorf("%w: %s uses an undefined term", ErrInconsistentAssignment, m)
		}
		if p.Longitudinal.Axis() != AxisX || p.Lateral.Axis() != AxisY {
			return fmt.Errorf("%w: %s = %s must pair an X term with a Y term",
				ErrInconsistentAssignment, m, p)
		}
		i, j := boolIndex(p.Longitudinal.Leading()), boolIndex(p.Lateral.Leading())
		if used[i][j] {
			return fmt.Errorf("%w: %s and %s both use %s",
				ErrInconsistentAssignment, seen[i][j], m, p)
		}
		used[i][j] = true
		seen[i][j] = m
	}
	return nil
}

func boolIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}
