package kinematics

import "fmt"

// Variant is one of the duplicated kinematics formulas that disagree on
// axis or label conventions. They are kept so the disagreement stays
// explicit and testable against the canonical solver.
type Variant struct {
	Name        string
	Description string
	// Geometry, when set, replaces the configured chassis.
	Geometry   *Geometry
	Assignment Assignment
	Convention AxisConvention
}

// Solver builds the variant's solver for the configured chassis.
func (v Variant) Solver(geom Geometry) (*Solver, error) {
	if v.Geometry != nil {
		geom = *v.Geometry
	}
	s, err := NewSolver(geom, WithAssignment(v.Assignment), WithAxisConvention(v.Convention))
	if err != nil {
		return nil, fmt.Errorf("variant %s: %w", v.Name, err)
	}
	return s, nil
}

// CanonicalVariant is the reference formula.
const CanonicalVariant = "canonical"

var variants = []Variant{
	{
		Name:        CanonicalVariant,
		Description: "trackwidth scales A/B, wheelbase scales C/D; canonical term table",
		Assignment:  CanonicalAssignment,
		Convention:  TrackwidthOnX,
	},
	{
		Name:        "fixed-square",
		Description: "canonical formula with the 8 x 8 chassis hard-coded",
		Geometry:    &Geometry{Trackwidth: 8, Wheelbase: 8},
		Assignment:  CanonicalAssignment,
		Convention:  TrackwidthOnX,
	},
	{
		Name:        "swapped-axes",
		Description: "wheelbase scales A/B, trackwidth scales C/D",
		Assignment:  CanonicalAssignment,
		Convention:  WheelbaseOnX,
	},
	{
		Name:        "mirrored-labels",
		Description: "front and rear module labels exchanged",
		Assignment: Assignment{
			LeftFront:  {Longitudinal: TermA, Lateral: TermC},
			RightFront: {Longitudinal: TermA, Lateral: TermD},
			RightRear:  {Longitudinal: TermB, Lateral: TermD},
			LeftRear:   {Longitudinal: TermB, Lateral: TermC},
		},
		Convention: TrackwidthOnX,
	},
}

// Variants returns every registered variant, canonical first.
func Variants() []Variant {
	out := make([]Variant, len(variants))
	copy(out, variants)
	return out
}

// LookupVariant returns the variant with the given name.
func LookupVariant(name string) (Variant, error) {
	for _, v := range variants {
		if v.Name == name {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}
