package kinematics

import "math"

const (
	radToDeg = 180 / math.Pi
	degToRad = math.Pi / 180
)

// Solver converts chassis commands into module steering angles.
// A Solver is immutable and safe for concurrent use.
type Solver struct {
	geom       Geometry
	assignment Assignment
	convention AxisConvention
	// rotational scale factors for the X and Y terms.
	kx, ky float64
}

// Option configures a Solver.
type Option func(*Solver)

// WithAssignment overrides the canonical term-to-module table.
func WithAssignment(a Assignment) Option {
	return func(s *Solver) { s.assignment = a }
}

// WithAxisConvention selects which dimension feeds the X terms.
func WithAxisConvention(c AxisConvention) Option {
	return func(s *Solver) { s.convention = c }
}

// NewSolver returns a solver for the given chassis. Errors are only
// returned for invalid geometry or an inconsistent assignment table.
func NewSolver(geom Geometry, opts ...Option) (*Solver, error) {
	s := &Solver{
		geom:       geom,
		assignment: CanonicalAssignment,
		convention: TrackwidthOnX,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := geom.Validate(); err != nil {
		return nil, err
	}
	if err := s.assignment.Validate(); err != nil {
		return nil, err
	}
	r := geom.Diagonal()
	switch s.convention {
	case TrackwidthOnX:
		s.kx, s.ky = geom.Trackwidth/r, geom.Wheelbase/r
	case WheelbaseOnX:
		s.kx, s.ky = geom.Wheelbase/r, geom.Trackwidth/r
	default:
		return nil, ErrUnknownConvention
	}
	return s, nil
}

// MustSolver is like NewSolver but panics on error.
func MustSolver(geom Geometry, opts ...Option) *Solver {
	s, err := NewSolver(geom, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

var defaultSolver = MustSolver(DefaultGeometry)

// Default returns the canonical solver for the 8 x 8 chassis.
func Default() *Solver { return defaultSolver }

// Solve computes module angles with the default solver.
func Solve(vectorX, vectorY, omega float64) ModuleAngles {
	return defaultSolver.Solve(vectorX, vectorY, omega)
}

// Geometry returns the chassis dimensions the solver was built with.
func (s *Solver) Geometry() Geometry { return s.geom }

// Assignment returns the solver's term-to-module table.
func (s *Solver) Assignment() Assignment { return s.assignment }

// Convention returns the solver's axis convention.
func (s *Solver) Convention() AxisConvention { return s.convention }

// Terms computes the intermediate terms A, B, C and D.
func (s *Solver) Terms(vectorX, vectorY, omega float64) Terms {
	return Terms{
		TermA: vectorX - omega*s.kx,
		TermB: vectorX + omega*s.kx,
		TermC: vectorY - omega*s.ky,
		TermD: vectorY + omega*s.ky,
	}
}

// Solve returns the steering angle of every module in radians, each in
// (-π, π]. Inputs are not clamped; any real command is accepted.
func (s *Solver) Solve(vectorX, vectorY, omega float64) ModuleAngles {
	ts := s.Terms(vectorX, vectorY, omega)
	var out ModuleAngles
	for _, m := range Modules {
		p := s.assignment[m]
		out[m] = atan2(ts[p.Longitudinal], ts[p.Lateral])
	}
	return out
}

// SolveRequest is Solve taking a TranslationRequest.
func (s *Solver) SolveRequest(r TranslationRequest) ModuleAngles {
	return s.Solve(r.VectorX, r.VectorY, r.Omega)
}

// atan2 is math.Atan2 restricted to (-π, π]: a zero vector of either sign
// maps to 0 and a negative zero y never yields -π.
func atan2(y, x float64) float64 {
	if y == 0 {
		if x == 0 {
			return 0
		}
		y = 0
	}
	return math.Atan2(y, x)
}

// Normalize wraps an angle in radians into (-π, π].
// Angles already in range are returned unchanged. Others are wrapped in
// degrees with a floored modulo; the -180° seam is reported as +180°, so
// Normalize(-π) == Normalize(π) == π.
func Normalize(angle float64) float64 {
	if angle > -math.Pi && angle <= math.Pi {
		return angle
	}
	deg := angle * radToDeg
	deg = floorMod(deg+180, 360) - 180
	if deg <= -180 {
		deg += 360
	}
	rad := deg * degToRad
	if rad <= -math.Pi {
		// deg just above -180 can still round onto -π.
		return math.Pi
	}
	return rad
}

// NormalizeDegrees wraps an angle in degrees into (-180, 180].
func NormalizeDegrees(deg float64) float64 {
	return Normalize(deg*degToRad) * radToDeg
}

// floorMod returns x mod m with the sign of m.
func floorMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}
