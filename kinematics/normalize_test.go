package kinematics

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		want  float64
	}{
		{"zero", 0, 0},
		{"pi", math.Pi, math.Pi},
		{"minus pi", -math.Pi, math.Pi},
		{"two pi", 2 * math.Pi, 0},
		{"minus two pi", -2 * math.Pi, 0},
		{"three pi", 3 * math.Pi, math.Pi},
		{"minus three pi", -3 * math.Pi, math.Pi},
		{"three halves pi", 1.5 * math.Pi, -math.Pi / 2},
		{"minus three halves pi", -1.5 * math.Pi, math.Pi / 2},
		{"half pi", math.Pi / 2, math.Pi / 2},
		{"minus half pi", -math.Pi / 2, -math.Pi / 2},
		{"ten", 10, 10 - 4*math.Pi},
		{"minus ten", -10, -10 + 4*math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.angle)
			if !scalar.EqualWithinAbs(got, tt.want, 1e-12) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.angle, got, tt.want)
			}
		})
	}
}

func TestNormalizeSeam(t *testing.T) {
	// Both sides of the seam land on +π exactly.
	if got := Normalize(math.Pi); got != math.Pi {
		t.Errorf("Normalize(π) = %v, want π", got)
	}
	if got := Normalize(-math.Pi); got != math.Pi {
		t.Errorf("Normalize(-π) = %v, want π", got)
	}
	if got := NormalizeDegrees(-180); got != 180 {
		t.Errorf("NormalizeDegrees(-180) = %v, want 180", got)
	}
}

func TestNormalizeProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10000; i++ {
		theta := (rng.Float64()*2 - 1) * 50
		n := Normalize(theta)
		if n <= -math.Pi || n > math.Pi {
			t.Fatalf("Normalize(%v) = %v out of (-π, π]", theta, n)
		}
		if nn := Normalize(n); nn != n {
			t.Fatalf("Normalize not idempotent at %v: %v then %v", theta, n, nn)
		}
		k := float64(rng.Intn(21) - 10)
		shifted := Normalize(theta + 2*math.Pi*k)
		// Compare modulo 2π so values straddling the seam still match.
		if d := Normalize(shifted - n); math.Abs(d) > 1e-9 {
			t.Fatalf("Normalize(%v + 2π·%v) = %v, want %v", theta, k, shifted, n)
		}
	}
}

func TestNormalizeInRangeUnchanged(t *testing.T) {
	for _, v := range []float64{0.1, -0.1, 1e-17, -1e-300, 3, -3, math.Pi, math.Nextafter(-math.Pi, 0)} {
		if got := Normalize(v); got != v {
			t.Errorf("Normalize(%v) = %v, want unchanged", v, got)
		}
	}
}

func TestNormalizeFixedPoint(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100000; i++ {
		x := (rng.Float64()*2 - 1) * 50
		n := Normalize(x)
		if nn := Normalize(n); nn != n {
			t.Fatalf("Normalize(Normalize(%v)) = %v, want %v", x, nn, n)
		}
	}
}

func TestNormalizeNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := Normalize(v); !math.IsNaN(got) {
			t.Errorf("Normalize(%v) = %v, want NaN", v, got)
		}
	}
}
