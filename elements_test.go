package orrery

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestOrbitalElementsValidation(t *testing.T) {
	for _, tc := range []struct {
		name                      string
		a, e, i, Ω, ω, period, M0 float64
	}{
		{"zero period", 1, 0, 0, 0, 0, 0, 0},
		{"negative period", 1, 0, 0, 0, 0, -1, 0},
		{"negative sma", -3, 0, 0, 0, 0, 1, 0},
		{"negative ecc", 1, -0.1, 0, 0, 0, 1, 0},
		{"hyperbolic", 1, 1.2, 0, 0, 0, 1, 0},
		{"parabolic", 1, 1, 0, 0, 0, 1, 0},
		{"NaN inc", 1, 0, math.NaN(), 0, 0, 1, 0},
		{"infinite anomaly", 1, 0, 0, 0, 0, 1, math.Inf(1)},
	} {
		if _, err := NewOrbitalElements(tc.a, tc.e, tc.i, tc.Ω, tc.ω, tc.period, tc.M0); !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("%s: expected an invalid configuration, got %v", tc.name, err)
		}
	}
	// A nil semi-major axis keeps the body on its parent.
	if _, err := NewOrbitalElements(0, 0.3, 0, 0, 0, 1, 0); err != nil {
		t.Fatalf("nil semi-major axis refused: %s", err)
	}
	o, err := NewOrbitalElements(10, 0.995, 0, 0, 0, 2, 0)
	if err != nil {
		t.Fatalf("highly eccentric orbit refused: %s", err)
	}
	if !o.IsClamped() || o.Clamped() != EccentricityCeiling || o.Eccentricity() != 0.995 {
		t.Fatalf("eccentricity should be clamped: %s", o)
	}
	if p := o.WithPrecession(math.NaN(), 0); !errors.Is(p.Validate(), ErrInvalidConfiguration) {
		t.Fatal("NaN precession accepted")
	}
}

func TestOrbitalElementsAccessors(t *testing.T) {
	o, err := NewOrbitalElements(2, 0.5, 10, 20, 30, 4, 40)
	if err != nil {
		t.Fatal(err)
	}
	if o.SemiMajorAxis() != 2 || o.Period() != 4 || o.IsClamped() {
		t.Fatalf("invalid accessors: %s", o)
	}
	if !scalar.EqualWithinAbs(o.MeanMotion(), math.Pi/2, 1e-15) {
		t.Fatalf("n=%f", o.MeanMotion())
	}
	if o.Apoapsis() != 3 || o.Periapsis() != 1 || o.SemiParameter() != 1.5 {
		t.Fatalf("ra=%f rp=%f p=%f", o.Apoapsis(), o.Periapsis(), o.SemiParameter())
	}
	p := o.WithPrecession(-2, 5)
	if Ωdot, ωdot := o.Precession(); Ωdot != 0 || ωdot != 0 {
		t.Fatal("WithPrecession modified the receiver")
	}
	Ω, i, ω := p.OrientationAt(10)
	if ok, err := anglesEqual(Ω, Deg2rad(0)); !ok {
		t.Fatalf("Ω after 10 years: %s", err)
	}
	if ok, err := anglesEqual(i, Deg2rad(10)); !ok {
		t.Fatalf("inclination drifted: %s", err)
	}
	if ok, err := anglesEqual(ω, Deg2rad(80)); !ok {
		t.Fatalf("ω after 10 years: %s", err)
	}
}
