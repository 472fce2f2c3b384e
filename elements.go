package orrery

import (
	"fmt"
	"math"
)

const (
	// EccentricityCeiling is the highest eccentricity the solver will use.
	EccentricityCeiling = 0.99
)

// OrbitalElements defines an orbit relative to its parent body via its Keplerian elements.
// Angles are stored in degrees as provided; the period is in years.
// The elements are immutable once built: only the orientation drifts, and that drift is
// computed from time, never stored.
type OrbitalElements struct {
	a, e    float64 // semi-major axis and eccentricity
	i, Ω, ω float64 // orientation at epoch (degrees)
	period  float64 // years
	M0      float64 // mean anomaly at epoch (degrees)
	Ωdot    float64 // ascending node precession (degrees per year)
	ωdot    float64 // periapsis precession (degrees per year)
}

// NewOrbitalElements returns validated orbital elements.
// WARNING: Angles must be in degrees not radian.
func NewOrbitalElements(a, e, i, Ω, ω, period, M0 float64) (*OrbitalElements, error) {
	el := OrbitalElements{a: a, e: e, i: i, Ω: Ω, ω: ω, period: period, M0: M0}
	if err := el.Validate(); err != nil {
		return nil, err
	}
	return &el, nil
}

// WithPrecession returns a copy of these elements with linear secular drifts of the
// ascending node and of the argument of periapsis, both in degrees per year.
func (o OrbitalElements) WithPrecession(Ωdot, ωdot float64) OrbitalElements {
	o.Ωdot = Ωdot
	o.ωdot = ωdot
	return o
}

// Validate returns an error wrapping ErrInvalidConfiguration if these elements cannot be solved.
func (o OrbitalElements) Validate() error {
	if !finite(o.a, o.e, o.i, o.Ω, o.ω, o.period, o.M0, o.Ωdot, o.ωdot) {
		return fmt.Errorf("%w: non finite orbital element in %s", ErrInvalidConfiguration, o)
	}
	if o.period <= 0 {
		return fmt.Errorf("%w: period must be strictly positive (got %f)", ErrInvalidConfiguration, o.period)
	}
	if o.a < 0 {
		return fmt.Errorf("%w: negative semi-major axis (%f)", ErrInvalidConfiguration, o.a)
	}
	if o.e < 0 || o.e >= 1 {
		return fmt.Errorf("%w: eccentricity must be within [0, 1) (got %f)", ErrInvalidConfiguration, o.e)
	}
	return nil
}

// SemiMajorAxis returns a.
func (o OrbitalElements) SemiMajorAxis() float64 {
	return o.a
}

// Eccentricity returns the eccentricity as provided, which may be above the ceiling used by the solver.
func (o OrbitalElements) Eccentricity() float64 {
	return o.e
}

// Clamped returns the eccentricity actually used by the solver, within [0, EccentricityCeiling].
func (o OrbitalElements) Clamped() float64 {
	return math.Max(0, math.Min(o.e, EccentricityCeiling))
}

// IsClamped returns whether the solver will not use the provided eccentricity.
func (o OrbitalElements) IsClamped() bool {
	return o.Clamped() != o.e
}

// Period returns the orbital period in years.
func (o OrbitalElements) Period() float64 {
	return o.period
}

// MeanMotion returns the mean motion in radians per year.
func (o OrbitalElements) MeanMotion() float64 {
	return twoπ / o.period
}

// SemiParameter returns the semi parameter of the clamped orbit.
func (o OrbitalElements) SemiParameter() float64 {
	e := o.Clamped()
	return o.a * (1 - e*e)
}

// Apoapsis returns the apoapsis radius.
func (o OrbitalElements) Apoapsis() float64 {
	return o.a * (1 + o.Clamped())
}

// Periapsis returns the periapsis radius.
func (o OrbitalElements) Periapsis() float64 {
	return o.a * (1 - o.Clamped())
}

// Precession returns the ascending node and periapsis drift rates in degrees per year.
func (o OrbitalElements) Precession() (Ωdot, ωdot float64) {
	return o.Ωdot, o.ωdot
}

// OrientationAt returns the orientation angles (in radians) at tYears after epoch.
// The inclination does not drift.
func (o OrbitalElements) OrientationAt(tYears float64) (Ω, i, ω float64) {
	Ω = Deg2rad(o.Ω + o.Ωdot*tYears)
	i = Deg2rad(o.i)
	ω = Deg2rad(o.ω + o.ωdot*tYears)
	return
}

// String implements the stringer interface.
func (o OrbitalElements) String() string {
	s := fmt.Sprintf("a=%.3f e=%.4f i=%.3f Ω=%.3f ω=%.3f P=%.4fy M0=%.3f", o.a, o.e, o.i, o.Ω, o.ω, o.period, o.M0)
	if o.Ωdot != 0 || o.ωdot != 0 {
		s += fmt.Sprintf(" Ω'=%.5f ω'=%.5f", o.Ωdot, o.ωdot)
	}
	return s
}
