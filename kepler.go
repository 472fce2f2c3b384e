package orrery

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// keplerIterations is the fixed number of Newton-Raphson steps used to solve Kepler's equation.
	// There is no convergence check.
	keplerIterations = 6
)

// MeanAnomaly returns the mean anomaly M in radians, normalized into (-π, π], tYears after epoch.
func MeanAnomaly(o OrbitalElements, tYears float64) float64 {
	return wrapπ(Deg2rad(o.M0) + o.MeanMotion()*tYears)
}

// EccentricAnomaly solves Kepler's equation E - e*sin(E) = M for E.
func EccentricAnomaly(M, e float64) (E float64) {
	E = M
	for k := 0; k < keplerIterations; k++ {
		sinE, cosE := math.Sincos(E)
		E -= (E - e*sinE - M) / (1 - e*cosE)
	}
	return
}

// TrueAnomaly returns the true anomaly ν from the eccentric anomaly.
func TrueAnomaly(E, e float64) float64 {
	sinE, cosE := math.Sincos(E)
	return math.Atan2(math.Sqrt(1-e*e)*sinE, cosE-e)
}

// Radius returns the distance to the focus for the eccentric anomaly E, using the clamped eccentricity.
func Radius(o OrbitalElements, E float64) float64 {
	return o.a * (1 - o.Clamped()*math.Cos(E))
}

// InPlane returns the position in the perifocal frame tYears after epoch, along with the true anomaly.
func InPlane(o OrbitalElements, tYears float64) (R r3.Vec, ν float64) {
	o.mustBeSolvable()
	e := o.Clamped()
	E := EccentricAnomaly(MeanAnomaly(o, tYears), e)
	ν = TrueAnomaly(E, e)
	r := Radius(o, E)
	sinν, cosν := math.Sincos(ν)
	return r3.Vec{X: r * cosν, Y: r * sinν}, ν
}

// SolvePosition returns the position of the body relative to its parent, tYears after epoch,
// accounting for the secular precession of the ascending node and of the periapsis.
// Panics if the elements were not built through NewOrbitalElements (e.g. zero period).
func SolvePosition(o OrbitalElements, tYears float64) r3.Vec {
	R, _ := InPlane(o, tYears)
	Ω, i, ω := o.OrientationAt(tYears)
	return PQW2Ref(Ω, i, ω, R)
}

// PositionAtEpochOrientation is SolvePosition with the orientation frozen at epoch.
func PositionAtEpochOrientation(o OrbitalElements, tYears float64) r3.Vec {
	R, _ := InPlane(o, tYears)
	Ω, i, ω := o.OrientationAt(0)
	return PQW2Ref(Ω, i, ω, R)
}

func (o OrbitalElements) mustBeSolvable() {
	if o.period <= 0 || o.a < 0 {
		panic(fmt.Errorf("%w: cannot solve %s", ErrInvalidConfiguration, o))
	}
}
