package orrery

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

const angleε = 1e-9

func assertPanic(t *testing.T, f func()) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("code did not panic")
		}
	}()
	f()
}

func vectorsEqual(a, b r3.Vec) bool {
	return scalar.EqualWithinAbsOrRel(a.X, b.X, 1e-9, 1e-6) &&
		scalar.EqualWithinAbsOrRel(a.Y, b.Y, 1e-9, 1e-6) &&
		scalar.EqualWithinAbsOrRel(a.Z, b.Z, 1e-9, 1e-6)
}

// anglesEqual returns whether two angles in radians are equal.
func anglesEqual(a, b float64) (bool, error) {
	diff := math.Mod(math.Abs(a-b), twoπ)
	if diff < angleε || twoπ-diff < angleε {
		return true, nil
	}
	return false, fmt.Errorf("difference of %3.10f degrees", math.Abs(Rad2deg(diff)))
}

// unitOrbit is a circle of radius 1 in the reference plane, completed in one year.
func unitOrbit(t *testing.T) OrbitalElements {
	o, err := NewOrbitalElements(1, 0, 0, 0, 0, 1, 0)
	if err != nil {
		t.Fatalf("unit orbit: %s", err)
	}
	return *o
}
