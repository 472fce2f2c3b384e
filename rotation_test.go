package orrery

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestR1R2R3(t *testing.T) {
	x := math.Pi / 3.0
	s, c := math.Sincos(x)
	r1 := R1(x)
	r2 := R2(x)
	r3m := R3(x)
	// Test items equal to 1.
	if r1.At(0, 0) != r2.At(1, 1) || r1.At(0, 0) != r3m.At(2, 2) || r3m.At(2, 2) != 1 {
		t.Fatal("expected R1.At(0, 0) = R2.At(1, 1) = R3.At(2, 2) = 1")
	}
	// Test items equal to 0.
	if r1.At(0, 1) != r1.At(0, 2) || r1.At(1, 0) != r1.At(2, 0) || r1.At(0, 1) != 0 {
		t.Fatal("misplaced zeros in R1")
	}
	if r2.At(0, 1) != r2.At(1, 2) || r2.At(1, 0) != r2.At(1, 2) || r2.At(1, 2) != 0 {
		t.Fatal("misplaced zeros in R2")
	}
	if r3m.At(2, 0) != r3m.At(2, 1) || r3m.At(0, 2) != r3m.At(1, 2) || r3m.At(1, 2) != 0 {
		t.Fatal("misplaced zeros in R3")
	}
	if r1.At(1, 1) != r1.At(2, 2) || r1.At(2, 2) != c {
		t.Fatal("expected R1 cosines misplaced")
	}
	if r1.At(2, 1) != -r1.At(1, 2) || r1.At(1, 2) != s {
		t.Fatal("expected R1 sines misplaced")
	}
	if r2.At(0, 0) != r2.At(2, 2) || r2.At(2, 2) != c {
		t.Fatal("expected R2 cosines misplaced")
	}
	if r2.At(2, 0) != -r2.At(0, 2) || r2.At(2, 0) != s {
		t.Fatal("expected R2 sines misplaced")
	}
	if r3m.At(1, 1) != r3m.At(0, 0) || r3m.At(0, 0) != c {
		t.Fatal("expected R3 cosines misplaced")
	}
	if r3m.At(0, 1) != -r3m.At(1, 0) || r3m.At(0, 1) != s {
		t.Fatal("expected R3 sines misplaced")
	}
}

func TestRot313(t *testing.T) {
	var R1R3, R3R1R3m mat.Dense
	θ1 := math.Pi / 17
	θ2 := math.Pi / 16
	θ3 := math.Pi / 15
	R1R3.Mul(R1(θ2), R3(θ1))
	R3R1R3m.Mul(R3(θ3), &R1R3)
	if !mat.EqualApprox(&R3R1R3m, R3R1R3(θ1, θ2, θ3), 1e-15) {
		t.Logf("\n%v", mat.Formatted(&R3R1R3m))
		t.Logf("\n%v", mat.Formatted(R3R1R3(θ1, θ2, θ3)))
		t.Fatal("failed")
	}
}

func TestPQW2Ref(t *testing.T) {
	// Vallado, example 2-6.
	i := Deg2rad(87.87)
	ω := Deg2rad(53.38)
	Ω := Deg2rad(227.89)
	Rp := PQW2Ref(Ω, i, ω, r3.Vec{X: -466.7639, Y: 11447.0219})
	Re := r3.Vec{X: 6525.368103709379, Y: 6861.531814548294, Z: 6449.118636407358}
	if !vectorsEqual(Re, Rp) {
		t.Fatalf("R conversion failed: %v", Rp)
	}
	Vp := PQW2Ref(Ω, i, ω, r3.Vec{X: -5.996222, Y: 4.753601})
	Ve := r3.Vec{X: 4.902278620687254, Y: 5.533139558121602, Z: -1.9757104281719946}
	if !vectorsEqual(Ve, Vp) {
		t.Fatalf("V conversion failed: %v", Vp)
	}
}

func TestPQW2RefExplicit(t *testing.T) {
	// Closed form of the position from the argument of latitude u = ω + ν.
	for _, iDeg := range []float64{0, 5, 45, 90, 135, 179} {
		for _, ΩDeg := range []float64{0, 30, 200, 359} {
			for _, ωDeg := range []float64{0, 80, 270} {
				for _, νDeg := range []float64{0, 45, 181} {
					Ω, i, ω, ν := Deg2rad(ΩDeg), Deg2rad(iDeg), Deg2rad(ωDeg), Deg2rad(νDeg)
					r := 2.5
					got := PQW2Ref(Ω, i, ω, r3.Vec{X: r * math.Cos(ν), Y: r * math.Sin(ν)})
					su, cu := math.Sincos(ω + ν)
					sΩ, cΩ := math.Sincos(Ω)
					si, ci := math.Sincos(i)
					exp := r3.Vec{
						X: r * (cΩ*cu - sΩ*su*ci),
						Y: r * (sΩ*cu + cΩ*su*ci),
						Z: r * su * si,
					}
					if !vectorsEqual(got, exp) {
						t.Fatalf("Ω=%f i=%f ω=%f ν=%f: got %v expected %v", ΩDeg, iDeg, ωDeg, νDeg, got, exp)
					}
				}
			}
		}
	}
}

func TestToDisplay(t *testing.T) {
	got := ToDisplay(r3.Vec{X: 1, Y: 2, Z: 3})
	if !vectorsEqual(got, r3.Vec{X: 1, Y: 3, Z: 2}) {
		t.Fatalf("got %v", got)
	}
	// A prograde orbit at a quarter period sits on ecliptic +Y, drawn toward display +Z.
	quarter := ToDisplay(SolvePosition(unitOrbit(t), 0.25))
	if !vectorsEqual(quarter, r3.Vec{Z: 1}) {
		t.Fatalf("quarter orbit displayed at %v", quarter)
	}
	if n := r3.Norm(ToDisplay(r3.Vec{X: 3, Y: -4, Z: 12})); !scalar.EqualWithinAbs(n, 13, 1e-12) {
		t.Fatalf("display conversion changed the norm to %f", n)
	}
}
