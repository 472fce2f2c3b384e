package orrery

import "math"

const (
	deg2rad = math.Pi / 180
	twoπ    = 2 * math.Pi
)

// Deg2rad converts degrees to radians, and enforces only positive numbers.
func Deg2rad(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a * deg2rad
}

// Rad2deg converts radians to degrees, and enforces only positive numbers.
func Rad2deg(a float64) float64 {
	a = math.Mod(a, twoπ)
	if a < 0 {
		a += twoπ
	}
	return a / deg2rad
}

// wrapπ returns the provided angle in radians normalized into (-π, π].
func wrapπ(a float64) float64 {
	a = math.Mod(a, twoπ)
	if a <= -math.Pi {
		a += twoπ
	} else if a > math.Pi {
		a -= twoπ
	}
	return a
}

// finite returns whether all the provided values are neither NaN nor infinite.
func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
