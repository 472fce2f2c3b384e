package orrery

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

const (
	// DaysPerYear is the length of the Julian year used for all periods.
	DaysPerYear = 365.25
)

// J2000 is the default epoch of the orbital elements.
var J2000 = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

// YearsSinceEpoch returns the elapsed simulation time, in years, between the epoch and dt.
func YearsSinceEpoch(epoch, dt time.Time) float64 {
	return (julian.TimeToJD(dt) - julian.TimeToJD(epoch)) / DaysPerYear
}

// TimeAtYears returns the date which is the provided number of years after the epoch.
func TimeAtYears(epoch time.Time, years float64) time.Time {
	return julian.JDToTime(julian.TimeToJD(epoch) + years*DaysPerYear)
}
