// Package astro provides the time base and angle helpers shared by the
// solar, lunar and sidereal models.
package astro

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

const (
	// UnixEpochJD is the Julian Day of 1970-01-01 00:00 UTC
	UnixEpochJD = 2440587.5

	// J2000 is the Julian Day of 2000-01-01 12:00 UTC
	J2000 = 2451545.0

	// DaysPerCentury is the length of a Julian century in days
	DaysPerCentury = 36525.0

	msPerDay = 86400000.0
)

// GeoLocation is an observer position in degrees, east and north positive.
type GeoLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// JulianDay converts an instant to a continuous day count. The wall clock
// offset is taken at millisecond resolution.
func JulianDay(t time.Time) float64 {
	return float64(t.UnixMilli())/msPerDay + UnixEpochJD
}

// DaysSinceJ2000 returns the days elapsed since the J2000 epoch
func DaysSinceJ2000(t time.Time) float64 {
	return JulianDay(t) - J2000
}

// JulianCenturies returns Julian centuries since J2000 for a Julian Day
func JulianCenturies(jd float64) float64 {
	return (jd - J2000) / DaysPerCentury
}

// TimeFromJulianDay converts a Julian Day back to a UTC instant.
func TimeFromJulianDay(jd float64) time.Time {
	return julian.JDToTime(jd)
}

// NormalizeAngle wraps an angle to the range [0, 360). NaN passes through.
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// a tiny negative remainder rounds up to exactly 360 when shifted
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// DegToRad converts degrees to radians
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// RadToDeg converts radians to degrees
func RadToDeg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// AngularDifference returns a-b wrapped to [-180, 180).
func AngularDifference(a, b float64) float64 {
	return NormalizeAngle(a-b+180) - 180
}
