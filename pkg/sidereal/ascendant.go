package sidereal

import (
	"time"

	"github.com/chrissnell/astrotime/pkg/astro"
)

const (
	// ObserverLongitude is the fixed observer longitude (Mumbai, degrees
	// east) used for the dial's local sidereal time.
	ObserverLongitude = 72.8777

	// AscendantAnchorMinute is the wall-clock minute of day (06:45) at which
	// the ascendant is pinned to the sidereal Sun.
	AscendantAnchorMinute = 405.0

	// AscendantDegreesPerMinute is the dial rotation rate, 360° per 24h.
	AscendantDegreesPerMinute = 0.25
)

// GreenwichSiderealTime returns Greenwich mean sidereal time in degrees,
// in [0, 360).
func GreenwichSiderealTime(t time.Time) float64 {
	d := astro.DaysSinceJ2000(t)
	gmstHours := 18.697374558 + 24.06570982441908*d
	return astro.NormalizeAngle(gmstHours * 15)
}

// LocalSiderealTime returns local sidereal time in hours, in [0, 24), for a
// longitude in degrees east.
func LocalSiderealTime(t time.Time, longitude float64) float64 {
	return astro.NormalizeAngle(GreenwichSiderealTime(t)+longitude) / 15
}

// AscendantLongitude estimates the rising ecliptic longitude in [0, 360).
//
// This is a dial approximation, not the spherical ascendant: the result
// equals the sidereal Sun at 06:45 local wall-clock time and advances a
// quarter degree per minute from there.
func AscendantLongitude(t time.Time) float64 {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	minutes := float64(t.Sub(midnight).Milliseconds()) / 60000.0

	rotation := (minutes - AscendantAnchorMinute) * AscendantDegreesPerMinute
	return astro.NormalizeAngle(SunLongitude(t) + rotation)
}

// DialSiderealTime is the local sidereal time in hours at ObserverLongitude.
func DialSiderealTime(t time.Time) float64 {
	return LocalSiderealTime(t, ObserverLongitude)
}
