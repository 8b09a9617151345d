// Package solar provides the Sun's tropical ecliptic longitude and a
// simplified hour-angle sunrise/sunset model.
package solar

import (
	"math"
	"time"

	"github.com/chrissnell/astrotime/pkg/astro"
)

// TropicalLongitude returns the Sun's ecliptic longitude in degrees measured
// from the equinox, in [0, 360).
func TropicalLongitude(t time.Time) float64 {
	d := astro.DaysSinceJ2000(t)
	T := d / astro.DaysPerCentury

	// Mean longitude and mean anomaly
	L := 280.46646 + 0.9856474*d
	g := astro.DegToRad(357.52911 + 0.98560028*d)

	// Equation of center
	C := (1.914602-0.004817*T)*math.Sin(g) +
		(0.019993-0.000101*T)*math.Sin(2*g) +
		0.000289*math.Sin(3*g)

	return astro.NormalizeAngle(L + C)
}

// Declination returns the approximate solar declination in degrees for a
// day of the year.
func Declination(dayOfYear int) float64 {
	return 23.45 * math.Sin((2*math.Pi/365)*float64(dayOfYear-81))
}
