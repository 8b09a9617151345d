// Package lunar provides the Moon's tropical ecliptic longitude from a
// truncated perturbation series, a phase summary built on it, and a
// heuristic moonrise/moonset estimate. The series keeps only the six
// largest periodic terms; expect errors of a few tenths of a degree.
package lunar

import (
	"math"
	"time"

	"github.com/chrissnell/astrotime/pkg/astro"
	"github.com/chrissnell/astrotime/pkg/solar"
)

// SynodicMonth is the average length of the lunar cycle in days
const SynodicMonth = 29.530588853

// MoonPhase contains calculated moon phase information
type MoonPhase struct {
	Phase        float64 `json:"phase"`        // Phase fraction [0,1): 0=new, 0.5=full
	Elongation   float64 `json:"elongation"`   // Sun→Moon angle in degrees [0,360)
	Illumination float64 `json:"illumination"` // Illuminated fraction [0,1]
	AgeDays      float64 `json:"ageDays"`      // Days since new moon [0,SynodicMonth)
	IsWaxing     bool    `json:"isWaxing"`
	PhaseName    string  `json:"phaseName"`
}

// TropicalLongitude returns the Moon's ecliptic longitude in degrees measured
// from the equinox, in [0, 360).
func TropicalLongitude(t time.Time) float64 {
	d := astro.DaysSinceJ2000(t)

	L := 218.3164477 + 13.17639615*d // mean longitude
	Mm := 134.96298 + 13.064993*d    // mean anomaly
	M := 357.52911 + 0.98560028*d    // Sun's mean anomaly
	D := 297.85019 + 12.190749*d     // mean elongation
	F := 93.27209 + 13.229350*d      // argument of latitude

	rad := astro.DegToRad

	lambda := L +
		6.289*math.Sin(rad(Mm)) - // equation of center
		1.274*math.Sin(rad(Mm-2*D)) + // evection
		0.658*math.Sin(rad(2*D)) - // variation
		0.185*math.Sin(rad(M)) - // annual equation
		0.114*math.Sin(rad(2*F)) + // reduction to the ecliptic
		0.214*math.Sin(rad(2*Mm)) // second equation of center term

	return astro.NormalizeAngle(lambda)
}

// Calculate computes the moon phase for an instant
func Calculate(t time.Time) MoonPhase {
	elongation := astro.NormalizeAngle(TropicalLongitude(t) - solar.TropicalLongitude(t))
	phase := elongation / 360.0
	illumination := (1 - math.Cos(astro.DegToRad(elongation))) / 2
	isWaxing := elongation < 180

	return MoonPhase{
		Phase:        phase,
		Elongation:   elongation,
		Illumination: illumination,
		AgeDays:      phase * SynodicMonth,
		IsWaxing:     isWaxing,
		PhaseName:    phaseName(illumination, isWaxing),
	}
}

// phaseName returns the 8-phase name based on illumination percentage and direction
func phaseName(illumination float64, isWaxing bool) string {
	switch {
	case illumination < 0.01:
		return "New Moon"
	case illumination > 0.99:
		return "Full Moon"
	case illumination >= 0.49 && illumination <= 0.51:
		if isWaxing {
			return "First Quarter"
		}
		return "Third Quarter"
	case illumination < 0.50:
		if isWaxing {
			return "Waxing Crescent"
		}
		return "Waning Crescent"
	default:
		if isWaxing {
			return "Waxing Gibbous"
		}
		return "Waning Gibbous"
	}
}
