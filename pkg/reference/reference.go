// Package reference compares the dial's low-order series against
// higher-precision implementations: Meeus for Sun and Moon longitudes,
// suncalc for sunrise and sunset.
package reference

import (
	"time"

	"github.com/sixdouglas/suncalc"
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonposition"
	meeussolar "github.com/soniakeys/meeus/v3/solar"

	"github.com/chrissnell/astrotime/pkg/astro"
	"github.com/chrissnell/astrotime/pkg/lunar"
	"github.com/chrissnell/astrotime/pkg/solar"
)

// referenceZone is the clock the dial's sun times are expressed in
var referenceZone = time.FixedZone("IST", 19800)

// Comparison is the engine's value next to the reference value for one
// instant. Errors are signed engine-minus-reference.
type Comparison struct {
	Time time.Time `json:"time"`

	SunEngine    float64 `json:"sunEngine"`
	SunReference float64 `json:"sunReference"`
	SunError     float64 `json:"sunError"`

	MoonEngine    float64 `json:"moonEngine"`
	MoonReference float64 `json:"moonReference"`
	MoonError     float64 `json:"moonError"`

	// Sunrise and sunset in minutes from local midnight at UTC+5:30.
	// Zero when either side has no event for the day.
	SunriseEngine    float64 `json:"sunriseEngine"`
	SunriseReference float64 `json:"sunriseReference"`
	SunriseError     float64 `json:"sunriseError"`
	SunsetEngine     float64 `json:"sunsetEngine"`
	SunsetReference  float64 `json:"sunsetReference"`
	SunsetError      float64 `json:"sunsetError"`
	HasSunEvents     bool    `json:"hasSunEvents"`
}

// SunLongitude returns Meeus' true geometric solar longitude in degrees
func SunLongitude(t time.Time) float64 {
	T := base.J2000Century(julian.TimeToJD(t))
	s, _ := meeussolar.True(T)
	return astro.NormalizeAngle(s.Deg())
}

// MoonLongitude returns Meeus' geocentric lunar longitude in degrees
func MoonLongitude(t time.Time) float64 {
	λ, _, _ := moonposition.Position(julian.TimeToJD(t))
	return astro.NormalizeAngle(λ.Deg())
}

// SunEvents returns suncalc's sunrise and sunset in minutes from midnight
// on the UTC+5:30 clock. ok is false when suncalc reports no event.
func SunEvents(t time.Time, latitude, longitude float64) (sunrise, sunset float64, ok bool) {
	day := t.In(referenceZone)
	noon := time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, referenceZone)

	times := suncalc.GetTimes(noon, latitude, longitude)
	rise := times["sunrise"].Value
	set := times["sunset"].Value
	// polar days come back zero or wildly out of range
	if rise.IsZero() || set.IsZero() || !set.After(rise) ||
		noon.Sub(rise) > 24*time.Hour || set.Sub(noon) > 24*time.Hour {
		return 0, 0, false
	}

	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, referenceZone)
	return rise.Sub(midnight).Minutes(), set.Sub(midnight).Minutes(), true
}

// Compare evaluates the engine and the reference at one instant and place
func Compare(t time.Time, loc astro.GeoLocation) Comparison {
	c := Comparison{
		Time:          t,
		SunEngine:     solar.TropicalLongitude(t),
		SunReference:  SunLongitude(t),
		MoonEngine:    lunar.TropicalLongitude(t),
		MoonReference: MoonLongitude(t),
	}
	c.SunError = astro.AngularDifference(c.SunEngine, c.SunReference)
	c.MoonError = astro.AngularDifference(c.MoonEngine, c.MoonReference)

	engine := solar.CalculateSunTimes(t.In(referenceZone), loc.Latitude, loc.Longitude)
	rise, set, ok := SunEvents(t, loc.Latitude, loc.Longitude)
	if ok && !engine.Fallback {
		c.HasSunEvents = true
		c.SunriseEngine = engine.SunriseMinutes
		c.SunriseReference = rise
		c.SunriseError = engine.SunriseMinutes - rise
		c.SunsetEngine = engine.SunsetMinutes
		c.SunsetReference = set
		c.SunsetError = engine.SunsetMinutes - set
	}

	return c
}
