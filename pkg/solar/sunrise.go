package solar

import (
	"math"
	"time"
)

const (
	// ReferenceMeridian is the standard-time meridian (UTC+5:30) that local
	// clock times are expressed in. Time zones are not looked up.
	ReferenceMeridian = 82.5

	// DefaultSunriseMinutes and DefaultSunsetMinutes are reported when the
	// Sun does not cross the horizon (polar day or night).
	DefaultSunriseMinutes = 6 * 60
	DefaultSunsetMinutes  = 18 * 60

	// absorbs float noise so 437.99999999 minutes prints as 7:18
	clockEpsilon = 1e-6
)

// SunTimes holds sunrise and sunset as minutes from local midnight plus
// their 12-hour clock renderings.
type SunTimes struct {
	Sunrise            string  `json:"sunrise"`
	Sunset             string  `json:"sunset"`
	SunriseMinutes     float64 `json:"sunriseMinutes"`
	SunsetMinutes      float64 `json:"sunsetMinutes"`
	DayDurationMinutes float64 `json:"dayDurationMinutes"`
	Fallback           bool    `json:"fallback"`
}

// CalculateSunTimes estimates sunrise and sunset for the local calendar day
// of t at the given latitude and longitude (degrees, east positive).
// When the hour angle is undefined the fixed 06:00/18:00 defaults are
// returned with Fallback set.
func CalculateSunTimes(t time.Time, latitude, longitude float64) SunTimes {
	noon := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())
	decl := Declination(noon.YearDay())

	// cos(H) = -tan(lat) * tan(declination)
	cosH := -math.Tan(latitude*math.Pi/180) * math.Tan(decl*math.Pi/180)

	sunrise := float64(DefaultSunriseMinutes)
	sunset := float64(DefaultSunsetMinutes)
	fallback := true

	if cosH >= -1 && cosH <= 1 {
		hourAngle := math.Acos(cosH) * 180 / math.Pi
		halfDay := hourAngle * 4

		// Each degree of longitude away from the reference meridian shifts
		// local noon by 4 minutes. Equation of time is ignored.
		solarNoon := 720 + 4*(ReferenceMeridian-longitude)

		sunrise = solarNoon - halfDay
		sunset = solarNoon + halfDay
		fallback = false
	}

	return SunTimes{
		Sunrise:            FormatClock(sunrise),
		Sunset:             FormatClock(sunset),
		SunriseMinutes:     sunrise,
		SunsetMinutes:      sunset,
		DayDurationMinutes: sunset - sunrise,
		Fallback:           fallback,
	}
}

// FormatClock renders minutes from midnight as a 12-hour clock string such
// as "6:05 AM". Values outside a single day wrap around.
func FormatClock(minutes float64) string {
	whole := time.Duration(math.Floor(minutes+clockEpsilon)) * time.Minute
	t := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).Add(whole)
	return t.Format("3:04 PM")
}
