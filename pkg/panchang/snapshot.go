package panchang

import (
	"time"

	"github.com/chrissnell/astrotime/pkg/astro"
	"github.com/chrissnell/astrotime/pkg/lunar"
	"github.com/chrissnell/astrotime/pkg/sidereal"
	"github.com/chrissnell/astrotime/pkg/solar"
)

// Longitudes are the dial angles for an instant, in degrees unless noted
type Longitudes struct {
	SunTropical        float64 `json:"sunTropical"`
	MoonTropical       float64 `json:"moonTropical"`
	SunSidereal        float64 `json:"sunSidereal"`
	MoonSidereal       float64 `json:"moonSidereal"`
	Ayanamsa           float64 `json:"ayanamsa"`
	Ascendant          float64 `json:"ascendant"`
	LocalSiderealHours float64 `json:"localSiderealHours"`
}

// Snapshot bundles everything a dial or dashboard needs for one instant
type Snapshot struct {
	Time       time.Time         `json:"time"`
	Location   astro.GeoLocation `json:"location"`
	Longitudes Longitudes        `json:"longitudes"`
	Calendar   Elements          `json:"calendar"`
	Observance Observance        `json:"observance,omitempty"`
	Sun        solar.SunTimes    `json:"sun"`
	Moon       lunar.MoonTimes   `json:"moon"`
	Phase      lunar.MoonPhase   `json:"phase"`
}

// CalculateLongitudes computes the tropical and sidereal longitudes, the
// ayanamsa and the dial ascendant for an instant.
func CalculateLongitudes(t time.Time) Longitudes {
	T := astro.JulianCenturies(astro.JulianDay(t))
	sunTropical := solar.TropicalLongitude(t)
	moonTropical := lunar.TropicalLongitude(t)

	return Longitudes{
		SunTropical:        sunTropical,
		MoonTropical:       moonTropical,
		SunSidereal:        sidereal.ToSidereal(sunTropical, T),
		MoonSidereal:       sidereal.ToSidereal(moonTropical, T),
		Ayanamsa:           sidereal.Ayanamsa(T),
		Ascendant:          sidereal.AscendantLongitude(t),
		LocalSiderealHours: sidereal.DialSiderealTime(t),
	}
}

// NewSnapshot computes the full snapshot for an instant. loc only affects
// sunrise and sunset.
func NewSnapshot(t time.Time, loc astro.GeoLocation) Snapshot {
	lon := CalculateLongitudes(t)
	elements := Derive(lon.SunSidereal, lon.MoonSidereal)

	return Snapshot{
		Time:       t,
		Location:   loc,
		Longitudes: lon,
		Calendar:   elements,
		Observance: elements.Tithi.Observance(),
		Sun:        solar.CalculateSunTimes(t, loc.Latitude, loc.Longitude),
		Moon:       lunar.CalculateMoonTimes(t, elements.Tithi.Index),
		Phase:      lunar.Calculate(t),
	}
}
