// Package panchang derives the five lunisolar calendar elements (tithi,
// nakshatra, yoga, karana, rashi) from sidereal Sun and Moon longitudes.
//
// Every function is a pure projection of its arguments and is safe to call
// concurrently. Cache memoises whole snapshots for callers that poll.
package panchang

import (
	"fmt"
	"math"
	"time"

	"github.com/chrissnell/astrotime/pkg/astro"
	"github.com/chrissnell/astrotime/pkg/sidereal"
)

const (
	// SectorWidth is the span of one nakshatra or yoga: 360/27 degrees
	SectorWidth = 360.0 / 27.0

	tithiWidth  = 12.0
	karanaWidth = 6.0
	rashiWidth  = 30.0
)

// Paksha is the lunar fortnight
type Paksha string

const (
	Shukla  Paksha = "Shukla"
	Krishna Paksha = "Krishna"
)

// Tithi is the lunar day, one of 30 steps of 12° elongation.
type Tithi struct {
	Number int    `json:"number"` // 1-30
	Index  int    `json:"index"`  // Number-1
	Paksha Paksha `json:"paksha"`
	Name   string `json:"name"`
}

// Nakshatra is the Moon's lunar mansion
type Nakshatra struct {
	Index          int     `json:"index"` // 0-26
	Name           string  `json:"name"`
	PercentElapsed float64 `json:"percentElapsed"` // [0,100)
}

// Rashi is a 30° zodiac sign
type Rashi struct {
	Index  int    `json:"index"` // 0-11
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Yoga is the sector of the combined Sun and Moon longitude
type Yoga struct {
	Index int    `json:"index"` // 0-26
	Name  string `json:"name"`
}

// Karana is the half-tithi. Only the running number is derived; it is
// labelled "Karana N" rather than with the traditional eleven names.
type Karana struct {
	Number int    `json:"number"` // 1-60
	Name   string `json:"name"`
}

// Elements are the calendar elements derived from one pair of sidereal
// longitudes.
type Elements struct {
	SunLongitude  float64   `json:"sunLongitude"`
	MoonLongitude float64   `json:"moonLongitude"`
	Elongation    float64   `json:"elongation"`
	Tithi         Tithi     `json:"tithi"`
	Nakshatra     Nakshatra `json:"nakshatra"`
	SunRashi      Rashi     `json:"sunRashi"`
	MoonRashi     Rashi     `json:"moonRashi"`
	Yoga          Yoga      `json:"yoga"`
	Karana        Karana    `json:"karana"`
	Masa          string    `json:"masa"`
}

// Calendar is Elements stamped with the instant they were derived for
type Calendar struct {
	Time time.Time `json:"time"`
	Elements
}

// Calculate derives the calendar for an instant
func Calculate(t time.Time) Calendar {
	return Calendar{
		Time:     t,
		Elements: Derive(sidereal.SunLongitude(t), sidereal.MoonLongitude(t)),
	}
}

// Derive maps sidereal Sun and Moon longitudes (degrees) to the calendar
// elements.
func Derive(sun, moon float64) Elements {
	sun = astro.NormalizeAngle(sun)
	moon = astro.NormalizeAngle(moon)
	elongation := astro.NormalizeAngle(moon - sun)
	sunRashi := RashiFromLongitude(sun)

	return Elements{
		SunLongitude:  sun,
		MoonLongitude: moon,
		Elongation:    elongation,
		Tithi:         TithiFromElongation(elongation),
		Nakshatra:     NakshatraFromLongitude(moon),
		SunRashi:      sunRashi,
		MoonRashi:     RashiFromLongitude(moon),
		Yoga:          YogaFromLongitudes(sun, moon),
		Karana:        KaranaFromElongation(elongation),
		Masa:          Months[sunRashi.Index],
	}
}

// TithiFromElongation classifies a Moon-minus-Sun elongation in degrees.
func TithiFromElongation(elongation float64) Tithi {
	number := sector(elongation, tithiWidth, 30) + 1

	paksha := Shukla
	if number > 15 {
		paksha = Krishna
	}

	name := Tithis[(number-1)%15]
	switch number {
	case 15:
		name = "Purnima"
	case 30:
		name = "Amavasya"
	}

	return Tithi{
		Number: number,
		Index:  number - 1,
		Paksha: paksha,
		Name:   name,
	}
}

// NakshatraFromLongitude classifies a sidereal Moon longitude. Index and
// progress come from the same quotient so they agree at sector edges.
func NakshatraFromLongitude(moon float64) Nakshatra {
	q := astro.NormalizeAngle(moon) / SectorWidth
	whole := math.Floor(q)
	index := sector(moon, SectorWidth, 27)

	return Nakshatra{
		Index:          index,
		Name:           Nakshatras[index],
		PercentElapsed: (q - whole) * 100,
	}
}

// RashiFromLongitude returns the 30° sign containing a longitude
func RashiFromLongitude(longitude float64) Rashi {
	index := sector(longitude, rashiWidth, 12)
	return Rashi{
		Index:  index,
		Name:   Rashis[index].Name,
		Symbol: Rashis[index].Symbol,
	}
}

// YogaFromLongitudes classifies the sum of sidereal Sun and Moon longitudes
func YogaFromLongitudes(sun, moon float64) Yoga {
	index := sector(sun+moon, SectorWidth, 27)
	return Yoga{
		Index: index,
		Name:  Yogas[index],
	}
}

// KaranaFromElongation returns the half-tithi for an elongation
func KaranaFromElongation(elongation float64) Karana {
	number := sector(elongation, karanaWidth, 60) + 1
	return Karana{
		Number: number,
		Name:   fmt.Sprintf("Karana %d", number),
	}
}

// sector returns which of count equal sectors of the given width contains
// an angle. Non-finite angles land in sector 0 instead of indexing out of
// range.
func sector(deg, width float64, count int) int {
	q := math.Floor(astro.NormalizeAngle(deg) / width)
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0
	}
	i := int(q) % count
	if i < 0 {
		i += count
	}
	return i
}
