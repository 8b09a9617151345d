// Package sidereal converts tropical longitudes to the sidereal zodiac and
// estimates the rising point (ascendant) for the clock dial.
//
// The ayanamsa is a linear approximation around J2000 and should not be
// trusted more than a few decades either side of it.
package sidereal

import (
	"time"

	"github.com/chrissnell/astrotime/pkg/astro"
	"github.com/chrissnell/astrotime/pkg/lunar"
	"github.com/chrissnell/astrotime/pkg/solar"
)

const (
	// AyanamsaAtJ2000 is the precession offset at the J2000 epoch in degrees
	AyanamsaAtJ2000 = 23.85

	// AyanamsaRate is the precession drift in degrees per Julian century
	AyanamsaRate = 1.4
)

// Ayanamsa returns the tropical-to-sidereal offset in degrees for T Julian
// centuries since J2000.
func Ayanamsa(T float64) float64 {
	return AyanamsaAtJ2000 + AyanamsaRate*T
}

// ToSidereal subtracts the ayanamsa from a tropical longitude.
func ToSidereal(tropical, T float64) float64 {
	return astro.NormalizeAngle(tropical - Ayanamsa(T))
}

// AyanamsaAt returns the ayanamsa for an instant
func AyanamsaAt(t time.Time) float64 {
	return Ayanamsa(astro.JulianCenturies(astro.JulianDay(t)))
}

// SunLongitude returns the Sun's sidereal longitude in [0, 360).
func SunLongitude(t time.Time) float64 {
	return ToSidereal(solar.TropicalLongitude(t), astro.JulianCenturies(astro.JulianDay(t)))
}

// MoonLongitude returns the Moon's sidereal longitude in [0, 360).
func MoonLongitude(t time.Time) float64 {
	return ToSidereal(lunar.TropicalLongitude(t), astro.JulianCenturies(astro.JulianDay(t)))
}
