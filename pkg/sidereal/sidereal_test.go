package sidereal

import (
	"math"
	"testing"
	"time"

	"github.com/chrissnell/astrotime/pkg/astro"
	"github.com/chrissnell/astrotime/pkg/lunar"
	"github.com/chrissnell/astrotime/pkg/solar"
)

var ist = time.FixedZone("IST", 19800)

func TestAyanamsa(t *testing.T) {
	tests := []struct {
		T        float64
		expected float64
	}{
		{0, 23.85},
		{0.25, 24.2},
		{1, 25.25},
		{-1, 22.45},
	}

	for _, tt := range tests {
		if got := Ayanamsa(tt.T); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("Ayanamsa(%v) = %v, expected %v", tt.T, got, tt.expected)
		}
	}
}

func TestToSidereal(t *testing.T) {
	tests := []struct {
		tropical float64
		T        float64
		expected float64
	}{
		{100, 0, 76.15},
		{10, 0, 346.15},
		{23.85, 0, 0},
		{0, 1, 334.75},
	}

	for _, tt := range tests {
		got := ToSidereal(tt.tropical, tt.T)
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("ToSidereal(%v, %v) = %v, expected %v", tt.tropical, tt.T, got, tt.expected)
		}
	}
}

func TestSiderealOffsetMatchesAyanamsa(t *testing.T) {
	ts := time.Date(2025, 2, 1, 6, 0, 0, 0, time.UTC)
	ayan := AyanamsaAt(ts)

	sunDiff := astro.AngularDifference(solar.TropicalLongitude(ts), SunLongitude(ts))
	moonDiff := astro.AngularDifference(lunar.TropicalLongitude(ts), MoonLongitude(ts))

	if math.Abs(sunDiff-ayan) > 1e-9 {
		t.Errorf("Sun tropical-sidereal = %v, expected ayanamsa %v", sunDiff, ayan)
	}
	if math.Abs(moonDiff-ayan) > 1e-9 {
		t.Errorf("Moon tropical-sidereal = %v, expected ayanamsa %v", moonDiff, ayan)
	}
	// Lahiri is about 24.2° in 2025
	if math.Abs(ayan-24.2) > 0.1 {
		t.Errorf("AyanamsaAt(2025) = %v, expected ≈24.2", ayan)
	}
}

func TestLongitudeRange(t *testing.T) {
	start := time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)
	for hour := 0; hour < 24*365*50; hour += 113 {
		ts := start.Add(time.Duration(hour) * time.Hour)
		for name, got := range map[string]float64{
			"sun":       SunLongitude(ts),
			"moon":      MoonLongitude(ts),
			"ascendant": AscendantLongitude(ts.In(ist)),
		} {
			if got < 0 || got >= 360 || math.IsNaN(got) {
				t.Errorf("%s longitude at %v = %v out of range [0, 360)", name, ts, got)
			}
		}
	}
}

func TestGreenwichSiderealTime(t *testing.T) {
	// GMST at J2000 is 280.46°
	got := GreenwichSiderealTime(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if math.Abs(got-280.46) > 0.01 {
		t.Errorf("GreenwichSiderealTime(J2000) = %.4f, expected ≈280.46", got)
	}
}

func TestLocalSiderealTime(t *testing.T) {
	ts := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	gst := GreenwichSiderealTime(ts) / 15

	lst := LocalSiderealTime(ts, 15)
	if math.Abs(lst-math.Mod(gst+1, 24)) > 1e-9 {
		t.Errorf("LocalSiderealTime(15°E) = %v, expected GST+1h = %v", lst, math.Mod(gst+1, 24))
	}

	dial := DialSiderealTime(ts)
	if dial < 0 || dial >= 24 {
		t.Errorf("DialSiderealTime = %v out of range [0, 24)", dial)
	}
}

func TestAscendantLongitude(t *testing.T) {
	day := time.Date(2025, 2, 1, 0, 0, 0, 0, ist)

	tests := []struct {
		name   string
		clock  time.Duration
		offset float64 // degrees ahead of the sidereal Sun
	}{
		{"anchor at 06:45", 6*time.Hour + 45*time.Minute, 0},
		{"six hours later", 12*time.Hour + 45*time.Minute, 90},
		{"one hour before anchor", 5*time.Hour + 45*time.Minute, -15},
		{"midnight", 0, -101.25},
		{"one minute past anchor", 6*time.Hour + 46*time.Minute, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := day.Add(tt.clock)
			got := AscendantLongitude(ts)
			expected := astro.NormalizeAngle(SunLongitude(ts) + tt.offset)
			if math.Abs(astro.AngularDifference(got, expected)) > 1e-6 {
				t.Errorf("AscendantLongitude(%v) = %v, expected %v", ts, got, expected)
			}
		})
	}
}

func TestAscendantUsesWallClock(t *testing.T) {
	// 06:45 in IST and 06:45 in UTC are different instants but both sit on
	// the anchor of their own wall clock.
	for _, loc := range []*time.Location{ist, time.UTC} {
		ts := time.Date(2025, 2, 1, 6, 45, 0, 0, loc)
		if d := astro.AngularDifference(AscendantLongitude(ts), SunLongitude(ts)); math.Abs(d) > 1e-9 {
			t.Errorf("ascendant at 06:45 %s differs from Sun by %v", loc, d)
		}
	}
}
