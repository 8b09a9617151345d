package reference

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/chrissnell/astrotime/pkg/astro"
)

var mumbai = astro.GeoLocation{Latitude: 19.0760, Longitude: 72.8777}

func TestCompareLongitudes(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
	}{
		{"J2000", time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)},
		{"equinox 2024", time.Date(2024, 3, 20, 3, 6, 0, 0, time.UTC)},
		{"mid 2025", time.Date(2025, 7, 15, 18, 30, 0, 0, time.UTC)},
		{"end of 2030", time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Compare(tt.time, mumbai)
			if math.Abs(c.SunError) > 0.1 {
				t.Errorf("sun error %.4f° (engine %.4f, reference %.4f)", c.SunError, c.SunEngine, c.SunReference)
			}
			if math.Abs(c.MoonError) > 1.5 {
				t.Errorf("moon error %.4f° (engine %.4f, reference %.4f)", c.MoonError, c.MoonEngine, c.MoonReference)
			}
		})
	}
}

func TestSunEventsMumbai(t *testing.T) {
	ts := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	rise, set, ok := SunEvents(ts, mumbai.Latitude, mumbai.Longitude)
	if !ok {
		t.Fatal("expected sunrise and sunset in Mumbai")
	}
	// roughly 7:10 AM and 6:35 PM IST
	if rise < 6.5*60 || rise > 7.75*60 {
		t.Errorf("sunrise at %.1f minutes, expected around 430", rise)
	}
	if set < 18*60 || set > 19*60 {
		t.Errorf("sunset at %.1f minutes, expected around 1115", set)
	}

	c := Compare(ts, mumbai)
	if !c.HasSunEvents {
		t.Fatal("comparison missing sun events")
	}
	if math.Abs(c.SunriseError) > 35 || math.Abs(c.SunsetError) > 35 {
		t.Errorf("sun time errors %.1f / %.1f minutes", c.SunriseError, c.SunsetError)
	}
}

func TestComparePolarNight(t *testing.T) {
	tromso := astro.GeoLocation{Latitude: 78.2, Longitude: 15.6}
	c := Compare(time.Date(2025, 12, 21, 12, 0, 0, 0, time.UTC), tromso)
	if c.HasSunEvents {
		t.Errorf("polar night should have no sun events, got %+v", c)
	}
}

func TestRun(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 30)

	s, err := Run(start, end, 6*time.Hour, mumbai)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if s.Samples != 120 {
		t.Errorf("Samples = %d, expected 120", s.Samples)
	}
	if len(s.Comparisons) != s.Samples {
		t.Errorf("len(Comparisons) = %d, expected %d", len(s.Comparisons), s.Samples)
	}
	if s.SunSamples != s.Samples {
		t.Errorf("SunSamples = %d, expected %d", s.SunSamples, s.Samples)
	}
	if s.Sun.MaxAbs > 0.1 {
		t.Errorf("sun MaxAbs = %.4f°", s.Sun.MaxAbs)
	}
	if s.Moon.MaxAbs > 1.5 {
		t.Errorf("moon MaxAbs = %.4f°", s.Moon.MaxAbs)
	}
	if s.Moon.RMS > s.Moon.MaxAbs {
		t.Errorf("moon RMS %.4f exceeds MaxAbs %.4f", s.Moon.RMS, s.Moon.MaxAbs)
	}
	if s.Sunrise.MaxAbs > 35 {
		t.Errorf("sunrise MaxAbs = %.1f minutes", s.Sunrise.MaxAbs)
	}
}

func TestRunInvalid(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		step time.Duration
	}{
		{"zero step", start.Add(time.Hour), 0},
		{"end before start", start.Add(-time.Hour), time.Minute},
		{"single sample", start.Add(time.Minute), time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(start, tt.end, tt.step, mumbai)
			if !errors.Is(err, ErrEmptySurvey) {
				t.Errorf("Run() error = %v, expected ErrEmptySurvey", err)
			}
		})
	}
}
