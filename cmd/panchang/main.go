package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/chrissnell/astrotime/pkg/astro"
	"github.com/chrissnell/astrotime/pkg/config"
	"github.com/chrissnell/astrotime/pkg/panchang"
	"github.com/chrissnell/astrotime/pkg/reference"
)

func main() {
	var (
		timeStr    string
		tz         string
		lat, lng   float64
		showRef    bool
		surveyDays int
		asJSON     bool
		dbPath     string
		locName    string
	)
	flag.StringVar(&timeStr, "time", "", "Time to calculate for (RFC3339 format, e.g., 2024-01-15T12:00:00+05:30). Defaults to now")
	flag.StringVar(&tz, "tz", config.DefaultTimezone, "IANA time zone used for wall-clock output and the ascendant")
	flag.Float64Var(&lat, "lat", config.DefaultLatitude, "Observer latitude in degrees (north positive)")
	flag.Float64Var(&lng, "lng", config.DefaultLongitude, "Observer longitude in degrees (east positive)")
	flag.BoolVar(&showRef, "reference", false, "Compare the Sun/Moon models against Meeus and suncalc")
	flag.IntVar(&surveyDays, "survey-days", 0, "Survey model accuracy over this many days starting at -time")
	flag.BoolVar(&asJSON, "json", false, "Print the snapshot as JSON")
	flag.StringVar(&dbPath, "db", "", "SQLite configuration database holding named locations")
	flag.StringVar(&locName, "location", "", "Named location from -db; sets -lat, -lng and -tz")
	flag.Parse()

	if locName != "" {
		l, err := lookupLocation(dbPath, locName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		lat, lng, tz = l.Latitude, l.Longitude, l.Timezone
	}

	zone, err := time.LoadLocation(tz)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading time zone: %v\n", err)
		os.Exit(1)
	}

	var t time.Time
	if timeStr == "" {
		t = time.Now().In(zone)
	} else {
		t, err = time.Parse(time.RFC3339, timeStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing time: %v\n", err)
			os.Exit(1)
		}
		t = t.In(zone)
	}

	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		fmt.Fprintf(os.Stderr, "Error: latitude must be within [-90, 90] and longitude within [-180, 180]\n")
		os.Exit(1)
	}
	loc := astro.GeoLocation{Latitude: lat, Longitude: lng}

	s := panchang.NewSnapshot(t, loc)

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding snapshot: %v\n", err)
			os.Exit(1)
		}
	} else {
		printSnapshot(s)
	}

	if showRef {
		printComparison(reference.Compare(t, loc))
	}

	if surveyDays > 0 {
		survey, err := reference.Run(t, t.AddDate(0, 0, surveyDays), time.Hour, loc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running survey: %v\n", err)
			os.Exit(1)
		}
		printSurvey(survey)
	}
}

func lookupLocation(dbPath, name string) (*config.LocationData, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("-location requires -db")
	}
	provider, err := config.NewSQLiteProvider(dbPath)
	if err != nil {
		return nil, err
	}
	defer provider.Close()

	l, err := provider.GetLocation(name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no location named %q in %s", name, dbPath)
	}
	return l, err
}

func printSnapshot(s panchang.Snapshot) {
	c := s.Calendar
	l := s.Longitudes

	fmt.Printf("Panchang for %s at %.4f, %.4f\n", s.Time.Format(time.RFC3339), s.Location.Latitude, s.Location.Longitude)
	fmt.Printf("  Tithi:        %d %s (%s paksha)\n", c.Tithi.Number, c.Tithi.Name, c.Tithi.Paksha)
	fmt.Printf("  Nakshatra:    %s (%.1f%% elapsed)\n", c.Nakshatra.Name, c.Nakshatra.PercentElapsed)
	fmt.Printf("  Yoga:         %s\n", c.Yoga.Name)
	fmt.Printf("  Karana:       %s\n", c.Karana.Name)
	fmt.Printf("  Moon Rashi:   %s %s\n", c.MoonRashi.Symbol, c.MoonRashi.Name)
	fmt.Printf("  Sun Rashi:    %s %s\n", c.SunRashi.Symbol, c.SunRashi.Name)
	fmt.Printf("  Masa:         %s\n", c.Masa)
	if s.Observance != "" {
		fmt.Printf("  Observance:   %s\n", s.Observance)
	}

	fmt.Printf("\nLongitudes\n")
	fmt.Printf("  Sun:          %.3f° sidereal (%.3f° tropical)\n", l.SunSidereal, l.SunTropical)
	fmt.Printf("  Moon:         %.3f° sidereal (%.3f° tropical)\n", l.MoonSidereal, l.MoonTropical)
	fmt.Printf("  Ayanamsa:     %.4f°\n", l.Ayanamsa)
	fmt.Printf("  Ascendant:    %.3f°\n", l.Ascendant)
	fmt.Printf("  LST:          %.4f h\n", l.LocalSiderealHours)

	fmt.Printf("\nRise/Set\n")
	fallback := ""
	if s.Sun.Fallback {
		fallback = " (no sunrise at this latitude; defaults shown)"
	}
	fmt.Printf("  Sunrise:      %s%s\n", s.Sun.Sunrise, fallback)
	fmt.Printf("  Sunset:       %s\n", s.Sun.Sunset)
	fmt.Printf("  Day length:   %.0f minutes\n", s.Sun.DayDurationMinutes)
	fmt.Printf("  Moonrise:     %s\n", s.Moon.Moonrise)
	fmt.Printf("  Moonset:      %s\n", s.Moon.Moonset)

	fmt.Printf("\nMoon Phase\n")
	fmt.Printf("  Phase Name:   %s\n", s.Phase.PhaseName)
	fmt.Printf("  Illumination: %.1f%%\n", s.Phase.Illumination*100)
	fmt.Printf("  Age:          %.1f days\n", s.Phase.AgeDays)
}

func printComparison(c reference.Comparison) {
	fmt.Printf("\nReference comparison (engine - reference)\n")
	fmt.Printf("  Sun:          %.4f° vs %.4f° (%+.4f°)\n", c.SunEngine, c.SunReference, c.SunError)
	fmt.Printf("  Moon:         %.4f° vs %.4f° (%+.4f°)\n", c.MoonEngine, c.MoonReference, c.MoonError)
	if c.HasSunEvents {
		fmt.Printf("  Sunrise:      %+.1f minutes\n", c.SunriseError)
		fmt.Printf("  Sunset:       %+.1f minutes\n", c.SunsetError)
	} else {
		fmt.Printf("  Sunrise/set:  not comparable at this latitude and date\n")
	}
}

func printSurvey(s *reference.Survey) {
	fmt.Printf("\nAccuracy survey %s to %s, %d samples\n",
		s.Start.Format("2006-01-02"), s.End.Format("2006-01-02"), s.Samples)
	row := func(name, unit string, e reference.ErrorStats) {
		fmt.Printf("  %-8s mean %+8.4f  sd %7.4f  max|e| %7.4f  rms %7.4f  drift %+.5f %s/day\n",
			name, e.Mean, e.StdDev, e.MaxAbs, e.RMS, e.DriftPerDay, unit)
	}
	row("Sun", "°", s.Sun)
	row("Moon", "°", s.Moon)
	if s.SunSamples >= 2 {
		row("Sunrise", "min", s.Sunrise)
		row("Sunset", "min", s.Sunset)
	}
}
