package reference

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/chrissnell/astrotime/pkg/astro"
)

// ErrEmptySurvey is returned when a survey would contain no samples
var ErrEmptySurvey = errors.New("survey needs at least two samples")

// ErrorStats summarises one error series, in degrees or minutes
type ErrorStats struct {
	Mean        float64 `json:"mean"`
	StdDev      float64 `json:"stdDev"`
	MaxAbs      float64 `json:"maxAbs"`
	RMS         float64 `json:"rms"`
	DriftPerDay float64 `json:"driftPerDay"` // slope of error against elapsed days
}

// Survey is the accuracy of the engine over a span of instants
type Survey struct {
	Start       time.Time         `json:"start"`
	End         time.Time         `json:"end"`
	Step        time.Duration     `json:"step"`
	Location    astro.GeoLocation `json:"location"`
	Samples     int               `json:"samples"`
	SunSamples  int               `json:"sunSamples"`
	Sun         ErrorStats        `json:"sun"`
	Moon        ErrorStats        `json:"moon"`
	Sunrise     ErrorStats        `json:"sunrise"`
	Sunset      ErrorStats        `json:"sunset"`
	Comparisons []Comparison      `json:"-"`
}

// Run compares the engine against the reference every step from start
// until end, inclusive of start.
func Run(start, end time.Time, step time.Duration, loc astro.GeoLocation) (*Survey, error) {
	if step <= 0 || !end.After(start) {
		return nil, ErrEmptySurvey
	}

	s := &Survey{
		Start:    start,
		End:      end,
		Step:     step,
		Location: loc,
	}

	var (
		days, sunErr, moonErr          []float64
		sunDays, sunriseErr, sunsetErr []float64
	)

	for t := start; t.Before(end); t = t.Add(step) {
		c := Compare(t, loc)
		s.Comparisons = append(s.Comparisons, c)

		elapsed := t.Sub(start).Hours() / 24
		days = append(days, elapsed)
		sunErr = append(sunErr, c.SunError)
		moonErr = append(moonErr, c.MoonError)

		if c.HasSunEvents {
			sunDays = append(sunDays, elapsed)
			sunriseErr = append(sunriseErr, c.SunriseError)
			sunsetErr = append(sunsetErr, c.SunsetError)
		}
	}

	if len(days) < 2 {
		return nil, ErrEmptySurvey
	}

	s.Samples = len(days)
	s.SunSamples = len(sunDays)
	s.Sun = summarise(days, sunErr)
	s.Moon = summarise(days, moonErr)
	if len(sunDays) >= 2 {
		s.Sunrise = summarise(sunDays, sunriseErr)
		s.Sunset = summarise(sunDays, sunsetErr)
	}

	return s, nil
}

func summarise(days, errs []float64) ErrorStats {
	abs := make([]float64, len(errs))
	sq := make([]float64, len(errs))
	for i, e := range errs {
		abs[i] = math.Abs(e)
		sq[i] = e * e
	}

	mean, std := stat.MeanStdDev(errs, nil)
	slope := 0.0
	if floats.Max(days) > floats.Min(days) {
		_, slope = stat.LinearRegression(days, errs, nil, false)
	}

	return ErrorStats{
		Mean:        mean,
		StdDev:      std,
		MaxAbs:      floats.Max(abs),
		RMS:         math.Sqrt(stat.Mean(sq, nil)),
		DriftPerDay: slope,
	}
}
