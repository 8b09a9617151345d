package lunar

import (
	"math"
	"time"

	"github.com/chrissnell/astrotime/pkg/solar"
)

const (
	// newMoonRiseHour is the assumed moonrise hour on the first tithi
	newMoonRiseHour = 6.5

	// riseDelayPerTithi is how much later the Moon rises per elapsed tithi, in hours
	riseDelayPerTithi = 0.8

	// moonUpHours is the assumed time between moonrise and moonset
	moonUpHours = 12.4
)

// MoonTimes holds the estimated moonrise and moonset for a calendar day
type MoonTimes struct {
	Moonrise      string    `json:"moonrise"`
	Moonset       string    `json:"moonset"`
	MoonriseHours float64   `json:"moonriseHours"`
	MoonsetHours  float64   `json:"moonsetHours"`
	MoonriseAt    time.Time `json:"moonriseAt"`
	MoonsetAt     time.Time `json:"moonsetAt"`
}

// CalculateMoonTimes estimates moonrise and moonset from the tithi index
// (0-29) alone. The estimate ignores the observer's position and the Moon's
// real geometry. The *At fields place both events on t's local calendar day.
func CalculateMoonTimes(t time.Time, tithiIndex int) MoonTimes {
	rise := math.Mod(newMoonRiseHour+riseDelayPerTithi*float64(tithiIndex), 24)
	set := math.Mod(rise+moonUpHours, 24)

	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())

	return MoonTimes{
		Moonrise:      solar.FormatClock(rise * 60),
		Moonset:       solar.FormatClock(set * 60),
		MoonriseHours: rise,
		MoonsetHours:  set,
		MoonriseAt:    midnight.Add(time.Duration(rise * float64(time.Hour))),
		MoonsetAt:     midnight.Add(time.Duration(set * float64(time.Hour))),
	}
}
