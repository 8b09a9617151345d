package restserver

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/chrissnell/astrotime/internal/constants"
	"github.com/chrissnell/astrotime/internal/log"
	"github.com/chrissnell/astrotime/pkg/astro"
	"github.com/chrissnell/astrotime/pkg/lunar"
	"github.com/chrissnell/astrotime/pkg/panchang"
	"github.com/chrissnell/astrotime/pkg/responseformat"
	"github.com/chrissnell/astrotime/pkg/solar"
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

// LongitudesResponse is the body of /longitudes
type LongitudesResponse struct {
	Time time.Time `json:"time"`
	panchang.Longitudes
}

// SunTimesResponse is the body of /suntimes
type SunTimesResponse struct {
	Time     time.Time         `json:"time"`
	Location astro.GeoLocation `json:"location"`
	solar.SunTimes
}

// MoonTimesResponse is the body of /moontimes
type MoonTimesResponse struct {
	Time  time.Time      `json:"time"`
	Tithi panchang.Tithi `json:"tithi"`
	lunar.MoonTimes
}

// VersionResponse is the body of /api/version
type VersionResponse struct {
	Version string `json:"version"`
}

// requestParams are the query parameters shared by every endpoint
type requestParams struct {
	time     time.Time
	live     bool // no time parameter was given
	location astro.GeoLocation
}

// parseParams reads time, tz, location, lat and lng. time is RFC3339;
// without it the controller clock is used. tz converts the instant to an
// IANA zone, which sets the wall clock the ascendant and day boundaries use.
// location selects a stored location and its zone. lat and lng default to
// the configured location, must be given together and exclude location.
func (h *Handlers) parseParams(req *http.Request) (requestParams, error) {
	q := req.URL.Query()
	c := h.controller

	p := requestParams{location: c.location}

	zone := c.zone
	if name := q.Get("location"); name != "" {
		if q.Has("lat") || q.Has("lng") {
			return p, fmt.Errorf("location cannot be combined with lat and lng")
		}
		named, ok := c.locations[name]
		if !ok {
			return p, fmt.Errorf("unknown location %q", name)
		}
		p.location = named.geo
		zone = named.zone
	}
	if tz := q.Get("tz"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return p, fmt.Errorf("invalid tz %q", tz)
		}
		zone = loc
	}

	if ts := q.Get("time"); ts != "" {
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return p, fmt.Errorf("invalid time %q: expected RFC3339", ts)
		}
		p.time = t
		if q.Has("tz") || q.Has("location") {
			p.time = t.In(zone)
		}
	} else {
		p.live = true
		p.time = c.now().In(zone)
	}

	latStr, lngStr := q.Get("lat"), q.Get("lng")
	if (latStr == "") != (lngStr == "") {
		return p, fmt.Errorf("lat and lng must be given together")
	}
	if latStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil || !finite(lat) || lat < -90 || lat > 90 {
			return p, fmt.Errorf("invalid lat %q: expected a number in [-90, 90]", latStr)
		}
		lng, err := strconv.ParseFloat(lngStr, 64)
		if err != nil || !finite(lng) || lng < -180 || lng > 180 {
			return p, fmt.Errorf("invalid lng %q: expected a number in [-180, 180]", lngStr)
		}
		p.location = astro.GeoLocation{Latitude: lat, Longitude: lng}
	}

	return p, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (h *Handlers) badRequest(w http.ResponseWriter, req *http.Request, err error) {
	if werr := h.formatter.WriteError(w, req, http.StatusBadRequest, err.Error()); werr != nil {
		log.Errorf("error writing error response: %v", werr)
	}
}

func (h *Handlers) write(w http.ResponseWriter, req *http.Request, data any) {
	if err := h.formatter.WriteResponse(w, req, data, map[string]string{"Cache-Control": "no-store"}); err != nil {
		log.Errorf("error writing response for %s: %v", req.URL.Path, err)
	}
}

// GetPanchang returns the full snapshot. Live requests are served from the
// snapshot cache.
func (h *Handlers) GetPanchang(w http.ResponseWriter, req *http.Request) {
	p, err := h.parseParams(req)
	if err != nil {
		h.badRequest(w, req, err)
		return
	}
	h.write(w, req, h.controller.snapshot(p.time, p.location, p.live))
}

// GetLongitudes returns the tropical and sidereal longitudes, ayanamsa and
// ascendant.
func (h *Handlers) GetLongitudes(w http.ResponseWriter, req *http.Request) {
	p, err := h.parseParams(req)
	if err != nil {
		h.badRequest(w, req, err)
		return
	}
	h.write(w, req, LongitudesResponse{
		Time:       p.time,
		Longitudes: panchang.CalculateLongitudes(p.time),
	})
}

// GetSunTimes returns sunrise and sunset for the request location
func (h *Handlers) GetSunTimes(w http.ResponseWriter, req *http.Request) {
	p, err := h.parseParams(req)
	if err != nil {
		h.badRequest(w, req, err)
		return
	}
	h.write(w, req, SunTimesResponse{
		Time:     p.time,
		Location: p.location,
		SunTimes: solar.CalculateSunTimes(p.time, p.location.Latitude, p.location.Longitude),
	})
}

// GetMoonTimes returns the tithi-driven moonrise and moonset
func (h *Handlers) GetMoonTimes(w http.ResponseWriter, req *http.Request) {
	p, err := h.parseParams(req)
	if err != nil {
		h.badRequest(w, req, err)
		return
	}
	tithi := panchang.Calculate(p.time).Tithi
	h.write(w, req, MoonTimesResponse{
		Time:      p.time,
		Tithi:     tithi,
		MoonTimes: lunar.CalculateMoonTimes(p.time, tithi.Index),
	})
}

// GetVersion returns the server version
func (h *Handlers) GetVersion(w http.ResponseWriter, req *http.Request) {
	h.write(w, req, VersionResponse{Version: constants.Version})
}
