// Package config loads astrotimed settings from YAML files or SQLite
// databases behind a common ConfigProvider interface.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration, with defaults applied and validated
	LoadConfig() (*ConfigData, error)

	IsReadOnly() bool
	Close() error
}

// Defaults
const (
	DefaultLocationName    = "Mumbai"
	DefaultLatitude        = 19.0760
	DefaultLongitude       = 72.8777
	DefaultTimezone        = "Asia/Kolkata"
	DefaultListenAddr      = "0.0.0.0"
	DefaultHTTPPort        = 8080
	DefaultStreamInterval  = time.Second
	DefaultCacheResolution = time.Second
)

var (
	ErrLatitudeRange  = errors.New("latitude must be within [-90, 90]")
	ErrLongitudeRange = errors.New("longitude must be within [-180, 180]")
)

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Location        LocationData   `json:"location"`
	RESTServer      RESTServerData `json:"rest"`
	CacheResolution time.Duration  `json:"cache_resolution"`
}

// LocationData is the observer used when a request does not name one.
// It only feeds sunrise/sunset and the default clock zone.
type LocationData struct {
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone,omitempty"`
}

// RESTServerData configures the HTTP controller
type RESTServerData struct {
	ListenAddr     string        `json:"listen_addr,omitempty"`
	HTTPPort       int           `json:"http_port,omitempty"`
	TLSCertPath    string        `json:"tls_cert_path,omitempty"`
	TLSKeyPath     string        `json:"tls_key_path,omitempty"`
	StreamInterval time.Duration `json:"stream_interval,omitempty"`
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() *ConfigData {
	c := &ConfigData{}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills zero-valued fields. A zero latitude and longitude
// together are treated as unset.
func (c *ConfigData) ApplyDefaults() {
	if c.Location.Latitude == 0 && c.Location.Longitude == 0 {
		c.Location.Latitude = DefaultLatitude
		c.Location.Longitude = DefaultLongitude
		if c.Location.Name == "" {
			c.Location.Name = DefaultLocationName
		}
	}
	if c.Location.Name == "" {
		c.Location.Name = "default"
	}
	if c.Location.Timezone == "" {
		c.Location.Timezone = DefaultTimezone
	}
	if c.RESTServer.ListenAddr == "" {
		c.RESTServer.ListenAddr = DefaultListenAddr
	}
	if c.RESTServer.HTTPPort == 0 {
		c.RESTServer.HTTPPort = DefaultHTTPPort
	}
	if c.RESTServer.StreamInterval <= 0 {
		c.RESTServer.StreamInterval = DefaultStreamInterval
	}
	if c.CacheResolution == 0 {
		c.CacheResolution = DefaultCacheResolution
	}
}

// Validate checks coordinate ranges and that the timezone exists
func (l LocationData) Validate() error {
	if !finite(l.Latitude) || l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("location %q: %w (got %v)", l.Name, ErrLatitudeRange, l.Latitude)
	}
	if !finite(l.Longitude) || l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("location %q: %w (got %v)", l.Name, ErrLongitudeRange, l.Longitude)
	}
	if _, err := time.LoadLocation(l.Timezone); err != nil {
		return fmt.Errorf("location %q: invalid timezone: %w", l.Name, err)
	}
	return nil
}

// Validate checks the location and REST settings
func (c *ConfigData) Validate() error {
	if err := c.Location.Validate(); err != nil {
		return err
	}
	if (c.RESTServer.TLSCertPath == "") != (c.RESTServer.TLSKeyPath == "") {
		return errors.New("rest: tls cert and key must be set together")
	}
	return nil
}

// TimeZone returns the location's zone. Call Validate first; an
// unloadable zone falls back to UTC.
func (l LocationData) TimeZone() *time.Location {
	loc, err := time.LoadLocation(l.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// finalize applies defaults and validates, shared by every provider
func finalize(c *ConfigData) (*ConfigData, error) {
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
